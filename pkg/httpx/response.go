package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/aussiebroadwan/xminds/pkg/slogx"
	"github.com/aussiebroadwan/xminds/pkg/xminds"
)

// MaxBodyBytes bounds request bodies read by DecodeJSON.
const MaxBodyBytes = 4 << 20

// WriteJSON writes v as JSON with the given status and no-cache headers.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// NoCache sets the Cache-Control and Pragma headers to prevent caching.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}

// WriteError writes err in the API error format. Errors that are not an
// *xminds.Error are logged and reported as a generic ServerError.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	var apiErr *xminds.Error
	if !errors.As(err, &apiErr) {
		slogx.FromContext(r.Context()).Error("request failed", "err", err)
		apiErr = xminds.NewError(xminds.KindServer, "internal server error", nil)
	}
	apiErr.WriteError(w)
}

// DecodeJSON reads the request body into v. A missing or malformed body is
// reported as WrongData.
func DecodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, MaxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return xminds.NewError(xminds.KindWrongData, "request body is required", nil)
		}
		return xminds.NewError(
			xminds.KindWrongData,
			"invalid request body: {error}",
			xminds.ErrorData{"error": err.Error()},
		)
	}
	return nil
}
