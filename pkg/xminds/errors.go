package xminds

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ============================================================================
// Error Kinds
// ============================================================================

// Kind classifies an API error. Every *Error carries exactly one Kind, decided
// once from the server's error_name discriminator.
type Kind int

const (
	// KindServer is the fallback for unknown or missing discriminators.
	KindServer Kind = iota
	KindAuth
	KindDuplicated
	KindForbidden
	KindTokenExpired
	KindMethodNotAllowed
	KindNotFound
	KindRefreshTokenExpired
	KindServerUnavailable
	KindTooManyRequests
	KindWrongData
)

type kindInfo struct {
	name   string // discriminator sent by the API
	label  string
	status int
}

var kindTable = map[Kind]kindInfo{
	KindAuth:                {"AuthError", "auth", http.StatusUnauthorized},
	KindDuplicated:          {"DuplicatedError", "duplicated", http.StatusBadRequest},
	KindForbidden:           {"ForbiddenError", "forbidden", http.StatusForbidden},
	KindTokenExpired:        {"JwtTokenExpired", "token expired", http.StatusUnauthorized},
	KindMethodNotAllowed:    {"MethodNotAllowed", "method not allowed", http.StatusMethodNotAllowed},
	KindNotFound:            {"NotFoundError", "not found", http.StatusNotFound},
	KindRefreshTokenExpired: {"RefreshTokenExpired", "refresh token expired", http.StatusUnauthorized},
	KindServer:              {"ServerError", "server", http.StatusInternalServerError},
	KindServerUnavailable:   {"ServerUnavailable", "server unavailable", http.StatusServiceUnavailable},
	KindTooManyRequests:     {"TooManyRequests", "too many requests", http.StatusTooManyRequests},
	KindWrongData:           {"WrongData", "wrong data", http.StatusBadRequest},
}

var kindsByName = func() map[string]Kind {
	m := make(map[string]Kind, len(kindTable))
	for k, info := range kindTable {
		m[info.name] = k
	}
	return m
}()

// ParseKind maps an error_name discriminator to its Kind. Unknown or empty
// names map to KindServer.
func ParseKind(name string) Kind {
	if k, ok := kindsByName[name]; ok {
		return k
	}
	return KindServer
}

// Name returns the discriminator the API uses for this kind.
func (k Kind) Name() string { return k.info().name }

// StatusCode returns the client-side classification code for this kind. It is
// not necessarily the HTTP status the response was delivered with.
func (k Kind) StatusCode() int { return k.info().status }

func (k Kind) String() string { return k.info().label }

func (k Kind) info() kindInfo {
	if info, ok := kindTable[k]; ok {
		return info
	}
	return kindTable[KindServer]
}

// ============================================================================
// Error - classified API error
// ============================================================================

// ErrorData is the optional structured detail attached to an API error. The
// well known fields are error, type, key and method.
type ErrorData map[string]any

// ErrorPayload is the JSON body the API returns with a non-2xx response.
type ErrorPayload struct {
	ErrorCode int       `json:"error_code,omitempty"`
	ErrorName string    `json:"error_name"`
	Message   string    `json:"message"`
	ErrorData ErrorData `json:"error_data,omitempty"`
}

// Error is a classified API error. It is immutable once built by Classify.
type Error struct {
	Kind       Kind
	StatusCode int
	Message    string
	Detail     ErrorData
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("xminds: %s (%d)", e.Kind.Name(), e.StatusCode)
	}
	return fmt.Sprintf("xminds: %s (%d): %s", e.Kind.Name(), e.StatusCode, e.Message)
}

// Is reports whether target is an *Error of the same kind, so the predefined
// sentinels below can be used with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Payload converts the error back into its wire representation.
func (e *Error) Payload() ErrorPayload {
	return ErrorPayload{
		ErrorCode: e.StatusCode,
		ErrorName: e.Kind.Name(),
		Message:   e.Message,
		ErrorData: e.Detail,
	}
}

// WriteError writes this error to an HTTP response writer in the API's error
// format. The response status is the kind's status code.
func (e *Error) WriteError(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(e.Payload())
}

// ============================================================================
// Predefined Errors
// ============================================================================

var (
	// ErrAuth is returned when authentication cannot be performed.
	ErrAuth = newKindError(KindAuth, "authentication failed")

	// ErrDuplicated is returned when a resource already exists.
	ErrDuplicated = newKindError(KindDuplicated, "resource is duplicated")

	// ErrForbidden is returned when the credentials lack permission for the resource.
	ErrForbidden = newKindError(KindForbidden, "forbidden")

	// ErrTokenExpired is returned when the bearer token has expired. Clients
	// recover from it by refreshing and retrying once.
	ErrTokenExpired = newKindError(KindTokenExpired, "bearer token expired")

	// ErrMethodNotAllowed is returned when the HTTP method is not allowed.
	ErrMethodNotAllowed = newKindError(KindMethodNotAllowed, "method not allowed")

	// ErrNotFound is returned when a resource does not exist.
	ErrNotFound = newKindError(KindNotFound, "not found")

	// ErrRefreshTokenExpired is returned when the refresh token has expired.
	ErrRefreshTokenExpired = newKindError(KindRefreshTokenExpired, "refresh token expired")

	// ErrServer is returned when the server hit an internal error.
	ErrServer = newKindError(KindServer, "internal server error")

	// ErrServerUnavailable is returned when the server is temporarily unavailable.
	ErrServerUnavailable = newKindError(KindServerUnavailable, "server unavailable")

	// ErrTooManyRequests is returned when the caller is being throttled.
	ErrTooManyRequests = newKindError(KindTooManyRequests, "too many requests")

	// ErrWrongData is returned when the request payload is invalid.
	ErrWrongData = newKindError(KindWrongData, "wrong data")
)

func newKindError(k Kind, msg string) *Error {
	return &Error{Kind: k, StatusCode: k.StatusCode(), Message: msg}
}

// NewError builds an error of the given kind with a message template and
// optional detail, the same way Classify does for payloads from the wire.
func NewError(k Kind, message string, detail ErrorData) *Error {
	return Classify(ErrorPayload{ErrorName: k.Name(), Message: message, ErrorData: detail})
}

// ============================================================================
// Classification
// ============================================================================

var placeholders = []string{"error", "type", "key", "method"}

// Classify turns an API error payload into exactly one *Error. It never fails:
// an unknown discriminator degrades to KindServer.
func Classify(p ErrorPayload) *Error {
	k := ParseKind(p.ErrorName)

	return &Error{
		Kind:       k,
		StatusCode: k.StatusCode(),
		Message:    formatMessage(p.Message, p.ErrorData),
		Detail:     p.ErrorData,
	}
}

// formatMessage fills {error}, {type}, {key} and {method} from detail. Each
// placeholder is replaced only when its field is present.
func formatMessage(msg string, detail ErrorData) string {
	if detail == nil {
		return msg
	}
	for _, field := range placeholders {
		v, ok := detail[field]
		if !ok {
			continue
		}
		msg = strings.ReplaceAll(msg, "{"+field+"}", fmt.Sprint(v))
	}
	return msg
}

// parseErrorResponse classifies a non-2xx response body. Bodies that are not
// an error payload classify as KindServer with the HTTP status text.
func parseErrorResponse(resp *http.Response, body []byte) *Error {
	payload, ok := decodeErrorPayload(body)
	if !ok {
		payload = ErrorPayload{
			Message: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
		}
	}
	return Classify(payload)
}

// decodeErrorPayload reads each field of an error body on its own, so a
// malformed error_code or error_data cannot hide a valid error_name. The
// server's error_code is never read; the kind decides the status.
func decodeErrorPayload(body []byte) (ErrorPayload, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return ErrorPayload{}, false
	}

	var p ErrorPayload
	if raw, ok := fields["error_name"]; ok {
		_ = json.Unmarshal(raw, &p.ErrorName)
	}
	if raw, ok := fields["message"]; ok {
		_ = json.Unmarshal(raw, &p.Message)
	}
	if raw, ok := fields["error_data"]; ok {
		var detail ErrorData
		if err := json.Unmarshal(raw, &detail); err == nil {
			p.ErrorData = detail
		}
	}
	return p, p.ErrorName != "" || p.Message != ""
}

// IsKind reports whether err is, or wraps, an *Error of kind k.
func IsKind(err error, k Kind) bool {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Kind == k
}

// ============================================================================
// ConnectionError - no response from the API
// ============================================================================

// ConnectionError is returned when no HTTP response was received at all:
// dial failures, resets, timeouts and cancellation. It is never classified
// and never triggers a token refresh.
type ConnectionError struct {
	Method string
	URL    string
	Err    error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("xminds: %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// Timeout reports whether the request failed because a deadline expired.
func (e *ConnectionError) Timeout() bool {
	var te interface{ Timeout() bool }
	if errors.As(e.Err, &te) && te.Timeout() {
		return true
	}
	return errors.Is(e.Err, context.DeadlineExceeded)
}
