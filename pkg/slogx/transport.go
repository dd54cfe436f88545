package slogx

import (
	"log/slog"
	"net/http"
	"time"
)

// Transport is an http.RoundTripper that logs every outbound request at debug
// level. A logger attached to the request context takes precedence over the
// one given to NewTransport.
type Transport struct {
	base   http.RoundTripper
	logger *slog.Logger
}

// NewTransport wraps base, or http.DefaultTransport when base is nil.
func NewTransport(base http.RoundTripper, logger *slog.Logger) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Transport{base: base, logger: logger}
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	logger := t.logger
	if l, ok := Lookup(req.Context()); ok {
		logger = l
	}

	start := time.Now()
	resp, err := t.base.RoundTrip(req)

	attrs := []any{
		"method", req.Method,
		"path", req.URL.Path,
		"req_id", req.Header.Get("X-Request-ID"),
		"duration_ms", time.Since(start).Milliseconds(),
	}
	if err != nil {
		logger.DebugContext(req.Context(), "http_client_request", append(attrs, "err", err)...)
		return nil, err
	}

	logger.DebugContext(req.Context(), "http_client_request", append(attrs, "status", resp.StatusCode)...)
	return resp, nil
}
