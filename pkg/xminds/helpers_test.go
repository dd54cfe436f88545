package xminds

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// recordedRequest is one request seen by fakeAPI.
type recordedRequest struct {
	Method        string
	URI           string
	Authorization string
	UserAgent     string
	RequestID     string
	ContentType   string
	Body          string
}

func (r recordedRequest) route() string { return r.Method + " " + r.URI }

// fakeAPI is an httptest server that records every request and serves a
// rotating token pair on the refresh login. Other routes are answered by
// handle, which defaults to an empty JSON object.
type fakeAPI struct {
	t      *testing.T
	server *httptest.Server

	mu       sync.Mutex
	requests []recordedRequest
	logins   int

	// login, when set, replaces the default refresh login handler
	login func(w http.ResponseWriter, r *http.Request, n int)
	// handle answers every non-login route
	handle func(w http.ResponseWriter, r *http.Request)
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()

	f := &fakeAPI{t: t}
	f.server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeAPI) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	f.mu.Lock()
	f.requests = append(f.requests, recordedRequest{
		Method:        r.Method,
		URI:           r.URL.RequestURI(),
		Authorization: r.Header.Get("Authorization"),
		UserAgent:     r.Header.Get("User-Agent"),
		RequestID:     r.Header.Get("X-Request-ID"),
		ContentType:   r.Header.Get("Content-Type"),
		Body:          string(body),
	})
	var n int
	if r.URL.Path == loginRefreshTokenPath {
		f.logins++
		n = f.logins
	}
	login, handle := f.login, f.handle
	f.mu.Unlock()

	if r.URL.Path == loginRefreshTokenPath {
		if login != nil {
			login(w, r, n)
			return
		}
		writeJSON(w, http.StatusOK, LoginResponse{
			Token:        fmt.Sprintf("tok-%d", n),
			RefreshToken: fmt.Sprintf("refresh-%d", n),
		})
		return
	}

	if handle != nil {
		handle(w, r)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{})
}

func (f *fakeAPI) client(opts ...func(*Config)) *Client {
	cfg := Config{Host: f.server.URL + "/", RefreshToken: "refresh-0", UserAgent: "xminds-test"}
	for _, o := range opts {
		o(&cfg)
	}
	return NewClient(cfg)
}

func (f *fakeAPI) routes() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.requests))
	for _, r := range f.requests {
		out = append(out, r.route())
	}
	return out
}

func (f *fakeAPI) recorded() []recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recordedRequest(nil), f.requests...)
}

func (f *fakeAPI) loginCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.logins
}

func (f *fakeAPI) reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeAPIError(w http.ResponseWriter, k Kind, message string) {
	NewError(k, message, nil).WriteError(w)
}

func requireJSONBody(t *testing.T, want string, got string) {
	t.Helper()
	require.JSONEq(t, want, got)
}

const loginRoute = "POST " + loginRefreshTokenPath

func (f *fakeAPI) setHandle(h func(w http.ResponseWriter, r *http.Request)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handle = h
}

func (f *fakeAPI) setLogin(h func(w http.ResponseWriter, r *http.Request, n int)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.login = h
}
