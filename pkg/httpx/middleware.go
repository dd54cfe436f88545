package httpx

import (
	"net/http"

	"github.com/aussiebroadwan/xminds/pkg/slogx"
	"github.com/aussiebroadwan/xminds/pkg/xminds"
)

// Middleware wraps an http.Handler.
type Middleware func(http.Handler) http.Handler

// Chain applies middlewares so that the first one listed runs first.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// Recover turns a panicking handler into a ServerError response.
func Recover() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if v := recover(); v != nil {
					if v == http.ErrAbortHandler {
						panic(v)
					}
					slogx.FromContext(r.Context()).Error("handler panic", "panic", v)
					xminds.NewError(xminds.KindServer, "internal server error", nil).WriteError(w)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// Methods dispatches by HTTP method. Any other method is answered with a
// MethodNotAllowed error naming the method.
func Methods(handlers map[string]http.Handler) http.Handler {
	allow := make([]string, 0, len(handlers))
	for m := range handlers {
		allow = append(allow, m)
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h, ok := handlers[r.Method]; ok {
			h.ServeHTTP(w, r)
			return
		}
		for _, m := range allow {
			w.Header().Add("Allow", m)
		}
		xminds.NewError(
			xminds.KindMethodNotAllowed,
			"Method {method} not allowed",
			xminds.ErrorData{"method": r.Method},
		).WriteError(w)
	})
}

// NotFound answers every request with a NotFoundError for the path.
func NotFound() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		xminds.NewError(
			xminds.KindNotFound,
			"{key} not found",
			xminds.ErrorData{"key": r.URL.Path},
		).WriteError(w)
	})
}
