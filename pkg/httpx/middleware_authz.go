package httpx

import (
	"net/http"

	"github.com/aussiebroadwan/xminds/pkg/xminds"
)

// RequireOwnUser restricts tokens issued on behalf of a frontend user to that
// user's own resources, identified by the named path value. Service tokens
// without a frontend user pass through.
func RequireOwnUser(pathValue string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				xminds.NewError(xminds.KindAuth, "missing credentials", nil).WriteError(w)
				return
			}

			if claims.FrontendUserID != "" && r.PathValue(pathValue) != claims.FrontendUserID {
				xminds.NewError(
					xminds.KindForbidden,
					"Frontend user may not access {key}",
					xminds.ErrorData{"key": r.PathValue(pathValue)},
				).WriteError(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
