package httpx

import (
	"errors"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/xminds/pkg/jwtx"
	"github.com/aussiebroadwan/xminds/pkg/slogx"
	"github.com/aussiebroadwan/xminds/pkg/xminds"
)

// AuthnMiddleware requires a valid bearer token. An expired but otherwise
// genuine token is answered with JwtTokenExpired so clients know to refresh;
// every other failure is an AuthError.
func AuthnMiddleware(v jwtx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			authz := r.Header.Get("Authorization")
			if !strings.HasPrefix(authz, "Bearer ") {
				writeBearerError(w, xminds.KindAuth, "missing bearer token")
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer "))

			claims, err := v.Verify(raw)
			switch {
			case err == nil:
			case errors.Is(err, jwtx.ErrExpired):
				writeBearerError(w, xminds.KindTokenExpired, "JWT token has expired")
				return
			default:
				log.Warn("jwt verify failed", "err", err)
				writeBearerError(w, xminds.KindAuth, "invalid bearer token")
				return
			}

			ctx = slogx.WithContext(ctx, log.With("account", claims.Subject, "db_id", claims.DatabaseID))
			next.ServeHTTP(w, r.WithContext(WithClaims(ctx, claims)))
		})
	}
}

// RFC 6750 challenge plus the API error body.
func writeBearerError(w http.ResponseWriter, k xminds.Kind, msg string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+msg+`"`)
	xminds.NewError(k, msg, nil).WriteError(w)
}
