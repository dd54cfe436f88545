package httpx_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/xminds/pkg/cryptox"
	"github.com/aussiebroadwan/xminds/pkg/httpx"
	"github.com/aussiebroadwan/xminds/pkg/jwtx"
	"github.com/aussiebroadwan/xminds/pkg/xminds"
	"github.com/stretchr/testify/require"
)

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) *xminds.Error {
	t.Helper()
	var payload xminds.ErrorPayload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	return xminds.Classify(payload)
}

func TestChainOrder(t *testing.T) {
	var order []string
	mw := func(name string) httpx.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := httpx.Chain(okHandler, mw("a"), mw("b"), mw("c"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, []string{"a", "b", "c"}, order)
}

func TestMethods(t *testing.T) {
	h := httpx.Methods(map[string]http.Handler{http.MethodGet: okHandler})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/u1/", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/users/u1/", nil))
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	require.Equal(t, "GET", rec.Header().Get("Allow"))

	apiErr := decodeError(t, rec)
	require.Equal(t, xminds.KindMethodNotAllowed, apiErr.Kind)
	require.Equal(t, "Method PATCH not allowed", apiErr.Message)
}

func TestRecover(t *testing.T) {
	h := httpx.Recover()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, xminds.KindServer, decodeError(t, rec).Kind)
}

func TestWriteError(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	rec := httptest.NewRecorder()
	httpx.WriteError(rec, req, xminds.NewError(xminds.KindNotFound, "{key} missing", xminds.ErrorData{"key": "u1"}))
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "u1 missing", decodeError(t, rec).Message)

	rec = httptest.NewRecorder()
	httpx.WriteError(rec, req, errors.New("db exploded"))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.NotContains(t, rec.Body.String(), "exploded")
}

func TestDecodeJSON(t *testing.T) {
	var v struct {
		Rating float64 `json:"rating"`
	}

	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"rating":4}`))
	require.NoError(t, httpx.DecodeJSON(req, &v))
	require.Equal(t, 4.0, v.Rating)

	req = httptest.NewRequest(http.MethodPut, "/", strings.NewReader(""))
	require.ErrorIs(t, httpx.DecodeJSON(req, &v), xminds.ErrWrongData)

	req = httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"rating":"x"}`))
	require.ErrorIs(t, httpx.DecodeJSON(req, &v), xminds.ErrWrongData)
}

func newTestAuth(t *testing.T) (*jwtx.EdDSASigner, *jwtx.EdDSAVerifier) {
	t.Helper()
	pemKey, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)
	signer, err := jwtx.NewSignerEdDSA("k1", pemKey)
	require.NoError(t, err)
	keys := jwtx.NewKeySet()
	keys.AddSigner(signer)
	return signer, jwtx.NewVerifierEdDSA(keys, "iss", nil)
}

func TestAuthnMiddleware(t *testing.T) {
	signer, verifier := newTestAuth(t)

	var seen *jwtx.Claims
	h := httpx.AuthnMiddleware(verifier)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = httpx.ClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	serve := func(authz string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if authz != "" {
			req.Header.Set("Authorization", authz)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	now := time.Now().UTC()

	t.Run("valid token", func(t *testing.T) {
		tok, err := signer.Sign(jwtx.NewAccessClaims("svc", "db-1", "", "", "iss", nil, time.Minute, now))
		require.NoError(t, err)
		rec := serve("Bearer " + tok)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "db-1", seen.DatabaseID)
	})

	t.Run("expired token", func(t *testing.T) {
		tok, err := signer.Sign(jwtx.NewAccessClaims("svc", "db-1", "", "", "iss", nil, time.Minute, now.Add(-time.Hour)))
		require.NoError(t, err)
		rec := serve("Bearer " + tok)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Equal(t, xminds.KindTokenExpired, decodeError(t, rec).Kind)
	})

	t.Run("missing token", func(t *testing.T) {
		rec := serve("")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Equal(t, xminds.KindAuth, decodeError(t, rec).Kind)
		require.Contains(t, rec.Header().Get("WWW-Authenticate"), "invalid_token")
	})

	t.Run("garbage token", func(t *testing.T) {
		rec := serve("Bearer nope")
		require.Equal(t, xminds.KindAuth, decodeError(t, rec).Kind)
	})
}

func TestRequireOwnUser(t *testing.T) {
	mux := http.NewServeMux()
	mux.Handle("GET /users/{user_id}/", httpx.RequireOwnUser("user_id")(okHandler))

	serve := func(claims *jwtx.Claims, path string) int {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if claims != nil {
			req = req.WithContext(httpx.WithClaims(context.Background(), claims))
		}
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)
		return rec.Code
	}

	require.Equal(t, http.StatusOK, serve(&jwtx.Claims{DatabaseID: "db"}, "/users/u1/"))
	require.Equal(t, http.StatusOK, serve(&jwtx.Claims{FrontendUserID: "u1"}, "/users/u1/"))
	require.Equal(t, http.StatusForbidden, serve(&jwtx.Claims{FrontendUserID: "u2"}, "/users/u1/"))
	require.Equal(t, http.StatusUnauthorized, serve(nil, "/users/u1/"))
}
