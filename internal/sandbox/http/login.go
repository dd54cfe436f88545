package http

import (
	"net/http"

	"github.com/aussiebroadwan/xminds/internal/sandbox/service"
	"github.com/aussiebroadwan/xminds/pkg/httpx"
)

// LoginHandler serves the two login endpoints.
type LoginHandler struct {
	AuthService *service.AuthService
}

// HandleService godoc
//
//	@Summary		Log in as a service account
//	@Description	Authenticates a service account and opens a new refresh token chain bound to one database, optionally on behalf of a frontend user.
//	@Tags			Login
//	@Accept			json
//	@Produce		json
//	@Param			body	body		loginServiceRequest		true	"name, password, db_id, frontend_user_id"
//	@Success		200		{object}	xminds.LoginResponse	"token, refresh_token, database"
//	@Failure		400		{object}	xminds.ErrorPayload		"WrongData"
//	@Failure		401		{object}	xminds.ErrorPayload		"AuthError"
//	@Failure		404		{object}	xminds.ErrorPayload		"NotFoundError"
//	@Failure		429		{object}	xminds.ErrorPayload		"TooManyRequests"
//	@Header			200		{string}	Cache-Control			"no-store"
//	@Router			/login/service/ [post].
func (h *LoginHandler) HandleService(w http.ResponseWriter, r *http.Request) {
	var req loginServiceRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	pair, err := h.AuthService.LoginService(r.Context(), req.Name, req.Password, req.DatabaseID, req.FrontendUserID)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, loginResponse(pair))
}

// HandleRefreshToken godoc
//
//	@Summary		Log in with a refresh token
//	@Description	Exchanges a refresh token for a new access token. The presented refresh token is revoked and replaced; presenting it again revokes the whole chain.
//	@Tags			Login
//	@Accept			json
//	@Produce		json
//	@Param			body	body		loginRefreshTokenRequest	true	"refresh_token"
//	@Success		200		{object}	xminds.LoginResponse		"token, refresh_token, database"
//	@Failure		400		{object}	xminds.ErrorPayload			"WrongData"
//	@Failure		401		{object}	xminds.ErrorPayload			"AuthError or RefreshTokenExpired"
//	@Failure		429		{object}	xminds.ErrorPayload			"TooManyRequests"
//	@Header			200		{string}	Cache-Control				"no-store"
//	@Router			/login/refresh-token/ [post].
func (h *LoginHandler) HandleRefreshToken(w http.ResponseWriter, r *http.Request) {
	var req loginRefreshTokenRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	pair, err := h.AuthService.LoginRefreshToken(r.Context(), req.RefreshToken)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, loginResponse(pair))
}
