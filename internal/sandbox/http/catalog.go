package http

import (
	"net/http"

	"github.com/aussiebroadwan/xminds/internal/sandbox/domain"
	"github.com/aussiebroadwan/xminds/internal/sandbox/service"
	"github.com/aussiebroadwan/xminds/pkg/httpx"
	"github.com/aussiebroadwan/xminds/pkg/xminds"
)

// databaseID is the database the caller's access token is bound to.
func databaseID(r *http.Request) string {
	if c, ok := httpx.ClaimsFromContext(r.Context()); ok {
		return c.DatabaseID
	}
	return ""
}

// CatalogHandler serves users and items.
type CatalogHandler struct {
	CatalogService *service.CatalogService
}

// HandleGetUser godoc
//
//	@Summary	Get a user
//	@Tags		Users
//	@Produce	json
//	@Security	BearerAuth
//	@Param		user_id	path		string				true	"User id"
//	@Success	200		{object}	xminds.UserResponse	"user properties, including user_id"
//	@Failure	401		{object}	xminds.ErrorPayload	"AuthError or JwtTokenExpired"
//	@Failure	404		{object}	xminds.ErrorPayload	"NotFoundError"
//	@Router		/users/{user_id}/ [get].
func (h *CatalogHandler) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	u, err := h.CatalogService.GetUser(r.Context(), databaseID(r), r.PathValue("user_id"))
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, xminds.UserResponse{User: withID("user_id", u.ID, u.Properties)})
}

// HandlePutUser godoc
//
//	@Summary	Create or replace a user
//	@Tags		Users
//	@Accept		json
//	@Security	BearerAuth
//	@Param		user_id	path	string		true	"User id"
//	@Param		body	body	userRequest	true	"user properties"
//	@Success	204
//	@Failure	400	{object}	xminds.ErrorPayload	"WrongData"
//	@Failure	401	{object}	xminds.ErrorPayload	"AuthError or JwtTokenExpired"
//	@Router		/users/{user_id}/ [put].
func (h *CatalogHandler) HandlePutUser(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	u := domain.User{ID: r.PathValue("user_id"), Properties: withoutID("user_id", req.User)}
	if err := h.CatalogService.PutUser(r.Context(), databaseID(r), u); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleListUsers godoc
//
//	@Summary		List users
//	@Description	Returns the known users among users_id, in request order. Unknown ids are skipped.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			body	body		listUsersRequest		true	"users_id"
//	@Success		200		{object}	xminds.UsersResponse	"users"
//	@Failure		400		{object}	xminds.ErrorPayload		"WrongData"
//	@Failure		401		{object}	xminds.ErrorPayload		"AuthError or JwtTokenExpired"
//	@Router			/users-bulk/list/ [post].
func (h *CatalogHandler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	var req listUsersRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	users, err := h.CatalogService.ListUsers(r.Context(), databaseID(r), req.UsersID)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	resp := xminds.UsersResponse{Users: make([]xminds.Properties, 0, len(users))}
	for _, u := range users {
		resp.Users = append(resp.Users, withID("user_id", u.ID, u.Properties))
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleGetItem godoc
//
//	@Summary	Get an item
//	@Tags		Items
//	@Produce	json
//	@Security	BearerAuth
//	@Param		item_id	path		string				true	"Item id"
//	@Success	200		{object}	xminds.ItemResponse	"item properties, including item_id"
//	@Failure	401		{object}	xminds.ErrorPayload	"AuthError or JwtTokenExpired"
//	@Failure	404		{object}	xminds.ErrorPayload	"NotFoundError"
//	@Router		/items/{item_id}/ [get].
func (h *CatalogHandler) HandleGetItem(w http.ResponseWriter, r *http.Request) {
	it, err := h.CatalogService.GetItem(r.Context(), databaseID(r), r.PathValue("item_id"))
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, xminds.ItemResponse{Item: withID("item_id", it.ID, it.Properties)})
}

// HandlePutItem godoc
//
//	@Summary	Create or replace an item
//	@Tags		Items
//	@Accept		json
//	@Security	BearerAuth
//	@Param		item_id	path	string		true	"Item id"
//	@Param		body	body	itemRequest	true	"item properties"
//	@Success	204
//	@Failure	400	{object}	xminds.ErrorPayload	"WrongData"
//	@Failure	401	{object}	xminds.ErrorPayload	"AuthError or JwtTokenExpired"
//	@Router		/items/{item_id}/ [put].
func (h *CatalogHandler) HandlePutItem(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	it := domain.Item{ID: r.PathValue("item_id"), Properties: withoutID("item_id", req.Item)}
	if err := h.CatalogService.PutItem(r.Context(), databaseID(r), it); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleListItems godoc
//
//	@Summary		List items
//	@Description	Returns the known items among items_id, in request order. Unknown ids are skipped.
//	@Tags			Items
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			body	body		listItemsRequest		true	"items_id"
//	@Success		200		{object}	xminds.ItemsResponse	"items"
//	@Failure		400		{object}	xminds.ErrorPayload		"WrongData"
//	@Failure		401		{object}	xminds.ErrorPayload		"AuthError or JwtTokenExpired"
//	@Router			/items-bulk/list/ [post].
func (h *CatalogHandler) HandleListItems(w http.ResponseWriter, r *http.Request) {
	var req listItemsRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	items, err := h.CatalogService.ListItems(r.Context(), databaseID(r), req.ItemsID)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	resp := xminds.ItemsResponse{Items: make([]xminds.Properties, 0, len(items))}
	for _, it := range items {
		resp.Items = append(resp.Items, withID("item_id", it.ID, it.Properties))
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}
