package http

import (
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/xminds/internal/sandbox/domain"
	"github.com/aussiebroadwan/xminds/internal/sandbox/service"
	"github.com/aussiebroadwan/xminds/pkg/httpx"
	"github.com/aussiebroadwan/xminds/pkg/xminds"
)

// RatingsHandler serves explicit ratings and implicit interactions.
type RatingsHandler struct {
	RatingService *service.RatingService
}

// HandlePut godoc
//
//	@Summary		Create or update a rating
//	@Description	Ratings range from 1 to 10. A missing timestamp uses the server time.
//	@Tags			Ratings
//	@Accept			json
//	@Security		BearerAuth
//	@Param			user_id	path	string			true	"User id"
//	@Param			item_id	path	string			true	"Item id"
//	@Param			body	body	ratingRequest	true	"rating, timestamp"
//	@Success		204
//	@Failure		400	{object}	xminds.ErrorPayload	"WrongData"
//	@Failure		401	{object}	xminds.ErrorPayload	"AuthError or JwtTokenExpired"
//	@Failure		403	{object}	xminds.ErrorPayload	"ForbiddenError"
//	@Router			/users/{user_id}/ratings/{item_id}/ [put].
func (h *RatingsHandler) HandlePut(w http.ResponseWriter, r *http.Request) {
	var req ratingRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	err := h.RatingService.Upsert(r.Context(), databaseID(r),
		r.PathValue("user_id"), r.PathValue("item_id"), req.Rating, req.Timestamp)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleDelete godoc
//
//	@Summary	Delete a rating
//	@Tags		Ratings
//	@Security	BearerAuth
//	@Param		user_id	path	string	true	"User id"
//	@Param		item_id	path	string	true	"Item id"
//	@Success	204
//	@Failure	401	{object}	xminds.ErrorPayload	"AuthError or JwtTokenExpired"
//	@Failure	404	{object}	xminds.ErrorPayload	"NotFoundError"
//	@Router		/users/{user_id}/ratings/{item_id}/ [delete].
func (h *RatingsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	err := h.RatingService.Delete(r.Context(), databaseID(r), r.PathValue("user_id"), r.PathValue("item_id"))
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleList godoc
//
//	@Summary	List a user's ratings
//	@Tags		Ratings
//	@Produce	json
//	@Security	BearerAuth
//	@Param		user_id	path		string				true	"User id"
//	@Param		page	query		int					false	"Page, from 1"	default(1)
//	@Param		amt		query		int					false	"Page size"		default(64)	maximum(64)
//	@Success	200		{object}	xminds.RatingsPage	"has_next, next_page, ratings"
//	@Failure	400		{object}	xminds.ErrorPayload	"WrongData"
//	@Failure	401		{object}	xminds.ErrorPayload	"AuthError or JwtTokenExpired"
//	@Router		/users/{user_id}/ratings/ [get].
func (h *RatingsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt(r, "page")
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	amt, err := queryInt(r, "amt")
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	p, err := h.RatingService.List(r.Context(), databaseID(r), r.PathValue("user_id"), page, amt)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, ratingsPage(p))
}

// HandleBulkPut godoc
//
//	@Summary		Create or update many ratings of a user
//	@Description	The batch is validated as a whole; nothing is written if any rating is invalid.
//	@Tags			Ratings
//	@Accept			json
//	@Security		BearerAuth
//	@Param			user_id	path	string				true	"User id"
//	@Param			body	body	ratingsBulkRequest	true	"ratings"
//	@Success		204
//	@Failure		400	{object}	xminds.ErrorPayload	"WrongData"
//	@Failure		401	{object}	xminds.ErrorPayload	"AuthError or JwtTokenExpired"
//	@Failure		429	{object}	xminds.ErrorPayload	"TooManyRequests"
//	@Router			/users/{user_id}/ratings/ [put].
func (h *RatingsHandler) HandleBulkPut(w http.ResponseWriter, r *http.Request) {
	var req ratingsBulkRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	err := h.RatingService.BulkUpsert(r.Context(), databaseID(r), r.PathValue("user_id"), ratingsToDomain(req.Ratings))
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleDeleteAll godoc
//
//	@Summary	Delete every rating of a user
//	@Tags		Ratings
//	@Security	BearerAuth
//	@Param		user_id	path	string	true	"User id"
//	@Success	204
//	@Failure	401	{object}	xminds.ErrorPayload	"AuthError or JwtTokenExpired"
//	@Router		/users/{user_id}/ratings/ [delete].
func (h *RatingsHandler) HandleDeleteAll(w http.ResponseWriter, r *http.Request) {
	if err := h.RatingService.DeleteAll(r.Context(), databaseID(r), r.PathValue("user_id")); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleInteraction godoc
//
//	@Summary		Record an interaction
//	@Description	Also raises the user's rating of the item to the rating the interaction type implies.
//	@Tags			Interactions
//	@Accept			json
//	@Security		BearerAuth
//	@Param			user_id	path	string				true	"User id"
//	@Param			item_id	path	string				true	"Item id"
//	@Param			body	body	interactionRequest	true	"interaction_type, timestamp"
//	@Success		204
//	@Failure		400	{object}	xminds.ErrorPayload	"WrongData"
//	@Failure		401	{object}	xminds.ErrorPayload	"AuthError or JwtTokenExpired"
//	@Router			/users/{user_id}/interactions/{item_id}/ [post].
func (h *RatingsHandler) HandleInteraction(w http.ResponseWriter, r *http.Request) {
	var req interactionRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	in := domain.Interaction{
		ItemID:    r.PathValue("item_id"),
		Type:      req.InteractionType,
		Timestamp: fromUnixSeconds(req.Timestamp),
	}
	if err := h.RatingService.CreateInteraction(r.Context(), databaseID(r), r.PathValue("user_id"), in); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleInteractionsBulk godoc
//
//	@Summary	Record many interactions of a user
//	@Tags		Interactions
//	@Accept		json
//	@Security	BearerAuth
//	@Param		user_id	path	string					true	"User id"
//	@Param		body	body	interactionsBulkRequest	true	"interactions"
//	@Success	204
//	@Failure	400	{object}	xminds.ErrorPayload	"WrongData"
//	@Failure	401	{object}	xminds.ErrorPayload	"AuthError or JwtTokenExpired"
//	@Failure	429	{object}	xminds.ErrorPayload	"TooManyRequests"
//	@Router		/users/{user_id}/interactions-bulk/ [post].
func (h *RatingsHandler) HandleInteractionsBulk(w http.ResponseWriter, r *http.Request) {
	var req interactionsBulkRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	err := h.RatingService.CreateInteractions(r.Context(), databaseID(r), r.PathValue("user_id"),
		interactionsToDomain(req.Interactions))
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// queryInt reads an optional integer query parameter; absent is zero.
func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, xminds.NewError(
			xminds.KindWrongData,
			"{key} must be an integer",
			xminds.ErrorData{"key": name},
		)
	}
	return n, nil
}
