package http

import (
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/xminds/internal/sandbox/domain"
	"github.com/aussiebroadwan/xminds/internal/sandbox/service"
	"github.com/aussiebroadwan/xminds/pkg/httpx"
	"github.com/aussiebroadwan/xminds/pkg/xminds"
)

// RecommendationsHandler serves the live and precomputed recommendations.
type RecommendationsHandler struct {
	RecommendationService *service.RecommendationService
}

// HandleItemToItems godoc
//
//	@Summary		Items similar to an item
//	@Description	Ranks items by how often they were rated highly together with the given item.
//	@Tags			Recommendations
//	@Produce		json
//	@Security		BearerAuth
//	@Param			item_id	path		string							true	"Item id"
//	@Param			amt		query		int								false	"Number of items"	default(10)	maximum(200)
//	@Param			cursor	query		string							false	"Pagination cursor"
//	@Param			filters	query		[]string						false	"Filters as name:op[:value]"	collectionFormat(multi)
//	@Success		200		{object}	xminds.RecommendationsResponse	"items_id, next_cursor"
//	@Failure		400		{object}	xminds.ErrorPayload				"WrongData"
//	@Failure		401		{object}	xminds.ErrorPayload				"AuthError or JwtTokenExpired"
//	@Failure		404		{object}	xminds.ErrorPayload				"NotFoundError"
//	@Router			/recommendation/items/{item_id}/items/ [get].
func (h *RecommendationsHandler) HandleItemToItems(w http.ResponseWriter, r *http.Request) {
	q, err := parseRecommendationQuery(r)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	rec, err := h.RecommendationService.ItemToItems(r.Context(), databaseID(r), r.PathValue("item_id"), q)
	writeRecommendations(w, r, rec, err)
}

// HandleUserToItems godoc
//
//	@Summary		Items for a user
//	@Description	Ranks items by co-occurrence with the user's ratings, then by popularity.
//	@Tags			Recommendations
//	@Produce		json
//	@Security		BearerAuth
//	@Param			user_id				path		string							true	"User id"
//	@Param			amt					query		int								false	"Number of items"	default(10)	maximum(200)
//	@Param			cursor				query		string							false	"Pagination cursor"
//	@Param			filters				query		[]string						false	"Filters as name:op[:value]"	collectionFormat(multi)
//	@Param			exclude_rated_items	query		bool							false	"Leave out items the user rated"
//	@Success		200					{object}	xminds.RecommendationsResponse	"items_id, next_cursor"
//	@Failure		400					{object}	xminds.ErrorPayload				"WrongData"
//	@Failure		401					{object}	xminds.ErrorPayload				"AuthError or JwtTokenExpired"
//	@Failure		403					{object}	xminds.ErrorPayload				"ForbiddenError"
//	@Router			/recommendation/users/{user_id}/items/ [get].
func (h *RecommendationsHandler) HandleUserToItems(w http.ResponseWriter, r *http.Request) {
	q, err := parseRecommendationQuery(r)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	rec, err := h.RecommendationService.UserToItems(r.Context(), databaseID(r), r.PathValue("user_id"), q)
	writeRecommendations(w, r, rec, err)
}

// HandleSessionToItems godoc
//
//	@Summary		Items for an anonymous session
//	@Description	Like user-to-items, with the profile taken from the ratings in the request body.
//	@Tags			Recommendations
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			body	body		xminds.SessionOptions			true	"amt, cursor, filters, ratings, user_properties, exclude_rated_items"
//	@Success		200		{object}	xminds.RecommendationsResponse	"items_id, next_cursor"
//	@Failure		400		{object}	xminds.ErrorPayload				"WrongData"
//	@Failure		401		{object}	xminds.ErrorPayload				"AuthError or JwtTokenExpired"
//	@Router			/recommendation/sessions/items/ [post].
func (h *RecommendationsHandler) HandleSessionToItems(w http.ResponseWriter, r *http.Request) {
	var req xminds.SessionOptions
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	q := service.SessionQuery{
		RecommendationQuery: service.RecommendationQuery{
			Amt:          req.Amt,
			Cursor:       req.Cursor,
			Filters:      filtersToService(req.Filters),
			ExcludeRated: req.ExcludeRatedItems,
		},
		Ratings:        ratingsToDomain(req.Ratings),
		UserProperties: domain.Properties(req.UserProperties),
	}
	rec, err := h.RecommendationService.SessionToItems(r.Context(), databaseID(r), q)
	writeRecommendations(w, r, rec, err)
}

// HandlePrecomputedItemToItems godoc
//
//	@Summary	Precomputed items similar to an item
//	@Tags		Recommendations
//	@Produce	json
//	@Security	BearerAuth
//	@Param		item_id	path		string							true	"Item id"
//	@Param		amt		query		int								false	"Number of items"	default(10)	maximum(200)
//	@Success	200		{object}	xminds.RecommendationsResponse	"items_id"
//	@Failure	401		{object}	xminds.ErrorPayload				"AuthError or JwtTokenExpired"
//	@Failure	404		{object}	xminds.ErrorPayload				"NotFoundError"
//	@Router		/recommendation/precomputed/items/{item_id}/items/ [get].
func (h *RecommendationsHandler) HandlePrecomputedItemToItems(w http.ResponseWriter, r *http.Request) {
	amt, err := queryInt(r, "amt")
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	rec, err := h.RecommendationService.PrecomputedItemToItems(r.Context(), databaseID(r), r.PathValue("item_id"), amt)
	writeRecommendations(w, r, rec, err)
}

// HandlePrecomputedUserToItems godoc
//
//	@Summary	Precomputed items for a user
//	@Tags		Recommendations
//	@Produce	json
//	@Security	BearerAuth
//	@Param		user_id	path		string							true	"User id"
//	@Param		amt		query		int								false	"Number of items"	default(10)	maximum(200)
//	@Success	200		{object}	xminds.RecommendationsResponse	"items_id"
//	@Failure	401		{object}	xminds.ErrorPayload				"AuthError or JwtTokenExpired"
//	@Failure	403		{object}	xminds.ErrorPayload				"ForbiddenError"
//	@Router		/recommendation/precomputed/users/{user_id}/items/ [get].
func (h *RecommendationsHandler) HandlePrecomputedUserToItems(w http.ResponseWriter, r *http.Request) {
	amt, err := queryInt(r, "amt")
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	rec, err := h.RecommendationService.PrecomputedUserToItems(r.Context(), databaseID(r), r.PathValue("user_id"), amt)
	writeRecommendations(w, r, rec, err)
}

func parseRecommendationQuery(r *http.Request) (service.RecommendationQuery, error) {
	values := r.URL.Query()

	amt, err := queryInt(r, "amt")
	if err != nil {
		return service.RecommendationQuery{}, err
	}
	q := service.RecommendationQuery{Amt: amt, Cursor: values.Get("cursor")}

	for _, raw := range values["filters"] {
		f, err := service.ParseFilter(raw)
		if err != nil {
			return service.RecommendationQuery{}, err
		}
		q.Filters = append(q.Filters, f)
	}

	if raw := values.Get("exclude_rated_items"); raw != "" {
		q.ExcludeRated, err = strconv.ParseBool(raw)
		if err != nil {
			return service.RecommendationQuery{}, xminds.NewError(
				xminds.KindWrongData,
				"{key} must be a boolean",
				xminds.ErrorData{"key": "exclude_rated_items"},
			)
		}
	}
	return q, nil
}

func writeRecommendations(w http.ResponseWriter, r *http.Request, rec service.Recommendations, err error) {
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, recommendationsResponse(rec))
}
