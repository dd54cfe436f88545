package http

import (
	"maps"
	"math"
	"time"

	"github.com/aussiebroadwan/xminds/internal/sandbox/domain"
	"github.com/aussiebroadwan/xminds/internal/sandbox/service"
	"github.com/aussiebroadwan/xminds/pkg/xminds"
)

// Wire representations shared with the SDK live in pkg/xminds. The request
// bodies below are the server's view of what the SDK sends.

type loginServiceRequest struct {
	Name           string `json:"name"`
	Password       string `json:"password"`
	DatabaseID     string `json:"db_id"`
	FrontendUserID string `json:"frontend_user_id"`
}

type loginRefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type userRequest struct {
	User xminds.Properties `json:"user"`
}

type itemRequest struct {
	Item xminds.Properties `json:"item"`
}

type listUsersRequest struct {
	UsersID []string `json:"users_id"`
}

type listItemsRequest struct {
	ItemsID []string `json:"items_id"`
}

type ratingRequest struct {
	Rating    float64 `json:"rating"`
	Timestamp float64 `json:"timestamp"`
}

type ratingsBulkRequest struct {
	Ratings []xminds.Rating `json:"ratings"`
}

type interactionRequest struct {
	InteractionType string  `json:"interaction_type"`
	Timestamp       float64 `json:"timestamp"`
}

type interactionsBulkRequest struct {
	Interactions []xminds.Interaction `json:"interactions"`
}

func loginResponse(p *domain.TokenPair) xminds.LoginResponse {
	return xminds.LoginResponse{
		Token:        p.Token,
		RefreshToken: p.RefreshToken,
		Database: &xminds.Database{
			ID:          p.Database.ID,
			Name:        p.Database.Name,
			Description: p.Database.Description,
			ItemIDType:  p.Database.ItemIDType,
			UserIDType:  p.Database.UserIDType,
		},
	}
}

// withID returns a copy of props with the entity id under idKey.
func withID(idKey, id string, props domain.Properties) xminds.Properties {
	out := make(xminds.Properties, len(props)+1)
	maps.Copy(out, props)
	out[idKey] = id
	return out
}

// withoutID drops the id key a client may echo back from a GET.
func withoutID(idKey string, props xminds.Properties) domain.Properties {
	out := make(domain.Properties, len(props))
	maps.Copy(out, props)
	delete(out, idKey)
	return out
}

func unixSeconds(t time.Time) float64 {
	if t.IsZero() {
		return 0
	}
	return float64(t.UnixNano()) / float64(time.Second)
}

// fromUnixSeconds maps zero to the zero time so the service fills in "now".
func fromUnixSeconds(ts float64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	sec, frac := math.Modf(ts)
	return time.Unix(int64(sec), int64(frac*float64(time.Second)))
}

func ratingsToDomain(in []xminds.Rating) []domain.Rating {
	out := make([]domain.Rating, 0, len(in))
	for _, r := range in {
		out = append(out, domain.Rating{
			ItemID:    r.ItemID,
			Value:     r.Rating,
			Timestamp: fromUnixSeconds(r.Timestamp),
		})
	}
	return out
}

func ratingsPage(p service.RatingsPage) xminds.RatingsPage {
	out := xminds.RatingsPage{
		HasNext:  p.HasNext,
		NextPage: p.NextPage,
		Ratings:  make([]xminds.Rating, 0, len(p.Ratings)),
	}
	for _, r := range p.Ratings {
		out.Ratings = append(out.Ratings, xminds.Rating{
			ItemID:    r.ItemID,
			Rating:    r.Value,
			Timestamp: unixSeconds(r.Timestamp),
		})
	}
	return out
}

func interactionsToDomain(in []xminds.Interaction) []domain.Interaction {
	out := make([]domain.Interaction, 0, len(in))
	for _, it := range in {
		out = append(out, domain.Interaction{
			ItemID:    it.ItemID,
			Type:      it.InteractionType,
			Timestamp: fromUnixSeconds(it.Timestamp),
		})
	}
	return out
}

func filtersToService(in []xminds.Filter) []service.Filter {
	out := make([]service.Filter, 0, len(in))
	for _, f := range in {
		out = append(out, service.Filter{Property: f.PropertyName, Op: f.Op, Value: f.Value})
	}
	return out
}

func recommendationsResponse(rec service.Recommendations) xminds.RecommendationsResponse {
	ids := rec.ItemsID
	if ids == nil {
		ids = []string{}
	}
	return xminds.RecommendationsResponse{ItemsID: ids, NextCursor: rec.NextCursor}
}
