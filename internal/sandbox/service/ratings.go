package service

import (
	"context"
	"math"
	"time"

	"github.com/aussiebroadwan/xminds/internal/sandbox/domain"
	"github.com/aussiebroadwan/xminds/internal/sandbox/store"
	"github.com/aussiebroadwan/xminds/pkg/idx"
)

const (
	DefaultRatingsPageAmt = 64
	MaxRatingsPageAmt     = 64
	MaxBulkRatings        = 10_000
)

// RatingsPage is one page of a user's ratings.
type RatingsPage struct {
	Ratings  []domain.Rating
	HasNext  bool
	NextPage int
}

// RatingService manages explicit ratings and implicit interactions.
type RatingService struct {
	Store store.Store

	// InteractionRatings maps interaction types to the rating they imply.
	// Types not listed imply DefaultInteractionRating.
	InteractionRatings map[string]float64

	Now func() time.Time
}

// DefaultInteractionRating is implied by interaction types without an entry
// in InteractionRatings.
const DefaultInteractionRating = 6

// DefaultInteractionRatings are the implied ratings used when none are configured.
var DefaultInteractionRatings = map[string]float64{
	"productView": 6,
	"click":       6,
	"addToCart":   8,
	"like":        9,
	"purchase":    10,
}

func (s *RatingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// timestampOrNow converts unix seconds, treating zero as "now".
func (s *RatingService) timestampOrNow(ts float64) time.Time {
	if ts == 0 {
		return s.now()
	}
	sec, frac := math.Modf(ts)
	return time.Unix(int64(sec), int64(frac*float64(time.Second)))
}

func validateRating(itemID string, value, ts float64) error {
	if err := requireID("item id", itemID); err != nil {
		return err
	}
	if math.IsNaN(value) || value < domain.MinRating || value > domain.MaxRating {
		return errWrongData("rating must be between %d and %d", domain.MinRating, domain.MaxRating)
	}
	if ts < 0 {
		return errWrongData("timestamp must not be negative")
	}
	return nil
}

// Upsert creates or replaces the rating of userID for itemID. A zero
// timestamp uses the current time.
func (s *RatingService) Upsert(ctx context.Context, databaseID, userID, itemID string, value, ts float64) error {
	if err := requireID("user id", userID); err != nil {
		return err
	}
	if err := validateRating(itemID, value, ts); err != nil {
		return err
	}
	return s.Store.Ratings().UpsertRating(ctx, databaseID, domain.Rating{
		UserID:    userID,
		ItemID:    itemID,
		Value:     value,
		Timestamp: s.timestampOrNow(ts),
	})
}

func (s *RatingService) Delete(ctx context.Context, databaseID, userID, itemID string) error {
	err := s.Store.Ratings().DeleteRating(ctx, databaseID, userID, itemID)
	return mapStoreNotFound(err, "Rating", userID+"/"+itemID)
}

// List returns page (1-based) of userID's ratings, newest first. Zero page
// or amt use the defaults.
func (s *RatingService) List(ctx context.Context, databaseID, userID string, page, amt int) (RatingsPage, error) {
	if page == 0 {
		page = 1
	}
	if amt == 0 {
		amt = DefaultRatingsPageAmt
	}
	if page < 1 {
		return RatingsPage{}, errWrongData("page must be at least 1")
	}
	if amt < 1 || amt > MaxRatingsPageAmt {
		return RatingsPage{}, errWrongData("amt must be between 1 and %d", MaxRatingsPageAmt)
	}

	total, err := s.Store.Ratings().CountUserRatings(ctx, databaseID, userID)
	if err != nil {
		return RatingsPage{}, err
	}
	offset := (page - 1) * amt
	ratings, err := s.Store.Ratings().ListUserRatings(ctx, databaseID, userID, amt, offset)
	if err != nil {
		return RatingsPage{}, err
	}

	out := RatingsPage{Ratings: ratings, HasNext: offset+len(ratings) < total}
	if out.HasNext {
		out.NextPage = page + 1
	}
	return out, nil
}

// BulkUpsert validates every rating before writing any, then writes them in
// one transaction.
func (s *RatingService) BulkUpsert(ctx context.Context, databaseID, userID string, ratings []domain.Rating) error {
	if err := requireID("user id", userID); err != nil {
		return err
	}
	if len(ratings) > MaxBulkRatings {
		return errWrongData("at most %d ratings per request", MaxBulkRatings)
	}
	for _, r := range ratings {
		if err := validateRating(r.ItemID, r.Value, 0); err != nil {
			return err
		}
	}

	now := s.now()
	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		for _, r := range ratings {
			r.UserID = userID
			if r.Timestamp.IsZero() {
				r.Timestamp = now
			}
			if err := tx.Ratings().UpsertRating(ctx, databaseID, r); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *RatingService) DeleteAll(ctx context.Context, databaseID, userID string) error {
	return s.Store.Ratings().DeleteUserRatings(ctx, databaseID, userID)
}

// CreateInteraction records one interaction.
func (s *RatingService) CreateInteraction(
	ctx context.Context,
	databaseID, userID string,
	in domain.Interaction,
) error {
	return s.CreateInteractions(ctx, databaseID, userID, []domain.Interaction{in})
}

// CreateInteractions records interactions in one transaction. Each one also
// raises the user's rating of the item to the rating its type implies; an
// existing higher rating is kept.
func (s *RatingService) CreateInteractions(
	ctx context.Context,
	databaseID, userID string,
	ins []domain.Interaction,
) error {
	if err := requireID("user id", userID); err != nil {
		return err
	}
	if len(ins) > MaxBulkRatings {
		return errWrongData("at most %d interactions per request", MaxBulkRatings)
	}
	for _, in := range ins {
		if err := requireID("item id", in.ItemID); err != nil {
			return err
		}
		if in.Type == "" {
			return errWrongData("interaction_type is required")
		}
	}

	now := s.now()
	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		for _, in := range ins {
			in.ID = idx.New().String()
			in.UserID = userID
			if in.Timestamp.IsZero() {
				in.Timestamp = now
			}
			if err := tx.Interactions().CreateInteraction(ctx, databaseID, in); err != nil {
				return err
			}
			if err := s.inferRating(ctx, tx, databaseID, in); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *RatingService) inferRating(ctx context.Context, tx store.Tx, databaseID string, in domain.Interaction) error {
	weights := s.InteractionRatings
	if weights == nil {
		weights = DefaultInteractionRatings
	}
	implied, ok := weights[in.Type]
	if !ok {
		implied = DefaultInteractionRating
	}

	existing, err := tx.Ratings().GetRating(ctx, databaseID, in.UserID, in.ItemID)
	switch {
	case err == nil && existing.Value >= implied:
		return nil
	case err != nil && !isNotFound(err):
		return err
	}

	return tx.Ratings().UpsertRating(ctx, databaseID, domain.Rating{
		UserID:    in.UserID,
		ItemID:    in.ItemID,
		Value:     implied,
		Timestamp: in.Timestamp,
	})
}
