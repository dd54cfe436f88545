package xminds

import (
	"context"
	"net/http"
	"net/url"
)

const (
	defaultRatingsPage = 1
	defaultRatingsAmt  = 64
)

func userRatingsPath(userID string) string {
	return "/users/" + url.PathEscape(userID) + "/ratings/"
}

func userRatingPath(userID, itemID string) string {
	return userRatingsPath(userID) + url.PathEscape(itemID) + "/"
}

// CreateOrUpdateRating sets a user's rating of an item. A zero timestamp lets
// the server use the current time.
func (c *Client) CreateOrUpdateRating(ctx context.Context, userID, itemID string, rating, timestamp float64) error {
	req := ratingRequest{Rating: rating, Timestamp: timestamp}
	return c.invoke(ctx, func(ctx context.Context) error {
		return c.send(ctx, http.MethodPut, userRatingPath(userID, itemID), req, 0, nil)
	})
}

// DeleteRating removes a user's rating of an item.
func (c *Client) DeleteRating(ctx context.Context, userID, itemID string) error {
	return c.invoke(ctx, func(ctx context.Context) error {
		return c.send(ctx, http.MethodDelete, userRatingPath(userID, itemID), nil, 0, nil)
	})
}

// ListUserRatings returns one page of a user's ratings. Non-positive page and
// amt default to 1 and 64.
func (c *Client) ListUserRatings(ctx context.Context, userID string, page, amt int) (*RatingsPage, error) {
	if page <= 0 {
		page = defaultRatingsPage
	}
	if amt <= 0 {
		amt = defaultRatingsAmt
	}

	q := &Query{}
	q.Add("page", page)
	q.Add("amt", amt)
	path := userRatingsPath(userID) + q.Encode()

	var resp RatingsPage
	err := c.invoke(ctx, func(ctx context.Context) error {
		return c.send(ctx, http.MethodGet, path, nil, 0, &resp)
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateOrUpdateUserRatingsBulk sets many ratings of one user in one call.
// The request is bounded by BulkTimeout instead of the client default.
func (c *Client) CreateOrUpdateUserRatingsBulk(ctx context.Context, userID string, ratings []Rating) error {
	req := ratingsBulkRequest{Ratings: ratings}
	return c.invoke(ctx, func(ctx context.Context) error {
		return c.send(ctx, http.MethodPut, userRatingsPath(userID), req, BulkTimeout, nil)
	})
}

// DeleteUserRatings removes every rating of a user.
func (c *Client) DeleteUserRatings(ctx context.Context, userID string) error {
	return c.invoke(ctx, func(ctx context.Context) error {
		return c.send(ctx, http.MethodDelete, userRatingsPath(userID), nil, 0, nil)
	})
}
