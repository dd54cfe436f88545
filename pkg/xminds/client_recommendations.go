package xminds

import (
	"context"
	"net/http"
	"net/url"
)

func (c *Client) recommend(ctx context.Context, method, path string, body any) (*RecommendationsResponse, error) {
	var resp RecommendationsResponse
	err := c.invoke(ctx, func(ctx context.Context) error {
		return c.send(ctx, method, path, body, 0, &resp)
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetRecommendationsItemToItems returns items similar to itemID.
func (c *Client) GetRecommendationsItemToItems(
	ctx context.Context,
	itemID string,
	opts RecommendationOptions,
) (*RecommendationsResponse, error) {
	opts.ExcludeRatedItems = false
	path := "/recommendation/items/" + url.PathEscape(itemID) + "/items/" + opts.query().Encode()
	return c.recommend(ctx, http.MethodGet, path, nil)
}

// GetRecommendationsUserToItems returns items recommended for a known user.
func (c *Client) GetRecommendationsUserToItems(
	ctx context.Context,
	userID string,
	opts RecommendationOptions,
) (*RecommendationsResponse, error) {
	path := "/recommendation/users/" + url.PathEscape(userID) + "/items/" + opts.query().Encode()
	return c.recommend(ctx, http.MethodGet, path, nil)
}

// GetRecommendationsSessionToItems returns items recommended for an anonymous
// session described by its ratings and properties.
func (c *Client) GetRecommendationsSessionToItems(
	ctx context.Context,
	opts SessionOptions,
) (*RecommendationsResponse, error) {
	return c.recommend(ctx, http.MethodPost, "/recommendation/sessions/items/", opts)
}

// GetPrecomputedRecommendationsItemToItems returns precomputed similar items.
func (c *Client) GetPrecomputedRecommendationsItemToItems(
	ctx context.Context,
	itemID string,
	opts PrecomputedOptions,
) (*RecommendationsResponse, error) {
	path := "/recommendation/precomputed/items/" + url.PathEscape(itemID) + "/items/" + opts.query().Encode()
	return c.recommend(ctx, http.MethodGet, path, nil)
}

// GetPrecomputedRecommendationsUserToItems returns precomputed recommendations
// for a user.
func (c *Client) GetPrecomputedRecommendationsUserToItems(
	ctx context.Context,
	userID string,
	opts PrecomputedOptions,
) (*RecommendationsResponse, error) {
	path := "/recommendation/precomputed/users/" + url.PathEscape(userID) + "/items/" + opts.query().Encode()
	return c.recommend(ctx, http.MethodGet, path, nil)
}
