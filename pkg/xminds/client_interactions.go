package xminds

import (
	"context"
	"net/http"
	"net/url"
)

// CreateInteraction records one interaction of a user with an item, such as a
// product view or an add-to-cart. A zero timestamp lets the server use the
// current time.
func (c *Client) CreateInteraction(
	ctx context.Context,
	userID, itemID, interactionType string,
	timestamp float64,
) error {
	path := "/users/" + url.PathEscape(userID) + "/interactions/" + url.PathEscape(itemID) + "/"
	req := interactionRequest{InteractionType: interactionType, Timestamp: timestamp}
	return c.invoke(ctx, func(ctx context.Context) error {
		return c.send(ctx, http.MethodPost, path, req, 0, nil)
	})
}

// CreateOrUpdateUserInteractionsBulk records many interactions of one user.
func (c *Client) CreateOrUpdateUserInteractionsBulk(ctx context.Context, userID string, interactions []Interaction) error {
	path := "/users/" + url.PathEscape(userID) + "/interactions-bulk/"
	req := interactionsBulkRequest{Interactions: interactions}
	return c.invoke(ctx, func(ctx context.Context) error {
		return c.send(ctx, http.MethodPost, path, req, 0, nil)
	})
}
