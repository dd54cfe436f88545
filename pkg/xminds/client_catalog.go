package xminds

import (
	"context"
	"net/http"
	"net/url"
)

// GetUser returns the properties of one user.
func (c *Client) GetUser(ctx context.Context, userID string) (*UserResponse, error) {
	var resp UserResponse
	err := c.invoke(ctx, func(ctx context.Context) error {
		return c.send(ctx, http.MethodGet, "/users/"+url.PathEscape(userID)+"/", nil, 0, &resp)
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListUsers returns the properties of several users in one call.
func (c *Client) ListUsers(ctx context.Context, usersID []string) (*UsersResponse, error) {
	var resp UsersResponse
	req := listUsersRequest{UsersID: usersID}
	err := c.invoke(ctx, func(ctx context.Context) error {
		return c.send(ctx, http.MethodPost, "/users-bulk/list/", req, 0, &resp)
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetItem returns the properties of one item.
func (c *Client) GetItem(ctx context.Context, itemID string) (*ItemResponse, error) {
	var resp ItemResponse
	err := c.invoke(ctx, func(ctx context.Context) error {
		return c.send(ctx, http.MethodGet, "/items/"+url.PathEscape(itemID)+"/", nil, 0, &resp)
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListItems returns the properties of several items in one call.
func (c *Client) ListItems(ctx context.Context, itemsID []string) (*ItemsResponse, error) {
	var resp ItemsResponse
	req := listItemsRequest{ItemsID: itemsID}
	err := c.invoke(ctx, func(ctx context.Context) error {
		return c.send(ctx, http.MethodPost, "/items-bulk/list/", req, 0, &resp)
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateOrUpdateUser stores the properties of one user, replacing any
// previous ones.
func (c *Client) CreateOrUpdateUser(ctx context.Context, userID string, props Properties) error {
	req := userRequest{User: props}
	return c.invoke(ctx, func(ctx context.Context) error {
		return c.send(ctx, http.MethodPut, "/users/"+url.PathEscape(userID)+"/", req, 0, nil)
	})
}

// CreateOrUpdateItem stores the properties of one item, replacing any
// previous ones.
func (c *Client) CreateOrUpdateItem(ctx context.Context, itemID string, props Properties) error {
	req := itemRequest{Item: props}
	return c.invoke(ctx, func(ctx context.Context) error {
		return c.send(ctx, http.MethodPut, "/items/"+url.PathEscape(itemID)+"/", req, 0, nil)
	})
}
