package xminds

import (
	"context"
	"net/http"
)

const (
	loginRefreshTokenPath = "/login/refresh-token/"
	loginServicePath      = "/login/service/"
)

// LoginRefreshToken logs in with a refresh token and stores the returned
// token pair. An empty refreshToken uses the one the client currently holds.
//
// The API rotates refresh tokens: after a successful call the previous
// refresh token is no longer valid and RefreshToken returns the new one.
// This method is not wrapped by automatic renewal.
func (c *Client) LoginRefreshToken(ctx context.Context, refreshToken string) (*LoginResponse, error) {
	if refreshToken == "" {
		refreshToken = c.creds.refresh()
	}

	var resp LoginResponse
	req := loginRefreshTokenRequest{RefreshToken: refreshToken}
	if err := c.send(ctx, http.MethodPost, loginRefreshTokenPath, req, 0, &resp); err != nil {
		return nil, err
	}

	c.creds.set(resp.Token, resp.RefreshToken)
	return &resp, nil
}

// LoginService logs in as a service account bound to one database, optionally
// on behalf of a frontend user, and stores the returned token pair.
func (c *Client) LoginService(
	ctx context.Context,
	name, password, databaseID, frontendUserID string,
) (*LoginResponse, error) {
	var resp LoginResponse
	req := loginServiceRequest{
		Name:           name,
		Password:       password,
		DatabaseID:     databaseID,
		FrontendUserID: frontendUserID,
	}
	if err := c.send(ctx, http.MethodPost, loginServicePath, req, 0, &resp); err != nil {
		return nil, err
	}

	c.creds.set(resp.Token, resp.RefreshToken)
	return &resp, nil
}
