package xminds

import (
	"context"
	"net/http"

	"github.com/aussiebroadwan/xminds/pkg/jwtx"
)

const refreshFlightKey = "login-refresh-token"

// operation is a deferred authenticated call with its arguments already bound.
// invoke runs it at most twice.
type operation func(ctx context.Context) error

// invoke runs op with automatic token renewal.
//
// Without a bearer token the client logs in first and then runs op once. With
// a token, op runs once; only if it fails with KindTokenExpired does the client
// log in again and run op a second and final time. Login failures and every
// other error are returned unchanged.
func (c *Client) invoke(ctx context.Context, op operation) error {
	log := c.log(ctx)

	if c.creds.bearer() == "" {
		log.Debug("xminds: no bearer token, logging in before first call")
		if err := c.autoRefresh(ctx); err != nil {
			return err
		}
		return op(ctx)
	}

	err := op(ctx)
	if !IsKind(err, KindTokenExpired) {
		return err
	}

	log.Debug("xminds: bearer token expired, refreshing")
	if err := c.autoRefresh(ctx); err != nil {
		return err
	}
	return op(ctx)
}

// autoRefresh performs the refresh login on behalf of invoke. Concurrent
// callers share a single in-flight login; each one stops waiting when its own
// context ends.
func (c *Client) autoRefresh(ctx context.Context) error {
	ch := c.refreshGroup.DoChan(refreshFlightKey, func() (any, error) {
		return c.LoginRefreshToken(context.WithoutCancel(ctx), "")
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			c.log(ctx).Debug("xminds: token refresh failed", "err", res.Err)
			return res.Err
		}
		log := c.log(ctx).With("shared", res.Shared)
		if exp, ok := jwtx.PeekExpiry(c.creds.bearer()); ok {
			log = log.With("expires_at", exp)
		}
		log.Debug("xminds: token refreshed")
		return nil
	case <-ctx.Done():
		return &ConnectionError{Method: http.MethodPost, URL: c.url(loginRefreshTokenPath), Err: ctx.Err()}
	}
}
