package service

import (
	"errors"
	"fmt"

	"github.com/aussiebroadwan/xminds/internal/sandbox/store"
	"github.com/aussiebroadwan/xminds/pkg/xminds"
)

// Client-facing failures are *xminds.Error values so handlers can write them
// as they are. Anything else reaching a handler is reported as ServerError.

func errNotFound(what, key string) error {
	return xminds.NewError(xminds.KindNotFound, what+" {key} not found", xminds.ErrorData{"key": key})
}

func errWrongData(format string, args ...any) error {
	return xminds.NewError(xminds.KindWrongData, fmt.Sprintf(format, args...), nil)
}

var (
	errInvalidCredentials = xminds.NewError(xminds.KindAuth, "Invalid credentials", nil)
	errInvalidRefresh     = xminds.NewError(xminds.KindAuth, "Invalid refresh token", nil)
	errRefreshExpired     = xminds.NewError(xminds.KindRefreshTokenExpired, "Refresh token has expired", nil)
)

// mapStoreNotFound replaces store.ErrNotFound with the API error for the
// missing resource and passes every other error through.
func mapStoreNotFound(err error, what, key string) error {
	if errors.Is(err, store.ErrNotFound) {
		return errNotFound(what, key)
	}
	return err
}

func requireID(name, id string) error {
	if id == "" {
		return errWrongData("%s is required", name)
	}
	return nil
}

func isNotFound(err error) bool { return errors.Is(err, store.ErrNotFound) }
