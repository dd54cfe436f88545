package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/xminds/internal/sandbox/domain"
	"github.com/aussiebroadwan/xminds/internal/sandbox/store"
	"github.com/aussiebroadwan/xminds/pkg/cryptox"
	"github.com/aussiebroadwan/xminds/pkg/idx"
	"github.com/aussiebroadwan/xminds/pkg/jwtx"
	"github.com/aussiebroadwan/xminds/pkg/slogx"
)

// DefaultRefreshTokenTTL is the lifetime of each refresh token in a chain.
const DefaultRefreshTokenTTL = 30 * 24 * time.Hour

// AuthService issues access tokens for service accounts and rotates their
// refresh tokens.
type AuthService struct {
	Store      store.Store
	Signer     jwtx.Signer
	Issuer     string
	Audience   []string
	Pepper     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration

	// Now overrides the clock in tests.
	Now func() time.Time
}

func (s *AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// LoginService authenticates a service account by name and password and
// opens a new refresh token chain bound to the database, optionally on
// behalf of a frontend user.
func (s *AuthService) LoginService(
	ctx context.Context,
	name, password, databaseID, frontendUserID string,
) (*domain.TokenPair, error) {
	l := slogx.FromContext(ctx)
	now := s.now()

	name = strings.TrimSpace(name)
	if name == "" || password == "" {
		return nil, errWrongData("name and password are required")
	}
	if err := requireID("db_id", databaseID); err != nil {
		return nil, err
	}

	acct, err := s.Store.Accounts().GetAccountByName(ctx, name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			l.Info("login for unknown account", slog.String("account", name))
			return nil, errInvalidCredentials
		}
		return nil, err
	}
	if err := cryptox.VerifyPassword(password, s.Pepper, acct.PasswordHash); err != nil {
		l.Info("login password mismatch", slog.String("account", name))
		return nil, errInvalidCredentials
	}

	db, err := s.Store.Databases().GetDatabaseByID(ctx, databaseID)
	if err != nil {
		return nil, mapStoreNotFound(err, "Database", databaseID)
	}

	var pair *domain.TokenPair
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		pair, err = s.issue(ctx, tx, acct, db, frontendUserID, idx.New().String(), now)
		return err
	})
	if err != nil {
		return nil, err
	}

	l.Info("service login", slog.String("account", name), slog.String("db_id", db.ID))
	return pair, nil
}

// LoginRefreshToken exchanges a refresh token for a new access token and a
// new refresh token. The presented token is revoked in the same
// transaction. Presenting an already rotated token revokes its whole chain.
func (s *AuthService) LoginRefreshToken(ctx context.Context, refreshOpaque string) (*domain.TokenPair, error) {
	l := slogx.FromContext(ctx)
	now := s.now()

	refreshOpaque = strings.TrimSpace(refreshOpaque)
	if refreshOpaque == "" {
		return nil, errWrongData("refresh_token is required")
	}

	// 1. Lookup the persisted refresh row by token fingerprint
	fp := cryptox.FingerprintToken(refreshOpaque)
	rt, err := s.Store.RefreshTokens().GetRefreshTokenByHash(ctx, fp)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errInvalidRefresh
		}
		return nil, err
	}

	// 2. A rotated token showing up again means the chain leaked
	if rt.Revoked {
		l.Warn("revoked refresh token reused, revoking chain", slog.String("family", rt.Family))
		if err := s.Store.RefreshTokens().RevokeRefreshTokenFamily(ctx, rt.Family); err != nil {
			return nil, err
		}
		return nil, errInvalidRefresh
	}
	if now.After(rt.ExpiresAt) {
		return nil, errRefreshExpired
	}

	// 3. Rotate: revoke the presented token and issue the next one atomically.
	// The revoke only matches a live row, so one of two racing rotations fails.
	var pair *domain.TokenPair
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.RefreshTokens().RevokeRefreshToken(ctx, fp); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return errInvalidRefresh
			}
			return err
		}

		acct, err := tx.Accounts().GetAccountByID(ctx, rt.AccountID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return errInvalidRefresh
			}
			return err
		}
		db, err := tx.Databases().GetDatabaseByID(ctx, rt.DatabaseID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return errInvalidRefresh
			}
			return err
		}

		pair, err = s.issue(ctx, tx, acct, db, rt.FrontendUserID, rt.Family, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	return pair, nil
}

// issue signs an access token and stores a fresh refresh token in family.
func (s *AuthService) issue(
	ctx context.Context,
	tx store.Tx,
	acct domain.Account,
	db domain.Database,
	frontendUserID, family string,
	now time.Time,
) (*domain.TokenPair, error) {
	claims := jwtx.NewAccessClaims(
		acct.Name,
		db.ID,
		frontendUserID,
		family,
		s.Issuer,
		s.Audience,
		s.AccessTTL,
		now,
	)
	access, err := s.Signer.Sign(claims)
	if err != nil {
		return nil, err
	}

	opaque, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return nil, err
	}

	err = tx.RefreshTokens().CreateRefreshToken(ctx, domain.RefreshToken{
		ID:             idx.New().String(),
		AccountID:      acct.ID,
		DatabaseID:     db.ID,
		FrontendUserID: frontendUserID,
		TokenHash:      cryptox.FingerprintToken(opaque),
		Family:         family,
		ExpiresAt:      now.Add(s.RefreshTTL),
	})
	if err != nil {
		return nil, err
	}

	return &domain.TokenPair{Token: access, RefreshToken: opaque, Database: db}, nil
}
