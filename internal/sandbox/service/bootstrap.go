package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/xminds/internal/sandbox/domain"
	"github.com/aussiebroadwan/xminds/internal/sandbox/store"
	"github.com/aussiebroadwan/xminds/pkg/cryptox"
	"github.com/aussiebroadwan/xminds/pkg/idx"
	"github.com/aussiebroadwan/xminds/pkg/slogx"
)

var ErrBootstrapIncomplete = errors.New("bootstrap: account name, password and database id are required")

// BootstrapService makes sure the configured service account and database
// exist, so a fresh sandbox can be logged into straight away.
type BootstrapService struct {
	Store  store.Store
	Pepper string

	AccountName  string
	Password     string
	DatabaseID   string
	DatabaseName string

	// RefreshToken, when set, is registered as a valid refresh token for the
	// account and database. It lets clients start from a known token.
	RefreshToken string
	RefreshTTL   time.Duration
}

// Ensure creates whatever is missing. It is safe to run on every start; a
// changed password replaces the stored hash.
func (s *BootstrapService) Ensure(ctx context.Context) error {
	l := slogx.FromContext(ctx)

	if s.AccountName == "" || s.Password == "" || s.DatabaseID == "" {
		return ErrBootstrapIncomplete
	}

	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		// 1. Database
		db, err := tx.Databases().GetDatabaseByID(ctx, s.DatabaseID)
		switch {
		case errors.Is(err, store.ErrNotFound):
			db = domain.Database{
				ID:         s.DatabaseID,
				Name:       s.DatabaseName,
				ItemIDType: domain.DefaultIDType,
				UserIDType: domain.DefaultIDType,
			}
			if db.Name == "" {
				db.Name = s.DatabaseID
			}
			if err := tx.Databases().CreateDatabase(ctx, db); err != nil {
				return fmt.Errorf("create database: %w", err)
			}
			l.Info("bootstrap created database", slog.String("db_id", db.ID))
		case err != nil:
			return err
		}

		// 2. Service account
		acct, err := tx.Accounts().GetAccountByName(ctx, s.AccountName)
		switch {
		case errors.Is(err, store.ErrNotFound):
			hash, err := cryptox.HashPassword(s.Password, s.Pepper)
			if err != nil {
				return fmt.Errorf("hash password: %w", err)
			}
			acct = domain.Account{ID: idx.New().String(), Name: s.AccountName, PasswordHash: hash}
			if err := tx.Accounts().CreateAccount(ctx, acct); err != nil {
				return fmt.Errorf("create account: %w", err)
			}
			l.Info("bootstrap created service account", slog.String("account", acct.Name))
		case err != nil:
			return err
		default:
			if cryptox.VerifyPassword(s.Password, s.Pepper, acct.PasswordHash) != nil {
				hash, err := cryptox.HashPassword(s.Password, s.Pepper)
				if err != nil {
					return fmt.Errorf("hash password: %w", err)
				}
				if err := tx.Accounts().UpdatePasswordHash(ctx, acct.ID, hash); err != nil {
					return err
				}
				l.Info("bootstrap updated service account password", slog.String("account", acct.Name))
			}
		}

		// 3. Well-known refresh token
		if s.RefreshToken == "" {
			return nil
		}
		fp := cryptox.FingerprintToken(s.RefreshToken)
		if _, err := tx.RefreshTokens().GetRefreshTokenByHash(ctx, fp); err == nil {
			return nil
		} else if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		ttl := s.RefreshTTL
		if ttl <= 0 {
			ttl = DefaultRefreshTokenTTL
		}
		err = tx.RefreshTokens().CreateRefreshToken(ctx, domain.RefreshToken{
			ID:         idx.New().String(),
			AccountID:  acct.ID,
			DatabaseID: db.ID,
			TokenHash:  fp,
			Family:     idx.New().String(),
			ExpiresAt:  time.Now().Add(ttl),
		})
		if err != nil {
			return fmt.Errorf("create bootstrap refresh token: %w", err)
		}
		l.Info("bootstrap registered refresh token", slog.String("account", acct.Name))
		return nil
	})
}
