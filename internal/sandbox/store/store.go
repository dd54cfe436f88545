package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/xminds/internal/sandbox/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Sub-repositories keep the
// concerns apart, and a Tx exposes the same repositories so multi-step
// operations cannot accidentally start a nested transaction.
type Store interface {
	Databases() Databases
	Accounts() Accounts
	RefreshTokens() RefreshTokens
	Users() Users
	Items() Items
	Ratings() Ratings
	Interactions() Interactions

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. It commits when fn returns
	// nil and rolls back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Databases interface {
	GetDatabaseByID(ctx context.Context, id string) (domain.Database, error)

	// CreateDatabase returns ErrAlreadyExists when the id is taken.
	CreateDatabase(ctx context.Context, d domain.Database) error
}

type Accounts interface {
	GetAccountByID(ctx context.Context, id string) (domain.Account, error)

	GetAccountByName(ctx context.Context, name string) (domain.Account, error)

	// CreateAccount returns ErrAlreadyExists when the name is taken.
	CreateAccount(ctx context.Context, a domain.Account) error

	UpdatePasswordHash(ctx context.Context, accountID, hash string) error
}

type RefreshTokens interface {
	CreateRefreshToken(ctx context.Context, t domain.RefreshToken) error

	// GetRefreshTokenByHash returns the token by its fingerprint, revoked or not.
	GetRefreshTokenByHash(ctx context.Context, hash string) (domain.RefreshToken, error)

	// RevokeRefreshToken flips revoked=1. It returns ErrNotFound when no
	// live token has the fingerprint, so concurrent rotations of the same
	// token cannot both succeed.
	RevokeRefreshToken(ctx context.Context, hash string) error

	// RevokeRefreshTokenFamily revokes every token rotated from one login.
	RevokeRefreshTokenFamily(ctx context.Context, family string) error

	// DeleteExpiredRefreshTokens removes tokens that expired before now and
	// reports how many were removed.
	DeleteExpiredRefreshTokens(ctx context.Context, now time.Time) (int64, error)
}

type Users interface {
	GetUser(ctx context.Context, databaseID, userID string) (domain.User, error)

	// ListUsers returns the users that exist among ids, in the order given.
	ListUsers(ctx context.Context, databaseID string, ids []string) ([]domain.User, error)

	UpsertUser(ctx context.Context, databaseID string, u domain.User) error
}

type Items interface {
	GetItem(ctx context.Context, databaseID, itemID string) (domain.Item, error)

	// ListItems returns the items that exist among ids, in the order given.
	ListItems(ctx context.Context, databaseID string, ids []string) ([]domain.Item, error)

	// ListAllItems returns the whole catalog ordered by id.
	ListAllItems(ctx context.Context, databaseID string) ([]domain.Item, error)

	UpsertItem(ctx context.Context, databaseID string, it domain.Item) error
}

type Ratings interface {
	GetRating(ctx context.Context, databaseID, userID, itemID string) (domain.Rating, error)

	UpsertRating(ctx context.Context, databaseID string, r domain.Rating) error

	// DeleteRating returns ErrNotFound when the user never rated the item.
	DeleteRating(ctx context.Context, databaseID, userID, itemID string) error

	// ListUserRatings returns one page of a user's ratings, newest first.
	ListUserRatings(ctx context.Context, databaseID, userID string, limit, offset int) ([]domain.Rating, error)

	CountUserRatings(ctx context.Context, databaseID, userID string) (int, error)

	DeleteUserRatings(ctx context.Context, databaseID, userID string) error

	// ListAllRatings returns every rating of the database.
	ListAllRatings(ctx context.Context, databaseID string) ([]domain.Rating, error)
}

type Interactions interface {
	CreateInteraction(ctx context.Context, databaseID string, i domain.Interaction) error

	ListUserInteractions(ctx context.Context, databaseID, userID string) ([]domain.Interaction, error)
}
