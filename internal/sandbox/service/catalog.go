package service

import (
	"context"

	"github.com/aussiebroadwan/xminds/internal/sandbox/domain"
	"github.com/aussiebroadwan/xminds/internal/sandbox/store"
)

// MaxBulkIDs bounds the ids accepted by the bulk list endpoints.
const MaxBulkIDs = 1000

// CatalogService reads and seeds users and items.
type CatalogService struct {
	Store store.Store
}

func (s *CatalogService) GetUser(ctx context.Context, databaseID, userID string) (domain.User, error) {
	if err := requireID("user id", userID); err != nil {
		return domain.User{}, err
	}
	u, err := s.Store.Users().GetUser(ctx, databaseID, userID)
	if err != nil {
		return domain.User{}, mapStoreNotFound(err, "User", userID)
	}
	return u, nil
}

// ListUsers returns the known users among ids. Unknown ids are skipped.
func (s *CatalogService) ListUsers(ctx context.Context, databaseID string, ids []string) ([]domain.User, error) {
	if err := checkBulkIDs("users_id", ids); err != nil {
		return nil, err
	}
	return s.Store.Users().ListUsers(ctx, databaseID, ids)
}

func (s *CatalogService) PutUser(ctx context.Context, databaseID string, u domain.User) error {
	if err := requireID("user id", u.ID); err != nil {
		return err
	}
	return s.Store.Users().UpsertUser(ctx, databaseID, u)
}

func (s *CatalogService) GetItem(ctx context.Context, databaseID, itemID string) (domain.Item, error) {
	if err := requireID("item id", itemID); err != nil {
		return domain.Item{}, err
	}
	it, err := s.Store.Items().GetItem(ctx, databaseID, itemID)
	if err != nil {
		return domain.Item{}, mapStoreNotFound(err, "Item", itemID)
	}
	return it, nil
}

// ListItems returns the known items among ids. Unknown ids are skipped.
func (s *CatalogService) ListItems(ctx context.Context, databaseID string, ids []string) ([]domain.Item, error) {
	if err := checkBulkIDs("items_id", ids); err != nil {
		return nil, err
	}
	return s.Store.Items().ListItems(ctx, databaseID, ids)
}

func (s *CatalogService) PutItem(ctx context.Context, databaseID string, it domain.Item) error {
	if err := requireID("item id", it.ID); err != nil {
		return err
	}
	return s.Store.Items().UpsertItem(ctx, databaseID, it)
}

func checkBulkIDs(field string, ids []string) error {
	if len(ids) > MaxBulkIDs {
		return errWrongData("%s accepts at most %d ids", field, MaxBulkIDs)
	}
	for _, id := range ids {
		if id == "" {
			return errWrongData("%s must not contain empty ids", field)
		}
	}
	return nil
}
