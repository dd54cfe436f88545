package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/xminds/internal/sandbox/domain"
)

// entityTable holds the queries shared by users and items, which have the
// same shape.
type entityTable string

const (
	usersTable entityTable = "users"
	itemsTable entityTable = "items"
)

type entityRow struct {
	id         string
	properties domain.Properties
	updatedAt  time.Time
}

func (t entityTable) get(ctx context.Context, q querier, databaseID, id string) (entityRow, error) {
	var (
		props   string
		updated int64
	)
	err := q.QueryRowContext(ctx,
		`SELECT properties, updated_at FROM `+string(t)+` WHERE database_id = ? AND id = ?`,
		databaseID, id,
	).Scan(&props, &updated)
	if err != nil {
		return entityRow{}, mapNotFound(err)
	}
	p, err := decodeProperties(props)
	if err != nil {
		return entityRow{}, err
	}
	return entityRow{id: id, properties: p, updatedAt: fromNanos(updated)}, nil
}

func (t entityTable) list(ctx context.Context, q querier, databaseID string, ids []string) ([]entityRow, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	args := make([]any, 0, len(ids)+1)
	args = append(args, databaseID)
	for _, id := range ids {
		args = append(args, id)
	}

	found, err := t.query(ctx, q,
		`SELECT id, properties, updated_at FROM `+string(t)+
			` WHERE database_id = ? AND id IN (`+placeholders(len(ids))+`)`,
		args...,
	)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]entityRow, len(found))
	for _, row := range found {
		byID[row.id] = row
	}
	out := make([]entityRow, 0, len(found))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		row, ok := byID[id]
		if !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, row)
	}
	return out, nil
}

func (t entityTable) all(ctx context.Context, q querier, databaseID string) ([]entityRow, error) {
	return t.query(ctx, q,
		`SELECT id, properties, updated_at FROM `+string(t)+` WHERE database_id = ? ORDER BY id`,
		databaseID,
	)
}

func (t entityTable) query(ctx context.Context, q querier, query string, args ...any) ([]entityRow, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entityRow
	for rows.Next() {
		var (
			row     entityRow
			props   string
			updated int64
		)
		if err := rows.Scan(&row.id, &props, &updated); err != nil {
			return nil, err
		}
		if row.properties, err = decodeProperties(props); err != nil {
			return nil, err
		}
		row.updatedAt = fromNanos(updated)
		out = append(out, row)
	}
	return out, rows.Err()
}

func (t entityTable) upsert(ctx context.Context, q querier, databaseID, id string, p domain.Properties) error {
	props, err := encodeProperties(p)
	if err != nil {
		return err
	}
	_, err = q.ExecContext(ctx,
		`INSERT INTO `+string(t)+` (database_id, id, properties, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT (database_id, id) DO UPDATE SET properties = excluded.properties, updated_at = excluded.updated_at`,
		databaseID, id, props, toNanos(time.Now()),
	)
	return err
}

type usersRepo struct {
	q querier
}

func (r *usersRepo) GetUser(ctx context.Context, databaseID, userID string) (domain.User, error) {
	row, err := usersTable.get(ctx, r.q, databaseID, userID)
	if err != nil {
		return domain.User{}, err
	}
	return mapUser(row), nil
}

func (r *usersRepo) ListUsers(ctx context.Context, databaseID string, ids []string) ([]domain.User, error) {
	rows, err := usersTable.list(ctx, r.q, databaseID, ids)
	if err != nil {
		return nil, err
	}
	out := make([]domain.User, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapUser(row))
	}
	return out, nil
}

func (r *usersRepo) UpsertUser(ctx context.Context, databaseID string, u domain.User) error {
	return usersTable.upsert(ctx, r.q, databaseID, u.ID, u.Properties)
}

type itemsRepo struct {
	q querier
}

func (r *itemsRepo) GetItem(ctx context.Context, databaseID, itemID string) (domain.Item, error) {
	row, err := itemsTable.get(ctx, r.q, databaseID, itemID)
	if err != nil {
		return domain.Item{}, err
	}
	return mapItem(row), nil
}

func (r *itemsRepo) ListItems(ctx context.Context, databaseID string, ids []string) ([]domain.Item, error) {
	rows, err := itemsTable.list(ctx, r.q, databaseID, ids)
	if err != nil {
		return nil, err
	}
	return mapItems(rows), nil
}

func (r *itemsRepo) ListAllItems(ctx context.Context, databaseID string) ([]domain.Item, error) {
	rows, err := itemsTable.all(ctx, r.q, databaseID)
	if err != nil {
		return nil, err
	}
	return mapItems(rows), nil
}

func (r *itemsRepo) UpsertItem(ctx context.Context, databaseID string, it domain.Item) error {
	return itemsTable.upsert(ctx, r.q, databaseID, it.ID, it.Properties)
}

func mapUser(row entityRow) domain.User {
	return domain.User{ID: row.id, Properties: row.properties, UpdatedAt: row.updatedAt}
}

func mapItem(row entityRow) domain.Item {
	return domain.Item{ID: row.id, Properties: row.properties, UpdatedAt: row.updatedAt}
}

func mapItems(rows []entityRow) []domain.Item {
	out := make([]domain.Item, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapItem(row))
	}
	return out
}
