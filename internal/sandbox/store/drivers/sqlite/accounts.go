package sqlite

import (
	"cmp"
	"context"
	"time"

	"github.com/aussiebroadwan/xminds/internal/sandbox/domain"
)

type databasesRepo struct {
	q querier
}

func (r *databasesRepo) GetDatabaseByID(ctx context.Context, id string) (domain.Database, error) {
	var (
		d       domain.Database
		created int64
	)
	err := r.q.QueryRowContext(ctx, `
		SELECT id, name, description, item_id_type, user_id_type, created_at
		FROM databases WHERE id = ?`, id,
	).Scan(&d.ID, &d.Name, &d.Description, &d.ItemIDType, &d.UserIDType, &created)
	if err != nil {
		return domain.Database{}, mapNotFound(err)
	}
	d.CreatedAt = fromNanos(created)
	return d, nil
}

func (r *databasesRepo) CreateDatabase(ctx context.Context, d domain.Database) error {
	created := d.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO databases (id, name, description, item_id_type, user_id_type, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		d.ID, d.Name, d.Description,
		cmp.Or(d.ItemIDType, domain.DefaultIDType), cmp.Or(d.UserIDType, domain.DefaultIDType),
		toNanos(created),
	)
	return mapConstraint(err)
}

type accountsRepo struct {
	q querier
}

func (r *accountsRepo) GetAccountByID(ctx context.Context, id string) (domain.Account, error) {
	return r.get(ctx, `WHERE id = ?`, id)
}

func (r *accountsRepo) GetAccountByName(ctx context.Context, name string) (domain.Account, error) {
	return r.get(ctx, `WHERE name = ?`, name)
}

func (r *accountsRepo) get(ctx context.Context, where string, arg string) (domain.Account, error) {
	var (
		a                domain.Account
		created, updated int64
	)
	err := r.q.QueryRowContext(ctx,
		`SELECT id, name, password_hash, created_at, updated_at FROM accounts `+where, arg,
	).Scan(&a.ID, &a.Name, &a.PasswordHash, &created, &updated)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	a.CreatedAt = fromNanos(created)
	a.UpdatedAt = fromNanos(updated)
	return a, nil
}

func (r *accountsRepo) CreateAccount(ctx context.Context, a domain.Account) error {
	now := toNanos(time.Now())
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO accounts (id, name, password_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		a.ID, a.Name, a.PasswordHash, now, now,
	)
	return mapConstraint(err)
}

func (r *accountsRepo) UpdatePasswordHash(ctx context.Context, accountID, hash string) error {
	return requireAffected(r.q.ExecContext(ctx, `
		UPDATE accounts SET password_hash = ?, updated_at = ? WHERE id = ?`,
		hash, toNanos(time.Now()), accountID,
	))
}
