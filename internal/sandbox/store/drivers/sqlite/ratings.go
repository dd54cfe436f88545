package sqlite

import (
	"context"

	"github.com/aussiebroadwan/xminds/internal/sandbox/domain"
)

type ratingsRepo struct {
	q querier
}

func (r *ratingsRepo) GetRating(ctx context.Context, databaseID, userID, itemID string) (domain.Rating, error) {
	rt := domain.Rating{UserID: userID, ItemID: itemID}
	var ts float64
	err := r.q.QueryRowContext(ctx, `
		SELECT rating, timestamp FROM ratings
		WHERE database_id = ? AND user_id = ? AND item_id = ?`,
		databaseID, userID, itemID,
	).Scan(&rt.Value, &ts)
	if err != nil {
		return domain.Rating{}, mapNotFound(err)
	}
	rt.Timestamp = fromSeconds(ts)
	return rt, nil
}

func (r *ratingsRepo) UpsertRating(ctx context.Context, databaseID string, rt domain.Rating) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO ratings (database_id, user_id, item_id, rating, timestamp)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (database_id, user_id, item_id)
		DO UPDATE SET rating = excluded.rating, timestamp = excluded.timestamp`,
		databaseID, rt.UserID, rt.ItemID, rt.Value, toSeconds(rt.Timestamp),
	)
	return err
}

func (r *ratingsRepo) DeleteRating(ctx context.Context, databaseID, userID, itemID string) error {
	return requireAffected(r.q.ExecContext(ctx, `
		DELETE FROM ratings WHERE database_id = ? AND user_id = ? AND item_id = ?`,
		databaseID, userID, itemID,
	))
}

func (r *ratingsRepo) ListUserRatings(
	ctx context.Context,
	databaseID, userID string,
	limit, offset int,
) ([]domain.Rating, error) {
	return r.query(ctx, `
		SELECT user_id, item_id, rating, timestamp FROM ratings
		WHERE database_id = ? AND user_id = ?
		ORDER BY timestamp DESC, item_id
		LIMIT ? OFFSET ?`,
		databaseID, userID, limit, offset,
	)
}

func (r *ratingsRepo) CountUserRatings(ctx context.Context, databaseID, userID string) (int, error) {
	var n int
	err := r.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM ratings WHERE database_id = ? AND user_id = ?`,
		databaseID, userID,
	).Scan(&n)
	return n, err
}

func (r *ratingsRepo) DeleteUserRatings(ctx context.Context, databaseID, userID string) error {
	_, err := r.q.ExecContext(ctx,
		`DELETE FROM ratings WHERE database_id = ? AND user_id = ?`,
		databaseID, userID,
	)
	return err
}

func (r *ratingsRepo) ListAllRatings(ctx context.Context, databaseID string) ([]domain.Rating, error) {
	return r.query(ctx, `
		SELECT user_id, item_id, rating, timestamp FROM ratings
		WHERE database_id = ? ORDER BY user_id, item_id`,
		databaseID,
	)
}

func (r *ratingsRepo) query(ctx context.Context, query string, args ...any) ([]domain.Rating, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Rating
	for rows.Next() {
		var (
			rt domain.Rating
			ts float64
		)
		if err := rows.Scan(&rt.UserID, &rt.ItemID, &rt.Value, &ts); err != nil {
			return nil, err
		}
		rt.Timestamp = fromSeconds(ts)
		out = append(out, rt)
	}
	return out, rows.Err()
}

type interactionsRepo struct {
	q querier
}

func (r *interactionsRepo) CreateInteraction(ctx context.Context, databaseID string, i domain.Interaction) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO interactions (id, database_id, user_id, item_id, interaction_type, timestamp)
		VALUES (?, ?, ?, ?, ?, ?)`,
		i.ID, databaseID, i.UserID, i.ItemID, i.Type, toSeconds(i.Timestamp),
	)
	return mapConstraint(err)
}

func (r *interactionsRepo) ListUserInteractions(
	ctx context.Context,
	databaseID, userID string,
) ([]domain.Interaction, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT id, user_id, item_id, interaction_type, timestamp FROM interactions
		WHERE database_id = ? AND user_id = ?
		ORDER BY timestamp, id`,
		databaseID, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Interaction
	for rows.Next() {
		var (
			i  domain.Interaction
			ts float64
		)
		if err := rows.Scan(&i.ID, &i.UserID, &i.ItemID, &i.Type, &ts); err != nil {
			return nil, err
		}
		i.Timestamp = fromSeconds(ts)
		out = append(out, i)
	}
	return out, rows.Err()
}
