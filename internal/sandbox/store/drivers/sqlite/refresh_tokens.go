package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/xminds/internal/sandbox/domain"
)

type refreshTokensRepo struct {
	q querier
}

func (r *refreshTokensRepo) CreateRefreshToken(ctx context.Context, t domain.RefreshToken) error {
	now := toNanos(time.Now())
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO refresh_tokens (
			id, account_id, database_id, frontend_user_id, token_hash, family,
			expires_at, revoked, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, 0, ?, ?)`,
		t.ID, t.AccountID, t.DatabaseID, t.FrontendUserID, t.TokenHash, t.Family,
		toNanos(t.ExpiresAt), now, now,
	)
	return mapConstraint(err)
}

func (r *refreshTokensRepo) GetRefreshTokenByHash(
	ctx context.Context,
	hash string,
) (domain.RefreshToken, error) {
	var (
		t                         domain.RefreshToken
		expires, created, updated int64
	)
	err := r.q.QueryRowContext(ctx, `
		SELECT id, account_id, database_id, frontend_user_id, token_hash, family,
		       expires_at, revoked, created_at, updated_at
		FROM refresh_tokens WHERE token_hash = ?`, hash,
	).Scan(
		&t.ID, &t.AccountID, &t.DatabaseID, &t.FrontendUserID, &t.TokenHash, &t.Family,
		&expires, &t.Revoked, &created, &updated,
	)
	if err != nil {
		return domain.RefreshToken{}, mapNotFound(err)
	}
	t.ExpiresAt = fromNanos(expires)
	t.CreatedAt = fromNanos(created)
	t.UpdatedAt = fromNanos(updated)
	return t, nil
}

func (r *refreshTokensRepo) RevokeRefreshToken(ctx context.Context, hash string) error {
	return requireAffected(r.q.ExecContext(ctx, `
		UPDATE refresh_tokens SET revoked = 1, updated_at = ?
		WHERE token_hash = ? AND revoked = 0`,
		toNanos(time.Now()), hash,
	))
}

func (r *refreshTokensRepo) RevokeRefreshTokenFamily(ctx context.Context, family string) error {
	_, err := r.q.ExecContext(ctx, `
		UPDATE refresh_tokens SET revoked = 1, updated_at = ?
		WHERE family = ? AND revoked = 0`,
		toNanos(time.Now()), family,
	)
	return err
}

func (r *refreshTokensRepo) DeleteExpiredRefreshTokens(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.q.ExecContext(ctx, `DELETE FROM refresh_tokens WHERE expires_at < ?`, toNanos(now))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
