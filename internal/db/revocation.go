package db

import (
	"context"
	"time"
)

// IsRevoked reports whether the exact token string is in token_blacklist.
// Lookup goes through the UNIQUE index on token.
func (db *Postgres) IsRevoked(ctx context.Context, token string) (bool, error) {
	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	var exists bool
	err := db.Pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM token_blacklist WHERE token = $1)`,
		token,
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// Revoke inserts the token. Revoking an already present token is a no-op.
func (db *Postgres) Revoke(ctx context.Context, token string) error {
	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	_, err := db.Pool.Exec(ctx, `
		INSERT INTO token_blacklist (token, revoked_at)
		VALUES ($1, NOW())
		ON CONFLICT (token) DO NOTHING
	`, token)
	return err
}

// EvictOlderThan deletes records with revoked_at strictly before cutoff.
func (db *Postgres) EvictOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	tag, err := db.Pool.Exec(ctx, `DELETE FROM token_blacklist WHERE revoked_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
