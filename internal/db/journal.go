package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/moodlog/backend/internal/model"
)

const journalColumns = `id, user_id, title, content, created_at, updated_at`

func scanJournal(row pgx.Row) (*model.Journal, error) {
	var j model.Journal
	if err := row.Scan(&j.ID, &j.UserID, &j.Title, &j.Content, &j.CreatedAt, &j.UpdatedAt); err != nil {
		return nil, err
	}
	return &j, nil
}

func collectJournals(rows pgx.Rows) ([]model.Journal, error) {
	defer rows.Close()

	list := []model.Journal{}
	for rows.Next() {
		j, err := scanJournal(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *j)
	}
	return list, rows.Err()
}

func (db *Postgres) CreateJournal(ctx context.Context, userID int64, title, content string, createdAt time.Time) (*model.Journal, error) {
	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO journals (user_id, title, content, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + journalColumns
	return scanJournal(db.Pool.QueryRow(ctx, query, userID, title, content, createdAt))
}

func (db *Postgres) ListJournals(ctx context.Context, userID int64, limit, offset int) ([]model.Journal, error) {
	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	rows, err := db.Pool.Query(ctx, `
		SELECT `+journalColumns+`
		FROM journals
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	return collectJournals(rows)
}

func (db *Postgres) SearchJournals(ctx context.Context, userID int64, query string, limit, offset int) ([]model.Journal, error) {
	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	rows, err := db.Pool.Query(ctx, `
		SELECT `+journalColumns+`
		FROM journals
		WHERE user_id = $1 AND (title ILIKE $2 OR content ILIKE $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`, userID, "%"+query+"%", limit, offset)
	if err != nil {
		return nil, err
	}
	return collectJournals(rows)
}

func (db *Postgres) GetJournal(ctx context.Context, id, userID int64) (*model.Journal, error) {
	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + journalColumns + ` FROM journals WHERE id = $1 AND user_id = $2`
	return scanJournal(db.Pool.QueryRow(ctx, query, id, userID))
}

func (db *Postgres) UpdateJournal(ctx context.Context, id, userID int64, req model.UpdateJournalRequest) (*model.Journal, error) {
	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	query := `
		UPDATE journals
		SET title = COALESCE($1, title), content = COALESCE($2, content), updated_at = NOW()
		WHERE id = $3 AND user_id = $4
		RETURNING ` + journalColumns
	return scanJournal(db.Pool.QueryRow(ctx, query, req.Title, req.Content, id, userID))
}

func (db *Postgres) DeleteJournal(ctx context.Context, id, userID int64) error {
	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	tag, err := db.Pool.Exec(ctx, `DELETE FROM journals WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (db *Postgres) CountJournals(ctx context.Context, userID int64) (int64, error) {
	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	var count int64
	err := db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM journals WHERE user_id = $1`, userID).Scan(&count)
	return count, err
}

// GetFirstJournalOn returns the earliest entry created within [from, to).
func (db *Postgres) GetFirstJournalOn(ctx context.Context, userID int64, from, to time.Time) (*model.Journal, error) {
	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	query := `
		SELECT ` + journalColumns + `
		FROM journals
		WHERE user_id = $1 AND created_at >= $2 AND created_at < $3
		ORDER BY created_at ASC
		LIMIT 1`
	return scanJournal(db.Pool.QueryRow(ctx, query, userID, from, to))
}

// ListJournalsBetween returns entries created within [from, to), oldest first.
func (db *Postgres) ListJournalsBetween(ctx context.Context, userID int64, from, to time.Time) ([]model.Journal, error) {
	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	rows, err := db.Pool.Query(ctx, `
		SELECT `+journalColumns+`
		FROM journals
		WHERE user_id = $1 AND created_at >= $2 AND created_at < $3
		ORDER BY created_at ASC
	`, userID, from, to)
	if err != nil {
		return nil, err
	}
	return collectJournals(rows)
}

// ListJournalsSince returns entries created at or after since, newest first.
func (db *Postgres) ListJournalsSince(ctx context.Context, userID int64, since time.Time) ([]model.Journal, error) {
	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	rows, err := db.Pool.Query(ctx, `
		SELECT `+journalColumns+`
		FROM journals
		WHERE user_id = $1 AND created_at >= $2
		ORDER BY created_at DESC
	`, userID, since)
	if err != nil {
		return nil, err
	}
	return collectJournals(rows)
}

func (db *Postgres) ListAllJournals(ctx context.Context, userID int64) ([]model.Journal, error) {
	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	rows, err := db.Pool.Query(ctx, `
		SELECT `+journalColumns+`
		FROM journals
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	return collectJournals(rows)
}
