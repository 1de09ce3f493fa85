package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/moodlog/backend/internal/model"
)

const moodColumns = `id, user_id, date, mood, emoji, notes, created_at, updated_at`

func scanMood(row pgx.Row) (*model.Mood, error) {
	var m model.Mood
	if err := row.Scan(&m.ID, &m.UserID, &m.Date, &m.Mood, &m.Emoji, &m.Notes, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

func collectMoods(rows pgx.Rows) ([]model.Mood, error) {
	defer rows.Close()

	list := []model.Mood{}
	for rows.Next() {
		m, err := scanMood(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *m)
	}
	return list, rows.Err()
}

func (db *Postgres) CreateMood(ctx context.Context, userID int64, date time.Time, mood, emoji string, notes *string) (*model.Mood, error) {
	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO moods (user_id, date, mood, emoji, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING ` + moodColumns
	return scanMood(db.Pool.QueryRow(ctx, query, userID, date, mood, emoji, notes))
}

func (db *Postgres) ListMoods(ctx context.Context, userID int64, limit, offset int) ([]model.Mood, error) {
	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	rows, err := db.Pool.Query(ctx, `
		SELECT `+moodColumns+`
		FROM moods
		WHERE user_id = $1
		ORDER BY date DESC, created_at DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	return collectMoods(rows)
}

func (db *Postgres) ListMoodsInRange(ctx context.Context, userID int64, start, end time.Time) ([]model.Mood, error) {
	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	rows, err := db.Pool.Query(ctx, `
		SELECT `+moodColumns+`
		FROM moods
		WHERE user_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date ASC
	`, userID, start, end)
	if err != nil {
		return nil, err
	}
	return collectMoods(rows)
}

// ListMoodDates returns the distinct days with a mood entry, newest first.
func (db *Postgres) ListMoodDates(ctx context.Context, userID int64) ([]time.Time, error) {
	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	rows, err := db.Pool.Query(ctx, `
		SELECT DISTINCT date FROM moods WHERE user_id = $1 ORDER BY date DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

func (db *Postgres) GetMood(ctx context.Context, id, userID int64) (*model.Mood, error) {
	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + moodColumns + ` FROM moods WHERE id = $1 AND user_id = $2`
	return scanMood(db.Pool.QueryRow(ctx, query, id, userID))
}

func (db *Postgres) UpdateMood(ctx context.Context, id, userID int64, req model.UpdateMoodRequest) (*model.Mood, error) {
	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	query := `
		UPDATE moods
		SET mood = COALESCE($1, mood), emoji = COALESCE($2, emoji), notes = COALESCE($3, notes), updated_at = NOW()
		WHERE id = $4 AND user_id = $5
		RETURNING ` + moodColumns
	return scanMood(db.Pool.QueryRow(ctx, query, req.Mood, req.Emoji, req.Notes, id, userID))
}

func (db *Postgres) DeleteMood(ctx context.Context, id, userID int64) error {
	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	tag, err := db.Pool.Exec(ctx, `DELETE FROM moods WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// GetMoodByDate returns the single entry for day. The unique index on
// (user_id, date) guarantees at most one.
func (db *Postgres) GetMoodByDate(ctx context.Context, userID int64, day time.Time) (*model.Mood, error) {
	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + moodColumns + ` FROM moods WHERE user_id = $1 AND date = $2`
	return scanMood(db.Pool.QueryRow(ctx, query, userID, day))
}

// ListMoodsSince returns entries dated on or after since, newest first.
func (db *Postgres) ListMoodsSince(ctx context.Context, userID int64, since time.Time) ([]model.Mood, error) {
	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	rows, err := db.Pool.Query(ctx, `
		SELECT `+moodColumns+`
		FROM moods
		WHERE user_id = $1 AND date >= $2
		ORDER BY date DESC
	`, userID, since)
	if err != nil {
		return nil, err
	}
	return collectMoods(rows)
}

// ListAllMoods returns every entry of the user, newest first.
func (db *Postgres) ListAllMoods(ctx context.Context, userID int64) ([]model.Mood, error) {
	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	rows, err := db.Pool.Query(ctx, `
		SELECT `+moodColumns+`
		FROM moods
		WHERE user_id = $1
		ORDER BY date DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	return collectMoods(rows)
}

func (db *Postgres) CountMoods(ctx context.Context, userID int64) (int64, error) {
	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	var count int64
	err := db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM moods WHERE user_id = $1`, userID).Scan(&count)
	return count, err
}
