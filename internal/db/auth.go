package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/moodlog/backend/internal/model"
)

// 서버 시작 시 테이블 및 인덱스 생성 (이미 있으면 건너뜀)
func (db *Postgres) EnsureSchema(ctx context.Context) error {
	queries := []string{
		`
		CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			username VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL UNIQUE,
			password_hash VARCHAR(255) NOT NULL,
			age INT,
			gender VARCHAR(50),
			avatar TEXT,
			settings TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
		`,
		`
		CREATE TABLE IF NOT EXISTS token_blacklist (
			id BIGSERIAL PRIMARY KEY,
			token TEXT NOT NULL UNIQUE,
			revoked_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
		`,
		// sweeper가 revoked_at 기준으로 오래된 토큰을 정리
		`CREATE INDEX IF NOT EXISTS token_blacklist_revoked_at_idx ON token_blacklist(revoked_at)`,
		`
		CREATE TABLE IF NOT EXISTS journals (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			title VARCHAR(500) NOT NULL,
			content TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ
		)
		`,
		`CREATE INDEX IF NOT EXISTS journals_user_id_created_at_idx ON journals(user_id, created_at DESC)`,
		`
		CREATE TABLE IF NOT EXISTS moods (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			date DATE NOT NULL,
			mood VARCHAR(50) NOT NULL,
			emoji VARCHAR(10) NOT NULL,
			notes TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
		`,
		// 사용자당 하루 1건: 동시 생성 요청은 여기서 unique violation으로 걸러짐
		`CREATE UNIQUE INDEX IF NOT EXISTS moods_user_id_date_key ON moods(user_id, date)`,
	}

	for _, query := range queries {
		if _, err := db.Pool.Exec(ctx, query); err != nil {
			return err
		}
	}
	return nil
}

const userColumns = `id, username, email, password_hash, age, gender, avatar, settings, created_at, updated_at`

func scanUser(row pgx.Row) (*model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.Age,
		&user.Gender,
		&user.Avatar,
		&user.Settings,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (db *Postgres) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO users (username, email, password_hash, age, gender, avatar, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING ` + userColumns
	return scanUser(db.Pool.QueryRow(ctx, query,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.Age,
		user.Gender,
		user.Avatar,
	))
}

func (db *Postgres) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(db.Pool.QueryRow(ctx, query, email))
}

func (db *Postgres) GetUserByID(ctx context.Context, userID int64) (*model.User, error) {
	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(db.Pool.QueryRow(ctx, query, userID))
}

func (db *Postgres) UpdateProfile(ctx context.Context, userID int64, req model.EditProfileRequest) (*model.User, error) {
	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	query := `
		UPDATE users
		SET username = $1, email = $2, age = $3, gender = $4, avatar = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING ` + userColumns
	return scanUser(db.Pool.QueryRow(ctx, query,
		req.Username,
		req.Email,
		req.Age,
		req.Gender,
		req.Avatar,
		userID,
	))
}

func (db *Postgres) UpdatePasswordHash(ctx context.Context, userID int64, passwordHash string) error {
	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	tag, err := db.Pool.Exec(ctx, `
		UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2
	`, passwordHash, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
