package service

import (
	"context"
	"time"

	"github.com/moodlog/backend/internal/model"
)

// Implemented by *db.Postgres.

type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, userID int64) (*model.User, error)
	UpdateProfile(ctx context.Context, userID int64, req model.EditProfileRequest) (*model.User, error)
	UpdatePasswordHash(ctx context.Context, userID int64, passwordHash string) error
}

type JournalRepository interface {
	CreateJournal(ctx context.Context, userID int64, title, content string, createdAt time.Time) (*model.Journal, error)
	ListJournals(ctx context.Context, userID int64, limit, offset int) ([]model.Journal, error)
	SearchJournals(ctx context.Context, userID int64, query string, limit, offset int) ([]model.Journal, error)
	GetJournal(ctx context.Context, id, userID int64) (*model.Journal, error)
	UpdateJournal(ctx context.Context, id, userID int64, req model.UpdateJournalRequest) (*model.Journal, error)
	DeleteJournal(ctx context.Context, id, userID int64) error
	CountJournals(ctx context.Context, userID int64) (int64, error)
	GetFirstJournalOn(ctx context.Context, userID int64, from, to time.Time) (*model.Journal, error)
	ListJournalsBetween(ctx context.Context, userID int64, from, to time.Time) ([]model.Journal, error)
	ListJournalsSince(ctx context.Context, userID int64, since time.Time) ([]model.Journal, error)
	ListAllJournals(ctx context.Context, userID int64) ([]model.Journal, error)
}

type MoodRepository interface {
	CreateMood(ctx context.Context, userID int64, date time.Time, mood, emoji string, notes *string) (*model.Mood, error)
	ListMoods(ctx context.Context, userID int64, limit, offset int) ([]model.Mood, error)
	ListMoodsInRange(ctx context.Context, userID int64, start, end time.Time) ([]model.Mood, error)
	ListMoodDates(ctx context.Context, userID int64) ([]time.Time, error)
	GetMood(ctx context.Context, id, userID int64) (*model.Mood, error)
	UpdateMood(ctx context.Context, id, userID int64, req model.UpdateMoodRequest) (*model.Mood, error)
	DeleteMood(ctx context.Context, id, userID int64) error
	GetMoodByDate(ctx context.Context, userID int64, day time.Time) (*model.Mood, error)
	ListMoodsSince(ctx context.Context, userID int64, since time.Time) ([]model.Mood, error)
	ListAllMoods(ctx context.Context, userID int64) ([]model.Mood, error)
	CountMoods(ctx context.Context, userID int64) (int64, error)
}
