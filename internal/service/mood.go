package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/moodlog/backend/internal/db"
	"github.com/moodlog/backend/internal/model"
	"go.uber.org/zap"
)

func validateMood(mood string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(mood))
	if _, ok := moodScores[normalized]; !ok {
		return "", fmt.Errorf("%w: invalid mood type %q", ErrInvalidInput, mood)
	}
	return normalized, nil
}

type MoodService struct {
	repo MoodRepository
	log  *zap.Logger
	now  func() time.Time
}

func NewMoodService(repo MoodRepository, log *zap.Logger) *MoodService {
	if log == nil {
		log = zap.NewNop()
	}
	return &MoodService{repo: repo, log: log, now: time.Now}
}

const (
	defaultRecentDays = 7
	maxRecentDays     = 365
)

// Create records today's mood. One entry per day; the unique index on
// (user_id, date) settles concurrent creates.
func (s *MoodService) Create(ctx context.Context, userID int64, req model.CreateMoodRequest) (*model.Mood, error) {
	mood, err := validateMood(req.Mood)
	if err != nil {
		return nil, err
	}
	emoji := strings.TrimSpace(req.Emoji)
	if emoji == "" {
		return nil, fmt.Errorf("%w: emoji is required", ErrInvalidInput)
	}

	today := truncateDay(s.now())
	existing, err := s.repo.ListMoodsInRange(ctx, userID, today, today)
	if err != nil {
		return nil, internalUnless(s.log, "check mood for date", err)
	}
	if len(existing) > 0 {
		return nil, fmt.Errorf("%w: mood already exists for this date", ErrConflict)
	}

	created, err := s.repo.CreateMood(ctx, userID, today, mood, emoji, req.Notes)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: mood already exists for this date", ErrConflict)
		}
		return nil, internalUnless(s.log, "create mood", err)
	}
	return created, nil
}

func (s *MoodService) List(ctx context.Context, userID int64, page Page) ([]model.Mood, error) {
	limit, offset, err := page.normalize()
	if err != nil {
		return nil, err
	}
	list, err := s.repo.ListMoods(ctx, userID, limit, offset)
	if err != nil {
		return nil, internalUnless(s.log, "list moods", err)
	}
	return list, nil
}

// Range returns moods between two MM-DD-YYYY dates, inclusive.
func (s *MoodService) Range(ctx context.Context, userID int64, startDate, endDate string) ([]model.Mood, error) {
	start, err := ParseDate(startDate)
	if err != nil {
		return nil, err
	}
	end, err := ParseDate(endDate)
	if err != nil {
		return nil, err
	}
	if start.After(end) {
		return nil, fmt.Errorf("%w: start date cannot be after end date", ErrInvalidInput)
	}

	list, err := s.repo.ListMoodsInRange(ctx, userID, start, end)
	if err != nil {
		return nil, internalUnless(s.log, "list moods in range", err)
	}
	return list, nil
}

// Streak counts consecutive days with a mood entry ending today.
func (s *MoodService) Streak(ctx context.Context, userID int64) (int, error) {
	dates, err := s.repo.ListMoodDates(ctx, userID)
	if err != nil {
		return 0, internalUnless(s.log, "list mood dates", err)
	}
	return streakFrom(dates, s.now()), nil
}

func (s *MoodService) Get(ctx context.Context, id, userID int64) (*model.Mood, error) {
	mood, err := s.repo.GetMood(ctx, id, userID)
	if err != nil {
		return nil, s.notFoundOr("get mood", err)
	}
	return mood, nil
}

func (s *MoodService) Update(ctx context.Context, id, userID int64, req model.UpdateMoodRequest) (*model.Mood, error) {
	if req.Mood == nil && req.Emoji == nil && req.Notes == nil {
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}
	if req.Mood != nil {
		mood, err := validateMood(*req.Mood)
		if err != nil {
			return nil, err
		}
		req.Mood = &mood
	}

	mood, err := s.repo.UpdateMood(ctx, id, userID, req)
	if err != nil {
		return nil, s.notFoundOr("update mood", err)
	}
	return mood, nil
}

func (s *MoodService) Delete(ctx context.Context, id, userID int64) error {
	if err := s.repo.DeleteMood(ctx, id, userID); err != nil {
		return s.notFoundOr("delete mood", err)
	}
	return nil
}

// ByDate returns the entry for a MM-DD-YYYY date.
func (s *MoodService) ByDate(ctx context.Context, userID int64, date string) (*model.Mood, error) {
	day, err := ParseDate(date)
	if err != nil {
		return nil, err
	}
	mood, err := s.repo.GetMoodByDate(ctx, userID, day)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, fmt.Errorf("%w: mood not found for this date", ErrNotFound)
		}
		return nil, internalUnless(s.log, "get mood by date", err)
	}
	return mood, nil
}

// Recent returns entries from the last days days, newest first. Zero means a week.
func (s *MoodService) Recent(ctx context.Context, userID int64, days int) ([]model.Mood, error) {
	since, err := recentCutoff(days, s.now())
	if err != nil {
		return nil, err
	}
	list, err := s.repo.ListMoodsSince(ctx, userID, since)
	if err != nil {
		return nil, internalUnless(s.log, "list recent moods", err)
	}
	return list, nil
}

func (s *MoodService) All(ctx context.Context, userID int64) ([]model.Mood, error) {
	list, err := s.repo.ListAllMoods(ctx, userID)
	if err != nil {
		return nil, internalUnless(s.log, "list all moods", err)
	}
	return list, nil
}

func (s *MoodService) Count(ctx context.Context, userID int64) (int64, error) {
	n, err := s.repo.CountMoods(ctx, userID)
	if err != nil {
		return 0, internalUnless(s.log, "count moods", err)
	}
	return n, nil
}

func (s *MoodService) notFoundOr(op string, err error) error {
	if db.IsNoRows(err) {
		return fmt.Errorf("%w: mood not found", ErrNotFound)
	}
	return internalUnless(s.log, op, err)
}

// streakFrom expects dates newest first. Future dates are skipped.
func streakFrom(dates []time.Time, now time.Time) int {
	current := truncateDay(now)
	streak := 0
	for _, d := range dates {
		day := truncateDay(d)
		switch {
		case day.Equal(current):
			streak++
			current = current.AddDate(0, 0, -1)
		case day.Before(current):
			return streak
		}
	}
	return streak
}

func recentCutoff(days int, now time.Time) (time.Time, error) {
	if days == 0 {
		days = defaultRecentDays
	}
	if days < 1 || days > maxRecentDays {
		return time.Time{}, fmt.Errorf("%w: days must be between 1 and %d", ErrInvalidInput, maxRecentDays)
	}
	return truncateDay(now).AddDate(0, 0, -days), nil
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
