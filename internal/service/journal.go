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

const (
	// DateLayout is the MM-DD-YYYY form clients send dates in.
	DateLayout = "01-02-2006"

	defaultPageSize = 50
	maxPageSize     = 100
)

// Page is a limit/offset pair. Zero values mean defaults.
type Page struct {
	Limit  int
	Offset int
}

func (p Page) normalize() (int, int, error) {
	if p.Limit < 0 || p.Offset < 0 {
		return 0, 0, fmt.Errorf("%w: limit and offset must not be negative", ErrInvalidInput)
	}
	limit := p.Limit
	if limit == 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return limit, p.Offset, nil
}

// ParseDate parses a MM-DD-YYYY date as midnight UTC.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be MM-DD-YYYY", ErrInvalidInput)
	}
	return t, nil
}

type JournalService struct {
	repo JournalRepository
	log  *zap.Logger
	now  func() time.Time
}

func NewJournalService(repo JournalRepository, log *zap.Logger) *JournalService {
	if log == nil {
		log = zap.NewNop()
	}
	return &JournalService{repo: repo, log: log, now: time.Now}
}

func (s *JournalService) Create(ctx context.Context, userID int64, req model.CreateJournalRequest) (*model.Journal, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" || strings.TrimSpace(req.Content) == "" {
		return nil, fmt.Errorf("%w: title and content are required", ErrInvalidInput)
	}

	createdAt := s.now().UTC()
	if req.CreatedAt != nil && strings.TrimSpace(*req.CreatedAt) != "" {
		date, err := ParseDate(*req.CreatedAt)
		if err != nil {
			return nil, err
		}
		createdAt = date
	}

	journal, err := s.repo.CreateJournal(ctx, userID, title, req.Content, createdAt)
	if err != nil {
		return nil, internalUnless(s.log, "create journal", err)
	}
	return journal, nil
}

func (s *JournalService) List(ctx context.Context, userID int64, page Page) ([]model.Journal, error) {
	limit, offset, err := page.normalize()
	if err != nil {
		return nil, err
	}
	list, err := s.repo.ListJournals(ctx, userID, limit, offset)
	if err != nil {
		return nil, internalUnless(s.log, "list journals", err)
	}
	return list, nil
}

func (s *JournalService) Search(ctx context.Context, userID int64, query string, page Page) ([]model.Journal, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: query is required", ErrInvalidInput)
	}
	limit, offset, err := page.normalize()
	if err != nil {
		return nil, err
	}
	list, err := s.repo.SearchJournals(ctx, userID, query, limit, offset)
	if err != nil {
		return nil, internalUnless(s.log, "search journals", err)
	}
	return list, nil
}

func (s *JournalService) Get(ctx context.Context, id, userID int64) (*model.Journal, error) {
	journal, err := s.repo.GetJournal(ctx, id, userID)
	if err != nil {
		return nil, s.notFoundOr("get journal", err)
	}
	return journal, nil
}

func (s *JournalService) Update(ctx context.Context, id, userID int64, req model.UpdateJournalRequest) (*model.Journal, error) {
	if req.Title == nil && req.Content == nil {
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}
	journal, err := s.repo.UpdateJournal(ctx, id, userID, req)
	if err != nil {
		return nil, s.notFoundOr("update journal", err)
	}
	return journal, nil
}

func (s *JournalService) Delete(ctx context.Context, id, userID int64) error {
	if err := s.repo.DeleteJournal(ctx, id, userID); err != nil {
		return s.notFoundOr("delete journal", err)
	}
	return nil
}

func (s *JournalService) Count(ctx context.Context, userID int64) (int64, error) {
	n, err := s.repo.CountJournals(ctx, userID)
	if err != nil {
		return 0, internalUnless(s.log, "count journals", err)
	}
	return n, nil
}

// ByDate returns the first entry written on a MM-DD-YYYY date.
func (s *JournalService) ByDate(ctx context.Context, userID int64, date string) (*model.Journal, error) {
	day, err := ParseDate(date)
	if err != nil {
		return nil, err
	}
	journal, err := s.repo.GetFirstJournalOn(ctx, userID, day, day.AddDate(0, 0, 1))
	if err != nil {
		if db.IsNoRows(err) {
			return nil, fmt.Errorf("%w: journal not found for this date", ErrNotFound)
		}
		return nil, internalUnless(s.log, "get journal by date", err)
	}
	return journal, nil
}

// Range returns entries written between two MM-DD-YYYY dates, both days included.
func (s *JournalService) Range(ctx context.Context, userID int64, startDate, endDate string) ([]model.Journal, error) {
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

	list, err := s.repo.ListJournalsBetween(ctx, userID, start, end.AddDate(0, 0, 1))
	if err != nil {
		return nil, internalUnless(s.log, "list journals in range", err)
	}
	return list, nil
}

// Recent returns entries from the last days days, newest first. Zero means a week.
func (s *JournalService) Recent(ctx context.Context, userID int64, days int) ([]model.Journal, error) {
	since, err := recentCutoff(days, s.now())
	if err != nil {
		return nil, err
	}
	list, err := s.repo.ListJournalsSince(ctx, userID, since)
	if err != nil {
		return nil, internalUnless(s.log, "list recent journals", err)
	}
	return list, nil
}

func (s *JournalService) All(ctx context.Context, userID int64) ([]model.Journal, error) {
	list, err := s.repo.ListAllJournals(ctx, userID)
	if err != nil {
		return nil, internalUnless(s.log, "list all journals", err)
	}
	return list, nil
}

func (s *JournalService) notFoundOr(op string, err error) error {
	if db.IsNoRows(err) {
		return fmt.Errorf("%w: journal not found", ErrNotFound)
	}
	return internalUnless(s.log, op, err)
}
