package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/moodlog/backend/internal/model"
)

type fakeRevocationStore struct {
	mu         sync.Mutex
	revoked    map[string]time.Time
	isErr      error
	revokeErr  error
	evictErr   error
	lastCutoff time.Time
	now        func() time.Time
}

func newFakeRevocationStore() *fakeRevocationStore {
	return &fakeRevocationStore{revoked: map[string]time.Time{}, now: time.Now}
}

func (f *fakeRevocationStore) IsRevoked(_ context.Context, token string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.isErr != nil {
		return false, f.isErr
	}
	_, ok := f.revoked[token]
	return ok, nil
}

func (f *fakeRevocationStore) Revoke(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.revokeErr != nil {
		return f.revokeErr
	}
	if _, ok := f.revoked[token]; !ok {
		f.revoked[token] = f.now()
	}
	return nil
}

func (f *fakeRevocationStore) EvictOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastCutoff = cutoff
	if f.evictErr != nil {
		return 0, f.evictErr
	}
	var n int64
	for token, at := range f.revoked {
		if at.Before(cutoff) {
			delete(f.revoked, token)
			n++
		}
	}
	return n, nil
}

type fakeUsers struct {
	mu       sync.Mutex
	byID     map[int64]*model.User
	nextID   int64
	err      error
	createFn func(*model.User) error
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: map[int64]*model.User{}, nextID: 41}
}

func (f *fakeUsers) add(u model.User) *model.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u.ID == 0 {
		f.nextID++
		u.ID = f.nextID
	}
	stored := u
	f.byID[u.ID] = &stored
	return &stored
}

func (f *fakeUsers) CreateUser(_ context.Context, user *model.User) (*model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.createFn != nil {
		if err := f.createFn(user); err != nil {
			return nil, err
		}
	}
	f.mu.Lock()
	for _, existing := range f.byID {
		if existing.Email == user.Email {
			f.mu.Unlock()
			return nil, &pgconn.PgError{Code: "23505"}
		}
	}
	f.mu.Unlock()
	return f.add(*user), nil
}

func (f *fakeUsers) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.byID {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUsers) GetUserByID(_ context.Context, userID int64) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.byID[userID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUsers) UpdateProfile(_ context.Context, userID int64, req model.EditProfileRequest) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.byID[userID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	for id, other := range f.byID {
		if id != userID && other.Email == req.Email {
			return nil, &pgconn.PgError{Code: "23505"}
		}
	}
	u.Username = req.Username
	u.Email = req.Email
	u.Age = req.Age
	u.Gender = req.Gender
	u.Avatar = req.Avatar
	copied := *u
	return &copied, nil
}

func (f *fakeUsers) UpdatePasswordHash(_ context.Context, userID int64, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	u, ok := f.byID[userID]
	if !ok {
		return pgx.ErrNoRows
	}
	u.PasswordHash = passwordHash
	return nil
}

type fakeJournals struct {
	items     map[int64]*model.Journal
	nextID    int64
	err       error
	lastLimit int
	lastQuery string
	lastFrom  time.Time
	lastTo    time.Time
}

func newFakeJournals() *fakeJournals {
	return &fakeJournals{items: map[int64]*model.Journal{}}
}

func (f *fakeJournals) CreateJournal(_ context.Context, userID int64, title, content string, createdAt time.Time) (*model.Journal, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.nextID++
	j := &model.Journal{ID: f.nextID, UserID: userID, Title: title, Content: content, CreatedAt: createdAt}
	f.items[j.ID] = j
	return j, nil
}

func (f *fakeJournals) ListJournals(_ context.Context, userID int64, limit, _ int) ([]model.Journal, error) {
	f.lastLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	out := []model.Journal{}
	for _, j := range f.items {
		if j.UserID == userID {
			out = append(out, *j)
		}
	}
	return out, nil
}

func (f *fakeJournals) SearchJournals(ctx context.Context, userID int64, query string, limit, offset int) ([]model.Journal, error) {
	f.lastQuery = query
	return f.ListJournals(ctx, userID, limit, offset)
}

func (f *fakeJournals) GetJournal(_ context.Context, id, userID int64) (*model.Journal, error) {
	if f.err != nil {
		return nil, f.err
	}
	j, ok := f.items[id]
	if !ok || j.UserID != userID {
		return nil, pgx.ErrNoRows
	}
	return j, nil
}

func (f *fakeJournals) UpdateJournal(ctx context.Context, id, userID int64, req model.UpdateJournalRequest) (*model.Journal, error) {
	j, err := f.GetJournal(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if req.Title != nil {
		j.Title = *req.Title
	}
	if req.Content != nil {
		j.Content = *req.Content
	}
	return j, nil
}

func (f *fakeJournals) DeleteJournal(ctx context.Context, id, userID int64) error {
	if _, err := f.GetJournal(ctx, id, userID); err != nil {
		return err
	}
	delete(f.items, id)
	return nil
}

func (f *fakeJournals) CountJournals(ctx context.Context, userID int64) (int64, error) {
	list, err := f.ListJournals(ctx, userID, 0, 0)
	return int64(len(list)), err
}

type fakeMoods struct {
	items     map[int64]*model.Mood
	nextID    int64
	err       error
	lastSince time.Time
	// hideExisting makes the pre-insert check miss rows, as a concurrent insert would.
	hideExisting bool
}

func newFakeMoods() *fakeMoods {
	return &fakeMoods{items: map[int64]*model.Mood{}}
}

func (f *fakeMoods) CreateMood(_ context.Context, userID int64, date time.Time, mood, emoji string, notes *string) (*model.Mood, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, existing := range f.items {
		if existing.UserID == userID && existing.Date.Equal(date) {
			return nil, &pgconn.PgError{Code: "23505"}
		}
	}
	f.nextID++
	m := &model.Mood{ID: f.nextID, UserID: userID, Date: date, Mood: mood, Emoji: emoji, Notes: notes}
	f.items[m.ID] = m
	return m, nil
}

func (f *fakeMoods) ListMoods(_ context.Context, userID int64, _, _ int) ([]model.Mood, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []model.Mood{}
	for _, m := range f.items {
		if m.UserID == userID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (f *fakeMoods) ListMoodsInRange(_ context.Context, userID int64, start, end time.Time) ([]model.Mood, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.hideExisting {
		return []model.Mood{}, nil
	}
	out := []model.Mood{}
	for _, m := range f.items {
		if m.UserID == userID && !m.Date.Before(start) && !m.Date.After(end) {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (f *fakeMoods) ListMoodDates(_ context.Context, _ int64) ([]time.Time, error) {
	return nil, f.err
}

func (f *fakeMoods) GetMood(_ context.Context, id, userID int64) (*model.Mood, error) {
	if f.err != nil {
		return nil, f.err
	}
	m, ok := f.items[id]
	if !ok || m.UserID != userID {
		return nil, pgx.ErrNoRows
	}
	return m, nil
}

func (f *fakeMoods) UpdateMood(ctx context.Context, id, userID int64, req model.UpdateMoodRequest) (*model.Mood, error) {
	m, err := f.GetMood(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if req.Mood != nil {
		m.Mood = *req.Mood
	}
	if req.Emoji != nil {
		m.Emoji = *req.Emoji
	}
	if req.Notes != nil {
		m.Notes = req.Notes
	}
	return m, nil
}

func (f *fakeMoods) DeleteMood(ctx context.Context, id, userID int64) error {
	if _, err := f.GetMood(ctx, id, userID); err != nil {
		return err
	}
	delete(f.items, id)
	return nil
}

func (f *fakeJournals) sorted(userID int64, keep func(model.Journal) bool, newestFirst bool) ([]model.Journal, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []model.Journal{}
	for _, j := range f.items {
		if j.UserID == userID && keep(*j) {
			out = append(out, *j)
		}
	}
	sort.Slice(out, func(i, k int) bool {
		if newestFirst {
			return out[i].CreatedAt.After(out[k].CreatedAt)
		}
		return out[i].CreatedAt.Before(out[k].CreatedAt)
	})
	return out, nil
}

func (f *fakeJournals) GetFirstJournalOn(_ context.Context, userID int64, from, to time.Time) (*model.Journal, error) {
	list, err := f.sorted(userID, func(j model.Journal) bool {
		return !j.CreatedAt.Before(from) && j.CreatedAt.Before(to)
	}, false)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, pgx.ErrNoRows
	}
	return &list[0], nil
}

func (f *fakeJournals) ListJournalsBetween(_ context.Context, userID int64, from, to time.Time) ([]model.Journal, error) {
	f.lastFrom, f.lastTo = from, to
	return f.sorted(userID, func(j model.Journal) bool {
		return !j.CreatedAt.Before(from) && j.CreatedAt.Before(to)
	}, false)
}

func (f *fakeJournals) ListJournalsSince(_ context.Context, userID int64, since time.Time) ([]model.Journal, error) {
	f.lastFrom = since
	return f.sorted(userID, func(j model.Journal) bool { return !j.CreatedAt.Before(since) }, true)
}

func (f *fakeJournals) ListAllJournals(_ context.Context, userID int64) ([]model.Journal, error) {
	return f.sorted(userID, func(model.Journal) bool { return true }, true)
}

func (f *fakeMoods) newestFirst(userID int64, keep func(model.Mood) bool) ([]model.Mood, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []model.Mood{}
	for _, m := range f.items {
		if m.UserID == userID && keep(*m) {
			out = append(out, *m)
		}
	}
	sort.Slice(out, func(i, k int) bool { return out[i].Date.After(out[k].Date) })
	return out, nil
}

func (f *fakeMoods) GetMoodByDate(_ context.Context, userID int64, day time.Time) (*model.Mood, error) {
	list, err := f.newestFirst(userID, func(m model.Mood) bool { return m.Date.Equal(day) })
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, pgx.ErrNoRows
	}
	return &list[0], nil
}

func (f *fakeMoods) ListMoodsSince(_ context.Context, userID int64, since time.Time) ([]model.Mood, error) {
	f.lastSince = since
	return f.newestFirst(userID, func(m model.Mood) bool { return !m.Date.Before(since) })
}

func (f *fakeMoods) ListAllMoods(_ context.Context, userID int64) ([]model.Mood, error) {
	return f.newestFirst(userID, func(model.Mood) bool { return true })
}

func (f *fakeMoods) CountMoods(ctx context.Context, userID int64) (int64, error) {
	list, err := f.ListAllMoods(ctx, userID)
	return int64(len(list)), err
}
