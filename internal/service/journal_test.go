package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/moodlog/backend/internal/model"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestParseDate(t *testing.T) {
	d, err := ParseDate("03-15-2024")
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), d)

	for _, bad := range []string{"2024-03-15", "15-03-2024", "", "03/15/2024"} {
		_, err := ParseDate(bad)
		require.ErrorIs(t, err, ErrInvalidInput, bad)
	}
}

func TestJournalService_Create(t *testing.T) {
	repo := newFakeJournals()
	svc := NewJournalService(repo, nil)
	now := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	svc.now = fixedClock(now)

	j, err := svc.Create(context.Background(), 42, model.CreateJournalRequest{Title: " Day ", Content: "ok"})
	require.NoError(t, err)
	require.Equal(t, "Day", j.Title)
	require.Equal(t, now, j.CreatedAt)

	j, err = svc.Create(context.Background(), 42, model.CreateJournalRequest{Title: "Back", Content: "dated", CreatedAt: strPtr("12-31-2023")})
	require.NoError(t, err)
	require.Equal(t, time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC), j.CreatedAt)

	_, err = svc.Create(context.Background(), 42, model.CreateJournalRequest{Title: "Bad", Content: "x", CreatedAt: strPtr("2023-12-31")})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(context.Background(), 42, model.CreateJournalRequest{Title: "  ", Content: "x"})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestJournalService_OwnerScoping(t *testing.T) {
	repo := newFakeJournals()
	svc := NewJournalService(repo, nil)
	ctx := context.Background()

	j, err := svc.Create(ctx, 42, model.CreateJournalRequest{Title: "mine", Content: "x"})
	require.NoError(t, err)

	_, err = svc.Get(ctx, j.ID, 43)
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, svc.Delete(ctx, j.ID, 43), ErrNotFound)

	updated, err := svc.Update(ctx, j.ID, 42, model.UpdateJournalRequest{Title: strPtr("renamed")})
	require.NoError(t, err)
	require.Equal(t, "renamed", updated.Title)

	_, err = svc.Update(ctx, j.ID, 42, model.UpdateJournalRequest{})
	require.ErrorIs(t, err, ErrInvalidInput)

	n, err := svc.Count(ctx, 42)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	require.NoError(t, svc.Delete(ctx, j.ID, 42))
	_, err = svc.Get(ctx, j.ID, 42)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestJournalService_Paging(t *testing.T) {
	repo := newFakeJournals()
	svc := NewJournalService(repo, nil)
	ctx := context.Background()

	_, err := svc.List(ctx, 42, Page{})
	require.NoError(t, err)
	require.Equal(t, defaultPageSize, repo.lastLimit)

	_, err = svc.List(ctx, 42, Page{Limit: 1000})
	require.NoError(t, err)
	require.Equal(t, maxPageSize, repo.lastLimit)

	_, err = svc.List(ctx, 42, Page{Offset: -1})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestJournalService_Search(t *testing.T) {
	repo := newFakeJournals()
	svc := NewJournalService(repo, nil)

	_, err := svc.Search(context.Background(), 42, "  ", Page{})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Search(context.Background(), 42, " rain ", Page{})
	require.NoError(t, err)
	require.Equal(t, "rain", repo.lastQuery)
}

func TestJournalService_StoreErrorsAreInternal(t *testing.T) {
	repo := newFakeJournals()
	repo.err = errors.New("conn reset")
	svc := NewJournalService(repo, nil)

	_, err := svc.List(context.Background(), 42, Page{})
	require.ErrorIs(t, err, ErrInternal)

	_, err = svc.Get(context.Background(), 1, 42)
	require.ErrorIs(t, err, ErrInternal)
}

func TestJournalService_DateLookups(t *testing.T) {
	repo := newFakeJournals()
	svc := NewJournalService(repo, nil)
	svc.now = fixedClock(time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()

	for _, at := range []time.Time{
		time.Date(2024, 5, 9, 21, 0, 0, 0, time.UTC),
		time.Date(2024, 5, 9, 7, 0, 0, 0, time.UTC),
		time.Date(2024, 5, 14, 23, 59, 0, 0, time.UTC),
		time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
	} {
		_, err := repo.CreateJournal(ctx, 42, at.Format(time.RFC3339), "x", at)
		require.NoError(t, err)
	}

	j, err := svc.ByDate(ctx, 42, "05-09-2024")
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, 5, 9, 7, 0, 0, 0, time.UTC), j.CreatedAt)

	_, err = svc.ByDate(ctx, 42, "05-10-2024")
	require.ErrorIs(t, err, ErrNotFound)

	list, err := svc.Range(ctx, 42, "05-09-2024", "05-14-2024")
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.Equal(t, time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC), repo.lastTo)
	require.True(t, list[0].CreatedAt.Before(list[2].CreatedAt))

	_, err = svc.Range(ctx, 42, "05-14-2024", "05-09-2024")
	require.ErrorIs(t, err, ErrInvalidInput)

	recent, err := svc.Recent(ctx, 42, 0)
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, 5, 8, 0, 0, 0, 0, time.UTC), repo.lastFrom)
	require.Len(t, recent, 3)
	require.Equal(t, time.Date(2024, 5, 14, 23, 59, 0, 0, time.UTC), recent[0].CreatedAt)

	_, err = svc.Recent(ctx, 42, 400)
	require.ErrorIs(t, err, ErrInvalidInput)

	all, err := svc.All(ctx, 42)
	require.NoError(t, err)
	require.Len(t, all, 4)

	other, err := svc.All(ctx, 43)
	require.NoError(t, err)
	require.Empty(t, other)
}
