package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/moodlog/backend/internal/model"
	"github.com/stretchr/testify/require"
)

func seedMoods(t *testing.T, repo *fakeMoods, userID int64, entries map[time.Time]string) {
	t.Helper()
	for d, mood := range entries {
		_, err := repo.CreateMood(context.Background(), userID, d, mood, "🙂", nil)
		require.NoError(t, err)
	}
}

func newStatsService(t *testing.T) (*MoodService, *fakeMoods) {
	t.Helper()
	repo := newFakeMoods()
	svc := NewMoodService(repo, nil)
	svc.now = fixedClock(time.Date(2024, 5, 15, 20, 0, 0, 0, time.UTC))
	return svc, repo
}

func TestMoodService_Stats(t *testing.T) {
	svc, repo := newStatsService(t)
	ctx := context.Background()

	stats, err := svc.Stats(ctx, 42)
	require.NoError(t, err)
	require.Equal(t, model.MoodScoreStats{MoodDistribution: map[string]int{}}, stats)

	seedMoods(t, repo, 42, map[time.Time]string{
		day(2024, 5, 13): "happy",
		day(2024, 5, 14): "happy",
		day(2024, 5, 15): "sad",
	})
	seedMoods(t, repo, 43, map[time.Time]string{day(2024, 5, 15): "very sad"})

	stats, err = svc.Stats(ctx, 42)
	require.NoError(t, err)
	require.Equal(t, 3, stats.TotalEntries)
	require.InDelta(t, 3.33, stats.AverageScore, 0.001)
	require.Equal(t, map[string]int{"happy": 2, "sad": 1}, stats.MoodDistribution)

	n, err := svc.Count(ctx, 42)
	require.NoError(t, err)
	require.Equal(t, int64(3), n)
}

func TestMoodService_Average(t *testing.T) {
	svc, repo := newStatsService(t)
	ctx := context.Background()

	avg, err := svc.Average(ctx, 42)
	require.NoError(t, err)
	require.Equal(t, "no data", avg.MoodInterpretation)
	require.Nil(t, avg.WeeklyAverage)

	seedMoods(t, repo, 42, map[time.Time]string{
		day(2024, 5, 14): "very happy", // week, month, year
		day(2024, 5, 1):  "happy",      // month, year
		day(2023, 12, 1): "sad",        // year
		day(2022, 1, 1):  "very sad",   // overall only
	})

	avg, err = svc.Average(ctx, 42)
	require.NoError(t, err)
	require.Equal(t, 4, avg.TotalEntries)
	require.InDelta(t, 3.0, avg.OverallAverage, 0.001)
	require.Equal(t, "neutral", avg.MoodInterpretation)
	require.NotNil(t, avg.WeeklyAverage)
	require.InDelta(t, 5.0, *avg.WeeklyAverage, 0.001)
	require.NotNil(t, avg.MonthlyAverage)
	require.InDelta(t, 4.5, *avg.MonthlyAverage, 0.001)
	require.NotNil(t, avg.YearlyAverage)
	require.InDelta(t, 3.67, *avg.YearlyAverage, 0.001)
}

func TestMoodService_Trend(t *testing.T) {
	svc, repo := newStatsService(t)
	ctx := context.Background()

	// 2024-05-06 and 2024-05-13 are Mondays.
	seedMoods(t, repo, 42, map[time.Time]string{
		day(2024, 5, 6):  "sad",
		day(2024, 5, 8):  "very sad",
		day(2024, 5, 13): "happy",
		day(2024, 5, 15): "very happy",
	})

	daily, err := svc.Trend(ctx, 42, 0, "")
	require.NoError(t, err)
	require.Len(t, daily.TrendData, 4)
	require.Equal(t, day(2024, 5, 6), daily.TrendData[0].Date)
	require.Equal(t, TrendImproving, daily.TrendDirection)
	require.InDelta(t, 3.0, daily.AverageScore, 0.001)

	weekly, err := svc.Trend(ctx, 42, 0, "week")
	require.NoError(t, err)
	require.Equal(t, []model.MoodTrendPoint{
		{Date: day(2024, 5, 6), Score: 1.5, Mood: "sad", Count: 2},
		{Date: day(2024, 5, 13), Score: 4.5, Mood: "very happy", Count: 2},
	}, weekly.TrendData)
	require.Equal(t, TrendImproving, weekly.TrendDirection)

	monthly, err := svc.Trend(ctx, 42, 0, "month")
	require.NoError(t, err)
	require.Len(t, monthly.TrendData, 1)
	require.Equal(t, day(2024, 5, 1), monthly.TrendData[0].Date)
	require.Equal(t, TrendStable, monthly.TrendDirection)

	recent, err := svc.Trend(ctx, 42, 3, "day")
	require.NoError(t, err)
	require.Len(t, recent.TrendData, 2)

	_, err = svc.Trend(ctx, 42, 0, "year")
	require.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.Trend(ctx, 42, -1, "")
	require.ErrorIs(t, err, ErrInvalidInput)

	empty, err := svc.Trend(ctx, 43, 0, "")
	require.NoError(t, err)
	require.Empty(t, empty.TrendData)
	require.Equal(t, TrendStable, empty.TrendDirection)
}

func TestTrendDirection(t *testing.T) {
	tests := []struct {
		scores []float64
		want   string
	}{
		{scores: nil, want: TrendStable},
		{scores: []float64{5}, want: TrendStable},
		{scores: []float64{2, 4}, want: TrendImproving},
		{scores: []float64{4, 4, 2, 2}, want: TrendDeclining},
		{scores: []float64{3, 3.2, 3.1, 3}, want: TrendStable},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, trendDirection(tt.scores), tt.scores)
	}
}

func TestMoodService_Distribution(t *testing.T) {
	svc, repo := newStatsService(t)
	ctx := context.Background()

	seedMoods(t, repo, 42, map[time.Time]string{
		day(2024, 5, 12): "happy",
		day(2024, 5, 13): "neutral",
		day(2024, 5, 14): "happy",
		day(2024, 5, 15): "neutral",
		day(2024, 1, 2):  "very sad",
	})

	all, err := svc.Distribution(ctx, 42, "")
	require.NoError(t, err)
	require.Equal(t, 5, all.TotalEntries)
	require.Equal(t, "happy", all.MostCommonMood)
	require.Equal(t, []model.MoodDistributionItem{
		{Mood: "happy", Count: 2, Percentage: 40, Score: 4},
		{Mood: "neutral", Count: 2, Percentage: 40, Score: 3},
		{Mood: "very sad", Count: 1, Percentage: 20, Score: 1},
	}, all.Distribution)
	require.InDelta(t, 3.0, all.AverageScore, 0.001)

	week, err := svc.Distribution(ctx, 42, "week")
	require.NoError(t, err)
	require.Equal(t, 4, week.TotalEntries)
	require.InDelta(t, 3.5, week.AverageScore, 0.001)

	_, err = svc.Distribution(ctx, 42, "decade")
	require.ErrorIs(t, err, ErrInvalidInput)

	none, err := svc.Distribution(ctx, 43, "all")
	require.NoError(t, err)
	require.Empty(t, none.Distribution)
	require.Empty(t, none.MostCommonMood)

	repo.err = errors.New("pool exhausted")
	_, err = svc.Distribution(ctx, 42, "")
	require.ErrorIs(t, err, ErrInternal)
}

func TestInterpretScore(t *testing.T) {
	require.Equal(t, "no data", interpretScore(0, 0))
	require.Equal(t, "very sad", interpretScore(1.2, 3))
	require.Equal(t, "sad", interpretScore(2.4, 3))
	require.Equal(t, "neutral", interpretScore(3, 3))
	require.Equal(t, "happy", interpretScore(4.49, 3))
	require.Equal(t, "very happy", interpretScore(4.5, 3))
}
