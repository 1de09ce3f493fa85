package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/moodlog/backend/internal/model"
)

// Scores of the mood vocabulary, 1 (very sad) to 5 (very happy).
var moodScores = map[string]int{
	"very sad":   1,
	"sad":        2,
	"neutral":    3,
	"happy":      4,
	"very happy": 5,
}

const (
	TrendImproving = "improving"
	TrendDeclining = "declining"
	TrendStable    = "stable"

	// Mean score change between the two halves of a trend that counts as movement.
	trendThreshold = 0.25
)

// Stats returns the entry count, mean score and per-mood counts over all entries.
func (s *MoodService) Stats(ctx context.Context, userID int64) (model.MoodScoreStats, error) {
	moods, err := s.repo.ListAllMoods(ctx, userID)
	if err != nil {
		return model.MoodScoreStats{}, internalUnless(s.log, "list moods for stats", err)
	}
	return scoreStats(moods), nil
}

// Average reports overall and trailing week, month and year means.
func (s *MoodService) Average(ctx context.Context, userID int64) (model.AverageMood, error) {
	moods, err := s.repo.ListAllMoods(ctx, userID)
	if err != nil {
		return model.AverageMood{}, internalUnless(s.log, "list moods for average", err)
	}
	return averageMood(moods, truncateDay(s.now())), nil
}

// Trend returns scores over the last days (all entries when days is 0),
// grouped by day, week or month.
func (s *MoodService) Trend(ctx context.Context, userID int64, days int, groupBy string) (model.MoodTrend, error) {
	if days < 0 {
		return model.MoodTrend{}, fmt.Errorf("%w: days must not be negative", ErrInvalidInput)
	}
	switch groupBy {
	case "", "day", "week", "month":
	default:
		return model.MoodTrend{}, fmt.Errorf("%w: group_by must be day, week or month", ErrInvalidInput)
	}

	moods, err := s.repo.ListAllMoods(ctx, userID)
	if err != nil {
		return model.MoodTrend{}, internalUnless(s.log, "list moods for trend", err)
	}
	if days > 0 {
		moods = moodsSince(moods, truncateDay(s.now()).AddDate(0, 0, -days))
	}
	return buildTrend(moods, groupBy), nil
}

// Distribution counts entries per mood within period (week, month, year or all).
func (s *MoodService) Distribution(ctx context.Context, userID int64, period string) (model.MoodDistribution, error) {
	today := truncateDay(s.now())
	var cutoff time.Time
	if period != "" && period != "all" {
		var ok bool
		if cutoff, ok = periodCutoff(period, today); !ok {
			return model.MoodDistribution{}, fmt.Errorf("%w: period must be week, month, year or all", ErrInvalidInput)
		}
	}

	moods, err := s.repo.ListAllMoods(ctx, userID)
	if err != nil {
		return model.MoodDistribution{}, internalUnless(s.log, "list moods for distribution", err)
	}
	if !cutoff.IsZero() {
		moods = moodsSince(moods, cutoff)
	}
	return distribution(moods), nil
}

func scoreStats(moods []model.Mood) model.MoodScoreStats {
	stats := model.MoodScoreStats{MoodDistribution: map[string]int{}}
	total := 0
	for _, m := range moods {
		score, ok := moodScores[m.Mood]
		if !ok {
			continue
		}
		total += score
		stats.TotalEntries++
		stats.MoodDistribution[m.Mood]++
	}
	if stats.TotalEntries > 0 {
		stats.AverageScore = round2(float64(total) / float64(stats.TotalEntries))
	}
	return stats
}

func averageMood(moods []model.Mood, today time.Time) model.AverageMood {
	overall, n := meanScore(moods)
	out := model.AverageMood{
		OverallAverage:     overall,
		TotalEntries:       n,
		MoodInterpretation: interpretScore(overall, n),
	}
	for period, dst := range map[string]**float64{
		"week":  &out.WeeklyAverage,
		"month": &out.MonthlyAverage,
		"year":  &out.YearlyAverage,
	} {
		cutoff, _ := periodCutoff(period, today)
		if avg, count := meanScore(moodsSince(moods, cutoff)); count > 0 {
			*dst = &avg
		}
	}
	return out
}

type trendBucket struct {
	start  time.Time
	total  int
	count  int
	byMood map[string]int
}

func buildTrend(moods []model.Mood, groupBy string) model.MoodTrend {
	buckets := map[time.Time]*trendBucket{}
	for _, m := range moods {
		score, ok := moodScores[m.Mood]
		if !ok {
			continue
		}
		start := bucketStart(truncateDay(m.Date), groupBy)
		b, ok := buckets[start]
		if !ok {
			b = &trendBucket{start: start, byMood: map[string]int{}}
			buckets[start] = b
		}
		b.total += score
		b.count++
		b.byMood[m.Mood]++
	}

	trend := model.MoodTrend{TrendData: []model.MoodTrendPoint{}, TrendDirection: TrendStable}
	if len(buckets) == 0 {
		return trend
	}

	for _, b := range buckets {
		trend.TrendData = append(trend.TrendData, model.MoodTrendPoint{
			Date:  b.start,
			Score: round2(float64(b.total) / float64(b.count)),
			Mood:  mostCommon(b.byMood),
			Count: b.count,
		})
	}
	sort.Slice(trend.TrendData, func(i, j int) bool {
		return trend.TrendData[i].Date.Before(trend.TrendData[j].Date)
	})

	scores := make([]float64, len(trend.TrendData))
	sum := 0.0
	for i, p := range trend.TrendData {
		scores[i] = p.Score
		sum += p.Score
	}
	trend.AverageScore = round2(sum / float64(len(scores)))
	trend.TrendDirection = trendDirection(scores)
	return trend
}

func distribution(moods []model.Mood) model.MoodDistribution {
	counts := map[string]int{}
	total, scoreSum := 0, 0
	for _, m := range moods {
		score, ok := moodScores[m.Mood]
		if !ok {
			continue
		}
		counts[m.Mood]++
		total++
		scoreSum += score
	}

	out := model.MoodDistribution{Distribution: []model.MoodDistributionItem{}, TotalEntries: total}
	if total == 0 {
		return out
	}

	for mood, count := range counts {
		out.Distribution = append(out.Distribution, model.MoodDistributionItem{
			Mood:       mood,
			Count:      count,
			Percentage: round2(float64(count) * 100 / float64(total)),
			Score:      moodScores[mood],
		})
	}
	sort.Slice(out.Distribution, func(i, j int) bool {
		a, b := out.Distribution[i], out.Distribution[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Score > b.Score
	})
	out.MostCommonMood = out.Distribution[0].Mood
	out.AverageScore = round2(float64(scoreSum) / float64(total))
	return out
}

// mostCommon breaks ties toward the happier mood so results are stable.
func mostCommon(counts map[string]int) string {
	best, bestCount := "", 0
	for mood, count := range counts {
		if count > bestCount || (count == bestCount && moodScores[mood] > moodScores[best]) {
			best, bestCount = mood, count
		}
	}
	return best
}

// trendDirection compares the mean of the later half of scores with the earlier half.
func trendDirection(scores []float64) string {
	if len(scores) < 2 {
		return TrendStable
	}
	half := len(scores) / 2
	delta := mean(scores[half:]) - mean(scores[:half])
	switch {
	case delta > trendThreshold:
		return TrendImproving
	case delta < -trendThreshold:
		return TrendDeclining
	default:
		return TrendStable
	}
}

func interpretScore(avg float64, n int) string {
	switch {
	case n == 0:
		return "no data"
	case avg < 1.5:
		return "very sad"
	case avg < 2.5:
		return "sad"
	case avg < 3.5:
		return "neutral"
	case avg < 4.5:
		return "happy"
	default:
		return "very happy"
	}
}

func meanScore(moods []model.Mood) (float64, int) {
	total, n := 0, 0
	for _, m := range moods {
		if score, ok := moodScores[m.Mood]; ok {
			total += score
			n++
		}
	}
	if n == 0 {
		return 0, 0
	}
	return round2(float64(total) / float64(n)), n
}

func periodCutoff(period string, today time.Time) (time.Time, bool) {
	switch period {
	case "week":
		return today.AddDate(0, 0, -7), true
	case "month":
		return today.AddDate(0, -1, 0), true
	case "year":
		return today.AddDate(-1, 0, 0), true
	default:
		return time.Time{}, false
	}
}

// bucketStart maps a day to the first day of its group. Weeks start on Monday.
func bucketStart(day time.Time, groupBy string) time.Time {
	switch groupBy {
	case "week":
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset)
	case "month":
		return time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
	default:
		return day
	}
}

func moodsSince(moods []model.Mood, cutoff time.Time) []model.Mood {
	out := make([]model.Mood, 0, len(moods))
	for _, m := range moods {
		if !truncateDay(m.Date).Before(cutoff) {
			out = append(out, m)
		}
	}
	return out
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
