package model

import "time"

// Mood - 하루 단위 기분 기록 (사용자당 날짜별 1건)
type Mood struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Date      time.Time `json:"date"`
	Mood      string    `json:"mood"`
	Emoji     string    `json:"emoji"`
	Notes     *string   `json:"notes"` // null 가능
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateMoodRequest - 오늘 기분 기록 요청 구조체
type CreateMoodRequest struct {
	Mood  string  `json:"mood" binding:"required,max=50"`
	Emoji string  `json:"emoji" binding:"required,max=10"`
	Notes *string `json:"notes"`
}

type UpdateMoodRequest struct {
	Mood  *string `json:"mood" binding:"omitempty,min=1,max=50"`
	Emoji *string `json:"emoji" binding:"omitempty,min=1,max=10"`
	Notes *string `json:"notes"`
}

// MoodScoreStats summarizes every entry using the 1 (very sad) to 5 (very happy) scale.
type MoodScoreStats struct {
	TotalEntries     int            `json:"total_entries"`
	AverageScore     float64        `json:"average_score"`
	MoodDistribution map[string]int `json:"mood_distribution"`
}

type AverageMood struct {
	OverallAverage     float64  `json:"overall_average"`
	WeeklyAverage      *float64 `json:"weekly_average"`
	MonthlyAverage     *float64 `json:"monthly_average"`
	YearlyAverage      *float64 `json:"yearly_average"`
	TotalEntries       int      `json:"total_entries"`
	MoodInterpretation string   `json:"mood_interpretation"`
}

type MoodTrendPoint struct {
	Date  time.Time `json:"date"`
	Score float64   `json:"score"`
	Mood  string    `json:"mood"`
	Count int       `json:"count"`
}

type MoodTrend struct {
	TrendData      []MoodTrendPoint `json:"trend_data"`
	AverageScore   float64          `json:"average_score"`
	TrendDirection string           `json:"trend_direction"`
}

type MoodDistributionItem struct {
	Mood       string  `json:"mood"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
	Score      int     `json:"score"`
}

type MoodDistribution struct {
	Distribution   []MoodDistributionItem `json:"distribution"`
	TotalEntries   int                    `json:"total_entries"`
	MostCommonMood string                 `json:"most_common_mood"`
	AverageScore   float64                `json:"average_score"`
}
