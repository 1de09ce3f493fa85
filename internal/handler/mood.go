package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/moodlog/backend/internal/model"
	"github.com/moodlog/backend/internal/service"
)

type moodService interface {
	Create(ctx context.Context, userID int64, req model.CreateMoodRequest) (*model.Mood, error)
	List(ctx context.Context, userID int64, page service.Page) ([]model.Mood, error)
	Range(ctx context.Context, userID int64, startDate, endDate string) ([]model.Mood, error)
	Streak(ctx context.Context, userID int64) (int, error)
	Get(ctx context.Context, id, userID int64) (*model.Mood, error)
	Update(ctx context.Context, id, userID int64, req model.UpdateMoodRequest) (*model.Mood, error)
	Delete(ctx context.Context, id, userID int64) error
	ByDate(ctx context.Context, userID int64, date string) (*model.Mood, error)
	Recent(ctx context.Context, userID int64, days int) ([]model.Mood, error)
	All(ctx context.Context, userID int64) ([]model.Mood, error)
	Count(ctx context.Context, userID int64) (int64, error)
	Stats(ctx context.Context, userID int64) (model.MoodScoreStats, error)
	Average(ctx context.Context, userID int64) (model.AverageMood, error)
	Trend(ctx context.Context, userID int64, days int, groupBy string) (model.MoodTrend, error)
	Distribution(ctx context.Context, userID int64, period string) (model.MoodDistribution, error)
}

// Mood 핸들러 구조체 정의
type MoodHandler struct {
	svc moodService
}

// Mood 핸들러 객체 생성
func NewMoodHandler(svc moodService) *MoodHandler {
	return &MoodHandler{svc: svc}
}

// CreateMood godoc
// @Summary Record today's mood
// @Description mood is one of: very sad, sad, neutral, happy, very happy. One entry per day.
// @Tags moods
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.CreateMoodRequest true "Mood"
// @Success 201 {object} model.Mood
// @Failure 400,401,409,500 {object} model.ErrorResponse
// @Router /api/v1/moods [post]
func (h *MoodHandler) CreateMood(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req model.CreateMoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	mood, err := h.svc.Create(c.Request.Context(), userID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, mood)
}

// ListMoods godoc
// @Summary List moods, newest first
// @Tags moods
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size (default 50, max 100)"
// @Param offset query int false "Offset"
// @Success 200 {array} model.Mood
// @Failure 400,401,500 {object} model.ErrorResponse
// @Router /api/v1/moods [get]
func (h *MoodHandler) ListMoods(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var q model.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeBindError(c, err)
		return
	}

	list, err := h.svc.List(c.Request.Context(), userID, service.Page{Limit: q.Limit, Offset: q.Offset})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// MoodRange godoc
// @Summary List moods between two dates
// @Tags moods
// @Produce json
// @Security BearerAuth
// @Param start_date query string true "MM-DD-YYYY"
// @Param end_date query string true "MM-DD-YYYY"
// @Success 200 {array} model.Mood
// @Failure 400,401,500 {object} model.ErrorResponse
// @Router /api/v1/moods/range [get]
func (h *MoodHandler) MoodRange(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var q model.DateRangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeBindError(c, err)
		return
	}

	list, err := h.svc.Range(c.Request.Context(), userID, q.StartDate, q.EndDate)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// MoodStreak godoc
// @Summary Consecutive days with a mood entry, ending today
// @Tags moods
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.StreakResponse
// @Failure 401,500 {object} model.ErrorResponse
// @Router /api/v1/moods/streak [get]
func (h *MoodHandler) MoodStreak(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	streak, err := h.svc.Streak(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.StreakResponse{Streak: streak})
}

// GetMood godoc
// @Summary Get a mood entry
// @Tags moods
// @Produce json
// @Security BearerAuth
// @Param id path int true "Mood ID"
// @Success 200 {object} model.Mood
// @Failure 400,401,404,500 {object} model.ErrorResponse
// @Router /api/v1/moods/{id} [get]
func (h *MoodHandler) GetMood(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	mood, err := h.svc.Get(c.Request.Context(), id, userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, mood)
}

// UpdateMood godoc
// @Summary Update a mood entry
// @Tags moods
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Mood ID"
// @Param request body model.UpdateMoodRequest true "Fields to change"
// @Success 200 {object} model.Mood
// @Failure 400,401,404,500 {object} model.ErrorResponse
// @Router /api/v1/moods/{id} [put]
func (h *MoodHandler) UpdateMood(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req model.UpdateMoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	mood, err := h.svc.Update(c.Request.Context(), id, userID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, mood)
}

// DeleteMood godoc
// @Summary Delete a mood entry
// @Tags moods
// @Produce json
// @Security BearerAuth
// @Param id path int true "Mood ID"
// @Success 200 {object} model.MessageResponse
// @Failure 400,401,404,500 {object} model.ErrorResponse
// @Router /api/v1/moods/{id} [delete]
func (h *MoodHandler) DeleteMood(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id, userID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.MessageResponse{Message: "Mood deleted successfully"})
}

// MoodByDate godoc
// @Summary Get the mood entry for a date
// @Tags moods
// @Produce json
// @Security BearerAuth
// @Param date path string true "MM-DD-YYYY"
// @Success 200 {object} model.Mood
// @Failure 400,401,404,500 {object} model.ErrorResponse
// @Router /api/v1/moods/date/{date} [get]
func (h *MoodHandler) MoodByDate(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	mood, err := h.svc.ByDate(c.Request.Context(), userID, c.Param("date"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, mood)
}

// RecentMoods godoc
// @Summary Moods from the last N days, newest first
// @Tags moods
// @Produce json
// @Security BearerAuth
// @Param days query int false "1-365, default 7"
// @Success 200 {array} model.Mood
// @Failure 400,401,500 {object} model.ErrorResponse
// @Router /api/v1/moods/recent [get]
func (h *MoodHandler) RecentMoods(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var q model.RecentQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeBindError(c, err)
		return
	}

	list, err := h.svc.Recent(c.Request.Context(), userID, q.Days)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// AllMoods godoc
// @Summary Every mood entry, unpaginated
// @Tags moods
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Mood
// @Failure 401,500 {object} model.ErrorResponse
// @Router /api/v1/moods/all [get]
func (h *MoodHandler) AllMoods(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	list, err := h.svc.All(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// MoodStats godoc
// @Summary Count mood entries
// @Tags moods
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.CountResponse
// @Failure 401,500 {object} model.ErrorResponse
// @Router /api/v1/moods/stats [get]
func (h *MoodHandler) MoodStats(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	n, err := h.svc.Count(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.CountResponse{TotalEntries: n})
}

// AdvancedMoodStats godoc
// @Summary Mean score and per-mood counts
// @Description Scores run from 1 (very sad) to 5 (very happy).
// @Tags moods
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.MoodScoreStats
// @Failure 401,500 {object} model.ErrorResponse
// @Router /api/v1/moods/stats/advanced [get]
func (h *MoodHandler) AdvancedMoodStats(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	stats, err := h.svc.Stats(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// AverageMood godoc
// @Summary Overall, weekly, monthly and yearly mean scores
// @Tags moods
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.AverageMood
// @Failure 401,500 {object} model.ErrorResponse
// @Router /api/v1/moods/stats/average [get]
func (h *MoodHandler) AverageMood(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	avg, err := h.svc.Average(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, avg)
}

// MoodTrend godoc
// @Summary Mood scores over time
// @Tags moods
// @Produce json
// @Security BearerAuth
// @Param days query int false "Only the last N days"
// @Param group_by query string false "day, week or month"
// @Success 200 {object} model.MoodTrend
// @Failure 400,401,500 {object} model.ErrorResponse
// @Router /api/v1/moods/stats/trend [get]
func (h *MoodHandler) MoodTrend(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var q model.TrendQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeBindError(c, err)
		return
	}

	trend, err := h.svc.Trend(c.Request.Context(), userID, q.Days, q.GroupBy)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, trend)
}

// MoodDistribution godoc
// @Summary Share of each mood
// @Tags moods
// @Produce json
// @Security BearerAuth
// @Param period query string false "week, month, year or all"
// @Success 200 {object} model.MoodDistribution
// @Failure 400,401,500 {object} model.ErrorResponse
// @Router /api/v1/moods/stats/distribution [get]
func (h *MoodHandler) MoodDistribution(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var q model.DistributionQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeBindError(c, err)
		return
	}

	dist, err := h.svc.Distribution(c.Request.Context(), userID, q.Period)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dist)
}
