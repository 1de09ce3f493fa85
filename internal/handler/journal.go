package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/moodlog/backend/internal/model"
	"github.com/moodlog/backend/internal/service"
)

type journalService interface {
	Create(ctx context.Context, userID int64, req model.CreateJournalRequest) (*model.Journal, error)
	List(ctx context.Context, userID int64, page service.Page) ([]model.Journal, error)
	Search(ctx context.Context, userID int64, query string, page service.Page) ([]model.Journal, error)
	Get(ctx context.Context, id, userID int64) (*model.Journal, error)
	Update(ctx context.Context, id, userID int64, req model.UpdateJournalRequest) (*model.Journal, error)
	Delete(ctx context.Context, id, userID int64) error
	Count(ctx context.Context, userID int64) (int64, error)
	ByDate(ctx context.Context, userID int64, date string) (*model.Journal, error)
	Range(ctx context.Context, userID int64, startDate, endDate string) ([]model.Journal, error)
	Recent(ctx context.Context, userID int64, days int) ([]model.Journal, error)
	All(ctx context.Context, userID int64) ([]model.Journal, error)
}

// Journal 핸들러 구조체 정의
type JournalHandler struct {
	svc journalService
}

// Journal 핸들러 객체 생성
func NewJournalHandler(svc journalService) *JournalHandler {
	return &JournalHandler{svc: svc}
}

// CreateJournal godoc
// @Summary Create a journal entry
// @Description created_at is an optional MM-DD-YYYY backdate.
// @Tags journals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.CreateJournalRequest true "Entry"
// @Success 201 {object} model.Journal
// @Failure 400,401,500 {object} model.ErrorResponse
// @Router /api/v1/journals [post]
func (h *JournalHandler) CreateJournal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req model.CreateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	journal, err := h.svc.Create(c.Request.Context(), userID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, journal)
}

// ListJournals godoc
// @Summary List journal entries
// @Tags journals
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size (default 50, max 100)"
// @Param offset query int false "Offset"
// @Success 200 {array} model.Journal
// @Failure 400,401,500 {object} model.ErrorResponse
// @Router /api/v1/journals [get]
func (h *JournalHandler) ListJournals(c *gin.Context) {
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

// SearchJournals godoc
// @Summary Search journal entries by title or content
// @Tags journals
// @Produce json
// @Security BearerAuth
// @Param query query string true "Search text"
// @Success 200 {array} model.Journal
// @Failure 400,401,500 {object} model.ErrorResponse
// @Router /api/v1/journals/search [get]
func (h *JournalHandler) SearchJournals(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var q model.SearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeBindError(c, err)
		return
	}

	list, err := h.svc.Search(c.Request.Context(), userID, q.Query, service.Page{Limit: q.Limit, Offset: q.Offset})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// JournalStats godoc
// @Summary Count journal entries
// @Tags journals
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.CountResponse
// @Failure 401,500 {object} model.ErrorResponse
// @Router /api/v1/journals/stats [get]
func (h *JournalHandler) JournalStats(c *gin.Context) {
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

// GetJournal godoc
// @Summary Get a journal entry
// @Tags journals
// @Produce json
// @Security BearerAuth
// @Param id path int true "Journal ID"
// @Success 200 {object} model.Journal
// @Failure 400,401,404,500 {object} model.ErrorResponse
// @Router /api/v1/journals/{id} [get]
func (h *JournalHandler) GetJournal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	journal, err := h.svc.Get(c.Request.Context(), id, userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, journal)
}

// UpdateJournal godoc
// @Summary Update a journal entry
// @Tags journals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Journal ID"
// @Param request body model.UpdateJournalRequest true "Fields to change"
// @Success 200 {object} model.Journal
// @Failure 400,401,404,500 {object} model.ErrorResponse
// @Router /api/v1/journals/{id} [put]
func (h *JournalHandler) UpdateJournal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req model.UpdateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	journal, err := h.svc.Update(c.Request.Context(), id, userID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, journal)
}

// DeleteJournal godoc
// @Summary Delete a journal entry
// @Tags journals
// @Produce json
// @Security BearerAuth
// @Param id path int true "Journal ID"
// @Success 200 {object} model.MessageResponse
// @Failure 400,401,404,500 {object} model.ErrorResponse
// @Router /api/v1/journals/{id} [delete]
func (h *JournalHandler) DeleteJournal(c *gin.Context) {
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
	c.JSON(http.StatusOK, model.MessageResponse{Message: "Journal deleted successfully"})
}

// JournalByDate godoc
// @Summary Get the first journal entry written on a date
// @Tags journals
// @Produce json
// @Security BearerAuth
// @Param date path string true "MM-DD-YYYY"
// @Success 200 {object} model.Journal
// @Failure 400,401,404,500 {object} model.ErrorResponse
// @Router /api/v1/journals/date/{date} [get]
func (h *JournalHandler) JournalByDate(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	journal, err := h.svc.ByDate(c.Request.Context(), userID, c.Param("date"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, journal)
}

// JournalRange godoc
// @Summary List journal entries between two dates, oldest first
// @Tags journals
// @Produce json
// @Security BearerAuth
// @Param start_date query string true "MM-DD-YYYY"
// @Param end_date query string true "MM-DD-YYYY"
// @Success 200 {array} model.Journal
// @Failure 400,401,500 {object} model.ErrorResponse
// @Router /api/v1/journals/range [get]
func (h *JournalHandler) JournalRange(c *gin.Context) {
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

// RecentJournals godoc
// @Summary Journal entries from the last N days, newest first
// @Tags journals
// @Produce json
// @Security BearerAuth
// @Param days query int false "1-365, default 7"
// @Success 200 {array} model.Journal
// @Failure 400,401,500 {object} model.ErrorResponse
// @Router /api/v1/journals/recent [get]
func (h *JournalHandler) RecentJournals(c *gin.Context) {
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

// AllJournals godoc
// @Summary Every journal entry, unpaginated
// @Tags journals
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Journal
// @Failure 401,500 {object} model.ErrorResponse
// @Router /api/v1/journals/all [get]
func (h *JournalHandler) AllJournals(c *gin.Context) {
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

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "invalid id"})
		return 0, false
	}
	return id, true
}
