package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/moodlog/backend/internal/model"
	"github.com/moodlog/backend/internal/service"
)

// writeError maps service errors to status codes. Internal causes are never
// echoed; they are logged where they happen.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: detail(err, service.ErrInvalidInput)})
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, model.ErrorResponse{Error: "unauthorized"})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, model.ErrorResponse{Error: detail(err, service.ErrNotFound)})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, model.ErrorResponse{Error: detail(err, service.ErrConflict)})
	case errors.Is(err, service.ErrGoogleDisabled):
		c.JSON(http.StatusServiceUnavailable, model.ErrorResponse{Error: "google sign-in is not configured"})
	default:
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: "internal server error"})
	}
}

// detail returns the text wrapped around sentinel, or the sentinel itself.
func detail(err, sentinel error) string {
	msg := err.Error()
	if rest, ok := strings.CutPrefix(msg, sentinel.Error()+": "); ok && rest != "" {
		return rest
	}
	return sentinel.Error()
}

// writeBindError turns binding failures into a 400 naming the first bad field.
func writeBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: fieldMessage(verrs[0])})
		return
	}
	c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "invalid request"})
}

func fieldMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
