package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/moodlog/backend/internal/model"
)

type userService interface {
	Profile(ctx context.Context, userID int64) (*model.User, error)
	EditProfile(ctx context.Context, userID int64, req model.EditProfileRequest) (*model.User, error)
	ChangePassword(ctx context.Context, userID int64, req model.ChangePasswordRequest) error
}

type UserHandler struct {
	svc userService
}

func NewUserHandler(svc userService) *UserHandler {
	return &UserHandler{svc: svc}
}

// GetProfile godoc
// @Summary Get the caller's profile
// @Tags user
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.UserResponse
// @Failure 401,404,500 {object} model.ErrorResponse
// @Router /api/v1/user/profile [get]
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	user, err := h.svc.Profile(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, user.Response())
}

// EditProfile godoc
// @Summary Edit the caller's profile
// @Description avatar is an http(s) URL or a data:image base64 URI up to 5MB.
// @Tags user
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.EditProfileRequest true "Profile"
// @Success 200 {object} model.UserResponse
// @Failure 400,401,404,409,500 {object} model.ErrorResponse
// @Router /api/v1/user/profile [put]
func (h *UserHandler) EditProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req model.EditProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	user, err := h.svc.EditProfile(c.Request.Context(), userID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, user.Response())
}

// ChangePassword godoc
// @Summary Change the caller's password
// @Tags user
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.ChangePasswordRequest true "Old and new password"
// @Success 200 {object} model.MessageResponse
// @Failure 400,401,404,500 {object} model.ErrorResponse
// @Router /api/v1/user/password [put]
func (h *UserHandler) ChangePassword(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req model.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	if err := h.svc.ChangePassword(c.Request.Context(), userID, req); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.MessageResponse{Message: "Password changed successfully"})
}
