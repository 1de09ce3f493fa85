package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/moodlog/backend/internal/model"
	"github.com/moodlog/backend/internal/service"
)

type authService interface {
	Register(ctx context.Context, req model.RegisterRequest) (*model.User, error)
	Login(ctx context.Context, email, password string) (*model.LoginResponse, error)
	Logout(ctx context.Context, authorizationHeader string) error
}

type googleAuthService interface {
	AuthURL() (string, error)
	Callback(ctx context.Context, code, state string) (string, error)
}

type AuthHandler struct {
	svc    authService
	google googleAuthService
}

func NewAuthHandler(svc authService, google googleAuthService) *AuthHandler {
	return &AuthHandler{svc: svc, google: google}
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body model.RegisterRequest true "Account details"
// @Success 201 {object} model.RegisterResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 409 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	user, err := h.svc.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrConflict) {
			c.JSON(http.StatusConflict, model.ErrorResponse{Error: "email already registered"})
			return
		}
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, model.RegisterResponse{
		Message: "User registered successfully",
		User:    user.Response(),
	})
}

// Login godoc
// @Summary Login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body model.LoginRequest true "Email and password"
// @Success 200 {object} model.LoginResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	resp, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, model.ErrorResponse{Error: "invalid credentials"})
			return
		}
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Logout godoc
// @Summary Logout
// @Description Revokes the presented bearer token. A token that is already revoked gets 401.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.LogoutResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.svc.Logout(c.Request.Context(), c.GetHeader("Authorization")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.LogoutResponse{Message: "Successfully logged out"})
}

// Me godoc
// @Summary Get current principal
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.AuthMeResponse
// @Failure 401 {object} model.ErrorResponse
// @Router /api/v1/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	p, ok := GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, model.ErrorResponse{Error: "unauthorized"})
		return
	}
	c.JSON(http.StatusOK, model.AuthMeResponse{UserID: p.Subject})
}

// GoogleURL godoc
// @Summary Google sign-in URL
// @Tags auth
// @Produce json
// @Success 200 {object} model.GoogleAuthURLResponse
// @Failure 503 {object} model.ErrorResponse
// @Router /api/v1/auth/google/url [get]
func (h *AuthHandler) GoogleURL(c *gin.Context) {
	authURL, err := h.google.AuthURL()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.GoogleAuthURLResponse{AuthURL: authURL})
}

// GoogleCallback godoc
// @Summary Google sign-in callback
// @Description Exchanges the code and redirects to the frontend dashboard with a session token.
// @Tags auth
// @Param code query string true "Authorization code"
// @Param state query string true "State from the sign-in URL"
// @Success 302
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 503 {object} model.ErrorResponse
// @Router /api/v1/auth/google/callback [get]
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	if errParam := c.Query("error"); errParam != "" {
		c.JSON(http.StatusUnauthorized, model.ErrorResponse{Error: "google sign-in was cancelled"})
		return
	}

	redirect, err := h.google.Callback(c.Request.Context(), c.Query("code"), c.Query("state"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.Redirect(http.StatusFound, redirect)
}
