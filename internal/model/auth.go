package model

import "time"

type RegisterRequest struct {
	Username string  `json:"username" binding:"required,min=3,max=64"`
	Email    string  `json:"email" binding:"required,email,max=255"`
	Password string  `json:"password" binding:"required,min=8,max=72"`
	Age      *int32  `json:"age" binding:"omitempty,min=1,max=150"`
	Gender   *string `json:"gender" binding:"omitempty,max=50"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

type RegisterResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}

type LogoutResponse struct {
	Message string `json:"message"`
}

type AuthMeResponse struct {
	UserID string `json:"user_id"`
}

type GoogleAuthURLResponse struct {
	AuthURL string `json:"auth_url"`
}

// GoogleUserInfo is the subset of ID-token claims used to find or create a user.
type GoogleUserInfo struct {
	Subject       string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	Picture       string `json:"picture"`
}
