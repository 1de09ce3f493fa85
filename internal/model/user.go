package model

import "time"

type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	Age          *int32
	Gender       *string
	Avatar       *string
	Settings     *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserResponse is the public view of a user. The password hash is never serialized.
type UserResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Age       *int32    `json:"age"`
	Gender    *string   `json:"gender"`
	Avatar    *string   `json:"avatar"`
	Settings  *string   `json:"settings"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) Response() UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Age:       u.Age,
		Gender:    u.Gender,
		Avatar:    u.Avatar,
		Settings:  u.Settings,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type EditProfileRequest struct {
	Username string  `json:"username" binding:"required,min=3,max=64"`
	Email    string  `json:"email" binding:"required,email,max=255"`
	Age      *int32  `json:"age" binding:"omitempty,min=1,max=150"`
	Gender   *string `json:"gender" binding:"omitempty,max=50"`
	Avatar   *string `json:"avatar"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=72"`
}
