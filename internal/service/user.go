package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/moodlog/backend/internal/db"
	"github.com/moodlog/backend/internal/model"
	"go.uber.org/zap"
)

const (
	maxAvatarBase64Len = 7_000_000 // about 5MB decoded
	maxAvatarURLLen    = 2000
)

type UserService struct {
	users    UserRepository
	verifier *PasswordVerifier
	log      *zap.Logger
}

func NewUserService(users UserRepository, verifier *PasswordVerifier, log *zap.Logger) *UserService {
	if log == nil {
		log = zap.NewNop()
	}
	return &UserService{users: users, verifier: verifier, log: log}
}

func (s *UserService) Profile(ctx context.Context, userID int64) (*model.User, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, s.notFoundOr("get profile", err)
	}
	return user, nil
}

func (s *UserService) EditProfile(ctx context.Context, userID int64, req model.EditProfileRequest) (*model.User, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = normalizeEmail(req.Email)
	if req.Username == "" || req.Email == "" {
		return nil, fmt.Errorf("%w: username and email are required", ErrInvalidInput)
	}
	if req.Avatar != nil && *req.Avatar == "" {
		req.Avatar = nil
	}
	if req.Avatar != nil {
		if err := ValidateAvatar(*req.Avatar); err != nil {
			return nil, err
		}
	}

	user, err := s.users.UpdateProfile(ctx, userID, req)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: email already exists", ErrConflict)
		}
		return nil, s.notFoundOr("update profile", err)
	}
	return user, nil
}

// ChangePassword requires the current password. Existing sessions stay valid.
func (s *UserService) ChangePassword(ctx context.Context, userID int64, req model.ChangePasswordRequest) error {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return s.notFoundOr("get user for password change", err)
	}

	ok, err := s.verifier.Verify(req.OldPassword, user.PasswordHash)
	if err != nil {
		s.log.Error("verify old password", zap.Int64("user_id", userID), zap.Error(err))
		return ErrInternal
	}
	if !ok {
		return fmt.Errorf("%w: invalid old password", ErrInvalidInput)
	}

	hash, err := s.verifier.Hash(req.NewPassword)
	if err != nil {
		s.log.Error("hash new password", zap.Error(err))
		return ErrInternal
	}
	if err := s.users.UpdatePasswordHash(ctx, userID, hash); err != nil {
		return s.notFoundOr("update password", err)
	}
	return nil
}

// ValidateAvatar accepts an http(s) URL or a base64 data:image URI.
func ValidateAvatar(avatar string) error {
	switch {
	case strings.HasPrefix(avatar, "data:image/"):
		idx := strings.Index(avatar, "base64,")
		if idx < 0 {
			return fmt.Errorf("%w: invalid image data format", ErrInvalidInput)
		}
		data := avatar[idx+len("base64,"):]
		if len(data) > maxAvatarBase64Len {
			return fmt.Errorf("%w: image too large, maximum size is 5MB", ErrInvalidInput)
		}
		if _, err := base64.StdEncoding.DecodeString(data); err != nil {
			return fmt.Errorf("%w: invalid base64 image data", ErrInvalidInput)
		}
		return nil
	case strings.HasPrefix(avatar, "http://"), strings.HasPrefix(avatar, "https://"):
		if len(avatar) > maxAvatarURLLen {
			return fmt.Errorf("%w: avatar URL too long", ErrInvalidInput)
		}
		return nil
	default:
		return fmt.Errorf("%w: avatar must be a base64 image or a URL", ErrInvalidInput)
	}
}

func (s *UserService) notFoundOr(op string, err error) error {
	if db.IsNoRows(err) {
		return fmt.Errorf("%w: user not found", ErrNotFound)
	}
	return internalUnless(s.log, op, err)
}
