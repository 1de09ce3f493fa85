package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/moodlog/backend/internal/db"
	"github.com/moodlog/backend/internal/model"
	"go.uber.org/zap"
)

type AuthService struct {
	users    UserRepository
	verifier *PasswordVerifier
	codec    *TokenCodec
	gate     *SessionGate
	tokenTTL time.Duration
	log      *zap.Logger
}

func NewAuthService(users UserRepository, verifier *PasswordVerifier, codec *TokenCodec, gate *SessionGate, tokenTTL time.Duration, log *zap.Logger) *AuthService {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthService{
		users:    users,
		verifier: verifier,
		codec:    codec,
		gate:     gate,
		tokenTTL: tokenTTL,
		log:      log,
	}
}

func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (*model.User, error) {
	username := strings.TrimSpace(req.Username)
	email := normalizeEmail(req.Email)
	if username == "" || email == "" || strings.TrimSpace(req.Password) == "" {
		return nil, ErrInvalidInput
	}

	hash, err := s.verifier.Hash(req.Password)
	if err != nil {
		s.log.Error("hash password", zap.Error(err))
		return nil, ErrInternal
	}

	user, err := s.users.CreateUser(ctx, &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Age:          req.Age,
		Gender:       req.Gender,
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, ErrConflict
		}
		s.log.Error("create user", zap.Error(err))
		return nil, ErrInternal
	}
	return user, nil
}

// Login returns ErrUnauthorized for an unknown email and for a wrong password alike.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.LoginResponse, error) {
	user, err := s.users.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrUnauthorized
		}
		s.log.Error("lookup user for login", zap.Error(err))
		return nil, ErrInternal
	}

	ok, err := s.verifier.Verify(password, user.PasswordHash)
	if err != nil {
		s.log.Error("verify password", zap.Int64("user_id", user.ID), zap.Error(err))
		return nil, ErrInternal
	}
	if !ok {
		return nil, ErrUnauthorized
	}

	return s.issue(user)
}

// Logout revokes the bearer token in authorizationHeader.
func (s *AuthService) Logout(ctx context.Context, authorizationHeader string) error {
	return s.gate.Logout(ctx, authorizationHeader)
}

func (s *AuthService) issue(user *model.User) (*model.LoginResponse, error) {
	token, expiresAt, err := s.codec.Issue(strconv.FormatInt(user.ID, 10), s.tokenTTL)
	if err != nil {
		s.log.Error("issue token", zap.Int64("user_id", user.ID), zap.Error(err))
		return nil, ErrInternal
	}
	return &model.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user.Response(),
	}, nil
}

// UserID converts the principal's subject to a user id.
func (p Principal) UserID() (int64, error) {
	id, err := strconv.ParseInt(p.Subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrUnauthorized
	}
	return id, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// internalUnless passes through the service sentinels and hides everything else.
func internalUnless(log *zap.Logger, op string, err error) error {
	for _, known := range []error{ErrInvalidInput, ErrUnauthorized, ErrNotFound, ErrConflict, ErrInternal} {
		if errors.Is(err, known) {
			return err
		}
	}
	log.Error(op, zap.Error(err))
	return ErrInternal
}
