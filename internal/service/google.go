package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	mathrand "math/rand/v2"
	"net/url"
	"strings"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/moodlog/backend/internal/config"
	"github.com/moodlog/backend/internal/db"
	"github.com/moodlog/backend/internal/model"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	googleIssuer   = "https://accounts.google.com"
	googleJWKSURL  = "https://www.googleapis.com/oauth2/v3/certs"
	oauthStateTTL  = 10 * time.Minute
	oauthStateSubj = "google_oauth_state"
)

// CodeExchanger is satisfied by *oauth2.Config.
type CodeExchanger interface {
	AuthCodeURL(state string, opts ...oauth2.AuthCodeOption) string
	Exchange(ctx context.Context, code string, opts ...oauth2.AuthCodeOption) (*oauth2.Token, error)
}

// IdentityVerifier checks a raw ID token and returns its claims.
type IdentityVerifier interface {
	VerifyIdentity(ctx context.Context, rawIDToken string) (model.GoogleUserInfo, error)
}

type oidcIdentityVerifier struct {
	verifier *oidc.IDTokenVerifier
}

// NewOIDCIdentityVerifier verifies Google ID tokens against keys.
func NewOIDCIdentityVerifier(keys oidc.KeySet, clientID string, now func() time.Time) IdentityVerifier {
	return &oidcIdentityVerifier{
		verifier: oidc.NewVerifier(googleIssuer, keys, &oidc.Config{ClientID: clientID, Now: now}),
	}
}

func (v *oidcIdentityVerifier) VerifyIdentity(ctx context.Context, rawIDToken string) (model.GoogleUserInfo, error) {
	token, err := v.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return model.GoogleUserInfo{}, err
	}
	var info model.GoogleUserInfo
	if err := token.Claims(&info); err != nil {
		return model.GoogleUserInfo{}, err
	}
	return info, nil
}

// GoogleService runs the OAuth authorization-code flow and signs the user in.
// The state parameter is a short-lived token signed with a key derived from
// the session secret, so the callback needs no server-side storage.
type GoogleService struct {
	oauth       CodeExchanger
	identity    IdentityVerifier
	states      *TokenCodec
	users       UserRepository
	verifier    *PasswordVerifier
	auth        *AuthService
	frontendURL string
	log         *zap.Logger
}

type GoogleDeps struct {
	Users       UserRepository
	Verifier    *PasswordVerifier
	Auth        *AuthService
	StateSecret string
	FrontendURL string
	Log         *zap.Logger
}

// NewGoogleService wires the real Google endpoints. It returns nil when cfg is not enabled.
func NewGoogleService(cfg config.GoogleConfig, deps GoogleDeps) *GoogleService {
	if !cfg.Enabled() {
		return nil
	}
	keys := oidc.NewRemoteKeySet(context.Background(), googleJWKSURL)
	return NewGoogleServiceWith(googleOAuthConfig(cfg), NewOIDCIdentityVerifier(keys, cfg.ClientID, time.Now), deps)
}

func googleOAuthConfig(cfg config.GoogleConfig) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURL,
		Endpoint:     google.Endpoint,
		Scopes:       []string{oidc.ScopeOpenID, "email", "profile"},
	}
}

func NewGoogleServiceWith(oauth CodeExchanger, identity IdentityVerifier, deps GoogleDeps) *GoogleService {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &GoogleService{
		oauth:       oauth,
		identity:    identity,
		states:      NewTokenCodec(deps.StateSecret + ":google-oauth-state"),
		users:       deps.Users,
		verifier:    deps.Verifier,
		auth:        deps.Auth,
		frontendURL: strings.TrimRight(deps.FrontendURL, "/"),
		log:         log,
	}
}

// AuthURL returns the Google consent URL with a fresh state.
func (s *GoogleService) AuthURL() (string, error) {
	if s == nil {
		return "", ErrGoogleDisabled
	}
	state, _, err := s.states.Issue(oauthStateSubj, oauthStateTTL)
	if err != nil {
		s.log.Error("issue oauth state", zap.Error(err))
		return "", ErrInternal
	}
	return s.oauth.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.SetAuthURLParam("prompt", "consent")), nil
}

// Callback exchanges code for tokens, signs the user in (creating the account
// on first use) and returns the frontend URL to redirect to.
func (s *GoogleService) Callback(ctx context.Context, code, state string) (string, error) {
	if s == nil {
		return "", ErrGoogleDisabled
	}
	if strings.TrimSpace(code) == "" {
		return "", fmt.Errorf("%w: code is required", ErrInvalidInput)
	}
	if id, err := s.states.Decode(state); err != nil || id.Subject != oauthStateSubj {
		return "", ErrUnauthorized
	}

	token, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		s.log.Warn("google code exchange failed", zap.Error(err))
		return "", ErrUnauthorized
	}
	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		s.log.Error("google token response has no id_token")
		return "", ErrInternal
	}

	info, err := s.identity.VerifyIdentity(ctx, rawIDToken)
	if err != nil {
		s.log.Warn("google id token rejected", zap.Error(err))
		return "", ErrUnauthorized
	}
	if info.Email == "" || !info.EmailVerified {
		return "", ErrUnauthorized
	}

	user, isNew, err := s.findOrCreate(ctx, info)
	if err != nil {
		return "", err
	}

	session, err := s.auth.issue(user)
	if err != nil {
		return "", err
	}

	q := url.Values{}
	if isNew {
		q.Set("welcome", "1")
	}
	q.Set("token", session.Token)
	return s.frontendURL + "/dashboard?" + q.Encode(), nil
}

func (s *GoogleService) findOrCreate(ctx context.Context, info model.GoogleUserInfo) (*model.User, bool, error) {
	email := normalizeEmail(info.Email)
	user, err := s.users.GetUserByEmail(ctx, email)
	if err == nil {
		return user, false, nil
	}
	if !db.IsNoRows(err) {
		return nil, false, internalUnless(s.log, "lookup google user", err)
	}

	// The account gets an unusable random password; sign-in stays with Google.
	hash, err := s.verifier.Hash(randomString(24))
	if err != nil {
		s.log.Error("hash placeholder password", zap.Error(err))
		return nil, false, ErrInternal
	}

	newUser := &model.User{
		Username:     usernameFor(info),
		Email:        email,
		PasswordHash: hash,
	}
	if info.Picture != "" {
		picture := info.Picture
		newUser.Avatar = &picture
	}

	created, err := s.users.CreateUser(ctx, newUser)
	if err != nil {
		if db.IsUniqueViolation(err) {
			// Lost a race with a concurrent first sign-in.
			existing, getErr := s.users.GetUserByEmail(ctx, email)
			if getErr == nil {
				return existing, false, nil
			}
		}
		return nil, false, internalUnless(s.log, "create google user", err)
	}
	s.log.Info("created user from google sign-in", zap.Int64("user_id", created.ID))
	return created, true, nil
}

func usernameFor(info model.GoogleUserInfo) string {
	base := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(info.GivenName), " ", ""))
	if base == "" {
		base, _, _ = strings.Cut(info.Email, "@")
	}
	if base == "" {
		base = "user"
	}
	return fmt.Sprintf("%s%d", base, 1000+mathrand.IntN(9000))
}

func randomString(n int) string {
	raw := make([]byte, n)
	_, _ = rand.Read(raw)
	return base64.RawURLEncoding.EncodeToString(raw)
}
