package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_TTL", "")
	t.Setenv("REVOCATION_RETENTION", "")
	t.Setenv("REVOCATION_SWEEP_INTERVAL", "")

	cfg := Load()

	require.Equal(t, "s3cret", cfg.Auth.JWTSecret)
	require.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	require.Equal(t, 7*24*time.Hour, cfg.Auth.RevocationRetention)
	require.Equal(t, 24*time.Hour, cfg.Auth.SweepInterval)
	require.Equal(t, 3*time.Second, cfg.Postgres.QueryTimeout)
	require.NoError(t, cfg.Validate())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_TTL", "2h")
	t.Setenv("REVOCATION_RETENTION", "48h")
	t.Setenv("REVOCATION_SWEEP_INTERVAL", "30m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")

	cfg := Load()

	require.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
	require.Equal(t, 48*time.Hour, cfg.Auth.RevocationRetention)
	require.Equal(t, 30*time.Minute, cfg.Auth.SweepInterval)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
}

func TestLoadBadDurationFallsBack(t *testing.T) {
	t.Setenv("JWT_TTL", "one day")

	cfg := Load()

	require.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
}

func TestValidateRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	err := Load().Validate()

	require.Error(t, err)
	require.True(t, errors.Is(err, ErrMisconfigured))
}

func TestValidateRejectsNonPositiveDurations(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("REVOCATION_SWEEP_INTERVAL", "-1h")

	err := Load().Validate()

	require.ErrorIs(t, err, ErrMisconfigured)
}

func TestGoogleEnabled(t *testing.T) {
	require.False(t, GoogleConfig{ClientID: "id"}.Enabled())
	require.True(t, GoogleConfig{ClientID: "id", ClientSecret: "secret", RedirectURL: "http://x/cb"}.Enabled())
}
