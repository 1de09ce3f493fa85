package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ErrMisconfigured is returned by Validate when startup configuration is unusable.
var ErrMisconfigured = errors.New("config invalid")

const (
	defaultTokenTTL            = 24 * time.Hour
	defaultRevocationRetention = 7 * 24 * time.Hour
	defaultSweepInterval       = 24 * time.Hour
	defaultQueryTimeout        = 3 * time.Second
)

type Config struct {
	Server      ServerConfig
	Auth        AuthConfig
	Postgres    PostgresConfig
	Redis       RedisConfig
	Google      GoogleConfig
	Log         LogConfig
	FrontendURL string
}

type ServerConfig struct {
	Port           string
	Env            string
	AllowedOrigins []string
}

type AuthConfig struct {
	JWTSecret           string
	TokenTTL            time.Duration
	RevocationRetention time.Duration
	SweepInterval       time.Duration
	BcryptCost          int
}

type PostgresConfig struct {
	DatabaseURL  string
	Host         string
	Port         string
	User         string
	Password     string
	Database     string
	SSLMode      string
	MaxConns     int32
	QueryTimeout time.Duration
}

type RedisConfig struct {
	URL string
}

type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// Enabled reports whether Google sign-in has been configured.
func (g GoogleConfig) Enabled() bool {
	return g.ClientID != "" && g.ClientSecret != "" && g.RedirectURL != ""
}

type LogConfig struct {
	Level string
}

// Load reads .env (when present) and the process environment.
// Malformed durations or numbers fall back to defaults; call Validate before use.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Server: ServerConfig{
			Port:           getenv("PORT", "8080"),
			Env:            getenv("APP_ENV", "development"),
			AllowedOrigins: getList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
		},
		Auth: AuthConfig{
			JWTSecret:           os.Getenv("JWT_SECRET"),
			TokenTTL:            getDuration("JWT_TTL", defaultTokenTTL),
			RevocationRetention: getDuration("REVOCATION_RETENTION", defaultRevocationRetention),
			SweepInterval:       getDuration("REVOCATION_SWEEP_INTERVAL", defaultSweepInterval),
			BcryptCost:          getInt("BCRYPT_COST", 0),
		},
		Postgres: PostgresConfig{
			DatabaseURL:  os.Getenv("DATABASE_URL"),
			Host:         getenv("PGHOST", "localhost"),
			Port:         getenv("PGPORT", "5432"),
			User:         os.Getenv("PGUSER"),
			Password:     os.Getenv("PGPASSWORD"),
			Database:     os.Getenv("PGDATABASE"),
			SSLMode:      getenv("PGSSLMODE", "disable"),
			MaxConns:     int32(getInt("PG_MAX_CONNS", 10)),
			QueryTimeout: getDuration("DB_QUERY_TIMEOUT", defaultQueryTimeout),
		},
		Redis: RedisConfig{
			URL: os.Getenv("REDIS_URL"),
		},
		Google: GoogleConfig{
			ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
			ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
			RedirectURL:  os.Getenv("GOOGLE_REDIRECT_URI"),
		},
		Log: LogConfig{
			Level: getenv("LOG_LEVEL", "info"),
		},
		FrontendURL: getenv("FRONTEND_URL", "http://localhost:5173"),
	}
}

// Validate enforces the settings the process cannot start without.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return fmt.Errorf("%w: JWT_SECRET is required", ErrMisconfigured)
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("%w: JWT_TTL must be positive", ErrMisconfigured)
	}
	if c.Auth.RevocationRetention <= 0 {
		return fmt.Errorf("%w: REVOCATION_RETENTION must be positive", ErrMisconfigured)
	}
	if c.Auth.SweepInterval <= 0 {
		return fmt.Errorf("%w: REVOCATION_SWEEP_INTERVAL must be positive", ErrMisconfigured)
	}
	if c.Postgres.QueryTimeout <= 0 {
		return fmt.Errorf("%w: DB_QUERY_TIMEOUT must be positive", ErrMisconfigured)
	}
	return nil
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return fallback
	}
	return d
}

func getInt(key string, fallback int) int {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return n
}

func getList(key string, fallback []string) []string {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
