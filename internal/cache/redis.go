package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const revokedKeyPrefix = "revoked:"

// Backend is the durable revocation store the cache sits in front of.
type Backend interface {
	IsRevoked(ctx context.Context, token string) (bool, error)
	Revoke(ctx context.Context, token string) error
	EvictOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// Client is the subset of *redis.Client used here.
type Client interface {
	Exists(ctx context.Context, keys ...string) *redis.IntCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// RevocationCache remembers revoked tokens in Redis. It only ever caches the
// positive answer; a miss or a Redis failure falls through to the backend.
type RevocationCache struct {
	backend Backend
	client  Client
	ttl     time.Duration
	log     *zap.Logger
}

func NewRevocationCache(backend Backend, client Client, ttl time.Duration, log *zap.Logger) *RevocationCache {
	if log == nil {
		log = zap.NewNop()
	}
	return &RevocationCache{backend: backend, client: client, ttl: ttl, log: log}
}

// NewRedisClient parses url and pings the server.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

func (c *RevocationCache) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := c.client.Exists(ctx, revokedKey(token)).Result()
	if err != nil {
		c.log.Warn("revocation cache lookup failed, falling back to database", zap.Error(err))
	} else if n > 0 {
		return true, nil
	}

	revoked, err := c.backend.IsRevoked(ctx, token)
	if err != nil {
		return false, err
	}
	if revoked {
		c.remember(ctx, token)
	}
	return revoked, nil
}

// Revoke writes the durable record first; the cache entry is best effort.
func (c *RevocationCache) Revoke(ctx context.Context, token string) error {
	if err := c.backend.Revoke(ctx, token); err != nil {
		return err
	}
	c.remember(ctx, token)
	return nil
}

// EvictOlderThan only touches the backend. Cache keys expire on their own.
func (c *RevocationCache) EvictOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	return c.backend.EvictOlderThan(ctx, cutoff)
}

func (c *RevocationCache) remember(ctx context.Context, token string) {
	if err := c.client.Set(ctx, revokedKey(token), 1, c.ttl).Err(); err != nil {
		c.log.Warn("revocation cache write failed", zap.Error(err))
	}
}

func revokedKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return revokedKeyPrefix + hex.EncodeToString(sum[:])
}
