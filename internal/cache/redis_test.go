package cache

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	revoked      map[string]bool
	isRevokedN   int
	isRevokedErr error
	revokeErr    error
	evicted      int64
	cutoff       time.Time
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{revoked: map[string]bool{}}
}

func (f *fakeBackend) IsRevoked(_ context.Context, token string) (bool, error) {
	f.isRevokedN++
	if f.isRevokedErr != nil {
		return false, f.isRevokedErr
	}
	return f.revoked[token], nil
}

func (f *fakeBackend) Revoke(_ context.Context, token string) error {
	if f.revokeErr != nil {
		return f.revokeErr
	}
	f.revoked[token] = true
	return nil
}

func (f *fakeBackend) EvictOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	f.cutoff = cutoff
	return f.evicted, nil
}

type fakeClient struct {
	keys   map[string]time.Duration
	err    error
	setErr error
}

func newFakeClient() *fakeClient {
	return &fakeClient{keys: map[string]time.Duration{}}
}

func (f *fakeClient) Exists(_ context.Context, keys ...string) *redis.IntCmd {
	if f.err != nil {
		return redis.NewIntResult(0, f.err)
	}
	var n int64
	for _, k := range keys {
		if _, ok := f.keys[k]; ok {
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func (f *fakeClient) Set(_ context.Context, key string, _ interface{}, expiration time.Duration) *redis.StatusCmd {
	if f.setErr != nil {
		return redis.NewStatusResult("", f.setErr)
	}
	f.keys[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func TestRevocationCache_RevokeWritesBackendThenCache(t *testing.T) {
	backend := newFakeBackend()
	client := newFakeClient()
	c := NewRevocationCache(backend, client, time.Hour, nil)

	require.NoError(t, c.Revoke(context.Background(), "tok"))
	require.True(t, backend.revoked["tok"])
	require.Equal(t, time.Hour, client.keys[revokedKey("tok")])

	revoked, err := c.IsRevoked(context.Background(), "tok")
	require.NoError(t, err)
	require.True(t, revoked)
	require.Zero(t, backend.isRevokedN)
}

func TestRevocationCache_RevokeBackendFailureSkipsCache(t *testing.T) {
	backend := newFakeBackend()
	backend.revokeErr = errors.New("db down")
	client := newFakeClient()
	c := NewRevocationCache(backend, client, time.Hour, nil)

	require.Error(t, c.Revoke(context.Background(), "tok"))
	require.Empty(t, client.keys)
}

func TestRevocationCache_MissFallsThrough(t *testing.T) {
	backend := newFakeBackend()
	backend.revoked["tok"] = true
	client := newFakeClient()
	c := NewRevocationCache(backend, client, time.Hour, nil)

	revoked, err := c.IsRevoked(context.Background(), "tok")
	require.NoError(t, err)
	require.True(t, revoked)
	require.Equal(t, 1, backend.isRevokedN)
	require.Contains(t, client.keys, revokedKey("tok"))

	revoked, err = c.IsRevoked(context.Background(), "other")
	require.NoError(t, err)
	require.False(t, revoked)
	require.NotContains(t, client.keys, revokedKey("other"))
}

func TestRevocationCache_RedisErrorNeverAllows(t *testing.T) {
	backend := newFakeBackend()
	backend.revoked["tok"] = true
	client := newFakeClient()
	client.err = errors.New("redis down")
	client.setErr = client.err
	c := NewRevocationCache(backend, client, time.Hour, nil)

	revoked, err := c.IsRevoked(context.Background(), "tok")
	require.NoError(t, err)
	require.True(t, revoked)

	backend.isRevokedErr = errors.New("db down")
	_, err = c.IsRevoked(context.Background(), "tok")
	require.Error(t, err)
}

func TestRevocationCache_EvictDelegates(t *testing.T) {
	backend := newFakeBackend()
	backend.evicted = 3
	c := NewRevocationCache(backend, newFakeClient(), time.Hour, nil)

	cutoff := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	n, err := c.EvictOlderThan(context.Background(), cutoff)
	require.NoError(t, err)
	require.Equal(t, int64(3), n)
	require.Equal(t, cutoff, backend.cutoff)
}

func TestRevokedKeyHidesToken(t *testing.T) {
	key := revokedKey("secret.token.value")
	require.True(t, strings.HasPrefix(key, revokedKeyPrefix))
	require.NotContains(t, key, "secret")
	require.Len(t, key, len(revokedKeyPrefix)+64)
}
