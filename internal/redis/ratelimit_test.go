package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(t *testing.T, cfg RateLimitConfig) (*RateLimiter, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRateLimiter(client, cfg), mr
}

func TestAllowWithinLimit(t *testing.T) {
	limiter, mr := newTestLimiter(t, RateLimitConfig{TokenLimit: 3, WriteLimit: 1, Window: time.Minute})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		res, err := limiter.Allow(ctx, ScopeTokens, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, res.Allowed)
		assert.Equal(t, 2-i, res.Remaining)
		assert.Equal(t, 3, res.Limit)
		assert.Equal(t, time.Minute, res.ResetIn)
	}

	res, err := limiter.Allow(ctx, ScopeTokens, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, 0, res.Remaining)

	assert.Equal(t, time.Minute, mr.TTL("ratelimit:10.0.0.1:tokens"))
}

func TestScopesAndKeysAreIndependent(t *testing.T) {
	limiter, _ := newTestLimiter(t, RateLimitConfig{TokenLimit: 1, WriteLimit: 1, Window: time.Minute})
	ctx := context.Background()

	res, err := limiter.Allow(ctx, ScopeWrites, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, res.Allowed)

	res, err = limiter.Allow(ctx, ScopeWrites, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, res.Allowed)

	res, err = limiter.Allow(ctx, ScopeTokens, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, res.Allowed)

	res, err = limiter.Allow(ctx, ScopeWrites, "10.0.0.2")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}

func TestWindowExpires(t *testing.T) {
	limiter, mr := newTestLimiter(t, RateLimitConfig{TokenLimit: 1, WriteLimit: 1, Window: 30 * time.Second})
	ctx := context.Background()

	res, err := limiter.Allow(ctx, ScopeTokens, "ip")
	require.NoError(t, err)
	assert.True(t, res.Allowed)

	res, err = limiter.Allow(ctx, ScopeTokens, "ip")
	require.NoError(t, err)
	assert.False(t, res.Allowed)

	mr.FastForward(31 * time.Second)

	res, err = limiter.Allow(ctx, ScopeTokens, "ip")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}

func TestReset(t *testing.T) {
	limiter, _ := newTestLimiter(t, RateLimitConfig{TokenLimit: 1, WriteLimit: 1, Window: time.Minute})
	ctx := context.Background()

	_, err := limiter.Allow(ctx, ScopeWrites, "ip")
	require.NoError(t, err)
	require.NoError(t, limiter.Reset(ctx, ScopeWrites, "ip"))

	res, err := limiter.Allow(ctx, ScopeWrites, "ip")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}

func TestAllowRedisDown(t *testing.T) {
	limiter, mr := newTestLimiter(t, DefaultRateLimitConfig())
	mr.Close()

	_, err := limiter.Allow(context.Background(), ScopeTokens, "ip")
	assert.Error(t, err)
}

func TestConnect(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := Config{Host: mr.Host(), Port: mr.Port()}

	client, err := Connect(context.Background(), cfg)
	require.NoError(t, err)
	require.NoError(t, client.Close())

	mr.Close()
	_, err = Connect(context.Background(), cfg)
	assert.Error(t, err)
}
