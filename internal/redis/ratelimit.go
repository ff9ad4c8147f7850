package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Rate limiting key patterns:
// - ratelimit:{ip}:tokens - token issuance per client
// - ratelimit:{ip}:writes - user upserts and deletes per client

type Scope string

const (
	ScopeTokens Scope = "tokens"
	ScopeWrites Scope = "writes"
)

// RateLimitConfig contains configuration for rate limiting
type RateLimitConfig struct {
	TokenLimit int           // Max token requests per window
	WriteLimit int           // Max user writes per window
	Window     time.Duration // Window shared by both scopes
}

// DefaultRateLimitConfig returns sensible defaults
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		TokenLimit: 30,
		WriteLimit: 20,
		Window:     60 * time.Second,
	}
}

// RateLimiter handles rate limiting using Redis
type RateLimiter struct {
	client *goredis.Client
	config RateLimitConfig
}

// RateLimitResult contains the result of a rate limit check
type RateLimitResult struct {
	Allowed   bool
	Remaining int
	ResetIn   time.Duration
	Limit     int
}

func NewRateLimiter(client *goredis.Client, config RateLimitConfig) *RateLimiter {
	return &RateLimiter{
		client: client,
		config: config,
	}
}

// Fixed window counter. The window starts on the first hit for a key.
var limitScript = goredis.NewScript(`
	local key = KEYS[1]
	local limit = tonumber(ARGV[1])
	local window = tonumber(ARGV[2])

	local current = tonumber(redis.call('GET', key) or '0')
	local ttl = redis.call('TTL', key)

	if current >= limit then
		if ttl < 0 then
			ttl = window
		end
		return {0, 0, ttl}
	end

	current = redis.call('INCR', key)
	if ttl < 0 then
		redis.call('EXPIRE', key, window)
		ttl = window
	end
	return {1, limit - current, ttl}
`)

// Allow records one hit for key in scope and reports whether it is permitted.
func (r *RateLimiter) Allow(ctx context.Context, scope Scope, key string) (*RateLimitResult, error) {
	limit := r.limitFor(scope)
	return r.checkLimit(ctx, r.key(scope, key), limit, r.config.Window)
}

// Reset clears the counter for key in scope.
func (r *RateLimiter) Reset(ctx context.Context, scope Scope, key string) error {
	return r.client.Del(ctx, r.key(scope, key)).Err()
}

func (r *RateLimiter) limitFor(scope Scope) int {
	switch scope {
	case ScopeTokens:
		return r.config.TokenLimit
	default:
		return r.config.WriteLimit
	}
}

func (r *RateLimiter) key(scope Scope, key string) string {
	return fmt.Sprintf("ratelimit:%s:%s", key, scope)
}

func (r *RateLimiter) checkLimit(ctx context.Context, key string, limit int, window time.Duration) (*RateLimitResult, error) {
	seconds := int(window.Seconds())
	if seconds < 1 {
		seconds = 1
	}

	result, err := limitScript.Run(ctx, r.client, []string{key}, limit, seconds).Result()
	if err != nil {
		return nil, fmt.Errorf("rate limit check failed: %w", err)
	}

	values, ok := result.([]interface{})
	if !ok || len(values) < 3 {
		return nil, fmt.Errorf("unexpected rate limit result format")
	}

	allowed, ok1 := values[0].(int64)
	remaining, ok2 := values[1].(int64)
	resetIn, ok3 := values[2].(int64)
	if !ok1 || !ok2 || !ok3 {
		return nil, fmt.Errorf("unexpected rate limit result format")
	}

	return &RateLimitResult{
		Allowed:   allowed == 1,
		Remaining: int(remaining),
		ResetIn:   time.Duration(resetIn) * time.Second,
		Limit:     limit,
	}, nil
}
