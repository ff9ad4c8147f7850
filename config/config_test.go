package config

import (
	"os"
	"testing"

	gateway_errors "stream-gateway/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{
		"APP_PORT", "APP_MODE", "STREAM_API_KEY", "STREAM_SECRET_KEY", "STREAM_BASE_URL",
		"TOKEN_VALIDITY_SEC", "CORS_ALLOWED_ORIGINS", "TRUSTED_PROXIES", "REDIS_HOST",
		"RATE_LIMIT_TOKENS", "RATE_LIMIT_WRITES", "RATE_LIMIT_WINDOW_SEC",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	cfg := LoadConfig()

	assert.Equal(t, "3000", cfg.AppPort)
	assert.Equal(t, "debug", cfg.AppMode)
	assert.Equal(t, "https://chat.stream-io-api.com", cfg.StreamBaseURL)
	assert.Equal(t, 24*60*60, cfg.TokenValiditySec)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Nil(t, cfg.TrustedProxies)
	assert.False(t, cfg.RedisEnabled())
	assert.Equal(t, 30, cfg.RateLimitTokens)
	assert.Equal(t, 60, cfg.RateLimitWindowSec)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("APP_PORT", "8081")
	t.Setenv("STREAM_API_KEY", "key")
	t.Setenv("STREAM_SECRET_KEY", "secret")
	t.Setenv("TOKEN_VALIDITY_SEC", "3600")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("REDIS_HOST", "localhost")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8,127.0.0.1")

	cfg := LoadConfig()

	assert.Equal(t, "8081", cfg.AppPort)
	assert.Equal(t, "key", cfg.StreamAPIKey)
	assert.Equal(t, "secret", cfg.StreamSecretKey)
	assert.Equal(t, 3600, cfg.TokenValiditySec)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.RedisEnabled())
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, []string{"10.0.0.0/8", "127.0.0.1"}, cfg.TrustedProxies)
	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			StreamAPIKey:       "key",
			StreamSecretKey:    "secret",
			TokenValiditySec:   86400,
			RateLimitTokens:    30,
			RateLimitWrites:    20,
			RateLimitWindowSec: 60,
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "missing api key", mutate: func(c *Config) { c.StreamAPIKey = "" }, wantErr: true},
		{name: "missing secret", mutate: func(c *Config) { c.StreamSecretKey = "" }, wantErr: true},
		{name: "zero validity", mutate: func(c *Config) { c.TokenValiditySec = 0 }, wantErr: true},
		{name: "bad window ignored without redis", mutate: func(c *Config) { c.RateLimitWindowSec = 0 }},
		{
			name: "bad window with redis",
			mutate: func(c *Config) {
				c.RedisHost = "localhost"
				c.RateLimitWindowSec = 0
			},
			wantErr: true,
		},
		{name: "zero limits ignored without redis", mutate: func(c *Config) { c.RateLimitTokens, c.RateLimitWrites = 0, 0 }},
		{
			name: "zero token limit with redis",
			mutate: func(c *Config) {
				c.RedisHost = "localhost"
				c.RateLimitTokens = 0
			},
			wantErr: true,
		},
		{
			name: "negative write limit with redis",
			mutate: func(c *Config) {
				c.RedisHost = "localhost"
				c.RateLimitWrites = -1
			},
			wantErr: true,
		},
		{name: "trusted proxies", mutate: func(c *Config) { c.TrustedProxies = []string{"10.0.0.0/8", "::1"} }},
		{name: "bad trusted proxy", mutate: func(c *Config) { c.TrustedProxies = []string{"proxy.internal"} }, wantErr: true},
		{name: "bad trusted cidr", mutate: func(c *Config) { c.TrustedProxies = []string{"10.0.0.0/99"} }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, gateway_errors.ErrInvalidConfig)
				return
			}
			assert.NoError(t, err)
		})
	}
}
