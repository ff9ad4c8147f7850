package config

import (
	"fmt"
	"log"
	"net"
	"os"
	"strconv"
	"strings"

	gateway_errors "stream-gateway/pkg/errors"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort            string
	AppMode            string
	StreamAPIKey       string
	StreamSecretKey    string
	StreamBaseURL      string
	StreamTimeoutSec   int
	TokenValiditySec   int
	CORSAllowedOrigins []string
	TrustedProxies     []string
	RedisHost          string
	RedisPort          string
	RedisPassword      string
	RedisDB            int
	RateLimitTokens    int
	RateLimitWrites    int
	RateLimitWindowSec int
}

func LoadConfig() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		AppPort:            getEnv("APP_PORT", "3000"),
		AppMode:            getEnv("APP_MODE", "debug"),
		StreamAPIKey:       getEnv("STREAM_API_KEY", ""),
		StreamSecretKey:    getEnv("STREAM_SECRET_KEY", ""),
		StreamBaseURL:      getEnv("STREAM_BASE_URL", "https://chat.stream-io-api.com"),
		StreamTimeoutSec:   getEnvAsInt("STREAM_TIMEOUT_SEC", 10),
		TokenValiditySec:   getEnvAsInt("TOKEN_VALIDITY_SEC", 24*60*60),
		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		TrustedProxies:     getEnvAsList("TRUSTED_PROXIES", nil),
		RedisHost:          getEnv("REDIS_HOST", ""),
		RedisPort:          getEnv("REDIS_PORT", "6379"),
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),
		RedisDB:            getEnvAsInt("REDIS_DB", 0),
		RateLimitTokens:    getEnvAsInt("RATE_LIMIT_TOKENS", 30),
		RateLimitWrites:    getEnvAsInt("RATE_LIMIT_WRITES", 20),
		RateLimitWindowSec: getEnvAsInt("RATE_LIMIT_WINDOW_SEC", 60),
	}
}

// Validate reports missing credentials or nonsensical limits.
func (c *Config) Validate() error {
	if c.StreamAPIKey == "" {
		return fmt.Errorf("%w: STREAM_API_KEY is required", gateway_errors.ErrInvalidConfig)
	}
	if c.StreamSecretKey == "" {
		return fmt.Errorf("%w: STREAM_SECRET_KEY is required", gateway_errors.ErrInvalidConfig)
	}
	if c.TokenValiditySec <= 0 {
		return fmt.Errorf("%w: TOKEN_VALIDITY_SEC must be positive", gateway_errors.ErrInvalidConfig)
	}
	for _, proxy := range c.TrustedProxies {
		if !validProxy(proxy) {
			return fmt.Errorf("%w: TRUSTED_PROXIES entry %q is not an IP or CIDR", gateway_errors.ErrInvalidConfig, proxy)
		}
	}
	if !c.RedisEnabled() {
		return nil
	}
	if c.RateLimitWindowSec <= 0 {
		return fmt.Errorf("%w: RATE_LIMIT_WINDOW_SEC must be positive", gateway_errors.ErrInvalidConfig)
	}
	if c.RateLimitTokens <= 0 {
		return fmt.Errorf("%w: RATE_LIMIT_TOKENS must be positive", gateway_errors.ErrInvalidConfig)
	}
	if c.RateLimitWrites <= 0 {
		return fmt.Errorf("%w: RATE_LIMIT_WRITES must be positive", gateway_errors.ErrInvalidConfig)
	}
	return nil
}

// RedisEnabled is true when a Redis host has been configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisHost != ""
}

func validProxy(value string) bool {
	if strings.Contains(value, "/") {
		_, _, err := net.ParseCIDR(value)
		return err == nil
	}
	return net.ParseIP(value) != nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

func getEnvAsList(key string, fallback []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
