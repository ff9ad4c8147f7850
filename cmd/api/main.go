package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"stream-gateway/config"
	"stream-gateway/internal/handler"
	"stream-gateway/internal/redis"
	"stream-gateway/internal/server"
	"stream-gateway/internal/services"
	"stream-gateway/internal/stream"
	"stream-gateway/pkg/logger"

	goredis "github.com/redis/go-redis/v9"
)

func main() {
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	l := logger.New(cfg.AppMode)
	if err := run(cfg, l); err != nil {
		l.Errorf("Server exited with error: %v", err)
		_ = l.Sync()
		log.Fatalf("Fatal: %v", err)
	}
	_ = l.Sync()
}

func run(cfg *config.Config, l *logger.Logger) error {
	client, err := stream.NewClient(cfg.StreamAPIKey, cfg.StreamSecretKey, stream.Options{
		BaseURL: cfg.StreamBaseURL,
		Timeout: time.Duration(cfg.StreamTimeoutSec) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("create stream client: %w", err)
	}

	var (
		rdb     *goredis.Client
		limiter *redis.RateLimiter
	)
	if cfg.RedisEnabled() {
		rdb, err = redis.Connect(context.Background(), redis.Config{
			Host:     cfg.RedisHost,
			Port:     cfg.RedisPort,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return err
		}
		defer rdb.Close()

		limiter = redis.NewRateLimiter(rdb, redis.RateLimitConfig{
			TokenLimit: cfg.RateLimitTokens,
			WriteLimit: cfg.RateLimitWrites,
			Window:     time.Duration(cfg.RateLimitWindowSec) * time.Second,
		})
		l.Infof("Rate limiting enabled via redis at %s:%s", cfg.RedisHost, cfg.RedisPort)
	}

	gateway := services.NewGatewayService(client, cfg)

	srv, err := server.New(cfg, l)
	if err != nil {
		return err
	}
	srv.SetupRoutes(&server.Handlers{
		Gateway: handler.NewGatewayHandler(gateway),
		Health:  handler.NewHealthHandler(rdb),
	}, limiter)

	return srv.Start()
}
