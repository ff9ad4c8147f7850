package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stream-gateway/config"
	"stream-gateway/internal/handler"
	"stream-gateway/internal/middleware"
	"stream-gateway/internal/redis"
	"stream-gateway/pkg/logger"

	"github.com/gin-gonic/gin"
)

type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
	config     *config.Config
	logger     *logger.Logger
}

var (
	ReleaseMode = "release"
	DebugMode   = "debug"
	TestMode    = "test"
)

type Handlers struct {
	Gateway *handler.GatewayHandler
	Health  *handler.HealthHandler
}

// New builds the server. Forwarded client addresses are honoured only when
// sent by one of cfg.TrustedProxies; with none configured the socket peer is
// the client IP.
func New(cfg *config.Config, l *logger.Logger) (*Server, error) {
	if cfg.AppMode == ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	} else if cfg.AppMode == TestMode {
		gin.SetMode(gin.TestMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}
	engine.Use(gin.Recovery())

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%s", cfg.AppPort),
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
		engine: engine,
		config: cfg,
		logger: l,
	}, nil
}

// SetupRoutes registers the middleware chain and routes. limiter may be nil.
func (s *Server) SetupRoutes(handlers *Handlers, limiter *redis.RateLimiter) {
	s.engine.Use(middleware.RequestIDMiddleware())
	s.engine.Use(middleware.LoggingMiddleware(s.logger))
	s.engine.Use(middleware.CORSMiddleware(s.config.CORSAllowedOrigins))
	s.engine.Use(middleware.ErrorHandler())

	s.engine.GET("/", handlers.Gateway.Greet)
	s.engine.GET("/ping", handlers.Health.Ping)
	s.engine.GET("/health", handlers.Health.Health)

	writes := middleware.RateLimitMiddleware(limiter, redis.ScopeWrites, s.logger)
	tokens := middleware.RateLimitMiddleware(limiter, redis.ScopeTokens, s.logger)

	s.engine.POST("/users", middleware.RequireUserID(), writes, handlers.Gateway.UpsertUser)
	s.engine.DELETE("/users", middleware.RequireUserID(), writes, handlers.Gateway.DeleteUser)
	s.engine.GET("/tokens", middleware.RequireUserID(), tokens, handlers.Gateway.IssueToken)
}

// Handler exposes the engine, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) Start() error {
	errCh := make(chan error, 1)
	go func() {
		if s.logger != nil {
			s.logger.Infof("Starting the server on port %s...", s.config.AppPort)
		}
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		if s.logger != nil {
			s.logger.Errorf("Error in starting the server: %s", err)
		}
		return err
	case <-quit:
	}

	if s.logger != nil {
		s.logger.Infof("Quitting signal received.. Shutting down after 5 seconds")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		if s.logger != nil {
			s.logger.Infof("Error in the graceful shutdown of the server: %s", err)
		}
		return err
	}

	if s.logger != nil {
		s.logger.Infof("Server stopped gracefully")
	}

	return nil
}
