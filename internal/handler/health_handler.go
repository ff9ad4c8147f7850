package handler

import (
	"context"
	"net/http"
	"time"

	"stream-gateway/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
)

type HealthHandler struct {
	redis *goredis.Client
}

// NewHealthHandler builds the health handler. redis may be nil when rate
// limiting is disabled.
func NewHealthHandler(redis *goredis.Client) *HealthHandler {
	return &HealthHandler{redis: redis}
}

func (h *HealthHandler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.MessageResponse{Message: "pong"}))
}

func (h *HealthHandler) Health(c *gin.Context) {
	if h.redis == nil {
		c.JSON(http.StatusOK, httpdto.HealthResponse{Status: "healthy"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.redis.Ping(ctx).Err(); err != nil {
		c.JSON(http.StatusServiceUnavailable, httpdto.HealthResponse{
			Status: "unhealthy",
			Checks: map[string]string{"redis": err.Error()},
		})
		return
	}
	c.JSON(http.StatusOK, httpdto.HealthResponse{
		Status: "healthy",
		Checks: map[string]string{"redis": "ok"},
	})
}
