package handler

import (
	"net/http"

	"stream-gateway/internal/middleware"
	"stream-gateway/internal/services"
	"stream-gateway/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

const Greeting = "Stream gateway is running"

// GatewayHandler serves the user and token routes. Routes are expected to run
// behind middleware.RequireUserID and middleware.ErrorHandler.
type GatewayHandler struct {
	service *services.GatewayService
}

func NewGatewayHandler(service *services.GatewayService) *GatewayHandler {
	return &GatewayHandler{service: service}
}

func (h *GatewayHandler) UpsertUser(c *gin.Context) {
	if err := h.service.UpsertUser(c.Request.Context(), middleware.GetUserID(c)); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusOK)
}

func (h *GatewayHandler) IssueToken(c *gin.Context) {
	token, err := h.service.IssueToken(middleware.GetUserID(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, httpdto.TokenResponse{UserToken: token})
}

func (h *GatewayHandler) DeleteUser(c *gin.Context) {
	if err := h.service.DeleteUser(c.Request.Context(), middleware.GetUserID(c)); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusOK)
}

func (h *GatewayHandler) Greet(c *gin.Context) {
	c.String(http.StatusOK, Greeting)
}
