package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/pathlight/internal/service"
	"github.com/pathlight/pkg/response"
)

// HealthHandler reports backend and store status
type HealthHandler struct {
	healthService *service.HealthService
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(healthService *service.HealthService) *HealthHandler {
	return &HealthHandler{
		healthService: healthService,
	}
}

// Health always answers 200; store problems show up in the db field
// GET /healthz
func (h *HealthHandler) Health(c *gin.Context) {
	response.Success(c, h.healthService.Check(c.Request.Context()))
}

// RegisterRoutes registers health routes
func (h *HealthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/healthz", h.Health)
}
