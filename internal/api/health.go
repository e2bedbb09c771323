package api

import (
	"time"

	"github.com/Egham-7/llm-router/internal/models"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	cfg      *models.RouterConfig
	loadedAt time.Time
}

// NewHealthHandler creates a new health check handler
func NewHealthHandler(cfg *models.RouterConfig) *HealthHandler {
	return &HealthHandler{
		cfg:      cfg,
		loadedAt: time.Now().UTC(),
	}
}

// HealthCheck returns the health status of the service and its configuration
func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	if h.cfg == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status":    "unhealthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"checks": fiber.Map{
				"config": "missing",
			},
		})
	}

	return c.JSON(fiber.Map{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"checks": fiber.Map{
			"config":    "loaded",
			"loaded_at": h.loadedAt.Format(time.RFC3339),
			"policies":  len(h.cfg.Policies),
		},
	})
}
