package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/support-desk/internal/service"
)

// AnalyticsHandler serves the derived ticket statistics.
type AnalyticsHandler struct {
	analytics *service.AnalyticsService
}

// NewAnalyticsHandler constructs handler.
func NewAnalyticsHandler(analytics *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

// GetSnapshot GET /analytics.
func (h *AnalyticsHandler) GetSnapshot(c *fiber.Ctx) error {
	snapshot, err := h.analytics.Compute(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": snapshot})
}
