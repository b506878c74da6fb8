package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/event-kit/ticketing-service/internal/observability"
)

// AdminHandler exposes operational endpoints behind the gate.
type AdminHandler struct {
	metrics *observability.Metrics
}

// NewAdminHandler constructs handler.
func NewAdminHandler(metrics *observability.Metrics) *AdminHandler {
	return &AdminHandler{metrics: metrics}
}

// Metrics GET /admin/metrics: snapshot of request/error counters.
func (h *AdminHandler) Metrics(c *fiber.Ctx) error {
	requests, errs := h.metrics.Snapshot()
	return c.JSON(fiber.Map{
		"requests": requests,
		"errors":   errs,
	})
}
