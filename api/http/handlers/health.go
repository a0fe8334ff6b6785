package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/hr-trainer/pkg/health"
)

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	svc     health.ReadinessUseCase
	started time.Time
}

func NewHealthHandler(svc health.ReadinessUseCase) *HealthHandler {
	return &HealthHandler{svc: svc, started: time.Now()}
}

// Health: basic liveness check.
// @Summary Liveness probe
// @Tags    health
// @Produce json
// @Success 200 {object} map[string]any
// @Router  /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"uptime":    time.Since(h.started).Round(time.Second).String(),
	})
}

// Ready: readiness check with dependency pings.
// @Summary Readiness probe
// @Tags    health
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 503 {object} map[string]any
// @Router  /ready [get]
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()
	if err := h.svc.Ready(ctx); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status":  "not_ready",
			"details": err.Error(),
			"checks":  h.svc.Report(ctx),
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ready", "checks": h.svc.Report(ctx)})
}
