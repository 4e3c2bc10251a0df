package handlers

import (
	"github.com/gofiber/fiber/v3"
)

// Readiness reports whether the backend origins answered their last probe.
type Readiness interface {
	Ready() bool
	Status() map[string]bool
}

// ProbeHandler handles Kubernetes health probe endpoints.
type ProbeHandler struct {
	backend Readiness
}

// NewProbeHandler creates a new probe handler.
func NewProbeHandler(backend Readiness) *ProbeHandler {
	return &ProbeHandler{backend: backend}
}

// Liveness handles the /healthz endpoint for Kubernetes liveness probes.
// Returns 200 OK if the application is running.
func (h *ProbeHandler) Liveness(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
	})
}

// Readiness handles the /readyz endpoint for Kubernetes readiness probes.
// Returns 200 OK once every backend origin answered its last probe.
func (h *ProbeHandler) Readiness(c fiber.Ctx) error {
	if !h.backend.Ready() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status":   "error",
			"error":    "backend unavailable",
			"backends": h.backend.Status(),
		})
	}

	return c.JSON(fiber.Map{
		"status":   "ok",
		"backends": h.backend.Status(),
	})
}
