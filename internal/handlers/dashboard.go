package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"
)

// DashboardHandler renders the statistics dashboard.
type DashboardHandler struct {
	wait time.Duration
}

// NewDashboardHandler creates a dashboard handler that waits up to wait for
// the dashboard's fetches before rendering what it has.
func NewDashboardHandler(wait time.Duration) *DashboardHandler {
	return &DashboardHandler{wait: wait}
}

// Show renders the dashboard partial. While a fetch is still running the
// partial keeps polling.
func (h *DashboardHandler) Show(c fiber.Ctx) error {
	p, err := currentPage(c)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Context(), h.wait)
	defer cancel()
	_ = p.WaitDashboard(ctx)

	return renderPartial(c, "partials/dashboard", newDashboardView(p))
}
