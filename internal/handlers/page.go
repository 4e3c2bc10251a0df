package handlers

import (
	"github.com/gofiber/fiber/v3"

	"shortdash/internal/config"
)

// PageHandler renders the full page.
type PageHandler struct {
	cfg *config.Config
}

// NewPageHandler creates a new page handler.
func NewPageHandler(cfg *config.Config) *PageHandler {
	return &PageHandler{cfg: cfg}
}

// Index renders a freshly mounted page. The dashboard and the recent links
// start as placeholders that load themselves once their fetches settle.
func (h *PageHandler) Index(c fiber.Ctx) error {
	p, err := currentPage(c)
	if err != nil {
		return err
	}

	return c.Render("index", LayoutData(h.cfg, h.cfg.SiteTitle, fiber.Map{
		"Form": p.Form.State(),
	}))
}
