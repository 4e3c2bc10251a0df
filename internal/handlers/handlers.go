package handlers

import (
	"html"

	"github.com/gofiber/fiber/v3"

	"shortdash/internal/middleware"
	"shortdash/internal/page"
)

// htmxError answers with an alert fragment. The status stays 200 since HTMX
// skips swaps for error statuses.
func htmxError(c fiber.Ctx, message string) error {
	return c.SendString(
		`<div class="alert alert-danger small mb-0">` + html.EscapeString(message) + `</div>`,
	)
}

// renderPartial renders a template without the page layout.
func renderPartial(c fiber.Ctx, name string, data any) error {
	return c.Render(name, data, "")
}

// currentPage returns the request's Page or fails the request.
func currentPage(c fiber.Ctx) (*page.Page, error) {
	p := middleware.CurrentPage(c)
	if p == nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "page not available")
	}
	return p, nil
}
