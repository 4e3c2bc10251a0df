package handlers

import (
	"github.com/gofiber/fiber/v3"
)

// FormHandler handles the shortening form and its result modal.
type FormHandler struct{}

// NewFormHandler creates a new form handler.
func NewFormHandler() *FormHandler {
	return &FormHandler{}
}

// Shorten submits a new URL. Failures show up inline in the re-rendered form.
func (h *FormHandler) Shorten(c fiber.Ctx) error {
	p, err := currentPage(c)
	if err != nil {
		return err
	}

	_ = p.Form.SubmitNewURL(p.Context(), c.FormValue("url"))
	return renderPartial(c, "partials/shorten_form", p.Form.State())
}

// Rename renames the short link shown in the modal.
func (h *FormHandler) Rename(c fiber.Ctx) error {
	p, err := currentPage(c)
	if err != nil {
		return err
	}

	_ = p.Form.SubmitRename(p.Context(), c.FormValue("short_code"), c.FormValue("url"))
	return renderPartial(c, "partials/shorten_form", p.Form.State())
}

// Copy copies the short link to the clipboard.
func (h *FormHandler) Copy(c fiber.Ctx) error {
	p, err := currentPage(c)
	if err != nil {
		return err
	}

	_ = p.Form.CopyShareLink(htmxEnv{c})
	return c.SendString("")
}

// Close discards the form and reloads the whole view.
func (h *FormHandler) Close(c fiber.Ctx) error {
	p, err := currentPage(c)
	if err != nil {
		return err
	}

	p.Form.CloseAndReset(htmxEnv{c})
	return c.SendString("")
}
