package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"
)

// RecentHandler handles the recent links list and its edit modal.
type RecentHandler struct {
	wait time.Duration
}

// NewRecentHandler creates a recent links handler that waits up to wait for
// the list fetch before rendering what it has.
func NewRecentHandler(wait time.Duration) *RecentHandler {
	return &RecentHandler{wait: wait}
}

// List renders the recent links partial.
func (h *RecentHandler) List(c fiber.Ctx) error {
	p, err := currentPage(c)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Context(), h.wait)
	defer cancel()
	_ = p.WaitRecent(ctx)

	return renderPartial(c, "partials/recent_links", newRecentView(p))
}

// Edit opens the edit modal for the link named by the short_url query.
func (h *RecentHandler) Edit(c fiber.Ctx) error {
	p, err := currentPage(c)
	if err != nil {
		return err
	}

	if err := p.Recent.Edit(c.Query("short_url")); err != nil {
		c.Set("HX-Retarget", "#recent-links-notice")
		c.Set("HX-Reswap", "innerHTML")
		return htmxError(c, "Link not found. Reload the page to see the latest links.")
	}
	return renderPartial(c, "partials/recent_links", newRecentView(p))
}

// Save sends the edited destination. A failed save is only logged; the modal
// stays open with the draft.
func (h *RecentHandler) Save(c fiber.Ctx) error {
	p, err := currentPage(c)
	if err != nil {
		return err
	}

	p.Recent.SetDraft(c.FormValue("original_url"))
	_ = p.Recent.SaveEdit(p.Context())
	return renderPartial(c, "partials/recent_links", newRecentView(p))
}

// CloseEdit closes the edit modal without saving.
func (h *RecentHandler) CloseEdit(c fiber.Ctx) error {
	p, err := currentPage(c)
	if err != nil {
		return err
	}

	p.Recent.CloseEdit()
	return renderPartial(c, "partials/recent_links", newRecentView(p))
}

// Copy copies the qualified link named by the short_url form value.
func (h *RecentHandler) Copy(c fiber.Ctx) error {
	p, err := currentPage(c)
	if err != nil {
		return err
	}

	_ = p.Recent.CopyLink(htmxEnv{c}, c.FormValue("short_url"))
	return c.SendString("")
}
