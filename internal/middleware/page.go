package middleware

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/session"
	"github.com/google/uuid"

	"shortdash/internal/page"
)

const (
	pageKeySession = "page_key"
	pageLocal      = "page"
)

// PageMiddleware attaches the browser session's Page to each request.
type PageMiddleware struct {
	pages *page.Registry
}

// NewPageMiddleware creates a new page middleware instance.
func NewPageMiddleware(pages *page.Registry) *PageMiddleware {
	return &PageMiddleware{pages: pages}
}

// MountPage mounts a fresh Page for the session, replacing any existing one.
// Used by full page loads, which always start over.
func (m *PageMiddleware) MountPage(c fiber.Ctx) error {
	key, err := pageKey(c)
	if err != nil {
		return err
	}

	c.Locals(pageLocal, m.pages.Mount(key))
	return c.Next()
}

// RequirePage loads the session's Page, mounting one if it was swept or never
// existed.
func (m *PageMiddleware) RequirePage(c fiber.Ctx) error {
	key, err := pageKey(c)
	if err != nil {
		return err
	}

	c.Locals(pageLocal, m.pages.GetOrMount(key))
	return c.Next()
}

// CurrentPage returns the Page attached by MountPage or RequirePage.
func CurrentPage(c fiber.Ctx) *page.Page {
	p, _ := c.Locals(pageLocal).(*page.Page)
	return p
}

// pageKey returns the session's page key, creating one on first use.
func pageKey(c fiber.Ctx) (string, error) {
	sess := session.FromContext(c)
	if sess == nil {
		return "", fiber.NewError(fiber.StatusInternalServerError, "session not available")
	}

	key, _ := sess.Get(pageKeySession).(string)
	if key == "" {
		key = uuid.NewString()
		sess.Set(pageKeySession, key)
	}
	return key, nil
}
