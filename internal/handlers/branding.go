package handlers

import (
	"github.com/gofiber/fiber/v3"

	"shortdash/internal/config"
)

// LayoutData builds the template data for a full page rendered inside
// layouts/main. Keys in data win over the branding keys.
func LayoutData(cfg *config.Config, title string, data fiber.Map) fiber.Map {
	out := fiber.Map{
		"Title":       title,
		"SiteTitle":   cfg.SiteTitle,
		"SiteTagline": cfg.SiteTagline,
		"SiteFooter":  cfg.SiteFooter,
	}
	for k, v := range data {
		out[k] = v
	}
	return out
}
