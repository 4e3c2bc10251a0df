// Package controllers holds the per-page view state of the shortening form,
// the statistics dashboard and the recent links list, and the operations that
// change it. Controllers never render; handlers read their State snapshots.
package controllers

import (
	"context"

	"shortdash/internal/models"
)

// Environment is what the controllers need from the browser.
type Environment interface {
	// CopyText puts text on the user's clipboard.
	CopyText(text string) error
	// ResetView reloads the whole view from scratch.
	ResetView()
}

// ShortenerAPI creates and renames short links.
type ShortenerAPI interface {
	Shorten(ctx context.Context, longURL string) (string, error)
	Rename(ctx context.Context, currentCode, newURL, newCode string) (string, error)
}

// StatsAPI reads the dashboard counters.
type StatsAPI interface {
	Stats(ctx context.Context) (models.AggregateStats, error)
	DailyClicks(ctx context.Context) ([]models.ClickCount, error)
}

// LinksAPI lists links and edits their destination.
type LinksAPI interface {
	ListLinks(ctx context.Context) ([]models.ShortLink, error)
	UpdateOriginalURL(ctx context.Context, shortURL, newOriginalURL string) error
}
