package models

// Wire payloads exchanged with the URL-shortening backend.

// ShortenRequest is the body of POST /shorten.
type ShortenRequest struct {
	URL string `json:"url"`
}

// ShortenResponse carries the created short URL in "/{code}" form.
type ShortenResponse struct {
	ShortURL string `json:"short_url"`
}

// RenameRequest is the body of POST /update/{code}.
type RenameRequest struct {
	URL         string `json:"url"`
	NewShortURL string `json:"new_short_url"`
}

// UpdateOriginalRequest is the body of POST /update1/{code}.
type UpdateOriginalRequest struct {
	NewOriginalURL string `json:"new_original_url"`
}

// MessageResponse is the confirmation envelope of the update endpoints.
// Error is filled by the backend on some failures.
type MessageResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// StatsResponse is the body of GET /stats. ClickCounts is a pointer so a
// missing breakdown can be told apart from an empty one.
type StatsResponse struct {
	TotalURLs        int           `json:"total_urls"`
	TotalURLsToday   int           `json:"total_urls_today"`
	ClickCounts      *[]ClickCount `json:"click_counts"`
	TotalClicksToday int           `json:"total_clicks_today"`
}

// DailyStatsResponse is the body of GET /stats/daily.
type DailyStatsResponse struct {
	ClickCounts *[]ClickCount `json:"click_counts"`
}
