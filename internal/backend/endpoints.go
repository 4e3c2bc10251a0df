package backend

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"shortdash/internal/models"
)

// OriginalURLUpdated is the exact confirmation message of POST /update1.
// Any other message, even with a 2xx status, means the update did not apply.
const OriginalURLUpdated = "Original URL updated successfully"

// Shorten creates a short link for longURL and returns its short URL in
// "/{code}" form. A response without short_url is a failure.
func (c *Client) Shorten(ctx context.Context, longURL string) (string, error) {
	var resp models.ShortenResponse
	err := c.do(ctx, call{
		endpoint: EndpointShorten,
		method:   http.MethodPost,
		origin:   c.origins.Shorten,
		path:     "/shorten",
		in:       models.ShortenRequest{URL: longURL},
		out:      &resp,
		confirm: func() string {
			if resp.ShortURL == "" {
				return "missing short_url"
			}
			return ""
		},
	})
	if err != nil {
		return "", err
	}
	return resp.ShortURL, nil
}

// Rename points the link currently known as currentCode at newURL and renames
// it to newCode. It succeeds only when the response carries a message.
func (c *Client) Rename(ctx context.Context, currentCode, newURL, newCode string) (string, error) {
	var resp models.MessageResponse
	err := c.do(ctx, call{
		endpoint: EndpointRename,
		method:   http.MethodPost,
		origin:   c.origins.Shorten,
		path:     "/update/" + url.PathEscape(currentCode),
		in:       models.RenameRequest{URL: newURL, NewShortURL: newCode},
		out:      &resp,
		confirm: func() string {
			if resp.Message == "" {
				return "missing message"
			}
			return ""
		},
	})
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

// Stats fetches the aggregate counters. Total clicks is the sum of the
// per-link breakdown, not a server-provided total.
func (c *Client) Stats(ctx context.Context) (models.AggregateStats, error) {
	var resp models.StatsResponse
	err := c.do(ctx, call{
		endpoint: EndpointStats,
		method:   http.MethodGet,
		origin:   c.origins.Stats,
		path:     "/stats",
		out:      &resp,
		confirm: func() string {
			if resp.ClickCounts == nil {
				return "missing click_counts"
			}
			return ""
		},
	})
	if err != nil {
		return models.AggregateStats{}, err
	}

	return models.AggregateStats{
		TotalURLs:        resp.TotalURLs,
		TotalURLsToday:   resp.TotalURLsToday,
		TotalClicks:      models.SumClicks(*resp.ClickCounts),
		TotalClicksToday: resp.TotalClicksToday,
	}, nil
}

// DailyClicks fetches the click breakdown behind the weekly chart. The
// backend does not timestamp the entries.
func (c *Client) DailyClicks(ctx context.Context) ([]models.ClickCount, error) {
	var resp models.DailyStatsResponse
	err := c.do(ctx, call{
		endpoint: EndpointDailyStats,
		method:   http.MethodGet,
		origin:   c.origins.Stats,
		path:     "/stats/daily",
		out:      &resp,
		confirm: func() string {
			if resp.ClickCounts == nil {
				return "missing click_counts"
			}
			return ""
		},
	})
	if err != nil {
		return nil, err
	}
	return *resp.ClickCounts, nil
}

// ListLinks fetches every short link in server order.
func (c *Client) ListLinks(ctx context.Context) ([]models.ShortLink, error) {
	var links []models.ShortLink
	err := c.do(ctx, call{
		endpoint: EndpointListLinks,
		method:   http.MethodGet,
		origin:   c.origins.Links,
		path:     "/all",
		out:      &links,
	})
	if err != nil {
		return nil, err
	}
	return links, nil
}

// UpdateOriginalURL points the link identified by shortURL at newOriginalURL.
// It succeeds only on a 2xx status with the exact OriginalURLUpdated message.
func (c *Client) UpdateOriginalURL(ctx context.Context, shortURL, newOriginalURL string) error {
	var resp models.MessageResponse
	return c.do(ctx, call{
		endpoint: EndpointUpdateOrigURL,
		method:   http.MethodPost,
		origin:   c.origins.Links,
		path:     "/update1/" + url.PathEscape(models.CodeFromShortURL(models.ShortPath(shortURL))),
		in:       models.UpdateOriginalRequest{NewOriginalURL: newOriginalURL},
		out:      &resp,
		confirm: func() string {
			if resp.Message != OriginalURLUpdated {
				return "unconfirmed update"
			}
			return ""
		},
	})
}

// Ping reports whether origin answers HTTP at all. Any response, whatever
// its status, counts as reachable.
func (c *Client) Ping(ctx context.Context, origin string) error {
	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, trimOrigin(origin)+"/", nil)
	if err != nil {
		return &RequestError{Endpoint: EndpointPing, Err: err}
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		c.observe(EndpointPing, OutcomeNetwork, time.Since(start))
		return &RequestError{Endpoint: EndpointPing, Err: err}
	}
	resp.Body.Close()

	c.observe(EndpointPing, OutcomeOK, time.Since(start))
	return nil
}
