package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"shortdash/internal/validation"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env      string // "development", "production", etc.
	LogLevel string // debug, info, warn, error

	// Server
	ServerAddr string
	BaseURL    string

	// Backend origins. Each controller talks to its own origin; the per-controller
	// values fall back to BackendURL.
	BackendURL     string
	ShortenAPIURL  string
	StatsAPIURL    string
	LinksAPIURL    string
	ShareDebugURL  string // origin used when building the sharing debugger link
	BackendTimeout time.Duration

	// Timezone the dashboard uses for "today" and the week boundary.
	Timezone string

	// Session
	SessionSecret      string // Used for encrypting cookies (min 32 chars)
	SessionIdleTimeout time.Duration
	RedisURL           string // Optional; sessions and rate limits use memory when empty

	// CORS
	CORSOrigins string // Comma-separated allowed origins

	// Requests per minute per IP
	RateLimit int

	// Error reporting
	SentryDSN string

	// Background jobs
	ProbeInterval time.Duration

	// Site Branding
	SiteTitle   string // env: SITE_TITLE, default: "Shortdash"
	SiteTagline string // env: SITE_TAGLINE
	SiteFooter  string // env: SITE_FOOTER
}

// Load reads configuration from environment variables with sensible defaults,
// then applies the optional YAML file on top.
func Load() (*Config, error) {
	cfg := &Config{
		Env:                getEnv("ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		ServerAddr:         getEnv("SERVER_ADDR", ":3000"),
		BaseURL:            getEnv("BASE_URL", "http://localhost:3000"),
		BackendURL:         getEnv("BACKEND_URL", "http://localhost:5000"),
		ShortenAPIURL:      getEnv("SHORTEN_API_URL", ""),
		StatsAPIURL:        getEnv("STATS_API_URL", ""),
		LinksAPIURL:        getEnv("LINKS_API_URL", ""),
		ShareDebugURL:      getEnv("SHARE_DEBUG_URL", ""),
		BackendTimeout:     getDuration("BACKEND_TIMEOUT", 10*time.Second),
		Timezone:           getEnv("TIMEZONE", "Local"),
		SessionSecret:      getEnv("SESSION_SECRET", "change-me-in-production-min-32-chars"),
		SessionIdleTimeout: getDuration("SESSION_IDLE_TIMEOUT", 30*time.Minute),
		RedisURL:           getEnv("REDIS_URL", ""),
		CORSOrigins:        getEnv("CORS_ORIGINS", ""),
		RateLimit:          getInt("RATE_LIMIT", 100),
		SentryDSN:          getEnv("SENTRY_DSN", ""),
		ProbeInterval:      getDuration("PROBE_INTERVAL", time.Minute),

		SiteTitle:   getEnv("SITE_TITLE", "Shortdash"),
		SiteTagline: getEnv("SITE_TAGLINE", "Rút gọn link"),
		SiteFooter:  getEnv("SITE_FOOTER", "Shortdash - URL shortener dashboard"),
	}

	yamlCfg, err := LoadYAMLConfig()
	if err != nil {
		return nil, err
	}
	yamlCfg.Apply(cfg)

	if _, err := cfg.Location(); err != nil {
		return nil, err
	}

	o := cfg.Origins()
	for name, origin := range map[string]string{
		"shorten":     o.Shorten,
		"stats":       o.Stats,
		"links":       o.Links,
		"share debug": o.ShareDebug,
	} {
		if err := validation.ValidateOrigin(origin); err != nil {
			return nil, fmt.Errorf("%s backend origin %q: %w", name, origin, err)
		}
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil && d > 0 {
		return d
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil && n > 0 {
		return n
	}
	return fallback
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// Origins is the resolved set of backend origins.
type Origins struct {
	Shorten    string
	Stats      string
	Links      string
	ShareDebug string
}

// Origins resolves each per-controller origin, falling back to BackendURL.
// The sharing debugger origin falls back to the links origin.
func (c *Config) Origins() Origins {
	o := Origins{
		Shorten: firstNonEmpty(c.ShortenAPIURL, c.BackendURL),
		Stats:   firstNonEmpty(c.StatsAPIURL, c.BackendURL),
		Links:   firstNonEmpty(c.LinksAPIURL, c.BackendURL),
	}
	o.ShareDebug = firstNonEmpty(c.ShareDebugURL, o.Links)
	return o
}

// Location returns the time zone used for the dashboard's notion of today.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// CORSAllowOrigins returns the allowed CORS origins, defaulting to BaseURL.
func (c *Config) CORSAllowOrigins() []string {
	origins := firstNonEmpty(c.CORSOrigins, c.BaseURL)
	out := make([]string, 0)
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
