package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsDev())
	assert.Equal(t, ":3000", cfg.ServerAddr)
	assert.Equal(t, 10*time.Second, cfg.BackendTimeout)
	assert.Equal(t, 100, cfg.RateLimit)

	o := cfg.Origins()
	assert.Equal(t, "http://localhost:5000", o.Shorten)
	assert.Equal(t, "http://localhost:5000", o.Stats)
	assert.Equal(t, "http://localhost:5000", o.Links)
	assert.Equal(t, o.Links, o.ShareDebug)
}

func TestLoad_PerControllerOrigins(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("BACKEND_URL", "https://api.example")
	t.Setenv("STATS_API_URL", "https://stats.example")
	t.Setenv("LINKS_API_URL", "https://links.example")
	t.Setenv("SHARE_DEBUG_URL", "https://share.example")
	t.Setenv("BACKEND_TIMEOUT", "3s")
	t.Setenv("RATE_LIMIT", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	o := cfg.Origins()
	assert.Equal(t, "https://api.example", o.Shorten)
	assert.Equal(t, "https://stats.example", o.Stats)
	assert.Equal(t, "https://links.example", o.Links)
	assert.Equal(t, "https://share.example", o.ShareDebug)
	assert.Equal(t, 3*time.Second, cfg.BackendTimeout)
	assert.Equal(t, 100, cfg.RateLimit)
}

func TestLoad_InvalidTimezone(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("TIMEZONE", "Not/AZone")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_YAMLOverridesEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
backend:
  url: https://yaml.example
  shorten: https://shorten.example
  timeout: 7s
branding:
  title: Links
`), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("BACKEND_URL", "https://env.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://shorten.example", cfg.Origins().Shorten)
	assert.Equal(t, "https://yaml.example", cfg.Origins().Stats)
	assert.Equal(t, 7*time.Second, cfg.BackendTimeout)
	assert.Equal(t, "Links", cfg.SiteTitle)
}

func TestLocation(t *testing.T) {
	loc, err := (&Config{Timezone: "UTC"}).Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)

	loc, err = (&Config{Timezone: "Not/AZone"}).Location()
	require.Error(t, err)
	assert.Nil(t, loc)
}

func TestParseYAMLConfig_Invalid(t *testing.T) {
	_, err := ParseYAMLConfig([]byte("backend: [unclosed"))
	require.Error(t, err)
}

func TestCORSAllowOrigins(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		expected []string
	}{
		{"defaults to base url", Config{BaseURL: "http://localhost:3000"}, []string{"http://localhost:3000"}},
		{"splits and trims", Config{CORSOrigins: "https://a.example, https://b.example,"}, []string{"https://a.example", "https://b.example"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.cfg.CORSAllowOrigins())
		})
	}
}

func TestLoad_RejectsBadOrigin(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("LINKS_API_URL", "ftp://links.example")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "links backend origin")
}
