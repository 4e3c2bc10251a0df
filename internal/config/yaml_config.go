package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// YAMLConfig represents the structure of the config.yaml file.
// Backend origins are easier to keep together in a file than in four env vars.
type YAMLConfig struct {
	Backend  BackendConfig  `yaml:"backend"`
	Branding BrandingConfig `yaml:"branding"`
}

// BackendConfig lists the backend origins per controller.
type BackendConfig struct {
	URL        string `yaml:"url"`
	Shorten    string `yaml:"shorten"`
	Stats      string `yaml:"stats"`
	Links      string `yaml:"links"`
	ShareDebug string `yaml:"share_debug"`
	Timeout    string `yaml:"timeout,omitempty"` // Go duration, e.g. "5s"
}

// BrandingConfig overrides the site branding.
type BrandingConfig struct {
	Title   string `yaml:"title"`
	Tagline string `yaml:"tagline"`
	Footer  string `yaml:"footer"`
}

// LoadYAMLConfig loads the YAML configuration file.
// Path is determined by CONFIG_FILE env var, defaulting to "config.yaml".
// Returns nil without error if the config file doesn't exist.
func LoadYAMLConfig() (*YAMLConfig, error) {
	path := getEnv("CONFIG_FILE", "config.yaml")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Config file is optional
			return nil, nil
		}
		return nil, err
	}

	return ParseYAMLConfig(data)
}

// ParseYAMLConfig decodes a YAML document into a YAMLConfig.
func ParseYAMLConfig(data []byte) (*YAMLConfig, error) {
	var cfg YAMLConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	return &cfg, nil
}

// Apply overlays every non-empty value of the file onto cfg.
func (y *YAMLConfig) Apply(cfg *Config) {
	if y == nil {
		return
	}

	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}

	set(&cfg.BackendURL, y.Backend.URL)
	set(&cfg.ShortenAPIURL, y.Backend.Shorten)
	set(&cfg.StatsAPIURL, y.Backend.Stats)
	set(&cfg.LinksAPIURL, y.Backend.Links)
	set(&cfg.ShareDebugURL, y.Backend.ShareDebug)
	set(&cfg.SiteTitle, y.Branding.Title)
	set(&cfg.SiteTagline, y.Branding.Tagline)
	set(&cfg.SiteFooter, y.Branding.Footer)

	if y.Backend.Timeout != "" {
		if d, err := time.ParseDuration(y.Backend.Timeout); err == nil && d > 0 {
			cfg.BackendTimeout = d
		}
	}
}
