// Package config loads the runtime settings of the Nomad Tales CLI.
// Sources are layered: built-in defaults, then .env/environment, then an
// optional JSON file, then command-line flags. Later sources win.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"
)

// Config holds runtime settings for the Nomad Tales CLI.
//
// APIBaseURL is the backend base URL and has no default: starting without
// one is a configuration error.
type Config struct {
	APIBaseURL     string
	RequestTimeout time.Duration
	HomeDir        string // directory holding the credential file
	LogLevel       string
}

// ErrBaseURLMissing is returned when no source supplied the backend URL.
var ErrBaseURLMissing = errors.New("backend base URL is not configured (set NOMADTALES_API_BASE_URL or pass -a)")

// LoadDefaults populates c with sensible defaults for everything that has one.
func (c *Config) LoadDefaults() {
	c.RequestTimeout = 12 * time.Second
	if home, err := os.UserHomeDir(); err == nil {
		c.HomeDir = filepath.Join(home, ".nomadtales")
	}
	c.LogLevel = "info"
}

// LoadConfig builds the effective configuration from all sources.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	if err := parseJSON(cfg); err != nil {
		return nil, err
	}
	parseFlags(cfg)

	if cfg.APIBaseURL == "" {
		return nil, ErrBaseURLMissing
	}
	return cfg, nil
}
