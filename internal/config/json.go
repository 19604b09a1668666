package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/nomad-tales/nomadtales/internal/flagx"
)

// jsonConfig is the DTO for the optional JSON config file. Durations are
// given in seconds so the file stays plain.
type jsonConfig struct {
	APIBaseURL        string `json:"api_base_url"`
	RequestTimeoutSec int    `json:"request_timeout_sec"`
	HomeDir           string `json:"home_dir"`
	LogLevel          string `json:"log_level"`
}

// parseJSON overlays settings from the file named by -c/-config. No flag
// means no file and no error; a named file that cannot be read or parsed is
// a configuration error.
func parseJSON(cfg *Config) error {
	path := flagx.ConfigFileFlags()
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.RequestTimeoutSec > 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeoutSec) * time.Second
	}
	if jc.HomeDir != "" {
		cfg.HomeDir = jc.HomeDir
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	return nil
}
