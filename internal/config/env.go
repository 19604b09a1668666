package config

import (
	"os"

	"github.com/joho/godotenv"
)

// parseEnv overlays settings from the environment, loading a .env file from
// the working directory first if one exists. Unset variables leave the
// current value untouched.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("NOMADTALES_API_BASE_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("NOMADTALES_HOME"); v != "" {
		cfg.HomeDir = v
	}
	if v := os.Getenv("NOMADTALES_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}
