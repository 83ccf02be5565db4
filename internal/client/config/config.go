// Package config handles configuration for the FinMate CLI, including
// defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the FinMate CLI.
//
// Fields:
//   - ServerBaseURL: base URL of the backend REST API.
//   - SessionDBPath: path of the local SQLite session database.
//   - SessionPollInterval: cadence of the render gate's backstop poll.
type Config struct {
	ServerBaseURL       string
	SessionDBPath       string
	SessionPollInterval time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8000"
	c.SessionDBPath = "finmate.db"
	c.SessionPollInterval = 250 * time.Millisecond
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present). Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
