package config

import (
	"encoding/json"
	"os"

	"github.com/finmate-app/finmate/internal/flagx"
	"github.com/finmate-app/finmate/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like
// "250ms" or as integer nanoseconds.
type JsonConfig struct {
	ServerBaseURL       string         `json:"server_base_url"`
	SessionDBPath       string         `json:"session_db_path"`
	SessionPollInterval timex.Duration `json:"session_poll_interval"`
}

// parseJson overlays cfg with values loaded from the JSON file named by
// the -c/-config flags. When no file is named, nothing happens. Read or
// unmarshal errors panic; the caller owns recovery.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerBaseURL != "" {
		cfg.ServerBaseURL = jc.ServerBaseURL
	}
	if jc.SessionDBPath != "" {
		cfg.SessionDBPath = jc.SessionDBPath
	}
	if jc.SessionPollInterval.Duration > 0 {
		cfg.SessionPollInterval = jc.SessionPollInterval.Duration
	}
}
