package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"finmate"}

	cfg := LoadConfig()
	require.Equal(t, "http://127.0.0.1:8000", cfg.ServerBaseURL)
	require.Equal(t, "finmate.db", cfg.SessionDBPath)
	require.Equal(t, 250*time.Millisecond, cfg.SessionPollInterval)
}

func TestLoadConfig_FlagsOverrideDefaults(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"finmate", "-a", "http://example.org:9000", "-p", "500"}

	cfg := LoadConfig()
	require.Equal(t, "http://example.org:9000", cfg.ServerBaseURL)
	require.Equal(t, 500*time.Millisecond, cfg.SessionPollInterval)
}

func TestLoadConfig_JsonOverlay_FlagsWin(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()

	path := filepath.Join(t.TempDir(), "conf.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"server_base_url": "http://from-json:8000",
		"session_db_path": "json.db",
		"session_poll_interval": "100ms"
	}`), 0o600))

	os.Args = []string{"finmate", "-c", path, "-a", "http://from-flag:8000"}

	cfg := LoadConfig()
	require.Equal(t, "http://from-flag:8000", cfg.ServerBaseURL)
	require.Equal(t, "json.db", cfg.SessionDBPath)
	require.Equal(t, 100*time.Millisecond, cfg.SessionPollInterval)
}
