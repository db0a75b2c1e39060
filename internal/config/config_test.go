package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "github.com/diogo/tutorchat/internal/errors"
)

var overrideKeys = []string{
	"TUTORCHAT_ENDPOINT", "TUTORCHAT_CHAT_PATH", "TUTORCHAT_REQUEST_TIMEOUT",
	"TUTORCHAT_VERBOSE", "TUTORCHAT_COPY_TO_CLIPBOARD", "TUTORCHAT_FALLBACK_MESSAGE",
	"TUTORCHAT_FOCUS_DELAY_MS", "TUTORCHAT_COPY_RESET_MS", "TUTORCHAT_SERVER_HOST",
	"TUTORCHAT_SERVER_PORT", "GEMINI_API_KEY", "TUTORCHAT_GENERATOR_BASE_URL",
	"TUTORCHAT_GENERATOR_MODEL", "TUTORCHAT_SYSTEM_PROMPT", "GLAMOUR_STYLE",
	"TUTORCHAT_TUI_THEME",
}

// useTempConfigDir points the config at a temp dir and hides any override
// variables from the developer's environment.
func useTempConfigDir(t *testing.T) string {
	t.Helper()
	for _, key := range overrideKeys {
		if old, ok := os.LookupEnv(key); ok {
			os.Unsetenv(key)
			t.Cleanup(func() { os.Setenv(key, old) })
		}
	}
	dir := t.TempDir()
	t.Setenv("TUTORCHAT_CONFIG_DIR", dir)
	return dir
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "http://localhost:8000", cfg.Endpoint)
	assert.Equal(t, "/api/chat/", cfg.ChatPath)
	assert.Equal(t, "Sorry, something went wrong. Please try again.", cfg.Widget.FallbackMessage)
	assert.Equal(t, 300*time.Millisecond, cfg.Widget.FocusDelay())
	assert.Equal(t, 2*time.Second, cfg.Widget.CopyResetDelay())
	assert.Equal(t, 120*time.Second, cfg.Timeout())
	assert.Equal(t, "gemini-2.0-flash-lite-001", cfg.Server.Model)
	assert.NoError(t, cfg.Validate())
}

func TestChatURL(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Endpoint = "https://jobs.example.com/"
	assert.Equal(t, "https://jobs.example.com/api/chat/", cfg.ChatURL())
}

func TestServerAddr(t *testing.T) {
	assert.Equal(t, "127.0.0.1:8000", DefaultConfig().Server.Addr())
}

func TestGetConfigDir_Override(t *testing.T) {
	dir := useTempConfigDir(t)

	got, err := GetConfigDir()
	require.NoError(t, err)
	assert.Equal(t, dir, got)

	path, err := GetConfigPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.json"), path)
}

func TestLoadConfig_FileNotExists(t *testing.T) {
	useTempConfigDir(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestSaveAndLoadConfig(t *testing.T) {
	dir := useTempConfigDir(t)

	cfg := DefaultConfig()
	cfg.Endpoint = "http://tutor.internal:9000"
	cfg.Widget.CopyResetMS = 500
	cfg.Verbose = true
	require.NoError(t, SaveConfig(cfg))

	info, err := os.Stat(filepath.Join(dir, "config.json"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	useTempConfigDir(t)
	t.Setenv("TUTORCHAT_ENDPOINT", "https://override.example.com")
	t.Setenv("TUTORCHAT_REQUEST_TIMEOUT", "0")
	t.Setenv("TUTORCHAT_SERVER_PORT", "9090")
	t.Setenv("GEMINI_API_KEY", "secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://override.example.com", cfg.Endpoint)
	assert.Equal(t, time.Duration(0), cfg.Timeout())
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "secret", cfg.Server.APIKey)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	dir := useTempConfigDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte("{not json"), 0o600))

	cfg, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"relative endpoint", func(c *Config) { c.Endpoint = "localhost:8000" }, "endpoint"},
		{"ftp endpoint", func(c *Config) { c.Endpoint = "ftp://x" }, "endpoint"},
		{"chat path", func(c *Config) { c.ChatPath = "api/chat/" }, "chat_path"},
		{"negative timeout", func(c *Config) { c.RequestTimeout = -1 }, "request_timeout"},
		{"negative delay", func(c *Config) { c.Widget.CopyResetMS = -5 }, "widget"},
		{"port", func(c *Config) { c.Server.Port = 70000 }, "server.port"},
		{"max conns", func(c *Config) { c.Server.MaxConns = -1 }, "server.max_conns"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)

			err := cfg.Validate()
			var cfgErr *apierrors.ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tc.field, cfgErr.Field)
		})
	}
}
