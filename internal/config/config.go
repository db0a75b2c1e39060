// Package config handles configuration for tutorchat.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	apierrors "github.com/diogo/tutorchat/internal/errors"
	"github.com/diogo/tutorchat/internal/models"
)

// MarkdownConfig configures terminal markdown rendering options
type MarkdownConfig struct {
	Style            string `json:"style" env:"GLAMOUR_STYLE"` // "dark", "light", or path to JSON theme
	EnableEmoji      bool   `json:"enable_emoji"`              // Convert :emoji: to unicode
	PreserveNewLines bool   `json:"preserve_newlines"`         // Preserve original line breaks
}

// WidgetConfig configures the chat widget behavior
type WidgetConfig struct {
	// FallbackMessage is shown when a request fails or returns garbage.
	FallbackMessage string `json:"fallback_message" env:"TUTORCHAT_FALLBACK_MESSAGE"`
	// FocusDelayMS delays focusing the input after the window opens.
	FocusDelayMS int `json:"focus_delay_ms" env:"TUTORCHAT_FOCUS_DELAY_MS"`
	// CopyResetMS is how long a copy control shows its confirmation label.
	CopyResetMS int `json:"copy_reset_ms" env:"TUTORCHAT_COPY_RESET_MS"`
}

// ServerConfig configures the backend chat endpoint
type ServerConfig struct {
	Host string `json:"host" env:"TUTORCHAT_SERVER_HOST"`
	Port int    `json:"port" env:"TUTORCHAT_SERVER_PORT"`
	// MaxConns caps simultaneous connections. 0 disables the cap.
	MaxConns int `json:"max_conns" env:"TUTORCHAT_SERVER_MAX_CONNS"`
	// APIKey is never written back to disk when empty.
	APIKey       string `json:"api_key,omitempty" env:"GEMINI_API_KEY"`
	BaseURL      string `json:"base_url" env:"TUTORCHAT_GENERATOR_BASE_URL"`
	Model        string `json:"model" env:"TUTORCHAT_GENERATOR_MODEL"`
	SystemPrompt string `json:"system_prompt,omitempty" env:"TUTORCHAT_SYSTEM_PROMPT"`
}

// Config represents the user configuration
type Config struct {
	// Endpoint is the base URL of the chat backend.
	Endpoint string `json:"endpoint" env:"TUTORCHAT_ENDPOINT"`
	ChatPath string `json:"chat_path" env:"TUTORCHAT_CHAT_PATH"`
	// RequestTimeout bounds a single exchange in seconds. 0 disables it.
	RequestTimeout int `json:"request_timeout" env:"TUTORCHAT_REQUEST_TIMEOUT"`
	// Verbose enables debug logging.
	Verbose         bool           `json:"verbose" env:"TUTORCHAT_VERBOSE"`
	CopyToClipboard bool           `json:"copy_to_clipboard" env:"TUTORCHAT_COPY_TO_CLIPBOARD"`
	TUITheme        string         `json:"tui_theme,omitempty" env:"TUTORCHAT_TUI_THEME"`
	Widget          WidgetConfig   `json:"widget"`
	Server          ServerConfig   `json:"server"`
	Markdown        MarkdownConfig `json:"markdown,omitempty"`
}

// DefaultMarkdownConfig returns the default markdown configuration
func DefaultMarkdownConfig() MarkdownConfig {
	return MarkdownConfig{
		Style:            "dark",
		EnableEmoji:      true,
		PreserveNewLines: true,
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Endpoint:        models.DefaultEndpoint,
		ChatPath:        models.ChatPath,
		RequestTimeout:  120,
		Verbose:         false,
		CopyToClipboard: false,
		TUITheme:        "tokyonight",
		Widget: WidgetConfig{
			FallbackMessage: models.FallbackMessage,
			FocusDelayMS:    300,
			CopyResetMS:     2000,
		},
		Server: ServerConfig{
			Host:    "127.0.0.1",
			Port:     8000,
			MaxConns: 64,
			BaseURL:  models.DefaultGeneratorBaseURL,
			Model:    models.DefaultGeneratorModel,
		},
		Markdown: DefaultMarkdownConfig(),
	}
}

// ChatURL returns the absolute URL of the chat endpoint
func (c Config) ChatURL() string {
	return strings.TrimRight(c.Endpoint, "/") + c.ChatPath
}

// Timeout returns the request timeout, or 0 when disabled
func (c Config) Timeout() time.Duration {
	return time.Duration(c.RequestTimeout) * time.Second
}

// FocusDelay returns the input focus delay
func (w WidgetConfig) FocusDelay() time.Duration {
	return time.Duration(w.FocusDelayMS) * time.Millisecond
}

// CopyResetDelay returns how long the copy confirmation stays visible
func (w WidgetConfig) CopyResetDelay() time.Duration {
	return time.Duration(w.CopyResetMS) * time.Millisecond
}

// Addr returns the listen address of the backend endpoint
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Validate checks values that would otherwise fail late
func (c Config) Validate() error {
	u, err := url.Parse(c.Endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return apierrors.NewConfigError("endpoint", fmt.Sprintf("must be an absolute http(s) URL, got %q", c.Endpoint))
	}
	if !strings.HasPrefix(c.ChatPath, "/") {
		return apierrors.NewConfigError("chat_path", fmt.Sprintf("must start with '/', got %q", c.ChatPath))
	}
	if c.RequestTimeout < 0 {
		return apierrors.NewConfigError("request_timeout", "must not be negative")
	}
	if c.Widget.FocusDelayMS < 0 || c.Widget.CopyResetMS < 0 {
		return apierrors.NewConfigError("widget", "delays must not be negative")
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return apierrors.NewConfigError("server.port", fmt.Sprintf("out of range: %d", c.Server.Port))
	}
	if c.Server.MaxConns < 0 {
		return apierrors.NewConfigError("server.max_conns", "must not be negative")
	}
	return nil
}

// GetConfigDir returns the configuration directory path.
// TUTORCHAT_CONFIG_DIR overrides the default ~/.tutorchat.
func GetConfigDir() (string, error) {
	if dir := os.Getenv("TUTORCHAT_CONFIG_DIR"); dir != "" {
		return dir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(home, ".tutorchat"), nil
}

// EnsureConfigDir creates the configuration directory if it doesn't exist
func EnsureConfigDir() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	// 0o700: the config may hold the generator API key
	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.json"), nil
}

// LoadConfig loads the configuration from disk and applies environment
// overrides. A missing file yields the defaults.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	configPath, err := GetConfigPath()
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil && !os.IsNotExist(err) {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if err == nil {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// SaveConfig saves the configuration to disk
func SaveConfig(cfg Config) error {
	configDir, err := EnsureConfigDir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(configDir, "config.json")

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
