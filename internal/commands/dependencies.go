package commands

import (
	"context"

	"github.com/diogo/tutorchat/internal/api"
	"github.com/diogo/tutorchat/internal/config"
	"github.com/diogo/tutorchat/internal/tui"
	"github.com/diogo/tutorchat/internal/widget"
)

// Dependencies holds the external dependencies for the commands.
// This allows for dependency injection and easier testing.
type Dependencies struct {
	// LoadConfig returns the effective configuration.
	LoadConfig func() (config.Config, error)

	// NewClient builds the chat client for a configuration.
	NewClient func(cfg config.Config) (api.ChatClient, error)

	// RunChat runs the interactive chat window.
	RunChat func(ctx context.Context, client api.ChatClient, opts tui.Options, widgetOpts ...widget.Option) error
}

// NewDependencies creates a new Dependencies struct with default implementations.
func NewDependencies() *Dependencies {
	return &Dependencies{
		LoadConfig: config.LoadConfig,
		NewClient:  newChatClient,
		RunChat:    tui.RunChat,
	}
}

// deps is swapped by tests
var deps = NewDependencies()

func newChatClient(cfg config.Config) (api.ChatClient, error) {
	return api.NewClient(cfg.Endpoint,
		api.WithChatPath(cfg.ChatPath),
		api.WithTimeout(cfg.Timeout()),
	)
}

// loadConfig applies the persistent flag overrides on top of the loaded config
func loadConfig() (config.Config, error) {
	cfg, err := deps.LoadConfig()
	if err != nil {
		return cfg, err
	}
	if endpointFlag != "" {
		cfg.Endpoint = endpointFlag
		if err := cfg.Validate(); err != nil {
			return cfg, err
		}
	}
	if verboseFlag {
		cfg.Verbose = true
	}
	return cfg, nil
}
