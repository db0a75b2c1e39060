package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/diogo/tutorchat/internal/config"
	apierrors "github.com/diogo/tutorchat/internal/errors"
	"github.com/diogo/tutorchat/internal/logging"
	"github.com/diogo/tutorchat/internal/server"
)

var addrFlag string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the chat backend",
	Long: `Run the chat endpoint the widget talks to.

Replies come from Gemini's OpenAI-compatible API. Set GEMINI_API_KEY (or
server.api_key in the config file); without a key every chat request
answers with a configuration error.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(contextOf(cmd), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runServe(ctx, cmd, cfg)
	},
}

func init() {
	serveCmd.Flags().StringVar(&addrFlag, "addr", "", "Listen address (overrides server.host and server.port)")
}

// newGenerator returns nil when no API key is configured
func newGenerator(cfg config.Config) (server.Generator, error) {
	gen, err := server.NewOpenAIGenerator(server.GeneratorConfig{
		APIKey:       cfg.Server.APIKey,
		BaseURL:      cfg.Server.BaseURL,
		Model:        cfg.Server.Model,
		SystemPrompt: cfg.Server.SystemPrompt,
		Timeout:      cfg.Timeout(),
	})
	if errors.Is(err, apierrors.ErrNoGenerator) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return gen, nil
}

// runServe blocks until ctx is cancelled, then shuts the server down
func runServe(ctx context.Context, cmd *cobra.Command, cfg config.Config) error {
	logger := logging.New(cmd.ErrOrStderr(), cfg.Verbose)

	gen, err := newGenerator(cfg)
	if err != nil {
		return fmt.Errorf("failed to create generator: %w", err)
	}
	if gen == nil {
		logger.Warn().Msg("no API key configured, chat requests will fail")
	}

	addr := cfg.Server.Addr()
	if addrFlag != "" {
		addr = addrFlag
	}

	srv := server.New(addr, gen,
		server.WithLogger(logger),
		server.WithChatPath(cfg.ChatPath),
		server.WithMaxConns(cfg.Server.MaxConns),
	)
	if err := srv.Start(); err != nil {
		return err
	}

	msg := lipgloss.NewStyle().Foreground(colorSuccess).Render(
		fmt.Sprintf("✓ Serving %s on http://%s", cfg.ChatPath, srv.Addr()),
	)
	fmt.Fprintln(cmd.ErrOrStderr(), msg)

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
