package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/diogo/tutorchat/internal/config"
	"github.com/diogo/tutorchat/internal/logging"
	"github.com/diogo/tutorchat/internal/render"
	"github.com/diogo/tutorchat/internal/tui"
	"github.com/diogo/tutorchat/internal/widget"
)

var (
	openFlag     bool
	showHTMLFlag bool
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Open the chat window",
	Long: `Open the tutor chat window in the terminal.

The window starts collapsed behind a launcher; press ctrl+o to open it
or pass --open. Enter sends, ctrl+y copies the latest code block and
esc closes the window (a second esc quits).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat(contextOf(cmd))
	},
}

func init() {
	chatCmd.Flags().BoolVar(&openFlag, "open", false, "Start with the chat window open")
	chatCmd.Flags().BoolVar(&showHTMLFlag, "show-html", false, "Show replies as formatted HTML fragments")
}

func runChat(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if cfg.TUITheme != "" && !render.SetTUITheme(cfg.TUITheme) {
		fmt.Fprintf(os.Stderr, "Warning: unknown tui_theme '%s', using default\n", cfg.TUITheme)
	}
	tui.UpdateTheme()

	renderOpts, err := render.OptionsFromConfig(cfg.Markdown)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, using default markdown style\n", err)
	}

	// The alt screen owns the terminal, so logs go to a file.
	logger, closeLog := chatLogger(cfg)
	defer closeLog()

	client, err := deps.NewClient(cfg)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	defer client.Close()

	opts := tui.Options{
		Endpoint:  cfg.Endpoint,
		StartOpen: openFlag,
		ShowHTML:  showHTMLFlag,
		Render:    renderOpts,
	}

	return deps.RunChat(ctx, client, opts,
		widget.WithLogger(logger),
		widget.WithFallbackMessage(cfg.Widget.FallbackMessage),
		widget.WithFocusDelay(cfg.Widget.FocusDelay()),
		widget.WithCopyResetDelay(cfg.Widget.CopyResetDelay()),
	)
}

// chatLogger opens chat.log in the config directory. Logging is disabled
// when the file cannot be opened.
func chatLogger(cfg config.Config) (zerolog.Logger, func()) {
	dir, err := config.EnsureConfigDir()
	if err != nil {
		return logging.Nop(), func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "chat.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return logging.Nop(), func() {}
	}
	return logging.New(f, cfg.Verbose), func() { _ = f.Close() }
}
