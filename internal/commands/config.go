package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/diogo/tutorchat/internal/config"
	"github.com/diogo/tutorchat/internal/render"
)

var initConfigFlag bool

// NewConfigCmd creates a new config command
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long: `Print the config file path and the configuration after environment
overrides. The API key is masked. --init writes the defaults to the
config file when it does not exist yet.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfig(cmd)
		},
	}
	cmd.Flags().BoolVar(&initConfigFlag, "init", false, "Write the default config file if missing")
	return cmd
}

var configCmd = NewConfigCmd()

func runConfig(cmd *cobra.Command) error {
	path, err := config.GetConfigPath()
	if err != nil {
		return err
	}

	if initConfigFlag {
		if err := initConfigFile(); err != nil {
			return err
		}
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.Server.APIKey = maskSecret(cfg.Server.APIKey)

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dim := lipgloss.NewStyle().Foreground(colorTextMute)
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s\n", dim.Render("# config:"), path)
	fmt.Fprintf(out, "%s %s\n", dim.Render("# tui themes:"), strings.Join(render.TUIThemeNames(), ", "))
	fmt.Fprintln(out, string(data))
	return nil
}

// initConfigFile saves the defaults unless a config file already exists
func initConfigFile() error {
	path, err := config.GetConfigPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	return config.SaveConfig(config.DefaultConfig())
}

// maskSecret keeps the last four characters of a secret
func maskSecret(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 4 {
		return strings.Repeat("*", len(s))
	}
	return strings.Repeat("*", len(s)-4) + s[len(s)-4:]
}
