package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/diogo/tutorchat/internal/format"
)

var formatCmd = &cobra.Command{
	Use:   "format [file]",
	Short: "Format markdown into an HTML fragment",
	Long: `Format a markdown reply into the HTML fragment the chat widget shows.

Reads the file argument, or stdin when no file is given. Code blocks are
escaped and get a copy control; bold, italics, inline code, headings and
bullet lists are converted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var data []byte
		var err error
		if len(args) > 0 {
			data, err = os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read file: %w", err)
			}
		} else {
			data, err = io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("failed to read stdin: %w", err)
			}
		}

		fmt.Fprintln(cmd.OutOrStdout(), format.Format(string(data)))
		return nil
	},
}
