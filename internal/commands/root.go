// Package commands provides CLI commands for tutorchat.
package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	endpointFlag string
	verboseFlag  bool
	outputFlag   string
	fileFlag     string
	htmlFlag     bool
	rawFlag      bool

	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "tutorchat [message]",
	Short: "Chat with the engineering tutor from the terminal",
	Long: `tutorchat is a terminal client for the engineering tutor chat endpoint.
It sends questions to the backend, renders the markdown replies and can
run the backend itself.

Examples:
  tutorchat chat                        Open the chat window
  tutorchat serve                       Run the chat backend
  tutorchat "What is torque?"           Ask a single question
  tutorchat -f question.md              Read the question from a file
  cat question.md | tutorchat           Read the question from stdin
  tutorchat "Explain PID" --html        Print the reply as an HTML fragment
  tutorchat format notes.md             Format markdown into HTML`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if v, _ := cmd.Flags().GetBool("version"); v {
			fmt.Fprintf(cmd.OutOrStdout(), "tutorchat %s (built %s)\n", Version, BuildTime)
			return nil
		}

		message, ok, err := readInput(cmd.InOrStdin(), args)
		if err != nil {
			return err
		}
		if !ok {
			return cmd.Help()
		}
		return runAsk(cmd, message)
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, formatErrorMessage(err, "Error"))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&endpointFlag, "endpoint", "e", "", "Backend base URL (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&verboseFlag, "verbose", false, "Enable debug logging")
	rootCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Save reply to file")
	rootCmd.Flags().StringVarP(&fileFlag, "file", "f", "", "Read message from file")
	rootCmd.Flags().BoolVar(&htmlFlag, "html", false, "Print the reply as a formatted HTML fragment")
	rootCmd.Flags().BoolVar(&rawFlag, "raw", false, "Print the raw reply without decoration")
	rootCmd.Flags().BoolP("version", "v", false, "Show version and exit")

	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(formatCmd)
	rootCmd.AddCommand(configCmd)
}

// readInput picks the message from --file, the first argument or piped
// stdin, in that order. ok is false when there is no input at all.
func readInput(stdin io.Reader, args []string) (string, bool, error) {
	if fileFlag != "" {
		data, err := os.ReadFile(fileFlag)
		if err != nil {
			return "", false, fmt.Errorf("failed to read file: %w", err)
		}
		return string(data), true, nil
	}

	if len(args) > 0 {
		return args[0], true, nil
	}

	if isPiped(stdin) {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", false, fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), true, nil
	}

	return "", false, nil
}

// isPiped reports whether r is a pipe or file rather than a terminal.
// Readers that are not files count as piped.
func isPiped(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return r != nil
	}
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}
