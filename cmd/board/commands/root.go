package commands

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/dyluth/noticeboard/internal/config"
	"github.com/dyluth/noticeboard/internal/printer"
	"github.com/spf13/cobra"
)

var (
	version string
	commit  string
	date    string
)

var (
	configPath string
	apiURL     string
	verbose    bool
	noColor    bool

	// cfg is loaded once per invocation before any subcommand runs
	cfg *config.BoardConfig
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "board",
	Short: "Board - household notice board client",
	Long: `Board posts, lists and removes short household notices on a shared
message server.

Every change is sent to the server first; the board is then fetched again
in full, so what you see is always what the server holds.`,
	Version: version,
	// Prevent silent success when unknown flags are passed to root command
	// e.g., "board --title x" instead of "board post --title x"
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
	PersistentPreRunE: setup,
	// Enable strict flag parsing - unknown flags will cause an error
	FParseErrWhitelist: cobra.FParseErrWhitelist{},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Silence Cobra's default error and usage printing
	// We print formatted colored errors directly in the printer package
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	return rootCmd.ExecuteContext(ctx)
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "Path to board.yml (missing file uses defaults)")
	rootCmd.PersistentFlags().StringVar(&apiURL, "url", "", "Message server URL (overrides config and BOARD_API_URL)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every request to stderr")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable coloured output")
}

// setup routes output, loads configuration and applies global flags.
func setup(cmd *cobra.Command, args []string) error {
	printer.SetOutput(cmd.OutOrStdout(), cmd.ErrOrStderr())

	log.SetOutput(io.Discard)
	if verbose {
		log.SetOutput(cmd.ErrOrStderr())
	}

	loaded, err := config.Load(cmd.Context(), configPath)
	if err != nil {
		return printer.ErrorWithContext(
			"invalid configuration",
			err.Error(),
			map[string]string{"Config": configPath},
			[]string{"Fix the file, or remove it to use the defaults"},
		)
	}

	if apiURL != "" {
		loaded.API.URL = apiURL
		if err := loaded.Validate(); err != nil {
			return printer.Error(
				"invalid --url",
				err.Error(),
				[]string{"Use a full URL like:\n  board --url http://localhost:3003 list"},
			)
		}
	}

	printer.SetColor(loaded.Display.Color && !noColor && os.Getenv("NO_COLOR") == "")

	cfg = loaded
	return nil
}
