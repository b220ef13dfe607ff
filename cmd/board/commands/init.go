package commands

import (
	"fmt"

	"github.com/dyluth/noticeboard/internal/printer"
	"github.com/dyluth/noticeboard/internal/scaffold"
	"github.com/spf13/cobra"
)

var (
	forceInit bool
	initDir   string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a starter board.yml",
	Long: `Create a starter configuration in the current directory.

Creates:
  • board.yml    - Client configuration (server URL, timeout, variant, display)
  • .env.example - The BOARD_* environment overrides

Use --force to overwrite existing files.`,
	Args: cobra.NoArgs,
	// An existing, broken board.yml must not stop init from replacing it
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		printer.SetOutput(cmd.OutOrStdout(), cmd.ErrOrStderr())
		return nil
	},
	RunE: runInit,
}

func init() {
	// Note: Cannot use -f shorthand to stay clear of future global flags
	initCmd.Flags().BoolVar(&forceInit, "force", false, "Overwrite existing board.yml and .env.example")
	initCmd.Flags().StringVar(&initDir, "dir", ".", "Directory to initialize")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	written, err := scaffold.Initialize(cmd.Context(), initDir, forceInit)
	if err != nil {
		if scaffold.IsExistingError(err) {
			return printer.Error(
				"already initialized",
				err.Error(),
				[]string{"Reinitialize (overwrites existing configuration):\n  board init --force"},
			)
		}
		return fmt.Errorf("initialization failed: %w", err)
	}

	scaffold.PrintSuccess(cmd.OutOrStdout(), written)
	return nil
}
