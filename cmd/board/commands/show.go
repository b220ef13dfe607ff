package commands

import (
	"github.com/dyluth/noticeboard/internal/roster"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show MESSAGE_ID",
	Short: "Show one message as JSON",
	Long: `Show the complete record of one message as pretty-printed JSON.
Supports short IDs (e.g., "3f2c1a" instead of the full UUID) as long as
the prefix matches exactly one message on the board.

Examples:
  board show 3f2c1a
  board show 3f2c1a9e-8d4b-4f6a-9c1e-2b7d5e8f0a13`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	ctrl, err := openBoard(cmd.Context())
	if err != nil {
		return err
	}

	m, err := resolveMessage(ctrl.Messages(), args[0])
	if err != nil {
		return err
	}

	return roster.FormatSingleJSON(cmd.OutOrStdout(), m)
}
