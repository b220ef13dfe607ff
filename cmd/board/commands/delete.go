package commands

import (
	"errors"

	"github.com/dyluth/noticeboard/internal/printer"
	"github.com/dyluth/noticeboard/internal/roster"
	"github.com/spf13/cobra"
)

var deleteYes bool

var deleteCmd = &cobra.Command{
	Use:     "delete MESSAGE_ID",
	Aliases: []string{"rm"},
	Short:   "Delete a message",
	Long: `Delete a message from the board. You are asked to confirm first;
deletion cannot be undone once the server has accepted it.

Examples:
  board delete 3f2c1a
  board delete 3f2c1a --yes`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Delete without asking")

	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	ctrl, err := openBoard(ctx)
	if err != nil {
		return err
	}

	m, err := resolveMessage(ctrl.Messages(), args[0])
	if err != nil {
		return err
	}

	var confirm roster.Confirmer = roster.AssumeYes
	if !deleteYes {
		confirm = terminalConfirmer(cmd)
	}

	r, err := newRoster(ctrl, confirm)
	if err != nil {
		return err
	}

	err = r.Delete(ctx, m.ID)
	if errors.Is(err, roster.ErrDeclined) {
		printer.Info("已取消\n")
		return nil
	}
	if err := reportMutation("failed to delete message", err); err != nil {
		return err
	}

	printer.Success("Deleted '%s' (%s)\n", m.Title, roster.ShortID(m.ID))
	return nil
}
