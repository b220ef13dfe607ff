package commands

import (
	"github.com/dyluth/noticeboard/internal/printer"
	"github.com/dyluth/noticeboard/internal/resolver"
	"github.com/dyluth/noticeboard/internal/roster"
	"github.com/spf13/cobra"
)

var toggleCmd = &cobra.Command{
	Use:   "toggle MESSAGE_ID",
	Short: "Enable or disable a message",
	Long: `Flip the enabled flag of a message. Disabled messages stay on the board
but are left out of "board list --active".

Only available when the board runs the rich variant.

Examples:
  board toggle 3f2c1a`,
	Args: cobra.ExactArgs(1),
	RunE: runToggle,
}

func init() {
	rootCmd.AddCommand(toggleCmd)
}

func runToggle(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if !cfg.BoardVariant().Capabilities().Toggle {
		return printer.Error(
			"toggle not available",
			"The simple board variant has no enabled flag.",
			[]string{"Set 'variant: rich' in board.yml or BOARD_VARIANT=rich"},
		)
	}

	ctrl, err := openBoard(ctx)
	if err != nil {
		return err
	}

	m, err := resolveMessage(ctrl.Messages(), args[0])
	if err != nil {
		return err
	}

	r, err := newRoster(ctrl, nil)
	if err != nil {
		return err
	}

	if err := reportMutation("failed to toggle message", r.Toggle(ctx, m.ID)); err != nil {
		return err
	}

	updated, err := resolver.FindMessage(ctrl.Messages(), m.ID)
	if err != nil {
		printer.Success("Toggled '%s' (%s)\n", m.Title, roster.ShortID(m.ID))
		return nil
	}

	state := "已停用"
	if updated.IsEnabled() {
		state = "已启用"
	}
	printer.Success("'%s' (%s) %s\n", updated.Title, roster.ShortID(updated.ID), state)
	return nil
}
