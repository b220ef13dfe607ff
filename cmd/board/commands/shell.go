package commands

import (
	"github.com/dyluth/noticeboard/internal/shell"
	"github.com/spf13/cobra"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Open an interactive board session",
	Long: `Open an interactive session that keeps the board on screen and
refreshes it after every change. Type 'h' inside the session for commands.`,
	Args: cobra.NoArgs,
	RunE: runShell,
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

func runShell(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	s, err := shell.New(client, cmd.InOrStdin(), cmd.OutOrStdout(), shell.Options{
		Capabilities: cfg.BoardVariant().Capabilities(),
		Location:     loc,
	})
	if err != nil {
		return err
	}

	return s.Run(cmd.Context())
}
