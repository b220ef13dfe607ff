package commands

import (
	"github.com/dyluth/noticeboard/internal/printer"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show server statistics",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	stats, err := client.GetStats(cmd.Context())
	if err != nil {
		return serverError("failed to fetch statistics", err)
	}

	printer.Printf("Messages:      %d\n", stats.TotalMessages)
	printer.Printf("Active:        %d\n", stats.ActiveMessages)
	printer.Printf("Last updated:  %s\n", formatTime(stats.LastUpdated))
	return nil
}
