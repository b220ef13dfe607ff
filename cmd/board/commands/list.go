package commands

import (
	"fmt"
	"strings"

	"github.com/dyluth/noticeboard/internal/filter"
	"github.com/dyluth/noticeboard/internal/printer"
	"github.com/dyluth/noticeboard/internal/roster"
	"github.com/dyluth/noticeboard/internal/timespec"
	"github.com/dyluth/noticeboard/pkg/notice"
	"github.com/spf13/cobra"
)

var (
	listOutputFormat string
	listPriority     string
	listAuthor       string
	listSince        string
	listUntil        string
	listEnabled      bool
	listDisabled     bool
	listActive       bool
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Show the messages on the board",
	Long: `Show every message on the board in the order the server returns it:
most urgent first, newest first within a priority. Expired messages are
never shown.

Output Formats:
  cards - Human-readable cards with priority, author and time
  jsonl - Line-delimited JSON, one message per line

Filters (applied to the fetched board, never sent to the server):
  --priority  - One or more priorities, comma separated
  --author    - Exact author name, case-insensitive
  --enabled   - Only enabled messages
  --disabled  - Only disabled messages
  --since     - Only messages posted after this time
  --until     - Only messages posted before this time

--active asks the server for its enabled, unexpired subset instead.

Examples:
  # Everything on the board
  board list

  # Urgent and high notices from the last day
  board list --priority urgent,high --since 24h

  # Yesterday's messages
  board list --since 48h --until 24h

  # Pipe to jq
  board list --output jsonl | jq -r .title`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVarP(&listOutputFormat, "output", "o", string(roster.FormatCards), "Output format: cards or jsonl")
	listCmd.Flags().StringVarP(&listPriority, "priority", "p", "", "Filter by priority (comma separated: urgent,high,normal,low)")
	listCmd.Flags().StringVarP(&listAuthor, "author", "a", "", "Filter by author (exact, case-insensitive)")
	listCmd.Flags().StringVar(&listSince, "since", "", "Show messages posted after time (duration or RFC3339)")
	listCmd.Flags().StringVar(&listUntil, "until", "", "Show messages posted before time (duration or RFC3339)")
	listCmd.Flags().BoolVar(&listEnabled, "enabled", false, "Show only enabled messages")
	listCmd.Flags().BoolVar(&listDisabled, "disabled", false, "Show only disabled messages")
	listCmd.Flags().BoolVar(&listActive, "active", false, "Ask the server for active messages only")
	listCmd.MarkFlagsMutuallyExclusive("enabled", "disabled")

	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	format, err := roster.ParseFormat(listOutputFormat)
	if err != nil {
		return printer.Error(
			"invalid output format",
			fmt.Sprintf("Unknown format: %s", listOutputFormat),
			[]string{"Valid formats: cards, jsonl"},
		)
	}

	criteria, err := buildCriteria()
	if err != nil {
		return err
	}

	var messages []notice.Message
	if listActive {
		client, err := newClient()
		if err != nil {
			return err
		}
		messages, err = client.ListActiveMessages(ctx)
		if err != nil {
			return serverError("failed to load the board", err)
		}
	} else {
		ctrl, err := openBoard(ctx)
		if err != nil {
			return err
		}
		messages = ctrl.Messages()
	}

	var opts []roster.Option
	if criteria.HasFilters() {
		opts = append(opts, roster.WithEmptyHint(noMatchHint))
	}

	r, err := newRoster(nil, nil, opts...)
	if err != nil {
		return err
	}

	return r.Render(cmd.OutOrStdout(), criteria.Apply(messages), format)
}

// noMatchHint replaces the "post the first one" hint when filters hid everything.
const noMatchHint = "没有符合筛选条件的留言"

// buildCriteria turns the list flags into display filters.
func buildCriteria() (*filter.Criteria, error) {
	sinceMS, untilMS, err := timespec.ParseRange(listSince, listUntil)
	if err != nil {
		return nil, printer.Error(
			"invalid time filter",
			err.Error(),
			[]string{"Use duration format like '1h30m' or RFC3339 like '2025-10-29T13:00:00Z'"},
		)
	}

	criteria := &filter.Criteria{
		SinceTimestampMs: sinceMS,
		UntilTimestampMs: untilMS,
		Author:           listAuthor,
	}

	for _, raw := range strings.Split(listPriority, ",") {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		p, err := notice.ParsePriority(raw)
		if err != nil {
			return nil, printer.Error(
				"invalid priority filter",
				err.Error(),
				[]string{"Valid priorities: urgent, high, normal, low"},
			)
		}
		criteria.Priorities = append(criteria.Priorities, p)
	}

	switch {
	case listEnabled:
		criteria.Enabled = filter.EnabledOnly
	case listDisabled:
		criteria.Enabled = filter.DisabledOnly
	}

	return criteria, nil
}
