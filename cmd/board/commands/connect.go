package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dyluth/noticeboard/internal/api"
	"github.com/dyluth/noticeboard/internal/board"
	"github.com/dyluth/noticeboard/internal/printer"
	"github.com/dyluth/noticeboard/internal/resolver"
	"github.com/dyluth/noticeboard/internal/roster"
	"github.com/dyluth/noticeboard/pkg/notice"
	"github.com/spf13/cobra"
)

// newClient builds the API client from the loaded configuration.
func newClient() (*api.Client, error) {
	client, err := api.NewClient(cfg.API.URL, &http.Client{Timeout: cfg.API.Timeout})
	if err != nil {
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}
	return client, nil
}

// openBoard creates a controller for the configured variant and loads it.
func openBoard(ctx context.Context) (*board.Controller, error) {
	client, err := newClient()
	if err != nil {
		return nil, err
	}

	ctrl, err := board.NewController(client, board.WithCapabilities(cfg.BoardVariant().Capabilities()))
	if err != nil {
		return nil, err
	}

	if err := ctrl.Load(ctx); err != nil {
		return nil, serverError("failed to load the board", err)
	}
	return ctrl, nil
}

// newRoster builds a roster for ctrl using the display settings. A nil
// confirm means nothing will be deleted through it.
func newRoster(ctrl *board.Controller, confirm roster.Confirmer, extra ...roster.Option) (*roster.Roster, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	if confirm == nil {
		confirm = roster.ConfirmerFunc(func(string) bool { return false })
	}

	var actions roster.Actions
	if ctrl != nil {
		actions = ctrl
	}

	opts := []roster.Option{
		roster.WithLocation(loc),
		roster.WithEnabledState(cfg.BoardVariant().Capabilities().Toggle),
	}
	return roster.New(actions, confirm, append(opts, extra...)...)
}

// terminalConfirmer reads the answer from the command's input.
func terminalConfirmer(cmd *cobra.Command) roster.Confirmer {
	return roster.NewTerminalConfirmer(bufio.NewReader(cmd.InOrStdin()), cmd.OutOrStdout())
}

// resolveMessage maps a short ID to a message in the loaded snapshot.
func resolveMessage(messages []notice.Message, shortID string) (*notice.Message, error) {
	m, err := resolver.FindMessage(messages, shortID)
	if err == nil {
		return m, nil
	}

	if resolver.IsNotFoundError(err) {
		return nil, printer.Error(
			fmt.Sprintf("message with ID '%s' not found", shortID),
			"The specified message is not on the board.",
			[]string{"List all messages:\n  board list"},
		)
	}

	var ambigErr *resolver.AmbiguousError
	if errors.As(err, &ambigErr) {
		return nil, printer.Error(
			"ambiguous short ID",
			resolver.FormatAmbiguousError(ambigErr),
			nil,
		)
	}

	return nil, printer.Error("invalid message ID", err.Error(), nil)
}

// serverError reports a failed round trip with the normalised sentence.
func serverError(title string, err error) error {
	suggestions := []string{
		fmt.Sprintf("Check the server is running at %s", cfg.API.URL),
		"Point at another server:\n  board --url http://host:3003 <command>",
	}
	if api.IsStatusError(err) {
		suggestions = []string{"Run again with --verbose to see the request log"}
	}

	return printer.ErrorWithContext(
		title,
		api.Describe(err),
		map[string]string{"Server": cfg.API.URL, "Timeout": cfg.API.Timeout.String()},
		suggestions,
	)
}

// reportMutation turns a mutation result into CLI output. A mutation the
// server accepted but whose reload failed is reported as a warning.
func reportMutation(title string, err error) error {
	if err == nil {
		return nil
	}

	var reloadErr *board.ReloadError
	if errors.As(err, &reloadErr) {
		printer.Warning("Saved, but refreshing the board failed: %s\n", api.Describe(reloadErr.Err))
		return nil
	}

	return serverError(title, err)
}

// formatTime renders t in the configured zone.
func formatTime(t time.Time) string {
	loc, err := cfg.Location()
	if err != nil {
		loc = time.Local
	}
	return roster.FormatTimestamp(t, loc)
}
