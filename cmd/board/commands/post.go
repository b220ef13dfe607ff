package commands

import (
	"errors"

	"github.com/dyluth/noticeboard/internal/board"
	"github.com/dyluth/noticeboard/internal/composer"
	"github.com/dyluth/noticeboard/internal/printer"
	"github.com/dyluth/noticeboard/internal/timespec"
	"github.com/spf13/cobra"
)

var (
	postTitle    string
	postContent  string
	postAuthor   string
	postPriority string
	postExpires  string
)

var postCmd = &cobra.Command{
	Use:   "post",
	Short: "Post a new message",
	Long: `Post a new message to the board. Title, content and author are
required; nothing is sent to the server while any of them is blank.

Priorities: urgent, high, normal (default), low.

--expires takes a duration from now ("24h", "7h30m") or an RFC3339 time.
Expired messages disappear from the board.

Examples:
  board post --title "Bins" --content "Out tonight" --author Alex
  board post -t "Plumber" -m "Coming at 9, let him in" -a Sam -p urgent --expires 12h`,
	Args: cobra.NoArgs,
	RunE: runPost,
}

func init() {
	postCmd.Flags().StringVarP(&postTitle, "title", "t", "", "Message title (required)")
	postCmd.Flags().StringVarP(&postContent, "content", "m", "", "Message body (required)")
	postCmd.Flags().StringVarP(&postAuthor, "author", "a", "", "Your name (required)")
	postCmd.Flags().StringVarP(&postPriority, "priority", "p", "normal", "Priority: urgent, high, normal or low")
	postCmd.Flags().StringVar(&postExpires, "expires", "", "Expiry (duration from now or RFC3339)")

	rootCmd.AddCommand(postCmd)
}

func runPost(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	ctrl, err := board.NewController(client, board.WithCapabilities(cfg.BoardVariant().Capabilities()))
	if err != nil {
		return err
	}

	// The error returned by Submit is what reaches the user.
	c, err := composer.New(ctrl, composer.PrompterFunc(func(string) {}))
	if err != nil {
		return err
	}

	ctrl.OpenForm()
	c.SetTitle(postTitle)
	c.SetContent(postContent)
	c.SetAuthor(postAuthor)
	if err := c.SetPriority(postPriority); err != nil {
		return printer.Error(
			"invalid priority",
			err.Error(),
			[]string{"Valid priorities: urgent, high, normal, low"},
		)
	}

	expiresAt, err := timespec.ParseExpiry(postExpires)
	if err != nil {
		return printer.Error(
			"invalid expiry",
			err.Error(),
			[]string{"Use a duration like '24h' or an RFC3339 time in the future"},
		)
	}
	c.SetExpiresAt(expiresAt)

	err = c.Submit(cmd.Context())
	if errors.Is(err, composer.ErrIncomplete) {
		return printer.Error(
			"missing required fields",
			composer.IncompletePrompt,
			[]string{"Provide all three:\n  board post --title <title> --content <text> --author <name>"},
		)
	}

	reloadFailed := board.IsReloadError(err)
	if err := reportMutation("failed to post message", err); err != nil {
		return err
	}

	printer.Success("Posted '%s'\n", postTitle)
	if reloadFailed {
		// No snapshot was loaded, so there is no board to show.
		return nil
	}

	r, err := newRoster(nil, nil)
	if err != nil {
		return err
	}
	r.RenderCards(cmd.OutOrStdout(), ctrl.Messages())
	return nil
}
