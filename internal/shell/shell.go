// Package shell runs the interactive board session. One Controller lives for
// the whole session, so the full Loading, Ready, FormOpen and banner cycle is
// visible to the user.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/dyluth/noticeboard/internal/board"
	"github.com/dyluth/noticeboard/internal/composer"
	"github.com/dyluth/noticeboard/internal/printer"
	"github.com/dyluth/noticeboard/internal/resolver"
	"github.com/dyluth/noticeboard/internal/roster"
	"github.com/dyluth/noticeboard/internal/timespec"
)

// Prompt is printed before every command.
const Prompt = "board> "

// HelpText lists the session commands.
const HelpText = `Commands:
  r, reload        fetch the board again
  n, new           fill in the new message form
  c, cancel        discard the form
  d, delete <id>   delete a message (asks first)
  t, toggle <id>   enable or disable a message
  x, dismiss       hide the error banner
  l, ls            show the board
  h, help          show this help
  q, quit          leave
`

// Options configures a session.
type Options struct {
	Capabilities board.Capabilities
	Location     *time.Location
}

// Session is one interactive run against a store.
type Session struct {
	ctrl     *board.Controller
	composer *composer.Composer
	roster   *roster.Roster
	in       *bufio.Reader
	out      io.Writer
	expiry   *timespec.Parser
}

// New wires a controller, composer and roster around store. Input lines are
// read from in; the delete confirmation shares the same reader.
func New(store board.Store, in io.Reader, out io.Writer, opts Options) (*Session, error) {
	ctrl, err := board.NewController(store, board.WithCapabilities(opts.Capabilities))
	if err != nil {
		return nil, err
	}

	s := &Session{
		ctrl:   ctrl,
		in:     bufio.NewReader(in),
		out:    out,
		expiry: timespec.New(nil),
	}

	s.composer, err = composer.New(ctrl, composer.PrompterFunc(func(message string) {
		printer.Banner(s.out, message)
	}))
	if err != nil {
		return nil, err
	}

	s.roster, err = roster.New(ctrl, roster.NewTerminalConfirmer(s.in, out),
		roster.WithLocation(opts.Location),
		roster.WithEnabledState(opts.Capabilities.Toggle),
	)
	if err != nil {
		return nil, err
	}

	return s, nil
}

// Controller exposes the session's board controller.
func (s *Session) Controller() *board.Controller {
	return s.ctrl
}

// Run loads the board and then serves commands until quit, end of input or
// ctx cancellation. Request failures are shown on the banner and never end
// the session.
func (s *Session) Run(ctx context.Context) error {
	s.render()
	_ = s.ctrl.Load(ctx)
	s.render()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, err := s.readLine(Prompt)
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(s.out)
				return nil
			}
			return fmt.Errorf("failed to read command: %w", err)
		}

		cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
		arg = strings.TrimSpace(arg)

		switch strings.ToLower(cmd) {
		case "":
			continue
		case "q", "quit", "exit":
			return nil
		case "h", "help", "?":
			fmt.Fprint(s.out, HelpText)
		case "l", "ls", "list":
			s.render()
		case "r", "reload":
			_ = s.ctrl.Load(ctx)
			s.render()
		case "n", "new":
			if err := s.fillForm(ctx); err != nil {
				if errors.Is(err, io.EOF) {
					fmt.Fprintln(s.out)
					return nil
				}
				return err
			}
			s.render()
		case "c", "cancel":
			s.composer.Cancel()
			s.render()
		case "d", "delete":
			s.withID(arg, func(id string) error { return s.roster.Delete(ctx, id) })
		case "t", "toggle":
			s.withID(arg, func(id string) error { return s.roster.Toggle(ctx, id) })
		case "x", "dismiss":
			s.ctrl.DismissBanner()
			s.render()
		default:
			printer.Banner(s.out, fmt.Sprintf("unknown command '%s' (h for help)", cmd))
		}
	}
}

// fillForm opens the form and asks for every field. Pressing enter keeps the
// current draft value, so a rejected draft can be corrected field by field.
func (s *Session) fillForm(ctx context.Context) error {
	s.ctrl.OpenForm()
	draft := s.composer.Draft()

	title, err := s.ask("标题", draft.Title)
	if err != nil {
		return err
	}
	s.composer.SetTitle(title)

	content, err := s.ask("内容", draft.Content)
	if err != nil {
		return err
	}
	s.composer.SetContent(content)

	author, err := s.ask("作者", draft.Author)
	if err != nil {
		return err
	}
	s.composer.SetAuthor(author)

	for {
		priority, err := s.ask("优先级 (low/normal/high/urgent)", string(draft.Priority))
		if err != nil {
			return err
		}
		if err := s.composer.SetPriority(priority); err != nil {
			printer.Banner(s.out, err.Error())
			continue
		}
		break
	}

	for {
		expires, err := s.ask("有效期 (可选, 如 24h)", "")
		if err != nil {
			return err
		}
		if expires == "" {
			s.composer.SetExpiresAt(draft.ExpiresAt)
			break
		}
		t, err := s.expiry.Expiry(expires)
		if err != nil {
			printer.Banner(s.out, err.Error())
			continue
		}
		s.composer.SetExpiresAt(&t)
		break
	}

	if err := s.composer.Submit(ctx); err != nil {
		log.Printf("[Shell] Submit failed: %v", err)
	}
	return nil
}

// withID resolves a short ID against the current snapshot and runs action.
func (s *Session) withID(arg string, action func(id string) error) {
	if arg == "" {
		printer.Banner(s.out, "missing message ID")
		return
	}

	id, err := resolver.ResolveMessageID(s.ctrl.Messages(), arg)
	if err != nil {
		var ambiguous *resolver.AmbiguousError
		if errors.As(err, &ambiguous) {
			fmt.Fprintln(s.out, resolver.FormatAmbiguousError(ambiguous))
			return
		}
		printer.Banner(s.out, err.Error())
		return
	}

	err = action(id)
	switch {
	case errors.Is(err, roster.ErrDeclined):
		fmt.Fprintln(s.out, "已取消")
		return
	case errors.Is(err, board.ErrToggleUnsupported):
		printer.Banner(s.out, err.Error())
		return
	case err != nil:
		log.Printf("[Shell] Action on %s failed: %v", id, err)
	}
	s.render()
}

// render writes the current view: loading indicator or banner, then the cards.
func (s *Session) render() {
	view := s.ctrl.View()

	if view.Loading() {
		printer.Loading(s.out)
		return
	}

	printer.Banner(s.out, view.Banner)
	s.roster.RenderCards(s.out, view.Messages)
	if view.FormOpen {
		fmt.Fprintln(s.out, "✏️  表单已打开 (n 继续填写, c 取消)")
	}
}

func (s *Session) ask(label, current string) (string, error) {
	prompt := label + ": "
	if current != "" {
		prompt = fmt.Sprintf("%s [%s]: ", label, current)
	}

	line, err := s.readLine(prompt)
	if err != nil {
		return "", err
	}
	if line == "" {
		return current, nil
	}
	return line, nil
}

// readLine prints prompt and returns one line without its terminator.
// A final line without a newline is returned before io.EOF.
func (s *Session) readLine(prompt string) (string, error) {
	fmt.Fprint(s.out, prompt)

	line, err := s.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
