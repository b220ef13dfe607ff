// Package roster renders a message collection for the terminal and owns the
// per-item delete and toggle actions. Deletion is gated by an injected
// Confirmer; the board controller never asks for confirmation itself.
package roster

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/dyluth/noticeboard/pkg/notice"
)

// DeletePrompt is the confirmation question asked before a delete.
const DeletePrompt = "确定要删除这条留言吗？"

// ErrDeclined is returned by Delete when the user does not confirm.
var ErrDeclined = errors.New("deletion not confirmed")

// Actions are the mutations a roster can trigger. *board.Controller implements it.
type Actions interface {
	Remove(ctx context.Context, id string) error
	Toggle(ctx context.Context, id string) error
}

// Option configures a Roster.
type Option func(*Roster)

// WithLocation sets the time zone timestamps are shown in. Defaults to time.Local.
func WithLocation(loc *time.Location) Option {
	return func(r *Roster) {
		if loc != nil {
			r.loc = loc
		}
	}
}

// WithEnabledState shows the enabled flag on each card (rich variant).
func WithEnabledState(show bool) Option {
	return func(r *Roster) {
		r.showEnabled = show
	}
}

// WithEmptyHint replaces the second line of the empty-state copy.
func WithEmptyHint(hint string) Option {
	return func(r *Roster) {
		r.emptyHint = hint
	}
}

// Roster renders messages and forwards item actions.
type Roster struct {
	actions     Actions
	confirm     Confirmer
	loc         *time.Location
	showEnabled bool
	emptyHint   string
}

// New creates a roster. actions may be nil for a render-only roster,
// in which case Delete and Toggle return an error.
func New(actions Actions, confirm Confirmer, opts ...Option) (*Roster, error) {
	if confirm == nil {
		return nil, fmt.Errorf("confirmer cannot be nil")
	}

	r := &Roster{
		actions:   actions,
		confirm:   confirm,
		loc:       time.Local,
		emptyHint: DefaultEmptyHint,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Render writes messages in the requested format.
func (r *Roster) Render(w io.Writer, messages []notice.Message, format Format) error {
	switch format {
	case FormatCards, "":
		r.RenderCards(w, messages)
		return nil
	case FormatJSONL:
		return FormatJSONLines(w, messages)
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}

// RenderCards writes one card per message, or the empty state.
// Returns the number of cards written.
func (r *Roster) RenderCards(w io.Writer, messages []notice.Message) int {
	if len(messages) == 0 {
		writeEmptyState(w, r.emptyHint)
		return 0
	}

	for i := range messages {
		writeCard(w, &messages[i], r.loc, r.showEnabled)
	}

	fmt.Fprintf(w, "共 %d 条留言\n", len(messages))
	return len(messages)
}

// Delete asks for confirmation and, only on a yes, removes the message.
func (r *Roster) Delete(ctx context.Context, id string) error {
	if r.actions == nil {
		return fmt.Errorf("roster has no actions")
	}

	if !r.confirm.Confirm(DeletePrompt) {
		log.Printf("[Roster] Delete of %s declined", id)
		return ErrDeclined
	}
	return r.actions.Remove(ctx, id)
}

// Toggle flips the enabled flag of a message. No confirmation is asked.
func (r *Roster) Toggle(ctx context.Context, id string) error {
	if r.actions == nil {
		return fmt.Errorf("roster has no actions")
	}
	return r.actions.Toggle(ctx, id)
}
