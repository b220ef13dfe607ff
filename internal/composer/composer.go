// Package composer collects the fields of a new notice and applies the
// required-field check before handing the request to the board.
package composer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/dyluth/noticeboard/pkg/notice"
)

// IncompletePrompt is shown when a required field is blank.
const IncompletePrompt = "请填写所有必填字段"

// ErrIncomplete is returned by Submit when title, content or author is blank.
var ErrIncomplete = errors.New("title, content and author are required")

// Creator receives validated requests. *board.Controller implements it.
type Creator interface {
	Create(ctx context.Context, req notice.CreateMessageRequest) error
	CloseForm()
}

// Prompter shows a blocking message to the user.
type Prompter interface {
	Alert(message string)
}

// PrompterFunc adapts a function to the Prompter interface.
type PrompterFunc func(message string)

// Alert calls f(message).
func (f PrompterFunc) Alert(message string) {
	f(message)
}

// Composer holds the draft of one new notice.
// It is not safe for concurrent use; one composer belongs to one form.
type Composer struct {
	creator Creator
	prompt  Prompter
	draft   notice.CreateMessageRequest
}

// New creates a composer with an empty draft at normal priority.
func New(creator Creator, prompt Prompter) (*Composer, error) {
	if creator == nil {
		return nil, fmt.Errorf("creator cannot be nil")
	}
	if prompt == nil {
		return nil, fmt.Errorf("prompter cannot be nil")
	}

	c := &Composer{creator: creator, prompt: prompt}
	c.reset()
	return c, nil
}

// Draft returns a copy of the fields entered so far.
func (c *Composer) Draft() notice.CreateMessageRequest {
	return c.draft
}

// SetTitle sets the title field.
func (c *Composer) SetTitle(title string) {
	c.draft.Title = title
}

// SetContent sets the content field.
func (c *Composer) SetContent(content string) {
	c.draft.Content = content
}

// SetAuthor sets the author field.
func (c *Composer) SetAuthor(author string) {
	c.draft.Author = author
}

// SetPriority parses and sets the priority field.
// The draft is unchanged if the value is not one of the four priorities.
func (c *Composer) SetPriority(priority string) error {
	p, err := notice.ParsePriority(priority)
	if err != nil {
		return err
	}
	c.draft.Priority = p
	return nil
}

// SetExpiresAt sets or, with nil, clears the optional expiry.
func (c *Composer) SetExpiresAt(t *time.Time) {
	c.draft.ExpiresAt = t
}

// Submit validates the draft and hands it to the creator.
//
// A blank required field fires the prompt and returns ErrIncomplete without
// any network call; the draft is kept for correction. If the creator rejects
// the request the draft is also kept, so the user can retry. The draft is
// reset once the server has accepted it, even when the creator then reports
// a failure that implements Accepted() bool (a failed reload).
func (c *Composer) Submit(ctx context.Context) error {
	if missing := c.draft.MissingFields(); len(missing) > 0 {
		log.Printf("[Composer] Rejected draft, missing: %v", missing)
		c.prompt.Alert(IncompletePrompt)
		return ErrIncomplete
	}

	// Blank checks ignore surrounding whitespace, but the fields are sent as typed.
	req := c.draft
	if err := req.Validate(); err != nil {
		c.prompt.Alert(err.Error())
		return err
	}

	if err := c.creator.Create(ctx, req); err != nil {
		var accepted interface{ Accepted() bool }
		if errors.As(err, &accepted) && accepted.Accepted() {
			c.reset()
		}
		return err
	}

	c.reset()
	return nil
}

// Cancel discards the draft and asks the creator to close the form.
func (c *Composer) Cancel() {
	c.reset()
	c.creator.CloseForm()
}

func (c *Composer) reset() {
	c.draft = notice.CreateMessageRequest{Priority: notice.PriorityNormal}
}
