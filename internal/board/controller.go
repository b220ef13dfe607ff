// Package board holds the Board Controller: the single owner of the message
// collection and the only component that talks to the remote store.
//
// The controller never patches its collection locally. Every successful
// mutation is followed by exactly one full reload, and the reload is the
// only code path that replaces the collection.
package board

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"sync"

	"github.com/dyluth/noticeboard/internal/api"
	"github.com/dyluth/noticeboard/pkg/notice"
)

// ErrToggleUnsupported is returned by Toggle when the board runs the simple variant.
var ErrToggleUnsupported = errors.New("toggle is not supported by this board variant")

// Store is the remote collection the controller synchronises with.
// *api.Client implements it.
type Store interface {
	ListMessages(ctx context.Context) ([]notice.Message, error)
	CreateMessage(ctx context.Context, req notice.CreateMessageRequest) error
	DeleteMessage(ctx context.Context, id string) error
	ToggleMessage(ctx context.Context, id string) error
}

// Observer is called with a fresh View after every state transition.
// It runs on the goroutine that caused the transition, outside any lock.
type Observer func(View)

// Option configures a Controller.
type Option func(*Controller)

// WithCapabilities sets the optional features of the board.
func WithCapabilities(caps Capabilities) Option {
	return func(c *Controller) {
		c.caps = caps
	}
}

// WithObserver registers a function that is told about every state change.
func WithObserver(fn Observer) Option {
	return func(c *Controller) {
		c.observers = append(c.observers, fn)
	}
}

// Controller owns the board state for one session.
//
// State is guarded by mu, which is never held across a round trip. Callers
// racing each other resolve last-writer-wins: whichever load finishes last
// determines the collection.
type Controller struct {
	store     Store
	caps      Capabilities
	observers []Observer

	mu       sync.Mutex
	phase    Phase
	messages []notice.Message
	formOpen bool
	banner   string
}

// NewController creates a controller in the Loading phase.
// No request is made until Load is called.
func NewController(store Store, opts ...Option) (*Controller, error) {
	if store == nil {
		return nil, fmt.Errorf("store cannot be nil")
	}

	c := &Controller{
		store: store,
		caps:  VariantRich.Capabilities(),
		phase: PhaseLoading,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Capabilities returns the optional features this board was configured with.
func (c *Controller) Capabilities() Capabilities {
	return c.caps
}

// View returns a copy of the current state.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewLocked()
}

// Messages returns a copy of the current collection snapshot.
func (c *Controller) Messages() []notice.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.messages)
}

// Load fetches the full collection and replaces the snapshot with it.
//
// On failure the previous snapshot stays visible (nil on a first load) and
// the error banner is set. Either way the board leaves the Loading phase.
func (c *Controller) Load(ctx context.Context) error {
	messages, err := c.store.ListMessages(ctx)

	c.mu.Lock()
	c.phase = PhaseReady
	if err != nil {
		c.banner = api.Describe(err)
		log.Printf("[Board] Load failed: %v", err)
	} else {
		c.messages = slices.Clone(messages)
		if c.messages == nil {
			c.messages = []notice.Message{}
		}
		c.banner = ""
		log.Printf("[Board] Loaded %d messages", len(messages))
	}
	view := c.viewLocked()
	c.mu.Unlock()

	c.notify(view)
	return err
}

// Create submits a new message. The request must already have passed the
// composer's required-field check.
//
// On success the form is closed and the collection is reloaded. On failure
// the banner is set and the form stays open so the user can retry.
func (c *Controller) Create(ctx context.Context, req notice.CreateMessageRequest) error {
	if err := c.store.CreateMessage(ctx, req); err != nil {
		c.fail("Create", err)
		return err
	}

	log.Printf("[Board] Created message %q by %s", req.Title, req.Author)
	c.succeed(func() { c.formOpen = false })
	return c.reload(ctx)
}

// Remove deletes a message by ID. Confirmation is the caller's job; Remove
// performs none. The message stays visible if the server rejects the delete.
func (c *Controller) Remove(ctx context.Context, id string) error {
	if err := c.store.DeleteMessage(ctx, id); err != nil {
		c.fail("Remove", err)
		return err
	}

	log.Printf("[Board] Removed message %s", id)
	c.succeed(nil)
	return c.reload(ctx)
}

// Toggle flips the enabled flag of a message server-side.
// Returns ErrToggleUnsupported without any request on the simple variant.
func (c *Controller) Toggle(ctx context.Context, id string) error {
	if !c.caps.Toggle {
		return ErrToggleUnsupported
	}

	if err := c.store.ToggleMessage(ctx, id); err != nil {
		c.fail("Toggle", err)
		return err
	}

	log.Printf("[Board] Toggled message %s", id)
	c.succeed(nil)
	return c.reload(ctx)
}

// OpenForm enters the FormOpen sub-state.
func (c *Controller) OpenForm() {
	c.setForm(true)
}

// CloseForm leaves the FormOpen sub-state.
func (c *Controller) CloseForm() {
	c.setForm(false)
}

// ToggleForm flips the FormOpen sub-state and returns the new value.
func (c *Controller) ToggleForm() bool {
	c.mu.Lock()
	c.formOpen = !c.formOpen
	open := c.formOpen
	view := c.viewLocked()
	c.mu.Unlock()

	c.notify(view)
	return open
}

// DismissBanner clears the error banner without a round trip.
func (c *Controller) DismissBanner() {
	c.mu.Lock()
	c.banner = ""
	view := c.viewLocked()
	c.mu.Unlock()

	c.notify(view)
}

// ReloadError reports that a mutation was accepted by the server but the
// reload that follows it failed. The board keeps its previous snapshot.
type ReloadError struct {
	Err error
}

func (e *ReloadError) Error() string {
	return fmt.Sprintf("reload after mutation failed: %v", e.Err)
}

func (e *ReloadError) Unwrap() error {
	return e.Err
}

// Accepted reports that the mutation itself succeeded.
func (e *ReloadError) Accepted() bool {
	return true
}

// IsReloadError reports whether err is (or wraps) a ReloadError.
func IsReloadError(err error) bool {
	var re *ReloadError
	return errors.As(err, &re)
}

// reload is the single gate every successful mutation goes through.
func (c *Controller) reload(ctx context.Context) error {
	if err := c.Load(ctx); err != nil {
		return &ReloadError{Err: err}
	}
	return nil
}

func (c *Controller) fail(op string, err error) {
	c.mu.Lock()
	c.banner = api.Describe(err)
	view := c.viewLocked()
	c.mu.Unlock()

	log.Printf("[Board] %s failed: %v", op, err)
	c.notify(view)
}

// succeed clears the banner and applies an optional state change.
// Observers are not notified; the reload that follows publishes the change.
func (c *Controller) succeed(apply func()) {
	c.mu.Lock()
	c.banner = ""
	if apply != nil {
		apply()
	}
	c.mu.Unlock()
}

func (c *Controller) setForm(open bool) {
	c.mu.Lock()
	c.formOpen = open
	view := c.viewLocked()
	c.mu.Unlock()

	c.notify(view)
}

func (c *Controller) viewLocked() View {
	return View{
		Phase:    c.phase,
		Messages: slices.Clone(c.messages),
		FormOpen: c.formOpen,
		Banner:   c.banner,
	}
}

func (c *Controller) notify(view View) {
	for _, fn := range c.observers {
		fn(view)
	}
}
