package resolver

import (
	"fmt"
	"strings"

	"github.com/dyluth/noticeboard/pkg/notice"
	"github.com/google/uuid"
)

// MinShortIDLength is the minimum required length for short ID prefixes.
// Set to 4 characters so the 8-character IDs shown on cards can be shortened further.
const MinShortIDLength = 4

// ResolveMessageID resolves a user-supplied ID against the current snapshot.
// Returns the full ID if exactly one message matches.
//
// The function handles three cases:
// 1. Input equals a message ID exactly (any length) - returned as-is
// 2. Input is a full UUID that is not in the snapshot - NotFoundError
// 3. Input is a prefix of at least MinShortIDLength - unique match or error
//
// Resolution only ever looks at the snapshot; it never asks the server.
func ResolveMessageID(messages []notice.Message, shortID string) (string, error) {
	shortID = strings.TrimSpace(shortID)
	if shortID == "" {
		return "", fmt.Errorf("message ID cannot be empty")
	}

	for i := range messages {
		if messages[i].ID == shortID {
			return shortID, nil
		}
	}

	// A complete UUID either matched above or is simply not on the board
	if _, err := uuid.Parse(shortID); err == nil {
		return "", &NotFoundError{ShortID: shortID}
	}

	if len(shortID) < MinShortIDLength {
		return "", fmt.Errorf("short ID must be at least %d characters (got %d)", MinShortIDLength, len(shortID))
	}

	var matches []string
	for i := range messages {
		if strings.HasPrefix(messages[i].ID, shortID) {
			matches = append(matches, messages[i].ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", &NotFoundError{ShortID: shortID}
	case 1:
		return matches[0], nil
	default:
		return "", &AmbiguousError{ShortID: shortID, Matches: matches}
	}
}

// FindMessage resolves shortID and returns a copy of the matching message.
func FindMessage(messages []notice.Message, shortID string) (*notice.Message, error) {
	id, err := ResolveMessageID(messages, shortID)
	if err != nil {
		return nil, err
	}
	for i := range messages {
		if messages[i].ID == id {
			m := messages[i]
			return &m, nil
		}
	}
	return nil, &NotFoundError{ShortID: shortID}
}

// NotFoundError indicates no messages matched the short ID.
type NotFoundError struct {
	ShortID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no messages found matching '%s'", e.ShortID)
}

// AmbiguousError indicates multiple messages matched the short ID.
type AmbiguousError struct {
	ShortID string
	Matches []string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("ambiguous short ID '%s' matches %d messages", e.ShortID, len(e.Matches))
}

// FormatAmbiguousError creates a user-friendly error message for ambiguous short IDs.
// Lists all matching IDs (up to 10, then "...and N more").
func FormatAmbiguousError(err *AmbiguousError) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Error: ambiguous short ID '%s' matches %d messages:\n", err.ShortID, len(err.Matches))

	displayCount := min(len(err.Matches), 10)
	for i := 0; i < displayCount; i++ {
		fmt.Fprintf(&b, "  %s\n", err.Matches[i])
	}

	if len(err.Matches) > 10 {
		fmt.Fprintf(&b, "  ...and %d more\n", len(err.Matches)-10)
	}

	b.WriteString("\nUse a longer prefix to uniquely identify the message.")
	return b.String()
}

// IsNotFoundError checks if an error is a NotFoundError.
func IsNotFoundError(err error) bool {
	_, ok := err.(*NotFoundError)
	return ok
}

// IsAmbiguousError checks if an error is an AmbiguousError.
func IsAmbiguousError(err error) bool {
	_, ok := err.(*AmbiguousError)
	return ok
}
