package filter

import (
	"strings"

	"github.com/dyluth/noticeboard/pkg/notice"
)

// EnabledFilter narrows messages by their enabled flag.
type EnabledFilter int

const (
	// EnabledAny keeps every message
	EnabledAny EnabledFilter = iota

	// EnabledOnly keeps messages whose flag is true or absent
	EnabledOnly

	// DisabledOnly keeps messages whose flag is explicitly false
	DisabledOnly
)

// Criteria defines display filtering for a message snapshot.
// All filters are ANDed together - a message must match ALL criteria to pass.
// Filtering is presentation only; the snapshot itself is never changed.
type Criteria struct {
	SinceTimestampMs int64             // Unix timestamp in milliseconds, 0 = no filter
	UntilTimestampMs int64             // Unix timestamp in milliseconds, 0 = no filter
	Priorities       []notice.Priority // Any of these priorities, empty = no filter
	Author           string            // Case-insensitive exact author, empty = no filter
	Enabled          EnabledFilter     // Enabled flag filter
}

// Matches returns true if the message matches all filter criteria.
// Empty/zero criteria values are treated as "match all" for that criterion.
func (c *Criteria) Matches(m *notice.Message) bool {
	// Time filtering - check CreatedAt
	createdMs := m.CreatedAt.UnixMilli()
	if c.SinceTimestampMs > 0 && createdMs < c.SinceTimestampMs {
		return false
	}
	if c.UntilTimestampMs > 0 && createdMs > c.UntilTimestampMs {
		return false
	}

	// Priority filtering - unknown values compare as normal
	if len(c.Priorities) > 0 {
		found := false
		for _, p := range c.Priorities {
			if m.Priority.Normalize() == p {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if c.Author != "" && !strings.EqualFold(strings.TrimSpace(m.Author), strings.TrimSpace(c.Author)) {
		return false
	}

	switch c.Enabled {
	case EnabledOnly:
		if !m.IsEnabled() {
			return false
		}
	case DisabledOnly:
		if m.IsEnabled() {
			return false
		}
	}

	return true
}

// HasFilters returns true if any filters are active.
func (c *Criteria) HasFilters() bool {
	return c.SinceTimestampMs > 0 ||
		c.UntilTimestampMs > 0 ||
		len(c.Priorities) > 0 ||
		c.Author != "" ||
		c.Enabled != EnabledAny
}

// Apply returns the messages that match, preserving server order.
// A nil Criteria returns the input unchanged.
func (c *Criteria) Apply(messages []notice.Message) []notice.Message {
	if c == nil || !c.HasFilters() {
		return messages
	}

	out := make([]notice.Message, 0, len(messages))
	for i := range messages {
		if c.Matches(&messages[i]) {
			out = append(out, messages[i])
		}
	}
	return out
}
