package notice

import (
	"fmt"
	"strings"
)

// Priority is the severity of a notice.
type Priority string

const (
	// PriorityLow is for notices that can wait
	PriorityLow Priority = "low"

	// PriorityNormal is the default priority for new notices
	PriorityNormal Priority = "normal"

	// PriorityHigh is for notices that need attention today
	PriorityHigh Priority = "high"

	// PriorityUrgent is for notices that need attention now
	PriorityUrgent Priority = "urgent"
)

// Priorities lists every valid priority from most to least severe.
var Priorities = []Priority{PriorityUrgent, PriorityHigh, PriorityNormal, PriorityLow}

// ParsePriority converts user input into a Priority.
// Matching is case-insensitive and ignores surrounding whitespace.
// An empty string yields PriorityNormal.
func ParsePriority(s string) (Priority, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	if normalized == "" {
		return PriorityNormal, nil
	}

	p := Priority(normalized)
	if !p.IsValid() {
		return "", fmt.Errorf("invalid priority: %s (must be 'low', 'normal', 'high', or 'urgent')", s)
	}
	return p, nil
}

// IsValid reports whether p is one of the four enumerated values.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Normalize returns p, or PriorityNormal when p is not a recognised value.
func (p Priority) Normalize() Priority {
	if p.IsValid() {
		return p
	}
	return PriorityNormal
}

// Severity ranks the priority, 1 being the most severe.
// This is the order the server sorts by.
func (p Priority) Severity() int {
	switch p.Normalize() {
	case PriorityUrgent:
		return 1
	case PriorityHigh:
		return 2
	case PriorityLow:
		return 4
	default:
		return 3
	}
}

// Label returns the human-readable badge for the priority.
func (p Priority) Label() string {
	switch p.Normalize() {
	case PriorityUrgent:
		return "🔴 紧急"
	case PriorityHigh:
		return "🟠 高"
	case PriorityLow:
		return "🟢 低"
	default:
		return "🔵 普通"
	}
}

// Icon returns the marker shown in front of a notice title.
func (p Priority) Icon() string {
	switch p.Normalize() {
	case PriorityUrgent:
		return "🚨"
	case PriorityHigh:
		return "⚡"
	case PriorityLow:
		return "📝"
	default:
		return "📌"
	}
}
