package roster

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dyluth/noticeboard/pkg/notice"
	"github.com/fatih/color"
)

// Format selects how a collection is written.
type Format string

const (
	// FormatCards is the human-readable card layout
	FormatCards Format = "cards"

	// FormatJSONL writes one complete message per line as JSON
	FormatJSONL Format = "jsonl"
)

// ParseFormat converts a flag value into a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatCards, "default", "":
		return FormatCards, nil
	case FormatJSONL:
		return FormatJSONL, nil
	default:
		return "", fmt.Errorf("unknown output format: %s", s)
	}
}

// EmptyState is the first line shown for an empty collection.
const EmptyState = "暂无留言..."

// DefaultEmptyHint invites the user to create the first notice.
const DefaultEmptyHint = "快来发布第一条留言吧！"

// TimestampLayout is the numeric zh-CN date-time layout used on cards.
const TimestampLayout = "2006/01/02 15:04"

var severityColors = map[notice.Priority]*color.Color{
	notice.PriorityUrgent: color.New(color.FgRed, color.Bold),
	notice.PriorityHigh:   color.New(color.FgYellow, color.Bold),
	notice.PriorityNormal: color.New(color.FgBlue),
	notice.PriorityLow:    color.New(color.FgHiBlack),
}

// SeverityColor returns the colour for a priority; unknown values get normal's.
func SeverityColor(p notice.Priority) *color.Color {
	return severityColors[p.Normalize()]
}

// FormatTimestamp renders t in loc using TimestampLayout. Zero times render as "-".
func FormatTimestamp(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return "-"
	}
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(TimestampLayout)
}

// FormatJSONLines writes each message as a single JSON object per line.
func FormatJSONLines(w io.Writer, messages []notice.Message) error {
	for i := range messages {
		data, err := json.Marshal(&messages[i])
		if err != nil {
			return fmt.Errorf("failed to marshal message to JSON: %w", err)
		}
		if _, err := fmt.Fprintf(w, "%s\n", data); err != nil {
			return fmt.Errorf("failed to write JSONL output: %w", err)
		}
	}
	return nil
}

// FormatSingleJSON writes one message as indented JSON.
func FormatSingleJSON(w io.Writer, message *notice.Message) error {
	data, err := json.MarshalIndent(message, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal message to JSON: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write JSON output: %w", err)
	}
	fmt.Fprintln(w)
	return nil
}

func writeEmptyState(w io.Writer, hint string) {
	fmt.Fprintf(w, "📝 %s\n", EmptyState)
	if hint != "" {
		fmt.Fprintln(w, hint)
	}
}

// writeCard lays out one message:
//
//	🚨 Title                        🔴 紧急
//	   👤 author • 🕒 time • #shortid
//	   content...
func writeCard(w io.Writer, m *notice.Message, loc *time.Location, showEnabled bool) {
	sev := SeverityColor(m.Priority)

	fmt.Fprintf(w, "%s %s  ", m.Priority.Icon(), m.Title)
	sev.Fprintf(w, "[%s]", m.Priority.Label())
	fmt.Fprintln(w)

	fmt.Fprintf(w, "   👤 %s • 🕒 %s • #%s\n", formatAuthor(m.Author), FormatTimestamp(m.CreatedAt, loc), ShortID(m.ID))

	for _, line := range strings.Split(strings.TrimRight(m.Content, "\n"), "\n") {
		fmt.Fprintf(w, "   %s\n", line)
	}

	if m.ExpiresAt != nil {
		fmt.Fprintf(w, "   ⏳ 有效期至 %s\n", FormatTimestamp(*m.ExpiresAt, loc))
	}

	if showEnabled && m.HasEnabled() {
		if m.IsEnabled() {
			fmt.Fprintln(w, "   ✅ 已启用")
		} else {
			fmt.Fprintln(w, "   ⏸️ 已停用")
		}
	}

	fmt.Fprintln(w)
}

// ShortID truncates an ID to its first 8 characters for compact display.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func formatAuthor(author string) string {
	if strings.TrimSpace(author) == "" {
		return "-"
	}
	return author
}
