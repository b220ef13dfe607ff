package filter

import (
	"testing"
	"time"

	"github.com/dyluth/noticeboard/pkg/notice"
	"github.com/stretchr/testify/assert"
)

func boolPtr(b bool) *bool { return &b }

func sampleMessages() []notice.Message {
	base := time.Date(2025, 10, 29, 12, 0, 0, 0, time.UTC)
	return []notice.Message{
		{ID: "1", Author: "Alex", Priority: notice.PriorityUrgent, CreatedAt: base, Enabled: boolPtr(true)},
		{ID: "2", Author: "bob", Priority: notice.PriorityLow, CreatedAt: base.Add(time.Hour), Enabled: boolPtr(false)},
		{ID: "3", Author: "Bob", Priority: notice.Priority("weird"), CreatedAt: base.Add(2 * time.Hour)},
	}
}

func ids(messages []notice.Message) []string {
	out := make([]string, len(messages))
	for i, m := range messages {
		out[i] = m.ID
	}
	return out
}

func TestCriteria_Apply(t *testing.T) {
	messages := sampleMessages()
	base := messages[0].CreatedAt

	tests := []struct {
		name     string
		criteria *Criteria
		expected []string
	}{
		{"nil criteria", nil, []string{"1", "2", "3"}},
		{"no filters", &Criteria{}, []string{"1", "2", "3"}},
		{"priority", &Criteria{Priorities: []notice.Priority{notice.PriorityUrgent, notice.PriorityLow}}, []string{"1", "2"}},
		{"unknown priority counts as normal", &Criteria{Priorities: []notice.Priority{notice.PriorityNormal}}, []string{"3"}},
		{"author is case-insensitive", &Criteria{Author: "BOB"}, []string{"2", "3"}},
		{"enabled only treats absent as enabled", &Criteria{Enabled: EnabledOnly}, []string{"1", "3"}},
		{"disabled only", &Criteria{Enabled: DisabledOnly}, []string{"2"}},
		{"since", &Criteria{SinceTimestampMs: base.Add(30 * time.Minute).UnixMilli()}, []string{"2", "3"}},
		{"until", &Criteria{UntilTimestampMs: base.Add(30 * time.Minute).UnixMilli()}, []string{"1"}},
		{"combined", &Criteria{Author: "bob", Enabled: EnabledOnly}, []string{"3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ids(tt.criteria.Apply(messages)))
		})
	}
}

func TestCriteria_HasFilters(t *testing.T) {
	assert.False(t, (&Criteria{}).HasFilters())
	assert.True(t, (&Criteria{Author: "a"}).HasFilters())
	assert.True(t, (&Criteria{Enabled: DisabledOnly}).HasFilters())
}
