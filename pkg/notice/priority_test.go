package notice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePriority(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Priority
		wantErr  bool
	}{
		{name: "low", input: "low", expected: PriorityLow},
		{name: "normal", input: "normal", expected: PriorityNormal},
		{name: "high", input: "high", expected: PriorityHigh},
		{name: "urgent", input: "urgent", expected: PriorityUrgent},
		{name: "mixed case with spaces", input: "  Urgent ", expected: PriorityUrgent},
		{name: "empty defaults to normal", input: "", expected: PriorityNormal},
		{name: "unknown value", input: "critical", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParsePriority(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "invalid priority")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, p)
		})
	}
}

func TestPriorityPresentation(t *testing.T) {
	tests := []struct {
		priority Priority
		label    string
		icon     string
		severity int
	}{
		{PriorityUrgent, "🔴 紧急", "🚨", 1},
		{PriorityHigh, "🟠 高", "⚡", 2},
		{PriorityNormal, "🔵 普通", "📌", 3},
		{PriorityLow, "🟢 低", "📝", 4},
		{Priority("critical"), "🔵 普通", "📌", 3},
		{Priority(""), "🔵 普通", "📌", 3},
	}

	for _, tt := range tests {
		t.Run(string(tt.priority), func(t *testing.T) {
			assert.Equal(t, tt.label, tt.priority.Label())
			assert.Equal(t, tt.icon, tt.priority.Icon())
			assert.Equal(t, tt.severity, tt.priority.Severity())
		})
	}
}

func TestPriorities_OrderedBySeverity(t *testing.T) {
	for i := 1; i < len(Priorities); i++ {
		assert.Less(t, Priorities[i-1].Severity(), Priorities[i].Severity())
	}
}
