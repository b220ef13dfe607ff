package roster

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/dyluth/noticeboard/pkg/notice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockActions struct {
	mock.Mock
}

func (m *MockActions) Remove(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockActions) Toggle(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func boolPtr(b bool) *bool { return &b }

func sampleMessage() notice.Message {
	return notice.Message{
		ID:        "3f2c1a9e-8d4b-4f6a-9c1e-2b7d5e8f0a13",
		Title:     "Bins",
		Content:   "Take the bins out\nGreen one too",
		Author:    "Alex",
		Priority:  notice.PriorityUrgent,
		CreatedAt: time.Date(2025, 10, 29, 13, 5, 0, 0, time.UTC),
		UpdatedAt: time.Date(2025, 10, 29, 13, 5, 0, 0, time.UTC),
		Enabled:   boolPtr(false),
	}
}

func newRoster(t *testing.T, actions Actions, confirm Confirmer, opts ...Option) *Roster {
	t.Helper()
	opts = append([]Option{WithLocation(time.UTC)}, opts...)
	r, err := New(actions, confirm, opts...)
	require.NoError(t, err)
	return r
}

func TestNew_RequiresConfirmer(t *testing.T) {
	_, err := New(nil, nil)
	require.Error(t, err)
}

func TestRenderCards(t *testing.T) {
	t.Run("empty collection shows empty state", func(t *testing.T) {
		r := newRoster(t, nil, AssumeYes)

		for _, messages := range [][]notice.Message{nil, {}} {
			var buf bytes.Buffer
			count := r.RenderCards(&buf, messages)

			assert.Equal(t, 0, count)
			assert.Contains(t, buf.String(), "暂无留言")
			assert.Contains(t, buf.String(), DefaultEmptyHint)
		}
	})

	t.Run("custom empty hint", func(t *testing.T) {
		r := newRoster(t, nil, AssumeYes, WithEmptyHint("Type n to add one"))
		var buf bytes.Buffer
		r.RenderCards(&buf, nil)
		assert.Contains(t, buf.String(), "Type n to add one")
	})

	t.Run("single card", func(t *testing.T) {
		r := newRoster(t, nil, AssumeYes)
		var buf bytes.Buffer
		count := r.RenderCards(&buf, []notice.Message{sampleMessage()})

		output := buf.String()
		assert.Equal(t, 1, count)
		assert.Contains(t, output, "🚨 Bins")
		assert.Contains(t, output, "🔴 紧急")
		assert.Contains(t, output, "👤 Alex")
		assert.Contains(t, output, "2025/10/29 13:05")
		assert.Contains(t, output, "#3f2c1a9e")
		assert.Contains(t, output, "   Take the bins out\n   Green one too\n")
		assert.Contains(t, output, "共 1 条留言")
		assert.NotContains(t, output, "已停用", "enabled state is hidden unless requested")
	})

	t.Run("enabled state in rich variant", func(t *testing.T) {
		r := newRoster(t, nil, AssumeYes, WithEnabledState(true))
		enabled := sampleMessage()
		enabled.ID = "b"
		enabled.Enabled = boolPtr(true)
		simple := sampleMessage()
		simple.ID = "c"
		simple.Enabled = nil

		var buf bytes.Buffer
		r.RenderCards(&buf, []notice.Message{sampleMessage(), enabled, simple})

		output := buf.String()
		assert.Equal(t, 1, strings.Count(output, "已停用"))
		assert.Equal(t, 1, strings.Count(output, "已启用"))
		assert.Contains(t, output, "共 3 条留言")
	})

	t.Run("unknown priority falls back to normal", func(t *testing.T) {
		r := newRoster(t, nil, AssumeYes)
		m := sampleMessage()
		m.Priority = notice.Priority("critical")

		var buf bytes.Buffer
		require.NotPanics(t, func() { r.RenderCards(&buf, []notice.Message{m}) })
		assert.Contains(t, buf.String(), "🔵 普通")
		assert.Contains(t, buf.String(), "📌 Bins")
	})

	t.Run("expiry is shown in the configured zone", func(t *testing.T) {
		shanghai := time.FixedZone("CST", 8*60*60)
		r := newRoster(t, nil, AssumeYes, WithLocation(shanghai))
		m := sampleMessage()
		expires := time.Date(2025, 10, 30, 0, 30, 0, 0, time.UTC)
		m.ExpiresAt = &expires

		var buf bytes.Buffer
		r.RenderCards(&buf, []notice.Message{m})
		assert.Contains(t, buf.String(), "2025/10/29 21:05")
		assert.Contains(t, buf.String(), "有效期至 2025/10/30 08:30")
	})
}

func TestRender_Formats(t *testing.T) {
	r := newRoster(t, nil, AssumeYes)
	messages := []notice.Message{sampleMessage(), {ID: "2", Title: "b", Priority: notice.PriorityLow}}

	t.Run("jsonl", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, r.Render(&buf, messages, FormatJSONL))

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 2)
		var decoded notice.Message
		require.NoError(t, json.Unmarshal([]byte(lines[0]), &decoded))
		assert.Equal(t, messages[0].ID, decoded.ID)
	})

	t.Run("unknown format", func(t *testing.T) {
		var buf bytes.Buffer
		require.Error(t, r.Render(&buf, messages, Format("xml")))
	})
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("default")
	require.NoError(t, err)
	assert.Equal(t, FormatCards, f)

	f, err = ParseFormat("jsonl")
	require.NoError(t, err)
	assert.Equal(t, FormatJSONL, f)

	_, err = ParseFormat("table")
	require.Error(t, err)
}

func TestFormatSingleJSON(t *testing.T) {
	m := sampleMessage()
	var buf bytes.Buffer
	require.NoError(t, FormatSingleJSON(&buf, &m))
	assert.Contains(t, buf.String(), "\n  \"title\": \"Bins\"")
	assert.True(t, strings.HasSuffix(buf.String(), "}\n"))
}

func TestFormatTimestamp(t *testing.T) {
	assert.Equal(t, "-", FormatTimestamp(time.Time{}, time.UTC))
	assert.Equal(t, "2025/01/02 03:04", FormatTimestamp(time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC), time.UTC))
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "1", ShortID("1"))
	assert.Equal(t, "3f2c1a9e", ShortID("3f2c1a9e-8d4b"))
}

func TestRoster_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("confirmed delete calls remove", func(t *testing.T) {
		actions := new(MockActions)
		actions.On("Remove", mock.Anything, "1").Return(nil)
		var asked []string
		r := newRoster(t, actions, ConfirmerFunc(func(p string) bool {
			asked = append(asked, p)
			return true
		}))

		require.NoError(t, r.Delete(ctx, "1"))
		actions.AssertCalled(t, "Remove", mock.Anything, "1")
		assert.Equal(t, []string{DeletePrompt}, asked)
	})

	t.Run("declined delete makes no call", func(t *testing.T) {
		actions := new(MockActions)
		r := newRoster(t, actions, ConfirmerFunc(func(string) bool { return false }))

		assert.ErrorIs(t, r.Delete(ctx, "1"), ErrDeclined)
		actions.AssertNotCalled(t, "Remove", mock.Anything, mock.Anything)
	})

	t.Run("render-only roster", func(t *testing.T) {
		r := newRoster(t, nil, AssumeYes)
		require.Error(t, r.Delete(ctx, "1"))
		require.Error(t, r.Toggle(ctx, "1"))
	})
}

func TestRoster_ToggleAsksNothing(t *testing.T) {
	actions := new(MockActions)
	actions.On("Toggle", mock.Anything, "1").Return(nil)
	r := newRoster(t, actions, ConfirmerFunc(func(string) bool {
		t.Fatal("toggle must not ask for confirmation")
		return false
	}))

	require.NoError(t, r.Toggle(context.Background(), "1"))
	actions.AssertCalled(t, "Toggle", mock.Anything, "1")
}

func TestTerminalConfirmer(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"是\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"maybe\n", false},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			var out bytes.Buffer
			c := NewTerminalConfirmer(bufio.NewReader(strings.NewReader(tt.input)), &out)

			assert.Equal(t, tt.expected, c.Confirm(DeletePrompt))
			assert.Contains(t, out.String(), DeletePrompt+" [y/N]: ")
		})
	}
}
