package notice

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessage_DecodeRichPayload(t *testing.T) {
	payload := `{
		"id": "3f2c1a9e-8d4b-4f6a-9c1e-2b7d5e8f0a13",
		"title": "Bins",
		"content": "Take the bins out tonight",
		"author": "Alex",
		"priority": "high",
		"created_at": "2025-10-29T13:00:00Z",
		"updated_at": "2025-10-29T13:05:00Z",
		"expires_at": "2025-10-30T08:00:00Z",
		"enabled": false
	}`

	var m Message
	require.NoError(t, json.Unmarshal([]byte(payload), &m))

	assert.Equal(t, PriorityHigh, m.Priority)
	assert.True(t, m.HasEnabled())
	assert.False(t, m.IsEnabled())
	require.NotNil(t, m.ExpiresAt)
	assert.True(t, m.IsExpired(time.Date(2025, 10, 30, 9, 0, 0, 0, time.UTC)))
	assert.False(t, m.IsExpired(time.Date(2025, 10, 30, 7, 0, 0, 0, time.UTC)))
}

func TestMessage_DecodeSimplePayload(t *testing.T) {
	payload := `{"id":"1","title":"Hi","content":"there","author":"Bob","priority":"normal",
		"created_at":"2025-10-29T13:00:00Z","updated_at":"2025-10-29T13:00:00Z"}`

	var m Message
	require.NoError(t, json.Unmarshal([]byte(payload), &m))

	assert.False(t, m.HasEnabled())
	assert.True(t, m.IsEnabled(), "absent flag should read as enabled")
	assert.Nil(t, m.ExpiresAt)
	assert.False(t, m.IsExpired(time.Now()))
}

func TestMessage_DecodeUnknownPriority(t *testing.T) {
	payload := `{"id":"1","title":"Hi","content":"there","author":"Bob","priority":"critical",
		"created_at":"2025-10-29T13:00:00Z","updated_at":"2025-10-29T13:00:00Z"}`

	var m Message
	require.NoError(t, json.Unmarshal([]byte(payload), &m))
	assert.Equal(t, Priority("critical"), m.Priority)
	assert.Equal(t, "🔵 普通", m.Priority.Label())
}

func TestCreateMessageRequest_OmitsEmptyExpiry(t *testing.T) {
	data, err := json.Marshal(CreateMessageRequest{Title: "Hi", Content: "there", Author: "Bob", Priority: PriorityHigh})
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"Hi","content":"there","author":"Bob","priority":"high"}`, string(data))
}
