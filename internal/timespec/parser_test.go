package timespec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 10, 29, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func TestParser_Expiry(t *testing.T) {
	p := New(fixedClock)

	tests := []struct {
		name     string
		spec     string
		expected time.Time
		wantErr  string
	}{
		{name: "duration counts forward", spec: "24h", expected: fixedNow.Add(24 * time.Hour)},
		{name: "compound duration", spec: "1h30m", expected: fixedNow.Add(90 * time.Minute)},
		{name: "rfc3339", spec: "2025-11-01T08:00:00Z", expected: time.Date(2025, 11, 1, 8, 0, 0, 0, time.UTC)},
		{name: "past timestamp", spec: "2025-10-01T08:00:00Z", wantErr: "not in the future"},
		{name: "negative duration", spec: "-1h", wantErr: "must be positive"},
		{name: "garbage", spec: "tomorrow", wantErr: "invalid time specification"},
		{name: "empty", spec: "", wantErr: "empty time specification"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.Expiry(tt.spec)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(got), "expected %s, got %s", tt.expected, got)
		})
	}
}

func TestParser_Since(t *testing.T) {
	p := New(fixedClock)

	got, err := p.Since("2h")
	require.NoError(t, err)
	assert.Equal(t, fixedNow.Add(-2*time.Hour), got)

	got, err = p.Since("2025-10-01T08:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, 2025, got.Year())
}

func TestParseExpiry(t *testing.T) {
	t.Run("empty means no expiry", func(t *testing.T) {
		got, err := ParseExpiry("")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("wraps errors with flag name", func(t *testing.T) {
		_, err := ParseExpiry("soon")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid --expires")
	})

	t.Run("duration", func(t *testing.T) {
		got, err := ParseExpiry("1h")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.True(t, got.After(time.Now()))
	})
}

func TestParser_Range(t *testing.T) {
	p := New(fixedClock)

	tests := []struct {
		name         string
		since, until string
		wantSince    int64
		wantUntil    int64
		wantErr      string
	}{
		{name: "no bounds"},
		{name: "since only", since: "2h", wantSince: fixedNow.Add(-2 * time.Hour).UnixMilli()},
		{name: "until only", until: "1h", wantUntil: fixedNow.Add(-time.Hour).UnixMilli()},
		{
			name:      "both as durations",
			since:     "3h",
			until:     "1h",
			wantSince: fixedNow.Add(-3 * time.Hour).UnixMilli(),
			wantUntil: fixedNow.Add(-time.Hour).UnixMilli(),
		},
		{
			name:      "rfc3339 until",
			since:     "2025-10-29T08:00:00Z",
			until:     "2025-10-29T12:00:00Z",
			wantSince: time.Date(2025, 10, 29, 8, 0, 0, 0, time.UTC).UnixMilli(),
			wantUntil: fixedNow.UnixMilli(),
		},
		{name: "since after until", since: "1h", until: "3h", wantErr: "--since must be before --until"},
		{name: "equal bounds", since: "2h", until: "2h", wantErr: "--since must be before --until"},
		{name: "bad since", since: "bogus", wantErr: "invalid --since"},
		{name: "bad until", until: "bogus", wantErr: "invalid --until"},
		{name: "negative until", until: "-1h", wantErr: "invalid --until"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			since, until, err := p.Range(tt.since, tt.until)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSince, since)
			assert.Equal(t, tt.wantUntil, until)
		})
	}
}

func TestParseRange(t *testing.T) {
	since, until, err := ParseRange("", "")
	require.NoError(t, err)
	assert.Zero(t, since)
	assert.Zero(t, until)

	_, _, err = ParseRange("1h", "2h")
	assert.ErrorContains(t, err, "--since must be before --until")
}
