package timespec

import (
	"fmt"
	"time"
)

// Clock returns the current time. Tests replace it to pin "now".
type Clock func() time.Time

// Parser turns user-supplied time specifications into absolute times.
// Supports two formats:
//   - Go duration format: "1h", "30m", "1h30m", "72h"
//   - RFC3339 timestamps: "2025-10-29T13:00:00Z"
type Parser struct {
	now Clock
}

// New returns a Parser reading the wall clock, or clock when non-nil.
func New(clock Clock) *Parser {
	if clock == nil {
		clock = time.Now
	}
	return &Parser{now: clock}
}

// Since resolves a lower bound for --since. Durations count back from now,
// so "1h" means "1 hour ago".
func (p *Parser) Since(spec string) (time.Time, error) {
	return p.parse(spec, -1)
}

// Until resolves an upper bound for --until. Like Since, durations count
// back from now.
func (p *Parser) Until(spec string) (time.Time, error) {
	return p.parse(spec, -1)
}

// Expiry resolves --expires. Durations count forward from now, so "24h"
// means "this time tomorrow". The result must lie in the future.
func (p *Parser) Expiry(spec string) (time.Time, error) {
	t, err := p.parse(spec, 1)
	if err != nil {
		return time.Time{}, err
	}
	if !t.After(p.now()) {
		return time.Time{}, fmt.Errorf("expiry %s is not in the future", t.Format(time.RFC3339))
	}
	return t, nil
}

func (p *Parser) parse(spec string, direction time.Duration) (time.Time, error) {
	if spec == "" {
		return time.Time{}, fmt.Errorf("empty time specification")
	}

	// Try parsing as RFC3339 first
	if t, err := time.Parse(time.RFC3339, spec); err == nil {
		return t, nil
	}

	if d, err := time.ParseDuration(spec); err == nil {
		if d <= 0 {
			return time.Time{}, fmt.Errorf("duration must be positive: %s", spec)
		}
		return p.now().Add(direction * d), nil
	}

	return time.Time{}, fmt.Errorf("invalid time specification: %s (use duration like '1h30m' or RFC3339 like '2025-10-29T13:00:00Z')", spec)
}

// ParseExpiry resolves an optional --expires value against the wall clock.
// An empty spec means the message never expires and yields nil.
func ParseExpiry(spec string) (*time.Time, error) {
	if spec == "" {
		return nil, nil
	}
	t, err := New(nil).Expiry(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid --expires: %w", err)
	}
	return &t, nil
}

// ParseRange resolves the optional --since and --until values into Unix
// milliseconds. Zero means "no bound" for that end of the range.
//
// Validates that since < until if both are specified.
func ParseRange(since, until string) (int64, int64, error) {
	return New(nil).Range(since, until)
}

// Range is ParseRange against the parser's clock.
func (p *Parser) Range(since, until string) (int64, int64, error) {
	var sinceMS, untilMS int64

	if since != "" {
		t, err := p.Since(since)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid --since: %w", err)
		}
		sinceMS = t.UnixMilli()
	}

	if until != "" {
		t, err := p.Until(until)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid --until: %w", err)
		}
		untilMS = t.UnixMilli()
	}

	if sinceMS > 0 && untilMS > 0 && sinceMS >= untilMS {
		return 0, 0, fmt.Errorf("--since must be before --until")
	}

	return sinceMS, untilMS, nil
}
