package notice

import "time"

// Message is a notice as returned by GET /api/messages.
type Message struct {
	ID        string     `json:"id"`                   // Opaque, server-assigned, immutable
	Title     string     `json:"title"`                // Non-empty
	Content   string     `json:"content"`              // Non-empty
	Author    string     `json:"author"`               // Non-empty
	Priority  Priority   `json:"priority"`             // May be an unrecognised value on malformed payloads
	CreatedAt time.Time  `json:"created_at"`           // Server-assigned
	UpdatedAt time.Time  `json:"updated_at"`           // Server-assigned
	ExpiresAt *time.Time `json:"expires_at,omitempty"` // Optional expiry
	Enabled   *bool      `json:"enabled,omitempty"`    // Rich variant only; nil when the server omits it
}

// HasEnabled reports whether the server sent an enabled flag for this message.
func (m *Message) HasEnabled() bool {
	return m.Enabled != nil
}

// IsEnabled reports the enabled flag, treating an absent flag as enabled.
func (m *Message) IsEnabled() bool {
	return m.Enabled == nil || *m.Enabled
}

// IsExpired reports whether the message carries an expiry at or before now.
func (m *Message) IsExpired(now time.Time) bool {
	return m.ExpiresAt != nil && !m.ExpiresAt.After(now)
}

// CreateMessageRequest is the body of POST /api/messages.
// It carries no identifier and no timestamps; those are assigned by the server.
type CreateMessageRequest struct {
	Title     string     `json:"title" validate:"required"`
	Content   string     `json:"content" validate:"required"`
	Author    string     `json:"author" validate:"required"`
	Priority  Priority   `json:"priority" validate:"required,oneof=low normal high urgent"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// Stats is the server's summary returned by GET /api/stats.
type Stats struct {
	TotalMessages  int       `json:"total_messages"`
	ActiveMessages int       `json:"active_messages"`
	TotalClients   int       `json:"total_clients"`
	OnlineClients  int       `json:"online_clients"`
	LastUpdated    time.Time `json:"last_updated"`
}
