// Package transcript archives advisor conversations so they can be reviewed
// after the in-memory session has expired.
package transcript

import "time"

// Message kinds.
const (
	KindChat    = "chat"
	KindRoutine = "routine"
	KindSystem  = "system"
)

// Message is one archived conversation turn.
type Message struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Seq       int       `json:"seq"`
	Role      string    `json:"role"` // "user", "assistant", "system"
	Kind      string    `json:"kind"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Session is an archived conversation.
type Session struct {
	ID        string    `json:"id"`
	VisitorID string    `json:"visitor_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
