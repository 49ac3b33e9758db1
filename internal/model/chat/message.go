package chat

import "time"

// Message roles as they appear on the wire.
const (
	RoleUser       = "user"
	RoleFutureSelf = "future_self"
)

// Message is one turn of a session's conversation.
type Message struct {
	ID        string    `json:"id"`
	SessionID string    `json:"sessionId"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}
