package session

import (
	"context"
	"errors"

	"github.com/future-self/backend/internal/model/chat"
)

var (
	// ErrSessionNotFound is surfaced by every operation on an unknown or
	// expired session; handlers translate it to a user-visible error.
	ErrSessionNotFound = errors.New("session not found")
	// ErrCareerRequired rejects conversations started without a career.
	ErrCareerRequired = errors.New("career id is required")
)

// Store holds sessions and their conversation history. A session id maps
// to exactly one session; messages are kept in arrival order.
type Store interface {
	Create(ctx context.Context) (chat.Session, error)
	Get(ctx context.Context, sessionID string) (chat.Session, error)
	Update(ctx context.Context, session chat.Session) error
	StartConversation(ctx context.Context, sessionID, careerID string) (chat.Conversation, error)
	AppendMessage(ctx context.Context, message chat.Message) (chat.Message, error)
	Transcript(ctx context.Context, sessionID string) ([]chat.Message, error)
}

// Stats summarizes store occupancy for the health endpoint.
type Stats struct {
	Sessions      int `json:"sessions"`
	Conversations int `json:"conversations"`
	Messages      int `json:"messages"`
}
