package chat

import (
	"time"

	"github.com/future-self/backend/internal/model/persona"
	"github.com/future-self/backend/internal/model/resume"
)

// Session correlates a browser tab's resume, career and chat state.
// It lives in the session store; LastActive drives TTL eviction.
type Session struct {
	ID             string             `json:"id"`
	CreatedAt      time.Time          `json:"createdAt"`
	LastActive     time.Time          `json:"lastActive"`
	PhotoPath      string             `json:"photoPath,omitempty"`
	PhotoURL       string             `json:"photoUrl,omitempty"`
	AgedAvatars    map[string]string  `json:"agedAvatars,omitempty"`
	Resume         *resume.Analysis   `json:"resume,omitempty"`
	Persona        *persona.Persona   `json:"persona,omitempty"`
	ConversationID string             `json:"conversationId,omitempty"`
	Career         string             `json:"career,omitempty"`
}

// Conversation marks one chat exchange opened within a session.
type Conversation struct {
	ID        string    `json:"id"`
	SessionID string    `json:"sessionId"`
	Career    string    `json:"career"`
	StartedAt time.Time `json:"startedAt"`
}
