package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/future-self/backend/internal/logger"
	"github.com/future-self/backend/internal/model/chat"
)

// MemoryStore keeps sessions in process memory. It is the default backend;
// sessions idle past the TTL are removed by Sweep.
type MemoryStore struct {
	mu            sync.RWMutex
	ttl           time.Duration
	sessions      map[string]chat.Session
	messages      map[string][]chat.Message
	conversations int
}

// NewMemoryStore bootstraps an empty in-memory store.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:      ttl,
		sessions: make(map[string]chat.Session),
		messages: make(map[string][]chat.Message),
	}
}

// Create provisions an anonymous session.
func (s *MemoryStore) Create(_ context.Context) (chat.Session, error) {
	now := time.Now().UTC()
	session := chat.Session{
		ID:         uuid.NewString(),
		CreatedAt:  now,
		LastActive: now,
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.messages[session.ID] = make([]chat.Message, 0, 16)
	s.mu.Unlock()

	return session, nil
}

// Get retrieves a session and refreshes its activity timestamp.
func (s *MemoryStore) Get(_ context.Context, sessionID string) (chat.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return chat.Session{}, ErrSessionNotFound
	}

	session.LastActive = time.Now().UTC()
	s.sessions[sessionID] = session
	return session, nil
}

// Update replaces the stored session state.
func (s *MemoryStore) Update(_ context.Context, session chat.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[session.ID]; !ok {
		return ErrSessionNotFound
	}

	session.LastActive = time.Now().UTC()
	s.sessions[session.ID] = session
	return nil
}

// StartConversation opens a conversation bound to a career and records it
// as the session's active one.
func (s *MemoryStore) StartConversation(_ context.Context, sessionID, careerID string) (chat.Conversation, error) {
	if careerID == "" {
		return chat.Conversation{}, ErrCareerRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return chat.Conversation{}, ErrSessionNotFound
	}

	conversation := chat.Conversation{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Career:    careerID,
		StartedAt: time.Now().UTC(),
	}

	session.ConversationID = conversation.ID
	session.Career = careerID
	session.LastActive = conversation.StartedAt
	s.sessions[sessionID] = session
	s.conversations++

	return conversation, nil
}

// AppendMessage adds a message to the session history, assigning its id
// and timestamp.
func (s *MemoryStore) AppendMessage(_ context.Context, message chat.Message) (chat.Message, error) {
	if message.SessionID == "" {
		return chat.Message{}, ErrSessionNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[message.SessionID]
	if !ok {
		return chat.Message{}, ErrSessionNotFound
	}

	message.ID = uuid.NewString()
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now().UTC()
	}

	s.messages[message.SessionID] = append(s.messages[message.SessionID], message)
	session.LastActive = message.CreatedAt
	s.sessions[message.SessionID] = session

	return message, nil
}

// Transcript returns a copy of the stored messages for the session.
func (s *MemoryStore) Transcript(_ context.Context, sessionID string) ([]chat.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	messages, ok := s.messages[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}

	copied := make([]chat.Message, len(messages))
	copy(copied, messages)
	return copied, nil
}

// Sweep removes sessions idle past the TTL and returns how many went.
func (s *MemoryStore) Sweep() int {
	cutoff := time.Now().UTC().Add(-s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	var removed int
	for id, session := range s.sessions {
		if session.LastActive.Before(cutoff) {
			delete(s.sessions, id)
			delete(s.messages, id)
			removed++
		}
	}
	return removed
}

// StartSweeper runs Sweep on the given interval until ctx is cancelled.
func (s *MemoryStore) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if removed := s.Sweep(); removed > 0 {
					logger.Log.Info().Int("removed", removed).Msg("swept expired sessions")
				}
			}
		}
	}()
}

// Stats reports store occupancy.
func (s *MemoryStore) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var messages int
	for _, history := range s.messages {
		messages += len(history)
	}

	return Stats{
		Sessions:      len(s.sessions),
		Conversations: s.conversations,
		Messages:      messages,
	}
}
