package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/future-self/backend/internal/model/chat"
)

// RedisStore keeps sessions in Redis so they survive restarts. Expiry is
// delegated to key TTLs; every touch refreshes them.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore connects to the Redis given by url and verifies it with a
// ping before returning.
func NewRedisStore(ctx context.Context, url string, ttl time.Duration) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisStore{client: client, ttl: ttl}, nil
}

func sessionKey(id string) string  { return "session:" + id }
func messagesKey(id string) string { return "messages:" + id }

// Create provisions an anonymous session.
func (s *RedisStore) Create(ctx context.Context) (chat.Session, error) {
	now := time.Now().UTC()
	session := chat.Session{
		ID:         uuid.NewString(),
		CreatedAt:  now,
		LastActive: now,
	}

	if err := s.writeSession(ctx, session); err != nil {
		return chat.Session{}, err
	}
	return session, nil
}

// Get retrieves a session and refreshes its TTL.
func (s *RedisStore) Get(ctx context.Context, sessionID string) (chat.Session, error) {
	data, err := s.client.Get(ctx, sessionKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return chat.Session{}, ErrSessionNotFound
	}
	if err != nil {
		return chat.Session{}, fmt.Errorf("failed to load session: %w", err)
	}

	var session chat.Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return chat.Session{}, fmt.Errorf("failed to decode session: %w", err)
	}

	session.LastActive = time.Now().UTC()
	if err := s.writeSession(ctx, session); err != nil {
		return chat.Session{}, err
	}
	return session, nil
}

// Update replaces the stored session state.
func (s *RedisStore) Update(ctx context.Context, session chat.Session) error {
	if _, err := s.Get(ctx, session.ID); err != nil {
		return err
	}
	session.LastActive = time.Now().UTC()
	return s.writeSession(ctx, session)
}

// StartConversation opens a conversation bound to a career.
func (s *RedisStore) StartConversation(ctx context.Context, sessionID, careerID string) (chat.Conversation, error) {
	if careerID == "" {
		return chat.Conversation{}, ErrCareerRequired
	}

	session, err := s.Get(ctx, sessionID)
	if err != nil {
		return chat.Conversation{}, err
	}

	conversation := chat.Conversation{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Career:    careerID,
		StartedAt: time.Now().UTC(),
	}

	session.ConversationID = conversation.ID
	session.Career = careerID
	if err := s.writeSession(ctx, session); err != nil {
		return chat.Conversation{}, err
	}
	return conversation, nil
}

// AppendMessage adds a message to the session history.
func (s *RedisStore) AppendMessage(ctx context.Context, message chat.Message) (chat.Message, error) {
	if message.SessionID == "" {
		return chat.Message{}, ErrSessionNotFound
	}

	history, err := s.Transcript(ctx, message.SessionID)
	if err != nil {
		return chat.Message{}, err
	}

	message.ID = uuid.NewString()
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now().UTC()
	}
	history = append(history, message)

	data, err := json.Marshal(history)
	if err != nil {
		return chat.Message{}, fmt.Errorf("failed to encode transcript: %w", err)
	}
	if err := s.client.Set(ctx, messagesKey(message.SessionID), data, s.ttl).Err(); err != nil {
		return chat.Message{}, fmt.Errorf("failed to store transcript: %w", err)
	}
	return message, nil
}

// Transcript returns the stored messages for the session.
func (s *RedisStore) Transcript(ctx context.Context, sessionID string) ([]chat.Message, error) {
	// The session key is authoritative for existence; a missing message
	// list on a live session is just an empty history.
	if err := s.client.Get(ctx, sessionKey(sessionID)).Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to check session: %w", err)
	}

	data, err := s.client.Get(ctx, messagesKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return []chat.Message{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load transcript: %w", err)
	}

	var history []chat.Message
	if err := json.Unmarshal([]byte(data), &history); err != nil {
		return nil, fmt.Errorf("failed to decode transcript: %w", err)
	}
	return history, nil
}

// HealthCheck pings the backing Redis.
func (s *RedisStore) HealthCheck(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) writeSession(ctx context.Context, session chat.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := s.client.Set(ctx, sessionKey(session.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	// Keep the transcript alive as long as the session.
	s.client.Expire(ctx, messagesKey(session.ID), s.ttl)
	return nil
}
