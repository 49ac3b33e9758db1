package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/future-self/backend/internal/model/chat"
)

func TestCreateAndGetSession(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	created, err := store.Create(ctx)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected session id to be assigned")
	}

	got, err := store.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.ID != created.ID {
		t.Fatalf("expected session %s, got %s", created.ID, got.ID)
	}
}

func TestGetUnknownSession(t *testing.T) {
	store := NewMemoryStore(time.Hour)

	_, err := store.Get(context.Background(), "missing")
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestUpdatePersistsState(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	sess, err := store.Create(ctx)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	sess.Career = "software_engineer"
	if err := store.Update(ctx, sess); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	got, err := store.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Career != "software_engineer" {
		t.Fatalf("expected career to persist, got %q", got.Career)
	}
}

func TestStartConversationRequiresCareer(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	sess, err := store.Create(ctx)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := store.StartConversation(ctx, sess.ID, ""); !errors.Is(err, ErrCareerRequired) {
		t.Fatalf("expected ErrCareerRequired, got %v", err)
	}
}

func TestStartConversationUnknownSession(t *testing.T) {
	store := NewMemoryStore(time.Hour)

	_, err := store.StartConversation(context.Background(), "missing", "doctor")
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestStartConversationBindsSession(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	sess, err := store.Create(ctx)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	conversation, err := store.StartConversation(ctx, sess.ID, "doctor")
	if err != nil {
		t.Fatalf("start conversation failed: %v", err)
	}
	if conversation.ID == "" {
		t.Fatal("expected conversation id to be assigned")
	}

	got, err := store.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.ConversationID != conversation.ID {
		t.Fatalf("expected conversation %s on session, got %s", conversation.ID, got.ConversationID)
	}
	if got.Career != "doctor" {
		t.Fatalf("expected career doctor, got %q", got.Career)
	}
}

func TestAppendMessageAndTranscript(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	sess, err := store.Create(ctx)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	saved, err := store.AppendMessage(ctx, chat.Message{
		SessionID: sess.ID,
		Role:      chat.RoleUser,
		Content:   "hello future me",
	})
	if err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if saved.ID == "" {
		t.Fatal("expected message id to be assigned")
	}
	if saved.CreatedAt.IsZero() {
		t.Fatal("expected message timestamp to be assigned")
	}

	transcript, err := store.Transcript(ctx, sess.ID)
	if err != nil {
		t.Fatalf("transcript failed: %v", err)
	}
	if len(transcript) != 1 {
		t.Fatalf("expected 1 message, got %d", len(transcript))
	}
	if transcript[0].Content != "hello future me" {
		t.Fatalf("unexpected message content %q", transcript[0].Content)
	}
}

func TestAppendMessageUnknownSession(t *testing.T) {
	store := NewMemoryStore(time.Hour)

	_, err := store.AppendMessage(context.Background(), chat.Message{
		SessionID: "missing",
		Role:      chat.RoleUser,
		Content:   "hi",
	})
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestSweepRemovesIdleSessions(t *testing.T) {
	store := NewMemoryStore(time.Millisecond)
	ctx := context.Background()

	sess, err := store.Create(ctx)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	time.Sleep(5 * time.Millisecond)

	if removed := store.Sweep(); removed != 1 {
		t.Fatalf("expected 1 swept session, got %d", removed)
	}
	if _, err := store.Get(ctx, sess.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected session to be gone, got %v", err)
	}
}

func TestSweepKeepsActiveSessions(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	if _, err := store.Create(ctx); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if removed := store.Sweep(); removed != 0 {
		t.Fatalf("expected no swept sessions, got %d", removed)
	}
}

func TestStatsCountsStoreContents(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	sess, err := store.Create(ctx)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := store.StartConversation(ctx, sess.ID, "teacher"); err != nil {
		t.Fatalf("start conversation failed: %v", err)
	}
	if _, err := store.AppendMessage(ctx, chat.Message{SessionID: sess.ID, Role: chat.RoleUser, Content: "hi"}); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	stats := store.Stats()
	if stats.Sessions != 1 || stats.Conversations != 1 || stats.Messages != 1 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}
