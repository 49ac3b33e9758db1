package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	careerModel "github.com/future-self/backend/internal/model/career"
	"github.com/future-self/backend/internal/service/session"
)

func setupServer(t *testing.T) (*httptest.Server, *session.MemoryStore) {
	t.Helper()
	sessions := session.NewMemoryStore(time.Hour)
	careers := careerModel.NewMemoryStore(careerModel.Seed())
	handler := New(sessions, careers, nil)

	r := chi.NewRouter()
	handler.RegisterRoutes(r)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, sessions
}

func dial(t *testing.T, srv *httptest.Server, sessionID string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/" + sessionID
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	return conn
}

func readEnvelope(t *testing.T, conn *websocket.Conn) outgoingMessage {
	t.Helper()
	var msg outgoingMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read failed: %v", err)
	}
	return msg
}

func TestConnectUnknownSession(t *testing.T) {
	srv, _ := setupServer(t)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/missing"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		t.Fatal("expected dial to fail for unknown session")
	}
	if resp == nil || resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 handshake rejection, got %+v", resp)
	}
}

func TestConnectSendsConnectedEnvelope(t *testing.T) {
	srv, sessions := setupServer(t)
	sess, _ := sessions.Create(context.Background())

	conn := dial(t, srv, sess.ID)

	msg := readEnvelope(t, conn)
	if msg.Type != "connected" {
		t.Fatalf("expected connected envelope, got %q", msg.Type)
	}
	if msg.SessionID != sess.ID {
		t.Fatalf("expected session %s, got %s", sess.ID, msg.SessionID)
	}
}

func TestJoinAcknowledged(t *testing.T) {
	srv, sessions := setupServer(t)
	sess, _ := sessions.Create(context.Background())

	conn := dial(t, srv, sess.ID)
	readEnvelope(t, conn) // connected

	if err := conn.WriteJSON(inboundMessage{Type: "join", SessionID: sess.ID}); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	msg := readEnvelope(t, conn)
	if msg.Type != "connected" {
		t.Fatalf("expected connected ack, got %q", msg.Type)
	}
}

func TestMessageRoundTripWithFallback(t *testing.T) {
	srv, sessions := setupServer(t)
	ctx := context.Background()
	sess, _ := sessions.Create(ctx)
	if _, err := sessions.StartConversation(ctx, sess.ID, "software_engineer"); err != nil {
		t.Fatalf("start conversation failed: %v", err)
	}

	conn := dial(t, srv, sess.ID)
	readEnvelope(t, conn) // connected

	payload, _ := json.Marshal(map[string]string{"message": "how did you get there?"})
	if err := conn.WriteJSON(inboundMessage{Type: "message", SessionID: sess.ID, Data: payload}); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	var sawTypingStart, sawReply, sawTypingStop bool
	for i := 0; i < 3; i++ {
		msg := readEnvelope(t, conn)
		switch msg.Type {
		case "typing":
			data, _ := msg.Data.(map[string]any)
			switch data["status"] {
			case "started":
				sawTypingStart = true
			case "stopped":
				sawTypingStop = true
			}
		case "receive_message":
			sawReply = true
		default:
			t.Fatalf("unexpected envelope %q", msg.Type)
		}
	}
	if !sawTypingStart || !sawReply || !sawTypingStop {
		t.Fatalf("incomplete relay: start=%v reply=%v stop=%v", sawTypingStart, sawReply, sawTypingStop)
	}

	transcript, err := sessions.Transcript(ctx, sess.ID)
	if err != nil {
		t.Fatalf("transcript failed: %v", err)
	}
	if len(transcript) != 2 {
		t.Fatalf("expected user turn and reply persisted, got %d messages", len(transcript))
	}
}

func TestMessageWithoutConversation(t *testing.T) {
	srv, sessions := setupServer(t)
	sess, _ := sessions.Create(context.Background())

	conn := dial(t, srv, sess.ID)
	readEnvelope(t, conn) // connected

	payload, _ := json.Marshal(map[string]string{"message": "hello?"})
	if err := conn.WriteJSON(inboundMessage{Type: "message", SessionID: sess.ID, Data: payload}); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	msg := readEnvelope(t, conn)
	if msg.Type != "error" {
		t.Fatalf("expected error envelope, got %q", msg.Type)
	}
}

func TestSessionMismatchRejected(t *testing.T) {
	srv, sessions := setupServer(t)
	sess, _ := sessions.Create(context.Background())

	conn := dial(t, srv, sess.ID)
	readEnvelope(t, conn) // connected

	if err := conn.WriteJSON(inboundMessage{Type: "join", SessionID: "someone-else"}); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	msg := readEnvelope(t, conn)
	if msg.Type != "error" {
		t.Fatalf("expected error envelope, got %q", msg.Type)
	}
}

func TestConcurrentWritesSerialized(t *testing.T) {
	upgrader := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	const writers = 8

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		defer conn.Close()

		wc := &wsConn{conn: conn}
		var wg sync.WaitGroup
		for i := 0; i < writers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if err := wc.ping(); err != nil {
					t.Errorf("ping failed: %v", err)
				}
				if err := wc.writeJSON(outgoingMessage{Type: "typing", Timestamp: time.Now().Unix()}); err != nil {
					t.Errorf("write failed: %v", err)
				}
			}()
		}
		wg.Wait()
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	// The server closes once its writers finish; skip the default pong reply
	// so reading a ping after that doesn't fail the read with a write error.
	conn.SetPingHandler(func(string) error { return nil })

	for i := 0; i < writers; i++ {
		var msg outgoingMessage
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("read %d failed: %v", i, err)
		}
		if msg.Type != "typing" {
			t.Fatalf("unexpected envelope %q", msg.Type)
		}
	}
}

func TestUnsupportedMessageType(t *testing.T) {
	srv, sessions := setupServer(t)
	sess, _ := sessions.Create(context.Background())

	conn := dial(t, srv, sess.ID)
	readEnvelope(t, conn) // connected

	if err := conn.WriteJSON(inboundMessage{Type: "dance", SessionID: sess.ID}); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	msg := readEnvelope(t, conn)
	if msg.Type != "error" {
		t.Fatalf("expected error envelope, got %q", msg.Type)
	}
}
