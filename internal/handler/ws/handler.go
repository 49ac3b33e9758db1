package ws

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/cloudwego/eino/schema"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/future-self/backend/internal/logger"
	careerModel "github.com/future-self/backend/internal/model/career"
	"github.com/future-self/backend/internal/model/chat"
	"github.com/future-self/backend/internal/model/persona"
	aiService "github.com/future-self/backend/internal/service/ai"
	personaService "github.com/future-self/backend/internal/service/persona"
	"github.com/future-self/backend/internal/service/session"
)

const (
	readTimeout  = 60 * time.Second
	pingInterval = 54 * time.Second
)

// Handler relays chat messages over a WebSocket connection.
type Handler struct {
	sessions session.Store
	careers  careerModel.Store
	ai       *aiService.Service
	upgrader websocket.Upgrader
}

// New creates the WebSocket handler. ai may be nil; replies then come from
// the canned fallback text.
func New(sessions session.Store, careers careerModel.Store, ai *aiService.Service) *Handler {
	return &Handler{
		sessions: sessions,
		careers:  careers,
		ai:       ai,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes mounts the WebSocket endpoint.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/ws/{sessionID}", h.handleWebSocket)
}

// wsConn serializes writes; gorilla permits only one concurrent writer,
// and the ping loop runs alongside the read loop's replies.
type wsConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *wsConn) writeJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

func (c *wsConn) ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(websocket.PingMessage, nil)
}

type inboundMessage struct {
	Type      string          `json:"type"`
	SessionID string          `json:"sessionId"`
	Data      json.RawMessage `json:"data"`
	Timestamp int64           `json:"timestamp"`
}

type outgoingMessage struct {
	Type      string      `json:"type"`
	SessionID string      `json:"sessionId,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

// chatPayload is the client's "message" envelope body.
type chatPayload struct {
	Message string `json:"message"`
}

func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if sessionID == "" {
		http.Error(w, "sessionID is required", http.StatusBadRequest)
		return
	}

	sess, err := h.sessions.Get(r.Context(), sessionID)
	if err != nil {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	logger.Log.Info().Str("session", sessionID).Msg("websocket connected")

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	conn.SetReadDeadline(time.Now().Add(readTimeout))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(readTimeout))
		return nil
	})

	wc := &wsConn{conn: conn}
	go h.pingLoop(ctx, wc)

	h.send(wc, "connected", sessionID, map[string]any{
		"sessionId": sessionID,
		"career":    sess.Career,
	})

	for {
		select {
		case <-ctx.Done():
			return
		default:
			var msg inboundMessage
			if err := conn.ReadJSON(&msg); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					logger.Log.Warn().Err(err).Str("session", sessionID).Msg("websocket read error")
				}
				return
			}

			conn.SetReadDeadline(time.Now().Add(readTimeout))

			if msg.SessionID != "" && msg.SessionID != sessionID {
				h.sendError(wc, sessionID, "session mismatch")
				continue
			}

			h.handleMessage(ctx, wc, sessionID, &msg)
		}
	}
}

func (h *Handler) handleMessage(ctx context.Context, conn *wsConn, sessionID string, msg *inboundMessage) {
	switch msg.Type {
	case "join":
		h.handleJoin(ctx, conn, sessionID)
	case "message":
		h.handleChatMessage(ctx, conn, sessionID, msg.Data)
	case "typing":
		// Client typing notifications carry no server-side state.
	default:
		h.sendError(conn, sessionID, "unsupported message type: "+msg.Type)
	}
}

// handleJoin re-validates the session and acknowledges membership.
func (h *Handler) handleJoin(ctx context.Context, conn *wsConn, sessionID string) {
	sess, err := h.sessions.Get(ctx, sessionID)
	if err != nil {
		h.sendError(conn, sessionID, "session not found")
		return
	}

	data := map[string]any{
		"sessionId": sessionID,
		"career":    sess.Career,
	}
	if sess.Persona != nil {
		data["persona"] = sess.Persona.Name
	}
	h.send(conn, "connected", sessionID, data)
}

// handleChatMessage relays one user turn: persist, typing start, generate
// the reply, persist, emit it, typing stop. A collaborator failure emits an
// error plus the canned fallback rather than dropping the turn.
func (h *Handler) handleChatMessage(ctx context.Context, conn *wsConn, sessionID string, raw json.RawMessage) {
	var payload chatPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		h.sendError(conn, sessionID, "invalid message payload")
		return
	}
	if payload.Message == "" {
		h.sendError(conn, sessionID, "message is required")
		return
	}

	sess, err := h.sessions.Get(ctx, sessionID)
	if err != nil {
		h.sendError(conn, sessionID, "session not found")
		return
	}

	c, ok := h.careers.FindByID(sess.Career)
	if !ok {
		h.sendError(conn, sessionID, "no active conversation")
		return
	}
	p := sess.Persona
	if p == nil {
		built := personaService.Build(sess.Resume, c, "")
		p = &built
	}

	history, err := h.sessions.Transcript(ctx, sessionID)
	if err != nil {
		h.sendError(conn, sessionID, "failed to load conversation")
		return
	}

	if _, err := h.sessions.AppendMessage(ctx, chat.Message{
		SessionID: sessionID,
		Role:      chat.RoleUser,
		Content:   payload.Message,
	}); err != nil {
		h.sendError(conn, sessionID, "failed to save message")
		return
	}

	h.send(conn, "typing", sessionID, map[string]any{"status": "started"})

	replyText, genErr := h.generateReply(ctx, sessionID, p, c, history, payload.Message)
	if genErr != nil {
		logger.Log.Warn().Err(genErr).Str("session", sessionID).Msg("reply generation failed, using fallback")
		h.sendError(conn, sessionID, "reply generation failed")
		replyText = aiService.FallbackReply(c.Title, payload.Message, p.YearsAhead)
	}

	reply, err := h.sessions.AppendMessage(ctx, chat.Message{
		SessionID: sessionID,
		Role:      chat.RoleFutureSelf,
		Content:   replyText,
	})
	if err != nil {
		logger.Log.Warn().Err(err).Str("session", sessionID).Msg("failed to save reply")
		reply = chat.Message{
			SessionID: sessionID,
			Role:      chat.RoleFutureSelf,
			Content:   replyText,
			CreatedAt: time.Now().UTC(),
		}
	}

	h.send(conn, "receive_message", sessionID, map[string]any{"message": reply})
	h.send(conn, "typing", sessionID, map[string]any{"status": "stopped"})
}

func (h *Handler) generateReply(ctx context.Context, sessionID string, p *persona.Persona, c careerModel.Career, history []chat.Message, userMessage string) (string, error) {
	if h.ai == nil {
		return aiService.FallbackReply(c.Title, userMessage, p.YearsAhead), nil
	}

	if !h.ai.StreamingEnabled() {
		response, err := h.ai.GenerateReply(ctx, sessionID, p, c, history, userMessage)
		if err != nil {
			return "", err
		}
		return response.Content, nil
	}

	stream, err := h.ai.StreamReply(ctx, p, c, history, userMessage)
	if err != nil {
		return "", err
	}
	defer stream.Close()

	var chunks []*schema.Message
	for {
		chunk, recvErr := stream.Recv()
		if errors.Is(recvErr, io.EOF) {
			break
		}
		if recvErr != nil {
			return "", recvErr
		}
		if chunk == nil {
			continue
		}
		chunks = append(chunks, chunk)
	}

	merged, err := schema.ConcatMessages(chunks)
	if err != nil {
		return "", err
	}
	return merged.Content, nil
}

func (h *Handler) send(conn *wsConn, msgType, sessionID string, data any) {
	msg := outgoingMessage{
		Type:      msgType,
		SessionID: sessionID,
		Data:      data,
		Timestamp: time.Now().Unix(),
	}
	if err := conn.writeJSON(msg); err != nil {
		logger.Log.Warn().Err(err).Str("type", msgType).Msg("websocket write failed")
	}
}

func (h *Handler) sendError(conn *wsConn, sessionID, message string) {
	h.send(conn, "error", sessionID, map[string]string{"message": message})
}

func (h *Handler) pingLoop(ctx context.Context, conn *wsConn) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := conn.ping(); err != nil {
				return
			}
		}
	}
}
