package stream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/cloudwego/eino/schema"

	"github.com/future-self/backend/internal/logger"
	careerModel "github.com/future-self/backend/internal/model/career"
	"github.com/future-self/backend/internal/model/chat"
	"github.com/future-self/backend/internal/model/persona"
	aiService "github.com/future-self/backend/internal/service/ai"
	personaService "github.com/future-self/backend/internal/service/persona"
	"github.com/future-self/backend/internal/service/session"
	"github.com/future-self/backend/pkg/utils"
)

// Handler relays chat replies over Server-Sent Events.
type Handler struct {
	ai       *aiService.Service
	sessions session.Store
	careers  careerModel.Store
}

// New creates the stream handler. ai may be nil; the relay then emits the
// canned fallback reply instead of streaming.
func New(ai *aiService.Service, sessions session.Store, careers careerModel.Store) *Handler {
	return &Handler{ai: ai, sessions: sessions, careers: careers}
}

// StreamResponse is one SSE payload.
type StreamResponse struct {
	Event     string `json:"event"`
	Content   string `json:"content,omitempty"`
	SessionID string `json:"sessionId,omitempty"`
	Finished  bool   `json:"finished,omitempty"`
	Error     string `json:"error,omitempty"`
}

// HandleStreamRequest relays one user message: start, delta* (when the
// provider streams), message, end. Errors surface as an error event.
func (h *Handler) HandleStreamRequest(ctx context.Context, w http.ResponseWriter, sessionID, userMessage string) error {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return fmt.Errorf("streaming unsupported")
	}

	utils.SetupSSEHeaders(w)

	sess, p, c, err := h.getSessionContext(ctx, sessionID)
	if err != nil {
		h.sendSSEError(w, flusher, err.Error())
		return err
	}

	messages, err := h.sessions.Transcript(ctx, sess.ID)
	if err != nil {
		h.sendSSEError(w, flusher, fmt.Sprintf("failed to load conversation: %v", err))
		return err
	}

	// The client may have already persisted this message via REST.
	if !hasMatchingUserMessage(messages, sessionID, userMessage) {
		userMsg := chat.Message{
			SessionID: sessionID,
			Role:      chat.RoleUser,
			Content:   userMessage,
		}
		if _, err := h.sessions.AppendMessage(ctx, userMsg); err != nil {
			logger.Log.Warn().Err(err).Str("session", sessionID).Msg("failed to save user message")
		}
	}

	h.sendSSE(w, flusher, StreamResponse{
		Event:     "start",
		SessionID: sessionID,
		Content:   fmt.Sprintf("%s is replying:", p.Name),
	})

	replyText, err := h.dispatchReply(ctx, w, flusher, sessionID, p, c, messages, userMessage)
	if err != nil {
		h.sendSSEError(w, flusher, fmt.Sprintf("reply generation failed: %v", err))
		replyText = aiService.FallbackReply(c.Title, userMessage, p.YearsAhead)
		h.sendSSE(w, flusher, StreamResponse{
			Event:     "message",
			SessionID: sessionID,
			Content:   replyText,
		})
	}

	if _, err := h.sessions.AppendMessage(ctx, chat.Message{
		SessionID: sessionID,
		Role:      chat.RoleFutureSelf,
		Content:   replyText,
	}); err != nil {
		logger.Log.Warn().Err(err).Str("session", sessionID).Msg("failed to save reply")
	}

	h.sendSSE(w, flusher, StreamResponse{
		Event:     "end",
		SessionID: sessionID,
		Finished:  true,
	})

	logger.Log.Info().Str("session", sessionID).Str("career", c.ID).Msg("stream completed")
	return nil
}

// dispatchReply picks streaming or one-shot generation, emitting the SSE
// events either way, and returns the full reply text.
func (h *Handler) dispatchReply(ctx context.Context, w http.ResponseWriter, flusher http.Flusher, sessionID string, p *persona.Persona, c careerModel.Career, messages []chat.Message, userMessage string) (string, error) {
	if h.ai == nil {
		reply := aiService.FallbackReply(c.Title, userMessage, p.YearsAhead)
		h.sendSSE(w, flusher, StreamResponse{
			Event:     "message",
			SessionID: sessionID,
			Content:   reply,
		})
		return reply, nil
	}

	if h.ai.StreamingEnabled() {
		return h.streamReply(ctx, w, flusher, sessionID, p, c, messages, userMessage)
	}

	response, err := h.ai.GenerateReply(ctx, sessionID, p, c, messages, userMessage)
	if err != nil {
		return "", err
	}

	h.sendSSE(w, flusher, StreamResponse{
		Event:     "message",
		SessionID: sessionID,
		Content:   response.Content,
	})
	return response.Content, nil
}

func (h *Handler) streamReply(ctx context.Context, w http.ResponseWriter, flusher http.Flusher, sessionID string, p *persona.Persona, c careerModel.Career, messages []chat.Message, userMessage string) (string, error) {
	stream, err := h.ai.StreamReply(ctx, p, c, messages, userMessage)
	if err != nil {
		return "", err
	}
	defer stream.Close()

	chunks := make([]*schema.Message, 0, 8)
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
		if chunk.Content != "" {
			h.sendSSE(w, flusher, StreamResponse{
				Event:     "delta",
				SessionID: sessionID,
				Content:   chunk.Content,
			})
		}
	}

	response, err := schema.ConcatMessages(chunks)
	if err != nil {
		return "", err
	}

	h.sendSSE(w, flusher, StreamResponse{
		Event:     "message",
		SessionID: sessionID,
		Content:   response.Content,
	})
	return response.Content, nil
}

// getSessionContext resolves the session with its persona and career,
// building a default persona when none was created yet.
func (h *Handler) getSessionContext(ctx context.Context, sessionID string) (chat.Session, *persona.Persona, careerModel.Career, error) {
	sess, err := h.sessions.Get(ctx, sessionID)
	if err != nil {
		return chat.Session{}, nil, careerModel.Career{}, fmt.Errorf("session not found: %w", err)
	}

	c, ok := h.careers.FindByID(sess.Career)
	if !ok {
		return chat.Session{}, nil, careerModel.Career{}, fmt.Errorf("no active conversation for session %s", sessionID)
	}

	p := sess.Persona
	if p == nil {
		built := personaService.Build(sess.Resume, c, "")
		p = &built
	}

	return sess, p, c, nil
}

func hasMatchingUserMessage(messages []chat.Message, sessionID, content string) bool {
	if len(messages) == 0 {
		return false
	}

	last := messages[len(messages)-1]
	if last.SessionID != sessionID {
		return false
	}
	if last.Role != chat.RoleUser {
		return false
	}
	return last.Content == content
}

func (h *Handler) sendSSE(w http.ResponseWriter, flusher http.Flusher, response StreamResponse) {
	utils.SendSSEChunk(w, flusher, response)
}

func (h *Handler) sendSSEError(w http.ResponseWriter, flusher http.Flusher, errorMsg string) {
	h.sendSSE(w, flusher, StreamResponse{
		Event: "error",
		Error: errorMsg,
	})
}
