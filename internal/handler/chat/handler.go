package chat

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/future-self/backend/internal/logger"
	careerModel "github.com/future-self/backend/internal/model/career"
	"github.com/future-self/backend/internal/model/chat"
	"github.com/future-self/backend/internal/model/persona"
	aiService "github.com/future-self/backend/internal/service/ai"
	personaService "github.com/future-self/backend/internal/service/persona"
	"github.com/future-self/backend/internal/service/session"
	"github.com/future-self/backend/pkg/utils"
)

// Handler drives conversations between the user and their future self.
type Handler struct {
	sessions session.Store
	careers  careerModel.Store
	ai       *aiService.Service
}

// New creates the chat handler. ai may be nil; replies then come from the
// canned fallback text.
func New(sessions session.Store, careers careerModel.Store, ai *aiService.Service) *Handler {
	return &Handler{sessions: sessions, careers: careers, ai: ai}
}

// RegisterRoutes mounts the conversation endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/start-conversation", h.handleStartConversation)
	r.Post("/chat", h.handleChat)
	r.Post("/export-session", h.handleExportSession)
}

// handleStartConversation binds a career to the session, builds the
// future-self persona and opens the conversation with a greeting.
func (h *Handler) handleStartConversation(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		SessionID string `json:"sessionId"`
		Career    string `json:"career"`
		Name      string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sess, err := h.sessions.Get(r.Context(), payload.SessionID)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	careerID := payload.Career
	if careerID == "" {
		careerID = sess.Career
	}
	if careerID == "" && sess.Resume != nil {
		careerID = sess.Resume.DetectedCareer
	}
	c, ok := h.careers.FindByID(careerID)
	if !ok {
		utils.RespondError(w, http.StatusBadRequest, "career is required")
		return
	}

	p := personaService.Build(sess.Resume, c, payload.Name)
	greeting := h.generateGreeting(r, &p, c)
	p.Greeting = greeting

	sess.Persona = &p
	sess.Career = c.ID
	if err := h.sessions.Update(r.Context(), sess); err != nil {
		respondStoreError(w, err)
		return
	}

	conversation, err := h.sessions.StartConversation(r.Context(), sess.ID, c.ID)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	if _, err := h.sessions.AppendMessage(r.Context(), chat.Message{
		SessionID: sess.ID,
		Role:      chat.RoleFutureSelf,
		Content:   greeting,
	}); err != nil {
		logger.Log.Warn().Err(err).Str("session", sess.ID).Msg("failed to record greeting")
	}

	logger.Log.Info().
		Str("session", sess.ID).
		Str("career", c.ID).
		Str("conversation", conversation.ID).
		Msg("conversation started")

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"success":        true,
		"conversationId": conversation.ID,
		"greeting":       greeting,
		"persona":        p,
	})
}

// handleChat is the synchronous relay: append the user's message, generate
// the future self's reply, append and return it.
func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		SessionID string `json:"sessionId"`
		Message   string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Message == "" {
		utils.RespondError(w, http.StatusBadRequest, "message is required")
		return
	}

	sess, err := h.sessions.Get(r.Context(), payload.SessionID)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	c, ok := h.careers.FindByID(sess.Career)
	if !ok {
		utils.RespondError(w, http.StatusBadRequest, "no active conversation, start one first")
		return
	}
	p := sess.Persona
	if p == nil {
		built := personaService.Build(sess.Resume, c, "")
		p = &built
	}

	history, err := h.sessions.Transcript(r.Context(), sess.ID)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	if _, err := h.sessions.AppendMessage(r.Context(), chat.Message{
		SessionID: sess.ID,
		Role:      chat.RoleUser,
		Content:   payload.Message,
	}); err != nil {
		respondStoreError(w, err)
		return
	}

	replyText := h.generateReply(r, sess.ID, p, c, history, payload.Message)

	reply, err := h.sessions.AppendMessage(r.Context(), chat.Message{
		SessionID: sess.ID,
		Role:      chat.RoleFutureSelf,
		Content:   replyText,
	})
	if err != nil {
		respondStoreError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"reply":   reply,
	})
}

// handleExportSession returns the session snapshot plus its transcript.
func (h *Handler) handleExportSession(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		SessionID string `json:"sessionId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sess, err := h.sessions.Get(r.Context(), payload.SessionID)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	messages, err := h.sessions.Transcript(r.Context(), sess.ID)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"session":    sess,
		"messages":   messages,
		"exportedAt": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Handler) generateGreeting(r *http.Request, p *persona.Persona, c careerModel.Career) string {
	if h.ai != nil {
		greeting, err := h.ai.GenerateGreeting(r.Context(), p, c)
		if err == nil && greeting != "" {
			return greeting
		}
		logger.Log.Warn().Err(err).Str("career", c.ID).Msg("greeting generation failed, using fallback")
	}
	return aiService.FallbackGreeting(c.Title, p.YearsAhead)
}

func (h *Handler) generateReply(r *http.Request, sessionID string, p *persona.Persona, c careerModel.Career, history []chat.Message, message string) string {
	if h.ai != nil {
		response, err := h.ai.GenerateReply(r.Context(), sessionID, p, c, history, message)
		if err == nil && response.Content != "" {
			return response.Content
		}
		logger.Log.Warn().Err(err).Str("session", sessionID).Msg("reply generation failed, using fallback")
	}
	return aiService.FallbackReply(c.Title, message, p.YearsAhead)
}

func respondStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		utils.RespondError(w, http.StatusNotFound, "session not found")
	case errors.Is(err, session.ErrCareerRequired):
		utils.RespondError(w, http.StatusBadRequest, "career is required")
	default:
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
	}
}
