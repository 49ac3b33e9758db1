package resume

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/future-self/backend/internal/config"
	"github.com/future-self/backend/internal/logger"
	careerModel "github.com/future-self/backend/internal/model/career"
	"github.com/future-self/backend/internal/model/chat"
	aiService "github.com/future-self/backend/internal/service/ai"
	personaService "github.com/future-self/backend/internal/service/persona"
	resumeService "github.com/future-self/backend/internal/service/resume"
	"github.com/future-self/backend/internal/service/session"
	"github.com/future-self/backend/pkg/utils"
)

// Handler runs resume analysis and binds the result to a session.
type Handler struct {
	sessions session.Store
	careers  careerModel.Store
	analyzer *resumeService.Analyzer
	ai       *aiService.Service
	cfg      config.UploadConfig
}

// New creates the resume handler. ai may be nil; analysis then runs
// pattern-only.
func New(sessions session.Store, careers careerModel.Store, analyzer *resumeService.Analyzer, ai *aiService.Service, cfg config.UploadConfig) *Handler {
	return &Handler{
		sessions: sessions,
		careers:  careers,
		analyzer: analyzer,
		ai:       ai,
		cfg:      cfg,
	}
}

// RegisterRoutes mounts the analysis endpoint.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/analyze-resume", h.handleAnalyzeResume)
}

func (h *Handler) handleAnalyzeResume(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxSizeByte)
	if err := r.ParseMultipartForm(h.cfg.MaxSizeByte); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("resume")
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "resume file is required")
		return
	}
	defer file.Close()

	if !resumeService.AllowedFile(header.Filename) {
		utils.RespondError(w, http.StatusBadRequest, "unsupported resume type")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "failed to read resume file")
		return
	}

	text, err := resumeService.ExtractText(header.Filename, data)
	if err != nil || text == "" {
		logger.Log.Warn().Err(err).Str("file", header.Filename).Msg("resume text extraction failed")
		utils.RespondError(w, http.StatusBadRequest, "failed to extract resume text")
		return
	}

	sess, err := h.resolveSession(r)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			utils.RespondError(w, http.StatusNotFound, "session not found")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "failed to load session")
		return
	}

	h.archiveResume(header.Filename, data)

	analysis := h.analyzer.Analyze(text)
	if h.ai != nil {
		insight, err := h.ai.GenerateResumeInsight(r.Context(), text)
		if err != nil {
			logger.Log.Warn().Err(err).Msg("resume insight generation failed, continuing pattern-only")
		} else {
			analysis.AIInsight = insight
		}
	}

	career := h.pickCareer(r.FormValue("careerGoal"), analysis.DetectedCareer)
	p := personaService.Build(&analysis, career, r.FormValue("name"))

	sess.Resume = &analysis
	sess.Persona = &p
	sess.Career = career.ID
	if err := h.sessions.Update(r.Context(), sess); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to update session")
		return
	}

	logger.Log.Info().
		Str("session", sess.ID).
		Str("career", career.ID).
		Int("skills", len(analysis.AllSkills)).
		Msg("resume analyzed")

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"success":        true,
		"sessionId":      sess.ID,
		"persona":        p,
		"extractedInfo":  analysis,
		"careerMatches":  analysis.CareerMatches,
		"detectedCareer": analysis.DetectedCareer,
		"aiInsight":      analysis.AIInsight,
	})
}

// resolveSession loads the session named in the form, or opens a fresh one
// so a resume can be analyzed without a prior photo upload.
func (h *Handler) resolveSession(r *http.Request) (chat.Session, error) {
	if sessionID := r.FormValue("sessionId"); sessionID != "" {
		return h.sessions.Get(r.Context(), sessionID)
	}
	return h.sessions.Create(r.Context())
}

// pickCareer prefers the user's stated goal over the detected career.
func (h *Handler) pickCareer(goal, detected string) careerModel.Career {
	if goal != "" {
		if c, ok := h.careers.FindByID(goal); ok {
			return c
		}
	}
	if c, ok := h.careers.FindByID(detected); ok {
		return c
	}
	c, _ := h.careers.FindByID("software_engineer")
	return c
}

// archiveResume keeps the raw upload for later inspection. Failure here
// never blocks the analysis.
func (h *Handler) archiveResume(filename string, data []byte) {
	name := uuid.NewString() + "_" + filepath.Base(filename)
	path := filepath.Join(h.cfg.ResumeDir, name)
	if err := os.MkdirAll(h.cfg.ResumeDir, 0o755); err != nil {
		logger.Log.Warn().Err(err).Msg("failed to create resume dir")
		return
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		logger.Log.Warn().Err(err).Str("path", path).Msg("failed to archive resume")
	}
}
