package upload

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/future-self/backend/internal/config"
	"github.com/future-self/backend/internal/logger"
	"github.com/future-self/backend/internal/service/session"
	"github.com/future-self/backend/pkg/utils"
)

// Accepted photo upload extensions.
var allowedPhotoExtensions = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".gif":  {},
	".webp": {},
}

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Handler stores uploaded photos and records aged avatars.
type Handler struct {
	sessions session.Store
	cfg      config.UploadConfig
}

// New creates the upload handler.
func New(sessions session.Store, cfg config.UploadConfig) *Handler {
	return &Handler{sessions: sessions, cfg: cfg}
}

// RegisterRoutes mounts the upload endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/upload", h.handleUploadPhoto)
	r.Post("/age-photo", h.handleAgePhoto)
}

// handleUploadPhoto accepts a multipart photo, stores it and opens a new
// session bound to it.
func (h *Handler) handleUploadPhoto(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxSizeByte)
	if err := r.ParseMultipartForm(h.cfg.MaxSizeByte); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "photo file is required")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if _, ok := allowedPhotoExtensions[ext]; !ok {
		utils.RespondError(w, http.StatusBadRequest, "unsupported photo type")
		return
	}

	name := uuid.NewString() + "_" + sanitizeFilename(header.Filename)
	path := filepath.Join(h.cfg.PhotoDir, name)
	if err := saveFile(path, file); err != nil {
		logger.Log.Error().Err(err).Str("path", path).Msg("failed to store photo")
		utils.RespondError(w, http.StatusInternalServerError, "failed to store photo")
		return
	}

	sess, err := h.sessions.Create(r.Context())
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	sess.PhotoPath = path
	sess.PhotoURL = "/static/uploads/" + name
	if err := h.sessions.Update(r.Context(), sess); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to update session")
		return
	}

	logger.Log.Info().Str("session", sess.ID).Str("photo", name).Msg("photo uploaded")
	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"sessionId": sess.ID,
		"photoUrl":  sess.PhotoURL,
	})
}

// handleAgePhoto records the aged avatar for a career. Until a real aging
// provider exists the original photo passes through unchanged.
func (h *Handler) handleAgePhoto(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		SessionID        string `json:"sessionId"`
		Career           string `json:"career"`
		OriginalPhotoURL string `json:"originalPhotoUrl"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Career == "" {
		utils.RespondError(w, http.StatusBadRequest, "career is required")
		return
	}

	sess, err := h.sessions.Get(r.Context(), payload.SessionID)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			utils.RespondError(w, http.StatusNotFound, "session not found")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "failed to load session")
		return
	}

	agedURL := payload.OriginalPhotoURL
	if agedURL == "" {
		agedURL = sess.PhotoURL
	}
	if agedURL == "" {
		utils.RespondError(w, http.StatusBadRequest, "no photo available for this session")
		return
	}

	if sess.AgedAvatars == nil {
		sess.AgedAvatars = make(map[string]string)
	}
	sess.AgedAvatars[payload.Career] = agedURL
	if err := h.sessions.Update(r.Context(), sess); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to update session")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"career":       payload.Career,
		"agedPhotoUrl": agedURL,
	})
}

func sanitizeFilename(filename string) string {
	base := filepath.Base(filename)
	clean := unsafeNameChars.ReplaceAllString(base, "_")
	if clean == "" || clean == "." {
		return "upload"
	}
	return clean
}

func saveFile(path string, src io.Reader) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	dst, err := os.Create(path)
	if err != nil {
		return err
	}
	defer dst.Close()
	_, err = io.Copy(dst, src)
	return err
}
