package career

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	careerModel "github.com/future-self/backend/internal/model/career"
	careerService "github.com/future-self/backend/internal/service/career"
	"github.com/future-self/backend/pkg/utils"
)

// Handler serves the career catalog and the guidance endpoints built on it.
type Handler struct {
	careers careerModel.Store
}

// New creates the career handler.
func New(careers careerModel.Store) *Handler {
	return &Handler{careers: careers}
}

// RegisterRoutes mounts catalog and guidance routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/careers", h.handleListCareers)
	r.Get("/careers/{careerID}", h.handleGetCareer)
	r.Post("/skills-analysis", h.handleSkillsAnalysis)
	r.Post("/generate-timeline", h.handleTimeline)
	r.Post("/salary-projection", h.handleSalaryProjection)
	r.Post("/generate-projects", h.handleProjects)
	r.Post("/interview-prep", h.handleInterviewPrep)
}

func (h *Handler) handleListCareers(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.careers.List())
}

func (h *Handler) handleGetCareer(w http.ResponseWriter, r *http.Request) {
	c, ok := h.careers.FindByID(chi.URLParam(r, "careerID"))
	if !ok {
		utils.RespondError(w, http.StatusNotFound, "career not found")
		return
	}
	utils.RespondJSON(w, http.StatusOK, c)
}

func (h *Handler) handleSkillsAnalysis(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Career        string   `json:"career"`
		CurrentSkills []string `json:"currentSkills"`
	}
	c, ok := h.decodeCareerPayload(w, r, &payload, &payload.Career)
	if !ok {
		return
	}

	match := careerService.Match(payload.CurrentSkills, c)
	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"career":       c.Title,
		"match":        match,
		"learningPath": careerService.BuildLearningPath(match.MissingSkills),
	})
}

func (h *Handler) handleTimeline(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Career string `json:"career"`
	}
	c, ok := h.decodeCareerPayload(w, r, &payload, &payload.Career)
	if !ok {
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"career":   c.Title,
		"timeline": careerService.Timeline(c),
	})
}

func (h *Handler) handleSalaryProjection(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Career string `json:"career"`
	}
	c, ok := h.decodeCareerPayload(w, r, &payload, &payload.Career)
	if !ok {
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"success":         true,
		"career":          c.Title,
		"projection":      careerService.SalaryProjection(c),
		"negotiationTips": careerService.NegotiationTips(),
	})
}

func (h *Handler) handleProjects(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Career string `json:"career"`
	}
	c, ok := h.decodeCareerPayload(w, r, &payload, &payload.Career)
	if !ok {
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"career":   c.Title,
		"projects": careerService.Projects(c.ID),
	})
}

func (h *Handler) handleInterviewPrep(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Career string `json:"career"`
	}
	c, ok := h.decodeCareerPayload(w, r, &payload, &payload.Career)
	if !ok {
		return
	}

	questions, tips := careerService.InterviewPrep(c)
	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"career":    c.Title,
		"questions": questions,
		"tips":      tips,
	})
}

// decodeCareerPayload decodes the request body into payload and resolves
// the career id it names. It writes the error response itself.
func (h *Handler) decodeCareerPayload(w http.ResponseWriter, r *http.Request, payload any, careerID *string) (careerModel.Career, bool) {
	if err := json.NewDecoder(r.Body).Decode(payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return careerModel.Career{}, false
	}
	if *careerID == "" {
		utils.RespondError(w, http.StatusBadRequest, "career is required")
		return careerModel.Career{}, false
	}
	c, ok := h.careers.FindByID(*careerID)
	if !ok {
		utils.RespondError(w, http.StatusBadRequest, "unknown career")
		return careerModel.Career{}, false
	}
	return c, true
}
