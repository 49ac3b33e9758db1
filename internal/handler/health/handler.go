package health

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/future-self/backend/internal/service/session"
	"github.com/future-self/backend/pkg/utils"
)

// StatsProvider is implemented by stores that can report occupancy.
type StatsProvider interface {
	Stats() session.Stats
}

// Pinger is implemented by stores with an external backend to verify.
type Pinger interface {
	HealthCheck(ctx context.Context) error
}

// Handler reports service liveness and collaborator status.
type Handler struct {
	sessions  session.Store
	aiEnabled bool
}

// New creates the health handler.
func New(sessions session.Store, aiEnabled bool) *Handler {
	return &Handler{sessions: sessions, aiEnabled: aiEnabled}
}

// RegisterRoutes mounts the health endpoint.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.handleHealth)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	payload := map[string]any{
		"status":    "healthy",
		"aiEnabled": h.aiEnabled,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	if provider, ok := h.sessions.(StatsProvider); ok {
		payload["sessions"] = provider.Stats()
	}
	if pinger, ok := h.sessions.(Pinger); ok {
		if err := pinger.HealthCheck(r.Context()); err != nil {
			payload["status"] = "degraded"
			payload["storeError"] = err.Error()
		}
	}

	utils.RespondJSON(w, http.StatusOK, payload)
}
