package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/future-self/backend/internal/config"
	careerHandler "github.com/future-self/backend/internal/handler/career"
	chatHandler "github.com/future-self/backend/internal/handler/chat"
	healthHandler "github.com/future-self/backend/internal/handler/health"
	resumeHandler "github.com/future-self/backend/internal/handler/resume"
	streamHandler "github.com/future-self/backend/internal/handler/stream"
	uploadHandler "github.com/future-self/backend/internal/handler/upload"
	wsHandler "github.com/future-self/backend/internal/handler/ws"
	middlewarePkg "github.com/future-self/backend/internal/middleware"
	careerModel "github.com/future-self/backend/internal/model/career"
	aiService "github.com/future-self/backend/internal/service/ai"
	resumeService "github.com/future-self/backend/internal/service/resume"
	"github.com/future-self/backend/internal/service/session"
	"github.com/future-self/backend/pkg/utils"
)

// NewRouter wires HTTP routes to core services. aiSvc may be nil; the chat
// surfaces then fall back to canned replies.
func NewRouter(cfg *config.Config, careers careerModel.Store, sessions session.Store, aiSvc *aiService.Service) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	analyzer := resumeService.NewAnalyzer(careers)
	relay := streamHandler.New(aiSvc, sessions, careers)

	r.Route("/api", func(api chi.Router) {
		healthHandler.New(sessions, aiSvc != nil).RegisterRoutes(api)
		uploadHandler.New(sessions, cfg.Upload).RegisterRoutes(api)
		resumeHandler.New(sessions, careers, analyzer, aiSvc, cfg.Upload).RegisterRoutes(api)
		careerHandler.New(careers).RegisterRoutes(api)
		chatHandler.New(sessions, careers, aiSvc).RegisterRoutes(api)
		wsHandler.New(sessions, careers, aiSvc).RegisterRoutes(api)

		api.Get("/stream/{sessionID}", func(w http.ResponseWriter, r *http.Request) {
			sessionID := chi.URLParam(r, "sessionID")
			userMessage := r.URL.Query().Get("message")

			if userMessage == "" {
				utils.RespondError(w, http.StatusBadRequest, "message query parameter is required")
				return
			}

			// Errors past this point already went out as SSE error events.
			_ = relay.HandleStreamRequest(r.Context(), w, sessionID, userMessage)
		})
	})

	r.Handle("/static/uploads/*", http.StripPrefix("/static/uploads/",
		http.FileServer(http.Dir(cfg.Upload.PhotoDir))))

	return r
}
