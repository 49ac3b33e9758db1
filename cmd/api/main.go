package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/future-self/backend/internal/config"
	"github.com/future-self/backend/internal/handler"
	"github.com/future-self/backend/internal/logger"
	careerModel "github.com/future-self/backend/internal/model/career"
	"github.com/future-self/backend/internal/service/ai"
	"github.com/future-self/backend/internal/service/session"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		// Missing .env is fine; the system environment still applies.
		logger.Log.Debug().Err(err).Msg("no .env file loaded")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("failed to load configuration")
	}
	if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		logger.Log.Fatal().Err(err).Msg("failed to initialize logger")
	}

	careers := careerModel.NewMemoryStore(careerModel.Seed())
	sessions := newSessionStore(ctx, cfg.Session)

	var aiSvc *ai.Service
	if cfg.AI.Enabled() {
		aiSvc, err = ai.NewService(ctx, cfg.AI)
		if err != nil {
			logger.Log.Warn().Err(err).Msg("failed to initialize AI service, continuing with fallback replies")
			aiSvc = nil
		} else {
			logger.Log.Info().Str("provider", cfg.AI.Provider).Msg("AI service initialized")
		}
	} else {
		logger.Log.Info().Msg("no AI credentials configured, chat uses fallback replies")
	}

	router := handler.NewRouter(cfg, careers, sessions, aiSvc)

	startServer(ctx, cfg.Server, router)
}

// newSessionStore prefers Redis when configured but falls back to memory
// if it is unreachable at boot.
func newSessionStore(ctx context.Context, cfg config.SessionConfig) session.Store {
	ttl := time.Duration(cfg.TTLHours) * time.Hour

	if cfg.RedisURL != "" {
		store, err := session.NewRedisStore(ctx, cfg.RedisURL, ttl)
		if err == nil {
			logger.Log.Info().Msg("session store backed by redis")
			return store
		}
		logger.Log.Warn().Err(err).Msg("redis unreachable, falling back to in-memory sessions")
	}

	store := session.NewMemoryStore(ttl)
	store.StartSweeper(ctx, time.Hour)
	logger.Log.Info().Int("ttlHours", cfg.TTLHours).Msg("session store in memory")
	return store
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	logger.Log.Info().Str("addr", serverCfg.Addr).Msg("future self backend listening")
	if err := runServer(ctx, srv); err != nil {
		logger.Log.Fatal().Err(err).Msg("server error")
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
