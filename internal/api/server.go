// Package api is the HTTP surface of the quiz backend: activation codes,
// app downloads and the questions file.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"bijbelquiz.app/backend/internal/activation"
	"bijbelquiz.app/backend/internal/config"
	"bijbelquiz.app/backend/internal/download"
	"bijbelquiz.app/backend/internal/logger"
	"bijbelquiz.app/backend/internal/questionbank"
)

// Download modes.
const (
	ModeRedirect = "redirect"
	ModeStream   = "stream"
)

type Server struct {
	cfg     *config.Config
	checker *activation.Checker
	bank    *questionbank.Bank
	assets  download.AssetSource
	metrics *Metrics
}

func NewServer(cfg *config.Config, checker *activation.Checker, bank *questionbank.Bank, assets download.AssetSource) *Server {
	return &Server{
		cfg:     cfg,
		checker: checker,
		bank:    bank,
		assets:  assets,
		metrics: NewMetrics(),
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	r.Use(s.metrics.middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "X-Requested-With"},
		MaxAge:         300,
	}))
	r.Use(securityHeaders)
	if s.cfg.RateLimit.MaxRequests > 0 {
		r.Use(newRateLimiter(s.cfg.RateLimit.MaxRequests, s.cfg.RateLimit.Window).middleware)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Allow", "GET, OPTIONS")
		writeError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/activation-codes", s.handleActivation)
		r.Options("/activation-codes", noContent)
		r.Get("/download", s.handleDownload)
		r.Options("/download", noContent)
		r.Get("/questions", s.handleQuestions)
		r.Options("/questions", noContent)
	})

	public := "/" + strings.Trim(s.cfg.Downloads.PublicPath, "/")
	r.Get(public+"/{name}", s.handleAsset)
	r.Head(public+"/{name}", s.handleAsset)

	return r
}

func noContent(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

// ListenAndServe runs the server until ctx is cancelled, then drains
// in-flight requests for at most the configured shutdown timeout.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Server.Port),
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Info("backend listening", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	timeout := s.cfg.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	logger.Log.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
