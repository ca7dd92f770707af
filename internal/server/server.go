// Package server exposes a store over the /mindary REST API.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/chris-regnier/mindary/internal/api"
	"github.com/chris-regnier/mindary/internal/storage"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Server serves the diary API from a store.
type Server struct {
	store    storage.Storage
	logger   *zap.Logger
	validate *validator.Validate
	metrics  *metrics
	registry *prometheus.Registry
}

// New creates a server backed by store. A nil logger discards logs.
func New(store storage.Storage, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	registry := prometheus.NewRegistry()
	return &Server{
		store:    store,
		logger:   logger,
		validate: validator.New(),
		metrics:  newMetrics(registry),
		registry: registry,
	}
}

// Handler builds the HTTP routes.
func (s *Server) Handler() http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(requestLogger(s.logger))
	router.Use(s.metrics.instrument)

	router.Get("/health", s.health)
	router.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	router.Route(api.DiaryPath, func(r chi.Router) {
		r.Get("/", s.getDiary)
		r.Post("/records", s.createRecord)
		r.Post("/chats", s.createMemo)
	})

	return router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
