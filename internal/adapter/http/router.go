// Package http wires the chi router for the SAR API.
package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/gosar/internal/adapter/http/handler"
	"github.com/iho/gosar/internal/adapter/http/middleware"
	"github.com/iho/gosar/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	SarHandler       *handler.SarHandler
	HealthHandler    *handler.HealthHandler
	Logger           zerolog.Logger
	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration
	RateLimiter      *middleware.RateLimiter
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Metrics)
	r.Use(middleware.Recovery)

	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Operational endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL)
			r.Use(idempotencyMiddleware.Wrap)
		}

		r.Route("/sars", func(r chi.Router) {
			r.Post("/", cfg.SarHandler.Create)
			r.Get("/", cfg.SarHandler.List)
			r.Get("/{id}", cfg.SarHandler.Get)
			r.Put("/{id}", cfg.SarHandler.Update)
			r.Delete("/{id}", cfg.SarHandler.Delete)
			r.Post("/{id}/submit", cfg.SarHandler.Submit)
			r.Post("/{id}/file", cfg.SarHandler.File)
		})
	})

	return r
}
