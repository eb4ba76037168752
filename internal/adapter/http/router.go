package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/moneta-app/moneta/internal/adapter/http/handler"
	"github.com/moneta-app/moneta/internal/adapter/http/middleware"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AccountHandler   *handler.AccountHandler
	OperationHandler *handler.OperationHandler
	CategoryHandler  *handler.CategoryHandler
	HistoryHandler   *handler.HistoryHandler
	ConvertHandler   *handler.ConvertHandler
	CalcHandler      *handler.CalcHandler
	HealthHandler    *handler.HealthHandler

	Logging *middleware.LoggingMiddleware
	Metrics *middleware.MetricsMiddleware
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recovery)
	if cfg.Logging != nil {
		r.Use(cfg.Logging.Wrap)
	}
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Wrap)
	}

	// Health and telemetry
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", cfg.AccountHandler.Create)
			r.Get("/", cfg.AccountHandler.List)
			r.Put("/reorder", cfg.AccountHandler.Reorder)
			r.Get("/{id}", cfg.AccountHandler.Get)
			r.Put("/{id}", cfg.AccountHandler.Update)
			r.Delete("/{id}", cfg.AccountHandler.Delete)
			r.Get("/{id}/candidates", cfg.AccountHandler.Candidates)
			r.Get("/{id}/operations", cfg.OperationHandler.ListByAccount)
			r.Put("/{id}/balance", cfg.OperationHandler.SetBalance)
			r.Get("/{id}/verify", cfg.OperationHandler.Verify)
			r.Get("/{id}/history", cfg.HistoryHandler.Get)
		})

		r.Route("/operations", func(r chi.Router) {
			r.Post("/", cfg.OperationHandler.Create)
			r.Get("/{id}", cfg.OperationHandler.Get)
			r.Put("/{id}", cfg.OperationHandler.Update)
			r.Delete("/{id}", cfg.OperationHandler.Delete)
			r.Post("/{id}/split", cfg.OperationHandler.Split)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Post("/", cfg.CategoryHandler.Create)
			r.Get("/", cfg.CategoryHandler.List)
		})

		r.Post("/convert", cfg.ConvertHandler.Derive)
		r.Post("/calc", cfg.CalcHandler.Evaluate)
	})

	return r
}
