package routes

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"stellar-experiment/admiralty/internal/api"
	"stellar-experiment/admiralty/internal/config"
	"stellar-experiment/admiralty/internal/db"
	"stellar-experiment/admiralty/internal/logging"
	"stellar-experiment/admiralty/internal/metrics"
	"stellar-experiment/admiralty/internal/middleware"
)

// RegisterRoutes assembles the Chi router: global middleware, the health
// probe and the versioned API.
func RegisterRoutes(cfg *config.Config, upSince time.Time) (http.Handler, error) {
	r := chi.NewRouter()

	// Initialize metrics registry
	metricsReg := metrics.NewMetricsRegistry()

	// global middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.MetricsMiddleware(metricsReg))
	r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://localhost:8081"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	logging.Info("Router initialized with metrics and logging middleware")

	// health check
	r.Get("/healthCheck", api.HealthCheckHandler(db.DB, db.PgDB, upSince))

	deps, err := api.InitDependencies(cfg, metricsReg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	RegisterAPIRoutes(r, deps)

	return r, nil
}
