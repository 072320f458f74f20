// Cinematch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/tomtom215/cinematch/internal/middleware"
	"github.com/tomtom215/cinematch/internal/models"
)

// RouterConfig configures the HTTP router.
type RouterConfig struct {
	Middleware *ChiMiddlewareConfig

	// RequestTimeout bounds each /api/v1 request. Zero disables it.
	RequestTimeout time.Duration

	// AllowCachePurge mounts the unauthenticated DELETE /cache routes.
	AllowCachePurge bool
}

// DefaultRouterConfig returns defaults.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		Middleware:     DefaultChiMiddlewareConfig(),
		RequestTimeout: 30 * time.Second,
	}
}

// NewRouter configures all HTTP routes using Chi router.
func NewRouter(h *Handler, cfg RouterConfig) http.Handler {
	mw := NewChiMiddleware(cfg.Middleware)
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.AccessLog)
	r.Use(chimiddleware.Recoverer)
	r.Use(mw.CORS()) // global so OPTIONS preflight is answered

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusNotFound, models.ErrCodeNotFound, "route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed", nil)
	})

	// ========================
	// API Endpoints
	// ========================
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.PrometheusMetrics)
		r.Use(APISecurityHeaders())
		r.Use(chimiddleware.Compress(5, "application/json"))
		if cfg.RequestTimeout > 0 {
			r.Use(chimiddleware.Timeout(cfg.RequestTimeout))
		}

		r.Get("/health", h.Health)

		r.Group(func(r chi.Router) {
			r.Use(mw.RateLimit())

			r.Get("/movies", h.Movies)
			r.Get("/movies/detail", h.MovieDetail)
			r.Get("/movies/{externalID}/poster", h.Poster)
			r.Get("/movies/{externalID}/trailer", h.Trailer)
			r.Get("/recommendations", h.Recommendations)
			r.Get("/stats/popular", h.PopularTitles)

			if cfg.AllowCachePurge {
				r.Delete("/cache", h.PurgeCache)
				r.Delete("/cache/{externalID}", h.InvalidateMovie)
			}
		})
	})

	// ========================
	// Observability
	// ========================
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	return r
}
