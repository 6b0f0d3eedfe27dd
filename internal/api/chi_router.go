// Curio - Learning Resource Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/tomtom215/curio/internal/config"
	"github.com/tomtom215/curio/internal/logging"
	"github.com/tomtom215/curio/internal/middleware"
)

// userLimiterIdleTTL drops per-user buckets after this much inactivity.
const userLimiterIdleTTL = 10 * time.Minute

// Router sets up HTTP routes using Chi router.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
	userLimiter   *middleware.UserRateLimiter // nil when per-user limiting is off
}

// NewRouter creates a router for handler using the security settings.
func NewRouter(handler *Handler, sec *config.SecurityConfig) *Router {
	router := &Router{
		handler:       handler,
		chiMiddleware: NewChiMiddleware(ChiMiddlewareConfigFromSecurity(sec)),
	}
	if sec != nil && sec.UserRateLimitPerMinute > 0 && !sec.RateLimitDisabled {
		router.userLimiter = middleware.NewUserRateLimiter(sec.UserRateLimitPerMinute, 0, userLimiterIdleTTL)
		logging.Info().
			Int("per_minute", sec.UserRateLimitPerMinute).
			Msg("Per-user rate limiting enabled")
	}
	return router
}

// UserLimiter returns the per-user limiter, or nil when it is disabled.
func (router *Router) UserLimiter() *middleware.UserRateLimiter {
	return router.userLimiter
}

// SetupChi builds the HTTP handler.
//
// Middleware order (outermost first): request ID, real IP, panic recovery,
// CORS. The /api group adds per-IP rate limiting, Prometheus instrumentation,
// the performance monitor and gzip compression.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS())

	r.NotFound(router.handler.NotFound)
	r.MethodNotAllowed(router.handler.MethodNotAllowed)

	r.Route("/api", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(middleware.PrometheusMetrics)
		if perf := router.handler.PerformanceMonitor(); perf != nil {
			r.Use(perf.Middleware)
		}
		r.Use(middleware.Compression)

		r.With(router.userLimit).Get("/recommendations", router.handler.Recommendations)
		r.Get("/health", router.handler.Health)
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

// userLimit applies the per-user limiter when one is configured.
func (router *Router) userLimit(next http.Handler) http.Handler {
	if router.userLimiter == nil {
		return next
	}
	return router.userLimiter.Middleware(next)
}
