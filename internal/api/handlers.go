// Curio - Learning Resource Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/curio/internal/breaker"
	"github.com/tomtom215/curio/internal/middleware"
	"github.com/tomtom215/curio/internal/recommend"
)

// Version is reported by the health endpoint. Set at build time with
// -ldflags "-X github.com/tomtom215/curio/internal/api.Version=...".
var Version = "dev"

// Recommender produces recommendations. *recommend.Engine implements it.
type Recommender interface {
	Recommend(ctx context.Context, req recommend.Request) (*recommend.Response, error)
}

// Pinger reports database reachability. *database.DB implements it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler contains dependencies for API handlers
//
// Handler methods are split across files:
//   - handlers_recommend.go: GET /api/recommendations
//   - handlers_health.go: GET /api/health, 404 and 405 responses
type Handler struct {
	engine    Recommender
	db        Pinger
	breakers  []breaker.StateReporter
	perfMon   *middleware.PerformanceMonitor
	startTime time.Time
}

// NewHandler creates a new API handler. db, breakers and perfMon are
// optional and only feed the health endpoint.
func NewHandler(engine Recommender, db Pinger, breakers []breaker.StateReporter, perfMon *middleware.PerformanceMonitor) *Handler {
	return &Handler{
		engine:    engine,
		db:        db,
		breakers:  breakers,
		perfMon:   perfMon,
		startTime: time.Now(),
	}
}

// PerformanceMonitor returns the monitor the router should install, if any.
func (h *Handler) PerformanceMonitor() *middleware.PerformanceMonitor {
	return h.perfMon
}

// MethodNotAllowed answers requests whose path exists under another method.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respondError(w, r, http.StatusMethodNotAllowed, msgMethodNotAllowed, nil)
}

// NotFound answers requests for unknown paths.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	respondError(w, r, http.StatusNotFound, msgNotFound, nil)
}
