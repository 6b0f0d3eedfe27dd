// Curio - Learning Resource Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package api

import (
	"net/http"
	"time"
)

const breakerOpen = "open"

// Health handles health check requests
//
// @Summary Get service health
// @Description Reports database connectivity, circuit breaker states and per-route latency. Status is "degraded" when the database is unreachable or a breaker is open.
// @Tags Core
// @Produce json
// @Success 200 {object} HealthStatus "Health status"
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.MethodNotAllowed(w, r)
		return
	}

	dbConnected := h.db != nil && h.db.Ping(r.Context()) == nil
	status := "healthy"
	if !dbConnected {
		status = "degraded"
	}

	breakers := make(map[string]string, len(h.breakers))
	for _, b := range h.breakers {
		state := b.State()
		breakers[b.Name()] = state
		if state == breakerOpen {
			status = "degraded"
		}
	}

	health := HealthStatus{
		Status:            status,
		Version:           Version,
		DatabaseConnected: dbConnected,
		Breakers:          breakers,
		UptimeSeconds:     time.Since(h.startTime).Seconds(),
	}
	if h.perfMon != nil {
		health.Endpoints = h.perfMon.GetStats()
	}

	respondJSON(w, http.StatusOK, &health)
}
