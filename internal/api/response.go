// Curio - Learning Resource Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package api

import (
	"github.com/tomtom215/curio/internal/middleware"
	"github.com/tomtom215/curio/internal/recommend"
)

// RecommendationsResponse is the body of a successful recommendation request.
type RecommendationsResponse struct {
	// Items is ranked best first. It is an empty array, never null.
	Items []recommend.Item `json:"items"`
}

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Error string `json:"error" example:"internal server error"`
}

// HealthStatus is the body of the health endpoint.
type HealthStatus struct {
	// Status is "healthy" or "degraded"
	Status            string            `json:"status" example:"healthy"`
	Version           string            `json:"version"`
	DatabaseConnected bool              `json:"database_connected"`
	Breakers          map[string]string `json:"breakers"`
	UptimeSeconds     float64           `json:"uptime_seconds"`

	// Endpoints holds per-route latency stats when the performance monitor is on.
	Endpoints []middleware.EndpointStats `json:"endpoints,omitempty"`
}
