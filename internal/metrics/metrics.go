// Curio - Learning Resource Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "curio_db_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "curio_db_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table", "error_type"}, // error_type: "timeout", "canceled", "other"
	)

	DBInvalidRows = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "curio_db_invalid_rows_total",
			Help: "Rows skipped because they failed validation after being read",
		},
		[]string{"table"},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "curio_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "curio_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "curio_api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "curio_api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"limiter"}, // "ip", "user"
	)

	// Recommendation Metrics
	RecommendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "curio_recommend_requests_total",
			Help: "Recommendation requests served, by mode",
		},
		[]string{"mode"}, // "anonymous", "personalized"
	)

	RecommendErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "curio_recommend_errors_total",
			Help: "Recommendation requests that failed, by stage",
		},
		[]string{"stage"}, // "profile", "candidates", "timeout", "circuit_open", "other"
	)

	RecommendCandidates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "curio_recommend_candidates",
			Help:    "Number of candidates fetched per recommendation request",
			Buckets: []float64{0, 1, 5, 10, 30, 60, 90, 150},
		},
	)

	RecommendItems = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "curio_recommend_items",
			Help:    "Number of items returned per recommendation request",
			Buckets: []float64{0, 1, 3, 5, 10, 20, 50},
		},
	)

	RecommendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "curio_recommend_duration_seconds",
			Help:    "End-to-end recommendation pipeline duration",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"mode"},
	)

	RecommendProfileMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "curio_recommend_profile_misses_total",
			Help: "Requests whose user_id had no stored profile and fell back to anonymous mode",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "curio_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "curio_circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "curio_circuit_breaker_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	// Catalog Ingest Metrics
	CatalogEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "curio_catalog_events_total",
			Help: "Catalog change events handled, by type and result",
		},
		[]string{"type", "result"}, // result: "applied", "duplicate", "invalid", "failed"
	)

	CatalogApplyDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "curio_catalog_apply_duration_seconds",
			Help:    "Time to apply one catalog event to storage",
			Buckets: prometheus.DefBuckets,
		},
	)

	CatalogPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "curio_catalog_published_total",
			Help: "Catalog events published",
		},
		[]string{"type"},
	)
)

// Catalog event results
const (
	CatalogResultApplied   = "applied"
	CatalogResultDuplicate = "duplicate"
	CatalogResultInvalid   = "invalid"
	CatalogResultFailed    = "failed"
)

// RecordDBQuery records a database query metric
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, table, classifyError(err)).Inc()
	}
}

// classifyError keeps the error_type label bounded.
func classifyError(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "other"
	}
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, status string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRateLimitHit records a rejected request for the named limiter.
func RecordRateLimitHit(limiter string) {
	APIRateLimitHits.WithLabelValues(limiter).Inc()
}

// RecordRecommendation records one successful recommendation request.
func RecordRecommendation(mode string, candidates, items int, duration time.Duration) {
	RecommendRequests.WithLabelValues(mode).Inc()
	RecommendCandidates.Observe(float64(candidates))
	RecommendItems.Observe(float64(items))
	RecommendDuration.WithLabelValues(mode).Observe(duration.Seconds())
}

// RecordRecommendError records a failed recommendation request.
func RecordRecommendError(stage string) {
	RecommendErrors.WithLabelValues(stage).Inc()
}

// RecordProfileMiss records a user_id without a stored profile.
func RecordProfileMiss() {
	RecommendProfileMisses.Inc()
}

// RecordCatalogEvent records the outcome of one catalog event.
func RecordCatalogEvent(eventType, result string) {
	CatalogEvents.WithLabelValues(eventType, result).Inc()
}
