// Curio - Learning Resource Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tomtom215/curio/internal/breaker"
	"github.com/tomtom215/curio/internal/middleware"
)

func TestHealth(t *testing.T) {
	t.Parallel()

	closed := []breaker.StateReporter{
		&fakeBreaker{name: "profile-store", state: "closed"},
		&fakeBreaker{name: "resource-store", state: "closed"},
	}

	tests := []struct {
		name       string
		db         Pinger
		breakers   []breaker.StateReporter
		wantStatus string
		wantDB     bool
	}{
		{"healthy", &fakePinger{}, closed, "healthy", true},
		{"database down", &fakePinger{err: errors.New("io error")}, closed, "degraded", false},
		{"no database", nil, nil, "degraded", false},
		{
			name: "breaker open",
			db:   &fakePinger{},
			breakers: []breaker.StateReporter{
				&fakeBreaker{name: "profile-store", state: "closed"},
				&fakeBreaker{name: "resource-store", state: "open"},
			},
			wantStatus: "degraded",
			wantDB:     true,
		},
		{
			name:       "breaker half-open",
			db:         &fakePinger{},
			breakers:   []breaker.StateReporter{&fakeBreaker{name: "resource-store", state: "half-open"}},
			wantStatus: "healthy",
			wantDB:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := NewHandler(nil, tt.db, tt.breakers, nil)
			rec := httptest.NewRecorder()
			h.Health(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}
			health := decodeBody[HealthStatus](t, rec)
			if health.Status != tt.wantStatus {
				t.Errorf("status = %q, want %q", health.Status, tt.wantStatus)
			}
			if health.DatabaseConnected != tt.wantDB {
				t.Errorf("database_connected = %v, want %v", health.DatabaseConnected, tt.wantDB)
			}
			if len(health.Breakers) != len(tt.breakers) {
				t.Errorf("breakers = %v, want %d entries", health.Breakers, len(tt.breakers))
			}
			for _, b := range tt.breakers {
				if health.Breakers[b.Name()] != b.State() {
					t.Errorf("breaker %s = %q, want %q", b.Name(), health.Breakers[b.Name()], b.State())
				}
			}
			if health.Version != Version {
				t.Errorf("version = %q, want %q", health.Version, Version)
			}
		})
	}
}

func TestHealth_IncludesEndpointStats(t *testing.T) {
	t.Parallel()

	perf := middleware.NewPerformanceMonitor(100, time.Second)
	perf.RecordRequest(&middleware.RequestMetrics{
		Route:      "/api/recommendations",
		Method:     http.MethodGet,
		DurationMS: 12,
		StatusCode: http.StatusOK,
		Timestamp:  time.Now(),
	})

	h := NewHandler(nil, &fakePinger{}, nil, perf)
	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	health := decodeBody[HealthStatus](t, rec)
	if len(health.Endpoints) != 1 {
		t.Fatalf("endpoints = %+v, want 1 entry", health.Endpoints)
	}
	if health.Endpoints[0].RequestCount != 1 {
		t.Errorf("request_count = %d, want 1", health.Endpoints[0].RequestCount)
	}
}

func TestHealth_MethodNotAllowed(t *testing.T) {
	t.Parallel()

	h := NewHandler(nil, &fakePinger{}, nil, nil)
	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodPost, "/api/health", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}
