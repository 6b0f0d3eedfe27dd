// Curio - Learning Resource Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package metrics

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// TestRecordDBQuery tests database query metric recording
func TestRecordDBQuery(t *testing.T) {
	tests := []struct {
		name      string
		operation string
		table     string
		err       error
		errType   string
	}{
		{name: "successful candidate fetch", operation: "fetch_candidates", table: "resources"},
		{name: "successful profile read", operation: "get_profile", table: "profiles"},
		{name: "timeout", operation: "fetch_candidates", table: "resources_t", err: fmt.Errorf("query: %w", context.DeadlineExceeded), errType: "timeout"},
		{name: "canceled", operation: "get_profile", table: "profiles_c", err: context.Canceled, errType: "canceled"},
		{name: "other failure", operation: "upsert_resource", table: "resources_o", err: errors.New("constraint violation"), errType: "other"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var before float64
			if tt.err != nil {
				before = testutil.ToFloat64(DBQueryErrors.WithLabelValues(tt.operation, tt.table, tt.errType))
			}

			RecordDBQuery(tt.operation, tt.table, 5*time.Millisecond, tt.err)

			if tt.err == nil {
				return
			}
			after := testutil.ToFloat64(DBQueryErrors.WithLabelValues(tt.operation, tt.table, tt.errType))
			if after != before+1 {
				t.Errorf("error counter = %v, want %v", after, before+1)
			}
		})
	}
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{context.DeadlineExceeded, "timeout"},
		{fmt.Errorf("wrapped: %w", context.DeadlineExceeded), "timeout"},
		{context.Canceled, "canceled"},
		{errors.New("boom"), "other"},
	}
	for _, tt := range tests {
		if got := classifyError(tt.err); got != tt.want {
			t.Errorf("classifyError(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

// TestRecordAPIRequest tests API request metric recording
func TestRecordAPIRequest(t *testing.T) {
	tests := []struct {
		name     string
		method   string
		endpoint string
		status   string
	}{
		{name: "recommendations ok", method: "GET", endpoint: "/api/v1/recommendations", status: "200"},
		{name: "recommendations failure", method: "GET", endpoint: "/api/v1/recommendations", status: "500"},
		{name: "health", method: "GET", endpoint: "/api/v1/health", status: "200"},
		{name: "rate limited", method: "GET", endpoint: "/api/v1/recommendations", status: "429"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter := APIRequestsTotal.WithLabelValues(tt.method, tt.endpoint, tt.status)
			before := testutil.ToFloat64(counter)

			RecordAPIRequest(tt.method, tt.endpoint, tt.status, 20*time.Millisecond)

			if got := testutil.ToFloat64(counter); got != before+1 {
				t.Errorf("requests_total = %v, want %v", got, before+1)
			}
		})
	}
}

// TestTrackActiveRequest tests the in-flight gauge
func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)

	TrackActiveRequest(true)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+2 {
		t.Errorf("active = %v, want %v", got, before+2)
	}

	TrackActiveRequest(false)
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("active = %v, want %v", got, before)
	}
}

func TestRecordRateLimitHit(t *testing.T) {
	before := testutil.ToFloat64(APIRateLimitHits.WithLabelValues("user"))
	RecordRateLimitHit("user")
	if got := testutil.ToFloat64(APIRateLimitHits.WithLabelValues("user")); got != before+1 {
		t.Errorf("rate_limit_hits = %v, want %v", got, before+1)
	}
}

func TestRecordRecommendation(t *testing.T) {
	before := testutil.ToFloat64(RecommendRequests.WithLabelValues("personalized"))

	RecordRecommendation("personalized", 30, 10, 3*time.Millisecond)

	if got := testutil.ToFloat64(RecommendRequests.WithLabelValues("personalized")); got != before+1 {
		t.Errorf("recommend_requests = %v, want %v", got, before+1)
	}
	if n := testutil.CollectAndCount(RecommendCandidates); n != 1 {
		t.Errorf("candidates histogram series = %d, want 1", n)
	}
	if n := testutil.CollectAndCount(RecommendItems); n != 1 {
		t.Errorf("items histogram series = %d, want 1", n)
	}
}

func TestRecordRecommendErrorAndMiss(t *testing.T) {
	errBefore := testutil.ToFloat64(RecommendErrors.WithLabelValues("profile"))
	missBefore := testutil.ToFloat64(RecommendProfileMisses)

	RecordRecommendError("profile")
	RecordProfileMiss()

	if got := testutil.ToFloat64(RecommendErrors.WithLabelValues("profile")); got != errBefore+1 {
		t.Errorf("recommend_errors = %v, want %v", got, errBefore+1)
	}
	if got := testutil.ToFloat64(RecommendProfileMisses); got != missBefore+1 {
		t.Errorf("profile_misses = %v, want %v", got, missBefore+1)
	}
}

func TestRecordCatalogEvent(t *testing.T) {
	results := []string{CatalogResultApplied, CatalogResultDuplicate, CatalogResultInvalid, CatalogResultFailed}
	for _, result := range results {
		t.Run(result, func(t *testing.T) {
			c := CatalogEvents.WithLabelValues("resource.upserted", result)
			before := testutil.ToFloat64(c)
			RecordCatalogEvent("resource.upserted", result)
			if got := testutil.ToFloat64(c); got != before+1 {
				t.Errorf("catalog_events = %v, want %v", got, before+1)
			}
		})
	}
}

// TestConcurrentMetricRecording verifies the helpers are safe under concurrency
func TestConcurrentMetricRecording(t *testing.T) {
	const goroutines = 20
	const perGoroutine = 50

	c := APIRequestsTotal.WithLabelValues("GET", "/concurrent", "200")
	before := testutil.ToFloat64(c)

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				RecordAPIRequest("GET", "/concurrent", "200", time.Millisecond)
				RecordDBQuery("fetch_candidates", "resources", time.Millisecond, nil)
			}
		}()
	}
	wg.Wait()

	if got := testutil.ToFloat64(c); got != before+goroutines*perGoroutine {
		t.Errorf("requests_total = %v, want %v", got, before+goroutines*perGoroutine)
	}
}

func TestMetricsRegistration(t *testing.T) {
	collectors := []prometheus.Collector{
		DBQueryDuration,
		DBQueryErrors,
		DBInvalidRows,
		APIRequestsTotal,
		APIRequestDuration,
		APIActiveRequests,
		APIRateLimitHits,
		RecommendRequests,
		RecommendErrors,
		RecommendCandidates,
		RecommendItems,
		RecommendDuration,
		RecommendProfileMisses,
		CircuitBreakerState,
		CircuitBreakerRequests,
		CircuitBreakerTransitions,
		CatalogEvents,
		CatalogApplyDuration,
		CatalogPublished,
	}

	for _, m := range collectors {
		ch := make(chan *prometheus.Desc, 10)
		m.Describe(ch)
		close(ch)

		count := 0
		for range ch {
			count++
		}
		if count == 0 {
			t.Errorf("Metric has no descriptors")
		}
	}
}

// TestMetricGathering tests that metrics can be gathered using testutil
func TestMetricGathering(t *testing.T) {
	RecordDBQuery("get_profile", "profiles", time.Millisecond, nil)
	RecordAPIRequest("GET", "/test", "200", time.Millisecond)

	problems, err := testutil.GatherAndLint(prometheus.DefaultGatherer)
	if err != nil {
		t.Logf("Lint errors (may be expected): %v", err)
	}
	for _, p := range problems {
		t.Logf("Metric lint problem: %s", p.Text)
	}
}

func BenchmarkRecordDBQuery(b *testing.B) {
	for i := 0; i < b.N; i++ {
		RecordDBQuery("fetch_candidates", "resources", 10*time.Millisecond, nil)
	}
}

func BenchmarkRecordAPIRequest(b *testing.B) {
	for i := 0; i < b.N; i++ {
		RecordAPIRequest("GET", "/api/v1/recommendations", "200", 25*time.Millisecond)
	}
}
