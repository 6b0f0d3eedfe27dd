// Curio - Learning Resource Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package api

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sony/gobreaker/v2"

	"github.com/tomtom215/curio/internal/logging"
	"github.com/tomtom215/curio/internal/metrics"
	"github.com/tomtom215/curio/internal/recommend"
)

func serveRecommendations(h *Handler, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Recommendations(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestRecommendations_Anonymous(t *testing.T) {
	t.Parallel()

	h := NewHandler(newTestEngine(t, &fakeProfiles{}, &fakeResources{resources: testCatalog()}), nil, nil, nil)
	rec := serveRecommendations(h, http.MethodGet, "/api/recommendations")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body = %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	body := decodeBody[RecommendationsResponse](t, rec)
	if len(body.Items) != 3 {
		t.Fatalf("items = %d, want 3", len(body.Items))
	}
	if body.Items[0].ID != "go-basics" {
		t.Errorf("first item = %q, want go-basics", body.Items[0].ID)
	}
	for _, item := range body.Items {
		if item.Why == "" {
			t.Errorf("item %s has no explanation", item.ID)
		}
	}
}

func TestRecommendations_Personalized(t *testing.T) {
	t.Parallel()

	profiles := &fakeProfiles{profiles: map[string]*recommend.UserProfile{
		"u-fr": {ID: "u-fr", Level: levelPtr(recommend.LevelBeginner), Langs: []recommend.Lang{recommend.LangFR}},
	}}
	h := NewHandler(newTestEngine(t, profiles, &fakeResources{resources: testCatalog()}), nil, nil, nil)

	rec := serveRecommendations(h, http.MethodGet, "/api/recommendations?user_id=u-fr")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	body := decodeBody[RecommendationsResponse](t, rec)
	// Beginner excludes k8s-deep (Advanced); FR excludes go-basics (EN).
	if len(body.Items) != 1 || body.Items[0].ID != "sql-intro" {
		t.Errorf("items = %+v, want only sql-intro", body.Items)
	}
}

func TestRecommendations_UnknownUserFallsBackToAnonymous(t *testing.T) {
	missesBefore := testutil.ToFloat64(metrics.RecommendProfileMisses)

	h := NewHandler(newTestEngine(t, &fakeProfiles{}, &fakeResources{resources: testCatalog()}), nil, nil, nil)
	rec := serveRecommendations(h, http.MethodGet, "/api/recommendations?user_id=nobody")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if body := decodeBody[RecommendationsResponse](t, rec); len(body.Items) != 3 {
		t.Errorf("items = %d, want the full anonymous list", len(body.Items))
	}
	if got := testutil.ToFloat64(metrics.RecommendProfileMisses) - missesBefore; got != 1 {
		t.Errorf("profile misses delta = %v, want 1", got)
	}
}

func TestRecommendations_EmptyCatalog(t *testing.T) {
	t.Parallel()

	h := NewHandler(newTestEngine(t, &fakeProfiles{}, &fakeResources{}), nil, nil, nil)
	rec := serveRecommendations(h, http.MethodGet, "/api/recommendations")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"items":[]}` {
		t.Errorf("body = %s, want {\"items\":[]}", got)
	}
}

func TestRecommendations_LimitParsing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		query     string
		wantFetch int
	}{
		{"", 30},
		{"limit=abc", 30},
		{"limit=", 30},
		{"limit=0", 30},
		{"limit=-4", 30},
		{"limit=2.5", 30},
		{"limit=1", 3},
		{"limit=7", 21},
		{"limit=50", 150},
		{"limit=51", 150},
		{"limit=10000", 150},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			t.Parallel()

			store := &fakeResources{resources: testCatalog()}
			h := NewHandler(newTestEngine(t, &fakeProfiles{}, store), nil, nil, nil)

			rec := serveRecommendations(h, http.MethodGet, "/api/recommendations?"+tt.query)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}
			if got := store.fetchSize(); got != tt.wantFetch {
				t.Errorf("fetch size = %d, want %d", got, tt.wantFetch)
			}
		})
	}
}

func TestRecommendations_LimitTruncates(t *testing.T) {
	t.Parallel()

	h := NewHandler(newTestEngine(t, &fakeProfiles{}, &fakeResources{resources: testCatalog()}), nil, nil, nil)
	rec := serveRecommendations(h, http.MethodGet, "/api/recommendations?limit=2")

	if body := decodeBody[RecommendationsResponse](t, rec); len(body.Items) != 2 {
		t.Errorf("items = %d, want 2", len(body.Items))
	}
}

func TestRecommendations_StorageFailure(t *testing.T) {
	tests := []struct {
		name      string
		profiles  *fakeProfiles
		resources *fakeResources
		target    string
		stage     string
	}{
		{
			name:      "profile store",
			profiles:  &fakeProfiles{err: errStoreDown},
			resources: &fakeResources{resources: testCatalog()},
			target:    "/api/recommendations?user_id=u1",
			stage:     recommend.StageProfile,
		},
		{
			name:      "resource store",
			profiles:  &fakeProfiles{},
			resources: &fakeResources{err: errStoreDown},
			target:    "/api/recommendations",
			stage:     recommend.StageCandidates,
		},
		{
			name:      "timeout",
			profiles:  &fakeProfiles{},
			resources: &fakeResources{err: fmt.Errorf("query: %w", context.DeadlineExceeded)},
			target:    "/api/recommendations",
			stage:     "timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errorsBefore := testutil.ToFloat64(metrics.RecommendErrors.WithLabelValues(tt.stage))

			h := NewHandler(newTestEngine(t, tt.profiles, tt.resources), nil, nil, nil)
			rec := serveRecommendations(h, http.MethodGet, tt.target)

			if rec.Code != http.StatusInternalServerError {
				t.Fatalf("status = %d, want 500", rec.Code)
			}
			body := decodeBody[ErrorResponse](t, rec)
			if body.Error != msgInternal {
				t.Errorf("error = %q, want %q", body.Error, msgInternal)
			}
			if strings.Contains(rec.Body.String(), "10.0.0.7") {
				t.Error("internal error details leaked into the response")
			}
			if got := testutil.ToFloat64(metrics.RecommendErrors.WithLabelValues(tt.stage)) - errorsBefore; got != 1 {
				t.Errorf("errors{stage=%s} delta = %v, want 1", tt.stage, got)
			}
		})
	}
}

func TestRecommendations_MethodNotAllowed(t *testing.T) {
	t.Parallel()

	store := &fakeResources{resources: testCatalog()}
	h := NewHandler(newTestEngine(t, &fakeProfiles{}, store), nil, nil, nil)

	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch} {
		rec := serveRecommendations(h, method, "/api/recommendations")
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("%s status = %d, want 405", method, rec.Code)
		}
		if body := decodeBody[ErrorResponse](t, rec); body.Error != msgMethodNotAllowed {
			t.Errorf("%s error = %q, want %q", method, body.Error, msgMethodNotAllowed)
		}
	}
	if store.fetchSize() != 0 {
		t.Error("storage was queried for a rejected method")
	}
}

// recordingRecommender captures the request the handler builds.
type recordingRecommender struct {
	got recommend.Request
}

func (r *recordingRecommender) Recommend(_ context.Context, req recommend.Request) (*recommend.Response, error) {
	r.got = req
	return &recommend.Response{}, nil
}

func TestRecommendations_ForwardsRequest(t *testing.T) {
	t.Parallel()

	engine := &recordingRecommender{}
	h := NewHandler(engine, nil, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/recommendations?user_id=u-42&limit=5", nil)
	req = req.WithContext(logging.ContextWithRequestID(req.Context(), "req-abc"))
	rec := httptest.NewRecorder()
	h.Recommendations(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	want := recommend.Request{UserID: "u-42", Limit: 5, RequestID: "req-abc"}
	if engine.got != want {
		t.Errorf("request = %+v, want %+v", engine.got, want)
	}
	// A nil item slice still encodes as an empty array.
	if got := strings.TrimSpace(rec.Body.String()); got != `{"items":[]}` {
		t.Errorf("body = %s, want {\"items\":[]}", got)
	}
}

func TestFailureStage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"profile", &recommend.StageError{Stage: recommend.StageProfile, Err: errStoreDown}, "profile"},
		{"candidates", &recommend.StageError{Stage: recommend.StageCandidates, Err: errStoreDown}, "candidates"},
		{"deadline wins", &recommend.StageError{Stage: recommend.StageCandidates, Err: context.DeadlineExceeded}, "timeout"},
		{"circuit open", &recommend.StageError{Stage: recommend.StageCandidates, Err: gobreaker.ErrOpenState}, "circuit_open"},
		{"breaker saturated", &recommend.StageError{Stage: recommend.StageProfile, Err: gobreaker.ErrTooManyRequests}, "circuit_open"},
		{"unclassified", errStoreDown, "other"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := failureStage(tt.err); got != tt.want {
				t.Errorf("failureStage() = %q, want %q", got, tt.want)
			}
		})
	}
}
