// Curio - Learning Resource Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// mockProfileStore implements ProfileStore for testing.
type mockProfileStore struct {
	profiles map[string]*UserProfile
	err      error
	calls    atomic.Int32
}

func (m *mockProfileStore) GetProfile(ctx context.Context, id string) (*UserProfile, error) {
	m.calls.Add(1)
	if m.err != nil {
		return nil, m.err
	}
	if p, ok := m.profiles[id]; ok {
		return p, nil
	}
	return nil, ErrProfileNotFound
}

// mockResourceStore implements ResourceStore over an in-memory slice.
type mockResourceStore struct {
	resources []Resource
	err       error

	mu         sync.Mutex
	lastFilter Filter
	lastN      int
	calls      int
}

func (m *mockResourceStore) FetchCandidates(ctx context.Context, f Filter, n int) ([]Resource, error) {
	m.mu.Lock()
	m.lastFilter = f
	m.lastN = n
	m.calls++
	m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]Resource, 0, len(m.resources))
	for i := range m.resources {
		if f.Matches(&m.resources[i]) {
			out = append(out, m.resources[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].QualityScore != out[j].QualityScore {
			return out[i].QualityScore > out[j].QualityScore
		}
		return publishedAfter(out[i].PublishedAt, out[j].PublishedAt)
	})
	if len(out) > n {
		out = out[:n]
	}
	return out, nil
}

func publishedAfter(a, b *time.Time) bool {
	switch {
	case a == nil:
		return false
	case b == nil:
		return true
	default:
		return a.After(*b)
	}
}

// truncatingReranker keeps the first k items and records that it ran.
type truncatingReranker struct {
	ran atomic.Bool
}

func (r *truncatingReranker) Name() string { return "truncate" }

func (r *truncatingReranker) Rerank(ctx context.Context, items []ScoredCandidate, k int) []ScoredCandidate {
	r.ran.Store(true)
	if len(items) > k {
		return items[:k]
	}
	return items
}

func newTestEngine(t *testing.T, profiles ProfileStore, resources ResourceStore) *Engine {
	t.Helper()
	engine, err := NewEngine(DefaultConfig(), profiles, resources, zerolog.Nop(),
		WithClock(func() time.Time { return fixedNow }))
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return engine
}

func catalog(n int) []Resource {
	out := make([]Resource, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, Resource{
			ID:           fmt.Sprintf("r%03d", i),
			Title:        "resource",
			URL:          "https://example.com",
			QualityScore: 1 - float64(i)/float64(n+1),
			Domains:      []string{"general"},
			PublishedAt:  timePtr(fixedNow.AddDate(0, -i, 0)),
		})
	}
	return out
}

func TestNewEngine(t *testing.T) {
	t.Run("nil config uses defaults", func(t *testing.T) {
		engine, err := NewEngine(nil, nil, &mockResourceStore{}, zerolog.Nop())
		if err != nil {
			t.Fatalf("NewEngine() error = %v", err)
		}
		if got := engine.NormalizeLimit(0); got != 10 {
			t.Errorf("NormalizeLimit(0) = %d, want 10", got)
		}
	})

	t.Run("invalid config rejected", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Limits.OverFetchFactor = 0
		if _, err := NewEngine(cfg, nil, &mockResourceStore{}, zerolog.Nop()); err == nil {
			t.Error("NewEngine() error = nil, want error for invalid config")
		}
	})

	t.Run("resource store required", func(t *testing.T) {
		_, err := NewEngine(nil, nil, nil, zerolog.Nop())
		if !errors.Is(err, ErrNoResourceStore) {
			t.Errorf("NewEngine() error = %v, want ErrNoResourceStore", err)
		}
	})
}

func TestEngine_NormalizeLimit(t *testing.T) {
	engine := newTestEngine(t, nil, &mockResourceStore{})

	tests := []struct {
		in, want int
	}{
		{0, 10},
		{-5, 10},
		{1, 1},
		{25, 25},
		{50, 50},
		{500, 50},
	}

	for _, tt := range tests {
		if got := engine.NormalizeLimit(tt.in); got != tt.want {
			t.Errorf("NormalizeLimit(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestEngine_Recommend_OverFetch(t *testing.T) {
	store := &mockResourceStore{resources: catalog(100)}
	engine := newTestEngine(t, nil, store)

	resp, err := engine.Recommend(context.Background(), Request{Limit: 7})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	if store.lastN != 21 {
		t.Errorf("fetch size = %d, want 21 (limit x 3)", store.lastN)
	}
	if resp.Metadata.FetchSize != 21 || resp.Metadata.TotalCandidates != 21 {
		t.Errorf("metadata = %+v, want fetch size and candidates of 21", resp.Metadata)
	}
	if len(resp.Items) != 7 {
		t.Errorf("len(Items) = %d, want 7", len(resp.Items))
	}
}

func TestEngine_Recommend_Anonymous(t *testing.T) {
	profiles := &mockProfileStore{}
	store := &mockResourceStore{resources: catalog(5)}
	engine := newTestEngine(t, profiles, store)

	resp, err := engine.Recommend(context.Background(), Request{})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	if profiles.calls.Load() != 0 {
		t.Error("profile store queried without a user id")
	}
	if !store.lastFilter.IsZero() {
		t.Errorf("filter = %+v, want no filters for anonymous requests", store.lastFilter)
	}
	if resp.Metadata.Mode != ModeAnonymous {
		t.Errorf("Mode = %q, want %q", resp.Metadata.Mode, ModeAnonymous)
	}
	if resp.Metadata.RequestID == "" {
		t.Error("RequestID not generated")
	}
}

func TestEngine_Recommend_ProfileMiss(t *testing.T) {
	store := &mockResourceStore{resources: catalog(5)}
	engine := newTestEngine(t, &mockProfileStore{}, store)

	resp, err := engine.Recommend(context.Background(), Request{UserID: "ghost"})
	if err != nil {
		t.Fatalf("Recommend() error = %v, want anonymous fallback", err)
	}
	if !resp.Metadata.ProfileMissed || resp.Metadata.Mode != ModeAnonymous {
		t.Errorf("metadata = %+v, want anonymous with ProfileMissed", resp.Metadata)
	}
	if !store.lastFilter.IsZero() {
		t.Errorf("filter = %+v, want no filters after a miss", store.lastFilter)
	}
}

func TestEngine_Recommend_PersonalizedFilter(t *testing.T) {
	profiles := &mockProfileStore{profiles: map[string]*UserProfile{
		"u1": {ID: "u1", Level: levelPtr(LevelAdvanced), Langs: []Lang{LangEN}, TimePerWeek: intPtr(2)},
	}}
	store := &mockResourceStore{resources: catalog(3)}
	engine := newTestEngine(t, profiles, store)

	resp, err := engine.Recommend(context.Background(), Request{UserID: "u1", Limit: 5})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	want := BuildFilter(profiles.profiles["u1"])
	if len(store.lastFilter.Langs) != len(want.Langs) ||
		len(store.lastFilter.Levels) != len(want.Levels) ||
		store.lastFilter.MaxDurationMinutes == nil {
		t.Errorf("filter = %+v, want %+v", store.lastFilter, want)
	}
	if resp.Metadata.Mode != ModePersonalized {
		t.Errorf("Mode = %q, want %q", resp.Metadata.Mode, ModePersonalized)
	}
}

func TestEngine_Recommend_Errors(t *testing.T) {
	errDB := errors.New("database unavailable")

	t.Run("profile lookup failure", func(t *testing.T) {
		store := &mockResourceStore{resources: catalog(3)}
		engine := newTestEngine(t, &mockProfileStore{err: errDB}, store)

		resp, err := engine.Recommend(context.Background(), Request{UserID: "u1"})
		if !errors.Is(err, errDB) {
			t.Fatalf("Recommend() error = %v, want %v", err, errDB)
		}
		if resp != nil {
			t.Error("Recommend() returned a partial response on failure")
		}
		if store.calls != 0 {
			t.Error("candidates fetched after profile lookup failed")
		}
		if got := FailedStage(err); got != StageProfile {
			t.Errorf("FailedStage() = %q, want %q", got, StageProfile)
		}
	})

	t.Run("candidate fetch failure", func(t *testing.T) {
		engine := newTestEngine(t, nil, &mockResourceStore{err: errDB})

		resp, err := engine.Recommend(context.Background(), Request{})
		if !errors.Is(err, errDB) {
			t.Fatalf("Recommend() error = %v, want %v", err, errDB)
		}
		if resp != nil {
			t.Error("Recommend() returned a partial response on failure")
		}
		if got := FailedStage(err); got != StageCandidates {
			t.Errorf("FailedStage() = %q, want %q", got, StageCandidates)
		}
	})
}

func TestEngine_Recommend_Empty(t *testing.T) {
	engine := newTestEngine(t, nil, &mockResourceStore{})

	resp, err := engine.Recommend(context.Background(), Request{Limit: 5})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if resp.Items == nil || len(resp.Items) != 0 {
		t.Errorf("Items = %v, want empty non-nil slice", resp.Items)
	}
}

func TestEngine_Recommend_SortsByScore(t *testing.T) {
	// Fetch order is quality-first, but recency can overturn it.
	resources := []Resource{
		{ID: "old", QualityScore: 0.9, PublishedAt: timePtr(fixedNow.AddDate(-3, 0, 0))},
		{ID: "new", QualityScore: 0.8, PublishedAt: timePtr(fixedNow.AddDate(0, -1, 0))},
	}
	engine := newTestEngine(t, nil, &mockResourceStore{resources: resources})

	resp, err := engine.Recommend(context.Background(), Request{Limit: 2})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(resp.Items) != 2 || resp.Items[0].ID != "new" || resp.Items[1].ID != "old" {
		t.Errorf("order = %v, want [new old]", itemIDs(resp.Items))
	}
}

func TestEngine_Recommend_RunsRerankers(t *testing.T) {
	engine := newTestEngine(t, nil, &mockResourceStore{resources: catalog(20)})
	rr := &truncatingReranker{}
	engine.RegisterReranker(rr)

	resp, err := engine.Recommend(context.Background(), Request{Limit: 4})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if !rr.ran.Load() {
		t.Error("registered reranker did not run")
	}
	if len(resp.Items) != 4 {
		t.Errorf("len(Items) = %d, want 4", len(resp.Items))
	}
}

func TestEngine_Recommend_Concurrent(t *testing.T) {
	engine := newTestEngine(t, nil, &mockResourceStore{resources: catalog(40)})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := engine.Recommend(context.Background(), Request{Limit: 5}); err != nil {
				t.Errorf("Recommend() error = %v", err)
			}
		}()
	}
	wg.Wait()
}

func itemIDs(items []Item) []string {
	ids := make([]string, len(items))
	for i := range items {
		ids[i] = items[i].ID
	}
	return ids
}
