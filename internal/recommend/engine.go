// Curio - Learning Resource Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package recommend

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Note: This package has no dependencies on other internal packages. Storage
// is reached through the ProfileStore and ResourceStore interfaces.

// Engine runs the recommendation pipeline:
// resolve profile, fetch candidates, score, sort, rerank.
// It holds no per-request state and is safe for concurrent use.
type Engine struct {
	config *Config
	logger zerolog.Logger

	resolver  *Resolver
	resources ResourceStore
	scorer    *Scorer

	rerankers []Reranker
	rrMu      sync.RWMutex
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the clock used for recency scoring.
func WithClock(now Clock) Option {
	return func(e *Engine) {
		e.scorer = NewScorer(now)
	}
}

// NewEngine creates a recommendation engine. profiles may be nil, in which
// case every request is served anonymously.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, profiles ProfileStore, resources ResourceStore, logger zerolog.Logger, opts ...Option) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if resources == nil {
		return nil, ErrNoResourceStore
	}

	logger = logger.With().Str("component", "recommend").Logger()

	e := &Engine{
		config:    cfg,
		logger:    logger,
		resolver:  NewResolver(profiles, logger),
		resources: resources,
		scorer:    NewScorer(nil),
		rerankers: make([]Reranker, 0),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e, nil
}

// RegisterReranker adds a reranker to the selection step.
// Rerankers run in registration order.
func (e *Engine) RegisterReranker(rr Reranker) {
	e.rrMu.Lock()
	defer e.rrMu.Unlock()

	e.rerankers = append(e.rerankers, rr)
	e.logger.Info().
		Str("reranker", rr.Name()).
		Msg("registered reranker")
}

// Recommend produces a ranked page of resources for the request.
// A failure of either storage call fails the whole request; no partial
// results are returned.
func (e *Engine) Recommend(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	req = e.prepareRequest(req)
	logger := e.logger.With().
		Str("request_id", req.RequestID).
		Str("user_id", req.UserID).
		Int("limit", req.Limit).
		Logger()

	if e.config.Limits.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.config.Limits.RequestTimeout)
		defer cancel()
	}

	profile, missed, err := e.resolver.Resolve(ctx, req.UserID)
	if err != nil {
		return nil, &StageError{Stage: StageProfile, Err: fmt.Errorf("resolve profile: %w", err)}
	}
	mode := ModeAnonymous
	if profile != nil {
		mode = ModePersonalized
	}

	filter := BuildFilter(profile)
	fetchSize := e.config.FetchSize(req.Limit)

	candidates, err := e.resources.FetchCandidates(ctx, filter, fetchSize)
	if err != nil {
		return nil, &StageError{Stage: StageCandidates, Err: fmt.Errorf("fetch candidates: %w", err)}
	}

	scored := e.scorer.ScoreAll(candidates, profile)
	selected := e.rank(ctx, scored, req.Limit)

	items := make([]Item, 0, len(selected))
	for i := range selected {
		items = append(items, selected[i].ToItem())
	}

	resp := &Response{
		Items: items,
		Metadata: ResponseMetadata{
			RequestID:       req.RequestID,
			Mode:            mode,
			Limit:           req.Limit,
			FetchSize:       fetchSize,
			TotalCandidates: len(candidates),
			ProfileMissed:   missed,
			LatencyMS:       time.Since(start).Milliseconds(),
		},
	}

	logger.Debug().
		Str("mode", string(mode)).
		Int("candidates", len(candidates)).
		Int("returned", len(items)).
		Int64("latency_ms", resp.Metadata.LatencyMS).
		Msg("recommendation complete")

	return resp, nil
}

// NormalizeLimit applies the default and maximum to a requested limit.
func (e *Engine) NormalizeLimit(limit int) int {
	if limit <= 0 {
		return e.config.Limits.DefaultLimit
	}
	if limit > e.config.Limits.MaxLimit {
		return e.config.Limits.MaxLimit
	}
	return limit
}

func (e *Engine) prepareRequest(req Request) Request {
	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}
	req.Limit = e.NormalizeLimit(req.Limit)
	return req
}

// rank sorts by score descending and applies the rerankers. The sort is
// stable so ties keep the store order (quality, then recency).
func (e *Engine) rank(ctx context.Context, scored []ScoredCandidate, limit int) []ScoredCandidate {
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	e.rrMu.RLock()
	rerankers := e.rerankers
	e.rrMu.RUnlock()

	for _, rr := range rerankers {
		scored = rr.Rerank(ctx, scored, limit)
	}

	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}
