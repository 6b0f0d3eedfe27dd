// Curio - Learning Resource Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package breaker

import (
	"context"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/curio/internal/config"
	"github.com/tomtom215/curio/internal/recommend"
)

// ProfileStore wraps a recommend.ProfileStore with a circuit breaker.
// recommend.ErrProfileNotFound passes through without counting as a failure.
type ProfileStore struct {
	store  recommend.ProfileStore
	cb     *gobreaker.CircuitBreaker[*recommend.UserProfile]
	logger zerolog.Logger
}

// NewProfileStore wraps store.
func NewProfileStore(store recommend.ProfileStore, cfg *config.BreakerConfig) *ProfileStore {
	logger := componentLogger(NameProfiles)
	return &ProfileStore{
		store:  store,
		cb:     newCircuitBreaker[*recommend.UserProfile](NameProfiles, cfg, logger),
		logger: logger,
	}
}

// GetProfile implements recommend.ProfileStore.
func (s *ProfileStore) GetProfile(ctx context.Context, id string) (*recommend.UserProfile, error) {
	return execute(s.cb, s.logger, func() (*recommend.UserProfile, error) {
		return s.store.GetProfile(ctx, id)
	})
}

// Name implements StateReporter.
func (s *ProfileStore) Name() string { return s.cb.Name() }

// State implements StateReporter.
func (s *ProfileStore) State() string { return stateToString(s.cb.State()) }

// ResourceStore wraps a recommend.ResourceStore with a circuit breaker.
type ResourceStore struct {
	store  recommend.ResourceStore
	cb     *gobreaker.CircuitBreaker[[]recommend.Resource]
	logger zerolog.Logger
}

// NewResourceStore wraps store.
func NewResourceStore(store recommend.ResourceStore, cfg *config.BreakerConfig) *ResourceStore {
	logger := componentLogger(NameResources)
	return &ResourceStore{
		store:  store,
		cb:     newCircuitBreaker[[]recommend.Resource](NameResources, cfg, logger),
		logger: logger,
	}
}

// FetchCandidates implements recommend.ResourceStore.
func (s *ResourceStore) FetchCandidates(ctx context.Context, f recommend.Filter, n int) ([]recommend.Resource, error) {
	return execute(s.cb, s.logger, func() ([]recommend.Resource, error) {
		return s.store.FetchCandidates(ctx, f, n)
	})
}

// Name implements StateReporter.
func (s *ResourceStore) Name() string { return s.cb.Name() }

// State implements StateReporter.
func (s *ResourceStore) State() string { return stateToString(s.cb.State()) }

// Wrap returns the stores guarded by breakers when cfg.Enabled, and the raw
// stores otherwise. The reporters slice is empty when breakers are disabled.
func Wrap(profiles recommend.ProfileStore, resources recommend.ResourceStore, cfg *config.BreakerConfig) (recommend.ProfileStore, recommend.ResourceStore, []StateReporter) {
	if cfg == nil || !cfg.Enabled {
		return profiles, resources, nil
	}

	p := NewProfileStore(profiles, cfg)
	r := NewResourceStore(resources, cfg)
	return p, r, []StateReporter{p, r}
}

var (
	_ recommend.ProfileStore  = (*ProfileStore)(nil)
	_ recommend.ResourceStore = (*ResourceStore)(nil)
	_ StateReporter           = (*ProfileStore)(nil)
	_ StateReporter           = (*ResourceStore)(nil)
)
