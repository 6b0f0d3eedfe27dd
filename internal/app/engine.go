// Curio - Learning Resource Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package app

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/curio/internal/breaker"
	"github.com/tomtom215/curio/internal/config"
	"github.com/tomtom215/curio/internal/recommend"
	"github.com/tomtom215/curio/internal/recommend/reranking"
)

// Stores is what the engine reads from. *database.DB satisfies it.
type Stores interface {
	recommend.ProfileStore
	recommend.ResourceStore
}

// EngineConfig maps the recommend section of the service config onto the
// pipeline configuration.
func EngineConfig(rc *config.RecommendConfig) *recommend.Config {
	cfg := recommend.DefaultConfig()
	if rc == nil {
		return cfg
	}
	if rc.DefaultLimit > 0 {
		cfg.Limits.DefaultLimit = rc.DefaultLimit
	}
	if rc.MaxLimit > 0 {
		cfg.Limits.MaxLimit = rc.MaxLimit
	}
	if rc.OverFetchFactor > 0 {
		cfg.Limits.OverFetchFactor = rc.OverFetchFactor
	}
	if rc.RequestTimeout >= 0 {
		cfg.Limits.RequestTimeout = rc.RequestTimeout
	}
	if rc.DiversityWarmup >= 0 {
		cfg.Diversity.WarmupItems = rc.DiversityWarmup
	}
	if rc.DiversityRelaxedTail >= 0 {
		cfg.Diversity.RelaxedTail = rc.DiversityRelaxedTail
	}
	return cfg
}

// NewEngine builds the recommendation engine over stores, guarded by
// circuit breakers when cfg.Breaker.Enabled, with the domain diversifier
// registered as its reranker. The returned reporters feed the health
// endpoint.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewEngine(cfg *config.Config, stores Stores, logger zerolog.Logger, opts ...recommend.Option) (*recommend.Engine, []breaker.StateReporter, error) {
	profiles, resources, reporters := breaker.Wrap(stores, stores, &cfg.Breaker)

	engineCfg := EngineConfig(&cfg.Recommend)
	engine, err := recommend.NewEngine(engineCfg, profiles, resources, logger, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("create recommendation engine: %w", err)
	}

	engine.RegisterReranker(reranking.NewDomainDiversity(
		engineCfg.Diversity.WarmupItems,
		engineCfg.Diversity.RelaxedTail,
	))

	return engine, reporters, nil
}
