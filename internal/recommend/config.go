// Curio - Learning Resource Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package recommend

import (
	"fmt"
	"time"
)

// Signal weights. These are fixed design constants, not configuration.
const (
	WeightQuality  = 0.35
	WeightRecency  = 0.20
	WeightLevel    = 0.15
	WeightDomain   = 0.20
	WeightLanguage = 0.10
)

// Level alignment contributions when both levels are present.
const (
	levelExact    = 0.15
	levelAdjacent = 0.10
	levelOther    = 0.03
)

// Recency buckets, in whole months since publication.
const (
	recentMonths      = 6
	semiRecentMonths  = 18
	unknownAgeMonths  = 999
	recencyFresh      = 1.0
	recencySemiRecent = 0.5
	recencyStale      = 0.2
)

// Fetch filter thresholds.
const (
	// SmallBudgetHours is the weekly budget below which long resources are filtered out.
	SmallBudgetHours = 5

	// MaxDurationForSmallBudget is the duration ceiling in minutes applied to small budgets.
	MaxDurationForSmallBudget = 180
)

// Config contains the tunable parameters of the recommendation pipeline.
type Config struct {
	Limits LimitsConfig `json:"limits"`

	// Diversity controls the greedy domain diversifier.
	Diversity DiversityConfig `json:"diversity"`
}

// LimitsConfig contains request size limits.
type LimitsConfig struct {
	// DefaultLimit is used when a request does not specify a limit.
	// Default: 10.
	DefaultLimit int `json:"default_limit"`

	// MaxLimit caps the number of items a single request may ask for.
	// Default: 50.
	MaxLimit int `json:"max_limit"`

	// OverFetchFactor is the ratio of fetched candidates to requested items.
	// Must be at least 1 so the diversifier is never starved.
	// Default: 3.
	OverFetchFactor int `json:"over_fetch_factor"`

	// RequestTimeout bounds the storage calls of one request.
	// Zero leaves the caller's context untouched.
	// Default: 10s.
	RequestTimeout time.Duration `json:"request_timeout"`
}

// DiversityConfig contains parameters for domain diversification.
type DiversityConfig struct {
	// WarmupItems is the number of leading items accepted without a diversity check.
	// Default: 3.
	WarmupItems int `json:"warmup_items"`

	// RelaxedTail is the number of trailing slots where diversity is no longer enforced.
	// Default: 2.
	RelaxedTail int `json:"relaxed_tail"`
}

// DefaultConfig returns the default pipeline configuration.
func DefaultConfig() *Config {
	return &Config{
		Limits: LimitsConfig{
			DefaultLimit:    10,
			MaxLimit:        50,
			OverFetchFactor: 3,
			RequestTimeout:  10 * time.Second,
		},
		Diversity: DiversityConfig{
			WarmupItems: 3,
			RelaxedTail: 2,
		},
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Limits.DefaultLimit < 1 {
		return fmt.Errorf("limits.default_limit must be positive, got %d", c.Limits.DefaultLimit)
	}
	if c.Limits.MaxLimit < 1 {
		return fmt.Errorf("limits.max_limit must be positive, got %d", c.Limits.MaxLimit)
	}
	if c.Limits.DefaultLimit > c.Limits.MaxLimit {
		return fmt.Errorf("limits.default_limit (%d) must not exceed limits.max_limit (%d)",
			c.Limits.DefaultLimit, c.Limits.MaxLimit)
	}
	if c.Limits.OverFetchFactor < 1 {
		return fmt.Errorf("limits.over_fetch_factor must be at least 1, got %d", c.Limits.OverFetchFactor)
	}
	if c.Limits.RequestTimeout < 0 {
		return fmt.Errorf("limits.request_timeout must be non-negative, got %v", c.Limits.RequestTimeout)
	}

	if c.Diversity.WarmupItems < 0 {
		return fmt.Errorf("diversity.warmup_items must be non-negative, got %d", c.Diversity.WarmupItems)
	}
	if c.Diversity.RelaxedTail < 0 {
		return fmt.Errorf("diversity.relaxed_tail must be non-negative, got %d", c.Diversity.RelaxedTail)
	}

	return nil
}

// FetchSize returns the number of candidates to fetch for a given limit.
func (c *Config) FetchSize(limit int) int {
	return limit * c.Limits.OverFetchFactor
}
