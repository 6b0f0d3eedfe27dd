// Curio - Learning Resource Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package app

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/curio/internal/catalog"
	"github.com/tomtom215/curio/internal/config"
)

// OpenLedger returns the processed-event ledger for the catalog consumer:
// Badger at cfg.DedupePath when set, an in-memory TTL cache otherwise.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func OpenLedger(cfg *config.CatalogConfig, logger zerolog.Logger) (catalog.Ledger, error) {
	if cfg.DedupePath == "" {
		logger.Info().
			Int("capacity", cfg.DedupeCapacity).
			Dur("ttl", cfg.DedupeTTL).
			Msg("Using in-memory catalog dedupe ledger")
		return catalog.NewMemoryLedger(cfg.DedupeCapacity, cfg.DedupeTTL), nil
	}

	ledger, err := catalog.OpenBadgerLedger(cfg.DedupePath, cfg.DedupeTTL, logger)
	if err != nil {
		return nil, fmt.Errorf("open dedupe ledger at %s: %w", cfg.DedupePath, err)
	}
	logger.Info().
		Str("path", cfg.DedupePath).
		Dur("ttl", cfg.DedupeTTL).
		Msg("Using Badger catalog dedupe ledger")
	return ledger, nil
}
