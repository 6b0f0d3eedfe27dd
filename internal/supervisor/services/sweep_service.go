// Curio - Learning Resource Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package services

import (
	"context"
	"time"

	"github.com/tomtom215/curio/internal/logging"
)

const defaultSweepInterval = time.Minute

// Sweeper drops expired entries from an in-memory cache and reports how many
// were removed.
type Sweeper interface {
	Sweep() int
}

// SweepService calls Sweep on a fixed interval until canceled.
//
//	tree.AddAPIService(services.NewSweepService("user-limiter-sweep", limiter, time.Minute))
type SweepService struct {
	name     string
	sweeper  Sweeper
	interval time.Duration
}

// NewSweepService creates a periodic sweeper. A non-positive interval falls
// back to one minute.
func NewSweepService(name string, sweeper Sweeper, interval time.Duration) *SweepService {
	if interval <= 0 {
		interval = defaultSweepInterval
	}
	return &SweepService{name: name, sweeper: sweeper, interval: interval}
}

// Serve implements suture.Service.
func (s *SweepService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if removed := s.sweeper.Sweep(); removed > 0 {
				logging.Debug().
					Str("service", s.name).
					Int("removed", removed).
					Msg("Swept expired cache entries")
			}
		}
	}
}

// String implements fmt.Stringer.
func (s *SweepService) String() string {
	return s.name
}
