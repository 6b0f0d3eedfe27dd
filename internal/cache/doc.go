// Curio - Learning Resource Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

/*
Package cache provides a generic, thread-safe LRU cache with TTL expiry.

Curio uses it in two places:

  - the catalog consumer's in-memory dedupe ledger, which remembers event IDs
    already applied when the Badger ledger is disabled
  - the per-user rate limiter, which keeps one token bucket per user_id and
    lets idle buckets age out

Both owners expose a Sweep method that calls CleanupExpired; the server runs
it periodically so expired entries do not linger until capacity eviction.

# Usage

	seen := cache.NewLRU[struct{}](100000, 24*time.Hour)
	if seen.Contains(eventID) {
	    return nil // already applied
	}
	seen.Add(eventID, struct{}{})

	limiters := cache.NewLRU[*rate.Limiter](10000, 10*time.Minute)
	lim, _ := limiters.GetOrAdd(userID, func() *rate.Limiter {
	    return rate.NewLimiter(rate.Limit(5), 10)
	})

# Thread Safety

All methods are safe for concurrent use. A single mutex guards the map and
the recency list; Get mutates recency, so there is no read-only fast path.
*/
package cache
