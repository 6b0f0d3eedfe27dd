// Curio - Learning Resource Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tomtom215/curio/internal/cache"
	"github.com/tomtom215/curio/internal/logging"
	"github.com/tomtom215/curio/internal/metrics"
)

const (
	// UserIDParam is the query parameter the limiter keys on.
	UserIDParam = "user_id"

	defaultMaxTrackedUsers = 10000
	defaultIdleTTL         = 10 * time.Minute
)

// UserRateLimiter throttles requests per user_id with one token bucket per
// user. Requests without a user_id are not limited here; the IP limiter in
// front of the router already covers anonymous traffic.
type UserRateLimiter struct {
	limit    rate.Limit
	burst    int
	limiters *cache.LRU[*rate.Limiter]
}

// NewUserRateLimiter allows perMinute requests per user per minute with a
// burst of the same size. Buckets idle for longer than idleTTL are dropped.
func NewUserRateLimiter(perMinute int, maxUsers int, idleTTL time.Duration, opts ...cache.Option) *UserRateLimiter {
	if maxUsers <= 0 {
		maxUsers = defaultMaxTrackedUsers
	}
	if idleTTL <= 0 {
		idleTTL = defaultIdleTTL
	}
	burst := perMinute
	if burst < 1 {
		burst = 1
	}
	return &UserRateLimiter{
		limit:    rate.Limit(float64(perMinute) / 60.0),
		burst:    burst,
		limiters: cache.NewLRU[*rate.Limiter](maxUsers, idleTTL, opts...),
	}
}

// Allow reports whether userID may make a request now.
func (l *UserRateLimiter) Allow(userID string) bool {
	lim, _ := l.limiters.GetOrAdd(userID, func() *rate.Limiter {
		return rate.NewLimiter(l.limit, l.burst)
	})
	return lim.Allow()
}

// Tracked returns the number of users with a live bucket.
func (l *UserRateLimiter) Tracked() int {
	return l.limiters.Len()
}

// Sweep drops buckets that have been idle past the TTL and returns how many
// were removed.
func (l *UserRateLimiter) Sweep() int {
	return l.limiters.CleanupExpired()
}

// Middleware rejects over-limit requests with 429 and a JSON error body.
func (l *UserRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.URL.Query().Get(UserIDParam)
		if userID == "" || l.Allow(userID) {
			next.ServeHTTP(w, r)
			return
		}

		metrics.RecordRateLimitHit("user")
		logging.Ctx(r.Context()).Warn().
			Str("user_id", userID).
			Msg("User rate limit exceeded")

		retryAfter := 1
		if l.limit > 0 {
			retryAfter = int(1/float64(l.limit)) + 1
		}
		w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "rate limit exceeded"})
	})
}
