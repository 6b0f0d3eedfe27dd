// Curio - Learning Resource Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

/*
Package middleware provides HTTP middleware for the Curio API router.

All middleware use the func(http.Handler) http.Handler shape so they plug
straight into chi's r.Use.

Key Components:

  - RequestID: accepts a well-formed X-Request-ID from a proxy or generates a
    UUID, echoes it, and stores it where logging.Ctx finds it
  - PrometheusMetrics: request count, latency and in-flight gauge, labeled by
    chi route pattern so /api/recommendations?user_id=... stays one series
  - UserRateLimiter: token bucket per user_id (golang.org/x/time/rate) with
    idle buckets evicted through cache.LRU
  - Compression: pooled gzip writers for clients sending Accept-Encoding: gzip
  - PerformanceMonitor: sliding window of recent requests with p50/p95/p99,
    surfaced by the health endpoint; logs requests above a slow threshold

Middleware Stack:

The API router installs them in this order:

	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(...))
	r.Use(httprate.LimitByIP(...))
	r.Use(middleware.PrometheusMetrics)
	r.Use(perf.Middleware)
	r.Use(middleware.Compression)

and the recommendations route adds the per-user limiter:

	r.With(userLimiter.Middleware).Get("/api/recommendations", h.Recommendations)

Thread Safety:

Every middleware is safe for concurrent requests. PerformanceMonitor and
UserRateLimiter guard their state with a mutex.
*/
package middleware
