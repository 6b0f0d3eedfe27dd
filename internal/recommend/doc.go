// Curio - Learning Resource Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

// Package recommend implements the learning resource recommendation pipeline.
//
// # Architecture
//
// Every request runs four steps in a fixed order:
//
//	Resolver -> Fetcher -> Scorer -> Diversifier
//
//   - Resolver: optional user ID to sparse UserProfile. Unknown users fall
//     back to anonymous mode. Storage failures are reported, not hidden.
//   - Fetcher: BuildFilter derives language, level and duration criteria
//     from the profile; the ResourceStore returns limit x OverFetchFactor
//     candidates ordered by quality then recency.
//   - Scorer: weighted sum of quality (0.35), recency (0.20), level (0.15),
//     domain (0.20) and language (0.10) plus a display-only explanation.
//   - Diversifier: a Reranker (see package reranking) picks the final page.
//
// # Determinism
//
// The only ambient input is the clock used for recency buckets. It is
// injected with WithClock, so fixed inputs and a fixed clock always produce
// the same ordered output.
//
// # Usage
//
//	engine, err := recommend.NewEngine(cfg, profileStore, resourceStore, logger)
//	if err != nil {
//	    return err
//	}
//	engine.RegisterReranker(reranking.NewDomainDiversity(3, 2))
//
//	resp, err := engine.Recommend(ctx, recommend.Request{
//	    UserID: "u-42",
//	    Limit:  10,
//	})
//
// # Thread Safety
//
// The engine keeps no per-request state. Rerankers are registered at
// startup under a lock and read under a shared lock afterwards.
package recommend
