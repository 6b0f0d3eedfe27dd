// Curio - Learning Resource Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

// Package reranking implements the selection step that follows scoring.
//
// Rerankers receive candidates already sorted by relevance and choose the
// final, truncated list:
//
//	Fetch -> Score -> Sort -> Rerankers -> Response
//
// # Domain Diversity
//
// DomainDiversity is a greedy single pass over the sorted candidates. The
// first few items are taken unconditionally, the middle of the list only
// takes items whose domains have not been seen yet, and the last slots accept
// anything so the page can still be filled when diverse candidates run out.
//
//	dd := reranking.NewDomainDiversity(3, 2)
//	page := dd.Rerank(ctx, sorted, 10)
//
// The selection is order-sensitive and not globally optimal. Candidates
// skipped for diversity are only used to backfill a page that would
// otherwise come up short.
//
// All rerankers implement recommend.Reranker.
package reranking
