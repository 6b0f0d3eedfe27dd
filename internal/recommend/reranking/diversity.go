// Curio - Learning Resource Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package reranking

import (
	"context"
	"strings"

	"github.com/tomtom215/curio/internal/recommend"
)

// maxRerankSize limits slice allocations; k is also bounded by len(items).
const maxRerankSize = 10000

// DomainDiversity is a greedy single-pass selector that avoids repeating
// domains in the middle of the list.
//
// A candidate is accepted when any of the following holds:
//   - fewer than warmup items have been accepted
//   - none of its domains has been used by an accepted item
//   - the accepted count has reached k - relaxedTail
//
// Every domain of an accepted candidate is marked used. Selection stops at k
// items or when candidates run out.
//
// A single pass can stall once every domain is used and the relaxed tail has
// not been reached yet. The skipped candidates then go through further greedy
// passes, each seeded with the domains of the last accepted item, so the
// middle of the page keeps switching domains while an alternative exists.
// When every remaining candidate repeats the last domain the best of them is
// taken as is. The page is always min(k, len(items)) long.
type DomainDiversity struct {
	warmup      int
	relaxedTail int
}

// NewDomainDiversity creates a domain diversifier. Negative values are clamped to zero.
func NewDomainDiversity(warmup, relaxedTail int) *DomainDiversity {
	if warmup < 0 {
		warmup = 0
	}
	if relaxedTail < 0 {
		relaxedTail = 0
	}
	return &DomainDiversity{warmup: warmup, relaxedTail: relaxedTail}
}

// Name returns the reranker identifier.
func (d *DomainDiversity) Name() string {
	return "domain-diversity"
}

// Rerank selects up to k candidates from items, which must be sorted by score descending.
func (d *DomainDiversity) Rerank(ctx context.Context, items []recommend.ScoredCandidate, k int) []recommend.ScoredCandidate {
	if len(items) == 0 || k <= 0 {
		return []recommend.ScoredCandidate{}
	}

	if k > maxRerankSize {
		k = maxRerankSize
	}

	capacity := k
	if capacity > len(items) {
		capacity = len(items)
	}
	selected := make([]recommend.ScoredCandidate, 0, capacity)
	used := make(map[string]struct{})
	pool := d.pass(items, &selected, used, k)

	// Refill from the skipped candidates, one greedy pass at a time. Each pass
	// starts from the domains of the last accepted item so the page keeps
	// alternating across pass boundaries.
	for len(selected) < k && len(pool) > 0 {
		used = make(map[string]struct{})
		markUsed(used, selected[len(selected)-1].Resource.Domains)

		before := len(selected)
		pool = d.pass(pool, &selected, used, k)
		if len(selected) == before {
			// Every remaining candidate repeats the last domain.
			selected = append(selected, pool[0])
			pool = pool[1:]
		}
	}

	return selected
}

// pass runs one greedy selection over items, appending accepted candidates to
// selected, and returns the skipped ones in their original order.
//
//nolint:gocritic // rangeValCopy: ScoredCandidate passed by value in range, acceptable for clarity
func (d *DomainDiversity) pass(items []recommend.ScoredCandidate, selected *[]recommend.ScoredCandidate, used map[string]struct{}, k int) []recommend.ScoredCandidate {
	var skipped []recommend.ScoredCandidate
	for i, item := range items {
		if len(*selected) >= k {
			return append(skipped, items[i:]...)
		}

		accept := len(*selected) < d.warmup ||
			!anyUsed(item.Resource.Domains, used) ||
			len(*selected) >= k-d.relaxedTail
		if !accept {
			skipped = append(skipped, item)
			continue
		}

		*selected = append(*selected, item)
		markUsed(used, item.Resource.Domains)
	}
	return skipped
}

func markUsed(used map[string]struct{}, domains []string) {
	for _, domain := range domains {
		used[normalizeDomain(domain)] = struct{}{}
	}
}

func anyUsed(domains []string, used map[string]struct{}) bool {
	for _, domain := range domains {
		if _, ok := used[normalizeDomain(domain)]; ok {
			return true
		}
	}
	return false
}

func normalizeDomain(domain string) string {
	return strings.ToLower(strings.TrimSpace(domain))
}

// Ensure DomainDiversity implements the interface.
var _ recommend.Reranker = (*DomainDiversity)(nil)
