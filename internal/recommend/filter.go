// Curio - Learning Resource Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package recommend

import "slices"

// Filter holds the coarse criteria a ResourceStore applies before scoring.
// A nil slice or pointer means "no restriction" for that criterion.
//
// Null handling is explicit and identical for every store:
//   - a resource without a level always passes the level criterion
//   - a resource without a language fails an active language criterion
//   - a resource without a duration always passes the duration criterion
type Filter struct {
	// Langs is the accepted set of resource languages. Always contains LangBoth when set.
	Langs []Lang

	// Levels is the accepted set of resource levels.
	Levels []Level

	// MaxDurationMinutes is the duration ceiling for resources that declare one.
	MaxDurationMinutes *int
}

// BuildFilter derives the fetch filter from a profile. A nil profile yields
// the zero Filter, which matches everything.
func BuildFilter(p *UserProfile) Filter {
	var f Filter
	if p == nil {
		return f
	}

	if len(p.Langs) > 0 {
		f.Langs = acceptedLangs(p.Langs)
	}

	if p.Level != nil {
		f.Levels = AcceptedLevels(*p.Level)
	}

	if p.TimePerWeek != nil && *p.TimePerWeek < SmallBudgetHours {
		ceiling := MaxDurationForSmallBudget
		f.MaxDurationMinutes = &ceiling
	}

	return f
}

// AcceptedLevels maps a learner level to the resource levels worth showing.
// Unknown levels accept everything.
func AcceptedLevels(l Level) []Level {
	switch l {
	case LevelBeginner:
		return []Level{LevelBeginner, LevelIntermediate}
	case LevelAdvanced:
		return []Level{LevelIntermediate, LevelAdvanced}
	default:
		return []Level{LevelBeginner, LevelIntermediate, LevelAdvanced}
	}
}

func acceptedLangs(langs []Lang) []Lang {
	seen := make(map[Lang]struct{}, len(langs)+1)
	out := make([]Lang, 0, len(langs)+1)
	for _, l := range append(append([]Lang(nil), langs...), LangBoth) {
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	return out
}

// IsZero reports whether the filter restricts nothing.
func (f Filter) IsZero() bool {
	return f.Langs == nil && f.Levels == nil && f.MaxDurationMinutes == nil
}

// Matches evaluates the filter against a resource in memory.
// Stores that cannot push the filter down to their query language use this.
func (f Filter) Matches(r *Resource) bool {
	if f.Langs != nil {
		if r.Lang == nil || !slices.Contains(f.Langs, *r.Lang) {
			return false
		}
	}

	if f.Levels != nil && r.Level != nil && !slices.Contains(f.Levels, *r.Level) {
		return false
	}

	if f.MaxDurationMinutes != nil && r.DurationMinutes != nil && *r.DurationMinutes > *f.MaxDurationMinutes {
		return false
	}

	return true
}
