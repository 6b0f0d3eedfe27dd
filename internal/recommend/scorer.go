// Curio - Learning Resource Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package recommend

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Signal names used as keys of ScoredCandidate.Signals.
const (
	SignalQuality  = "quality"
	SignalRecency  = "recency"
	SignalLevel    = "level"
	SignalDomain   = "domain"
	SignalLanguage = "language"
)

const (
	whyPrefix   = "Recommandé car: "
	whyFallback = "Recommandé pour sa qualité et sa popularité"

	// maxWhyDomains is the number of matched domains quoted in the explanation.
	maxWhyDomains = 2
)

// Clock returns the current time. Scorers take one so recency is testable.
type Clock func() time.Time

// Scorer computes the weighted relevance of a resource for a profile.
// It holds no mutable state and is safe for concurrent use.
type Scorer struct {
	now Clock
}

// NewScorer creates a scorer. A nil clock uses time.Now.
func NewScorer(now Clock) *Scorer {
	if now == nil {
		now = time.Now
	}
	return &Scorer{now: now}
}

// ScoreAll scores every resource against the same instant.
func (s *Scorer) ScoreAll(resources []Resource, p *UserProfile) []ScoredCandidate {
	now := s.now()
	out := make([]ScoredCandidate, 0, len(resources))
	for i := range resources {
		out = append(out, ScoreAt(&resources[i], p, now))
	}
	return out
}

// ScoreAt scores r for profile p (which may be nil) as of now.
func ScoreAt(r *Resource, p *UserProfile, now time.Time) ScoredCandidate {
	signals := make(map[string]float64, 5)
	var why []string

	quality := r.QualityScore
	if quality < 0 {
		quality = 0
	}
	signals[SignalQuality] = quality * WeightQuality

	months := unknownAgeMonths
	if r.PublishedAt != nil {
		months = MonthsBetween(*r.PublishedAt, now)
	}
	bucket := recencyBucket(months)
	signals[SignalRecency] = bucket * WeightRecency
	switch bucket {
	case recencyFresh:
		why = append(why, "contenu récent")
	case recencySemiRecent:
		why = append(why, "contenu relativement récent")
	}

	if p.HasLevel() && r.Level != nil && r.Level.Valid() {
		contribution := levelAlignment(*p.Level, *r.Level)
		signals[SignalLevel] = contribution
		switch contribution {
		case levelExact:
			why = append(why, fmt.Sprintf("niveau adapté (%s)", *r.Level))
		case levelAdjacent:
			why = append(why, fmt.Sprintf("niveau proche (%s)", *r.Level))
		}
	}

	if p != nil && len(p.Goals) > 0 && len(r.Domains) > 0 {
		if matched := MatchDomains(r.Domains, p.Goals); len(matched) > 0 {
			signals[SignalDomain] = WeightDomain
			quoted := matched
			if len(quoted) > maxWhyDomains {
				quoted = quoted[:maxWhyDomains]
			}
			why = append(why, fmt.Sprintf("correspond à vos objectifs (%s)", strings.Join(quoted, ", ")))
		}
	}

	if p != nil && len(p.Langs) > 0 && r.Lang != nil {
		if *r.Lang == LangBoth || slices.Contains(p.Langs, *r.Lang) {
			signals[SignalLanguage] = WeightLanguage
			why = append(why, fmt.Sprintf("dans votre langue (%s)", *r.Lang))
		}
	}

	var score float64
	for _, name := range []string{SignalQuality, SignalRecency, SignalLevel, SignalDomain, SignalLanguage} {
		score += signals[name]
	}

	explanation := whyFallback
	if len(why) > 0 {
		explanation = whyPrefix + strings.Join(why, ", ")
	}

	return ScoredCandidate{
		Resource: *r,
		Score:    score,
		Signals:  signals,
		Why:      explanation,
	}
}

// MonthsBetween returns the number of whole calendar months from then to now.
// A month only counts once its day and time of day have been reached.
// Future dates yield zero.
func MonthsBetween(then, now time.Time) int {
	then, now = then.UTC(), now.UTC()
	if !now.After(then) {
		return 0
	}

	months := (now.Year()-then.Year())*12 + int(now.Month()-then.Month())
	if then.AddDate(0, months, 0).After(now) {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}

func recencyBucket(months int) float64 {
	switch {
	case months < recentMonths:
		return recencyFresh
	case months < semiRecentMonths:
		return recencySemiRecent
	default:
		return recencyStale
	}
}

func levelAlignment(profile, resource Level) float64 {
	diff := profile.rank() - resource.rank()
	switch {
	case diff == 0:
		return levelExact
	case diff == 1 || diff == -1:
		return levelAdjacent
	default:
		return levelOther
	}
}

// MatchDomains returns the resource domains that match at least one goal.
// Matching is a case-insensitive substring test in either direction.
// The result keeps the order of domains and holds no duplicates.
func MatchDomains(domains, goals []string) []string {
	lowered := make([]string, 0, len(goals))
	for _, g := range goals {
		if g = strings.ToLower(strings.TrimSpace(g)); g != "" {
			lowered = append(lowered, g)
		}
	}

	var matched []string
	seen := make(map[string]struct{}, len(domains))
	for _, d := range domains {
		ld := strings.ToLower(strings.TrimSpace(d))
		if ld == "" {
			continue
		}
		if _, dup := seen[ld]; dup {
			continue
		}
		for _, g := range lowered {
			if strings.Contains(ld, g) || strings.Contains(g, ld) {
				matched = append(matched, d)
				seen[ld] = struct{}{}
				break
			}
		}
	}
	return matched
}
