// Curio - Learning Resource Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package recommend

import (
	"math"
	"reflect"
	"strings"
	"testing"
	"time"
)

var fixedNow = time.Date(2026, time.October, 15, 12, 0, 0, 0, time.UTC)

const scoreEpsilon = 1e-9

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < scoreEpsilon
}

func TestMonthsBetween(t *testing.T) {
	tests := []struct {
		name string
		then time.Time
		want int
	}{
		{"same instant", fixedNow, 0},
		{"future date", fixedNow.AddDate(0, 1, 0), 0},
		{"one day short of a month", fixedNow.AddDate(0, -1, 1), 0},
		{"exactly one month", fixedNow.AddDate(0, -1, 0), 1},
		{"exactly six months", fixedNow.AddDate(0, -6, 0), 6},
		{"one hour short of six months", fixedNow.AddDate(0, -6, 0).Add(time.Hour), 5},
		{"exactly eighteen months", fixedNow.AddDate(0, -18, 0), 18},
		{"two years", fixedNow.AddDate(-2, 0, 0), 24},
		{"non-UTC input", fixedNow.AddDate(0, -2, 0).In(time.FixedZone("CET", 3600)), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MonthsBetween(tt.then, fixedNow); got != tt.want {
				t.Errorf("MonthsBetween(%v, %v) = %d, want %d", tt.then, fixedNow, got, tt.want)
			}
		})
	}
}

func TestMonthsBetween_ShortMonths(t *testing.T) {
	then := time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, time.September, 30, 23, 0, 0, 0, time.UTC)

	if got := MonthsBetween(then, now); got != 0 {
		t.Errorf("MonthsBetween(Aug 31, Sep 30) = %d, want 0", got)
	}
}

func TestScoreAt_RecencyBuckets(t *testing.T) {
	tests := []struct {
		name        string
		publishedAt *time.Time
		want        float64
	}{
		{"two months old", timePtr(fixedNow.AddDate(0, -2, 0)), 0.20},
		{"just under six months", timePtr(fixedNow.AddDate(0, -6, 1)), 0.20},
		{"exactly six months", timePtr(fixedNow.AddDate(0, -6, 0)), 0.10},
		{"just under eighteen months", timePtr(fixedNow.AddDate(0, -18, 1)), 0.10},
		{"exactly eighteen months", timePtr(fixedNow.AddDate(0, -18, 0)), 0.04},
		{"unknown publication date", nil, 0.04},
		{"future publication date", timePtr(fixedNow.AddDate(0, 3, 0)), 0.20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Resource{ID: "r", PublishedAt: tt.publishedAt}
			got := ScoreAt(&r, nil, fixedNow)
			if !approxEqual(got.Signals[SignalRecency], tt.want) {
				t.Errorf("recency signal = %f, want %f", got.Signals[SignalRecency], tt.want)
			}
		})
	}
}

func TestScoreAt_LevelAlignment(t *testing.T) {
	tests := []struct {
		name     string
		profile  *Level
		resource *Level
		want     float64
	}{
		{"exact beginner", levelPtr(LevelBeginner), levelPtr(LevelBeginner), 0.15},
		{"exact advanced", levelPtr(LevelAdvanced), levelPtr(LevelAdvanced), 0.15},
		{"beginner to intermediate", levelPtr(LevelBeginner), levelPtr(LevelIntermediate), 0.10},
		{"intermediate to beginner", levelPtr(LevelIntermediate), levelPtr(LevelBeginner), 0.10},
		{"intermediate to advanced", levelPtr(LevelIntermediate), levelPtr(LevelAdvanced), 0.10},
		{"advanced to intermediate", levelPtr(LevelAdvanced), levelPtr(LevelIntermediate), 0.10},
		{"beginner to advanced", levelPtr(LevelBeginner), levelPtr(LevelAdvanced), 0.03},
		{"advanced to beginner", levelPtr(LevelAdvanced), levelPtr(LevelBeginner), 0.03},
		{"profile level absent", nil, levelPtr(LevelBeginner), 0},
		{"resource level absent", levelPtr(LevelBeginner), nil, 0},
		{"profile level unknown", levelPtr("Expert"), levelPtr(LevelBeginner), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &UserProfile{ID: "u", Level: tt.profile}
			r := Resource{ID: "r", Level: tt.resource}
			got := ScoreAt(&r, p, fixedNow)
			if !approxEqual(got.Signals[SignalLevel], tt.want) {
				t.Errorf("level signal = %f, want %f", got.Signals[SignalLevel], tt.want)
			}
		})
	}
}

func TestScoreAt_DomainAlignment(t *testing.T) {
	tests := []struct {
		name    string
		goals   []string
		domains []string
		want    float64
	}{
		{"exact match", []string{"nlp"}, []string{"nlp"}, 0.20},
		{"case insensitive", []string{"Computer-Vision"}, []string{"computer-vision"}, 0.20},
		{"goal inside domain", []string{"vision"}, []string{"computer-vision"}, 0.20},
		{"domain inside goal", []string{"intro to machine learning"}, []string{"machine learning"}, 0.20},
		{"overlap size does not scale", []string{"nlp", "vision"}, []string{"nlp", "vision", "robotics"}, 0.20},
		{"no overlap", []string{"nlp"}, []string{"robotics"}, 0},
		{"no goals", nil, []string{"nlp"}, 0},
		{"no domains", []string{"nlp"}, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &UserProfile{ID: "u", Goals: tt.goals}
			r := Resource{ID: "r", Domains: tt.domains}
			got := ScoreAt(&r, p, fixedNow)
			if !approxEqual(got.Signals[SignalDomain], tt.want) {
				t.Errorf("domain signal = %f, want %f", got.Signals[SignalDomain], tt.want)
			}
		})
	}
}

func TestScoreAt_LanguagePreference(t *testing.T) {
	tests := []struct {
		name  string
		langs []Lang
		lang  *Lang
		want  float64
	}{
		{"declared language", []Lang{LangFR}, langPtr(LangFR), 0.10},
		{"bilingual resource", []Lang{LangEN}, langPtr(LangBoth), 0.10},
		{"other language", []Lang{LangFR}, langPtr(LangEN), 0},
		{"no declared languages", nil, langPtr(LangFR), 0},
		{"resource language absent", []Lang{LangFR}, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &UserProfile{ID: "u", Langs: tt.langs}
			r := Resource{ID: "r", Lang: tt.lang}
			got := ScoreAt(&r, p, fixedNow)
			if !approxEqual(got.Signals[SignalLanguage], tt.want) {
				t.Errorf("language signal = %f, want %f", got.Signals[SignalLanguage], tt.want)
			}
		})
	}
}

func TestScoreAt_ExampleScenario(t *testing.T) {
	profile := &UserProfile{
		ID:          "learner",
		Level:       levelPtr(LevelBeginner),
		Goals:       []string{"computer-vision"},
		Langs:       []Lang{LangFR},
		TimePerWeek: intPtr(3),
	}
	r1 := Resource{
		ID:              "R1",
		QualityScore:    0.9,
		Lang:            langPtr(LangFR),
		Level:           levelPtr(LevelBeginner),
		Domains:         []string{"computer-vision"},
		DurationMinutes: intPtr(60),
		PublishedAt:     timePtr(fixedNow.AddDate(0, -2, 0)),
	}
	r2 := Resource{
		ID:              "R2",
		QualityScore:    0.9,
		Lang:            langPtr(LangEN),
		Level:           levelPtr(LevelAdvanced),
		Domains:         []string{"nlp"},
		DurationMinutes: intPtr(500),
		PublishedAt:     timePtr(fixedNow.AddDate(0, -24, 0)),
	}

	s1 := ScoreAt(&r1, profile, fixedNow)
	s2 := ScoreAt(&r2, profile, fixedNow)

	if !approxEqual(s1.Score, 0.965) {
		t.Errorf("R1 score = %f, want 0.965", s1.Score)
	}
	if !approxEqual(s2.Score, 0.385) {
		t.Errorf("R2 score = %f, want 0.385", s2.Score)
	}

	wantWhy := "Recommandé car: contenu récent, niveau adapté (Beginner), " +
		"correspond à vos objectifs (computer-vision), dans votre langue (FR)"
	if s1.Why != wantWhy {
		t.Errorf("R1 why = %q, want %q", s1.Why, wantWhy)
	}

	wantSignals := map[string]float64{
		SignalQuality:  0.315,
		SignalRecency:  0.04,
		SignalLevel:    0.03,
		SignalDomain:   0,
		SignalLanguage: 0,
	}
	for name, want := range wantSignals {
		if !approxEqual(s2.Signals[name], want) {
			t.Errorf("R2 %s signal = %f, want %f", name, s2.Signals[name], want)
		}
	}
}

func TestScoreAt_Anonymous(t *testing.T) {
	r := Resource{
		ID:           "r",
		QualityScore: 0.5,
		Level:        levelPtr(LevelBeginner),
		Domains:      []string{"nlp"},
		Lang:         langPtr(LangFR),
		PublishedAt:  timePtr(fixedNow.AddDate(0, -1, 0)),
	}

	got := ScoreAt(&r, nil, fixedNow)

	for _, name := range []string{SignalLevel, SignalDomain, SignalLanguage} {
		if got.Signals[name] != 0 {
			t.Errorf("%s signal = %f, want 0 for anonymous requests", name, got.Signals[name])
		}
	}
	if !approxEqual(got.Score, 0.5*0.35+0.20) {
		t.Errorf("score = %f, want %f", got.Score, 0.5*0.35+0.20)
	}
}

func TestScoreAt_QualityMonotonic(t *testing.T) {
	profile := &UserProfile{ID: "u", Level: levelPtr(LevelIntermediate), Goals: []string{"nlp"}}
	base := Resource{
		ID:          "r",
		Level:       levelPtr(LevelBeginner),
		Domains:     []string{"nlp"},
		PublishedAt: timePtr(fixedNow.AddDate(0, -7, 0)),
	}

	previous := -1.0
	for _, q := range []float64{0, 0.1, 0.25, 0.5, 0.75, 0.9, 1.0} {
		r := base
		r.QualityScore = q
		score := ScoreAt(&r, profile, fixedNow).Score
		if score < previous {
			t.Errorf("score decreased from %f to %f when quality rose to %f", previous, score, q)
		}
		previous = score
	}
}

func TestScoreAt_NegativeQualityClamped(t *testing.T) {
	r := Resource{ID: "r", QualityScore: -2}
	got := ScoreAt(&r, nil, fixedNow)

	if got.Signals[SignalQuality] != 0 {
		t.Errorf("quality signal = %f, want 0", got.Signals[SignalQuality])
	}
	if got.Score < 0 {
		t.Errorf("score = %f, want non-negative", got.Score)
	}
}

func TestScoreAt_Why(t *testing.T) {
	t.Run("fallback when nothing fired", func(t *testing.T) {
		r := Resource{ID: "r", QualityScore: 0.9}
		got := ScoreAt(&r, nil, fixedNow)
		if got.Why != whyFallback {
			t.Errorf("Why = %q, want %q", got.Why, whyFallback)
		}
	})

	t.Run("quotes at most two domains", func(t *testing.T) {
		p := &UserProfile{ID: "u", Goals: []string{"learning"}}
		r := Resource{ID: "r", Domains: []string{"deep-learning", "machine-learning", "reinforcement-learning"}}
		got := ScoreAt(&r, p, fixedNow)

		if !strings.Contains(got.Why, "(deep-learning, machine-learning)") {
			t.Errorf("Why = %q, want the first two matched domains", got.Why)
		}
		if strings.Contains(got.Why, "reinforcement-learning") {
			t.Errorf("Why = %q, want at most two domains", got.Why)
		}
	})

	t.Run("semi recent and adjacent level", func(t *testing.T) {
		p := &UserProfile{ID: "u", Level: levelPtr(LevelIntermediate)}
		r := Resource{ID: "r", Level: levelPtr(LevelAdvanced), PublishedAt: timePtr(fixedNow.AddDate(0, -10, 0))}
		got := ScoreAt(&r, p, fixedNow)

		want := "Recommandé car: contenu relativement récent, niveau proche (Advanced)"
		if got.Why != want {
			t.Errorf("Why = %q, want %q", got.Why, want)
		}
	})
}

func TestMatchDomains(t *testing.T) {
	got := MatchDomains([]string{"NLP", "nlp", "Vision", "", "robotics"}, []string{"nlp", "computer vision"})
	want := []string{"NLP", "Vision"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MatchDomains() = %v, want %v", got, want)
	}
}

func TestScorer_UsesInjectedClock(t *testing.T) {
	calls := 0
	scorer := NewScorer(func() time.Time {
		calls++
		return fixedNow
	})

	resources := []Resource{
		{ID: "a", PublishedAt: timePtr(fixedNow.AddDate(0, -1, 0))},
		{ID: "b", PublishedAt: timePtr(fixedNow.AddDate(0, -20, 0))},
	}
	scored := scorer.ScoreAll(resources, nil)

	if calls != 1 {
		t.Errorf("clock called %d times, want 1 per batch", calls)
	}
	if len(scored) != 2 {
		t.Fatalf("ScoreAll() returned %d candidates, want 2", len(scored))
	}
	if !approxEqual(scored[0].Signals[SignalRecency], 0.20) || !approxEqual(scored[1].Signals[SignalRecency], 0.04) {
		t.Errorf("recency signals = %f, %f; want 0.20, 0.04",
			scored[0].Signals[SignalRecency], scored[1].Signals[SignalRecency])
	}
}
