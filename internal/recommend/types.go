// Curio - Learning Resource Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package recommend

import (
	"context"
	"strings"
	"time"
)

// Level is the declared difficulty of a resource or the self-assessed level of a learner.
type Level string

// Known levels. Any other value is treated as absent.
const (
	LevelBeginner     Level = "Beginner"
	LevelIntermediate Level = "Intermediate"
	LevelAdvanced     Level = "Advanced"
)

// AllLevels lists the known levels in ascending difficulty.
var AllLevels = []Level{LevelBeginner, LevelIntermediate, LevelAdvanced}

// ParseLevel maps a stored value onto a known Level.
// Matching is case-insensitive. The second return is false for unknown values.
func ParseLevel(s string) (Level, bool) {
	for _, l := range AllLevels {
		if strings.EqualFold(strings.TrimSpace(s), string(l)) {
			return l, true
		}
	}
	return "", false
}

// Valid reports whether l is one of the known levels.
func (l Level) Valid() bool {
	_, ok := ParseLevel(string(l))
	return ok
}

// rank returns the ordinal of a known level, or -1.
func (l Level) rank() int {
	for i, known := range AllLevels {
		if l == known {
			return i
		}
	}
	return -1
}

// Lang is the language a resource is published in.
type Lang string

// Known languages. LangBoth marks bilingual resources.
const (
	LangFR   Lang = "FR"
	LangEN   Lang = "EN"
	LangBoth Lang = "Both"
)

// ParseLang maps a stored value onto a known Lang.
func ParseLang(s string) (Lang, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fr":
		return LangFR, true
	case "en":
		return LangEN, true
	case "both":
		return LangBoth, true
	default:
		return "", false
	}
}

// UserProfile is the sparse preference record of a learner.
// Every field is optional; an empty profile means "no preference".
type UserProfile struct {
	// ID identifies the learner.
	ID string `json:"id" yaml:"id" validate:"required,max=128"`

	// Level is the self-assessed level. Nil when not declared.
	Level *Level `json:"level,omitempty" yaml:"level,omitempty" validate:"omitempty,oneof=Beginner Intermediate Advanced"`

	// Goals are free-text domain tags the learner is interested in.
	Goals []string `json:"goals,omitempty" yaml:"goals,omitempty" validate:"omitempty,dive,max=100"`

	// Langs are the languages the learner reads.
	Langs []Lang `json:"langs,omitempty" yaml:"langs,omitempty" validate:"omitempty,dive,oneof=FR EN Both"`

	// TimePerWeek is the weekly time budget in hours. Nil when not declared.
	TimePerWeek *int `json:"time_per_week,omitempty" yaml:"time_per_week,omitempty" validate:"omitempty,min=0,max=168"`
}

// HasLevel reports whether the profile declares a known level.
func (p *UserProfile) HasLevel() bool {
	return p != nil && p.Level != nil && p.Level.Valid()
}

// Resource is a learning resource as stored in the catalog.
type Resource struct {
	ID              string     `json:"id" yaml:"id" validate:"required,max=128"`
	Title           string     `json:"title" yaml:"title" validate:"required,max=500"`
	URL             string     `json:"url" yaml:"url" validate:"required,url"`
	Description     string     `json:"description,omitempty" yaml:"description,omitempty"`
	Level           *Level     `json:"level,omitempty" yaml:"level,omitempty" validate:"omitempty,oneof=Beginner Intermediate Advanced"`
	Domains         []string   `json:"domains" yaml:"domains" validate:"omitempty,dive,max=100"`
	DurationMinutes *int       `json:"duration_minutes,omitempty" yaml:"duration_minutes,omitempty" validate:"omitempty,min=0"`
	Lang            *Lang      `json:"lang,omitempty" yaml:"lang,omitempty" validate:"omitempty,oneof=FR EN Both"`
	PublishedAt     *time.Time `json:"published_at,omitempty" yaml:"published_at,omitempty"`
	QualityScore    float64    `json:"quality_score" yaml:"quality_score"`
	Source          string     `json:"source,omitempty" yaml:"source,omitempty"`
}

// ScoredCandidate is a Resource under consideration together with its score.
// It only lives for the duration of one request.
type ScoredCandidate struct {
	Resource Resource

	// Score is the weighted sum of all signals. It has no fixed upper bound.
	Score float64

	// Signals holds the contribution of each signal keyed by signal name.
	Signals map[string]float64

	// Why is a human-readable explanation of the signals that fired.
	// It is for display only.
	Why string
}

// Item is one entry of the recommendation output.
// Its position in the response is its rank.
type Item struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	URL             string     `json:"url"`
	Description     string     `json:"description,omitempty"`
	Level           *Level     `json:"level,omitempty"`
	Domains         []string   `json:"domains"`
	DurationMinutes *int       `json:"duration_minutes,omitempty"`
	Lang            *Lang      `json:"lang,omitempty"`
	PublishedAt     *time.Time `json:"published_at,omitempty"`
	QualityScore    float64    `json:"quality_score"`
	Source          string     `json:"source,omitempty"`
	Why             string     `json:"why"`
}

// ToItem projects a scored candidate onto the output shape.
func (c *ScoredCandidate) ToItem() Item {
	domains := c.Resource.Domains
	if domains == nil {
		domains = []string{}
	}
	return Item{
		ID:              c.Resource.ID,
		Title:           c.Resource.Title,
		URL:             c.Resource.URL,
		Description:     c.Resource.Description,
		Level:           c.Resource.Level,
		Domains:         domains,
		DurationMinutes: c.Resource.DurationMinutes,
		Lang:            c.Resource.Lang,
		PublishedAt:     c.Resource.PublishedAt,
		QualityScore:    c.Resource.QualityScore,
		Source:          c.Resource.Source,
		Why:             c.Why,
	}
}

// Request is a recommendation request.
type Request struct {
	// UserID is optional. Empty means anonymous ("best of") mode.
	UserID string

	// Limit is the number of items wanted. Zero uses the configured default.
	Limit int

	// RequestID is used for log correlation. Generated if empty.
	RequestID string
}

// Mode describes whether a response was personalized.
type Mode string

const (
	ModeAnonymous    Mode = "anonymous"
	ModePersonalized Mode = "personalized"
)

// Response is the result of a recommendation request.
type Response struct {
	// Items is the ranked output. Never nil.
	Items []Item

	// Metadata describes how the response was produced.
	Metadata ResponseMetadata
}

// ResponseMetadata describes how a response was produced.
type ResponseMetadata struct {
	RequestID       string
	Mode            Mode
	Limit           int
	FetchSize       int
	TotalCandidates int

	// ProfileMissed is true when a user ID was given but no profile exists.
	ProfileMissed bool

	LatencyMS int64
}

// ProfileStore looks up learner profiles.
type ProfileStore interface {
	// GetProfile returns ErrProfileNotFound when no profile exists for id.
	GetProfile(ctx context.Context, id string) (*UserProfile, error)
}

// ResourceStore fetches candidate resources.
type ResourceStore interface {
	// FetchCandidates returns at most n resources matching f, ordered by
	// quality_score descending then published_at descending.
	FetchCandidates(ctx context.Context, f Filter, n int) ([]Resource, error)
}

// Reranker selects and orders the final list from scored candidates.
type Reranker interface {
	// Name returns the reranker identifier (e.g., "domain-diversity").
	Name() string

	// Rerank receives candidates sorted by score descending and returns at most k of them.
	Rerank(ctx context.Context, items []ScoredCandidate, k int) []ScoredCandidate
}
