// Curio - Learning Resource Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/tomtom215/curio/internal/recommend"
	"github.com/tomtom215/curio/internal/validation"
)

// File is a YAML catalog document:
//
//	profiles:
//	  - id: u1
//	    level: Beginner
//	    goals: [computer vision]
//	    langs: [FR]
//	    time_per_week: 3
//	resources:
//	  - id: r1
//	    title: Intro to CV
//	    url: https://example.org/cv
//	    level: Beginner
//	    domains: [computer vision]
//	    duration_minutes: 120
//	    lang: FR
//	    published_at: 2026-01-15T00:00:00Z
//	    quality_score: 0.9
type File struct {
	Profiles  []recommend.UserProfile `yaml:"profiles"`
	Resources []recommend.Resource    `yaml:"resources"`
}

// LoadFile reads and validates a catalog file.
func LoadFile(path string) (*File, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, fmt.Errorf("open catalog file: %w", err)
	}
	defer f.Close() //nolint:errcheck // read-only

	catalog, err := DecodeFile(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return catalog, nil
}

// DecodeFile parses a catalog document. Unknown keys are rejected so a typo
// such as "quality" instead of "quality_score" fails loudly.
func DecodeFile(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks every record and rejects duplicate IDs.
func (f *File) Validate() error {
	var errs []error

	seen := make(map[string]bool, len(f.Profiles))
	for i := range f.Profiles {
		p := &f.Profiles[i]
		if err := validation.Validate(p); err != nil {
			errs = append(errs, fmt.Errorf("profiles[%d]: %w", i, err))
		}
		if seen[p.ID] {
			errs = append(errs, fmt.Errorf("profiles[%d]: duplicate id %q", i, p.ID))
		}
		seen[p.ID] = true
	}

	seen = make(map[string]bool, len(f.Resources))
	for i := range f.Resources {
		r := &f.Resources[i]
		if err := validation.Validate(r); err != nil {
			errs = append(errs, fmt.Errorf("resources[%d]: %w", i, err))
		}
		if seen[r.ID] {
			errs = append(errs, fmt.Errorf("resources[%d]: duplicate id %q", i, r.ID))
		}
		seen[r.ID] = true
	}

	return errors.Join(errs...)
}

// Events converts the file into upsert events, profiles first.
func (f *File) Events(now time.Time) []*Event {
	events := make([]*Event, 0, len(f.Profiles)+len(f.Resources))
	for i := range f.Profiles {
		events = append(events, NewProfileUpserted(&f.Profiles[i], now))
	}
	for i := range f.Resources {
		events = append(events, NewResourceUpserted(&f.Resources[i], now))
	}
	return events
}

// SeedResult counts the records written by Seed.
type SeedResult struct {
	Profiles  int `json:"profiles"`
	Resources int `json:"resources"`
}

// Seed upserts every record of f into store. It stops at the first error.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func Seed(ctx context.Context, store Store, f *File, logger zerolog.Logger) (SeedResult, error) {
	var res SeedResult
	start := time.Now()

	for i := range f.Profiles {
		if err := store.UpsertProfile(ctx, &f.Profiles[i]); err != nil {
			return res, fmt.Errorf("seed profile %s: %w", f.Profiles[i].ID, err)
		}
		res.Profiles++
	}
	for i := range f.Resources {
		if err := store.UpsertResource(ctx, &f.Resources[i]); err != nil {
			return res, fmt.Errorf("seed resource %s: %w", f.Resources[i].ID, err)
		}
		res.Resources++
	}

	logger.Info().
		Int("profiles", res.Profiles).
		Int("resources", res.Resources).
		Dur("duration", time.Since(start)).
		Msg("Catalog seeded")
	return res, nil
}
