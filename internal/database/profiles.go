// Curio - Learning Resource Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/curio/internal/database/query"
	"github.com/tomtom215/curio/internal/metrics"
	"github.com/tomtom215/curio/internal/recommend"
	"github.com/tomtom215/curio/internal/validation"
)

// rowScanner is implemented by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// GetProfile returns the stored profile for id, or recommend.ErrProfileNotFound.
// A stored profile that fails validation is logged and reported as not found,
// so the request degrades to anonymous mode instead of failing.
func (db *DB) GetProfile(ctx context.Context, id string) (*recommend.UserProfile, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	row := db.conn.QueryRowContext(ctx,
		`SELECT id, level, goals, langs, time_per_week FROM profiles WHERE id = ?`, id)

	p, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		recordQuery("get_profile", tableProfiles, start, nil)
		return nil, recommend.ErrProfileNotFound
	}
	recordQuery("get_profile", tableProfiles, start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	if verr := validation.ValidateStruct(p); verr != nil {
		metrics.DBInvalidRows.WithLabelValues(tableProfiles).Inc()
		db.logger.Warn().
			Str("user_id", id).
			Strs("fields", verr.Fields()).
			Msg("Stored profile failed validation, serving anonymously")
		return nil, recommend.ErrProfileNotFound
	}

	return p, nil
}

func scanProfile(row rowScanner) (*recommend.UserProfile, error) {
	var (
		p           recommend.UserProfile
		level       sql.NullString
		goals       any
		langs       any
		timePerWeek sql.NullInt64
	)

	if err := row.Scan(&p.ID, &level, &goals, &langs, &timePerWeek); err != nil {
		return nil, err
	}

	if level.Valid {
		if l, ok := recommend.ParseLevel(level.String); ok {
			p.Level = &l
		}
	}

	g, err := stringList(goals)
	if err != nil {
		return nil, fmt.Errorf("goals: %w", err)
	}
	if len(g) > 0 {
		p.Goals = g
	}

	rawLangs, err := stringList(langs)
	if err != nil {
		return nil, fmt.Errorf("langs: %w", err)
	}
	for _, s := range rawLangs {
		if l, ok := recommend.ParseLang(s); ok {
			p.Langs = append(p.Langs, l)
		}
	}

	if timePerWeek.Valid {
		hours := int(timePerWeek.Int64)
		p.TimePerWeek = &hours
	}

	return &p, nil
}

// UpsertProfile validates p and inserts or replaces it.
func (db *DB) UpsertProfile(ctx context.Context, p *recommend.UserProfile) error {
	if p == nil || p.ID == "" {
		return ErrEmptyID
	}
	if err := validation.Validate(p); err != nil {
		return fmt.Errorf("invalid profile %s: %w", p.ID, err)
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	goals := p.Goals
	if goals == nil {
		goals = []string{}
	}
	langs := toStrings(p.Langs)
	if langs == nil {
		langs = []string{}
	}

	stmt := fmt.Sprintf(`INSERT INTO profiles (id, level, goals, langs, time_per_week, updated_at)
		VALUES (?, ?, %s, %s, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			level = EXCLUDED.level,
			goals = EXCLUDED.goals,
			langs = EXCLUDED.langs,
			time_per_week = EXCLUDED.time_per_week,
			updated_at = EXCLUDED.updated_at`,
		query.VarcharList(len(goals)), query.VarcharList(len(langs)))

	args := make([]interface{}, 0, 4+len(goals)+len(langs))
	args = append(args, p.ID, nullableString(p.Level))
	args = append(args, listArgs(goals)...)
	args = append(args, listArgs(langs)...)
	args = append(args, nullableInt(p.TimePerWeek), db.now().UTC())

	start := time.Now()
	err := withConflictRetry(ctx, func(ctx context.Context) error {
		_, err := db.conn.ExecContext(ctx, stmt, args...)
		return err
	})
	recordQuery("upsert_profile", tableProfiles, start, err)
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	return nil
}

// DeleteProfile removes the profile for id. It reports whether a row existed;
// deleting a missing profile is not an error.
func (db *DB) DeleteProfile(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, ErrEmptyID
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	res, err := db.conn.ExecContext(ctx, `DELETE FROM profiles WHERE id = ?`, id)
	recordQuery("delete_profile", tableProfiles, start, err)
	if err != nil {
		return false, fmt.Errorf("failed to delete profile: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n > 0, nil
}
