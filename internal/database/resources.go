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

const resourceColumns = `id, title, url, description, level, domains, duration_minutes,
	lang, published_at, quality_score, source`

// candidateOrder is the store order the scorer relies on for stable ties.
const candidateOrder = `ORDER BY quality_score DESC, published_at DESC NULLS LAST, id ASC`

// FetchCandidates returns at most n resources matching f.
//
// NULL policy per column:
//   - lang: NULL never matches an active language filter
//   - level: NULL always matches
//   - duration_minutes: NULL always matches
//
// Language and level match regardless of the stored casing.
//
// Rows that fail validation are skipped and counted in
// curio_db_invalid_rows_total. Skipped rows do not use up the limit: the
// query pages past them until n valid rows are found or the matches run out.
// The result is never nil.
func (db *DB) FetchCandidates(ctx context.Context, f recommend.Filter, n int) ([]recommend.Resource, error) {
	if n <= 0 {
		return []recommend.Resource{}, nil
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	wb := query.NewWhereBuilder().
		AddIn("lang", toStrings(f.Langs)).
		AddInOrNull("level", toStrings(f.Levels)).
		AddMaxOrNull("duration_minutes", f.MaxDurationMinutes)

	where, args := wb.BuildWithPrefix()
	q := fmt.Sprintf("SELECT %s FROM resources %s %s LIMIT ? OFFSET ?", resourceColumns, where, candidateOrder)

	resources := make([]recommend.Resource, 0, n)
	offset := 0
	for len(resources) < n {
		want := n - len(resources)
		scanned := 0
		scan := func(rows *sql.Rows) (recommend.Resource, bool, error) {
			scanned++
			return db.scanValidResource(rows)
		}

		pageArgs := make([]interface{}, 0, len(args)+2)
		pageArgs = append(pageArgs, args...)
		pageArgs = append(pageArgs, want, offset)

		start := time.Now()
		page, err := queryAndScan(ctx, db.conn, q, pageArgs, scan)
		recordQuery("fetch_candidates", tableResources, start, err)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch candidates: %w", err)
		}

		resources = append(resources, page...)
		if scanned < want {
			break
		}
		offset += scanned
	}

	return resources, nil
}

// scanValidResource scans a row and drops it when it fails validation.
func (db *DB) scanValidResource(rows *sql.Rows) (recommend.Resource, bool, error) {
	r, err := scanResource(rows)
	if err != nil {
		return recommend.Resource{}, false, err
	}

	if verr := validation.ValidateStruct(r); verr != nil {
		metrics.DBInvalidRows.WithLabelValues(tableResources).Inc()
		db.logger.Warn().
			Str("resource_id", r.ID).
			Strs("fields", verr.Fields()).
			Msg("Skipping invalid resource row")
		return recommend.Resource{}, false, nil
	}

	return *r, true, nil
}

func scanResource(row rowScanner) (*recommend.Resource, error) {
	var (
		r           recommend.Resource
		description sql.NullString
		level       sql.NullString
		domains     any
		duration    sql.NullInt64
		lang        sql.NullString
		publishedAt sql.NullTime
		source      sql.NullString
	)

	err := row.Scan(&r.ID, &r.Title, &r.URL, &description, &level, &domains, &duration,
		&lang, &publishedAt, &r.QualityScore, &source)
	if err != nil {
		return nil, err
	}

	r.Description = description.String
	r.Source = source.String

	if level.Valid {
		if l, ok := recommend.ParseLevel(level.String); ok {
			r.Level = &l
		}
	}
	if lang.Valid {
		if l, ok := recommend.ParseLang(lang.String); ok {
			r.Lang = &l
		}
	}
	if duration.Valid {
		minutes := int(duration.Int64)
		r.DurationMinutes = &minutes
	}
	if publishedAt.Valid {
		t := publishedAt.Time.UTC()
		r.PublishedAt = &t
	}

	d, err := stringList(domains)
	if err != nil {
		return nil, fmt.Errorf("domains: %w", err)
	}
	if d == nil {
		d = []string{}
	}
	r.Domains = d

	return &r, nil
}

// GetResource returns one resource by id, or ErrResourceNotFound.
func (db *DB) GetResource(ctx context.Context, id string) (*recommend.Resource, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	row := db.conn.QueryRowContext(ctx,
		fmt.Sprintf("SELECT %s FROM resources WHERE id = ?", resourceColumns), id)

	r, err := scanResource(row)
	if errors.Is(err, sql.ErrNoRows) {
		recordQuery("get_resource", tableResources, start, nil)
		return nil, ErrResourceNotFound
	}
	recordQuery("get_resource", tableResources, start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to get resource: %w", err)
	}
	return r, nil
}

// UpsertResource validates r and inserts or replaces it.
func (db *DB) UpsertResource(ctx context.Context, r *recommend.Resource) error {
	if r == nil || r.ID == "" {
		return ErrEmptyID
	}
	if err := validation.Validate(r); err != nil {
		return fmt.Errorf("invalid resource %s: %w", r.ID, err)
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	domains := r.Domains
	if domains == nil {
		domains = []string{}
	}

	stmt := fmt.Sprintf(`INSERT INTO resources (
			id, title, url, description, level, domains, duration_minutes,
			lang, published_at, quality_score, source, updated_at
		) VALUES (?, ?, ?, ?, ?, %s, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			url = EXCLUDED.url,
			description = EXCLUDED.description,
			level = EXCLUDED.level,
			domains = EXCLUDED.domains,
			duration_minutes = EXCLUDED.duration_minutes,
			lang = EXCLUDED.lang,
			published_at = EXCLUDED.published_at,
			quality_score = EXCLUDED.quality_score,
			source = EXCLUDED.source,
			updated_at = EXCLUDED.updated_at`,
		query.VarcharList(len(domains)))

	args := make([]interface{}, 0, 11+len(domains))
	args = append(args, r.ID, r.Title, r.URL, emptyToNull(r.Description), nullableString(r.Level))
	args = append(args, listArgs(domains)...)
	args = append(args,
		nullableInt(r.DurationMinutes),
		nullableString(r.Lang),
		nullableTime(r.PublishedAt),
		r.QualityScore,
		emptyToNull(r.Source),
		db.now().UTC(),
	)

	start := time.Now()
	err := withConflictRetry(ctx, func(ctx context.Context) error {
		_, err := db.conn.ExecContext(ctx, stmt, args...)
		return err
	})
	recordQuery("upsert_resource", tableResources, start, err)
	if err != nil {
		return fmt.Errorf("failed to upsert resource: %w", err)
	}
	return nil
}

// DeleteResource removes the resource for id and reports whether it existed.
func (db *DB) DeleteResource(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, ErrEmptyID
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	res, err := db.conn.ExecContext(ctx, `DELETE FROM resources WHERE id = ?`, id)
	recordQuery("delete_resource", tableResources, start, err)
	if err != nil {
		return false, fmt.Errorf("failed to delete resource: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n > 0, nil
}

var (
	_ recommend.ProfileStore  = (*DB)(nil)
	_ recommend.ResourceStore = (*DB)(nil)
)
