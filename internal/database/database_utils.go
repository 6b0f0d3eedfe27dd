// Curio - Learning Resource Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package database

import (
	"context"
	"fmt"
	"time"
)

// defaultQueryTimeout applies when the config leaves query_timeout unset.
const defaultQueryTimeout = 30 * time.Second

// ensureContext bounds ctx by the configured query timeout when it carries no
// deadline of its own.
func (db *DB) ensureContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}

	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}

	timeout := defaultQueryTimeout
	if db.cfg != nil && db.cfg.QueryTimeout > 0 {
		timeout = db.cfg.QueryTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

// Checkpoint forces a WAL checkpoint
func (db *DB) Checkpoint(ctx context.Context) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	_, err := db.conn.ExecContext(ctx, "CHECKPOINT")
	if err != nil {
		return fmt.Errorf("checkpoint failed: %w", err)
	}
	return nil
}

// GetDatabasePath returns the path to the database file
func (db *DB) GetDatabasePath() string {
	return db.cfg.Path
}

// Stats summarizes the stored catalog.
type Stats struct {
	Path          string `json:"path"`
	Profiles      int64  `json:"profiles"`
	Resources     int64  `json:"resources"`
	SchemaVersion int    `json:"schema_version"`
}

// Stats returns row counts for the profile and resource tables.
func (db *DB) Stats(ctx context.Context) (Stats, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	s := Stats{Path: db.cfg.Path}

	start := time.Now()
	err := db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM profiles").Scan(&s.Profiles)
	recordQuery("count", tableProfiles, start, err)
	if err != nil {
		return s, fmt.Errorf("failed to count profiles: %w", err)
	}

	start = time.Now()
	err = db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM resources").Scan(&s.Resources)
	recordQuery("count", tableResources, start, err)
	if err != nil {
		return s, fmt.Errorf("failed to count resources: %w", err)
	}

	version, err := db.GetCurrentSchemaVersion(ctx)
	if err != nil {
		return s, err
	}
	s.SchemaVersion = version

	return s, nil
}
