// Curio - Learning Resource Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

/*
database_schema.go - Database Schema Management

Tables:
  - profiles: sparse learner preferences, one row per user
  - resources: the learning resource catalog

Every preference column is nullable. NULL means "not declared" and the
candidate query gives each column an explicit NULL policy (see resources.go).
List columns use VARCHAR[] and are never NULL; an empty list is stored as [].

Only primary keys are indexed. Both tables are written with ON CONFLICT DO
UPDATE, which DuckDB rejects for columns covered by a secondary index.

Timestamps are plain TIMESTAMP values in UTC written by the application, so
the schema needs no extension beyond the DuckDB core.
*/

//nolint:staticcheck // File documentation, not package doc
package database

import (
	"context"
	"fmt"
	"time"
)

// schemaContext returns a context with timeout for schema operations
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// createTables creates the core database tables
func (db *DB) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, q := range tableCreationQueries {
		if _, err := db.conn.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}
	return nil
}

var tableCreationQueries = []string{
	`CREATE TABLE IF NOT EXISTS profiles (
		id VARCHAR PRIMARY KEY,
		level VARCHAR,
		goals VARCHAR[] NOT NULL,
		langs VARCHAR[] NOT NULL,
		time_per_week INTEGER,
		updated_at TIMESTAMP NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS resources (
		id VARCHAR PRIMARY KEY,
		title VARCHAR NOT NULL,
		url VARCHAR NOT NULL,
		description VARCHAR,
		level VARCHAR,
		domains VARCHAR[] NOT NULL,
		duration_minutes INTEGER,
		lang VARCHAR,
		published_at TIMESTAMP,
		quality_score DOUBLE NOT NULL DEFAULT 0,
		source VARCHAR,
		updated_at TIMESTAMP NOT NULL
	);`,
}
