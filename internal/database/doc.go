// Curio - Learning Resource Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

/*
Package database provides the DuckDB-backed profile and resource stores.

*DB implements recommend.ProfileStore and recommend.ResourceStore, and adds
the write operations used by the catalog ingest path and the seed command.

# Lifecycle

	db, err := database.New(&cfg.Database)
	if err != nil {
	    return err
	}
	defer db.Close()

New creates the parent directory, opens DuckDB with runtime extension
loading disabled, sizes the connection pool, creates the schema, applies
pending migrations and checkpoints. Close checkpoints again before closing
so the next start does not replay a WAL.

# Reads

GetProfile returns recommend.ErrProfileNotFound on a miss. FetchCandidates
pushes the whole recommend.Filter down to SQL:

	SELECT ... FROM resources
	WHERE lang IN (?, ...)
	  AND (level IS NULL OR level IN (?, ...))
	  AND (duration_minutes IS NULL OR duration_minutes <= ?)
	ORDER BY quality_score DESC, published_at DESC NULLS LAST, id ASC
	LIMIT ?

Rows that fail validation are skipped with a warning instead of failing the
request. Reads are never retried.

# Writes

UpsertProfile, UpsertResource, DeleteProfile and DeleteResource validate
their input and retry briefly on DuckDB transaction conflicts.

# Timeouts and Metrics

Every query without a deadline gets database.query_timeout. Every query is
observed in curio_db_query_duration_seconds and failures are counted in
curio_db_query_errors_total.
*/
package database
