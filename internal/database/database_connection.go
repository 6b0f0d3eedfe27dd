// Curio - Learning Resource Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package database

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"
)

// configureConnectionPool sets connection pool parameters
//   - max_open: NumCPU() for parallelism
//   - max_idle: 2 for connection reuse
//   - max_lifetime: 1h to prevent stale connections
//   - max_idle_time: 5m for idle connection cleanup
func (db *DB) configureConnectionPool() {
	db.conn.SetMaxOpenConns(runtime.NumCPU())
	db.conn.SetMaxIdleConns(2)
	db.conn.SetConnMaxLifetime(time.Hour)
	db.conn.SetConnMaxIdleTime(5 * time.Minute)
}

// isTransactionConflict checks if an error is a DuckDB transaction conflict
func isTransactionConflict(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "Transaction conflict") ||
		strings.Contains(errStr, "Conflict on update") ||
		strings.Contains(errStr, "cannot update a table that has been altered")
}

// maxWriteRetries bounds retries of ingest writes on transaction conflicts.
const maxWriteRetries = 3

// withConflictRetry runs write, retrying with 1ms, 2ms backoff when DuckDB
// reports a transaction conflict. Other errors are returned immediately.
// Only the catalog write path uses it; reads are never retried.
func withConflictRetry(ctx context.Context, write func(context.Context) error) error {
	var lastErr error
	for attempt := 0; attempt < maxWriteRetries; attempt++ {
		err := write(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		if !isTransactionConflict(err) || attempt == maxWriteRetries-1 {
			break
		}

		backoff := time.Millisecond * time.Duration(1<<uint(attempt))
		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	if isTransactionConflict(lastErr) {
		return fmt.Errorf("max retries exceeded: %w", lastErr)
	}
	return lastErr
}
