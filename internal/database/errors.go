// Curio - Learning Resource Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package database

import (
	"errors"
	"io"

	"github.com/tomtom215/curio/internal/logging"
)

var (
	// ErrNilConfig is returned by New when no configuration is given.
	ErrNilConfig = errors.New("database config is nil")

	// ErrNilConnection is returned when the connection was never opened.
	ErrNilConnection = errors.New("database connection is nil")

	// ErrEmptyID is returned by writes that were given an empty primary key.
	ErrEmptyID = errors.New("id is required")

	// ErrResourceNotFound is returned by GetResource on a miss.
	ErrResourceNotFound = errors.New("resource not found")
)

// closeWithLog closes a resource and logs any error
// Use this for cleanup operations where errors should be acknowledged but not fail the operation
func closeWithLog(closer io.Closer, resourceType string) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logging.Warn().Str("type", resourceType).Err(err).Msg("Failed to close resource")
	}
}

// closeQuietly closes a resource and explicitly ignores any error
// Use this for cleanup operations in error paths where Close() errors are not actionable
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close() // Explicitly ignore error - cleanup is best-effort
	}
}
