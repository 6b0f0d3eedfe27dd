// Curio - Learning Resource Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package catalog

import "errors"

var (
	// ErrInvalidEvent marks an event that can never be applied. The consumer
	// acks such messages instead of letting them redeliver.
	ErrInvalidEvent = errors.New("invalid catalog event")

	// ErrLedgerClosed is returned by a ledger after Close.
	ErrLedgerClosed = errors.New("dedupe ledger is closed")

	// ErrNotFound is returned by Apply when a delete targets a missing record.
	// The consumer treats it as applied.
	ErrNotFound = errors.New("catalog record not found")
)
