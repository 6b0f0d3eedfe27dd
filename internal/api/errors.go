// Curio - Learning Resource Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package api

// Error messages returned to clients. Internal error details are logged and
// never echoed.
const (
	msgMethodNotAllowed = "method not allowed"
	msgNotFound         = "not found"
	msgInternal         = "internal server error"
	msgRateLimited      = "rate limit exceeded"
)
