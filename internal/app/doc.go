// Curio - Learning Resource Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

// Package app assembles Curio components from configuration. It is shared
// by the curio server and the curioctl command so both run the same
// pipeline against the same stores.
package app
