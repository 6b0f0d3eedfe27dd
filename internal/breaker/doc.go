// Curio - Learning Resource Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

// Package breaker guards the profile and resource stores with
// sony/gobreaker circuit breakers.
//
// The wrappers implement recommend.ProfileStore and recommend.ResourceStore,
// so the engine never knows whether it talks to a raw store or a guarded one.
// A breaker opens after breaker.failure_threshold consecutive failures and
// rejects calls with gobreaker.ErrOpenState until breaker.timeout elapses.
// It never retries.
//
// Profile misses and canceled contexts do not count as failures.
//
// State changes are logged and exported as curio_circuit_breaker_state and
// curio_circuit_breaker_transitions_total.
package breaker
