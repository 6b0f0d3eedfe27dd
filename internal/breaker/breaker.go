// Curio - Learning Resource Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package breaker

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/curio/internal/config"
	"github.com/tomtom215/curio/internal/logging"
	"github.com/tomtom215/curio/internal/metrics"
	"github.com/tomtom215/curio/internal/recommend"
)

// Breaker names, used as the "name" label of the circuit breaker metrics.
const (
	NameProfiles  = "profile-store"
	NameResources = "resource-store"
)

// StateReporter exposes a breaker's state for the health endpoint.
type StateReporter interface {
	Name() string
	State() string
}

// newCircuitBreaker builds a breaker that opens after FailureThreshold
// consecutive failures.
//
// DETERMINISM NOTE: gobreaker uses real time for Interval and Timeout. Tests
// that exercise recovery use short timeouts rather than a fake clock.
func newCircuitBreaker[T any](name string, cfg *config.BreakerConfig, logger zerolog.Logger) *gobreaker.CircuitBreaker[T] {
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	threshold := cfg.FailureThreshold
	if threshold == 0 {
		threshold = 5
	}

	return gobreaker.NewCircuitBreaker[T](gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			trip := counts.ConsecutiveFailures >= threshold
			if trip {
				logger.Warn().
					Uint32("consecutive_failures", counts.ConsecutiveFailures).
					Msg("Opening circuit")
			}
			return trip
		},

		IsSuccessful: isSuccessful,

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)

			logger.Info().Str("from", fromStr).Str("to", toStr).Msg("Circuit breaker state transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
		},
	})
}

// isSuccessful decides which errors count against the store's health.
// A profile miss is a normal answer and a canceled request says nothing
// about the store.
func isSuccessful(err error) bool {
	return err == nil ||
		errors.Is(err, recommend.ErrProfileNotFound) ||
		errors.Is(err, context.Canceled)
}

// execute wraps a store call with circuit breaker protection and metrics.
func execute[T any](cb *gobreaker.CircuitBreaker[T], logger zerolog.Logger, fn func() (T, error)) (T, error) {
	result, err := cb.Execute(fn)

	name := cb.Name()
	switch {
	case err == nil:
		metrics.CircuitBreakerRequests.WithLabelValues(name, "success").Inc()
	case errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.CircuitBreakerRequests.WithLabelValues(name, "rejected").Inc()
		logger.Warn().Err(err).Msg("Request rejected by circuit breaker")
	case isSuccessful(err):
		metrics.CircuitBreakerRequests.WithLabelValues(name, "success").Inc()
	default:
		metrics.CircuitBreakerRequests.WithLabelValues(name, "failure").Inc()
	}

	return result, err
}

// IsOpen reports whether err was produced by an open or saturated breaker.
func IsOpen(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}

// stateToFloat converts circuit breaker state to numeric value for metrics
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// stateToString converts circuit breaker state to string for logging
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

func componentLogger(name string) zerolog.Logger {
	return logging.WithComponent("breaker").With().Str("breaker", name).Logger()
}
