// Curio - Learning Resource Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

// Package logging provides centralized zerolog-based structured logging for Curio.
//
// # Overview
//
// The package provides:
//   - A global zerolog logger configured once at startup
//   - JSON output for production and console output for development
//   - Request-scoped loggers carrying request_id and user_id
//   - An slog adapter for the suture supervisor event hook
//   - A Watermill adapter for the catalog subscriber and publisher
//
// # Quick Start
//
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//
//	logging.Info().Str("addr", addr).Msg("HTTP server listening")
//	logging.Error().Err(err).Msg("Catalog event rejected")
//
//	// Request-scoped
//	ctx = logging.ContextWithRequestID(ctx, requestID)
//	logging.Ctx(ctx).Debug().Int("items", n).Msg("Recommendations served")
//
// # Configuration
//
// Environment Variables (read through internal/config):
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false - include caller info (default: false)
//
// # Best Practices
//
// Always terminate log chains with .Msg() or .Send():
//
//	logging.Info().Str("key", "value").Msg("message")  // Correct
//	logging.Info().Str("key", "value")                 // WRONG - log not emitted
package logging
