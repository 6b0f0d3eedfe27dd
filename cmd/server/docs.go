// Curio - Learning Resource Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

// Package main provides the Curio HTTP server
//
// @title Curio API
// @version 1.0
// @description Ranked learning-resource recommendations.
// @description
// @description ## Personalization
// @description
// @description Pass `user_id` to personalize results from the learner's stored profile.
// @description Unknown users fall back to anonymous "best of" ranking.
// @description
// @description ## Rate Limiting
// @description
// @description Default rate limit: 100 requests per minute per IP address.
// @description
// @description ## Error Responses
// @description
// @description All error responses follow this format:
// @description ```json
// @description { "error": "internal server error" }
// @description ```
//
// @contact.name GitHub Repository
// @contact.url https://github.com/tomtom215/curio/issues
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @host localhost:8080
// @BasePath /api
// @schemes http https
package main
