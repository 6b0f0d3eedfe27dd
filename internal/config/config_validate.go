// Curio - Learning Resource Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package config

import (
	"fmt"
	"strings"
	"time"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateServer,
		c.validateDatabase,
		c.validateRecommend,
		c.validateBreaker,
		c.validateSecurity,
		c.validateCatalog,
		c.validateLogging,
	}
	for _, validate := range validators {
		if err := validate(); err != nil {
			return err
		}
	}
	return nil
}

// validEnvironments defines the allowed environment modes
var validEnvironments = map[string]bool{
	"development": true,
	"staging":     true,
	"production":  true,
}

// validateServer validates server configuration
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("HTTP_SHUTDOWN_TIMEOUT must be positive")
	}
	if !validEnvironments[c.Server.Environment] {
		return fmt.Errorf("ENVIRONMENT must be one of: development, staging, production")
	}
	return nil
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// validateDatabase validates DuckDB configuration
func (c *Config) validateDatabase() error {
	if strings.TrimSpace(c.Database.Path) == "" {
		return fmt.Errorf("DUCKDB_PATH is required")
	}
	if c.Database.Threads < 0 {
		return fmt.Errorf("DUCKDB_THREADS must not be negative")
	}
	if c.Database.QueryTimeout <= 0 {
		return fmt.Errorf("DUCKDB_QUERY_TIMEOUT must be positive")
	}
	return nil
}

// Recommendation bounds
const (
	maxRecommendLimit    = 500
	maxOverFetchFactor   = 20
	maxRecommendDeadline = 2 * time.Minute
)

// validateRecommend validates recommendation limits
func (c *Config) validateRecommend() error {
	r := c.Recommend
	if r.MaxLimit < 1 || r.MaxLimit > maxRecommendLimit {
		return fmt.Errorf("RECOMMEND_MAX_LIMIT must be between 1 and %d", maxRecommendLimit)
	}
	if r.DefaultLimit < 1 || r.DefaultLimit > r.MaxLimit {
		return fmt.Errorf("RECOMMEND_DEFAULT_LIMIT must be between 1 and RECOMMEND_MAX_LIMIT (%d)", r.MaxLimit)
	}
	if r.OverFetchFactor < 1 || r.OverFetchFactor > maxOverFetchFactor {
		return fmt.Errorf("RECOMMEND_OVER_FETCH_FACTOR must be between 1 and %d", maxOverFetchFactor)
	}
	if r.RequestTimeout < 0 || r.RequestTimeout > maxRecommendDeadline {
		return fmt.Errorf("RECOMMEND_REQUEST_TIMEOUT must be between 0 and %v", maxRecommendDeadline)
	}
	if r.DiversityWarmup < 0 || r.DiversityRelaxedTail < 0 {
		return fmt.Errorf("RECOMMEND_DIVERSITY_WARMUP and RECOMMEND_DIVERSITY_RELAXED_TAIL must not be negative")
	}
	return nil
}

// validateBreaker validates circuit breaker configuration (only if enabled)
func (c *Config) validateBreaker() error {
	if !c.Breaker.Enabled {
		return nil
	}
	if c.Breaker.FailureThreshold == 0 {
		return fmt.Errorf("BREAKER_FAILURE_THRESHOLD must be at least 1")
	}
	if c.Breaker.MaxRequests == 0 {
		return fmt.Errorf("BREAKER_MAX_REQUESTS must be at least 1")
	}
	if c.Breaker.Timeout <= 0 {
		return fmt.Errorf("BREAKER_TIMEOUT must be positive")
	}
	if c.Breaker.Interval < 0 {
		return fmt.Errorf("BREAKER_INTERVAL must not be negative")
	}
	return nil
}

// Rate limit constants
const (
	minRateLimitRequests = 1           // Minimum 1 request allowed
	maxRateLimitRequests = 100000      // Maximum 100K requests per window
	minRateLimitWindow   = time.Second // Minimum 1 second window
	maxRateLimitWindow   = time.Hour   // Maximum 1 hour window
)

// validateSecurity validates CORS and rate limiting configuration
func (c *Config) validateSecurity() error {
	if c.IsProduction() && c.hasWildcardCORS() {
		return fmt.Errorf("CORS_ORIGINS=* (wildcard) is not allowed in production. " +
			"Set specific origins: CORS_ORIGINS=https://yourdomain.com,https://app.yourdomain.com")
	}
	if c.Security.UserRateLimitPerMinute < 0 {
		return fmt.Errorf("USER_RATE_LIMIT_PER_MINUTE must not be negative")
	}
	return c.validateRateLimits()
}

// hasWildcardCORS checks if CORS is configured with wildcard origins
func (c *Config) hasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

// ShouldWarnAboutCORS returns true if CORS configuration should be flagged at startup
func (c *Config) ShouldWarnAboutCORS() bool {
	return c.hasWildcardCORS()
}

// validateRateLimits validates rate limiting configuration bounds.
func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

// validateCatalog validates NATS catalog ingest configuration (only if enabled)
func (c *Config) validateCatalog() error {
	if !c.Catalog.Enabled {
		return nil
	}

	cat := c.Catalog
	if !cat.EmbeddedServer {
		if cat.URL == "" {
			return fmt.Errorf("NATS_URL is required when CATALOG_ENABLED=true and NATS_EMBEDDED=false")
		}
		if err := validateNATSURL(cat.URL); err != nil {
			return fmt.Errorf("NATS_URL is invalid: %w", err)
		}
	}
	if cat.EmbeddedServer && cat.StoreDir == "" {
		return fmt.Errorf("NATS_STORE_DIR is required when NATS_EMBEDDED=true")
	}
	if cat.Topic == "" {
		return fmt.Errorf("CATALOG_TOPIC is required when CATALOG_ENABLED=true")
	}
	if cat.DurableName == "" {
		return fmt.Errorf("CATALOG_DURABLE_NAME is required when CATALOG_ENABLED=true")
	}
	if cat.SubscribersCount < 1 || cat.SubscribersCount > 64 {
		return fmt.Errorf("CATALOG_SUBSCRIBERS must be between 1 and 64")
	}
	if cat.MaxDeliver < 1 {
		return fmt.Errorf("CATALOG_MAX_DELIVER must be at least 1")
	}
	if cat.AckWait < time.Second {
		return fmt.Errorf("CATALOG_ACK_WAIT must be at least 1s")
	}
	if cat.DedupeTTL <= 0 {
		return fmt.Errorf("CATALOG_DEDUPE_TTL must be positive")
	}
	if cat.DedupePath == "" && cat.DedupeCapacity < 1 {
		return fmt.Errorf("CATALOG_DEDUPE_CAPACITY must be at least 1 when CATALOG_DEDUPE_PATH is empty")
	}
	if cat.MaxEventsPerSecond < 0 {
		return fmt.Errorf("CATALOG_MAX_EVENTS_PER_SECOND must not be negative")
	}
	return nil
}

// validLogLevels defines the allowed log levels
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats defines the allowed log formats
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}
