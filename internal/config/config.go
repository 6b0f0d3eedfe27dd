// Curio - Learning Resource Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package config

import (
	"time"
)

// Config holds all application configuration loaded from defaults, an
// optional YAML file and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all optional settings
//  2. Config File: Optional YAML config file (config.yaml) for persistent settings
//  3. Environment Variables: Override any setting via environment variables
//
// Configuration Categories:
//
//  1. Infrastructure:
//     - Database: DuckDB catalog storage (path, memory, query timeout, seed file)
//     - Server: HTTP server configuration (host, port, timeouts)
//     - Catalog: NATS JetStream ingest of catalog change events (optional)
//
//  2. Recommendation:
//     - Recommend: Limits, over-fetch factor and request timeout
//     - Breaker: Circuit breakers around the catalog stores
//
//  3. API & Security:
//     - Security: CORS and rate limiting
//
//  4. Observability:
//     - Logging: Log levels and output formats
//
// Example:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal("Failed to load config:", err)
//	}
//	db, err := database.New(&cfg.Database)
//
// Config is immutable after Load() and safe for concurrent read access.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Logging   LoggingConfig   `koanf:"logging"`
	Recommend RecommendConfig `koanf:"recommend"`
	Breaker   BreakerConfig   `koanf:"breaker"`
	Security  SecurityConfig  `koanf:"security"`
	Catalog   CatalogConfig   `koanf:"catalog"` // Optional: NATS catalog ingest
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`          // Read/write timeout for HTTP connections
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"` // Graceful shutdown budget
	Environment     string        `koanf:"environment"`      // "development", "staging", "production" (default: "development")
}

// DatabaseConfig holds DuckDB settings
type DatabaseConfig struct {
	Path         string        `koanf:"path"`
	MaxMemory    string        `koanf:"max_memory"`
	Threads      int           `koanf:"threads"`       // Number of DuckDB threads (0 = use NumCPU)
	QueryTimeout time.Duration `koanf:"query_timeout"` // Applied to every query without a deadline
	SeedFile     string        `koanf:"seed_file"`     // Optional YAML catalog loaded at startup
}

// LoggingConfig holds logging configuration.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false - include caller file:line (default: false)
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// JSON is recommended for production (structured, machine-parseable).
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// RecommendConfig holds recommendation request settings.
//
// Environment Variables:
//   - RECOMMEND_DEFAULT_LIMIT: Limit used when the request omits one (default: 10)
//   - RECOMMEND_MAX_LIMIT: Upper bound on the requested limit (default: 50)
//   - RECOMMEND_OVER_FETCH_FACTOR: Candidates fetched per returned item (default: 3)
//   - RECOMMEND_REQUEST_TIMEOUT: Deadline for one recommendation request (default: 10s)
//   - RECOMMEND_DIVERSITY_WARMUP: Items accepted before domain diversity applies (default: 3)
//   - RECOMMEND_DIVERSITY_RELAXED_TAIL: Trailing slots exempt from diversity (default: 2)
type RecommendConfig struct {
	DefaultLimit         int           `koanf:"default_limit"`
	MaxLimit             int           `koanf:"max_limit"`
	OverFetchFactor      int           `koanf:"over_fetch_factor"`
	RequestTimeout       time.Duration `koanf:"request_timeout"`
	DiversityWarmup      int           `koanf:"diversity_warmup"`
	DiversityRelaxedTail int           `koanf:"diversity_relaxed_tail"`
}

// BreakerConfig holds circuit breaker settings for the catalog stores.
type BreakerConfig struct {
	Enabled          bool          `koanf:"enabled"`
	MaxRequests      uint32        `koanf:"max_requests"`      // Requests allowed in half-open state
	Interval         time.Duration `koanf:"interval"`          // Closed-state counter reset period
	Timeout          time.Duration `koanf:"timeout"`           // Open-state duration before half-open
	FailureThreshold uint32        `koanf:"failure_threshold"` // Consecutive failures that open the circuit
}

// SecurityConfig holds CORS and rate limiting settings
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`

	// UserRateLimitPerMinute bounds recommendation requests per user_id.
	// Zero disables the per-user limiter.
	UserRateLimitPerMinute int `koanf:"user_rate_limit_per_minute"`
}

// CatalogConfig holds NATS JetStream settings for catalog change events.
//
// Environment Variables:
//   - CATALOG_ENABLED: Enable the catalog event consumer (default: false)
//   - NATS_URL: NATS server URL (default: nats://127.0.0.1:4222)
//   - NATS_EMBEDDED: Run an embedded JetStream server (default: false)
//   - NATS_STORE_DIR: JetStream storage directory for the embedded server
//   - CATALOG_TOPIC: Subject catalog events are published on (default: catalog.events)
//   - CATALOG_DEDUPE_PATH: Badger directory for processed event IDs (empty = in-memory)
//   - CATALOG_MAX_EVENTS_PER_SECOND: Apply rate for catalog writes (0 = unlimited)
type CatalogConfig struct {
	Enabled            bool          `koanf:"enabled"`
	URL                string        `koanf:"url"`
	EmbeddedServer     bool          `koanf:"embedded_server"`
	StoreDir           string        `koanf:"store_dir"`
	MaxMemory          int64         `koanf:"max_memory"`
	MaxStore           int64         `koanf:"max_store"`
	Topic              string        `koanf:"topic"`
	StreamName         string        `koanf:"stream_name"`
	DurableName        string        `koanf:"durable_name"`
	QueueGroup         string        `koanf:"queue_group"`
	SubscribersCount   int           `koanf:"subscribers_count"`
	MaxDeliver         int           `koanf:"max_deliver"`
	AckWait            time.Duration `koanf:"ack_wait"`
	DedupePath         string        `koanf:"dedupe_path"`
	DedupeTTL          time.Duration `koanf:"dedupe_ttl"`
	DedupeCapacity     int           `koanf:"dedupe_capacity"`
	MaxEventsPerSecond float64       `koanf:"max_events_per_second"`
}

// Load reads configuration using the default search paths.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
