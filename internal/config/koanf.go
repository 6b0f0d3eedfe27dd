// Curio - Learning Resource Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/curio/config.yaml",
	"/etc/curio/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all sensible default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Environment:     "development",
		},
		Database: DatabaseConfig{
			Path:         "/data/curio.duckdb",
			MaxMemory:    "1GB",
			Threads:      0, // 0 = use runtime.NumCPU()
			QueryTimeout: 5 * time.Second,
			SeedFile:     "",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Recommend: RecommendConfig{
			DefaultLimit:         10,
			MaxLimit:             50,
			OverFetchFactor:      3,
			RequestTimeout:       10 * time.Second,
			DiversityWarmup:      3,
			DiversityRelaxedTail: 2,
		},
		Breaker: BreakerConfig{
			Enabled:          true,
			MaxRequests:      3,
			Interval:         time.Minute,
			Timeout:          30 * time.Second,
			FailureThreshold: 5,
		},
		Security: SecurityConfig{
			CORSOrigins:            []string{"*"},
			RateLimitReqs:          100,
			RateLimitWindow:        time.Minute,
			RateLimitDisabled:      false,
			UserRateLimitPerMinute: 60,
		},
		Catalog: CatalogConfig{
			Enabled:            false,
			URL:                "nats://127.0.0.1:4222",
			EmbeddedServer:     false,
			StoreDir:           "/data/nats/jetstream",
			MaxMemory:          256 << 20, // 256MB
			MaxStore:           1 << 30,   // 1GB
			Topic:              "catalog.events",
			StreamName:         "CATALOG",
			DurableName:        "curio-catalog",
			QueueGroup:         "curio",
			SubscribersCount:   1,
			MaxDeliver:         5,
			AckWait:            30 * time.Second,
			DedupePath:         "",
			DedupeTTL:          24 * time.Hour,
			DedupeCapacity:     100000,
			MaxEventsPerSecond: 200,
		},
	}
}

// Defaults returns a copy of the built-in configuration.
func Defaults() *Config {
	return defaultConfig()
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in sensible defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
func LoadWithKoanf() (*Config, error) {
	return LoadFromFile(findConfigFile())
}

// LoadFromFile loads configuration like LoadWithKoanf but reads the YAML
// layer from path. An empty path skips the file layer.
func LoadFromFile(path string) (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// DUCKDB_PATH -> database.path, NATS_URL -> catalog.url
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars come in as strings, but the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to koanf paths.
var envMappings = map[string]string{
	// Server mappings
	"http_port":             "server.port",
	"http_host":             "server.host",
	"http_timeout":          "server.timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"environment":           "server.environment",

	// Database mappings
	"duckdb_path":          "database.path",
	"duckdb_max_memory":    "database.max_memory",
	"duckdb_threads":       "database.threads",
	"duckdb_query_timeout": "database.query_timeout",
	"catalog_seed_file":    "database.seed_file",

	// Logging mappings
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Recommendation mappings
	"recommend_default_limit":          "recommend.default_limit",
	"recommend_max_limit":              "recommend.max_limit",
	"recommend_over_fetch_factor":      "recommend.over_fetch_factor",
	"recommend_request_timeout":        "recommend.request_timeout",
	"recommend_diversity_warmup":       "recommend.diversity_warmup",
	"recommend_diversity_relaxed_tail": "recommend.diversity_relaxed_tail",

	// Circuit breaker mappings
	"breaker_enabled":           "breaker.enabled",
	"breaker_max_requests":      "breaker.max_requests",
	"breaker_interval":          "breaker.interval",
	"breaker_timeout":           "breaker.timeout",
	"breaker_failure_threshold": "breaker.failure_threshold",

	// Security mappings
	"cors_origins":               "security.cors_origins",
	"rate_limit_requests":        "security.rate_limit_reqs",
	"rate_limit_window":          "security.rate_limit_window",
	"disable_rate_limit":         "security.rate_limit_disabled",
	"user_rate_limit_per_minute": "security.user_rate_limit_per_minute",

	// Catalog ingest mappings
	"catalog_enabled":               "catalog.enabled",
	"nats_url":                      "catalog.url",
	"nats_embedded":                 "catalog.embedded_server",
	"nats_store_dir":                "catalog.store_dir",
	"nats_max_memory":               "catalog.max_memory",
	"nats_max_store":                "catalog.max_store",
	"catalog_topic":                 "catalog.topic",
	"catalog_stream_name":           "catalog.stream_name",
	"catalog_durable_name":          "catalog.durable_name",
	"catalog_queue_group":           "catalog.queue_group",
	"catalog_subscribers":           "catalog.subscribers_count",
	"catalog_max_deliver":           "catalog.max_deliver",
	"catalog_ack_wait":              "catalog.ack_wait",
	"catalog_dedupe_path":           "catalog.dedupe_path",
	"catalog_dedupe_ttl":            "catalog.dedupe_ttl",
	"catalog_dedupe_capacity":       "catalog.dedupe_capacity",
	"catalog_max_events_per_second": "catalog.max_events_per_second",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - DUCKDB_PATH -> database.path
//   - HTTP_PORT -> server.port
//   - NATS_URL -> catalog.url
//   - RECOMMEND_MAX_LIMIT -> recommend.max_limit
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}

	// Unmapped keys are skipped so unrelated environment variables
	// never leak into the configuration.
	return ""
}
