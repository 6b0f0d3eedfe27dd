// Curio - Learning Resource Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

/*
Package config provides centralized configuration management for Curio.

Configuration is layered with Koanf v2: struct defaults first, then an optional
YAML file, then environment variables. Later layers win.

# Configuration Files

The first existing file is used:

  - $CONFIG_PATH
  - config.yaml, config.yml
  - /etc/curio/config.yaml, /etc/curio/config.yml

Example config.yaml:

	server:
	  port: 8080
	  environment: production
	database:
	  path: /data/curio.duckdb
	  seed_file: /etc/curio/catalog.yaml
	recommend:
	  default_limit: 10
	  max_limit: 50
	security:
	  cors_origins: ["https://learn.example.com"]
	catalog:
	  enabled: true
	  url: nats://nats:4222

# Environment Variables

Only mapped variables are read. The most common:

Server:
  - HTTP_HOST, HTTP_PORT (default: 0.0.0.0:8080)
  - HTTP_TIMEOUT, HTTP_SHUTDOWN_TIMEOUT
  - ENVIRONMENT: development, staging, production

Database:
  - DUCKDB_PATH (default: /data/curio.duckdb)
  - DUCKDB_MAX_MEMORY, DUCKDB_THREADS, DUCKDB_QUERY_TIMEOUT
  - CATALOG_SEED_FILE: YAML catalog loaded at startup

Recommendation:
  - RECOMMEND_DEFAULT_LIMIT, RECOMMEND_MAX_LIMIT
  - RECOMMEND_OVER_FETCH_FACTOR, RECOMMEND_REQUEST_TIMEOUT

Security:
  - CORS_ORIGINS: comma-separated list
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT
  - USER_RATE_LIMIT_PER_MINUTE

Catalog ingest:
  - CATALOG_ENABLED, NATS_URL, NATS_EMBEDDED, NATS_STORE_DIR
  - CATALOG_TOPIC, CATALOG_DEDUPE_PATH, CATALOG_MAX_EVENTS_PER_SECOND

Logging:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

# Validation

Load fails fast with a message naming the offending variable. Wildcard CORS
is rejected in production.

# Thread Safety

The Config struct is immutable after Load() returns.
*/
package config
