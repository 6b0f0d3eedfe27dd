// Curio - Learning Resource Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

/*
Package main is the entry point for the Curio server.

Curio serves ranked learning-resource recommendations over HTTP. A request
resolves an optional learner profile, fetches an over-sized candidate set
from DuckDB, scores every candidate and greedily diversifies the result
across domains before truncating it to the requested limit.

# Application Architecture

The server runs under a Suture v4 supervisor tree:

	RootSupervisor ("curio")
	├── DataSupervisor ("data-layer")
	│   └── Embedded NATS JetStream server (optional)
	├── MessagingSupervisor ("messaging-layer")
	│   └── Catalog consumer (optional)
	└── APISupervisor ("api-layer")
	    └── HTTP Server

Component initialization order:

 1. Configuration: Koanf v2 (defaults, optional YAML file, environment)
 2. Logging: zerolog with JSON or console output
 3. Database: DuckDB, optionally seeded from a YAML catalog file
 4. Engine: profile resolver, candidate fetcher, scorer, domain diversifier,
    guarded by gobreaker circuit breakers
 5. Catalog ingest: Watermill subscriber over NATS JetStream (optional)
 6. HTTP Server: Chi router with CORS, rate limiting and Prometheus metrics

# Configuration

Settings are layered, highest priority first:
  - Environment variables (HTTP_PORT, DUCKDB_PATH, NATS_URL, ...)
  - The YAML file named by CONFIG_PATH, or ./config.yaml
  - Built-in defaults

# Signal Handling

SIGINT and SIGTERM cancel the root context. The supervisor drains the HTTP
server and the catalog consumer, then the dedupe ledger and the database
are closed.

# Example Usage

	export CATALOG_SEED_FILE=./catalog.yaml
	./curio

With catalog ingest over an embedded broker:

	export CATALOG_ENABLED=true
	export NATS_EMBEDDED=true
	export NATS_STORE_DIR=/var/lib/curio/jetstream
	./curio
*/
package main
