// Curio - Learning Resource Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

/*
Package metrics provides Prometheus collectors for Curio.

All collectors are registered on the default registry through promauto and
exposed at /metrics by the API router.

# Available Metrics

API:
  - curio_api_requests_total{method,endpoint,status}
  - curio_api_request_duration_seconds{method,endpoint}
  - curio_api_active_requests
  - curio_api_rate_limit_hits_total{limiter}

Database:
  - curio_db_query_duration_seconds{operation,table}
  - curio_db_query_errors_total{operation,table,error_type}
  - curio_db_invalid_rows_total{table}

Recommendations:
  - curio_recommend_requests_total{mode}
  - curio_recommend_errors_total{stage}
  - curio_recommend_candidates
  - curio_recommend_items
  - curio_recommend_duration_seconds{mode}
  - curio_recommend_profile_misses_total

Circuit breaker:
  - curio_circuit_breaker_state{name} (0=closed, 1=half-open, 2=open)
  - curio_circuit_breaker_requests_total{name,result}
  - curio_circuit_breaker_transitions_total{name,from,to}

Catalog ingest:
  - curio_catalog_events_total{type,result}
  - curio_catalog_apply_duration_seconds
  - curio_catalog_published_total{type}

# Usage

	start := time.Now()
	rows, err := db.QueryContext(ctx, query, args...)
	metrics.RecordDBQuery("fetch_candidates", "resources", time.Since(start), err)

Label values are bounded: error_type is classified into timeout, canceled
or other rather than carrying the error text.
*/
package metrics
