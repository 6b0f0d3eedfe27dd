// Curio - Learning Resource Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

/*
Package api provides the HTTP surface of Curio.

Routes:

  - GET /api/recommendations?user_id=<id>&limit=<n>: ranked learning resources
  - GET /api/health: database ping, circuit breaker states, route latency
  - GET /metrics: Prometheus exposition
  - GET /swagger/*: OpenAPI documentation

Every response body is JSON encoded with goccy/go-json. Errors always have
the shape {"error": "<message>"}; the underlying error is logged with the
request ID and never sent to the client. A request for a known path with
another method gets 405, an unknown path gets 404.

The endpoint is read-only. Catalog changes arrive through the catalog
package, never through HTTP.

Usage:

	handler := api.NewHandler(engine, db, breakers, perfMon)
	router := api.NewRouter(handler, &cfg.Security)
	srv := &http.Server{Addr: addr, Handler: router.SetupChi()}
*/
package api
