// Curio - Learning Resource Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

/*
Package services provides suture.Service wrappers for Curio components.

Each wrapper translates a component lifecycle into suture's Serve(ctx) and
implements fmt.Stringer so supervisor events name the service.

  - HTTPServerService: ListenAndServe until canceled, then Shutdown with a
    timeout.
  - CatalogConsumerService: runs catalog.Consumer.Run; closes the Watermill
    subscriber on shutdown.
  - EmbeddedNATSService: owns the shutdown of an embedded JetStream server
    and stops supervision if the server dies.
  - SweepService: periodically drops expired entries from in-memory caches
    such as the per-user rate limiter and the memory dedupe ledger.
*/
package services
