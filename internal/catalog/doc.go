// Curio - Learning Resource Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

/*
Package catalog keeps the DuckDB catalog in sync with the content platform.

The recommendation endpoint is read-only. Resources and profiles reach the
database through this package, either from a YAML file at startup (and via
curioctl seed) or as change events on NATS JetStream.

# Events

Every change travels in the same JSON envelope:

	{
	  "event_id": "6f1c...",
	  "type": "resource.upserted",
	  "occurred_at": "2026-03-01T12:00:00Z",
	  "resource": {"id": "r1", "title": "...", "url": "...", "quality_score": 0.9}
	}

Types are resource.upserted, resource.deleted, profile.upserted and
profile.deleted. Deletes carry "id" instead of a payload.

# Consumer

Consumer reads from any Watermill message.Subscriber. In production that is
the watermill-nats JetStream subscriber from NewSubscriber; tests use the
in-process gochannel pub/sub. Per message:

  - invalid JSON or failing validation: acked and counted, never redelivered
  - event_id already in the Ledger: acked as duplicate
  - apply succeeded (or deleted record was already gone): acked, ID recorded
  - storage error: nacked for redelivery

The apply rate is bounded by a golang.org/x/time/rate limiter.

# Ledger

BadgerLedger stores processed event IDs with Badger's native TTL and
survives restarts. MemoryLedger uses the cache package's TTL LRU and is the
default when catalog.dedupe_path is empty.

# Broker

EnsureStream provisions the CATALOG stream with a two minute duplicate
window, so re-publishing the same event_id is dropped by the broker as well.
EmbeddedServer runs nats-server in-process for single-node deployments.
*/
package catalog
