// Curio - Learning Resource Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

// Package testinfra provides container-backed infrastructure for integration tests.
//
// Everything here is behind the integration build tag and uses
// testcontainers-go, so the default `go test ./...` never needs Docker.
//
// # NATS Container
//
// NATSContainer runs the official nats image with JetStream enabled, which
// lets the catalog ingest path be exercised against a real broker rather
// than the in-process gochannel pub/sub:
//
//	func TestCatalogIngest(t *testing.T) {
//	    testinfra.SkipIfNoDocker(t)
//	    ctx := context.Background()
//	    nats, err := testinfra.NewNATSContainer(ctx)
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//	    testinfra.CleanupContainer(t, nats)
//
//	    cfg := config.Defaults().Catalog
//	    cfg.URL = nats.URL
//	    // EnsureStream, NewSubscriber, NewConsumer ...
//	}
//
// # Running
//
//	go test -tags integration ./internal/catalog/...
//
// Tests call SkipIfNoDocker first, so they skip rather than fail on machines
// without a Docker daemon.
package testinfra
