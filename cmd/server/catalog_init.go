// Curio - Learning Resource Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/curio/internal/app"
	"github.com/tomtom215/curio/internal/catalog"
	"github.com/tomtom215/curio/internal/config"
	"github.com/tomtom215/curio/internal/logging"
	"github.com/tomtom215/curio/internal/supervisor"
	"github.com/tomtom215/curio/internal/supervisor/services"
)

const streamSetupTimeout = 30 * time.Second

// catalogIngest holds the catalog ingest resources that outlive the
// supervisor tree.
type catalogIngest struct {
	ledger catalog.Ledger
}

// Close releases the dedupe ledger. Safe on a nil receiver.
func (c *catalogIngest) Close() {
	if c == nil || c.ledger == nil {
		return
	}
	if err := c.ledger.Close(); err != nil {
		logging.Error().Err(err).Msg("Error closing catalog dedupe ledger")
	}
}

// initCatalogIngest wires the embedded NATS server (when configured) into the
// data layer and the catalog consumer into the messaging layer. It returns
// nil when catalog ingest is disabled.
func initCatalogIngest(ctx context.Context, cfg *config.Config, store catalog.Store, tree *supervisor.SupervisorTree) (*catalogIngest, error) {
	if !cfg.Catalog.Enabled {
		logging.Info().Msg("Catalog ingest disabled (CATALOG_ENABLED=false)")
		return nil, nil
	}

	catCfg := cfg.Catalog
	wmLogger := logging.NewWatermillLogger()

	if catCfg.EmbeddedServer {
		opts, err := catalog.ServerOptions(&catCfg)
		if err != nil {
			return nil, fmt.Errorf("embedded NATS options: %w", err)
		}
		srv, err := catalog.NewEmbeddedServer(opts)
		if err != nil {
			return nil, err
		}
		catCfg.URL = srv.ClientURL()
		tree.AddDataService(services.NewEmbeddedNATSService(srv, cfg.Server.ShutdownTimeout))
		logging.Info().
			Str("url", catCfg.URL).
			Str("store_dir", catCfg.StoreDir).
			Msg("Embedded NATS JetStream server started")
	}

	setupCtx, cancel := context.WithTimeout(ctx, streamSetupTimeout)
	defer cancel()
	if err := catalog.EnsureStream(setupCtx, &catCfg, wmLogger); err != nil {
		return nil, err
	}

	ledger, err := app.OpenLedger(&catCfg, logging.WithComponent("catalog-ledger"))
	if err != nil {
		return nil, err
	}

	subscriber, err := catalog.NewSubscriber(&catCfg, wmLogger)
	if err != nil {
		_ = ledger.Close()
		return nil, err
	}

	consumer, err := catalog.NewConsumer(subscriber, store, ledger, catalog.ConsumerConfig{
		Topic:              catCfg.Topic,
		MaxEventsPerSecond: catCfg.MaxEventsPerSecond,
	}, logging.WithComponent("catalog-consumer"))
	if err != nil {
		_ = subscriber.Close()
		_ = ledger.Close()
		return nil, err
	}

	tree.AddMessagingService(services.NewCatalogConsumerService(consumer, subscriber))
	if mem, ok := ledger.(*catalog.MemoryLedger); ok {
		tree.AddMessagingService(services.NewSweepService("catalog-ledger-sweep", mem, time.Minute))
	}
	logging.Info().
		Str("url", catCfg.URL).
		Str("topic", catCfg.Topic).
		Str("stream", catCfg.StreamName).
		Msg("Catalog consumer added to supervisor tree (messaging layer)")

	return &catalogIngest{ledger: ledger}, nil
}
