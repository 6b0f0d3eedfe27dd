// Curio - Learning Resource Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

/*
Package supervisor runs Curio's long-lived services under a suture v4 tree.

	RootSupervisor ("curio")
	├── DataSupervisor ("data-layer")
	│   └── EmbeddedNATSService (catalog.embedded_server)
	├── MessagingSupervisor ("messaging-layer")
	│   └── CatalogConsumerService (catalog.enabled)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services are restarted with backoff; after FailureThreshold
failures within the decay window the layer backs off for FailureBackoff.
Supervisor events are logged through sutureslog into the zerolog stream
(see logging.NewSlogLogger).

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddAPIService(services.NewHTTPServerService(srv, cfg.Server.ShutdownTimeout))
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    return err
	}
*/
package supervisor
