// Curio - Learning Resource Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package catalog

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/nats-io/nats-server/v2/server"

	"github.com/tomtom215/curio/internal/config"
)

const readyTimeout = 30 * time.Second

// EmbeddedServer runs a single-node NATS JetStream server inside the Curio
// process for deployments without an external broker.
type EmbeddedServer struct {
	server    *server.Server
	clientURL string
}

// ServerOptions derives nats-server options from the catalog config. The
// server listens on the host and port of cfg.URL.
func ServerOptions(cfg *config.CatalogConfig) (*server.Options, error) {
	host, port, err := hostPort(cfg.URL)
	if err != nil {
		return nil, err
	}
	return &server.Options{
		ServerName:         "curio-catalog",
		Host:               host,
		Port:               port,
		JetStream:          true,
		StoreDir:           cfg.StoreDir,
		JetStreamMaxMemory: cfg.MaxMemory,
		JetStreamMaxStore:  cfg.MaxStore,
		MaxPayload:         1 << 20,
		NoSigs:             true,
	}, nil
}

// NewEmbeddedServer starts the server and waits until it accepts clients.
func NewEmbeddedServer(opts *server.Options) (*EmbeddedServer, error) {
	ns, err := server.NewServer(opts)
	if err != nil {
		return nil, fmt.Errorf("create NATS server: %w", err)
	}
	ns.ConfigureLogger()

	go ns.Start()

	if !ns.ReadyForConnections(readyTimeout) {
		ns.Shutdown()
		return nil, fmt.Errorf("NATS server not ready within %s", readyTimeout)
	}

	return &EmbeddedServer{server: ns, clientURL: ns.ClientURL()}, nil
}

// ClientURL returns the connection URL for clients.
func (s *EmbeddedServer) ClientURL() string {
	return s.clientURL
}

// Shutdown stops the server, giving up waiting when ctx ends.
func (s *EmbeddedServer) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.server.Shutdown()
		s.server.WaitForShutdown()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// IsRunning returns server health status.
func (s *EmbeddedServer) IsRunning() bool {
	return s.server.Running()
}

// JetStreamEnabled returns whether JetStream is enabled.
func (s *EmbeddedServer) JetStreamEnabled() bool {
	return s.server.JetStreamEnabled()
}

func hostPort(rawURL string) (string, int, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", 0, fmt.Errorf("parse NATS URL %q: %w", rawURL, err)
	}
	host, portStr, err := net.SplitHostPort(u.Host)
	if err != nil {
		return "", 0, fmt.Errorf("NATS URL %q needs host:port: %w", rawURL, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return "", 0, fmt.Errorf("NATS URL %q has invalid port: %w", rawURL, err)
	}
	return host, port, nil
}
