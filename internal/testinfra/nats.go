// Curio - Learning Resource Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

//go:build integration

package testinfra

import (
	"context"
	"fmt"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	// DefaultNATSImage is the official NATS server image.
	DefaultNATSImage = "nats:2.12-alpine"

	// DefaultNATSPort is the NATS client port.
	DefaultNATSPort = "4222"
)

// NATSContainer is a running JetStream-enabled NATS server.
type NATSContainer struct {
	testcontainers.Container
	URL string
}

// NATSOption configures the NATS container.
type NATSOption func(*natsConfig)

type natsConfig struct {
	image        string
	startTimeout time.Duration
	logger       *ContainerLogger
}

// WithNATSImage sets a custom NATS image.
func WithNATSImage(image string) NATSOption {
	return func(c *natsConfig) {
		c.image = image
	}
}

// WithStartTimeout sets the timeout for waiting for the server to start.
func WithStartTimeout(timeout time.Duration) NATSOption {
	return func(c *natsConfig) {
		c.startTimeout = timeout
	}
}

// WithLogger routes testcontainers output to logger.
func WithLogger(logger *ContainerLogger) NATSOption {
	return func(c *natsConfig) {
		c.logger = logger
	}
}

// NewNATSContainer starts nats-server with JetStream enabled.
//
//	nats, err := testinfra.NewNATSContainer(ctx, testinfra.WithLogger(testinfra.NewContainerLogger(t)))
//	if err != nil {
//	    t.Fatal(err)
//	}
//	testinfra.CleanupContainer(t, nats)
//	cfg.URL = nats.URL
func NewNATSContainer(ctx context.Context, opts ...NATSOption) (*NATSContainer, error) {
	cfg := &natsConfig{
		image:        DefaultNATSImage,
		startTimeout: 60 * time.Second,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	req := testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        cfg.image,
			ExposedPorts: []string{DefaultNATSPort + "/tcp"},
			Cmd:          []string{"-js"},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort(DefaultNATSPort+"/tcp"),
				wait.ForLog("Server is ready"),
			).WithStartupTimeout(cfg.startTimeout),
		},
		Started: true,
	}
	if cfg.logger != nil {
		req.Logger = cfg.logger
	}

	container, err := testcontainers.GenericContainer(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create nats container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		container.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get container host: %w", err)
	}

	port, err := container.MappedPort(ctx, DefaultNATSPort)
	if err != nil {
		container.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get mapped port: %w", err)
	}

	return &NATSContainer{
		Container: container,
		URL:       fmt.Sprintf("nats://%s:%s", host, port.Port()),
	}, nil
}
