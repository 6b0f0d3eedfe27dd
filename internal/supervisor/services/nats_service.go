// Curio - Learning Resource Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/thejerf/suture/v4"
)

// ErrServerStopped is returned when the embedded server stops on its own.
var ErrServerStopped = errors.New("embedded NATS server stopped")

// EmbeddedServer matches the lifecycle of *catalog.EmbeddedServer.
type EmbeddedServer interface {
	Shutdown(ctx context.Context) error
	IsRunning() bool
}

// EmbeddedNATSService owns the shutdown of an embedded NATS server that was
// started before the tree. The server is started eagerly so the catalog
// stream can be provisioned before the consumer subscribes.
//
// A server cannot be restarted in place, so a server that dies on its own
// terminates the service with suture.ErrDoNotRestart after logging through
// the event hook.
type EmbeddedNATSService struct {
	server          EmbeddedServer
	shutdownTimeout time.Duration
	pollInterval    time.Duration
	name            string
}

// NewEmbeddedNATSService creates a service wrapper for server.
func NewEmbeddedNATSService(server EmbeddedServer, shutdownTimeout time.Duration) *EmbeddedNATSService {
	if shutdownTimeout <= 0 {
		shutdownTimeout = defaultShutdownTimeout
	}
	return &EmbeddedNATSService{
		server:          server,
		shutdownTimeout: shutdownTimeout,
		pollInterval:    5 * time.Second,
		name:            "nats-server",
	}
}

// Serve implements suture.Service.
func (s *EmbeddedNATSService) Serve(ctx context.Context) error {
	if !s.server.IsRunning() {
		return fmt.Errorf("%w: %w", suture.ErrDoNotRestart, ErrServerStopped)
	}

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
			defer cancel()
			if err := s.server.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("NATS server shutdown failed: %w", err)
			}
			return ctx.Err()

		case <-ticker.C:
			if !s.server.IsRunning() {
				return fmt.Errorf("%w: %w", suture.ErrDoNotRestart, ErrServerStopped)
			}
		}
	}
}

// String implements fmt.Stringer.
func (s *EmbeddedNATSService) String() string {
	return s.name
}
