// Curio - Learning Resource Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package services

import (
	"context"
	"fmt"
	"io"
)

// ConsumerRunner matches *catalog.Consumer.
type ConsumerRunner interface {
	Run(ctx context.Context) error
}

// CatalogConsumerService runs the catalog event consumer under supervision.
// When Run fails (broker unreachable, subscription lost) suture restarts it
// with backoff. On shutdown the subscriber is closed so in-flight messages
// are released back to JetStream.
type CatalogConsumerService struct {
	consumer   ConsumerRunner
	subscriber io.Closer
	name       string
}

// NewCatalogConsumerService wraps consumer. subscriber may be nil.
func NewCatalogConsumerService(consumer ConsumerRunner, subscriber io.Closer) *CatalogConsumerService {
	return &CatalogConsumerService{
		consumer:   consumer,
		subscriber: subscriber,
		name:       "catalog-consumer",
	}
}

// Serve implements suture.Service.
func (s *CatalogConsumerService) Serve(ctx context.Context) error {
	err := s.consumer.Run(ctx)

	if ctx.Err() != nil {
		if s.subscriber != nil {
			if closeErr := s.subscriber.Close(); closeErr != nil {
				return fmt.Errorf("close catalog subscriber: %w", closeErr)
			}
		}
		return ctx.Err()
	}

	if err != nil {
		return fmt.Errorf("catalog consumer failed: %w", err)
	}
	return fmt.Errorf("catalog consumer stopped: subscription closed")
}

// String implements fmt.Stringer.
func (s *CatalogConsumerService) String() string {
	return s.name
}
