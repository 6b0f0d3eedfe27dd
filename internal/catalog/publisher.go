// Curio - Learning Resource Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	natsgo "github.com/nats-io/nats.go"

	"github.com/tomtom215/curio/internal/metrics"
)

// ErrPublisherClosed is returned by Publish after Close.
var ErrPublisherClosed = errors.New("catalog publisher is closed")

// Publisher sends catalog events on the catalog topic.
type Publisher struct {
	publisher message.Publisher
	topic     string

	mu     sync.RWMutex
	closed bool
}

// NewPublisher wraps a Watermill publisher.
func NewPublisher(pub message.Publisher, topic string) *Publisher {
	return &Publisher{publisher: pub, topic: topic}
}

// Publish validates and sends one event. The event ID doubles as the Watermill
// message UUID and the Nats-Msg-Id header.
func (p *Publisher) Publish(ctx context.Context, e *Event) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPublisherClosed
	}

	data, err := MarshalEvent(e)
	if err != nil {
		return err
	}

	msg := message.NewMessage(e.EventID, data)
	msg.SetContext(ctx)
	msg.Metadata.Set(natsgo.MsgIdHdr, e.EventID)
	msg.Metadata.Set("event_type", string(e.Type))

	if err := p.publisher.Publish(p.topic, msg); err != nil {
		return fmt.Errorf("publish %s %s: %w", e.Type, e.EventID, err)
	}
	metrics.CatalogPublished.WithLabelValues(string(e.Type)).Inc()
	return nil
}

// PublishAll sends events in order and stops at the first failure, returning
// how many were sent.
func (p *Publisher) PublishAll(ctx context.Context, events []*Event) (int, error) {
	for i, e := range events {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		if err := p.Publish(ctx, e); err != nil {
			return i, err
		}
	}
	return len(events), nil
}

// Close shuts down the underlying publisher.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	return p.publisher.Close()
}
