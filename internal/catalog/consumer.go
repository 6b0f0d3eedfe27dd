// Curio - Learning Resource Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/curio/internal/metrics"
	"github.com/tomtom215/curio/internal/validation"
)

// Consumer applies catalog events from a Watermill subscriber to a Store.
//
// Message outcomes:
//   - applied or duplicate: ack
//   - undecodable or failing validation: ack and count as invalid
//   - storage failure: nack, so the broker redelivers up to its max_deliver
type Consumer struct {
	subscriber message.Subscriber
	topic      string
	store      Store
	ledger     Ledger
	limiter    *rate.Limiter
	logger     zerolog.Logger
}

// ConsumerConfig configures a Consumer.
type ConsumerConfig struct {
	Topic string

	// MaxEventsPerSecond bounds the apply rate. Zero or negative disables it.
	MaxEventsPerSecond float64
}

// NewConsumer wires a consumer. A nil ledger disables deduplication.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewConsumer(sub message.Subscriber, store Store, ledger Ledger, cfg ConsumerConfig, logger zerolog.Logger) (*Consumer, error) {
	if sub == nil {
		return nil, errors.New("catalog consumer: subscriber required")
	}
	if store == nil {
		return nil, errors.New("catalog consumer: store required")
	}
	if cfg.Topic == "" {
		return nil, errors.New("catalog consumer: topic required")
	}

	var limiter *rate.Limiter
	if cfg.MaxEventsPerSecond > 0 {
		burst := int(cfg.MaxEventsPerSecond)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.MaxEventsPerSecond), burst)
	}

	return &Consumer{
		subscriber: sub,
		topic:      cfg.Topic,
		store:      store,
		ledger:     ledger,
		limiter:    limiter,
		logger:     logger,
	}, nil
}

// Run consumes until ctx is canceled or the subscription channel closes.
func (c *Consumer) Run(ctx context.Context) error {
	messages, err := c.subscriber.Subscribe(ctx, c.topic)
	if err != nil {
		return fmt.Errorf("subscribe to %s: %w", c.topic, err)
	}

	c.logger.Info().Str("topic", c.topic).Msg("Catalog consumer started")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-messages:
			if !ok {
				c.logger.Info().Msg("Catalog subscription closed")
				return nil
			}
			c.process(ctx, msg)
		}
	}
}

// process acks or nacks msg according to the outcome of handle.
func (c *Consumer) process(ctx context.Context, msg *message.Message) {
	if err := c.handle(ctx, msg); err != nil {
		c.logger.Error().Err(err).
			Str("message_uuid", msg.UUID).
			Msg("Catalog event failed, requesting redelivery")
		msg.Nack()
		return
	}
	msg.Ack()
}

// handle returns an error only for failures worth redelivering.
func (c *Consumer) handle(ctx context.Context, msg *message.Message) error {
	event, err := UnmarshalEvent(msg.Payload)
	if err != nil {
		metrics.RecordCatalogEvent("unknown", metrics.CatalogResultInvalid)
		c.logger.Warn().Err(err).
			Str("message_uuid", msg.UUID).
			Msg("Dropping invalid catalog event")
		return nil
	}

	eventType := string(event.Type)
	log := c.logger.With().
		Str("event_id", event.EventID).
		Str("event_type", eventType).
		Str("subject", event.Subject()).
		Logger()

	if c.ledger != nil {
		seen, err := c.ledger.Seen(ctx, event.EventID)
		if err != nil {
			metrics.RecordCatalogEvent(eventType, metrics.CatalogResultFailed)
			return err
		}
		if seen {
			metrics.RecordCatalogEvent(eventType, metrics.CatalogResultDuplicate)
			log.Debug().Msg("Skipping duplicate catalog event")
			return nil
		}
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}
	}

	start := time.Now()
	err = Apply(ctx, c.store, event)
	metrics.CatalogApplyDuration.Observe(time.Since(start).Seconds())

	var verr *validation.RecordValidationError
	switch {
	case err == nil, errors.Is(err, ErrNotFound):
		// a delete of a missing record is already in the desired state
	case errors.Is(err, ErrInvalidEvent), errors.As(err, &verr):
		metrics.RecordCatalogEvent(eventType, metrics.CatalogResultInvalid)
		log.Warn().Err(err).Msg("Dropping catalog event rejected by storage")
		return nil
	default:
		metrics.RecordCatalogEvent(eventType, metrics.CatalogResultFailed)
		return err
	}

	if c.ledger != nil {
		if err := c.ledger.Mark(ctx, event.EventID); err != nil {
			log.Warn().Err(err).Msg("Applied event could not be recorded in ledger")
		}
	}

	metrics.RecordCatalogEvent(eventType, metrics.CatalogResultApplied)
	log.Debug().Msg("Catalog event applied")
	return nil
}
