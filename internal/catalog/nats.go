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

	"github.com/ThreeDotsLabs/watermill"
	wmNats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	natsgo "github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/tomtom215/curio/internal/config"
)

const (
	maxReconnects   = -1
	reconnectWait   = 2 * time.Second
	closeTimeout    = 30 * time.Second
	duplicateWindow = 2 * time.Minute
	streamMaxAge    = 7 * 24 * time.Hour
)

// connectionOptions are shared by the publisher, the subscriber and
// EnsureStream.
func connectionOptions(name string, logger watermill.LoggerAdapter) []natsgo.Option {
	return []natsgo.Option{
		natsgo.Name(name),
		natsgo.RetryOnFailedConnect(true),
		natsgo.MaxReconnects(maxReconnects),
		natsgo.ReconnectWait(reconnectWait),
		natsgo.DisconnectErrHandler(func(_ *natsgo.Conn, err error) {
			if err != nil {
				logger.Error("NATS disconnected", err, watermill.LogFields{"client": name})
			}
		}),
		natsgo.ReconnectHandler(func(nc *natsgo.Conn) {
			logger.Info("NATS reconnected", watermill.LogFields{
				"client": name,
				"url":    nc.ConnectedUrl(),
			})
		}),
	}
}

// NewSubscriber creates a durable JetStream queue subscriber bound to the
// catalog stream. EnsureStream must have run first.
func NewSubscriber(cfg *config.CatalogConfig, logger watermill.LoggerAdapter) (message.Subscriber, error) {
	subOpts := []natsgo.SubOpt{
		natsgo.BindStream(cfg.StreamName),
		natsgo.MaxDeliver(cfg.MaxDeliver),
		natsgo.AckWait(cfg.AckWait),
		natsgo.DeliverAll(),
		natsgo.ManualAck(),
	}

	sub, err := wmNats.NewSubscriber(wmNats.SubscriberConfig{
		URL:              cfg.URL,
		QueueGroupPrefix: cfg.QueueGroup,
		SubscribersCount: cfg.SubscribersCount,
		AckWaitTimeout:   cfg.AckWait,
		CloseTimeout:     closeTimeout,
		NatsOptions:      connectionOptions("curio-catalog-subscriber", logger),
		Unmarshaler:      &wmNats.NATSMarshaler{},
		JetStream: wmNats.JetStreamConfig{
			AutoProvision:    false,
			AckAsync:         false,
			SubscribeOptions: subOpts,
			DurablePrefix:    cfg.DurableName,
		},
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("create catalog subscriber: %w", err)
	}
	return sub, nil
}

// NewNATSPublisher creates a JetStream publisher that sets Nats-Msg-Id so
// the stream drops duplicate publishes inside its dedupe window.
func NewNATSPublisher(cfg *config.CatalogConfig, logger watermill.LoggerAdapter) (message.Publisher, error) {
	pub, err := wmNats.NewPublisher(wmNats.PublisherConfig{
		URL:         cfg.URL,
		NatsOptions: connectionOptions("curio-catalog-publisher", logger),
		Marshaler:   &wmNats.NATSMarshaler{},
		JetStream: wmNats.JetStreamConfig{
			AutoProvision: false,
			TrackMsgId:    true,
			PublishOptions: []natsgo.PubOpt{
				natsgo.RetryAttempts(3),
				natsgo.RetryWait(100 * time.Millisecond),
			},
		},
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("create catalog publisher: %w", err)
	}
	return pub, nil
}

// StreamManager is the subset of jetstream.JetStream EnsureStream needs.
type StreamManager interface {
	Stream(ctx context.Context, name string) (jetstream.Stream, error)
	CreateStream(ctx context.Context, cfg jetstream.StreamConfig) (jetstream.Stream, error)
	UpdateStream(ctx context.Context, cfg jetstream.StreamConfig) (jetstream.Stream, error)
}

// StreamConfig returns the JetStream stream definition for the catalog topic.
func StreamConfig(cfg *config.CatalogConfig) jetstream.StreamConfig {
	return jetstream.StreamConfig{
		Name:       cfg.StreamName,
		Subjects:   []string{cfg.Topic},
		Retention:  jetstream.LimitsPolicy,
		MaxAge:     streamMaxAge,
		Duplicates: duplicateWindow,
		Storage:    jetstream.FileStorage,
		Discard:    jetstream.DiscardOld,
	}
}

// EnsureStreamWith creates the catalog stream, or updates it when it exists.
// It is idempotent.
func EnsureStreamWith(ctx context.Context, js StreamManager, cfg *config.CatalogConfig) error {
	streamCfg := StreamConfig(cfg)

	_, err := js.Stream(ctx, streamCfg.Name)
	switch {
	case err == nil:
		if _, err := js.UpdateStream(ctx, streamCfg); err != nil {
			return fmt.Errorf("update stream %s: %w", streamCfg.Name, err)
		}
		return nil
	case errors.Is(err, jetstream.ErrStreamNotFound):
		if _, err := js.CreateStream(ctx, streamCfg); err != nil {
			return fmt.Errorf("create stream %s: %w", streamCfg.Name, err)
		}
		return nil
	default:
		return fmt.Errorf("check stream %s: %w", streamCfg.Name, err)
	}
}

// EnsureStream connects to cfg.URL and provisions the catalog stream.
func EnsureStream(ctx context.Context, cfg *config.CatalogConfig, logger watermill.LoggerAdapter) error {
	nc, err := natsgo.Connect(cfg.URL, connectionOptions("curio-catalog-admin", logger)...)
	if err != nil {
		return fmt.Errorf("connect to %s: %w", cfg.URL, err)
	}
	defer nc.Close()

	js, err := jetstream.New(nc)
	if err != nil {
		return fmt.Errorf("jetstream context: %w", err)
	}
	return EnsureStreamWith(ctx, js, cfg)
}
