// Cinematch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package events

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	wmNats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	natsgo "github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/metrics"
)

// ErrBusClosed is returned when publishing on a closed bus.
var ErrBusClosed = errors.New("event bus closed")

// Metadata keys set on every published message.
const (
	MetadataEventType = "event_type"
	MetadataTitle     = "title"
	MetadataRequestID = "request_id"
)

// BusConfig selects the transport and topic.
type BusConfig struct {
	// NATSURL switches the bus to NATS when non-empty.
	NATSURL string

	Topic string

	// OutputChannelBuffer sizes the gochannel subscriber buffer.
	OutputChannelBuffer int64

	MaxReconnects int
	ReconnectWait time.Duration
	CloseTimeout  time.Duration
}

// DefaultBusConfig returns an in-process bus on DefaultTopic.
func DefaultBusConfig() BusConfig {
	return BusConfig{
		Topic:               DefaultTopic,
		OutputChannelBuffer: 256,
		MaxReconnects:       -1,
		ReconnectWait:       2 * time.Second,
		CloseTimeout:        10 * time.Second,
	}
}

// Bus owns a publisher and subscriber for the recommendation topic.
type Bus struct {
	publisher  message.Publisher
	subscriber message.Subscriber
	topic      string
	transport  string
	logger     zerolog.Logger

	mu     sync.RWMutex
	closed bool
}

// NewBus connects the configured transport. Zero fields in cfg take
// their DefaultBusConfig values.
func NewBus(cfg BusConfig, wmLogger watermill.LoggerAdapter) (*Bus, error) {
	cfg = withDefaults(cfg)
	if wmLogger == nil {
		wmLogger = logging.NewWatermillLogger()
	}

	b := &Bus{
		topic:  cfg.Topic,
		logger: logging.WithComponent("events"),
	}

	if cfg.NATSURL == "" {
		ch := gochannel.NewGoChannel(gochannel.Config{
			OutputChannelBuffer: cfg.OutputChannelBuffer,
		}, wmLogger)
		b.publisher = ch
		b.subscriber = ch
		b.transport = "gochannel"
		return b, nil
	}

	natsOpts := natsOptions(cfg, wmLogger)

	pub, err := wmNats.NewPublisher(wmNats.PublisherConfig{
		URL:         cfg.NATSURL,
		NatsOptions: natsOpts,
		Marshaler:   &wmNats.NATSMarshaler{},
		JetStream:   wmNats.JetStreamConfig{Disabled: true},
	}, wmLogger)
	if err != nil {
		return nil, fmt.Errorf("create nats publisher: %w", err)
	}

	// No queue group: every replica sees every event and keeps a full tally.
	sub, err := wmNats.NewSubscriber(wmNats.SubscriberConfig{
		URL:              cfg.NATSURL,
		SubscribersCount: 1,
		CloseTimeout:     cfg.CloseTimeout,
		NatsOptions:      natsOpts,
		Unmarshaler:      &wmNats.NATSMarshaler{},
		JetStream:        wmNats.JetStreamConfig{Disabled: true},
	}, wmLogger)
	if err != nil {
		_ = pub.Close()
		return nil, fmt.Errorf("create nats subscriber: %w", err)
	}

	b.publisher = pub
	b.subscriber = sub
	b.transport = "nats"
	return b, nil
}

func withDefaults(cfg BusConfig) BusConfig {
	def := DefaultBusConfig()
	if cfg.Topic == "" {
		cfg.Topic = def.Topic
	}
	if cfg.OutputChannelBuffer <= 0 {
		cfg.OutputChannelBuffer = def.OutputChannelBuffer
	}
	if cfg.MaxReconnects == 0 {
		cfg.MaxReconnects = def.MaxReconnects
	}
	if cfg.ReconnectWait <= 0 {
		cfg.ReconnectWait = def.ReconnectWait
	}
	if cfg.CloseTimeout <= 0 {
		cfg.CloseTimeout = def.CloseTimeout
	}
	return cfg
}

func natsOptions(cfg BusConfig, logger watermill.LoggerAdapter) []natsgo.Option {
	return []natsgo.Option{
		natsgo.Name("cinematch"),
		natsgo.RetryOnFailedConnect(true),
		natsgo.MaxReconnects(cfg.MaxReconnects),
		natsgo.ReconnectWait(cfg.ReconnectWait),
		natsgo.DisconnectErrHandler(func(_ *natsgo.Conn, err error) {
			if err != nil {
				logger.Error("NATS disconnected", err, nil)
			}
		}),
		natsgo.ReconnectHandler(func(nc *natsgo.Conn) {
			logger.Info("NATS reconnected", watermill.LogFields{
				"url": nc.ConnectedUrl(),
			})
		}),
	}
}

// Topic returns the topic events are published on.
func (b *Bus) Topic() string {
	return b.topic
}

// Transport reports "gochannel" or "nats".
func (b *Bus) Transport() string {
	return b.transport
}

// Subscriber returns the subscriber side of the bus.
func (b *Bus) Subscriber() message.Subscriber {
	return b.subscriber
}

// Publish sends one event.
func (b *Bus) Publish(ctx context.Context, e Event) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return ErrBusClosed
	}

	payload, err := e.Marshal()
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	msg := message.NewMessage(e.EventID, payload)
	msg.SetContext(ctx)
	msg.Metadata.Set(MetadataEventType, b.topic)
	msg.Metadata.Set(MetadataTitle, e.Title)
	if id := logging.RequestIDFromContext(ctx); id != "" {
		msg.Metadata.Set(MetadataRequestID, id)
	}

	err = b.publisher.Publish(b.topic, msg)
	metrics.RecordEventPublished(b.topic, err)
	if err != nil {
		return fmt.Errorf("publish to %s: %w", b.topic, err)
	}
	return nil
}

// PublishServed records a served recommendation. Failures are logged and
// dropped.
func (b *Bus) PublishServed(ctx context.Context, title string, n, resultCount int) {
	e := NewEvent(title, n, resultCount, time.Now())
	if err := b.Publish(ctx, e); err != nil {
		b.logger.Warn().Err(err).
			Str("title", title).
			Str("event_id", e.EventID).
			Msg("Failed to publish recommendation event")
	}
}

// Close shuts down both sides of the bus. Safe to call more than once.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true

	var errs []error
	if err := b.publisher.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close publisher: %w", err))
	}
	// gochannel uses one value for both sides.
	if b.transport != "gochannel" {
		if err := b.subscriber.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close subscriber: %w", err))
		}
	}
	return errors.Join(errs...)
}
