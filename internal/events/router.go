// Cinematch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package events

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/cache"
	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/metrics"
)

// PopularityHandlerName identifies the popularity consumer in router logs.
const PopularityHandlerName = "popularity-tracker"

// RouterConfig holds router settings.
type RouterConfig struct {
	CloseTimeout time.Duration

	// DeduplicationTTL is how long a message UUID is remembered.
	// Zero disables deduplication.
	DeduplicationTTL time.Duration
}

// DefaultRouterConfig returns production defaults.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		CloseTimeout:     10 * time.Second,
		DeduplicationTTL: 5 * time.Minute,
	}
}

// Router consumes recommendation events into a PopularityTracker.
type Router struct {
	router  *message.Router
	tracker *PopularityTracker
	dedup   *uuidDeduplicator
	topic   string
	logger  zerolog.Logger
}

// uuidDeduplicator implements middleware.ExpiringKeyRepository on a TTL cache.
type uuidDeduplicator struct {
	mu   sync.Mutex
	seen *cache.TTLCache[struct{}]
}

func newUUIDDeduplicator(ttl time.Duration) *uuidDeduplicator {
	return &uuidDeduplicator{seen: cache.New[struct{}](ttl)}
}

// IsDuplicate reports whether key was seen within the TTL and marks it seen.
func (d *uuidDeduplicator) IsDuplicate(_ context.Context, key string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.seen.Get(key); ok {
		return true, nil
	}
	d.seen.Set(key, struct{}{})
	return false, nil
}

// sharedSubscriber keeps the router from closing a subscriber it does not
// own. The Bus closes it, and a restarted router subscribes again.
type sharedSubscriber struct {
	message.Subscriber
}

func (sharedSubscriber) Close() error { return nil }

// NewRouter builds a router that reads topic from sub.
func NewRouter(cfg RouterConfig, sub message.Subscriber, topic string, tracker *PopularityTracker, logger watermill.LoggerAdapter) (*Router, error) {
	if sub == nil {
		return nil, fmt.Errorf("events: subscriber is required")
	}
	if tracker == nil {
		return nil, fmt.Errorf("events: tracker is required")
	}
	if topic == "" {
		topic = DefaultTopic
	}
	if logger == nil {
		logger = logging.NewWatermillLogger()
	}

	wmRouter, err := message.NewRouter(message.RouterConfig{
		CloseTimeout: cfg.CloseTimeout,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("create watermill router: %w", err)
	}

	r := &Router{
		router:  wmRouter,
		tracker: tracker,
		topic:   topic,
		logger:  logging.WithComponent("events-router"),
	}

	wmRouter.AddMiddleware(middleware.Recoverer)

	if cfg.DeduplicationTTL > 0 {
		r.dedup = newUUIDDeduplicator(cfg.DeduplicationTTL)
		dedup := middleware.Deduplicator{
			KeyFactory: func(msg *message.Message) (string, error) {
				return msg.UUID, nil
			},
			Repository: r.dedup,
		}
		wmRouter.AddMiddleware(dedup.Middleware)
	}

	wmRouter.AddConsumerHandler(PopularityHandlerName, topic, sharedSubscriber{sub}, r.handle)

	return r, nil
}

// handle acks malformed payloads after logging them; redelivery would not
// fix them.
func (r *Router) handle(msg *message.Message) error {
	e, err := UnmarshalEvent(msg.Payload)
	metrics.RecordEventConsumed(r.topic, err)
	if err != nil {
		r.logger.Warn().Err(err).
			Str("message_uuid", msg.UUID).
			Msg("Dropping malformed recommendation event")
		return nil
	}

	r.tracker.Record(e)
	r.logger.Trace().
		Str("title", e.Title).
		Str("event_id", e.EventID).
		Str(MetadataRequestID, msg.Metadata.Get(MetadataRequestID)).
		Msg("Recorded recommendation event")
	return nil
}

// Run blocks until ctx is cancelled or Close is called.
func (r *Router) Run(ctx context.Context) error {
	return r.router.Run(ctx)
}

// Running is closed once handlers are subscribed.
func (r *Router) Running() <-chan struct{} {
	return r.router.Running()
}

// Close waits up to CloseTimeout for in-flight messages.
func (r *Router) Close() error {
	return r.router.Close()
}

// Sweep drops expired deduplication keys.
func (r *Router) Sweep() int {
	if r.dedup == nil {
		return 0
	}
	r.dedup.mu.Lock()
	defer r.dedup.mu.Unlock()
	return r.dedup.seen.Sweep()
}
