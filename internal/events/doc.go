// Cinematch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package events carries recommendation activity over a Watermill message bus.

Every successful recommendation request publishes a "recommendation.served"
event. A router handler consumes the topic and folds each event into a
PopularityTracker, which backs GET /api/v1/stats/popular.

# Transports

The bus runs on the in-process gochannel Pub/Sub by default. When a NATS URL
is configured it switches to watermill-nats over core NATS (JetStream
disabled), so several replicas can share one popularity stream:

	bus, err := events.NewBus(events.BusConfig{
	    NATSURL: cfg.Events.NATSURL,
	    Topic:   cfg.Events.Topic,
	}, logging.NewWatermillLogger())

# Delivery

Publishing is best effort. PublishServed logs and counts failures but never
returns them, so a broken bus cannot fail an HTTP request. The consumer
deduplicates by message UUID within a short window.
*/
package events
