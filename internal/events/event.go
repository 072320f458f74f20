// Cinematch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package events

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// DefaultTopic is the topic recommendation events are published on.
const DefaultTopic = "recommendation.served"

// ErrInvalidEvent is returned when an event fails validation.
var ErrInvalidEvent = errors.New("invalid event")

// Event records one served recommendation request.
type Event struct {
	EventID     string    `json:"event_id"`
	Title       string    `json:"title"`
	N           int       `json:"n"`
	ResultCount int       `json:"result_count"`
	ServedAt    time.Time `json:"served_at"`
}

// NewEvent builds an event with a fresh UUID.
func NewEvent(title string, n, resultCount int, servedAt time.Time) Event {
	return Event{
		EventID:     uuid.New().String(),
		Title:       title,
		N:           n,
		ResultCount: resultCount,
		ServedAt:    servedAt.UTC(),
	}
}

// Validate checks the fields a consumer relies on.
func (e Event) Validate() error {
	if e.EventID == "" {
		return fmt.Errorf("%w: event_id is required", ErrInvalidEvent)
	}
	if strings.TrimSpace(e.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidEvent)
	}
	if e.N < 0 || e.ResultCount < 0 {
		return fmt.Errorf("%w: counts must not be negative", ErrInvalidEvent)
	}
	if e.ServedAt.IsZero() {
		return fmt.Errorf("%w: served_at is required", ErrInvalidEvent)
	}
	return nil
}

// Marshal encodes the event payload.
func (e Event) Marshal() ([]byte, error) {
	return json.Marshal(e)
}

// UnmarshalEvent decodes and validates an event payload.
func UnmarshalEvent(data []byte) (Event, error) {
	var e Event
	if err := json.Unmarshal(data, &e); err != nil {
		return Event{}, fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}
	if err := e.Validate(); err != nil {
		return Event{}, err
	}
	return e, nil
}
