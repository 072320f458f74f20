// Cinematch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/logging"
)

// ErrRouterStopped is returned when the router exits while its context is
// still live, which makes the supervisor restart it.
var ErrRouterStopped = errors.New("event router stopped unexpectedly")

// EventRouter is satisfied by *events.Router.
type EventRouter interface {
	Run(ctx context.Context) error
	Close() error
	Sweep() int
}

// EventRouterFactory builds a fresh router. A watermill router cannot be
// run again once closed, so every restart gets a new one.
type EventRouterFactory func() (EventRouter, error)

// EventRouterService supervises the event consumer.
type EventRouterService struct {
	build  EventRouterFactory
	name   string
	logger zerolog.Logger

	mu      sync.Mutex
	current EventRouter
	runs    int
}

// NewEventRouterService creates the service around build.
func NewEventRouterService(build EventRouterFactory) *EventRouterService {
	return &EventRouterService{
		build:  build,
		name:   "event-router",
		logger: logging.WithComponent("event-router"),
	}
}

// Serve implements suture.Service.
func (s *EventRouterService) Serve(ctx context.Context) error {
	router, err := s.build()
	if err != nil {
		return fmt.Errorf("build event router: %w", err)
	}

	s.mu.Lock()
	s.current = router
	s.runs++
	run := s.runs
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.current = nil
		s.mu.Unlock()
		if cerr := router.Close(); cerr != nil {
			s.logger.Warn().Err(cerr).Msg("Closing event router")
		}
	}()

	s.logger.Info().Int("run", run).Msg("Event router starting")
	runErr := router.Run(ctx)

	if ctx.Err() != nil {
		return ctx.Err()
	}
	if runErr != nil {
		return fmt.Errorf("event router: %w", runErr)
	}
	return ErrRouterStopped
}

// Sweep drops expired deduplication keys from the running router.
func (s *EventRouterService) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return 0
	}
	return s.current.Sweep()
}

// Runs reports how many routers have been started.
func (s *EventRouterService) Runs() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runs
}

// String implements fmt.Stringer.
func (s *EventRouterService) String() string {
	return s.name
}
