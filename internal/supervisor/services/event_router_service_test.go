// Cinematch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/cinematch/internal/events"
)

var (
	_ suture.Service = (*EventRouterService)(nil)
	_ EventRouter    = (*events.Router)(nil)
)

// fakeRouter blocks in Run until ctx is done, or returns runErr at once.
type fakeRouter struct {
	runErr  error
	exitNow bool
	swept   int
	closed  atomic.Bool
	running chan struct{}
}

func (f *fakeRouter) Run(ctx context.Context) error {
	close(f.running)
	if f.runErr != nil || f.exitNow {
		return f.runErr
	}
	<-ctx.Done()
	return nil
}

func (f *fakeRouter) Close() error {
	f.closed.Store(true)
	return nil
}

func (f *fakeRouter) Sweep() int { return f.swept }

func TestEventRouterService_CancelClosesRouter(t *testing.T) {
	t.Parallel()

	fr := &fakeRouter{swept: 3, running: make(chan struct{})}
	svc := NewEventRouterService(func() (EventRouter, error) { return fr, nil })

	if got := svc.Sweep(); got != 0 {
		t.Errorf("Sweep() before start = %d, want 0", got)
	}

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()
	<-fr.running

	if got := svc.Sweep(); got != 3 {
		t.Errorf("Sweep() while running = %d, want 3", got)
	}

	cancel()
	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() error = %v, want context.Canceled", err)
	}
	if !fr.closed.Load() {
		t.Error("router was not closed")
	}
	if got := svc.Sweep(); got != 0 {
		t.Errorf("Sweep() after stop = %d, want 0", got)
	}
	if svc.String() != "event-router" {
		t.Errorf("String() = %q", svc.String())
	}
}

func TestEventRouterService_ExitErrors(t *testing.T) {
	t.Parallel()

	boom := errors.New("subscribe failed")

	tests := []struct {
		name   string
		router *fakeRouter
		build  error
		want   error
	}{
		{"run error", &fakeRouter{runErr: boom}, nil, boom},
		{"early exit", &fakeRouter{exitNow: true}, nil, ErrRouterStopped},
		{"build error", nil, boom, boom},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.router != nil {
				tt.router.running = make(chan struct{})
			}
			svc := NewEventRouterService(func() (EventRouter, error) {
				if tt.build != nil {
					return nil, tt.build
				}
				return tt.router, nil
			})

			err := svc.Serve(context.Background())
			if !errors.Is(err, tt.want) {
				t.Errorf("Serve() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestEventRouterService_SupervisedOverBus(t *testing.T) {
	t.Parallel()

	bus, err := events.NewBus(events.BusConfig{}, nil)
	if err != nil {
		t.Fatalf("NewBus() error = %v", err)
	}
	defer bus.Close() //nolint:errcheck

	tracker := events.NewPopularityTracker()
	var builds atomic.Int32
	svc := NewEventRouterService(func() (EventRouter, error) {
		builds.Add(1)
		return events.NewRouter(events.DefaultRouterConfig(), bus.Subscriber(), bus.Topic(), tracker, nil)
	})

	sup := suture.New("test", suture.Spec{
		FailureThreshold: 10,
		FailureBackoff:   10 * time.Millisecond,
		Timeout:          2 * time.Second,
	})
	sup.Add(svc)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := sup.ServeBackground(ctx)

	deadline := time.Now().Add(5 * time.Second)
	for tracker.Total() == 0 && time.Now().Before(deadline) {
		bus.PublishServed(context.Background(), "Avatar", 5, 5)
		time.Sleep(20 * time.Millisecond)
	}
	if tracker.Total() == 0 {
		t.Fatal("no events consumed through the supervised router")
	}
	if builds.Load() < 1 || svc.Runs() < 1 {
		t.Errorf("builds = %d runs = %d, want at least 1", builds.Load(), svc.Runs())
	}

	cancel()
	<-errCh
}
