// Cinematch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
)

// startRouter runs a router over an in-process bus until the test ends.
func startRouter(t *testing.T, cfg RouterConfig) (*Bus, *PopularityTracker, *Router) {
	t.Helper()

	bus, err := NewBus(BusConfig{}, nil)
	if err != nil {
		t.Fatalf("NewBus() error = %v", err)
	}
	tracker := NewPopularityTracker()
	r, err := NewRouter(cfg, bus.Subscriber(), bus.Topic(), tracker, nil)
	if err != nil {
		t.Fatalf("NewRouter() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	select {
	case <-r.Running():
	case <-time.After(5 * time.Second):
		t.Fatal("router did not start")
	}

	t.Cleanup(func() {
		cancel()
		<-done
		_ = bus.Close()
	})
	return bus, tracker, r
}

func waitForTotal(t *testing.T, tracker *PopularityTracker, want int64) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if tracker.Total() >= want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("tracker total = %d, want %d", tracker.Total(), want)
}

func TestRouter_FoldsEvents(t *testing.T) {
	t.Parallel()

	bus, tracker, _ := startRouter(t, DefaultRouterConfig())
	ctx := context.Background()

	bus.PublishServed(ctx, "Avatar", 5, 5)
	bus.PublishServed(ctx, "Avatar", 3, 3)
	bus.PublishServed(ctx, "Spectre", 5, 5)

	waitForTotal(t, tracker, 3)

	top := tracker.Top(0)
	if len(top) != 2 || top[0].Title != "Avatar" || top[0].Count != 2 {
		t.Errorf("Top() = %+v, want Avatar first with 2", top)
	}
}

func TestRouter_DeduplicatesByUUID(t *testing.T) {
	t.Parallel()

	bus, tracker, _ := startRouter(t, DefaultRouterConfig())
	ctx := context.Background()

	e := NewEvent("Avatar", 5, 5, time.Now())
	for i := 0; i < 3; i++ {
		if err := bus.Publish(ctx, e); err != nil {
			t.Fatalf("Publish() error = %v", err)
		}
	}
	// A distinct event after the duplicates marks the end of the stream.
	bus.PublishServed(ctx, "Spectre", 5, 5)

	waitForTotal(t, tracker, 2)
	time.Sleep(50 * time.Millisecond)

	if got := tracker.Total(); got != 2 {
		t.Errorf("Total() = %d, want 2 (duplicates dropped)", got)
	}
}

func TestRouter_DropsMalformed(t *testing.T) {
	t.Parallel()

	bus, tracker, _ := startRouter(t, RouterConfig{CloseTimeout: time.Second})

	bad := message.NewMessage("bad-1", []byte(`{"title":""}`))
	if err := bus.publisher.Publish(bus.Topic(), bad); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	bus.PublishServed(context.Background(), "Avatar", 5, 5)

	waitForTotal(t, tracker, 1)
	if top := tracker.Top(0); len(top) != 1 || top[0].Title != "Avatar" {
		t.Errorf("Top() = %+v, want only Avatar", top)
	}
}

func TestRouter_Sweep(t *testing.T) {
	t.Parallel()

	bus, tracker, r := startRouter(t, RouterConfig{CloseTimeout: time.Second, DeduplicationTTL: time.Millisecond})
	bus.PublishServed(context.Background(), "Avatar", 5, 5)
	waitForTotal(t, tracker, 1)

	time.Sleep(5 * time.Millisecond)
	if got := r.Sweep(); got != 1 {
		t.Errorf("Sweep() = %d, want 1 expired key", got)
	}
}

func TestNewRouter_Validation(t *testing.T) {
	t.Parallel()

	bus, err := NewBus(BusConfig{}, nil)
	if err != nil {
		t.Fatalf("NewBus() error = %v", err)
	}
	defer bus.Close()

	if _, err := NewRouter(DefaultRouterConfig(), nil, "", NewPopularityTracker(), nil); err == nil {
		t.Error("NewRouter(nil subscriber) error = nil")
	}
	if _, err := NewRouter(DefaultRouterConfig(), bus.Subscriber(), "", nil, nil); err == nil {
		t.Error("NewRouter(nil tracker) error = nil")
	}
}

func TestBus_Defaults(t *testing.T) {
	t.Parallel()

	bus, err := NewBus(BusConfig{}, nil)
	if err != nil {
		t.Fatalf("NewBus() error = %v", err)
	}
	if bus.Topic() != DefaultTopic {
		t.Errorf("Topic() = %q, want %q", bus.Topic(), DefaultTopic)
	}
	if bus.Transport() != "gochannel" {
		t.Errorf("Transport() = %q, want gochannel", bus.Transport())
	}

	if err := bus.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := bus.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}

	err = bus.Publish(context.Background(), NewEvent("Avatar", 1, 1, time.Now()))
	if !errors.Is(err, ErrBusClosed) {
		t.Errorf("Publish() after Close error = %v, want ErrBusClosed", err)
	}
	// Best-effort path must not panic on a closed bus.
	bus.PublishServed(context.Background(), "Avatar", 1, 1)
}

func TestRouter_RestartOnSameBus(t *testing.T) {
	bus, err := NewBus(BusConfig{}, nil)
	if err != nil {
		t.Fatalf("NewBus() error = %v", err)
	}
	defer bus.Close() //nolint:errcheck
	tracker := NewPopularityTracker()

	for round := int64(1); round <= 2; round++ {
		r, err := NewRouter(DefaultRouterConfig(), bus.Subscriber(), bus.Topic(), tracker, nil)
		if err != nil {
			t.Fatalf("NewRouter() error = %v", err)
		}
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- r.Run(ctx) }()
		<-r.Running()

		bus.PublishServed(context.Background(), "Avatar", 5, 5)
		waitForTotal(t, tracker, round)

		cancel()
		<-done
		_ = r.Close()
	}
}
