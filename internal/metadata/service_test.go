// Cinematch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package metadata

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/cinematch/internal/cache"
)

// mockFetcher counts calls per kind and returns configured results.
type mockFetcher struct {
	posterCalls  atomic.Int32
	trailerCalls atomic.Int32

	posters  map[string]Result
	trailers map[string]Result

	// gate, when non-nil, blocks every fetch until closed.
	gate chan struct{}
}

func newMockFetcher() *mockFetcher {
	return &mockFetcher{
		posters: map[string]Result{
			"19995": Found("https://image.tmdb.org/t/p/w500/avatar.jpg"),
		},
		trailers: map[string]Result{
			"19995": Found("https://www.youtube.com/watch?v=5PSNL1qE6VY"),
		},
	}
}

func (m *mockFetcher) FetchPosterURL(_ context.Context, id string) Result {
	m.posterCalls.Add(1)
	if m.gate != nil {
		<-m.gate
	}
	return m.posters[id]
}

func (m *mockFetcher) FetchTrailerURL(_ context.Context, id string) Result {
	m.trailerCalls.Add(1)
	if m.gate != nil {
		<-m.gate
	}
	return m.trailers[id]
}

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func TestNewService(t *testing.T) {
	t.Parallel()

	if _, err := NewService(nil, Config{}); err == nil {
		t.Error("expected error for nil fetcher")
	}
	if _, err := NewService(newMockFetcher(), Config{TTL: -time.Second}); err == nil {
		t.Error("expected error for negative TTL")
	}
	if _, err := NewService(newMockFetcher(), Config{NegativeTTL: -time.Second}); err == nil {
		t.Error("expected error for negative NegativeTTL")
	}

	svc, err := NewService(newMockFetcher(), Config{})
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	if svc.TTL() != DefaultTTL {
		t.Errorf("TTL() = %v, want %v", svc.TTL(), DefaultTTL)
	}
	if svc.NegativeTTL() != DefaultNegativeTTL {
		t.Errorf("NegativeTTL() = %v, want %v", svc.NegativeTTL(), DefaultNegativeTTL)
	}

	capped, err := NewService(newMockFetcher(), Config{TTL: 30 * time.Second, NegativeTTL: time.Minute})
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	if capped.NegativeTTL() != 30*time.Second {
		t.Errorf("NegativeTTL() = %v, want capped at TTL", capped.NegativeTTL())
	}
}

func TestService_CacheIdempotence(t *testing.T) {
	t.Parallel()

	fetcher := newMockFetcher()
	clock := newTestClock()
	svc, err := NewService(fetcher, Config{TTL: time.Hour, Clock: clock.Now})
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	ctx := context.Background()

	first := svc.PosterURL(ctx, "19995")
	second := svc.PosterURL(ctx, "19995")

	if first != second || !first.Present {
		t.Errorf("expected identical present results, got %v and %v", first, second)
	}
	if got := fetcher.posterCalls.Load(); got != 1 {
		t.Fatalf("two calls within TTL made %d fetches, want 1", got)
	}

	clock.Advance(time.Hour)
	svc.PosterURL(ctx, "19995")
	if got := fetcher.posterCalls.Load(); got != 2 {
		t.Errorf("call after TTL made %d total fetches, want 2", got)
	}
}

func TestService_CachesAbsent(t *testing.T) {
	t.Parallel()

	fetcher := newMockFetcher()
	svc, err := NewService(fetcher, Config{})
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if res := svc.TrailerURL(ctx, "unknown"); res.Present {
			t.Fatalf("expected absent trailer, got %v", res)
		}
	}
	if got := fetcher.trailerCalls.Load(); got != 1 {
		t.Errorf("absent result should be cached, got %d fetches", got)
	}
}

func TestService_KindsAreIndependent(t *testing.T) {
	t.Parallel()

	fetcher := newMockFetcher()
	svc, err := NewService(fetcher, Config{})
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	ctx := context.Background()

	poster := svc.PosterURL(ctx, "19995")
	trailer := svc.TrailerURL(ctx, "19995")

	if poster.URL == trailer.URL {
		t.Error("poster and trailer must be cached under separate keys")
	}
	if fetcher.posterCalls.Load() != 1 || fetcher.trailerCalls.Load() != 1 {
		t.Errorf("fetch counts = %d/%d, want 1/1", fetcher.posterCalls.Load(), fetcher.trailerCalls.Load())
	}
}

func TestService_InvalidInput(t *testing.T) {
	t.Parallel()

	fetcher := newMockFetcher()
	svc, err := NewService(fetcher, Config{})
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}

	if res := svc.Lookup(context.Background(), Kind("backdrop"), "19995"); res.Present {
		t.Error("unknown kind should be absent")
	}
	if res := svc.PosterURL(context.Background(), ""); res.Present {
		t.Error("empty id should be absent")
	}
	if fetcher.posterCalls.Load() != 0 {
		t.Error("invalid lookups must not reach the fetcher")
	}
}

func TestService_SingleFlight(t *testing.T) {
	t.Parallel()

	fetcher := newMockFetcher()
	fetcher.gate = make(chan struct{})
	svc, err := NewService(fetcher, Config{})
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}

	const callers = 10
	var wg sync.WaitGroup
	results := make([]Result, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = svc.PosterURL(context.Background(), "19995")
		}(i)
	}

	// Let every caller reach the flight before releasing the fetch.
	deadline := time.Now().Add(2 * time.Second)
	for fetcher.posterCalls.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	time.Sleep(20 * time.Millisecond)
	close(fetcher.gate)
	wg.Wait()

	for i, res := range results {
		if !res.Present {
			t.Errorf("caller %d got absent result", i)
		}
	}
	// Callers that arrive after the flight completes hit the cache instead.
	if got := fetcher.posterCalls.Load(); got != 1 {
		t.Errorf("fetch count = %d, want 1", got)
	}
}

func TestService_CanceledCallerDoesNotPoisonCache(t *testing.T) {
	t.Parallel()

	fetcher := &ctxAwareFetcher{}
	svc, err := NewService(fetcher, Config{})
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if res := svc.PosterURL(ctx, "1"); !res.Present {
		t.Error("fetch should not observe the caller's cancellation")
	}
}

// ctxAwareFetcher returns Absent when its context is done.
type ctxAwareFetcher struct{}

func (ctxAwareFetcher) FetchPosterURL(ctx context.Context, _ string) Result {
	if ctx.Err() != nil {
		return Absent()
	}
	return Found("https://image.tmdb.org/t/p/w500/x.jpg")
}

func (ctxAwareFetcher) FetchTrailerURL(ctx context.Context, _ string) Result {
	return Absent()
}

func TestService_InvalidateAndPurge(t *testing.T) {
	t.Parallel()

	fetcher := newMockFetcher()
	svc, err := NewService(fetcher, Config{})
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	ctx := context.Background()

	svc.PosterURL(ctx, "19995")
	svc.TrailerURL(ctx, "19995")
	svc.PosterURL(ctx, "119995")
	if removed := svc.Invalidate("19995"); removed != 2 {
		t.Errorf("Invalidate() = %d, want 2", removed)
	}
	if svc.Stats().Entries != 1 {
		t.Errorf("entries after Invalidate = %d, want 1 (other movie kept)", svc.Stats().Entries)
	}
	svc.PosterURL(ctx, "19995")
	svc.TrailerURL(ctx, "19995")

	if fetcher.posterCalls.Load() != 3 || fetcher.trailerCalls.Load() != 2 {
		t.Errorf("Invalidate should force refetch, counts %d/%d",
			fetcher.posterCalls.Load(), fetcher.trailerCalls.Load())
	}

	if err := svc.Purge(); err != nil {
		t.Fatalf("Purge() error = %v", err)
	}
	if svc.Stats().Entries != 0 {
		t.Errorf("entries after Purge = %d", svc.Stats().Entries)
	}
}

func TestService_Sweep(t *testing.T) {
	t.Parallel()

	clock := newTestClock()
	svc, err := NewService(newMockFetcher(), Config{TTL: time.Minute, Clock: clock.Now})
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}

	svc.PosterURL(context.Background(), "19995")
	svc.TrailerURL(context.Background(), "19995")
	clock.Advance(2 * time.Minute)

	if removed := svc.Sweep(); removed != 2 {
		t.Errorf("Sweep() = %d, want 2", removed)
	}
}

func newBadgerTier(t *testing.T, clock *testClock) *cache.BadgerStore[Result] {
	t.Helper()

	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	if err != nil {
		t.Fatalf("open badger: %v", err)
	}
	store := cache.NewBadgerStore[Result](db, time.Hour, cache.WithClock(clock.Now))
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestService_PersistentTier(t *testing.T) {
	t.Parallel()

	clock := newTestClock()
	store := newBadgerTier(t, clock)

	// First process lifetime fills the persistent tier.
	first := newMockFetcher()
	svc1, err := NewService(first, Config{TTL: time.Hour, Store: store, Clock: clock.Now})
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	want := svc1.PosterURL(context.Background(), "19995")

	// A fresh service sharing the store answers without fetching.
	clock.Advance(10 * time.Minute)
	second := newMockFetcher()
	svc2, err := NewService(second, Config{TTL: time.Hour, Store: store, Clock: clock.Now})
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	if got := svc2.PosterURL(context.Background(), "19995"); got != want {
		t.Errorf("restored result = %v, want %v", got, want)
	}
	if second.posterCalls.Load() != 0 {
		t.Errorf("restored lookup fetched %d times", second.posterCalls.Load())
	}
	if stats := svc2.Stats(); stats.Hits != 1 || stats.Misses != 0 {
		t.Errorf("restored lookup counted hits=%d misses=%d, want 1/0", stats.Hits, stats.Misses)
	}
	if rate := svc2.HitRate(); rate != 100 {
		t.Errorf("HitRate() = %v, want 100", rate)
	}

	// Once the persisted entry is stale it is refetched.
	clock.Advance(time.Hour)
	third := newMockFetcher()
	svc3, err := NewService(third, Config{TTL: time.Hour, Store: store, Clock: clock.Now})
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	svc3.PosterURL(context.Background(), "19995")
	if third.posterCalls.Load() != 1 {
		t.Errorf("stale persisted entry should be refetched, got %d fetches", third.posterCalls.Load())
	}
}

func TestService_TransientResultUsesNegativeTTL(t *testing.T) {
	t.Parallel()

	clock := newTestClock()
	fetcher := newMockFetcher()
	fetcher.posters["500"] = Unavailable()
	fetcher.trailers["500"] = Absent()

	svc, err := NewService(fetcher, Config{TTL: time.Hour, NegativeTTL: time.Minute, Clock: clock.Now})
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	ctx := context.Background()

	if got := svc.PosterURL(ctx, "500"); got.Present || !got.Transient {
		t.Fatalf("PosterURL() = %+v, want transient absent", got)
	}
	svc.TrailerURL(ctx, "500")

	clock.Advance(30 * time.Second)
	svc.PosterURL(ctx, "500")
	if n := fetcher.posterCalls.Load(); n != 1 {
		t.Errorf("poster fetched %d times within the negative TTL, want 1", n)
	}

	clock.Advance(31 * time.Second)
	svc.PosterURL(ctx, "500")
	svc.TrailerURL(ctx, "500")
	if n := fetcher.posterCalls.Load(); n != 2 {
		t.Errorf("poster fetched %d times after the negative TTL, want 2", n)
	}
	if n := fetcher.trailerCalls.Load(); n != 1 {
		t.Errorf("answered absent trailer fetched %d times, want 1 for the full TTL", n)
	}
}

func TestService_TransientResultNotPersisted(t *testing.T) {
	t.Parallel()

	clock := newTestClock()
	store := newBadgerTier(t, clock)
	fetcher := newMockFetcher()
	fetcher.posters["500"] = Unavailable()

	svc, err := NewService(fetcher, Config{TTL: time.Hour, Store: store, Clock: clock.Now})
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	svc.PosterURL(context.Background(), "500")
	svc.PosterURL(context.Background(), "19995")

	if _, ok, err := store.Get(Key(KindPoster, "500")); err != nil || ok {
		t.Errorf("transient result persisted: ok=%v err=%v", ok, err)
	}
	if _, ok, err := store.Get(Key(KindPoster, "19995")); err != nil || !ok {
		t.Errorf("found result not persisted: ok=%v err=%v", ok, err)
	}
}
