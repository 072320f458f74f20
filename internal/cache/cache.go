// Cinematch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package cache

import (
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Entry is a cached value stamped with the time it was fetched.
type Entry[V any] struct {
	Value     V         `json:"value"`
	FetchedAt time.Time `json:"fetched_at"`
}

// IsStale reports whether entry must be refetched at now under ttl.
// An entry is stale once its age reaches ttl; a non-positive ttl makes every
// entry stale.
func IsStale[V any](entry Entry[V], now time.Time, ttl time.Duration) bool {
	if ttl <= 0 {
		return true
	}
	return now.Sub(entry.FetchedAt) >= ttl
}

// Stats is a point-in-time snapshot of cache counters.
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Entries   int
	LastSweep time.Time
}

// Option configures a TTLCache.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock overrides the time source. Tests use it to step past the TTL
// without sleeping.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// TTLCache is a concurrency-safe map of entries with a single TTL.
type TTLCache[V any] struct {
	mu      sync.RWMutex
	entries map[string]Entry[V]
	ttl     time.Duration
	now     func() time.Time

	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
	lastSweep atomic.Int64 // unix nanos
}

// New creates an in-memory cache whose entries expire after ttl.
//
// New starts no background goroutine. Expired entries are filtered on read
// and memory is reclaimed by calling Sweep periodically (see
// services.CacheSweeper).
//
// Thread Safety:
//   - Get, Set, Delete, Sweep and Clear may be called concurrently
//   - Readers share an RWMutex read lock; counters are atomic
//
// Example:
//
//	posters := cache.New[string](time.Hour)
//	posters.Set("19995", "https://image.tmdb.org/t/p/w500/abc.jpg")
//	url, ok := posters.Get("19995")
func New[V any](ttl time.Duration, opts ...Option) *TTLCache[V] {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &TTLCache[V]{
		entries: make(map[string]Entry[V]),
		ttl:     ttl,
		now:     o.now,
	}
}

// TTL returns the configured time-to-live.
func (c *TTLCache[V]) TTL() time.Duration {
	return c.ttl
}

// Now returns the cache's current time.
func (c *TTLCache[V]) Now() time.Time {
	return c.now()
}

// Get returns the live value for key. Stale and missing entries are misses.
func (c *TTLCache[V]) Get(key string) (V, bool) {
	entry, ok := c.GetEntry(key)
	return entry.Value, ok
}

// GetEntry is Get returning the whole entry.
func (c *TTLCache[V]) GetEntry(key string) (Entry[V], bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || IsStale(entry, c.now(), c.ttl) {
		c.misses.Add(1)
		var zero Entry[V]
		return zero, false
	}

	c.hits.Add(1)
	return entry, true
}

// Set stores value under key stamped with the current time.
func (c *TTLCache[V]) Set(key string, value V) Entry[V] {
	entry := Entry[V]{Value: value, FetchedAt: c.now()}
	c.SetEntry(key, entry)
	return entry
}

// SetEntry stores a pre-stamped entry, for example one read back from a
// persistent tier. The original FetchedAt is kept so the TTL window does not
// restart.
func (c *TTLCache[V]) SetEntry(key string, entry Entry[V]) {
	c.mu.Lock()
	c.entries[key] = entry
	c.mu.Unlock()
}

// Promote stores an entry read back from a slower tier after Get or GetEntry
// missed on key, and counts that lookup as a hit instead of a miss.
func (c *TTLCache[V]) Promote(key string, entry Entry[V]) {
	c.SetEntry(key, entry)
	c.misses.Add(-1)
	c.hits.Add(1)
}

// Delete removes key.
func (c *TTLCache[V]) Delete(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// DeleteSuffix removes every key ending in suffix and returns the count.
func (c *TTLCache[V]) DeleteSuffix(suffix string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key := range c.entries {
		if strings.HasSuffix(key, suffix) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Clear removes all entries. Counters are kept.
func (c *TTLCache[V]) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]Entry[V])
	c.mu.Unlock()
}

// Len returns the number of stored entries, stale ones included.
func (c *TTLCache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Sweep removes stale entries and returns how many were removed.
func (c *TTLCache[V]) Sweep() int {
	now := c.now()

	c.mu.Lock()
	removed := 0
	for key, entry := range c.entries {
		if IsStale(entry, now, c.ttl) {
			delete(c.entries, key)
			removed++
		}
	}
	c.mu.Unlock()

	c.evictions.Add(int64(removed))
	c.lastSweep.Store(now.UnixNano())
	return removed
}

// Stats returns a snapshot of the cache counters.
func (c *TTLCache[V]) Stats() Stats {
	s := Stats{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
		Entries:   c.Len(),
	}
	if ns := c.lastSweep.Load(); ns != 0 {
		s.LastSweep = time.Unix(0, ns)
	}
	return s
}

// HitRate returns hits / (hits + misses) as a percentage.
func (c *TTLCache[V]) HitRate() float64 {
	hits := c.hits.Load()
	total := hits + c.misses.Load()
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total) * 100
}
