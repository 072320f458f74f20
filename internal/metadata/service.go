// Cinematch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package metadata

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/cinematch/internal/cache"
	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/metrics"
)

// DefaultTTL is the lifetime of a cached lookup, shared by both kinds.
const DefaultTTL = time.Hour

// DefaultNegativeTTL is the lifetime of an Unavailable lookup.
const DefaultNegativeTTL = time.Minute

// Store is a persistent tier consulted after an in-memory miss.
// cache.BadgerStore[Result] satisfies it.
type Store interface {
	Get(key string) (cache.Entry[Result], bool, error)
	Put(key string, entry cache.Entry[Result]) error
	Delete(key string) error
	Clear() error
}

// Config configures a Service.
type Config struct {
	// TTL is the entry lifetime. Zero selects DefaultTTL.
	TTL time.Duration

	// NegativeTTL is the lifetime of a transient result. Zero selects
	// DefaultNegativeTTL; values above TTL are capped at TTL.
	NegativeTTL time.Duration

	// Store is an optional persistent tier.
	Store Store

	// Clock overrides time.Now, for tests.
	Clock func() time.Time
}

// Service answers poster and trailer lookups from cache, calling the Fetcher
// on a miss and caching whatever it returns, Absent included.
type Service struct {
	fetcher     Fetcher
	entries     *cache.TTLCache[Result]
	negativeTTL time.Duration
	store       Store
	flights     singleflight.Group
	logger      zerolog.Logger
}

// NewService creates a metadata service around fetcher.
func NewService(fetcher Fetcher, cfg Config) (*Service, error) {
	if fetcher == nil {
		return nil, errors.New("metadata fetcher is required")
	}
	if cfg.TTL == 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.TTL < 0 {
		return nil, errors.New("metadata cache TTL must be positive")
	}
	if cfg.NegativeTTL == 0 {
		cfg.NegativeTTL = DefaultNegativeTTL
	}
	if cfg.NegativeTTL < 0 {
		return nil, errors.New("metadata negative TTL must be positive")
	}
	if cfg.NegativeTTL > cfg.TTL {
		cfg.NegativeTTL = cfg.TTL
	}

	var opts []cache.Option
	if cfg.Clock != nil {
		opts = append(opts, cache.WithClock(cfg.Clock))
	}

	return &Service{
		fetcher:     fetcher,
		entries:     cache.New[Result](cfg.TTL, opts...),
		negativeTTL: cfg.NegativeTTL,
		store:       cfg.Store,
		logger:      logging.WithComponent("metadata"),
	}, nil
}

// PosterURL returns the poster URL for externalID, or Absent.
func (s *Service) PosterURL(ctx context.Context, externalID string) Result {
	return s.Lookup(ctx, KindPoster, externalID)
}

// TrailerURL returns the trailer URL for externalID, or Absent.
func (s *Service) TrailerURL(ctx context.Context, externalID string) Result {
	return s.Lookup(ctx, KindTrailer, externalID)
}

// Lookup returns the cached value for (kind, externalID) when it is live,
// otherwise fetches, stores and returns it. Concurrent misses on the same key
// share a single fetch.
func (s *Service) Lookup(ctx context.Context, kind Kind, externalID string) Result {
	if !kind.Valid() || externalID == "" {
		return Absent()
	}

	key := Key(kind, externalID)

	if res, ok := s.entries.Get(key); ok {
		metrics.RecordCacheLookup(string(kind), true)
		return res
	}

	if res, ok := s.restore(key); ok {
		metrics.RecordCacheLookup(string(kind), true)
		return res
	}

	metrics.RecordCacheLookup(string(kind), false)

	// The fetch outlives any single caller: its result is shared and cached.
	fetchCtx := context.WithoutCancel(ctx)
	v, _, shared := s.flights.Do(key, func() (interface{}, error) {
		res := s.fetch(fetchCtx, kind, externalID)
		if res.Transient {
			s.entries.SetEntry(key, s.negativeEntry(res))
		} else {
			s.persist(key, s.entries.Set(key, res))
		}
		metrics.CacheEntries.Set(float64(s.entries.Len()))
		return res, nil
	})

	res, _ := v.(Result)
	logging.Ctx(ctx).Debug().
		Str("kind", string(kind)).
		Str("external_id", externalID).
		Bool("present", res.Present).
		Bool("transient", res.Transient).
		Bool("shared", shared).
		Msg("Metadata cache miss")
	return res
}

func (s *Service) fetch(ctx context.Context, kind Kind, externalID string) Result {
	switch kind {
	case KindPoster:
		return s.fetcher.FetchPosterURL(ctx, externalID)
	case KindTrailer:
		return s.fetcher.FetchTrailerURL(ctx, externalID)
	default:
		return Absent()
	}
}

// negativeEntry back-dates res so it goes stale after the negative TTL
// under the cache's single TTL.
func (s *Service) negativeEntry(res Result) cache.Entry[Result] {
	age := s.entries.TTL() - s.negativeTTL
	return cache.Entry[Result]{Value: res, FetchedAt: s.entries.Now().Add(-age)}
}

// restore promotes a live entry from the persistent tier into memory.
func (s *Service) restore(key string) (Result, bool) {
	if s.store == nil {
		return Absent(), false
	}

	entry, ok, err := s.store.Get(key)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("Persistent cache read failed")
		return Absent(), false
	}
	if !ok || cache.IsStale(entry, s.entries.Now(), s.entries.TTL()) {
		return Absent(), false
	}

	s.entries.Promote(key, entry)
	return entry.Value, true
}

func (s *Service) persist(key string, entry cache.Entry[Result]) {
	if s.store == nil {
		return
	}
	if err := s.store.Put(key, entry); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("Persistent cache write failed")
	}
}

// Invalidate drops every cached kind for externalID and returns how many
// in-memory entries were removed.
func (s *Service) Invalidate(externalID string) int {
	if externalID == "" {
		return 0
	}
	removed := s.entries.DeleteSuffix(Key("", externalID))
	if s.store != nil {
		for _, kind := range Kinds {
			key := Key(kind, externalID)
			if err := s.store.Delete(key); err != nil {
				s.logger.Warn().Err(err).Str("key", key).Msg("Persistent cache delete failed")
			}
		}
	}
	metrics.CacheEntries.Set(float64(s.entries.Len()))
	return removed
}

// Purge drops every cached lookup.
func (s *Service) Purge() error {
	s.entries.Clear()
	metrics.CacheEntries.Set(0)
	if s.store != nil {
		return s.store.Clear()
	}
	return nil
}

// Sweep removes stale in-memory entries and returns how many were removed.
func (s *Service) Sweep() int {
	removed := s.entries.Sweep()
	metrics.CacheEvictions.Add(float64(removed))
	metrics.CacheEntries.Set(float64(s.entries.Len()))
	return removed
}

// Stats returns the in-memory cache counters.
func (s *Service) Stats() cache.Stats {
	return s.entries.Stats()
}

// HitRate returns the in-memory hit percentage.
func (s *Service) HitRate() float64 {
	return s.entries.HitRate()
}

// TTL returns the entry lifetime.
func (s *Service) TTL() time.Duration {
	return s.entries.TTL()
}

// NegativeTTL returns the lifetime of a transient result.
func (s *Service) NegativeTTL() time.Duration {
	return s.negativeTTL
}
