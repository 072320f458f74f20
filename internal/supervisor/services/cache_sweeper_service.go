// Cinematch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/logging"
)

// DefaultSweepInterval is used when the configured interval is not positive.
const DefaultSweepInterval = 5 * time.Minute

// Sweeper drops expired entries and reports how many it removed.
type Sweeper interface {
	Sweep() int
}

// NamedSweeper labels a Sweeper in logs.
type NamedSweeper struct {
	Name    string
	Sweeper Sweeper
}

// CacheSweeperService calls every Sweeper on a fixed interval. Reads never
// return stale entries either way; sweeping only bounds memory.
type CacheSweeperService struct {
	interval time.Duration
	sweepers []NamedSweeper
	name     string
	logger   zerolog.Logger
}

// NewCacheSweeperService creates the sweeper. Nil sweepers are skipped.
func NewCacheSweeperService(interval time.Duration, sweepers ...NamedSweeper) *CacheSweeperService {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	kept := make([]NamedSweeper, 0, len(sweepers))
	for _, s := range sweepers {
		if s.Sweeper != nil {
			kept = append(kept, s)
		}
	}
	return &CacheSweeperService{
		interval: interval,
		sweepers: kept,
		name:     "cache-sweeper",
		logger:   logging.WithComponent("cache-sweeper"),
	}
}

// Serve implements suture.Service.
func (c *CacheSweeperService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	c.logger.Debug().
		Dur("interval", c.interval).
		Int("caches", len(c.sweepers)).
		Msg("Cache sweeper running")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			c.SweepOnce()
		}
	}
}

// SweepOnce runs one pass and returns the total number of removed entries.
func (c *CacheSweeperService) SweepOnce() int {
	total := 0
	for _, s := range c.sweepers {
		n := s.Sweeper.Sweep()
		total += n
		if n > 0 {
			c.logger.Debug().Str("cache", s.Name).Int("removed", n).Msg("Swept expired entries")
		}
	}
	return total
}

// String implements fmt.Stringer.
func (c *CacheSweeperService) String() string {
	return c.name
}
