// Cinematch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package cache provides the time-expiring storage behind metadata lookups.
//
// TTLCache is an in-memory map from string keys to entries stamped with the
// time they were fetched. Staleness is an explicit predicate, IsStale, that is
// evaluated on every read: an entry whose age has reached the TTL is never
// served, it is treated as a miss and overwritten by the next Set.
//
// BadgerStore is an optional persistent tier with the same entry shape, so a
// restart does not throw away lookups that are still fresh.
//
// # Usage
//
//	c := cache.New[string](time.Hour)
//	if v, ok := c.Get("poster:19995"); ok {
//	    return v
//	}
//	c.Set("poster:19995", url)
//
// Stale entries remain in memory until overwritten or removed by Sweep. Sweep
// only bounds memory; it never changes what Get returns.
package cache
