// Cinematch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package cache

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/cinematch/internal/logging"
)

// Key prefix for entries persisted by BadgerStore.
const badgerKeyPrefix = "meta:"

// BadgerStore persists cache entries in BadgerDB so fresh lookups survive a
// restart. Values are JSON-encoded Entry[V] records; Badger's own TTL is set
// to the cache TTL so the value log reclaims expired records.
type BadgerStore[V any] struct {
	db  *badger.DB
	ttl time.Duration
	now func() time.Time
}

// OpenBadgerStore opens (or creates) a BadgerDB database at path.
func OpenBadgerStore[V any](path string, ttl time.Duration, opts ...Option) (*BadgerStore[V], error) {
	badgerOpts := badger.DefaultOptions(path)
	badgerOpts.Logger = nil

	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}

	logging.Info().Str("path", path).Dur("ttl", ttl).Msg("Metadata cache store opened")
	return NewBadgerStore[V](db, ttl, opts...), nil
}

// NewBadgerStore wraps an already open database. The caller keeps ownership
// of db unless Close is called.
func NewBadgerStore[V any](db *badger.DB, ttl time.Duration, opts ...Option) *BadgerStore[V] {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &BadgerStore[V]{db: db, ttl: ttl, now: o.now}
}

// Get returns the stored entry for key. A missing key is (zero, false, nil).
// Callers still apply IsStale to the result.
func (s *BadgerStore[V]) Get(key string) (Entry[V], bool, error) {
	var entry Entry[V]

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(badgerKeyPrefix + key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &entry)
		})
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return entry, false, nil
	}
	if err != nil {
		return entry, false, fmt.Errorf("get cache entry %s: %w", key, err)
	}
	return entry, true, nil
}

// Put stores entry under key.
func (s *BadgerStore[V]) Put(key string, entry Entry[V]) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal cache entry: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry([]byte(badgerKeyPrefix+key), data)
		if s.ttl > 0 {
			// Remaining lifetime, so restored entries keep their original window.
			remaining := s.ttl - s.now().Sub(entry.FetchedAt)
			if remaining <= 0 {
				return nil
			}
			e = e.WithTTL(remaining)
		}
		return txn.SetEntry(e)
	})
}

// Delete removes key. Deleting a missing key is not an error.
func (s *BadgerStore[V]) Delete(key string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete([]byte(badgerKeyPrefix + key))
		if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		return nil
	})
}

// Clear removes every persisted entry.
func (s *BadgerStore[V]) Clear() error {
	if err := s.db.DropPrefix([]byte(badgerKeyPrefix)); err != nil {
		return fmt.Errorf("drop cache entries: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *BadgerStore[V]) Close() error {
	return s.db.Close()
}
