// Cinematch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package metadata serves poster and trailer URLs for catalog items through a
// TTL cache backed by an external Fetcher.
//
// Lookups never fail. Every operation returns a Result that is either a URL
// or Absent, and an Absent result is cached exactly like a found one so a
// known-failing lookup is not retried until its entry goes stale. A Result
// from Unavailable is also absent, but is cached only for the short negative
// TTL because the upstream never answered.
package metadata

import (
	"context"
	"fmt"
)

// Kind is the attribute being looked up.
type Kind string

const (
	KindPoster  Kind = "poster"
	KindTrailer Kind = "trailer"
)

// Kinds lists every lookup kind.
var Kinds = []Kind{KindPoster, KindTrailer}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k == KindPoster || k == KindTrailer
}

// Result is a value-or-absent lookup outcome.
type Result struct {
	URL     string `json:"url,omitempty"`
	Present bool   `json:"present"`

	// Transient marks an absent result caused by an outage rather than an
	// answer. It is never persisted.
	Transient bool `json:"-"`
}

// Found returns a present result. An empty url is treated as absent.
func Found(url string) Result {
	if url == "" {
		return Absent()
	}
	return Result{URL: url, Present: true}
}

// Absent returns the "no value could be obtained" result.
func Absent() Result {
	return Result{}
}

// Unavailable returns an absent result for a lookup the upstream did not
// answer, such as a call refused by an open circuit breaker.
func Unavailable() Result {
	return Result{Transient: true}
}

// Ptr returns a pointer to the URL, or nil when absent. Used for JSON null.
func (r Result) Ptr() *string {
	if !r.Present {
		return nil
	}
	u := r.URL
	return &u
}

func (r Result) String() string {
	if !r.Present {
		return "<absent>"
	}
	return r.URL
}

// Fetcher performs the network lookups. Implementations must absorb every
// failure and return Absent, or Unavailable when the failure is an outage.
type Fetcher interface {
	FetchPosterURL(ctx context.Context, externalID string) Result
	FetchTrailerURL(ctx context.Context, externalID string) Result
}

// Key is the cache key for a lookup.
func Key(kind Kind, externalID string) string {
	return fmt.Sprintf("%s:%s", kind, externalID)
}
