// Cinematch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package recommend ranks movies by precomputed similarity and enriches the
// ranking with poster and trailer links.
//
// # Ranking
//
// Ranker.Recommend looks up the single catalog item whose title matches
// exactly, pairs every column of its similarity row with the column index,
// and sorts by score descending. The sort is stable over index order, so equal
// scores keep ascending index order. The queried item is removed from the
// ranking wherever it lands, then the first n entries are returned. Asking for
// more than size-1 results returns size-1 results.
//
// # Enrichment
//
// Engine.Recommend runs the Ranker and then looks up poster and trailer for
// every result through a MetadataSource. Lookups run concurrently, bounded by
// Config.MaxConcurrency, and are joined before the response is built. Output
// order is rank order. Metadata never fails a request: a missing poster or
// trailer is reported as null.
//
// # Errors
//
//   - *NotFoundError (errors.Is ErrNotFound): title matches zero or several items
//   - *InvalidCountError (errors.Is ErrInvalidCount): n < 1
//
// # Usage
//
//	engine, err := recommend.NewEngine(cat, metaService, tmdbClient, recommend.DefaultConfig())
//	resp, err := engine.Recommend(ctx, "Avatar", 5)
//
// The Engine holds no mutable state of its own and is safe for concurrent use.
package recommend
