// Cinematch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"sort"

	"github.com/tomtom215/cinematch/internal/catalog"
)

// Recommendation is one ranked result.
type Recommendation struct {
	// Rank starts at 1.
	Rank       int
	Index      int
	Title      string
	ExternalID string
	Score      float64
}

// scoredIndex pairs a matrix column with its similarity score.
type scoredIndex struct {
	index int
	score float64
}

// Ranker selects the most similar items from a catalog. It is pure and safe
// for concurrent use.
type Ranker struct {
	catalog *catalog.Catalog
}

// NewRanker returns a Ranker over cat.
func NewRanker(cat *catalog.Catalog) *Ranker {
	return &Ranker{catalog: cat}
}

// Recommend returns the n items most similar to the item titled title, best
// first, never including that item itself.
func (r *Ranker) Recommend(title string, n int) ([]Recommendation, error) {
	if n < 1 {
		return nil, &InvalidCountError{N: n}
	}

	self, err := r.catalog.LookupTitle(title)
	if err != nil {
		return nil, &NotFoundError{Title: title, Reason: err}
	}

	ranked := rankRow(r.catalog.Row(self), self)
	if n > len(ranked) {
		n = len(ranked)
	}

	out := make([]Recommendation, n)
	for i := 0; i < n; i++ {
		item := r.catalog.Item(ranked[i].index)
		out[i] = Recommendation{
			Rank:       i + 1,
			Index:      item.Index,
			Title:      item.Title,
			ExternalID: item.ExternalID,
			Score:      ranked[i].score,
		}
	}
	return out, nil
}

// Candidates returns how many other items a title can be compared against.
func (r *Ranker) Candidates() int {
	if n := r.catalog.Len(); n > 0 {
		return n - 1
	}
	return 0
}

// rankRow orders row by score descending, ties by ascending index, and drops
// the self entry.
func rankRow(row []float64, self int) []scoredIndex {
	pairs := make([]scoredIndex, len(row))
	for j, score := range row {
		pairs[j] = scoredIndex{index: j, score: score}
	}

	sort.SliceStable(pairs, func(a, b int) bool {
		return pairs[a].score > pairs[b].score
	})

	// Self is normally first; anything else is a malformed matrix we still
	// answer correctly.
	if len(pairs) > 0 && pairs[0].index == self {
		return pairs[1:]
	}
	for k := range pairs {
		if pairs[k].index == self {
			return append(pairs[:k], pairs[k+1:]...)
		}
	}
	return pairs
}
