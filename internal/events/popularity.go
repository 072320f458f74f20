// Cinematch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package events

import (
	"sort"
	"sync"

	"github.com/tomtom215/cinematch/internal/models"
)

// PopularityTracker counts served recommendations per query title.
type PopularityTracker struct {
	mu     sync.RWMutex
	titles map[string]*models.PopularTitle
	total  int64
}

// NewPopularityTracker returns an empty tracker.
func NewPopularityTracker() *PopularityTracker {
	return &PopularityTracker{titles: make(map[string]*models.PopularTitle)}
}

// Record folds one event into the tally.
func (p *PopularityTracker) Record(e Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.total++
	entry, ok := p.titles[e.Title]
	if !ok {
		entry = &models.PopularTitle{Title: e.Title}
		p.titles[e.Title] = entry
	}
	entry.Count++
	if e.ServedAt.After(entry.LastSeen) {
		entry.LastSeen = e.ServedAt
	}
}

// Top returns up to limit titles ordered by count descending, then title
// ascending. A limit of zero or less returns every title.
func (p *PopularityTracker) Top(limit int) []models.PopularTitle {
	p.mu.RLock()
	out := make([]models.PopularTitle, 0, len(p.titles))
	for _, entry := range p.titles {
		out = append(out, *entry)
	}
	p.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Title < out[j].Title
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Total is the number of events recorded.
func (p *PopularityTracker) Total() int64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.total
}

// Snapshot returns the ranking in API form.
func (p *PopularityTracker) Snapshot(limit int) models.PopularTitles {
	return models.PopularTitles{
		Titles:      p.Top(limit),
		TotalServed: p.Total(),
	}
}
