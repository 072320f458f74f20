// Cinematch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package catalog holds the immutable movie dataset and its precomputed
// similarity matrix.
//
// A Catalog is built once at startup (see Load) and is read-only afterwards,
// so it can be shared across goroutines without locking.
package catalog

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	// ErrInvalidCatalog is wrapped by every validation failure in New and Load.
	ErrInvalidCatalog = errors.New("invalid catalog")

	// ErrTitleNotFound means no item carries the requested title.
	ErrTitleNotFound = errors.New("title not found")

	// ErrAmbiguousTitle means more than one item carries the requested title.
	ErrAmbiguousTitle = errors.New("title is ambiguous")
)

// Item is one recommendable movie.
type Item struct {
	// Index is the item's row in the similarity matrix.
	Index int `json:"index"`

	// ID is the catalog identifier.
	ID string `json:"id"`

	Title string `json:"title"`

	// ExternalID is the identifier used for TMDB lookups. Defaults to ID.
	ExternalID string `json:"external_id"`

	Overview string `json:"overview"`
}

// Catalog is the loaded dataset. The zero value is not usable; build one
// with New or Load.
type Catalog struct {
	items      []Item
	matrix     [][]float64
	byTitle    map[string][]int
	byExternal map[string]int
}

// New validates items and matrix and builds the lookup indexes.
//
// The matrix must be square, sized to len(items), and contain only finite
// values. Item.Index is overwritten with the item's position. The slices are
// owned by the returned Catalog and must not be modified by the caller.
func New(items []Item, matrix [][]float64) (*Catalog, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: no items", ErrInvalidCatalog)
	}
	if len(matrix) != len(items) {
		return nil, fmt.Errorf("%w: similarity matrix has %d rows, catalog has %d items",
			ErrInvalidCatalog, len(matrix), len(items))
	}

	for i, row := range matrix {
		if len(row) != len(items) {
			return nil, fmt.Errorf("%w: similarity row %d has %d columns, want %d",
				ErrInvalidCatalog, i, len(row), len(items))
		}
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w: similarity[%d][%d] is not finite", ErrInvalidCatalog, i, j)
			}
		}
	}

	c := &Catalog{
		items:      items,
		matrix:     matrix,
		byTitle:    make(map[string][]int, len(items)),
		byExternal: make(map[string]int, len(items)),
	}

	for i := range items {
		item := &c.items[i]
		item.Index = i
		if strings.TrimSpace(item.Title) == "" {
			return nil, fmt.Errorf("%w: item %d has no title", ErrInvalidCatalog, i)
		}
		if item.ExternalID == "" {
			item.ExternalID = item.ID
		}
		c.byTitle[item.Title] = append(c.byTitle[item.Title], i)
		if item.ExternalID != "" {
			if _, dup := c.byExternal[item.ExternalID]; !dup {
				c.byExternal[item.ExternalID] = i
			}
		}
	}

	return c, nil
}

// Len returns the number of items.
func (c *Catalog) Len() int {
	return len(c.items)
}

// Item returns the item at index i. It panics if i is out of range.
func (c *Catalog) Item(i int) Item {
	return c.items[i]
}

// Items returns a copy of all items in catalog order.
func (c *Catalog) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Titles returns all titles in catalog order.
func (c *Catalog) Titles() []string {
	out := make([]string, len(c.items))
	for i := range c.items {
		out[i] = c.items[i].Title
	}
	return out
}

// Row returns the similarity scores of item i against every item.
// The returned slice is shared and must be treated as read-only.
func (c *Catalog) Row(i int) []float64 {
	return c.matrix[i]
}

// LookupTitle returns the index of the single item whose title equals title
// exactly. It returns ErrTitleNotFound when nothing matches and
// ErrAmbiguousTitle when several items share the title.
func (c *Catalog) LookupTitle(title string) (int, error) {
	matches := c.byTitle[title]
	switch len(matches) {
	case 0:
		return -1, ErrTitleNotFound
	case 1:
		return matches[0], nil
	default:
		return -1, fmt.Errorf("%w: %d items", ErrAmbiguousTitle, len(matches))
	}
}

// ByExternalID returns the first item with the given external identifier.
func (c *Catalog) ByExternalID(id string) (Item, bool) {
	i, ok := c.byExternal[id]
	if !ok {
		return Item{}, false
	}
	return c.items[i], true
}

// JoinOverview normalizes a descriptive text that may be a single string or a
// list of fragments into one space-separated string.
func JoinOverview(parts []string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}
