// Cinematch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package catalog

import (
	"errors"
	"math"
	"testing"
)

func sampleItems() []Item {
	return []Item{
		{ID: "1", Title: "A"},
		{ID: "2", Title: "B", ExternalID: "tmdb-2"},
		{ID: "3", Title: "C"},
	}
}

func sampleMatrix() [][]float64 {
	return [][]float64{
		{1, 0.9, 0.2},
		{0.9, 1, 0.1},
		{0.2, 0.1, 1},
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	c, err := New(sampleItems(), sampleMatrix())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if c.Len() != 3 {
		t.Errorf("Len() = %d, want 3", c.Len())
	}
	for i := 0; i < c.Len(); i++ {
		if c.Item(i).Index != i {
			t.Errorf("Item(%d).Index = %d", i, c.Item(i).Index)
		}
	}
	if got := c.Item(0).ExternalID; got != "1" {
		t.Errorf("ExternalID should default to ID, got %q", got)
	}
	if got := c.Item(1).ExternalID; got != "tmdb-2" {
		t.Errorf("explicit ExternalID lost, got %q", got)
	}

	titles := c.Titles()
	want := []string{"A", "B", "C"}
	for i := range want {
		if titles[i] != want[i] {
			t.Errorf("Titles()[%d] = %q, want %q", i, titles[i], want[i])
		}
	}
}

func TestNew_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		items  []Item
		matrix [][]float64
	}{
		{"no items", nil, nil},
		{"row count mismatch", sampleItems(), sampleMatrix()[:2]},
		{"ragged row", sampleItems(), [][]float64{{1, 0.9, 0.2}, {0.9, 1}, {0.2, 0.1, 1}}},
		{"nan score", sampleItems(), [][]float64{{1, math.NaN(), 0.2}, {0.9, 1, 0.1}, {0.2, 0.1, 1}}},
		{"inf score", sampleItems(), [][]float64{{1, 0.9, 0.2}, {0.9, 1, math.Inf(1)}, {0.2, 0.1, 1}}},
		{"empty title", []Item{{ID: "1", Title: "A"}, {ID: "2", Title: " "}, {ID: "3", Title: "C"}}, sampleMatrix()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := New(tt.items, tt.matrix)
			if !errors.Is(err, ErrInvalidCatalog) {
				t.Errorf("New() error = %v, want ErrInvalidCatalog", err)
			}
		})
	}
}

func TestLookupTitle(t *testing.T) {
	t.Parallel()

	items := []Item{
		{ID: "1", Title: "A"},
		{ID: "2", Title: "Twin"},
		{ID: "3", Title: "Twin"},
	}
	c, err := New(items, sampleMatrix())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if idx, err := c.LookupTitle("A"); err != nil || idx != 0 {
		t.Errorf("LookupTitle(A) = %d, %v; want 0, nil", idx, err)
	}
	if _, err := c.LookupTitle("a"); !errors.Is(err, ErrTitleNotFound) {
		t.Errorf("lookup must be exact, got %v", err)
	}
	if _, err := c.LookupTitle("Missing"); !errors.Is(err, ErrTitleNotFound) {
		t.Errorf("LookupTitle(Missing) error = %v, want ErrTitleNotFound", err)
	}
	if _, err := c.LookupTitle("Twin"); !errors.Is(err, ErrAmbiguousTitle) {
		t.Errorf("LookupTitle(Twin) error = %v, want ErrAmbiguousTitle", err)
	}
}

func TestByExternalID(t *testing.T) {
	t.Parallel()

	c, err := New(sampleItems(), sampleMatrix())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	item, ok := c.ByExternalID("tmdb-2")
	if !ok || item.Title != "B" {
		t.Errorf("ByExternalID(tmdb-2) = %+v, %v", item, ok)
	}
	if _, ok := c.ByExternalID("nope"); ok {
		t.Error("expected unknown external id to be missing")
	}
}

func TestItemsReturnsCopy(t *testing.T) {
	t.Parallel()

	c, err := New(sampleItems(), sampleMatrix())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	items := c.Items()
	items[0].Title = "mutated"
	if c.Item(0).Title != "A" {
		t.Error("Items() must not expose internal storage")
	}
}

func TestJoinOverview(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   []string
		want string
	}{
		{nil, ""},
		{[]string{"In", "the", "22nd", "century,"}, "In the 22nd century,"},
		{[]string{" padded ", "", "words"}, "padded words"},
	}
	for _, tt := range tests {
		if got := JoinOverview(tt.in); got != tt.want {
			t.Errorf("JoinOverview(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
