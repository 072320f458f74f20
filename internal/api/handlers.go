// Cinematch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"context"
	"time"

	"github.com/tomtom215/cinematch/internal/cache"
	"github.com/tomtom215/cinematch/internal/metadata"
	"github.com/tomtom215/cinematch/internal/models"
)

// Recommender is the recommendation engine surface the handlers use.
type Recommender interface {
	Recommend(ctx context.Context, title string, n int) (*models.RecommendationResponse, error)
	Detail(ctx context.Context, title string) (*models.MovieDetail, error)
	Media(ctx context.Context, kind metadata.Kind, externalID string) (*models.MediaLookup, error)
	Titles() []models.MovieSummary
	CatalogSize() int
}

// MetadataCache exposes the metadata cache for health and purge.
type MetadataCache interface {
	Purge() error
	Invalidate(externalID string) int
	Stats() cache.Stats
	HitRate() float64
}

// EventPublisher records served recommendations. Implementations must not
// block on delivery failures.
type EventPublisher interface {
	PublishServed(ctx context.Context, title string, n, resultCount int)
}

// PopularitySource reports the most requested titles.
type PopularitySource interface {
	Snapshot(limit int) models.PopularTitles
}

// Options tunes request defaults.
type Options struct {
	DefaultResults int
	MaxResults     int
	Version        string
}

// Default request bounds.
const (
	DefaultResults      = 5
	DefaultMaxResults   = 50
	DefaultPopularLimit = 10
)

// Handler serves the /api/v1 routes.
type Handler struct {
	engine     Recommender
	cache      MetadataCache
	publisher  EventPublisher
	popularity PopularitySource
	opts       Options
	startTime  time.Time
}

// NewHandler creates a handler. Zero options take package defaults.
func NewHandler(engine Recommender, metaCache MetadataCache, opts Options) *Handler {
	if opts.MaxResults <= 0 {
		opts.MaxResults = DefaultMaxResults
	}
	if opts.DefaultResults <= 0 {
		opts.DefaultResults = DefaultResults
	}
	if opts.DefaultResults > opts.MaxResults {
		opts.DefaultResults = opts.MaxResults
	}
	if opts.Version == "" {
		opts.Version = "dev"
	}
	return &Handler{
		engine:    engine,
		cache:     metaCache,
		opts:      opts,
		startTime: time.Now(),
	}
}

// WithEvents enables event publishing and the popularity endpoint.
func (h *Handler) WithEvents(pub EventPublisher, pop PopularitySource) *Handler {
	h.publisher = pub
	h.popularity = pop
	return h
}
