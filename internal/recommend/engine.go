// Cinematch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/iter"

	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/metadata"
	"github.com/tomtom215/cinematch/internal/metrics"
	"github.com/tomtom215/cinematch/internal/models"
)

// Response is the enriched recommendation payload.
type Response = models.RecommendationResponse

// EnrichedRecommendation is one ranked result with media links.
type EnrichedRecommendation = models.EnrichedRecommendation

// MovieDetail is the selected-movie view.
type MovieDetail = models.MovieDetail

// MetadataSource answers poster and trailer lookups. *metadata.Service
// implements it.
type MetadataSource interface {
	PosterURL(ctx context.Context, externalID string) metadata.Result
	TrailerURL(ctx context.Context, externalID string) metadata.Result
}

// LinkBuilder builds the public page URL of a movie. *tmdb.Client
// implements it.
type LinkBuilder interface {
	MovieURL(externalID string) string
}

// Engine ranks and enriches recommendations.
type Engine struct {
	catalog *catalog.Catalog
	ranker  *Ranker
	meta    MetadataSource
	links   LinkBuilder
	cfg     Config
	logger  zerolog.Logger
}

// NewEngine wires a catalog, a metadata source and a link builder.
func NewEngine(cat *catalog.Catalog, meta MetadataSource, links LinkBuilder, cfg Config) (*Engine, error) {
	if cat == nil {
		return nil, errors.New("recommend: catalog is required")
	}
	if meta == nil {
		return nil, errors.New("recommend: metadata source is required")
	}
	if links == nil {
		return nil, errors.New("recommend: link builder is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	metrics.CatalogItems.Set(float64(cat.Len()))

	return &Engine{
		catalog: cat,
		ranker:  NewRanker(cat),
		meta:    meta,
		links:   links,
		cfg:     cfg,
		logger:  logging.WithComponent("recommend"),
	}, nil
}

// lookupTask is one metadata lookup in a request's fan-out.
type lookupTask struct {
	externalID string
	kind       metadata.Kind
}

// Recommend ranks the n movies most similar to title and attaches poster,
// trailer and TMDB page links, preserving rank order.
func (e *Engine) Recommend(ctx context.Context, title string, n int) (*Response, error) {
	start := time.Now()
	requestID := logging.RequestIDFromContext(ctx)

	recs, err := e.ranker.Recommend(title, n)
	if err != nil {
		metrics.RecordRecommendation(outcomeFor(err), time.Since(start))
		return nil, err
	}

	// Two lookups per result, flattened so both kinds of every result run in
	// one bounded fan-out. Map returns results in input order.
	tasks := make([]lookupTask, 0, 2*len(recs))
	for _, r := range recs {
		tasks = append(tasks,
			lookupTask{externalID: r.ExternalID, kind: metadata.KindPoster},
			lookupTask{externalID: r.ExternalID, kind: metadata.KindTrailer},
		)
	}
	results := iter.Mapper[lookupTask, metadata.Result]{MaxGoroutines: e.cfg.MaxConcurrency}.
		Map(tasks, func(t *lookupTask) metadata.Result {
			return e.lookup(ctx, t.kind, t.externalID)
		})

	items := make([]EnrichedRecommendation, len(recs))
	for i, r := range recs {
		items[i] = e.enrich(r, results[2*i], results[2*i+1])
	}

	elapsed := time.Since(start)
	metrics.RecordRecommendation("success", elapsed)

	logging.Ctx(ctx).Debug().
		Str("title", title).
		Int("requested", n).
		Int("returned", len(items)).
		Dur("elapsed", elapsed).
		Msg("Recommendation complete")

	return &Response{
		Query:           title,
		Requested:       n,
		Items:           items,
		TotalCandidates: e.ranker.Candidates(),
		Metadata: models.RecommendationMetadata{
			RequestID:   requestID,
			LatencyMS:   elapsed.Milliseconds(),
			GeneratedAt: start.UTC(),
		},
	}, nil
}

// Detail returns the selected movie with its overview and media.
func (e *Engine) Detail(ctx context.Context, title string) (*MovieDetail, error) {
	idx, err := e.catalog.LookupTitle(title)
	if err != nil {
		return nil, &NotFoundError{Title: title, Reason: err}
	}
	item := e.catalog.Item(idx)

	var poster, trailer metadata.Result
	var wg conc.WaitGroup
	wg.Go(func() { poster = e.meta.PosterURL(ctx, item.ExternalID) })
	wg.Go(func() { trailer = e.meta.TrailerURL(ctx, item.ExternalID) })
	wg.Wait()

	detail := &MovieDetail{
		Title:      item.Title,
		ExternalID: item.ExternalID,
		Overview:   item.Overview,
		PosterURL:  poster.Ptr(),
		TrailerURL: trailer.Ptr(),
		TMDBURL:    e.links.MovieURL(item.ExternalID),
	}
	if !poster.Present {
		detail.PlaceholderURL = e.cfg.PlaceholderURL
	}
	return detail, nil
}

// Media returns one cached poster or trailer lookup for a catalog movie.
// Identifiers outside the catalog are reported as not found.
func (e *Engine) Media(ctx context.Context, kind metadata.Kind, externalID string) (*models.MediaLookup, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown media kind %q", kind)
	}
	if _, ok := e.catalog.ByExternalID(externalID); !ok {
		return nil, &NotFoundError{Title: externalID, Reason: catalog.ErrTitleNotFound}
	}

	res := e.lookup(ctx, kind, externalID)
	return &models.MediaLookup{
		ExternalID: externalID,
		Kind:       string(kind),
		URL:        res.Ptr(),
		Found:      res.Present,
	}, nil
}

// Titles lists every movie in catalog order.
func (e *Engine) Titles() []models.MovieSummary {
	items := e.catalog.Items()
	out := make([]models.MovieSummary, len(items))
	for i, item := range items {
		out[i] = models.MovieSummary{Title: item.Title, ExternalID: item.ExternalID}
	}
	return out
}

// CatalogSize returns the number of movies.
func (e *Engine) CatalogSize() int {
	return e.catalog.Len()
}

func (e *Engine) lookup(ctx context.Context, kind metadata.Kind, externalID string) metadata.Result {
	switch kind {
	case metadata.KindPoster:
		return e.meta.PosterURL(ctx, externalID)
	case metadata.KindTrailer:
		return e.meta.TrailerURL(ctx, externalID)
	default:
		return metadata.Absent()
	}
}

func (e *Engine) enrich(r Recommendation, poster, trailer metadata.Result) EnrichedRecommendation {
	out := EnrichedRecommendation{
		Rank:       r.Rank,
		Title:      r.Title,
		ExternalID: r.ExternalID,
		Score:      r.Score,
		PosterURL:  poster.Ptr(),
		TrailerURL: trailer.Ptr(),
		TMDBURL:    e.links.MovieURL(r.ExternalID),
	}
	if !poster.Present {
		out.PlaceholderURL = e.cfg.PlaceholderURL
	}
	return out
}

// outcomeFor maps a ranker error to a metrics outcome label.
func outcomeFor(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrInvalidCount):
		return "invalid"
	default:
		return "error"
	}
}
