// Cinematch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/models"
)

// PopularTitles returns the most requested query titles
//
// @Summary Most requested titles
// @Description Titles ordered by how often they were used as a recommendation query. Empty when events are disabled.
// @Tags Stats
// @Produce json
// @Param limit query int false "Maximum titles (1-100, default 10)"
// @Success 200 {object} models.APIResponse{data=models.PopularTitles}
// @Failure 400 {object} models.APIResponse "Invalid limit"
// @Router /stats/popular [get]
func (h *Handler) PopularTitles(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	limit, verr := getIntParam(r, "limit", DefaultPopularLimit)
	if verr != nil {
		respondValidationError(w, r, verr)
		return
	}
	req := PopularRequest{Limit: limit}
	if verr := validateRequest(&req); verr != nil {
		respondValidationError(w, r, verr)
		return
	}

	if h.popularity == nil {
		respondSuccess(w, r, start, models.PopularTitles{Titles: []models.PopularTitle{}})
		return
	}
	respondSuccess(w, r, start, h.popularity.Snapshot(req.Limit))
}

// PurgeCache drops every cached poster and trailer lookup
//
// @Summary Purge metadata cache
// @Description Only mounted when CACHE_PURGE_ENABLED=true. The endpoint is unauthenticated.
// @Tags Cache
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.CachePurgeResult}
// @Failure 500 {object} models.APIResponse "Persistent cache could not be cleared"
// @Router /cache [delete]
func (h *Handler) PurgeCache(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if h.cache == nil {
		respondSuccess(w, r, start, models.CachePurgeResult{PurgedAt: time.Now().UTC()})
		return
	}

	purged := h.cache.Stats().Entries
	if err := h.cache.Purge(); err != nil {
		respondServiceError(w, r, err)
		return
	}

	logging.Ctx(r.Context()).Info().Int("purged", purged).Msg("Metadata cache purged")
	respondSuccess(w, r, start, models.CachePurgeResult{
		Purged:   purged,
		PurgedAt: time.Now().UTC(),
	})
}

// InvalidateMovie drops the cached poster and trailer lookups of one movie
//
// @Summary Invalidate one movie's metadata
// @Description Only mounted when CACHE_PURGE_ENABLED=true. The endpoint is unauthenticated.
// @Tags Cache
// @Produce json
// @Param externalID path string true "TMDB movie id"
// @Success 200 {object} models.APIResponse{data=models.CachePurgeResult}
// @Failure 400 {object} models.APIResponse "Invalid movie id"
// @Router /cache/{externalID} [delete]
func (h *Handler) InvalidateMovie(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req := MediaRequest{ExternalID: chi.URLParam(r, "externalID")}
	if verr := validateRequest(&req); verr != nil {
		respondValidationError(w, r, verr)
		return
	}

	res := models.CachePurgeResult{ExternalID: req.ExternalID}
	if h.cache != nil {
		res.Purged = h.cache.Invalidate(req.ExternalID)
	}
	res.PurgedAt = time.Now().UTC()

	logging.Ctx(r.Context()).Info().
		Str("external_id", req.ExternalID).
		Int("purged", res.Purged).
		Msg("Movie metadata invalidated")
	respondSuccess(w, r, start, res)
}
