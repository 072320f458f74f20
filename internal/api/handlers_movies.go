// Cinematch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/cinematch/internal/metadata"
	"github.com/tomtom215/cinematch/internal/models"
)

// Movies lists every title for the picker
//
// @Summary List movies
// @Description Returns every catalog title in catalog order
// @Tags Movies
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.MovieList}
// @Router /movies [get]
func (h *Handler) Movies(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	titles := h.engine.Titles()
	respondSuccess(w, r, start, models.MovieList{
		Total:  len(titles),
		Movies: titles,
	})
}

// MovieDetail returns the selected movie with its poster and trailer
//
// @Summary Get movie detail
// @Description Returns overview, poster, trailer and TMDB link for an exact title
// @Tags Movies
// @Produce json
// @Param title query string true "Exact catalog title"
// @Success 200 {object} models.APIResponse{data=models.MovieDetail}
// @Failure 400 {object} models.APIResponse "Missing title"
// @Failure 404 {object} models.APIResponse "Title not found or ambiguous"
// @Router /movies/detail [get]
func (h *Handler) MovieDetail(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req := DetailRequest{Title: r.URL.Query().Get("title")}
	if verr := validateRequest(&req); verr != nil {
		respondValidationError(w, r, verr)
		return
	}

	detail, err := h.engine.Detail(r.Context(), req.Title)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondSuccess(w, r, start, detail)
}

// Poster returns the cached poster lookup for a catalog movie
//
// @Summary Get movie poster
// @Tags Movies
// @Produce json
// @Param externalID path string true "TMDB movie id"
// @Success 200 {object} models.APIResponse{data=models.MediaLookup}
// @Failure 404 {object} models.APIResponse "Movie not in catalog"
// @Router /movies/{externalID}/poster [get]
func (h *Handler) Poster(w http.ResponseWriter, r *http.Request) {
	h.media(w, r, metadata.KindPoster)
}

// Trailer returns the cached trailer lookup for a catalog movie
//
// @Summary Get movie trailer
// @Tags Movies
// @Produce json
// @Param externalID path string true "TMDB movie id"
// @Success 200 {object} models.APIResponse{data=models.MediaLookup}
// @Failure 404 {object} models.APIResponse "Movie not in catalog"
// @Router /movies/{externalID}/trailer [get]
func (h *Handler) Trailer(w http.ResponseWriter, r *http.Request) {
	h.media(w, r, metadata.KindTrailer)
}

func (h *Handler) media(w http.ResponseWriter, r *http.Request, kind metadata.Kind) {
	start := time.Now()

	req := MediaRequest{ExternalID: chi.URLParam(r, "externalID")}
	if verr := validateRequest(&req); verr != nil {
		respondValidationError(w, r, verr)
		return
	}

	lookup, err := h.engine.Media(r.Context(), kind, req.ExternalID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondSuccess(w, r, start, lookup)
}
