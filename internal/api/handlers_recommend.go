// Cinematch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/tomtom215/cinematch/internal/validation"
)

// Recommendations returns the n movies most similar to title
//
// @Summary Get recommendations
// @Description Ranks the catalog by similarity to the title and attaches poster, trailer and TMDB links. Order is rank order.
// @Tags Recommendations
// @Produce json
// @Param title query string true "Exact catalog title"
// @Param n query int false "Number of results (default 5)"
// @Success 200 {object} models.APIResponse{data=models.RecommendationResponse}
// @Failure 400 {object} models.APIResponse "Invalid title or n"
// @Failure 404 {object} models.APIResponse "Title not found or ambiguous"
// @Failure 429 {object} models.APIResponse "Rate limit exceeded"
// @Router /recommendations [get]
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	n, verr := getIntParam(r, "n", h.opts.DefaultResults)
	if verr != nil {
		respondValidationError(w, r, verr)
		return
	}

	req := RecommendationsRequest{
		Title: r.URL.Query().Get("title"),
		N:     n,
	}
	if verr := validateRequest(&req); verr != nil {
		respondValidationError(w, r, verr)
		return
	}
	if req.N > h.opts.MaxResults {
		respondValidationError(w, r, validation.NewFieldError("n", "max", req.N,
			fmt.Sprintf("n must be at most %d", h.opts.MaxResults)))
		return
	}

	resp, err := h.engine.Recommend(r.Context(), req.Title, req.N)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	if h.publisher != nil {
		h.publisher.PublishServed(r.Context(), req.Title, req.N, len(resp.Items))
	}

	respondSuccess(w, r, start, resp)
}
