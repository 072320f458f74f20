// Cinematch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/cinematch/internal/models"
)

// Health handles health check requests
//
// @Summary Get service health
// @Description Returns liveness, catalog size and metadata cache statistics
// @Tags Core
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.HealthStatus} "Health status retrieved successfully"
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	status := models.HealthStatus{
		Status:        "healthy",
		Version:       h.opts.Version,
		CatalogSize:   h.engine.CatalogSize(),
		EventsEnabled: h.publisher != nil,
		UptimeSeconds: time.Since(h.startTime).Seconds(),
	}
	if h.cache != nil {
		status.CacheEntries = h.cache.Stats().Entries
		status.CacheHitRate = h.cache.HitRate()
	}
	if status.CatalogSize == 0 {
		status.Status = "degraded"
	}

	respondSuccess(w, r, start, status)
}
