// Cinematch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package models

import "time"

// EnrichedRecommendation is one ranked movie with its media links.
//
// PosterURL and TrailerURL are null when TMDB has no such media. Clients show
// PlaceholderURL in place of a missing poster.
type EnrichedRecommendation struct {
	Rank           int     `json:"rank"`
	Title          string  `json:"title"`
	ExternalID     string  `json:"external_id"`
	Score          float64 `json:"score"`
	PosterURL      *string `json:"poster_url"`
	TrailerURL     *string `json:"trailer_url"`
	TMDBURL        string  `json:"tmdb_url"`
	PlaceholderURL string  `json:"placeholder_url,omitempty"`
}

// RecommendationMetadata describes how a recommendation response was produced.
type RecommendationMetadata struct {
	RequestID   string    `json:"request_id,omitempty"`
	LatencyMS   int64     `json:"latency_ms"`
	GeneratedAt time.Time `json:"generated_at"`
}

// RecommendationResponse is the payload of GET /api/v1/recommendations.
//
// Items are in rank order. TotalCandidates is the number of other movies in
// the catalog, which bounds len(Items).
type RecommendationResponse struct {
	Query           string                   `json:"query"`
	Requested       int                      `json:"requested"`
	Items           []EnrichedRecommendation `json:"items"`
	TotalCandidates int                      `json:"total_candidates"`
	Metadata        RecommendationMetadata   `json:"metadata"`
}

// MovieDetail is the selected-movie view: overview plus media.
type MovieDetail struct {
	Title          string  `json:"title"`
	ExternalID     string  `json:"external_id"`
	Overview       string  `json:"overview"`
	PosterURL      *string `json:"poster_url"`
	TrailerURL     *string `json:"trailer_url"`
	TMDBURL        string  `json:"tmdb_url"`
	PlaceholderURL string  `json:"placeholder_url,omitempty"`
}

// MovieSummary is a picker entry.
type MovieSummary struct {
	Title      string `json:"title"`
	ExternalID string `json:"external_id"`
}

// MovieList is the payload of GET /api/v1/movies.
type MovieList struct {
	Total  int            `json:"total"`
	Movies []MovieSummary `json:"movies"`
}

// MediaLookup is the payload of the single poster and trailer endpoints.
type MediaLookup struct {
	ExternalID string  `json:"external_id"`
	Kind       string  `json:"kind"`
	URL        *string `json:"url"`
	Found      bool    `json:"found"`
}

// PopularTitle is one row of GET /api/v1/stats/popular.
type PopularTitle struct {
	Title    string    `json:"title"`
	Count    int64     `json:"count"`
	LastSeen time.Time `json:"last_seen"`
}

// PopularTitles wraps the popularity ranking.
type PopularTitles struct {
	Titles      []PopularTitle `json:"titles"`
	TotalServed int64          `json:"total_served"`
}

// CachePurgeResult is the payload of DELETE /api/v1/cache and
// DELETE /api/v1/cache/{externalID}.
type CachePurgeResult struct {
	ExternalID string    `json:"external_id,omitempty"`
	Purged     int       `json:"purged"`
	PurgedAt   time.Time `json:"purged_at"`
}

// HealthStatus is the payload of GET /api/v1/health.
type HealthStatus struct {
	Status        string  `json:"status"`
	Version       string  `json:"version"`
	CatalogSize   int     `json:"catalog_size"`
	CacheEntries  int     `json:"cache_entries"`
	CacheHitRate  float64 `json:"cache_hit_rate"`
	EventsEnabled bool    `json:"events_enabled"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}
