// Cinematch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

// RecommendationsRequest is the query of GET /recommendations.
// The upper bound on N comes from configuration and is checked separately.
type RecommendationsRequest struct {
	Title string `query:"title" validate:"notblank,max=500"`
	N     int    `query:"n" validate:"min=1"`
}

// DetailRequest is the query of GET /movies/detail.
type DetailRequest struct {
	Title string `query:"title" validate:"notblank,max=500"`
}

// MediaRequest carries the path parameter of the poster and trailer routes.
type MediaRequest struct {
	ExternalID string `query:"externalID" validate:"externalid"`
}

// PopularRequest is the query of GET /stats/popular.
type PopularRequest struct {
	Limit int `query:"limit" validate:"min=1,max=100"`
}
