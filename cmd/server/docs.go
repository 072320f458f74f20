// Cinematch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package main provides the Cinematch HTTP server
//
// Cinematch API serves content-based movie recommendations over a
// precomputed similarity matrix, enriched with TMDB posters and trailers.
//
// @title Cinematch API
// @version 1.0
// @description Content-based movie recommendations over a precomputed similarity matrix, enriched with TMDB posters and trailers.
// @description
// @description ## Rate Limiting
// @description
// @description Default rate limit: 120 requests per minute per IP address (RATE_LIMIT_RPM).
// @description The health endpoint is not rate limited.
// @description
// @description ## Error Responses
// @description
// @description All error responses follow this format:
// @description ```json
// @description {
// @description   "status": "error",
// @description   "data": null,
// @description   "error": {
// @description     "code": "NOT_FOUND",
// @description     "message": "movie not found",
// @description     "details": {}
// @description   },
// @description   "metadata": {
// @description     "timestamp": "2026-01-01T12:00:00Z"
// @description   }
// @description }
// @description ```
//
// @contact.name GitHub Repository
// @contact.url https://github.com/tomtom215/cinematch/issues
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @host localhost:8501
// @BasePath /api/v1
// @schemes http https
//
// @tag.name Core
// @tag.description Health and liveness
//
// @tag.name Movies
// @tag.description Catalog browsing and media lookups
//
// @tag.name Recommendations
// @tag.description Ranked similar movies with posters, trailers and links
//
// @tag.name Stats
// @tag.description Recommendation activity
//
// @tag.name Cache
// @tag.description Metadata cache administration
package main
