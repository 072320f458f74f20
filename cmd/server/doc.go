// Cinematch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Cinematch serves movie recommendations over HTTP.

Startup order:

 1. Configuration: koanf v2 (defaults, optional YAML file, environment)
 2. Logging: zerolog, optionally rotated to a file with lumberjack
 3. Catalog: item dataset and similarity matrix (JSON, or CSV/Parquet via DuckDB)
 4. TMDB client: rate limited, behind a circuit breaker
 5. Metadata cache: in-memory TTL cache, optional BadgerDB tier
 6. Recommendation engine
 7. Event bus: in-process channel or NATS, plus the popularity router
 8. Supervisor tree: suture v4 with cache, messaging and api layers

Any catalog or configuration error is fatal. SIGINT and SIGTERM cancel the
root context; the HTTP server drains for up to ten seconds.

# Configuration

	TMDB_API_KEY=...                       # required
	CATALOG_ITEMS_PATH=data/movies.json
	CATALOG_SIMILARITY_PATH=data/similarity.json
	CACHE_TTL=1h
	CACHE_NEGATIVE_TTL=1m                  # retry window after a TMDB outage
	CACHE_PERSIST_PATH=/var/lib/cinematch  # empty keeps the cache in memory
	HTTP_PORT=8501
	NATS_URL=nats://localhost:4222         # empty uses an in-process bus
	LOG_LEVEL=info
	CACHE_PURGE_ENABLED=false              # mounts unauthenticated DELETE /api/v1/cache

See internal/config for the full list. A config.yaml in the working
directory or /etc/cinematch is read before the environment.

# Endpoints

The API lives under /api/v1; Prometheus metrics are at /metrics and the
OpenAPI UI at /swagger/.
*/
package main
