// Cinematch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package config provides centralized configuration management for Cinematch.

Configuration is layered with Koanf v2:

 1. Defaults: built-in values from defaultConfig()
 2. Config File: optional YAML (CONFIG_PATH, ./config.yaml, /etc/cinematch/config.yaml)
 3. Environment Variables: explicit mapping in envTransformFunc

Environment always wins. Unmapped environment variables are ignored.

# Environment Variables

TMDB (TMDBConfig):
  - TMDB_API_KEY: API key (required, no degraded mode)
  - TMDB_BASE_URL: API root (default: https://api.themoviedb.org/3)
  - TMDB_IMAGE_BASE_URL: image CDN root (default: https://image.tmdb.org/t/p)
  - TMDB_POSTER_SIZE: poster size segment (default: w500)
  - TMDB_TIMEOUT: per-call timeout (default: 5s)
  - TMDB_RATE_LIMIT: outbound requests per second (default: 40)

Catalog (CatalogConfig):
  - CATALOG_ITEMS_PATH: item dataset (default: data/movies.json)
  - CATALOG_SIMILARITY_PATH: similarity matrix (default: data/similarity.json)
  - CATALOG_FORMAT: json, csv or parquet (default: by file extension)

Cache (CacheConfig):
  - CACHE_TTL: metadata freshness window (default: 1h)
  - CACHE_SWEEP_INTERVAL: stale entry sweep period (default: 5m)
  - CACHE_PERSIST_PATH: BadgerDB directory for the persistent tier (default: memory only)

Recommendations (RecommendConfig):
  - RECOMMEND_DEFAULT_RESULTS: n when the request omits it (default: 5)
  - RECOMMEND_MAX_RESULTS: upper bound for n (default: 50)
  - RECOMMEND_MAX_CONCURRENCY: parallel metadata lookups per request (default: 8)
  - RECOMMEND_PLACEHOLDER_URL: image shown when no poster exists

HTTP Server (ServerConfig):
  - HTTP_HOST, HTTP_PORT (default: 0.0.0.0:8501)
  - HTTP_TIMEOUT (default: 30s)
  - CORS_ORIGINS: comma-separated (default: *)
  - RATE_LIMIT_RPM: requests per minute per IP, 0 disables (default: 120)

Events (EventsConfig):
  - EVENTS_ENABLED (default: true)
  - NATS_URL: publish through NATS instead of the in-process channel

Logging (LoggingConfig):
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER, LOG_FILE

# Usage

	cfg, err := config.LoadWithKoanf()
	if err != nil {
	    logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

The Config struct is not modified after LoadWithKoanf returns and is safe for
concurrent reads.
*/
package config
