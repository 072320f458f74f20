// Cinematch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/cinematch/config.yaml",
	"/etc/cinematch/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// DefaultPlaceholderURL is shown by clients when a movie has no poster.
const DefaultPlaceholderURL = "https://via.placeholder.com/300x450?text=No+Image"

// DefaultTopic carries recommendation activity events.
const DefaultTopic = "recommendation.served"

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		TMDB: TMDBConfig{
			APIKey:            "", // Required
			BaseURL:           "https://api.themoviedb.org/3",
			ImageBaseURL:      "https://image.tmdb.org/t/p",
			PosterSize:        "w500",
			MovieBaseURL:      "https://www.themoviedb.org/movie",
			Timeout:           5 * time.Second,
			RequestsPerSecond: 40,
			Burst:             20,
		},
		Catalog: CatalogConfig{
			ItemsPath:      "data/movies.json",
			SimilarityPath: "data/similarity.json",
			Format:         "",
		},
		Cache: CacheConfig{
			TTL:           time.Hour,
			SweepInterval: 5 * time.Minute,
			NegativeTTL:   time.Minute,
			PersistPath:   "", // Memory only
		},
		Recommend: RecommendConfig{
			DefaultResults: 5,
			MaxResults:     50,
			MaxConcurrency: 8,
			PlaceholderURL: DefaultPlaceholderURL,
		},
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         8501,
			Timeout:      30 * time.Second,
			CORSOrigins:  []string{"*"},
			RateLimitRPM: 120,

			CachePurgeEnabled: false,
		},
		Events: EventsConfig{
			Enabled:      true,
			NATSURL:      "",
			Topic:        DefaultTopic,
			CloseTimeout: 10 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
			File:   "",
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
//
// The result is validated before it is returned.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"server.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars arrive as strings; YAML lists are left alone.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps lowercased environment variable names to koanf paths.
var envMappings = map[string]string{
	// TMDB
	"tmdb_api_key":        "tmdb.api_key",
	"tmdb_base_url":       "tmdb.base_url",
	"tmdb_image_base_url": "tmdb.image_base_url",
	"tmdb_poster_size":    "tmdb.poster_size",
	"tmdb_movie_base_url": "tmdb.movie_base_url",
	"tmdb_timeout":        "tmdb.timeout",
	"tmdb_rate_limit":     "tmdb.requests_per_second",
	"tmdb_rate_burst":     "tmdb.burst",

	// Catalog
	"catalog_items_path":      "catalog.items_path",
	"catalog_similarity_path": "catalog.similarity_path",
	"catalog_format":          "catalog.format",

	// Cache
	"cache_ttl":            "cache.ttl",
	"cache_sweep_interval": "cache.sweep_interval",
	"cache_negative_ttl":   "cache.negative_ttl",
	"cache_persist_path":   "cache.persist_path",

	// Recommendations
	"recommend_default_results": "recommend.default_results",
	"recommend_max_results":     "recommend.max_results",
	"recommend_max_concurrency": "recommend.max_concurrency",
	"recommend_placeholder_url": "recommend.placeholder_url",

	// Server
	"http_host":      "server.host",
	"http_port":      "server.port",
	"http_timeout":   "server.timeout",
	"cors_origins":   "server.cors_origins",
	"rate_limit_rpm": "server.rate_limit_rpm",

	"cache_purge_enabled": "server.cache_purge_enabled",

	// Events
	"events_enabled":       "events.enabled",
	"nats_url":             "events.nats_url",
	"events_topic":         "events.topic",
	"events_close_timeout": "events.close_timeout",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
	"log_file":   "logging.file",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - TMDB_API_KEY -> tmdb.api_key
//   - HTTP_PORT -> server.port
//   - NATS_URL -> events.nats_url
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}

	// For unmapped keys, return empty string to skip them
	// This prevents random environment variables from polluting config
	return ""
}
