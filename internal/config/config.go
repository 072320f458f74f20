// Cinematch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration loaded from defaults, an optional
// YAML file and environment variables.
//
//	cfg, err := config.LoadWithKoanf()
//	addr := cfg.Server.Addr()
type Config struct {
	TMDB      TMDBConfig      `koanf:"tmdb"`
	Catalog   CatalogConfig   `koanf:"catalog"`
	Cache     CacheConfig     `koanf:"cache"`
	Recommend RecommendConfig `koanf:"recommend"`
	Server    ServerConfig    `koanf:"server"`
	Events    EventsConfig    `koanf:"events"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// TMDBConfig holds The Movie Database client settings.
type TMDBConfig struct {
	APIKey            string        `koanf:"api_key"`
	BaseURL           string        `koanf:"base_url"`
	ImageBaseURL      string        `koanf:"image_base_url"`
	PosterSize        string        `koanf:"poster_size"`
	MovieBaseURL      string        `koanf:"movie_base_url"`
	Timeout           time.Duration `koanf:"timeout"`
	RequestsPerSecond float64       `koanf:"requests_per_second"`
	Burst             int           `koanf:"burst"`
}

// CatalogConfig points at the item dataset and the similarity matrix.
type CatalogConfig struct {
	ItemsPath      string `koanf:"items_path"`
	SimilarityPath string `koanf:"similarity_path"`

	// Format forces json, csv or parquet. Empty selects by extension.
	Format string `koanf:"format"`
}

// CacheConfig controls the metadata cache.
type CacheConfig struct {
	TTL           time.Duration `koanf:"ttl"`
	SweepInterval time.Duration `koanf:"sweep_interval"`

	// NegativeTTL is how long a lookup TMDB never answered stays cached.
	NegativeTTL time.Duration `koanf:"negative_ttl"`

	// PersistPath enables the BadgerDB tier when non-empty.
	PersistPath string `koanf:"persist_path"`
}

// RecommendConfig bounds recommendation requests.
type RecommendConfig struct {
	DefaultResults int    `koanf:"default_results"`
	MaxResults     int    `koanf:"max_results"`
	MaxConcurrency int    `koanf:"max_concurrency"`
	PlaceholderURL string `koanf:"placeholder_url"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host         string        `koanf:"host"`
	Port         int           `koanf:"port"`
	Timeout      time.Duration `koanf:"timeout"`
	CORSOrigins  []string      `koanf:"cors_origins"`
	RateLimitRPM int           `koanf:"rate_limit_rpm"`

	// CachePurgeEnabled mounts the unauthenticated cache purge endpoints.
	CachePurgeEnabled bool `koanf:"cache_purge_enabled"`
}

// Addr returns host:port for net/http.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// EventsConfig selects the event bus transport.
type EventsConfig struct {
	Enabled bool `koanf:"enabled"`

	// NATSURL switches publishing from the in-process channel to NATS.
	NATSURL string `koanf:"nats_url"`

	// Topic for recommendation activity.
	Topic string `koanf:"topic"`

	CloseTimeout time.Duration `koanf:"close_timeout"`
}

// UseNATS reports whether events go through a NATS server.
func (e EventsConfig) UseNATS() bool {
	return e.Enabled && e.NATSURL != ""
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
	File   string `koanf:"file"`
}
