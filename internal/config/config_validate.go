// Cinematch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package config

import (
	"fmt"
	"strings"
	"time"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateTMDB,
		c.validateCatalog,
		c.validateCache,
		c.validateRecommend,
		c.validateServer,
		c.validateEvents,
		c.validateLogging,
	}

	for _, validator := range validators {
		if err := validator(); err != nil {
			return err
		}
	}
	return nil
}

// validateTMDB validates TMDB client configuration. The API key is required.
func (c *Config) validateTMDB() error {
	key := strings.TrimSpace(c.TMDB.APIKey)
	if key == "" {
		return fmt.Errorf("TMDB_API_KEY is required")
	}
	if containsPlaceholder(key) {
		return fmt.Errorf("TMDB_API_KEY appears to be a placeholder value")
	}

	if err := validateBaseURL(c.TMDB.BaseURL, "TMDB_BASE_URL"); err != nil {
		return err
	}
	if err := validateBaseURL(c.TMDB.ImageBaseURL, "TMDB_IMAGE_BASE_URL"); err != nil {
		return err
	}
	if err := validateBaseURL(c.TMDB.MovieBaseURL, "TMDB_MOVIE_BASE_URL"); err != nil {
		return err
	}
	if c.TMDB.PosterSize == "" || strings.ContainsAny(c.TMDB.PosterSize, "/?#") {
		return fmt.Errorf("TMDB_POSTER_SIZE must be a single path segment such as w500, got %q", c.TMDB.PosterSize)
	}
	if c.TMDB.Timeout < 100*time.Millisecond || c.TMDB.Timeout > time.Minute {
		return fmt.Errorf("TMDB_TIMEOUT must be between 100ms and 1m")
	}
	if c.TMDB.RequestsPerSecond < 0 {
		return fmt.Errorf("TMDB_RATE_LIMIT must not be negative")
	}
	if c.TMDB.Burst < 0 {
		return fmt.Errorf("TMDB_RATE_BURST must not be negative")
	}
	return nil
}

// validCatalogFormats defines the accepted explicit catalog formats
var validCatalogFormats = map[string]bool{
	"":        true,
	"json":    true,
	"csv":     true,
	"parquet": true,
}

// validateCatalog validates catalog file settings
func (c *Config) validateCatalog() error {
	if c.Catalog.ItemsPath == "" {
		return fmt.Errorf("CATALOG_ITEMS_PATH is required")
	}
	if c.Catalog.SimilarityPath == "" {
		return fmt.Errorf("CATALOG_SIMILARITY_PATH is required")
	}
	if !validCatalogFormats[strings.ToLower(c.Catalog.Format)] {
		return fmt.Errorf("CATALOG_FORMAT must be one of: json, csv, parquet")
	}
	return nil
}

// validateCache validates metadata cache settings
func (c *Config) validateCache() error {
	if c.Cache.TTL < time.Second {
		return fmt.Errorf("CACHE_TTL must be at least 1s")
	}
	if c.Cache.SweepInterval < time.Second {
		return fmt.Errorf("CACHE_SWEEP_INTERVAL must be at least 1s")
	}
	if c.Cache.NegativeTTL < time.Second || c.Cache.NegativeTTL > c.Cache.TTL {
		return fmt.Errorf("CACHE_NEGATIVE_TTL must be between 1s and CACHE_TTL (%v)", c.Cache.TTL)
	}
	return nil
}

// Recommendation limits
const (
	recommendMaxResults     = 500
	recommendMaxConcurrency = 64
)

// validateRecommend validates recommendation bounds
func (c *Config) validateRecommend() error {
	r := c.Recommend
	if r.MaxResults < 1 || r.MaxResults > recommendMaxResults {
		return fmt.Errorf("RECOMMEND_MAX_RESULTS must be between 1 and %d", recommendMaxResults)
	}
	if r.DefaultResults < 1 || r.DefaultResults > r.MaxResults {
		return fmt.Errorf("RECOMMEND_DEFAULT_RESULTS must be between 1 and RECOMMEND_MAX_RESULTS (%d)", r.MaxResults)
	}
	if r.MaxConcurrency < 1 || r.MaxConcurrency > recommendMaxConcurrency {
		return fmt.Errorf("RECOMMEND_MAX_CONCURRENCY must be between 1 and %d", recommendMaxConcurrency)
	}
	if r.PlaceholderURL != "" {
		if err := validateAbsoluteURL(r.PlaceholderURL, "RECOMMEND_PLACEHOLDER_URL"); err != nil {
			return err
		}
	}
	return nil
}

// validateServer validates HTTP server settings
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout < time.Second {
		return fmt.Errorf("HTTP_TIMEOUT must be at least 1s")
	}
	if c.Server.RateLimitRPM < 0 {
		return fmt.Errorf("RATE_LIMIT_RPM must not be negative (0 disables rate limiting)")
	}
	return nil
}

// validateEvents validates the event bus settings (only if enabled)
func (c *Config) validateEvents() error {
	if !c.Events.Enabled {
		return nil
	}
	if strings.TrimSpace(c.Events.Topic) == "" {
		return fmt.Errorf("EVENTS_TOPIC must not be empty when EVENTS_ENABLED=true")
	}
	if c.Events.NATSURL != "" {
		if err := validateNATSURL(c.Events.NATSURL); err != nil {
			return fmt.Errorf("NATS_URL is invalid: %w", err)
		}
	}
	return nil
}

// validLogLevels defines the allowed log levels
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats defines the allowed log formats
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// placeholderPatterns defines common placeholder patterns that indicate
// the user forgot to set a real value.
var placeholderPatterns = []string{
	"REPLACE",
	"CHANGEME",
	"CHANGE_ME",
	"YOUR_API_KEY",
	"YOUR-API-KEY",
	"PLACEHOLDER",
}

// containsPlaceholder checks if a value contains common placeholder patterns
func containsPlaceholder(value string) bool {
	upperValue := strings.ToUpper(value)
	for _, pattern := range placeholderPatterns {
		if strings.Contains(upperValue, pattern) {
			return true
		}
	}
	return false
}
