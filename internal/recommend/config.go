// Cinematch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"fmt"
)

// DefaultPlaceholderURL is the image clients show when a movie has no poster.
const DefaultPlaceholderURL = "https://via.placeholder.com/300x450?text=No+Image"

// Config holds Engine settings.
type Config struct {
	// MaxConcurrency bounds parallel metadata lookups per request.
	MaxConcurrency int

	// PlaceholderURL is attached to results without a poster. Empty omits it.
	PlaceholderURL string
}

// DefaultConfig returns the Engine defaults.
func DefaultConfig() Config {
	return Config{
		MaxConcurrency: 8,
		PlaceholderURL: DefaultPlaceholderURL,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.MaxConcurrency < 1 {
		return fmt.Errorf("max concurrency must be at least 1, got %d", c.MaxConcurrency)
	}
	return nil
}
