// Cinematch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package tmdb fetches poster and trailer URLs from The Movie Database.
//
// The client makes two fixed-shape calls:
//
//	GET {base}/movie/{id}?api_key=KEY          -> poster_path
//	GET {base}/movie/{id}/videos?api_key=KEY   -> results[].{site,type,key}
//
// Every failure (network error, timeout, non-200 status, malformed JSON,
// missing field, open circuit breaker) is absorbed and reported as
// metadata.Absent. Outages where TMDB never answered about the movie are
// reported as metadata.Unavailable so the cache retries them sooner. No
// method of Client returns an error after construction.
//
// Calls are bounded by Config.Timeout, paced by a token-bucket limiter and
// guarded by a circuit breaker. There are no retries: one lookup is one
// round trip.
package tmdb

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/metadata"
	"github.com/tomtom215/cinematch/internal/metrics"
)

// ErrMissingAPIKey is returned by NewClient when no API key is configured.
var ErrMissingAPIKey = errors.New("TMDB API key is required (set TMDB_API_KEY)")

// Config configures a Client.
type Config struct {
	APIKey string

	// BaseURL is the API root, without trailing slash.
	BaseURL string

	// ImageBaseURL is the image CDN root, without trailing slash.
	ImageBaseURL string

	// PosterSize is the TMDB image size segment, e.g. "w500".
	PosterSize string

	// MovieBaseURL is the public page root used for links.
	MovieBaseURL string

	// Timeout bounds each call, limiter wait included.
	Timeout time.Duration

	// RequestsPerSecond paces outbound calls. Zero disables pacing.
	RequestsPerSecond float64

	// Burst is the limiter bucket size.
	Burst int

	Breaker BreakerSettings

	// HTTPClient overrides the transport, for tests.
	HTTPClient *http.Client
}

// DefaultConfig returns the public TMDB endpoints with a 5 second timeout.
func DefaultConfig() Config {
	return Config{
		BaseURL:           "https://api.themoviedb.org/3",
		ImageBaseURL:      "https://image.tmdb.org/t/p",
		PosterSize:        "w500",
		MovieBaseURL:      "https://www.themoviedb.org/movie",
		Timeout:           5 * time.Second,
		RequestsPerSecond: 40,
		Burst:             20,
		Breaker:           DefaultBreakerSettings(),
	}
}

// Client is a TMDB metadata fetcher. It implements metadata.Fetcher.
type Client struct {
	cfg     Config
	http    *http.Client
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker[interface{}]
	logger  zerolog.Logger
}

var _ metadata.Fetcher = (*Client)(nil)

// NewClient validates cfg and returns a ready client. Zero-valued fields fall
// back to DefaultConfig. A missing API key is an error.
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}

	def := DefaultConfig()
	if cfg.BaseURL == "" {
		cfg.BaseURL = def.BaseURL
	}
	if cfg.ImageBaseURL == "" {
		cfg.ImageBaseURL = def.ImageBaseURL
	}
	if cfg.PosterSize == "" {
		cfg.PosterSize = def.PosterSize
	}
	if cfg.MovieBaseURL == "" {
		cfg.MovieBaseURL = def.MovieBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.Breaker == (BreakerSettings{}) {
		cfg.Breaker = def.Breaker
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	cfg.ImageBaseURL = strings.TrimRight(cfg.ImageBaseURL, "/")
	cfg.MovieBaseURL = strings.TrimRight(cfg.MovieBaseURL, "/")

	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		cfg:     cfg,
		http:    httpClient,
		limiter: limiter,
		breaker: newBreaker(cfg.Breaker),
		logger:  logging.WithComponent("tmdb"),
	}, nil
}

// FetchPosterURL returns the w500 poster URL for a movie, or Absent.
func (c *Client) FetchPosterURL(ctx context.Context, externalID string) metadata.Result {
	start := time.Now()

	var details movieDetails
	err := c.get(ctx, &details, "movie", externalID)
	res := metadata.Absent()
	switch {
	case err == nil && details.PosterPath != "":
		res = metadata.Found(c.posterURL(details.PosterPath))
	case isTransient(err):
		res = metadata.Unavailable()
	}

	c.record(ctx, metadata.KindPoster, externalID, res, err, time.Since(start))
	return res
}

// FetchTrailerURL returns the YouTube watch URL of the first trailer, or Absent.
func (c *Client) FetchTrailerURL(ctx context.Context, externalID string) metadata.Result {
	start := time.Now()

	var videos videoList
	err := c.get(ctx, &videos, "movie", externalID, "videos")
	res := metadata.Absent()
	if err == nil {
		if key, ok := videos.firstTrailer(); ok {
			res = metadata.Found(youTubeWatch + key)
		}
	} else if isTransient(err) {
		res = metadata.Unavailable()
	}

	c.record(ctx, metadata.KindTrailer, externalID, res, err, time.Since(start))
	return res
}

// MovieURL returns the public TMDB page for a movie.
func (c *Client) MovieURL(externalID string) string {
	return fmt.Sprintf("%s/%s", c.cfg.MovieBaseURL, externalID)
}

func (c *Client) posterURL(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.cfg.ImageBaseURL + "/" + c.cfg.PosterSize + path
}

// get runs one bounded, paced, breaker-guarded GET.
func (c *Client) get(ctx context.Context, out interface{}, segments ...string) error {
	for _, s := range segments {
		if strings.TrimSpace(s) == "" {
			return errEmptyID
		}
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %v", errRateLimited, err)
	}

	reqURL := buildURL(c.cfg.BaseURL, c.cfg.APIKey, segments...)
	return c.execute(func() error {
		return getJSON(ctx, c.http, reqURL, out)
	})
}

// record logs and counts one lookup outcome.
func (c *Client) record(ctx context.Context, kind metadata.Kind, id string, res metadata.Result, err error, elapsed time.Duration) {
	result := "absent"
	switch {
	case res.Present:
		result = "found"
	case err != nil && !errors.Is(err, errNotFound):
		result = "error"
	}
	metrics.RecordTMDBRequest(string(kind), result, elapsed)

	if result != "error" {
		return
	}

	event := c.logger.Warn()
	if isRejected(err) {
		event = c.logger.Debug()
	}
	event.Err(err).
		Str("kind", string(kind)).
		Str("external_id", id).
		Str("request_id", logging.RequestIDFromContext(ctx)).
		Dur("elapsed", elapsed).
		Msg("TMDB lookup failed, treating as absent")
}
