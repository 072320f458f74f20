// Cinematch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package main

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/tomtom215/cinematch/internal/api"
	"github.com/tomtom215/cinematch/internal/cache"
	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/events"
	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/metadata"
	"github.com/tomtom215/cinematch/internal/recommend"
	"github.com/tomtom215/cinematch/internal/supervisor/services"
	"github.com/tomtom215/cinematch/internal/tmdb"
)

func loggingConfig(cfg config.LoggingConfig) logging.Config {
	lc := logging.DefaultConfig()
	lc.Level = cfg.Level
	lc.Format = cfg.Format
	lc.Caller = cfg.Caller
	lc.File = cfg.File
	return lc
}

func catalogSource(cfg config.CatalogConfig) catalog.Source {
	return catalog.Source{
		ItemsPath:      cfg.ItemsPath,
		SimilarityPath: cfg.SimilarityPath,
		Format:         cfg.Format,
	}
}

func tmdbConfig(cfg config.TMDBConfig) tmdb.Config {
	tc := tmdb.DefaultConfig()
	tc.APIKey = cfg.APIKey
	tc.BaseURL = cfg.BaseURL
	tc.ImageBaseURL = cfg.ImageBaseURL
	tc.PosterSize = cfg.PosterSize
	tc.MovieBaseURL = cfg.MovieBaseURL
	tc.Timeout = cfg.Timeout
	tc.RequestsPerSecond = cfg.RequestsPerSecond
	tc.Burst = cfg.Burst
	return tc
}

func recommendConfig(cfg config.RecommendConfig) recommend.Config {
	return recommend.Config{
		MaxConcurrency: cfg.MaxConcurrency,
		PlaceholderURL: cfg.PlaceholderURL,
	}
}

// newMetadataService builds the lookup cache, with a Badger tier when
// PersistPath is set. The returned closer releases the store.
func newMetadataService(cfg config.CacheConfig, fetcher metadata.Fetcher) (*metadata.Service, func() error, error) {
	mc := metadata.Config{TTL: cfg.TTL, NegativeTTL: cfg.NegativeTTL}
	closer := func() error { return nil }

	if cfg.PersistPath != "" {
		store, err := cache.OpenBadgerStore[metadata.Result](cfg.PersistPath, cfg.TTL)
		if err != nil {
			return nil, nil, fmt.Errorf("open metadata store: %w", err)
		}
		mc.Store = store
		closer = store.Close
	}

	svc, err := metadata.NewService(fetcher, mc)
	if err != nil {
		return nil, nil, errors.Join(err, closer())
	}
	return svc, closer, nil
}

// eventStack is the optional recommendation activity pipeline.
type eventStack struct {
	bus     *events.Bus
	tracker *events.PopularityTracker
	router  *services.EventRouterService
}

func newEventStack(cfg config.EventsConfig) (*eventStack, error) {
	bc := events.DefaultBusConfig()
	bc.NATSURL = cfg.NATSURL
	bc.Topic = cfg.Topic
	if cfg.CloseTimeout > 0 {
		bc.CloseTimeout = cfg.CloseTimeout
	}

	wmLogger := logging.NewWatermillLogger()
	bus, err := events.NewBus(bc, wmLogger)
	if err != nil {
		return nil, err
	}

	tracker := events.NewPopularityTracker()
	rc := events.DefaultRouterConfig()
	rc.CloseTimeout = bc.CloseTimeout

	router := services.NewEventRouterService(func() (services.EventRouter, error) {
		return events.NewRouter(rc, bus.Subscriber(), bus.Topic(), tracker, wmLogger)
	})

	return &eventStack{bus: bus, tracker: tracker, router: router}, nil
}

func (s *eventStack) Close() error {
	return s.bus.Close()
}

func routerConfig(cfg config.ServerConfig) api.RouterConfig {
	rc := api.DefaultRouterConfig()
	rc.RequestTimeout = cfg.Timeout
	if len(cfg.CORSOrigins) > 0 {
		rc.Middleware.CORSAllowedOrigins = cfg.CORSOrigins
	}
	rc.Middleware.RateLimitRequests = cfg.RateLimitRPM
	rc.Middleware.RateLimitWindow = time.Minute
	rc.AllowCachePurge = cfg.CachePurgeEnabled
	return rc
}

func newHTTPServer(cfg config.ServerConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Timeout,
		// Leave room for chi's Timeout middleware to answer first.
		WriteTimeout: cfg.Timeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}
}
