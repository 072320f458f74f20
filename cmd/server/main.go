// Cinematch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/tomtom215/cinematch/docs" // registers the OpenAPI document
	"github.com/tomtom215/cinematch/internal/api"
	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/recommend"
	"github.com/tomtom215/cinematch/internal/supervisor"
	"github.com/tomtom215/cinematch/internal/supervisor/services"
	"github.com/tomtom215/cinematch/internal/tmdb"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

//nolint:gocyclo // Sequential startup
func main() {
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(loggingConfig(cfg.Logging))
	logging.Info().Str("version", version).Msg("Starting Cinematch")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// === CATALOG ===

	cat, err := catalog.Load(ctx, catalogSource(cfg.Catalog))
	if err != nil {
		logging.Fatal().Err(err).
			Str("items", cfg.Catalog.ItemsPath).
			Str("similarity", cfg.Catalog.SimilarityPath).
			Msg("Failed to load catalog")
	}

	// === METADATA ===

	tmdbClient, err := tmdb.NewClient(tmdbConfig(cfg.TMDB))
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create TMDB client")
	}

	meta, closeStore, err := newMetadataService(cfg.Cache, tmdbClient)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create metadata cache")
	}
	defer func() {
		if err := closeStore(); err != nil {
			logging.Error().Err(err).Msg("Error closing metadata store")
		}
	}()

	engine, err := recommend.NewEngine(cat, meta, tmdbClient, recommendConfig(cfg.Recommend))
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create recommendation engine")
	}

	// === HTTP ===

	handler := api.NewHandler(engine, meta, api.Options{
		DefaultResults: cfg.Recommend.DefaultResults,
		MaxResults:     cfg.Recommend.MaxResults,
		Version:        version,
	})

	// === SUPERVISOR TREE ===

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	sweepers := []services.NamedSweeper{{Name: "metadata", Sweeper: meta}}

	if cfg.Events.Enabled {
		stack, err := newEventStack(cfg.Events)
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to create event bus")
		}
		defer func() {
			if err := stack.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing event bus")
			}
		}()

		handler.WithEvents(stack.bus, stack.tracker)
		tree.AddMessagingService(stack.router)
		sweepers = append(sweepers, services.NamedSweeper{Name: "event-dedup", Sweeper: stack.router})

		logging.Info().
			Str("transport", stack.bus.Transport()).
			Str("topic", stack.bus.Topic()).
			Msg("Recommendation events enabled")
	}

	tree.AddCacheService(services.NewCacheSweeperService(cfg.Cache.SweepInterval, sweepers...))

	server := newHTTPServer(cfg.Server, api.NewRouter(handler, routerConfig(cfg.Server)))
	tree.AddAPIService(services.NewHTTPServerService(server, services.DefaultShutdownTimeout))

	logging.Info().
		Int("movies", cat.Len()).
		Str("addr", server.Addr).
		Dur("cache_ttl", cfg.Cache.TTL).
		Bool("cache_persistent", cfg.Cache.PersistPath != "").
		Bool("cache_purge_enabled", cfg.Server.CachePurgeEnabled).
		Msg("Services configured")

	// === RUN ===

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	errCh := tree.ServeBackground(ctx)

	// errCh receives exactly once and is never closed.
	select {
	case <-ctx.Done():
		logging.Info().Msg("Waiting for services to stop")
		err = <-errCh
	case err = <-errCh:
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree stopped with error")
	}

	if unstopped, _ := tree.UnstoppedServiceReport(); len(unstopped) > 0 {
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Cinematch stopped")
}
