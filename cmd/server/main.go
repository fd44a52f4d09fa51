// Movie Recommender - Similarity-Based Movie Recommendation Service
// Copyright 2026 V19Amit
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/V19Amit/movie

// Package main is the entry point for the movie recommendation server.
//
// The server loads a pre-computed movie catalog and similarity matrix once
// at startup and serves top-N similarity recommendations, title search, and
// catalog statistics over a REST API.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: environment variables and config files (Koanf v2)
//  2. Corpus cache: one-time loader for the catalog CSV and similarity JSON
//  3. Recommendation engine: top-N ranking over the similarity matrix
//  4. HTTP server: REST API with Prometheus metrics
//
// All components run under a suture supervisor tree with separate data and
// API layers for failure isolation.
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins):
//   - Environment variables (CATALOG_PATH, SIMILARITY_PATH, HTTP_PORT, ...)
//   - Config file (config.yaml, or CONFIG_PATH)
//   - Built-in defaults
//
// # Corpus Artifacts
//
// The catalog is a CSV with a header row containing a "title" column; row
// order defines the movie index. The similarity matrix is a JSON MxM array
// of arrays aligned to the catalog row order. Both artifacts are read
// exactly once per process lifetime; a failed load is remembered and the
// service reports unavailable until restart.
//
// # Signal Handling
//
// The server handles graceful shutdown on SIGINT and SIGTERM:
//   - Stops accepting new connections
//   - Waits for in-flight requests to complete (configurable timeout)
//
// # Example Usage
//
//	export CATALOG_PATH=data/movies.csv
//	export SIMILARITY_PATH=data/similarity.json
//	./movie-server
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/V19Amit/movie/internal/api"
	"github.com/V19Amit/movie/internal/catalog"
	"github.com/V19Amit/movie/internal/config"
	"github.com/V19Amit/movie/internal/engine"
	"github.com/V19Amit/movie/internal/logging"
	"github.com/V19Amit/movie/internal/supervisor"
	"github.com/V19Amit/movie/internal/supervisor/services"
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		// Use default logger for config errors (config not yet available)
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("catalog_path", cfg.Data.CatalogPath).
		Str("similarity_path", cfg.Data.SimilarityPath).
		Int("default_count", cfg.Recommend.DefaultCount).
		Msg("Configuration loaded")

	cache := catalog.NewCache(cfg.Data.CatalogPath, cfg.Data.SimilarityPath, logging.Logger())

	eng, err := engine.NewEngine(cache, &engine.Config{
		DefaultCount: cfg.Recommend.DefaultCount,
		MinCount:     cfg.Recommend.MinCount,
		MaxCount:     cfg.Recommend.MaxCount,
	}, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create recommendation engine")
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Bridge zerolog to slog for sutureslog compatibility
	slogLogger := logging.NewSlogLogger()

	tree, err := supervisor.NewTree(slogLogger, supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	router := api.NewRouter(cfg, eng, cache, logging.Logger())

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	// Data layer warms the corpus; API layer serves requests. A corpus load
	// failure does not stop the API from answering readiness probes.
	tree.AddDataService(services.NewCorpusService(cache, logging.Logger()))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	// Drain until the supervisor has fully stopped.
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Server stopped gracefully")
}
