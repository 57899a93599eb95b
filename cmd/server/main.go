// Cognatus - Talent Discovery Analytics and Profile Similarity Engine
// Copyright 2026 Dana R. (danarhys)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/danarhys/cognatus

// Package main is the entry point for the Cognatus server application.
//
// Cognatus is a talent-discovery analytics service that compares skill
// genomes fetched from an upstream talent directory. It scores profile
// similarity and complementarity, analyzes team skill coverage, and
// discovers similar profiles through a bounded search-and-compare
// pipeline, with comparison history persisted in DuckDB.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: Load settings from environment variables and config files (Koanf v2)
//  2. Logging: zerolog with JSON/console output modes
//  3. History Store: DuckDB for comparison and discovery-run history
//  4. Directory Client: rate-limited, circuit-broken upstream HTTP client
//  5. Event Bus: in-process watermill bus for pipeline telemetry
//  6. WebSocket Hub: real-time event streaming to connected clients
//  7. Genome Cache: read-through TTL cache over directory fetches
//  8. Discovery Pipeline: search fan-out, prefilter, batched comparison
//  9. Supervisor Tree: Suture v4 process supervision
//  10. HTTP Server: Chi router with middleware stack and Swagger docs
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest priority wins):
//   - Environment variables (see .env.example)
//   - Config file (config.yaml)
//   - Built-in defaults
//
// The only required setting is the upstream directory:
//   - DIRECTORY_URL: Talent directory base URL
//   - DIRECTORY_API_KEY: API key (optional; supports enc: encrypted values)
//
// # Degraded Mode
//
// The history store is optional at runtime: when DuckDB initialization
// fails the server starts anyway, history endpoints return 503, and
// the health endpoint reports "degraded". Comparison and discovery
// endpoints keep working from the directory and cache alone.
//
// # Signal Handling
//
// The server handles graceful shutdown on SIGINT and SIGTERM:
//   - Stops accepting new connections
//   - Waits for in-flight requests to complete (10s timeout)
//   - Stops the retention loop, cache janitor, and event bridge
//   - Closes the history store and event bus
//
// # Example Usage
//
// Minimal development setup:
//
//	export DIRECTORY_URL=https://directory.example.com
//	export DUCKDB_PATH=:memory:
//	export LOG_FORMAT=console
//	./cognatus
//
// Production:
//
//	export DIRECTORY_URL=https://directory.example.com
//	export DIRECTORY_API_KEY=your-api-key
//	export DUCKDB_PATH=/data/cognatus.duckdb
//	export CORS_ORIGINS=https://talent.yourdomain.com
//	./cognatus
//
// Docker:
//
//	docker run -d \
//	  -e DIRECTORY_URL=https://directory.example.com \
//	  -e DIRECTORY_API_KEY=your-api-key \
//	  -v cognatus-data:/data \
//	  -p 7887:7887 \
//	  ghcr.io/danarhys/cognatus
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

	_ "github.com/danarhys/cognatus/docs" // Import generated swagger docs
	"github.com/danarhys/cognatus/internal/api"
	"github.com/danarhys/cognatus/internal/cache"
	"github.com/danarhys/cognatus/internal/config"
	"github.com/danarhys/cognatus/internal/directory"
	"github.com/danarhys/cognatus/internal/events"
	"github.com/danarhys/cognatus/internal/history"
	"github.com/danarhys/cognatus/internal/logging"
	"github.com/danarhys/cognatus/internal/recommend"
	"github.com/danarhys/cognatus/internal/supervisor"
	"github.com/danarhys/cognatus/internal/supervisor/services"
	ws "github.com/danarhys/cognatus/internal/websocket"
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		// Use default logger for config errors (config not yet available)
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize zerolog with configuration
	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().Msg("Starting Cognatus with supervisor tree")
	logging.Info().
		Str("directory_url", cfg.Directory.BaseURL).
		Str("history_path", cfg.History.Path).
		Str("environment", cfg.Server.Environment).
		Msg("Configuration loaded")

	// Initialize the history store. Failure is non-fatal: comparison
	// and discovery endpoints work without it, history endpoints
	// return 503, and health reports "degraded".
	store, err := history.New(cfg.History)
	if err != nil {
		logging.Warn().Err(err).Msg("Failed to initialize history store, continuing without history")
		store = nil
	} else {
		defer func() {
			if err := store.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing history store")
			}
		}()
	}

	// Directory client with rate limiter, wrapped in a circuit breaker
	// so a degraded upstream cannot stall discovery runs.
	client := directory.NewClient(cfg.Directory)
	dir := directory.NewBreaker(client, cfg.Directory)
	if err := dir.Ping(context.Background()); err != nil {
		logging.Warn().Err(err).Msg("Failed to connect to talent directory (will retry)")
	} else {
		logging.Info().Msg("Connected to talent directory successfully")
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Create structured logger for supervisor using our slog adapter
	// This bridges zerolog to slog for sutureslog compatibility
	slogLogger := logging.NewSlogLogger()

	// Create supervisor tree
	tree, err := supervisor.NewSupervisorTree(slogLogger, supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  10 * time.Second,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	// Event bus for pipeline telemetry, with a websocket bridge so
	// connected clients see discovery progress live.
	bus := events.NewBus(events.Config{
		BufferSize: int64(cfg.Events.BufferSize),
		Persistent: cfg.Events.Persistent,
	})
	defer func() {
		if err := bus.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing event bus")
		}
	}()

	wsHub := ws.NewHub()
	bridge := ws.NewBridge(bus, wsHub)

	// Read-through genome cache over the breaker-wrapped client.
	// Fetch failures surface on the bus as genome.fetch.failed.
	genomes := cache.New(cache.Config{
		TTL:             cfg.Cache.TTL,
		CleanupInterval: cfg.Cache.CleanupInterval,
		Fetch:           dir.FetchGenome,
		Events:          events.FetchFailureSink{Bus: bus},
	})

	pipeline := recommend.New(dir, genomes, bus, cfg.Recommend)

	handler := api.NewHandler(dir, genomes, pipeline, store, bus, wsHub, cfg)
	router := api.NewRouter(handler, &cfg.Security)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.SetupChi(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	// === ADD SERVICES TO SUPERVISOR TREE ===

	// Storage layer services
	if store != nil {
		tree.AddStorageService(store)
	}
	tree.AddStorageService(genomes)
	logging.Info().Msg("History retention and cache janitor added to supervisor tree")

	// Events layer services
	tree.AddEventsService(services.NewWebSocketHubService(wsHub))
	tree.AddEventsService(bridge)
	logging.Info().Msg("WebSocket hub and event bridge added to supervisor tree")

	// API layer services
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	// === START SUPERVISOR TREE ===

	// Setup signal handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	// Wait for supervisor to finish (either from signal or error)
	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	// Wait for the error channel to close (supervisor finished)
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	// Report any services that failed to stop within timeout
	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}
