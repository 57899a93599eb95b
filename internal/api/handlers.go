// Cognatus - Talent Discovery Analytics and Profile Similarity Engine
// Copyright 2026 Dana R. (danarhys)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/danarhys/cognatus

package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/danarhys/cognatus/internal/cache"
	"github.com/danarhys/cognatus/internal/config"
	"github.com/danarhys/cognatus/internal/directory"
	"github.com/danarhys/cognatus/internal/events"
	"github.com/danarhys/cognatus/internal/genome"
	"github.com/danarhys/cognatus/internal/history"
	"github.com/danarhys/cognatus/internal/logging"
	"github.com/danarhys/cognatus/internal/recommend"
	ws "github.com/danarhys/cognatus/internal/websocket"
)

// appVersion is reported by the health endpoint.
const appVersion = "1.0.0"

// handlerTimeout bounds a single request's engine work. Discovery runs
// carry their own run timeout inside the pipeline.
const handlerTimeout = 10 * time.Second

// Handler contains dependencies for API handlers.
//
// Handler methods are split across multiple files:
//   - handlers.go: Handler struct, constructor, shared helpers (this file)
//   - handlers_helpers.go: Response and validation helpers
//   - handlers_health.go: Health/monitoring endpoints
//   - handlers_people.go: Directory search and genome retrieval
//   - handlers_similarity.go: Compare, complementarity, team analysis
//   - handlers_recommend.go: Discovery pipeline endpoint
//   - handlers_history.go: Stored comparisons and runs
//   - handlers_cache.go: Genome cache stats and invalidation
//   - handlers_websocket.go: WebSocket upgrade
type Handler struct {
	directory directory.API
	genomes   *cache.Cache
	pipeline  *recommend.Pipeline
	history   *history.Store
	bus       *events.Bus
	wsHub     *ws.Hub
	config    *config.Config
	startTime time.Time
}

// NewHandler creates a new API handler with all required dependencies.
//
// Dependencies:
//   - dir: directory client for people search and readiness probes
//   - genomes: TTL cache fronting genome fetches
//   - pipeline: discovery pipeline for the recommendations endpoint
//   - historyStore: DuckDB-backed comparison/run history (nil disables history)
//   - bus: event bus for comparison completion events (nil disables publishing)
//   - wsHub: WebSocket hub for the event stream endpoint (nil disables /ws)
//   - cfg: application configuration
//
// Example:
//
//	handler := api.NewHandler(dir, genomes, pipeline, historyStore, bus, wsHub, cfg)
//	router := api.NewRouter(handler, &cfg.Security)
//	http.ListenAndServe(":7887", router.SetupChi())
func NewHandler(dir directory.API, genomes *cache.Cache, pipeline *recommend.Pipeline, historyStore *history.Store, bus *events.Bus, wsHub *ws.Hub, cfg *config.Config) *Handler {
	return &Handler{
		directory: dir,
		genomes:   genomes,
		pipeline:  pipeline,
		history:   historyStore,
		bus:       bus,
		wsHub:     wsHub,
		config:    cfg,
		startTime: time.Now(),
	}
}

// requireMethod validates HTTP method and returns true if valid, false if error was sent
func requireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return false
	}
	return true
}

// requireHistory checks history store availability and returns true if available,
// false if error was sent
func (h *Handler) requireHistory(w http.ResponseWriter) bool {
	if h.history == nil {
		respondError(w, http.StatusServiceUnavailable, "STORAGE_ERROR", "History store not available", nil)
		return false
	}
	return true
}

// resolveProfile loads a genome through the cache. On a miss it writes a
// 404 response and returns nil; callers must stop processing when nil
// comes back.
func (h *Handler) resolveProfile(ctx context.Context, w http.ResponseWriter, username string) *genome.Profile {
	if h.genomes == nil {
		respondError(w, http.StatusServiceUnavailable, "SERVICE_ERROR", "Genome cache not available", nil)
		return nil
	}

	profile := h.genomes.Get(ctx, username)
	if profile == nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND",
			fmt.Sprintf("No profile found for username %q", username), nil)
		return nil
	}
	return profile
}

// getUpgrader creates a WebSocket upgrader with proper origin checking and timeouts.
func (h *Handler) getUpgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:   1024,
		WriteBufferSize:  1024,
		CheckOrigin:      h.checkWebSocketOrigin,
		HandshakeTimeout: 10 * time.Second,
	}
}

// checkWebSocketOrigin validates WebSocket connection origins
func (h *Handler) checkWebSocketOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")

	// Legitimate browser WebSockets always include Origin; allowing an
	// empty Origin would bypass CORS entirely.
	if origin == "" {
		logging.Warn().Msg("WebSocket connection rejected: missing Origin header")
		return false
	}

	// If config is nil, allow by default (fail open for tests/development)
	if h.config == nil {
		return true
	}

	for _, allowedOrigin := range h.config.Security.CORSOrigins {
		if allowedOrigin == "*" || allowedOrigin == origin {
			return true
		}
	}

	logging.Warn().Str("origin", sanitizeLogValue(origin)).Msg("WebSocket connection rejected from unauthorized origin")
	return false
}
