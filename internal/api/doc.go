// Cognatus - Talent Discovery Analytics and Profile Similarity Engine
// Copyright 2026 Dana R. (danarhys)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/danarhys/cognatus

/*
Package api provides the HTTP REST API layer for Cognatus.

This package implements the service surface for profile search, genome
retrieval, similarity scoring, team analysis, discovery recommendations,
and history queries. It is the only interface between API consumers and
the engines in internal/similarity and internal/recommend.

Key Components:

  - Router: Chi route configuration and middleware stack integration
  - Handler: Request handlers for all API endpoints
  - Response formatting: Standardized JSON responses with metadata
  - Error handling: Consistent error responses with machine-readable codes
  - Rate limiting: Per-group token bucket limits via go-chi/httprate
  - CORS: Explicit-origin CORS for frontend compatibility

API Categories:

1. Health Endpoints (/api/v1/health):
  - Liveness and readiness probes (Kubernetes-style)
  - Aggregate health with directory and history connectivity

2. People Endpoints (/api/v1/people, /api/v1/genomes):
  - Directory profile search
  - Cached skill genome retrieval

3. Similarity Endpoints (/api/v1/similarity, /api/v1/team):
  - Pairwise comparison and complementarity scoring
  - Multi-member team composition analysis

4. Recommendation Endpoint (/api/v1/recommendations):
  - Full discovery pipeline runs (search, dedupe, score, rank)

5. History Endpoints (/api/v1/history):
  - Stored comparisons and pipeline runs with filtering

6. Cache Endpoints (/api/v1/cache):
  - Genome cache statistics and invalidation

7. WebSocket Endpoint (/api/v1/ws):
  - Real-time pipeline progress and comparison events

Usage Example:

	handler := api.NewHandler(directoryClient, genomeCache, pipeline, historyStore, bus, wsHub, cfg)
	router := api.NewRouter(handler, &cfg.Security)
	http.ListenAndServe(":7887", router.SetupChi())

Thread Safety:

All handlers are safe for concurrent request handling. Shared resources
(genome cache, history store, WebSocket hub, event bus) carry their own
synchronization.
*/
package api
