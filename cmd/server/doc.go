// Cognatus - Talent Discovery Analytics and Profile Similarity Engine
// Copyright 2026 Dana R. (danarhys)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/danarhys/cognatus

/*
Package main is the entry point for the Cognatus server application.

Cognatus is a talent-discovery analytics service built on skill genomes
from an upstream talent directory. It scores pairwise profile similarity
and complementarity, analyzes team skill coverage, discovers similar
profiles through a bounded search-and-compare pipeline, and keeps a
DuckDB history of every comparison and discovery run.

# Application Architecture

The server implements a layered architecture with Suture v4 process supervision:

	RootSupervisor ("cognatus")
	├── StorageSupervisor ("storage-layer")
	│   ├── History retention loop (DuckDB row expiry)
	│   └── Genome cache janitor (TTL eviction)
	├── EventsSupervisor ("events-layer")
	│   ├── WebSocket Hub (real-time event streaming)
	│   └── Event Bridge (bus-to-hub fan-out)
	└── APISupervisor ("api-layer")
	    └── HTTP Server (REST API + Swagger)

Component initialization order:

 1. Configuration: Koanf v2 with environment variables and config files
 2. Logging: zerolog with JSON/console output modes
 3. History Store: DuckDB for comparisons and discovery runs
 4. Directory Client: rate-limited HTTP client behind a circuit breaker
 5. Event Bus: in-process watermill bus for pipeline telemetry
 6. WebSocket Hub and Bridge: live event streaming
 7. Genome Cache: read-through TTL cache over directory fetches
 8. Discovery Pipeline: query fan-out, prefilter, batched comparison
 9. Supervisor Tree: Suture v4 process supervision
 10. HTTP Server: Chi router with middleware stack

# Configuration

Configuration is loaded via Koanf v2 with layered sources (highest priority wins):

	Priority: Environment variables > Config file > Defaults

Core environment variables:

	# Server
	HTTP_PORT=7887               # HTTP server port
	LOG_LEVEL=info               # trace, debug, info, warn, error
	LOG_FORMAT=json              # json or console

	# Upstream directory (required)
	DIRECTORY_URL=https://directory.example.com
	DIRECTORY_API_KEY=<api-key>  # optional; supports enc: encrypted values

	# History store
	DUCKDB_PATH=/data/cognatus.duckdb   # or :memory: for ephemeral
	HISTORY_RETENTION_DAYS=90           # 0 keeps rows forever

	# Discovery pipeline
	RECOMMEND_MAX_LIMIT=50
	RECOMMEND_RUN_TIMEOUT=30s

See .env.example for complete configuration reference.

# Degraded Mode

The history store is optional at runtime. When DuckDB initialization
fails, the server starts anyway:

  - History endpoints return 503 STORAGE_ERROR
  - The health endpoint reports "degraded"
  - Comparison, team, and discovery endpoints keep working

This keeps the core engine available on hosts without a data volume.

# Signal Handling

The server handles graceful shutdown on SIGINT and SIGTERM:

 1. Stops accepting new HTTP connections
 2. Waits for in-flight requests (10s timeout)
 3. Closes WebSocket clients and stops the event bridge
 4. Stops the retention loop and cache janitor
 5. Closes the history store and event bus
 6. Reports any services that failed to stop

# Usage Examples

Development:

	export DIRECTORY_URL=https://directory.example.com
	export DUCKDB_PATH=:memory:
	export LOG_FORMAT=console
	go run ./cmd/server

Production:

	export DIRECTORY_URL=https://directory.example.com
	export DIRECTORY_API_KEY=xxx
	export DUCKDB_PATH=/data/cognatus.duckdb
	export CORS_ORIGINS=https://talent.yourdomain.com
	./cognatus

Docker:

	docker run -d \
	  -e DIRECTORY_URL=https://directory.example.com \
	  -e DIRECTORY_API_KEY=xxx \
	  -v cognatus-data:/data \
	  -p 7887:7887 \
	  ghcr.io/danarhys/cognatus

# API Documentation

Swagger documentation is available at /swagger/index.html when the server
is running. The API is organized into categories:

  - Core: Health and readiness checks
  - People: Directory search and genome retrieval
  - Similarity: Pairwise comparison, complementarity, team analysis
  - Recommendations: Similar-profile discovery runs
  - History: Persisted comparisons and runs
  - Cache: Genome cache statistics and clearing
  - Realtime: WebSocket event streaming

# See Also

  - internal/config: Configuration management
  - internal/supervisor: Process supervision
  - internal/api: HTTP handlers and routing
  - internal/recommend: Discovery pipeline
  - internal/similarity: Scoring engine
*/
package main
