// Cognatus - Talent Discovery Analytics and Profile Similarity Engine
// Copyright 2026 Dana R. (danarhys)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/danarhys/cognatus

/*
Package metrics provides Prometheus metrics collection and export for observability.

This package implements comprehensive application instrumentation using the Prometheus
client library, exposing metrics for monitoring performance, errors, and system health.

# Overview

The package provides metrics for:
  - HTTP request latency and throughput
  - Upstream directory client performance
  - Circuit breaker state transitions
  - Similarity computation throughput
  - Discovery pipeline runs and prefilter efficiency
  - Cache hit/miss rates
  - History store (DuckDB) query performance
  - WebSocket connection counts and event bus delivery

# Metrics Endpoint

Metrics are exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:7887/metrics

# Available Metrics

API Metrics:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
    Buckets: .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
  - api_active_requests: Active requests (gauge)
  - api_rate_limit_hits_total: Rate limit rejections (counter)
    Labels: endpoint

Directory Client Metrics:
  - directory_requests_total: Upstream directory requests (counter)
    Labels: operation (search, genome), outcome (success, not_found, timeout, rejected, error)
  - directory_request_duration_seconds: Upstream request latency (histogram)
    Labels: operation
  - directory_retries_total: Retried requests (counter)
    Labels: operation

Circuit Breaker Metrics:
  - circuit_breaker_state: Current state (gauge)
    Labels: name
    Values: 0=closed, 1=half-open, 2=open
  - circuit_breaker_requests_total: Requests through the breaker (counter)
    Labels: name, result (success, failure, rejected)
  - circuit_breaker_state_transitions_total: State changes (counter)
    Labels: name, from_state, to_state

Similarity Metrics:
  - similarity_computations_total: Computations performed (counter)
    Labels: kind (compare, complement, team)
  - similarity_computation_duration_seconds: Computation latency (histogram)
    Labels: kind
  - similarity_failures_total: Computations that produced an error result (counter)
    Labels: kind

Discovery Pipeline Metrics:
  - discovery_runs_total: Pipeline runs (counter)
    Labels: outcome (success, error)
  - discovery_run_duration_seconds: Run duration (histogram)
    Buckets: .1, .25, .5, 1, 2.5, 5, 10, 30, 60
  - discovery_queries_total: Search queries issued (counter)
  - discovery_query_errors_total: Failed queries, swallowed by the run (counter)
  - discovery_candidates_evaluated_total: Candidates fully scored (counter)
  - discovery_candidates_prefiltered_total: Candidates skipped by the Jaccard prefilter (counter)
  - discovery_early_exits_total: Runs stopped early (counter)
  - discovery_result_count: Matches returned per run (histogram)

Cache Metrics:
  - cache_hits_total: Cache hits (counter)
    Labels: cache_type (genome, search, comparison)
  - cache_misses_total: Cache misses (counter)
    Labels: cache_type
  - cache_evictions_total: TTL evictions (counter)
    Labels: cache_type
  - cache_entries: Current cached entries (gauge)
    Labels: cache_type

History Store Metrics:
  - duckdb_query_duration_seconds: Query execution time (histogram)
    Labels: operation (select, insert, delete), table
  - duckdb_query_errors_total: Failed queries (counter)
    Labels: operation, table, error_type
  - duckdb_connection_pool_size: Connections in use (gauge)

WebSocket and Event Metrics:
  - websocket_connections: Active connections (gauge)
  - websocket_messages_sent_total: Messages sent (counter)
  - websocket_messages_received_total: Messages received (counter)
  - websocket_errors_total: Errors (counter)
    Labels: error_type
  - events_published_total: Events published to the bus (counter)
    Labels: topic
  - events_dropped_total: Events dropped (counter)
    Labels: topic
  - event_handler_failures_total: Handler failures (counter)
    Labels: topic

# Usage Example

Basic setup in main.go:

	import (
	    "github.com/danarhys/cognatus/internal/metrics"
	    "github.com/prometheus/client_golang/prometheus/promhttp"
	)

	func main() {
	    http.Handle("/metrics", promhttp.Handler())

	    metrics.RecordAPIRequest("GET", "/api/v1/compare", "200", 23*time.Millisecond)
	    metrics.RecordCacheHit("genome")
	    metrics.RecordComparison("compare", 120*time.Microsecond, false)
	}

Recording directory requests with outcome classification:

	start := time.Now()
	profile, err := client.FetchGenome(ctx, username)
	metrics.RecordDirectoryRequest("genome", time.Since(start), err)

# Metric Naming

All metrics follow Prometheus naming conventions:
  - Counters end in _total
  - Durations end in _seconds and use histograms
  - Gauges describe current state without a suffix

# Thread Safety

All prometheus client types are safe for concurrent use. Helpers in this
package may be called from any goroutine without synchronization.

# Cardinality

Label values are drawn from small fixed sets (operation names, outcome
classes, cache types, topics). The only unbounded label is the truncated
error_type on duckdb_query_errors_total, capped at 50 characters,
mirroring the store's small set of failure modes in practice.
*/
package metrics
