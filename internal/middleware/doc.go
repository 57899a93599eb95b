// Cognatus - Talent Discovery Analytics and Profile Similarity Engine
// Copyright 2026 Dana R. (danarhys)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/danarhys/cognatus

/*
Package middleware provides HTTP middleware components for the application.

This package implements infrastructure middleware for compression, performance
monitoring, request ID tracking, and Prometheus metrics integration. These
components are wired into the Chi router through an adapter, alongside the
Chi-ecosystem middleware (CORS, rate limiting) configured in internal/api.

Key Components:

  - Compression: Gzip compression for JSON responses
  - Performance Monitor: Request latency tracking with percentile calculations
  - Request ID: UUID-based request tracking for distributed tracing
  - Prometheus Metrics: HTTP request/response instrumentation

Middleware Stack:

Route groups in the Chi router compose the stack per endpoint class:

	r.Route("/api/v1/history", func(r chi.Router) {
	    r.Use(rateLimiter)                                 // Layer 1: Rate limiting
	    r.Use(chiMiddleware(middleware.PrometheusMetrics)) // Layer 2: Metrics
	    r.Use(chiMiddleware(middleware.Compression))       // Layer 3: Gzip
	    r.Get("/comparisons", handler.HistoryComparisons)  // Layer 4: Business logic
	})

Usage Example - Performance Monitoring:

	// Create performance monitor keeping the last 1000 requests
	perfMon := middleware.NewPerformanceMonitor(1000)

	// Wrap handlers
	r.Use(perfMon.Middleware)

	// Aggregate latency percentiles per endpoint
	stats := perfMon.GetStats() // P50/P95/P99 per "METHOD path"

Usage Example - Request ID:

	// Incoming X-Request-ID headers are honored; otherwise a UUID is
	// generated. The ID lands in the response header, the request
	// context, and every log line written through logging.Ctx*.
	r.Use(chiMiddleware(middleware.RequestID))

	// Access request ID in handler
	func handler(w http.ResponseWriter, r *http.Request) {
	    requestID := middleware.GetRequestID(r.Context())
	    logging.CtxInfo(r.Context()).Msg("Processing request")
	}

Prometheus Instrumentation:

PrometheusMetrics records request count and duration per method,
endpoint, and status code, plus an active-request gauge. Endpoints are
labeled with the Chi route pattern ("/api/v1/genomes/{username}")
rather than the concrete path, keeping metric cardinality bounded no
matter how many profiles are queried.

Performance Characteristics:

  - Compression: 70-90% size reduction for JSON payloads
  - Compression overhead: ~1-2ms for typical responses
  - Metrics overhead: <0.1ms per request
  - Request ID overhead: <0.01ms (UUID generation)

Performance Monitor:

The performance monitor tracks:
  - Request count per endpoint
  - Latency percentiles (p50, p95, p99)
  - Rolling window of the N most recent requests
  - Thread-safe concurrent access with RWMutex

Thread Safety:

All middleware components are thread-safe:
  - Compression uses pooled per-request gzip writers
  - Performance monitor uses sync.RWMutex
  - Request ID uses context.Context (immutable)
  - Prometheus metrics use atomic operations

See Also:

  - internal/api: Chi router and Chi-ecosystem middleware configuration
  - internal/metrics: Prometheus metrics definitions
  - internal/logging: Context-scoped logging the request ID integrates with
*/
package middleware
