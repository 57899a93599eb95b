// Cognatus - Talent Discovery Analytics and Profile Similarity Engine
// Copyright 2026 Dana R. (danarhys)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/danarhys/cognatus

package metrics

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus Metrics Integration for Production Observability
// This package provides comprehensive instrumentation for:
// - API endpoint latency and throughput
// - Directory client performance and circuit breaker state
// - Similarity computation throughput
// - Discovery pipeline runs
// - Cache efficiency
// - History store (DuckDB) query performance
// - WebSocket connections and event bus delivery

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}, // Optimized for API latency
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Directory Client Metrics
	DirectoryRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "directory_requests_total",
			Help: "Total number of requests to the upstream directory",
		},
		[]string{"operation", "outcome"}, // outcome: "success", "not_found", "timeout", "rejected", "error"
	)

	DirectoryRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "directory_request_duration_seconds",
			Help:    "Duration of upstream directory requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"}, // "search", "genome"
	)

	DirectoryRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "directory_retries_total",
			Help: "Total number of retried directory requests",
		},
		[]string{"operation"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Similarity Computation Metrics
	SimilarityComputations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "similarity_computations_total",
			Help: "Total number of similarity computations",
		},
		[]string{"kind"}, // "compare", "complement", "team"
	)

	SimilarityDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "similarity_computation_duration_seconds",
			Help:    "Duration of similarity computations in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"kind"},
	)

	SimilarityFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "similarity_failures_total",
			Help: "Total number of similarity computations that produced an error result",
		},
		[]string{"kind"},
	)

	// Discovery Pipeline Metrics
	DiscoveryRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "discovery_runs_total",
			Help: "Total number of discovery pipeline runs",
		},
		[]string{"outcome"}, // "success", "error"
	)

	DiscoveryRunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "discovery_run_duration_seconds",
			Help:    "Duration of discovery pipeline runs in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60}, // Fan-out runs can take tens of seconds
		},
	)

	DiscoveryQueries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "discovery_queries_total",
			Help: "Total number of directory search queries issued by the pipeline",
		},
	)

	DiscoveryQueryErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "discovery_query_errors_total",
			Help: "Total number of pipeline search queries that failed (swallowed, run continues)",
		},
	)

	DiscoveryCandidatesEvaluated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "discovery_candidates_evaluated_total",
			Help: "Total number of candidates scored with the full similarity computation",
		},
	)

	DiscoveryCandidatesPrefiltered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "discovery_candidates_prefiltered_total",
			Help: "Total number of candidates skipped by the Jaccard prefilter",
		},
	)

	DiscoveryEarlyExits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "discovery_early_exits_total",
			Help: "Total number of runs that stopped early after enough qualifying matches",
		},
	)

	DiscoveryResultCount = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "discovery_result_count",
			Help:    "Number of matches returned per discovery run",
			Buckets: []float64{0, 1, 3, 5, 10, 20, 50},
		},
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_type"}, // "genome", "search", "comparison"
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_type"},
	)

	CacheSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_entries",
			Help: "Current number of cached entries",
		},
		[]string{"cache_type"},
	)

	CacheEvictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_evictions_total",
			Help: "Total number of cache evictions (TTL expiry)",
		},
		[]string{"cache_type"},
	)

	// History Store Metrics (DuckDB)
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets, // 0.005s, 0.01s, 0.025s, 0.05s, 0.1s, 0.25s, 0.5s, 1s, 2.5s, 5s, 10s
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table", "error_type"},
	)

	DBConnectionPoolSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "duckdb_connection_pool_size",
			Help: "Current number of database connections in use",
		},
	)

	// WebSocket Metrics
	WSConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "websocket_connections",
			Help: "Current number of active WebSocket connections",
		},
	)

	WSMessagesSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_messages_sent_total",
			Help: "Total number of WebSocket messages sent",
		},
	)

	WSMessagesReceived = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_messages_received_total",
			Help: "Total number of WebSocket messages received",
		},
	)

	WSErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "websocket_errors_total",
			Help: "Total number of WebSocket errors",
		},
		[]string{"error_type"},
	)

	// Event Bus Metrics
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_published_total",
			Help: "Total number of events published to the bus",
		},
		[]string{"topic"},
	)

	EventsDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_dropped_total",
			Help: "Total number of events dropped (publish failed or buffer full)",
		},
		[]string{"topic"},
	)

	EventHandlerFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "event_handler_failures_total",
			Help: "Total number of event handler failures",
		},
		[]string{"topic"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRateLimitHit records a rate limit rejection for an endpoint
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}

// RecordDirectoryRequest records an upstream directory request with its
// outcome classified from the error.
func RecordDirectoryRequest(operation string, duration time.Duration, err error) {
	DirectoryRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())

	outcome := "success"
	if err != nil {
		msg := err.Error()
		switch {
		case strings.Contains(msg, "not found"):
			outcome = "not_found"
		case strings.Contains(msg, "deadline exceeded"), strings.Contains(msg, "timeout"):
			outcome = "timeout"
		case strings.Contains(msg, "circuit breaker"), strings.Contains(msg, "too many requests"):
			outcome = "rejected"
		default:
			outcome = "error"
		}
	}
	DirectoryRequestsTotal.WithLabelValues(operation, outcome).Inc()
}

// RecordDirectoryRetry records a retried directory request
func RecordDirectoryRetry(operation string) {
	DirectoryRetries.WithLabelValues(operation).Inc()
}

// RecordBreakerRequest records a request result observed through a circuit breaker
func RecordBreakerRequest(name, result string) {
	CircuitBreakerRequests.WithLabelValues(name, result).Inc()
}

// RecordBreakerTransition records a circuit breaker state change and
// updates the state gauge. State values: 0=closed, 1=half-open, 2=open.
func RecordBreakerTransition(name, from, to string, stateValue float64) {
	CircuitBreakerTransitions.WithLabelValues(name, from, to).Inc()
	CircuitBreakerState.WithLabelValues(name).Set(stateValue)
}

// RecordComparison records a similarity computation metric
func RecordComparison(kind string, duration time.Duration, failed bool) {
	SimilarityComputations.WithLabelValues(kind).Inc()
	SimilarityDuration.WithLabelValues(kind).Observe(duration.Seconds())
	if failed {
		SimilarityFailures.WithLabelValues(kind).Inc()
	}
}

// RecordDiscoveryRun records a discovery pipeline run metric
func RecordDiscoveryRun(duration time.Duration, resultCount int, err error) {
	DiscoveryRunDuration.Observe(duration.Seconds())
	DiscoveryResultCount.Observe(float64(resultCount))
	if err != nil {
		DiscoveryRuns.WithLabelValues("error").Inc()
	} else {
		DiscoveryRuns.WithLabelValues("success").Inc()
	}
}

// RecordDiscoveryQuery records one pipeline search query and whether it failed
func RecordDiscoveryQuery(err error) {
	DiscoveryQueries.Inc()
	if err != nil {
		DiscoveryQueryErrors.Inc()
	}
}

// RecordCandidateEvaluated records a candidate scored with the full computation
func RecordCandidateEvaluated() {
	DiscoveryCandidatesEvaluated.Inc()
}

// RecordCandidatePrefiltered records a candidate skipped by the Jaccard prefilter
func RecordCandidatePrefiltered() {
	DiscoveryCandidatesPrefiltered.Inc()
}

// RecordEarlyExit records a run that stopped before exhausting its batches
func RecordEarlyExit() {
	DiscoveryEarlyExits.Inc()
}

// RecordCacheHit records a cache hit for the given cache type
func RecordCacheHit(cacheType string) {
	CacheHits.WithLabelValues(cacheType).Inc()
}

// RecordCacheMiss records a cache miss for the given cache type
func RecordCacheMiss(cacheType string) {
	CacheMisses.WithLabelValues(cacheType).Inc()
}

// RecordCacheEviction records TTL evictions for the given cache type
func RecordCacheEviction(cacheType string, count int) {
	if count > 0 {
		CacheEvictions.WithLabelValues(cacheType).Add(float64(count))
	}
}

// SetCacheEntries updates the entry-count gauge for the given cache type
func SetCacheEntries(cacheType string, count int) {
	CacheSize.WithLabelValues(cacheType).Set(float64(count))
}

// RecordDBQuery records a database query metric
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		errorType := err.Error()
		// Truncate long error messages
		if len(errorType) > 50 {
			errorType = errorType[:50]
		}
		DBQueryErrors.WithLabelValues(operation, table, errorType).Inc()
	}
}

// TrackWSConnection tracks active WebSocket connections
func TrackWSConnection(inc bool) {
	if inc {
		WSConnections.Inc()
	} else {
		WSConnections.Dec()
	}
}

// RecordWSMessageSent records a WebSocket message sent to a client
func RecordWSMessageSent() {
	WSMessagesSent.Inc()
}

// RecordWSMessageReceived records a WebSocket message received from a client
func RecordWSMessageReceived() {
	WSMessagesReceived.Inc()
}

// RecordWSError records a WebSocket error by type
func RecordWSError(errorType string) {
	WSErrors.WithLabelValues(errorType).Inc()
}

// RecordEventPublished records an event published to the bus
func RecordEventPublished(topic string) {
	EventsPublished.WithLabelValues(topic).Inc()
}

// RecordEventDropped records an event that could not be delivered
func RecordEventDropped(topic string) {
	EventsDropped.WithLabelValues(topic).Inc()
}

// RecordEventHandlerFailure records a handler failure for the given topic
func RecordEventHandlerFailure(topic string) {
	EventHandlerFailures.WithLabelValues(topic).Inc()
}

// SetAppInfo sets the application info gauge to 1 for the running build
func SetAppInfo(version, goVersion string) {
	AppInfo.WithLabelValues(version, goVersion).Set(1)
}

// SetUptime updates the uptime gauge
func SetUptime(seconds float64) {
	AppUptime.Set(seconds)
}
