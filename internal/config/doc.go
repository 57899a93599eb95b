// Cognatus - Talent Discovery Analytics and Profile Similarity Engine
// Copyright 2026 Dana R. (danarhys)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/danarhys/cognatus

/*
Package config provides centralized configuration management for Cognatus.

This package handles loading, validation, and parsing of configuration from
YAML files and environment variables for all application components. It
ensures consistent configuration across the backend services and provides
sensible defaults for optional settings.

# Configuration Sources

Configuration is loaded in layered order (later sources win):

  - Built-in defaults (all optional settings)
  - YAML config file (config.yaml, or CONFIG_PATH override)
  - Environment variables

# Configuration Structure

The package organizes configuration into logical groups:

  - DirectoryConfig: Upstream talent directory API (URL, credentials, rate limit, breaker)
  - CacheConfig: Genome TTL cache parameters
  - RecommendConfig: Discovery pipeline tuning (fan-out, batching, thresholds)
  - HistoryConfig: DuckDB store for comparisons and pipeline runs
  - EventsConfig: In-process event bus buffering
  - ServerConfig: HTTP server settings (host, port, timeouts)
  - APIConfig: Pagination limits
  - SecurityConfig: Rate limiting, CORS, config secret
  - LoggingConfig: Log levels and output formats

# Environment Variables

Key variables by component:

Directory (DirectoryConfig):
  - DIRECTORY_URL: Directory base URL (required)
  - DIRECTORY_API_KEY: API key (optional; supports enc: encrypted values)
  - DIRECTORY_TIMEOUT: Per-request timeout (default: 15s)
  - DIRECTORY_RATE_LIMIT: Outbound requests/second (default: 10)
  - DIRECTORY_BREAKER_FAILURE_RATIO: Breaker trip threshold (default: 0.6)

Cache (CacheConfig):
  - CACHE_TTL: Genome cache TTL (default: 5m)
  - CACHE_CLEANUP_INTERVAL: Expired-entry sweep interval (default: 1m)

Discovery (RecommendConfig):
  - RECOMMEND_DEFAULT_LIMIT: Default result count (default: 10)
  - RECOMMEND_MIN_SCORE: Default score threshold (default: 0.3)
  - RECOMMEND_BATCH_SIZE: Concurrent comparisons per batch (default: 8)
  - RECOMMEND_RUN_TIMEOUT: Per-run deadline (default: 30s)

History (HistoryConfig):
  - DUCKDB_PATH: Database file path (default: /data/cognatus.duckdb)
  - DUCKDB_MAX_MEMORY: Memory limit (default: 1GB)
  - HISTORY_RETENTION_DAYS: Days of history kept, 0 = forever (default: 90)

Server (ServerConfig):
  - HTTP_HOST: Bind address (default: 0.0.0.0)
  - HTTP_PORT: Listen port (default: 7887)
  - HTTP_TIMEOUT: Read/write timeout (default: 30s)

Security (SecurityConfig):
  - RATE_LIMIT_REQUESTS: Requests per window per IP (default: 100)
  - CORS_ORIGINS: Comma-separated allowed origins (default: *)
  - CONFIG_SECRET: Secret for decrypting enc: config values

Logging (LoggingConfig):
  - LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - LOG_FORMAT: json, console (default: json)

# Usage Example

Basic configuration loading:

	import "github.com/danarhys/cognatus/internal/config"

	// Load configuration from file and environment
	cfg, err := config.Load()
	if err != nil {
	    log.Fatalf("Failed to load config: %v", err)
	}

	// Access configuration values
	fmt.Printf("Starting server on %s:%d\n", cfg.Server.Host, cfg.Server.Port)
	fmt.Printf("Directory: %s\n", cfg.Directory.BaseURL)
	fmt.Printf("History store: %s\n", cfg.History.Path)

Testing with custom configuration:

	// Override environment variables for testing
	os.Setenv("DIRECTORY_URL", "http://directory.test")
	os.Setenv("HTTP_PORT", "8080")

	cfg, err := config.Load()
	// Use cfg for testing

# Validation

The package performs comprehensive validation:

  - Required fields: DIRECTORY_URL
  - Numeric ranges: HTTP_PORT (1-65535), RECOMMEND_BATCH_SIZE (1-32)
  - Duration ranges: CACHE_TTL (1s-24h), RECOMMEND_RUN_TIMEOUT (1s-10m)
  - URL formats: DIRECTORY_URL must be a valid HTTP(S) URL
  - Score thresholds: RECOMMEND_MIN_SCORE and RECOMMEND_PREFILTER_MARGIN in [0, 1]

# Encrypted Credentials

The directory API key may be stored encrypted in config files using the
enc: prefix (AES-256-GCM, key derived from CONFIG_SECRET via HKDF):

	directory:
	  api_key: "enc:bm9uY2UuLi4="

Generate values with EncryptValue and keep CONFIG_SECRET out of the file.

# Thread Safety

The Config struct is immutable after Load() returns, making it safe for
concurrent access from multiple goroutines without synchronization.

# Performance

Configuration loading is fast (<10ms) and only happens once at startup.
Values are parsed and validated during Load(), so runtime access is direct
field reads with zero overhead.
*/
package config
