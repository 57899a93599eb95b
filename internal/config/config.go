// Cognatus - Talent Discovery Analytics and Profile Similarity Engine
// Copyright 2026 Dana R. (danarhys)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/danarhys/cognatus

package config

import (
	"time"
)

// Config holds all application configuration loaded from environment variables and config files.
// Provides centralized configuration management for all application components including
// the upstream talent directory, genome cache, discovery pipeline, history store, event bus,
// HTTP server, and logging.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all optional settings
//  2. Config File: Optional YAML config file (config.yaml) for persistent settings
//  3. Environment Variables: Override any setting
//
// Configuration Categories:
//
//  1. Upstream:
//     - Directory: Talent directory API (base URL, credentials, rate limit, breaker)
//
//  2. Engine:
//     - Cache: Genome TTL cache (TTL, cleanup interval)
//     - Recommend: Discovery pipeline tuning (limits, fan-out, batching, early exit)
//
//  3. Infrastructure:
//     - History: DuckDB store for comparisons and pipeline runs
//     - Events: In-process event bus buffering
//     - Server: HTTP server (port, host, timeouts)
//
//  4. API & Observability:
//     - API: Pagination limits
//     - Security: Rate limiting, CORS, config secret
//     - Logging: Log levels and output formats
//
// Example - Load configuration from environment:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal("Failed to load config:", err)
//	}
//	// cfg.Directory.BaseURL, cfg.History.Path, etc. are now populated
//
// Example - Access configuration values:
//
//	client := directory.NewClient(cfg.Directory)
//	store, err := history.New(cfg.History)
//	server := http.Server{Addr: fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)}
//
// Validation:
// The Load() function validates all required fields and returns an error if:
//   - Required settings are missing (DIRECTORY_URL)
//   - Values are malformed (invalid URL format, out-of-range numbers)
//   - An encrypted credential is present but CONFIG_SECRET is not set
//
// Thread Safety:
// Config is immutable after Load() and safe for concurrent read access from multiple goroutines.
type Config struct {
	Directory DirectoryConfig `koanf:"directory"`
	Cache     CacheConfig     `koanf:"cache"`
	Recommend RecommendConfig `koanf:"recommend"`
	History   HistoryConfig   `koanf:"history"`
	Events    EventsConfig    `koanf:"events"`
	Server    ServerConfig    `koanf:"server"`
	API       APIConfig       `koanf:"api"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// DirectoryConfig holds connection settings for the upstream talent directory API,
// the single external data source for people search and skill genomes.
//
// The client wraps every call in a token-bucket rate limiter and a circuit
// breaker so a degraded upstream cannot stall discovery runs or exhaust the
// directory's own rate budget.
//
// Environment Variables:
//   - DIRECTORY_URL: Directory base URL (required, e.g. https://directory.example.com)
//   - DIRECTORY_API_KEY: API key for authenticated requests (optional; supports enc: values)
//   - DIRECTORY_TIMEOUT: Per-request HTTP timeout (default: 15s)
//   - DIRECTORY_RETRY_ATTEMPTS: Retries on transient failures (default: 2)
//   - DIRECTORY_RETRY_DELAY: Base delay between retries (default: 500ms)
//   - DIRECTORY_RATE_LIMIT: Outbound requests per second (default: 10)
//   - DIRECTORY_RATE_BURST: Rate limiter burst size (default: 20)
//   - DIRECTORY_BREAKER_MAX_REQUESTS: Probes allowed while half-open (default: 3)
//   - DIRECTORY_BREAKER_INTERVAL: Closed-state counter reset interval (default: 60s)
//   - DIRECTORY_BREAKER_TIMEOUT: Open-state duration before half-open (default: 30s)
//   - DIRECTORY_BREAKER_FAILURE_RATIO: Failure ratio that trips the breaker (default: 0.6)
//   - DIRECTORY_BREAKER_MIN_REQUESTS: Minimum samples before tripping (default: 10)
//
// Example - Minimal setup:
//
//	cfg := DirectoryConfig{
//	    BaseURL: "https://directory.example.com",
//	    APIKey:  "your-api-key",
//	}
//
// Encrypted credentials:
// APIKey values starting with "enc:" are decrypted at load time using a key
// derived from CONFIG_SECRET. See encryption.go for the format.
type DirectoryConfig struct {
	BaseURL       string        `koanf:"base_url"`
	APIKey        string        `koanf:"api_key"`
	Timeout       time.Duration `koanf:"timeout"`
	RetryAttempts int           `koanf:"retry_attempts"`
	RetryDelay    time.Duration `koanf:"retry_delay"`

	// Outbound rate limiting (token bucket)
	RateLimit float64 `koanf:"rate_limit"` // Requests per second
	RateBurst int     `koanf:"rate_burst"` // Burst capacity

	// Circuit breaker tuning (sony/gobreaker)
	BreakerMaxRequests  int           `koanf:"breaker_max_requests"`  // Probes while half-open
	BreakerInterval     time.Duration `koanf:"breaker_interval"`      // Counter reset while closed
	BreakerTimeout      time.Duration `koanf:"breaker_timeout"`       // Open duration before half-open
	BreakerFailureRatio float64       `koanf:"breaker_failure_ratio"` // Trip threshold
	BreakerMinRequests  int           `koanf:"breaker_min_requests"`  // Samples required before tripping
}

// CacheConfig holds genome cache settings.
//
// The cache keeps fetched skill genomes in memory with a per-entry TTL so
// repeated comparisons against the same person do not refetch from the
// directory. Failed fetches are never cached.
//
// Environment Variables:
//   - CACHE_TTL: Time-to-live per entry (default: 5m)
//   - CACHE_CLEANUP_INTERVAL: Expired-entry sweep interval (default: 1m)
type CacheConfig struct {
	TTL             time.Duration `koanf:"ttl"`
	CleanupInterval time.Duration `koanf:"cleanup_interval"`
}

// RecommendConfig holds discovery pipeline tuning for finding similar profiles.
//
// The pipeline builds a bounded query set from the target's genome, fans out
// to the directory, pre-filters candidates by skill overlap, and fully
// compares survivors in fixed-size concurrent batches. All knobs default to
// values balanced for a directory of tens of thousands of profiles; raising
// fan-out or batch size increases upstream load linearly.
//
// Environment Variables:
//   - RECOMMEND_DEFAULT_LIMIT: Results returned when request omits limit (default: 10)
//   - RECOMMEND_MAX_LIMIT: Hard ceiling on requested limit (default: 50)
//   - RECOMMEND_MIN_SCORE: Score threshold when request omits min_score (default: 0.3)
//   - RECOMMEND_MAX_QUERIES: Search query set cap per run (default: 8)
//   - RECOMMEND_CANDIDATES_PER_QUERY: Search page size per query (default: 25)
//   - RECOMMEND_BATCH_SIZE: Concurrent genome comparisons per batch (default: 8)
//   - RECOMMEND_EARLY_EXIT_COUNT: Qualifying results that stop new batches (default: 30)
//   - RECOMMEND_PREFILTER_MARGIN: Jaccard slack below min_score before skipping (default: 0.1)
//   - RECOMMEND_RUN_TIMEOUT: Per-run deadline (default: 30s)
type RecommendConfig struct {
	DefaultLimit       int           `koanf:"default_limit"`
	MaxLimit           int           `koanf:"max_limit"`
	MinScore           float64       `koanf:"min_score"`
	MaxQueries         int           `koanf:"max_queries"`
	CandidatesPerQuery int           `koanf:"candidates_per_query"`
	BatchSize          int           `koanf:"batch_size"`
	EarlyExitCount     int           `koanf:"early_exit_count"`
	PrefilterMargin    float64       `koanf:"prefilter_margin"`
	RunTimeout         time.Duration `koanf:"run_timeout"`
}

// HistoryConfig holds DuckDB settings for the comparison and run history store.
//
// Environment Variables:
//   - DUCKDB_PATH: Database file path, ":memory:" for ephemeral (default: /data/cognatus.duckdb)
//   - DUCKDB_MAX_MEMORY: DuckDB memory limit (default: 1GB)
//   - HISTORY_THREADS: DuckDB thread count, 0 = NumCPU (default: 0)
//   - HISTORY_RETENTION_DAYS: Days of history to keep, 0 = forever (default: 90)
type HistoryConfig struct {
	Path          string `koanf:"path"`
	MaxMemory     string `koanf:"max_memory"`
	Threads       int    `koanf:"threads"` // 0 = use runtime.NumCPU()
	RetentionDays int    `koanf:"retention_days"`
}

// EventsConfig holds in-process event bus settings.
//
// Environment Variables:
//   - EVENTS_BUFFER_SIZE: Per-subscriber channel buffer (default: 256)
//   - EVENTS_PERSISTENT: Replay all past events to late subscribers (default: false)
type EventsConfig struct {
	BufferSize int  `koanf:"buffer_size"`
	Persistent bool `koanf:"persistent"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // "development", "staging", "production"
}

// APIConfig holds API pagination and response settings
type APIConfig struct {
	DefaultPageSize int `koanf:"default_page_size"`
	MaxPageSize     int `koanf:"max_page_size"`
}

// SecurityConfig holds rate limiting, CORS, and credential settings.
//
// Environment Variables:
//   - RATE_LIMIT_REQUESTS: Requests allowed per window per IP (default: 100)
//   - RATE_LIMIT_WINDOW: Rate limit window (default: 1m)
//   - DISABLE_RATE_LIMIT: Disable API rate limiting (default: false)
//   - CORS_ORIGINS: Comma-separated allowed origins (default: *)
//   - TRUSTED_PROXIES: Comma-separated proxy CIDRs for client IP resolution
//   - CONFIG_SECRET: Secret for decrypting enc: config values (required only when used)
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	TrustedProxies    []string      `koanf:"trusted_proxies"`

	// ConfigSecret derives the AES key for enc:-prefixed config values.
	// Never logged; see logging.SanitizeToken for display.
	ConfigSecret string `koanf:"config_secret"`
}

// LoggingConfig holds logging settings for zerolog.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false - include caller file:line (default: false)
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// JSON is recommended for production (structured, machine-parseable).
	// Console is human-readable for development.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Adds slight performance overhead.
	// Default: false
	Caller bool `koanf:"caller"`
}

// Load reads configuration from environment variables and optional config file.
// Configuration is loaded in the following order (later sources override earlier ones):
//  1. Built-in defaults
//  2. Config file (config.yaml if exists, or path specified in CONFIG_PATH env var)
//  3. Environment variables
//
// See LoadWithKoanf() for the underlying implementation.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// LoadLegacy reads configuration directly from environment variables only.
// This is the legacy loading method preserved for testing and backward compatibility.
// For production use, prefer Load() which supports config files and layered loading.
//
// Deprecated: Use Load() instead for new code.
func LoadLegacy() (*Config, error) {
	cfg := &Config{
		Directory: DirectoryConfig{
			BaseURL:             getEnv("DIRECTORY_URL", ""),
			APIKey:              getEnv("DIRECTORY_API_KEY", ""),
			Timeout:             getDurationEnv("DIRECTORY_TIMEOUT", 15*time.Second),
			RetryAttempts:       getIntEnv("DIRECTORY_RETRY_ATTEMPTS", 2),
			RetryDelay:          getDurationEnv("DIRECTORY_RETRY_DELAY", 500*time.Millisecond),
			RateLimit:           getFloatEnv("DIRECTORY_RATE_LIMIT", 10),
			RateBurst:           getIntEnv("DIRECTORY_RATE_BURST", 20),
			BreakerMaxRequests:  getIntEnv("DIRECTORY_BREAKER_MAX_REQUESTS", 3),
			BreakerInterval:     getDurationEnv("DIRECTORY_BREAKER_INTERVAL", 60*time.Second),
			BreakerTimeout:      getDurationEnv("DIRECTORY_BREAKER_TIMEOUT", 30*time.Second),
			BreakerFailureRatio: getFloatEnv("DIRECTORY_BREAKER_FAILURE_RATIO", 0.6),
			BreakerMinRequests:  getIntEnv("DIRECTORY_BREAKER_MIN_REQUESTS", 10),
		},
		Cache: CacheConfig{
			TTL:             getDurationEnv("CACHE_TTL", 5*time.Minute),
			CleanupInterval: getDurationEnv("CACHE_CLEANUP_INTERVAL", time.Minute),
		},
		Recommend: RecommendConfig{
			DefaultLimit:       getIntEnv("RECOMMEND_DEFAULT_LIMIT", 10),
			MaxLimit:           getIntEnv("RECOMMEND_MAX_LIMIT", 50),
			MinScore:           getFloatEnv("RECOMMEND_MIN_SCORE", 0.3),
			MaxQueries:         getIntEnv("RECOMMEND_MAX_QUERIES", 8),
			CandidatesPerQuery: getIntEnv("RECOMMEND_CANDIDATES_PER_QUERY", 25),
			BatchSize:          getIntEnv("RECOMMEND_BATCH_SIZE", 8),
			EarlyExitCount:     getIntEnv("RECOMMEND_EARLY_EXIT_COUNT", 30),
			PrefilterMargin:    getFloatEnv("RECOMMEND_PREFILTER_MARGIN", 0.1),
			RunTimeout:         getDurationEnv("RECOMMEND_RUN_TIMEOUT", 30*time.Second),
		},
		History: HistoryConfig{
			Path:          getEnv("DUCKDB_PATH", "/data/cognatus.duckdb"),
			MaxMemory:     getEnv("DUCKDB_MAX_MEMORY", "1GB"),
			Threads:       getIntEnv("HISTORY_THREADS", 0),
			RetentionDays: getIntEnv("HISTORY_RETENTION_DAYS", 90),
		},
		Events: EventsConfig{
			BufferSize: getIntEnv("EVENTS_BUFFER_SIZE", 256),
			Persistent: getBoolEnv("EVENTS_PERSISTENT", false),
		},
		Server: ServerConfig{
			Port:            getIntEnv("HTTP_PORT", 7887),
			Host:            getEnv("HTTP_HOST", "0.0.0.0"),
			Timeout:         getDurationEnv("HTTP_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getDurationEnv("SHUTDOWN_TIMEOUT", 15*time.Second),
			Environment:     getEnv("ENVIRONMENT", "development"),
		},
		API: APIConfig{
			DefaultPageSize: getIntEnv("API_DEFAULT_PAGE_SIZE", 20),
			MaxPageSize:     getIntEnv("API_MAX_PAGE_SIZE", 100),
		},
		Security: SecurityConfig{
			RateLimitReqs:     getIntEnv("RATE_LIMIT_REQUESTS", 100),
			RateLimitWindow:   getDurationEnv("RATE_LIMIT_WINDOW", time.Minute),
			RateLimitDisabled: getBoolEnv("DISABLE_RATE_LIMIT", false),
			CORSOrigins:       getSliceEnv("CORS_ORIGINS", []string{"*"}),
			TrustedProxies:    getSliceEnv("TRUSTED_PROXIES", []string{}),
			ConfigSecret:      getEnv("CONFIG_SECRET", ""),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
			Caller: getBoolEnv("LOG_CALLER", false),
		},
	}

	if err := cfg.decryptCredentials(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
