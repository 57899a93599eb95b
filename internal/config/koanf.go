// Cognatus - Talent Discovery Analytics and Profile Similarity Engine
// Copyright 2026 Dana R. (danarhys)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/danarhys/cognatus

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/cognatus/config.yaml",
	"/etc/cognatus/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all sensible default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Directory: DirectoryConfig{
			BaseURL:       "",
			APIKey:        "",
			Timeout:       15 * time.Second,
			RetryAttempts: 2,
			RetryDelay:    500 * time.Millisecond,
			RateLimit:     10,
			RateBurst:     20,
			// Breaker defaults tuned for a single upstream: trip after a
			// 60% failure ratio over at least 10 calls, stay open 30s.
			BreakerMaxRequests:  3,
			BreakerInterval:     60 * time.Second,
			BreakerTimeout:      30 * time.Second,
			BreakerFailureRatio: 0.6,
			BreakerMinRequests:  10,
		},
		Cache: CacheConfig{
			TTL:             5 * time.Minute,
			CleanupInterval: time.Minute,
		},
		Recommend: RecommendConfig{
			DefaultLimit:       10,
			MaxLimit:           50,
			MinScore:           0.3,
			MaxQueries:         8,
			CandidatesPerQuery: 25,
			BatchSize:          8,
			EarlyExitCount:     30,
			PrefilterMargin:    0.1,
			RunTimeout:         30 * time.Second,
		},
		History: HistoryConfig{
			Path:          "/data/cognatus.duckdb",
			MaxMemory:     "1GB",
			Threads:       0, // 0 = use runtime.NumCPU()
			RetentionDays: 90,
		},
		Events: EventsConfig{
			BufferSize: 256,
			Persistent: false,
		},
		Server: ServerConfig{
			Port:            7887,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			ShutdownTimeout: 15 * time.Second,
			Environment:     "development",
		},
		API: APIConfig{
			DefaultPageSize: 20,
			MaxPageSize:     100,
		},
		Security: SecurityConfig{
			RateLimitReqs:     100,
			RateLimitWindow:   1 * time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
			TrustedProxies:    []string{},
			ConfigSecret:      "",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in sensible defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
//
// This function is the preferred way to load configuration and provides:
//   - Type-safe configuration unmarshaling
//   - Clear precedence: ENV > File > Defaults
//   - Support for nested configuration via koanf struct tags
//   - Decryption of enc:-prefixed credential values
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	configPath := FindConfigFile()
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// Transform environment variable names to koanf paths:
	// DIRECTORY_URL -> directory.base_url
	// RECOMMEND_BATCH_SIZE -> recommend.batch_size
	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Post-process slice fields from comma-separated strings
	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	// Unmarshal into Config struct
	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	// Decrypt enc:-prefixed credentials before validation
	if err := cfg.decryptCredentials(); err != nil {
		return nil, fmt.Errorf("failed to decrypt credentials: %w", err)
	}

	// Validate the configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
// The CONFIG_PATH environment variable takes precedence over default paths.
func FindConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
	"security.trusted_proxies",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// This is necessary because env vars come in as strings, but the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		// If it's already a slice (from YAML file), skip
		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}

		// If it's a string, split by comma
		if strVal, ok := val.(string); ok {
			if strVal == "" {
				continue
			}
			parts := strings.Split(strVal, ",")
			trimmed := make([]string, 0, len(parts))
			for _, p := range parts {
				p = strings.TrimSpace(p)
				if p != "" {
					trimmed = append(trimmed, p)
				}
			}
			if len(trimmed) > 0 {
				if err := k.Set(path, trimmed); err != nil {
					return fmt.Errorf("failed to set %s: %w", path, err)
				}
			}
		}
	}
	return nil
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - DIRECTORY_URL -> directory.base_url
//   - DIRECTORY_API_KEY -> directory.api_key
//   - CACHE_TTL -> cache.ttl
//   - DUCKDB_PATH -> history.path
//   - HTTP_PORT -> server.port
func envTransformFunc(key string) string {
	key = strings.ToLower(key)

	envMappings := map[string]string{
		// Directory client mappings
		"directory_url":                   "directory.base_url",
		"directory_api_key":               "directory.api_key",
		"directory_timeout":               "directory.timeout",
		"directory_retry_attempts":        "directory.retry_attempts",
		"directory_retry_delay":           "directory.retry_delay",
		"directory_rate_limit":            "directory.rate_limit",
		"directory_rate_burst":            "directory.rate_burst",
		"directory_breaker_max_requests":  "directory.breaker_max_requests",
		"directory_breaker_interval":      "directory.breaker_interval",
		"directory_breaker_timeout":       "directory.breaker_timeout",
		"directory_breaker_failure_ratio": "directory.breaker_failure_ratio",
		"directory_breaker_min_requests":  "directory.breaker_min_requests",

		// Cache mappings
		"cache_ttl":              "cache.ttl",
		"cache_cleanup_interval": "cache.cleanup_interval",

		// Discovery pipeline mappings
		"recommend_default_limit":        "recommend.default_limit",
		"recommend_max_limit":            "recommend.max_limit",
		"recommend_min_score":            "recommend.min_score",
		"recommend_max_queries":          "recommend.max_queries",
		"recommend_candidates_per_query": "recommend.candidates_per_query",
		"recommend_batch_size":           "recommend.batch_size",
		"recommend_early_exit_count":     "recommend.early_exit_count",
		"recommend_prefilter_margin":     "recommend.prefilter_margin",
		"recommend_run_timeout":          "recommend.run_timeout",

		// History store mappings (DUCKDB_ prefix kept for operator familiarity)
		"duckdb_path":            "history.path",
		"duckdb_max_memory":      "history.max_memory",
		"history_path":           "history.path",
		"history_max_memory":     "history.max_memory",
		"history_threads":        "history.threads",
		"history_retention_days": "history.retention_days",

		// Event bus mappings
		"events_buffer_size": "events.buffer_size",
		"events_persistent":  "events.persistent",

		// Server mappings
		"http_port":        "server.port",
		"http_host":        "server.host",
		"http_timeout":     "server.timeout",
		"shutdown_timeout": "server.shutdown_timeout",
		"environment":      "server.environment",

		// API mappings
		"api_default_page_size": "api.default_page_size",
		"api_max_page_size":     "api.max_page_size",

		// Security mappings
		"rate_limit_requests": "security.rate_limit_reqs",
		"rate_limit_window":   "security.rate_limit_window",
		"disable_rate_limit":  "security.rate_limit_disabled",
		"cors_origins":        "security.cors_origins",
		"trusted_proxies":     "security.trusted_proxies",
		"config_secret":       "security.config_secret",

		// Logging mappings
		"log_level":  "logging.level",
		"log_format": "logging.format",
		"log_caller": "logging.caller",
	}

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}

	// For unmapped keys, return empty string to skip them
	// This prevents random environment variables from polluting config
	return ""
}

// GetKoanfInstance returns a new Koanf instance for advanced usage.
// This is useful for:
//   - Hot-reload scenarios (with proper mutex protection)
//   - Custom configuration sources
//   - Testing with mock configurations
func GetKoanfInstance() *koanf.Koanf {
	return koanf.New(".")
}

// WatchConfigFile sets up a file watcher for hot-reload capability.
// Note: The caller is responsible for mutex protection when accessing
// configuration during reloads.
//
// Example usage:
//
//	err := WatchConfigFile(configPath, func() {
//	    newCfg, err := config.Load()
//	    if err != nil {
//	        logging.Err(err).Msg("Config reload failed")
//	        return
//	    }
//	    logging.SetLevelString(newCfg.Logging.Level)
//	})
func WatchConfigFile(path string, callback func()) error {
	provider := file.Provider(path)

	// Start watching the file for changes
	return provider.Watch(func(event interface{}, err error) {
		if err != nil {
			return
		}
		callback()
	})
}
