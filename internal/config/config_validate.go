// Cognatus - Talent Discovery Analytics and Profile Similarity Engine
// Copyright 2026 Dana R. (danarhys)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/danarhys/cognatus

package config

import (
	"fmt"
	"strings"
	"time"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateDirectory(); err != nil {
		return err
	}

	if err := c.validateCache(); err != nil {
		return err
	}

	if err := c.validateRecommend(); err != nil {
		return err
	}

	if err := c.validateHistory(); err != nil {
		return err
	}

	if err := c.validateEvents(); err != nil {
		return err
	}

	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateAPI(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	return c.validateLogging()
}

// Directory client limit constants
const (
	directoryMinTimeout = 1 * time.Second
	directoryMaxTimeout = 5 * time.Minute
	directoryMaxRetries = 10
)

// validateDirectory validates the upstream directory client configuration.
// The directory is the sole data source, so the base URL is always required.
func (c *Config) validateDirectory() error {
	if c.Directory.BaseURL == "" {
		return fmt.Errorf("DIRECTORY_URL is required")
	}
	if err := validateHTTPURL(c.Directory.BaseURL, "DIRECTORY_URL"); err != nil {
		return fmt.Errorf("DIRECTORY_URL is invalid: %w", err)
	}

	if c.Directory.Timeout < directoryMinTimeout || c.Directory.Timeout > directoryMaxTimeout {
		return fmt.Errorf("DIRECTORY_TIMEOUT must be between 1s and 5m")
	}

	if c.Directory.RetryAttempts < 0 || c.Directory.RetryAttempts > directoryMaxRetries {
		return fmt.Errorf("DIRECTORY_RETRY_ATTEMPTS must be between 0 and 10")
	}

	if c.Directory.RateLimit <= 0 {
		return fmt.Errorf("DIRECTORY_RATE_LIMIT must be greater than 0")
	}

	if c.Directory.RateBurst < 1 {
		return fmt.Errorf("DIRECTORY_RATE_BURST must be at least 1")
	}

	return c.validateDirectoryBreaker()
}

// validateDirectoryBreaker validates circuit breaker tuning
func (c *Config) validateDirectoryBreaker() error {
	if c.Directory.BreakerMaxRequests < 1 {
		return fmt.Errorf("DIRECTORY_BREAKER_MAX_REQUESTS must be at least 1")
	}
	if c.Directory.BreakerFailureRatio <= 0 || c.Directory.BreakerFailureRatio > 1 {
		return fmt.Errorf("DIRECTORY_BREAKER_FAILURE_RATIO must be in (0, 1]")
	}
	if c.Directory.BreakerMinRequests < 1 {
		return fmt.Errorf("DIRECTORY_BREAKER_MIN_REQUESTS must be at least 1")
	}
	if c.Directory.BreakerTimeout < time.Second {
		return fmt.Errorf("DIRECTORY_BREAKER_TIMEOUT must be at least 1s")
	}
	return nil
}

// Cache limit constants
const (
	cacheMinTTL     = 1 * time.Second
	cacheMaxTTL     = 24 * time.Hour
	cacheMinCleanup = 1 * time.Second
	cacheMaxCleanup = 1 * time.Hour
)

// validateCache validates genome cache settings
func (c *Config) validateCache() error {
	if c.Cache.TTL < cacheMinTTL || c.Cache.TTL > cacheMaxTTL {
		return fmt.Errorf("CACHE_TTL must be between 1s and 24h")
	}
	if c.Cache.CleanupInterval < cacheMinCleanup || c.Cache.CleanupInterval > cacheMaxCleanup {
		return fmt.Errorf("CACHE_CLEANUP_INTERVAL must be between 1s and 1h")
	}
	return nil
}

// Discovery pipeline limit constants
const (
	recommendMaxLimitCeiling = 100
	recommendMaxQueryCap     = 16
	recommendMaxFanout       = 100
	recommendMaxBatch        = 32
	recommendMinRunTimeout   = 1 * time.Second
	recommendMaxRunTimeout   = 10 * time.Minute
)

// validateRecommend validates discovery pipeline tuning
func (c *Config) validateRecommend() error {
	validators := []func() error{
		c.validateRecommendLimits,
		c.validateRecommendFanout,
		c.validateRecommendScoring,
	}

	for _, validator := range validators {
		if err := validator(); err != nil {
			return err
		}
	}
	return nil
}

// validateRecommendLimits validates result limit settings
func (c *Config) validateRecommendLimits() error {
	if c.Recommend.MaxLimit < 1 || c.Recommend.MaxLimit > recommendMaxLimitCeiling {
		return fmt.Errorf("RECOMMEND_MAX_LIMIT must be between 1 and 100")
	}
	if c.Recommend.DefaultLimit < 1 || c.Recommend.DefaultLimit > c.Recommend.MaxLimit {
		return fmt.Errorf("RECOMMEND_DEFAULT_LIMIT must be between 1 and RECOMMEND_MAX_LIMIT")
	}
	return nil
}

// validateRecommendFanout validates fan-out and batching settings
func (c *Config) validateRecommendFanout() error {
	if c.Recommend.MaxQueries < 1 || c.Recommend.MaxQueries > recommendMaxQueryCap {
		return fmt.Errorf("RECOMMEND_MAX_QUERIES must be between 1 and 16")
	}
	if c.Recommend.CandidatesPerQuery < 1 || c.Recommend.CandidatesPerQuery > recommendMaxFanout {
		return fmt.Errorf("RECOMMEND_CANDIDATES_PER_QUERY must be between 1 and 100")
	}
	if c.Recommend.BatchSize < 1 || c.Recommend.BatchSize > recommendMaxBatch {
		return fmt.Errorf("RECOMMEND_BATCH_SIZE must be between 1 and 32")
	}
	if c.Recommend.EarlyExitCount < 1 {
		return fmt.Errorf("RECOMMEND_EARLY_EXIT_COUNT must be at least 1")
	}
	if c.Recommend.RunTimeout < recommendMinRunTimeout || c.Recommend.RunTimeout > recommendMaxRunTimeout {
		return fmt.Errorf("RECOMMEND_RUN_TIMEOUT must be between 1s and 10m")
	}
	return nil
}

// validateRecommendScoring validates score threshold settings
func (c *Config) validateRecommendScoring() error {
	if c.Recommend.MinScore < 0 || c.Recommend.MinScore > 1 {
		return fmt.Errorf("RECOMMEND_MIN_SCORE must be between 0 and 1")
	}
	if c.Recommend.PrefilterMargin < 0 || c.Recommend.PrefilterMargin > 1 {
		return fmt.Errorf("RECOMMEND_PREFILTER_MARGIN must be between 0 and 1")
	}
	return nil
}

// History store limit constants
const (
	historyMaxRetentionDays = 3650
)

// validateHistory validates DuckDB history store settings
func (c *Config) validateHistory() error {
	if c.History.Path == "" {
		return fmt.Errorf("DUCKDB_PATH must not be empty (use :memory: for ephemeral)")
	}
	if c.History.Threads < 0 {
		return fmt.Errorf("HISTORY_THREADS must be 0 (auto) or positive")
	}
	if c.History.RetentionDays < 0 || c.History.RetentionDays > historyMaxRetentionDays {
		return fmt.Errorf("HISTORY_RETENTION_DAYS must be between 0 and 3650")
	}
	return nil
}

// Event bus limit constants
const (
	eventsMaxBuffer = 65536
)

// validateEvents validates event bus settings
func (c *Config) validateEvents() error {
	if c.Events.BufferSize < 0 || c.Events.BufferSize > eventsMaxBuffer {
		return fmt.Errorf("EVENTS_BUFFER_SIZE must be between 0 and 65536")
	}
	return nil
}

// validateServer validates HTTP server settings
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Host == "" {
		return fmt.Errorf("HTTP_HOST must not be empty")
	}
	if c.Server.Timeout < time.Second {
		return fmt.Errorf("HTTP_TIMEOUT must be at least 1s")
	}
	if c.Server.ShutdownTimeout < time.Second {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be at least 1s")
	}

	switch c.Server.Environment {
	case "development", "staging", "production":
		return nil
	default:
		return fmt.Errorf("ENVIRONMENT must be development, staging, or production, got: %s", c.Server.Environment)
	}
}

// validateAPI validates API pagination settings
func (c *Config) validateAPI() error {
	if c.API.DefaultPageSize < 1 {
		return fmt.Errorf("API_DEFAULT_PAGE_SIZE must be at least 1")
	}
	if c.API.MaxPageSize < c.API.DefaultPageSize {
		return fmt.Errorf("API_MAX_PAGE_SIZE must be >= API_DEFAULT_PAGE_SIZE")
	}
	return nil
}

// validateSecurity validates rate limiting and CORS settings
func (c *Config) validateSecurity() error {
	if !c.Security.RateLimitDisabled {
		if c.Security.RateLimitReqs < 1 {
			return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1")
		}
		if c.Security.RateLimitWindow < time.Second {
			return fmt.Errorf("RATE_LIMIT_WINDOW must be at least 1s")
		}
	}

	// An enc: credential that survived decryptCredentials means the
	// secret was never supplied.
	if strings.HasPrefix(c.Directory.APIKey, EncryptedValuePrefix) {
		return fmt.Errorf("DIRECTORY_API_KEY is encrypted but CONFIG_SECRET is not set")
	}

	return nil
}

// validateLogging validates logging settings
func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic", "disabled":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of trace, debug, info, warn, error, fatal, panic, disabled, got: %s", c.Logging.Level)
	}

	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
		return nil
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got: %s", c.Logging.Format)
	}
}
