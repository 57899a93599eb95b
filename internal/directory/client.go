// Cognatus - Talent Discovery Analytics and Profile Similarity Engine
// Copyright 2026 Dana R. (danarhys)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/danarhys/cognatus

package directory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/danarhys/cognatus/internal/config"
	"github.com/danarhys/cognatus/internal/genome"
	"github.com/danarhys/cognatus/internal/logging"
	"github.com/danarhys/cognatus/internal/metrics"
)

// ErrNotFound reports a username the directory does not know. Callers
// treat it as an answer, not an outage: the cache skips the candidate,
// the API maps it to 404, and the circuit breaker does not count it as
// a failure.
var ErrNotFound = errors.New("profile not found")

const (
	defaultTimeout    = 15 * time.Second
	defaultRetryDelay = 500 * time.Millisecond
	defaultRateLimit  = 10
	defaultRateBurst  = 20

	// DefaultSearchLimit applies when a caller passes limit <= 0.
	DefaultSearchLimit = 25
	// MaxSearchLimit caps any single search request.
	MaxSearchLimit = 50

	// maxErrorBodySize bounds how much of an error response body is
	// read back for diagnostics.
	maxErrorBodySize = 64 * 1024
)

// API is the directory surface the rest of the system consumes. The
// plain Client implements it, and Breaker wraps any implementation
// with circuit breaker protection. Tests substitute mocks.
//
// All methods are safe for concurrent use.
type API interface {
	// Search returns lightweight candidate stubs for a free-text
	// query. Empty result sets are normal, not errors.
	Search(ctx context.Context, query string, limit int) ([]genome.Candidate, error)

	// FetchGenome retrieves the full skill genome for one username.
	// Unknown usernames return an error wrapping ErrNotFound.
	FetchGenome(ctx context.Context, username string) (*genome.Profile, error)

	// Ping verifies the directory is reachable. Used by readiness.
	Ping(ctx context.Context) error
}

// Client talks to the talent directory's REST API. It rate limits
// outbound calls with a token bucket, retries transient failures
// (429, 5xx, network errors) with exponential backoff, and honors
// Retry-After on rate-limited responses.
//
// Thread Safety: safe for concurrent use. Each request builds its own
// http.Request; the limiter and http.Client are both concurrency-safe.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
	maxRetries int
	retryDelay time.Duration
}

var _ API = (*Client)(nil)

// NewClient builds a directory client from configuration, applying
// defaults for any zero tuning values.
func NewClient(cfg config.DirectoryConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	rps := cfg.RateLimit
	if rps <= 0 {
		rps = defaultRateLimit
	}
	burst := cfg.RateBurst
	if burst <= 0 {
		burst = defaultRateBurst
	}
	retries := cfg.RetryAttempts
	if retries < 0 {
		retries = 0
	}
	delay := cfg.RetryDelay
	if delay <= 0 {
		delay = defaultRetryDelay
	}

	logging.Info().
		Str("base_url", cfg.BaseURL).
		Str("api_key", logging.SanitizeToken(cfg.APIKey)).
		Float64("rate_limit", rps).
		Int("retries", retries).
		Msg("Directory client configured")

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(rps), burst),
		maxRetries: retries,
		retryDelay: delay,
	}
}

// Search queries the directory for people matching a free-text query.
// The limit is clamped to [1, MaxSearchLimit]; limit <= 0 selects
// DefaultSearchLimit.
func (c *Client) Search(ctx context.Context, query string, limit int) (results []genome.Candidate, err error) {
	start := time.Now()
	defer func() { metrics.RecordDirectoryRequest("search", time.Since(start), err) }()

	query = strings.TrimSpace(query)
	if query == "" {
		err = fmt.Errorf("search: empty query")
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	if limit > MaxSearchLimit {
		limit = MaxSearchLimit
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(limit))

	var resp struct {
		Results []genome.Candidate `json:"results"`
		Total   int                `json:"total"`
	}
	if err = c.getJSON(ctx, "search", "/api/v1/people/search", params, &resp); err != nil {
		err = fmt.Errorf("search %q: %w", query, err)
		return nil, err
	}
	return resp.Results, nil
}

// FetchGenome retrieves the full profile for a username. A 404 from
// the directory comes back wrapping ErrNotFound; all other failures
// are transport or upstream errors.
func (c *Client) FetchGenome(ctx context.Context, username string) (profile *genome.Profile, err error) {
	start := time.Now()
	defer func() { metrics.RecordDirectoryRequest("fetch_genome", time.Since(start), err) }()

	username = strings.TrimSpace(username)
	if username == "" {
		err = fmt.Errorf("fetch genome: empty username")
		return nil, err
	}

	var p genome.Profile
	if err = c.getJSON(ctx, "fetch_genome", "/api/v1/genomes/"+url.PathEscape(username), nil, &p); err != nil {
		if errors.Is(err, ErrNotFound) {
			err = fmt.Errorf("genome %s: %w", username, ErrNotFound)
		} else {
			err = fmt.Errorf("fetch genome %s: %w", username, err)
		}
		return nil, err
	}

	// Upstream payloads may omit the username; downstream keys on it.
	if p.Username == "" {
		p.Username = username
	}
	return &p, nil
}

// Ping verifies connectivity to the directory API.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { metrics.RecordDirectoryRequest("ping", time.Since(start), err) }()

	resp, err := c.doWithRetry(ctx, "ping", c.baseURL+"/api/v1/ping")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err = fmt.Errorf("ping returned status %d", resp.StatusCode)
		return err
	}
	return nil
}

// getJSON performs a GET against the directory and decodes the JSON
// response into result. 404 maps to ErrNotFound before any decoding.
func (c *Client) getJSON(ctx context.Context, operation, path string, params url.Values, result interface{}) error {
	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	resp, err := c.doWithRetry(ctx, operation, reqURL)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode != http.StatusOK:
		body := readBodyForError(resp.Body)
		return fmt.Errorf("%s returned status %d: %s", operation, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("decode %s response: %w", operation, err)
	}
	return nil
}

// doWithRetry performs a GET with rate limiting and bounded retries.
// 429 and 5xx responses and transport errors are retried with
// exponential backoff (retryDelay, 2x per attempt); a Retry-After
// header on 429 overrides the computed delay. 4xx responses other
// than 429 are returned to the caller unretried.
func (c *Client) doWithRetry(ctx context.Context, operation, reqURL string) (*http.Response, error) {
	var lastErr error
	var retryAfter time.Duration

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			metrics.RecordDirectoryRetry(operation)
			delay := c.retryDelay * time.Duration(1<<uint(attempt-1))
			if retryAfter > 0 {
				delay = retryAfter
			}
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
		if err != nil {
			return nil, fmt.Errorf("build %s request: %w", operation, err)
		}
		req.Header.Set("Accept", "application/json")
		if c.apiKey != "" {
			req.Header.Set("Authorization", "Bearer "+c.apiKey)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%s request failed: %w", operation, err)
			retryAfter = 0
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			retryAfter = parseRetryAfter(resp.Header.Get("Retry-After"))
			_ = resp.Body.Close()
			lastErr = fmt.Errorf("%s returned status %d", operation, resp.StatusCode)
			continue
		}

		return resp, nil
	}

	return nil, fmt.Errorf("%s failed after %d attempts: %w", operation, c.maxRetries+1, lastErr)
}

// parseRetryAfter interprets a Retry-After header as whole seconds.
func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 0
	}
	if d, err := time.ParseDuration(header + "s"); err == nil && d > 0 {
		return d
	}
	return 0
}

// readBodyForError reads a bounded amount of an error response body
// for diagnostics.
func readBodyForError(r io.Reader) []byte {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, []byte("... (truncated)")...)
	}
	return body
}
