// Cognatus - Talent Discovery Analytics and Profile Similarity Engine
// Copyright 2026 Dana R. (danarhys)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/danarhys/cognatus

package directory

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/danarhys/cognatus/internal/config"
	"github.com/danarhys/cognatus/internal/genome"
	"github.com/danarhys/cognatus/internal/logging"
	"github.com/danarhys/cognatus/internal/metrics"
)

const breakerName = "directory-api"

// Breaker wraps a directory API with circuit breaker protection so a
// failing upstream sheds load fast instead of queueing timeouts.
//
// The breaker uses real time for its interval and timeout windows.
// That timing governs recovery behavior, not data integrity; unit
// tests exercise trip and reject paths with minimal thresholds rather
// than mocking the clock.
type Breaker struct {
	api  API
	cb   *gobreaker.CircuitBreaker[any]
	name string
}

var _ API = (*Breaker)(nil)

// NewBreaker wraps api with a circuit breaker tuned from config.
// Zero config values fall back to: 3 half-open probes, 60s counter
// window, 30s open period, trip at 60% failures over at least 10
// requests. Not-found answers never count as failures.
func NewBreaker(api API, cfg config.DirectoryConfig) *Breaker {
	maxRequests := cfg.BreakerMaxRequests
	if maxRequests <= 0 {
		maxRequests = 3
	}
	interval := cfg.BreakerInterval
	if interval <= 0 {
		interval = 60 * time.Second
	}
	timeout := cfg.BreakerTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	failureRatio := cfg.BreakerFailureRatio
	if failureRatio <= 0 || failureRatio > 1 {
		failureRatio = 0.6
	}
	minRequests := cfg.BreakerMinRequests
	if minRequests <= 0 {
		minRequests = 10
	}

	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: uint32(maxRequests),
		Interval:    interval,
		Timeout:     timeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < uint32(minRequests) {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			trip := ratio >= failureRatio
			if trip {
				logging.Warn().
					Uint32("failures", counts.TotalFailures).
					Uint32("requests", counts.Requests).
					Float64("failure_rate", ratio*100).
					Msg("Directory circuit breaker opening")
			}
			return trip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)
			logging.Info().Str("from", fromStr).Str("to", toStr).Msg("Directory circuit breaker state change")
			metrics.RecordBreakerTransition(name, fromStr, toStr, stateToFloat(to))
		},

		// A 404 is the directory answering, not failing.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrNotFound)
		},
	})

	return &Breaker{api: api, cb: cb, name: breakerName}
}

// Search queries the directory with circuit breaker protection.
func (b *Breaker) Search(ctx context.Context, query string, limit int) ([]genome.Candidate, error) {
	return castResult[[]genome.Candidate](b.execute(func() (any, error) {
		return b.api.Search(ctx, query, limit)
	}))
}

// FetchGenome retrieves a profile with circuit breaker protection.
func (b *Breaker) FetchGenome(ctx context.Context, username string) (*genome.Profile, error) {
	return castResult[*genome.Profile](b.execute(func() (any, error) {
		return b.api.FetchGenome(ctx, username)
	}))
}

// Ping verifies connectivity with circuit breaker protection.
func (b *Breaker) Ping(ctx context.Context) error {
	_, err := b.execute(func() (any, error) {
		return nil, b.api.Ping(ctx)
	})
	return err
}

// State exposes the current breaker state for health reporting.
func (b *Breaker) State() gobreaker.State {
	return b.cb.State()
}

// execute runs one call through the breaker and records the outcome.
func (b *Breaker) execute(fn func() (any, error)) (any, error) {
	result, err := b.cb.Execute(fn)
	if err != nil {
		switch {
		case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
			metrics.RecordBreakerRequest(b.name, "rejected")
			logging.Warn().Err(err).Msg("Directory request rejected by circuit breaker")
			return nil, fmt.Errorf("directory circuit breaker: %w", err)
		case errors.Is(err, ErrNotFound):
			metrics.RecordBreakerRequest(b.name, "success")
		default:
			metrics.RecordBreakerRequest(b.name, "failure")
		}
		return nil, err
	}

	metrics.RecordBreakerRequest(b.name, "success")
	return result, nil
}

// castResult type-asserts a breaker result, tolerating typed nils.
func castResult[T any](result any, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	if result == nil {
		return zero, nil
	}
	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
