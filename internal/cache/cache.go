// Cognatus - Talent Discovery Analytics and Profile Similarity Engine
// Copyright 2026 Dana R. (danarhys)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/danarhys/cognatus

package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/danarhys/cognatus/internal/genome"
	"github.com/danarhys/cognatus/internal/logging"
	"github.com/danarhys/cognatus/internal/metrics"
)

// Defaults applied by New when the config leaves them zero.
const (
	DefaultTTL             = 5 * time.Minute
	DefaultCleanupInterval = time.Minute
)

// cacheType labels this cache in the shared metrics.
const cacheType = "genome"

// FetchFunc loads a profile from the upstream directory. The cache
// treats every error identically: the result is not cached and the
// caller receives nil.
type FetchFunc func(ctx context.Context, username string) (*genome.Profile, error)

// EventSink receives observable cache outcomes. The events bridge
// implements it; a nil sink disables emission.
type EventSink interface {
	GenomeFetchFailed(ctx context.Context, username string, err error)
}

// Config assembles a genome cache. Fetch is effectively required:
// without it a miss can never be filled. Clock exists so tests can
// control time; production wiring leaves it nil for time.Now.
type Config struct {
	TTL             time.Duration
	CleanupInterval time.Duration
	Clock           func() time.Time
	Fetch           FetchFunc
	Events          EventSink
}

// entry is a cached profile stamped with its fetch time. Freshness is
// age < TTL; an entry exactly TTL old is stale.
type entry struct {
	profile   *genome.Profile
	fetchedAt time.Time
}

// Cache is a thread-safe, TTL-bounded genome cache with read-through
// fetching. Concurrent misses for the same username collapse into a
// single upstream call. It holds no global state: every instance owns
// its entries, clock, and counters.
type Cache struct {
	mu          sync.RWMutex
	entries     map[string]entry
	lastCleanup time.Time

	ttl             time.Duration
	cleanupInterval time.Duration
	now             func() time.Time
	fetch           FetchFunc
	events          EventSink
	flight          singleflight.Group

	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
}

// Stats is a point-in-time snapshot of cache performance. HitRate is
// a percentage over all lookups so far.
type Stats struct {
	Hits        int64     `json:"hits"`
	Misses      int64     `json:"misses"`
	Evictions   int64     `json:"evictions"`
	Entries     int       `json:"entries"`
	HitRate     float64   `json:"hit_rate"`
	TTLSeconds  float64   `json:"ttl_seconds"`
	LastCleanup time.Time `json:"last_cleanup"`
}

// New creates a genome cache from cfg, applying DefaultTTL,
// DefaultCleanupInterval, and time.Now for any zero field.
//
// The background cleanup loop is NOT started here: run Serve under a
// supervisor so eviction survives restarts and stops with the process.
//
// Example:
//
//	c := cache.New(cache.Config{
//	    TTL:   5 * time.Minute,
//	    Fetch: client.FetchGenome,
//	})
//	profile := c.Get(ctx, "octocat")
func New(cfg Config) *Cache {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = DefaultCleanupInterval
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	return &Cache{
		entries:         make(map[string]entry),
		lastCleanup:     cfg.Clock(),
		ttl:             cfg.TTL,
		cleanupInterval: cfg.CleanupInterval,
		now:             cfg.Clock,
		fetch:           cfg.Fetch,
		events:          cfg.Events,
	}
}

// Get returns the profile for username, fetching through the upstream
// on a miss or stale entry.
//
// Behavior:
//   - fresh entry (age < TTL): returned directly, no fetch
//   - miss or stale: one fetch per username at a time; concurrent
//     callers share the result
//   - fetch failure: logged, reported to the event sink, and nil is
//     returned; the failure is never cached, so the next Get retries
//
// A nil return always means "skip this candidate". Callers never see
// the underlying error; observability goes through logs and events.
func (c *Cache) Get(ctx context.Context, username string) *genome.Profile {
	if username == "" {
		return nil
	}

	if p, ok := c.lookup(username); ok {
		c.hits.Add(1)
		metrics.RecordCacheHit(cacheType)
		return p
	}
	c.misses.Add(1)
	metrics.RecordCacheMiss(cacheType)

	if c.fetch == nil {
		return nil
	}

	v, err, _ := c.flight.Do(username, func() (interface{}, error) {
		// A sibling flight may have stored the entry between our miss
		// and this call.
		if p, ok := c.lookup(username); ok {
			return p, nil
		}
		p, err := c.fetch(ctx, username)
		if err != nil {
			return nil, err
		}
		c.Set(username, p)
		return p, nil
	})
	if err != nil {
		logging.Warn().Err(err).Str("username", username).Msg("genome fetch failed")
		if c.events != nil {
			c.events.GenomeFetchFailed(ctx, username, err)
		}
		return nil
	}
	if v == nil {
		return nil
	}
	return v.(*genome.Profile)
}

// lookup returns a fresh entry, dropping a stale one on the way out.
// It does not touch the hit/miss counters; Get owns those.
func (c *Cache) lookup(username string) (*genome.Profile, bool) {
	c.mu.RLock()
	e, ok := c.entries[username]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if c.now().Sub(e.fetchedAt) < c.ttl {
		return e.profile, true
	}

	// Stale. Re-check under the write lock so a refresh that landed
	// after our read is not thrown away.
	c.mu.Lock()
	cur, ok := c.entries[username]
	if ok && cur.fetchedAt.Equal(e.fetchedAt) {
		delete(c.entries, username)
		c.evictions.Add(1)
		metrics.RecordCacheEviction(cacheType, 1)
	}
	size := len(c.entries)
	c.mu.Unlock()
	metrics.SetCacheEntries(cacheType, size)
	return nil, false
}

// Cached reports whether a fresh entry for username is currently held.
// It is a read-only peek: no fetch, no hit/miss accounting, no stale
// eviction.
func (c *Cache) Cached(username string) bool {
	c.mu.RLock()
	e, ok := c.entries[username]
	c.mu.RUnlock()
	return ok && c.now().Sub(e.fetchedAt) < c.ttl
}

// Set stores a profile stamped with the current clock time,
// overwriting any existing entry. Nil profiles are ignored: failures
// are never cached.
func (c *Cache) Set(username string, p *genome.Profile) {
	if username == "" || p == nil {
		return
	}
	c.mu.Lock()
	c.entries[username] = entry{profile: p, fetchedAt: c.now()}
	size := len(c.entries)
	c.mu.Unlock()
	metrics.SetCacheEntries(cacheType, size)
}

// Delete removes a single entry. Safe to call for absent usernames.
func (c *Cache) Delete(username string) {
	c.mu.Lock()
	_, existed := c.entries[username]
	delete(c.entries, username)
	size := len(c.entries)
	c.mu.Unlock()

	if existed {
		c.evictions.Add(1)
		metrics.RecordCacheEviction(cacheType, 1)
	}
	metrics.SetCacheEntries(cacheType, size)
}

// Clear drops every entry in one map swap and reports how many were
// removed. Counted entries land in the eviction total so Stats stays
// consistent.
func (c *Cache) Clear() int {
	c.mu.Lock()
	evicted := len(c.entries)
	c.entries = make(map[string]entry)
	c.mu.Unlock()

	if evicted > 0 {
		c.evictions.Add(int64(evicted))
		metrics.RecordCacheEviction(cacheType, evicted)
	}
	metrics.SetCacheEntries(cacheType, 0)
	return evicted
}

// Stats returns a snapshot of the cache counters. The struct is a
// copy; reading it requires no locks.
func (c *Cache) Stats() Stats {
	c.mu.RLock()
	size := len(c.entries)
	lastCleanup := c.lastCleanup
	c.mu.RUnlock()

	hits := c.hits.Load()
	misses := c.misses.Load()

	return Stats{
		Hits:        hits,
		Misses:      misses,
		Evictions:   c.evictions.Load(),
		Entries:     size,
		HitRate:     hitRate(hits, misses),
		TTLSeconds:  c.ttl.Seconds(),
		LastCleanup: lastCleanup,
	}
}

// HitRate returns the hit percentage over all lookups, 0 when the
// cache has never been read.
func (c *Cache) HitRate() float64 {
	return hitRate(c.hits.Load(), c.misses.Load())
}

func hitRate(hits, misses int64) float64 {
	total := hits + misses
	if total == 0 {
		return 0.0
	}
	return float64(hits) / float64(total) * 100.0
}

// Serve runs the periodic eviction loop until ctx is canceled. It
// implements the supervisor service contract, so a panic in eviction
// restarts the loop instead of killing the process.
func (c *Cache) Serve(ctx context.Context) error {
	ticker := time.NewTicker(c.cleanupInterval)
	defer ticker.Stop()

	logging.Debug().
		Dur("interval", c.cleanupInterval).
		Dur("ttl", c.ttl).
		Msg("genome cache cleanup loop started")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if evicted := c.evictExpired(); evicted > 0 {
				logging.Debug().Int("evicted", evicted).Msg("genome cache cleanup pass")
			}
		}
	}
}

// String names the service in supervisor logs.
func (c *Cache) String() string {
	return "genome-cache-cleanup"
}

// evictExpired removes every stale entry and returns how many went.
func (c *Cache) evictExpired() int {
	now := c.now()

	c.mu.Lock()
	evicted := 0
	for username, e := range c.entries {
		if now.Sub(e.fetchedAt) >= c.ttl {
			delete(c.entries, username)
			evicted++
		}
	}
	size := len(c.entries)
	c.lastCleanup = now
	c.mu.Unlock()

	if evicted > 0 {
		c.evictions.Add(int64(evicted))
		metrics.RecordCacheEviction(cacheType, evicted)
	}
	metrics.SetCacheEntries(cacheType, size)
	return evicted
}
