// Cognatus - Talent Discovery Analytics and Profile Similarity Engine
// Copyright 2026 Dana R. (danarhys)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/danarhys/cognatus

/*
Package cache provides the read-through genome cache that sits between
the recommendation pipeline and the upstream talent directory.

Genome fetches are the most expensive call in the system: a discovery
run can evaluate dozens of candidates, and most of them reappear run
after run. The cache keeps fetched profiles for a short TTL so repeat
evaluations are free, while staying small enough that profile edits
show up within minutes.

# Overview

The cache provides:
  - Read-through fetching over an injected FetchFunc
  - TTL freshness (default 5 minutes) with an injected clock
  - Single-flight de-duplication of concurrent misses per username
  - Never-cache-failures semantics: errors are logged, reported to an
    event sink, and retried on the next read
  - A supervised background eviction loop (Serve)
  - Hit/miss/eviction statistics for the cache stats endpoint

# Read-Through Semantics

Get is the only read path the pipeline uses:

	fresh entry  -> returned, no upstream call
	miss/stale   -> one upstream fetch, shared by concurrent callers
	fetch error  -> nil returned, nothing cached, event emitted

A nil return always means "skip this candidate and move on". Callers
never branch on error values; failures are observable through logs,
the event bus, and the metrics counters instead.

# Freshness Model

An entry is fresh while its age is strictly under the TTL. Age is
measured with the cache's injected clock, so tests pin freshness
boundaries exactly instead of sleeping:

	clock := ... // func() time.Time under test control
	c := cache.New(cache.Config{TTL: 5 * time.Minute, Clock: clock, Fetch: fetch})

Stale entries found during a read are dropped immediately; everything
else is swept by the background loop.

# Single-Flight Deduplication

A discovery batch can ask for the same username from eight goroutines
at once. Misses collapse through golang.org/x/sync/singleflight: one
fetch runs, every waiter gets its result, and the counters record one
upstream call.

# Usage Example

	c := cache.New(cache.Config{
	    TTL:   cfg.Cache.TTL,
	    Fetch: client.FetchGenome,
	    Events: bridge, // optional fetch-failure sink
	})

	profile := c.Get(ctx, "octocat")
	if profile == nil {
	    return // candidate skipped
	}

# Supervised Cleanup

Serve runs the periodic eviction pass and blocks until its context is
canceled. It is registered with the supervision tree rather than
started in the constructor, so a panic in eviction restarts the loop
and shutdown is orderly:

	tree.Add(genomeCache) // *Cache implements Serve(ctx) error

# Statistics

Stats returns a snapshot for GET /api/v1/cache/stats:

	{
	    "hits": 412,
	    "misses": 80,
	    "evictions": 35,
	    "entries": 61,
	    "hit_rate": 83.74,
	    "ttl_seconds": 300,
	    "last_cleanup": "2026-08-24T12:04:00Z"
	}

The same counters feed the Prometheus cache metric family.

# Thread Safety

All methods are safe for concurrent use. Entries live behind a
sync.RWMutex; counters are atomics so the hot read path never takes
the write lock.

# See Also

  - internal/recommend: the primary consumer
  - internal/directory: the FetchFunc implementation
  - internal/supervisor: where Serve is registered
*/
package cache
