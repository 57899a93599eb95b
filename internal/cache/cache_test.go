// Cognatus - Talent Discovery Analytics and Profile Similarity Engine
// Copyright 2026 Dana R. (danarhys)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/danarhys/cognatus

package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/danarhys/cognatus/internal/genome"
)

// fakeClock is a hand-cranked clock so TTL tests never sleep.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

// countingFetcher is a FetchFunc that records call counts per run.
type countingFetcher struct {
	mu       sync.Mutex
	calls    int
	err      error
	delay    time.Duration
	profiles map[string]*genome.Profile
}

func (f *countingFetcher) fetch(ctx context.Context, username string) (*genome.Profile, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	if p, ok := f.profiles[username]; ok {
		return p, nil
	}
	return &genome.Profile{Username: username}, nil
}

func (f *countingFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// captureSink records fetch-failure events.
type captureSink struct {
	mu       sync.Mutex
	failures []string
}

func (s *captureSink) GenomeFetchFailed(_ context.Context, username string, _ error) {
	s.mu.Lock()
	s.failures = append(s.failures, username)
	s.mu.Unlock()
}

func (s *captureSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.failures)
}

func newTestCache(clock *fakeClock, fetcher *countingFetcher, sink EventSink) *Cache {
	cfg := Config{
		TTL:   5 * time.Minute,
		Clock: clock.Now,
	}
	if fetcher != nil {
		cfg.Fetch = fetcher.fetch
	}
	cfg.Events = sink
	return New(cfg)
}

func TestCacheGetFetchesOnMiss(t *testing.T) {
	fetcher := &countingFetcher{}
	c := newTestCache(newFakeClock(), fetcher, nil)

	p := c.Get(context.Background(), "octocat")
	if p == nil || p.Username != "octocat" {
		t.Fatalf("Get() = %+v, want fetched octocat profile", p)
	}
	if fetcher.callCount() != 1 {
		t.Errorf("fetch calls = %d, want 1", fetcher.callCount())
	}

	// Second read is served from the cache.
	if p2 := c.Get(context.Background(), "octocat"); p2 != p {
		t.Error("second Get() did not return the cached profile")
	}
	if fetcher.callCount() != 1 {
		t.Errorf("fetch calls after hit = %d, want still 1", fetcher.callCount())
	}
}

func TestCacheTTLBoundary(t *testing.T) {
	clock := newFakeClock()
	fetcher := &countingFetcher{}
	c := newTestCache(clock, fetcher, nil)

	c.Get(context.Background(), "octocat")
	if fetcher.callCount() != 1 {
		t.Fatalf("fetch calls = %d, want 1", fetcher.callCount())
	}

	// One second under the TTL: still fresh.
	clock.Advance(5*time.Minute - time.Second)
	c.Get(context.Background(), "octocat")
	if fetcher.callCount() != 1 {
		t.Errorf("fetch calls just under TTL = %d, want 1", fetcher.callCount())
	}

	// Exactly at the TTL: stale, refetched.
	clock.Advance(time.Second)
	c.Get(context.Background(), "octocat")
	if fetcher.callCount() != 2 {
		t.Errorf("fetch calls at TTL = %d, want 2", fetcher.callCount())
	}

	stats := c.Stats()
	if stats.Evictions == 0 {
		t.Error("stale read should count an eviction")
	}
}

func TestCacheFetchFailureNotCached(t *testing.T) {
	fetcher := &countingFetcher{err: errors.New("upstream down")}
	sink := &captureSink{}
	c := newTestCache(newFakeClock(), fetcher, sink)

	for i := 1; i <= 3; i++ {
		if p := c.Get(context.Background(), "octocat"); p != nil {
			t.Fatalf("Get() = %+v, want nil on fetch failure", p)
		}
		if fetcher.callCount() != i {
			t.Errorf("fetch calls = %d, want %d (failures never cached)", fetcher.callCount(), i)
		}
	}
	if sink.count() != 3 {
		t.Errorf("failure events = %d, want 3", sink.count())
	}
	if c.Stats().Entries != 0 {
		t.Errorf("Entries = %d, want 0 after failures", c.Stats().Entries)
	}
}

func TestCacheSingleFlight(t *testing.T) {
	fetcher := &countingFetcher{delay: 50 * time.Millisecond}
	c := newTestCache(newFakeClock(), fetcher, nil)

	const goroutines = 32
	var wg sync.WaitGroup
	results := make([]*genome.Profile, goroutines)
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = c.Get(context.Background(), "octocat")
		}(i)
	}
	wg.Wait()

	if fetcher.callCount() != 1 {
		t.Errorf("fetch calls = %d, want 1 (concurrent misses collapse)", fetcher.callCount())
	}
	for i, p := range results {
		if p == nil || p.Username != "octocat" {
			t.Errorf("goroutine %d got %+v", i, p)
		}
	}
}

func TestCacheSetAndDelete(t *testing.T) {
	fetcher := &countingFetcher{}
	c := newTestCache(newFakeClock(), fetcher, nil)

	c.Set("octocat", &genome.Profile{Username: "octocat", Name: "Octo"})
	p := c.Get(context.Background(), "octocat")
	if p == nil || p.Name != "Octo" {
		t.Fatalf("Get() after Set = %+v", p)
	}
	if fetcher.callCount() != 0 {
		t.Errorf("fetch calls = %d, want 0 after manual Set", fetcher.callCount())
	}

	c.Delete("octocat")
	c.Get(context.Background(), "octocat")
	if fetcher.callCount() != 1 {
		t.Errorf("fetch calls after Delete = %d, want 1", fetcher.callCount())
	}
}

func TestCacheSetIgnoresNil(t *testing.T) {
	c := newTestCache(newFakeClock(), nil, nil)
	c.Set("octocat", nil)
	c.Set("", &genome.Profile{Username: "x"})
	if entries := c.Stats().Entries; entries != 0 {
		t.Errorf("Entries = %d, want 0", entries)
	}
}

func TestCacheClear(t *testing.T) {
	c := newTestCache(newFakeClock(), nil, nil)
	for _, u := range []string{"a", "b", "c"} {
		c.Set(u, &genome.Profile{Username: u})
	}
	if entries := c.Stats().Entries; entries != 3 {
		t.Fatalf("Entries = %d, want 3", entries)
	}

	c.Clear()

	stats := c.Stats()
	if stats.Entries != 0 {
		t.Errorf("Entries after Clear = %d, want 0", stats.Entries)
	}
	if stats.Evictions != 3 {
		t.Errorf("Evictions = %d, want 3", stats.Evictions)
	}
}

func TestCacheStats(t *testing.T) {
	c := newTestCache(newFakeClock(), nil, nil)

	c.Set("octocat", &genome.Profile{Username: "octocat"})
	c.Get(context.Background(), "octocat") // hit
	c.Get(context.Background(), "ghost")   // miss
	c.Get(context.Background(), "octocat") // hit

	stats := c.Stats()
	if stats.Hits != 2 {
		t.Errorf("Hits = %d, want 2", stats.Hits)
	}
	if stats.Misses != 1 {
		t.Errorf("Misses = %d, want 1", stats.Misses)
	}
	if stats.TTLSeconds != 300 {
		t.Errorf("TTLSeconds = %v, want 300", stats.TTLSeconds)
	}

	hitRate := c.HitRate()
	expected := 100.0 * 2.0 / 3.0
	if hitRate < expected-0.01 || hitRate > expected+0.01 {
		t.Errorf("HitRate = %.2f%%, want about %.2f%%", hitRate, expected)
	}
}

func TestCacheGetEmptyUsername(t *testing.T) {
	fetcher := &countingFetcher{}
	c := newTestCache(newFakeClock(), fetcher, nil)

	if p := c.Get(context.Background(), ""); p != nil {
		t.Errorf("Get(\"\") = %+v, want nil", p)
	}
	if fetcher.callCount() != 0 {
		t.Errorf("fetch calls = %d, want 0 for empty username", fetcher.callCount())
	}
}

func TestCacheNilFetcher(t *testing.T) {
	c := newTestCache(newFakeClock(), nil, nil)
	if p := c.Get(context.Background(), "octocat"); p != nil {
		t.Errorf("Get() = %+v, want nil without a fetcher", p)
	}
}

func TestCacheEvictExpired(t *testing.T) {
	clock := newFakeClock()
	c := newTestCache(clock, nil, nil)

	c.Set("old", &genome.Profile{Username: "old"})
	clock.Advance(3 * time.Minute)
	c.Set("young", &genome.Profile{Username: "young"})
	clock.Advance(2 * time.Minute) // old is now 5m, young 2m

	if evicted := c.evictExpired(); evicted != 1 {
		t.Errorf("evictExpired() = %d, want 1", evicted)
	}

	stats := c.Stats()
	if stats.Entries != 1 {
		t.Errorf("Entries = %d, want 1", stats.Entries)
	}
	if stats.LastCleanup != clock.Now() {
		t.Errorf("LastCleanup = %v, want %v", stats.LastCleanup, clock.Now())
	}
}

func TestCacheServeStopsOnCancel(t *testing.T) {
	clock := newFakeClock()
	c := New(Config{
		TTL:             5 * time.Minute,
		CleanupInterval: 10 * time.Millisecond,
		Clock:           clock.Now,
	})

	c.Set("old", &genome.Profile{Username: "old"})
	clock.Advance(10 * time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Serve(ctx) }()

	// Give the loop a few ticks to evict the stale entry.
	deadline := time.After(2 * time.Second)
	for c.Stats().Entries != 0 {
		select {
		case <-deadline:
			t.Fatal("cleanup loop never evicted the stale entry")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Serve() did not return after cancel")
	}
}

func TestCacheConcurrentAccess(t *testing.T) {
	clock := newFakeClock()
	fetcher := &countingFetcher{}
	c := newTestCache(clock, fetcher, nil)

	var wg sync.WaitGroup
	usernames := []string{"a", "b", "c", "d", "e"}
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			u := usernames[i%len(usernames)]
			switch i % 4 {
			case 0:
				c.Get(context.Background(), u)
			case 1:
				c.Set(u, &genome.Profile{Username: u})
			case 2:
				c.Delete(u)
			case 3:
				c.Stats()
			}
		}(i)
	}
	wg.Wait()

	// No assertion beyond the race detector and internal consistency.
	stats := c.Stats()
	if stats.Entries < 0 {
		t.Errorf("negative entry count: %+v", stats)
	}
}
