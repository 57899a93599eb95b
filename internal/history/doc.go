// Cognatus - Talent Discovery Analytics and Profile Similarity Engine
// Copyright 2026 Dana R. (danarhys)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/danarhys/cognatus

// Package history persists comparison and discovery-run outcomes to an
// embedded DuckDB database.
//
// The store keeps two tables:
//
//   - comparisons: one row per pairwise similarity or complementarity
//     comparison served by the API, with the component scores and the
//     full result document as JSON.
//   - runs: one row per discovery pipeline run, keyed by the run ID the
//     pipeline stamped on its events, so rows correlate with the event
//     stream and logs.
//
// # Usage
//
//	store, err := history.New(cfg.History)
//	if err != nil { ... }
//	defer store.Close()
//
//	_ = store.RecordComparison(ctx, &history.Comparison{...})
//	rows, _ := store.Comparisons(ctx, history.Filter{Username: "alice", Limit: 50})
//
// # Retention
//
// Store.Serve runs the retention loop: rows older than the configured
// retention window are deleted once per cleanup interval. Run it under
// the supervisor so cleanup restarts with the process:
//
//	tree.AddStorageService(store)
//
// A retention of zero days disables cleanup; the loop then only blocks
// until the context ends.
//
// # Concurrency
//
// All methods are safe for concurrent use. Writes serialize on a
// mutex because DuckDB resolves concurrent-writer conflicts by
// aborting one side; reads share the connection pool.
package history
