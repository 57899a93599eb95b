// Cognatus - Talent Discovery Analytics and Profile Similarity Engine
// Copyright 2026 Dana R. (danarhys)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/danarhys/cognatus

// Package recommend discovers people similar to a target profile.
//
// # Pipeline
//
// A discovery run moves through five stages:
//
//  1. Resolve: fetch the target's full genome through the cache,
//     falling back to the thin profile the caller already holds.
//  2. Query building: derive up to eight search queries from the
//     caller's extra queries, the headline, the strongest skills and
//     strengths, and role bundles keyed off the headline. Queries are
//     normalized to lowercase and deduplicated in insertion order.
//  3. Fan-out: run every query concurrently against the directory and
//     merge results deterministically in query order. A failed query
//     contributes nothing and never fails the run.
//  4. Scoring: walk the deduplicated candidates in sequential batches,
//     each batch scored concurrently. A cheap Jaccard screen over raw
//     skill names culls obvious mismatches before the full similarity
//     engine runs. Scoring stops early once enough candidates qualify.
//  5. Ranking: stable-sort survivors by overall score and truncate to
//     the requested limit.
//
// # Error Containment
//
// FindSimilar never returns an error. Top-level faults (missing
// target, cancellation, timeout, panic) produce an Outcome with
// Success=false, a populated Error, and empty Data. Per-query and
// per-candidate failures are logged, published to the event bus with
// a reason, and absorbed; one bad candidate cannot sink the run.
//
// # Tuning
//
// All knobs (query cap, per-query fetch size, batch size, early-exit
// count, prefilter margin, run timeout) come from
// config.RecommendConfig and default to the values production runs
// with.
//
// # Thread Safety
//
// The pipeline is safe for concurrent use. Each run keeps its state on
// the stack; collaborators are required to be concurrency-safe.
package recommend
