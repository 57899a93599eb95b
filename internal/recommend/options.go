// Cognatus - Talent Discovery Analytics and Profile Similarity Engine
// Copyright 2026 Dana R. (danarhys)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/danarhys/cognatus

package recommend

import (
	"github.com/danarhys/cognatus/internal/genome"
	"github.com/danarhys/cognatus/internal/similarity"
)

// Default tuning for a discovery run. Zero option values select these.
const (
	DefaultLimit    = 10
	DefaultMinScore = 0.3
	MaxLimit        = 50
)

// Options tune one discovery run. All fields are optional; zero values
// select the defaults above. MinSimilarityScore is the floor a
// candidate's overall score must reach to be kept.
type Options struct {
	Limit              int
	MinSimilarityScore float64
	ExtraSearchQueries []string
	ExcludeUsernames   []string
}

// normalized returns a copy with defaults applied and the limit
// clamped to [1, maxLimit].
func (o Options) normalized(maxLimit int) Options {
	if maxLimit <= 0 {
		maxLimit = MaxLimit
	}
	if o.Limit <= 0 {
		o.Limit = DefaultLimit
	}
	if o.Limit > maxLimit {
		o.Limit = maxLimit
	}
	if o.MinSimilarityScore <= 0 {
		o.MinSimilarityScore = DefaultMinScore
	}
	if o.MinSimilarityScore > 1 {
		o.MinSimilarityScore = 1
	}
	return o
}

// Recommendation is one kept candidate: the full profile, the
// similarity breakdown against the target, and display-ready
// justification strings. Immutable once produced; ranked by
// OverallScore descending with ties broken by discovery order.
type Recommendation struct {
	Candidate      *genome.Profile   `json:"candidate"`
	Similarity     similarity.Result `json:"similarity"`
	Justifications []string          `json:"justifications"`
}

// Outcome is the full report of one discovery run. Success is false
// only for top-level faults (bad target, cancellation, panic); an
// empty Data slice with Success true means the search simply found
// nothing above the bar. RunID matches the run_id on every event the
// run published, so stored outcomes correlate with the event stream.
type Outcome struct {
	RunID             string           `json:"run_id"`
	Success           bool             `json:"success"`
	Error             string           `json:"error,omitempty"`
	Data              []Recommendation `json:"data"`
	TargetUsername    string           `json:"target_username"`
	TotalCandidates   int              `json:"total_candidates"`
	SearchQueriesUsed int              `json:"search_queries_used"`
}
