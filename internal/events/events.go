// Cognatus - Talent Discovery Analytics and Profile Similarity Engine
// Copyright 2026 Dana R. (danarhys)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/danarhys/cognatus

package events

import (
	"time"

	"github.com/google/uuid"
)

// Topics carried on the bus. Dotted hierarchy so subscribers and the
// websocket bridge can present them verbatim.
const (
	TopicQueryFailed         = "discovery.query.failed"
	TopicCandidateSkipped    = "discovery.candidate.skipped"
	TopicGenomeFetchFailed   = "genome.fetch.failed"
	TopicRunCompleted        = "discovery.run.completed"
	TopicComparisonCompleted = "comparison.completed"
)

// Topics lists every topic the system publishes, in broadcast order
// for subscribers that want all of them.
var Topics = []string{
	TopicQueryFailed,
	TopicCandidateSkipped,
	TopicGenomeFetchFailed,
	TopicRunCompleted,
	TopicComparisonCompleted,
}

// Skip reasons attached to CandidateSkipped events.
const (
	SkipReasonGenomeUnavailable = "genome_unavailable"
	SkipReasonPrefiltered       = "prefiltered"
	SkipReasonBelowMinScore     = "below_min_score"
)

// Event is anything the bus can carry. Topic routes it, Validate
// gates publication.
type Event interface {
	Topic() string
	Validate() error
}

// ValidationError reports a missing or malformed event field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// QueryFailed reports one search query that returned an error during
// a discovery run. The run itself continues.
type QueryFailed struct {
	EventID   string    `json:"event_id"`
	Timestamp time.Time `json:"timestamp"`
	RunID     string    `json:"run_id,omitempty"`
	Query     string    `json:"query"`
	Error     string    `json:"error"`
}

// NewQueryFailed stamps a QueryFailed with an ID and UTC timestamp.
func NewQueryFailed(runID, query string, err error) *QueryFailed {
	return &QueryFailed{
		EventID:   uuid.New().String(),
		Timestamp: time.Now().UTC(),
		RunID:     runID,
		Query:     query,
		Error:     errString(err),
	}
}

func (e *QueryFailed) Topic() string { return TopicQueryFailed }

func (e *QueryFailed) Validate() error {
	if e.EventID == "" {
		return &ValidationError{Field: "event_id", Message: "required"}
	}
	if e.Query == "" {
		return &ValidationError{Field: "query", Message: "required"}
	}
	return nil
}

// CandidateSkipped reports a candidate dropped before full scoring.
type CandidateSkipped struct {
	EventID   string    `json:"event_id"`
	Timestamp time.Time `json:"timestamp"`
	RunID     string    `json:"run_id,omitempty"`
	Username  string    `json:"username"`
	Reason    string    `json:"reason"`
}

// NewCandidateSkipped stamps a CandidateSkipped with an ID and UTC
// timestamp. Reason should be one of the SkipReason constants.
func NewCandidateSkipped(runID, username, reason string) *CandidateSkipped {
	return &CandidateSkipped{
		EventID:   uuid.New().String(),
		Timestamp: time.Now().UTC(),
		RunID:     runID,
		Username:  username,
		Reason:    reason,
	}
}

func (e *CandidateSkipped) Topic() string { return TopicCandidateSkipped }

func (e *CandidateSkipped) Validate() error {
	if e.EventID == "" {
		return &ValidationError{Field: "event_id", Message: "required"}
	}
	if e.Username == "" {
		return &ValidationError{Field: "username", Message: "required"}
	}
	if e.Reason == "" {
		return &ValidationError{Field: "reason", Message: "required"}
	}
	return nil
}

// GenomeFetchFailed reports an upstream genome fetch that errored.
// The cache emits one per failed fetch; failures are never cached, so
// repeated misses repeat the event.
type GenomeFetchFailed struct {
	EventID   string    `json:"event_id"`
	Timestamp time.Time `json:"timestamp"`
	Username  string    `json:"username"`
	Error     string    `json:"error"`
}

// NewGenomeFetchFailed stamps a GenomeFetchFailed with an ID and UTC
// timestamp.
func NewGenomeFetchFailed(username string, err error) *GenomeFetchFailed {
	return &GenomeFetchFailed{
		EventID:   uuid.New().String(),
		Timestamp: time.Now().UTC(),
		Username:  username,
		Error:     errString(err),
	}
}

func (e *GenomeFetchFailed) Topic() string { return TopicGenomeFetchFailed }

func (e *GenomeFetchFailed) Validate() error {
	if e.EventID == "" {
		return &ValidationError{Field: "event_id", Message: "required"}
	}
	if e.Username == "" {
		return &ValidationError{Field: "username", Message: "required"}
	}
	return nil
}

// RunCompleted summarizes a finished discovery run, successful or not.
type RunCompleted struct {
	EventID             string    `json:"event_id"`
	Timestamp           time.Time `json:"timestamp"`
	RunID               string    `json:"run_id"`
	TargetUsername      string    `json:"target_username"`
	QueriesUsed         int       `json:"queries_used"`
	CandidatesEvaluated int       `json:"candidates_evaluated"`
	ResultCount         int       `json:"result_count"`
	DurationMS          int64     `json:"duration_ms"`
	Success             bool      `json:"success"`
	Error               string    `json:"error,omitempty"`
}

// NewRunCompleted stamps a RunCompleted with an ID and UTC timestamp.
func NewRunCompleted(runID, target string) *RunCompleted {
	return &RunCompleted{
		EventID:        uuid.New().String(),
		Timestamp:      time.Now().UTC(),
		RunID:          runID,
		TargetUsername: target,
	}
}

func (e *RunCompleted) Topic() string { return TopicRunCompleted }

func (e *RunCompleted) Validate() error {
	if e.EventID == "" {
		return &ValidationError{Field: "event_id", Message: "required"}
	}
	if e.RunID == "" {
		return &ValidationError{Field: "run_id", Message: "required"}
	}
	if e.TargetUsername == "" {
		return &ValidationError{Field: "target_username", Message: "required"}
	}
	return nil
}

// ComparisonCompleted reports a pairwise comparison served by the API.
type ComparisonCompleted struct {
	EventID      string    `json:"event_id"`
	Timestamp    time.Time `json:"timestamp"`
	UsernameA    string    `json:"username_a"`
	UsernameB    string    `json:"username_b"`
	OverallScore float64   `json:"overall_score"`
	DurationMS   int64     `json:"duration_ms"`
}

// NewComparisonCompleted stamps a ComparisonCompleted with an ID and
// UTC timestamp.
func NewComparisonCompleted(usernameA, usernameB string, overall float64, duration time.Duration) *ComparisonCompleted {
	return &ComparisonCompleted{
		EventID:      uuid.New().String(),
		Timestamp:    time.Now().UTC(),
		UsernameA:    usernameA,
		UsernameB:    usernameB,
		OverallScore: overall,
		DurationMS:   duration.Milliseconds(),
	}
}

func (e *ComparisonCompleted) Topic() string { return TopicComparisonCompleted }

func (e *ComparisonCompleted) Validate() error {
	if e.EventID == "" {
		return &ValidationError{Field: "event_id", Message: "required"}
	}
	if e.UsernameA == "" {
		return &ValidationError{Field: "username_a", Message: "required"}
	}
	if e.UsernameB == "" {
		return &ValidationError{Field: "username_b", Message: "required"}
	}
	return nil
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
