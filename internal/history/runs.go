// Cognatus - Talent Discovery Analytics and Profile Similarity Engine
// Copyright 2026 Dana R. (danarhys)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/danarhys/cognatus

package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/goccy/go-json"

	"github.com/danarhys/cognatus/internal/logging"
	"github.com/danarhys/cognatus/internal/metrics"
)

// Run is one stored discovery pipeline run. ID is the pipeline's run
// ID, the same value stamped on the run's published events, so a row
// here joins against the event stream and logs. Results holds a
// compact summary of the kept candidates, not full profiles.
type Run struct {
	ID              string          `json:"id"`
	TargetUsername  string          `json:"target_username"`
	Success         bool            `json:"success"`
	Error           string          `json:"error,omitempty"`
	QueriesUsed     int             `json:"queries_used"`
	TotalCandidates int             `json:"total_candidates"`
	ResultCount     int             `json:"result_count"`
	RequestedLimit  int             `json:"requested_limit"`
	MinScore        float64         `json:"min_score"`
	Results         json.RawMessage `json:"results,omitempty"`
	DurationMS      int64           `json:"duration_ms"`
	CreatedAt       time.Time       `json:"created_at"`
}

// RunResult is one entry of a Run's Results summary.
type RunResult struct {
	Username     string  `json:"username"`
	OverallScore float64 `json:"overall_score"`
}

// RecordRun persists one pipeline run row. A zero CreatedAt is
// stamped with the current UTC time.
func (s *Store) RecordRun(ctx context.Context, r *Run) error {
	if r == nil {
		return fmt.Errorf("run cannot be nil")
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}

	query, args, err := sq.Insert("runs").
		Columns("id", "target_username", "success", "error",
			"queries_used", "total_candidates", "result_count", "requested_limit", "min_score",
			"results", "duration_ms", "created_at").
		Values(r.ID, r.TargetUsername, r.Success, nullableString(r.Error),
			r.QueriesUsed, r.TotalCandidates, r.ResultCount, r.RequestedLimit, r.MinScore,
			rawJSONParam(r.Results), r.DurationMS, r.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build run insert: %w", err)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	start := time.Now()
	_, err = s.conn.ExecContext(ctx, query, args...)
	metrics.RecordDBQuery("insert", "runs", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	return nil
}

// Runs returns stored pipeline run rows matching the filter, newest
// first. Filter.Username matches the run's target.
func (s *Store) Runs(ctx context.Context, f Filter) ([]Run, error) {
	qb := sq.Select("id", "target_username", "success", "error",
		"queries_used", "total_candidates", "result_count", "requested_limit", "min_score",
		"CAST(results AS VARCHAR)", "duration_ms", "created_at").
		From("runs")

	if f.Username != "" {
		qb = qb.Where(sq.Eq{"target_username": f.Username})
	}
	if f.Since != nil {
		qb = qb.Where(sq.GtOrEq{"created_at": *f.Since})
	}

	query, args, err := qb.OrderBy("created_at DESC").Limit(f.clampedLimit()).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build run query: %w", err)
	}

	start := time.Now()
	rows, err := s.conn.QueryContext(ctx, query, args...)
	metrics.RecordDBQuery("select", "runs", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		var errText, results sql.NullString
		if err := rows.Scan(&r.ID, &r.TargetUsername, &r.Success, &errText,
			&r.QueriesUsed, &r.TotalCandidates, &r.ResultCount, &r.RequestedLimit, &r.MinScore,
			&results, &r.DurationMS, &r.CreatedAt); err != nil {
			logging.Warn().Err(err).Msg("Failed to scan run row")
			continue
		}
		if errText.Valid {
			r.Error = errText.String
		}
		if results.Valid && results.String != "" {
			r.Results = json.RawMessage(results.String)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}
	return out, nil
}

// nullableString maps "" to NULL so empty errors do not clutter rows.
func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
