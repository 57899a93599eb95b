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

// Comparison kinds. Similarity and complementarity comparisons share
// one table; Kind tells them apart.
const (
	KindSimilarity      = "similarity"
	KindComplementarity = "complementarity"
)

// Query limits applied when the caller's filter leaves them unset.
const (
	DefaultQueryLimit = 100
	MaxQueryLimit     = 500
)

// Comparison is one stored pairwise comparison. Result carries the
// full engine output as JSON; the scalar columns exist so history can
// be filtered and aggregated without unpacking documents.
type Comparison struct {
	ID              string          `json:"id"`
	Kind            string          `json:"kind"`
	UsernameA       string          `json:"username_a"`
	UsernameB       string          `json:"username_b"`
	OverallScore    float64         `json:"overall_score"`
	SkillsScore     float64         `json:"skills_score"`
	StrengthsScore  float64         `json:"strengths_score"`
	ExperienceScore float64         `json:"experience_score"`
	EducationScore  float64         `json:"education_score"`
	CommonSkills    int             `json:"common_skills"`
	Result          json.RawMessage `json:"result,omitempty"`
	DurationMS      int64           `json:"duration_ms"`
	CreatedAt       time.Time       `json:"created_at"`
}

// Filter narrows history queries. Username matches either side of a
// comparison (and the target of a run); Since bounds the window to
// rows created at or after the instant; Limit caps the result count.
type Filter struct {
	Username string
	Since    *time.Time
	Limit    int
}

// clampedLimit applies the default and maximum query limits.
func (f Filter) clampedLimit() uint64 {
	limit := f.Limit
	if limit <= 0 {
		limit = DefaultQueryLimit
	}
	if limit > MaxQueryLimit {
		limit = MaxQueryLimit
	}
	return uint64(limit)
}

// RecordComparison persists one comparison row. A zero CreatedAt is
// stamped with the current UTC time.
func (s *Store) RecordComparison(ctx context.Context, c *Comparison) error {
	if c == nil {
		return fmt.Errorf("comparison cannot be nil")
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}

	query, args, err := sq.Insert("comparisons").
		Columns("id", "kind", "username_a", "username_b",
			"overall_score", "skills_score", "strengths_score", "experience_score", "education_score",
			"common_skills", "result", "duration_ms", "created_at").
		Values(c.ID, c.Kind, c.UsernameA, c.UsernameB,
			c.OverallScore, c.SkillsScore, c.StrengthsScore, c.ExperienceScore, c.EducationScore,
			c.CommonSkills, rawJSONParam(c.Result), c.DurationMS, c.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build comparison insert: %w", err)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	start := time.Now()
	_, err = s.conn.ExecContext(ctx, query, args...)
	metrics.RecordDBQuery("insert", "comparisons", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to record comparison: %w", err)
	}
	return nil
}

// Comparisons returns stored comparison rows matching the filter,
// newest first.
func (s *Store) Comparisons(ctx context.Context, f Filter) ([]Comparison, error) {
	qb := sq.Select("id", "kind", "username_a", "username_b",
		"overall_score", "skills_score", "strengths_score", "experience_score", "education_score",
		"common_skills", "CAST(result AS VARCHAR)", "duration_ms", "created_at").
		From("comparisons")

	if f.Username != "" {
		qb = qb.Where(sq.Or{
			sq.Eq{"username_a": f.Username},
			sq.Eq{"username_b": f.Username},
		})
	}
	if f.Since != nil {
		qb = qb.Where(sq.GtOrEq{"created_at": *f.Since})
	}

	query, args, err := qb.OrderBy("created_at DESC").Limit(f.clampedLimit()).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build comparison query: %w", err)
	}

	start := time.Now()
	rows, err := s.conn.QueryContext(ctx, query, args...)
	metrics.RecordDBQuery("select", "comparisons", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to query comparisons: %w", err)
	}
	defer rows.Close()

	var out []Comparison
	for rows.Next() {
		var c Comparison
		var result sql.NullString
		if err := rows.Scan(&c.ID, &c.Kind, &c.UsernameA, &c.UsernameB,
			&c.OverallScore, &c.SkillsScore, &c.StrengthsScore, &c.ExperienceScore, &c.EducationScore,
			&c.CommonSkills, &result, &c.DurationMS, &c.CreatedAt); err != nil {
			logging.Warn().Err(err).Msg("Failed to scan comparison row")
			continue
		}
		if result.Valid && result.String != "" {
			c.Result = json.RawMessage(result.String)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comparisons: %w", err)
	}
	return out, nil
}

// rawJSONParam converts a raw JSON document to a driver-friendly
// parameter: nil stays NULL, anything else becomes its string form.
func rawJSONParam(raw json.RawMessage) interface{} {
	if len(raw) == 0 {
		return nil
	}
	return string(raw)
}
