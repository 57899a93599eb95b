// Cognatus - Talent Discovery Analytics and Profile Similarity Engine
// Copyright 2026 Dana R. (danarhys)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/danarhys/cognatus

package models

import (
	"time"
)

// CompareRequest is the body for POST /api/v1/similarity/compare and
// POST /api/v1/similarity/complementarity. Both usernames are resolved
// through the genome cache before the engines run.
//
// Example:
//
//	{
//	  "username_a": "alice",
//	  "username_b": "bob"
//	}
type CompareRequest struct {
	UsernameA string `json:"username_a" validate:"required,min=1,max=100"`
	UsernameB string `json:"username_b" validate:"required,min=1,max=100"`
}

// TeamAnalyzeRequest is the body for POST /api/v1/team/analyze.
// The analyzer needs at least two members; the boundary rejects smaller
// teams before genome resolution starts.
//
// Example:
//
//	{
//	  "usernames": ["alice", "bob", "carol"]
//	}
type TeamAnalyzeRequest struct {
	Usernames []string `json:"usernames" validate:"required,min=2,max=50,dive,required,max=100"`
}

// SimilarRequest is the body for POST /api/v1/recommendations/similar.
// Optional fields fall back to pipeline defaults (limit 10, min score 0.3).
//
// Fields:
//   - Username: target profile to find matches for
//   - Limit: maximum recommendations returned (1..50)
//   - MinScore: minimum overall similarity to keep a candidate (0..1)
//   - ExtraQueries: caller-supplied search queries merged ahead of derived ones
//   - ExcludeUsernames: candidates dropped before scoring
//
// Example:
//
//	{
//	  "username": "alice",
//	  "limit": 5,
//	  "min_score": 0.4,
//	  "extra_queries": ["golang backend"],
//	  "exclude_usernames": ["bob"]
//	}
type SimilarRequest struct {
	Username         string   `json:"username" validate:"required,min=1,max=100"`
	Limit            *int     `json:"limit,omitempty" validate:"omitempty,min=1,max=50"`
	MinScore         *float64 `json:"min_score,omitempty" validate:"omitempty,gte=0,lte=1"`
	ExtraQueries     []string `json:"extra_queries,omitempty" validate:"omitempty,max=8,dive,min=1,max=200"`
	ExcludeUsernames []string `json:"exclude_usernames,omitempty" validate:"omitempty,max=100,dive,min=1,max=100"`
}

// SearchQuery carries the validated query parameters of
// GET /api/v1/people/search.
type SearchQuery struct {
	Query string `json:"q" validate:"required,min=1,max=200"`
	Limit int    `json:"limit" validate:"min=1,max=50"`
}

// HistoryQuery carries the validated query parameters of the
// GET /api/v1/history/* endpoints. Since bounds the window to rows
// recorded at or after the given instant.
type HistoryQuery struct {
	Username string     `json:"username" validate:"omitempty,max=100"`
	Since    *time.Time `json:"since,omitempty"`
	Limit    int        `json:"limit" validate:"min=1,max=500"`
}
