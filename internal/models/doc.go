// Cognatus - Talent Discovery Analytics and Profile Similarity Engine
// Copyright 2026 Dana R. (danarhys)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/danarhys/cognatus

/*
Package models defines the wire-level data structures shared across the
Cognatus HTTP API.

# Overview

This package contains three groups of types:

  - APIResponse and its companions (Metadata, APIError), the uniform
    envelope every JSON endpoint returns
  - Request DTOs (CompareRequest, TeamAnalyzeRequest, SimilarRequest,
    SearchQuery, HistoryQuery) carrying validator tags consumed by
    internal/validation
  - Health reporting types (HealthStatus, ReadinessStatus) returned by
    the health endpoints

Domain types describing people and their skill genomes live in
internal/genome; analysis results live in internal/similarity. Handlers
place those directly into APIResponse.Data, so this package stays free
of per-endpoint response duplicates.

# Response Envelope

Every endpoint responds with the same shape:

	{
	  "status": "success",
	  "data": { ... },
	  "metadata": {
	    "timestamp": "2026-03-01T12:00:00Z",
	    "query_time_ms": 42,
	    "cached": true
	  }
	}

Errors swap "success" for "error" and attach a machine-readable code:

	{
	  "status": "error",
	  "error": {
	    "code": "VALIDATION_ERROR",
	    "message": "username_a is required"
	  },
	  "metadata": {"timestamp": "2026-03-01T12:00:00Z"}
	}

# Request Validation

Request DTOs declare their constraints as struct tags:

	type CompareRequest struct {
		UsernameA string `json:"username_a" validate:"required,min=1,max=100"`
		UsernameB string `json:"username_b" validate:"required,min=1,max=100"`
	}

internal/validation evaluates the tags and converts failures into an
APIError with code VALIDATION_ERROR before any handler logic runs.

# Thread Safety

All types in this package are plain data carriers with no internal
synchronization. Construct them per request and do not share mutable
instances across goroutines.
*/
package models
