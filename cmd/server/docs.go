// Cognatus - Talent Discovery Analytics and Profile Similarity Engine
// Copyright 2026 Dana R. (danarhys)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/danarhys/cognatus

// Package main provides the Cognatus HTTP server
//
// Cognatus API provides profile similarity scoring, team analysis, and
// similar-profile discovery over skill genomes from a talent directory.
//
// @title Cognatus API
// @version 1.0
// @description Talent discovery analytics and profile similarity engine
// @description
// @description ## Features
// @description
// @description - **Profile Similarity**: Weighted multi-factor comparison of skill genomes (skills, strengths, experience, education)
// @description - **Complementarity Analysis**: Skills one profile could learn from another
// @description - **Team Analysis**: Aggregate skill coverage, redundancy, and unique contributors
// @description - **Similar-Profile Discovery**: Bounded search fan-out with concurrent batched scoring
// @description - **Comparison History**: DuckDB-backed history of comparisons and discovery runs
// @description - **Real-time Updates**: WebSocket streaming of discovery pipeline events
// @description
// @description ## Rate Limiting
// @description
// @description Default rate limit: 100 requests per minute per IP address.
// @description Stricter per-route limits apply to search (30/min) and discovery (10/min).
// @description Rate limit headers are included in responses: `X-RateLimit-Limit`, `X-RateLimit-Remaining`, `X-RateLimit-Reset`.
// @description
// @description ## Error Responses
// @description
// @description All error responses follow this format:
// @description ```json
// @description {
// @description   "status": "error",
// @description   "data": null,
// @description   "error": {
// @description     "code": "ERROR_CODE",
// @description     "message": "Human-readable error message",
// @description     "details": {}
// @description   },
// @description   "metadata": {
// @description     "timestamp": "2026-08-24T12:34:56Z"
// @description   }
// @description }
// @description ```
//
// @contact.name GitHub Repository
// @contact.url https://github.com/danarhys/cognatus/issues
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @host localhost:7887
// @BasePath /api/v1
// @schemes http https
//
// @tag.name Core
// @tag.description Health and readiness endpoints for liveness probes and dependency status
//
// @tag.name People
// @tag.description Talent directory search and skill genome retrieval
//
// @tag.name Similarity
// @tag.description Pairwise similarity, complementarity, and team skill analysis
//
// @tag.name Recommendations
// @tag.description Similar-profile discovery runs over the talent directory
//
// @tag.name History
// @tag.description Persisted comparison and discovery-run history queries
//
// @tag.name Cache
// @tag.description Genome cache statistics and administration
//
// @tag.name Realtime
// @tag.description Real-time WebSocket connections for discovery pipeline events
package main
