// Cognatus - Talent Discovery Analytics and Profile Similarity Engine
// Copyright 2026 Dana R. (danarhys)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/danarhys/cognatus

// Package similarity scores pairs and groups of talent profiles.
//
// Scoring Architecture:
//
//	genome.Profile pair -> Compare          -> Result (0..1 + breakdown)
//	                    -> Complementarity  -> ComplementarityResult
//	genome.Profile set  -> AnalyzeTeam      -> TeamResult
//
// Compare blends four weighted components: skill overlap (0.4),
// strength overlap (0.3), an experience proxy built from profile
// completion and weight (0.2), and a neutral education placeholder
// (0.1). Overlap uses the Dice coefficient over normalized skill
// codes, so "Machine Learning" and "machine learning" count as the
// same skill on both sides.
//
// Complementarity inverts the question: it rewards high-proficiency
// skills only one side holds and shared skills with a large
// proficiency spread, making it useful for pairing mentors with
// mentees or staffing a gap.
//
// AnalyzeTeam buckets every skill across a roster into unique
// (exactly one holder), well covered (at least half the team), or
// poorly covered, and flags single points of knowledge.
//
// All entry points share a no-panic boundary: faults surface as an
// error-annotated zero result, never as a panic or a Go error. Scores
// are always inside [0,1] and deterministic for identical inputs.
package similarity
