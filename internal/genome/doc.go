// Cognatus - Talent Discovery Analytics and Profile Similarity Engine
// Copyright 2026 Dana R. (danarhys)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/danarhys/cognatus

/*
Package genome models professional-profile records and normalizes their
loosely structured skill data for the similarity engines.

# Data Model

Profile is the full record for one person as the upstream directory
delivers it: identity, narrative headline and summary, ordered skill /
strength / interest lists, experience and education entries, and a pair
of opaque quality scalars (completion, weight). Every field beyond the
username is optional. Candidate is the thin stub returned by directory
search; the pipeline upgrades candidates to full profiles one fetch at
a time.

# Normalization

The engines never score raw profiles. ExtractSkills and
ExtractStrengths flatten a profile into []Skill, where each entry has:

  - Name: the display name as found on the profile
  - Code: deduplication slug (explicit code, else derived from the name)
  - Proficiency: confidence in [0,1], resolved by a fallback chain
  - Kind: skill, interest, or strength

The proficiency chain prefers explicit ratings (weight, then
proficiency), then evidence counts, then falls back to list position:
earlier entries are assumed stronger. Interests resolve into a narrower
0.4..0.7 band since they are the weakest signal. An explicit rating
that is present but unparseable is pinned to exactly 0 so it cannot
masquerade as a confident positional estimate.

# Decode Tolerance

Directory payloads type weight and proficiency inconsistently: numbers,
numeric strings, or junk. SkillItem's decoder accepts all three, so a
single malformed entry never fails a whole profile decode.

# Determinism

Extraction and code derivation are pure: the same profile bytes always
yield the same normalized list in the same order. Nothing in this
package holds state or starts goroutines.
*/
package genome
