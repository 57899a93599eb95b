// Cognatus - Talent Discovery Analytics and Profile Similarity Engine
// Copyright 2026 Dana R. (danarhys)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/danarhys/cognatus

package genome

import (
	"regexp"
	"strings"
)

// Kind classifies where a normalized skill came from on the profile.
type Kind string

const (
	KindSkill    Kind = "skill"
	KindInterest Kind = "interest"
	KindStrength Kind = "strength"
)

// Skill is the normalized, derived representation the engines work on.
// It is never persisted; extraction rebuilds it from the raw profile on
// every use.
//
// Code is the cross-profile deduplication key: two entries with the
// same display name on different profiles must normalize to the same
// code, or overlap scoring falls apart.
type Skill struct {
	Name        string  `json:"name"`
	Code        string  `json:"code"`
	Proficiency float64 `json:"proficiency"`
	Kind        Kind    `json:"kind"`
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// DeriveCode produces the deduplication slug for a display name:
// lowercased, surrounding whitespace dropped, interior whitespace runs
// collapsed to a single hyphen. Deterministic for any input.
//
//	DeriveCode("Machine Learning") == "machine-learning"
//	DeriveCode("  Go  ")           == "go"
func DeriveCode(name string) string {
	trimmed := strings.TrimSpace(strings.ToLower(name))
	return whitespaceRun.ReplaceAllString(trimmed, "-")
}

// codeFor returns the item's explicit code when set and non-empty,
// otherwise the slug derived from its name.
func codeFor(item SkillItem) string {
	if item.Code != nil && *item.Code != "" {
		return *item.Code
	}
	return DeriveCode(item.Name)
}
