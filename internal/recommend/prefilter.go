// Cognatus - Talent Discovery Analytics and Profile Similarity Engine
// Copyright 2026 Dana R. (danarhys)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/danarhys/cognatus

package recommend

import (
	"github.com/danarhys/cognatus/internal/genome"
)

// skillNameSet collects the normalized codes of a profile's raw skill
// list. This is the cheap representation the Jaccard prefilter works
// on; interests and strengths are deliberately excluded.
func skillNameSet(profile *genome.Profile) map[string]bool {
	set := make(map[string]bool, len(profile.Skills))
	for _, item := range profile.Skills {
		if code := genome.DeriveCode(item.Name); code != "" {
			set[code] = true
		}
	}
	return set
}

// jaccard computes |intersection| / |union| over two skill-name sets.
// Returns 0 when both sets are empty.
func jaccard(a, b map[string]bool) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	intersection := 0
	for k := range a {
		if b[k] {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
