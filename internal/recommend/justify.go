// Cognatus - Talent Discovery Analytics and Profile Similarity Engine
// Copyright 2026 Dana R. (danarhys)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/danarhys/cognatus

package recommend

import (
	"fmt"
	"strings"

	"github.com/danarhys/cognatus/internal/similarity"
)

const maxJustificationSkills = 3

// buildJustifications renders display-ready reasons a candidate was
// kept, derived from their similarity breakdown and phrased toward the
// person who asked ("you" is the target). Order is fixed so output is
// deterministic; at least one string is always returned.
func buildJustifications(result similarity.Result) []string {
	justifications := []string{}

	if result.OverallScore > 0.8 {
		justifications = append(justifications,
			fmt.Sprintf("one of your closest matches at %.0f%% overall similarity", result.OverallScore*100))
	}

	common := result.Details.CommonSkills
	switch {
	case len(common) > 5 && result.SkillsScore > 0.6:
		justifications = append(justifications,
			fmt.Sprintf("strong alignment across %d shared skills", len(common)))
	case len(common) > 0:
		justifications = append(justifications,
			fmt.Sprintf("shares %s with you", joinSkillNames(commonNames(common))))
	}

	if len(result.Details.UniqueSkillsA) > 0 && len(result.Details.UniqueSkillsB) > 0 {
		justifications = append(justifications,
			fmt.Sprintf("brings complementary skills such as %s", joinSkillNames(uniqueNames(result.Details.UniqueSkillsB))))
	}

	if result.ExperienceScore < 0.4 {
		justifications = append(justifications,
			"sits at a different career stage, which can make for a useful mentorship pairing")
	}

	if len(justifications) == 0 {
		justifications = append(justifications,
			fmt.Sprintf("clears your similarity bar at %.0f%% overall", result.OverallScore*100))
	}
	return justifications
}

func commonNames(skills []similarity.CommonSkill) []string {
	names := make([]string, 0, len(skills))
	for _, s := range skills {
		names = append(names, s.Name)
	}
	return names
}

func uniqueNames(skills []similarity.UniqueSkill) []string {
	names := make([]string, 0, len(skills))
	for _, s := range skills {
		names = append(names, s.Name)
	}
	return names
}

func joinSkillNames(names []string) string {
	if len(names) > maxJustificationSkills {
		names = names[:maxJustificationSkills]
	}
	return strings.Join(names, ", ")
}
