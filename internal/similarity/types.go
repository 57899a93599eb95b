// Cognatus - Talent Discovery Analytics and Profile Similarity Engine
// Copyright 2026 Dana R. (danarhys)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/danarhys/cognatus

package similarity

// Result holds the outcome of a pairwise profile comparison. All
// component scores are in [0,1]. A failed comparison is a zero-valued
// Result with Details.Error set; Compare never panics past its
// boundary.
type Result struct {
	OverallScore    float64 `json:"overall_score"`
	SkillsScore     float64 `json:"skills_score"`
	StrengthsScore  float64 `json:"strengths_score"`
	ExperienceScore float64 `json:"experience_score"`
	EducationScore  float64 `json:"education_score"`
	Details         Details `json:"details"`
}

// Details carries the per-skill breakdown behind a Result.
type Details struct {
	CommonSkills    []CommonSkill `json:"common_skills"`
	UniqueSkillsA   []UniqueSkill `json:"unique_skills_a"`
	UniqueSkillsB   []UniqueSkill `json:"unique_skills_b"`
	SkillGaps       []SkillGap    `json:"skill_gaps"`
	Recommendations []string      `json:"recommendations"`
	Error           string        `json:"error,omitempty"`
}

// CommonSkill is a skill both profiles hold, annotated with each
// side's proficiency and the absolute difference between them.
type CommonSkill struct {
	Code         string  `json:"code"`
	Name         string  `json:"name"`
	ProficiencyA float64 `json:"proficiency_a"`
	ProficiencyB float64 `json:"proficiency_b"`
	Difference   float64 `json:"difference"`
}

// UniqueSkill is a skill held by only one side of a comparison.
type UniqueSkill struct {
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	Proficiency float64 `json:"proficiency"`
}

// SkillGap is a high-proficiency unique skill, tagged with the side
// that lacks it.
type SkillGap struct {
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	Proficiency float64 `json:"proficiency"`
	MissingFrom string  `json:"missing_from"`
}

// ComplementarityResult describes how well two profiles fill each
// other's gaps rather than how much they overlap.
type ComplementarityResult struct {
	Score      float64               `json:"score"`
	Pairs      []ComplementarityPair `json:"pairs"`
	TotalPairs int                   `json:"total_pairs"`
	Error      string                `json:"error,omitempty"`
}

// Pair kinds.
const (
	PairUnique    = "unique"    // skill held by one side only
	PairImbalance = "imbalance" // shared skill with a large proficiency spread
)

// ComplementarityPair is a single complementary signal between two
// profiles. Holder names the side contributing the skill (for unique
// pairs) or the stronger side (for imbalance pairs).
type ComplementarityPair struct {
	Code   string  `json:"code"`
	Name   string  `json:"name"`
	Kind   string  `json:"kind"`
	Holder string  `json:"holder"`
	Score  float64 `json:"score"`
}

// TeamResult summarizes skill coverage across a set of profiles.
type TeamResult struct {
	TeamSize           int               `json:"team_size"`
	TotalSkills        int               `json:"total_skills"`
	AvgSkillsPerPerson float64           `json:"avg_skills_per_person"`
	UniqueSkills       []UniqueTeamSkill `json:"unique_skills"`
	WellCovered        []string          `json:"well_covered"`
	PoorlyCovered      []string          `json:"poorly_covered"`
	Recommendations    []string          `json:"recommendations"`
	Error              string            `json:"error,omitempty"`
}

// UniqueTeamSkill is a skill held by exactly one team member. Losing
// the owner loses the skill.
type UniqueTeamSkill struct {
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	Owner       string  `json:"owner"`
	Proficiency float64 `json:"proficiency"`
}
