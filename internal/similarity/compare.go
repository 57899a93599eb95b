// Cognatus - Talent Discovery Analytics and Profile Similarity Engine
// Copyright 2026 Dana R. (danarhys)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/danarhys/cognatus

package similarity

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/danarhys/cognatus/internal/genome"
	"github.com/danarhys/cognatus/internal/logging"
	"github.com/danarhys/cognatus/internal/metrics"
)

// Component weights for the overall score.
const (
	weightSkills     = 0.4
	weightStrengths  = 0.3
	weightExperience = 0.2
	weightEducation  = 0.1
)

const (
	// gapThreshold marks a unique skill as a gap for the other side.
	gapThreshold = 0.7
	// highImpactThreshold marks a gap worth calling out on its own.
	highImpactThreshold = 0.8
	// educationNeutral stands in until education data carries signal.
	educationNeutral = 0.5
)

// Compare scores two profiles for similarity. It never panics past
// this boundary: any internal fault yields a zero-valued Result with
// Details.Error set.
func Compare(a, b *genome.Profile) (result Result) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			logging.Error().Interface("panic", r).Msg("comparison panicked")
			result = failedResult(fmt.Sprintf("comparison failed: %v", r))
		}
		metrics.RecordComparison("compare", time.Since(start), result.Details.Error != "")
	}()

	if a == nil || b == nil {
		return failedResult("comparison requires two profiles")
	}

	skillsA := indexSkills(genome.ExtractSkills(a))
	skillsB := indexSkills(genome.ExtractSkills(b))

	common, uniqueA, uniqueB := splitSkills(skillsA, skillsB)

	skillsScore := overlapScore(len(skillsA.order), len(skillsB.order), len(common))
	strengthsScore := strengthsOverlap(a, b)
	experienceScore := experienceProxy(a, b)

	gaps := skillGaps(uniqueA, uniqueB, a.Username, b.Username)

	result = Result{
		SkillsScore:     skillsScore,
		StrengthsScore:  strengthsScore,
		ExperienceScore: experienceScore,
		EducationScore:  educationNeutral,
		Details: Details{
			CommonSkills:  common,
			UniqueSkillsA: uniqueA,
			UniqueSkillsB: uniqueB,
			SkillGaps:     gaps,
		},
	}
	result.OverallScore = weightSkills*skillsScore +
		weightStrengths*strengthsScore +
		weightExperience*experienceScore +
		weightEducation*educationNeutral
	result.Details.Recommendations = recommendations(a, b, result)

	return result
}

func failedResult(msg string) Result {
	return Result{Details: Details{Error: msg}}
}

// skillIndex is a code-keyed view of an extracted skill list that
// remembers insertion order so every pass over it is deterministic.
type skillIndex struct {
	byCode map[string]genome.Skill
	order  []string
}

func indexSkills(skills []genome.Skill) skillIndex {
	idx := skillIndex{byCode: make(map[string]genome.Skill, len(skills))}
	for _, s := range skills {
		if _, seen := idx.byCode[s.Code]; seen {
			continue // first occurrence wins
		}
		idx.byCode[s.Code] = s
		idx.order = append(idx.order, s.Code)
	}
	return idx
}

func splitSkills(a, b skillIndex) (common []CommonSkill, uniqueA, uniqueB []UniqueSkill) {
	for _, code := range a.order {
		sa := a.byCode[code]
		if sb, ok := b.byCode[code]; ok {
			common = append(common, CommonSkill{
				Code:         code,
				Name:         sa.Name,
				ProficiencyA: sa.Proficiency,
				ProficiencyB: sb.Proficiency,
				Difference:   math.Abs(sa.Proficiency - sb.Proficiency),
			})
			continue
		}
		uniqueA = append(uniqueA, UniqueSkill{Code: code, Name: sa.Name, Proficiency: sa.Proficiency})
	}
	for _, code := range b.order {
		if _, ok := a.byCode[code]; ok {
			continue
		}
		sb := b.byCode[code]
		uniqueB = append(uniqueB, UniqueSkill{Code: code, Name: sb.Name, Proficiency: sb.Proficiency})
	}
	return common, uniqueA, uniqueB
}

// overlapScore is the Dice coefficient over two skill sets, capped at 1.
// Two empty sets score 0, not NaN.
func overlapScore(sizeA, sizeB, common int) float64 {
	if sizeA+sizeB == 0 {
		return 0
	}
	return math.Min(1, 2*float64(common)/float64(sizeA+sizeB))
}

func strengthsOverlap(a, b *genome.Profile) float64 {
	sa := indexSkills(genome.ExtractStrengths(a))
	sb := indexSkills(genome.ExtractStrengths(b))
	common := 0
	for _, code := range sa.order {
		if _, ok := sb.byCode[code]; ok {
			common++
		}
	}
	return overlapScore(len(sa.order), len(sb.order), common)
}

// experienceProxy averages a completion-closeness term and a
// weight-ratio term. Profile completion and weight stand in for real
// tenure data, which the upstream directory does not expose.
func experienceProxy(a, b *genome.Profile) float64 {
	ca, cb := scalarOrZero(a.Completion), scalarOrZero(b.Completion)
	completionTerm := clampUnit(1 - math.Abs(ca-cb))

	wa, wb := scalarOrZero(a.Weight), scalarOrZero(b.Weight)
	var ratioTerm float64
	if wa > 0 && wb > 0 {
		ratioTerm = math.Min(wa, wb) / math.Max(wa, wb)
	}

	return (completionTerm + ratioTerm) / 2
}

func scalarOrZero(v *float64) float64 {
	if v == nil || math.IsNaN(*v) {
		return 0
	}
	return *v
}

func clampUnit(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// skillGaps flags every unique skill above the gap threshold, tagged
// with the username of the side that lacks it.
func skillGaps(uniqueA, uniqueB []UniqueSkill, usernameA, usernameB string) []SkillGap {
	var gaps []SkillGap
	for _, s := range uniqueA {
		if s.Proficiency > gapThreshold {
			gaps = append(gaps, SkillGap{Code: s.Code, Name: s.Name, Proficiency: s.Proficiency, MissingFrom: usernameB})
		}
	}
	for _, s := range uniqueB {
		if s.Proficiency > gapThreshold {
			gaps = append(gaps, SkillGap{Code: s.Code, Name: s.Name, Proficiency: s.Proficiency, MissingFrom: usernameA})
		}
	}
	return gaps
}

// recommendations derives advisory strings from a finished comparison.
// Each rule is evaluated independently, so several can fire at once.
func recommendations(a, b *genome.Profile, r Result) []string {
	recs := []string{}
	nameA, nameB := displayName(a), displayName(b)

	if r.OverallScore > 0.8 {
		recs = append(recs, fmt.Sprintf("%s and %s have highly similar profiles", nameA, nameB))
	}

	if len(r.Details.SkillGaps) > 0 {
		high := highImpactGaps(r.Details.SkillGaps)
		if len(high) > 0 {
			recs = append(recs, fmt.Sprintf(
				"closing high-impact skill gaps would narrow the distance: %s",
				strings.Join(high, ", ")))
		} else {
			recs = append(recs, fmt.Sprintf(
				"skill gaps worth exploring: %s",
				strings.Join(gapNames(r.Details.SkillGaps, 3), ", ")))
		}
	}

	if len(r.Details.UniqueSkillsA) > 0 && len(r.Details.UniqueSkillsB) > 0 {
		recs = append(recs, fmt.Sprintf("%s and %s bring complementary skills and could partner well", nameA, nameB))
	}

	if r.ExperienceScore < 0.4 {
		recs = append(recs, fmt.Sprintf("the experience gap between %s and %s suggests a mentorship opportunity", nameA, nameB))
	}

	if r.SkillsScore > 0.6 && len(r.Details.CommonSkills) > 5 {
		recs = append(recs, fmt.Sprintf("strong skill alignment across %d shared skills", len(r.Details.CommonSkills)))
	}

	if r.SkillsScore < 0.3 && len(r.Details.UniqueSkillsA) > 3 && len(r.Details.UniqueSkillsB) > 3 {
		recs = append(recs, "largely distinct skill sets: pairing them broadens coverage")
	}

	return recs
}

func highImpactGaps(gaps []SkillGap) []string {
	var names []string
	for _, g := range gaps {
		if g.Proficiency > highImpactThreshold {
			names = append(names, g.Name)
		}
	}
	return names
}

func gapNames(gaps []SkillGap, limit int) []string {
	names := make([]string, 0, limit)
	for _, g := range gaps {
		if len(names) == limit {
			break
		}
		names = append(names, g.Name)
	}
	return names
}

func displayName(p *genome.Profile) string {
	if p == nil {
		return "unknown"
	}
	if p.Name != "" {
		return p.Name
	}
	if p.Username != "" {
		return p.Username
	}
	return "unknown"
}
