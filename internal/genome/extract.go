// Cognatus - Talent Discovery Analytics and Profile Similarity Engine
// Copyright 2026 Dana R. (danarhys)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/danarhys/cognatus

package genome

import (
	"math"
)

// Positional fallback bounds. Skills decay from 0.8 toward a 0.3
// floor; interests are the lowest-confidence signal and decay inside a
// narrower 0.4..0.7 band.
const (
	skillFloor    = 0.3
	skillCeiling  = 0.8
	interestFloor = 0.4
	interestCeil  = 0.7
)

// ExtractSkills normalizes a profile's skills, interests and strengths
// into one flat list. Pure function: nil or empty input yields an empty
// slice, never a panic, and the same profile always produces the same
// output in the same order.
//
// Proficiency resolution per skill item, in order:
//  1. explicit weight present: clamp to [0,1]
//  2. explicit proficiency present: clamp to [0,1]
//  3. evidence count present and positive: min(0.9, 0.5 + 0.1*count)
//  4. positional fallback: max(0.3, 0.8 - 0.4*(index/total))
//
// A present-but-unparseable weight or proficiency resolves to exactly 0
// (the decoder pins it there), never to a fallback: absent explicit
// ratings must not be overstated. Interests use the positional band
// 0.4..0.7. Strengths folded in here resolve from explicit values only,
// with no positional fallback.
func ExtractSkills(p *Profile) []Skill {
	if p == nil {
		return []Skill{}
	}

	out := make([]Skill, 0, len(p.Skills)+len(p.Interests)+len(p.Strengths))

	total := len(p.Skills)
	for i, item := range p.Skills {
		out = append(out, Skill{
			Name:        item.Name,
			Code:        codeFor(item),
			Proficiency: resolveProficiency(item, i, total, skillFloor, skillCeiling),
			Kind:        KindSkill,
		})
	}

	total = len(p.Interests)
	for i, item := range p.Interests {
		out = append(out, Skill{
			Name:        item.Name,
			Code:        codeFor(item),
			Proficiency: resolveProficiency(item, i, total, interestFloor, interestCeil),
			Kind:        KindInterest,
		})
	}

	for _, item := range p.Strengths {
		out = append(out, Skill{
			Name:        item.Name,
			Code:        codeFor(item),
			Proficiency: resolveExplicit(item),
			Kind:        KindStrength,
		})
	}

	return out
}

// ExtractStrengths normalizes only the strengths list, using the full
// resolution chain including the positional fallback. Pure function
// with the same guarantees as ExtractSkills.
func ExtractStrengths(p *Profile) []Skill {
	if p == nil {
		return []Skill{}
	}

	out := make([]Skill, 0, len(p.Strengths))
	total := len(p.Strengths)
	for i, item := range p.Strengths {
		out = append(out, Skill{
			Name:        item.Name,
			Code:        codeFor(item),
			Proficiency: resolveProficiency(item, i, total, skillFloor, skillCeiling),
			Kind:        KindStrength,
		})
	}

	return out
}

// resolveProficiency applies the full resolution chain for one item.
func resolveProficiency(item SkillItem, index, total int, floor, ceiling float64) float64 {
	if item.Weight != nil {
		return clamp01(*item.Weight)
	}
	if item.Proficiency != nil {
		return clamp01(*item.Proficiency)
	}
	if item.EvidenceCount != nil && *item.EvidenceCount > 0 {
		return math.Min(0.9, 0.5+0.1*float64(*item.EvidenceCount))
	}
	return positionalProficiency(index, total, floor, ceiling)
}

// resolveExplicit resolves from explicit weight or proficiency only.
// Items with neither resolve to 0.
func resolveExplicit(item SkillItem) float64 {
	if item.Weight != nil {
		return clamp01(*item.Weight)
	}
	if item.Proficiency != nil {
		return clamp01(*item.Proficiency)
	}
	return 0
}

// positionalProficiency assumes earlier-listed items are stronger:
// linear decay from 0.8 by 0.4 over the list, clamped into
// [floor, ceiling].
func positionalProficiency(index, total int, floor, ceiling float64) float64 {
	if total <= 0 {
		return floor
	}

	p := 0.8 - 0.4*(float64(index)/float64(total))
	if p < floor {
		return floor
	}
	if p > ceiling {
		return ceiling
	}
	return p
}

// clamp01 pins a scalar into [0,1]. NaN maps to 0.
func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
