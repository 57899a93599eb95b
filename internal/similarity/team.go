// Cognatus - Talent Discovery Analytics and Profile Similarity Engine
// Copyright 2026 Dana R. (danarhys)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/danarhys/cognatus

package similarity

import (
	"fmt"
	"strings"
	"time"

	"github.com/danarhys/cognatus/internal/genome"
	"github.com/danarhys/cognatus/internal/logging"
	"github.com/danarhys/cognatus/internal/metrics"
)

// memberSkill records one team member holding one skill.
type memberSkill struct {
	memberIndex int
	username    string
	proficiency float64
}

// AnalyzeTeam examines skill coverage across a set of profiles. Fewer
// than two usable profiles yields an error-annotated result rather
// than a Go error or panic.
func AnalyzeTeam(profiles []*genome.Profile) (result TeamResult) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			logging.Error().Interface("panic", r).Msg("team analysis panicked")
			result = TeamResult{
				Error:           fmt.Sprintf("team analysis failed: %v", r),
				Recommendations: []string{},
			}
		}
		metrics.RecordComparison("team", time.Since(start), result.Error != "")
	}()

	members := make([]*genome.Profile, 0, len(profiles))
	for _, p := range profiles {
		if p != nil {
			members = append(members, p)
		}
	}

	if len(members) < 2 {
		return TeamResult{
			TeamSize:        len(members),
			Error:           "team analysis requires at least two profiles",
			Recommendations: []string{},
		}
	}

	n := len(members)

	// Coverage map keyed by skill code, with first-seen ordering so
	// the analysis is deterministic.
	coverage := make(map[string][]memberSkill, 32)
	names := make(map[string]string, 32)
	var order []string
	skillTotal := 0

	for i, member := range members {
		idx := indexSkills(genome.ExtractSkills(member))
		skillTotal += len(idx.order)
		for _, code := range idx.order {
			s := idx.byCode[code]
			if _, seen := coverage[code]; !seen {
				order = append(order, code)
				names[code] = s.Name
			}
			coverage[code] = append(coverage[code], memberSkill{
				memberIndex: i,
				username:    member.Username,
				proficiency: s.Proficiency,
			})
		}
	}

	// A skill is well covered when at least half the team holds it.
	wellCoveredMin := (n + 1) / 2

	var unique []UniqueTeamSkill
	var well, poor []string
	for _, code := range order {
		holders := coverage[code]
		switch {
		case len(holders) == 1:
			unique = append(unique, UniqueTeamSkill{
				Code:        code,
				Name:        names[code],
				Owner:       holders[0].username,
				Proficiency: holders[0].proficiency,
			})
		case len(holders) >= wellCoveredMin:
			well = append(well, names[code])
		default:
			poor = append(poor, names[code])
		}
	}

	return TeamResult{
		TeamSize:           n,
		TotalSkills:        len(order),
		AvgSkillsPerPerson: float64(skillTotal) / float64(n),
		UniqueSkills:       unique,
		WellCovered:        well,
		PoorlyCovered:      poor,
		Recommendations:    teamRecommendations(unique, well, poor),
	}
}

// teamRecommendations produces one advisory per non-empty coverage
// category, naming up to three representative skills each.
func teamRecommendations(unique []UniqueTeamSkill, well, poor []string) []string {
	recs := []string{}

	if len(unique) > 0 {
		samples := make([]string, 0, 3)
		for _, u := range unique {
			if len(samples) == 3 {
				break
			}
			samples = append(samples, fmt.Sprintf("%s (%s)", u.Name, u.Owner))
		}
		recs = append(recs, fmt.Sprintf(
			"knowledge concentrated in single members: %s", strings.Join(samples, ", ")))
	}

	if len(poor) > 0 {
		recs = append(recs, fmt.Sprintf(
			"cross-training would broaden thin coverage of: %s", strings.Join(firstN(poor, 3), ", ")))
	}

	if len(well) > 0 {
		recs = append(recs, fmt.Sprintf(
			"solid collective coverage of: %s", strings.Join(firstN(well, 3), ", ")))
	}

	return recs
}

func firstN(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
