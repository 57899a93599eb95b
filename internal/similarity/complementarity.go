// Cognatus - Talent Discovery Analytics and Profile Similarity Engine
// Copyright 2026 Dana R. (danarhys)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/danarhys/cognatus

package similarity

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/danarhys/cognatus/internal/genome"
	"github.com/danarhys/cognatus/internal/logging"
	"github.com/danarhys/cognatus/internal/metrics"
)

const (
	// uniquePairThreshold is the proficiency a one-sided skill needs
	// to count as a complementary contribution.
	uniquePairThreshold = 0.7
	// imbalanceThreshold is the proficiency spread on a shared skill
	// that makes one side a potential teacher for the other.
	imbalanceThreshold = 0.4
)

// Complementarity measures how well two profiles fill each other's
// gaps. High overlap scores low here; two specialists in different
// fields score high. Shares the no-panic boundary with Compare.
func Complementarity(a, b *genome.Profile) (result ComplementarityResult) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			logging.Error().Interface("panic", r).Msg("complementarity panicked")
			result = ComplementarityResult{Error: fmt.Sprintf("complementarity failed: %v", r)}
		}
		metrics.RecordComparison("complementarity", time.Since(start), result.Error != "")
	}()

	if a == nil || b == nil {
		return ComplementarityResult{Error: "complementarity requires two profiles"}
	}

	skillsA := indexSkills(genome.ExtractSkills(a))
	skillsB := indexSkills(genome.ExtractSkills(b))

	var pairs []ComplementarityPair

	for _, code := range skillsA.order {
		sa := skillsA.byCode[code]
		sb, shared := skillsB.byCode[code]
		if !shared {
			if sa.Proficiency > uniquePairThreshold {
				pairs = append(pairs, ComplementarityPair{
					Code:   code,
					Name:   sa.Name,
					Kind:   PairUnique,
					Holder: a.Username,
					Score:  sa.Proficiency,
				})
			}
			continue
		}
		// Shared skills pair once, on the A pass.
		if diff := math.Abs(sa.Proficiency - sb.Proficiency); diff > imbalanceThreshold {
			holder := a.Username
			if sb.Proficiency > sa.Proficiency {
				holder = b.Username
			}
			pairs = append(pairs, ComplementarityPair{
				Code:   code,
				Name:   sa.Name,
				Kind:   PairImbalance,
				Holder: holder,
				Score:  diff,
			})
		}
	}

	for _, code := range skillsB.order {
		if _, shared := skillsA.byCode[code]; shared {
			continue
		}
		sb := skillsB.byCode[code]
		if sb.Proficiency > uniquePairThreshold {
			pairs = append(pairs, ComplementarityPair{
				Code:   code,
				Name:   sb.Name,
				Kind:   PairUnique,
				Holder: b.Username,
				Score:  sb.Proficiency,
			})
		}
	}

	sortPairsDesc(pairs)

	return ComplementarityResult{
		Score:      meanPairScore(pairs),
		Pairs:      pairs,
		TotalPairs: len(pairs),
	}
}

func meanPairScore(pairs []ComplementarityPair) float64 {
	if len(pairs) == 0 {
		return 0
	}
	sum := 0.0
	for _, p := range pairs {
		sum += p.Score
	}
	return clampUnit(sum / float64(len(pairs)))
}

// sortPairsDesc orders pairs by score, highest first. The sort is
// stable so equal scores keep their discovery order.
func sortPairsDesc(pairs []ComplementarityPair) {
	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].Score > pairs[j].Score
	})
}
