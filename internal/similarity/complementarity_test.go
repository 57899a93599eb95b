// Cognatus - Talent Discovery Analytics and Profile Similarity Engine
// Copyright 2026 Dana R. (danarhys)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/danarhys/cognatus

package similarity

import (
	"math"
	"reflect"
	"sort"
	"testing"

	"github.com/danarhys/cognatus/internal/genome"
)

func TestComplementarity_UniqueSkills(t *testing.T) {
	a := profileOf("alice", ws("Kubernetes", 0.9), ws("Bash", 0.5))
	b := profileOf("bob", ws("Figma", 0.8))

	r := Complementarity(a, b)

	if r.TotalPairs != 2 {
		t.Fatalf("TotalPairs = %d, want 2 (bash at 0.5 excluded): %+v", r.TotalPairs, r.Pairs)
	}
	// Sorted descending: kubernetes 0.9 before figma 0.8.
	if r.Pairs[0].Code != "kubernetes" || r.Pairs[0].Holder != "alice" {
		t.Errorf("Pairs[0] = %+v, want kubernetes held by alice", r.Pairs[0])
	}
	if r.Pairs[1].Code != "figma" || r.Pairs[1].Holder != "bob" {
		t.Errorf("Pairs[1] = %+v, want figma held by bob", r.Pairs[1])
	}
	for _, p := range r.Pairs {
		if p.Kind != PairUnique {
			t.Errorf("pair %s kind = %q, want %q", p.Code, p.Kind, PairUnique)
		}
	}
	if want := (0.9 + 0.8) / 2; !almostEqual(r.Score, want) {
		t.Errorf("Score = %v, want %v", r.Score, want)
	}
}

func TestComplementarity_SharedImbalance(t *testing.T) {
	a := profileOf("alice", ws("Python", 0.9))
	b := profileOf("bob", ws("Python", 0.3))

	r := Complementarity(a, b)

	if r.TotalPairs != 1 {
		t.Fatalf("TotalPairs = %d, want 1: %+v", r.TotalPairs, r.Pairs)
	}
	p := r.Pairs[0]
	if p.Kind != PairImbalance {
		t.Errorf("Kind = %q, want %q", p.Kind, PairImbalance)
	}
	if p.Holder != "alice" {
		t.Errorf("Holder = %q, want stronger side alice", p.Holder)
	}
	if !almostEqual(p.Score, 0.6) {
		t.Errorf("Score = %v, want 0.6 (the spread)", p.Score)
	}
}

func TestComplementarity_ImbalanceHolderIsStrongerSide(t *testing.T) {
	a := profileOf("alice", ws("Python", 0.2))
	b := profileOf("bob", ws("Python", 0.8))

	r := Complementarity(a, b)
	if r.TotalPairs != 1 || r.Pairs[0].Holder != "bob" {
		t.Errorf("Pairs = %+v, want single pair held by bob", r.Pairs)
	}
}

func TestComplementarity_NoSignal(t *testing.T) {
	tests := []struct {
		name string
		a, b *genome.Profile
	}{
		{
			name: "identical profiles",
			a:    profileOf("alice", ws("Go", 0.8), ws("SQL", 0.6)),
			b:    profileOf("bob", ws("Go", 0.8), ws("SQL", 0.6)),
		},
		{
			name: "low proficiency uniques",
			a:    profileOf("alice", ws("Go", 0.5)),
			b:    profileOf("bob", ws("Rust", 0.4)),
		},
		{
			name: "small shared spread",
			a:    profileOf("alice", ws("Go", 0.7)),
			b:    profileOf("bob", ws("Go", 0.5)),
		},
		{
			name: "both empty",
			a:    profileOf("alice"),
			b:    profileOf("bob"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Complementarity(tt.a, tt.b)
			if r.TotalPairs != 0 || len(r.Pairs) != 0 {
				t.Errorf("Pairs = %+v, want none", r.Pairs)
			}
			if r.Score != 0 {
				t.Errorf("Score = %v, want 0", r.Score)
			}
			if math.IsNaN(r.Score) {
				t.Error("Score is NaN")
			}
		})
	}
}

func TestComplementarity_ThresholdEdges(t *testing.T) {
	// Thresholds are strict: exactly 0.7 unique and exactly 0.4 spread
	// do not pair.
	a := profileOf("alice", ws("Go", 0.7), ws("Python", 0.9))
	b := profileOf("bob", ws("Python", 0.5))

	r := Complementarity(a, b)
	if r.TotalPairs != 0 {
		t.Errorf("TotalPairs = %d, want 0 at exact thresholds: %+v", r.TotalPairs, r.Pairs)
	}
}

func TestComplementarity_SortedDescending(t *testing.T) {
	a := profileOf("alice", ws("Go", 0.75), ws("Kubernetes", 0.95), ws("Python", 0.9))
	b := profileOf("bob", ws("Python", 0.2), ws("Figma", 0.8))

	r := Complementarity(a, b)
	if !sort.SliceIsSorted(r.Pairs, func(i, j int) bool {
		return r.Pairs[i].Score > r.Pairs[j].Score
	}) {
		t.Errorf("pairs not sorted descending: %+v", r.Pairs)
	}
	if r.TotalPairs != len(r.Pairs) {
		t.Errorf("TotalPairs = %d, len(Pairs) = %d", r.TotalPairs, len(r.Pairs))
	}
}

func TestComplementarity_ScoreSymmetric(t *testing.T) {
	a := profileOf("alice", ws("Go", 0.9), ws("Python", 0.3))
	b := profileOf("bob", ws("Python", 0.8), ws("Figma", 0.85))

	ab := Complementarity(a, b)
	ba := Complementarity(b, a)

	if !almostEqual(ab.Score, ba.Score) {
		t.Errorf("Score not symmetric: %v vs %v", ab.Score, ba.Score)
	}
	if ab.TotalPairs != ba.TotalPairs {
		t.Errorf("TotalPairs not symmetric: %d vs %d", ab.TotalPairs, ba.TotalPairs)
	}
}

func TestComplementarity_NilProfiles(t *testing.T) {
	if r := Complementarity(nil, profileOf("bob")); r.Error == "" {
		t.Error("expected Error for nil input")
	}
	if r := Complementarity(profileOf("alice"), nil); r.Error == "" {
		t.Error("expected Error for nil input")
	}
}

func TestComplementarity_Deterministic(t *testing.T) {
	a := profileOf("alice", ws("Go", 0.9), ws("Python", 0.3), ws("SQL", 0.8))
	b := profileOf("bob", ws("Python", 0.8), ws("Figma", 0.85), ws("SQL", 0.1))

	first := Complementarity(a, b)
	for i := 0; i < 20; i++ {
		if got := Complementarity(a, b); !reflect.DeepEqual(got, first) {
			t.Fatalf("Complementarity() run %d differs from first run", i)
		}
	}
}
