// Cognatus - Talent Discovery Analytics and Profile Similarity Engine
// Copyright 2026 Dana R. (danarhys)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/danarhys/cognatus

package recommend

import (
	"reflect"
	"testing"

	"github.com/danarhys/cognatus/internal/genome"
)

func extractedSkill(name string, proficiency float64) genome.Skill {
	return genome.Skill{
		Name:        name,
		Code:        genome.DeriveCode(name),
		Proficiency: proficiency,
		Kind:        genome.KindSkill,
	}
}

func TestBuildQueries_PriorityOrder(t *testing.T) {
	profile := &genome.Profile{
		Username:             "alice",
		ProfessionalHeadline: "Senior Go Developer",
	}
	skills := []genome.Skill{
		extractedSkill("Go", 1.0),
		extractedSkill("Rust", 0.8),
	}
	strengths := []genome.Skill{
		extractedSkill("Leadership", 0.9),
	}

	got := buildQueries(profile, skills, strengths, []string{"Kubernetes"}, 8)

	// Extras, then headline keywords ("go" is too short to survive the
	// token filter), then skills, strengths, and the developer bundle.
	want := []string{
		"kubernetes",
		"senior",
		"developer",
		"go",
		"rust",
		"leadership",
		"software developer",
		"web developer",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("buildQueries() = %v, want %v", got, want)
	}
}

func TestBuildQueries_CapAtMax(t *testing.T) {
	profile := &genome.Profile{
		Username:             "alice",
		ProfessionalHeadline: "Platform Engineer",
	}
	extras := []string{
		"one fish", "two fish", "red fish", "blue fish",
		"old fish", "new fish", "sad fish", "glad fish",
		"overflow one", "overflow two",
	}

	got := buildQueries(profile, nil, nil, extras, 8)

	if len(got) != 8 {
		t.Fatalf("len(queries) = %d, want 8", len(got))
	}
	if !reflect.DeepEqual(got, []string{
		"one fish", "two fish", "red fish", "blue fish",
		"old fish", "new fish", "sad fish", "glad fish",
	}) {
		t.Errorf("queries = %v, want first eight extras only", got)
	}
}

func TestBuildQueries_Dedup(t *testing.T) {
	profile := &genome.Profile{
		Username:             "alice",
		ProfessionalHeadline: "Python Developer at ACME",
	}
	skills := []genome.Skill{
		extractedSkill("Python", 1.0),
	}

	got := buildQueries(profile, skills, nil, []string{"python"}, 8)

	// "python" appears as an extra, a headline token, and a skill, but
	// only its first occurrence is kept.
	want := []string{
		"python",
		"developer",
		"acme",
		"software developer",
		"web developer",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("buildQueries() = %v, want %v", got, want)
	}
}

func TestBuildQueries_CaseInsensitiveDedup(t *testing.T) {
	profile := &genome.Profile{Username: "alice"}

	got := buildQueries(profile, nil, nil, []string{"Kubernetes", "KUBERNETES", "  kubernetes  "}, 8)

	if !reflect.DeepEqual(got, []string{"kubernetes"}) {
		t.Errorf("buildQueries() = %v, want single lowercase entry", got)
	}
}

func TestBuildQueries_TopSkillsAndStrengths(t *testing.T) {
	profile := &genome.Profile{Username: "alice"}
	skills := []genome.Skill{
		extractedSkill("angular", 0.1),
		extractedSkill("react", 0.3),
		extractedSkill("vue", 0.2),
		extractedSkill("svelte", 0.15),
		extractedSkill("ember", 0.25),
		extractedSkill("jquery", 0.05),
		extractedSkill("backbone", 0.01),
	}
	strengths := []genome.Skill{
		extractedSkill("mentoring", 0.6),
		extractedSkill("communication", 0.9),
		extractedSkill("planning", 0.8),
		extractedSkill("facilitation", 0.7),
	}

	got := buildQueries(profile, skills, strengths, nil, 8)

	// Top five skills and top three strengths, each by proficiency.
	want := []string{
		"react", "ember", "vue", "svelte", "angular",
		"communication", "planning", "facilitation",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("buildQueries() = %v, want %v", got, want)
	}
}

func TestBuildQueries_RoleBundlesDeterministicOrder(t *testing.T) {
	profile := &genome.Profile{
		Username:             "alice",
		ProfessionalHeadline: "Engineering Manager",
	}

	got := buildQueries(profile, nil, nil, nil, 8)

	// "Engineering Manager" matches both the engineer and manager
	// families; bundles expand in fixed role order.
	want := []string{
		"engineering",
		"manager",
		"software engineer",
		"systems engineer",
		"product manager",
		"engineering manager",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("buildQueries() = %v, want %v", got, want)
	}
}

func TestBuildQueries_EmptyProfile(t *testing.T) {
	profile := &genome.Profile{Username: "ghost"}

	got := buildQueries(profile, nil, nil, nil, 8)

	if len(got) != 0 {
		t.Errorf("buildQueries() = %v, want no queries", got)
	}
}

func TestHeadlineTokens(t *testing.T) {
	tests := []struct {
		name     string
		headline string
		want     []string
	}{
		{
			name:     "simple title",
			headline: "Senior Software Engineer",
			want:     []string{"senior", "software", "engineer"},
		},
		{
			name:     "punctuation split",
			headline: "Full-Stack Developer & Designer",
			want:     []string{"full", "stack", "developer", "designer"},
		},
		{
			name:     "stop words dropped",
			headline: "passionate about building for the web",
			want:     []string{"building", "web"},
		},
		{
			name:     "filler headline yields nothing",
			headline: "10+ years of experience",
			want:     nil,
		},
		{
			name:     "short tokens dropped",
			headline: "C++ & C# Dev!!!",
			want:     []string{"dev"},
		},
		{
			name:     "multibyte runes counted as letters",
			headline: "Développeur Web",
			want:     []string{"développeur", "web"},
		},
		{
			name:     "empty headline",
			headline: "",
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := headlineTokens(tt.headline)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("headlineTokens(%q) = %v, want %v", tt.headline, got, tt.want)
			}
		})
	}
}

func TestTopByProficiency(t *testing.T) {
	skills := []genome.Skill{
		extractedSkill("go", 0.5),
		extractedSkill("rust", 0.9),
		extractedSkill("python", 0.5),
		extractedSkill("java", 0.7),
	}

	got := topByProficiency(skills, 3)

	// Stable sort keeps go ahead of python on the 0.5 tie.
	want := []string{"rust", "java", "go"}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i, name := range want {
		if got[i].Name != name {
			t.Errorf("top[%d] = %q, want %q", i, got[i].Name, name)
		}
	}

	// Input order must survive the call.
	if skills[0].Name != "go" || skills[1].Name != "rust" {
		t.Errorf("input slice mutated: %v", skills)
	}
}

func TestTopByProficiency_FewerThanN(t *testing.T) {
	skills := []genome.Skill{extractedSkill("go", 0.5)}

	got := topByProficiency(skills, 5)

	if len(got) != 1 || got[0].Name != "go" {
		t.Errorf("topByProficiency() = %v, want the single input skill", got)
	}
}

func TestQuerySet_AddSignalsCapacity(t *testing.T) {
	qs := newQuerySet(2)

	if !qs.add("first") {
		t.Error("add(first) = false, want true while below the cap")
	}
	if !qs.add("first") {
		t.Error("duplicate add = false, want true while below the cap")
	}
	if qs.add("second") {
		t.Error("add(second) = true, want false once the set is full")
	}
	if qs.add("third") {
		t.Error("add(third) = true, want false when full")
	}
	if !reflect.DeepEqual(qs.queries, []string{"first", "second"}) {
		t.Errorf("queries = %v, want [first second]", qs.queries)
	}
}
