// Cognatus - Talent Discovery Analytics and Profile Similarity Engine
// Copyright 2026 Dana R. (danarhys)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/danarhys/cognatus

package genome

import (
	"testing"

	"github.com/goccy/go-json"
)

func TestSkillItem_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name            string
		input           string
		wantWeight      *float64
		wantProficiency *float64
		wantEvidence    *int
	}{
		{
			name:       "numeric weight",
			input:      `{"name":"Go","weight":0.85}`,
			wantWeight: fptr(0.85),
		},
		{
			name:       "integer weight",
			input:      `{"name":"Go","weight":1}`,
			wantWeight: fptr(1),
		},
		{
			name:       "numeric string weight",
			input:      `{"name":"Go","weight":"0.75"}`,
			wantWeight: fptr(0.75),
		},
		{
			name:       "padded numeric string",
			input:      `{"name":"Go","weight":" 0.6 "}`,
			wantWeight: fptr(0.6),
		},
		{
			name:       "unparseable string resolves to zero",
			input:      `{"name":"Go","weight":"expert"}`,
			wantWeight: fptr(0),
		},
		{
			name:       "boolean weight resolves to zero",
			input:      `{"name":"Go","weight":true}`,
			wantWeight: fptr(0),
		},
		{
			name:       "object weight resolves to zero",
			input:      `{"name":"Go","weight":{"level":"high"}}`,
			wantWeight: fptr(0),
		},
		{
			name:  "null weight is absent",
			input: `{"name":"Go","weight":null}`,
		},
		{
			name:  "missing weight is absent",
			input: `{"name":"Go"}`,
		},
		{
			name:            "proficiency field",
			input:           `{"name":"Go","proficiency":"0.5"}`,
			wantProficiency: fptr(0.5),
		},
		{
			name:         "evidence count",
			input:        `{"name":"Go","evidence_count":3}`,
			wantEvidence: iptr(3),
		},
		{
			name:            "all fields together",
			input:           `{"name":"Go","code":"golang","weight":0.9,"proficiency":"0.4","evidence_count":7}`,
			wantWeight:      fptr(0.9),
			wantProficiency: fptr(0.4),
			wantEvidence:    iptr(7),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var item SkillItem
			if err := json.Unmarshal([]byte(tt.input), &item); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}

			checkScalar(t, "weight", item.Weight, tt.wantWeight)
			checkScalar(t, "proficiency", item.Proficiency, tt.wantProficiency)
			if (item.EvidenceCount == nil) != (tt.wantEvidence == nil) {
				t.Errorf("evidence_count presence = %v, want %v", item.EvidenceCount != nil, tt.wantEvidence != nil)
			} else if item.EvidenceCount != nil && *item.EvidenceCount != *tt.wantEvidence {
				t.Errorf("evidence_count = %d, want %d", *item.EvidenceCount, *tt.wantEvidence)
			}
		})
	}
}

func checkScalar(t *testing.T, field string, got, want *float64) {
	t.Helper()
	switch {
	case got == nil && want == nil:
	case got == nil || want == nil:
		t.Errorf("%s presence = %v, want %v", field, got != nil, want != nil)
	case !almostEqual(*got, *want):
		t.Errorf("%s = %v, want %v", field, *got, *want)
	}
}

func TestSkillItem_UnmarshalThenExtract(t *testing.T) {
	// A profile decoded from a messy payload still extracts cleanly:
	// unparseable ratings become exactly 0, never an estimate.
	payload := `{
		"username": "octocat",
		"name": "Octo Cat",
		"skills": [
			{"name": "Go", "weight": "advanced"},
			{"name": "Python", "weight": "0.8"},
			{"name": "SQL"}
		]
	}`

	var p Profile
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	skills := ExtractSkills(&p)
	if len(skills) != 3 {
		t.Fatalf("ExtractSkills() returned %d skills, want 3", len(skills))
	}
	if !almostEqual(skills[0].Proficiency, 0) {
		t.Errorf("unparseable weight proficiency = %v, want 0", skills[0].Proficiency)
	}
	if !almostEqual(skills[1].Proficiency, 0.8) {
		t.Errorf("string weight proficiency = %v, want 0.8", skills[1].Proficiency)
	}
	if want := 0.8 - 0.4*2.0/3.0; !almostEqual(skills[2].Proficiency, want) {
		t.Errorf("positional proficiency = %v, want %v (index 2 of 3)", skills[2].Proficiency, want)
	}
}

func TestProfile_Unmarshal(t *testing.T) {
	payload := `{
		"username": "octocat",
		"name": "Octo Cat",
		"professional_headline": "Platform Engineer",
		"summary": "Builds things.",
		"picture_url": "https://cdn.example.com/octocat.png",
		"verified": true,
		"location": "Lisbon",
		"remote": true,
		"open_to_work": false,
		"completion": 0.92,
		"weight": 1450.5,
		"skills": [{"name": "Go", "code": "golang", "weight": 0.9}],
		"strengths": [{"name": "Leadership"}],
		"interests": [{"name": "Chess"}],
		"experiences": [{
			"name": "Senior Engineer",
			"category": "jobs",
			"organization": "Acme",
			"from_month": "March",
			"from_year": "2019",
			"highlights": ["Led the platform team"]
		}],
		"education": [{"name": "Computer Science", "organization": "IST"}]
	}`

	var p Profile
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if p.Username != "octocat" {
		t.Errorf("Username = %q, want octocat", p.Username)
	}
	if p.ProfessionalHeadline != "Platform Engineer" {
		t.Errorf("ProfessionalHeadline = %q", p.ProfessionalHeadline)
	}
	if !p.Verified {
		t.Error("Verified = false, want true")
	}
	if p.Completion == nil || !almostEqual(*p.Completion, 0.92) {
		t.Errorf("Completion = %v, want 0.92", p.Completion)
	}
	if p.Weight == nil || !almostEqual(*p.Weight, 1450.5) {
		t.Errorf("Weight = %v, want 1450.5", p.Weight)
	}
	if len(p.Skills) != 1 || p.Skills[0].Code == nil || *p.Skills[0].Code != "golang" {
		t.Errorf("Skills = %+v, want one entry with code golang", p.Skills)
	}
	if len(p.Experiences) != 1 || p.Experiences[0].Organization != "Acme" {
		t.Errorf("Experiences = %+v", p.Experiences)
	}
	if len(p.Experiences[0].Highlights) != 1 {
		t.Errorf("Highlights = %v, want one entry", p.Experiences[0].Highlights)
	}
	if len(p.Education) != 1 || p.Education[0].Name != "Computer Science" {
		t.Errorf("Education = %+v", p.Education)
	}
}

func TestCandidate_Unmarshal(t *testing.T) {
	payload := `{
		"username": "octocat",
		"name": "Octo Cat",
		"professional_headline": "Platform Engineer",
		"picture_url": "https://cdn.example.com/octocat.png",
		"verified": true
	}`

	var c Candidate
	if err := json.Unmarshal([]byte(payload), &c); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if c.Username != "octocat" || c.Name != "Octo Cat" || !c.Verified {
		t.Errorf("Candidate = %+v", c)
	}
}
