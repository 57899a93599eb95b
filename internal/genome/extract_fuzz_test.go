// Cognatus - Talent Discovery Analytics and Profile Similarity Engine
// Copyright 2026 Dana R. (danarhys)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/danarhys/cognatus

package genome

import (
	"math"
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

// FuzzDeriveCode verifies the code derivation invariants hold for
// arbitrary display names: determinism, idempotence, and a normalized
// output with no residual spacing.
func FuzzDeriveCode(f *testing.F) {
	seeds := []string{
		"Go",
		"Machine Learning",
		"  spaced   out  ",
		"",
		"already-hyphenated",
		"UPPER CASE SKILL",
		"tabs\there\tand\tthere",
		"newline\nin name",
		"ünïcödé Skill",
		"emoji 🚀 driven development",
		"a b",
		strings.Repeat("very long skill name ", 50),
		"'; DROP TABLE skills;--",
		"<script>alert(1)</script>",
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, name string) {
		code := DeriveCode(name)

		if again := DeriveCode(name); again != code {
			t.Errorf("DeriveCode not deterministic: %q vs %q", code, again)
		}
		if twice := DeriveCode(code); twice != code {
			t.Errorf("DeriveCode not idempotent: %q -> %q", code, twice)
		}
		if strings.ContainsAny(code, " \t\n\f\r") {
			t.Errorf("DeriveCode(%q) = %q contains spacing", name, code)
		}
		if lower := strings.ToLower(code); lower != code {
			t.Errorf("DeriveCode(%q) = %q is not lowercase", name, code)
		}
	})
}

// FuzzSkillItemDecode throws arbitrary JSON at the tolerant skill item
// decoder and checks that whatever survives decoding extracts to a
// proficiency inside [0,1].
func FuzzSkillItemDecode(f *testing.F) {
	seeds := []string{
		`{"name":"Go","weight":0.9}`,
		`{"name":"Go","weight":"0.5"}`,
		`{"name":"Go","weight":"expert"}`,
		`{"name":"Go","weight":null}`,
		`{"name":"Go","weight":{"nested":true}}`,
		`{"name":"Go","weight":[1,2,3]}`,
		`{"name":"Go","proficiency":"1e308"}`,
		`{"name":"Go","proficiency":-42}`,
		`{"name":"Go","evidence_count":-5}`,
		`{"name":"Go","evidence_count":9999999}`,
		`{"name":""}`,
		`{}`,
		"{\"name\":\"\x00\"}",
	}
	for _, s := range seeds {
		f.Add([]byte(s))
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		var item SkillItem
		if err := json.Unmarshal(data, &item); err != nil {
			t.Skip()
		}

		p := &Profile{Username: "fuzz", Skills: []SkillItem{item}}
		for _, s := range ExtractSkills(p) {
			if s.Proficiency < 0 || s.Proficiency > 1 || math.IsNaN(s.Proficiency) {
				t.Errorf("proficiency %v outside [0,1] for %s", s.Proficiency, data)
			}
		}
		for _, s := range ExtractStrengths(&Profile{Username: "fuzz", Strengths: []SkillItem{item}}) {
			if s.Proficiency < 0 || s.Proficiency > 1 || math.IsNaN(s.Proficiency) {
				t.Errorf("strength proficiency %v outside [0,1] for %s", s.Proficiency, data)
			}
		}
	})
}
