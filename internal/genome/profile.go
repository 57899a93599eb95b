// Cognatus - Talent Discovery Analytics and Profile Similarity Engine
// Copyright 2026 Dana R. (danarhys)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/danarhys/cognatus

package genome

import (
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// Profile is the full professional-profile record ("genome") for one
// person as delivered by the upstream directory. Every field beyond
// Username is optional; the extractor and engines tolerate partial data.
//
// Skills, Strengths and Interests are ordered lists: insertion order
// carries weak significance (earlier entries are assumed more important
// when no explicit weight exists), so the order must be preserved
// through decode and extraction.
type Profile struct {
	Username             string   `json:"username"`
	Name                 string   `json:"name,omitempty"`
	ProfessionalHeadline string   `json:"professional_headline,omitempty"`
	Summary              string   `json:"summary,omitempty"`
	PictureURL           string   `json:"picture_url,omitempty"`
	Verified             bool     `json:"verified,omitempty"`
	Location             string   `json:"location,omitempty"`
	Remote               bool     `json:"remote,omitempty"`
	OpenToWork           bool     `json:"open_to_work,omitempty"`
	Completion           *float64 `json:"completion,omitempty"`
	Weight               *float64 `json:"weight,omitempty"`

	Skills    []SkillItem `json:"skills,omitempty"`
	Strengths []SkillItem `json:"strengths,omitempty"`
	Interests []SkillItem `json:"interests,omitempty"`

	Experiences []ExperienceItem `json:"experiences,omitempty"`
	Education   []ExperienceItem `json:"education,omitempty"`
}

// SkillItem is one raw entry of a profile's skills, strengths or
// interests list, before normalization.
//
// Weight and Proficiency arrive from the directory as loosely typed
// scalars: numbers, numeric strings, or occasionally junk. The custom
// decoder maps a present-but-unparseable value to exactly 0 rather than
// dropping it, so downstream resolution can distinguish "rated zero or
// unratable" from "never rated" (nil), which falls through to the
// positional heuristic instead.
type SkillItem struct {
	Name          string   `json:"name"`
	Code          *string  `json:"code,omitempty"`
	Weight        *float64 `json:"weight,omitempty"`
	Proficiency   *float64 `json:"proficiency,omitempty"`
	EvidenceCount *int     `json:"evidence_count,omitempty"`
}

// skillItemWire mirrors SkillItem with raw scalar fields for tolerant decoding.
type skillItemWire struct {
	Name          string          `json:"name"`
	Code          *string         `json:"code,omitempty"`
	Weight        json.RawMessage `json:"weight,omitempty"`
	Proficiency   json.RawMessage `json:"proficiency,omitempty"`
	EvidenceCount *int            `json:"evidence_count,omitempty"`
}

// UnmarshalJSON decodes a skill item, accepting numbers and numeric
// strings for weight and proficiency. Null and absent map to nil; any
// other present value maps to 0.
func (s *SkillItem) UnmarshalJSON(data []byte) error {
	var wire skillItemWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	s.Name = wire.Name
	s.Code = wire.Code
	s.EvidenceCount = wire.EvidenceCount
	s.Weight = parseLooseScalar(wire.Weight)
	s.Proficiency = parseLooseScalar(wire.Proficiency)
	return nil
}

// parseLooseScalar interprets a raw JSON value as an optional numeric scalar.
func parseLooseScalar(raw json.RawMessage) *float64 {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return &n
	}

	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		if v, perr := strconv.ParseFloat(strings.TrimSpace(str), 64); perr == nil {
			return &v
		}
	}

	// Present but unparseable resolves to exactly zero.
	zero := 0.0
	return &zero
}

// ExperienceItem is one entry of a profile's experience or education
// list. Months are free-text ("January"), years free-text numerals;
// neither is guaranteed present or well-formed.
type ExperienceItem struct {
	Name         string   `json:"name,omitempty"`
	Category     string   `json:"category,omitempty"`
	Organization string   `json:"organization,omitempty"`
	FromMonth    string   `json:"from_month,omitempty"`
	FromYear     string   `json:"from_year,omitempty"`
	ToMonth      string   `json:"to_month,omitempty"`
	ToYear       string   `json:"to_year,omitempty"`
	Highlights   []string `json:"highlights,omitempty"`
}

// Candidate is the lightweight stub the directory search returns. Full
// genomes are fetched separately, and only for candidates that survive
// deduplication.
type Candidate struct {
	Username             string `json:"username"`
	Name                 string `json:"name,omitempty"`
	ProfessionalHeadline string `json:"professional_headline,omitempty"`
	PictureURL           string `json:"picture_url,omitempty"`
	Verified             bool   `json:"verified,omitempty"`
}
