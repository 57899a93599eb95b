// Cognatus - Talent Discovery Analytics and Profile Similarity Engine
// Copyright 2026 Dana R. (danarhys)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/danarhys/cognatus

package recommend

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/danarhys/cognatus/internal/genome"
)

// stopWords are headline tokens that carry no search signal. Tokens of
// one or two letters are dropped by the length filter before this set
// is consulted.
var stopWords = map[string]bool{
	"and": true, "the": true, "for": true, "with": true, "that": true,
	"this": true, "from": true, "are": true, "was": true, "were": true,
	"has": true, "have": true, "had": true, "not": true, "you": true,
	"your": true, "our": true, "their": true, "they": true, "them": true,
	"its": true, "his": true, "her": true, "who": true, "what": true,
	"when": true, "where": true, "how": true, "why": true, "all": true,
	"any": true, "more": true, "most": true, "other": true, "some": true,
	"such": true, "than": true, "too": true, "very": true, "can": true,
	"will": true, "just": true, "about": true, "into": true, "over": true,
	"also": true, "but": true, "out": true, "one": true, "currently": true,
	"working": true, "passionate": true, "years": true, "experience": true,
}

// roleOrder fixes the scan order over role bundles so query generation
// stays deterministic.
var roleOrder = []string{"developer", "engineer", "designer", "manager", "analyst", "consultant"}

// roleBundles expand a recognized role keyword in the headline into
// broader search phrasings for that role family.
var roleBundles = map[string][]string{
	"developer":  {"software developer", "web developer"},
	"engineer":   {"software engineer", "systems engineer"},
	"designer":   {"product designer", "ux designer"},
	"manager":    {"product manager", "engineering manager"},
	"analyst":    {"data analyst", "business analyst"},
	"consultant": {"technology consultant", "management consultant"},
}

// querySet accumulates search queries with insertion-order
// deduplication and a hard cap. Queries are normalized to lowercase.
type querySet struct {
	queries []string
	seen    map[string]bool
	limit   int
}

func newQuerySet(limit int) *querySet {
	return &querySet{seen: make(map[string]bool), limit: limit}
}

// add inserts one query if it is new and the set has room. Returns
// false once the set is full so callers can stop generating.
func (qs *querySet) add(query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" || qs.seen[query] {
		return len(qs.queries) < qs.limit
	}
	if len(qs.queries) >= qs.limit {
		return false
	}
	qs.seen[query] = true
	qs.queries = append(qs.queries, query)
	return len(qs.queries) < qs.limit
}

func (qs *querySet) addAll(queries []string) bool {
	for _, q := range queries {
		if !qs.add(q) {
			return false
		}
	}
	return true
}

// buildQueries assembles the search query set for a target profile in
// binding priority order: caller extras, headline keywords, top skills
// by proficiency, top strengths, then role bundles. The set is capped
// at maxQueries with first-come-first-kept deduplication.
func buildQueries(profile *genome.Profile, skills, strengths []genome.Skill, extras []string, maxQueries int) []string {
	qs := newQuerySet(maxQueries)

	if !qs.addAll(extras) {
		return qs.queries
	}
	if !qs.addAll(headlineTokens(profile.ProfessionalHeadline)) {
		return qs.queries
	}
	for _, s := range topByProficiency(skills, 5) {
		if !qs.add(s.Name) {
			return qs.queries
		}
	}
	for _, s := range topByProficiency(strengths, 3) {
		if !qs.add(s.Name) {
			return qs.queries
		}
	}

	headline := strings.ToLower(profile.ProfessionalHeadline)
	for _, role := range roleOrder {
		if !strings.Contains(headline, role) {
			continue
		}
		if !qs.addAll(roleBundles[role]) {
			return qs.queries
		}
	}
	return qs.queries
}

// headlineTokens splits a headline into lowercase alphabetic keywords,
// dropping stop words and tokens shorter than three letters.
func headlineTokens(headline string) []string {
	fields := strings.FieldsFunc(strings.ToLower(headline), func(r rune) bool {
		return !unicode.IsLetter(r)
	})

	var tokens []string
	for _, f := range fields {
		if utf8.RuneCountInString(f) <= 2 || stopWords[f] {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// topByProficiency returns the n highest-proficiency skills, ties kept
// in input order.
func topByProficiency(skills []genome.Skill, n int) []genome.Skill {
	sorted := make([]genome.Skill, len(skills))
	copy(sorted, skills)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Proficiency > sorted[j].Proficiency
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
