// Cognatus - Talent Discovery Analytics and Profile Similarity Engine
// Copyright 2026 Dana R. (danarhys)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/danarhys/cognatus

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/danarhys/cognatus/internal/events"
	"github.com/danarhys/cognatus/internal/genome"
	"github.com/danarhys/cognatus/internal/history"
	"github.com/danarhys/cognatus/internal/logging"
	"github.com/danarhys/cognatus/internal/models"
	"github.com/danarhys/cognatus/internal/similarity"
)

// teamAnalyzeTimeout bounds team analysis requests. Teams resolve up to
// 50 genomes sequentially, so they get more headroom than a pairwise
// comparison.
const teamAnalyzeTimeout = 30 * time.Second

// SimilarityCompare handles pairwise profile comparison requests
//
// @Summary Compare two profiles
// @Description Computes the weighted similarity between two skill genomes (skills, strengths, experience, education) with a per-skill breakdown
// @Tags Similarity
// @Accept json
// @Produce json
// @Param request body models.CompareRequest true "Usernames to compare"
// @Success 200 {object} models.APIResponse "Comparison result"
// @Failure 400 {object} models.APIResponse "Invalid request body"
// @Failure 404 {object} models.APIResponse "No profile for one of the usernames"
// @Router /similarity/compare [post]
func (h *Handler) SimilarityCompare(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req models.CompareRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	start := time.Now()
	profileA := h.resolveProfile(ctx, w, req.UsernameA)
	if profileA == nil {
		return
	}
	profileB := h.resolveProfile(ctx, w, req.UsernameB)
	if profileB == nil {
		return
	}

	result := similarity.Compare(profileA, profileB)
	elapsed := time.Since(start)

	h.recordComparison(ctx, &history.Comparison{
		Kind:            history.KindSimilarity,
		UsernameA:       req.UsernameA,
		UsernameB:       req.UsernameB,
		OverallScore:    result.OverallScore,
		SkillsScore:     result.SkillsScore,
		StrengthsScore:  result.StrengthsScore,
		ExperienceScore: result.ExperienceScore,
		EducationScore:  result.EducationScore,
		CommonSkills:    len(result.Details.CommonSkills),
		DurationMS:      elapsed.Milliseconds(),
	}, result)
	h.publishComparison(ctx, req.UsernameA, req.UsernameB, result.OverallScore, elapsed)

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"username_a": req.UsernameA,
			"username_b": req.UsernameB,
			"similarity": result,
		},
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: elapsed.Milliseconds(),
		},
	})
}

// SimilarityComplementarity handles complementarity analysis requests
//
// @Summary Score how two profiles complement each other
// @Description Finds unique high-proficiency skills and large proficiency imbalances between two genomes and aggregates them into a complementarity score
// @Tags Similarity
// @Accept json
// @Produce json
// @Param request body models.CompareRequest true "Usernames to analyze"
// @Success 200 {object} models.APIResponse "Complementarity result"
// @Failure 400 {object} models.APIResponse "Invalid request body"
// @Failure 404 {object} models.APIResponse "No profile for one of the usernames"
// @Router /similarity/complementarity [post]
func (h *Handler) SimilarityComplementarity(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req models.CompareRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	start := time.Now()
	profileA := h.resolveProfile(ctx, w, req.UsernameA)
	if profileA == nil {
		return
	}
	profileB := h.resolveProfile(ctx, w, req.UsernameB)
	if profileB == nil {
		return
	}

	result := similarity.Complementarity(profileA, profileB)
	elapsed := time.Since(start)

	// Component score columns stay zero for complementarity rows; only
	// the aggregate score and the full document are meaningful.
	h.recordComparison(ctx, &history.Comparison{
		Kind:         history.KindComplementarity,
		UsernameA:    req.UsernameA,
		UsernameB:    req.UsernameB,
		OverallScore: result.Score,
		CommonSkills: result.TotalPairs,
		DurationMS:   elapsed.Milliseconds(),
	}, result)
	h.publishComparison(ctx, req.UsernameA, req.UsernameB, result.Score, elapsed)

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"username_a":      req.UsernameA,
			"username_b":      req.UsernameB,
			"complementarity": result,
		},
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: elapsed.Milliseconds(),
		},
	})
}

// TeamAnalyze handles team skill coverage requests
//
// @Summary Analyze skill coverage across a team
// @Description Resolves every member's genome and reports unique skills, coverage buckets, and hiring recommendations for the group
// @Tags Similarity
// @Accept json
// @Produce json
// @Param request body models.TeamAnalyzeRequest true "Team member usernames (2-50)"
// @Success 200 {object} models.APIResponse "Team analysis result"
// @Failure 400 {object} models.APIResponse "Invalid request body"
// @Failure 404 {object} models.APIResponse "No profile for one of the members"
// @Router /team/analyze [post]
func (h *Handler) TeamAnalyze(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req models.TeamAnalyzeRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), teamAnalyzeTimeout)
	defer cancel()

	start := time.Now()
	members, ok := h.resolveTeam(ctx, w, req.Usernames)
	if !ok {
		return
	}

	result := similarity.AnalyzeTeam(members)
	elapsed := time.Since(start)

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"usernames": req.Usernames,
			"analysis":  result,
		},
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: elapsed.Milliseconds(),
		},
	})
}

// resolveTeam loads every member's genome in request order. The first
// unresolvable member aborts the request with a 404 naming it; partial
// teams would silently skew the coverage buckets.
func (h *Handler) resolveTeam(ctx context.Context, w http.ResponseWriter, usernames []string) ([]*genome.Profile, bool) {
	members := make([]*genome.Profile, 0, len(usernames))
	for _, username := range usernames {
		profile := h.resolveProfile(ctx, w, username)
		if profile == nil {
			return nil, false
		}
		members = append(members, profile)
	}
	return members, true
}

// recordComparison persists a comparison row with the full engine
// output attached. History failures are logged, never surfaced; a
// successful comparison response does not depend on the store.
func (h *Handler) recordComparison(ctx context.Context, row *history.Comparison, result interface{}) {
	if h.history == nil {
		return
	}

	raw, err := json.Marshal(result)
	if err == nil {
		row.Result = raw
	}

	if err := h.history.RecordComparison(ctx, row); err != nil {
		logging.Warn().
			Err(err).
			Str("kind", row.Kind).
			Str("username_a", sanitizeLogValue(row.UsernameA)).
			Str("username_b", sanitizeLogValue(row.UsernameB)).
			Msg("Failed to record comparison history")
	}
}

// publishComparison emits a comparison.completed event. Best effort:
// a full or closed bus drops the event with a log line.
func (h *Handler) publishComparison(ctx context.Context, usernameA, usernameB string, overall float64, elapsed time.Duration) {
	if h.bus == nil {
		return
	}

	ev := events.NewComparisonCompleted(usernameA, usernameB, overall, elapsed)
	if err := h.bus.Publish(ctx, ev); err != nil {
		logging.Debug().Err(err).Msg("Failed to publish comparison event")
	}
}
