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

	"github.com/danarhys/cognatus/internal/history"
	"github.com/danarhys/cognatus/internal/logging"
	"github.com/danarhys/cognatus/internal/models"
	"github.com/danarhys/cognatus/internal/recommend"
)

// RecommendSimilar handles similar-profile discovery requests
//
// @Summary Find profiles similar to a target
// @Description Runs the discovery pipeline: derives search queries from the target genome, fans out to the directory, scores candidates, and returns the ranked matches
// @Tags Recommendations
// @Accept json
// @Produce json
// @Param request body models.SimilarRequest true "Discovery options"
// @Success 200 {object} models.APIResponse "Ranked recommendations"
// @Failure 400 {object} models.APIResponse "Invalid request body"
// @Failure 404 {object} models.APIResponse "No profile for the target username"
// @Failure 500 {object} models.APIResponse "Discovery run failed"
// @Router /recommendations/similar [post]
func (h *Handler) RecommendSimilar(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	if h.pipeline == nil {
		respondError(w, http.StatusServiceUnavailable, "SERVICE_ERROR", "Discovery pipeline not available", nil)
		return
	}

	var req models.SimilarRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	resolveCtx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	target := h.resolveProfile(resolveCtx, w, req.Username)
	cancel()
	if target == nil {
		return
	}

	opts := recommend.Options{
		ExtraSearchQueries: req.ExtraQueries,
		ExcludeUsernames:   req.ExcludeUsernames,
	}
	if req.Limit != nil {
		opts.Limit = *req.Limit
	}
	if req.MinScore != nil {
		opts.MinSimilarityScore = *req.MinScore
	}

	// The pipeline applies its own run timeout, so the request context
	// passes through untrimmed.
	start := time.Now()
	out := h.pipeline.FindSimilar(r.Context(), target, opts)
	elapsed := time.Since(start)

	h.recordRun(r.Context(), &req, out, elapsed)

	if !out.Success {
		msg := out.Error
		if msg == "" {
			msg = "Discovery run failed"
		}
		respondError(w, http.StatusInternalServerError, "DISCOVERY_ERROR", msg, nil)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   out,
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: elapsed.Milliseconds(),
		},
	})
}

// recordRun persists a discovery run row with a compact result
// summary. Failed runs are recorded too; the history trail is most
// useful when it includes the faults.
func (h *Handler) recordRun(ctx context.Context, req *models.SimilarRequest, out recommend.Outcome, elapsed time.Duration) {
	if h.history == nil {
		return
	}

	limit := recommend.DefaultLimit
	if req.Limit != nil {
		limit = *req.Limit
	}
	minScore := recommend.DefaultMinScore
	if req.MinScore != nil {
		minScore = *req.MinScore
	}

	summary := make([]history.RunResult, 0, len(out.Data))
	for _, rec := range out.Data {
		if rec.Candidate == nil {
			continue
		}
		summary = append(summary, history.RunResult{
			Username:     rec.Candidate.Username,
			OverallScore: rec.Similarity.OverallScore,
		})
	}

	row := &history.Run{
		ID:              out.RunID,
		TargetUsername:  out.TargetUsername,
		Success:         out.Success,
		Error:           out.Error,
		QueriesUsed:     out.SearchQueriesUsed,
		TotalCandidates: out.TotalCandidates,
		ResultCount:     len(out.Data),
		RequestedLimit:  limit,
		MinScore:        minScore,
		DurationMS:      elapsed.Milliseconds(),
	}
	if raw, err := json.Marshal(summary); err == nil {
		row.Results = raw
	}

	if err := h.history.RecordRun(ctx, row); err != nil {
		logging.Warn().
			Err(err).
			Str("run_id", out.RunID).
			Str("target", sanitizeLogValue(out.TargetUsername)).
			Msg("Failed to record discovery run history")
	}
}
