// Cognatus - Talent Discovery Analytics and Profile Similarity Engine
// Copyright 2026 Dana R. (danarhys)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/danarhys/cognatus

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danarhys/cognatus/internal/history"
	"github.com/danarhys/cognatus/internal/models"
)

// historyQueryFromRequest parses and validates the shared history
// query parameters (username, since, limit).
func historyQueryFromRequest(w http.ResponseWriter, r *http.Request) (history.Filter, bool) {
	query := models.HistoryQuery{
		Username: r.URL.Query().Get("username"),
		Since:    getTimeParam(r, "since"),
		Limit:    getIntParam(r, "limit", history.DefaultQueryLimit),
	}
	if apiErr := validateRequest(&query); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return history.Filter{}, false
	}

	return history.Filter{
		Username: query.Username,
		Since:    query.Since,
		Limit:    query.Limit,
	}, true
}

// HistoryComparisons handles stored comparison queries
//
// @Summary List stored comparisons
// @Description Returns recorded similarity and complementarity comparisons, newest first, optionally filtered by username and time window
// @Tags History
// @Accept json
// @Produce json
// @Param username query string false "Match either side of the comparison"
// @Param since query string false "RFC3339 lower bound on creation time"
// @Param limit query int false "Maximum rows (1-500)" default(100)
// @Success 200 {object} models.APIResponse "Stored comparisons"
// @Failure 400 {object} models.APIResponse "Invalid query parameters"
// @Failure 503 {object} models.APIResponse "History store not available"
// @Router /history/comparisons [get]
func (h *Handler) HistoryComparisons(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	if !h.requireHistory(w) {
		return
	}

	filter, ok := historyQueryFromRequest(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	start := time.Now()
	rows, err := h.history.Comparisons(ctx, filter)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "STORAGE_ERROR", "Failed to query comparison history", err)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"count":   len(rows),
			"results": rows,
		},
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}

// HistoryRuns handles stored discovery run queries
//
// @Summary List stored discovery runs
// @Description Returns recorded discovery pipeline runs, newest first, optionally filtered by target username and time window
// @Tags History
// @Accept json
// @Produce json
// @Param username query string false "Match the run's target username"
// @Param since query string false "RFC3339 lower bound on creation time"
// @Param limit query int false "Maximum rows (1-500)" default(100)
// @Success 200 {object} models.APIResponse "Stored runs"
// @Failure 400 {object} models.APIResponse "Invalid query parameters"
// @Failure 503 {object} models.APIResponse "History store not available"
// @Router /history/runs [get]
func (h *Handler) HistoryRuns(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	if !h.requireHistory(w) {
		return
	}

	filter, ok := historyQueryFromRequest(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	start := time.Now()
	rows, err := h.history.Runs(ctx, filter)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "STORAGE_ERROR", "Failed to query run history", err)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"count":   len(rows),
			"results": rows,
		},
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}
