// Cognatus - Talent Discovery Analytics and Profile Similarity Engine
// Copyright 2026 Dana R. (danarhys)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/danarhys/cognatus

package api

import (
	"net/http"
	"time"

	"github.com/danarhys/cognatus/internal/logging"
	"github.com/danarhys/cognatus/internal/models"
)

// CacheStats handles genome cache statistics requests
//
// @Summary Genome cache statistics
// @Description Returns hit/miss counters, entry count, hit rate, and the configured TTL of the genome cache
// @Tags Cache
// @Accept json
// @Produce json
// @Success 200 {object} models.APIResponse "Cache statistics"
// @Failure 503 {object} models.APIResponse "Cache not available"
// @Router /cache/stats [get]
func (h *Handler) CacheStats(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	if h.genomes == nil {
		respondError(w, http.StatusServiceUnavailable, "SERVICE_ERROR", "Genome cache not available", nil)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   h.genomes.Stats(),
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// CacheClear handles genome cache invalidation requests
//
// @Summary Clear the genome cache
// @Description Drops every cached genome; subsequent requests fetch fresh profiles from the directory
// @Tags Cache
// @Accept json
// @Produce json
// @Success 200 {object} models.APIResponse "Cache cleared"
// @Failure 503 {object} models.APIResponse "Cache not available"
// @Router /cache [delete]
func (h *Handler) CacheClear(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodDelete) {
		return
	}

	if h.genomes == nil {
		respondError(w, http.StatusServiceUnavailable, "SERVICE_ERROR", "Genome cache not available", nil)
		return
	}

	removed := h.genomes.Clear()
	logging.Info().Int("entries_removed", removed).Msg("Genome cache cleared via API")

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"cleared":         true,
			"entries_removed": removed,
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}
