// Cognatus - Talent Discovery Analytics and Profile Similarity Engine
// Copyright 2026 Dana R. (danarhys)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/danarhys/cognatus

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/danarhys/cognatus/internal/models"
)

// defaultSearchLimit is applied when the search request omits limit.
const defaultSearchLimit = 25

// PeopleSearch handles directory profile search requests
//
// @Summary Search people in the talent directory
// @Description Proxies a text search to the upstream directory and returns candidate profiles (username, name, headline)
// @Tags People
// @Accept json
// @Produce json
// @Param q query string true "Search query"
// @Param limit query int false "Maximum results (1-50)" default(25)
// @Success 200 {object} models.APIResponse "Search results"
// @Failure 400 {object} models.APIResponse "Invalid query parameters"
// @Failure 502 {object} models.APIResponse "Directory unavailable"
// @Router /people/search [get]
func (h *Handler) PeopleSearch(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	if h.directory == nil {
		respondError(w, http.StatusServiceUnavailable, "SERVICE_ERROR", "Directory client not available", nil)
		return
	}

	query := models.SearchQuery{
		Query: r.URL.Query().Get("q"),
		Limit: getIntParam(r, "limit", defaultSearchLimit),
	}
	if apiErr := validateRequest(&query); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	start := time.Now()
	candidates, err := h.directory.Search(ctx, query.Query, query.Limit)
	if err != nil {
		respondError(w, http.StatusBadGateway, "UPSTREAM_ERROR", "Directory search failed", err)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"query":   query.Query,
			"count":   len(candidates),
			"results": candidates,
		},
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}

// GenomeGet handles cached genome retrieval requests
//
// @Summary Get a skill genome by username
// @Description Returns the full skill genome for a username, served from the TTL cache when fresh
// @Tags People
// @Accept json
// @Produce json
// @Param username path string true "Profile username"
// @Success 200 {object} models.APIResponse "Genome retrieved successfully"
// @Failure 404 {object} models.APIResponse "No profile for username"
// @Router /genomes/{username} [get]
func (h *Handler) GenomeGet(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	username := chi.URLParam(r, "username")
	if username == "" || len(username) > 100 {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Username must be 1-100 characters", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	// Peek before the fetch so the metadata reflects where the profile
	// actually came from.
	cached := h.genomes != nil && h.genomes.Cached(username)

	start := time.Now()
	profile := h.resolveProfile(ctx, w, username)
	if profile == nil {
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   profile,
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
			Cached:      cached,
		},
	})
}
