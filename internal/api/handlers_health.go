// Cognatus - Talent Discovery Analytics and Profile Similarity Engine
// Copyright 2026 Dana R. (danarhys)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/danarhys/cognatus

package api

import (
	"net/http"
	"time"

	"github.com/danarhys/cognatus/internal/models"
)

// Health handles health check requests
//
// @Summary Get system health status
// @Description Returns comprehensive health status including directory connectivity, history store connectivity, cache occupancy, and uptime
// @Tags Core
// @Accept json
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.HealthStatus} "Health status retrieved successfully"
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	// Check directory connectivity (nil means not configured)
	directoryConnected := h.directory != nil && h.directory.Ping(r.Context()) == nil

	// Check history store connectivity (nil means not configured)
	historyConnected := h.history != nil && h.history.Ping(r.Context()) == nil

	status := "healthy"
	if !directoryConnected || !historyConnected {
		status = "degraded"
	}

	cacheEntries := 0
	if h.genomes != nil {
		cacheEntries = h.genomes.Stats().Entries
	}

	health := models.HealthStatus{
		Status:             status,
		Version:            appVersion,
		DirectoryConnected: directoryConnected,
		HistoryConnected:   historyConnected,
		CacheEntries:       cacheEntries,
		Uptime:             time.Since(h.startTime).Seconds(),
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   health,
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// HealthLive handles liveness probe requests (Kubernetes-style)
// Returns 200 OK if the process is alive, regardless of dependencies
//
// @Summary Kubernetes liveness probe
// @Description Returns 200 OK if the process is alive, regardless of external dependencies. Used for Kubernetes liveness probes.
// @Tags Core
// @Accept json
// @Produce json
// @Success 200 {object} models.APIResponse "Service is alive"
// @Router /health/live [get]
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"alive":  true,
			"uptime": time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// HealthReady handles readiness probe requests (Kubernetes-style)
// Returns 200 OK only if the service is ready to handle traffic
//
// @Summary Kubernetes readiness probe
// @Description Returns 200 OK only if the service is ready to handle traffic (directory and history store both answer). Returns 503 if not ready.
// @Tags Core
// @Accept json
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.ReadinessStatus} "Service is ready"
// @Failure 503 {object} models.APIResponse{data=models.ReadinessStatus} "Service is not ready"
// @Router /health/ready [get]
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	directoryConnected := h.directory != nil && h.directory.Ping(r.Context()) == nil
	historyConnected := h.history != nil && h.history.Ping(r.Context()) == nil
	ready := directoryConnected && historyConnected

	statusCode := http.StatusOK
	status := "ready"
	if !ready {
		statusCode = http.StatusServiceUnavailable
		status = "not_ready"
	}

	respondJSON(w, statusCode, &models.APIResponse{
		Status: status,
		Data: models.ReadinessStatus{
			DirectoryConnected: directoryConnected,
			HistoryConnected:   historyConnected,
			ReadyToServe:       ready,
			Uptime:             time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}
