// Cognatus - Talent Discovery Analytics and Profile Similarity Engine
// Copyright 2026 Dana R. (danarhys)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/danarhys/cognatus

package models

// HealthStatus represents the health check response
type HealthStatus struct {
	Status             string  `json:"status"`
	Version            string  `json:"version"`
	DirectoryConnected bool    `json:"directory_connected"`
	HistoryConnected   bool    `json:"history_connected"`
	CacheEntries       int     `json:"cache_entries"`
	Uptime             float64 `json:"uptime_seconds"`
}

// ReadinessStatus breaks out the dependency checks behind /health/ready.
// Ready is true only when every required dependency answers.
type ReadinessStatus struct {
	DirectoryConnected bool    `json:"directory_connected"`
	HistoryConnected   bool    `json:"history_connected"`
	ReadyToServe       bool    `json:"ready_to_serve"`
	Uptime             float64 `json:"uptime_seconds"`
}
