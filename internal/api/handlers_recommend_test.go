// Cognatus - Talent Discovery Analytics and Profile Similarity Engine
// Copyright 2026 Dana R. (danarhys)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/danarhys/cognatus

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danarhys/cognatus/internal/genome"
)

// discoveryDirectory seeds a directory where every search returns the
// same candidate pool. bob shares a skill with alice; carol shares
// nothing; dave has no resolvable genome.
func discoveryDirectory() *fakeDirectory {
	dir := newFakeDirectory()
	dir.anyResults = []genome.Candidate{
		{Username: "bob", Name: "bob"},
		{Username: "carol", Name: "carol"},
		{Username: "dave", Name: "dave"},
	}
	return dir
}

func TestRecommendSimilar_RanksMatches(t *testing.T) {
	h := newTestHandler(t, discoveryDirectory())

	rec := httptest.NewRecorder()
	h.RecommendSimilar(rec, postJSON("/api/v1/recommendations/similar",
		`{"username":"alice"}`))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\n%s", rec.Code, rec.Body.String())
	}
	data := dataMap(t, decodeBody(t, rec))
	if data["success"] != true {
		t.Fatalf("success = %v, want true (error: %v)", data["success"], data["error"])
	}
	if data["target_username"] != "alice" {
		t.Errorf("target_username = %v, want alice", data["target_username"])
	}
	if data["run_id"] == "" || data["run_id"] == nil {
		t.Error("run_id missing from outcome")
	}

	matches, ok := data["data"].([]interface{})
	if !ok {
		t.Fatalf("data is %T, want array", data["data"])
	}
	// Only bob clears the default 0.3 floor: carol shares no skills
	// with alice and dave's genome never resolves.
	if len(matches) != 1 {
		t.Fatalf("matches = %d, want 1\n%s", len(matches), rec.Body.String())
	}
	first, _ := matches[0].(map[string]interface{})
	cand, _ := first["candidate"].(map[string]interface{})
	if cand["username"] != "bob" {
		t.Errorf("top match = %v, want bob", cand["username"])
	}
	if just, _ := first["justifications"].([]interface{}); len(just) == 0 {
		t.Error("top match has no justifications")
	}
}

func TestRecommendSimilar_HonorsExclusions(t *testing.T) {
	h := newTestHandler(t, discoveryDirectory())

	rec := httptest.NewRecorder()
	h.RecommendSimilar(rec, postJSON("/api/v1/recommendations/similar",
		`{"username":"alice","exclude_usernames":["bob"]}`))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\n%s", rec.Code, rec.Body.String())
	}
	data := dataMap(t, decodeBody(t, rec))
	matches, _ := data["data"].([]interface{})
	for _, m := range matches {
		entry, _ := m.(map[string]interface{})
		cand, _ := entry["candidate"].(map[string]interface{})
		if cand["username"] == "bob" {
			t.Fatal("excluded candidate bob appeared in results")
		}
	}
}

func TestRecommendSimilar_UnknownTarget(t *testing.T) {
	h := newTestHandler(t, discoveryDirectory())

	rec := httptest.NewRecorder()
	h.RecommendSimilar(rec, postJSON("/api/v1/recommendations/similar",
		`{"username":"ghost"}`))

	wantErrorCode(t, rec, http.StatusNotFound, "NOT_FOUND")
}

func TestRecommendSimilar_LimitAboveMax(t *testing.T) {
	h := newTestHandler(t, discoveryDirectory())

	rec := httptest.NewRecorder()
	h.RecommendSimilar(rec, postJSON("/api/v1/recommendations/similar",
		`{"username":"alice","limit":100}`))

	wantErrorCode(t, rec, http.StatusBadRequest, "VALIDATION_ERROR")
}

func TestRecommendSimilar_WithoutPipeline(t *testing.T) {
	h := newTestHandler(t, discoveryDirectory())
	h.pipeline = nil

	rec := httptest.NewRecorder()
	h.RecommendSimilar(rec, postJSON("/api/v1/recommendations/similar",
		`{"username":"alice"}`))

	wantErrorCode(t, rec, http.StatusServiceUnavailable, "SERVICE_ERROR")
}
