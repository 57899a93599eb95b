// Cognatus - Talent Discovery Analytics and Profile Similarity Engine
// Copyright 2026 Dana R. (danarhys)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/danarhys/cognatus

package recommend

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/danarhys/cognatus/internal/config"
	"github.com/danarhys/cognatus/internal/events"
	"github.com/danarhys/cognatus/internal/genome"
)

type fakeSearcher struct {
	mu      sync.Mutex
	calls   atomic.Int64
	results map[string][]genome.Candidate
	errs    map[string]error
	delays  map[string]time.Duration
	limits  []int
}

func (f *fakeSearcher) Search(ctx context.Context, query string, limit int) ([]genome.Candidate, error) {
	f.calls.Add(1)
	f.mu.Lock()
	f.limits = append(f.limits, limit)
	f.mu.Unlock()

	if d := f.delays[query]; d > 0 {
		time.Sleep(d)
	}
	if err := f.errs[query]; err != nil {
		return nil, err
	}
	return f.results[query], nil
}

func (f *fakeSearcher) recordedLimits() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]int, len(f.limits))
	copy(out, f.limits)
	return out
}

type fakeGenomes struct {
	mu       sync.Mutex
	calls    atomic.Int64
	profiles map[string]*genome.Profile
	panicOn  string
	fetched  []string
}

func (f *fakeGenomes) Get(ctx context.Context, username string) *genome.Profile {
	f.calls.Add(1)
	f.mu.Lock()
	f.fetched = append(f.fetched, username)
	f.mu.Unlock()

	if f.panicOn != "" && username == f.panicOn {
		panic("genome store corrupted")
	}
	return f.profiles[username]
}

func (f *fakeGenomes) fetchCount(username string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, u := range f.fetched {
		if u == username {
			n++
		}
	}
	return n
}

type fakePublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (f *fakePublisher) Publish(ctx context.Context, ev events.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, ev)
	return nil
}

func (f *fakePublisher) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.events)
}

func (f *fakePublisher) skipsFor(reason string) []*events.CandidateSkipped {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*events.CandidateSkipped
	for _, ev := range f.events {
		if skip, ok := ev.(*events.CandidateSkipped); ok && skip.Reason == reason {
			out = append(out, skip)
		}
	}
	return out
}

func (f *fakePublisher) queryFailures() []*events.QueryFailed {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*events.QueryFailed
	for _, ev := range f.events {
		if qf, ok := ev.(*events.QueryFailed); ok {
			out = append(out, qf)
		}
	}
	return out
}

func (f *fakePublisher) runCompleted(t *testing.T) *events.RunCompleted {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ev := range f.events {
		if rc, ok := ev.(*events.RunCompleted); ok {
			return rc
		}
	}
	t.Fatal("no run-completed event published")
	return nil
}

func testPipelineConfig() config.RecommendConfig {
	return config.RecommendConfig{
		DefaultLimit:       10,
		MaxLimit:           50,
		MinScore:           0.3,
		MaxQueries:         8,
		CandidatesPerQuery: 25,
		BatchSize:          8,
		EarlyExitCount:     30,
		PrefilterMargin:    0.1,
	}
}

func profileWithSkills(username string, names ...string) *genome.Profile {
	p := &genome.Profile{Username: username, Name: username}
	for i, name := range names {
		prof := 1.0 - 0.05*float64(i)
		p.Skills = append(p.Skills, genome.SkillItem{Name: name, Proficiency: &prof})
	}
	return p
}

func candidateStub(username string) genome.Candidate {
	return genome.Candidate{Username: username, Name: username}
}

func dataUsernames(out Outcome) []string {
	names := make([]string, 0, len(out.Data))
	for _, rec := range out.Data {
		names = append(names, rec.Candidate.Username)
	}
	return names
}

func TestPipeline_FindSimilar(t *testing.T) {
	target := profileWithSkills("alice", "Go", "Rust", "Python")
	target.ProfessionalHeadline = "Go Developer"

	searcher := &fakeSearcher{results: map[string][]genome.Candidate{
		"developer": {candidateStub("bob"), candidateStub("carol"), candidateStub("eve")},
		"go":        {candidateStub("bob"), candidateStub("dave")},
	}}
	genomes := &fakeGenomes{profiles: map[string]*genome.Profile{
		"alice": target,
		"bob":   profileWithSkills("bob", "Go", "Rust", "Python"),
		"carol": profileWithSkills("carol", "Knitting", "Pottery", "Baking"),
		"dave":  profileWithSkills("dave", "Go", "Rust", "Python"),
		// eve has no genome on purpose.
	}}
	publisher := &fakePublisher{}

	p := New(searcher, genomes, publisher, testPipelineConfig())
	out := p.FindSimilar(context.Background(), target, Options{})

	if !out.Success {
		t.Fatalf("Success = false, error %q", out.Error)
	}
	if out.TargetUsername != "alice" {
		t.Errorf("TargetUsername = %q, want alice", out.TargetUsername)
	}
	// Headline keyword, three skills, and the two developer bundle
	// queries; "go" from the headline is too short to tokenize but
	// arrives via the skill list.
	if out.SearchQueriesUsed != 6 {
		t.Errorf("SearchQueriesUsed = %d, want 6", out.SearchQueriesUsed)
	}
	if got := searcher.calls.Load(); got != 6 {
		t.Errorf("search calls = %d, want 6", got)
	}
	if out.TotalCandidates != 4 {
		t.Errorf("TotalCandidates = %d, want 4 (bob deduplicated)", out.TotalCandidates)
	}

	if got := dataUsernames(out); !reflect.DeepEqual(got, []string{"bob", "dave"}) {
		t.Fatalf("kept candidates = %v, want [bob dave]", got)
	}
	if out.Data[0].Candidate != genomes.profiles["bob"] {
		t.Error("recommendation should carry the full fetched profile")
	}
	for _, rec := range out.Data {
		if rec.Similarity.OverallScore < 0.3 {
			t.Errorf("%s kept below the score floor: %v", rec.Candidate.Username, rec.Similarity.OverallScore)
		}
		if len(rec.Justifications) == 0 {
			t.Errorf("%s has no justifications", rec.Candidate.Username)
		}
	}

	if skips := publisher.skipsFor(events.SkipReasonPrefiltered); len(skips) != 1 || skips[0].Username != "carol" {
		t.Errorf("prefiltered skips = %v, want carol only", skips)
	}
	if skips := publisher.skipsFor(events.SkipReasonGenomeUnavailable); len(skips) != 1 || skips[0].Username != "eve" {
		t.Errorf("genome-unavailable skips = %v, want eve only", skips)
	}

	rc := publisher.runCompleted(t)
	if rc.RunID == "" {
		t.Error("run-completed event has no run ID")
	}
	if rc.TargetUsername != "alice" || !rc.Success {
		t.Errorf("run-completed = %+v, want alice success", rc)
	}
	if rc.QueriesUsed != out.SearchQueriesUsed || rc.CandidatesEvaluated != out.TotalCandidates || rc.ResultCount != len(out.Data) {
		t.Errorf("run-completed counters = %+v, want to mirror the outcome", rc)
	}
}

func TestPipeline_TargetGenomeFallback(t *testing.T) {
	// The genome source knows nothing about alice, so the thin profile
	// the caller passed must drive query building.
	target := profileWithSkills("alice", "Go", "Rust", "Python")

	searcher := &fakeSearcher{results: map[string][]genome.Candidate{
		"go": {candidateStub("bob")},
	}}
	genomes := &fakeGenomes{profiles: map[string]*genome.Profile{
		"bob": profileWithSkills("bob", "Go", "Rust", "Python"),
	}}

	p := New(searcher, genomes, &fakePublisher{}, testPipelineConfig())
	out := p.FindSimilar(context.Background(), target, Options{})

	if !out.Success {
		t.Fatalf("Success = false, error %q", out.Error)
	}
	if genomes.fetchCount("alice") != 1 {
		t.Error("target genome resolution was not attempted")
	}
	if got := dataUsernames(out); !reflect.DeepEqual(got, []string{"bob"}) {
		t.Errorf("kept candidates = %v, want [bob]", got)
	}
}

func TestPipeline_RejectsMissingTarget(t *testing.T) {
	tests := []struct {
		name   string
		target *genome.Profile
	}{
		{name: "nil target", target: nil},
		{name: "blank username", target: &genome.Profile{Username: "   "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			searcher := &fakeSearcher{}
			publisher := &fakePublisher{}
			p := New(searcher, &fakeGenomes{}, publisher, testPipelineConfig())

			out := p.FindSimilar(context.Background(), tt.target, Options{})

			if out.Success {
				t.Error("Success = true, want false")
			}
			if out.Error == "" {
				t.Error("Error is empty, want a message")
			}
			if out.Data == nil || len(out.Data) != 0 {
				t.Errorf("Data = %v, want empty non-nil slice", out.Data)
			}
			if searcher.calls.Load() != 0 {
				t.Error("search should not run without a target")
			}
			if publisher.count() != 0 {
				t.Errorf("published %d events, want none without a target", publisher.count())
			}
		})
	}
}

func TestPipeline_QueryFailureSwallowed(t *testing.T) {
	// A target with no skills also proves the overlap screen is
	// bypassed: bob reaches full scoring and is rejected on score, not
	// prefiltered away.
	target := &genome.Profile{Username: "alice"}

	searcher := &fakeSearcher{
		results: map[string][]genome.Candidate{
			"kubernetes": {candidateStub("bob")},
		},
		errs: map[string]error{
			"terraform": errors.New("directory down"),
		},
	}
	genomes := &fakeGenomes{profiles: map[string]*genome.Profile{
		"alice": target,
		"bob":   profileWithSkills("bob", "Go", "Rust", "Python"),
	}}
	publisher := &fakePublisher{}

	p := New(searcher, genomes, publisher, testPipelineConfig())
	out := p.FindSimilar(context.Background(), target, Options{
		ExtraSearchQueries: []string{"kubernetes", "terraform"},
	})

	if !out.Success {
		t.Fatalf("Success = false, error %q; one failed query must not sink the run", out.Error)
	}
	if out.SearchQueriesUsed != 2 {
		t.Errorf("SearchQueriesUsed = %d, want 2", out.SearchQueriesUsed)
	}
	if out.TotalCandidates != 1 {
		t.Errorf("TotalCandidates = %d, want 1", out.TotalCandidates)
	}
	if len(out.Data) != 0 {
		t.Errorf("Data = %v, want empty", dataUsernames(out))
	}

	failures := publisher.queryFailures()
	if len(failures) != 1 || failures[0].Query != "terraform" {
		t.Fatalf("query failures = %v, want terraform only", failures)
	}
	if failures[0].Error != "directory down" {
		t.Errorf("failure error = %q, want directory down", failures[0].Error)
	}

	if skips := publisher.skipsFor(events.SkipReasonBelowMinScore); len(skips) != 1 || skips[0].Username != "bob" {
		t.Errorf("below-min skips = %v, want bob", skips)
	}
	if skips := publisher.skipsFor(events.SkipReasonPrefiltered); len(skips) != 0 {
		t.Errorf("prefiltered skips = %v, want none for a skill-less target", skips)
	}
}

func TestPipeline_ExcludesTargetAndCallerUsernames(t *testing.T) {
	target := profileWithSkills("alice", "Go", "Rust", "Python")

	searcher := &fakeSearcher{results: map[string][]genome.Candidate{
		"go": {candidateStub("alice"), candidateStub("bob"), candidateStub("carol")},
	}}
	genomes := &fakeGenomes{profiles: map[string]*genome.Profile{
		"alice": target,
		"bob":   profileWithSkills("bob", "Go", "Rust", "Python"),
		"carol": profileWithSkills("carol", "Go", "Rust", "Python"),
	}}

	p := New(searcher, genomes, &fakePublisher{}, testPipelineConfig())
	out := p.FindSimilar(context.Background(), target, Options{
		ExcludeUsernames: []string{" CAROL "},
	})

	if !out.Success {
		t.Fatalf("Success = false, error %q", out.Error)
	}
	if out.TotalCandidates != 1 {
		t.Errorf("TotalCandidates = %d, want 1 after exclusions", out.TotalCandidates)
	}
	if got := dataUsernames(out); !reflect.DeepEqual(got, []string{"bob"}) {
		t.Errorf("kept candidates = %v, want [bob]", got)
	}
	if genomes.fetchCount("alice") != 1 {
		t.Errorf("alice fetched %d times, want once for target resolution only", genomes.fetchCount("alice"))
	}
	if genomes.fetchCount("carol") != 0 {
		t.Error("excluded candidate genome should never be fetched")
	}
}

func TestPipeline_RanksAndTruncates(t *testing.T) {
	target := profileWithSkills("alice", "Go", "Rust", "Python", "Java")

	searcher := &fakeSearcher{results: map[string][]genome.Candidate{
		"go": {
			candidateStub("cand-c"), candidateStub("cand-a"), candidateStub("cand-d"),
			candidateStub("cand-b"), candidateStub("cand-e"),
		},
	}}
	genomes := &fakeGenomes{profiles: map[string]*genome.Profile{
		"alice":  target,
		"cand-a": profileWithSkills("cand-a", "Go", "Rust", "Python", "Java"),
		"cand-b": profileWithSkills("cand-b", "Go", "Rust", "Python", "Scala"),
		"cand-c": profileWithSkills("cand-c", "Go", "Rust", "Scala", "Kotlin"),
		"cand-d": profileWithSkills("cand-d", "Go", "Rust"),
		"cand-e": profileWithSkills("cand-e", "Go", "Rust", "Python"),
	}}

	p := New(searcher, genomes, &fakePublisher{}, testPipelineConfig())

	full := p.FindSimilar(context.Background(), target, Options{})
	if !full.Success {
		t.Fatalf("Success = false, error %q", full.Error)
	}
	// Overlap orders them a > e > b > d > c regardless of discovery order.
	wantOrder := []string{"cand-a", "cand-e", "cand-b", "cand-d", "cand-c"}
	if got := dataUsernames(full); !reflect.DeepEqual(got, wantOrder) {
		t.Fatalf("ranking = %v, want %v", got, wantOrder)
	}
	for i := 1; i < len(full.Data); i++ {
		if full.Data[i].Similarity.OverallScore > full.Data[i-1].Similarity.OverallScore {
			t.Fatalf("scores not descending at %d: %v then %v", i,
				full.Data[i-1].Similarity.OverallScore, full.Data[i].Similarity.OverallScore)
		}
	}

	truncated := p.FindSimilar(context.Background(), target, Options{Limit: 2})
	if got := dataUsernames(truncated); !reflect.DeepEqual(got, wantOrder[:2]) {
		t.Errorf("truncated ranking = %v, want %v", got, wantOrder[:2])
	}
	if truncated.TotalCandidates != 5 {
		t.Errorf("TotalCandidates = %d, want 5 regardless of limit", truncated.TotalCandidates)
	}
}

func TestPipeline_EarlyExit(t *testing.T) {
	target := profileWithSkills("alice", "Go", "Rust", "Python")

	stubs := make([]genome.Candidate, 0, 10)
	genomes := &fakeGenomes{profiles: map[string]*genome.Profile{"alice": target}}
	for i := 1; i <= 10; i++ {
		name := fmt.Sprintf("cand%02d", i)
		stubs = append(stubs, candidateStub(name))
		genomes.profiles[name] = profileWithSkills(name, "Go", "Rust", "Python")
	}
	searcher := &fakeSearcher{results: map[string][]genome.Candidate{"go": stubs}}

	cfg := testPipelineConfig()
	cfg.BatchSize = 2
	cfg.EarlyExitCount = 2

	p := New(searcher, genomes, &fakePublisher{}, cfg)
	out := p.FindSimilar(context.Background(), target, Options{})

	if !out.Success {
		t.Fatalf("Success = false, error %q", out.Error)
	}
	if out.TotalCandidates != 10 {
		t.Errorf("TotalCandidates = %d, want 10", out.TotalCandidates)
	}
	if len(out.Data) != 2 {
		t.Errorf("len(Data) = %d, want 2", len(out.Data))
	}
	// One fetch resolves the target; the first batch fetches two
	// candidates; the remaining eight are never touched.
	if got := genomes.calls.Load(); got != 3 {
		t.Errorf("genome fetches = %d, want 3 after early exit", got)
	}
}

func TestPipeline_ContextCanceled(t *testing.T) {
	target := profileWithSkills("alice", "Go", "Rust", "Python")

	searcher := &fakeSearcher{results: map[string][]genome.Candidate{
		"go": {candidateStub("bob")},
	}}
	genomes := &fakeGenomes{profiles: map[string]*genome.Profile{
		"alice": target,
		"bob":   profileWithSkills("bob", "Go", "Rust", "Python"),
	}}
	publisher := &fakePublisher{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := New(searcher, genomes, publisher, testPipelineConfig())
	out := p.FindSimilar(ctx, target, Options{})

	if out.Success {
		t.Error("Success = true, want false for a canceled run")
	}
	if !strings.Contains(out.Error, "discovery canceled") {
		t.Errorf("Error = %q, want a cancellation message", out.Error)
	}
	if len(out.Data) != 0 {
		t.Errorf("Data = %v, want empty", dataUsernames(out))
	}
	if rc := publisher.runCompleted(t); rc.Success {
		t.Error("run-completed event reports success for a canceled run")
	}
}

func TestPipeline_TargetResolvePanicContained(t *testing.T) {
	target := profileWithSkills("alice", "Go")

	searcher := &fakeSearcher{}
	genomes := &fakeGenomes{panicOn: "alice"}

	p := New(searcher, genomes, &fakePublisher{}, testPipelineConfig())
	out := p.FindSimilar(context.Background(), target, Options{})

	if out.Success {
		t.Error("Success = true, want false after a panic")
	}
	if !strings.Contains(out.Error, "discovery failed") {
		t.Errorf("Error = %q, want a contained panic message", out.Error)
	}
	if out.Data == nil || len(out.Data) != 0 {
		t.Errorf("Data = %v, want empty non-nil slice", out.Data)
	}
	if searcher.calls.Load() != 0 {
		t.Error("search ran after the target resolve panicked")
	}
}

func TestPipeline_CandidatePanicIsolated(t *testing.T) {
	target := profileWithSkills("alice", "Go", "Rust", "Python")

	searcher := &fakeSearcher{results: map[string][]genome.Candidate{
		"go": {candidateStub("bob"), candidateStub("carol")},
	}}
	genomes := &fakeGenomes{
		profiles: map[string]*genome.Profile{
			"alice": target,
			"carol": profileWithSkills("carol", "Go", "Rust", "Python"),
		},
		panicOn: "bob",
	}

	p := New(searcher, genomes, &fakePublisher{}, testPipelineConfig())
	out := p.FindSimilar(context.Background(), target, Options{})

	if !out.Success {
		t.Fatalf("Success = false, error %q; one bad candidate must not sink the run", out.Error)
	}
	if got := dataUsernames(out); !reflect.DeepEqual(got, []string{"carol"}) {
		t.Errorf("kept candidates = %v, want [carol]", got)
	}
}

func TestPipeline_NoQueries(t *testing.T) {
	target := &genome.Profile{Username: "ghost"}

	searcher := &fakeSearcher{}
	genomes := &fakeGenomes{profiles: map[string]*genome.Profile{"ghost": target}}
	publisher := &fakePublisher{}

	p := New(searcher, genomes, publisher, testPipelineConfig())
	out := p.FindSimilar(context.Background(), target, Options{})

	if !out.Success {
		t.Fatalf("Success = false, error %q; an unsearchable profile is not a fault", out.Error)
	}
	if out.SearchQueriesUsed != 0 || out.TotalCandidates != 0 || len(out.Data) != 0 {
		t.Errorf("outcome = %+v, want an empty successful run", out)
	}
	if searcher.calls.Load() != 0 {
		t.Error("search ran with no queries to issue")
	}
	if rc := publisher.runCompleted(t); !rc.Success || rc.ResultCount != 0 {
		t.Errorf("run-completed = %+v, want empty success", rc)
	}
}

func TestPipeline_DeterministicMergeOrder(t *testing.T) {
	target := profileWithSkills("alice", "Go", "Rust")

	// The first query is slowed so it finishes last; merge order must
	// still follow query order, not completion order.
	searcher := &fakeSearcher{
		results: map[string][]genome.Candidate{
			"go":   {candidateStub("bob"), candidateStub("carol")},
			"rust": {candidateStub("carol"), candidateStub("dave")},
		},
		delays: map[string]time.Duration{"go": 30 * time.Millisecond},
	}
	genomes := &fakeGenomes{profiles: map[string]*genome.Profile{
		"alice": target,
		"bob":   profileWithSkills("bob", "Go", "Rust"),
		"carol": profileWithSkills("carol", "Go", "Rust"),
		"dave":  profileWithSkills("dave", "Go", "Rust"),
	}}

	p := New(searcher, genomes, &fakePublisher{}, testPipelineConfig())
	out := p.FindSimilar(context.Background(), target, Options{})

	if !out.Success {
		t.Fatalf("Success = false, error %q", out.Error)
	}
	// Equal scores, so the stable sort preserves discovery order.
	if got := dataUsernames(out); !reflect.DeepEqual(got, []string{"bob", "carol", "dave"}) {
		t.Errorf("merge order = %v, want [bob carol dave]", got)
	}
}

func TestPipeline_SearchLimitFromConfig(t *testing.T) {
	target := profileWithSkills("alice", "Go")

	searcher := &fakeSearcher{}
	genomes := &fakeGenomes{profiles: map[string]*genome.Profile{"alice": target}}

	cfg := testPipelineConfig()
	cfg.CandidatesPerQuery = 7

	p := New(searcher, genomes, &fakePublisher{}, cfg)
	p.FindSimilar(context.Background(), target, Options{})

	limits := searcher.recordedLimits()
	if len(limits) != 1 || limits[0] != 7 {
		t.Errorf("search limits = %v, want [7]", limits)
	}
}
