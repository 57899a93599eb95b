// Cognatus - Talent Discovery Analytics and Profile Similarity Engine
// Copyright 2026 Dana R. (danarhys)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/danarhys/cognatus

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/danarhys/cognatus/internal/config"
	"github.com/danarhys/cognatus/internal/events"
	"github.com/danarhys/cognatus/internal/genome"
	"github.com/danarhys/cognatus/internal/logging"
	"github.com/danarhys/cognatus/internal/metrics"
	"github.com/danarhys/cognatus/internal/similarity"
)

// Searcher finds candidate stubs for one free-text query. The
// directory client satisfies this.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]genome.Candidate, error)
}

// GenomeSource resolves a username to a full profile, or nil when the
// genome is unavailable. The genome cache satisfies this; its nil
// answers already carry logging and failure events.
type GenomeSource interface {
	Get(ctx context.Context, username string) *genome.Profile
}

// EventPublisher receives pipeline telemetry. The events bus satisfies
// this; nil disables event emission.
type EventPublisher interface {
	Publish(ctx context.Context, ev events.Event) error
}

// Pipeline orchestrates a discovery run: build search queries from the
// target's profile, fan out searches, deduplicate candidates, score
// them against the target in bounded batches, and rank the survivors.
//
// Thread Safety: safe for concurrent use; each run keeps its state on
// the stack.
type Pipeline struct {
	search  Searcher
	genomes GenomeSource
	events  EventPublisher

	maxLimit        int
	maxQueries      int
	perQueryLimit   int
	batchSize       int
	earlyExitCount  int
	prefilterMargin float64
	runTimeout      time.Duration
}

// New builds a pipeline over its collaborators. Zero tuning values in
// cfg fall back to the binding defaults (8 queries, 25 results per
// query, batches of 8, early exit at 30). A zero prefilter margin is
// honored as "no tolerance"; only negative margins are rejected.
func New(search Searcher, genomes GenomeSource, publisher EventPublisher, cfg config.RecommendConfig) *Pipeline {
	p := &Pipeline{
		search:          search,
		genomes:         genomes,
		events:          publisher,
		maxLimit:        cfg.MaxLimit,
		maxQueries:      cfg.MaxQueries,
		perQueryLimit:   cfg.CandidatesPerQuery,
		batchSize:       cfg.BatchSize,
		earlyExitCount:  cfg.EarlyExitCount,
		prefilterMargin: cfg.PrefilterMargin,
		runTimeout:      cfg.RunTimeout,
	}
	if p.maxLimit <= 0 {
		p.maxLimit = MaxLimit
	}
	if p.maxQueries <= 0 {
		p.maxQueries = 8
	}
	if p.perQueryLimit <= 0 {
		p.perQueryLimit = 25
	}
	if p.batchSize <= 0 {
		p.batchSize = 8
	}
	if p.earlyExitCount <= 0 {
		p.earlyExitCount = 30
	}
	if p.prefilterMargin < 0 {
		p.prefilterMargin = 0
	}
	if p.runTimeout < 0 {
		p.runTimeout = 0
	}
	return p
}

// FindSimilar runs the full discovery pipeline for one target.
//
// The outcome is always renderable: top-level faults (nil target,
// cancellation, panic) yield Success=false with empty Data, while
// per-query and per-candidate failures are logged, published, and
// absorbed. The run is bounded by the configured timeout when one is
// set.
func (p *Pipeline) FindSimilar(ctx context.Context, target *genome.Profile, opts Options) (out Outcome) {
	start := time.Now()
	runID := uuid.New().String()
	out = Outcome{RunID: runID, Data: []Recommendation{}}

	defer func() {
		if r := recover(); r != nil {
			logging.Error().Interface("panic", r).Str("run_id", runID).Msg("Discovery run panicked")
			out.Success = false
			out.Error = fmt.Sprintf("discovery failed: %v", r)
			out.Data = []Recommendation{}
		}
		duration := time.Since(start)
		var runErr error
		if out.Error != "" {
			runErr = errors.New(out.Error)
		}
		metrics.RecordDiscoveryRun(duration, len(out.Data), runErr)
		p.publishRunCompleted(runID, out, duration)
	}()

	if target == nil || strings.TrimSpace(target.Username) == "" {
		out.Error = "discovery requires a target profile with a username"
		return out
	}
	out.TargetUsername = target.Username

	if p.runTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.runTimeout)
		defer cancel()
	}

	opts = opts.normalized(p.maxLimit)

	// Resolve the target's full genome, falling back to the thin
	// profile the caller passed when the fetch fails.
	full := p.genomes.Get(ctx, target.Username)
	if full == nil {
		full = target
	}

	targetSkills := genome.ExtractSkills(full)
	targetStrengths := genome.ExtractStrengths(full)
	queries := buildQueries(full, targetSkills, targetStrengths, opts.ExtraSearchQueries, p.maxQueries)
	out.SearchQueriesUsed = len(queries)

	logging.Debug().
		Str("run_id", runID).
		Str("target", target.Username).
		Strs("queries", queries).
		Msg("Discovery queries built")

	perQuery := p.fanOutSearches(ctx, runID, queries)

	candidates := dedupCandidates(perQuery, full.Username, opts.ExcludeUsernames)
	out.TotalCandidates = len(candidates)

	kept, err := p.scoreCandidates(ctx, runID, full, candidates, opts.MinSimilarityScore)
	if err != nil {
		out.Error = err.Error()
		out.Data = []Recommendation{}
		return out
	}

	// Rank by overall score; the stable sort keeps discovery order on
	// equal scores.
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Similarity.OverallScore > kept[j].Similarity.OverallScore
	})
	if len(kept) > opts.Limit {
		kept = kept[:opts.Limit]
	}

	out.Data = kept
	out.Success = true

	logging.Info().
		Str("run_id", runID).
		Str("target", target.Username).
		Int("queries", out.SearchQueriesUsed).
		Int("candidates", out.TotalCandidates).
		Int("results", len(out.Data)).
		Dur("duration", time.Since(start)).
		Msg("Discovery run completed")
	return out
}

// fanOutSearches runs every query concurrently and returns the raw
// result sets indexed by query position, so the merge downstream is
// deterministic regardless of completion order. Failed queries leave a
// nil slot and never abort the run.
func (p *Pipeline) fanOutSearches(ctx context.Context, runID string, queries []string) [][]genome.Candidate {
	perQuery := make([][]genome.Candidate, len(queries))
	var wg sync.WaitGroup

	for i, query := range queries {
		wg.Add(1)
		go func(idx int, query string) {
			defer wg.Done()
			results, err := p.search.Search(ctx, query, p.perQueryLimit)
			metrics.RecordDiscoveryQuery(err)
			if err != nil {
				logging.Warn().Err(err).Str("run_id", runID).Str("query", query).Msg("Search query failed")
				p.publish(ctx, events.NewQueryFailed(runID, query, err))
				return
			}
			perQuery[idx] = results
		}(i, query)
	}

	wg.Wait()
	return perQuery
}

// dedupCandidates merges per-query results in query order, keeping the
// first occurrence of each username and dropping the target plus any
// caller-excluded usernames. Username matching is case-insensitive.
func dedupCandidates(perQuery [][]genome.Candidate, targetUsername string, exclude []string) []genome.Candidate {
	skip := make(map[string]bool, len(exclude)+1)
	skip[strings.ToLower(strings.TrimSpace(targetUsername))] = true
	for _, u := range exclude {
		skip[strings.ToLower(strings.TrimSpace(u))] = true
	}

	seen := make(map[string]bool)
	var candidates []genome.Candidate
	for _, results := range perQuery {
		for _, c := range results {
			key := strings.ToLower(strings.TrimSpace(c.Username))
			if key == "" || seen[key] || skip[key] {
				continue
			}
			seen[key] = true
			candidates = append(candidates, c)
		}
	}
	return candidates
}

// scoreCandidates walks the candidate list in strictly sequential
// batches, scoring each batch concurrently and waiting for it to
// settle before the next. Between batches it checks the early-exit
// count against a stable tally and honors context cancellation.
func (p *Pipeline) scoreCandidates(ctx context.Context, runID string, target *genome.Profile, candidates []genome.Candidate, minScore float64) ([]Recommendation, error) {
	targetNames := skillNameSet(target)
	kept := make([]Recommendation, 0, len(candidates))

	for batchStart := 0; batchStart < len(candidates); batchStart += p.batchSize {
		if len(kept) >= p.earlyExitCount {
			metrics.RecordEarlyExit()
			logging.Debug().Str("run_id", runID).Int("qualifying", len(kept)).Msg("Early exit with enough qualifying candidates")
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery canceled: %w", err)
		}

		end := batchStart + p.batchSize
		if end > len(candidates) {
			end = len(candidates)
		}
		batch := candidates[batchStart:end]

		scored := make([]*Recommendation, len(batch))
		var wg sync.WaitGroup
		for i, cand := range batch {
			wg.Add(1)
			go func(idx int, cand genome.Candidate) {
				defer wg.Done()
				defer func() {
					if r := recover(); r != nil {
						logging.Error().Interface("panic", r).Str("run_id", runID).Str("username", cand.Username).Msg("Candidate scoring panicked")
					}
				}()
				scored[idx] = p.scoreCandidate(ctx, runID, target, targetNames, cand, minScore)
			}(i, cand)
		}
		wg.Wait()

		for _, rec := range scored {
			if rec != nil {
				kept = append(kept, *rec)
			}
		}
	}
	return kept, nil
}

// scoreCandidate resolves one candidate's genome and decides whether
// they qualify. Returns nil for every skip path; each skip is
// published with its reason.
func (p *Pipeline) scoreCandidate(ctx context.Context, runID string, target *genome.Profile, targetNames map[string]bool, cand genome.Candidate, minScore float64) *Recommendation {
	profile := p.genomes.Get(ctx, cand.Username)
	if profile == nil {
		p.publish(ctx, events.NewCandidateSkipped(runID, cand.Username, events.SkipReasonGenomeUnavailable))
		return nil
	}
	metrics.RecordCandidateEvaluated()

	// Cheap Jaccard screen ahead of the full engine. A target with no
	// raw skill list would zero out every candidate, so the screen
	// only applies when there is something to compare against.
	if len(targetNames) > 0 {
		basic := jaccard(targetNames, skillNameSet(profile))
		if basic < minScore-p.prefilterMargin {
			metrics.RecordCandidatePrefiltered()
			p.publish(ctx, events.NewCandidateSkipped(runID, cand.Username, events.SkipReasonPrefiltered))
			return nil
		}
	}

	result := similarity.Compare(target, profile)
	if result.OverallScore < minScore {
		p.publish(ctx, events.NewCandidateSkipped(runID, cand.Username, events.SkipReasonBelowMinScore))
		return nil
	}

	return &Recommendation{
		Candidate:      profile,
		Similarity:     result,
		Justifications: buildJustifications(result),
	}
}

func (p *Pipeline) publish(ctx context.Context, ev events.Event) {
	if p.events == nil {
		return
	}
	_ = p.events.Publish(ctx, ev)
}

// publishRunCompleted emits the run summary. It uses a fresh context:
// the run's own context may already be canceled, and the completion
// event must still go out.
func (p *Pipeline) publishRunCompleted(runID string, out Outcome, duration time.Duration) {
	if p.events == nil || out.TargetUsername == "" {
		return
	}
	ev := events.NewRunCompleted(runID, out.TargetUsername)
	ev.QueriesUsed = out.SearchQueriesUsed
	ev.CandidatesEvaluated = out.TotalCandidates
	ev.ResultCount = len(out.Data)
	ev.DurationMS = duration.Milliseconds()
	ev.Success = out.Success
	ev.Error = out.Error
	_ = p.events.Publish(context.Background(), ev)
}
