// Cognatus - Talent Discovery Analytics and Profile Similarity Engine
// Copyright 2026 Dana R. (danarhys)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/danarhys/cognatus

package history

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/danarhys/cognatus/internal/logging"
	"github.com/danarhys/cognatus/internal/metrics"
)

// cleanupInterval is how often the retention loop sweeps.
const cleanupInterval = time.Hour

// DeleteBefore removes comparison and run rows created before the
// cutoff, returning the total rows deleted.
func (s *Store) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	var total int64
	for _, table := range []string{"comparisons", "runs"} {
		query, args, err := sq.Delete(table).Where(sq.Lt{"created_at": cutoff}).ToSql()
		if err != nil {
			return total, fmt.Errorf("failed to build %s delete: %w", table, err)
		}

		start := time.Now()
		res, err := s.conn.ExecContext(ctx, query, args...)
		metrics.RecordDBQuery("delete", table, time.Since(start), err)
		if err != nil {
			return total, fmt.Errorf("failed to delete old %s rows: %w", table, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			total += n
		}
	}
	return total, nil
}

// Serve runs the retention loop until the context ends, deleting rows
// older than the configured retention window once per sweep. With
// retention disabled (0 days) it only waits for cancellation, keeping
// the supervisor wiring uniform either way.
//
// Implements suture.Service.
func (s *Store) Serve(ctx context.Context) error {
	if s.cfg.RetentionDays <= 0 {
		logging.Info().Msg("History retention disabled, keeping rows forever")
		<-ctx.Done()
		return ctx.Err()
	}

	logging.Info().
		Int("retention_days", s.cfg.RetentionDays).
		Dur("interval", cleanupInterval).
		Msg("History retention loop started")

	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			cutoff := time.Now().UTC().AddDate(0, 0, -s.cfg.RetentionDays)
			count, err := s.DeleteBefore(ctx, cutoff)
			if err != nil {
				logging.Error().Err(err).Msg("History retention sweep failed")
				continue
			}
			if count > 0 {
				logging.Info().Int64("deleted", count).Time("cutoff", cutoff).Msg("Deleted old history rows")
			}
		}
	}
}

// String implements fmt.Stringer for supervisor logging.
func (s *Store) String() string {
	return "history-retention"
}
