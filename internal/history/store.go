// Cognatus - Talent Discovery Analytics and Profile Similarity Engine
// Copyright 2026 Dana R. (danarhys)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/danarhys/cognatus

package history

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/danarhys/cognatus/internal/config"
	"github.com/danarhys/cognatus/internal/logging"
	"github.com/danarhys/cognatus/internal/metrics"
)

// schemaTimeout bounds schema creation and migration statements.
const schemaTimeout = 30 * time.Second

// Store wraps the DuckDB connection behind the history tables.
type Store struct {
	conn *sql.DB
	cfg  config.HistoryConfig

	// Writes serialize here: DuckDB aborts one side of a
	// concurrent-writer conflict instead of blocking.
	writeMu sync.Mutex
}

// New opens (or creates) the history database at cfg.Path and ensures
// the schema exists. Path ":memory:" yields an ephemeral store, used
// by tests and useful for running without a data volume.
func New(cfg config.HistoryConfig) (*Store, error) {
	threads := cfg.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	maxMemory := cfg.MaxMemory
	if maxMemory == "" {
		maxMemory = "1GB"
	}

	// Ensure the parent directory exists for file-backed databases.
	// 0750 per gosec G301.
	if cfg.Path != ":memory:" {
		dir := filepath.Dir(cfg.Path)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create history directory %s: %w", dir, err)
			}
		}
	}

	// Disable extension auto-install/auto-load: the history schema
	// needs none, and auto-install hangs in restricted networks.
	connStr := fmt.Sprintf("%s?threads=%d&max_memory=%s&autoinstall_known_extensions=false&autoload_known_extensions=false",
		cfg.Path, threads, maxMemory)

	conn, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	s := &Store{conn: conn, cfg: cfg}
	s.configureConnectionPool()

	if err := s.initSchema(); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to initialize history schema: %w", err)
	}

	logging.Info().
		Str("path", cfg.Path).
		Int("threads", threads).
		Str("max_memory", maxMemory).
		Int("retention_days", cfg.RetentionDays).
		Msg("History store initialized")

	return s, nil
}

// configureConnectionPool applies pool limits suited to an embedded
// analytics database: NumCPU writers at most, short idle lifetimes.
func (s *Store) configureConnectionPool() {
	s.conn.SetMaxOpenConns(runtime.NumCPU())
	s.conn.SetMaxIdleConns(2)
	s.conn.SetConnMaxLifetime(time.Hour)
	s.conn.SetConnMaxIdleTime(5 * time.Minute)
}

// Ping verifies the connection is alive. The readiness probe calls
// this on every check.
func (s *Store) Ping(ctx context.Context) error {
	start := time.Now()
	err := s.conn.PingContext(ctx)
	metrics.RecordDBQuery("ping", "history", time.Since(start), err)
	return err
}

// Close closes the underlying connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

// Conn returns the underlying SQL connection for callers that need
// direct access, such as ad-hoc maintenance tooling.
func (s *Store) Conn() *sql.DB {
	return s.conn
}

// baseSchema is the consolidated initial schema. Incremental changes
// after the first release go through the versioned migrations below,
// never by editing these statements.
const baseSchema = `
CREATE TABLE IF NOT EXISTS comparisons (
	id TEXT PRIMARY KEY,
	kind TEXT NOT NULL,
	username_a TEXT NOT NULL,
	username_b TEXT NOT NULL,
	overall_score DOUBLE NOT NULL,
	skills_score DOUBLE NOT NULL,
	strengths_score DOUBLE NOT NULL,
	experience_score DOUBLE NOT NULL,
	education_score DOUBLE NOT NULL,
	common_skills INTEGER NOT NULL,
	result JSON,
	duration_ms BIGINT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_comparisons_created_at ON comparisons(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_comparisons_username_a ON comparisons(username_a);
CREATE INDEX IF NOT EXISTS idx_comparisons_username_b ON comparisons(username_b);
CREATE INDEX IF NOT EXISTS idx_comparisons_kind ON comparisons(kind);

CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	target_username TEXT NOT NULL,
	success BOOLEAN NOT NULL,
	error TEXT,
	queries_used INTEGER NOT NULL,
	total_candidates INTEGER NOT NULL,
	result_count INTEGER NOT NULL,
	requested_limit INTEGER NOT NULL,
	min_score DOUBLE NOT NULL,
	results JSON,
	duration_ms BIGINT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_runs_target_username ON runs(target_username);

CREATE TABLE IF NOT EXISTS schema_migrations (
	version INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// migration is one versioned, append-only schema change.
type migration struct {
	Version int
	Name    string
	SQL     string
}

// migrations returns post-baseline schema changes in order. Empty
// until the first released schema needs to evolve; entries are
// append-only once any deployment has applied them.
func migrations() []migration {
	return []migration{}
}

// initSchema applies the baseline schema and any unapplied migrations.
func (s *Store) initSchema() error {
	ctx, cancel := context.WithTimeout(context.Background(), schemaTimeout)
	defer cancel()

	for _, stmt := range strings.Split(baseSchema, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := s.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement failed: %w", err)
		}
	}

	return s.runMigrations(ctx)
}

// runMigrations executes migrations not yet recorded in
// schema_migrations, in version order.
func (s *Store) runMigrations(ctx context.Context) error {
	applied, err := s.appliedMigrations(ctx)
	if err != nil {
		return err
	}

	for _, m := range migrations() {
		if _, ok := applied[m.Version]; ok {
			continue
		}
		if _, err := s.conn.ExecContext(ctx, m.SQL); err != nil {
			return fmt.Errorf("migration v%d (%s) failed: %w", m.Version, m.Name, err)
		}
		if _, err := s.conn.ExecContext(ctx,
			`INSERT INTO schema_migrations (version, name) VALUES (?, ?)`,
			m.Version, m.Name); err != nil {
			return fmt.Errorf("failed to record migration v%d: %w", m.Version, err)
		}
		logging.Info().Int("version", m.Version).Str("name", m.Name).Msg("Applied history migration")
	}
	return nil
}

// appliedMigrations returns the set of migration versions already run.
func (s *Store) appliedMigrations(ctx context.Context) (map[int]struct{}, error) {
	rows, err := s.conn.QueryContext(ctx, `SELECT version FROM schema_migrations ORDER BY version`)
	if err != nil {
		return nil, fmt.Errorf("failed to query applied migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]struct{})
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan migration version: %w", err)
		}
		applied[v] = struct{}{}
	}
	return applied, rows.Err()
}

func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close() // cleanup is best-effort
	}
}
