// Package benchhist provides a SQLite-backed archive of adapter benchmark
// results. The automated runner's in-memory ring buffer stays authoritative
// for run summaries; this archive exists so macro metrics survive restarts
// and can feed dashboards.
package benchhist

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // register "sqlite" driver

	dombench "github.com/lexidex/lexidex/internal/domain/benchmark"
)

// Store is an append-only benchmark result archive backed by SQLite.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) a Store at the given path and runs the schema
// migration. Use ":memory:" for an in-memory database in tests.
func Open(path string) (*Store, error) {
	// WAL mode improves concurrent read performance and is safe for single-host use.
	dsn := path + "?_journal_mode=WAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("benchhist: open %s: %w", path, err)
	}
	// Limit to a single writer connection to avoid SQLITE_BUSY under concurrent writes.
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// migrate creates the schema if it does not already exist.
func (s *Store) migrate() error {
	const ddl = `
CREATE TABLE IF NOT EXISTS benchmark_runs (
    id              INTEGER PRIMARY KEY AUTOINCREMENT,
    adapter         TEXT    NOT NULL,
    macro_precision REAL    NOT NULL,
    macro_recall    REAL    NOT NULL,
    duration_ms     REAL    NOT NULL,
    case_count      INTEGER NOT NULL,
    created_at      INTEGER NOT NULL  -- Unix timestamp (seconds)
);
CREATE INDEX IF NOT EXISTS idx_benchmark_runs_created
    ON benchmark_runs (created_at);
`
	if _, err := s.db.Exec(ddl); err != nil {
		return fmt.Errorf("benchhist: migrate: %w", err)
	}
	return nil
}

// Save appends one adapter result. Per-case hits are not archived; only the
// macro metrics needed for trend analysis.
func (s *Store) Save(ctx context.Context, result dombench.AdapterResult) error {
	const q = `
INSERT INTO benchmark_runs (adapter, macro_precision, macro_recall, duration_ms, case_count, created_at)
VALUES (?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, q,
		result.Adapter,
		result.Suite.MacroPrecision,
		result.Suite.MacroRecall,
		result.DurationMS,
		len(result.Suite.Results),
		time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("benchhist: save: %w", err)
	}
	return nil
}

// Recent returns the most recent n archived results, newest-first. The
// returned suites carry macro metrics only, with no per-case results.
func (s *Store) Recent(ctx context.Context, n int) ([]dombench.AdapterResult, error) {
	const q = `
SELECT adapter, macro_precision, macro_recall, duration_ms
FROM   benchmark_runs
ORDER  BY created_at DESC, id DESC
LIMIT  ?`

	rows, err := s.db.QueryContext(ctx, q, n)
	if err != nil {
		return nil, fmt.Errorf("benchhist: recent: %w", err)
	}
	defer rows.Close()

	var results []dombench.AdapterResult
	for rows.Next() {
		var r dombench.AdapterResult
		if err := rows.Scan(&r.Adapter, &r.Suite.MacroPrecision, &r.Suite.MacroRecall, &r.DurationMS); err != nil {
			return nil, fmt.Errorf("benchhist: recent scan: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("benchhist: recent rows: %w", err)
	}
	return results, nil
}

// Close releases the database connection pool.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("benchhist: close: %w", err)
	}
	return nil
}
