package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/gitrdm/ruleforge/pkg/rulekit"
)

// Index is an optional SQLite-backed catalog of past runs, so a caller can
// query run history without re-parsing every metadata.json. modernc.org/sqlite
// is pure Go (no cgo), matching the driver choice this layer is grounded on.
type Index struct {
	db *sql.DB
}

// OpenIndex opens (creating if necessary) the runs index database at path.
func OpenIndex(path string) (*Index, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: opening index: %w", err)
	}
	idx := &Index{db: db}
	if err := idx.migrate(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return idx, nil
}

func (idx *Index) migrate(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS runs (
	run_id        TEXT PRIMARY KEY,
	dataset       TEXT NOT NULL,
	method        TEXT NOT NULL,
	seed          INTEGER NOT NULL,
	strategy      TEXT NOT NULL,
	success       INTEGER NOT NULL,
	duration_ms   INTEGER NOT NULL,
	created_at    TEXT NOT NULL
);`
	_, err := idx.db.ExecContext(ctx, ddl)
	if err != nil {
		return fmt.Errorf("store: creating runs table: %w", err)
	}
	return nil
}

// Record inserts or replaces one run's row in the index.
func (idx *Index) Record(ctx context.Context, runID, dataset string, cfg rulekit.ExperimentConfig, result *rulekit.InferenceResult, createdAt time.Time) error {
	const stmt = `
INSERT INTO runs (run_id, dataset, method, seed, strategy, success, duration_ms, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(run_id) DO UPDATE SET
	dataset=excluded.dataset, method=excluded.method, seed=excluded.seed,
	strategy=excluded.strategy, success=excluded.success,
	duration_ms=excluded.duration_ms, created_at=excluded.created_at;`

	_, err := idx.db.ExecContext(ctx, stmt,
		runID, dataset, string(cfg.InferenceMethod), cfg.Seed, string(cfg.Strategy),
		boolToInt(result.Success), result.Duration.Milliseconds(), createdAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("store: recording run %s: %w", runID, err)
	}
	return nil
}

// RunRow is one row of the runs index, as returned by Recent.
type RunRow struct {
	RunID      string
	Dataset    string
	Method     string
	Seed       int64
	Strategy   string
	Success    bool
	DurationMs int64
	CreatedAt  string
}

// Recent returns the limit most recently created runs, newest first.
func (idx *Index) Recent(ctx context.Context, limit int) ([]RunRow, error) {
	rows, err := idx.db.QueryContext(ctx,
		`SELECT run_id, dataset, method, seed, strategy, success, duration_ms, created_at
		 FROM runs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("store: querying recent runs: %w", err)
	}
	defer rows.Close()

	var out []RunRow
	for rows.Next() {
		var r RunRow
		var success int
		if err := rows.Scan(&r.RunID, &r.Dataset, &r.Method, &r.Seed, &r.Strategy, &success, &r.DurationMs, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("store: scanning run row: %w", err)
		}
		r.Success = success != 0
		out = append(out, r)
	}
	return out, rows.Err()
}

// Close closes the underlying database handle.
func (idx *Index) Close() error {
	return idx.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
