package stats

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/filberthamijoyo/cachesim/internal/cache"
)

// Recorder appends finalized per-level statistics to a SQLite database,
// backing the --record flag. It never
// participates in the simulation itself; it is opened after a trace has
// been fully consumed and closed via the run's atexit cleanup.
type Recorder struct {
	db *sql.DB
}

const createTableSQL = `
CREATE TABLE IF NOT EXISTS runs (
	run_id      TEXT NOT NULL,
	trace_name  TEXT NOT NULL,
	level_name  TEXT NOT NULL,
	num_read    INTEGER NOT NULL,
	num_write   INTEGER NOT NULL,
	num_hit     INTEGER NOT NULL,
	num_miss    INTEGER NOT NULL,
	total_cycles INTEGER NOT NULL
);`

// OpenRecorder opens (creating if absent) the SQLite database at path
// and ensures the runs table exists.
func OpenRecorder(path string) (*Recorder, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("stats: opening run history %q: %w", path, err)
	}

	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("stats: preparing run history schema: %w", err)
	}

	return &Recorder{db: db}, nil
}

// Record inserts one row per level in top's chain, tagged with runID and
// traceName.
func (r *Recorder) Record(runID, traceName string, top *cache.Level) error {
	stmt, err := r.db.Prepare(`
		INSERT INTO runs (run_id, trace_name, level_name, num_read, num_write, num_hit, num_miss, total_cycles)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("stats: preparing run history insert: %w", err)
	}
	defer stmt.Close()

	for level := top; level != nil; level = level.Lower() {
		s := level.Stats()

		_, err := stmt.Exec(runID, traceName, level.Name, s.NumRead, s.NumWrite, s.NumHit, s.NumMiss, s.TotalCycles)
		if err != nil {
			return fmt.Errorf("stats: recording level %q: %w", level.Name, err)
		}
	}

	return nil
}

// Close releases the underlying database handle.
func (r *Recorder) Close() error {
	return r.db.Close()
}
