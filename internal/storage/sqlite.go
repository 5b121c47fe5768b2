// Package storage provides a SQLite run journal.
// Each run records its seed, the gap heights it drew and how it ended, so
// that a seed can later be replayed and checked against the journal.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// End reasons stored with finished runs.
const (
	EndCollision = "collision"
	EndQuit      = "quit"
)

// ErrRunNotFound is returned for unknown run IDs.
var ErrRunNotFound = errors.New("run not found")

// Store manages the SQLite database connection for the journal.
type Store struct {
	db *sql.DB
}

// RunStart is what BeginRun records about a new run.
// The height range lets a replay draw heights the way the run did.
type RunStart struct {
	Seed       int64
	Difficulty string
	MinHeight  float64
	MaxHeight  float64
}

// Run is one journaled run.
type Run struct {
	ID         string
	Seed       int64
	Difficulty string
	MinHeight  float64 // Zero range for runs journaled before heights were kept
	MaxHeight  float64
	StartedAt  time.Time
	EndedAt    time.Time // Zero while unfinished
	Frames     int64
	Spawned    int
	Passed     int
	EndReason  string
}

// Finished reports whether the run was closed.
func (r Run) Finished() bool {
	return r.EndReason != ""
}

// Outcome is what FinishRun records.
type Outcome struct {
	Frames    int64
	Spawned   int
	Passed    int
	EndReason string
}

// ObstacleRecord is one journaled spawn.
type ObstacleRecord struct {
	Seq  int
	GapY float64
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Sessions served over SSH share one journal, so writers wait for the lock.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			seed INTEGER NOT NULL,
			difficulty TEXT NOT NULL DEFAULT '',
			min_height REAL NOT NULL DEFAULT 0,
			max_height REAL NOT NULL DEFAULT 0,
			started_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			ended_at DATETIME,
			frames INTEGER NOT NULL DEFAULT 0,
			obstacles_spawned INTEGER NOT NULL DEFAULT 0,
			obstacles_passed INTEGER NOT NULL DEFAULT 0,
			end_reason TEXT NOT NULL DEFAULT ''
		);
		CREATE INDEX IF NOT EXISTS idx_runs_seed ON runs(seed);
		CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at DESC);

		CREATE TABLE IF NOT EXISTS run_obstacles (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			gap_y REAL NOT NULL,
			PRIMARY KEY (run_id, seq)
		);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return err
	}

	// Journals created before the height range was recorded.
	for _, col := range []string{"min_height", "max_height"} {
		if err := s.addColumn("runs", col, "REAL NOT NULL DEFAULT 0"); err != nil {
			return err
		}
	}
	return nil
}

// addColumn adds a column unless the table already has it.
func (s *Store) addColumn(table, column, decl string) error {
	var n int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM pragma_table_info(?) WHERE name = ?",
		table, column,
	).Scan(&n)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	_, err = s.db.Exec(fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, decl))
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// BeginRun opens a journal entry and returns its ID.
func (s *Store) BeginRun(rs RunStart) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(
		"INSERT INTO runs (id, seed, difficulty, min_height, max_height) VALUES (?, ?, ?, ?, ?)",
		id, rs.Seed, rs.Difficulty, rs.MinHeight, rs.MaxHeight,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot begin run: %w", err)
	}
	return id, nil
}

// RecordObstacle stores the gap height of one spawn.
func (s *Store) RecordObstacle(runID string, seq int, gapY float64) error {
	_, err := s.db.Exec(
		"INSERT INTO run_obstacles (run_id, seq, gap_y) VALUES (?, ?, ?)",
		runID, seq, gapY,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot record obstacle %d: %w", seq, err)
	}
	return nil
}

// FinishRun closes a run with its outcome.
func (s *Store) FinishRun(runID string, o Outcome) error {
	res, err := s.db.Exec(
		`UPDATE runs
		 SET ended_at = CURRENT_TIMESTAMP, frames = ?, obstacles_spawned = ?,
		     obstacles_passed = ?, end_reason = ?
		 WHERE id = ?`,
		o.Frames, o.Spawned, o.Passed, o.EndReason, runID,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot finish run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot finish run: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("storage: %s: %w", runID, ErrRunNotFound)
	}
	return nil
}

const runColumns = `id, seed, difficulty, min_height, max_height, started_at, ended_at, frames,
	obstacles_spawned, obstacles_passed, end_reason`

// GetRun retrieves one run by ID.
func (s *Store) GetRun(runID string) (*Run, error) {
	row := s.db.QueryRow("SELECT "+runColumns+" FROM runs WHERE id = ?", runID)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: %s: %w", runID, ErrRunNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return r, nil
}

// RecentRuns retrieves the most recently started runs.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		"SELECT "+runColumns+" FROM runs ORDER BY started_at DESC, rowid DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return collectRuns(rows)
}

// RunsBySeed retrieves every run started with seed, oldest first.
func (s *Store) RunsBySeed(seed int64) ([]Run, error) {
	rows, err := s.db.Query(
		"SELECT "+runColumns+" FROM runs WHERE seed = ? ORDER BY started_at, rowid",
		seed,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return collectRuns(rows)
}

// RunObstacles retrieves the spawns of a run in order.
func (s *Store) RunObstacles(runID string) ([]ObstacleRecord, error) {
	rows, err := s.db.Query(
		"SELECT seq, gap_y FROM run_obstacles WHERE run_id = ? ORDER BY seq",
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query obstacles: %w", err)
	}
	defer rows.Close()

	var out []ObstacleRecord
	for rows.Next() {
		var o ObstacleRecord
		if err := rows.Scan(&o.Seq, &o.GapY); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*Run, error) {
	var r Run
	var startedAt, endedAt any
	if err := row.Scan(
		&r.ID,
		&r.Seed,
		&r.Difficulty,
		&r.MinHeight,
		&r.MaxHeight,
		&startedAt,
		&endedAt,
		&r.Frames,
		&r.Spawned,
		&r.Passed,
		&r.EndReason,
	); err != nil {
		return nil, err
	}
	r.StartedAt = parseTime(startedAt)
	r.EndedAt = parseTime(endedAt)
	return &r, nil
}

func collectRuns(rows *sql.Rows) ([]Run, error) {
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// parseTime handles the driver returning either time.Time or a string.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
