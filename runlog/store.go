// Package runlog provides SQLite-backed history of analysis runs.
package runlog

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Store handles SQLite database operations for run history.
type Store struct {
	db *sql.DB
}

// Run is one recorded analysis invocation.
type Run struct {
	ID        string    `json:"id"`
	Net       string    `json:"net"`
	Task      string    `json:"task"`
	Engine    string    `json:"engine"`
	States    int       `json:"states"`
	Duration  float64   `json:"duration"` // seconds
	Status    string    `json:"status"`
	Detail    string    `json:"detail,omitempty"`
	StartedAt time.Time `json:"started_at"`
}

// Open creates a Store at the given database path. Use ":memory:" for
// an ephemeral store.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		net TEXT NOT NULL,
		task TEXT NOT NULL,
		engine TEXT NOT NULL,
		states INTEGER DEFAULT 0,
		duration REAL DEFAULT 0,
		status TEXT NOT NULL,
		detail TEXT,
		started_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_runs_net ON runs(net);
	CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Append records a completed run.
func (s *Store) Append(run Run) error {
	_, err := s.db.Exec(
		`INSERT INTO runs (id, net, task, engine, states, duration, status, detail, started_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Net, run.Task, run.Engine, run.States,
		run.Duration, run.Status, run.Detail, run.StartedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("append run: %w", err)
	}
	return nil
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(limit int) ([]Run, error) {
	rows, err := s.db.Query(
		`SELECT id, net, task, engine, states, duration, status, detail, started_at
		 FROM runs ORDER BY started_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var detail sql.NullString
		if err := rows.Scan(&r.ID, &r.Net, &r.Task, &r.Engine, &r.States,
			&r.Duration, &r.Status, &detail, &r.StartedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.Detail = detail.String
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
