// Package storage persists check results in a SQLite report database.
// The matching engine itself is persistence-free; only the CLI records
// what a run found.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite report database connection.
type DB struct {
	db *sql.DB
}

// Run is one recorded invocation of a check over a bibliography file.
type Run struct {
	ID           int64     `json:"id"`
	BibPath      string    `json:"bib_path"`
	StartedAt    time.Time `json:"started_at"`
	FindingCount int       `json:"finding_count"`
}

// Finding is one persisted discrepancy from a check run.
type Finding struct {
	EntryID     string  `json:"entry_id"`
	Source      string  `json:"source"`
	Field       string  `json:"field"`
	Severity    string  `json:"severity"`
	LocalValue  string  `json:"local_value"`
	RemoteValue string  `json:"remote_value"`
	Message     string  `json:"message"`
	Score       float64 `json:"score"`
}

// OpenDB opens or creates the report database at the given path,
// creating parent directories as needed.
func OpenDB(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating report directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening report database: %w", err)
	}

	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			bib_path TEXT NOT NULL,
			started_at TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS findings (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id INTEGER NOT NULL REFERENCES runs(id),
			entry_id TEXT NOT NULL,
			source TEXT NOT NULL,
			field TEXT NOT NULL,
			severity TEXT NOT NULL,
			local_value TEXT,
			remote_value TEXT,
			message TEXT NOT NULL,
			score REAL
		);

		CREATE INDEX IF NOT EXISTS idx_findings_run ON findings(run_id);
	`
	_, err := db.Exec(schema)
	return err
}

// SaveRun records a check run and its findings, returning the run ID.
func (d *DB) SaveRun(bibPath string, startedAt time.Time, findings []Finding) (int64, error) {
	tx, err := d.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO runs (bib_path, started_at) VALUES (?, ?)`,
		bibPath, startedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}

	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting run id: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO findings
			(run_id, entry_id, source, field, severity, local_value, remote_value, message, score)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, f := range findings {
		if _, err := stmt.Exec(runID, f.EntryID, f.Source, f.Field, f.Severity,
			f.LocalValue, f.RemoteValue, f.Message, f.Score); err != nil {
			return 0, fmt.Errorf("inserting finding: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing run: %w", err)
	}

	return runID, nil
}

// ListRuns returns the most recent runs, newest first.
func (d *DB) ListRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := d.db.Query(`
		SELECT r.id, r.bib_path, r.started_at, COUNT(f.id)
		FROM runs r
		LEFT JOIN findings f ON f.run_id = r.id
		GROUP BY r.id
		ORDER BY r.id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var started string
		if err := rows.Scan(&r.ID, &r.BibPath, &started, &r.FindingCount); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, started); err == nil {
			r.StartedAt = t
		}
		runs = append(runs, r)
	}

	return runs, rows.Err()
}

// RunFindings returns all findings for a run in insertion order.
func (d *DB) RunFindings(runID int64) ([]Finding, error) {
	rows, err := d.db.Query(`
		SELECT entry_id, source, field, severity, local_value, remote_value, message, score
		FROM findings
		WHERE run_id = ?
		ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying findings: %w", err)
	}
	defer rows.Close()

	var findings []Finding
	for rows.Next() {
		var f Finding
		if err := rows.Scan(&f.EntryID, &f.Source, &f.Field, &f.Severity,
			&f.LocalValue, &f.RemoteValue, &f.Message, &f.Score); err != nil {
			return nil, fmt.Errorf("scanning finding: %w", err)
		}
		findings = append(findings, f)
	}

	return findings, rows.Err()
}
