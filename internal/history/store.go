// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history records build runs in a local SQLite database so past
// outcomes can be listed with `docpdf history`.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/docpdf/pkg/types"
)

const (
	defaultLimit = 20
	// timeLayout is fixed-width so stored timestamps sort lexically.
	timeLayout = "2006-01-02T15:04:05.000000000Z"
)

// Run is one recorded build.
type Run struct {
	ID             int64         `json:"id" yaml:"id"`
	StartedAt      time.Time     `json:"started_at" yaml:"started_at"`
	Duration       time.Duration `json:"duration" yaml:"duration"`
	Root           string        `json:"root" yaml:"root"`
	MissingTools   []string      `json:"missing_tools,omitempty" yaml:"missing_tools,omitempty"`
	MainOK         bool          `json:"main_ok" yaml:"main_ok"`
	DiagramsOK     bool          `json:"diagrams_ok" yaml:"diagrams_ok"`
	Rendered       int           `json:"rendered" yaml:"rendered"`
	Failed         int           `json:"failed" yaml:"failed"`
	FallbackCopied int           `json:"fallback_copied" yaml:"fallback_copied"`
	ExitCode       int           `json:"exit_code" yaml:"exit_code"`
}

// FromResult builds a Run from a driver result.
func FromResult(root string, r types.BuildResult) Run {
	return Run{
		StartedAt:      r.StartedAt,
		Duration:       r.Duration,
		Root:           root,
		MissingTools:   r.MissingTools,
		MainOK:         r.MainOK,
		DiagramsOK:     r.DiagramsOK,
		Rendered:       r.Diagrams.Rendered,
		Failed:         r.Diagrams.Failed,
		FallbackCopied: r.FallbackCopied,
		ExitCode:       r.ExitCode,
	}
}

// Store manages the history database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the history database at path, creating the parent
// directory and the schema when missing.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		started_at TEXT NOT NULL,
		duration_ms INTEGER NOT NULL,
		root TEXT NOT NULL,
		missing_tools TEXT,
		main_ok INTEGER NOT NULL,
		diagrams_ok INTEGER NOT NULL,
		rendered INTEGER NOT NULL,
		failed INTEGER NOT NULL,
		fallback_copied INTEGER NOT NULL,
		exit_code INTEGER NOT NULL
	)`)
	return err
}

// Record inserts run and returns its id.
func (s *Store) Record(ctx context.Context, run Run) (int64, error) {
	missing, err := json.Marshal(run.MissingTools)
	if err != nil {
		return 0, fmt.Errorf("encoding missing tools: %w", err)
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (started_at, duration_ms, root, missing_tools, main_ok,
			diagrams_ok, rendered, failed, fallback_copied, exit_code)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.StartedAt.UTC().Format(timeLayout),
		run.Duration.Milliseconds(),
		run.Root,
		string(missing),
		run.MainOK,
		run.DiagramsOK,
		run.Rendered,
		run.Failed,
		run.FallbackCopied,
		run.ExitCode,
	)
	if err != nil {
		return 0, fmt.Errorf("recording run: %w", err)
	}
	return res.LastInsertId()
}

// Recent returns up to limit runs, newest first. A non-positive limit uses
// the default of 20.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = defaultLimit
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, duration_ms, root, missing_tools, main_ok,
			diagrams_ok, rendered, failed, fallback_copied, exit_code
		FROM runs
		ORDER BY started_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r          Run
			startedAt  string
			durationMS int64
			missing    sql.NullString
		)
		if err := rows.Scan(&r.ID, &startedAt, &durationMS, &r.Root, &missing, &r.MainOK,
			&r.DiagramsOK, &r.Rendered, &r.Failed, &r.FallbackCopied, &r.ExitCode); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.StartedAt, err = time.Parse(timeLayout, startedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing start time of run %d: %w", r.ID, err)
		}
		r.Duration = time.Duration(durationMS) * time.Millisecond
		if missing.Valid && missing.String != "" {
			if err := json.Unmarshal([]byte(missing.String), &r.MissingTools); err != nil {
				return nil, fmt.Errorf("decoding missing tools of run %d: %w", r.ID, err)
			}
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
