// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package archive records completed pipeline runs in a local SQLite
// database so past documents can be listed and located later. The
// archive is write-once per run; the document itself lives in the
// output file, not the database.
package archive

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/paper-writer/pkg/types"
)

const dbFile = "runs.db"

// Store manages the run archive database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the archive database under dir, creating the
// schema if needed.
func Open(cfg types.ArchiveConfig) (*Store, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = ".paper-writer"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating archive directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening archive database: %w", err)
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
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			topic TEXT NOT NULL,
			model TEXT,
			output_path TEXT NOT NULL,
			started TEXT NOT NULL,
			finished TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS run_sections (
			run_id INTEGER NOT NULL REFERENCES runs(id),
			position INTEGER NOT NULL,
			name TEXT NOT NULL,
			chars INTEGER NOT NULL,
			PRIMARY KEY (run_id, position)
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores a completed run and its per-section sizes, returning
// the new run ID.
func (s *Store) Record(ctx context.Context, run types.Run, sections []types.RunSection) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (topic, model, output_path, started, finished) VALUES (?, ?, ?, ?, ?)`,
		run.Topic, run.Model, run.OutputPath,
		run.Started.UTC().Format(time.RFC3339Nano),
		run.Finished.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run ID: %w", err)
	}

	for _, sec := range sections {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO run_sections (run_id, position, name, chars) VALUES (?, ?, ?, ?)`,
			id, sec.Position, sec.Name, sec.Chars,
		); err != nil {
			return 0, fmt.Errorf("inserting section %q: %w", sec.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing run: %w", err)
	}
	return id, nil
}

// List returns archived runs, most recent first, bounded by limit
// (zero means all).
func (s *Store) List(ctx context.Context, limit int) ([]types.Run, error) {
	query := `SELECT id, topic, model, output_path, started, finished FROM runs ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []types.Run
	for rows.Next() {
		var r types.Run
		var started, finished string
		if err := rows.Scan(&r.ID, &r.Topic, &r.Model, &r.OutputPath, &started, &finished); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.Started, _ = time.Parse(time.RFC3339Nano, started)
		r.Finished, _ = time.Parse(time.RFC3339Nano, finished)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Sections returns the per-section sizes for a run in outline order.
func (s *Store) Sections(ctx context.Context, runID int64) ([]types.RunSection, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT position, name, chars FROM run_sections WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying run sections: %w", err)
	}
	defer rows.Close()

	var sections []types.RunSection
	for rows.Next() {
		var sec types.RunSection
		if err := rows.Scan(&sec.Position, &sec.Name, &sec.Chars); err != nil {
			return nil, fmt.Errorf("scanning section: %w", err)
		}
		sections = append(sections, sec)
	}
	return sections, rows.Err()
}

// FormatTable writes runs as a human-readable table to w.
func FormatTable(runs []types.Run, w io.Writer) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No archived runs.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-40s  %-24s  %-16s  %s\n",
		"ID", "Topic", "Model", "Finished", "Output")
	fmt.Fprintln(w, strings.Repeat("-", 110))

	for _, r := range runs {
		topic := r.Topic
		if len(topic) > 40 {
			topic = topic[:37] + "..."
		}
		fmt.Fprintf(w, "%-4d  %-40s  %-24s  %-16s  %s\n",
			r.ID, topic, r.Model, r.Finished.Local().Format("2006-01-02 15:04"), r.OutputPath)
	}

	fmt.Fprintf(w, "\n%d runs\n", len(runs))
}
