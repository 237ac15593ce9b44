// Package journal records every generation run in a SQLite database so that
// `fgen history` can list what was scaffolded where.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/teranos/fgen/engine"
	"github.com/teranos/fgen/errors"
)

// SQLiteBusyTimeoutMS is how long a writer waits for a concurrent run.
const SQLiteBusyTimeoutMS = 5000

// Run statuses
const (
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)

// Run is one recorded generation.
type Run struct {
	ID         string    `json:"id" yaml:"id" toml:"id"`
	Mode       string    `json:"mode" yaml:"mode" toml:"mode"`
	Module     string    `json:"module" yaml:"module" toml:"module"`
	Directory  string    `json:"directory" yaml:"directory" toml:"directory"`
	Status     string    `json:"status" yaml:"status" toml:"status"`
	Error      string    `json:"error,omitempty" yaml:"error,omitempty" toml:"error,omitempty"`
	StartedAt  time.Time `json:"started_at" yaml:"started_at" toml:"started_at"`
	FinishedAt time.Time `json:"finished_at" yaml:"finished_at" toml:"finished_at"`
	FileCount  int       `json:"file_count" yaml:"file_count" toml:"file_count"`
	Files      []File    `json:"files,omitempty" yaml:"files,omitempty" toml:"files,omitempty"`
}

// File is one file touched by a run.
type File struct {
	Node   string `json:"node" yaml:"node" toml:"node"`
	Path   string `json:"path" yaml:"path" toml:"path"`
	Action string `json:"action" yaml:"action" toml:"action"`
	Level  int    `json:"level" yaml:"level" toml:"level"`
}

// Journal stores runs.
type Journal struct {
	db  *sql.DB
	log *zap.SugaredLogger
}

// New wraps an open database whose schema is already migrated.
func New(db *sql.DB, log *zap.SugaredLogger) *Journal {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Journal{db: db, log: log}
}

// Open opens (creating if needed) the journal at path and migrates it.
func Open(path string, log *zap.SugaredLogger) (*Journal, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, errors.Wrapf(err, "failed to create journal directory for %s", path)
		}
	}

	log.Debugw("Opening journal", "path", path)
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open journal")
	}
	if path == ":memory:" {
		// every pooled connection would get its own empty database
		db.SetMaxOpenConns(1)
	}

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA foreign_keys = ON",
		fmt.Sprintf("PRAGMA busy_timeout = %d", SQLiteBusyTimeoutMS),
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, errors.Wrapf(err, "failed to apply %q", pragma)
		}
	}

	if err := Migrate(db, log); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to migrate journal")
	}

	return New(db, log), nil
}

// Close closes the underlying database.
func (j *Journal) Close() error {
	return j.db.Close()
}

// Record stores run and its files in one transaction.
func (j *Journal) Record(ctx context.Context, run Run) error {
	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin journal transaction")
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, mode, module, directory, status, error, started_at, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Mode, run.Module, run.Directory, run.Status, run.Error,
		run.StartedAt.UTC(), run.FinishedAt.UTC(),
	); err != nil {
		tx.Rollback()
		return errors.Wrapf(err, "record run %s", run.ID)
	}

	for i, f := range run.Files {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO run_files (run_id, seq, node, path, action, level) VALUES (?, ?, ?, ?, ?, ?)`,
			run.ID, i, f.Node, f.Path, f.Action, f.Level,
		); err != nil {
			tx.Rollback()
			return errors.Wrapf(err, "record file %s of run %s", f.Path, run.ID)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrapf(err, "commit run %s", run.ID)
	}

	j.log.Debugw("Recorded run", "run_id", run.ID, "files", len(run.Files), "status", run.Status)
	return nil
}

// List returns the most recent runs, newest first, without their files.
// A limit <= 0 returns every run.
func (j *Journal) List(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := j.db.QueryContext(ctx,
		`SELECT r.id, r.mode, r.module, r.directory, r.status, r.error, r.started_at, r.finished_at,
		        (SELECT COUNT(*) FROM run_files f WHERE f.run_id = r.id)
		 FROM runs r
		 ORDER BY r.started_at DESC, r.id DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "list runs")
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Mode, &r.Module, &r.Directory, &r.Status, &r.Error,
			&r.StartedAt, &r.FinishedAt, &r.FileCount); err != nil {
			return nil, errors.Wrap(err, "scan run")
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate runs")
	}
	return runs, nil
}

// Get returns one run with its files. A run that does not exist yields
// ErrNotFound.
func (j *Journal) Get(ctx context.Context, id string) (*Run, error) {
	var r Run
	err := j.db.QueryRowContext(ctx,
		`SELECT id, mode, module, directory, status, error, started_at, finished_at
		 FROM runs WHERE id = ?`, id,
	).Scan(&r.ID, &r.Mode, &r.Module, &r.Directory, &r.Status, &r.Error, &r.StartedAt, &r.FinishedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrapf(ErrNotFound, "run %s", id)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get run %s", id)
	}

	rows, err := j.db.QueryContext(ctx,
		`SELECT node, path, action, level FROM run_files WHERE run_id = ? ORDER BY seq`, id)
	if err != nil {
		return nil, errors.Wrapf(err, "list files of run %s", id)
	}
	defer rows.Close()

	for rows.Next() {
		var f File
		if err := rows.Scan(&f.Node, &f.Path, &f.Action, &f.Level); err != nil {
			return nil, errors.Wrap(err, "scan file")
		}
		r.Files = append(r.Files, f)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate files")
	}
	r.FileCount = len(r.Files)
	return &r, nil
}

// ErrNotFound is returned by Get for an unknown run ID.
var ErrNotFound = errors.New("run not found")

// FromResult converts an engine result into a journal entry. runErr is the
// error the run ended with, if any; res may be nil when the run failed
// before producing one.
func FromResult(res *engine.Result, started, finished time.Time, runErr error) Run {
	run := Run{
		Status:     StatusSucceeded,
		StartedAt:  started,
		FinishedAt: finished,
	}
	if runErr != nil {
		run.Status = StatusFailed
		run.Error = runErr.Error()
	}
	if res == nil {
		run.ID = engine.NewRunID()
		return run
	}

	run.ID = res.RunID
	run.Mode = string(res.Mode)
	run.Module = res.Module
	run.Directory = res.Directory
	for _, f := range res.Files {
		run.Files = append(run.Files, File{
			Node:   f.Node,
			Path:   f.Path,
			Action: string(f.Action),
			Level:  f.Level,
		})
	}
	run.FileCount = len(run.Files)
	return run
}
