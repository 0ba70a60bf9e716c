// Package sqlite archives the rows of every emitted table in a SQLite
// database, one SQL table per CSV table, keyed by run.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/rcg2csv/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/rcg2csv/internal/storage/sqlite/migrations"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

var (
	// ErrRunExists is returned when a run id is reused.
	ErrRunExists = errors.New("run already archived")
	// ErrNotFound is returned for unknown runs.
	ErrNotFound = errors.New("run not found")
	// ErrRunClosed is returned when a finished or aborted run is used.
	ErrRunClosed = errors.New("run is closed")
)

// Store is a SQLite archive.
type Store struct {
	sqlDB *sql.DB
}

// RunRecord describes one archived run.
type RunRecord struct {
	ID         string
	Source     string
	LogVersion int
	StartedAt  time.Time
	FinishedAt time.Time
	// Tables maps archived table names to their row counts.
	Tables map[string]int64
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens the archive at path and applies the embedded migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// A run holds its transaction for the whole parse and every table
	// writer shares it.
	sqlDB.SetMaxOpenConns(1)
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.Apply(ctx, sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// BeginRun records a new run and opens the transaction its rows are written
// in. The transaction is bound to ctx: cancelling ctx discards the run.
func (s *Store) BeginRun(ctx context.Context, runID, source string) (*Run, error) {
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	runID = strings.TrimSpace(runID)
	if runID == "" {
		return nil, fmt.Errorf("run id is required")
	}
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin run: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (run_id, source, started_at) VALUES (?, ?, ?)`,
		runID, source, toMillis(time.Now()),
	); err != nil {
		_ = tx.Rollback()
		if isConstraintError(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunExists, runID)
		}
		return nil, fmt.Errorf("insert run: %w", err)
	}
	return &Run{ctx: ctx, id: runID, tx: tx, writers: make(map[string]*TableWriter)}, nil
}

// GetRun loads an archived run with its per-table row counts.
func (s *Store) GetRun(ctx context.Context, runID string) (RunRecord, error) {
	if err := ctx.Err(); err != nil {
		return RunRecord{}, err
	}
	var (
		rec      = RunRecord{ID: runID, Tables: make(map[string]int64)}
		version  sql.NullInt64
		started  int64
		finished sql.NullInt64
	)
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT source, log_version, started_at, finished_at FROM runs WHERE run_id = ?`, runID,
	).Scan(&rec.Source, &version, &started, &finished)
	if errors.Is(err, sql.ErrNoRows) {
		return RunRecord{}, fmt.Errorf("%w: %s", ErrNotFound, runID)
	}
	if err != nil {
		return RunRecord{}, fmt.Errorf("get run: %w", err)
	}
	rec.LogVersion = int(version.Int64)
	rec.StartedAt = fromMillis(started)
	if finished.Valid {
		rec.FinishedAt = fromMillis(finished.Int64)
	}

	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT table_name, row_count FROM run_tables WHERE run_id = ? ORDER BY table_name`, runID)
	if err != nil {
		return RunRecord{}, fmt.Errorf("list run tables: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			name  string
			count int64
		)
		if err := rows.Scan(&name, &count); err != nil {
			return RunRecord{}, fmt.Errorf("scan run table: %w", err)
		}
		rec.Tables[name] = count
	}
	if err := rows.Err(); err != nil {
		return RunRecord{}, fmt.Errorf("list run tables: %w", err)
	}
	return rec, nil
}

func isConstraintError(err error) bool {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}
