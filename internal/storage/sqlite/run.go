package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/louisbranch/rcg2csv/internal/table"
)

var identPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// reservedColumns are added to every archived table.
var reservedColumns = map[string]bool{"run_id": true, "row_index": true}

var reservedTables = map[string]bool{"runs": true, "run_tables": true, "schema_migrations": true}

// Run is one archive transaction. It is not safe for concurrent use.
type Run struct {
	// ctx is the context the transaction was opened with. Table writers
	// implement table.RowWriter, which carries no context of its own.
	ctx     context.Context
	id      string
	tx      *sql.Tx
	writers map[string]*TableWriter
	closed  bool
}

// ID returns the run id.
func (r *Run) ID() string {
	return r.id
}

// TableWriter returns a row writer archiving into the SQL table name. The
// table is created from the header on first use.
func (r *Run) TableWriter(name string) (*TableWriter, error) {
	if r.closed {
		return nil, ErrRunClosed
	}
	if !identPattern.MatchString(name) || reservedTables[name] {
		return nil, fmt.Errorf("invalid table name %q", name)
	}
	if _, ok := r.writers[name]; ok {
		return nil, fmt.Errorf("table %q already has a writer", name)
	}
	w := &TableWriter{run: r, name: name}
	r.writers[name] = w
	return w, nil
}

// Finish flushes every table writer, records the log version and commits.
func (r *Run) Finish(logVersion int) error {
	if r.closed {
		return ErrRunClosed
	}
	for _, w := range r.writers {
		if err := w.Flush(); err != nil {
			_ = r.Abort()
			return err
		}
	}
	if _, err := r.tx.ExecContext(r.ctx,
		`UPDATE runs SET log_version = ?, finished_at = ? WHERE run_id = ?`,
		logVersion, toMillis(time.Now()), r.id,
	); err != nil {
		_ = r.Abort()
		return fmt.Errorf("finish run: %w", err)
	}
	r.closed = true
	if err := r.tx.Commit(); err != nil {
		return fmt.Errorf("commit run: %w", err)
	}
	return nil
}

// Abort discards every row written by the run.
func (r *Run) Abort() error {
	if r.closed {
		return nil
	}
	r.closed = true
	for _, w := range r.writers {
		w.closeStmt()
	}
	if err := r.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("rollback run: %w", err)
	}
	return nil
}

// TableWriter archives the rows of one table inside its run's transaction.
type TableWriter struct {
	run      *Run
	name     string
	columns  []string
	stmt     *sql.Stmt
	rows     int64
	flushed  int64
	recorded bool
}

// ColumnName maps a CSV header name to a SQL column name.
func ColumnName(header string) string {
	name := strings.ToLower(strings.TrimSpace(header))
	if name == "#" {
		return "row"
	}
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	name = b.String()
	if name == "" || (name[0] >= '0' && name[0] <= '9') {
		name = "c_" + name
	}
	return name
}

// WriteHeader creates the SQL table when it does not exist yet.
func (w *TableWriter) WriteHeader(columns []string) error {
	if w.run.closed {
		return ErrRunClosed
	}
	if w.columns != nil {
		return table.ErrHeaderWritten
	}
	if len(columns) == 0 {
		return errors.New("header requires at least one column")
	}
	names := make([]string, len(columns))
	seen := make(map[string]bool, len(columns))
	for i, c := range columns {
		name := ColumnName(c)
		if seen[name] || reservedColumns[name] {
			return fmt.Errorf("archive %s: duplicate column %q", w.name, name)
		}
		seen[name] = true
		names[i] = name
	}

	var ddl strings.Builder
	fmt.Fprintf(&ddl, `CREATE TABLE IF NOT EXISTS %q (run_id TEXT NOT NULL REFERENCES runs(run_id) ON DELETE CASCADE, row_index INTEGER NOT NULL`, w.name)
	for _, name := range names {
		fmt.Fprintf(&ddl, `, %q TEXT`, name)
	}
	ddl.WriteString(`, PRIMARY KEY (run_id, row_index))`)
	if _, err := w.run.tx.ExecContext(w.run.ctx, ddl.String()); err != nil {
		return fmt.Errorf("archive %s: create table: %w", w.name, err)
	}

	quoted := make([]string, len(names))
	for i, name := range names {
		quoted[i] = fmt.Sprintf("%q", name)
	}
	insert := fmt.Sprintf(`INSERT INTO %q (run_id, row_index, %s) VALUES (?, ?%s)`,
		w.name, strings.Join(quoted, ", "), strings.Repeat(", ?", len(names)))
	stmt, err := w.run.tx.PrepareContext(w.run.ctx, insert)
	if err != nil {
		return fmt.Errorf("archive %s: prepare insert: %w", w.name, err)
	}
	w.columns = names
	w.stmt = stmt
	return nil
}

// WriteRow inserts one row. Blank cells are stored as NULL.
func (w *TableWriter) WriteRow(cells []table.Cell) error {
	if w.run.closed {
		return ErrRunClosed
	}
	if w.columns == nil {
		return table.ErrNoHeader
	}
	if len(cells) != len(w.columns) {
		return fmt.Errorf("%w: got %d cells, want %d", table.ErrColumnCount, len(cells), len(w.columns))
	}
	args := make([]any, 0, len(cells)+2)
	args = append(args, w.run.id, w.rows+1)
	for _, c := range cells {
		if v, ok := c.Value(); ok {
			args = append(args, v)
		} else {
			args = append(args, nil)
		}
	}
	if _, err := w.stmt.ExecContext(w.run.ctx, args...); err != nil {
		return fmt.Errorf("archive %s: insert row: %w", w.name, err)
	}
	w.rows++
	return nil
}

// Flush records the table's row count in the run. Rows become durable when
// the run finishes.
func (w *TableWriter) Flush() error {
	if w.run.closed {
		return ErrRunClosed
	}
	if w.columns == nil || (w.recorded && w.flushed == w.rows) {
		return nil
	}
	if _, err := w.run.tx.ExecContext(w.run.ctx,
		`INSERT INTO run_tables (run_id, table_name, row_count) VALUES (?, ?, ?)
ON CONFLICT(run_id, table_name) DO UPDATE SET row_count = excluded.row_count`,
		w.run.id, w.name, w.rows,
	); err != nil {
		return fmt.Errorf("archive %s: record row count: %w", w.name, err)
	}
	w.flushed = w.rows
	w.recorded = true
	return nil
}

// Rows returns the number of rows inserted.
func (w *TableWriter) Rows() int64 {
	return w.rows
}

func (w *TableWriter) closeStmt() {
	if w.stmt != nil {
		_ = w.stmt.Close()
		w.stmt = nil
	}
}
