package table

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	// ErrHeaderWritten is returned when a writer receives a second header.
	ErrHeaderWritten = errors.New("header already written")
	// ErrNoHeader is returned when a row arrives before the header.
	ErrNoHeader = errors.New("row written before header")
	// ErrColumnCount is returned when a row does not match the header width.
	ErrColumnCount = errors.New("row width does not match header")
)

// RowWriter persists a table: one header followed by rows of the same width.
type RowWriter interface {
	WriteHeader(columns []string) error
	WriteRow(cells []Cell) error
	Flush() error
}

// CSVOption customises a CSVWriter.
type CSVOption func(*CSVWriter)

// WithHeaderSeparator sets the string placed between header names. Data rows
// always use a bare comma.
func WithHeaderSeparator(sep string) CSVOption {
	return func(w *CSVWriter) {
		w.headerSep = sep
	}
}

// CSVWriter renders rows as comma separated lines terminated by "\n".
type CSVWriter struct {
	out       *bufio.Writer
	headerSep string
	width     int
	buf       strings.Builder
}

// NewCSVWriter wraps out in a buffered CSV writer.
func NewCSVWriter(out io.Writer, opts ...CSVOption) *CSVWriter {
	w := &CSVWriter{
		out:       bufio.NewWriter(out),
		headerSep: ",",
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// WriteHeader writes the column names. It fixes the row width.
func (w *CSVWriter) WriteHeader(columns []string) error {
	if w.width != 0 {
		return ErrHeaderWritten
	}
	if len(columns) == 0 {
		return errors.New("header requires at least one column")
	}
	w.width = len(columns)
	if _, err := w.out.WriteString(strings.Join(columns, w.headerSep)); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := w.out.WriteByte('\n'); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	return nil
}

// WriteRow writes one data row.
func (w *CSVWriter) WriteRow(cells []Cell) error {
	if w.width == 0 {
		return ErrNoHeader
	}
	if len(cells) != w.width {
		return fmt.Errorf("%w: got %d cells, want %d", ErrColumnCount, len(cells), w.width)
	}
	w.buf.Reset()
	for i, c := range cells {
		if i > 0 {
			w.buf.WriteByte(',')
		}
		w.buf.WriteString(c.String())
	}
	w.buf.WriteByte('\n')
	if _, err := w.out.WriteString(w.buf.String()); err != nil {
		return fmt.Errorf("write row: %w", err)
	}
	return nil
}

// Flush pushes buffered output to the underlying writer.
func (w *CSVWriter) Flush() error {
	if err := w.out.Flush(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return nil
}

// Fanout duplicates every call to each writer. All writers are called even
// when one fails; the errors are joined.
type Fanout []RowWriter

// WriteHeader implements RowWriter.
func (f Fanout) WriteHeader(columns []string) error {
	var errs []error
	for _, w := range f {
		errs = append(errs, w.WriteHeader(columns))
	}
	return errors.Join(errs...)
}

// WriteRow implements RowWriter.
func (f Fanout) WriteRow(cells []Cell) error {
	var errs []error
	for _, w := range f {
		errs = append(errs, w.WriteRow(cells))
	}
	return errors.Join(errs...)
}

// Flush implements RowWriter.
func (f Fanout) Flush() error {
	var errs []error
	for _, w := range f {
		errs = append(errs, w.Flush())
	}
	return errors.Join(errs...)
}
