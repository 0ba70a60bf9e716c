package projection

import (
	"bytes"
	"errors"
	"strings"

	"github.com/louisbranch/rcg2csv/internal/table"
)

type fakeRowWriter struct {
	header  []string
	rows    [][]table.Cell
	flushes int
	rowErr  error
}

func (f *fakeRowWriter) WriteHeader(columns []string) error {
	if f.header != nil {
		return table.ErrHeaderWritten
	}
	f.header = append([]string(nil), columns...)
	return nil
}

func (f *fakeRowWriter) WriteRow(cells []table.Cell) error {
	if f.rowErr != nil {
		return f.rowErr
	}
	f.rows = append(f.rows, append([]table.Cell(nil), cells...))
	return nil
}

func (f *fakeRowWriter) Flush() error {
	f.flushes++
	return nil
}

// flakyRowWriter accepts everything except the listed WriteRow calls
// (1-based), which fail with errArchive.
type flakyRowWriter struct {
	failOn map[int]bool
	calls  int
}

func (f *flakyRowWriter) WriteHeader([]string) error { return nil }

func (f *flakyRowWriter) WriteRow([]table.Cell) error {
	f.calls++
	if f.failOn[f.calls] {
		return errArchive
	}
	return nil
}

func (f *flakyRowWriter) Flush() error { return nil }

var (
	errDecode  = errors.New("decode failed")
	errArchive = errors.New("archive write failed")
)

// csvLines splits flushed CSV output into lines without the final newline.
func csvLines(buf *bytes.Buffer) []string {
	out := strings.TrimSuffix(buf.String(), "\n")
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}
