// Package sink opens the output streams of the enabled tables.
package sink

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrStdoutConflict is returned when more than one enabled table would write
// to standard output.
var ErrStdoutConflict = errors.New("more than one table writes to stdout")

// Spec names one table output.
type Spec struct {
	Table   string
	Enabled bool
	// Path is the output file. "" or "-" selects standard output.
	Path string
}

// UsesStdout reports whether the output path resolves to standard output.
func (s Spec) UsesStdout() bool {
	p := strings.TrimSpace(s.Path)
	return p == "" || p == "-"
}

// Router owns the output streams of one run.
type Router struct {
	writers map[string]io.Writer
	files   []*os.File
	closed  bool
}

// Option customises Open.
type Option func(*options)

type options struct {
	stdout io.Writer
	create func(path string) (*os.File, error)
}

// WithStdout replaces os.Stdout as the standard output stream.
func WithStdout(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.stdout = w
		}
	}
}

// Open validates specs and creates every enabled output file. Nothing is
// opened when the specs conflict on standard output.
func Open(specs []Spec, opts ...Option) (*Router, error) {
	o := options{stdout: os.Stdout, create: os.Create}
	for _, opt := range opts {
		opt(&o)
	}

	var stdoutTables []string
	seen := make(map[string]bool, len(specs))
	for _, s := range specs {
		if !s.Enabled {
			continue
		}
		if seen[s.Table] {
			return nil, fmt.Errorf("table %q configured twice", s.Table)
		}
		seen[s.Table] = true
		if s.UsesStdout() {
			stdoutTables = append(stdoutTables, s.Table)
		}
	}
	if len(stdoutTables) > 1 {
		return nil, fmt.Errorf("%w: %s", ErrStdoutConflict, strings.Join(stdoutTables, ", "))
	}

	r := &Router{writers: make(map[string]io.Writer, len(specs))}
	for _, s := range specs {
		if !s.Enabled {
			continue
		}
		if s.UsesStdout() {
			r.writers[s.Table] = o.stdout
			continue
		}
		path := strings.TrimSpace(s.Path)
		f, err := o.create(path)
		if err != nil {
			closeErr := r.Close()
			return nil, errors.Join(fmt.Errorf("open %s output %s: %w", s.Table, path, err), closeErr)
		}
		r.files = append(r.files, f)
		r.writers[s.Table] = f
	}
	return r, nil
}

// Writer returns the stream for an enabled table.
func (r *Router) Writer(table string) (io.Writer, bool) {
	w, ok := r.writers[table]
	return w, ok
}

// Close closes every opened file once. Standard output is left open.
func (r *Router) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	var errs []error
	for _, f := range r.files {
		if err := f.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", f.Name(), err))
		}
	}
	return errors.Join(errs...)
}
