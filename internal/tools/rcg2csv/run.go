package rcg2csv

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/louisbranch/rcg2csv/internal/projection"
	"github.com/louisbranch/rcg2csv/internal/rcg/reader"
	"github.com/louisbranch/rcg2csv/internal/sink"
	"github.com/louisbranch/rcg2csv/internal/storage/sqlite"
	"github.com/louisbranch/rcg2csv/internal/table"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	tracerName = "github.com/louisbranch/rcg2csv/internal/tools/rcg2csv"

	// NoWorkWarning is printed when no table is enabled.
	NoWorkWarning = "WARNING: No work to be done."
)

// Option customises Run.
type Option func(*runOptions)

type runOptions struct {
	tracerProvider trace.TracerProvider
	newRunID       func() string
}

// WithTracerProvider replaces the global tracer provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *runOptions) {
		if tp != nil {
			o.tracerProvider = tp
		}
	}
}

// WithRunID fixes the archive run id.
func WithRunID(id string) Option {
	return func(o *runOptions) {
		if id != "" {
			o.newRunID = func() string { return id }
		}
	}
}

// Result summarises a conversion.
type Result struct {
	RunID string
	Stats reader.Stats
	Rows  map[string]uint64
	// Archived is the archive run id, empty when no archive was written.
	Archived string
}

// Run converts cfg.Source into the enabled tables. Tables routed to standard
// output are written to out; warnings and the summary go to errOut.
func Run(ctx context.Context, cfg Config, out io.Writer, errOut io.Writer, opts ...Option) error {
	_, err := run(ctx, cfg, out, errOut, opts...)
	return err
}

func run(ctx context.Context, cfg Config, out io.Writer, errOut io.Writer, opts ...Option) (res Result, err error) {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	o := runOptions{tracerProvider: otel.GetTracerProvider(), newRunID: uuid.NewString}
	for _, opt := range opts {
		opt(&o)
	}

	enabled := cfg.Enabled()
	if len(enabled) == 0 {
		fmt.Fprintln(errOut, NoWorkWarning)
		return Result{}, nil
	}

	specs := make([]sink.Spec, 0, 4)
	for _, t := range cfg.Tables() {
		specs = append(specs, sink.Spec{Table: t.Name, Enabled: t.Enabled, Path: t.Out})
	}
	router, err := sink.Open(specs, sink.WithStdout(out))
	if err != nil {
		return Result{}, fmt.Errorf("open outputs: %w", err)
	}
	defer func() {
		if closeErr := router.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close outputs: %w", closeErr))
		}
	}()

	src, err := reader.Open(cfg.Source)
	if err != nil {
		return Result{}, err
	}
	defer src.Close()

	res = Result{RunID: o.newRunID(), Rows: make(map[string]uint64, len(enabled))}
	ctx, span := o.tracerProvider.Tracer(tracerName).Start(ctx, "rcg2csv.run", trace.WithAttributes(
		attribute.String("rcg2csv.source", cfg.Source),
		attribute.String("rcg2csv.run_id", res.RunID),
		attribute.StringSlice("rcg2csv.tables", enabled),
		attribute.Bool("rcg2csv.archive", cfg.SQLitePath != ""),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	var archive *sqlite.Run
	if cfg.SQLitePath != "" {
		store, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return res, fmt.Errorf("open archive: %w", err)
		}
		defer store.Close()
		archive, err = store.BeginRun(ctx, res.RunID, cfg.Source)
		if err != nil {
			return res, fmt.Errorf("open archive: %w", err)
		}
		defer func() { _ = archive.Abort() }()
	}

	var csvs []*table.CSVWriter
	writer := func(name string, csvOpts ...table.CSVOption) (table.RowWriter, error) {
		w, _ := router.Writer(name)
		csv := table.NewCSVWriter(w, csvOpts...)
		csvs = append(csvs, csv)
		if archive == nil {
			return csv, nil
		}
		aw, err := archive.TableWriter(name)
		if err != nil {
			return nil, fmt.Errorf("archive %s: %w", name, err)
		}
		return table.Fanout{csv, aw}, nil
	}

	d := &projection.Dispatcher{}
	if cfg.Match.Enabled {
		w, err := writer(TableMatch, table.WithHeaderSeparator(projection.MatchHeaderSeparator))
		if err != nil {
			return res, err
		}
		d.Match = projection.NewMatchTable(w)
	}
	if cfg.ServerParams.Enabled {
		w, err := writer(TableServerParams)
		if err != nil {
			return res, err
		}
		d.ServerParams = projection.NewServerParamTable(w, nil)
	}
	if cfg.PlayerParams.Enabled {
		w, err := writer(TablePlayerParams)
		if err != nil {
			return res, err
		}
		d.PlayerParams = projection.NewPlayerParamTable(w, nil)
	}
	if cfg.PlayerTypes.Enabled {
		w, err := writer(TablePlayerTypes)
		if err != nil {
			return res, err
		}
		d.PlayerTypes = projection.NewPlayerTypeTable(w, nil)
	}

	res.Stats, err = reader.Parse(ctx, src, d)
	recordRows(&res, d)
	span.SetAttributes(
		attribute.Int("rcg2csv.log_version", res.Stats.Version),
		attribute.Int("rcg2csv.lines", res.Stats.Lines),
		attribute.Int("rcg2csv.skipped", res.Stats.Skipped),
	)
	for name, n := range res.Rows {
		span.SetAttributes(attribute.Int64("rcg2csv.rows."+name, int64(n)))
	}
	if err != nil {
		// Keep the rows projected before the failure; headers are not
		// forced and the archive run is rolled back.
		errs := []error{fmt.Errorf("convert %s: %w", cfg.Source, err)}
		for _, csv := range csvs {
			errs = append(errs, csv.Flush())
		}
		return res, errors.Join(errs...)
	}

	if archive != nil {
		if err := archive.Finish(res.Stats.Version); err != nil {
			return res, fmt.Errorf("archive: %w", err)
		}
		res.Archived = archive.ID()
	}

	fmt.Fprintln(errOut, summary(res, enabled))
	return res, nil
}

func recordRows(res *Result, d *projection.Dispatcher) {
	if d.Match != nil {
		res.Rows[TableMatch] = d.Match.Rows()
	}
	if d.ServerParams != nil {
		res.Rows[TableServerParams] = d.ServerParams.Rows()
	}
	if d.PlayerParams != nil {
		res.Rows[TablePlayerParams] = d.PlayerParams.Rows()
	}
	if d.PlayerTypes != nil {
		res.Rows[TablePlayerTypes] = d.PlayerTypes.Rows()
	}
}

// summary renders "read 6,012 lines (3 skipped); wrote 6,000 match rows, ...",
// followed by the archive run id when rows were archived.
func summary(res Result, enabled []string) string {
	parts := make([]string, 0, len(enabled))
	for _, name := range enabled {
		parts = append(parts, fmt.Sprintf("%s %s rows", humanize.Comma(int64(res.Rows[name])), name))
	}
	line := fmt.Sprintf("read %s lines (%s skipped); wrote %s",
		humanize.Comma(int64(res.Stats.Lines)),
		humanize.Comma(int64(res.Stats.Skipped)),
		strings.Join(parts, ", "),
	)
	if res.Archived != "" {
		line += "; archived as run " + res.Archived
	}
	return line
}
