package rcg2csv

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/louisbranch/rcg2csv/internal/rcg"
	"github.com/louisbranch/rcg2csv/internal/rcg/reader"
	"github.com/louisbranch/rcg2csv/internal/sink"
	"github.com/louisbranch/rcg2csv/internal/storage/sqlite"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

const gameLog = `ULG5
(server_param (goal_width 14.02)(half_time 300))
(player_param (player_types 18))
(player_type (id 0)(player_speed_max 1.05))
(player_type (id 1)(player_speed_max 1.1))
(team 0 A B 0 0)
(playmode 0 before_kick_off)
(show 0 ((b) 0 0 0 0) ((l 1) 0 0x9 -49 0 0 0 0 0 (v h 90) (s 8000 1 1 130600) (c 0 0 0 0 0 0 0 0 0 0 0)))
(team 1 A B 1 0)
(show 1 ((b) 0.5 -0.25 1.2 0) ((l 1) 3 0x3 -10.5 2 0.1 0 45 -30 -5 3 (v l 180) (s 7900 0.9 0.95 130000) (c 1 2 3 0 1 4 2 0 0 1 1)))
(show 1 broken
`

func writeLog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "game.rcg")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}
	return path
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
}

func newRecorder() (*tracetest.SpanRecorder, *sdktrace.TracerProvider) {
	sr := tracetest.NewSpanRecorder()
	return sr, sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
}

func TestRunWithoutTablesWarns(t *testing.T) {
	var out, errOut bytes.Buffer
	if err := Run(context.Background(), Config{Source: "missing.rcg"}, &out, &errOut); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got := strings.TrimSpace(errOut.String()); got != NoWorkWarning {
		t.Fatalf("expected %q, got %q", NoWorkWarning, got)
	}
	if out.Len() != 0 {
		t.Fatalf("expected no output, got %q", out.String())
	}
}

func TestRunStdoutConflictBeforeReading(t *testing.T) {
	cfg := Config{
		Source:       filepath.Join(t.TempDir(), "missing.rcg"),
		Match:        TableConfig{Enabled: true},
		ServerParams: TableConfig{Enabled: true, Out: "-"},
	}
	var out bytes.Buffer
	err := Run(context.Background(), cfg, &out, nil)
	if !errors.Is(err, sink.ErrStdoutConflict) {
		t.Fatalf("expected stdout conflict, got %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("expected no rows, got %q", out.String())
	}
}

func TestRunWritesTables(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{
		Source:       writeLog(t, gameLog),
		Match:        TableConfig{Enabled: true},
		ServerParams: TableConfig{Enabled: true, Out: filepath.Join(dir, "sp.csv")},
		PlayerParams: TableConfig{Enabled: true, Out: filepath.Join(dir, "pp.csv")},
		PlayerTypes:  TableConfig{Enabled: true, Out: filepath.Join(dir, "pt.csv")},
	}
	var out, errOut bytes.Buffer
	res, err := run(context.Background(), cfg, &out, &errOut)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	match := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	if len(match) != 3 {
		t.Fatalf("expected header and 2 match rows, got %d lines", len(match))
	}
	if !strings.HasPrefix(match[0], "#, cycle, stopped, playmode, ") {
		t.Fatalf("unexpected match header %q", match[0][:40])
	}
	if !strings.HasPrefix(match[1], "1,0,0,") || !strings.HasPrefix(match[2], "2,1,0,") {
		t.Fatalf("unexpected match rows %q and %q", match[1][:10], match[2][:10])
	}

	sp := readLines(t, cfg.ServerParams.Out)
	if len(sp) != 2 || !strings.HasPrefix(sp[0], "#,goal_width,") || !strings.HasPrefix(sp[1], "1,14.02,") {
		t.Fatalf("unexpected server params %v", sp)
	}
	if pp := readLines(t, cfg.PlayerParams.Out); len(pp) != 2 {
		t.Fatalf("expected header and one player params row, got %d lines", len(pp))
	}
	pt := readLines(t, cfg.PlayerTypes.Out)
	if len(pt) != 3 || !strings.HasPrefix(pt[1], "1,") || !strings.HasPrefix(pt[2], "2,") {
		t.Fatalf("unexpected player types %v", pt)
	}

	if res.Stats.Version != 5 || res.Stats.Skipped != 1 {
		t.Fatalf("unexpected stats %+v", res.Stats)
	}
	want := "read 11 lines (1 skipped); wrote 2 match rows, 1 serverparams rows, 1 playerparams rows, 2 playertypes rows"
	if got := strings.TrimSpace(errOut.String()); got != want {
		t.Fatalf("expected summary %q, got %q", want, got)
	}
}

func TestRunHeaderOnlyTables(t *testing.T) {
	var out bytes.Buffer
	cfg := Config{Source: writeLog(t, "ULG5\n"), ServerParams: TableConfig{Enabled: true}}
	if err := Run(context.Background(), cfg, &out, nil); err != nil {
		t.Fatalf("run: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	if len(lines) != 1 || !strings.HasPrefix(lines[0], "#,goal_width,") {
		t.Fatalf("expected header only, got %v", lines)
	}
}

func TestRunRejectsUnsupportedVersion(t *testing.T) {
	sr, tp := newRecorder()
	cfg := Config{Source: writeLog(t, "ULG3\n(show 1)\n"), Match: TableConfig{Enabled: true}}
	var out bytes.Buffer
	err := Run(context.Background(), cfg, &out, nil, WithTracerProvider(tp))
	if !errors.Is(err, rcg.ErrUnsupportedVersion) {
		t.Fatalf("expected unsupported version, got %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("expected no output, got %q", out.String())
	}
	spans := sr.Ended()
	if len(spans) != 1 || spans[0].Status().Code != codes.Error {
		t.Fatalf("expected one failed span, got %d", len(spans))
	}
}

func TestRunRejectsUnknownFormat(t *testing.T) {
	cfg := Config{Source: writeLog(t, "hello\n"), Match: TableConfig{Enabled: true}}
	if err := Run(context.Background(), cfg, nil, nil); !errors.Is(err, reader.ErrUnknownFormat) {
		t.Fatalf("expected unknown format, got %v", err)
	}
}

func TestRunMissingSource(t *testing.T) {
	cfg := Config{Source: filepath.Join(t.TempDir(), "missing.rcg"), Match: TableConfig{Enabled: true}}
	if err := Run(context.Background(), cfg, nil, nil); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected missing file error, got %v", err)
	}
}

func TestRunArchivesRows(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "archive.db")
	sr, tp := newRecorder()
	cfg := Config{
		Source:      writeLog(t, gameLog),
		SQLitePath:  dbPath,
		Match:       TableConfig{Enabled: true, Out: filepath.Join(t.TempDir(), "match.csv")},
		PlayerTypes: TableConfig{Enabled: true, Out: "-"},
	}
	var out, errOut bytes.Buffer
	if err := Run(context.Background(), cfg, &out, &errOut, WithRunID("run-1"), WithTracerProvider(tp)); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := strings.TrimSpace(errOut.String()); !strings.HasSuffix(got, "; archived as run run-1") {
		t.Fatalf("expected summary to name the archive run, got %q", got)
	}

	store, err := sqlite.Open(context.Background(), dbPath)
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	defer store.Close()
	rec, err := store.GetRun(context.Background(), "run-1")
	if err != nil {
		t.Fatalf("get run: %v", err)
	}
	if rec.Source != cfg.Source || rec.LogVersion != 5 {
		t.Fatalf("unexpected run %+v", rec)
	}
	if rec.Tables[TableMatch] != 2 || rec.Tables[TablePlayerTypes] != 2 {
		t.Fatalf("unexpected archived counts %v", rec.Tables)
	}
	if _, ok := rec.Tables[TableServerParams]; ok {
		t.Fatalf("expected disabled tables not to be archived, got %v", rec.Tables)
	}

	spans := sr.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected one span, got %d", len(spans))
	}
	span := spans[0]
	if span.Name() != "rcg2csv.run" || span.Status().Code == codes.Error {
		t.Fatalf("unexpected span %q status %v", span.Name(), span.Status())
	}
	attrs := make(map[attribute.Key]attribute.Value)
	for _, kv := range span.Attributes() {
		attrs[kv.Key] = kv.Value
	}
	if attrs["rcg2csv.run_id"].AsString() != "run-1" || !attrs["rcg2csv.archive"].AsBool() {
		t.Fatalf("unexpected span attributes %v", span.Attributes())
	}
	if attrs["rcg2csv.rows.match"].AsInt64() != 2 || attrs["rcg2csv.log_version"].AsInt64() != 5 {
		t.Fatalf("unexpected span counts %v", span.Attributes())
	}
}

func TestRunArchiveRejectsReusedRunID(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "archive.db")
	cfg := Config{
		Source:     writeLog(t, gameLog),
		SQLitePath: dbPath,
		Match:      TableConfig{Enabled: true},
	}
	if err := Run(context.Background(), cfg, nil, nil, WithRunID("same")); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := Run(context.Background(), cfg, nil, nil, WithRunID("same")); !errors.Is(err, sqlite.ErrRunExists) {
		t.Fatalf("expected run exists, got %v", err)
	}
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cfg := Config{Source: writeLog(t, gameLog), Match: TableConfig{Enabled: true}}
	if err := Run(ctx, cfg, nil, nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected canceled, got %v", err)
	}
}

func TestRunTruncatedLogKeepsProjectedRows(t *testing.T) {
	var log strings.Builder
	log.WriteString("ULG5\n")
	for cycle := 1; cycle <= 3000; cycle++ {
		fmt.Fprintf(&log, "(show %d ((b) %d.25 -%d.5 0.1 0) ((l 1) 0 0x1 %d 3 0 0 0 0 (v h 90) (s 8000 1 1 130600) (c %d 0 0 0 0 0 0 0 0 0 0)))\n",
			cycle, cycle%50, cycle%30, cycle%40, cycle)
	}
	var gz bytes.Buffer
	zw := gzip.NewWriter(&gz)
	if _, err := zw.Write([]byte(log.String())); err != nil {
		t.Fatalf("gzip: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	dir := t.TempDir()
	src := filepath.Join(dir, "game.rcg.gz")
	if err := os.WriteFile(src, gz.Bytes()[:gz.Len()*2/3], 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}

	cfg := Config{Source: src, Match: TableConfig{Enabled: true, Out: filepath.Join(dir, "match.csv")}}
	err := Run(context.Background(), cfg, nil, nil)
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("expected truncated stream error, got %v", err)
	}

	lines := readLines(t, cfg.Match.Out)
	if len(lines) < 2 {
		t.Fatalf("expected rows read before the truncation, got %d lines", len(lines))
	}
	width := len(strings.Split(lines[0], ", "))
	for i, line := range lines[1:] {
		fields := strings.Split(line, ",")
		if len(fields) != width {
			t.Fatalf("row %d: expected %d fields, got %d", i+1, width, len(fields))
		}
		if fields[0] != strconv.Itoa(i+1) {
			t.Fatalf("expected row index %d, got %s", i+1, fields[0])
		}
	}
}

func TestSummary(t *testing.T) {
	res := Result{
		Stats: reader.Stats{Lines: 6012, Skipped: 3},
		Rows:  map[string]uint64{TableMatch: 6000, TableServerParams: 1},
	}
	want := "read 6,012 lines (3 skipped); wrote 6,000 match rows, 1 serverparams rows"
	if got := summary(res, []string{TableMatch, TableServerParams}); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}

	res.Archived = "run-7"
	if got := summary(res, []string{TableMatch, TableServerParams}); got != want+"; archived as run run-7" {
		t.Fatalf("expected archive run in summary, got %q", got)
	}
}
