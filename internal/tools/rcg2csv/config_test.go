package rcg2csv

import (
	"errors"
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("rcg2csv", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func TestParseConfigFlags(t *testing.T) {
	cfg, err := ParseConfig(newFlagSet(), []string{"-m", "-spo", "sp.csv", "-serverparams", "game.rcg.gz", "-pt"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Source != "game.rcg.gz" {
		t.Fatalf("expected source game.rcg.gz, got %q", cfg.Source)
	}
	if !cfg.Match.Enabled || cfg.Match.Out != "" {
		t.Fatalf("expected match on stdout, got %+v", cfg.Match)
	}
	if !cfg.ServerParams.Enabled || cfg.ServerParams.Out != "sp.csv" {
		t.Fatalf("expected server params to sp.csv, got %+v", cfg.ServerParams)
	}
	if cfg.PlayerParams.Enabled {
		t.Fatal("expected player params disabled")
	}
	if !cfg.PlayerTypes.Enabled {
		t.Fatal("expected player types enabled after the positional argument")
	}
	want := []string{TableMatch, TableServerParams, TablePlayerTypes}
	got := cfg.Enabled()
	if len(got) != len(want) {
		t.Fatalf("expected enabled %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected enabled %v, got %v", want, got)
		}
	}
}

func TestParseConfigLongFlags(t *testing.T) {
	cfg, err := ParseConfig(newFlagSet(), []string{
		"-match", "-match-out", "m.csv",
		"-playerparams", "-playerparams-out", "pp.csv",
		"-playertypes-out", "pt.csv",
		"-sqlite", "archive.db",
		"game.rcg",
	})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Match.Out != "m.csv" || cfg.PlayerParams.Out != "pp.csv" || cfg.PlayerTypes.Out != "pt.csv" {
		t.Fatalf("unexpected outputs %+v", cfg)
	}
	if cfg.PlayerTypes.Enabled {
		t.Fatal("expected an output path alone not to enable a table")
	}
	if cfg.SQLitePath != "archive.db" {
		t.Fatalf("expected sqlite path, got %q", cfg.SQLitePath)
	}
}

func TestParseConfigPositionalCount(t *testing.T) {
	for _, args := range [][]string{{}, {"-m"}, {"a.rcg", "b.rcg"}, {"-m", "a.rcg", "--", "b.rcg"}} {
		if _, err := ParseConfig(newFlagSet(), args); err == nil {
			t.Fatalf("expected positional error for %v", args)
		}
	}
}

func TestParseConfigDoubleDash(t *testing.T) {
	cfg, err := ParseConfig(newFlagSet(), []string{"-m", "--", "-odd.rcg"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Source != "-odd.rcg" {
		t.Fatalf("expected source after --, got %q", cfg.Source)
	}
}

func TestParseConfigHelp(t *testing.T) {
	for _, arg := range []string{"-h", "-help"} {
		if _, err := ParseConfig(newFlagSet(), []string{arg}); !errors.Is(err, flag.ErrHelp) {
			t.Fatalf("expected help for %s, got %v", arg, err)
		}
	}
}

func TestParseConfigUnknownFlag(t *testing.T) {
	if _, err := ParseConfig(newFlagSet(), []string{"-x", "game.rcg"}); err == nil {
		t.Fatal("expected unknown flag error")
	}
}

func TestParseConfigPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rcg2csv.yaml")
	yaml := "tables:\n" +
		"  match: {enabled: true, out: yaml-match.csv}\n" +
		"  playertypes: {enabled: true}\n" +
		"sqlite: yaml.db\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("RCG2CSV_CONFIG", path)
	t.Setenv("RCG2CSV_MATCH_OUT", "env-match.csv")
	t.Setenv("RCG2CSV_PLAYERTYPES_OUT", "env-pt.csv")
	t.Setenv("RCG2CSV_SERVERPARAMS_OUT", "env-sp.csv")
	t.Setenv("RCG2CSV_SQLITE_PATH", "env.db")

	cfg, err := ParseConfig(newFlagSet(), []string{"-sqlite", "flag.db", "game.rcg"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if !cfg.Match.Enabled || cfg.Match.Out != "yaml-match.csv" {
		t.Fatalf("expected yaml to override env for match, got %+v", cfg.Match)
	}
	if !cfg.PlayerTypes.Enabled || cfg.PlayerTypes.Out != "env-pt.csv" {
		t.Fatalf("expected env output to survive a yaml table without out, got %+v", cfg.PlayerTypes)
	}
	if cfg.ServerParams.Enabled || cfg.ServerParams.Out != "env-sp.csv" {
		t.Fatalf("expected env output without enabling, got %+v", cfg.ServerParams)
	}
	if cfg.SQLitePath != "flag.db" {
		t.Fatalf("expected flag to override sqlite path, got %q", cfg.SQLitePath)
	}

	cfg, err = ParseConfig(newFlagSet(), []string{"-match=false", "-mo", "flag.csv", "game.rcg"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Match.Enabled || cfg.Match.Out != "flag.csv" {
		t.Fatalf("expected flags to override yaml, got %+v", cfg.Match)
	}
}

func TestParseConfigFlagOverridesConfigPath(t *testing.T) {
	t.Setenv("RCG2CSV_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

	path := filepath.Join(t.TempDir(), "flag.yaml")
	if err := os.WriteFile(path, []byte("tables:\n  serverparams: {enabled: true}\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := ParseConfig(newFlagSet(), []string{"-config", path, "game.rcg"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if !cfg.ServerParams.Enabled {
		t.Fatal("expected the flag config file to be used")
	}
}

func TestParseConfigRejectsBadYAML(t *testing.T) {
	dir := t.TempDir()
	for name, content := range map[string]string{
		"unknown-table.yaml": "tables:\n  ball: {enabled: true}\n",
		"unknown-key.yaml":   "colour: blue\n",
		"broken.yaml":        "tables: [\n",
	} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write config: %v", err)
		}
		if _, err := ParseConfig(newFlagSet(), []string{"-config", path, "game.rcg"}); err == nil {
			t.Fatalf("expected %s to be rejected", name)
		}
	}
}
