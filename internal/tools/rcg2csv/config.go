// Package rcg2csv converts a game log into the CSV tables selected on the
// command line.
package rcg2csv

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/louisbranch/rcg2csv/internal/platform/cmd"
	"github.com/louisbranch/rcg2csv/internal/platform/config"
)

// Table names, used for output routing, YAML keys and archive tables.
const (
	TableMatch        = "match"
	TableServerParams = "serverparams"
	TablePlayerParams = "playerparams"
	TablePlayerTypes  = "playertypes"
)

// TableConfig selects one table and its output. An empty Out or "-" writes
// to standard output.
type TableConfig struct {
	Enabled bool   `yaml:"enabled"`
	Out     string `yaml:"out"`
}

// Config holds rcg2csv command configuration.
type Config struct {
	Source       string
	ConfigPath   string
	SQLitePath   string
	Match        TableConfig
	ServerParams TableConfig
	PlayerParams TableConfig
	PlayerTypes  TableConfig
}

// Tables returns the table settings in output order.
func (c Config) Tables() []NamedTable {
	return []NamedTable{
		{Name: TableMatch, TableConfig: c.Match},
		{Name: TableServerParams, TableConfig: c.ServerParams},
		{Name: TablePlayerParams, TableConfig: c.PlayerParams},
		{Name: TablePlayerTypes, TableConfig: c.PlayerTypes},
	}
}

// Enabled returns the names of the enabled tables.
func (c Config) Enabled() []string {
	var names []string
	for _, t := range c.Tables() {
		if t.Enabled {
			names = append(names, t.Name)
		}
	}
	return names
}

// NamedTable pairs a table name with its settings.
type NamedTable struct {
	Name string
	TableConfig
}

func (c *Config) table(name string) *TableConfig {
	switch name {
	case TableMatch:
		return &c.Match
	case TableServerParams:
		return &c.ServerParams
	case TablePlayerParams:
		return &c.PlayerParams
	case TablePlayerTypes:
		return &c.PlayerTypes
	}
	return nil
}

type envConfig struct {
	MatchOut        string `env:"MATCH_OUT"`
	ServerParamsOut string `env:"SERVERPARAMS_OUT"`
	PlayerParamsOut string `env:"PLAYERPARAMS_OUT"`
	PlayerTypesOut  string `env:"PLAYERTYPES_OUT"`
	SQLitePath      string `env:"SQLITE_PATH"`
	ConfigPath      string `env:"CONFIG"`
}

type fileConfig struct {
	Tables map[string]TableConfig `yaml:"tables"`
	SQLite string                 `yaml:"sqlite"`
}

// tableFlag binds the enable switch and output flags of one table. Every
// table has a short and a long spelling for both.
type tableFlag struct {
	table      string
	short      string
	outShort   string
	help       string
	enabled    bool
	out        string
	enabledSet []string
	outSet     []string
}

func newTableFlags() []*tableFlag {
	return []*tableFlag{
		{table: TableMatch, short: "m", outShort: "mo", help: "match"},
		{table: TableServerParams, short: "sp", outShort: "spo", help: "server parameters"},
		{table: TablePlayerParams, short: "pp", outShort: "ppo", help: "player parameters"},
		{table: TablePlayerTypes, short: "pt", outShort: "pto", help: "player types"},
	}
}

func (f *tableFlag) register(fs *flag.FlagSet) {
	f.enabledSet = []string{f.short, f.table}
	f.outSet = []string{f.outShort, f.table + "-out"}
	for _, name := range f.enabledSet {
		fs.BoolVar(&f.enabled, name, false, "print the "+f.help+" table")
	}
	for _, name := range f.outSet {
		fs.StringVar(&f.out, name, "", "`path` of the "+f.help+" table (default stdout)")
	}
}

// ParseConfig builds a Config from the environment, the optional YAML file
// and args, in increasing order of precedence. Flags and the log path may be
// interleaved.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var envCfg envConfig
	if err := cmd.ParseConfig(&envCfg); err != nil {
		return Config{}, err
	}
	cfg := Config{
		ConfigPath:   envCfg.ConfigPath,
		SQLitePath:   envCfg.SQLitePath,
		Match:        TableConfig{Out: envCfg.MatchOut},
		ServerParams: TableConfig{Out: envCfg.ServerParamsOut},
		PlayerParams: TableConfig{Out: envCfg.PlayerParamsOut},
		PlayerTypes:  TableConfig{Out: envCfg.PlayerTypesOut},
	}

	tables := newTableFlags()
	for _, t := range tables {
		t.register(fs)
	}
	var configPath, sqlitePath string
	fs.StringVar(&configPath, "config", "", "optional YAML `file` with table settings (env RCG2CSV_CONFIG)")
	fs.StringVar(&sqlitePath, "sqlite", "", "optional SQLite `file` archiving every emitted row (env RCG2CSV_SQLITE_PATH)")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s [options] <RCGFile>[.gz]\n\nOptions:\n", fs.Name())
		fs.PrintDefaults()
	}

	positional, err := parseInterspersed(fs, args)
	if err != nil {
		return Config{}, err
	}
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if set["config"] {
		cfg.ConfigPath = configPath
	}
	var file fileConfig
	if err := config.LoadYAML(cfg.ConfigPath, &file); err != nil {
		return Config{}, err
	}
	for name, tc := range file.Tables {
		dst := cfg.table(name)
		if dst == nil {
			return Config{}, fmt.Errorf("config %s: unknown table %q", cfg.ConfigPath, name)
		}
		dst.Enabled = tc.Enabled
		if tc.Out != "" {
			dst.Out = tc.Out
		}
	}
	if file.SQLite != "" {
		cfg.SQLitePath = file.SQLite
	}

	for _, t := range tables {
		dst := cfg.table(t.table)
		if anySet(set, t.enabledSet) {
			dst.Enabled = t.enabled
		}
		if anySet(set, t.outSet) {
			dst.Out = t.out
		}
	}
	if set["sqlite"] {
		cfg.SQLitePath = sqlitePath
	}

	if len(positional) != 1 {
		fs.Usage()
		return Config{}, fmt.Errorf("expected exactly one RCG file, got %d", len(positional))
	}
	cfg.Source = strings.TrimSpace(positional[0])
	if cfg.Source == "" {
		return Config{}, errors.New("RCG file path is empty")
	}
	return cfg, nil
}

// parseInterspersed parses args, collecting positional arguments found
// between flags. Everything after "--" is positional.
func parseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := cmd.ParseArgs(fs, args); err != nil {
			return nil, err
		}
		rest := fs.Args()
		if len(rest) == 0 {
			return positional, nil
		}
		consumed := len(args) - len(rest)
		if consumed > 0 && args[consumed-1] == "--" {
			return append(positional, rest...), nil
		}
		positional = append(positional, rest[0])
		args = rest[1:]
	}
}

func anySet(set map[string]bool, names []string) bool {
	for _, n := range names {
		if set[n] {
			return true
		}
	}
	return false
}
