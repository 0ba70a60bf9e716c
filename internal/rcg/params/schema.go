// Package params decodes the server_param, player_param and player_type
// messages of a game log into ordered parameter sets.
package params

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/louisbranch/rcg2csv/internal/rcg/sexp"
	"github.com/louisbranch/rcg2csv/internal/table"
)

// Kind is the value type of a parameter.
type Kind uint8

const (
	KindInt Kind = iota
	KindFloat
	KindBool
	KindString
)

// Column describes one parameter: its header name, message key, type and
// the value used when the message omits it.
type Column struct {
	Name    string
	Key     string
	Kind    Kind
	Default string
}

// Schema is an ordered list of parameter columns.
type Schema struct {
	Head    string
	Columns []Column
}

// Names returns the header names in column order.
func (s *Schema) Names() []string {
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.Name
	}
	return names
}

// Set is one decoded message. Values are kept in schema order.
type Set struct {
	schema *Schema
	values []string
}

// Get returns the normalised value of the named column.
func (s Set) Get(name string) (string, bool) {
	if s.schema == nil {
		return "", false
	}
	for i, c := range s.schema.Columns {
		if c.Name == name {
			return s.values[i], true
		}
	}
	return "", false
}

// Cells renders the values in column order. Strings are quoted.
func (s Set) Cells() []table.Cell {
	if s.schema == nil {
		return nil
	}
	cells := make([]table.Cell, len(s.values))
	for i, c := range s.schema.Columns {
		if c.Kind == KindString {
			cells[i] = table.Quoted(s.values[i])
			continue
		}
		cells[i] = table.Text(s.values[i])
	}
	return cells
}

// ErrWrongMessage is returned when a message does not start with the
// expected head.
var ErrWrongMessage = errors.New("unexpected parameter message")

// decode walks msg against schema. Values that fail to parse keep the
// column default and are reported in issues.
func decode(schema *Schema, msg string) (Set, []error, error) {
	set := Set{schema: schema, values: make([]string, len(schema.Columns))}
	for i, c := range schema.Columns {
		v, err := normalize(c.Kind, c.Default)
		if err != nil {
			return Set{}, nil, fmt.Errorf("default %s: %w", c.Name, err)
		}
		set.values[i] = v
	}

	node, err := sexp.Parse(msg)
	if err != nil {
		return set, nil, fmt.Errorf("parse %s: %w", schema.Head, err)
	}
	if node.Head() != schema.Head {
		return set, nil, fmt.Errorf("%w: got %q, want %q", ErrWrongMessage, node.Head(), schema.Head)
	}

	index := make(map[string]int, len(schema.Columns))
	for i, c := range schema.Columns {
		index[c.Key] = i
	}

	var issues []error
	for _, arg := range node.Args() {
		key := arg.Head()
		if key == "" {
			issues = append(issues, fmt.Errorf("malformed entry %s", arg))
			continue
		}
		i, ok := index[key]
		if !ok {
			continue
		}
		raw := ""
		if vals := arg.Args(); len(vals) == 1 && !vals[0].IsList {
			raw = vals[0].Atom
		} else if schema.Columns[i].Kind != KindString || len(vals) != 0 {
			issues = append(issues, fmt.Errorf("%s: expected a single value, got %s", key, arg))
			continue
		}
		v, err := normalize(schema.Columns[i].Kind, raw)
		if err != nil {
			issues = append(issues, fmt.Errorf("%s: %w", key, err))
			continue
		}
		set.values[i] = v
	}
	return set, issues, nil
}

func normalize(kind Kind, raw string) (string, error) {
	switch kind {
	case KindInt:
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return strconv.FormatInt(v, 10), nil
		}
		// Older servers print some integer parameters with a fraction.
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil || f != math.Trunc(f) {
			return "", fmt.Errorf("invalid integer %q", raw)
		}
		return strconv.FormatInt(int64(f), 10), nil
	case KindFloat:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return "", fmt.Errorf("invalid number %q", raw)
		}
		return table.FormatFloat(f), nil
	case KindBool:
		switch strings.ToLower(raw) {
		case "1", "true", "on":
			return "1", nil
		case "0", "false", "off":
			return "0", nil
		}
		return "", fmt.Errorf("invalid boolean %q", raw)
	case KindString:
		return raw, nil
	default:
		return "", fmt.Errorf("unknown kind %d", kind)
	}
}

func col(name string, kind Kind, def string) Column {
	return Column{Name: name, Key: name, Kind: kind, Default: def}
}
