// Package table holds the row model shared by the table projectors and the
// writers that persist their output.
package table

import (
	"strconv"
	"strings"
)

type kind uint8

const (
	kindBlank kind = iota
	kindPlain
	kindQuoted
)

// Cell is one rendered value of a row.
type Cell struct {
	kind kind
	text string
}

// Blank is an empty cell. Blank cells keep their column position.
func Blank() Cell { return Cell{} }

// Int renders a signed integer.
func Int(v int64) Cell { return Cell{kind: kindPlain, text: strconv.FormatInt(v, 10)} }

// Uint renders an unsigned integer.
func Uint(v uint64) Cell { return Cell{kind: kindPlain, text: strconv.FormatUint(v, 10)} }

// Float renders a real number with six significant digits, switching to
// exponent form for very large or small magnitudes.
func Float(v float64) Cell { return Cell{kind: kindPlain, text: FormatFloat(v)} }

// Bool renders 1 or 0.
func Bool(v bool) Cell {
	if v {
		return Cell{kind: kindPlain, text: "1"}
	}
	return Cell{kind: kindPlain, text: "0"}
}

// Char renders a single byte as text.
func Char(c byte) Cell { return Cell{kind: kindPlain, text: string([]byte{c})} }

// Text renders a string as-is.
func Text(s string) Cell { return Cell{kind: kindPlain, text: s} }

// Quoted renders a string wrapped in double quotes. Embedded quotes are
// doubled.
func Quoted(s string) Cell { return Cell{kind: kindQuoted, text: s} }

// IsBlank reports whether the cell carries no value.
func (c Cell) IsBlank() bool { return c.kind == kindBlank }

// Value returns the unquoted cell value and false for blank cells.
func (c Cell) Value() (string, bool) {
	if c.kind == kindBlank {
		return "", false
	}
	return c.text, true
}

// String returns the CSV rendition of the cell.
func (c Cell) String() string {
	switch c.kind {
	case kindBlank:
		return ""
	case kindQuoted:
		return `"` + strings.ReplaceAll(c.text, `"`, `""`) + `"`
	default:
		return c.text
	}
}

// FormatFloat formats v with six significant digits in the shortest of
// fixed or exponent notation.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

// Blanks returns n blank cells.
func Blanks(n int) []Cell {
	return make([]Cell, n)
}
