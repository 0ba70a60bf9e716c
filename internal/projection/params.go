package projection

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/louisbranch/rcg2csv/internal/rcg/params"
	"github.com/louisbranch/rcg2csv/internal/table"
)

// ErrDuplicateParam is returned for every parameter message after the first
// one of a one-shot table.
var ErrDuplicateParam = errors.New("parameter message already handled")

// ParamDecoder decodes one parameter message.
type ParamDecoder func(msg string) (params.Set, error)

// PlayerTypeDecoder decodes one player_type message. The set is always
// usable; issues describe the values that fell back to defaults.
type PlayerTypeDecoder func(msg string) (params.Set, []error)

// oneShotTable writes a header and a single row for the first message it
// receives. That first message consumes the shot even when it fails to
// decode.
type oneShotTable struct {
	name          string
	w             table.RowWriter
	header        []string
	decode        ParamDecoder
	handled       bool
	headerWritten bool
	rows          uint64
}

func newOneShotTable(name string, w table.RowWriter, schema *params.Schema, decode ParamDecoder) oneShotTable {
	return oneShotTable{
		name:   name,
		w:      w,
		header: append([]string{"#"}, schema.Names()...),
		decode: decode,
	}
}

func (t *oneShotTable) handle(msg string) error {
	if t.handled {
		return ErrDuplicateParam
	}
	t.handled = true

	set, err := t.decode(msg)
	if err != nil {
		return err
	}
	if err := t.writeHeader(); err != nil {
		return err
	}
	row := append([]table.Cell{table.Int(1)}, set.Cells()...)
	if err := t.w.WriteRow(row); err != nil {
		return fmt.Errorf("write %s row: %w", t.name, err)
	}
	t.rows++
	return nil
}

func (t *oneShotTable) writeHeader() error {
	if t.headerWritten {
		return nil
	}
	if err := t.w.WriteHeader(t.header); err != nil {
		return fmt.Errorf("write %s header: %w", t.name, err)
	}
	t.headerWritten = true
	return nil
}

// Rows returns the number of data rows written.
func (t *oneShotTable) Rows() uint64 {
	return t.rows
}

// Flush writes the header if no row was ever written and flushes the writer.
func (t *oneShotTable) Flush() error {
	if err := t.writeHeader(); err != nil {
		return err
	}
	return t.w.Flush()
}

// ServerParamTable projects the server_param message.
type ServerParamTable struct {
	oneShotTable
}

// NewServerParamTable returns a server parameter projector. A nil decode
// uses params.ParseServer.
func NewServerParamTable(w table.RowWriter, decode ParamDecoder) *ServerParamTable {
	if decode == nil {
		decode = params.ParseServer
	}
	return &ServerParamTable{oneShotTable: newOneShotTable("serverparams", w, params.ServerSchema, decode)}
}

// HandleServerParam decodes msg and writes its row.
func (t *ServerParamTable) HandleServerParam(_ context.Context, msg string) error {
	return t.handle(msg)
}

// PlayerParamTable projects the player_param message.
type PlayerParamTable struct {
	oneShotTable
}

// NewPlayerParamTable returns a player parameter projector. A nil decode
// uses params.ParsePlayer.
func NewPlayerParamTable(w table.RowWriter, decode ParamDecoder) *PlayerParamTable {
	if decode == nil {
		decode = params.ParsePlayer
	}
	return &PlayerParamTable{oneShotTable: newOneShotTable("playerparams", w, params.PlayerSchema, decode)}
}

// HandlePlayerParam decodes msg and writes its row.
func (t *PlayerParamTable) HandlePlayerParam(_ context.Context, msg string) error {
	return t.handle(msg)
}

// PlayerTypeTable writes one row per player_type message.
type PlayerTypeTable struct {
	w             table.RowWriter
	decode        PlayerTypeDecoder
	logf          func(format string, args ...any)
	headerWritten bool
	seen          uint64
	rows          uint64
}

// NewPlayerTypeTable returns a player type projector. A nil decode uses
// params.ParsePlayerType. Decode issues are reported through log.Printf.
func NewPlayerTypeTable(w table.RowWriter, decode PlayerTypeDecoder) *PlayerTypeTable {
	if decode == nil {
		decode = params.ParsePlayerType
	}
	return &PlayerTypeTable{w: w, decode: decode, logf: log.Printf}
}

// Rows returns the number of data rows written.
func (t *PlayerTypeTable) Rows() uint64 {
	return t.rows
}

// HandlePlayerType writes a row for msg. Values that fail to decode are
// logged and replaced by their defaults, so every message yields a row.
func (t *PlayerTypeTable) HandlePlayerType(_ context.Context, msg string) error {
	if err := t.writeHeader(); err != nil {
		return err
	}
	t.seen++
	index := t.seen
	set, issues := t.decode(msg)
	for _, issue := range issues {
		if id, ok := set.Get("id"); ok {
			t.logf("player_type %d (id %s): %v", index, id, issue)
			continue
		}
		t.logf("player_type %d: %v", index, issue)
	}
	row := append([]table.Cell{table.Uint(index)}, set.Cells()...)
	if err := t.w.WriteRow(row); err != nil {
		return fmt.Errorf("write playertypes row: %w", err)
	}
	t.rows++
	return nil
}

// Flush writes the header if no row was ever written and flushes the writer.
func (t *PlayerTypeTable) Flush() error {
	if err := t.writeHeader(); err != nil {
		return err
	}
	return t.w.Flush()
}

func (t *PlayerTypeTable) writeHeader() error {
	if t.headerWritten {
		return nil
	}
	header := append([]string{"#"}, params.PlayerTypeSchema.Names()...)
	if err := t.w.WriteHeader(header); err != nil {
		return fmt.Errorf("write playertypes header: %w", err)
	}
	t.headerWritten = true
	return nil
}
