package projection

import (
	"context"
	"fmt"

	"github.com/louisbranch/rcg2csv/internal/rcg"
	"github.com/louisbranch/rcg2csv/internal/table"
)

// MatchHeaderSeparator separates match header names. Data rows use ",".
const MatchHeaderSeparator = ", "

var matchColumns = []string{
	"#", "cycle", "stopped", "playmode",
	"l_name", "l_score", "l_pen_score",
	"r_name", "r_score", "r_pen_score",
	"b_x", "b_y", "b_vx", "b_vy",
}

var playerColumns = []string{
	"t",
	"kick_tried", "kick_failed", "goalie", "catch_tried", "catch_failed",
	"discarded", "collided_with_ball", "collided_with_player",
	"tackle_tried", "tackle_failed", "backpassed", "freekicked_wrong",
	"collided_with_post", "foul_frozen", "yellow_card", "red_card",
	"defended_illegaly",
	"x", "y", "vx", "vy", "body", "neck",
	"arm_point_x", "arm_point_y",
	"view_q", "view_w",
	"stamina", "effort", "stamina_rec", "stamina_cap",
	"focus_side", "focus_unum",
	"kick_count", "dash_count", "turn_count", "catch_count", "move_count",
	"turnneck_count", "changeview_count", "say_count", "tackle_count",
	"arm_count", "focus_count",
}

// playerFlags lists the state bits in column order after the type column.
var playerFlags = []rcg.State{
	rcg.StateKick, rcg.StateKickFault, rcg.StateGoalie,
	rcg.StateCatch, rcg.StateCatchFault, rcg.StateDiscard,
	rcg.StateBallCollide, rcg.StatePlayerCollide,
	rcg.StateTackle, rcg.StateTackleFault, rcg.StateBackPass,
	rcg.StateFreeKickFault, rcg.StatePostCollide, rcg.StateFoulCharged,
	rcg.StateYellowCard, rcg.StateRedCard, rcg.StateIllegalDefense,
}

const (
	discardedColumn = 6
	redCardColumn   = 16
)

// PlayerColumnCount is the number of columns per player slot.
var PlayerColumnCount = len(playerColumns)

// MatchHeader returns the match table column names.
func MatchHeader() []string {
	header := make([]string, 0, len(matchColumns)+2*rcg.MaxPlayer*len(playerColumns))
	header = append(header, matchColumns...)
	for _, side := range []rcg.Side{rcg.SideLeft, rcg.SideRight} {
		for unum := 1; unum <= rcg.MaxPlayer; unum++ {
			for _, c := range playerColumns {
				header = append(header, fmt.Sprintf("%c%d_%s", side.Letter(), unum, c))
			}
		}
	}
	return header
}

// MatchTable emits one row per show notification, tagged with the latest
// team and play mode notifications.
type MatchTable struct {
	w             table.RowWriter
	headerWritten bool

	shows    uint64
	rows     uint64
	cycle    uint32
	started  bool
	stopped  uint32
	playMode rcg.PlayMode
	teams    [2]rcg.Team
}

// NewMatchTable returns a match projector writing to w.
func NewMatchTable(w table.RowWriter) *MatchTable {
	return &MatchTable{w: w}
}

// Rows returns the number of data rows written.
func (m *MatchTable) Rows() uint64 {
	return m.rows
}

// HandleShow writes one row for show. Every show advances the row index,
// including one whose write fails, so indices are never reused.
func (m *MatchTable) HandleShow(_ context.Context, show rcg.Show) error {
	if err := m.writeHeader(); err != nil {
		return err
	}
	m.shows++

	if m.started && m.cycle == show.Time {
		m.stopped++
	} else {
		m.cycle = show.Time
		m.stopped = 0
		m.started = true
	}

	row := make([]table.Cell, 0, len(matchColumns)+2*rcg.MaxPlayer*len(playerColumns))
	row = append(row,
		table.Uint(m.shows),
		table.Uint(uint64(m.cycle)),
		table.Uint(uint64(m.stopped)),
		table.Text(m.playMode.String()),
	)
	for _, t := range m.teams {
		row = append(row, table.Text(t.Name), table.Uint(uint64(t.Score)), table.Uint(uint64(t.PenaltyScore)))
	}
	row = append(row,
		table.Float(show.Ball.X),
		table.Float(show.Ball.Y),
		table.Float(show.Ball.VX),
		table.Float(show.Ball.VY),
	)
	for _, side := range []rcg.Side{rcg.SideLeft, rcg.SideRight} {
		for unum := 1; unum <= rcg.MaxPlayer; unum++ {
			row = appendPlayer(row, show.Player(side, unum))
		}
	}

	if err := m.w.WriteRow(row); err != nil {
		return fmt.Errorf("write match row: %w", err)
	}
	m.rows++
	return nil
}

// HandleTeam replaces the cached team descriptors.
func (m *MatchTable) HandleTeam(_ context.Context, _ uint32, left, right rcg.Team) error {
	m.teams = [2]rcg.Team{left, right}
	return nil
}

// HandlePlayMode replaces the cached play mode.
func (m *MatchTable) HandlePlayMode(_ context.Context, _ uint32, pm rcg.PlayMode) error {
	m.playMode = pm
	return nil
}

// Flush writes the header if no row was ever written and flushes w.
func (m *MatchTable) Flush() error {
	if err := m.writeHeader(); err != nil {
		return err
	}
	return m.w.Flush()
}

func (m *MatchTable) writeHeader() error {
	if m.headerWritten {
		return nil
	}
	if err := m.w.WriteHeader(MatchHeader()); err != nil {
		return fmt.Errorf("write match header: %w", err)
	}
	m.headerWritten = true
	return nil
}

func appendPlayer(row []table.Cell, p rcg.Player) []table.Cell {
	switch p := p.(type) {
	case rcg.ActivePlayer:
		return appendActive(row, p)
	case rcg.DiscardedPlayer:
		cells := table.Blanks(len(playerColumns))
		cells[discardedColumn] = table.Bool(true)
		cells[redCardColumn] = table.Bool(p.State.Has(rcg.StateRedCard))
		return append(row, cells...)
	default:
		return append(row, table.Blanks(len(playerColumns))...)
	}
}

func appendActive(row []table.Cell, p rcg.ActivePlayer) []table.Cell {
	row = append(row, table.Int(int64(p.Type)))
	for _, flag := range playerFlags {
		row = append(row, table.Bool(p.State.Has(flag)))
	}
	row = append(row,
		table.Float(p.X), table.Float(p.Y),
		table.Float(p.VX), table.Float(p.VY),
		table.Float(p.Body), table.Float(p.Neck),
	)
	if p.Pointing() {
		row = append(row, table.Float(p.Point.X), table.Float(p.Point.Y))
	} else {
		row = append(row, table.Blank(), table.Blank())
	}
	if p.ViewQuality != 0 {
		row = append(row, table.Char(p.ViewQuality))
	} else {
		row = append(row, table.Blank())
	}
	row = append(row,
		table.Float(p.ViewWidth),
		table.Float(p.Stamina),
		table.Float(p.Effort),
		table.Float(p.Recovery),
		table.Float(p.StaminaCapacity),
	)
	if p.Focusing() {
		row = append(row, table.Char(p.Focus.Side.Letter()), table.Int(int64(p.Focus.Unum)))
	} else {
		row = append(row, table.Blank(), table.Blank())
	}
	c := p.Counts
	for _, n := range []uint32{
		c.Kick, c.Dash, c.Turn, c.Catch, c.Move, c.TurnNeck,
		c.ChangeView, c.Say, c.Tackle, c.PointTo, c.AttentionTo,
	} {
		row = append(row, table.Uint(uint64(n)))
	}
	return row
}
