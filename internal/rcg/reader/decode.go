package reader

import (
	"fmt"
	"strconv"

	"github.com/louisbranch/rcg2csv/internal/rcg"
	"github.com/louisbranch/rcg2csv/internal/rcg/sexp"
)

func atomArg(args []sexp.Node, i int, what string) (string, error) {
	if i >= len(args) || args[i].IsList {
		return "", fmt.Errorf("missing %s", what)
	}
	return args[i].Atom, nil
}

func parseTime(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	return uint32(v), nil
}

func parseFloat(s, what string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", what, s)
	}
	return v, nil
}

func parseUint32(s, what string) (uint32, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", what, s)
	}
	return uint32(v), nil
}

func floats(nodes []sexp.Node, what string) ([]float64, error) {
	out := make([]float64, len(nodes))
	for i, n := range nodes {
		if n.IsList {
			return nil, fmt.Errorf("%s: unexpected list", what)
		}
		v, err := parseFloat(n.Atom, what)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// decodeShow reads
// (show T [(pm N)] [(tm ...)] ((b) x y vx vy) ((l 1) type state ...) ...).
func decodeShow(node sexp.Node) (rcg.Show, error) {
	args := node.Args()
	raw, err := atomArg(args, 0, "show time")
	if err != nil {
		return rcg.Show{}, err
	}
	t, err := parseTime(raw)
	if err != nil {
		return rcg.Show{}, err
	}
	show := rcg.Show{Time: t}
	for _, item := range args[1:] {
		if !item.IsList || len(item.List) == 0 {
			return rcg.Show{}, fmt.Errorf("unexpected show item %s", item)
		}
		switch head := item.List[0]; {
		case !head.IsList && (head.Atom == "pm" || head.Atom == "tm"):
			// Play mode and teams are also logged as their own records.
			continue
		case head.IsList && head.Head() == "b":
			ball, err := decodeBall(item)
			if err != nil {
				return rcg.Show{}, err
			}
			show.Ball = ball
		case head.IsList:
			side, unum, player, err := decodePlayer(item)
			if err != nil {
				return rcg.Show{}, err
			}
			show.Players[side][unum-1] = player
		default:
			return rcg.Show{}, fmt.Errorf("unexpected show item %s", item)
		}
	}
	return show, nil
}

func decodeBall(item sexp.Node) (rcg.Ball, error) {
	vals, err := floats(item.List[1:], "ball")
	if err != nil {
		return rcg.Ball{}, err
	}
	if len(vals) != 4 {
		return rcg.Ball{}, fmt.Errorf("ball: expected 4 values, got %d", len(vals))
	}
	return rcg.Ball{X: vals[0], Y: vals[1], VX: vals[2], VY: vals[3]}, nil
}

// decodePlayer reads
// ((s u) type state x y vx vy body neck [px py] (v q w) (s st ef rec [cap]) [(f s u)] (c ...)).
func decodePlayer(item sexp.Node) (rcg.Side, int, rcg.Player, error) {
	id := item.List[0]
	if len(id.List) != 2 || id.List[0].IsList || id.List[1].IsList || len(id.List[0].Atom) != 1 {
		return 0, 0, nil, fmt.Errorf("invalid player id %s", id)
	}
	side, ok := rcg.SideFromLetter(id.List[0].Atom[0])
	if !ok {
		return 0, 0, nil, fmt.Errorf("invalid player side %s", id)
	}
	unum, err := strconv.Atoi(id.List[1].Atom)
	if err != nil || unum < 1 || unum > rcg.MaxPlayer {
		return 0, 0, nil, fmt.Errorf("invalid player unum %s", id)
	}

	rest := item.List[1:]
	typeRaw, err := atomArg(rest, 0, "player type")
	if err != nil {
		return 0, 0, nil, err
	}
	stateRaw, err := atomArg(rest, 1, "player state")
	if err != nil {
		return 0, 0, nil, err
	}
	ptype, err := strconv.Atoi(typeRaw)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("invalid player type %q", typeRaw)
	}
	state, err := strconv.ParseUint(stateRaw, 0, 32)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("invalid player state %q", stateRaw)
	}
	if state == 0 {
		return side, unum, rcg.AbsentPlayer{}, nil
	}

	var scalars []sexp.Node
	i := 2
	for ; i < len(rest) && !rest[i].IsList; i++ {
		scalars = append(scalars, rest[i])
	}
	nums, err := floats(scalars, "player")
	if err != nil {
		return 0, 0, nil, err
	}
	if len(nums) != 6 && len(nums) != 8 {
		return 0, 0, nil, fmt.Errorf("player %c%d: expected 6 or 8 values, got %d", side.Letter(), unum, len(nums))
	}

	p := rcg.ActivePlayer{
		Type: ptype,
		X:    nums[0], Y: nums[1],
		VX: nums[2], VY: nums[3],
		Body: nums[4], Neck: nums[5],
	}
	if len(nums) == 8 {
		p.Point = &rcg.Point{X: nums[6], Y: nums[7]}
	}

	for _, sub := range rest[i:] {
		if err := decodePlayerPart(&p, sub); err != nil {
			return 0, 0, nil, fmt.Errorf("player %c%d: %w", side.Letter(), unum, err)
		}
	}
	return side, unum, rcg.ClassifyPlayer(rcg.State(state), p), nil
}

func decodePlayerPart(p *rcg.ActivePlayer, sub sexp.Node) error {
	args := sub.Args()
	switch sub.Head() {
	case "v":
		q, err := atomArg(args, 0, "view quality")
		if err != nil {
			return err
		}
		if q != "h" && q != "l" {
			return fmt.Errorf("invalid view quality %q", q)
		}
		w, err := atomArg(args, 1, "view width")
		if err != nil {
			return err
		}
		width, err := parseFloat(w, "view width")
		if err != nil {
			return err
		}
		p.ViewQuality = q[0]
		p.ViewWidth = width
	case "s":
		vals, err := floats(args, "stamina")
		if err != nil {
			return err
		}
		if len(vals) < 3 || len(vals) > 4 {
			return fmt.Errorf("stamina: expected 3 or 4 values, got %d", len(vals))
		}
		p.Stamina, p.Effort, p.Recovery = vals[0], vals[1], vals[2]
		if len(vals) == 4 {
			p.StaminaCapacity = vals[3]
		}
	case "f":
		s, err := atomArg(args, 0, "focus side")
		if err != nil {
			return err
		}
		u, err := atomArg(args, 1, "focus unum")
		if err != nil {
			return err
		}
		if len(s) != 1 {
			return fmt.Errorf("invalid focus side %q", s)
		}
		side, ok := rcg.SideFromLetter(s[0])
		if !ok {
			return fmt.Errorf("invalid focus side %q", s)
		}
		unum, err := strconv.Atoi(u)
		if err != nil {
			return fmt.Errorf("invalid focus unum %q", u)
		}
		p.Focus = &rcg.Focus{Side: side, Unum: unum}
	case "c":
		return decodeCounts(&p.Counts, args)
	default:
		return fmt.Errorf("unexpected player item %s", sub)
	}
	return nil
}

func decodeCounts(c *rcg.Counts, args []sexp.Node) error {
	targets := []*uint32{
		&c.Kick, &c.Dash, &c.Turn, &c.Catch, &c.Move, &c.TurnNeck,
		&c.ChangeView, &c.Say, &c.Tackle, &c.PointTo, &c.AttentionTo,
	}
	if len(args) > len(targets) {
		return fmt.Errorf("counts: expected at most %d values, got %d", len(targets), len(args))
	}
	for i, n := range args {
		if n.IsList {
			return fmt.Errorf("counts: unexpected list")
		}
		v, err := parseUint32(n.Atom, "count")
		if err != nil {
			return err
		}
		*targets[i] = v
	}
	return nil
}

type scoreField struct {
	dst  *uint32
	what string
}

// decodeTeam reads (team T lname rname lscore rscore [lpen lmiss rpen rmiss]).
func decodeTeam(node sexp.Node) (uint32, rcg.Team, rcg.Team, error) {
	args := node.Args()
	if len(args) != 5 && len(args) != 9 {
		return 0, rcg.Team{}, rcg.Team{}, fmt.Errorf("team: expected 5 or 9 values, got %d", len(args))
	}
	for _, a := range args {
		if a.IsList {
			return 0, rcg.Team{}, rcg.Team{}, fmt.Errorf("team: unexpected list %s", a)
		}
	}
	t, err := parseTime(args[0].Atom)
	if err != nil {
		return 0, rcg.Team{}, rcg.Team{}, err
	}
	left := rcg.Team{Name: teamName(args[1].Atom)}
	right := rcg.Team{Name: teamName(args[2].Atom)}
	fields := []scoreField{
		{&left.Score, "left score"},
		{&right.Score, "right score"},
	}
	if len(args) == 9 {
		fields = append(fields,
			scoreField{&left.PenaltyScore, "left penalty score"},
			scoreField{&left.PenaltyMiss, "left penalty miss"},
			scoreField{&right.PenaltyScore, "right penalty score"},
			scoreField{&right.PenaltyMiss, "right penalty miss"},
		)
	}
	for i, f := range fields {
		v, err := parseUint32(args[3+i].Atom, f.what)
		if err != nil {
			return 0, rcg.Team{}, rcg.Team{}, err
		}
		*f.dst = v
	}
	return t, left, right, nil
}

// teamName maps the server placeholder for a missing team to "".
func teamName(s string) string {
	if s == "null" {
		return ""
	}
	return s
}

// decodePlayMode reads (playmode T name). Unknown names map to the null
// play mode.
func decodePlayMode(node sexp.Node) (uint32, rcg.PlayMode, error) {
	args := node.Args()
	raw, err := atomArg(args, 0, "playmode time")
	if err != nil {
		return 0, 0, err
	}
	t, err := parseTime(raw)
	if err != nil {
		return 0, 0, err
	}
	name, err := atomArg(args, 1, "playmode name")
	if err != nil {
		return 0, 0, err
	}
	pm, _ := rcg.ParsePlayMode(name)
	return t, pm, nil
}

// decodeMsg reads (msg T board "text").
func decodeMsg(node sexp.Node) (uint32, int, string, error) {
	args := node.Args()
	raw, err := atomArg(args, 0, "msg time")
	if err != nil {
		return 0, 0, "", err
	}
	t, err := parseTime(raw)
	if err != nil {
		return 0, 0, "", err
	}
	boardRaw, err := atomArg(args, 1, "msg board")
	if err != nil {
		return 0, 0, "", err
	}
	board, err := strconv.Atoi(boardRaw)
	if err != nil {
		return 0, 0, "", fmt.Errorf("invalid msg board %q", boardRaw)
	}
	msg, err := atomArg(args, 2, "msg text")
	if err != nil {
		return 0, 0, "", err
	}
	return t, board, msg, nil
}

// decodeDraw reads (draw T (shape args...)).
func decodeDraw(node sexp.Node) (uint32, rcg.Draw, error) {
	args := node.Args()
	raw, err := atomArg(args, 0, "draw time")
	if err != nil {
		return 0, rcg.Draw{}, err
	}
	t, err := parseTime(raw)
	if err != nil {
		return 0, rcg.Draw{}, err
	}
	if len(args) < 2 || !args[1].IsList {
		return 0, rcg.Draw{}, fmt.Errorf("missing draw shape")
	}
	shape := args[1]
	draw := rcg.Draw{Shape: shape.Head()}
	for _, a := range shape.Args() {
		draw.Args = append(draw.Args, a.String())
	}
	return t, draw, nil
}
