package rcg

// MaxPlayer is the number of uniform numbers per side.
const MaxPlayer = 11

// MinLogVersion is the oldest log format the tables can be built from.
const MinLogVersion = 4

// Side identifies a team half of the field.
type Side uint8

const (
	SideLeft Side = iota
	SideRight
)

// Letter returns the single-character side code used in logs and headers.
func (s Side) Letter() byte {
	if s == SideRight {
		return 'r'
	}
	return 'l'
}

// SideFromLetter maps a log side code to a Side.
func SideFromLetter(c byte) (Side, bool) {
	switch c {
	case 'l', 'L':
		return SideLeft, true
	case 'r', 'R':
		return SideRight, true
	default:
		return SideLeft, false
	}
}

// Team is the per-side team descriptor.
type Team struct {
	Name         string
	Score        uint32
	PenaltyScore uint32
	PenaltyMiss  uint32
}

// Ball holds the ball kinematics of one show.
type Ball struct {
	X, Y   float64
	VX, VY float64
}

// Show is one snapshot of the whole field.
type Show struct {
	Time uint32
	Ball Ball
	// Players is indexed by side then uniform number minus one. A nil
	// entry is an absent player.
	Players [2][MaxPlayer]Player
}

// Player returns the slot for side and uniform number, or AbsentPlayer
// when the slot is empty or out of range.
func (s Show) Player(side Side, unum int) Player {
	if side > SideRight || unum < 1 || unum > MaxPlayer {
		return AbsentPlayer{}
	}
	p := s.Players[side][unum-1]
	if p == nil {
		return AbsentPlayer{}
	}
	return p
}

// Draw is a monitor drawing command. Its content is not interpreted.
type Draw struct {
	Shape string
	Args  []string
}
