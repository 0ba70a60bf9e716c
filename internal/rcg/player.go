package rcg

// State is the player status bit set reported by the server.
type State uint32

const (
	StateDisable        State = 0x00000000
	StateStand          State = 0x00000001
	StateKick           State = 0x00000002
	StateKickFault      State = 0x00000004
	StateGoalie         State = 0x00000008
	StateCatch          State = 0x00000010
	StateCatchFault     State = 0x00000020
	StateBallToPlayer   State = 0x00000040
	StatePlayerToBall   State = 0x00000080
	StateDiscard        State = 0x00000100
	StateLost           State = 0x00000200
	StateBallCollide    State = 0x00000400
	StatePlayerCollide  State = 0x00000800
	StateTackle         State = 0x00001000
	StateTackleFault    State = 0x00002000
	StateBackPass       State = 0x00004000
	StateFreeKickFault  State = 0x00008000
	StatePostCollide    State = 0x00010000
	StateFoulCharged    State = 0x00020000
	StateYellowCard     State = 0x00040000
	StateRedCard        State = 0x00080000
	StateIllegalDefense State = 0x00100000
)

// Has reports whether every bit of flag is set.
func (s State) Has(flag State) bool {
	return s&flag == flag && flag != 0
}

// Player is one field slot in a show. It is implemented by AbsentPlayer,
// DiscardedPlayer and ActivePlayer only.
type Player interface {
	isPlayer()
}

// AbsentPlayer is a slot with no connected player.
type AbsentPlayer struct{}

// DiscardedPlayer left the field, either removed by the monitor or sent off
// with a red card.
type DiscardedPlayer struct {
	State State
}

// Point is a field coordinate.
type Point struct {
	X, Y float64
}

// Focus is the player an active player pays attention to.
type Focus struct {
	Side Side
	Unum int
}

// Counts holds the cumulative command counters of a player.
type Counts struct {
	Kick        uint32
	Dash        uint32
	Turn        uint32
	Catch       uint32
	Move        uint32
	TurnNeck    uint32
	ChangeView  uint32
	Say         uint32
	Tackle      uint32
	PointTo     uint32
	AttentionTo uint32
}

// ActivePlayer is a player reporting its full state.
type ActivePlayer struct {
	Type  int
	State State

	X, Y   float64
	VX, VY float64
	Body   float64
	Neck   float64

	// Point is set only while the player is pointing.
	Point *Point

	ViewQuality byte
	ViewWidth   float64

	Stamina         float64
	Effort          float64
	Recovery        float64
	StaminaCapacity float64

	// Focus is set only while the player is focusing on a teammate or
	// opponent.
	Focus *Focus

	Counts Counts
}

// Pointing reports whether the arm target is valid.
func (p ActivePlayer) Pointing() bool { return p.Point != nil }

// Focusing reports whether the focus target is valid.
func (p ActivePlayer) Focusing() bool { return p.Focus != nil }

func (AbsentPlayer) isPlayer()    {}
func (DiscardedPlayer) isPlayer() {}
func (ActivePlayer) isPlayer()    {}

// ClassifyPlayer builds the slot variant for a decoded state word: a zero
// state is absent, a discard bit is discarded, anything else is active.
func ClassifyPlayer(state State, active ActivePlayer) Player {
	switch {
	case state == StateDisable:
		return AbsentPlayer{}
	case state.Has(StateDiscard):
		return DiscardedPlayer{State: state}
	default:
		active.State = state
		return active
	}
}
