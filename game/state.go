package game

// State is the outcome of a position, derived from the camps on demand.
type State int

const (
	InProgress State = iota
	SideAWon
	SideBWon
)

// Winner returns the winning side, or None while the game is in progress.
func (s State) Winner() Piece {
	switch s {
	case SideAWon:
		return SideA
	case SideBWon:
		return SideB
	default:
		return None
	}
}

func (s State) IsOver() bool {
	return s != InProgress
}

func (s State) String() string {
	switch s {
	case SideAWon:
		return "side A won"
	case SideBWon:
		return "side B won"
	default:
		return "in progress"
	}
}
