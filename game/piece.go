package game

// Piece tags the occupant of a square. The side values double as side
// identifiers, so "whose turn" and "whose piece" share one type.
type Piece uint8

const (
	None  Piece = 0
	SideA Piece = 1 << 0
	SideB Piece = 1 << 1

	Occupied = SideA | SideB
)

// Opponent returns the other side. It panics for anything that is not a
// single side.
func (p Piece) Opponent() Piece {
	switch p {
	case SideA:
		return SideB
	case SideB:
		return SideA
	default:
		panic("opponent of a non-side piece")
	}
}

func (p Piece) IsSide() bool {
	return p == SideA || p == SideB
}

func (p Piece) String() string {
	switch p {
	case None:
		return "none"
	case SideA:
		return "A"
	case SideB:
		return "B"
	default:
		return "occupied"
	}
}
