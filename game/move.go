package game

import "strings"

// Move is a piece origin plus the ordered steps it takes. A plain move has a
// single unit step; a jump has one or more legs of magnitude 2 per axis.
// Moves never reference the board they were generated for.
type Move struct {
	From  Coord
	Steps []Coord
}

// FinalSquare is the origin plus the sum of all steps.
func (m Move) FinalSquare() Coord {
	c := m.From
	for _, s := range m.Steps {
		c = c.Add(s)
	}
	return c
}

func (m Move) IsJump() bool {
	for _, s := range m.Steps {
		if abs(s.X) == 2 || abs(s.Y) == 2 {
			return true
		}
	}
	return false
}

// IsZero reports a move without steps, which no board accepts.
func (m Move) IsZero() bool {
	return len(m.Steps) == 0
}

// Squares lists every square the piece stands on, origin first.
func (m Move) Squares() []Coord {
	squares := make([]Coord, 0, len(m.Steps)+1)
	c := m.From
	squares = append(squares, c)
	for _, s := range m.Steps {
		c = c.Add(s)
		squares = append(squares, c)
	}
	return squares
}

// String renders the move as "[J]a1>c3>e5".
func (m Move) String() string {
	var sb strings.Builder
	if m.IsJump() {
		sb.WriteByte('J')
	}
	for i, c := range m.Squares() {
		if i > 0 {
			sb.WriteByte('>')
		}
		sb.WriteString(c.String())
	}
	return sb.String()
}

func (m Move) Equal(o Move) bool {
	if m.From != o.From || len(m.Steps) != len(o.Steps) {
		return false
	}
	for i := range m.Steps {
		if m.Steps[i] != o.Steps[i] {
			return false
		}
	}
	return true
}

// Choice is either a move or the explicit absence of one, reported when a
// side has nothing to play.
type Choice struct {
	move Move
	ok   bool
}

func Some(m Move) Choice {
	return Choice{move: m, ok: true}
}

func NoMove() Choice {
	return Choice{}
}

// Get returns the move and whether there is one.
func (c Choice) Get() (Move, bool) {
	return c.move, c.ok
}

func (c Choice) IsNone() bool {
	return !c.ok
}

func (c Choice) String() string {
	if !c.ok {
		return "none"
	}
	return c.move.String()
}
