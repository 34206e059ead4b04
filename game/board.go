package game

import "fmt"

// BoardSize is the standard Halma board width and height.
const BoardSize = 16

// MaxBoardSize is the widest board move notation can name.
const MaxBoardSize = len(columns)

// campWidths is the number of camp squares on each diagonal row counted
// from a home corner.
var campWidths = [...]int{5, 5, 4, 3, 2}

// Board is the mutable game position: a grid of pieces, the static camps of
// both sides and the live fingerprint. MakeMove and UnmakeMove are the only
// mutation paths once a position is loaded. A Board must not be shared by
// concurrent searches.
type Board struct {
	size    int
	cells   []Piece
	scratch []Piece
	campA   []bool // SideA home, SideB target
	campB   []bool // SideB home, SideA target
	zobrist *Zobrist
	toMove  Piece
	hash    uint64
}

// NewBoard returns an empty standard-size board with SideA to move.
func NewBoard() *Board {
	return NewBoardSize(BoardSize)
}

// NewBoardSize returns an empty square board of the given size.
func NewBoardSize(size int) *Board {
	if size < len(campWidths)*2 {
		panic(fmt.Sprintf("board size %d too small for the camps", size))
	}
	if size > MaxBoardSize {
		panic(fmt.Sprintf("board size %d wider than %d columns", size, MaxBoardSize))
	}
	b := &Board{
		size:    size,
		cells:   make([]Piece, size*size),
		scratch: make([]Piece, size*size),
		campA:   make([]bool, size*size),
		campB:   make([]bool, size*size),
		zobrist: GetZobrist(size),
	}
	for y, width := range campWidths {
		for x := 0; x < width; x++ {
			b.campA[y*size+x] = true
			b.campB[(size-y-1)*size+(size-x-1)] = true
		}
	}
	b.SetSideToMove(SideA)
	return b
}

func (b *Board) Size() int {
	return b.size
}

// Clone returns an independent copy sharing only the immutable camp masks
// and Zobrist table.
func (b *Board) Clone() *Board {
	c := &Board{
		size:    b.size,
		cells:   make([]Piece, len(b.cells)),
		scratch: make([]Piece, len(b.cells)),
		campA:   b.campA,
		campB:   b.campB,
		zobrist: b.zobrist,
	}
	c.CopyFrom(b)
	return c
}

// CopyFrom overwrites the position with another board's of the same size.
func (b *Board) CopyFrom(o *Board) {
	if o.size != b.size {
		panic(fmt.Sprintf("copy from board of size %d into size %d", o.size, b.size))
	}
	copy(b.cells, o.cells)
	b.toMove = o.toMove
	b.hash = o.hash
}

func (b *Board) index(c Coord) int {
	if !b.IsInBounds(c) {
		panic(fmt.Sprintf("square %v out of bounds", c))
	}
	return c.Y*b.size + c.X
}

// At returns the piece on a square. Out-of-range access panics.
func (b *Board) At(c Coord) Piece {
	return b.cells[b.index(c)]
}

// set is reserved for position loading; it does not maintain the hash.
func (b *Board) set(c Coord, p Piece) {
	b.cells[b.index(c)] = p
}

func (b *Board) IsInBounds(c Coord) bool {
	return c.X >= 0 && c.X < b.size && c.Y >= 0 && c.Y < b.size
}

// IsInCamp reports whether the square belongs to the home camp of side.
func (b *Board) IsInCamp(c Coord, side Piece) bool {
	if side == SideA {
		return b.campA[b.index(c)]
	}
	return b.campB[b.index(c)]
}

// Fingerprint is the incrementally maintained Zobrist hash of the grid and
// the side to move.
func (b *Board) Fingerprint() uint64 {
	return b.hash
}

func (b *Board) SideToMove() Piece {
	return b.toMove
}

// SetSideToMove chooses who moves next and recomputes the fingerprint.
func (b *Board) SetSideToMove(side Piece) {
	if !side.IsSide() {
		panic(fmt.Sprintf("side to move must be a side, got %v", side))
	}
	b.toMove = side
	b.hash = b.zobrist.Hash(b, side)
}

// Rehash recomputes the fingerprint from scratch. It is the reference the
// incremental updates must agree with.
func (b *Board) Rehash() uint64 {
	return b.zobrist.Hash(b, b.toMove)
}

// IsMoveLegal checks a single displacement: both squares on the board, the
// destination empty and the origin occupied unless midJump. Mid-chain
// origins are already vacated by the jump being simulated.
func (b *Board) IsMoveLegal(from, to Coord, midJump bool) bool {
	if !b.IsInBounds(from) || !b.IsInBounds(to) {
		return false
	}
	if b.cells[from.Y*b.size+from.X]&Occupied == 0 && !midJump {
		return false
	}
	return b.cells[to.Y*b.size+to.X]&Occupied == 0
}

// IsJumpValid checks a jump leg: a legal displacement with any piece on
// the midpoint.
func (b *Board) IsJumpValid(from, step Coord, midJump bool) bool {
	if !isJumpStep(step) {
		panic(fmt.Sprintf("jump step %v has an axis magnitude other than 0 or 2", step))
	}
	if !b.IsMoveLegal(from, from.Add(step), midJump) {
		return false
	}
	mid := from.Add(step.Div(2))
	return b.cells[mid.Y*b.size+mid.X]&Occupied != 0
}

// MoveLeavesOpposingCamp reports whether a piece of side would step out of
// the opponent's home camp. Ground captured there cannot be given back.
func (b *Board) MoveLeavesOpposingCamp(from, to Coord, side Piece) bool {
	camp := b.campA
	if side == SideA {
		camp = b.campB
	}
	return camp[b.index(from)] && !camp[b.index(to)]
}

// State derives the game state from the camps. A side has won when every
// square of the opponent's home camp holds one of its pieces.
func (b *Board) State() State {
	aWon, bWon := true, true
	for i, p := range b.cells {
		if b.campB[i] && p&SideA == 0 {
			aWon = false
		}
		if b.campA[i] && p&SideB == 0 {
			bWon = false
		}
	}
	switch {
	case aWon:
		return SideAWon
	case bWon:
		return SideBWon
	default:
		return InProgress
	}
}

func (b *Board) snapshot() {
	copy(b.scratch, b.cells)
}

func (b *Board) rollback() {
	copy(b.cells, b.scratch)
}

func (b *Board) swap(from, to Coord) {
	i, j := from.Y*b.size+from.X, to.Y*b.size+to.X
	b.cells[i], b.cells[j] = b.cells[j], b.cells[i]
}

// stepValid checks one step of a move being applied in place. The piece
// sits on from; plain steps are only valid as the sole step of a move.
func (b *Board) stepValid(from, step Coord, single bool) bool {
	switch {
	case isUnitStep(step):
		return single && b.IsMoveLegal(from, from.Add(step), false)
	case isJumpStep(step):
		return b.IsJumpValid(from, step, false)
	default:
		return false
	}
}

// MakeMove applies the move in place. On any invalid step the grid is
// restored and false is returned; the caller must treat that as fatal.
func (b *Board) MakeMove(m Move) bool {
	if len(m.Steps) == 0 || !b.IsInBounds(m.From) {
		return false
	}
	piece := b.cells[m.From.Y*b.size+m.From.X]
	if !piece.IsSide() {
		return false
	}

	b.snapshot()
	current := m.From
	single := len(m.Steps) == 1
	for _, step := range m.Steps {
		if !b.stepValid(current, step, single) {
			b.rollback()
			return false
		}
		next := current.Add(step)
		b.swap(current, next)
		current = next
	}

	b.hash ^= b.zobrist.Piece(m.From, piece)
	b.hash ^= b.zobrist.Piece(current, piece)
	b.hash ^= b.zobrist.sideA
	b.toMove = b.toMove.Opponent()
	return true
}

// UnmakeMove reverses a move made with MakeMove, walking the steps
// backwards from the final square to the origin.
func (b *Board) UnmakeMove(m Move) bool {
	if len(m.Steps) == 0 {
		return false
	}
	final := m.FinalSquare()
	if !b.IsInBounds(final) {
		return false
	}
	piece := b.cells[final.Y*b.size+final.X]
	if !piece.IsSide() {
		return false
	}

	b.snapshot()
	current := final
	single := len(m.Steps) == 1
	for i := len(m.Steps) - 1; i >= 0; i-- {
		back := Coord{-m.Steps[i].X, -m.Steps[i].Y}
		if !b.stepValid(current, back, single) {
			b.rollback()
			return false
		}
		next := current.Add(back)
		b.swap(current, next)
		current = next
	}

	b.hash ^= b.zobrist.Piece(final, piece)
	b.hash ^= b.zobrist.Piece(current, piece)
	b.hash ^= b.zobrist.sideA
	b.toMove = b.toMove.Opponent()
	return true
}
