package game

import "github.com/pkg/errors"

// DefaultMoveLimit bounds the moves produced for one position. Degenerate
// positions produce several hundred jump chains; this leaves ample room.
const DefaultMoveLimit = 8192

// Generator enumerates legal moves. It keeps a per-chain visited set as
// scratch space, so one Generator must not be used concurrently.
type Generator struct {
	size    int
	visited []bool
	limit   int
}

func NewGenerator(size, limit int) *Generator {
	if limit < 1 {
		panic("move limit must be positive")
	}
	return &Generator{
		size:    size,
		visited: make([]bool, size*size),
		limit:   limit,
	}
}

func (g *Generator) Size() int {
	return g.size
}

// Generate appends every legal move of side to dst[:0] and returns it. If
// the limit would be exceeded it returns ErrTooManyMoves together with the
// moves produced so far. The board is not modified.
func (g *Generator) Generate(b *Board, side Piece, dst []Move) ([]Move, error) {
	if b.size != g.size {
		panic("generator and board sizes differ")
	}
	moves := dst[:0]
	var err error
	for y := 0; y < b.size; y++ {
		for x := 0; x < b.size; x++ {
			from := Coord{x, y}
			if b.cells[y*b.size+x] != side {
				continue
			}
			if moves, err = g.simpleMoves(b, from, side, moves); err != nil {
				return moves, err
			}
			if moves, err = g.jumpMoves(b, from, from, nil, side, moves); err != nil {
				return moves, err
			}
		}
	}
	return moves, nil
}

// Moves is a convenience wrapper allocating a fresh slice.
func Moves(b *Board, side Piece) ([]Move, error) {
	return NewGenerator(b.size, DefaultMoveLimit).Generate(b, side, nil)
}

func (g *Generator) emit(moves []Move, m Move) ([]Move, error) {
	if len(moves) >= g.limit {
		return moves, errors.Wrapf(ErrTooManyMoves, "limit %d reached at %v", g.limit, m)
	}
	return append(moves, m), nil
}

func (g *Generator) simpleMoves(b *Board, from Coord, side Piece, moves []Move) ([]Move, error) {
	var err error
	for _, step := range unitSteps {
		to := from.Add(step)
		if !b.IsMoveLegal(from, to, false) || b.MoveLeavesOpposingCamp(from, to, side) {
			continue
		}
		if moves, err = g.emit(moves, Move{From: from, Steps: []Coord{step}}); err != nil {
			return moves, err
		}
	}
	return moves, nil
}

// jumpMoves walks jump chains depth first from current. The piece is not
// lifted from origin, so legs that hop over or land on origin are skipped
// explicitly. Every landing is emitted as a move of its own.
func (g *Generator) jumpMoves(b *Board, origin, current Coord, steps []Coord, side Piece, moves []Move) ([]Move, error) {
	var err error
	for _, step := range jumpSteps {
		if current.Add(step.Div(2)) == origin {
			continue
		}
		if !b.IsJumpValid(current, step, len(steps) > 0) {
			continue
		}
		to := current.Add(step)
		idx := to.Y*g.size + to.X
		if to == origin || g.visited[idx] || b.MoveLeavesOpposingCamp(origin, to, side) {
			continue
		}

		chain := make([]Coord, len(steps)+1)
		copy(chain, steps)
		chain[len(steps)] = step
		if moves, err = g.emit(moves, Move{From: origin, Steps: chain}); err != nil {
			return moves, err
		}

		g.visited[idx] = true
		moves, err = g.jumpMoves(b, origin, to, chain, side, moves)
		g.visited[idx] = false
		if err != nil {
			return moves, err
		}
	}
	return moves, nil
}
