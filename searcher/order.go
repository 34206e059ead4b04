package searcher

import (
	"golang.org/x/exp/slices"

	"halma/game"
)

// gain is how much closer, in squared distance, the move brings its piece
// to target.
func gain(m game.Move, target game.Coord) int {
	return distSq(m.From, target) - distSq(m.FinalSquare(), target)
}

// orderMoves puts the moves that advance furthest first. Ties keep the
// generator's order.
func orderMoves(moves []game.Move, target game.Coord) {
	slices.SortStableFunc(moves, func(a, b game.Move) int {
		return gain(b, target) - gain(a, target)
	})
}
