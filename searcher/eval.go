package searcher

import "halma/game"

// Weights scales each positional feature. Immobile and Vulnerable count
// bad things, so useful weights for them are negative.
type Weights struct {
	Distance      float64 `yaml:"distance"`
	InTargetCamp  float64 `yaml:"in_target_camp"`
	OutOfHomeCamp float64 `yaml:"out_of_home_camp"`
	Immobile      float64 `yaml:"immobile"`
	Vulnerable    float64 `yaml:"vulnerable"`
	Progress      float64 `yaml:"progress"`
	Mobility      float64 `yaml:"mobility"`
	JumpLength    float64 `yaml:"jump_length"`
}

func DefaultWeights() Weights {
	return Weights{
		Distance:      1,
		InTargetCamp:  100,
		OutOfHomeCamp: 100,
	}
}

// Features are the raw, unweighted measurements of one side's position.
type Features struct {
	// Distance is minus the sum of squared distances to the target corner.
	Distance      float64
	InTargetCamp  float64
	OutOfHomeCamp float64
	Immobile      float64
	Vulnerable    float64
	// Progress projects the centroid of the pieces onto the diagonal from
	// the home corner (0) to the target corner (1).
	Progress float64
	// Mobility is the number of legal moves and JumpLength the mean number
	// of legs over the jump moves among them.
	Mobility   float64
	JumpLength float64
}

func (w Weights) apply(f Features) float64 {
	return w.Distance*f.Distance +
		w.InTargetCamp*f.InTargetCamp +
		w.OutOfHomeCamp*f.OutOfHomeCamp +
		w.Immobile*f.Immobile +
		w.Vulnerable*f.Vulnerable +
		w.Progress*f.Progress +
		w.Mobility*f.Mobility +
		w.JumpLength*f.JumpLength
}

// needsMoves reports whether a feature that requires move generation is
// weighted.
func (w Weights) needsMoves() bool {
	return w.Mobility != 0 || w.JumpLength != 0
}

// Evaluate scores the position from side's point of view as its weighted
// features minus the opponent's.
func Evaluate(b *game.Board, side game.Piece, w Weights) float64 {
	moves := w.needsMoves()
	return w.apply(measure(b, side, moves)) - w.apply(measure(b, side.Opponent(), moves))
}

// TargetCorner is the corner square side races towards.
func TargetCorner(size int, side game.Piece) game.Coord {
	if side == game.SideA {
		return game.Coord{X: size - 1, Y: size - 1}
	}
	return game.Coord{}
}

func distSq(a, b game.Coord) int {
	d := a.Sub(b)
	return d.X*d.X + d.Y*d.Y
}

var (
	neighbours = []game.Coord{
		{X: -1, Y: -1}, {X: 0, Y: -1}, {X: 1, Y: -1},
		{X: -1, Y: 0}, {X: 1, Y: 0},
		{X: -1, Y: 1}, {X: 0, Y: 1}, {X: 1, Y: 1},
	}
	jumps = []game.Coord{
		{X: -2, Y: -2}, {X: 0, Y: -2}, {X: 2, Y: -2},
		{X: -2, Y: 0}, {X: 2, Y: 0},
		{X: -2, Y: 2}, {X: 0, Y: 2}, {X: 2, Y: 2},
	}
)

// Measure computes every feature of side's position.
func Measure(b *game.Board, side game.Piece) Features {
	return measure(b, side, true)
}

func measure(b *game.Board, side game.Piece, withMoves bool) Features {
	var f Features
	size := b.Size()
	target := TargetCorner(size, side)
	opponent := side.Opponent()
	pieces, sumX, sumY := 0, 0, 0

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			sq := game.Coord{X: x, Y: y}
			if b.At(sq) != side {
				continue
			}
			pieces++
			sumX += x
			sumY += y
			f.Distance -= float64(distSq(sq, target))
			if b.IsInCamp(sq, opponent) {
				f.InTargetCamp++
			}
			if !b.IsInCamp(sq, side) {
				f.OutOfHomeCamp++
			}
			if isImmobile(b, sq, side) {
				f.Immobile++
			}
			if isVulnerable(b, sq, opponent) {
				f.Vulnerable++
			}
		}
	}

	if pieces > 0 {
		span := float64(2 * (size - 1))
		cx, cy := float64(sumX)/float64(pieces), float64(sumY)/float64(pieces)
		if side == game.SideA {
			f.Progress = (cx + cy) / span
		} else {
			f.Progress = (span - cx - cy) / span
		}
	}
	if withMoves {
		measureMoves(b, side, &f)
	}
	return f
}

// measureMoves fills the move based features. Past the move limit only the
// moves generated before it are counted.
func measureMoves(b *game.Board, side game.Piece, f *Features) {
	moves, _ := game.Moves(b, side)
	f.Mobility = float64(len(moves))
	legs, jumpMoves := 0, 0
	for _, m := range moves {
		if m.IsJump() {
			legs += len(m.Steps)
			jumpMoves++
		}
	}
	if jumpMoves > 0 {
		f.JumpLength = float64(legs) / float64(jumpMoves)
	}
}

// isImmobile reports whether the piece on sq has no jump it may play. Jumps
// out of the opposing camp are not playable.
func isImmobile(b *game.Board, sq game.Coord, side game.Piece) bool {
	for _, j := range jumps {
		if b.IsJumpValid(sq, j, false) && !b.MoveLeavesOpposingCamp(sq, sq.Add(j), side) {
			return false
		}
	}
	return true
}

// isVulnerable reports whether an opponent piece next to sq could jump it:
// the square on the far side is on the board and empty.
func isVulnerable(b *game.Board, sq game.Coord, opponent game.Piece) bool {
	for _, d := range neighbours {
		attacker, landing := sq.Sub(d), sq.Add(d)
		if !b.IsInBounds(attacker) || !b.IsInBounds(landing) {
			continue
		}
		if b.At(attacker) == opponent && b.At(landing) == game.None {
			return true
		}
	}
	return false
}
