package searcher

import (
	"math"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"halma/game"
)

// WinScore is the value of a decided game. The remaining depth is added so
// that quicker wins score higher.
const WinScore = 1e6

// Searcher runs depth-bounded negamax with optional alpha-beta pruning,
// move ordering and a transposition table. It mutates the board it is given
// and restores it before returning; a Searcher and its board must not be
// used from more than one goroutine.
type Searcher struct {
	config  Config
	table   *Table
	gen     *game.Generator
	buffers [][]game.Move
}

func New(options ...Option) *Searcher {
	config := DefaultConfig()
	for _, option := range options {
		option(&config)
	}
	if config.Depth < 0 || config.MaxMoves < 1 {
		panic("Must specify a non-negative depth and a positive move limit")
	}
	return &Searcher{
		config: config,
		table:  NewTable(),
	}
}

func (s *Searcher) Config() Config {
	return s.config
}

// Decide searches for side's best move on b. The board's side to move is
// set to side first. An ErrIllegalMove means the generator and the board
// disagree; the board is still restored.
func (s *Searcher) Decide(b *game.Board, side game.Piece) (Result, error) {
	start := time.Now()
	if s.gen == nil || s.gen.Size() != b.Size() {
		s.gen = game.NewGenerator(b.Size(), s.config.MaxMoves)
	}
	if b.SideToMove() != side {
		b.SetSideToMove(side)
	}
	s.table.Clear()

	depth := s.config.depthFor(b, side)
	var stats Stats
	eval, move, err := s.negamax(b, depth, 0, math.Inf(-1), math.Inf(1), &stats)
	stats.TTEntries = s.table.Len()
	stats.Elapsed = time.Since(start)
	if err != nil {
		return Result{}, err
	}

	result := Result{Move: move, Eval: eval, Depth: depth, Stats: stats}
	log.Debug().
		Str("side", side.String()).
		Int("depth", depth).
		Float64("eval", eval).
		Stringer("move", move).
		Int64("nodes", stats.Nodes).
		Int64("tt_hits", stats.TTHits).
		Int("tt_entries", stats.TTEntries).
		Dur("elapsed", stats.Elapsed).
		Float64("nps", stats.NodesPerSecond()).
		Msg("Decision")
	return result, nil
}

func (s *Searcher) movesAt(b *game.Board, side game.Piece, ply int) ([]game.Move, error) {
	for len(s.buffers) <= ply {
		s.buffers = append(s.buffers, nil)
	}
	moves, err := s.gen.Generate(b, side, s.buffers[ply])
	s.buffers[ply] = moves
	return moves, err
}

// negamax returns the score of b for the side to move together with the
// move achieving it. Scores are fail-soft: outside (alpha, beta) they are
// bounds, not exact values.
func (s *Searcher) negamax(b *game.Board, depth, ply int, alpha, beta float64, stats *Stats) (float64, game.Choice, error) {
	stats.Nodes++
	side := b.SideToMove()

	switch b.State().Winner() {
	case side:
		return WinScore + float64(depth), game.NoMove(), nil
	case side.Opponent():
		return -(WinScore + float64(depth)), game.NoMove(), nil
	}

	if depth == 0 {
		stats.Leaves++
		return Evaluate(b, side, s.config.Weights), game.NoMove(), nil
	}

	fingerprint := b.Fingerprint()
	if s.config.Transpositions {
		if e, ok := s.table.Query(fingerprint, depth, alpha, beta); ok {
			stats.TTHits++
			return e.Eval, e.Move, nil
		}
	}

	moves, err := s.movesAt(b, side, ply)
	if err != nil {
		return 0, game.NoMove(), errors.Wrapf(err, "generating moves at ply %d", ply)
	}
	if len(moves) == 0 {
		return math.Inf(-1), game.NoMove(), nil
	}
	if s.config.Ordering {
		orderMoves(moves, TargetCorner(b.Size(), side))
	}

	alphaOrig := alpha
	best := math.Inf(-1)
	bestMove := game.NoMove()
	for _, m := range moves {
		if !b.MakeMove(m) {
			return 0, game.NoMove(), errors.Wrapf(game.ErrIllegalMove, "make %v", m)
		}
		score, _, err := s.negamax(b, depth-1, ply+1, -beta, -alpha, stats)
		if !b.UnmakeMove(m) {
			return 0, game.NoMove(), errors.Wrapf(game.ErrIllegalMove, "unmake %v", m)
		}
		if err != nil {
			return 0, game.NoMove(), err
		}
		score = -score

		if score > best || bestMove.IsNone() {
			best = score
			bestMove = game.Some(m)
		}
		if s.config.Pruning {
			alpha = max(alpha, best)
			if alpha >= beta {
				stats.Cutoffs++
				break
			}
		}
	}

	if s.config.Transpositions {
		s.table.Record(fingerprint, best, depth, classify(best, alphaOrig, beta), bestMove)
	}
	return best, bestMove, nil
}
