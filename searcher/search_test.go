package searcher

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"halma/game"
)

func randomPosition(t *testing.T, rng *rand.Rand, plies int) *game.Board {
	t.Helper()
	b := game.NewStartBoard()
	for i := 0; i < plies; i++ {
		moves, err := game.Moves(b, b.SideToMove())
		require.NoError(t, err)
		if len(moves) == 0 {
			break
		}
		require.True(t, b.MakeMove(moves[rng.Intn(len(moves))]))
	}
	return b
}

// sparse has two pieces per side in open space, small enough for full
// minimax at depth 4.
func sparse(t *testing.T) *game.Board {
	t.Helper()
	b, err := game.LoadLayout("16/16/16/3P4P7/16/16/16/16/16/16/16/16/7p4p3/16/16/16")
	require.NoError(t, err)
	return b
}

func decide(t *testing.T, b *game.Board, side game.Piece, options ...Option) Result {
	t.Helper()
	options = append([]Option{WithAdaptiveDepth(false)}, options...)
	result, err := New(options...).Decide(b, side)
	require.NoError(t, err)
	return result
}

func TestSearchDepthZero(t *testing.T) {
	b := game.NewStartBoard()

	result := decide(t, b, game.SideA, WithDepth(0))

	require.True(t, result.Move.IsNone(), "Depth 0 should not pick a move")
	require.Equal(t, Evaluate(b, game.SideA, DefaultWeights()), result.Eval)
	require.Equal(t, int64(1), result.Stats.Nodes)
}

func TestSearchRestoresBoard(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	b := randomPosition(t, rng, 10)
	layout, hash, side := b.Layout(), b.Fingerprint(), b.SideToMove()

	result := decide(t, b, side, WithDepth(2))

	require.False(t, result.Move.IsNone())
	require.Equal(t, layout, b.Layout(), "Grid should be restored after the search")
	require.Equal(t, hash, b.Fingerprint(), "Fingerprint should be restored after the search")
	require.Equal(t, side, b.SideToMove())

	m, _ := result.Move.Get()
	require.True(t, b.MakeMove(m), "Chosen move should be legal")
}

func TestSearchAlphaBetaEquivalence(t *testing.T) {
	t.Run("start position at depth 3", func(t *testing.T) {
		b := game.NewStartBoard()
		full := decide(t, b, game.SideA, WithDepth(3), WithPruning(false), WithOrdering(false), WithTranspositions(false))
		pruned := decide(t, b, game.SideA, WithDepth(3), WithPruning(true), WithOrdering(false), WithTranspositions(false))
		ordered := decide(t, b, game.SideA, WithDepth(3), WithPruning(true), WithOrdering(true), WithTranspositions(false))

		require.Equal(t, full.Eval, pruned.Eval, "Pruning must not change the score")
		require.Equal(t, full.Eval, ordered.Eval, "Ordering must not change the score")
		require.Less(t, pruned.Stats.Nodes, full.Stats.Nodes, "Pruning should visit fewer nodes")
		require.Zero(t, full.Stats.Cutoffs)
	})

	t.Run("sparse position at depth 4", func(t *testing.T) {
		b := sparse(t)
		full := decide(t, b, game.SideA, WithDepth(4), WithPruning(false), WithOrdering(false), WithTranspositions(false))
		pruned := decide(t, b, game.SideA, WithDepth(4), WithPruning(true), WithOrdering(true), WithTranspositions(false))

		require.Equal(t, full.Eval, pruned.Eval)
	})

	t.Run("random positions at depth 2", func(t *testing.T) {
		rng := rand.New(rand.NewSource(21))
		for i := 0; i < 10; i++ {
			b := randomPosition(t, rng, rng.Intn(40))
			side := b.SideToMove()
			full := decide(t, b, side, WithDepth(2), WithPruning(false), WithOrdering(false), WithTranspositions(false))
			pruned := decide(t, b, side, WithDepth(2), WithPruning(true), WithOrdering(true), WithTranspositions(false))

			require.Equal(t, full.Eval, pruned.Eval, "Position %s", b.Layout())
		}
	})
}

func TestSearchTranspositionEquivalence(t *testing.T) {
	t.Run("sparse position without pruning", func(t *testing.T) {
		b := sparse(t)
		without := decide(t, b, game.SideA, WithDepth(4), WithPruning(false), WithTranspositions(false))
		with := decide(t, b, game.SideA, WithDepth(4), WithPruning(false), WithTranspositions(true))

		require.Equal(t, without.Eval, with.Eval)
		require.Positive(t, with.Stats.TTHits, "Moving two pieces in either order transposes")
		require.Less(t, with.Stats.Nodes, without.Stats.Nodes)
		require.Positive(t, with.Stats.TTEntries)
	})

	t.Run("sparse position with pruning", func(t *testing.T) {
		b := sparse(t)
		without := decide(t, b, game.SideB, WithDepth(4), WithTranspositions(false))
		with := decide(t, b, game.SideB, WithDepth(4), WithTranspositions(true))

		require.Equal(t, without.Eval, with.Eval)
	})

	t.Run("start position with pruning", func(t *testing.T) {
		b := game.NewStartBoard()
		without := decide(t, b, game.SideA, WithDepth(4), WithTranspositions(false))
		with := decide(t, b, game.SideA, WithDepth(4), WithTranspositions(true))

		require.Equal(t, without.Eval, with.Eval)
	})
}

const nearWinLayout = "16/16/16/16/16/16/16/16/16/16/16/14PP/13PPP/12PPPP/10P1PPPP/11PPPPP"

func TestSearchTerminal(t *testing.T) {
	// side A holds all of side B's camp but (11,14) and can step into it;
	// one side B piece keeps the game going elsewhere
	nearWin := func() *game.Board {
		b, err := game.LoadLayout("16/16/16/16/16/16/16/16/16/16/16/14PP/13PPP/12PPPP/10P1PPPP/p10PPPPP")
		require.NoError(t, err)
		return b
	}

	t.Run("board is not yet won", func(t *testing.T) {
		require.Equal(t, game.InProgress, nearWin().State())
	})

	t.Run("the winning move is found at depth 1", func(t *testing.T) {
		result := decide(t, nearWin(), game.SideA, WithDepth(1))

		m, ok := result.Move.Get()
		require.True(t, ok)
		require.Equal(t, game.Coord{X: 11, Y: 14}, m.FinalSquare())
		require.Equal(t, float64(WinScore), result.Eval)
	})

	t.Run("a win found with more depth left scores higher", func(t *testing.T) {
		result := decide(t, nearWin(), game.SideA, WithDepth(3))

		m, ok := result.Move.Get()
		require.True(t, ok)
		require.Equal(t, game.Coord{X: 11, Y: 14}, m.FinalSquare())
		require.Equal(t, float64(WinScore+2), result.Eval)
	})

	t.Run("the losing side sees the loss", func(t *testing.T) {
		b := nearWin()
		require.True(t, b.MakeMove(game.Move{From: game.Coord{X: 10, Y: 14}, Steps: []game.Coord{{X: 1, Y: 0}}}))
		require.Equal(t, game.SideAWon, b.State())

		result := decide(t, b, game.SideB, WithDepth(2))

		require.True(t, result.Move.IsNone())
		require.Equal(t, float64(-(WinScore + 2)), result.Eval)
	})

	t.Run("no legal moves while in progress scores minus infinity", func(t *testing.T) {
		b, err := game.LoadLayout(nearWinLayout)
		require.NoError(t, err)

		result := decide(t, b, game.SideB, WithDepth(2))

		require.True(t, result.Move.IsNone())
		require.True(t, math.IsInf(result.Eval, -1))
	})
}

func TestSearchErrors(t *testing.T) {
	t.Run("move overflow aborts the decision and restores the board", func(t *testing.T) {
		b := game.NewStartBoard()
		hash := b.Fingerprint()

		_, err := New(WithDepth(2), WithMaxMoves(5)).Decide(b, game.SideA)

		require.Error(t, err)
		require.True(t, errors.Is(err, game.ErrTooManyMoves))
		require.Equal(t, game.StartLayout, b.Layout())
		require.Equal(t, hash, b.Fingerprint())
	})

	t.Run("negative depth is ignored by the option", func(t *testing.T) {
		require.Equal(t, DefaultDepth, New(WithDepth(-1)).Config().Depth)
	})

	t.Run("invalid config panics", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.MaxMoves = 0
		require.Panics(t, func() { New(WithConfig(cfg)) })
	})
}

func TestDepthPolicy(t *testing.T) {
	t.Run("endgame table", func(t *testing.T) {
		require.Equal(t, 0, endgameDepth(14))
		require.Equal(t, 4, endgameDepth(15))
		require.Equal(t, 4, endgameDepth(16))
		require.Equal(t, 5, endgameDepth(17))
		require.Equal(t, 6, endgameDepth(18))
	})

	t.Run("nominal depth away from the endgame", func(t *testing.T) {
		cfg := DefaultConfig()
		require.Equal(t, DefaultDepth, cfg.depthFor(game.NewStartBoard(), game.SideA))
	})

	t.Run("deeper once pieces have arrived", func(t *testing.T) {
		b, err := game.LoadLayout(nearWinLayout)
		require.NoError(t, err)
		cfg := DefaultConfig()

		require.Equal(t, 6, cfg.depthFor(b, game.SideA))
		cfg.AdaptiveDepth = false
		require.Equal(t, DefaultDepth, cfg.depthFor(b, game.SideA))
		cfg.AdaptiveDepth = true
		cfg.Depth = 7
		require.Equal(t, 7, cfg.depthFor(b, game.SideA))
	})
}
