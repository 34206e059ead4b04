package engine

import (
	"context"

	"halma/experiments/metrics"
)

const DefaultMaxTurns = 1000

// Why a game stopped.
const (
	ReasonWin       = "win"
	ReasonNoMoves   = "no_moves"
	ReasonTurnLimit = "turn_limit"
)

type Engine interface {
	// Run plays a game till a side wins, a side has no move or the turn
	// limit is reached.
	Run(ctx context.Context) (metrics.GameMetric, []metrics.MoveMetric, error)
}
