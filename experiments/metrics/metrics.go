package metrics

import (
	"time"

	"halma/game"
	"halma/searcher"
)

// AgentConfig names a bot configuration taking part in an experiment.
type AgentConfig struct {
	ID int
	searcher.Config
}

type SearchMetric struct {
	Depth     int
	Eval      float64
	Nodes     int64
	TTHits    int64
	Cutoffs   int64
	TTEntries int
	Duration  time.Duration
}

// FromResult copies the counters of one decision.
func FromResult(r searcher.Result) SearchMetric {
	return SearchMetric{
		Depth:     r.Depth,
		Eval:      r.Eval,
		Nodes:     r.Stats.Nodes,
		TTHits:    r.Stats.TTHits,
		Cutoffs:   r.Stats.Cutoffs,
		TTEntries: r.Stats.TTEntries,
		Duration:  r.Stats.Elapsed,
	}
}

type MoveMetric struct {
	Step int
	Side game.Piece
	Move string
	SearchMetric
}

type GameMetric struct {
	StartingSide game.Piece
	Winner       game.Piece // None unless a side filled the opposing camp
	Reason       string
	StartTime    time.Time
	EndTime      time.Time
	Duration     time.Duration
	TotalMoves   int
}
