package searcher

import (
	"time"

	"halma/game"
)

// Stats accumulates counters for one decision. The searcher passes it down
// the recursion by pointer; nothing survives between decisions.
type Stats struct {
	Nodes     int64
	Leaves    int64
	TTHits    int64
	Cutoffs   int64
	TTEntries int
	Elapsed   time.Duration
}

// NodesPerSecond is zero for searches too quick to time.
func (s Stats) NodesPerSecond() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Nodes) / s.Elapsed.Seconds()
}

// Result is the outcome of one decision.
type Result struct {
	Move  game.Choice
	Eval  float64
	Depth int
	Stats Stats
}
