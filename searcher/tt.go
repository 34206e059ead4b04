package searcher

import "halma/game"

// Bound says how a stored score relates to the true value of its position.
type Bound uint8

const (
	Exact Bound = iota
	// UpperBound: every move failed low, the true value is at most Eval.
	UpperBound
	// LowerBound: a move failed high, the true value is at least Eval.
	LowerBound
)

func (b Bound) String() string {
	switch b {
	case Exact:
		return "exact"
	case UpperBound:
		return "upper"
	default:
		return "lower"
	}
}

type Entry struct {
	Depth int
	Bound Bound
	Eval  float64
	Move  game.Choice
}

// Table is a transposition table keyed by board fingerprint. Writes always
// replace the previous entry.
type Table struct {
	entries map[uint64]Entry
}

func NewTable() *Table {
	return &Table{entries: make(map[uint64]Entry)}
}

func (t *Table) Clear() {
	clear(t.entries)
}

func (t *Table) Len() int {
	return len(t.entries)
}

func (t *Table) Record(fingerprint uint64, eval float64, depth int, bound Bound, move game.Choice) {
	t.entries[fingerprint] = Entry{Depth: depth, Bound: bound, Eval: eval, Move: move}
}

// Query returns the entry for fingerprint if it was searched at least as
// deep as depth and its bound settles the (alpha, beta) window.
func (t *Table) Query(fingerprint uint64, depth int, alpha, beta float64) (Entry, bool) {
	e, ok := t.entries[fingerprint]
	if !ok || e.Depth < depth {
		return Entry{}, false
	}
	switch {
	case e.Bound == Exact:
	case e.Bound == UpperBound && e.Eval <= alpha:
	case e.Bound == LowerBound && e.Eval >= beta:
	default:
		return Entry{}, false
	}
	return e, true
}

// classify labels a fail-soft result against the window it was searched
// with.
func classify(eval, alpha, beta float64) Bound {
	switch {
	case eval <= alpha:
		return UpperBound
	case eval >= beta:
		return LowerBound
	default:
		return Exact
	}
}
