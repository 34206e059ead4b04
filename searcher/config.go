package searcher

import "halma/game"

const (
	DefaultDepth = 2
	MaxDepth     = 8
)

// Config is fixed when a Searcher is built and never changes during a
// search. The zero value is not useful; start from DefaultConfig.
type Config struct {
	Pruning        bool
	Ordering       bool
	Transpositions bool
	AdaptiveDepth  bool
	Depth          int
	MaxMoves       int
	Weights        Weights
}

func DefaultConfig() Config {
	return Config{
		Pruning:        true,
		Ordering:       true,
		Transpositions: true,
		AdaptiveDepth:  true,
		Depth:          DefaultDepth,
		MaxMoves:       game.DefaultMoveLimit,
		Weights:        DefaultWeights(),
	}
}

type Option func(c *Config)

func WithPruning(enabled bool) Option {
	return func(c *Config) {
		c.Pruning = enabled
	}
}

func WithOrdering(enabled bool) Option {
	return func(c *Config) {
		c.Ordering = enabled
	}
}

func WithTranspositions(enabled bool) Option {
	return func(c *Config) {
		c.Transpositions = enabled
	}
}

func WithAdaptiveDepth(enabled bool) Option {
	return func(c *Config) {
		c.AdaptiveDepth = enabled
	}
}

// WithDepth sets the nominal number of plies. Zero is allowed and returns
// the static evaluation without a move.
func WithDepth(depth int) Option {
	return func(c *Config) {
		if depth >= 0 {
			c.Depth = depth
		}
	}
}

func WithMaxMoves(limit int) Option {
	return func(c *Config) {
		if limit > 0 {
			c.MaxMoves = limit
		}
	}
}

func WithWeights(w Weights) Option {
	return func(c *Config) {
		c.Weights = w
	}
}

// WithConfig replaces every setting at once. Options after it still apply.
func WithConfig(cfg Config) Option {
	return func(c *Config) {
		*c = cfg
	}
}

// depthFor picks the number of plies for side. Near the end of the race,
// measured by how many pieces already sit in the opposing camp, branching
// narrows and the search goes deeper.
func (c Config) depthFor(b *game.Board, side game.Piece) int {
	if !c.AdaptiveDepth {
		return c.Depth
	}
	arrived := 0
	opponent := side.Opponent()
	for y := 0; y < b.Size(); y++ {
		for x := 0; x < b.Size(); x++ {
			sq := game.Coord{X: x, Y: y}
			if b.At(sq) == side && b.IsInCamp(sq, opponent) {
				arrived++
			}
		}
	}
	return max(c.Depth, endgameDepth(arrived))
}

func endgameDepth(arrived int) int {
	switch {
	case arrived >= 18:
		return 6
	case arrived == 17:
		return 5
	case arrived >= 15:
		return 4
	default:
		return 0
	}
}
