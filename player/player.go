package player

import (
	"halma/game"
)

// PickFunc receives a player's decision. A none choice means the side has
// no legal move; a non-nil error means the player failed to decide.
type PickFunc func(choice game.Choice, err error)

// Player is one side of a game. The driver registers a callback with
// OnMovePicked once, then calls OnPlayerTurn whenever the side is to move.
// The board passed to OnPlayerTurn belongs to the driver and must not be
// modified or retained.
type Player interface {
	Name() string
	OnPlayerTurn(turn int, side game.Piece, b *game.Board)
	OnMovePicked(fn PickFunc)
}

// callbacks holds the registered PickFunc for embedding players.
type callbacks struct {
	picked PickFunc
}

func (c *callbacks) OnMovePicked(fn PickFunc) {
	c.picked = fn
}

func (c *callbacks) emit(choice game.Choice, err error) {
	if c.picked != nil {
		c.picked(choice, err)
	}
}
