package game

import "github.com/pkg/errors"

var (
	// ErrTooManyMoves is returned when move generation would exceed the
	// caller's capacity. Moves are never dropped silently.
	ErrTooManyMoves = errors.New("too many moves")
	// ErrIllegalMove means a move failed to apply to the board it was
	// generated for. The generator and the board rules have diverged.
	ErrIllegalMove = errors.New("illegal move")
	ErrBadLayout   = errors.New("bad layout")
	ErrBadNotation = errors.New("bad move notation")
)
