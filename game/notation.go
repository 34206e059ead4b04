package game

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ParseMove reads a move in the "[J]a1>c3>e5" notation produced by
// Move.String. The leading J is accepted but ignored; the squares alone
// decide the steps.
func ParseMove(s string) (Move, error) {
	text := strings.TrimPrefix(strings.TrimSpace(s), "J")
	parts := strings.Split(text, ">")
	if len(parts) < 2 {
		return Move{}, errors.Wrapf(ErrBadNotation, "%q needs at least two squares", s)
	}
	squares := make([]Coord, len(parts))
	for i, part := range parts {
		c, err := ParseSquare(part)
		if err != nil {
			return Move{}, errors.Wrapf(err, "move %q", s)
		}
		squares[i] = c
	}
	m := Move{From: squares[0], Steps: make([]Coord, 0, len(squares)-1)}
	for i := 1; i < len(squares); i++ {
		step := squares[i].Sub(squares[i-1])
		if !isUnitStep(step) && !isJumpStep(step) {
			return Move{}, errors.Wrapf(ErrBadNotation, "%q: %v to %v is neither a step nor a jump", s, squares[i-1], squares[i])
		}
		m.Steps = append(m.Steps, step)
	}
	return m, nil
}

// ParseSquare reads a column letter followed by a 1-based row number.
func ParseSquare(s string) (Coord, error) {
	if len(s) < 2 {
		return Coord{}, errors.Wrapf(ErrBadNotation, "square %q", s)
	}
	x := strings.IndexByte(columns, s[0])
	if x < 0 {
		return Coord{}, errors.Wrapf(ErrBadNotation, "square %q: bad column", s)
	}
	row, err := strconv.Atoi(s[1:])
	if err != nil || row < 1 {
		return Coord{}, errors.Wrapf(ErrBadNotation, "square %q: bad row", s)
	}
	return Coord{X: x, Y: row - 1}, nil
}
