package game

import "fmt"

const columns = "abcdefghijklmnopqrstuvwxyz"

// Coord is a board-relative square, 0-based, x is the column and y the row.
type Coord struct {
	X int
	Y int
}

func (c Coord) Add(o Coord) Coord {
	return Coord{X: c.X + o.X, Y: c.Y + o.Y}
}

func (c Coord) Sub(o Coord) Coord {
	return Coord{X: c.X - o.X, Y: c.Y - o.Y}
}

// Div divides both axes by n, truncating toward zero. Used to find the
// midpoint of a jump leg.
func (c Coord) Div(n int) Coord {
	return Coord{X: c.X / n, Y: c.Y / n}
}

// String renders the square in move notation, e.g. "a1" for (0,0).
func (c Coord) String() string {
	if c.X < 0 || c.X >= len(columns) {
		return fmt.Sprintf("(%d,%d)", c.X, c.Y)
	}
	return fmt.Sprintf("%c%d", columns[c.X], c.Y+1)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// isUnitStep reports whether the step moves exactly one square in one of
// the 8 compass directions.
func isUnitStep(step Coord) bool {
	return step != Coord{} && abs(step.X) <= 1 && abs(step.Y) <= 1
}

// isJumpStep reports whether the step is a jump leg: each axis is 0 or ±2
// and at least one axis is non-zero.
func isJumpStep(step Coord) bool {
	ax, ay := abs(step.X), abs(step.Y)
	return step != Coord{} && (ax == 0 || ax == 2) && (ay == 0 || ay == 2)
}

var (
	unitSteps = []Coord{
		{-1, -1}, {0, -1}, {1, -1},
		{-1, 0}, {1, 0},
		{-1, 1}, {0, 1}, {1, 1},
	}
	jumpSteps = []Coord{
		{-2, -2}, {0, -2}, {2, -2},
		{-2, 0}, {2, 0},
		{-2, 2}, {0, 2}, {2, 2},
	}
)
