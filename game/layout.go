package game

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// StartLayout is the standard opening position: SideA in the top-left
// camp, SideB in the bottom-right one.
const StartLayout = "PPPPP11/PPPPP11/PPPP12/PPP13/PP14/16/16/16/16/16/16/14pp/13ppp/12pppp/11ppppp/11ppppp"

const (
	layoutSideA = 'P'
	layoutSideB = 'p'
)

// LoadLayout builds a board from a row-major layout string. Rows are
// separated by '/', a number is a run of empty squares and a letter is one
// piece. The board size is the number of rows, between 10 and
// MaxBoardSize. SideA moves first.
func LoadLayout(layout string) (*Board, error) {
	rows := strings.Split(layout, "/")
	size := len(rows)
	if size < len(campWidths)*2 {
		return nil, errors.Wrapf(ErrBadLayout, "%d rows is too few", size)
	}
	if size > MaxBoardSize {
		return nil, errors.Wrapf(ErrBadLayout, "%d rows is more than %d", size, MaxBoardSize)
	}
	b := NewBoardSize(size)
	for y, row := range rows {
		x := 0
		for i := 0; i < len(row); {
			c := row[i]
			switch {
			case c >= '0' && c <= '9':
				j := i
				for j < len(row) && row[j] >= '0' && row[j] <= '9' {
					j++
				}
				n, err := strconv.Atoi(row[i:j])
				if err != nil || n == 0 {
					return nil, errors.Wrapf(ErrBadLayout, "row %d: bad run %q", y+1, row[i:j])
				}
				x += n
				i = j
				continue
			case c == layoutSideA, c == layoutSideB:
				if x >= size {
					return nil, errors.Wrapf(ErrBadLayout, "row %d is longer than %d", y+1, size)
				}
				p := SideA
				if c == layoutSideB {
					p = SideB
				}
				b.set(Coord{x, y}, p)
				x++
			default:
				return nil, errors.Wrapf(ErrBadLayout, "row %d: unexpected %q", y+1, c)
			}
			i++
		}
		if x != size {
			return nil, errors.Wrapf(ErrBadLayout, "row %d has %d squares, want %d", y+1, x, size)
		}
	}
	b.SetSideToMove(SideA)
	return b, nil
}

// MustLoadLayout is LoadLayout for layouts known to be valid.
func MustLoadLayout(layout string) *Board {
	b, err := LoadLayout(layout)
	if err != nil {
		panic(err)
	}
	return b
}

// NewStartBoard returns the standard opening position.
func NewStartBoard() *Board {
	return MustLoadLayout(StartLayout)
}

// Layout renders the grid in the format LoadLayout reads.
func (b *Board) Layout() string {
	var sb strings.Builder
	for y := 0; y < b.size; y++ {
		if y > 0 {
			sb.WriteByte('/')
		}
		empty := 0
		for x := 0; x < b.size; x++ {
			p := b.cells[y*b.size+x]
			if p == None {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			if p == SideA {
				sb.WriteByte(layoutSideA)
			} else {
				sb.WriteByte(layoutSideB)
			}
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
	}
	return sb.String()
}
