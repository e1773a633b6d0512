package polyomino

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// emptyCell is the rendered character for an unoccupied board cell.
const emptyCell = '-'

// Board is an R x C grid of rendered characters, row-major.
type Board struct {
	Rows, Cols int
	Cells      []byte
}

// NewBoard returns a Board of the given dimensions, every cell empty.
func NewBoard(rows, cols int) (Board, error) {
	if rows <= 0 || cols <= 0 {
		return Board{}, errors.Newf("polyomino: invalid board dimensions %dx%d", rows, cols)
	}
	cells := make([]byte, rows*cols)
	for i := range cells {
		cells[i] = emptyCell
	}
	return Board{Rows: rows, Cols: cols, Cells: cells}, nil
}

// Verify reports whether every cell of b is still empty.
func (b Board) Verify() bool {
	for _, c := range b.Cells {
		if c != emptyCell {
			return false
		}
	}
	return true
}

// String renders b as Rows lines of Cols characters each.
func (b Board) String() string {
	var sb strings.Builder
	for r := 0; r < b.Rows; r++ {
		sb.Write(b.Cells[r*b.Cols : (r+1)*b.Cols])
		sb.WriteByte('\n')
	}
	return sb.String()
}

// clone returns an independent copy of b.
func (b Board) clone() Board {
	cells := make([]byte, len(b.Cells))
	copy(cells, b.Cells)
	return Board{Rows: b.Rows, Cols: b.Cols, Cells: cells}
}

// paint stamps variant at (top, left) onto b using id as the rendered
// character, for every one of the variant's filled cells.
func (b *Board) paint(variant Grid, top, left int, id byte) {
	for dy := 0; dy < variant.Rows; dy++ {
		for dx := 0; dx < variant.Cols; dx++ {
			if variant.at(dy, dx) == Empty {
				continue
			}
			b.Cells[(top+dy)*b.Cols+(left+dx)] = id
		}
	}
}
