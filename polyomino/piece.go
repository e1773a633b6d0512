// Package polyomino implements an exact-cover tiling solver for boards of
// named polyomino pieces: a piece model with precomputed rotations, a
// placement enumerator, and an Algorithm X search engine with a
// leftmost-minimum-column heuristic and best-partial tracking.
package polyomino

import "github.com/cockroachdb/errors"

// Empty marks an unoccupied cell in a piece grid or a board.
const Empty = '.'

// Grid is a dense occupancy grid stored in a square buffer of side Dim,
// row-major with stride Dim, so every rotation of a piece indexes the
// same-sized buffer.
// Only the [0,Rows)x[0,Cols) sub-rectangle is meaningful; the rest of the
// buffer (present when Rows != Cols) is always Empty.
type Grid struct {
	Rows, Cols int
	Dim        int
	Cells      []byte
}

func newGrid(rows, cols, dim int) Grid {
	cells := make([]byte, dim*dim)
	for i := range cells {
		cells[i] = Empty
	}
	return Grid{Rows: rows, Cols: cols, Dim: dim, Cells: cells}
}

func (g Grid) at(r, c int) byte { return g.Cells[r*g.Dim+c] }

func (g *Grid) set(r, c int, v byte) { g.Cells[r*g.Dim+c] = v }

// rotate90 returns a 90-degree clockwise rotation of g, kept in a square
// buffer of the same side.
func (g Grid) rotate90() Grid {
	out := newGrid(g.Cols, g.Rows, g.Dim)
	for i := 0; i < g.Rows; i++ {
		for j := 0; j < g.Cols; j++ {
			out.set(j, g.Rows-1-i, g.at(i, j))
		}
	}
	return out
}

// reflect returns g mirrored left-to-right (bounding box dimensions are
// unchanged), the seed for the four reflected variants.
func (g Grid) reflect() Grid {
	out := newGrid(g.Rows, g.Cols, g.Dim)
	for i := 0; i < g.Rows; i++ {
		for j := 0; j < g.Cols; j++ {
			out.set(i, g.Cols-1-j, g.at(i, j))
		}
	}
	return out
}

// Def is the caller-supplied definition of one piece: an id character and
// a dotted occupancy string in row-major order over a Rows x Cols bounding
// box. Reflect requests the four additional mirrored variants (V=8
// instead of V=4).
type Def struct {
	ID         byte
	Rows, Cols int
	Shape      string // len == Rows*Cols, '.' for empty, anything else for filled
	Reflect    bool
}

// Piece is a piece's immutable set of rotation (and, if requested,
// reflection) variants, each a square grid of side max(Rows, Cols) per the
// chosen indexing-uniformity tradeoff. len(Variants) is 4, or 8 when the
// piece's Def requested reflections.
type Piece struct {
	ID       byte
	Variants []Grid
}

// NewPiece builds a piece's variants from def: four 90-degree clockwise
// rotations of the canonical shape and, when def.Reflect is set, four more
// rotations seeded from a single left-right mirror of the canonical shape
// (mirror once, then rotate three more times). Variant r+1 within each
// four-variant half is always the 90-degree clockwise rotation of variant
// r; duplicate variants (e.g. a fully symmetric piece) are kept, not
// deduplicated — dedup is an optimisation the search engine does not
// depend on.
func NewPiece(def Def) (Piece, error) {
	if def.Rows <= 0 || def.Cols <= 0 {
		return Piece{}, errors.Newf("polyomino: piece %q has non-positive bounding box %dx%d", def.ID, def.Rows, def.Cols)
	}
	if len(def.Shape) != def.Rows*def.Cols {
		return Piece{}, errors.Newf("polyomino: piece %q shape length %d does not match %dx%d", def.ID, len(def.Shape), def.Rows, def.Cols)
	}

	dim := def.Rows
	if def.Cols > dim {
		dim = def.Cols
	}

	base := newGrid(def.Rows, def.Cols, dim)
	filled := false
	for i := 0; i < def.Rows; i++ {
		for j := 0; j < def.Cols; j++ {
			ch := def.Shape[i*def.Cols+j]
			if ch != Empty {
				base.set(i, j, def.ID)
				filled = true
			}
		}
	}
	if !filled {
		return Piece{}, errors.Newf("polyomino: piece %q has no occupied cells", def.ID)
	}

	variantCount := 4
	if def.Reflect {
		variantCount = 8
	}
	variants := make([]Grid, variantCount)
	variants[0] = base
	for r := 1; r < 4; r++ {
		variants[r] = variants[r-1].rotate90()
	}
	if def.Reflect {
		variants[4] = base.reflect()
		for r := 5; r < 8; r++ {
			variants[r] = variants[r-1].rotate90()
		}
	}
	return Piece{ID: def.ID, Variants: variants}, nil
}

// ActiveCells counts the filled cells of a variant's meaningful
// Rows x Cols sub-rectangle.
func (g Grid) ActiveCells() int {
	n := 0
	for i := 0; i < g.Rows; i++ {
		for j := 0; j < g.Cols; j++ {
			if g.at(i, j) != Empty {
				n++
			}
		}
	}
	return n
}
