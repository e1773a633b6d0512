package polyomino

import (
	"time"

	"github.com/cockroachdb/errors"
)

// Input is the full configuration for one solve: board dimensions, the
// ordered list of piece instances to place, and a search deadline.
type Input struct {
	BoardRows, BoardCols int
	Pieces               []Def
	Deadline             time.Duration
}

// Output is the result of a solve: how many complete tilings exist, and
// the deepest partial tiling found (a full tiling when TotalSolutions > 0).
type Output struct {
	TotalSolutions   int
	BestPartialBoard string
	BestPartialDepth int
	TimedOut         bool
}

// Solve validates in, builds the piece and placement models, runs the
// search engine to completion or deadline, and renders the best partial
// (or complete) tiling found. A board that cannot be tiled is not an
// error: Output.TotalSolutions is simply 0 and BestPartialBoard reflects
// whatever the search covered before exhausting the matrix.
func Solve(in Input) (Output, error) {
	board, err := NewBoard(in.BoardRows, in.BoardCols)
	if err != nil {
		return Output{}, err
	}
	if len(in.Pieces) == 0 {
		return Output{}, errors.New("polyomino: no pieces provided")
	}

	pieces := make([]Piece, len(in.Pieces))
	for i, def := range in.Pieces {
		p, err := NewPiece(def)
		if err != nil {
			return Output{}, errors.Wrapf(err, "polyomino: piece %d", i)
		}
		pieces[i] = p
	}

	matrix := buildPlacementMatrix(in.BoardRows, in.BoardCols, pieces)
	cols := totalColumns(in.BoardRows, in.BoardCols, len(pieces))

	var deadline time.Time
	if in.Deadline > 0 {
		deadline = time.Now().Add(in.Deadline)
	}

	s := newSearch(matrix, cols, deadline)
	s.run()

	rendered := board.clone()
	for _, rowIx := range s.best {
		row := matrix[rowIx]
		rendered.paint(pieces[row.PieceIx].Variants[row.VariantIx], row.Top, row.Left, pieces[row.PieceIx].ID)
	}

	return Output{
		TotalSolutions:   s.solutionCount,
		BestPartialBoard: rendered.String(),
		BestPartialDepth: s.bestDepth,
		TimedOut:         s.timedOut,
	}, nil
}
