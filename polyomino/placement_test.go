package polyomino

import "testing"

func TestPlacementMatrixSingleCellPieceCoversEveryBoardCell(t *testing.T) {
	p, err := NewPiece(Def{ID: 'X', Rows: 1, Cols: 1, Shape: "X"})
	if err != nil {
		t.Fatalf("NewPiece: %v", err)
	}
	rows, cols := 2, 3
	matrix := buildPlacementMatrix(rows, cols, []Piece{p})

	// 4 rotations, each identical for a 1x1 piece, each fitting at all 6
	// board cells: 24 placement rows total.
	if got, want := len(matrix), 4*rows*cols; got != want {
		t.Fatalf("want %d placement rows, got %d", want, got)
	}
	for _, row := range matrix {
		if len(row.Columns) != 2 {
			t.Fatalf("row should cover 1 board cell + 1 piece-instance column, got %d columns", len(row.Columns))
		}
		pieceCol := row.Columns[len(row.Columns)-1]
		if want := pieceColumn(rows, cols, 0); pieceCol != want {
			t.Fatalf("want piece column %d, got %d", want, pieceCol)
		}
	}
}

func TestPlacementMatrixSkipsOversizedVariants(t *testing.T) {
	p, err := NewPiece(Def{ID: 'A', Rows: 1, Cols: 4, Shape: "AAAA"})
	if err != nil {
		t.Fatalf("NewPiece: %v", err)
	}
	// A 1x1 board can never fit a 1x4 (or its 4x1 rotation) piece.
	matrix := buildPlacementMatrix(1, 1, []Piece{p})
	if len(matrix) != 0 {
		t.Fatalf("want no placements on a board too small for any rotation, got %d", len(matrix))
	}
}

func TestPlacementMatrixColumnRangesArePartitioned(t *testing.T) {
	p1, _ := NewPiece(Def{ID: 'A', Rows: 1, Cols: 1, Shape: "A"})
	p2, _ := NewPiece(Def{ID: 'B', Rows: 1, Cols: 1, Shape: "B"})
	rows, cols := 2, 2
	matrix := buildPlacementMatrix(rows, cols, []Piece{p1, p2})

	boardCells := rows * cols
	for _, row := range matrix {
		for _, col := range row.Columns[:len(row.Columns)-1] {
			if col < 0 || col >= boardCells {
				t.Fatalf("board-cell column %d out of range [0,%d)", col, boardCells)
			}
		}
		pieceCol := row.Columns[len(row.Columns)-1]
		if pieceCol < boardCells || pieceCol >= boardCells+2 {
			t.Fatalf("piece-instance column %d out of range [%d,%d)", pieceCol, boardCells, boardCells+2)
		}
	}
}
