package polyomino

import "testing"

func TestNewBoardRejectsNonPositiveDimensions(t *testing.T) {
	if _, err := NewBoard(0, 4); err == nil {
		t.Fatal("want error for zero rows")
	}
	if _, err := NewBoard(4, -1); err == nil {
		t.Fatal("want error for negative cols")
	}
}

func TestNewBoardIsEmptyAndVerifies(t *testing.T) {
	b, err := NewBoard(3, 4)
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}
	if !b.Verify() {
		t.Fatal("freshly created board should verify as empty")
	}
	if got := b.String(); got != "----\n----\n----\n" {
		t.Fatalf("unexpected render: %q", got)
	}
}

func TestPaintMarksFilledCellsOnly(t *testing.T) {
	b, err := NewBoard(2, 2)
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}
	p, err := NewPiece(Def{ID: 'I', Rows: 1, Cols: 2, Shape: "II"})
	if err != nil {
		t.Fatalf("NewPiece: %v", err)
	}
	b.paint(p.Variants[0], 0, 0, 'I')
	if b.Verify() {
		t.Fatal("board should no longer verify as empty after paint")
	}
	if b.Cells[0] != 'I' || b.Cells[1] != 'I' {
		t.Fatalf("top row should be painted: %q", b.String())
	}
	if b.Cells[2] != emptyCell || b.Cells[3] != emptyCell {
		t.Fatalf("bottom row should be untouched: %q", b.String())
	}
}
