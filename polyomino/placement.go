package polyomino

// Row is one possible placement of one piece instance, using one of its
// rotation variants, at a specific (top, left) board offset. Columns holds
// the exact-cover column ids it covers: one board-cell id per filled cell
// of the variant, plus its single piece-instance id.
type Row struct {
	PieceIx   int
	VariantIx int
	Top, Left int
	Columns   []int
}

// boardColumn is the column id of board cell (r, c) on an R x C board.
func boardColumn(cols, r, c int) int { return r*cols + c }

// pieceColumn is the column id of piece instance i on an R x C board with
// n piece instances.
func pieceColumn(rows, cols, i int) int { return rows*cols + i }

// totalColumns is the size of the exact-cover column universe: one column
// per board cell plus one per piece instance.
func totalColumns(rows, cols, n int) int { return rows*cols + n }

// buildPlacementMatrix enumerates every valid placement row for the given
// board dimensions and piece instances, in two passes — first counting
// valid rows to size the slice once, then materialising them — so the
// result is allocated exactly once regardless of how sparse the matrix is.
//
// Row ordering: piece instances in input order, then variants in index
// order (0..3, or 0..7 for a piece with reflections), then
// placements top-to-bottom, then left-to-right.
func buildPlacementMatrix(rows, cols int, pieces []Piece) []Row {
	count := 0
	for _, p := range pieces {
		for _, v := range p.Variants {
			if v.Rows > rows || v.Cols > cols {
				continue
			}
			count += (rows - v.Rows + 1) * (cols - v.Cols + 1)
		}
	}

	matrix := make([]Row, 0, count)
	for i, p := range pieces {
		for variantIx, v := range p.Variants {
			if v.Rows > rows || v.Cols > cols {
				continue
			}
			active := v.ActiveCells()
			for top := 0; top <= rows-v.Rows; top++ {
				for left := 0; left <= cols-v.Cols; left++ {
					columns := make([]int, 0, active+1)
					for dy := 0; dy < v.Rows; dy++ {
						for dx := 0; dx < v.Cols; dx++ {
							if v.at(dy, dx) == Empty {
								continue
							}
							columns = append(columns, boardColumn(cols, top+dy, left+dx))
						}
					}
					columns = append(columns, pieceColumn(rows, cols, i))
					matrix = append(matrix, Row{
						PieceIx:   i,
						VariantIx: variantIx,
						Top:       top,
						Left:      left,
						Columns:   columns,
					})
				}
			}
		}
	}
	return matrix
}
