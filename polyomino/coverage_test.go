package polyomino_test

import (
	"testing"
	"time"

	"github.com/btree-query-bench/dsacore/polyomino"
	"github.com/stretchr/testify/require"
)

// TestCoverageLawAndNonOverlap checks the coverage and non-overlap
// properties directly against the rendered board: a complete solution's
// pieces must occupy every cell exactly once, with no leftover '-' cells
// and no cell silently overwritten by a later piece.
func TestCoverageLawAndNonOverlap(t *testing.T) {
	out, err := polyomino.Solve(polyomino.Input{
		BoardRows: 4,
		BoardCols: 4,
		Pieces:    defsFor(t, "JLSO"),
		Deadline:  10 * time.Second,
	})
	require.NoError(t, err)
	require.GreaterOrEqual(t, out.TotalSolutions, 1)
	require.Equal(t, 4, out.BestPartialDepth)

	lines := splitLines(out.BestPartialBoard)
	require.Len(t, lines, 4)

	seen := make(map[byte]int)
	for _, line := range lines {
		require.Len(t, line, 4)
		for i := 0; i < len(line); i++ {
			require.NotEqual(t, byte('-'), line[i], "coverage law: every cell must be occupied")
			seen[line[i]]++
		}
	}
	// Non-overlap: J, L, S, O each contribute exactly 4 cells to a 16-cell
	// board, and no character can appear more or fewer times than that
	// without either an overlap or a gap somewhere else.
	require.Len(t, seen, 4)
	for piece, count := range seen {
		require.Equalf(t, 4, count, "piece %q should occupy exactly 4 cells", string(piece))
	}
}

func TestBestPartialMonotonicityAcrossDeadlines(t *testing.T) {
	tight, err := polyomino.Solve(polyomino.Input{
		BoardRows: 3,
		BoardCols: 3,
		Pieces:    workshopDefsFor(t, "KN"),
		Deadline:  time.Nanosecond,
	})
	require.NoError(t, err)

	relaxed, err := polyomino.Solve(polyomino.Input{
		BoardRows: 3,
		BoardCols: 3,
		Pieces:    workshopDefsFor(t, "KN"),
		Deadline:  5 * time.Second,
	})
	require.NoError(t, err)

	require.LessOrEqual(t, tight.BestPartialDepth, relaxed.BestPartialDepth)
}

func splitLines(board string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(board); i++ {
		if board[i] == '\n' {
			lines = append(lines, board[start:i])
			start = i + 1
		}
	}
	return lines
}
