// Command polysolve tiles a board with a sequence of polyomino pieces
// using the exact-cover search engine in package polyomino.
//
// Usage:
//
//	polysolve [-deadline 10s] [-catalog tetromino|workshop] <rows> <cols> <piece_sequence>
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/btree-query-bench/dsacore/polyomino"
	"github.com/btree-query-bench/dsacore/polyomino/catalog"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("polysolve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	deadline := fs.Duration("deadline", 10*time.Second, "search wall-clock deadline")
	catalogName := fs.String("catalog", "tetromino", "piece catalogue: tetromino or workshop")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	rest := fs.Args()
	if len(rest) != 3 {
		fmt.Fprintf(stderr, "usage: %s [-deadline D] [-catalog tetromino|workshop] <rows> <cols> <piece_sequence>\n", fs.Name())
		return 2
	}

	rows, err := parsePositiveInt(rest[0])
	if err != nil {
		fmt.Fprintf(stderr, "invalid board rows: %v\n", err)
		return 2
	}
	cols, err := parsePositiveInt(rest[1])
	if err != nil {
		fmt.Fprintf(stderr, "invalid board cols: %v\n", err)
		return 2
	}
	seq := rest[2]

	set, err := resolveCatalog(*catalogName)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	defs, unknown := catalog.Lookup(set, seq)
	if len(unknown) != 0 {
		for ch, pos := range unknown {
			fmt.Fprintf(stderr, "unknown piece %q at position %d\n", ch, pos)
		}
		return 2
	}

	out, err := polyomino.Solve(polyomino.Input{
		BoardRows: rows,
		BoardCols: cols,
		Pieces:    defs,
		Deadline:  *deadline,
	})
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	if out.TotalSolutions > 0 {
		fmt.Fprintf(stdout, "found %d solutions, best solution uses %d pieces\n", out.TotalSolutions, out.BestPartialDepth)
	} else {
		fmt.Fprintln(stdout, "no valid tiling found for this configuration")
	}
	if out.TimedOut {
		fmt.Fprintln(stdout, "(search deadline reached before exhausting the matrix)")
	}
	fmt.Fprint(stdout, out.BestPartialBoard)
	return 0
}

func parsePositiveInt(s string) (int, error) {
	n := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("not a positive integer: %q", s)
		}
		n = n*10 + int(c-'0')
	}
	if n <= 0 {
		return 0, fmt.Errorf("must be positive: %q", s)
	}
	return n, nil
}

func resolveCatalog(name string) (map[byte]polyomino.Def, error) {
	switch name {
	case "tetromino":
		return catalog.Tetromino, nil
	case "workshop":
		return catalog.Workshop, nil
	default:
		return nil, fmt.Errorf("unknown catalog %q (want tetromino or workshop)", name)
	}
}
