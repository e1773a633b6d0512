// Package catalog provides example piece catalogues for the polyomino
// solver: boundary data, not core solver behavior (the solver accepts any
// caller-supplied piece.Def set).
package catalog

import "github.com/btree-query-bench/dsacore/polyomino"

// Tetromino is the classic seven-piece tetromino set: I, O, T, S, Z, J, L.
var Tetromino = map[byte]polyomino.Def{
	'I': {ID: 'I', Rows: 1, Cols: 4, Shape: "IIII"},
	'O': {ID: 'O', Rows: 2, Cols: 2, Shape: "OO" + "OO"},
	'T': {ID: 'T', Rows: 2, Cols: 3, Shape: "TTT" + ".T."},
	'S': {ID: 'S', Rows: 2, Cols: 3, Shape: ".SS" + "SS."},
	'Z': {ID: 'Z', Rows: 2, Cols: 3, Shape: "ZZ." + ".ZZ"},
	'J': {ID: 'J', Rows: 2, Cols: 3, Shape: "J.." + "JJJ"},
	'L': {ID: 'L', Rows: 2, Cols: 3, Shape: "..L" + "LLL"},
}

// Workshop is a twelve-letter custom catalogue: a mix of straight,
// staggered, and plus-shaped pieces larger than the classic tetromino
// set. F and M request reflected variants; the other pieces use their
// four rotations only.
var Workshop = map[byte]polyomino.Def{
	'A': {ID: 'A', Rows: 6, Cols: 1, Shape: "A" + "A" + "A" + "A" + "A" + "A"},
	'C': {ID: 'C', Rows: 3, Cols: 3, Shape: "CC." + ".CC" + ".C."},
	'D': {ID: 'D', Rows: 4, Cols: 2, Shape: ".D" + ".D" + ".D" + "DD"},
	'F': {ID: 'F', Rows: 3, Cols: 2, Shape: "FF" + "FF" + ".F", Reflect: true},
	'I': {ID: 'I', Rows: 4, Cols: 2, Shape: "I." + "I." + "II" + ".I"},
	'J': {ID: 'J', Rows: 3, Cols: 3, Shape: "JJJ" + ".J." + ".J."},
	'K': {ID: 'K', Rows: 2, Cols: 3, Shape: "K.K" + "KKK"},
	'L': {ID: 'L', Rows: 3, Cols: 3, Shape: "..L" + "..L" + "LLL"},
	'M': {ID: 'M', Rows: 3, Cols: 3, Shape: "..M" + ".MM" + "MM.", Reflect: true},
	'N': {ID: 'N', Rows: 3, Cols: 3, Shape: ".N." + "NNN" + ".N."},
	'O': {ID: 'O', Rows: 4, Cols: 2, Shape: "O." + "OO" + "O." + "O."},
	'Q': {ID: 'Q', Rows: 3, Cols: 3, Shape: ".QQ" + ".Q." + "QQ."},
}

// Lookup resolves a sequence of piece-id characters against set, in order,
// returning one Def per character. Unknown characters are reported as a
// map of the offending character to its position in seq.
func Lookup(set map[byte]polyomino.Def, seq string) (defs []polyomino.Def, unknown map[byte]int) {
	defs = make([]polyomino.Def, 0, len(seq))
	for i := 0; i < len(seq); i++ {
		def, ok := set[seq[i]]
		if !ok {
			if unknown == nil {
				unknown = make(map[byte]int)
			}
			unknown[seq[i]] = i
			continue
		}
		defs = append(defs, def)
	}
	return defs, unknown
}
