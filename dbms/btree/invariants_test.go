package btree

import (
	"math"
	"testing"

	"github.com/btree-query-bench/dsacore/dbms/pager"
)

// checkInvariants walks the whole tree from the root and fails t if any of
// the CLRS invariants don't hold: non-root fill bounds, strictly
// increasing keys, subtree key bounds, uniform leaf depth, root address,
// and no live slot carrying the sentinel fill value.
func checkInvariants(t *testing.T, bt *BTree) {
	t.Helper()
	leafDepth := -1
	var walk func(addr int32, isRoot bool, lo, hi int32, depth int)
	walk = func(addr int32, isRoot bool, lo, hi int32, depth int) {
		node := pager.NewNode(bt.t)
		if err := bt.pg.Read(addr, node); err != nil {
			t.Fatalf("read %d: %v", addr, err)
		}

		if !isRoot {
			if node.N < bt.t-1 || node.N > 2*bt.t-1 {
				t.Fatalf("node %d: n=%d out of [%d,%d]", addr, node.N, bt.t-1, 2*bt.t-1)
			}
		} else if node.N > 2*bt.t-1 {
			t.Fatalf("root %d: n=%d exceeds 2t-1=%d", addr, node.N, 2*bt.t-1)
		}

		for i := int32(0); i < node.N; i++ {
			if node.Key[i] == pager.SentinelValue || node.Value[i] == pager.SentinelValue {
				t.Fatalf("node %d: live slot %d carries the sentinel fill value", addr, i)
			}
			if i > 0 && node.Key[i] <= node.Key[i-1] {
				t.Fatalf("node %d: keys not strictly increasing at %d", addr, i)
			}
			if node.Key[i] < lo || node.Key[i] > hi {
				t.Fatalf("node %d: key[%d]=%d out of bounds [%d,%d]", addr, i, node.Key[i], lo, hi)
			}
		}

		if node.Leaf {
			if leafDepth == -1 {
				leafDepth = depth
			} else if leafDepth != depth {
				t.Fatalf("node %d: leaf at depth %d, expected %d", addr, depth, leafDepth)
			}
			return
		}

		for i := int32(0); i <= node.N; i++ {
			childLo, childHi := lo, hi
			if i > 0 {
				childLo = node.Key[i-1]
			}
			if i < node.N {
				childHi = node.Key[i]
			}
			walk(node.Child[i], false, childLo, childHi, depth+1)
		}
	}
	walk(rootAddr, true, math.MinInt32, math.MaxInt32, 0)
}
