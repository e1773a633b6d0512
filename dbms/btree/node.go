// Package btree implements a persistent CLRS B-tree of configurable
// minimum degree t on top of dbms/pager: one key/value slot shift and one
// split computation at a time, never more than a single node buffer
// resident per call frame.
package btree

import (
	"github.com/btree-query-bench/dsacore/dbms/pager"
	"github.com/cockroachdb/errors"
)

// findPos returns the position of the first key >= k in node (linear
// scan — nodes are small enough, typically a few hundred keys at most, that
// a scan beats a binary search on cache-line friendliness), and whether
// that position is an exact match.
func findPos(node *pager.Node, k int32) (pos int32, exact bool) {
	i := int32(0)
	for i < node.N && k > node.Key[i] {
		i++
	}
	return i, i < node.N && node.Key[i] == k
}

// search descends from addr looking for k, returning its value (ignoring
// tombstoned slots) and whether it was found live.
func search(pg *pager.Pager, addr int32, k int32) (int32, bool, error) {
	node := pager.NewNode(pg.GetT())
	if err := pg.Read(addr, node); err != nil {
		return 0, false, err
	}
	i, exact := findPos(node, k)
	if exact {
		if node.Value[i] == pager.TombstoneValue {
			return 0, false, nil
		}
		return node.Value[i], true, nil
	}
	if node.Leaf {
		return 0, false, nil
	}
	child := node.Child[i]
	if child == pager.SentinelValue || child < 0 {
		return 0, false, errors.Newf("btree: invalid child address at node %d position %d", addr, i)
	}
	return search(pg, child, k)
}

// markDeleted descends from addr and tombstones k's value slot if present
// and not already tombstoned. Reports whether it made a change.
func markDeleted(pg *pager.Pager, addr int32, k int32) (bool, error) {
	node := pager.NewNode(pg.GetT())
	if err := pg.Read(addr, node); err != nil {
		return false, err
	}
	i, exact := findPos(node, k)
	if exact {
		if node.Value[i] == pager.TombstoneValue {
			return false, nil
		}
		node.Value[i] = pager.TombstoneValue
		if err := pg.Write(addr, node); err != nil {
			return false, err
		}
		return true, nil
	}
	if node.Leaf {
		return false, nil
	}
	child := node.Child[i]
	if child == pager.SentinelValue || child < 0 {
		return false, errors.Newf("btree: invalid child address at node %d position %d", addr, i)
	}
	return markDeleted(pg, child, k)
}

// splitChild splits the full i-th child of the node at parentAddr,
// promoting its median key/value into the parent. Precondition: that
// child has exactly 2t-1 keys. Produces 3 reads (parent, to find the
// child's address; child; re-read of parent) and 3 writes (parent, lower
// half, upper half) plus 1 allocation, and never holds more than one node
// buffer plus O(t) scratch alive at once.
func splitChild(pg *pager.Pager, parentAddr int32, i int32) error {
	t := pg.GetT()

	parent := pager.NewNode(t)
	if err := pg.Read(parentAddr, parent); err != nil {
		return err
	}
	childAddr := parent.Child[i]
	if childAddr == pager.SentinelValue || childAddr < 0 {
		return errors.Newf("btree: invalid child address in parent %d at position %d", parentAddr, i)
	}

	child := pager.NewNode(t)
	if err := pg.Read(childAddr, child); err != nil {
		return err
	}
	if child.N != 2*t-1 {
		panic(errors.AssertionFailedf("btree: splitChild called on non-full node (addr=%d n=%d t=%d)", childAddr, child.N, t))
	}

	// Scratch: the upper half of the full child becomes the new sibling.
	upperKey := append([]int32(nil), child.Key[t:2*t-1]...)
	upperValue := append([]int32(nil), child.Value[t:2*t-1]...)
	var upperChild []int32
	if !child.Leaf {
		upperChild = append([]int32(nil), child.Child[t:2*t]...)
	}
	medianKey, medianValue := child.Key[t-1], child.Value[t-1]

	// Truncate the child to its lower half and write it back.
	for j := t - 1; j < 2*t-1; j++ {
		child.Key[j] = pager.SentinelValue
		child.Value[j] = pager.SentinelValue
	}
	if !child.Leaf {
		for j := t; j < 2*t; j++ {
			child.Child[j] = pager.SentinelValue
		}
	}
	child.N = t - 1
	if err := pg.Write(childAddr, child); err != nil {
		return err
	}

	siblingAddr, err := pg.Alloc()
	if err != nil {
		return err
	}
	sibling := pager.NewNode(t)
	sibling.Leaf = child.Leaf
	sibling.N = t - 1
	copy(sibling.Key, upperKey)
	copy(sibling.Value, upperValue)
	if !child.Leaf {
		copy(sibling.Child, upperChild)
	}
	if err := pg.Write(siblingAddr, sibling); err != nil {
		return err
	}

	// Re-read the parent fresh, shift its slots right, and insert the
	// promoted median plus the new sibling pointer.
	parent = pager.NewNode(t)
	if err := pg.Read(parentAddr, parent); err != nil {
		return err
	}
	for j := parent.N; j > i; j-- {
		parent.Child[j+1] = parent.Child[j]
	}
	parent.Child[i+1] = siblingAddr
	for j := parent.N - 1; j >= i; j-- {
		parent.Key[j+1] = parent.Key[j]
		parent.Value[j+1] = parent.Value[j]
	}
	parent.Key[i] = medianKey
	parent.Value[i] = medianValue
	parent.N++
	return pg.Write(parentAddr, parent)
}

// insertNonfull inserts (k,v) into the subtree at addr, whose root is
// guaranteed not full. Before descending into a full child it frees the
// parent buffer, splits that child, and re-reads the parent to choose the
// post-split descent direction — it never holds the parent across the
// child read.
func insertNonfull(pg *pager.Pager, addr int32, k, v int32) error {
	t := pg.GetT()
	node := pager.NewNode(t)
	if err := pg.Read(addr, node); err != nil {
		return err
	}

	i, exact := findPos(node, k)
	if exact {
		node.Value[i] = v // overwrite also un-tombstones the slot
		return pg.Write(addr, node)
	}

	if node.Leaf {
		for j := node.N - 1; j >= i; j-- {
			node.Key[j+1] = node.Key[j]
			node.Value[j+1] = node.Value[j]
		}
		node.Key[i] = k
		node.Value[i] = v
		node.N++
		return pg.Write(addr, node)
	}

	childAddr := node.Child[i]
	if childAddr == pager.SentinelValue || childAddr < 0 {
		return errors.Newf("btree: invalid child address at node %d position %d", addr, i)
	}
	node = nil // logically free the parent buffer before reading the child

	child := pager.NewNode(t)
	if err := pg.Read(childAddr, child); err != nil {
		return err
	}
	needsSplit := child.N == 2*t-1
	child = nil

	if needsSplit {
		if err := splitChild(pg, addr, i); err != nil {
			return err
		}
		reread := pager.NewNode(t)
		if err := pg.Read(addr, reread); err != nil {
			return err
		}
		if k == reread.Key[i] {
			// The promoted median is exactly k: update it here instead of
			// descending past it and planting a duplicate in the leaf.
			reread.Value[i] = v
			return pg.Write(addr, reread)
		}
		if k > reread.Key[i] {
			i++
		}
		childAddr = reread.Child[i]
	}
	return insertNonfull(pg, childAddr, k, v)
}
