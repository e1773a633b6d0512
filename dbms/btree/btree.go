package btree

import (
	"github.com/btree-query-bench/dsacore/dbms/pager"
	"github.com/cockroachdb/errors"
)

// rootAddr is fixed: the root always lives at address 0.
const rootAddr int32 = 0

// BTree is a persistent key/value store backed by a single on-disk
// CLRS B-tree of minimum degree t. Keys and values are fixed-width int32s.
// Deletes are tombstone-only — no rebalancing, no free-list reclamation.
type BTree struct {
	pg *pager.Pager
	t  int32
}

// Open opens (or creates) the store at path. t is used only when creating
// a new file; an existing file's stored degree always wins.
func Open(path string, t int32) (*BTree, error) {
	pg, err := pager.Open(path, t)
	if err != nil {
		return nil, err
	}
	bt := &BTree{pg: pg, t: pg.GetT()}
	if pg.Empty() {
		addr, err := pg.Alloc()
		if err != nil {
			pg.Close()
			return nil, err
		}
		if addr != rootAddr {
			pg.Close()
			return nil, errors.Newf("btree: initial root allocation returned address %d, want 0", addr)
		}
		root := pager.NewNode(bt.t)
		root.Leaf = true
		root.N = 0
		if err := pg.Write(rootAddr, root); err != nil {
			pg.Close()
			return nil, err
		}
	}
	return bt, nil
}

// Close flushes and closes the underlying store.
func (bt *BTree) Close() error {
	return bt.pg.Close()
}

// Put inserts k/v, or overwrites (and un-tombstones) k's existing slot.
func (bt *BTree) Put(k, v int32) error {
	root := pager.NewNode(bt.t)
	if err := bt.pg.Read(rootAddr, root); err != nil {
		return err
	}

	if root.N != 2*bt.t-1 {
		return insertNonfull(bt.pg, rootAddr, k, v)
	}

	// Root is full: pre-split it into two fresh children before descending,
	// so the new root at address 0 is never itself full.
	lowerAddr, err := bt.pg.Alloc()
	if err != nil {
		return err
	}
	upperAddr, err := bt.pg.Alloc()
	if err != nil {
		return err
	}

	t := bt.t
	upper := pager.NewNode(t)
	upper.Leaf = root.Leaf
	upper.N = t - 1
	copy(upper.Key, root.Key[t:2*t-1])
	copy(upper.Value, root.Value[t:2*t-1])
	if !root.Leaf {
		copy(upper.Child, root.Child[t:2*t])
	}

	medianKey, medianValue := root.Key[t-1], root.Value[t-1]
	lower := root
	for j := t - 1; j < 2*t-1; j++ {
		lower.Key[j] = pager.SentinelValue
		lower.Value[j] = pager.SentinelValue
	}
	if !lower.Leaf {
		for j := t; j < 2*t; j++ {
			lower.Child[j] = pager.SentinelValue
		}
	}
	lower.N = t - 1

	if err := bt.pg.Write(lowerAddr, lower); err != nil {
		return err
	}
	if err := bt.pg.Write(upperAddr, upper); err != nil {
		return err
	}

	newRoot := pager.NewNode(t)
	newRoot.Leaf = false
	newRoot.N = 1
	newRoot.Key[0], newRoot.Value[0] = medianKey, medianValue
	newRoot.Child[0], newRoot.Child[1] = lowerAddr, upperAddr
	if err := bt.pg.Write(rootAddr, newRoot); err != nil {
		return err
	}

	return insertNonfull(bt.pg, rootAddr, k, v)
}

// Get writes k's value into out iff k is present and not tombstoned; it
// leaves out untouched otherwise. Callers pre-fill out with their own
// not-found sentinel.
func (bt *BTree) Get(k int32, out *int32) error {
	v, found, err := search(bt.pg, rootAddr, k)
	if err != nil {
		return err
	}
	if found {
		*out = v
	}
	return nil
}

// Delete marks k's value as tombstoned, if present. Best-effort and
// idempotent: no rebalancing, and deleting a missing or already-deleted
// key is a no-op, not an error.
func (bt *BTree) Delete(k int32) error {
	_, err := markDeleted(bt.pg, rootAddr, k)
	return err
}

// ReadCount, WriteCount and AllocCount report cumulative pager operation
// counts since Open.
func (bt *BTree) ReadCount() uint64  { return bt.pg.ReadCount() }
func (bt *BTree) WriteCount() uint64 { return bt.pg.WriteCount() }
func (bt *BTree) AllocCount() uint64 { return bt.pg.AllocCount() }
