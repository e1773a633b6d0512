package main

import (
	"math/rand"

	"github.com/btree-query-bench/dsacore/dbms/btree"
)

// WorkloadType names a mixed read/write ratio to drive against a tree
// already loaded with keys [0, n).
type WorkloadType string

const (
	// OLTP is read-heavy: 90% Get, 10% Put.
	OLTP WorkloadType = "OLTP (90/10)"
	// OLAP is write-heavy: 10% Get, 90% Put.
	OLAP WorkloadType = "OLAP (10/90)"
)

// executeWorkload runs ops operations of wType against bt, drawing keys
// uniformly from [0, keyspace).
func executeWorkload(bt *btree.BTree, wType WorkloadType, ops, keyspace int) {
	var out int32
	for i := 0; i < ops; i++ {
		choice := rand.Intn(100)
		key := int32(rand.Intn(keyspace))

		readHeavy := wType == OLTP
		doGet := (readHeavy && choice < 90) || (!readHeavy && choice < 10)
		if doGet {
			out = -1
			_ = bt.Get(key, &out)
		} else {
			_ = bt.Put(key, key*2)
		}
	}
}
