// Package treeseq implements the two incremental consumers over a
// canonicalised edge table described by §4.4/§4.5: a sparse-tree
// iterator that maintains parent/child/sibling pointers for the
// current local tree, and a tree-diff iterator that instead yields the
// edges added and removed at each interval boundary.
//
// Grounded on the teacher's engine/position_store.go and
// engine/spatial_grid.go index-based parent/sibling bookkeeping,
// re-expressed over the two sorted-edge-index permutation arrays this
// specification calls for.
package treeseq

import (
	"sort"

	"github.com/lixenwraith/coalsim/tables"
)

// NullNode is the "no node" sentinel used throughout this package.
const NullNode int32 = -1

// buildOrders computes the insertion_order (ascending left, then
// increasing parent time) and removal_order (ascending right, then
// decreasing parent time) permutation arrays over edges, per §4.4.
// Precondition: edges is already sort+squash canonicalised (§4.3/§4.6).
func buildOrders(edges *tables.EdgeTable, nodeTime []float64) (insertionOrder, removalOrder []int32) {
	n := edges.NumRows()
	insertionOrder = make([]int32, n)
	removalOrder = make([]int32, n)
	for i := 0; i < n; i++ {
		insertionOrder[i] = int32(i)
		removalOrder[i] = int32(i)
	}
	sort.SliceStable(insertionOrder, func(a, b int) bool {
		ia, ib := insertionOrder[a], insertionOrder[b]
		if edges.Left[ia] != edges.Left[ib] {
			return edges.Left[ia] < edges.Left[ib]
		}
		return nodeTime[edges.Parent[ia]] < nodeTime[edges.Parent[ib]]
	})
	sort.SliceStable(removalOrder, func(a, b int) bool {
		ia, ib := removalOrder[a], removalOrder[b]
		if edges.Right[ia] != edges.Right[ib] {
			return edges.Right[ia] < edges.Right[ib]
		}
		return nodeTime[edges.Parent[ia]] > nodeTime[edges.Parent[ib]]
	})
	return insertionOrder, removalOrder
}

// nextBoundary returns the smallest position at which the tree would
// next change, given the current read positions into the two order
// arrays, or sequenceLength if none remain.
func nextBoundary(edges *tables.EdgeTable, insertionOrder, removalOrder []int32, insPos, remPos int, sequenceLength float64) float64 {
	next := sequenceLength
	if insPos < len(insertionOrder) {
		if l := edges.Left[insertionOrder[insPos]]; l < next {
			next = l
		}
	}
	if remPos < len(removalOrder) {
		if r := edges.Right[removalOrder[remPos]]; r < next {
			next = r
		}
	}
	return next
}
