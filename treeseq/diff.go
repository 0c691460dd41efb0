package treeseq

import (
	"github.com/lixenwraith/coalsim/coalsimerr"
	"github.com/lixenwraith/coalsim/tables"
)

// Diff describes one local-tree interval transition: the edges removed
// and inserted to move from the previous tree into [Left, Right).
type Diff struct {
	Left, Right float64
	Removed     []int32
	Inserted    []int32
}

// DiffIterator emits (left, right, removed_edges, inserted_edges) per
// local-tree interval, consuming the same two order arrays as Iterator
// but yielding edge row indices instead of updating tree pointers, per
// §4.5 — used by consumers that build their own per-interval structure
// (haplotype generation, LD) rather than walking a live tree.
type DiffIterator struct {
	edges          *tables.EdgeTable
	sequenceLength float64

	insertionOrder, removalOrder []int32
	insPos, remPos               int
	right                        float64
}

// NewDiffIterator builds a diff iterator over edges, which must
// already be sort+squash canonicalised.
func NewDiffIterator(nodes *tables.NodeTable, edges *tables.EdgeTable, sequenceLength float64) (*DiffIterator, error) {
	if nodes == nil || edges == nil {
		return nil, coalsimerr.New(coalsimerr.CodeBadArgument, "diff iterator requires non-nil tables")
	}
	if sequenceLength <= 0 {
		return nil, coalsimerr.New(coalsimerr.CodeBadArgument, "sequence length must be positive")
	}
	insertionOrder, removalOrder := buildOrders(edges, nodes.Time)
	return &DiffIterator{
		edges:          edges,
		sequenceLength: sequenceLength,
		insertionOrder: insertionOrder,
		removalOrder:   removalOrder,
	}, nil
}

// Next returns the next interval's diff, or ok=false once the sequence
// end has been reached.
func (d *DiffIterator) Next() (diff Diff, ok bool) {
	if d.right >= d.sequenceLength {
		return Diff{}, false
	}
	boundary := d.right
	var removed, inserted []int32
	for d.remPos < len(d.removalOrder) && d.edges.Right[d.removalOrder[d.remPos]] == boundary {
		removed = append(removed, d.removalOrder[d.remPos])
		d.remPos++
	}
	for d.insPos < len(d.insertionOrder) && d.edges.Left[d.insertionOrder[d.insPos]] == boundary {
		inserted = append(inserted, d.insertionOrder[d.insPos])
		d.insPos++
	}
	next := nextBoundary(d.edges, d.insertionOrder, d.removalOrder, d.insPos, d.remPos, d.sequenceLength)
	diff = Diff{Left: boundary, Right: next, Removed: removed, Inserted: inserted}
	d.right = next
	return diff, true
}
