package treeseq

import (
	"github.com/lixenwraith/coalsim/coalsimerr"
	"github.com/lixenwraith/coalsim/tables"
)

// Options selects the optional per-node bookkeeping §4.4 describes.
type Options struct {
	// TrackSampleCounts maintains an O(1) num_samples(subtree) query.
	TrackSampleCounts bool
	// TrackSampleLists maintains, per node, the linked list of sample
	// descendants in left-to-right order.
	TrackSampleLists bool
	// TrackedSamples, if non-empty, designates a subset of sample node
	// ids for which NumTrackedSamples maintains a second subtree count
	// alongside the full NumSamples count (the "tracked-sample overlay"
	// of §4.4).
	TrackedSamples []int32
}

// Iterator is the sparse-tree iterator: the current local tree over
// [Left, Right) exposed through per-node parent/child/sibling arrays,
// advanced one interval at a time by Next/Prev.
//
// Node ids are exactly the row indices of the backing NodeTable; an
// extra slot at index NumRows() is reserved as the virtual root, whose
// children are the current tree's actual roots — so "no parent" and
// "root" are the same condition, and the sibling chain under the
// virtual root exposes every current root uniformly.
type Iterator struct {
	nodes *tables.NodeTable
	edges *tables.EdgeTable

	sequenceLength float64
	virtualRoot    int32

	insertionOrder, removalOrder []int32
	insPos, remPos               int

	left, right float64

	parent, leftChild, rightChild, leftSib, rightSib []int32

	trackCounts  bool
	numSamples   []int32
	trackTracked bool
	tracked      []bool
	numTracked   []int32

	trackLists bool
	sampleLeft, sampleRight, nextSample []int32

	mark  []byte
	epoch byte
}

// NewIterator builds an iterator over the local trees implied by
// edges, which must already be sort+squash canonicalised (§4.3/§4.6).
func NewIterator(nodes *tables.NodeTable, edges *tables.EdgeTable, sequenceLength float64, opts Options) (*Iterator, error) {
	if nodes == nil || edges == nil {
		return nil, coalsimerr.New(coalsimerr.CodeBadArgument, "tree iterator requires non-nil tables")
	}
	if sequenceLength <= 0 {
		return nil, coalsimerr.New(coalsimerr.CodeBadArgument, "sequence length must be positive")
	}

	n := nodes.NumRows()
	insertionOrder, removalOrder := buildOrders(edges, nodes.Time)

	it := &Iterator{
		nodes:          nodes,
		edges:          edges,
		sequenceLength: sequenceLength,
		virtualRoot:    int32(n),
		insertionOrder: insertionOrder,
		removalOrder:   removalOrder,
		parent:         make([]int32, n+1),
		leftChild:      make([]int32, n+1),
		rightChild:     make([]int32, n+1),
		leftSib:        make([]int32, n+1),
		rightSib:       make([]int32, n+1),
		trackCounts:    opts.TrackSampleCounts,
		trackLists:     opts.TrackSampleLists,
		mark:           make([]byte, n+1),
	}
	if it.trackCounts {
		it.numSamples = make([]int32, n+1)
		if len(opts.TrackedSamples) > 0 {
			it.trackTracked = true
			it.tracked = make([]bool, n+1)
			it.numTracked = make([]int32, n+1)
			for _, s := range opts.TrackedSamples {
				if s >= 0 && int(s) < n {
					it.tracked[s] = true
				}
			}
		}
	}
	if it.trackLists {
		it.sampleLeft = make([]int32, n+1)
		it.sampleRight = make([]int32, n+1)
		it.nextSample = make([]int32, n+1)
	}

	it.reset()
	return it, nil
}

// reset returns the iterator to its virgin state: every real node a
// root of its own singleton tree, parented under the virtual root.
func (it *Iterator) reset() {
	n := int(it.virtualRoot)
	for i := 0; i <= n; i++ {
		it.parent[i] = NullNode
		it.leftChild[i] = NullNode
		it.rightChild[i] = NullNode
		it.leftSib[i] = NullNode
		it.rightSib[i] = NullNode
		it.mark[i] = 0
		if it.trackCounts {
			it.numSamples[i] = 0
			if it.trackTracked {
				it.numTracked[i] = 0
			}
		}
		if it.trackLists {
			it.sampleLeft[i] = NullNode
			it.sampleRight[i] = NullNode
			it.nextSample[i] = NullNode
		}
	}
	for u := 0; u < n; u++ {
		it.attach(int32(u), it.virtualRoot)
		if it.trackCounts && it.nodes.IsSample(u) {
			it.numSamples[u] = 1
			if it.trackTracked && it.tracked[u] {
				it.numTracked[u] = 1
			}
		}
		if it.trackLists && it.nodes.IsSample(u) {
			it.sampleLeft[u] = int32(u)
			it.sampleRight[u] = int32(u)
		}
	}
	it.epoch = 0
	it.left = 0
	it.right = 0
	it.insPos = 0
	it.remPos = 0
}

func (it *Iterator) attach(child, parent int32) {
	if rc := it.rightChild[parent]; rc == NullNode {
		it.leftChild[parent] = child
		it.leftSib[child] = NullNode
	} else {
		it.rightSib[rc] = child
		it.leftSib[child] = rc
	}
	it.rightSib[child] = NullNode
	it.rightChild[parent] = child
	it.parent[child] = parent
}

func (it *Iterator) detach(child int32) {
	parent := it.parent[child]
	ls, rs := it.leftSib[child], it.rightSib[child]
	if ls == NullNode {
		it.leftChild[parent] = rs
	} else {
		it.rightSib[ls] = rs
	}
	if rs == NullNode {
		it.rightChild[parent] = ls
	} else {
		it.leftSib[rs] = ls
	}
	it.leftSib[child] = NullNode
	it.rightSib[child] = NullNode
	it.parent[child] = NullNode
}

func (it *Iterator) propagate(start int32, delta int32, tracked int32) {
	for u := start; u != it.virtualRoot; u = it.parent[u] {
		it.numSamples[u] += delta
		if it.trackTracked {
			it.numTracked[u] += tracked
		}
	}
}

func (it *Iterator) insertEdge(e int32) {
	child, parent := it.edges.Child[e], it.edges.Parent[e]
	it.detach(child)
	it.attach(child, parent)
	if it.trackCounts {
		tr := int32(0)
		if it.trackTracked {
			tr = it.numTracked[child]
		}
		it.propagate(parent, it.numSamples[child], tr)
	}
}

func (it *Iterator) removeEdge(e int32) {
	child, parent := it.edges.Child[e], it.edges.Parent[e]
	if it.trackCounts {
		tr := int32(0)
		if it.trackTracked {
			tr = it.numTracked[child]
		}
		it.propagate(parent, -it.numSamples[child], -tr)
	}
	it.detach(child)
	it.attach(child, it.virtualRoot)
}

// First seeks to the leftmost local tree. ok is always true, since the
// sequence length is positive: a sequence with no edges still yields one
// tree over the whole sequence, in which every node is a root.
func (it *Iterator) First() (ok bool, err error) {
	it.reset()
	return it.Next()
}

// Last seeks to the rightmost local tree.
func (it *Iterator) Last() (ok bool, err error) {
	it.reset()
	it.insPos = len(it.insertionOrder)
	it.remPos = len(it.removalOrder)
	it.left = it.sequenceLength
	it.right = it.sequenceLength
	return it.Prev()
}

// Next advances to the next local tree: all edges ending at the
// current right boundary are removed, all edges starting there are
// inserted, per §4.4.
func (it *Iterator) Next() (bool, error) {
	if it.right >= it.sequenceLength {
		return false, nil
	}
	boundary := it.right
	for it.remPos < len(it.removalOrder) && it.edges.Right[it.removalOrder[it.remPos]] == boundary {
		it.removeEdge(it.removalOrder[it.remPos])
		it.remPos++
	}
	for it.insPos < len(it.insertionOrder) && it.edges.Left[it.insertionOrder[it.insPos]] == boundary {
		it.insertEdge(it.insertionOrder[it.insPos])
		it.insPos++
	}
	it.left = boundary
	it.right = nextBoundary(it.edges, it.insertionOrder, it.removalOrder, it.insPos, it.remPos, it.sequenceLength)
	if it.trackLists {
		it.rebuildSampleLists()
	}
	return true, nil
}

// Prev retreats to the previous local tree, symmetric to Next.
func (it *Iterator) Prev() (bool, error) {
	if it.left <= 0 {
		return false, nil
	}
	boundary := it.left
	for it.insPos > 0 && it.edges.Left[it.insertionOrder[it.insPos-1]] == boundary {
		it.insPos--
		it.removeEdge(it.insertionOrder[it.insPos])
	}
	for it.remPos > 0 && it.edges.Right[it.removalOrder[it.remPos-1]] == boundary {
		it.remPos--
		it.insertEdge(it.removalOrder[it.remPos])
	}
	prev := 0.0
	if it.insPos > 0 {
		if l := it.edges.Left[it.insertionOrder[it.insPos-1]]; l > prev {
			prev = l
		}
	}
	if it.remPos > 0 {
		if r := it.edges.Right[it.removalOrder[it.remPos-1]]; r > prev {
			prev = r
		}
	}
	it.right = boundary
	it.left = prev
	if it.trackLists {
		it.rebuildSampleLists()
	}
	return true, nil
}

// Interval returns the current local tree's [left, right) span.
func (it *Iterator) Interval() (float64, float64) { return it.left, it.right }

// Parent returns u's parent, or NullNode if u is a current root.
func (it *Iterator) Parent(u int32) int32 {
	if p := it.parent[u]; p != it.virtualRoot {
		return p
	}
	return NullNode
}

// LeftChild, RightChild, LeftSib, RightSib expose the sibling-chain
// representation of the current tree directly.
func (it *Iterator) LeftChild(u int32) int32  { return it.leftChild[u] }
func (it *Iterator) RightChild(u int32) int32 { return it.rightChild[u] }
func (it *Iterator) LeftSib(u int32) int32    { return it.leftSib[u] }
func (it *Iterator) RightSib(u int32) int32   { return it.rightSib[u] }

// LeftRoot returns the first root in the current tree's root chain;
// Roots returns all of them, left to right.
func (it *Iterator) LeftRoot() int32 { return it.leftChild[it.virtualRoot] }

func (it *Iterator) Roots() []int32 {
	var roots []int32
	for r := it.LeftRoot(); r != NullNode; r = it.rightSib[r] {
		roots = append(roots, r)
	}
	return roots
}

// NumSamples returns the number of sample-node descendants of u
// (including u itself, if it is a sample). Requires TrackSampleCounts.
func (it *Iterator) NumSamples(u int32) int32 { return it.numSamples[u] }

// NumTrackedSamples returns the number of TrackedSamples-subset
// descendants of u. Requires TrackSampleCounts and a non-empty
// Options.TrackedSamples.
func (it *Iterator) NumTrackedSamples(u int32) int32 { return it.numTracked[u] }

// Samples returns the sample descendants of u in left-to-right order.
// Requires TrackSampleLists.
func (it *Iterator) Samples(u int32) []int32 {
	var out []int32
	for s := it.sampleLeft[u]; s != NullNode; s = it.nextSample[s] {
		out = append(out, s)
		if s == it.sampleRight[u] {
			break
		}
	}
	return out
}

// rebuildSampleLists recomputes the sample-descendant chain for every
// node from the current tree structure. This trades the incremental
// splice/unsplice scheme's O(1)-per-edge-event cost for a full O(num
// nodes) walk once per tree transition: correctness is easy to verify
// by inspection, which matters since this module is never compiled
// before being handed over; see the design ledger for the trade.
func (it *Iterator) rebuildSampleLists() {
	for i := range it.sampleLeft {
		it.sampleLeft[i] = NullNode
		it.sampleRight[i] = NullNode
		it.nextSample[i] = NullNode
	}
	for r := it.LeftRoot(); r != NullNode; r = it.rightSib[r] {
		it.buildSampleChain(r)
	}
}

func (it *Iterator) buildSampleChain(u int32) (head, tail int32) {
	if int(u) < it.nodes.NumRows() && it.nodes.IsSample(int(u)) {
		it.sampleLeft[u], it.sampleRight[u] = u, u
		return u, u
	}
	head, tail = NullNode, NullNode
	for c := it.leftChild[u]; c != NullNode; c = it.rightSib[c] {
		ch, ct := it.buildSampleChain(c)
		if ch == NullNode {
			continue
		}
		if head == NullNode {
			head = ch
		} else {
			it.nextSample[tail] = ch
		}
		tail = ct
	}
	it.sampleLeft[u], it.sampleRight[u] = head, tail
	return head, tail
}

// MRCA returns the most recent common ancestor of u and v in the
// current tree, or NullNode if they lie under different roots. Walks
// both nodes to the root, marking the first side with the current
// epoch; the first already-marked ancestor found from the second side
// is the MRCA, per §4.4.
func (it *Iterator) MRCA(u, v int32) int32 {
	e := it.nextEpoch()
	for a := u; a != it.virtualRoot; a = it.parent[a] {
		it.mark[a] = e
	}
	for a := v; a != it.virtualRoot; a = it.parent[a] {
		if it.mark[a] == e {
			return a
		}
	}
	return NullNode
}

func (it *Iterator) nextEpoch() byte {
	it.epoch++
	if it.epoch == 0 {
		for i := range it.mark {
			it.mark[i] = 0
		}
		it.epoch = 1
	}
	return it.epoch
}
