package treeseq

import (
	"testing"

	"github.com/lixenwraith/coalsim/tables"
)

// buildBalancedQuartet mirrors simplify's fixture: ((0,1),(2,3)) over
// the whole sequence [0, 10), one tree throughout.
func buildBalancedQuartet() *tables.Collection {
	c := tables.NewCollection(10)
	for i := 0; i < 4; i++ {
		c.Nodes.AddRow(tables.NodeFlagSample, 0, 0, nil)
	}
	c.Nodes.AddRow(0, 1, 0, nil) // 4 = parent(0,1)
	c.Nodes.AddRow(0, 1, 0, nil) // 5 = parent(2,3)
	c.Nodes.AddRow(0, 2, 0, nil) // 6 = parent(4,5)

	c.Edges.AddRow(0, 10, 4, 0)
	c.Edges.AddRow(0, 10, 4, 1)
	c.Edges.AddRow(0, 10, 5, 2)
	c.Edges.AddRow(0, 10, 5, 3)
	c.Edges.AddRow(0, 10, 6, 4)
	c.Edges.AddRow(0, 10, 6, 5)
	return c
}

// buildTwoTreeSequence: one recombination breakpoint at 5 splits the
// ancestry of samples 1 and 3 between two different parents either side
// of the breakpoint, but samples 0 and 2's topology is unaffected.
//
//	[0,5):  ((0,1),(2,3))   with internal nodes 4,5,6
//	[5,10): ((0,3),(2,1))   reusing 4,5,6 with the re-parented spans
func buildTwoTreeSequence() *tables.Collection {
	c := tables.NewCollection(10)
	for i := 0; i < 4; i++ {
		c.Nodes.AddRow(tables.NodeFlagSample, 0, 0, nil)
	}
	c.Nodes.AddRow(0, 1, 0, nil) // 4
	c.Nodes.AddRow(0, 1, 0, nil) // 5
	c.Nodes.AddRow(0, 2, 0, nil) // 6

	c.Edges.AddRow(0, 5, 4, 0)
	c.Edges.AddRow(0, 5, 4, 1)
	c.Edges.AddRow(5, 10, 4, 0)
	c.Edges.AddRow(5, 10, 4, 3)
	c.Edges.AddRow(0, 5, 5, 2)
	c.Edges.AddRow(0, 5, 5, 3)
	c.Edges.AddRow(5, 10, 5, 2)
	c.Edges.AddRow(5, 10, 5, 1)
	c.Edges.AddRow(0, 10, 6, 4)
	c.Edges.AddRow(0, 10, 6, 5)
	c.Edges.Sort(c.Nodes.Time)
	c.Edges.Squash()
	return c
}

func TestIteratorSingleTreeTopology(t *testing.T) {
	ts := buildBalancedQuartet()
	it, err := NewIterator(ts.Nodes, ts.Edges, ts.SequenceLength, Options{TrackSampleCounts: true})
	if err != nil {
		t.Fatalf("NewIterator: %v", err)
	}
	ok, err := it.First()
	if err != nil || !ok {
		t.Fatalf("First() = %v, %v", ok, err)
	}
	left, right := it.Interval()
	if left != 0 || right != 10 {
		t.Fatalf("interval = [%v,%v), want [0,10)", left, right)
	}
	if it.Parent(0) != 4 || it.Parent(1) != 4 {
		t.Fatalf("samples 0,1 should parent to node 4")
	}
	if it.Parent(4) != 6 || it.Parent(5) != 6 {
		t.Fatalf("nodes 4,5 should parent to the root 6")
	}
	if it.Parent(6) != NullNode {
		t.Fatalf("root 6 must have no parent")
	}
	if got := it.NumSamples(6); got != 4 {
		t.Fatalf("NumSamples(root) = %d, want 4", got)
	}
	if got := it.NumSamples(4); got != 2 {
		t.Fatalf("NumSamples(4) = %d, want 2", got)
	}
	if roots := it.Roots(); len(roots) != 1 || roots[0] != 6 {
		t.Fatalf("Roots() = %v, want [6]", roots)
	}
	if ok, err := it.Next(); err != nil || ok {
		t.Fatalf("Next() past the only tree: ok=%v err=%v, want ok=false", ok, err)
	}
}

func TestIteratorMRCA(t *testing.T) {
	ts := buildBalancedQuartet()
	it, err := NewIterator(ts.Nodes, ts.Edges, ts.SequenceLength, Options{})
	if err != nil {
		t.Fatalf("NewIterator: %v", err)
	}
	if _, err := it.First(); err != nil {
		t.Fatalf("First: %v", err)
	}
	if m := it.MRCA(0, 1); m != 4 {
		t.Fatalf("MRCA(0,1) = %d, want 4", m)
	}
	if m := it.MRCA(0, 2); m != 6 {
		t.Fatalf("MRCA(0,2) = %d, want 6 (the root)", m)
	}
	if m := it.MRCA(0, 0); m != 0 {
		t.Fatalf("MRCA(0,0) = %d, want 0", m)
	}
}

func TestIteratorTwoTreesRecombination(t *testing.T) {
	ts := buildTwoTreeSequence()
	it, err := NewIterator(ts.Nodes, ts.Edges, ts.SequenceLength, Options{})
	if err != nil {
		t.Fatalf("NewIterator: %v", err)
	}

	ok, err := it.First()
	if err != nil || !ok {
		t.Fatalf("First() = %v, %v", ok, err)
	}
	l, r := it.Interval()
	if l != 0 || r != 5 {
		t.Fatalf("first interval = [%v,%v), want [0,5)", l, r)
	}
	if it.MRCA(0, 3) != 6 {
		t.Fatalf("MRCA(0,3) on [0,5) should be the root: 0 and 3 are unrelated until the root there")
	}
	if it.MRCA(0, 1) != 4 {
		t.Fatalf("MRCA(0,1) on [0,5) should be node 4")
	}

	ok, err = it.Next()
	if err != nil || !ok {
		t.Fatalf("Next() = %v, %v", ok, err)
	}
	l, r = it.Interval()
	if l != 5 || r != 10 {
		t.Fatalf("second interval = [%v,%v), want [5,10)", l, r)
	}
	if it.MRCA(0, 3) != 4 {
		t.Fatalf("MRCA(0,3) on [5,10) should now be node 4 (0 and 3 coalesce there)")
	}
	if it.MRCA(2, 1) != 5 {
		t.Fatalf("MRCA(2,1) on [5,10) should now be node 5")
	}

	ok, err = it.Next()
	if err != nil || ok {
		t.Fatalf("Next() past the last tree: ok=%v err=%v, want ok=false", ok, err)
	}
}

func TestIteratorPrevMirrorsNext(t *testing.T) {
	ts := buildTwoTreeSequence()
	it, err := NewIterator(ts.Nodes, ts.Edges, ts.SequenceLength, Options{})
	if err != nil {
		t.Fatalf("NewIterator: %v", err)
	}
	ok, err := it.Last()
	if err != nil || !ok {
		t.Fatalf("Last() = %v, %v", ok, err)
	}
	l, r := it.Interval()
	if l != 5 || r != 10 {
		t.Fatalf("last interval = [%v,%v), want [5,10)", l, r)
	}
	if it.MRCA(0, 3) != 4 {
		t.Fatalf("MRCA(0,3) on [5,10) should be node 4")
	}

	ok, err = it.Prev()
	if err != nil || !ok {
		t.Fatalf("Prev() = %v, %v", ok, err)
	}
	l, r = it.Interval()
	if l != 0 || r != 5 {
		t.Fatalf("interval after Prev = [%v,%v), want [0,5)", l, r)
	}
	if it.MRCA(0, 1) != 4 {
		t.Fatalf("MRCA(0,1) on [0,5) should be node 4")
	}

	ok, err = it.Prev()
	if err != nil || ok {
		t.Fatalf("Prev() before the first tree: ok=%v err=%v, want ok=false", ok, err)
	}
}

func TestIteratorSampleLists(t *testing.T) {
	ts := buildBalancedQuartet()
	it, err := NewIterator(ts.Nodes, ts.Edges, ts.SequenceLength, Options{TrackSampleLists: true})
	if err != nil {
		t.Fatalf("NewIterator: %v", err)
	}
	if _, err := it.First(); err != nil {
		t.Fatalf("First: %v", err)
	}
	got := it.Samples(6)
	if len(got) != 4 {
		t.Fatalf("Samples(root) = %v, want 4 samples", got)
	}
	seen := map[int32]bool{}
	for _, s := range got {
		seen[s] = true
	}
	for i := int32(0); i < 4; i++ {
		if !seen[i] {
			t.Fatalf("Samples(root) missing sample %d", i)
		}
	}
}

func TestDiffIteratorMatchesEdgeSet(t *testing.T) {
	ts := buildTwoTreeSequence()
	d, err := NewDiffIterator(ts.Nodes, ts.Edges, ts.SequenceLength)
	if err != nil {
		t.Fatalf("NewDiffIterator: %v", err)
	}

	diff, ok := d.Next()
	if !ok {
		t.Fatalf("expected a first diff")
	}
	if diff.Left != 0 || diff.Right != 5 {
		t.Fatalf("first diff interval = [%v,%v), want [0,5)", diff.Left, diff.Right)
	}
	if len(diff.Removed) != 0 {
		t.Fatalf("first diff must remove nothing, got %v", diff.Removed)
	}
	if len(diff.Inserted) != 6 {
		t.Fatalf("first diff must insert all 6 edges starting at 0, got %d", len(diff.Inserted))
	}

	diff, ok = d.Next()
	if !ok {
		t.Fatalf("expected a second diff")
	}
	if diff.Left != 5 || diff.Right != 10 {
		t.Fatalf("second diff interval = [%v,%v), want [5,10)", diff.Left, diff.Right)
	}
	if len(diff.Removed) != 2 || len(diff.Inserted) != 2 {
		t.Fatalf("second diff should remove/insert only the 2 edges touching samples 1 and 3 (0 and 2 never change parent and squash into full-span edges), got removed=%d inserted=%d", len(diff.Removed), len(diff.Inserted))
	}

	if _, ok := d.Next(); ok {
		t.Fatalf("expected no third diff")
	}
}
