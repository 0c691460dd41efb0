package tables

import "testing"

func TestNodeTableAddRow(t *testing.T) {
	nt := NewNodeTable()
	nt.AddRow(NodeFlagSample, 0, 0, []byte("s0"))
	nt.AddRow(0, 1.5, NullPopulation, nil)
	if nt.NumRows() != 2 {
		t.Fatalf("NumRows = %d, want 2", nt.NumRows())
	}
	if !nt.IsSample(0) {
		t.Fatalf("row 0 should be a sample")
	}
	if nt.IsSample(1) {
		t.Fatalf("row 1 should not be a sample")
	}
	if string(nt.Name(0)) != "s0" {
		t.Fatalf("Name(0) = %q", nt.Name(0))
	}
}

func TestEdgeTableSortAndSquash(t *testing.T) {
	et := NewEdgeTable()
	// Two touching records for the same (parent, child): example 6 from §8.
	et.AddRow(5, 10, 2, 0)
	et.AddRow(0, 5, 2, 0)

	nodeTime := []float64{0, 0, 1}
	et.Sort(nodeTime)
	et.Squash()

	if et.NumRows() != 1 {
		t.Fatalf("NumRows after squash = %d, want 1", et.NumRows())
	}
	if et.Left[0] != 0 || et.Right[0] != 10 {
		t.Fatalf("squashed edge = [%v,%v), want [0,10)", et.Left[0], et.Right[0])
	}
}

func TestEdgeTableSquashIdempotent(t *testing.T) {
	et := NewEdgeTable()
	et.AddRow(0, 5, 1, 0)
	et.AddRow(5, 10, 1, 0)
	et.Squash()
	firstPassRows := et.NumRows()
	et.Squash()
	if et.NumRows() != firstPassRows {
		t.Fatalf("squash not idempotent: %d vs %d", et.NumRows(), firstPassRows)
	}
}

func TestEdgeTableSquashKeepsDistinctChildrenSeparate(t *testing.T) {
	et := NewEdgeTable()
	et.AddRow(0, 5, 1, 0)
	et.AddRow(5, 10, 1, 2) // different child: must not merge
	nodeTime := []float64{0, 0, 0}
	et.Sort(nodeTime)
	et.Squash()
	if et.NumRows() != 2 {
		t.Fatalf("NumRows = %d, want 2 (distinct children)", et.NumRows())
	}
}

func TestSiteMutationCoSort(t *testing.T) {
	c := NewCollection(100)
	c.Sites.AddRow(50, []byte("A"))
	c.Sites.AddRow(10, []byte("C"))
	c.Mutations.AddRow(0, 5, []byte("T")) // references site 0 (position 50)
	c.Mutations.AddRow(1, 6, []byte("G")) // references site 1 (position 10)

	c.Sort()

	if c.Sites.Position[0] != 10 || c.Sites.Position[1] != 50 {
		t.Fatalf("sites not sorted: %v", c.Sites.Position)
	}
	// mutation that referenced position-10 site must now point at row 0
	foundAt10 := false
	for i, s := range c.Mutations.Site {
		if c.Sites.Position[s] == 10 && string(c.Mutations.DerivedState(i)) == "G" {
			foundAt10 = true
		}
	}
	if !foundAt10 {
		t.Fatalf("mutation G did not follow its site after sort")
	}
}

func TestCollectionEqualsComparesSitesAndMutations(t *testing.T) {
	base := func() *Collection {
		c := NewCollection(10)
		c.Nodes.AddRow(NodeFlagSample, 0, 0, nil)
		c.Edges.AddRow(0, 10, 1, 0)
		return c
	}

	a, b := base(), base()
	if !a.Equals(b) {
		t.Fatalf("identical topology-only collections should be equal")
	}

	a.Sites.AddRow(5, []byte("A"))
	a.Mutations.AddRow(0, 0, []byte("T"))
	if a.Equals(b) {
		t.Fatalf("a collection with an extra site/mutation must not equal one without")
	}

	b.Sites.AddRow(5, []byte("A"))
	b.Mutations.AddRow(0, 0, []byte("T"))
	if !a.Equals(b) {
		t.Fatalf("collections with identical sites and mutations should be equal again")
	}

	b.Mutations.Reset()
	b.Mutations.AddRow(0, 0, []byte("G")) // same site/node, different derived state
	if a.Equals(b) {
		t.Fatalf("mutations differing only in derived state must not compare equal")
	}
}

func TestCollectionReset(t *testing.T) {
	c := NewCollection(10)
	c.Nodes.AddRow(NodeFlagSample, 0, 0, nil)
	c.Edges.AddRow(0, 10, 1, 0)
	c.Reset()
	if c.Nodes.NumRows() != 0 || c.Edges.NumRows() != 0 {
		t.Fatalf("expected empty tables after reset")
	}
	if c.SequenceLength != 10 {
		t.Fatalf("SequenceLength should survive reset")
	}
}
