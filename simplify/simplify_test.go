package simplify

import (
	"testing"

	"github.com/lixenwraith/coalsim/tables"
)

// buildBalancedQuartet returns ((0,1),(2,3)): four samples at time 0,
// two pairwise-coalescence nodes at time 1, and their common ancestor
// at time 2, spanning the whole sequence [0, 10).
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

// §8 scenario 5: simplify a tree sequence down to 2 of 4 samples and
// check that the output re-expresses exactly their MRCA, with the two
// unary pass-through nodes on the path elided.
func TestSimplifyToSubsetElidesUnaryNodes(t *testing.T) {
	in := buildBalancedQuartet()
	out, err := Simplify(in, []int32{0, 2}, Options{})
	if err != nil {
		t.Fatalf("Simplify: %v", err)
	}
	if out.Nodes.NumRows() != 3 {
		t.Fatalf("nodes.NumRows() = %d, want 3 (2 samples + 1 MRCA)", out.Nodes.NumRows())
	}
	if out.Edges.NumRows() != 2 {
		t.Fatalf("edges.NumRows() = %d, want 2", out.Edges.NumRows())
	}
	root := out.Edges.Parent[0]
	if root != 2 {
		t.Fatalf("MRCA output id = %d, want 2 (first newly allocated node)", root)
	}
	if out.Nodes.Time[root] != 2 {
		t.Fatalf("MRCA time = %v, want 2 (original node 6's time, unary nodes 4/5 elided)", out.Nodes.Time[root])
	}
	children := map[int32]bool{}
	for i := 0; i < out.Edges.NumRows(); i++ {
		if out.Edges.Parent[i] != root {
			t.Fatalf("edge %d parent = %d, want single root %d", i, out.Edges.Parent[i], root)
		}
		if out.Edges.Left[i] != 0 || out.Edges.Right[i] != 10 {
			t.Fatalf("edge %d = [%v,%v), want [0,10)", i, out.Edges.Left[i], out.Edges.Right[i])
		}
		children[out.Edges.Child[i]] = true
	}
	if !children[0] || !children[1] {
		t.Fatalf("MRCA must directly parent both output samples, got children %v", children)
	}
}

// simplify with samples = all_samples followed by canonicalisation
// reproduces the original tree sequence: with every input node already
// an ancestor of some kept sample, every node is materialized in its
// original order and no edge is pruned.
func TestSimplifyAllSamplesReproducesOriginal(t *testing.T) {
	in := buildBalancedQuartet()
	out, err := Simplify(in, []int32{0, 1, 2, 3}, Options{})
	if err != nil {
		t.Fatalf("Simplify: %v", err)
	}
	if !out.Nodes.Equals(in.Nodes) {
		t.Fatalf("node table changed under simplify(all_samples)")
	}
	wantEdges := tables.NewEdgeTable()
	wantEdges.AppendColumns(in.Edges.Left, in.Edges.Right, in.Edges.Parent, in.Edges.Child)
	wantEdges.Sort(in.Nodes.Time)
	wantEdges.Squash()
	if !out.Edges.Equals(wantEdges) {
		t.Fatalf("edge table does not match the canonicalised original")
	}
}

// simplify followed by simplify on the same (now compacted) sample set
// is idempotent up to node renumbering: since the output's own samples
// are exactly node ids 0 and 1, a second pass over {0, 1} must return
// the identical collection.
func TestSimplifyIsIdempotent(t *testing.T) {
	in := buildBalancedQuartet()
	first, err := Simplify(in, []int32{0, 2}, Options{})
	if err != nil {
		t.Fatalf("first Simplify: %v", err)
	}
	second, err := Simplify(first, []int32{0, 1}, Options{})
	if err != nil {
		t.Fatalf("second Simplify: %v", err)
	}
	if !second.Nodes.Equals(first.Nodes) {
		t.Fatalf("node table changed under a redundant re-simplification")
	}
	if !second.Edges.Equals(first.Edges) {
		t.Fatalf("edge table changed under a redundant re-simplification")
	}
}

// A mutation on a unary pass-through node (elided from the output)
// still survives, remapped onto whichever surviving output node
// currently represents that lineage at the mutation's position — here,
// node 4's only surviving descendant is sample 0, so the mutation
// lands directly on sample 0's branch.
func TestSimplifyRetainsMutationOnElidedNode(t *testing.T) {
	in := buildBalancedQuartet()
	in.Sites.AddRow(5, []byte("A"))
	in.Mutations.AddRow(0, 4, []byte("T")) // mutation on the unary node 4

	out, err := Simplify(in, []int32{0, 2}, Options{})
	if err != nil {
		t.Fatalf("Simplify: %v", err)
	}
	if out.Sites.NumRows() != 1 {
		t.Fatalf("sites.NumRows() = %d, want 1", out.Sites.NumRows())
	}
	if out.Mutations.NumRows() != 1 {
		t.Fatalf("mutations.NumRows() = %d, want 1", out.Mutations.NumRows())
	}
	if out.Mutations.Node[0] != 0 {
		t.Fatalf("mutation.Node = %d, want 0 (sample 0's branch now carries node 4's former lineage directly)", out.Mutations.Node[0])
	}
}

// filter-invariant-sites drops a site whose sole mutation sat on a
// sample that was not retained.
func TestSimplifyFiltersInvariantSites(t *testing.T) {
	in := buildBalancedQuartet()
	in.Sites.AddRow(5, []byte("A"))
	in.Mutations.AddRow(0, 1, []byte("T")) // mutation on sample 1, dropped from the subset

	out, err := Simplify(in, []int32{0, 2}, Options{FilterInvariantSites: true})
	if err != nil {
		t.Fatalf("Simplify: %v", err)
	}
	if out.Sites.NumRows() != 0 {
		t.Fatalf("sites.NumRows() = %d, want 0 (site became invariant and filtering is on)", out.Sites.NumRows())
	}

	kept, err := Simplify(in, []int32{0, 2}, Options{FilterInvariantSites: false})
	if err != nil {
		t.Fatalf("Simplify: %v", err)
	}
	if kept.Sites.NumRows() != 1 {
		t.Fatalf("sites.NumRows() = %d, want 1 (filtering is off)", kept.Sites.NumRows())
	}
	if kept.Mutations.NumRows() != 0 {
		t.Fatalf("mutations.NumRows() = %d, want 0 (no surviving mutation at the site)", kept.Mutations.NumRows())
	}
}

func TestSimplifyRejectsDuplicateSamples(t *testing.T) {
	in := buildBalancedQuartet()
	if _, err := Simplify(in, []int32{0, 0}, Options{}); err == nil {
		t.Fatalf("expected an error for duplicate sample ids")
	}
}

func TestSimplifyRejectsOutOfRangeSample(t *testing.T) {
	in := buildBalancedQuartet()
	if _, err := Simplify(in, []int32{100}, Options{}); err == nil {
		t.Fatalf("expected an error for an out-of-range sample id")
	}
}
