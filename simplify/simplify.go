// Package simplify implements the segment-based ancestry-rewriting
// simplifier: given a tree sequence and a chosen subset of sample
// nodes, it produces the minimal tree sequence expressing exactly that
// subset's ancestry, with node ids compacted.
//
// Grounded on the teacher's genetic/registry/tracker.go id-keyed
// bookkeeping (active map[uint64]*activeEval, entries created lazily
// and retired once their work is done) generalized here to an
// ancestor-map keyed by input node id, each entry a list of segments
// recording which output node a region of that input node currently
// represents.
package simplify

import (
	"math"
	"sort"

	"github.com/lixenwraith/coalsim/coalsimerr"
	"github.com/lixenwraith/coalsim/tables"
)

// Options configures the simplification pass.
type Options struct {
	// FilterInvariantSites drops sites left with zero retained mutations.
	FilterInvariantSites bool
}

// segAM is one piece of a node's ancestor map: under the chosen
// sample set, region [left, right) of the owning input node currently
// maps to output node node.
type segAM struct {
	left, right float64
	node        int32
}

// Simplify rewrites input down to the ancestry of samples (input node
// ids, in the order that becomes the output's sample numbering 0..k-1)
// and returns a fresh collection; input is never modified.
func Simplify(input *tables.Collection, samples []int32, opts Options) (*tables.Collection, error) {
	if input == nil {
		return nil, coalsimerr.New(coalsimerr.CodeBadArgument, "simplify requires a non-nil collection")
	}
	n := input.Nodes.NumRows()
	seen := make(map[int32]bool, len(samples))
	for _, s := range samples {
		if s < 0 || int(s) >= n {
			return nil, coalsimerr.New(coalsimerr.CodeCorruptInput, "simplify sample id out of range")
		}
		if seen[s] {
			return nil, coalsimerr.New(coalsimerr.CodeBadArgument, "simplify sample ids must be distinct")
		}
		seen[s] = true
	}

	ancestorMap := make([][]segAM, n)
	outNodes := tables.NewNodeTable()
	for _, orig := range samples {
		outNodes.AddRow(input.Nodes.Flags[orig], input.Nodes.Time[orig], input.Nodes.Population[orig], input.Nodes.Name(int(orig)))
		ancestorMap[orig] = []segAM{{0, input.SequenceLength, int32(outNodes.NumRows() - 1)}}
	}

	edgesByParent := make([][]int, n)
	for e := 0; e < input.Edges.NumRows(); e++ {
		p := input.Edges.Parent[e]
		edgesByParent[p] = append(edgesByParent[p], e)
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return input.Nodes.Time[order[a]] < input.Nodes.Time[order[b]] })

	outEdges := tables.NewEdgeTable()
	for _, p32 := range order {
		p := int32(p32)
		edges := edgesByParent[p]
		if len(edges) == 0 {
			continue
		}

		var pieces []segAM
		for _, e := range edges {
			l, r, c := input.Edges.Left[e], input.Edges.Right[e], input.Edges.Child[e]
			pieces = append(pieces, restrict(ancestorMap[c], l, r)...)
		}
		if len(pieces) == 0 {
			continue
		}
		sort.Slice(pieces, func(a, b int) bool {
			if pieces[a].left != pieces[b].left {
				return pieces[a].left < pieces[b].left
			}
			return pieces[a].right < pieces[b].right
		})

		bounds := boundaryPoints(pieces)
		var outPieces []segAM
		materialized := int32(-1)

		for i := 0; i+1 < len(bounds); i++ {
			lo, hi := bounds[i], bounds[i+1]
			if lo >= hi {
				continue
			}
			covering := coveringNodes(pieces, lo, hi)
			switch len(covering) {
			case 0:
				continue
			case 1:
				appendSeg(&outPieces, lo, hi, covering[0])
			default:
				if materialized == -1 {
					outNodes.AddRow(input.Nodes.Flags[p], input.Nodes.Time[p], input.Nodes.Population[p], input.Nodes.Name(int(p)))
					materialized = int32(outNodes.NumRows() - 1)
				}
				for _, childOut := range covering {
					outEdges.AddRow(lo, hi, materialized, childOut)
				}
				appendSeg(&outPieces, lo, hi, materialized)
			}
		}
		if len(outPieces) > 0 {
			ancestorMap[p] = outPieces
		}
	}

	outEdges.Sort(outNodes.Time)
	outEdges.Squash()

	outSites := tables.NewSiteTable()
	outMutations := tables.NewMutationTable()
	simplifySites(input, ancestorMap, opts, outSites, outMutations)

	out := tables.NewCollection(input.SequenceLength)
	out.Nodes = outNodes
	out.Edges = outEdges
	out.Migrations = tables.NewMigrationTable()
	out.Sites = outSites
	out.Mutations = outMutations
	return out, nil
}

func restrict(segs []segAM, l, r float64) []segAM {
	var out []segAM
	for _, s := range segs {
		lo := math.Max(s.left, l)
		hi := math.Min(s.right, r)
		if lo < hi {
			out = append(out, segAM{lo, hi, s.node})
		}
	}
	return out
}

func boundaryPoints(pieces []segAM) []float64 {
	set := make(map[float64]bool, 2*len(pieces))
	for _, p := range pieces {
		set[p.left] = true
		set[p.right] = true
	}
	bounds := make([]float64, 0, len(set))
	for v := range set {
		bounds = append(bounds, v)
	}
	sort.Float64s(bounds)
	return bounds
}

// coveringNodes returns the distinct output node ids among pieces that
// fully span [lo, hi), in first-seen order (pieces is already sorted by
// left, giving deterministic output).
func coveringNodes(pieces []segAM, lo, hi float64) []int32 {
	var covering []int32
	seen := make(map[int32]bool, 2)
	for _, pc := range pieces {
		if pc.left <= lo && pc.right >= hi {
			if !seen[pc.node] {
				seen[pc.node] = true
				covering = append(covering, pc.node)
			}
		}
	}
	return covering
}

// appendSeg records [left, right) -> node into segs, merging with the
// previous entry when it is contiguous and maps to the same node (the
// sweep visits sub-intervals in increasing order, so this is always a
// simple tail check).
func appendSeg(segs *[]segAM, left, right float64, node int32) {
	if n := len(*segs); n > 0 {
		last := &(*segs)[n-1]
		if last.node == node && last.right == left {
			last.right = right
			return
		}
	}
	*segs = append(*segs, segAM{left, right, node})
}

// simplifySites retains, for each input site, the first mutation (in
// table order) whose node still has non-empty ancestry at the site's
// position under the simplified sample set, rewriting its node onto
// the surviving output node; sites left with no retained mutation are
// dropped when opts.FilterInvariantSites is set, kept otherwise.
func simplifySites(input *tables.Collection, ancestorMap [][]segAM, opts Options, outSites *tables.SiteTable, outMutations *tables.MutationTable) {
	mutsBySite := make([][]int, input.Sites.NumRows())
	for m := 0; m < input.Mutations.NumRows(); m++ {
		s := input.Mutations.Site[m]
		mutsBySite[s] = append(mutsBySite[s], m)
	}

	for s := 0; s < input.Sites.NumRows(); s++ {
		pos := input.Sites.Position[s]
		keptNode := int32(-1)
		keptDerived := []byte(nil)
		for _, m := range mutsBySite[s] {
			node := input.Mutations.Node[m]
			if outNode, ok := lookupSegment(ancestorMap[node], pos); ok {
				keptNode = outNode
				keptDerived = input.Mutations.DerivedState(m)
				break
			}
		}
		if keptNode == -1 {
			if !opts.FilterInvariantSites {
				outSites.AddRow(pos, input.Sites.AncestralState(s))
			}
			continue
		}
		newSite := outSites.AddRow(pos, input.Sites.AncestralState(s))
		outMutations.AddRow(int32(newSite), keptNode, keptDerived)
	}
}

func lookupSegment(segs []segAM, pos float64) (int32, bool) {
	for _, s := range segs {
		if s.left <= pos && pos < s.right {
			return s.node, true
		}
	}
	return -1, false
}
