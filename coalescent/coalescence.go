package coalescent

import (
	"math"
	"sort"

	"github.com/lixenwraith/coalsim/arena"
	"github.com/lixenwraith/coalsim/coalsimerr"
	"github.com/lixenwraith/coalsim/population"
	"github.com/lixenwraith/coalsim/segment"
)

// fireCoalescence handles event type 1 (§4.2) in population popIdx: it
// asks the active model to choose (and possibly reject) a coalescing
// set of lineages, then merges whatever set survives.
func (s *Simulator) fireCoalescence(popIdx int) error {
	pop := s.pops[popIdx]
	if pop.Count() < 2 {
		return nil
	}
	ids, rejected, err := s.chooseCoalescingSet(pop, pop.Count())
	if err != nil {
		return err
	}
	if rejected {
		s.numRejectedCaEvents++
		return nil
	}
	return s.mergeLineages(popIdx, ids)
}

// chooseCoalescingSet implements the per-model common-ancestor rule
// (§4.2 "Simulation models"): which lineages participate in the next
// coalescence, and whether the proposal is rejected.
func (s *Simulator) chooseCoalescingSet(pop *population.Population, n int) ([]arena.ID, bool, error) {
	switch s.model.Kind {
	case ModelSMC, ModelSMCPrime:
		ids := s.chooseDistinct(pop, 2)
		a, b := s.lineages[ids[0]], s.lineages[ids[1]]
		la, ra := s.segPool.Span(a.chain)
		lb, rb := s.segPool.Span(b.chain)
		overlap := false
		s.segPool.Each(a.chain, func(_ arena.ID, sa *segment.Segment) {
			s.segPool.Each(b.chain, func(_ arena.ID, sb *segment.Segment) {
				if sa.Left < sb.Right && sb.Left < sa.Right {
					overlap = true
				}
			})
		})
		adjacent := ra == lb || rb == la
		accept := overlap
		if s.model.Kind == ModelSMCPrime {
			accept = overlap || adjacent
		}
		return ids, !accept, nil

	case ModelBeta:
		alpha := s.model.BetaAlpha
		frac := s.rng.Beta(2-alpha, alpha)
		k := int(math.Round(frac * float64(n)))
		if k < 2 {
			k = 2
		}
		if k > n {
			k = n
		}
		if s.model.BetaTruncation > 0 && float64(k) < s.model.BetaTruncation*float64(n) {
			return nil, true, nil
		}
		return s.chooseDistinct(pop, k), false, nil

	case ModelDirac:
		ordinaryPairOdds := 1.0
		if s.model.DiracC > 0 {
			ordinaryPairOdds = 1.0 / (s.model.DiracC + 1.0)
		}
		if s.rng.Uniform01() < ordinaryPairOdds {
			return s.chooseDistinct(pop, 2), false, nil
		}
		k := int(math.Round(s.model.DiracPsi * float64(n)))
		if k < 2 {
			k = 2
		}
		if k > n {
			k = n
		}
		return s.chooseDistinct(pop, k), false, nil

	default: // ModelHudson
		return s.chooseDistinct(pop, 2), false, nil
	}
}

// coalescingPiece is one contiguous interval of ancestral material
// contributed by a lineage chosen to participate in a coalescence.
type coalescingPiece struct {
	left, right int64
	node        segment.NodeID
}

// mergeLineages performs the interval sweep of §4.2 event 1 over an
// arbitrary number of chosen lineages (2 for Hudson/SMC/SMC', possibly
// more for Beta/Dirac multiple mergers): over each sub-interval covered
// by two or more of the chosen chains, a single new parent node (shared
// by the whole event) receives an edge from every covering child;
// sub-intervals covered by exactly one chain carry that lineage's node
// forward unchanged.
func (s *Simulator) mergeLineages(popIdx int, ids []arena.ID) error {
	var pieces []coalescingPiece
	for _, head := range ids {
		li := s.lineages[head]
		s.segPool.Each(li.chain, func(_ arena.ID, seg *segment.Segment) {
			pieces = append(pieces, coalescingPiece{seg.Left, seg.Right, seg.Node})
		})
	}
	if len(pieces) == 0 {
		return nil
	}

	boundSet := make(map[int64]struct{}, 2*len(pieces))
	for _, p := range pieces {
		boundSet[p.left] = struct{}{}
		boundSet[p.right] = struct{}{}
	}
	bounds := make([]int64, 0, len(boundSet))
	for b := range boundSet {
		bounds = append(bounds, b)
	}
	sort.Slice(bounds, func(i, j int) bool { return bounds[i] < bounds[j] })

	var parentNode segment.NodeID = -1
	var outChain segment.Chain
	haveOut := false

	appendOut := func(left, right int64, node segment.NodeID) error {
		var nc segment.Chain
		var ok bool
		if !haveOut {
			nc, ok = s.segPool.NewChain(left, right, node, segment.PopulationID(popIdx))
		} else {
			nc, ok = s.segPool.Append(outChain, left, right, node, segment.PopulationID(popIdx))
		}
		if !ok {
			return coalsimerr.New(coalsimerr.CodeAllocationFailed, "segment arena exhausted during coalescence")
		}
		outChain = nc
		haveOut = true
		return nil
	}

	for i := 0; i+1 < len(bounds); i++ {
		lo, hi := bounds[i], bounds[i+1]

		var covering []segment.NodeID
		for _, p := range pieces {
			if p.left <= lo && p.right >= hi {
				covering = append(covering, p.node)
			}
		}
		if len(covering) == 0 {
			continue
		}
		if len(covering) == 1 {
			if err := appendOut(lo, hi, covering[0]); err != nil {
				return err
			}
			continue
		}

		if parentNode < 0 {
			row := s.internalNodes.AddRow(0, s.clock, int32(popIdx), nil)
			parentNode = segment.NodeID(row)
		}
		for _, child := range covering {
			s.internalEdges.AddRow(float64(lo), float64(hi), int32(parentNode), int32(child))
		}

		before := s.overlapCountAt(lo)
		s.updateOverlap(lo, hi, -(len(covering) - 1))
		after := before - (len(covering) - 1)
		if after > 1 {
			if err := appendOut(lo, hi, parentNode); err != nil {
				return err
			}
		}
		// after <= 1: this interval has reached its MRCA; it is dropped
		// from active material rather than carried into the merged chain.
	}

	for _, head := range ids {
		li, tracked := s.lineages[head]
		s.untrackChain(head)
		s.pops[popIdx].RemoveAncestor(head)
		if tracked {
			s.segPool.FreeChain(li.chain)
		}
	}
	s.numCaEvents++

	if haveOut {
		s.trackChain(popIdx, outChain)
		s.pops[popIdx].AddAncestor(outChain.Head)
	}
	return nil
}
