package coalescent

import (
	"github.com/lixenwraith/coalsim/arena"
	"github.com/lixenwraith/coalsim/segment"
)

// fireRecombination handles event type 2 (§4.2): sample a breakpoint
// via the Fenwick sampler, split the containing chain there, promote
// the tail to a new lineage in the same population, and record the
// breakpoint.
func (s *Simulator) fireRecombination() error {
	total := s.links.Total()
	if total <= 0 {
		return nil
	}
	draw := s.rng.Uniform01() * total
	segID := arena.ID(s.links.Find(draw))
	if segID == 0 {
		return nil
	}
	headID, ok := s.segmentOwner[segID]
	if !ok {
		return nil
	}
	li, ok := s.lineages[headID]
	if !ok {
		return nil
	}
	seg := s.segPool.Get(segID)
	if seg == nil {
		return nil
	}

	lo, hiInclusive := s.segmentBreakpointWindow(seg)
	if hiInclusive < lo {
		return nil
	}
	pos := lo + int64(s.rng.UniformInt(int(hiInclusive-lo+1)))

	left, right, ok := s.segPool.SplitAt(li.chain, pos)
	if !ok {
		return nil
	}

	pop := li.population
	s.untrackChain(headID)
	s.trackChain(pop, left)
	s.trackChain(pop, right)
	s.pops[pop].AddAncestor(right.Head)
	// left.Head == headID (SplitAt preserves the chain's head id), so
	// the population's ancestor set already contains it; trackChain
	// above refreshed its lineageInfo in place.

	s.breakpoints.Set(int(pos), struct{}{})
	s.numReEvents++
	return nil
}

// segmentBreakpointWindow returns the inclusive range of genetic
// positions a split at seg may land on, matching trackChain's Fenwick
// weight: [left(s)+1, right(s)] when seg is the chain head (right(s)-
// left(s) positions), else [right(prev(s))+1, right(s)-1] (right(s)-
// right(prev(s))-1 positions) — see trackChain's comment in tracking.go
// for why right(prev(s)), not left(prev(s)), is the correct boundary.
func (s *Simulator) segmentBreakpointWindow(seg *segment.Segment) (lo, hiInclusive int64) {
	if seg.Prev == 0 {
		return seg.Left + 1, seg.Right
	}
	prevRight := s.segPool.Get(seg.Prev).Right
	return prevRight + 1, seg.Right - 1
}
