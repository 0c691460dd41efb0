package coalescent

import (
	"github.com/lixenwraith/coalsim/arena"
	"github.com/lixenwraith/coalsim/population"
	"github.com/lixenwraith/coalsim/segment"
)

// trackChain registers (or re-registers) a chain as a live lineage of
// pop: it records the lineage's population and chain in s.lineages,
// maps every one of its segment ids back to the chain's head id, and
// syncs each segment's Fenwick weight to right(s) - right(prev(s)) - 1
// when s is not the chain head, else right(s) - left(s) for the head
// itself. Using right(prev(s)), not left(prev(s)), matters: left(prev(s))
// would recount the span prev(s) already contributed to the chain's
// total breakpoint count, inflating the Fenwick total past the number
// of distinct valid recombination breakpoints the chain actually
// covers — see DESIGN.md's resolved-questions list.
func (s *Simulator) trackChain(pop int, c segment.Chain) {
	s.lineages[c.Head] = &lineageInfo{population: pop, chain: c}

	var prevRight int64 = -1
	first := true
	s.segPool.Each(c, func(id arena.ID, seg *segment.Segment) {
		s.segmentOwner[id] = c.Head
		var weight int64
		if first {
			weight = seg.Right - seg.Left
			first = false
		} else {
			weight = seg.Right - prevRight - 1
		}
		if weight < 0 {
			weight = 0
		}
		s.links.Insert(int(id), float64(weight))
		prevRight = seg.Right
	})
}

// untrackChain removes a lineage's bookkeeping: its Fenwick entries, its
// segment-to-chain-head mapping, and the lineages record itself. It does
// not free the underlying segments; callers that are discarding the
// chain entirely must also call segPool.FreeChain.
func (s *Simulator) untrackChain(head arena.ID) {
	li, ok := s.lineages[head]
	if !ok {
		return
	}
	s.segPool.Each(li.chain, func(id arena.ID, _ *segment.Segment) {
		delete(s.segmentOwner, id)
		s.links.Remove(int(id))
	})
	delete(s.lineages, head)
}

// chooseDistinct draws k distinct ancestor chain-head ids uniformly
// from pop, without replacement.
func (s *Simulator) chooseDistinct(p *population.Population, k int) []arena.ID {
	n := p.Count()
	if k > n {
		k = n
	}
	perm := s.rng.Perm(n)[:k]
	ids := make([]arena.ID, k)
	for i, j := range perm {
		ids[i] = p.At(j)
	}
	return ids
}

// ensureOverlapKey makes pos a breakpoint in the overlap-count index,
// carrying forward whatever count was effective immediately before it.
func (s *Simulator) ensureOverlapKey(pos int) {
	if s.overlap.Has(pos) {
		return
	}
	_, v, ok := s.overlap.Floor(pos - 1)
	if !ok {
		v = 0
	}
	s.overlap.Set(pos, v)
}

// updateOverlap adds delta to the overlap count over [left, right),
// splitting the step function at left and right first if needed.
func (s *Simulator) updateOverlap(left, right int64, delta int) {
	if left >= right {
		return
	}
	s.ensureOverlapKey(int(left))
	s.ensureOverlapKey(int(right))
	for _, k := range s.overlap.Keys() {
		if int64(k) >= left && int64(k) < right {
			v, _ := s.overlap.Get(k)
			s.overlap.Set(k, v+delta)
		}
	}
}

// overlapCountAt returns the ancestral-lineage multiplicity at pos.
func (s *Simulator) overlapCountAt(pos int64) int {
	_, v, ok := s.overlap.Floor(int(pos))
	if !ok {
		return 0
	}
	return v
}

// isFullyCoalesced reports whether every position has at most one
// ancestral lineage covering it — the termination condition of §4.2.
func (s *Simulator) isFullyCoalesced() bool {
	fullyDone := true
	s.overlap.Each(func(_ int, v int) {
		if v > 1 {
			fullyDone = false
		}
	})
	return fullyDone
}
