package coalescent

import (
	"github.com/lixenwraith/coalsim/arena"
	"github.com/lixenwraith/coalsim/segment"
)

// fireMigration handles event type 3 (§4.2): move one uniformly chosen
// lineage from population from to population to, optionally emitting a
// migration record per segment in its chain.
func (s *Simulator) fireMigration(from, to int) error {
	pop := s.pops[from]
	if pop.Count() == 0 {
		return nil
	}
	idx := s.rng.UniformInt(pop.Count())
	head := pop.At(idx)
	li, ok := s.lineages[head]
	if !ok {
		return nil
	}

	s.recordMigrationIfEnabled(li, from, to)

	pop.RemoveAncestor(head)
	s.pops[to].AddAncestor(head)
	li.population = to
	s.numMigEvents++
	return nil
}

// recordMigrationIfEnabled emits one migration record per segment in
// li's chain, covering that segment's own genetic span, per §4.2 event
// 3's "emit a migration record covering its current physical span".
func (s *Simulator) recordMigrationIfEnabled(li *lineageInfo, from, to int) {
	if !s.storeMigrations {
		return
	}
	s.segPool.Each(li.chain, func(_ arena.ID, seg *segment.Segment) {
		s.internalMigrations.AddRow(float64(seg.Left), float64(seg.Right), int32(seg.Node), int32(from), int32(to), s.clock)
	})
}
