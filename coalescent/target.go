package coalescent

import (
	"github.com/lixenwraith/coalsim/arena"
	"github.com/lixenwraith/coalsim/coalsimerr"
	"github.com/lixenwraith/coalsim/demography"
	"github.com/lixenwraith/coalsim/segment"
	"github.com/lixenwraith/coalsim/tables"
)

// Simulator implements demography.Target, so scheduled events (§4.2
// event type 4) can mutate engine state without demography importing
// coalescent.
var _ demography.Target = (*Simulator)(nil)

// AddSample brings a new sample lineage into pop at the given absolute
// time: a full-span segment chain labelled with a fresh sample node.
func (s *Simulator) AddSample(pop int, time float64) error {
	if !s.validPopIndex(pop) {
		return coalsimerr.New(coalsimerr.CodeBadArgument, "sample references an unknown population")
	}
	row := s.internalNodes.AddRow(tables.NodeFlagSample, time, int32(pop), nil)
	c, ok := s.segPool.NewChain(0, s.numLoci, segment.NodeID(row), segment.PopulationID(pop))
	if !ok {
		return coalsimerr.New(coalsimerr.CodeAllocationFailed, "segment arena exhausted while adding sample")
	}
	s.trackChain(pop, c)
	s.pops[pop].AddAncestor(c.Head)
	s.updateOverlap(0, s.numLoci, 1)
	s.numSamples++
	return nil
}

// SetPopulationParameters resets initial_size/growth_rate/start_time.
// Nil pointers leave that field unchanged.
func (s *Simulator) SetPopulationParameters(pop int, initialSize, growthRate *float64, startTime float64) error {
	if !s.validPopIndex(pop) {
		return coalsimerr.New(coalsimerr.CodeBadArgument, "population index out of range")
	}
	s.pops[pop].SetParameters(initialSize, growthRate, startTime)
	return nil
}

// SetMigrationRate sets M[from][to].
func (s *Simulator) SetMigrationRate(from, to int, rate float64) error {
	if !s.validPopIndex(from) || !s.validPopIndex(to) {
		return coalsimerr.New(coalsimerr.CodeBadArgument, "migration rate change references an unknown population")
	}
	if rate < 0 {
		return coalsimerr.New(coalsimerr.CodeBadRate, "migration rate must be non-negative")
	}
	s.migration[from][to] = rate
	return nil
}

// SetAllMigrationRates sets every off-diagonal entry of M.
func (s *Simulator) SetAllMigrationRates(rate float64) error {
	if rate < 0 {
		return coalsimerr.New(coalsimerr.CodeBadRate, "migration rate must be non-negative")
	}
	for i := range s.migration {
		for j := range s.migration[i] {
			if i != j {
				s.migration[i][j] = rate
			}
		}
	}
	return nil
}

// MassMigration moves each lineage in source to dest independently
// with probability proportion.
func (s *Simulator) MassMigration(source, dest int, proportion float64) error {
	if !s.validPopIndex(source) || !s.validPopIndex(dest) {
		return coalsimerr.New(coalsimerr.CodeBadArgument, "mass migration references an unknown population")
	}
	pop := s.pops[source]
	ids := append([]arena.ID(nil), pop.Ancestors()...)
	for _, head := range ids {
		if s.rng.Uniform01() >= proportion {
			continue
		}
		li := s.lineages[head]
		pop.RemoveAncestor(head)
		s.pops[dest].AddAncestor(head)
		li.population = dest
	}
	return nil
}

// SimpleBottleneck merges each lineage in pop that independently
// participates (probability proportion) into one lineage.
func (s *Simulator) SimpleBottleneck(pop int, proportion float64) error {
	if !s.validPopIndex(pop) {
		return coalsimerr.New(coalsimerr.CodeBadArgument, "bottleneck references an unknown population")
	}
	p := s.pops[pop]
	var participants []arena.ID
	for _, head := range p.Ancestors() {
		if s.rng.Uniform01() < proportion {
			participants = append(participants, head)
		}
	}
	if len(participants) < 2 {
		return nil
	}
	return s.mergeLineages(pop, participants)
}

// InstantaneousBottleneck runs a classical (Hudson) coalescent
// instantaneously in pop, with strength equivalent to duration: each
// round accepts a merge with odds proportional to the scaled
// coalescence rate, approximating folding an unbounded number of
// Exp(rate) waiting times into zero elapsed clock time.
func (s *Simulator) InstantaneousBottleneck(pop int, duration float64) error {
	if !s.validPopIndex(pop) {
		return coalsimerr.New(coalsimerr.CodeBadArgument, "bottleneck references an unknown population")
	}
	if duration < 0 {
		return coalsimerr.New(coalsimerr.CodeBadArgument, "instantaneous bottleneck duration must be non-negative")
	}
	p := s.pops[pop]
	for p.Count() >= 2 {
		rate := p.CoalescenceRate(s.clock) * duration
		if rate <= 0 {
			break
		}
		if s.rng.Uniform01() > rate/(rate+1) {
			break
		}
		ids := s.chooseDistinct(p, 2)
		if err := s.mergeLineages(pop, ids); err != nil {
			return err
		}
	}
	return nil
}
