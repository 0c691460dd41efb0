// Package population implements §3/§4.2's per-population state: ancestor
// sets, size/growth-rate/start-time demography, and the coalescence-rate
// computation each population contributes to the event engine's
// composite rate.
//
// Ancestor sets are modeled as a balanced ordered set of segment-chain
// head ids, per §9's ownership note: "populations own their ancestor
// sets (a balanced ordered set of segment-chain head indices)". Reusing
// omap.Map here (rather than a plain map[int]struct{}) is grounded on
// the same emirpasic/gods/v2 ordered-container concern omap already
// wires in for breakpoints/overlap counts.
package population

import (
	"math"

	"github.com/lixenwraith/coalsim/arena"
	"github.com/lixenwraith/coalsim/omap"
)

// Population is one subpopulation's demographic state and live ancestor
// set. Size at clock t is InitialSize * exp(-GrowthRate*(t-StartTime)),
// per §3.
type Population struct {
	Name         string
	InitialSize  float64
	GrowthRate   float64
	StartTime    float64
	ancestors    *omap.Map[struct{}]
	ancestorList []arena.ID // indexable mirror (swap-removal order) for O(1) uniform-pair sampling
}

// New creates a population with the given initial demographic
// parameters. GrowthRate 0 means constant size.
func New(name string, initialSize, growthRate, startTime float64) *Population {
	return &Population{
		Name:        name,
		InitialSize: initialSize,
		GrowthRate:  growthRate,
		StartTime:   startTime,
		ancestors:   omap.New[struct{}](),
	}
}

// SizeAt returns the population's effective size at clock t.
func (p *Population) SizeAt(t float64) float64 {
	if p.GrowthRate == 0 {
		return p.InitialSize
	}
	return p.InitialSize * math.Exp(-p.GrowthRate*(t-p.StartTime))
}

// SetParameters overwrites initial_size/growth_rate/start_time, per the
// "population parameters change" scheduled event (§4.2).
func (p *Population) SetParameters(initialSize, growthRate *float64, startTime float64) {
	if initialSize != nil {
		p.InitialSize = *initialSize
	}
	if growthRate != nil {
		p.GrowthRate = *growthRate
	}
	p.StartTime = startTime
}

// AddAncestor inserts a chain-head id into the ancestor set.
func (p *Population) AddAncestor(id arena.ID) {
	if p.ancestors.Has(int(id)) {
		return
	}
	p.ancestors.Set(int(id), struct{}{})
	p.ancestorList = append(p.ancestorList, id)
}

// RemoveAncestor deletes a chain-head id from the ancestor set.
func (p *Population) RemoveAncestor(id arena.ID) {
	if !p.ancestors.Has(int(id)) {
		return
	}
	p.ancestors.Delete(int(id))
	for i, v := range p.ancestorList {
		if v == id {
			p.ancestorList[i] = p.ancestorList[len(p.ancestorList)-1]
			p.ancestorList = p.ancestorList[:len(p.ancestorList)-1]
			break
		}
	}
}

// ReplaceAncestor swaps an old chain-head id for a new one in place,
// used when a chain is extended or split without changing lineage
// count (the chain's head id may change after a boundary split).
func (p *Population) ReplaceAncestor(oldID, newID arena.ID) {
	if oldID == newID {
		return
	}
	p.RemoveAncestor(oldID)
	p.AddAncestor(newID)
}

// Count returns the number of live ancestors (|A_p| in §4.2's rate
// formulas).
func (p *Population) Count() int { return len(p.ancestorList) }

// Ancestors returns a copy of the current ancestor chain-head ids. They
// are in insertion order until a removal, which moves the last id into
// the removed id's place.
func (p *Population) Ancestors() []arena.ID {
	out := make([]arena.ID, len(p.ancestorList))
	copy(out, p.ancestorList)
	return out
}

// At returns the ancestor id at the given index, for uniform-pair
// sampling without walking the ordered set (O(1)).
func (p *Population) At(i int) arena.ID { return p.ancestorList[i] }

// CoalescenceRate computes C_p(t) = (|A_p|*(|A_p|-1)/2) / size_p(t),
// per §4.2.
func (p *Population) CoalescenceRate(t float64) float64 {
	n := float64(p.Count())
	if n < 2 {
		return 0
	}
	size := p.SizeAt(t)
	if size <= 0 {
		return math.Inf(1)
	}
	return (n * (n - 1) / 2) / size
}
