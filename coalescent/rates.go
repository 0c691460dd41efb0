package coalescent

// rateClass is one instantaneous-rate contributor to the composite rate
// (§4.2): a coalescence class per population, one global recombination
// class, and one migration class per ordered population pair.
type rateClass struct {
	rate float64
	fire func() error
}

// compositeRate sums every coexisting event class's instantaneous rate
// at the current clock, per §4.2's "Composite rate".
func (s *Simulator) compositeRate() float64 {
	total := 0.0
	for _, p := range s.pops {
		total += p.CoalescenceRate(s.clock)
	}
	total += s.rho * s.links.Total()
	for i := range s.migration {
		ni := float64(s.pops[i].Count())
		if ni == 0 {
			continue
		}
		for j, rate := range s.migration[i] {
			if i == j {
				continue
			}
			total += rate * ni
		}
	}
	return total
}

// rateClasses builds the list of currently active (rate > 0) event
// classes, for the categorical draw that decides which class fires.
func (s *Simulator) rateClasses() []rateClass {
	var classes []rateClass
	for i := range s.pops {
		idx := i
		if r := s.pops[idx].CoalescenceRate(s.clock); r > 0 {
			classes = append(classes, rateClass{rate: r, fire: func() error { return s.fireCoalescence(idx) }})
		}
	}
	if r := s.rho * s.links.Total(); r > 0 {
		classes = append(classes, rateClass{rate: r, fire: s.fireRecombination})
	}
	for i := range s.migration {
		ni := float64(s.pops[i].Count())
		if ni == 0 {
			continue
		}
		for j, rate := range s.migration[i] {
			if i == j || rate <= 0 {
				continue
			}
			from, to := i, j
			classes = append(classes, rateClass{rate: rate * ni, fire: func() error { return s.fireMigration(from, to) }})
		}
	}
	return classes
}

// fireStochasticEvent picks one active event class by a weighted
// categorical draw over the classes' rates and applies it.
func (s *Simulator) fireStochasticEvent() error {
	classes := s.rateClasses()
	if len(classes) == 0 {
		return nil
	}
	total := 0.0
	for _, c := range classes {
		total += c.rate
	}
	draw := s.rng.Uniform01() * total
	cum := 0.0
	for _, c := range classes {
		cum += c.rate
		if draw <= cum {
			return c.fire()
		}
	}
	return classes[len(classes)-1].fire()
}
