package coalescent

import (
	"math"

	"github.com/lixenwraith/coalsim/coalsimerr"
)

// TerminationReason classifies why Run returned control to the caller.
type TerminationReason int

const (
	// TerminationNone is returned only alongside a non-nil error.
	TerminationNone TerminationReason = iota
	// TerminationFullCoalescence: the overlap count is at most one
	// everywhere (every position has at most one ancestral lineage).
	TerminationFullCoalescence
	// TerminationMaxTime: the next event (stochastic or scheduled) would
	// fall after the caller's max_time bound.
	TerminationMaxTime
	// TerminationMaxEvents: the caller's max_events bound for this call
	// was reached.
	TerminationMaxEvents
	// TerminationNoFurtherEvents: the composite rate is zero and no
	// scheduled events remain, so the simulation can never reach full
	// coalescence (§8's "zero migration with multiple populations
	// containing samples: engine does not terminate").
	TerminationNoFurtherEvents
)

func (r TerminationReason) String() string {
	switch r {
	case TerminationFullCoalescence:
		return "full_coalescence"
	case TerminationMaxTime:
		return "max_time"
	case TerminationMaxEvents:
		return "max_events"
	case TerminationNoFurtherEvents:
		return "no_further_events"
	default:
		return "none"
	}
}

// Run advances the simulation until full coalescence or until maxTime
// (0 for unbounded) or maxEvents (0 for unbounded) is reached, per §6's
// "run(max_time, max_events) advances until completion or bound; may be
// called repeatedly." Partial progress across calls is a valid
// mid-simulation snapshot (§5).
func (s *Simulator) Run(maxTime float64, maxEvents int) (TerminationReason, error) {
	if !s.initialized {
		return TerminationNone, coalsimerr.New(coalsimerr.CodeBadArgument, "run called before initialise")
	}
	if s.completed {
		return TerminationNone, coalsimerr.New(coalsimerr.CodeAlreadyComplete, "simulation has already fully coalesced")
	}

	eventsThisCall := 0
	for {
		if s.isFullyCoalesced() {
			s.completed = true
			return TerminationFullCoalescence, nil
		}
		if maxEvents > 0 && eventsThisCall >= maxEvents {
			return TerminationMaxEvents, nil
		}

		rate := s.compositeRate()
		nextStochastic := math.Inf(1)
		if rate > 0 {
			nextStochastic = s.clock + s.rng.Exponential(rate)
		}

		scheduled := s.events.Peek()
		if scheduled != nil && scheduled.Time() <= nextStochastic {
			if maxTime > 0 && scheduled.Time() > maxTime {
				return TerminationMaxTime, nil
			}
			s.clock = scheduled.Time()
			s.events.Pop()
			if err := scheduled.Apply(s); err != nil {
				return TerminationNone, err
			}
			eventsThisCall++
			continue
		}

		if math.IsInf(nextStochastic, 1) {
			return TerminationNoFurtherEvents, nil
		}
		if maxTime > 0 && nextStochastic > maxTime {
			return TerminationMaxTime, nil
		}
		s.clock = nextStochastic
		if err := s.fireStochasticEvent(); err != nil {
			return TerminationNone, err
		}
		eventsThisCall++
	}
}
