// Package demography implements the scheduled-event side of §4.2: a
// time-ordered queue of demographic and sampling events, each a
// self-contained variant implementing a common Apply contract.
//
// Grounded on §9's design note ("Union-typed demographic events.
// Replace the discriminated union over event kinds with a tagged
// variant; each variant carries its own parameters and implements the
// common apply(simulator, clock) -> status contract") and on the
// teacher's event/registry.go + engine/event_router.go typed-dispatch
// pattern, re-expressed here as an explicit Go interface rather than a
// registry of handler functions, since the event set is closed and
// known at compile time (§4.2 enumerates exactly six variants).
package demography

import "github.com/lixenwraith/coalsim/coalsimerr"

// Target is the subset of the event engine's state scheduled events are
// allowed to mutate. coalescent.Simulator implements this interface;
// defining it here (rather than importing the coalescent package)
// avoids an import cycle, since coalescent must import demography for
// the Queue and Event types.
type Target interface {
	// AddSample brings a new sample lineage into population pop at the
	// given absolute time (the sampling event, §4.2).
	AddSample(pop int, time float64) error

	// SetPopulationParameters resets a population's initial_size,
	// growth_rate and start_time. Nil pointers leave that field
	// unchanged.
	SetPopulationParameters(pop int, initialSize, growthRate *float64, startTime float64) error

	// SetMigrationRate sets M[from][to] to rate.
	SetMigrationRate(from, to int, rate float64) error

	// SetAllMigrationRates sets every off-diagonal entry of M to rate.
	SetAllMigrationRates(rate float64) error

	// MassMigration moves each lineage in source to dest independently
	// with probability proportion.
	MassMigration(source, dest int, proportion float64) error

	// SimpleBottleneck merges each lineage in pop that independently
	// participates (with probability proportion) into one lineage.
	SimpleBottleneck(pop int, proportion float64) error

	// InstantaneousBottleneck runs a classical coalescent instantaneously
	// in pop with strength equivalent to the given duration.
	InstantaneousBottleneck(pop int, duration float64) error
}

// Event is one scheduled demographic or sampling event.
type Event interface {
	// Time returns the absolute clock time at which this event fires.
	Time() float64
	// Apply executes the event against target.
	Apply(target Target) error
	// Kind names the event's variant, for diagnostics.
	Kind() string
}

// SamplingEvent adds a sample lineage to a population at a given time.
type SamplingEvent struct {
	At         float64
	Population int
}

func (e *SamplingEvent) Time() float64 { return e.At }
func (e *SamplingEvent) Kind() string  { return "sampling" }
func (e *SamplingEvent) Apply(target Target) error {
	return target.AddSample(e.Population, e.At)
}

// PopulationParametersChange resets a population's demographic
// parameters. Nil fields are left unchanged.
type PopulationParametersChange struct {
	At          float64
	Population  int
	InitialSize *float64
	GrowthRate  *float64
	StartTime   float64
}

func (e *PopulationParametersChange) Time() float64 { return e.At }
func (e *PopulationParametersChange) Kind() string   { return "population_parameters_change" }
func (e *PopulationParametersChange) Apply(target Target) error {
	return target.SetPopulationParameters(e.Population, e.InitialSize, e.GrowthRate, e.StartTime)
}

// MigrationRateChange sets a single entry (From/To >= 0) or, if From < 0
// or To < 0, every off-diagonal entry of the migration matrix.
type MigrationRateChange struct {
	At   float64
	From int
	To   int
	Rate float64
}

func (e *MigrationRateChange) Time() float64 { return e.At }
func (e *MigrationRateChange) Kind() string   { return "migration_rate_change" }
func (e *MigrationRateChange) Apply(target Target) error {
	if e.From < 0 || e.To < 0 {
		return target.SetAllMigrationRates(e.Rate)
	}
	return target.SetMigrationRate(e.From, e.To, e.Rate)
}

// MassMigration moves each lineage in Source to Dest independently with
// probability Proportion.
type MassMigration struct {
	At         float64
	Source     int
	Dest       int
	Proportion float64
}

func (e *MassMigration) Time() float64 { return e.At }
func (e *MassMigration) Kind() string  { return "mass_migration" }
func (e *MassMigration) Apply(target Target) error {
	if e.Proportion < 0 || e.Proportion > 1 {
		return coalsimerr.New(coalsimerr.CodeInconsistentDemography, "mass migration proportion out of [0,1]")
	}
	return target.MassMigration(e.Source, e.Dest, e.Proportion)
}

// SimpleBottleneck merges a Proportion-fraction of Population's
// lineages into one.
type SimpleBottleneck struct {
	At         float64
	Population int
	Proportion float64
}

func (e *SimpleBottleneck) Time() float64 { return e.At }
func (e *SimpleBottleneck) Kind() string  { return "simple_bottleneck" }
func (e *SimpleBottleneck) Apply(target Target) error {
	if e.Proportion < 0 || e.Proportion > 1 {
		return coalsimerr.New(coalsimerr.CodeInconsistentDemography, "bottleneck proportion out of [0,1]")
	}
	return target.SimpleBottleneck(e.Population, e.Proportion)
}

// InstantaneousBottleneck runs a classical coalescent instantaneously in
// Population with strength equivalent to Duration.
type InstantaneousBottleneck struct {
	At         float64
	Population int
	Duration   float64
}

func (e *InstantaneousBottleneck) Time() float64 { return e.At }
func (e *InstantaneousBottleneck) Kind() string   { return "instantaneous_bottleneck" }
func (e *InstantaneousBottleneck) Apply(target Target) error {
	if e.Duration < 0 {
		return coalsimerr.New(coalsimerr.CodeBadArgument, "instantaneous bottleneck duration must be >= 0")
	}
	return target.InstantaneousBottleneck(e.Population, e.Duration)
}
