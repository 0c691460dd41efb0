// Package coalescent implements §4.2's event engine: the composite-rate
// event loop that advances a sample of lineages backward in time under
// coalescence, recombination, and migration, applying scheduled
// demographic events along the way, and the five common-ancestor models
// (Hudson, SMC, SMC', Beta, Dirac) that govern how lineages merge.
//
// Grounded on the teacher's genetic/engine.go generation-loop shape (an
// injected *rand.Rand, a step/advance method pair, accumulating counters)
// and on js-arias/timetree's simulate.Coalescent (other_examples), which
// draws one distuv.Exponential per coalescent interval the same way this
// engine draws one per composite rate.
package coalescent

import (
	"log"

	"github.com/google/uuid"

	"github.com/lixenwraith/coalsim/arena"
	"github.com/lixenwraith/coalsim/coalsimerr"
	"github.com/lixenwraith/coalsim/demography"
	"github.com/lixenwraith/coalsim/fenwick"
	"github.com/lixenwraith/coalsim/omap"
	"github.com/lixenwraith/coalsim/population"
	"github.com/lixenwraith/coalsim/rng"
	"github.com/lixenwraith/coalsim/segment"
	"github.com/lixenwraith/coalsim/tables"
)

// SampleConfig describes one initial sample: which population it enters
// and at what time (0 for an ordinary present-day sample; non-zero for
// an ancient sample added via a scheduled sampling event).
type SampleConfig struct {
	Population int
	Time       float64
}

// lineageInfo is the bookkeeping the engine keeps per live lineage,
// keyed by its segment chain's head id.
type lineageInfo struct {
	population int
	chain      segment.Chain
}

// Simulator is the event engine's mutable state: §9's "populations own
// their ancestor sets; segments are owned by the segment arena; the
// Fenwick tree and breakpoint index contain only ids and positions" is
// realised here as one struct gathering those collaborators plus the
// scheduled-event queue and accumulating record tables.
type Simulator struct {
	rng *rng.Source

	numLoci int64
	rho     float64
	model   Model

	pops      []*population.Population
	migration [][]float64

	events *demography.Queue

	segPool     *segment.Pool
	links       *fenwick.Tree
	breakpoints *omap.Map[struct{}]
	overlap     *omap.Map[int]

	lineages     map[arena.ID]*lineageInfo
	segmentOwner map[arena.ID]arena.ID

	clock           float64
	numSamples      int
	pendingSamples  []SampleConfig
	storeMigrations bool
	blockSize       int
	maxMemoryBytes  int64

	runID       uuid.UUID
	initialized bool
	completed   bool

	internalNodes      *tables.NodeTable
	internalEdges      *tables.EdgeTable
	internalMigrations *tables.MigrationTable

	numCaEvents          int
	numReEvents          int
	numMigEvents         int
	numRejectedCaEvents  int

	logger *log.Logger
}

// Alloc begins construction of a simulator for sample_size lineages,
// per §6's "alloc(sample_size, samples[], rng)". A nil samples places
// every sample in population 0 at time 0; otherwise len(samples) must
// equal sampleSize.
func Alloc(sampleSize int, samples []SampleConfig, source *rng.Source) (*Simulator, error) {
	if sampleSize < 0 {
		return nil, coalsimerr.New(coalsimerr.CodeBadArgument, "sample_size must be non-negative")
	}
	if source == nil {
		return nil, coalsimerr.New(coalsimerr.CodeBadArgument, "rng source must not be nil")
	}
	if samples == nil {
		samples = make([]SampleConfig, sampleSize)
	}
	if len(samples) != sampleSize {
		return nil, coalsimerr.New(coalsimerr.CodeBadArgument, "len(samples) must equal sample_size")
	}

	return &Simulator{
		rng:            source,
		numLoci:        1,
		model:          Model{Kind: ModelHudson},
		blockSize:      256,
		events:         demography.NewQueue(),
		breakpoints:    omap.New[struct{}](),
		overlap:        omap.New[int](),
		lineages:       make(map[arena.ID]*lineageInfo),
		segmentOwner:   make(map[arena.ID]arena.ID),
		pendingSamples: samples,
		logger:         log.Default(),
	}, nil
}

func (s *Simulator) requireConstructionPhase() error {
	if s.initialized {
		return coalsimerr.New(coalsimerr.CodeBadArgument, "cannot reconfigure a simulator after initialise")
	}
	return nil
}

// SetNumLoci sets L, the number of discrete genetic loci in [0, L).
func (s *Simulator) SetNumLoci(n int64) error {
	if err := s.requireConstructionPhase(); err != nil {
		return err
	}
	if n <= 0 {
		return coalsimerr.New(coalsimerr.CodeBadArgument, "num_loci must be positive")
	}
	s.numLoci = n
	return nil
}

// SetRecombinationRate sets rho, the scaled per-link recombination rate.
func (s *Simulator) SetRecombinationRate(rho float64) error {
	if err := s.requireConstructionPhase(); err != nil {
		return err
	}
	if rho < 0 {
		return coalsimerr.New(coalsimerr.CodeBadRate, "recombination rate must be non-negative")
	}
	s.rho = rho
	return nil
}

// SetNumPopulations (re)initialises the population array to n
// default-configured populations (initial_size 1, growth_rate 0,
// start_time 0), discarding any prior per-population configuration.
func (s *Simulator) SetNumPopulations(n int) error {
	if err := s.requireConstructionPhase(); err != nil {
		return err
	}
	if n <= 0 {
		return coalsimerr.New(coalsimerr.CodeBadArgument, "num_populations must be positive")
	}
	pops := make([]*population.Population, n)
	for i := range pops {
		pops[i] = population.New("", 1.0, 0, 0)
	}
	s.pops = pops
	s.migration = nil
	return nil
}

// SetPopulationConfig overwrites population idx's demographic parameters.
func (s *Simulator) SetPopulationConfig(idx int, name string, initialSize, growthRate, startTime float64) error {
	if err := s.requireConstructionPhase(); err != nil {
		return err
	}
	if idx < 0 || idx >= len(s.pops) {
		return coalsimerr.New(coalsimerr.CodeBadArgument, "population index out of range")
	}
	if initialSize <= 0 {
		return coalsimerr.New(coalsimerr.CodeBadArgument, "initial_size must be positive")
	}
	p := s.pops[idx]
	p.Name = name
	is := initialSize
	gr := growthRate
	p.SetParameters(&is, &gr, startTime)
	return nil
}

// SetMigrationMatrix installs the full pairwise migration-rate matrix.
// Diagonal entries are ignored.
func (s *Simulator) SetMigrationMatrix(m [][]float64) error {
	if err := s.requireConstructionPhase(); err != nil {
		return err
	}
	rows := make([][]float64, len(m))
	for i, row := range m {
		rows[i] = append([]float64(nil), row...)
	}
	s.migration = rows
	return nil
}

// SetModel selects the common-ancestor rule and its parameters.
func (s *Simulator) SetModel(m Model) error {
	if err := s.requireConstructionPhase(); err != nil {
		return err
	}
	s.model = m
	return nil
}

// SetBlockSize sets the arena/Fenwick growth increment (§3 "block-pooled").
func (s *Simulator) SetBlockSize(n int) error {
	if err := s.requireConstructionPhase(); err != nil {
		return err
	}
	if n <= 0 {
		return coalsimerr.New(coalsimerr.CodeBadArgument, "block_size must be positive")
	}
	s.blockSize = n
	return nil
}

// SetMaxMemory bounds the segment arena's aggregate byte footprint (§5).
// 0 means unbounded.
func (s *Simulator) SetMaxMemory(bytes int64) error {
	if err := s.requireConstructionPhase(); err != nil {
		return err
	}
	if bytes < 0 {
		return coalsimerr.New(coalsimerr.CodeBadArgument, "max_memory must be non-negative")
	}
	s.maxMemoryBytes = bytes
	return nil
}

// SetStoreMigrations toggles migration-record emission.
func (s *Simulator) SetStoreMigrations(on bool) error {
	if err := s.requireConstructionPhase(); err != nil {
		return err
	}
	s.storeMigrations = on
	return nil
}

// SetLogger overrides the engine's logger; a nil logger restores
// log.Default(), matching the teacher's package-level logging idiom.
func (s *Simulator) SetLogger(l *log.Logger) {
	if l == nil {
		l = log.Default()
	}
	s.logger = l
}

// AddPopulationParametersChange registers a scheduled population
// parameters change.
func (s *Simulator) AddPopulationParametersChange(at float64, pop int, initialSize, growthRate *float64, startTime float64) error {
	if err := s.requireConstructionPhase(); err != nil {
		return err
	}
	s.events.Add(&demography.PopulationParametersChange{At: at, Population: pop, InitialSize: initialSize, GrowthRate: growthRate, StartTime: startTime})
	return nil
}

// AddMigrationRateChange registers a scheduled migration-rate change.
// from < 0 or to < 0 sets every off-diagonal rate.
func (s *Simulator) AddMigrationRateChange(at float64, from, to int, rate float64) error {
	if err := s.requireConstructionPhase(); err != nil {
		return err
	}
	s.events.Add(&demography.MigrationRateChange{At: at, From: from, To: to, Rate: rate})
	return nil
}

// AddMassMigration registers a scheduled mass migration.
func (s *Simulator) AddMassMigration(at float64, source, dest int, proportion float64) error {
	if err := s.requireConstructionPhase(); err != nil {
		return err
	}
	s.events.Add(&demography.MassMigration{At: at, Source: source, Dest: dest, Proportion: proportion})
	return nil
}

// AddSimpleBottleneck registers a scheduled simple bottleneck.
func (s *Simulator) AddSimpleBottleneck(at float64, pop int, proportion float64) error {
	if err := s.requireConstructionPhase(); err != nil {
		return err
	}
	s.events.Add(&demography.SimpleBottleneck{At: at, Population: pop, Proportion: proportion})
	return nil
}

// AddInstantaneousBottleneck registers a scheduled instantaneous
// bottleneck.
func (s *Simulator) AddInstantaneousBottleneck(at float64, pop int, duration float64) error {
	if err := s.requireConstructionPhase(); err != nil {
		return err
	}
	s.events.Add(&demography.InstantaneousBottleneck{At: at, Population: pop, Duration: duration})
	return nil
}

// Initialise validates the accumulated configuration and seeds
// populations with the initial (time-0) samples, per §6. Samples with a
// non-zero time are instead enqueued as scheduled sampling events.
func (s *Simulator) Initialise() error {
	if s.initialized {
		return coalsimerr.New(coalsimerr.CodeAlreadyComplete, "simulator already initialised")
	}
	if s.numLoci <= 0 {
		return coalsimerr.New(coalsimerr.CodeBadArgument, "num_loci must be positive")
	}
	if s.rho < 0 {
		return coalsimerr.New(coalsimerr.CodeBadRate, "recombination rate must be non-negative")
	}
	if len(s.pops) == 0 {
		s.pops = []*population.Population{population.New("pop-0", 1.0, 0, 0)}
	}
	if s.migration == nil {
		s.migration = make([][]float64, len(s.pops))
		for i := range s.migration {
			s.migration[i] = make([]float64, len(s.pops))
		}
	}
	if len(s.migration) != len(s.pops) {
		return coalsimerr.New(coalsimerr.CodeInconsistentDemography, "migration matrix row count does not match population count")
	}
	for _, row := range s.migration {
		if len(row) != len(s.pops) {
			return coalsimerr.New(coalsimerr.CodeInconsistentDemography, "migration matrix is not square")
		}
	}
	for i, row := range s.migration {
		for j, r := range row {
			if i != j && r < 0 {
				return coalsimerr.New(coalsimerr.CodeBadRate, "migration rate must be non-negative")
			}
		}
	}
	switch s.model.Kind {
	case ModelBeta:
		if s.model.BetaAlpha <= 0 || s.model.BetaAlpha >= 2 {
			return coalsimerr.New(coalsimerr.CodeModelPrecondition, "beta-coalescent alpha must lie in (0,2)")
		}
	case ModelDirac:
		if s.model.DiracPsi <= 0 || s.model.DiracPsi > 1 || s.model.DiracC < 0 {
			return coalsimerr.New(coalsimerr.CodeModelPrecondition, "dirac-coalescent psi/c out of range")
		}
	}
	for _, sample := range s.pendingSamples {
		if sample.Population < 0 || sample.Population >= len(s.pops) {
			return coalsimerr.New(coalsimerr.CodeBadArgument, "sample references an unknown population")
		}
	}

	s.segPool = segment.NewPool(s.blockSize, s.maxMemoryBytes)
	s.links = fenwick.New(s.blockSize)
	s.internalNodes = tables.NewNodeTable()
	s.internalEdges = tables.NewEdgeTable()
	s.internalMigrations = tables.NewMigrationTable()

	id, err := uuid.NewRandom()
	if err != nil {
		return coalsimerr.Wrap(coalsimerr.CodeIO, "failed to mint run id", err)
	}
	s.runID = id

	for _, sample := range s.pendingSamples {
		if sample.Time == 0 {
			if err := s.AddSample(sample.Population, 0); err != nil {
				return err
			}
		} else {
			s.events.Add(&demography.SamplingEvent{At: sample.Time, Population: sample.Population})
		}
	}

	s.initialized = true
	return nil
}

// RunID returns the opaque run identifier minted by Initialise.
func (s *Simulator) RunID() uuid.UUID { return s.runID }

// Clock returns the simulation's current time.
func (s *Simulator) Clock() float64 { return s.clock }

// NumCoalescenceEvents returns num_ca_events.
func (s *Simulator) NumCoalescenceEvents() int { return s.numCaEvents }

// NumRecombinationEvents returns num_re_events.
func (s *Simulator) NumRecombinationEvents() int { return s.numReEvents }

// NumMigrationEvents returns num_mig_events.
func (s *Simulator) NumMigrationEvents() int { return s.numMigEvents }

// NumRejectedCoalescenceEvents returns num_rejected_ca_events.
func (s *Simulator) NumRejectedCoalescenceEvents() int { return s.numRejectedCaEvents }

// NumBreakpoints returns the number of distinct recombination breakpoint
// positions recorded so far (§8's "num_re_events equals the number of
// distinct positions in the breakpoint index").
func (s *Simulator) NumBreakpoints() int { return s.breakpoints.Len() }

func (s *Simulator) validPopIndex(i int) bool { return i >= 0 && i < len(s.pops) }

// PopulationCount returns the number of live ancestor lineages currently
// in population idx.
func (s *Simulator) PopulationCount(idx int) (int, error) {
	if !s.validPopIndex(idx) {
		return 0, coalsimerr.New(coalsimerr.CodeBadArgument, "population index out of range")
	}
	return s.pops[idx].Count(), nil
}
