package config

import (
	"fmt"

	"github.com/lixenwraith/coalsim/coalescent"
	"github.com/lixenwraith/coalsim/coalsimerr"
	"github.com/lixenwraith/coalsim/rng"
)

// modelKind parses a DTO's Kind string into a coalescent.ModelKind. An
// empty string defaults to Hudson, matching a freshly-alloc'd
// Simulator's own default.
func modelKind(s string) (coalescent.ModelKind, error) {
	switch s {
	case "", "hudson":
		return coalescent.ModelHudson, nil
	case "smc":
		return coalescent.ModelSMC, nil
	case "smc_prime":
		return coalescent.ModelSMCPrime, nil
	case "beta":
		return coalescent.ModelBeta, nil
	case "dirac":
		return coalescent.ModelDirac, nil
	default:
		return 0, coalsimerr.New(coalsimerr.CodeBadArgument, fmt.Sprintf("unknown model kind %q", s))
	}
}

// Build allocates and configures a Simulator from a scenario, applying
// every field through the same setter and event-registration calls a
// programmatic caller would use, then calls Initialise. The returned
// Simulator is ready for Run.
func Build(dto ScenarioDTO, source *rng.Source) (*coalescent.Simulator, error) {
	if err := validateScenario(dto); err != nil {
		return nil, err
	}

	samples := make([]coalescent.SampleConfig, len(dto.Samples))
	for i, s := range dto.Samples {
		samples[i] = coalescent.SampleConfig{Population: s.Population, Time: s.Time}
	}

	sim, err := coalescent.Alloc(len(samples), samples, source)
	if err != nil {
		return nil, err
	}

	if dto.NumLoci != 0 {
		if err := sim.SetNumLoci(dto.NumLoci); err != nil {
			return nil, err
		}
	}
	if err := sim.SetRecombinationRate(dto.RecombinationRate); err != nil {
		return nil, err
	}

	if n := len(dto.Populations); n > 0 {
		if err := sim.SetNumPopulations(n); err != nil {
			return nil, err
		}
		for i, p := range dto.Populations {
			if err := sim.SetPopulationConfig(i, p.Name, p.InitialSize, p.GrowthRate, p.StartTime); err != nil {
				return nil, err
			}
		}
	}

	if len(dto.MigrationMatrix) > 0 {
		if err := sim.SetMigrationMatrix(dto.MigrationMatrix); err != nil {
			return nil, err
		}
	}

	kind, err := modelKind(dto.Model.Kind)
	if err != nil {
		return nil, err
	}
	if err := sim.SetModel(coalescent.Model{
		Kind:           kind,
		BetaAlpha:      dto.Model.BetaAlpha,
		BetaTruncation: dto.Model.BetaTruncation,
		DiracPsi:       dto.Model.DiracPsi,
		DiracC:         dto.Model.DiracC,
	}); err != nil {
		return nil, err
	}

	if dto.BlockSize != 0 {
		if err := sim.SetBlockSize(dto.BlockSize); err != nil {
			return nil, err
		}
	}
	if dto.MaxMemoryBytes != 0 {
		if err := sim.SetMaxMemory(dto.MaxMemoryBytes); err != nil {
			return nil, err
		}
	}
	if err := sim.SetStoreMigrations(dto.StoreMigrations); err != nil {
		return nil, err
	}

	for _, c := range dto.ParametersChanges {
		var initialSize, growthRate *float64
		if c.SetInitialSize {
			v := c.InitialSize
			initialSize = &v
		}
		if c.SetGrowthRate {
			v := c.GrowthRate
			growthRate = &v
		}
		if err := sim.AddPopulationParametersChange(c.At, c.Population, initialSize, growthRate, c.StartTime); err != nil {
			return nil, err
		}
	}
	for _, c := range dto.MigrationRateChanges {
		if err := sim.AddMigrationRateChange(c.At, c.From, c.To, c.Rate); err != nil {
			return nil, err
		}
	}
	for _, c := range dto.MassMigrations {
		if err := sim.AddMassMigration(c.At, c.Source, c.Dest, c.Proportion); err != nil {
			return nil, err
		}
	}
	for _, c := range dto.SimpleBottlenecks {
		if err := sim.AddSimpleBottleneck(c.At, c.Population, c.Proportion); err != nil {
			return nil, err
		}
	}
	for _, c := range dto.InstantaneousBottlenecks {
		if err := sim.AddInstantaneousBottleneck(c.At, c.Population, c.Duration); err != nil {
			return nil, err
		}
	}

	if err := sim.Initialise(); err != nil {
		return nil, err
	}
	return sim, nil
}
