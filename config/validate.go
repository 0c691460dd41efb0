package config

import (
	"fmt"

	"github.com/lixenwraith/coalsim/coalsimerr"
)

// validateScenario checks a DTO's internal consistency before it is
// either persisted or handed to Build, independent of whatever
// Simulator setter will eventually re-validate each field in isolation:
// a migration matrix whose dimensions don't match the population count,
// or a model kind no ModelKind parses, is a corrupt scenario regardless
// of whether it was just decoded from a file on disk or built in memory.
func validateScenario(dto ScenarioDTO) error {
	if dto.NumLoci < 0 {
		return coalsimerr.New(coalsimerr.CodeBadArgument, "num_loci must not be negative")
	}
	if dto.RecombinationRate < 0 {
		return coalsimerr.New(coalsimerr.CodeBadRate, "recombination_rate must not be negative")
	}
	if _, err := modelKind(dto.Model.Kind); err != nil {
		return err
	}

	if n := len(dto.Populations); n > 0 && len(dto.MigrationMatrix) > 0 {
		if len(dto.MigrationMatrix) != n {
			return coalsimerr.New(coalsimerr.CodeCorruptInput, fmt.Sprintf(
				"migration_matrix has %d rows, want %d (one per population)", len(dto.MigrationMatrix), n))
		}
		for i, row := range dto.MigrationMatrix {
			if len(row) != n {
				return coalsimerr.New(coalsimerr.CodeCorruptInput, fmt.Sprintf(
					"migration_matrix row %d has %d entries, want %d", i, len(row), n))
			}
		}
	}

	for i, s := range dto.Samples {
		if s.Population < 0 {
			return coalsimerr.New(coalsimerr.CodeBadArgument, fmt.Sprintf(
				"samples[%d].population must not be negative", i))
		}
	}

	return nil
}
