// Package config is the scenario load/save layer: a TOML DTO mirroring
// a Simulator's construction-phase surface, and a Build function that
// replays it through the same setter/event calls a programmatic caller
// would use.
//
// Grounded on the teacher's genetic/persistence package: dto.go's flat,
// toml-tagged conversion structs and manager.go's Save/Load/Exists/
// FilePath shape over the teacher's own toml codec.
package config

// ScenarioDTO is the serializable form of everything a Simulator can be
// configured with before Initialise.
type ScenarioDTO struct {
	NumLoci                  int64                        `toml:"num_loci"`
	RecombinationRate        float64                      `toml:"recombination_rate"`
	BlockSize                int                          `toml:"block_size"`
	MaxMemoryBytes           int64                        `toml:"max_memory_bytes"`
	StoreMigrations          bool                         `toml:"store_migrations"`
	Model                    ModelDTO                     `toml:"model"`
	Populations              []PopulationDTO              `toml:"populations"`
	MigrationMatrix          [][]float64                  `toml:"migration_matrix"`
	Samples                  []SampleDTO                  `toml:"samples"`
	ParametersChanges        []ParametersChangeDTO        `toml:"parameters_changes"`
	MigrationRateChanges     []MigrationRateChangeDTO     `toml:"migration_rate_changes"`
	MassMigrations           []MassMigrationDTO           `toml:"mass_migrations"`
	SimpleBottlenecks        []SimpleBottleneckDTO        `toml:"simple_bottlenecks"`
	InstantaneousBottlenecks []InstantaneousBottleneckDTO `toml:"instantaneous_bottlenecks"`
}

// ModelDTO is the serializable common-ancestor model selection. Kind is
// one of "hudson", "smc", "smc_prime", "beta", "dirac"; an empty Kind
// defaults to "hudson".
type ModelDTO struct {
	Kind           string  `toml:"kind"`
	BetaAlpha      float64 `toml:"beta_alpha"`
	BetaTruncation float64 `toml:"beta_truncation"`
	DiracPsi       float64 `toml:"dirac_psi"`
	DiracC         float64 `toml:"dirac_c"`
}

// PopulationDTO is one population's demographic configuration.
type PopulationDTO struct {
	Name        string  `toml:"name"`
	InitialSize float64 `toml:"initial_size"`
	GrowthRate  float64 `toml:"growth_rate"`
	StartTime   float64 `toml:"start_time"`
}

// SampleDTO is one initial sample's population and time.
type SampleDTO struct {
	Population int     `toml:"population"`
	Time       float64 `toml:"time"`
}

// ParametersChangeDTO mirrors AddPopulationParametersChange.
// InitialSize and GrowthRate are only applied when SetInitialSize or
// SetGrowthRate, respectively, is true, since the underlying call takes *float64 to
// distinguish "leave unchanged" from "set to zero".
type ParametersChangeDTO struct {
	At             float64 `toml:"at"`
	Population     int     `toml:"population"`
	InitialSize    float64 `toml:"initial_size"`
	SetInitialSize bool    `toml:"set_initial_size"`
	GrowthRate     float64 `toml:"growth_rate"`
	SetGrowthRate  bool    `toml:"set_growth_rate"`
	StartTime      float64 `toml:"start_time"`
}

// MigrationRateChangeDTO mirrors AddMigrationRateChange.
type MigrationRateChangeDTO struct {
	At   float64 `toml:"at"`
	From int     `toml:"from"`
	To   int     `toml:"to"`
	Rate float64 `toml:"rate"`
}

// MassMigrationDTO mirrors AddMassMigration.
type MassMigrationDTO struct {
	At         float64 `toml:"at"`
	Source     int     `toml:"source"`
	Dest       int     `toml:"dest"`
	Proportion float64 `toml:"proportion"`
}

// SimpleBottleneckDTO mirrors AddSimpleBottleneck.
type SimpleBottleneckDTO struct {
	At         float64 `toml:"at"`
	Population int     `toml:"population"`
	Proportion float64 `toml:"proportion"`
}

// InstantaneousBottleneckDTO mirrors AddInstantaneousBottleneck.
type InstantaneousBottleneckDTO struct {
	At         float64 `toml:"at"`
	Population int     `toml:"population"`
	Duration   float64 `toml:"duration"`
}
