package toml

import (
	"strings"
	"testing"
)

// The fixtures below mirror config.ScenarioDTO's actual shape (nested
// model table, array-of-tables populations/samples, an inline array of
// arrays for the migration matrix) rather than generic TOML examples,
// since config is this codec's only caller.

type modelFixture struct {
	Kind      string  `toml:"kind"`
	BetaAlpha float64 `toml:"beta_alpha"`
}

type populationFixture struct {
	Name        string  `toml:"name"`
	InitialSize float64 `toml:"initial_size"`
}

type scenarioFixture struct {
	NumLoci         int64               `toml:"num_loci"`
	StoreMigrations bool                `toml:"store_migrations"`
	Model           modelFixture        `toml:"model"`
	Populations     []populationFixture `toml:"populations"`
	MigrationMatrix [][]float64         `toml:"migration_matrix"`
}

func TestMarshalScenarioScalarsAndTable(t *testing.T) {
	dto := scenarioFixture{
		NumLoci:         1000,
		StoreMigrations: true,
		Model:           modelFixture{Kind: "smc_prime", BetaAlpha: 1.5},
	}
	b, err := Marshal(dto)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	out := string(b)
	if !strings.Contains(out, "num_loci = 1000") {
		t.Errorf("missing num_loci scalar, got:\n%s", out)
	}
	if !strings.Contains(out, "store_migrations = true") {
		t.Errorf("missing store_migrations scalar, got:\n%s", out)
	}
	if !strings.Contains(out, "[model]") {
		t.Errorf("missing [model] table header, got:\n%s", out)
	}
	if !strings.Contains(out, `kind = "smc_prime"`) {
		t.Errorf("missing nested model.kind, got:\n%s", out)
	}
}

func TestMarshalScenarioArrayOfTables(t *testing.T) {
	dto := scenarioFixture{
		Populations: []populationFixture{
			{Name: "pop-0", InitialSize: 1.0},
			{Name: "pop-1", InitialSize: 2.5},
		},
	}
	b, err := Marshal(dto)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	out := string(b)
	if strings.Count(out, "[[populations]]") != 2 {
		t.Errorf("expected 2 [[populations]] headers, got:\n%s", out)
	}
	if !strings.Contains(out, `name = "pop-1"`) {
		t.Errorf("missing second population name, got:\n%s", out)
	}
}

func TestMarshalScenarioNestedInlineArray(t *testing.T) {
	dto := scenarioFixture{
		MigrationMatrix: [][]float64{{0, 0.5}, {0.5, 0}},
	}
	b, err := Marshal(dto)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	out := strings.TrimSpace(string(b))
	if !strings.Contains(out, "migration_matrix = [[0.0, 0.5], [0.5, 0.0]]") {
		t.Errorf("migration matrix did not encode as a nested inline array, got:\n%s", out)
	}
}

func TestScenarioRoundTrip(t *testing.T) {
	want := scenarioFixture{
		NumLoci:         500,
		StoreMigrations: false,
		Model:           modelFixture{Kind: "dirac", BetaAlpha: 0},
		Populations: []populationFixture{
			{Name: "pop-0", InitialSize: 1.0},
		},
		MigrationMatrix: [][]float64{{0, 0.1}, {0.1, 0}},
	}

	data, err := Marshal(want)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var got scenarioFixture
	if err := Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v\ndata:\n%s", err, string(data))
	}

	if got.NumLoci != want.NumLoci {
		t.Errorf("num_loci = %d, want %d", got.NumLoci, want.NumLoci)
	}
	if got.Model.Kind != want.Model.Kind {
		t.Errorf("model.kind = %q, want %q", got.Model.Kind, want.Model.Kind)
	}
	if len(got.Populations) != 1 || got.Populations[0].Name != "pop-0" {
		t.Errorf("populations did not round-trip: %+v", got.Populations)
	}
	if len(got.MigrationMatrix) != 2 || got.MigrationMatrix[0][1] != 0.1 {
		t.Errorf("migration matrix did not round-trip: %+v", got.MigrationMatrix)
	}
}

func TestMarshalOmitsZeroWithOmitemptyTag(t *testing.T) {
	type partial struct {
		Visible string  `toml:"visible"`
		Hidden  float64 `toml:"hidden,omitempty"`
	}
	b, err := Marshal(partial{Visible: "here"})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	out := string(b)
	if !strings.Contains(out, `visible = "here"`) {
		t.Errorf("visible field missing, got:\n%s", out)
	}
	if strings.Contains(out, "hidden") {
		t.Errorf("zero-valued omitempty field should be dropped, got:\n%s", out)
	}
}

func TestMarshalSkipsNilPointer(t *testing.T) {
	type withPointer struct {
		GrowthRate *float64 `toml:"growth_rate"`
	}
	b, err := Marshal(withPointer{GrowthRate: nil})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if len(b) > 0 {
		t.Errorf("expected no output for a nil *float64 field (ParametersChangeDTO's set-flag pattern relies on this), got: %s", string(b))
	}
}

func TestUnmarshalRejectsNonPointerTarget(t *testing.T) {
	var dto scenarioFixture
	if err := Decode(map[string]any{"num_loci": 10}, dto); err == nil {
		t.Fatalf("expected an error decoding into a non-pointer target")
	}
}
