package coalescent

import (
	"github.com/lixenwraith/coalsim/coalsimerr"
	"github.com/lixenwraith/coalsim/tables"
)

// RecombinationMap is the external collaborator §1/§6 describe as "a
// bijection between physical and genetic coordinates", consumed only
// through this narrow interface.
type RecombinationMap interface {
	// GeneticToPhysical maps a genetic locus in [0, num_loci) to its
	// physical coordinate.
	GeneticToPhysical(locus int64) float64
	// PhysicalLength returns the sequence's total physical length.
	PhysicalLength() float64
}

// IdentityMap is the trivial RecombinationMap that treats genetic loci
// as physical coordinates one-to-one, for scenarios with no external
// coordinate system (e.g. the demo binary, or scenario #2's "every
// emitted edge has 0 <= l < r <= 100" check over loci directly).
type IdentityMap struct {
	NumLoci int64
}

func (m IdentityMap) GeneticToPhysical(locus int64) float64 { return float64(locus) }
func (m IdentityMap) PhysicalLength() float64               { return float64(m.NumLoci) }

// PopulateTables emits the simulation's result into the caller-owned
// tables, per §6's "populate_tables(Ne, recomb_map, node_table,
// edge_table, migration_table) emits the result using the recombination
// map to convert genetic to physical coordinates, and scales times by
// the reference population size Ne." The caller owns nodeTable,
// edgeTable, and migrationTable (§5); this only appends to them.
func (s *Simulator) PopulateTables(ne float64, recombMap RecombinationMap, nodeTable *tables.NodeTable, edgeTable *tables.EdgeTable, migrationTable *tables.MigrationTable) error {
	if !s.initialized {
		return coalsimerr.New(coalsimerr.CodeBadArgument, "populate_tables called before initialise")
	}
	if recombMap == nil {
		return coalsimerr.New(coalsimerr.CodeBadArgument, "populate_tables requires a recombination map")
	}
	if ne <= 0 {
		return coalsimerr.New(coalsimerr.CodeBadArgument, "Ne must be positive")
	}

	for i := 0; i < s.internalNodes.NumRows(); i++ {
		nodeTable.AddRow(s.internalNodes.Flags[i], s.internalNodes.Time[i]*ne, s.internalNodes.Population[i], s.internalNodes.Name(i))
	}
	for i := 0; i < s.internalEdges.NumRows(); i++ {
		left := recombMap.GeneticToPhysical(int64(s.internalEdges.Left[i]))
		right := recombMap.GeneticToPhysical(int64(s.internalEdges.Right[i]))
		edgeTable.AddRow(left, right, s.internalEdges.Parent[i], s.internalEdges.Child[i])
	}
	if s.storeMigrations && migrationTable != nil {
		for i := 0; i < s.internalMigrations.NumRows(); i++ {
			left := recombMap.GeneticToPhysical(int64(s.internalMigrations.Left[i]))
			right := recombMap.GeneticToPhysical(int64(s.internalMigrations.Right[i]))
			migrationTable.AddRow(left, right, s.internalMigrations.Node[i], s.internalMigrations.Source[i], s.internalMigrations.Dest[i], s.internalMigrations.Time[i]*ne)
		}
	}
	return nil
}
