// Package tables implements §3/§4.6's table store: five column-oriented
// tables (nodes, edges, migrations, sites, mutations) supporting
// append/set/reset/equality, plus canonicalising sort and squash — the
// in-memory representation exchanged between the event engine, the
// simplifier, and the tree iterators.
//
// Grounded on the teacher's genetic/persistence/dto.go columnar
// conversion pattern and genetic/streaming.go's growth-by-increment
// buffer discipline, generalized from a single population DTO to the
// five-table tree-sequence schema.
package tables

// Collection is the canonical in-memory tree sequence: the five tables
// plus the sequence's physical length.
type Collection struct {
	SequenceLength float64
	Nodes          *NodeTable
	Edges          *EdgeTable
	Migrations     *MigrationTable
	Sites          *SiteTable
	Mutations      *MutationTable
}

// NewCollection creates an empty table collection for a sequence of the
// given physical length.
func NewCollection(sequenceLength float64) *Collection {
	return &Collection{
		SequenceLength: sequenceLength,
		Nodes:          NewNodeTable(),
		Edges:          NewEdgeTable(),
		Migrations:     NewMigrationTable(),
		Sites:          NewSiteTable(),
		Mutations:      NewMutationTable(),
	}
}

// Reset empties every table but keeps SequenceLength, per §3's "immutable
// until the whole simulation is reset".
func (c *Collection) Reset() {
	c.Nodes.Reset()
	c.Edges.Reset()
	c.Migrations.Reset()
	c.Sites.Reset()
	c.Mutations.Reset()
}

// Sort canonicalises edges (by parent time/parent/child/left), migrations
// (by time), and sites+mutations (by position, co-sorted), per §4.6.
func (c *Collection) Sort() {
	c.Edges.Sort(c.Nodes.Time)
	c.Migrations.Sort()
	oldToNew := c.Sites.Sort()
	c.Mutations.RemapSites(oldToNew)
}

// Squash merges adjacent-in-genome identical (parent, child) edges.
// Requires the edge table to already be Sort-ed.
func (c *Collection) Squash() {
	c.Edges.Squash()
}

// Equals reports whether two collections hold identical tables across
// all five tables — topology (nodes, edges, migrations) and the
// variant data layered on top of it (sites, mutations) alike, per §8's
// round-trip laws applying to the whole tree sequence.
func (c *Collection) Equals(o *Collection) bool {
	if c.SequenceLength != o.SequenceLength {
		return false
	}
	return c.Nodes.Equals(o.Nodes) && c.Edges.Equals(o.Edges) && c.Migrations.Equals(o.Migrations) &&
		c.Sites.Equals(o.Sites) && c.Mutations.Equals(o.Mutations)
}
