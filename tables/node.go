package tables

// NodeFlagSample is bit 0 of a node's flags: the node is a sample.
const NodeFlagSample uint32 = 1 << 0

// NullPopulation is the "population id or null" sentinel (§3).
const NullPopulation int32 = -1

// NodeTable is the column-oriented node table (§3/§4.6): flags, time,
// population, name. Growth and reset follow the "monotone growth ...
// shrink only on reset" discipline of §4.6.
type NodeTable struct {
	Flags      []uint32
	Time       []float64
	Population []int32
	name       packedBytes
}

// NewNodeTable creates an empty node table.
func NewNodeTable() *NodeTable {
	return &NodeTable{name: newPackedBytes()}
}

// AddRow appends one node and returns its row id.
func (t *NodeTable) AddRow(flags uint32, time float64, population int32, name []byte) int {
	t.Flags = append(t.Flags, flags)
	t.Time = append(t.Time, time)
	t.Population = append(t.Population, population)
	t.name.append(name)
	return len(t.Flags) - 1
}

// NumRows returns the number of nodes.
func (t *NodeTable) NumRows() int { return len(t.Flags) }

// Name returns the opaque name bytes for row i.
func (t *NodeTable) Name(i int) []byte { return t.name.get(i) }

// IsSample reports whether row i has the sample flag set.
func (t *NodeTable) IsSample(i int) bool { return t.Flags[i]&NodeFlagSample != 0 }

// Reset empties the table.
func (t *NodeTable) Reset() {
	t.Flags = t.Flags[:0]
	t.Time = t.Time[:0]
	t.Population = t.Population[:0]
	t.name.reset()
}

// SetColumns replaces the table's contents wholesale.
func (t *NodeTable) SetColumns(flags []uint32, time []float64, population []int32) {
	t.Reset()
	t.Flags = append(t.Flags, flags...)
	t.Time = append(t.Time, time...)
	t.Population = append(t.Population, population...)
	for range flags {
		t.name.append(nil)
	}
}

// Equals reports whether two node tables hold identical rows.
func (t *NodeTable) Equals(o *NodeTable) bool {
	if t.NumRows() != o.NumRows() {
		return false
	}
	for i := range t.Flags {
		if t.Flags[i] != o.Flags[i] || t.Time[i] != o.Time[i] || t.Population[i] != o.Population[i] {
			return false
		}
	}
	return t.name.equals(&o.name)
}
