package tables

import "sort"

// SiteTable is the column-oriented site table (§3): physical position,
// ancestral state. Sites are sorted strictly ascending by position.
type SiteTable struct {
	Position       []float64
	ancestralState packedBytes
}

// NewSiteTable creates an empty site table.
func NewSiteTable() *SiteTable { return &SiteTable{ancestralState: newPackedBytes()} }

// AddRow appends one site and returns its row id.
func (t *SiteTable) AddRow(position float64, ancestralState []byte) int {
	t.Position = append(t.Position, position)
	t.ancestralState.append(ancestralState)
	return len(t.Position) - 1
}

// NumRows returns the number of sites.
func (t *SiteTable) NumRows() int { return len(t.Position) }

// AncestralState returns the ancestral state bytes for row i.
func (t *SiteTable) AncestralState(i int) []byte { return t.ancestralState.get(i) }

// Reset empties the table.
func (t *SiteTable) Reset() {
	t.Position = t.Position[:0]
	t.ancestralState.reset()
}

// Equals reports whether two site tables hold identical rows, in order.
func (t *SiteTable) Equals(o *SiteTable) bool {
	if t.NumRows() != o.NumRows() {
		return false
	}
	for i := range t.Position {
		if t.Position[i] != o.Position[i] {
			return false
		}
	}
	return t.ancestralState.equals(&o.ancestralState)
}

// Sort orders sites strictly ascending by position and returns the
// old-row-id -> new-row-id mapping, so callers (tables.Collection.Sort)
// can co-sort the mutation table's Site references. Sites must already
// be unique in position.
func (t *SiteTable) Sort() []int {
	idx := make([]int, t.NumRows()) // idx[newPos] = oldPos
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return t.Position[idx[a]] < t.Position[idx[b]] })

	pos := make([]float64, len(idx))
	packed := newPackedBytes()
	for _, oldPos := range idx {
		packed.append(t.ancestralState.get(oldPos))
	}
	for newPos, oldPos := range idx {
		pos[newPos] = t.Position[oldPos]
	}
	t.Position = pos
	t.ancestralState = packed

	oldToNew := make([]int, len(idx))
	for newPos, oldPos := range idx {
		oldToNew[oldPos] = newPos
	}
	return oldToNew
}
