package tables

import "sort"

// MutationTable is the column-oriented mutation table (§3): site, node,
// derived state. All mutations at a site are stored contiguously.
//
// Per §9's open question on the mutation index/id duality, mutations
// carry no identity beyond their row index — there is no separate Id
// field.
type MutationTable struct {
	Site          []int32
	Node          []int32
	derivedState  packedBytes
}

// NewMutationTable creates an empty mutation table.
func NewMutationTable() *MutationTable { return &MutationTable{derivedState: newPackedBytes()} }

// AddRow appends one mutation and returns its row index (its only identity).
func (t *MutationTable) AddRow(site, node int32, derivedState []byte) int {
	t.Site = append(t.Site, site)
	t.Node = append(t.Node, node)
	t.derivedState.append(derivedState)
	return len(t.Site) - 1
}

// NumRows returns the number of mutations.
func (t *MutationTable) NumRows() int { return len(t.Site) }

// DerivedState returns the derived state bytes for row i.
func (t *MutationTable) DerivedState(i int) []byte { return t.derivedState.get(i) }

// Reset empties the table.
func (t *MutationTable) Reset() {
	t.Site = t.Site[:0]
	t.Node = t.Node[:0]
	t.derivedState.reset()
}

// Equals reports whether two mutation tables hold identical rows, in order.
func (t *MutationTable) Equals(o *MutationTable) bool {
	if t.NumRows() != o.NumRows() {
		return false
	}
	for i := range t.Site {
		if t.Site[i] != o.Site[i] || t.Node[i] != o.Node[i] {
			return false
		}
	}
	return t.derivedState.equals(&o.derivedState)
}

// RemapSites applies an old-row-id -> new-row-id site mapping (produced
// by SiteTable.Sort) to every mutation's Site reference, then orders
// mutations so all mutations at a site are contiguous, per §3.
func (t *MutationTable) RemapSites(oldToNew []int) {
	for i, s := range t.Site {
		t.Site[i] = int32(oldToNew[s])
	}

	idx := make([]int, t.NumRows())
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return t.Site[idx[a]] < t.Site[idx[b]] })

	site := make([]int32, len(idx))
	node := make([]int32, len(idx))
	packed := newPackedBytes()
	for newPos, oldPos := range idx {
		site[newPos] = t.Site[oldPos]
		node[newPos] = t.Node[oldPos]
		packed.append(t.derivedState.get(oldPos))
	}
	t.Site, t.Node, t.derivedState = site, node, packed
}
