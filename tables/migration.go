package tables

import "sort"

// MigrationTable is the column-oriented migration table (§3): physical
// left/right, node, source/dest population, time. Only populated when
// migration tracing is enabled (§4.2 event 3).
type MigrationTable struct {
	Left, Right []float64
	Node        []int32
	Source      []int32
	Dest        []int32
	Time        []float64
}

// NewMigrationTable creates an empty migration table.
func NewMigrationTable() *MigrationTable { return &MigrationTable{} }

// AddRow appends one migration record and returns its row id.
func (t *MigrationTable) AddRow(left, right float64, node, source, dest int32, time float64) int {
	t.Left = append(t.Left, left)
	t.Right = append(t.Right, right)
	t.Node = append(t.Node, node)
	t.Source = append(t.Source, source)
	t.Dest = append(t.Dest, dest)
	t.Time = append(t.Time, time)
	return len(t.Left) - 1
}

// NumRows returns the number of migration records.
func (t *MigrationTable) NumRows() int { return len(t.Left) }

// Reset empties the table.
func (t *MigrationTable) Reset() {
	t.Left = t.Left[:0]
	t.Right = t.Right[:0]
	t.Node = t.Node[:0]
	t.Source = t.Source[:0]
	t.Dest = t.Dest[:0]
	t.Time = t.Time[:0]
}

// Sort orders migrations by time, per §4.6. Stable.
func (t *MigrationTable) Sort() {
	idx := make([]int, t.NumRows())
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return t.Time[idx[a]] < t.Time[idx[b]] })

	left := make([]float64, len(idx))
	right := make([]float64, len(idx))
	node := make([]int32, len(idx))
	source := make([]int32, len(idx))
	dest := make([]int32, len(idx))
	tm := make([]float64, len(idx))
	for newPos, oldPos := range idx {
		left[newPos] = t.Left[oldPos]
		right[newPos] = t.Right[oldPos]
		node[newPos] = t.Node[oldPos]
		source[newPos] = t.Source[oldPos]
		dest[newPos] = t.Dest[oldPos]
		tm[newPos] = t.Time[oldPos]
	}
	t.Left, t.Right, t.Node, t.Source, t.Dest, t.Time = left, right, node, source, dest, tm
}

// Equals reports whether two migration tables hold identical rows in
// the same order.
func (t *MigrationTable) Equals(o *MigrationTable) bool {
	if t.NumRows() != o.NumRows() {
		return false
	}
	for i := range t.Left {
		if t.Left[i] != o.Left[i] || t.Right[i] != o.Right[i] || t.Node[i] != o.Node[i] ||
			t.Source[i] != o.Source[i] || t.Dest[i] != o.Dest[i] || t.Time[i] != o.Time[i] {
			return false
		}
	}
	return true
}
