// Package omap provides the ordered-key index §3 calls for: a balanced
// ordered map keyed by integer genome position, used both for the
// breakpoint index (positions where a recombination has occurred) and
// the overlap-count index (a step function from position to ancestral
// multiplicity).
//
// Backed by github.com/emirpasic/gods/v2's red-black tree, an ordered
// ecosystem container present (but unexercised) in the retrieved pack's
// o9nn-ecco9 module — adopted here for the concern it names: an ordered
// map with O(log n) insert/lookup and in-order traversal for successor
// queries.
package omap

import (
	"cmp"

	"github.com/emirpasic/gods/v2/trees/redblacktree"
)

// Map is an ordered map from a genome position to a value V, with
// successor/predecessor lookups for step-function queries.
type Map[V any] struct {
	tree *redblacktree.Tree[int, V]
}

// New creates an empty ordered map over int keys.
func New[V any]() *Map[V] {
	return &Map[V]{tree: redblacktree.NewWith[int, V](cmp.Compare[int])}
}

// Set inserts or overwrites the value at key.
func (m *Map[V]) Set(key int, value V) {
	m.tree.Put(key, value)
}

// Get returns the value at key and whether it was present.
func (m *Map[V]) Get(key int) (V, bool) {
	return m.tree.Get(key)
}

// Has reports whether key is present.
func (m *Map[V]) Has(key int) bool {
	_, ok := m.tree.Get(key)
	return ok
}

// Delete removes key, if present.
func (m *Map[V]) Delete(key int) {
	m.tree.Remove(key)
}

// Len returns the number of entries.
func (m *Map[V]) Len() int {
	return m.tree.Size()
}

// Keys returns all keys in ascending order.
func (m *Map[V]) Keys() []int {
	return m.tree.Keys()
}

// Floor returns the largest key <= pos and its value, if any key is <= pos.
// This is the step-function lookup the overlap-count index needs: "the
// count of distinct ancestral lineages whose segment chain covers
// positions >= that key and < the next key".
func (m *Map[V]) Floor(pos int) (key int, value V, ok bool) {
	node, found := m.tree.Floor(pos)
	if !found {
		var zero V
		return 0, zero, false
	}
	return node.Key, node.Value, true
}

// Ceiling returns the smallest key >= pos and its value, if any.
func (m *Map[V]) Ceiling(pos int) (key int, value V, ok bool) {
	node, found := m.tree.Ceiling(pos)
	if !found {
		var zero V
		return 0, zero, false
	}
	return node.Key, node.Value, true
}

// Each calls fn for every entry in ascending key order.
func (m *Map[V]) Each(fn func(key int, value V)) {
	keys := m.tree.Keys()
	for _, k := range keys {
		v, _ := m.tree.Get(k)
		fn(k, v)
	}
}
