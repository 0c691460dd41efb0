// Package segment implements §3's ancestry segment model: a doubly
// linked list of genetic-coordinate intervals per extant ancestor, each
// labelled with a node id and a population id.
//
// Segments live in an arena.Arena and are addressed by arena.ID rather
// than pointer, per §9's "pointer-rich segment chains ... a safe
// re-implementation should favour an arena + integer-index encoding
// (segments live in a slab, prev/next are indices, zero is sentinel)".
package segment

import "github.com/lixenwraith/coalsim/arena"

// NodeID identifies a node in the eventual tables.NodeTable.
type NodeID int32

// PopulationID identifies a population.
type PopulationID int32

// Segment is a half-open genetic interval [Left, Right) carried by one
// lineage, linked into a chain via Prev/Next arena ids (0 = no link).
type Segment struct {
	Left, Right int64
	Node        NodeID
	Population  PopulationID
	Prev, Next  arena.ID
}

// Pool is the arena of segments shared by the whole simulation.
type Pool struct {
	a *arena.Arena[Segment]
}

// NewPool creates a segment pool with the given block growth increment
// and optional byte budget (0 = unbounded), per §5's max_memory.
func NewPool(growBy int, maxBytes int64) *Pool {
	return &Pool{a: arena.New[Segment](growBy, maxBytes)}
}

// Get returns a pointer to the segment at id, or nil if unallocated.
func (p *Pool) Get(id arena.ID) *Segment {
	return p.a.Get(id)
}

// alloc is the raw allocation primitive; ok is false on budget overflow.
func (p *Pool) alloc(left, right int64, node NodeID, pop PopulationID) (arena.ID, bool) {
	id, seg, ok := p.a.Alloc()
	if !ok {
		return 0, false
	}
	*seg = Segment{Left: left, Right: right, Node: node, Population: pop}
	return id, true
}

// Free releases a single segment back to the pool.
func (p *Pool) Free(id arena.ID) {
	p.a.Free(id)
}

// LiveCount reports the number of currently allocated segments.
func (p *Pool) LiveCount() int { return p.a.LiveCount() }

// Chain is a head/tail pair over a segment linked list. The zero Chain
// (Head == 0) represents an extinct lineage (fully coalesced away).
type Chain struct {
	Head, Tail arena.ID
	Len        int
}

// NewChain allocates a single full-span segment and wraps it in a
// one-element chain — the initial state for a sample entering the
// simulation (§3 "segments are allocated when a sample enters").
func (p *Pool) NewChain(left, right int64, node NodeID, pop PopulationID) (Chain, bool) {
	id, ok := p.alloc(left, right, node, pop)
	if !ok {
		return Chain{}, false
	}
	return Chain{Head: id, Tail: id, Len: 1}, true
}

// Append links a freshly allocated segment onto the tail of c.
func (p *Pool) Append(c Chain, left, right int64, node NodeID, pop PopulationID) (Chain, bool) {
	id, ok := p.alloc(left, right, node, pop)
	if !ok {
		return c, false
	}
	if c.Head == 0 {
		return Chain{Head: id, Tail: id, Len: 1}, true
	}
	tail := p.Get(c.Tail)
	tail.Next = id
	p.Get(id).Prev = c.Tail
	return Chain{Head: c.Head, Tail: id, Len: c.Len + 1}, true
}

// Each calls fn for every segment in c, head to tail, in increasing
// Left order (§3's chain invariant).
func (p *Pool) Each(c Chain, fn func(id arena.ID, s *Segment)) {
	for id := c.Head; id != 0; {
		s := p.Get(id)
		next := s.Next
		fn(id, s)
		id = next
	}
}

// FreeChain releases every segment in c back to the pool (used when a chain
// is merged away, §3's segment lifecycle).
func (p *Pool) FreeChain(c Chain) {
	for id := c.Head; id != 0; {
		s := p.Get(id)
		next := s.Next
		p.Free(id)
		id = next
	}
}

// SplitAt splits c at genetic position pos into a left chain covering
// [*, pos) and a right chain covering [pos, *), used by recombination
// (§4.2 event 2: "split the containing chain at the genetic position,
// promote the tail to a new lineage"). pos must fall strictly inside
// some segment's interval, or exactly on a segment boundary. Reports
// ok=false if pos is outside c's span or allocation fails.
func (p *Pool) SplitAt(c Chain, pos int64) (left, right Chain, ok bool) {
	if c.Head == 0 {
		return Chain{}, Chain{}, false
	}

	var prevID arena.ID
	for id := c.Head; id != 0; {
		s := p.Get(id)
		next := s.Next

		if pos <= s.Left {
			// Boundary split: everything from id onward moves right.
			if prevID == 0 {
				return Chain{}, Chain{}, false // pos at or before chain start
			}
			p.Get(prevID).Next = 0
			s.Prev = 0
			return Chain{Head: c.Head, Tail: prevID, Len: countLen(p, c.Head)},
				Chain{Head: id, Tail: c.Tail, Len: countLen(p, id)}, true
		}

		if pos < s.Right {
			// Interior split: carve s into [s.Left,pos) and [pos,s.Right).
			newID, allocOK := p.alloc(pos, s.Right, s.Node, s.Population)
			if !allocOK {
				return Chain{}, Chain{}, false
			}
			newSeg := p.Get(newID)
			newSeg.Next = s.Next
			if s.Next != 0 {
				p.Get(s.Next).Prev = newID
			}
			s.Right = pos
			s.Next = 0
			newSeg.Prev = 0

			leftTail := id
			rightHead := newID
			rightTail := c.Tail
			if rightTail == id {
				rightTail = newID
			}
			return Chain{Head: c.Head, Tail: leftTail, Len: countLen(p, c.Head)},
				Chain{Head: rightHead, Tail: rightTail, Len: countLen(p, rightHead)}, true
		}

		prevID = id
		id = next
	}

	return Chain{}, Chain{}, false // pos >= chain's total span
}

func countLen(p *Pool, head arena.ID) int {
	n := 0
	for id := head; id != 0; {
		s := p.Get(id)
		n++
		id = s.Next
	}
	return n
}

// Span returns the [left, right) genetic span covered by c: the head's
// Left and the tail's Right.
func (p *Pool) Span(c Chain) (left, right int64) {
	if c.Head == 0 {
		return 0, 0
	}
	return p.Get(c.Head).Left, p.Get(c.Tail).Right
}
