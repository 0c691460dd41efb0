package segment

import (
	"testing"

	"github.com/lixenwraith/coalsim/arena"
)

func TestNewChainAndEach(t *testing.T) {
	p := NewPool(8, 0)
	c, ok := p.NewChain(0, 100, 1, 0)
	if !ok {
		t.Fatalf("alloc failed")
	}
	count := 0
	p.Each(c, func(id arena.ID, s *Segment) {
		count++
	})
	if count != 1 {
		t.Fatalf("count = %d, want 1", count)
	}
}

func TestAppendChain(t *testing.T) {
	p := NewPool(8, 0)
	c, _ := p.NewChain(0, 10, 1, 0)
	c, ok := p.Append(c, 20, 30, 1, 0)
	if !ok {
		t.Fatalf("append failed")
	}
	if c.Len != 2 {
		t.Fatalf("Len = %d, want 2", c.Len)
	}
	left, right := p.Span(c)
	if left != 0 || right != 30 {
		t.Fatalf("span = [%d,%d), want [0,30)", left, right)
	}
}

func TestSplitAtBoundary(t *testing.T) {
	p := NewPool(8, 0)
	c, _ := p.NewChain(0, 10, 1, 0)
	c, _ = p.Append(c, 10, 20, 1, 0)

	left, right, ok := p.SplitAt(c, 10)
	if !ok {
		t.Fatalf("split failed")
	}
	l0, l1 := p.Span(left)
	r0, r1 := p.Span(right)
	if l0 != 0 || l1 != 10 {
		t.Fatalf("left span = [%d,%d)", l0, l1)
	}
	if r0 != 10 || r1 != 20 {
		t.Fatalf("right span = [%d,%d)", r0, r1)
	}
}

func TestSplitAtInterior(t *testing.T) {
	p := NewPool(8, 0)
	c, _ := p.NewChain(0, 20, 1, 0)

	left, right, ok := p.SplitAt(c, 7)
	if !ok {
		t.Fatalf("split failed")
	}
	l0, l1 := p.Span(left)
	r0, r1 := p.Span(right)
	if l0 != 0 || l1 != 7 {
		t.Fatalf("left span = [%d,%d), want [0,7)", l0, l1)
	}
	if r0 != 7 || r1 != 20 {
		t.Fatalf("right span = [%d,%d), want [7,20)", r0, r1)
	}
}

func TestFreeChain(t *testing.T) {
	p := NewPool(8, 0)
	c, _ := p.NewChain(0, 10, 1, 0)
	c, _ = p.Append(c, 10, 20, 1, 0)
	before := p.LiveCount()
	p.FreeChain(c)
	if p.LiveCount() != before-2 {
		t.Fatalf("LiveCount after free = %d, want %d", p.LiveCount(), before-2)
	}
}
