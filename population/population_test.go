package population

import (
	"math"
	"testing"
)

func TestSizeAtConstant(t *testing.T) {
	p := New("p0", 100, 0, 0)
	if got := p.SizeAt(50); got != 100 {
		t.Fatalf("got %v, want 100", got)
	}
}

func TestSizeAtGrowth(t *testing.T) {
	p := New("p0", 100, 0.1, 0)
	got := p.SizeAt(10)
	want := 100 * math.Exp(-1.0)
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestAncestorSetRoundTrip(t *testing.T) {
	p := New("p0", 10, 0, 0)
	p.AddAncestor(1)
	p.AddAncestor(2)
	p.AddAncestor(1) // duplicate no-op
	if p.Count() != 2 {
		t.Fatalf("Count = %d, want 2", p.Count())
	}
	p.RemoveAncestor(1)
	if p.Count() != 1 {
		t.Fatalf("Count after remove = %d, want 1", p.Count())
	}
	if p.Ancestors()[0] != 2 {
		t.Fatalf("remaining ancestor = %d, want 2", p.Ancestors()[0])
	}
}

func TestCoalescenceRate(t *testing.T) {
	p := New("p0", 1, 0, 0)
	if got := p.CoalescenceRate(0); got != 0 {
		t.Fatalf("rate with <2 ancestors = %v, want 0", got)
	}
	p.AddAncestor(1)
	p.AddAncestor(2)
	p.AddAncestor(3)
	// n=3: 3*2/2 / 1 = 3
	if got := p.CoalescenceRate(0); got != 3 {
		t.Fatalf("rate = %v, want 3", got)
	}
}
