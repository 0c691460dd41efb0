package omap

import "testing"

func TestSetGetDelete(t *testing.T) {
	m := New[int]()
	m.Set(10, 100)
	m.Set(5, 50)
	if v, ok := m.Get(10); !ok || v != 100 {
		t.Fatalf("Get(10) = %v, %v", v, ok)
	}
	m.Delete(10)
	if _, ok := m.Get(10); ok {
		t.Fatalf("expected 10 deleted")
	}
	if m.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", m.Len())
	}
}

func TestFloorCeiling(t *testing.T) {
	m := New[int]()
	m.Set(0, 2)
	m.Set(5, 1)
	m.Set(9, 0)

	if k, v, ok := m.Floor(4); !ok || k != 0 || v != 2 {
		t.Fatalf("Floor(4) = %d, %d, %v", k, v, ok)
	}
	if k, v, ok := m.Floor(5); !ok || k != 5 || v != 1 {
		t.Fatalf("Floor(5) = %d, %d, %v", k, v, ok)
	}
	if _, _, ok := m.Floor(-1); ok {
		t.Fatalf("Floor(-1) should not be found")
	}
	if k, _, ok := m.Ceiling(6); !ok || k != 9 {
		t.Fatalf("Ceiling(6) = %d, %v", k, ok)
	}
}

func TestKeysOrdering(t *testing.T) {
	m := New[int]()
	for _, k := range []int{7, 1, 4, 2} {
		m.Set(k, k*10)
	}
	keys := m.Keys()
	want := []int{1, 2, 4, 7}
	for i, k := range want {
		if keys[i] != k {
			t.Fatalf("keys[%d] = %d, want %d", i, keys[i], k)
		}
	}
}
