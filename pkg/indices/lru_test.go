package indices

import "testing"

func TestLRUOrderAndEviction(t *testing.T) {
	l := NewLRU()

	a := l.PushFront("a")
	_ = l.PushFront("b")
	c := l.PushFront("c")

	if l.Len() != 3 {
		t.Fatalf("Len() = %d; want 3", l.Len())
	}

	back, ok := l.Back()
	if !ok || back.Key() != "a" {
		t.Fatalf("Back() = %v, %v; want a", back, ok)
	}

	l.MoveToFront(a)
	back, ok = l.Back()
	if !ok || back.Key() != "b" {
		t.Fatalf("after MoveToFront(a), Back() = %v; want b", back.Key())
	}

	l.Remove(c)
	if l.Len() != 2 {
		t.Fatalf("Len() = %d; want 2", l.Len())
	}

	back, ok = l.Back()
	if !ok || back.Key() != "b" {
		t.Fatalf("Back() after removing c = %v; want b", back.Key())
	}
}

func TestLRUBackOnEmpty(t *testing.T) {
	l := NewLRU()
	if _, ok := l.Back(); ok {
		t.Fatalf("Back() on empty list should report false")
	}
}
