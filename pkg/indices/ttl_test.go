package indices

import "testing"

func TestTTLAscendExpiredOrderAndCutoff(t *testing.T) {
	tt := NewTTL()

	tt.Insert("a", 100)
	tt.Insert("b", 50)
	tt.Insert("c", 150)
	tt.Insert("d", 50) // same expiry as b, ordered by key after it

	var got []string
	tt.AscendExpired(100, func(item *TTLItem) {
		got = append(got, item.Key)
	})

	want := []string{"b", "d", "a"}
	if len(got) != len(want) {
		t.Fatalf("AscendExpired visited %v; want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("AscendExpired visited %v; want %v", got, want)
		}
	}
}

func TestTTLAscendExpiredStopsAtFirstUnexpired(t *testing.T) {
	tt := NewTTL()

	tt.Insert("a", 10)
	tt.Insert("b", 1000)

	visited := 0
	tt.AscendExpired(10, func(item *TTLItem) {
		visited++
	})

	if visited != 1 {
		t.Fatalf("AscendExpired visited %d items; want 1", visited)
	}
}

func TestTTLRemove(t *testing.T) {
	tt := NewTTL()

	item := tt.Insert("a", 10)
	if tt.Len() != 1 {
		t.Fatalf("Len() = %d; want 1", tt.Len())
	}

	tt.Remove(item)
	if tt.Len() != 0 {
		t.Fatalf("Len() = %d; want 0", tt.Len())
	}

	visited := 0
	tt.AscendExpired(1000, func(item *TTLItem) {
		visited++
	})
	if visited != 0 {
		t.Fatalf("AscendExpired after Remove visited %d items; want 0", visited)
	}
}

func TestTTLInsertReplacesExistingHandleForSameKeyAndExpiry(t *testing.T) {
	tt := NewTTL()

	tt.Insert("a", 10)
	tt.Insert("a", 10) // duplicate (key, expiresAt) should not double-count

	if tt.Len() != 1 {
		t.Fatalf("Len() = %d; want 1", tt.Len())
	}
}
