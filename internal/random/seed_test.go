package random

import "testing"

func TestNewSeedNonZero(t *testing.T) {
	seen := make(map[uint64]bool)
	for i := 0; i < 16; i++ {
		s, err := NewSeed()
		if err != nil {
			t.Fatalf("NewSeed: %v", err)
		}
		if s == 0 {
			t.Fatal("expected nonzero seed")
		}
		seen[s] = true
	}
	if len(seen) < 2 {
		t.Fatalf("expected distinct seeds, got %d unique", len(seen))
	}
}
