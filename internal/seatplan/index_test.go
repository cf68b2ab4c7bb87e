package seatplan

import (
	"testing"

	"github.com/google/uuid"
)

func TestLocalIndexIsDenseBijection(t *testing.T) {
	seats := seatsFromLabels("C1", "A10", "A2", "B5", "A1")
	index := LocalIndex(seats)

	if len(index) != len(seats) {
		t.Fatalf("index has %d entries, want %d", len(index), len(seats))
	}
	seen := make(map[int]bool)
	for _, n := range index {
		if n < 1 || n > len(seats) {
			t.Fatalf("ordinal %d out of range 1..%d", n, len(seats))
		}
		if seen[n] {
			t.Fatalf("ordinal %d assigned twice", n)
		}
		seen[n] = true
	}
}

func TestLocalIndexFollowsLabelOrder(t *testing.T) {
	a1 := Seat{ID: uuid.New(), Label: "A1"}
	a9 := Seat{ID: uuid.New(), Label: "A9"}
	a10 := Seat{ID: uuid.New(), Label: "A10"}
	b1 := Seat{ID: uuid.New(), Label: "B1"}

	// Insertion order must not matter.
	index := LocalIndex([]Seat{b1, a10, a1, a9})

	if index[a1.ID] != 1 || index[a9.ID] != 2 || index[a10.ID] != 3 || index[b1.ID] != 4 {
		t.Fatalf("unexpected ordinals: A1=%d A9=%d A10=%d B1=%d",
			index[a1.ID], index[a9.ID], index[a10.ID], index[b1.ID])
	}
}

func TestLocalIndexStableAcrossCalls(t *testing.T) {
	seats := seatsFromLabels("D4", "A1", "M10", "G7", "bad label")

	first := LocalIndex(seats)
	second := LocalIndex(seats)

	for id, n := range first {
		if second[id] != n {
			t.Fatalf("ordinal for %s changed between calls: %d then %d", id, n, second[id])
		}
	}
}

func TestLocalIndexAddingLaterSeatKeepsEarlierOrder(t *testing.T) {
	a1 := Seat{ID: uuid.New(), Label: "A1"}
	b1 := Seat{ID: uuid.New(), Label: "B1"}
	before := LocalIndex([]Seat{a1, b1})

	c1 := Seat{ID: uuid.New(), Label: "C1"}
	after := LocalIndex([]Seat{a1, b1, c1})

	if after[a1.ID] != before[a1.ID] || after[b1.ID] != before[b1.ID] {
		t.Fatal("adding a later-sorting seat shifted earlier ordinals")
	}
	if after[c1.ID] != 3 {
		t.Fatalf("new seat ordinal = %d, want 3", after[c1.ID])
	}
}
