package seatplan

import "github.com/google/uuid"

// LocalIndex maps every seat id to a dense 1..N ordinal assigned by walking
// the seats in label order. The mapping is recomputed from the given seat set
// on every call and depends only on its contents, so repeated calls against an
// unchanged catalog yield identical numbers.
func LocalIndex(seats []Seat) map[uuid.UUID]int {
	index := make(map[uuid.UUID]int, len(seats))
	for i, s := range Order(seats) {
		index[s.ID] = i + 1
	}
	return index
}
