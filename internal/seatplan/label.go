// Package seatplan holds the seat labeling, ordering and role rules shared by
// the booking and reporting services. It is deliberately free of storage and
// transport concerns so the rules can be tested in isolation.
package seatplan

import (
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Seat pairs a seat id with its display label ("A1", "K10", ...).
type Seat struct {
	ID    uuid.UUID
	Label string
}

// ParseLabel splits a label into its alphabetic row part and numeric column
// part. "B12" yields ("B", 12, true). Labels that do not match the
// row-letters-then-column-number shape report ok=false.
func ParseLabel(label string) (row string, col int, ok bool) {
	s := strings.ToUpper(strings.TrimSpace(label))
	i := 0
	for i < len(s) && s[i] >= 'A' && s[i] <= 'Z' {
		i++
	}
	if i == 0 || i == len(s) {
		return "", 0, false
	}
	for j := i; j < len(s); j++ {
		if s[j] < '0' || s[j] > '9' {
			return "", 0, false
		}
		col = col*10 + int(s[j]-'0')
	}
	return s[:i], col, true
}

// labelKey is the sort key for one label. Well-formed labels order by row then
// numeric column. Malformed labels keep the raw uppercased label as the row
// key with column 0, which places them after every well-formed label and
// orders them lexicographically among themselves.
type labelKey struct {
	row       string
	col       int
	malformed bool
}

func keyOf(label string) labelKey {
	row, col, ok := ParseLabel(label)
	if !ok {
		return labelKey{row: strings.ToUpper(strings.TrimSpace(label)), malformed: true}
	}
	return labelKey{row: row, col: col}
}

func (a labelKey) less(b labelKey) bool {
	if a.malformed != b.malformed {
		return b.malformed
	}
	if a.row != b.row {
		return a.row < b.row
	}
	return a.col < b.col
}

// Order returns the seats sorted by label: row-lexicographic, then
// column-numeric, malformed labels last. The input slice is not modified.
func Order(seats []Seat) []Seat {
	out := make([]Seat, len(seats))
	copy(out, seats)
	sort.SliceStable(out, func(i, j int) bool {
		return keyOf(out[i].Label).less(keyOf(out[j].Label))
	})
	return out
}
