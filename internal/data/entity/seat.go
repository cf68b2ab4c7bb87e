package entity

// Seat is catalog reference data: seeded once, never deleted. Only the
// restriction tag may change after creation.
type Seat struct {
	Base
	Label      string  `db:"label"`      // A1, K10, etc.
	Restricted *string `db:"restricted"` // junior, senior, officer; nil = unrestricted
}
