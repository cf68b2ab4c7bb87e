package entity

import "github.com/google/uuid"

// BookingSeat associates one seat with one booking. ShowtimeID is denormalized
// onto the row so the store can enforce UNIQUE (showtime_id, seat_id), which
// closes the check-then-insert race between concurrent bookings. Position
// preserves the order seats were requested in.
type BookingSeat struct {
	BaseSimple
	BookingID  uuid.UUID `db:"booking_id"`
	ShowtimeID uuid.UUID `db:"showtime_id"`
	SeatID     uuid.UUID `db:"seat_id"`
	Position   int       `db:"position"`
}
