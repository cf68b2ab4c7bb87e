package entity

import (
	"time"

	"github.com/google/uuid"
)

// Showtime is one scheduled screening. Seat occupancy is tracked per showtime;
// two showtimes never share bookings.
type Showtime struct {
	Base
	MovieID  uuid.UUID `db:"movie_id"`
	ShowDate time.Time `db:"show_date"`
	ShowTime time.Time `db:"show_time"`
}
