package response

import "time"

type BookingResponse struct {
	ID            string    `json:"id"`
	ShowtimeID    string    `json:"showtime_id"`
	MovieTitle    string    `json:"movie_title"`
	ShowDate      string    `json:"show_date"`
	ShowTime      string    `json:"show_time"`
	SeatLabels    []string  `json:"seat_labels"`
	ExtraGuests   int       `json:"extra_guests"`
	PaymentStatus string    `json:"payment_status"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// DashboardResponse is the landing view: the next upcoming showtime, the
// account's booking for it when one exists, and the seat grid for that
// showtime. All fields are empty when nothing is scheduled.
type DashboardResponse struct {
	NextShowtime *ShowtimeResponse `json:"next_showtime,omitempty"`
	Booking      *BookingResponse  `json:"booking,omitempty"`
	SeatMap      *SeatMapResponse  `json:"seat_map,omitempty"`
}
