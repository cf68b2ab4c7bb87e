package response

type SeatResponse struct {
	ID         string  `json:"id"`
	Label      string  `json:"label"`
	Number     int     `json:"number"`
	Restricted *string `json:"restricted,omitempty"`
	IsBooked   bool    `json:"is_booked"`
}

type SeatMapResponse struct {
	ShowtimeID string         `json:"showtime_id"`
	Seats      []SeatResponse `json:"seats"`
}

// SeatStatusResponse is the admin view of one seat for a showtime, including
// who holds it when booked.
type SeatStatusResponse struct {
	SeatResponse
	BookedBy    *string `json:"booked_by,omitempty"`
	BookedEmail *string `json:"booked_email,omitempty"`
	BookingID   *string `json:"booking_id,omitempty"`
}
