package response

// ShowtimeSummaryResponse reports one showtime's occupancy with seats given
// as local seat numbers rather than raw ids.
type ShowtimeSummaryResponse struct {
	ShowtimeID      string `json:"showtime_id"`
	MovieTitle      string `json:"movie_title"`
	ShowDate        string `json:"show_date"`
	ShowTime        string `json:"show_time"`
	BookedSeats     []int  `json:"booked_seats"`
	BookedCount     int    `json:"booked_count"`
	TotalSeats      int    `json:"total_seats"`
	TotalAttendance int    `json:"total_attendance"`
}
