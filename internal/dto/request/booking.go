package request

// CreateBookingRequest leaves showtime and seat presence to the booking
// rules, which report a missing selection or a count mismatch with their own
// wording instead of a generic validation error.
type CreateBookingRequest struct {
	ShowtimeID     string   `json:"showtime_id"`
	SeatIDs        []string `json:"seat_ids" validate:"omitempty,dive,uuid4"`
	SelfCount      int      `json:"self_count" validate:"min=0"`
	DependentCount int      `json:"dependent_count" validate:"min=0"`
	GuestCount     int      `json:"guest_count" validate:"min=0"`
}
