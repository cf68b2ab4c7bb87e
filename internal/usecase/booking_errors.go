package usecase

import (
	"errors"
	"fmt"
)

// Booking validation failures, checked in a fixed order; the first failure
// wins and later checks never run.
var (
	ErrMissingSelection    = errors.New("no showtime selected")
	ErrCountMismatch       = errors.New("seat count does not match attendee count")
	ErrUnapprovedDependent = errors.New("more dependents than approved dependents on file")
	ErrDuplicateBooking    = errors.New("a booking for this showtime already exists")
	ErrSeatAlreadyBooked   = errors.New("one or more selected seats are already booked")
	ErrBookingNotFound     = errors.New("booking not found")
	ErrBookingUnauthorized = errors.New("booking belongs to another account")
	ErrShowtimeNotFound    = errors.New("showtime not found")
)

// RoleNotPermittedError names the first offending seat so the caller can tell
// the user which one to drop.
type RoleNotPermittedError struct {
	SeatLabel string
}

func (e *RoleNotPermittedError) Error() string {
	return fmt.Sprintf("seat %s is restricted above your role", e.SeatLabel)
}
