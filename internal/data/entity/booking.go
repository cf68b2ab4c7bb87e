package entity

import "github.com/google/uuid"

type PaymentStatus string

const (
	PaymentNotRequired  PaymentStatus = "Not Required"
	PaymentPayAtCounter PaymentStatus = "Pay at Counter"
)

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
)

// Booking is created atomically with its full seat list and deleted outright
// on cancellation. Seats are attached through BookingSeat rows.
type Booking struct {
	Base
	UserID        uuid.UUID     `db:"user_id"`
	ShowtimeID    uuid.UUID     `db:"showtime_id"`
	ExtraGuests   int           `db:"extra_guests"`
	PaymentStatus PaymentStatus `db:"payment_status"`
	Status        BookingStatus `db:"status"`
}
