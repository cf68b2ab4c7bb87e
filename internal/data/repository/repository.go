package repository

import (
	"ticket-portal/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User        UserRepository
	Dependent   DependentRepository
	Session     SessionRepository
	OTP         OTPRepository
	Movie       MovieRepository
	Showtime    ShowtimeRepository
	Seat        SeatRepository
	Booking     BookingRepository
	BookingSeat BookingSeatRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:        NewUserRepository(db, log),
		Dependent:   NewDependentRepository(db, log),
		Session:     NewSessionRepository(db, log),
		OTP:         NewOTPRepository(db, log),
		Movie:       NewMovieRepository(db, log),
		Showtime:    NewShowtimeRepository(db, log),
		Seat:        NewSeatRepository(db, log),
		Booking:     NewBookingRepository(db, log),
		BookingSeat: NewBookingSeatRepository(db, log),
	}
}
