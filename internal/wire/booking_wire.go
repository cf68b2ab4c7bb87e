package wire

import (
	"ticket-portal/internal/adaptor"
	"ticket-portal/internal/data/repository"
	"ticket-portal/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	auth := middleware.AuthSession(repo.Session, repo.User, log)

	r.With(auth).Get("/api/dashboard", bookingHandler.GetDashboard)
	r.With(auth).Post("/api/bookings", bookingHandler.CreateBooking)
	r.With(auth).Get("/api/bookings", bookingHandler.GetMyBookings)
	r.With(auth).Delete("/api/bookings/{id}", bookingHandler.CancelBooking)
	r.With(auth).Get("/api/bookings/{id}/ticket", bookingHandler.DownloadTicket)
}
