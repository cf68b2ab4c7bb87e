package wire

import (
	"ticket-portal/internal/adaptor"
	"ticket-portal/internal/data/repository"
	"ticket-portal/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAdmin(
	r chi.Router,
	adminHandler *adaptor.AdminHandler,
	authHandler *adaptor.AuthHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	admin := middleware.AdminSession(repo.Session, log)

	r.Route("/api/admin", func(r chi.Router) {
		r.Post("/login", authHandler.AdminLogin)

		r.Group(func(r chi.Router) {
			r.Use(admin)

			r.Get("/users/pending", adminHandler.GetPendingUsers)
			r.Post("/users/{id}/approve", adminHandler.ApproveUser)
			r.Get("/dependents/pending", adminHandler.GetPendingDependents)
			r.Post("/dependents/{id}/approve", adminHandler.ApproveDependent)

			r.Post("/movies", adminHandler.CreateMovie)
			r.Put("/movies/{id}", adminHandler.UpdateMovie)
			r.Delete("/movies/{id}", adminHandler.DeleteMovie)
			r.Post("/showtimes", adminHandler.CreateShowtime)
			r.Delete("/showtimes/{id}", adminHandler.DeleteShowtime)

			r.Get("/showtimes/{id}/seats", adminHandler.GetSeatStatus)
			r.Put("/seats/{id}/restriction", adminHandler.UpdateSeatRestriction)
			r.Post("/seats/seed", adminHandler.SeedSeats)

			r.Get("/reports/showtimes", adminHandler.GetSummaryReport)
		})
	})
}
