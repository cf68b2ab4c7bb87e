package wire

import (
	"ticket-portal/internal/adaptor"
	"ticket-portal/internal/data/repository"
	"ticket-portal/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	auth := middleware.AuthSession(repo.Session, repo.User, log)

	r.With(auth).Get("/api/profile", userHandler.GetProfile)
	r.With(auth).Get("/api/dependents", userHandler.GetDependents)
	r.With(auth).Post("/api/dependents", userHandler.AddDependent)
}
