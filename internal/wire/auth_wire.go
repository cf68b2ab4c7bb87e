package wire

import (
	"time"

	"ticket-portal/internal/adaptor"
	"ticket-portal/internal/data/repository"
	"ticket-portal/pkg/middleware"
	"ticket-portal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	repo *repository.Repository,
	config *utils.Config,
	rdb *redis.Client,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// OTP-issuing endpoints are rate limited per IP so the mailer cannot be
	// used as a spam relay.
	otpLimit := middleware.RateLimit(rdb, 5, time.Minute, log)
	r.With(otpLimit).Post("/api/register", authHandler.Register)
	r.With(otpLimit).Post("/api/forgot-password", authHandler.ForgotPassword)

	r.Post("/api/register/verify", authHandler.VerifyRegistration)
	r.Post("/api/login", authHandler.Login)
	r.Post("/api/reset-password", authHandler.ResetPassword)

	// ==================== PROTECTED ROUTES ====================
	r.With(middleware.AuthSession(repo.Session, repo.User, log)).Post("/api/logout", authHandler.Logout)
}
