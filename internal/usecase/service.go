package usecase

import (
	"ticket-portal/internal/data/repository"
	"ticket-portal/internal/queue"
	"ticket-portal/pkg/database"
	"ticket-portal/pkg/mailer"
	"ticket-portal/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth    AuthService
	User    UserService
	Movie   MovieService
	Catalog CatalogService
	Booking BookingService
	Admin   AdminService
	Report  ReportService
}

func NewService(db database.PgxIface, repo *repository.Repository, config *utils.Config, mail *mailer.Mailer, publisher *queue.Publisher, log *zap.Logger) *Service {
	return &Service{
		Auth:    NewAuthService(repo, mail, config, log),
		User:    NewUserService(repo, log),
		Movie:   NewMovieService(repo, log),
		Catalog: NewCatalogService(repo, log),
		Booking: NewBookingService(db, repo, mail, publisher, log),
		Admin:   NewAdminService(repo, mail, publisher, log),
		Report:  NewReportService(repo, log),
	}
}
