package wire

import (
	"net/http"

	"ticket-portal/internal/adaptor"
	"ticket-portal/internal/data/repository"
	"ticket-portal/internal/queue"
	"ticket-portal/internal/usecase"
	"ticket-portal/pkg/database"
	"ticket-portal/pkg/mailer"
	"ticket-portal/pkg/middleware"
	"ticket-portal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring builds the service graph and the HTTP router on top of it.
func Wiring(
	db database.PgxIface,
	repo *repository.Repository,
	config *utils.Config,
	mail *mailer.Mailer,
	publisher *queue.Publisher,
	rdb *redis.Client,
	logger *zap.Logger,
) *App {
	service := usecase.NewService(db, repo, config, mail, publisher, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, repo, config, rdb, logger)

	return &App{
		Router:  router,
		Service: service,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	rdb *redis.Client,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	wireAuth(r, handler.Auth, repo, config, rdb, logger)
	wireUser(r, handler.User, repo, logger)
	wireMovie(r, handler.Movie, logger)
	wireBooking(r, handler.Booking, repo, logger)
	wireAdmin(r, handler.Admin, handler.Auth, repo, logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
