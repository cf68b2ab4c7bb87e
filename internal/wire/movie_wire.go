package wire

import (
	"ticket-portal/internal/adaptor"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireMovie(
	r chi.Router,
	movieHandler *adaptor.MovieHandler,
	log *zap.Logger,
) {
	// Browsing the catalog needs no account.
	r.Get("/api/movies", movieHandler.GetMovies)
	r.Get("/api/movies/{id}", movieHandler.GetMovie)
	r.Get("/api/showtimes", movieHandler.GetShowtimes)
	r.Get("/api/showtimes/{id}/seats", movieHandler.GetSeatMap)
}
