package adaptor

import (
	"net/http"
	"strings"

	"ticket-portal/internal/usecase"
	"ticket-portal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// MovieHandler serves the public catalog: movies, showtimes and per-showtime
// seat maps.
type MovieHandler struct {
	movies  usecase.MovieService
	catalog usecase.CatalogService
	log     *zap.Logger
}

func NewMovieHandler(movies usecase.MovieService, catalog usecase.CatalogService, log *zap.Logger) *MovieHandler {
	return &MovieHandler{
		movies:  movies,
		catalog: catalog,
		log:     log,
	}
}

// GetMovies handles GET /api/movies
func (h *MovieHandler) GetMovies(w http.ResponseWriter, r *http.Request) {
	movies, err := h.movies.GetMovies(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "get movies")
		return
	}

	utils.ResponseSuccess(w, "Movies retrieved", movies)
}

// GetMovie handles GET /api/movies/{id}
func (h *MovieHandler) GetMovie(w http.ResponseWriter, r *http.Request) {
	movieID := chi.URLParam(r, "id")

	movie, err := h.movies.GetMovie(r.Context(), movieID)
	if err != nil {
		h.handleServiceError(w, err, "get movie")
		return
	}

	utils.ResponseSuccess(w, "Movie retrieved", movie)
}

// GetShowtimes handles GET /api/showtimes?movie_id=&date=
func (h *MovieHandler) GetShowtimes(w http.ResponseWriter, r *http.Request) {
	movieID := r.URL.Query().Get("movie_id")
	showDate := r.URL.Query().Get("date")

	showtimes, err := h.movies.GetShowtimes(r.Context(), movieID, showDate)
	if err != nil {
		h.handleServiceError(w, err, "get showtimes")
		return
	}

	utils.ResponseSuccess(w, "Showtimes retrieved", showtimes)
}

// GetSeatMap handles GET /api/showtimes/{id}/seats
func (h *MovieHandler) GetSeatMap(w http.ResponseWriter, r *http.Request) {
	showtimeID := chi.URLParam(r, "id")

	seatMap, err := h.catalog.GetSeatMap(r.Context(), showtimeID)
	if err != nil {
		h.handleServiceError(w, err, "get seat map")
		return
	}

	utils.ResponseSuccess(w, "Seat map retrieved", seatMap)
}

func (h *MovieHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	switch {
	case strings.Contains(err.Error(), "invalid"):
		utils.ResponseBadRequest(w, err.Error(), nil)

	case strings.Contains(err.Error(), "not found"):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	default:
		h.log.Error(operation+" failed", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
