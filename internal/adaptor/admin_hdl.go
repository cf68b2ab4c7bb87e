package adaptor

import (
	"encoding/json"
	"net/http"
	"strings"

	"ticket-portal/internal/dto/request"
	"ticket-portal/internal/usecase"
	"ticket-portal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AdminHandler serves the approval queue, catalog management, seat status and
// occupancy reports. All routes behind it require an admin session.
type AdminHandler struct {
	admin   usecase.AdminService
	movies  usecase.MovieService
	catalog usecase.CatalogService
	reports usecase.ReportService
	log     *zap.Logger
}

func NewAdminHandler(admin usecase.AdminService, movies usecase.MovieService, catalog usecase.CatalogService, reports usecase.ReportService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{
		admin:   admin,
		movies:  movies,
		catalog: catalog,
		reports: reports,
		log:     log,
	}
}

// GetPendingUsers handles GET /api/admin/users/pending
func (h *AdminHandler) GetPendingUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.admin.GetPendingUsers(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "get pending users")
		return
	}

	utils.ResponseSuccess(w, "Pending users retrieved", users)
}

// ApproveUser handles POST /api/admin/users/{id}/approve
func (h *AdminHandler) ApproveUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	if err := h.admin.ApproveUser(r.Context(), userID); err != nil {
		h.handleServiceError(w, err, "approve user")
		return
	}

	utils.ResponseSuccess(w, "User approved", nil)
}

// GetPendingDependents handles GET /api/admin/dependents/pending
func (h *AdminHandler) GetPendingDependents(w http.ResponseWriter, r *http.Request) {
	deps, err := h.admin.GetPendingDependents(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "get pending dependents")
		return
	}

	utils.ResponseSuccess(w, "Pending dependents retrieved", deps)
}

// ApproveDependent handles POST /api/admin/dependents/{id}/approve
func (h *AdminHandler) ApproveDependent(w http.ResponseWriter, r *http.Request) {
	dependentID := chi.URLParam(r, "id")

	if err := h.admin.ApproveDependent(r.Context(), dependentID); err != nil {
		h.handleServiceError(w, err, "approve dependent")
		return
	}

	utils.ResponseSuccess(w, "Dependent approved", nil)
}

// CreateMovie handles POST /api/admin/movies
func (h *AdminHandler) CreateMovie(w http.ResponseWriter, r *http.Request) {
	var req request.CreateMovieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	movie, err := h.movies.CreateMovie(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "create movie")
		return
	}

	utils.ResponseCreated(w, "Movie created", movie)
}

// UpdateMovie handles PUT /api/admin/movies/{id}
func (h *AdminHandler) UpdateMovie(w http.ResponseWriter, r *http.Request) {
	movieID := chi.URLParam(r, "id")

	var req request.UpdateMovieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	movie, err := h.movies.UpdateMovie(r.Context(), movieID, &req)
	if err != nil {
		h.handleServiceError(w, err, "update movie")
		return
	}

	utils.ResponseSuccess(w, "Movie updated", movie)
}

// DeleteMovie handles DELETE /api/admin/movies/{id}
func (h *AdminHandler) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	movieID := chi.URLParam(r, "id")

	if err := h.movies.DeleteMovie(r.Context(), movieID); err != nil {
		h.handleServiceError(w, err, "delete movie")
		return
	}

	utils.ResponseSuccess(w, "Movie deleted", nil)
}

// CreateShowtime handles POST /api/admin/showtimes
func (h *AdminHandler) CreateShowtime(w http.ResponseWriter, r *http.Request) {
	var req request.CreateShowtimeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	showtime, err := h.movies.CreateShowtime(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "create showtime")
		return
	}

	utils.ResponseCreated(w, "Showtime created", showtime)
}

// DeleteShowtime handles DELETE /api/admin/showtimes/{id}
func (h *AdminHandler) DeleteShowtime(w http.ResponseWriter, r *http.Request) {
	showtimeID := chi.URLParam(r, "id")

	if err := h.movies.DeleteShowtime(r.Context(), showtimeID); err != nil {
		h.handleServiceError(w, err, "delete showtime")
		return
	}

	utils.ResponseSuccess(w, "Showtime deleted", nil)
}

// GetSeatStatus handles GET /api/admin/showtimes/{id}/seats
func (h *AdminHandler) GetSeatStatus(w http.ResponseWriter, r *http.Request) {
	showtimeID := chi.URLParam(r, "id")

	status, err := h.catalog.GetSeatStatus(r.Context(), showtimeID)
	if err != nil {
		h.handleServiceError(w, err, "get seat status")
		return
	}

	utils.ResponseSuccess(w, "Seat status retrieved", status)
}

// UpdateSeatRestriction handles PUT /api/admin/seats/{id}/restriction
func (h *AdminHandler) UpdateSeatRestriction(w http.ResponseWriter, r *http.Request) {
	seatID := chi.URLParam(r, "id")

	var req request.UpdateSeatRestrictionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.catalog.UpdateSeatRestriction(r.Context(), seatID, &req); err != nil {
		h.handleServiceError(w, err, "update seat restriction")
		return
	}

	utils.ResponseSuccess(w, "Seat restriction updated", nil)
}

// SeedSeats handles POST /api/admin/seats/seed
func (h *AdminHandler) SeedSeats(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.SeedSeats(r.Context()); err != nil {
		h.handleServiceError(w, err, "seed seats")
		return
	}

	utils.ResponseSuccess(w, "Seat catalog seeded", nil)
}

// GetSummaryReport handles GET /api/admin/reports/showtimes?movie_id=&date=
func (h *AdminHandler) GetSummaryReport(w http.ResponseWriter, r *http.Request) {
	movieID := r.URL.Query().Get("movie_id")
	showDate := r.URL.Query().Get("date")

	summaries, err := h.reports.GetShowtimeSummaries(r.Context(), movieID, showDate)
	if err != nil {
		h.handleServiceError(w, err, "get summary report")
		return
	}

	utils.ResponseSuccess(w, "Summary report retrieved", summaries)
}

func (h *AdminHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	switch {
	case strings.Contains(err.Error(), "validation failed"),
		strings.Contains(err.Error(), "invalid"):
		utils.ResponseBadRequest(w, err.Error(), nil)

	case strings.Contains(err.Error(), "not found"):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	default:
		h.log.Error(operation+" failed", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
