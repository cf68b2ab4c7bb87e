package adaptor

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"ticket-portal/internal/dto/request"
	"ticket-portal/internal/usecase"
	"ticket-portal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log,
	}
}

// CreateBooking handles POST /api/bookings
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Not authenticated")
		return
	}

	var req request.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	booking, err := h.service.CreateBooking(r.Context(), userID.String(), &req)
	if err != nil {
		h.handleServiceError(w, err, "create booking")
		return
	}

	utils.ResponseCreated(w, "Booking confirmed", booking)
}

// GetDashboard handles GET /api/dashboard
func (h *BookingHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Not authenticated")
		return
	}

	dash, err := h.service.GetDashboard(r.Context(), userID.String())
	if err != nil {
		h.handleServiceError(w, err, "get dashboard")
		return
	}

	utils.ResponseSuccess(w, "Dashboard retrieved", dash)
}

// GetMyBookings handles GET /api/bookings
func (h *BookingHandler) GetMyBookings(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Not authenticated")
		return
	}

	bookings, err := h.service.GetUserBookings(r.Context(), userID.String())
	if err != nil {
		h.handleServiceError(w, err, "get bookings")
		return
	}

	utils.ResponseSuccess(w, "Bookings retrieved", bookings)
}

// CancelBooking handles DELETE /api/bookings/{id}
func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Not authenticated")
		return
	}

	bookingID := chi.URLParam(r, "id")
	if err := h.service.CancelBooking(r.Context(), userID.String(), bookingID); err != nil {
		h.handleServiceError(w, err, "cancel booking")
		return
	}

	utils.ResponseSuccess(w, "Booking cancelled", nil)
}

// DownloadTicket handles GET /api/bookings/{id}/ticket
func (h *BookingHandler) DownloadTicket(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Not authenticated")
		return
	}

	bookingID := chi.URLParam(r, "id")
	data, err := h.service.RenderTicket(r.Context(), userID.String(), bookingID)
	if err != nil {
		h.handleServiceError(w, err, "render ticket")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="ticket-%s.pdf"`, bookingID))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (h *BookingHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	var roleErr *usecase.RoleNotPermittedError

	switch {
	case errors.Is(err, usecase.ErrMissingSelection),
		errors.Is(err, usecase.ErrCountMismatch),
		errors.Is(err, usecase.ErrUnapprovedDependent):
		h.log.Warn(operation+" rejected", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.As(err, &roleErr):
		h.log.Warn(operation+" rejected - seat restricted",
			zap.String("seat", roleErr.SeatLabel),
		)
		utils.ResponseForbidden(w, err.Error())

	case errors.Is(err, usecase.ErrDuplicateBooking),
		errors.Is(err, usecase.ErrSeatAlreadyBooked):
		h.log.Warn(operation+" rejected", zap.Error(err))
		utils.ResponseConflict(w, err.Error())

	case errors.Is(err, usecase.ErrBookingNotFound),
		errors.Is(err, usecase.ErrShowtimeNotFound):
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrBookingUnauthorized):
		h.log.Warn(operation+" rejected - not owner", zap.Error(err))
		utils.ResponseForbidden(w, err.Error())

	case strings.Contains(err.Error(), "validation failed"):
		utils.ResponseBadRequest(w, err.Error(), nil)

	case strings.Contains(err.Error(), "not found"):
		utils.ResponseNotFound(w, err.Error())

	default:
		h.log.Error(operation+" failed", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
