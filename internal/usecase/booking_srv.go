package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ticket-portal/internal/data/entity"
	"ticket-portal/internal/data/repository"
	"ticket-portal/internal/dto/request"
	"ticket-portal/internal/dto/response"
	"ticket-portal/internal/queue"
	"ticket-portal/internal/seatplan"
	"ticket-portal/pkg/database"
	"ticket-portal/pkg/mailer"
	"ticket-portal/pkg/pdf"
	"ticket-portal/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

type BookingService interface {
	CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	GetDashboard(ctx context.Context, userID string) (*response.DashboardResponse, error)
	GetUserBookings(ctx context.Context, userID string) ([]*response.BookingResponse, error)
	CancelBooking(ctx context.Context, userID, bookingID string) error
	RenderTicket(ctx context.Context, userID, bookingID string) ([]byte, error)
}

type bookingService struct {
	db        database.PgxIface
	repo      *repository.Repository
	mail      *mailer.Mailer
	publisher *queue.Publisher
	log       *zap.Logger
}

func NewBookingService(db database.PgxIface, repo *repository.Repository, mail *mailer.Mailer, publisher *queue.Publisher, log *zap.Logger) BookingService {
	return &bookingService{
		db:        db,
		repo:      repo,
		mail:      mail,
		publisher: publisher,
		log:       log.With(zap.String("service", "booking")),
	}
}

// CreateBooking validates the request against the account's seat entitlements
// and commits the booking with its seats in one transaction. Checks run in a
// fixed order and the first failure is returned; nothing is written until all
// of them pass.
func (s *bookingService) CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	user, err := s.repo.User.FindByID(ctx, userUUID)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %s not found", userID)
	}

	// Rule 1: a real showtime must be selected.
	showtimeID, err := uuid.Parse(req.ShowtimeID)
	if err != nil {
		return nil, ErrMissingSelection
	}

	showtime, err := s.repo.Showtime.FindByID(ctx, showtimeID)
	if err != nil {
		return nil, fmt.Errorf("load showtime: %w", err)
	}
	if showtime == nil {
		return nil, ErrMissingSelection
	}

	// Rule 2: every attendee gets a seat, and the breakdown must account for
	// exactly the seats requested.
	if len(req.SeatIDs) == 0 || len(req.SeatIDs) != req.SelfCount+req.DependentCount+req.GuestCount {
		return nil, ErrCountMismatch
	}

	// Rule 3: dependents must be approved before they can be seated.
	if req.DependentCount > 0 {
		approved, err := s.repo.Dependent.FindApprovedByUserID(ctx, userUUID)
		if err != nil {
			return nil, fmt.Errorf("load approved dependents: %w", err)
		}
		if req.DependentCount > len(approved) {
			return nil, ErrUnapprovedDependent
		}
	}

	// Rule 4: one booking per account per showtime.
	existing, err := s.repo.Booking.FindByUserAndShowtime(ctx, userUUID, showtimeID)
	if err != nil {
		return nil, fmt.Errorf("check existing booking: %w", err)
	}
	if existing != nil {
		return nil, ErrDuplicateBooking
	}

	seatUUIDs := make([]uuid.UUID, len(req.SeatIDs))
	for i, seatIDStr := range req.SeatIDs {
		seatID, err := uuid.Parse(seatIDStr)
		if err != nil {
			return nil, fmt.Errorf("invalid seat ID format %s: %w", seatIDStr, err)
		}
		seatUUIDs[i] = seatID
	}

	seats, err := s.repo.Seat.FindByIDs(ctx, seatUUIDs)
	if err != nil {
		return nil, fmt.Errorf("load seats: %w", err)
	}
	seatsByID := make(map[uuid.UUID]*entity.Seat, len(seats))
	for _, seat := range seats {
		seatsByID[seat.ID] = seat
	}
	for _, seatID := range seatUUIDs {
		if _, ok := seatsByID[seatID]; !ok {
			return nil, fmt.Errorf("seat %s not found", seatID.String())
		}
	}

	// Rule 5: every seat must be open to the account's role tier. Seats are
	// checked in request order and the first restricted one is reported.
	for _, seatID := range seatUUIDs {
		seat := seatsByID[seatID]
		if !seatplan.Allowed(string(user.Role), seat.Restricted) {
			return nil, &RoleNotPermittedError{SeatLabel: seat.Label}
		}
	}

	// Rule 6: no seat may already be taken for this showtime.
	bookedIDs, err := s.repo.BookingSeat.FindBookedSeatIDs(ctx, showtimeID)
	if err != nil {
		return nil, fmt.Errorf("check seat availability: %w", err)
	}
	booked := make(map[uuid.UUID]bool, len(bookedIDs))
	for _, id := range bookedIDs {
		booked[id] = true
	}
	for _, seatID := range seatUUIDs {
		if booked[seatID] {
			return nil, ErrSeatAlreadyBooked
		}
	}

	paymentStatus := entity.PaymentNotRequired
	if req.GuestCount > 0 {
		paymentStatus = entity.PaymentPayAtCounter
	}

	now := time.Now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:        userUUID,
		ShowtimeID:    showtimeID,
		ExtraGuests:   req.GuestCount,
		PaymentStatus: paymentStatus,
		Status:        entity.BookingStatusConfirmed,
	}

	bookingSeats := make([]*entity.BookingSeat, len(seatUUIDs))
	for i, seatID := range seatUUIDs {
		bookingSeats[i] = &entity.BookingSeat{
			BaseSimple: entity.BaseSimple{
				ID:        uuid.New(),
				CreatedAt: now,
			},
			BookingID:  booking.ID,
			ShowtimeID: showtimeID,
			SeatID:     seatID,
			Position:   i + 1,
		}
	}

	if err := s.commitBooking(ctx, booking, bookingSeats, seatUUIDs); err != nil {
		return nil, err
	}

	movie, err := s.repo.Movie.FindByID(ctx, showtime.MovieID)
	if err != nil {
		s.log.Warn("Failed to load movie for booking notification", zap.Error(err))
	}

	seatLabels := make([]string, len(seatUUIDs))
	for i, seatID := range seatUUIDs {
		seatLabels[i] = seatsByID[seatID].Label
	}

	s.notifyBookingConfirmed(ctx, user, booking, showtime, movie, seatLabels)

	movieTitle := ""
	if movie != nil {
		movieTitle = movie.Title
	}
	resp := bookingToResponse(booking, showtime, movieTitle, seatLabels)

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("user_id", userID),
		zap.Int("seats", len(seatUUIDs)),
	)

	return resp, nil
}

// commitBooking holds the critical section: inside the transaction it rereads
// the booked set and inserts everything. If a concurrent booking slips between
// the reread and the insert, the UNIQUE (showtime_id, seat_id) constraint
// rejects the batch and the whole transaction rolls back.
func (s *bookingService) commitBooking(ctx context.Context, booking *entity.Booking, bookingSeats []*entity.BookingSeat, seatUUIDs []uuid.UUID) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin booking transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	bookedIDs, err := s.repo.BookingSeat.FindBookedSeatIDsTx(ctx, tx, booking.ShowtimeID)
	if err != nil {
		return fmt.Errorf("recheck seat availability: %w", err)
	}
	booked := make(map[uuid.UUID]bool, len(bookedIDs))
	for _, id := range bookedIDs {
		booked[id] = true
	}
	for _, seatID := range seatUUIDs {
		if booked[seatID] {
			return ErrSeatAlreadyBooked
		}
	}

	if err := s.repo.Booking.CreateTx(ctx, tx, booking); err != nil {
		return err
	}

	if err := s.repo.BookingSeat.CreateBatchTx(ctx, tx, bookingSeats); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrSeatAlreadyBooked
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrSeatAlreadyBooked
		}
		return fmt.Errorf("commit booking transaction: %w", err)
	}

	return nil
}

func (s *bookingService) notifyBookingConfirmed(ctx context.Context, user *entity.User, booking *entity.Booking, showtime *entity.Showtime, movie *entity.Movie, seatLabels []string) {
	movieTitle := ""
	if movie != nil {
		movieTitle = movie.Title
	}

	// Mail retries can take seconds; never hold the response for them.
	if s.mail != nil {
		to := user.Email
		mail := mailer.BookingMail{
			MovieTitle:    movieTitle,
			ShowDate:      showtime.ShowDate.Format("2006-01-02"),
			ShowTime:      showtime.ShowTime.Format("15:04"),
			SeatLabels:    seatLabels,
			ExtraGuests:   booking.ExtraGuests,
			PaymentStatus: string(booking.PaymentStatus),
		}
		go func() {
			if err := s.mail.SendBookingConfirmed(to, mail); err != nil {
				s.log.Warn("Failed to send booking confirmation mail", zap.Error(err))
			}
		}()
	}

	s.publisher.PublishBookingConfirmed(ctx, queue.BookingConfirmedEvent{
		BookingID:     booking.ID.String(),
		UserID:        user.ID.String(),
		ShowtimeID:    booking.ShowtimeID.String(),
		MovieTitle:    movieTitle,
		ShowDate:      showtime.ShowDate.Format("2006-01-02"),
		ShowTime:      showtime.ShowTime.Format("15:04"),
		SeatLabels:    seatLabels,
		ExtraGuests:   booking.ExtraGuests,
		PaymentStatus: string(booking.PaymentStatus),
		ConfirmedAt:   booking.CreatedAt.Format(time.RFC3339),
	})
}

// GetDashboard assembles the landing view around the next upcoming showtime:
// the account's booking for it, if any, and its seat grid.
func (s *bookingService) GetDashboard(ctx context.Context, userID string) (*response.DashboardResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	showtime, err := s.repo.Showtime.FindUpcoming(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("load upcoming showtime: %w", err)
	}

	dash := &response.DashboardResponse{}
	if showtime == nil {
		return dash, nil
	}

	movieTitle := ""
	movie, err := s.repo.Movie.FindByID(ctx, showtime.MovieID)
	if err == nil && movie != nil {
		movieTitle = movie.Title
	}
	next := response.ShowtimeToResponse(showtime, movieTitle)
	dash.NextShowtime = &next

	booking, err := s.repo.Booking.FindByUserAndShowtime(ctx, userUUID, showtime.ID)
	if err != nil {
		return nil, fmt.Errorf("load booking: %w", err)
	}
	if booking != nil {
		resp, err := s.expandBooking(ctx, booking)
		if err != nil {
			return nil, err
		}
		dash.Booking = resp
	}

	seats, err := s.repo.Seat.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load seats: %w", err)
	}
	bookedIDs, err := s.repo.BookingSeat.FindBookedSeatIDs(ctx, showtime.ID)
	if err != nil {
		return nil, fmt.Errorf("load booked seats: %w", err)
	}
	dash.SeatMap = buildSeatMap(showtime.ID.String(), seats, bookedIDs)

	return dash, nil
}

func (s *bookingService) GetUserBookings(ctx context.Context, userID string) ([]*response.BookingResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	bookings, err := s.repo.Booking.FindByUserID(ctx, userUUID)
	if err != nil {
		return nil, fmt.Errorf("load bookings: %w", err)
	}

	out := make([]*response.BookingResponse, 0, len(bookings))
	for _, booking := range bookings {
		resp, err := s.expandBooking(ctx, booking)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}

	return out, nil
}

func (s *bookingService) expandBooking(ctx context.Context, booking *entity.Booking) (*response.BookingResponse, error) {
	showtime, err := s.repo.Showtime.FindByID(ctx, booking.ShowtimeID)
	if err != nil {
		return nil, fmt.Errorf("load showtime: %w", err)
	}

	movieTitle := ""
	if showtime != nil {
		movie, err := s.repo.Movie.FindByID(ctx, showtime.MovieID)
		if err == nil && movie != nil {
			movieTitle = movie.Title
		}
	}

	seatLabels, err := s.bookingSeatLabels(ctx, booking.ID)
	if err != nil {
		return nil, err
	}

	return bookingToResponse(booking, showtime, movieTitle, seatLabels), nil
}

func (s *bookingService) bookingSeatLabels(ctx context.Context, bookingID uuid.UUID) ([]string, error) {
	bookingSeats, err := s.repo.BookingSeat.FindByBookingID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("load booking seats: %w", err)
	}

	ids := make([]uuid.UUID, len(bookingSeats))
	for i, bs := range bookingSeats {
		ids[i] = bs.SeatID
	}

	seats, err := s.repo.Seat.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load seats: %w", err)
	}
	labelsByID := make(map[uuid.UUID]string, len(seats))
	for _, seat := range seats {
		labelsByID[seat.ID] = seat.Label
	}

	labels := make([]string, 0, len(bookingSeats))
	for _, bs := range bookingSeats {
		if label, ok := labelsByID[bs.SeatID]; ok {
			labels = append(labels, label)
		}
	}
	return labels, nil
}

// CancelBooking deletes the booking outright, which frees its seats for
// rebooking. Only the booking's owner may cancel it.
func (s *bookingService) CancelBooking(ctx context.Context, userID, bookingID string) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}
	bookingUUID, err := uuid.Parse(bookingID)
	if err != nil {
		return fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, bookingUUID)
	if err != nil {
		return fmt.Errorf("load booking: %w", err)
	}
	if booking == nil {
		return ErrBookingNotFound
	}
	if booking.UserID != userUUID {
		return ErrBookingUnauthorized
	}

	if err := s.repo.Booking.Delete(ctx, bookingUUID); err != nil {
		return err
	}

	s.log.Info("Booking cancelled",
		zap.String("booking_id", bookingID),
		zap.String("user_id", userID),
	)

	return nil
}

// RenderTicket produces the booking's ticket as a PDF.
func (s *bookingService) RenderTicket(ctx context.Context, userID, bookingID string) ([]byte, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}
	bookingUUID, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, bookingUUID)
	if err != nil {
		return nil, fmt.Errorf("load booking: %w", err)
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	if booking.UserID != userUUID {
		return nil, ErrBookingUnauthorized
	}

	user, err := s.repo.User.FindByID(ctx, userUUID)
	if err != nil || user == nil {
		return nil, fmt.Errorf("load user: %w", err)
	}

	resp, err := s.expandBooking(ctx, booking)
	if err != nil {
		return nil, err
	}

	ticket := pdf.Ticket{
		Reference:     booking.ID.String(),
		HolderName:    user.FullName,
		MovieTitle:    resp.MovieTitle,
		ShowDate:      resp.ShowDate,
		ShowTime:      resp.ShowTime,
		SeatLabels:    resp.SeatLabels,
		ExtraGuests:   booking.ExtraGuests,
		PaymentStatus: string(booking.PaymentStatus),
	}

	return pdf.RenderTicket(ticket)
}

func bookingToResponse(booking *entity.Booking, showtime *entity.Showtime, movieTitle string, seatLabels []string) *response.BookingResponse {
	resp := &response.BookingResponse{
		ID:            booking.ID.String(),
		ShowtimeID:    booking.ShowtimeID.String(),
		MovieTitle:    movieTitle,
		SeatLabels:    seatLabels,
		ExtraGuests:   booking.ExtraGuests,
		PaymentStatus: string(booking.PaymentStatus),
		Status:        string(booking.Status),
		CreatedAt:     booking.CreatedAt,
	}
	if showtime != nil {
		resp.ShowDate = showtime.ShowDate.Format("2006-01-02")
		resp.ShowTime = showtime.ShowTime.Format("15:04")
	}
	return resp
}
