package usecase

import (
	"context"
	"fmt"
	"time"

	"ticket-portal/internal/data/entity"
	"ticket-portal/internal/data/repository"
	"ticket-portal/internal/dto/request"
	"ticket-portal/internal/dto/response"
	"ticket-portal/internal/seatplan"
	"ticket-portal/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CatalogService interface {
	SeedSeats(ctx context.Context) error
	GetSeatMap(ctx context.Context, showtimeID string) (*response.SeatMapResponse, error)
	GetSeatStatus(ctx context.Context, showtimeID string) ([]*response.SeatStatusResponse, error)
	UpdateSeatRestriction(ctx context.Context, seatID string, req *request.UpdateSeatRestrictionRequest) error
}

type catalogService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCatalogService(repo *repository.Repository, log *zap.Logger) CatalogService {
	return &catalogService{
		repo: repo,
		log:  log.With(zap.String("service", "catalog")),
	}
}

// Seat tiers by row block. Rows in the first block carry no restriction,
// which is equivalent to the lowest tier.
var seatTiers = []struct {
	rows string
	tier *string
}{
	{rows: "ABCDEF", tier: nil},
	{rows: "GHIJ", tier: strPtr(seatplan.RoleSenior)},
	{rows: "KLM", tier: strPtr(seatplan.RoleOfficer)},
}

const seatColumns = 10

func strPtr(s string) *string { return &s }

// SeedSeats populates the seat catalog. Each label is created independently
// only if missing, so reruns never duplicate or reset existing seats.
func (s *catalogService) SeedSeats(ctx context.Context) error {
	now := time.Now()
	created := 0

	for _, block := range seatTiers {
		for _, row := range block.rows {
			for col := 1; col <= seatColumns; col++ {
				seat := &entity.Seat{
					Base: entity.Base{
						ID:        uuid.New(),
						CreatedAt: now,
						UpdatedAt: now,
					},
					Label:      fmt.Sprintf("%c%d", row, col),
					Restricted: block.tier,
				}
				if err := s.repo.Seat.CreateIfMissing(ctx, seat); err != nil {
					return fmt.Errorf("seed seat %s: %w", seat.Label, err)
				}
				created++
			}
		}
	}

	s.log.Info("Seat catalog seeded", zap.Int("labels", created))
	return nil
}

// GetSeatMap returns every seat with its local number and availability for
// the given showtime, in label order.
func (s *catalogService) GetSeatMap(ctx context.Context, showtimeID string) (*response.SeatMapResponse, error) {
	showtimeUUID, err := uuid.Parse(showtimeID)
	if err != nil {
		return nil, fmt.Errorf("invalid showtime ID format %s: %w", showtimeID, err)
	}

	showtime, err := s.repo.Showtime.FindByID(ctx, showtimeUUID)
	if err != nil {
		return nil, fmt.Errorf("load showtime: %w", err)
	}
	if showtime == nil {
		return nil, ErrShowtimeNotFound
	}

	seats, err := s.repo.Seat.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load seats: %w", err)
	}

	bookedIDs, err := s.repo.BookingSeat.FindBookedSeatIDs(ctx, showtimeUUID)
	if err != nil {
		return nil, fmt.Errorf("load booked seats: %w", err)
	}

	return buildSeatMap(showtimeID, seats, bookedIDs), nil
}

// buildSeatMap lays the catalog out in label order with local numbers and
// per-showtime availability.
func buildSeatMap(showtimeID string, seats []*entity.Seat, bookedIDs []uuid.UUID) *response.SeatMapResponse {
	booked := make(map[uuid.UUID]bool, len(bookedIDs))
	for _, id := range bookedIDs {
		booked[id] = true
	}

	ordered, index := orderedWithIndex(seats)

	out := make([]response.SeatResponse, 0, len(ordered))
	for _, seat := range ordered {
		out = append(out, response.SeatResponse{
			ID:         seat.ID.String(),
			Label:      seat.Label,
			Number:     index[seat.ID],
			Restricted: seat.Restricted,
			IsBooked:   booked[seat.ID],
		})
	}

	return &response.SeatMapResponse{
		ShowtimeID: showtimeID,
		Seats:      out,
	}
}

// GetSeatStatus is the admin seat map: like GetSeatMap but annotated with who
// holds each booked seat.
func (s *catalogService) GetSeatStatus(ctx context.Context, showtimeID string) ([]*response.SeatStatusResponse, error) {
	seatMap, err := s.GetSeatMap(ctx, showtimeID)
	if err != nil {
		return nil, err
	}

	showtimeUUID, _ := uuid.Parse(showtimeID)
	bookings, err := s.repo.Booking.FindByShowtimeID(ctx, showtimeUUID)
	if err != nil {
		return nil, fmt.Errorf("load bookings: %w", err)
	}

	type holder struct {
		bookingID string
		name      string
		email     string
	}
	holders := make(map[uuid.UUID]holder)
	for _, booking := range bookings {
		user, err := s.repo.User.FindByID(ctx, booking.UserID)
		if err != nil {
			return nil, fmt.Errorf("load booking user: %w", err)
		}
		bookingSeats, err := s.repo.BookingSeat.FindByBookingID(ctx, booking.ID)
		if err != nil {
			return nil, fmt.Errorf("load booking seats: %w", err)
		}
		h := holder{bookingID: booking.ID.String()}
		if user != nil {
			h.name = user.FullName
			h.email = user.Email
		}
		for _, bs := range bookingSeats {
			holders[bs.SeatID] = h
		}
	}

	out := make([]*response.SeatStatusResponse, 0, len(seatMap.Seats))
	for _, seat := range seatMap.Seats {
		status := &response.SeatStatusResponse{SeatResponse: seat}
		seatUUID, err := uuid.Parse(seat.ID)
		if err == nil {
			if h, ok := holders[seatUUID]; ok {
				status.BookedBy = &h.name
				status.BookedEmail = &h.email
				status.BookingID = &h.bookingID
			}
		}
		out = append(out, status)
	}

	return out, nil
}

func (s *catalogService) UpdateSeatRestriction(ctx context.Context, seatID string, req *request.UpdateSeatRestrictionRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	seatUUID, err := uuid.Parse(seatID)
	if err != nil {
		return fmt.Errorf("invalid seat ID format %s: %w", seatID, err)
	}

	seat, err := s.repo.Seat.FindByID(ctx, seatUUID)
	if err != nil {
		return fmt.Errorf("load seat: %w", err)
	}
	if seat == nil {
		return fmt.Errorf("seat %s not found", seatID)
	}

	if err := s.repo.Seat.UpdateRestriction(ctx, seatUUID, req.Restricted); err != nil {
		return err
	}

	s.log.Info("Seat restriction updated",
		zap.String("seat_id", seatID),
		zap.String("label", seat.Label),
	)

	return nil
}

// orderedWithIndex sorts catalog seats by label and assigns local numbers.
func orderedWithIndex(seats []*entity.Seat) ([]*entity.Seat, map[uuid.UUID]int) {
	plan := make([]seatplan.Seat, len(seats))
	byID := make(map[uuid.UUID]*entity.Seat, len(seats))
	for i, seat := range seats {
		plan[i] = seatplan.Seat{ID: seat.ID, Label: seat.Label}
		byID[seat.ID] = seat
	}

	sorted := seatplan.Order(plan)
	index := seatplan.LocalIndex(plan)

	ordered := make([]*entity.Seat, 0, len(sorted))
	for _, ps := range sorted {
		ordered = append(ordered, byID[ps.ID])
	}
	return ordered, index
}
