package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"ticket-portal/internal/data/entity"
	"ticket-portal/internal/data/repository"
	"ticket-portal/internal/dto/response"
	"ticket-portal/internal/seatplan"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReportService interface {
	GetShowtimeSummaries(ctx context.Context, movieID, showDate string) ([]response.ShowtimeSummaryResponse, error)
}

type reportService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewReportService(repo *repository.Repository, log *zap.Logger) ReportService {
	return &reportService{
		repo: repo,
		log:  log.With(zap.String("service", "report")),
	}
}

// GetShowtimeSummaries reports occupancy per showtime, with booked seats
// translated to local seat numbers and sorted ascending. Seat ids with no
// catalog entry are dropped from the list.
func (s *reportService) GetShowtimeSummaries(ctx context.Context, movieID, showDate string) ([]response.ShowtimeSummaryResponse, error) {
	var movieFilter *uuid.UUID
	if movieID != "" {
		parsed, err := uuid.Parse(movieID)
		if err != nil {
			return nil, fmt.Errorf("invalid movie ID format %s: %w", movieID, err)
		}
		movieFilter = &parsed
	}

	var dateFilter *time.Time
	if showDate != "" {
		parsed, err := time.Parse("2006-01-02", showDate)
		if err != nil {
			return nil, fmt.Errorf("invalid date format %s: %w", showDate, err)
		}
		dateFilter = &parsed
	}

	showtimes, err := s.repo.Showtime.FindFiltered(ctx, movieFilter, dateFilter)
	if err != nil {
		return nil, fmt.Errorf("load showtimes: %w", err)
	}

	seats, err := s.repo.Seat.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load seats: %w", err)
	}
	plan := make([]seatplan.Seat, len(seats))
	for i, seat := range seats {
		plan[i] = seatplan.Seat{ID: seat.ID, Label: seat.Label}
	}
	index := seatplan.LocalIndex(plan)

	titles := make(map[uuid.UUID]string)
	out := make([]response.ShowtimeSummaryResponse, 0, len(showtimes))
	for _, showtime := range showtimes {
		summary, err := s.summarize(ctx, showtime, index, len(seats), titles)
		if err != nil {
			return nil, err
		}
		out = append(out, *summary)
	}

	return out, nil
}

func (s *reportService) summarize(ctx context.Context, showtime *entity.Showtime, index map[uuid.UUID]int, totalSeats int, titles map[uuid.UUID]string) (*response.ShowtimeSummaryResponse, error) {
	title, ok := titles[showtime.MovieID]
	if !ok {
		movie, err := s.repo.Movie.FindByID(ctx, showtime.MovieID)
		if err == nil && movie != nil {
			title = movie.Title
		}
		titles[showtime.MovieID] = title
	}

	bookedIDs, err := s.repo.BookingSeat.FindBookedSeatIDs(ctx, showtime.ID)
	if err != nil {
		return nil, fmt.Errorf("load booked seats: %w", err)
	}

	numbers := make([]int, 0, len(bookedIDs))
	for _, id := range bookedIDs {
		if n, ok := index[id]; ok {
			numbers = append(numbers, n)
		}
	}
	sort.Ints(numbers)

	attendance := len(numbers)
	bookings, err := s.repo.Booking.FindByShowtimeID(ctx, showtime.ID)
	if err != nil {
		return nil, fmt.Errorf("load bookings: %w", err)
	}
	for _, booking := range bookings {
		attendance += booking.ExtraGuests
	}

	return &response.ShowtimeSummaryResponse{
		ShowtimeID:      showtime.ID.String(),
		MovieTitle:      title,
		ShowDate:        showtime.ShowDate.Format("2006-01-02"),
		ShowTime:        showtime.ShowTime.Format("15:04"),
		BookedSeats:     numbers,
		BookedCount:     len(numbers),
		TotalSeats:      totalSeats,
		TotalAttendance: attendance,
	}, nil
}
