package repository

import (
	"context"
	"fmt"

	"ticket-portal/internal/data/entity"
	"ticket-portal/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingSeatRepository interface {
	CreateBatchTx(ctx context.Context, tx pgx.Tx, seats []*entity.BookingSeat) error
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.BookingSeat, error)
	FindBookedSeatIDs(ctx context.Context, showtimeID uuid.UUID) ([]uuid.UUID, error)
	FindBookedSeatIDsTx(ctx context.Context, tx pgx.Tx, showtimeID uuid.UUID) ([]uuid.UUID, error)
}

type bookingSeatRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingSeatRepository(db database.PgxIface, log *zap.Logger) BookingSeatRepository {
	return &bookingSeatRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking_seat")),
	}
}

// CreateBatchTx inserts all seat rows in one statement inside the caller's
// transaction. The UNIQUE (showtime_id, seat_id) constraint rejects the whole
// batch if any seat was taken by a concurrent booking.
func (r *bookingSeatRepository) CreateBatchTx(ctx context.Context, tx pgx.Tx, seats []*entity.BookingSeat) error {
	if len(seats) == 0 {
		return nil
	}

	query := `INSERT INTO booking_seats (id, booking_id, showtime_id, seat_id, position, created_at) VALUES `
	args := make([]interface{}, 0, len(seats)*6)
	for i, seat := range seats {
		if i > 0 {
			query += ", "
		}
		base := i * 6
		query += fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d)", base+1, base+2, base+3, base+4, base+5, base+6)
		args = append(args, seat.ID, seat.BookingID, seat.ShowtimeID, seat.SeatID, seat.Position, seat.CreatedAt)
	}

	_, err := tx.Exec(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to create booking seats",
			zap.Error(err),
			zap.String("booking_id", seats[0].BookingID.String()),
			zap.Int("count", len(seats)),
		)
		return fmt.Errorf("create booking seats: %w", err)
	}

	return nil
}

func (r *bookingSeatRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.BookingSeat, error) {
	query := `
		SELECT id, booking_id, showtime_id, seat_id, position, created_at
		FROM booking_seats
		WHERE booking_id = $1
		ORDER BY position
	`

	rows, err := r.db.Query(ctx, query, bookingID)
	if err != nil {
		r.log.Error("Failed to find booking seats",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find booking seats for %s: %w", bookingID.String(), err)
	}
	defer rows.Close()

	var seats []*entity.BookingSeat
	for rows.Next() {
		var seat entity.BookingSeat
		err := rows.Scan(
			&seat.ID,
			&seat.BookingID,
			&seat.ShowtimeID,
			&seat.SeatID,
			&seat.Position,
			&seat.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan booking seat row", zap.Error(err))
			return nil, fmt.Errorf("scan booking seat row: %w", err)
		}
		seats = append(seats, &seat)
	}

	return seats, nil
}

func (r *bookingSeatRepository) FindBookedSeatIDs(ctx context.Context, showtimeID uuid.UUID) ([]uuid.UUID, error) {
	return r.findBookedSeatIDs(ctx, r.db, showtimeID)
}

// FindBookedSeatIDsTx rereads the booked set inside the booking transaction,
// right before the insert.
func (r *bookingSeatRepository) FindBookedSeatIDsTx(ctx context.Context, tx pgx.Tx, showtimeID uuid.UUID) ([]uuid.UUID, error) {
	return r.findBookedSeatIDs(ctx, tx, showtimeID)
}

type pgxQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func (r *bookingSeatRepository) findBookedSeatIDs(ctx context.Context, q pgxQuerier, showtimeID uuid.UUID) ([]uuid.UUID, error) {
	query := `
		SELECT seat_id
		FROM booking_seats
		WHERE showtime_id = $1
	`

	rows, err := q.Query(ctx, query, showtimeID)
	if err != nil {
		r.log.Error("Failed to find booked seat IDs",
			zap.Error(err),
			zap.String("showtime_id", showtimeID.String()),
		)
		return nil, fmt.Errorf("find booked seat IDs for showtime %s: %w", showtimeID.String(), err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			r.log.Error("Failed to scan booked seat ID", zap.Error(err))
			return nil, fmt.Errorf("scan booked seat ID: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}
