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

type SeatRepository interface {
	CreateIfMissing(ctx context.Context, seat *entity.Seat) error
	FindAll(ctx context.Context) ([]*entity.Seat, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Seat, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Seat, error)
	UpdateRestriction(ctx context.Context, id uuid.UUID, restricted *string) error
}

type seatRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSeatRepository(db database.PgxIface, log *zap.Logger) SeatRepository {
	return &seatRepository{
		db:  db,
		log: log.With(zap.String("repository", "seat")),
	}
}

// CreateIfMissing inserts the seat unless a seat with the same label already
// exists. Seeding runs it per label on every start, so it has to be idempotent.
func (r *seatRepository) CreateIfMissing(ctx context.Context, seat *entity.Seat) error {
	query := `
		INSERT INTO seats (id, label, restricted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (label) DO NOTHING
	`

	_, err := r.db.Exec(ctx, query,
		seat.ID,
		seat.Label,
		seat.Restricted,
		seat.CreatedAt,
		seat.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create seat",
			zap.Error(err),
			zap.String("label", seat.Label),
		)
		return fmt.Errorf("create seat %s: %w", seat.Label, err)
	}

	return nil
}

func (r *seatRepository) FindAll(ctx context.Context) ([]*entity.Seat, error) {
	query := `
		SELECT id, label, restricted, created_at, updated_at
		FROM seats
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find seats", zap.Error(err))
		return nil, fmt.Errorf("find seats: %w", err)
	}
	defer rows.Close()

	return scanSeats(rows)
}

func (r *seatRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Seat, error) {
	query := `
		SELECT id, label, restricted, created_at, updated_at
		FROM seats
		WHERE id = $1
	`

	var seat entity.Seat
	err := r.db.QueryRow(ctx, query, id).Scan(
		&seat.ID,
		&seat.Label,
		&seat.Restricted,
		&seat.CreatedAt,
		&seat.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find seat by ID",
			zap.Error(err),
			zap.String("seat_id", id.String()),
		)
		return nil, fmt.Errorf("find seat by ID %s: %w", id.String(), err)
	}

	return &seat, nil
}

func (r *seatRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Seat, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, label, restricted, created_at, updated_at
		FROM seats
		WHERE id = ANY($1)
	`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		r.log.Error("Failed to find seats by IDs", zap.Error(err))
		return nil, fmt.Errorf("find seats by IDs: %w", err)
	}
	defer rows.Close()

	return scanSeats(rows)
}

func scanSeats(rows pgx.Rows) ([]*entity.Seat, error) {
	var seats []*entity.Seat
	for rows.Next() {
		var seat entity.Seat
		err := rows.Scan(
			&seat.ID,
			&seat.Label,
			&seat.Restricted,
			&seat.CreatedAt,
			&seat.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan seat row: %w", err)
		}
		seats = append(seats, &seat)
	}
	return seats, nil
}

func (r *seatRepository) UpdateRestriction(ctx context.Context, id uuid.UUID, restricted *string) error {
	query := `
		UPDATE seats
		SET restricted = $2, updated_at = now()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, id, restricted)
	if err != nil {
		r.log.Error("Failed to update seat restriction",
			zap.Error(err),
			zap.String("seat_id", id.String()),
		)
		return fmt.Errorf("update seat restriction %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("seat %s not found", id.String())
	}

	return nil
}
