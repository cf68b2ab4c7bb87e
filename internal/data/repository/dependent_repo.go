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

type DependentRepository interface {
	Create(ctx context.Context, dep *entity.Dependent) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Dependent, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Dependent, error)
	FindApprovedByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Dependent, error)
	FindPendingApproval(ctx context.Context) ([]*entity.Dependent, error)
	Update(ctx context.Context, dep *entity.Dependent) error
}

type dependentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewDependentRepository(db database.PgxIface, log *zap.Logger) DependentRepository {
	return &dependentRepository{
		db:  db,
		log: log.With(zap.String("repository", "dependent")),
	}
}

func (r *dependentRepository) Create(ctx context.Context, dep *entity.Dependent) error {
	query := `
		INSERT INTO dependents (id, user_id, name, age, is_approved, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		dep.ID,
		dep.UserID,
		dep.Name,
		dep.Age,
		dep.IsApproved,
		dep.CreatedAt,
		dep.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create dependent",
			zap.Error(err),
			zap.String("user_id", dep.UserID.String()),
		)
		return fmt.Errorf("create dependent for user %s: %w", dep.UserID.String(), err)
	}

	return nil
}

func (r *dependentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Dependent, error) {
	query := `
		SELECT id, user_id, name, age, is_approved, created_at, updated_at
		FROM dependents
		WHERE id = $1
	`

	var dep entity.Dependent
	err := r.db.QueryRow(ctx, query, id).Scan(
		&dep.ID,
		&dep.UserID,
		&dep.Name,
		&dep.Age,
		&dep.IsApproved,
		&dep.CreatedAt,
		&dep.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find dependent by ID",
			zap.Error(err),
			zap.String("dependent_id", id.String()),
		)
		return nil, fmt.Errorf("find dependent by ID %s: %w", id.String(), err)
	}

	return &dep, nil
}

func (r *dependentRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Dependent, error) {
	return r.findByUser(ctx, userID, false)
}

func (r *dependentRepository) FindApprovedByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Dependent, error) {
	return r.findByUser(ctx, userID, true)
}

func (r *dependentRepository) findByUser(ctx context.Context, userID uuid.UUID, approvedOnly bool) ([]*entity.Dependent, error) {
	query := `
		SELECT id, user_id, name, age, is_approved, created_at, updated_at
		FROM dependents
		WHERE user_id = $1
	`
	if approvedOnly {
		query += ` AND is_approved = true`
	}
	query += ` ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find dependents by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find dependents by user ID %s: %w", userID.String(), err)
	}
	defer rows.Close()

	return scanDependents(rows)
}

func (r *dependentRepository) FindPendingApproval(ctx context.Context) ([]*entity.Dependent, error) {
	query := `
		SELECT id, user_id, name, age, is_approved, created_at, updated_at
		FROM dependents
		WHERE is_approved = false
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find pending dependents", zap.Error(err))
		return nil, fmt.Errorf("find pending dependents: %w", err)
	}
	defer rows.Close()

	return scanDependents(rows)
}

func scanDependents(rows pgx.Rows) ([]*entity.Dependent, error) {
	var deps []*entity.Dependent
	for rows.Next() {
		var dep entity.Dependent
		err := rows.Scan(
			&dep.ID,
			&dep.UserID,
			&dep.Name,
			&dep.Age,
			&dep.IsApproved,
			&dep.CreatedAt,
			&dep.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan dependent row: %w", err)
		}
		deps = append(deps, &dep)
	}
	return deps, nil
}

func (r *dependentRepository) Update(ctx context.Context, dep *entity.Dependent) error {
	query := `
		UPDATE dependents
		SET name = $2, age = $3, is_approved = $4, updated_at = $5
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		dep.ID,
		dep.Name,
		dep.Age,
		dep.IsApproved,
		dep.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update dependent",
			zap.Error(err),
			zap.String("dependent_id", dep.ID.String()),
		)
		return fmt.Errorf("update dependent %s: %w", dep.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("dependent %s not found", dep.ID.String())
	}

	return nil
}
