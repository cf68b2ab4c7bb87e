package usecase

import (
	"context"
	"fmt"
	"time"

	"ticket-portal/internal/data/entity"
	"ticket-portal/internal/data/repository"
	"ticket-portal/internal/dto/request"
	"ticket-portal/internal/dto/response"
	"ticket-portal/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserService interface {
	GetProfile(ctx context.Context, userID string) (*response.UserResponse, error)
	AddDependent(ctx context.Context, userID string, req *request.CreateDependentRequest) (*response.DependentResponse, error)
	GetDependents(ctx context.Context, userID string) ([]response.DependentResponse, error)
}

type userService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewUserService(repo *repository.Repository, log *zap.Logger) UserService {
	return &userService{
		repo: repo,
		log:  log.With(zap.String("service", "user")),
	}
}

func (s *userService) GetProfile(ctx context.Context, userID string) (*response.UserResponse, error) {
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

	resp := response.UserToResponse(user)
	return &resp, nil
}

// AddDependent registers a dependent pending admin approval. Unapproved
// dependents cannot be seated in bookings.
func (s *userService) AddDependent(ctx context.Context, userID string, req *request.CreateDependentRequest) (*response.DependentResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	now := time.Now()
	dep := &entity.Dependent{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:     userUUID,
		Name:       req.Name,
		Age:        req.Age,
		IsApproved: false,
	}

	if err := s.repo.Dependent.Create(ctx, dep); err != nil {
		return nil, err
	}

	s.log.Info("Dependent added, awaiting approval",
		zap.String("user_id", userID),
		zap.String("dependent_id", dep.ID.String()),
	)

	resp := response.DependentToResponse(dep)
	return &resp, nil
}

func (s *userService) GetDependents(ctx context.Context, userID string) ([]response.DependentResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	deps, err := s.repo.Dependent.FindByUserID(ctx, userUUID)
	if err != nil {
		return nil, fmt.Errorf("load dependents: %w", err)
	}

	return response.DependentsToResponse(deps), nil
}
