package usecase

import (
	"context"
	"fmt"
	"time"

	"ticket-portal/internal/data/repository"
	"ticket-portal/internal/dto/response"
	"ticket-portal/internal/queue"
	"ticket-portal/pkg/mailer"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AdminService interface {
	GetPendingUsers(ctx context.Context) ([]response.UserResponse, error)
	ApproveUser(ctx context.Context, userID string) error
	GetPendingDependents(ctx context.Context) ([]response.PendingDependentResponse, error)
	ApproveDependent(ctx context.Context, dependentID string) error
}

type adminService struct {
	repo      *repository.Repository
	mail      *mailer.Mailer
	publisher *queue.Publisher
	log       *zap.Logger
}

func NewAdminService(repo *repository.Repository, mail *mailer.Mailer, publisher *queue.Publisher, log *zap.Logger) AdminService {
	return &adminService{
		repo:      repo,
		mail:      mail,
		publisher: publisher,
		log:       log.With(zap.String("service", "admin")),
	}
}

func (s *adminService) GetPendingUsers(ctx context.Context) ([]response.UserResponse, error) {
	users, err := s.repo.User.FindPendingApproval(ctx)
	if err != nil {
		return nil, fmt.Errorf("load pending users: %w", err)
	}
	return response.UsersToResponse(users), nil
}

func (s *adminService) ApproveUser(ctx context.Context, userID string) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	user, err := s.repo.User.FindByID(ctx, userUUID)
	if err != nil {
		return fmt.Errorf("load user: %w", err)
	}
	if user == nil {
		return fmt.Errorf("user %s not found", userID)
	}
	if user.IsApproved {
		return nil
	}

	user.IsApproved = true
	user.UpdatedAt = time.Now()
	if err := s.repo.User.Update(ctx, user); err != nil {
		return err
	}

	if s.mail != nil {
		to, name := user.Email, user.FullName
		go func() {
			if err := s.mail.SendUserApproved(to, name); err != nil {
				s.log.Warn("Failed to send approval mail",
					zap.Error(err),
					zap.String("user_id", userID),
				)
			}
		}()
	}

	s.publisher.PublishUserApproved(ctx, queue.UserApprovedEvent{
		UserID:     user.ID.String(),
		Email:      user.Email,
		FullName:   user.FullName,
		Role:       string(user.Role),
		ApprovedAt: user.UpdatedAt.Format(time.RFC3339),
	})

	s.log.Info("User approved", zap.String("user_id", userID))
	return nil
}

func (s *adminService) GetPendingDependents(ctx context.Context) ([]response.PendingDependentResponse, error) {
	deps, err := s.repo.Dependent.FindPendingApproval(ctx)
	if err != nil {
		return nil, fmt.Errorf("load pending dependents: %w", err)
	}

	out := make([]response.PendingDependentResponse, 0, len(deps))
	for _, dep := range deps {
		item := response.PendingDependentResponse{
			DependentResponse: response.DependentToResponse(dep),
			UserID:            dep.UserID.String(),
		}
		user, err := s.repo.User.FindByID(ctx, dep.UserID)
		if err != nil {
			return nil, fmt.Errorf("load dependent owner: %w", err)
		}
		if user != nil {
			item.UserName = user.FullName
			item.UserEmail = user.Email
		}
		out = append(out, item)
	}

	return out, nil
}

func (s *adminService) ApproveDependent(ctx context.Context, dependentID string) error {
	depUUID, err := uuid.Parse(dependentID)
	if err != nil {
		return fmt.Errorf("invalid dependent ID format %s: %w", dependentID, err)
	}

	dep, err := s.repo.Dependent.FindByID(ctx, depUUID)
	if err != nil {
		return fmt.Errorf("load dependent: %w", err)
	}
	if dep == nil {
		return fmt.Errorf("dependent %s not found", dependentID)
	}
	if dep.IsApproved {
		return nil
	}

	dep.IsApproved = true
	dep.UpdatedAt = time.Now()
	if err := s.repo.Dependent.Update(ctx, dep); err != nil {
		return err
	}

	if s.mail != nil {
		user, err := s.repo.User.FindByID(ctx, dep.UserID)
		if err == nil && user != nil {
			to, name := user.Email, user.FullName
			go func() {
				if err := s.mail.SendDependentApproved(to, name, dep.Name); err != nil {
					s.log.Warn("Failed to send dependent approval mail",
						zap.Error(err),
						zap.String("dependent_id", dependentID),
					)
				}
			}()
		}
	}

	s.publisher.PublishDependentApproved(ctx, queue.DependentApprovedEvent{
		DependentID: dep.ID.String(),
		UserID:      dep.UserID.String(),
		Name:        dep.Name,
		ApprovedAt:  dep.UpdatedAt.Format(time.RFC3339),
	})

	s.log.Info("Dependent approved", zap.String("dependent_id", dependentID))
	return nil
}
