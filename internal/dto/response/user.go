package response

import (
	"time"

	"ticket-portal/internal/data/entity"
)

type UserResponse struct {
	ID         string          `json:"id"`
	FullName   string          `json:"full_name"`
	Email      string          `json:"email"`
	Role       entity.UserRole `json:"role"`
	IsApproved bool            `json:"is_approved"`
	CreatedAt  time.Time       `json:"created_at"`
}

type DependentResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Age        int       `json:"age"`
	IsApproved bool      `json:"is_approved"`
	CreatedAt  time.Time `json:"created_at"`
}

func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:         user.ID.String(),
		FullName:   user.FullName,
		Email:      user.Email,
		Role:       user.Role,
		IsApproved: user.IsApproved,
		CreatedAt:  user.CreatedAt,
	}
}

func UsersToResponse(users []*entity.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, user := range users {
		out = append(out, UserToResponse(user))
	}
	return out
}

func DependentToResponse(dep *entity.Dependent) DependentResponse {
	return DependentResponse{
		ID:         dep.ID.String(),
		Name:       dep.Name,
		Age:        dep.Age,
		IsApproved: dep.IsApproved,
		CreatedAt:  dep.CreatedAt,
	}
}

func DependentsToResponse(deps []*entity.Dependent) []DependentResponse {
	out := make([]DependentResponse, 0, len(deps))
	for _, dep := range deps {
		out = append(out, DependentToResponse(dep))
	}
	return out
}

// PendingDependentResponse is the admin approval view; it carries the owning
// account so the admin knows whose dependent they are approving.
type PendingDependentResponse struct {
	DependentResponse
	UserID    string `json:"user_id"`
	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email"`
}
