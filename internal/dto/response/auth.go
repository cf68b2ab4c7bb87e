package response

import (
	"time"

	"ticket-portal/internal/data/entity"
)

type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

type AdminAuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

func AuthToResponse(user *entity.User, session *entity.Session) AuthResponse {
	return AuthResponse{
		Token:     session.Token.String(),
		ExpiresAt: session.ExpiresAt,
		User:      UserToResponse(user),
	}
}

func AdminAuthToResponse(session *entity.Session) AdminAuthResponse {
	return AdminAuthResponse{
		Token:     session.Token.String(),
		ExpiresAt: session.ExpiresAt,
	}
}
