package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session is a server-side revocable token. Admin sessions carry no user id;
// admin identity comes from configured credentials, not a user row.
type Session struct {
	BaseSimple
	UserID    *uuid.UUID `db:"user_id"`
	Token     uuid.UUID  `db:"token"`
	IsAdmin   bool       `db:"is_admin"`
	ExpiresAt time.Time  `db:"expires_at"`
	RevokedAt *time.Time `db:"revoked_at"`
}
