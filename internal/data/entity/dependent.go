package entity

import "github.com/google/uuid"

type Dependent struct {
	Base
	UserID     uuid.UUID `db:"user_id"`
	Name       string    `db:"name"`
	Age        int       `db:"age"`
	IsApproved bool      `db:"is_approved"`
}
