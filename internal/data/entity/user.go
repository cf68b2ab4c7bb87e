package entity

// Role tiers double as seat restriction tags. Priorities live in the seatplan
// package.
type UserRole string

const (
	RoleJunior  UserRole = "junior"
	RoleSenior  UserRole = "senior"
	RoleOfficer UserRole = "officer"
)

type User struct {
	Base
	FullName     string   `db:"full_name"`
	Email        string   `db:"email"`
	PasswordHash string   `db:"password"`
	Role         UserRole `db:"role"`
	IsApproved   bool     `db:"is_approved"`
}
