package seatplan

import "strings"

// Role tiers, lowest to highest. A seat with no restriction is treated as the
// lowest tier, so any role may sit in it.
const (
	RoleJunior  = "junior"
	RoleSenior  = "senior"
	RoleOfficer = "officer"
)

var rolePriority = map[string]int{
	RoleJunior:  1,
	RoleSenior:  2,
	RoleOfficer: 3,
}

// Priority returns the integer rank of a role. Unknown or empty roles rank as
// junior.
func Priority(role string) int {
	if p, ok := rolePriority[strings.ToLower(strings.TrimSpace(role))]; ok {
		return p
	}
	return 1
}

// ValidRole reports whether role names one of the known tiers.
func ValidRole(role string) bool {
	_, ok := rolePriority[strings.ToLower(strings.TrimSpace(role))]
	return ok
}

// Allowed reports whether a user of the given role may occupy a seat with the
// given restriction tier. A nil restriction means the seat is unrestricted.
func Allowed(userRole string, restriction *string) bool {
	tier := ""
	if restriction != nil {
		tier = *restriction
	}
	return Priority(userRole) >= Priority(tier)
}
