package seatplan

import "testing"

func TestPriority(t *testing.T) {
	tests := []struct {
		role string
		want int
	}{
		{RoleJunior, 1},
		{RoleSenior, 2},
		{RoleOfficer, 3},
		{"Officer", 3},
		{"  senior ", 2},
		{"", 1},
		{"captain", 1},
	}
	for _, tt := range tests {
		if got := Priority(tt.role); got != tt.want {
			t.Errorf("Priority(%q) = %d, want %d", tt.role, got, tt.want)
		}
	}
}

func TestAllowed(t *testing.T) {
	officer := RoleOfficer
	senior := RoleSenior

	if !Allowed(RoleJunior, nil) {
		t.Error("junior should be allowed in an unrestricted seat")
	}
	if Allowed(RoleJunior, &officer) {
		t.Error("junior should not be allowed in an officer seat")
	}
	if !Allowed(RoleOfficer, &senior) {
		t.Error("officer should be allowed in a senior seat")
	}
	if !Allowed(RoleSenior, &senior) {
		t.Error("senior should be allowed in a senior seat")
	}
}
