package utils

import "testing"

func TestIsPasswordStrong(t *testing.T) {
	tests := []struct {
		password string
		want     bool
	}{
		{"Aa1!aaaa", true},
		{"Str0ng#Pass", true},
		{"short1!", false},
		{"alllowercase1!", false},
		{"ALLUPPERCASE1!", false},
		{"NoDigits!!", false},
		{"NoSpecial11", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsPasswordStrong(tt.password); got != tt.want {
			t.Errorf("IsPasswordStrong(%q) = %v, want %v", tt.password, got, tt.want)
		}
	}
}
