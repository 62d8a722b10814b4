package enums

import "testing"

func TestUserRoleMeets(t *testing.T) {
	tests := []struct {
		role UserRole
		min  UserRole
		want bool
	}{
		{UserRoleBasic, UserRoleBasic, true},
		{UserRoleBasic, UserRoleVerified, false},
		{UserRoleBasic, UserRoleAdmin, false},
		{UserRoleVerified, UserRoleBasic, true},
		{UserRoleVerified, UserRoleVerified, true},
		{UserRoleVerified, UserRoleAdmin, false},
		{UserRoleAdmin, UserRoleBasic, true},
		{UserRoleAdmin, UserRoleVerified, true},
		{UserRoleAdmin, UserRoleAdmin, true},
		{UserRole("ghost"), UserRoleBasic, false},
		{UserRoleAdmin, UserRole("ghost"), false},
	}

	for _, tt := range tests {
		if got := tt.role.Meets(tt.min); got != tt.want {
			t.Fatalf("%s.Meets(%s) = %v, want %v", tt.role, tt.min, got, tt.want)
		}
	}
}

func TestParseUserRole(t *testing.T) {
	role, err := ParseUserRole("verified")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if role != UserRoleVerified {
		t.Fatalf("unexpected role %s", role)
	}

	if _, err := ParseUserRole("superuser"); err == nil {
		t.Fatal("expected invalid role to error")
	}
}
