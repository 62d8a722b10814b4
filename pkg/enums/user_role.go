package enums

import "fmt"

// UserRole represents the capability tier assigned to a user.
type UserRole string

const (
	UserRoleBasic    UserRole = "basic"
	UserRoleVerified UserRole = "verified"
	UserRoleAdmin    UserRole = "admin"
)

var userRoleRank = map[UserRole]int{
	UserRoleBasic:    1,
	UserRoleVerified: 2,
	UserRoleAdmin:    3,
}

// String implements fmt.Stringer.
func (r UserRole) String() string {
	return string(r)
}

// IsValid reports whether the value is a known UserRole.
func (r UserRole) IsValid() bool {
	_, ok := userRoleRank[r]
	return ok
}

// Meets reports whether the role grants at least the capabilities of min.
// This is the single authorization predicate; handlers never compare role
// strings directly.
func (r UserRole) Meets(min UserRole) bool {
	have, ok := userRoleRank[r]
	if !ok {
		return false
	}
	want, ok := userRoleRank[min]
	if !ok {
		return false
	}
	return have >= want
}

// ParseUserRole converts raw input into a UserRole.
func ParseUserRole(value string) (UserRole, error) {
	role := UserRole(value)
	if !role.IsValid() {
		return "", fmt.Errorf("invalid user role %q", value)
	}
	return role, nil
}
