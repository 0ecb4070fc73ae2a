package session

import "strings"

// Role determines which dashboard a session may use.
type Role string

const (
	RoleStudent Role = "Student"
	RoleCollege Role = "College"
	RoleAdmin   Role = "Admin"
)

// Roles lists every known role.
func Roles() []Role {
	return []Role{RoleStudent, RoleCollege, RoleAdmin}
}

// ParseRole matches s against the known roles, ignoring case.
func ParseRole(s string) (Role, bool) {
	for _, r := range Roles() {
		if strings.EqualFold(strings.TrimSpace(s), string(r)) {
			return r, true
		}
	}
	return "", false
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleCollege, RoleAdmin:
		return true
	}
	return false
}

// Home paths for each role.
const (
	StudentDashboardPath = "/student/dashboard"
	CollegeDashboardPath = "/college/dashboard"
	AdminDashboardPath   = "/admin/dashboard"
	HomePath             = "/"
)

// RedirectPath maps a role to its landing path. Every input maps to a
// path; unknown roles land on HomePath. Matching is exact.
func RedirectPath(role string) string {
	switch Role(role) {
	case RoleStudent:
		return StudentDashboardPath
	case RoleCollege:
		return CollegeDashboardPath
	case RoleAdmin:
		return AdminDashboardPath
	default:
		return HomePath
	}
}
