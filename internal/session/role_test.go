package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedirectPath(t *testing.T) {
	tests := []struct {
		role string
		want string
	}{
		{"Student", "/student/dashboard"},
		{"College", "/college/dashboard"},
		{"Admin", "/admin/dashboard"},
		{"student", "/"},
		{"ADMIN", "/"},
		{"", "/"},
		{"Organizer", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			assert.Equal(t, tt.want, RedirectPath(tt.role))
		})
	}
}

func TestParseRole(t *testing.T) {
	r, ok := ParseRole(" college ")
	assert.True(t, ok)
	assert.Equal(t, RoleCollege, r)

	_, ok = ParseRole("organizer")
	assert.False(t, ok)
}

func TestRoleValid(t *testing.T) {
	for _, r := range Roles() {
		assert.True(t, r.Valid(), r)
	}
	assert.False(t, Role("student").Valid())
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Demo Student", (&Session{Role: RoleStudent, SName: "Demo Student"}).DisplayName())
	assert.Equal(t, "Demo College", (&Session{Role: RoleCollege, SName: "x", CName: "Demo College"}).DisplayName())
	assert.Equal(t, "admin@demo.com", (&Session{Role: RoleAdmin, Email: "admin@demo.com"}).DisplayName())
}
