package ux

import (
	"strings"
	"testing"
)

func TestSuggestNextSteps(t *testing.T) {
	tests := []struct {
		name          string
		authenticated bool
		role          string
		want          string
	}{
		{"anonymous", false, "", "unbound auth login"},
		{"student", true, "Student", "unbound student dashboard"},
		{"college", true, "College", "unbound college dashboard"},
		{"admin", true, "Admin", "unbound admin dashboard"},
		{"unknown role", true, "Organizer", "unbound auth status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SuggestNextSteps(tt.authenticated, tt.role)
			if !strings.Contains(got, tt.want) {
				t.Errorf("SuggestNextSteps() = %q, want it to mention %q", got, tt.want)
			}
		})
	}
}
