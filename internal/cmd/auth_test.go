package cmd

import (
	"encoding/json"
	"net/http"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShubhamSPawade/unbound/internal/errors"
)

func TestLoginPersistsAcrossInvocations(t *testing.T) {
	b := newBackend(t, map[string]http.HandlerFunc{
		"POST /auth/login": loginHandler("Student"),
	})
	s := newSandbox(t, b.api())

	res := s.run("auth", "login", "--email", "ada@demo.com", "--password", "secret")
	require.NoError(t, res.err, res.stderr)
	assert.Contains(t, res.stdout, "Signed in as Ada")
	assert.Contains(t, res.stdout, "/student/dashboard")
	assert.NotContains(t, res.stdout, "tok-Student", "token must not be printed")

	_, err := os.Stat(s.storagePath())
	require.NoError(t, err)

	res = s.run("auth", "status", "--output", "json")
	require.NoError(t, res.err, res.stderr)
	var state struct {
		IsAuthenticated bool `json:"isAuthenticated"`
		User            struct {
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &state))
	assert.True(t, state.IsAuthenticated)
	assert.Equal(t, "ada@demo.com", state.User.Email)
	assert.Equal(t, "Student", state.User.Role)
	assert.NotContains(t, res.stdout, "tok-Student")

	res = s.run("auth", "redirect")
	require.NoError(t, res.err)
	assert.Equal(t, "/student/dashboard", strings.TrimSpace(res.stdout))

	res = s.run("auth", "logout")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Signed out ada@demo.com")

	res = s.run("auth", "status")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Not signed in")
}

func TestLoginRejected(t *testing.T) {
	b := newBackend(t, map[string]http.HandlerFunc{
		"POST /auth/login": loginHandler("Student"),
	})
	s := newSandbox(t, b.api())

	res := s.run("auth", "login", "--email", "ada@demo.com", "--password", "wrong")

	require.Error(t, res.err)
	ue, ok := errors.As(res.err)
	require.True(t, ok)
	assert.Equal(t, 401, ue.StatusCode)
	assert.Contains(t, res.stderr, "Invalid credentials")

	res = s.run("auth", "status")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Not signed in")
}

func TestLoginRequiresCredentials(t *testing.T) {
	b := newBackend(t, nil)
	s := newSandbox(t, b.api())

	res := s.run("auth", "login", "--email", "ada@demo.com")

	require.Error(t, res.err)
	assert.Equal(t, errors.ErrCodeValidation, errors.CodeOf(res.err))
	assert.False(t, b.called("POST /auth/login"))
}

func TestRegisterPasswordMismatch(t *testing.T) {
	b := newBackend(t, nil)
	s := newSandbox(t, b.api())

	res := s.run("auth", "register",
		"--email", "ada@demo.com", "--name", "Ada",
		"--password", "secret", "--confirm-password", "secrets")

	require.Error(t, res.err)
	assert.Equal(t, errors.ErrCodePasswordMismatch, errors.CodeOf(res.err))
	assert.False(t, b.called("POST /auth/register"))
}

func TestRegisterUnknownRole(t *testing.T) {
	s := newSandbox(t, newBackend(t, nil).api())

	res := s.run("auth", "register", "--role", "Organizer", "--email", "ada@demo.com", "--password", "secret")

	require.Error(t, res.err)
	assert.Equal(t, errors.ErrCodeValidation, errors.CodeOf(res.err))
}

func TestRegisterCollege(t *testing.T) {
	var got map[string]any
	b := newBackend(t, map[string]http.HandlerFunc{
		"POST /auth/register": func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewDecoder(r.Body).Decode(&got)
			reply(w, http.StatusOK, `{"success":true,"data":{"token":"tok-c","role":"College","email":"fest@college.edu"}}`)
		},
	})
	s := newSandbox(t, b.api())

	res := s.run("auth", "register", "--role", "college",
		"--email", "fest@college.edu", "--college-name", "Demo College",
		"--password", "secret", "--confirm-password", "secret",
		"--output", "json")

	require.NoError(t, res.err, res.stderr)
	assert.Equal(t, "College", got["role"])
	assert.Equal(t, "Demo College", got["cname"])

	var view struct {
		User struct {
			CName string `json:"cname"`
		} `json:"user"`
		Redirect string `json:"redirect"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &view))
	assert.Equal(t, "Demo College", view.User.CName)
	assert.Equal(t, "/college/dashboard", view.Redirect)
}

func TestForgotPassword(t *testing.T) {
	tests := []struct {
		name     string
		handler  http.HandlerFunc
		wantCode errors.ErrorCode
	}{
		{
			name:    "sent",
			handler: replyWith(200, `{"success":true,"message":"Password reset email sent"}`),
		},
		{
			name:     "unknown account",
			handler:  replyWith(400, `{"success":false,"message":"Account not found"}`),
			wantCode: errors.ErrCodeAccountNotFound,
		},
		{
			name:     "endpoint missing",
			wantCode: errors.ErrCodeFeatureUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			routes := map[string]http.HandlerFunc{}
			if tt.handler != nil {
				routes["POST /auth/forgot-password"] = tt.handler
			}
			s := newSandbox(t, newBackend(t, routes).api())

			res := s.run("auth", "forgot-password", "--email", "ada@demo.com")

			if tt.wantCode == "" {
				require.NoError(t, res.err, res.stderr)
				assert.Contains(t, res.stdout, "Reset link sent to ada@demo.com")
				return
			}
			require.Error(t, res.err)
			assert.Equal(t, tt.wantCode, errors.CodeOf(res.err))
		})
	}
}

func TestResetPasswordMismatch(t *testing.T) {
	b := newBackend(t, nil)
	s := newSandbox(t, b.api())

	res := s.run("auth", "reset-password", "--token", "abc", "--password", "new", "--confirm-password", "old")

	require.Error(t, res.err)
	assert.Equal(t, errors.ErrCodePasswordMismatch, errors.CodeOf(res.err))
	assert.False(t, b.called("POST /auth/reset-password"))
}

func TestRedirectForRole(t *testing.T) {
	s := newSandbox(t, newBackend(t, nil).api())

	tests := map[string]string{
		"Student":   "/student/dashboard",
		"College":   "/college/dashboard",
		"Admin":     "/admin/dashboard",
		"Organizer": "/",
	}
	for role, want := range tests {
		res := s.run("auth", "redirect", role, "--output", "json")
		require.NoError(t, res.err)
		var got redirectResult
		require.NoError(t, json.Unmarshal([]byte(res.stdout), &got))
		assert.Equal(t, want, got.Path, role)
	}
}
