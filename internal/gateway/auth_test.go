package gateway

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShubhamSPawade/unbound/internal/errors"
)

func TestLogin(t *testing.T) {
	tests := []struct {
		name        string
		handler     http.HandlerFunc
		wantPayload AuthPayload
		wantCode    errors.ErrorCode
		wantMessage string
	}{
		{
			name: "wrapped payload",
			handler: jsonHandler(200, `{"success":true,"message":"Login successful",
				"data":{"token":"abc","role":"Student","email":"student@demo.com","sname":"Demo Student"}}`),
			wantPayload: AuthPayload{Token: "abc", Role: "Student", Email: "student@demo.com", SName: "Demo Student"},
		},
		{
			name:        "bare payload at top level",
			handler:     jsonHandler(200, `{"token":"xyz","role":"College","email":"c@x.com","cname":"ABC College"}`),
			wantPayload: AuthPayload{Token: "xyz", Role: "College", Email: "c@x.com", CName: "ABC College"},
		},
		{
			name:        "success flag with fields at top level",
			handler:     jsonHandler(200, `{"success":true,"token":"t","role":"Admin","email":"a@x.com"}`),
			wantPayload: AuthPayload{Token: "t", Role: "Admin", Email: "a@x.com"},
		},
		{
			name:        "explicit failure with message",
			handler:     jsonHandler(200, `{"success":false,"message":"Invalid credentials"}`),
			wantCode:    errors.ErrCodeBackendRejected,
			wantMessage: "Invalid credentials",
		},
		{
			name:        "explicit failure without message",
			handler:     jsonHandler(200, `{"success":false}`),
			wantCode:    errors.ErrCodeBackendRejected,
			wantMessage: "Login failed",
		},
		{
			name:        "failure status",
			handler:     jsonHandler(401, `{"success":false,"message":"Bad credentials"}`),
			wantCode:    errors.ErrCodeHTTPStatus,
			wantMessage: "Bad credentials",
		},
		{
			name:        "text body",
			handler:     textHandler(200, "maintenance"),
			wantCode:    errors.ErrCodeBackendRejected,
			wantMessage: "maintenance",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := newFakeBackend(t, tt.handler)
			c := newTestClient(t, fb.URL, nil)

			result, err := c.Login(context.Background(), "student@demo.com", "demo123")

			got := fb.last(t)
			assert.Equal(t, http.MethodPost, got.Method)
			assert.Equal(t, "/auth/login", got.Path)
			assert.JSONEq(t, `{"email":"student@demo.com","password":"demo123"}`, string(got.Body))

			if tt.wantCode != "" {
				require.Error(t, err)
				assert.Nil(t, result)
				assert.Equal(t, tt.wantCode, errors.CodeOf(err))
				assert.Equal(t, tt.wantMessage, errors.MessageOf(err))
				return
			}

			require.NoError(t, err)
			assert.True(t, result.Success)
			assert.Equal(t, tt.wantPayload, result.Payload)
			assert.Empty(t, c.Token(), "Login must not set the token by itself")
		})
	}
}

func TestRegister(t *testing.T) {
	t.Run("sends the full request", func(t *testing.T) {
		fb := newFakeBackend(t, jsonHandler(200, `{"success":true,"data":{"token":"r1","role":"College","email":"c@x.com"}}`))
		c := newTestClient(t, fb.URL, nil)

		result, err := c.Register(context.Background(), RegisterRequest{
			Email:        "c@x.com",
			Password:     "pw",
			Role:         "College",
			CName:        "ABC College",
			CDescription: "Engineering",
			Address:      "Pune",
			ContactEmail: "info@abc.edu",
		})
		require.NoError(t, err)
		assert.Equal(t, "r1", result.Payload.Token)

		body := decodeBody(t, fb.last(t).Body)
		assert.Equal(t, "/auth/register", fb.last(t).Path)
		assert.Equal(t, "College", body["role"])
		assert.Equal(t, "ABC College", body["cname"])
		assert.Equal(t, "info@abc.edu", body["contactEmail"])
		assert.NotContains(t, body, "collegeId")
		assert.NotContains(t, body, "sname")
	})

	t.Run("explicit failure falls back to registration message", func(t *testing.T) {
		fb := newFakeBackend(t, jsonHandler(200, `{"success":false}`))
		c := newTestClient(t, fb.URL, nil)

		_, err := c.Register(context.Background(), RegisterRequest{Email: "x@x.com"})

		require.Error(t, err)
		assert.Equal(t, "Registration failed", errors.MessageOf(err))
	})
}

func TestPasswordEndpoints(t *testing.T) {
	fb := newFakeBackend(t, jsonHandler(200, `{"success":true,"message":"Reset password link sent to email"}`))
	c := newTestClient(t, fb.URL, nil)
	ctx := context.Background()

	resp, err := c.ForgotPassword(ctx, "s@x.com")
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "/auth/forgot-password", fb.last(t).Path)
	assert.JSONEq(t, `{"email":"s@x.com"}`, string(fb.last(t).Body))

	_, err = c.ResetPassword(ctx, "tok", "newpw")
	require.NoError(t, err)
	assert.Equal(t, "/auth/reset-password", fb.last(t).Path)
	assert.JSONEq(t, `{"token":"tok","newPassword":"newpw"}`, string(fb.last(t).Body))
}
