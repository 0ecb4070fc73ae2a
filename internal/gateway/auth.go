package gateway

import (
	"context"
	"net/http"

	"github.com/ShubhamSPawade/unbound/internal/errors"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates with email and password. It does not set the token;
// that is the session's decision.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	c.logger.Info("attempting login", "email", email)

	resp, err := c.send(ctx, http.MethodPost, "/auth/login", loginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	return reconcileAuth(resp, "Login failed")
}

// Register creates an account.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	c.logger.Info("attempting registration", "email", req.Email, "role", req.Role)

	resp, err := c.send(ctx, http.MethodPost, "/auth/register", req)
	if err != nil {
		return nil, err
	}
	return reconcileAuth(resp, "Registration failed")
}

// reconcileAuth accepts both the wrapped and the bare auth payload. An
// explicit failure is reported with the backend message or fallback.
func reconcileAuth(resp *Response, fallback string) (*AuthResult, error) {
	if !resp.Success {
		msg := resp.Message
		if msg == "" {
			msg = fallback
		}
		return nil, errors.New(errors.ErrCodeBackendRejected, msg).WithStatus(resp.StatusCode)
	}

	src := resp.Body
	if resp.Shape == ShapeWrapped && resp.HasData() {
		src = resp.Data
	}

	var payload AuthPayload
	if err := (&Response{Data: src, StatusCode: resp.StatusCode}).Decode(&payload); err != nil {
		return nil, err
	}
	return &AuthResult{Success: true, Payload: payload}, nil
}

// ForgotPassword asks the backend to email a reset link.
func (c *Client) ForgotPassword(ctx context.Context, email string) (*Response, error) {
	c.logger.Info("requesting password reset", "email", email)
	return c.send(ctx, http.MethodPost, "/auth/forgot-password", map[string]string{"email": email})
}

// ResetPassword sets a new password using the token from the reset link.
func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) (*Response, error) {
	c.logger.Info("resetting password")
	return c.send(ctx, http.MethodPost, "/auth/reset-password", map[string]string{
		"token":       token,
		"newPassword": newPassword,
	})
}

// HealthCheck calls GET /health.
func (c *Client) HealthCheck(ctx context.Context) (*Response, error) {
	return c.get(ctx, "/health")
}

// Ping calls GET /health/ping.
func (c *Client) Ping(ctx context.Context) (*Response, error) {
	return c.get(ctx, "/health/ping")
}

// ProtectedEndpoint calls GET /protected, which only succeeds with a valid token.
func (c *Client) ProtectedEndpoint(ctx context.Context) (*Response, error) {
	return c.get(ctx, "/protected")
}

// Users lists every account.
func (c *Client) Users(ctx context.Context) (*Response, error) {
	return c.get(ctx, "/users")
}
