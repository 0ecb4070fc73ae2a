package health

import (
	"context"
	"time"

	"github.com/ShubhamSPawade/unbound/internal/errors"
)

// TokenChecker verifies that the current token is accepted by the backend.
type TokenChecker struct {
	token func() string
	call  EndpointFunc
}

// NewTokenChecker creates a checker that calls a protected endpoint with the
// token returned by token.
func NewTokenChecker(token func() string, call EndpointFunc) *TokenChecker {
	return &TokenChecker{token: token, call: call}
}

// Name returns the name of this health check.
func (c *TokenChecker) Name() string {
	return "session-token"
}

// Check is healthy without a token, since there is nothing to verify, and
// degraded when the backend rejects the token.
func (c *TokenChecker) Check(ctx context.Context) *Result {
	if c.token() == "" {
		return Healthy("not logged in")
	}

	start := time.Now()
	_, err := c.call(ctx)
	latency := time.Since(start)

	if err == nil {
		return Healthy("token accepted").WithLatency(latency)
	}
	if ue, ok := errors.As(err); ok && (ue.StatusCode == 401 || ue.StatusCode == 403) {
		return Degraded("token rejected by backend").
			WithDetail("status_code", ue.StatusCode).
			WithDetail("suggestion", "Run 'unbound auth login' again").
			WithLatency(latency)
	}
	return failureResult(err).WithLatency(latency)
}
