package health

import (
	"context"
	"time"

	"github.com/ShubhamSPawade/unbound/internal/errors"
	"github.com/ShubhamSPawade/unbound/internal/gateway"
)

// EndpointFunc calls one backend endpoint.
type EndpointFunc func(ctx context.Context) (*gateway.Response, error)

// EndpointChecker probes a backend endpoint such as /health or /health/ping.
type EndpointChecker struct {
	name     string
	endpoint string
	call     EndpointFunc
}

// NewEndpointChecker creates a checker that reports on call. endpoint is
// only used for reporting.
func NewEndpointChecker(name, endpoint string, call EndpointFunc) *EndpointChecker {
	return &EndpointChecker{name: name, endpoint: endpoint, call: call}
}

// Name returns the name of this health check.
func (c *EndpointChecker) Name() string {
	return c.name
}

// Check calls the endpoint.
//   - Healthy when the backend answers successfully
//   - Degraded when it answers 2xx without reporting success (a plain text
//     body, or an explicit success:false)
//   - Unhealthy on transport failures and error statuses
func (c *EndpointChecker) Check(ctx context.Context) *Result {
	start := time.Now()
	resp, err := c.call(ctx)
	latency := time.Since(start)

	if err != nil {
		return failureResult(err).
			WithDetail("endpoint", c.endpoint).
			WithLatency(latency)
	}

	var result *Result
	switch {
	case resp.Success:
		msg := resp.Message
		if msg == "" {
			msg = "backend answered"
		}
		result = Healthy(msg)
	case resp.Shape == gateway.ShapeText:
		result = Degraded("backend answered with a non-JSON body").
			WithDetail("body", resp.Message)
	default:
		result = Degraded(resp.FailureMessage())
	}

	return result.
		WithDetail("endpoint", c.endpoint).
		WithDetail("status_code", resp.StatusCode).
		WithDetail("shape", resp.Shape.String()).
		WithLatency(latency)
}

func failureResult(err error) *Result {
	result := Unhealthy(errors.MessageOf(err))
	if ue, ok := errors.As(err); ok {
		result.WithDetail("code", string(ue.Code))
		if ue.StatusCode != 0 {
			result.WithDetail("status_code", ue.StatusCode)
		}
		if len(ue.Suggestions) > 0 {
			result.WithDetail("suggestion", ue.Suggestions[0])
		}
	}
	return result
}
