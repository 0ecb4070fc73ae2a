// Package health diagnoses the client's dependencies: the backend API and
// the local session storage.
//
// Each dependency is a Checker. A Manager runs checkers in parallel, each
// under its own deadline, and folds the results into a Report:
//
//	m := health.NewManager()
//	m.AddChecker(health.NewEndpointChecker("backend-health", "/health", client.HealthCheck))
//	m.AddChecker(health.NewStorageChecker(store))
//
//	report := m.Run(ctx)
//	if report.Status != health.StatusHealthy {
//	    // ...
//	}
package health

import (
	"context"
	"time"
)

// Checker probes one dependency.
type Checker interface {
	// Name identifies the check in reports, e.g. "backend-ping".
	Name() string

	// Check probes the dependency and returns before ctx expires.
	Check(ctx context.Context) *Result
}

// Status is the verdict for a dependency or a whole report.
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusDegraded  Status = "degraded"  // reachable, answering oddly
	StatusUnhealthy Status = "unhealthy" // unreachable or failing
)

func (s Status) String() string { return string(s) }

// Result is what one check observed.
type Result struct {
	Status  Status         `json:"status" yaml:"status"`
	Message string         `json:"message" yaml:"message"`
	Details map[string]any `json:"details,omitempty" yaml:"details,omitempty"`
	Latency time.Duration  `json:"latency" yaml:"latency"`
}

// NewResult returns a Result with an empty Details map.
func NewResult(status Status, message string) *Result {
	return &Result{Status: status, Message: message, Details: map[string]any{}}
}

// WithDetail records key=value on r.
func (r *Result) WithDetail(key string, value any) *Result {
	r.Details[key] = value
	return r
}

// WithLatency records how long the probe took.
func (r *Result) WithLatency(d time.Duration) *Result {
	r.Latency = d
	return r
}

func Healthy(message string) *Result   { return NewResult(StatusHealthy, message) }
func Degraded(message string) *Result  { return NewResult(StatusDegraded, message) }
func Unhealthy(message string) *Result { return NewResult(StatusUnhealthy, message) }
