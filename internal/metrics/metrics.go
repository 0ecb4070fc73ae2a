// Package metrics records Prometheus metrics for backend calls and commands.
//
// The client is short-lived, so nothing is served. A run's metrics are
// written to a file in the text exposition format, ready for node_exporter's
// textfile collector:
//
//	reg, m := metrics.NewRegistry()
//	client := gateway.NewClient(ctx, gateway.Config{Observer: m})
//	...
//	metrics.WriteTextfile("/var/lib/node_exporter/unbound.prom", reg)
package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ShubhamSPawade/unbound/internal/errors"
)

// Metrics holds the client's Prometheus collectors.
type Metrics struct {
	// Backend call metrics
	Requests        *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RequestErrors   *prometheus.CounterVec

	// Command metrics
	CommandExecutions *prometheus.CounterVec
	CommandDuration   *prometheus.HistogramVec

	// Errors by code, whatever produced them
	Errors *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with registry.
func NewMetrics(registry prometheus.Registerer) *Metrics {
	factory := promauto.With(registry)

	return &Metrics{
		Requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "unbound_backend_requests_total",
				Help: "Total number of backend calls by route and status code",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "unbound_backend_request_duration_seconds",
				Help:    "Backend call duration in seconds, including reading the body",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"method", "route"},
		),
		RequestErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "unbound_backend_request_errors_total",
				Help: "Total number of failed backend calls by error code",
			},
			[]string{"route", "error_code"},
		),
		CommandExecutions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "unbound_command_executions_total",
				Help: "Total number of command executions",
			},
			[]string{"command", "success"},
		),
		CommandDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "unbound_command_duration_seconds",
				Help:    "Command execution duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"command"},
		),
		Errors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "unbound_errors_total",
				Help: "Total number of errors by code",
			},
			[]string{"error_code", "source"},
		),
	}
}

// ObserveRequest records one finished backend call. status is 0 when no
// response arrived.
func (m *Metrics) ObserveRequest(method, endpoint string, status int, err error, d time.Duration) {
	route := Route(endpoint)
	m.Requests.WithLabelValues(method, route, statusLabel(status)).Inc()
	m.RequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
	if err != nil {
		code := errorCode(err)
		m.RequestErrors.WithLabelValues(route, code).Inc()
		m.Errors.WithLabelValues(code, "gateway").Inc()
	}
}

// ObserveCommand records one command run.
func (m *Metrics) ObserveCommand(command string, err error, d time.Duration) {
	m.CommandExecutions.WithLabelValues(command, strconv.FormatBool(err == nil)).Inc()
	m.CommandDuration.WithLabelValues(command).Observe(d.Seconds())
	if err != nil {
		m.Errors.WithLabelValues(errorCode(err), "command").Inc()
	}
}

// Route collapses numeric path segments and drops the query so IDs do not
// become label values: /events/12/stats becomes /events/:id/stats.
func Route(endpoint string) string {
	if i := strings.IndexByte(endpoint, '?'); i >= 0 {
		endpoint = endpoint[:i]
	}
	parts := strings.Split(endpoint, "/")
	for i, p := range parts {
		if p == "" {
			continue
		}
		if _, err := strconv.ParseInt(p, 10, 64); err == nil {
			parts[i] = ":id"
		}
	}
	return strings.Join(parts, "/")
}

func statusLabel(status int) string {
	if status == 0 {
		return "none"
	}
	return strconv.Itoa(status)
}

func errorCode(err error) string {
	if code := errors.CodeOf(err); code != "" {
		return string(code)
	}
	return "unknown"
}
