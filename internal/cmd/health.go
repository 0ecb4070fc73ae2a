package cmd

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ShubhamSPawade/unbound/internal/gateway"
	"github.com/ShubhamSPawade/unbound/internal/health"
	"github.com/ShubhamSPawade/unbound/internal/ux"
)

func newHealthCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "health",
		Short: "Query the backend health endpoints",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "check",
			Short: "Call GET /health",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return app.show(app.Session.HealthCheck(cmd.Context()))
			},
		},
		&cobra.Command{
			Use:   "ping",
			Short: "Call GET /health/ping",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return app.show(app.Session.Ping(cmd.Context()))
			},
		},
	)
	return cmd
}

// errUnhealthy is returned by doctor when at least one check failed.
var errUnhealthy = stderrors.New("one or more checks failed")

type doctorFlags struct {
	email    string
	password string
}

func newDoctorCmd(app *App) *cobra.Command {
	var f doctorFlags

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose backend, storage and session problems",
		Long: `Run every diagnostic check and report the results.

Checks include:
  • Backend health (GET /health) and liveness (GET /health/ping)
  • Session storage (file, memory or redis)
  • Whether the backend still accepts the stored token

With --email and --password a login is attempted as well, without
changing the current session.

Examples:
  unbound doctor
  unbound doctor --output json
  unbound doctor --email student@demo.com --password secret`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report := app.doctor(f).Run(cmd.Context())

			if err := app.print(ux.WithText(report, func(w io.Writer, s ux.Styles) error {
				return renderReport(w, s, report)
			})); err != nil {
				return err
			}
			if report.Status == health.StatusUnhealthy {
				return errUnhealthy
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&f.email, "email", "", "also try logging in with this email")
	cmd.Flags().StringVar(&f.password, "password", "", "password for the login check")
	return cmd
}

// doctor assembles the health manager for the configured client and store.
func (a *App) doctor(f doctorFlags) *health.Manager {
	m := health.NewManager().
		WithTimeout(a.Config.RequestTimeout).
		WithLogger(a.Logger)

	m.AddChecker(health.NewEndpointChecker("backend", "/health", a.Client.HealthCheck))
	m.AddChecker(health.NewEndpointChecker("backend-ping", "/health/ping", a.Client.Ping))
	m.AddChecker(health.NewStorageChecker(a.Store, a.Config.Storage.Backend))
	m.AddChecker(health.NewTokenChecker(a.Client.Token, a.Client.ProtectedEndpoint))

	if f.email != "" && f.password != "" {
		m.AddChecker(health.NewEndpointChecker("login", "/auth/login", loginProbe(a.Client, f.email, f.password)))
	}
	return m
}

// loginProbe logs in without establishing a session.
func loginProbe(c *gateway.Client, email, password string) health.EndpointFunc {
	return func(ctx context.Context) (*gateway.Response, error) {
		res, err := c.Login(ctx, email, password)
		if err != nil {
			return nil, err
		}
		if res.Payload.Token == "" {
			return &gateway.Response{Shape: gateway.ShapeWrapped, StatusCode: 200, Message: "login answered without a token"}, nil
		}
		return &gateway.Response{Shape: gateway.ShapeWrapped, StatusCode: 200, Success: true, Message: "logged in as " + res.Payload.Role}, nil
	}
}

func renderReport(w io.Writer, s ux.Styles, report *health.Report) error {
	rows := make([][]string, 0, len(report.Checks))
	for _, e := range report.Checks {
		rows = append(rows, []string{
			e.Name,
			statusText(s, e.Result.Status),
			e.Result.Message,
			formatDetails(e.Result.Details),
		})
	}
	if err := ux.RenderTable(w, s, []string{"Check", "Status", "Message", "Details"}, rows, "No checks ran."); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Overall: %s\n", statusText(s, report.Status))
	return err
}

func statusText(s ux.Styles, status health.Status) string {
	switch status {
	case health.StatusHealthy:
		return s.Success.Render(status.String())
	case health.StatusDegraded:
		return s.Warning.Render(status.String())
	default:
		return s.Error.Render(status.String())
	}
}

func formatDetails(details map[string]any) string {
	if len(details) == 0 {
		return ""
	}
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, details[k])
	}
	return strings.Join(parts, " ")
}
