package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/ShubhamSPawade/unbound/internal/errors"
	"github.com/ShubhamSPawade/unbound/internal/session"
)

func newAdminCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Moderate fests and events",
		Long: `Approve or reject what colleges publish. Requires an Admin session.

Examples:
  unbound admin dashboard
  unbound admin pending-fests
  unbound admin approve-fest 12
  unbound admin reject-event 40 --reason "Missing venue details"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	festIDCmd := func(use, short string, run func(cmd *cobra.Command, id int64) error) *cobra.Command {
		return &cobra.Command{
			Use:   use + " <fest-id>",
			Short: short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID("fest ID", args[0])
				if err != nil {
					return err
				}
				return run(cmd, id)
			},
		}
	}

	var festReason, eventReason string
	rejectFest := festIDCmd("reject-fest", "Reject a fest", func(cmd *cobra.Command, id int64) error {
		if strings.TrimSpace(festReason) == "" {
			return errors.NewValidationError("--reason is required")
		}
		return app.show(app.Client.RejectFest(cmd.Context(), id, festReason))
	})
	rejectFest.Flags().StringVar(&festReason, "reason", "", "reason shown to the college")

	rejectEvent := eventIDCmd("reject-event", "Reject an event", func(cmd *cobra.Command, id int64) error {
		if strings.TrimSpace(eventReason) == "" {
			return errors.NewValidationError("--reason is required")
		}
		return app.show(app.Client.RejectEvent(cmd.Context(), id, eventReason))
	})
	rejectEvent.Flags().StringVar(&eventReason, "reason", "", "reason shown to the college")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "dashboard",
			Short: "Show moderation counters",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return app.show(app.Client.AdminDashboardStats(cmd.Context()))
			},
		},
		&cobra.Command{
			Use:   "pending-fests",
			Short: "List fests awaiting approval",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				resp, err := app.Client.PendingFests(cmd.Context())
				return showList(app, resp, err, "fests", festHeaders, festRow)
			},
		},
		&cobra.Command{
			Use:   "pending-events",
			Short: "List events awaiting approval",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				resp, err := app.Client.PendingEvents(cmd.Context())
				return showList(app, resp, err, "events", eventHeaders, eventRow)
			},
		},
		festIDCmd("approve-fest", "Publish a fest", func(cmd *cobra.Command, id int64) error {
			return app.show(app.Client.ApproveFest(cmd.Context(), id))
		}),
		rejectFest,
		eventIDCmd("approve-event", "Publish an event", func(cmd *cobra.Command, id int64) error {
			return app.show(app.Client.ApproveEvent(cmd.Context(), id))
		}),
		rejectEvent,
		&cobra.Command{
			Use:   "colleges",
			Short: "List registered colleges",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return app.show(app.Client.Colleges(cmd.Context()))
			},
		},
		&cobra.Command{
			Use:   "users",
			Short: "List every account",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return app.show(app.Client.Users(cmd.Context()))
			},
		},
	)

	return guard(cmd, requireRole(app, session.RoleAdmin))
}
