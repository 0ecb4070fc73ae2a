package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ShubhamSPawade/unbound/internal/errors"
	"github.com/ShubhamSPawade/unbound/internal/gateway"
	"github.com/ShubhamSPawade/unbound/internal/session"
	"github.com/ShubhamSPawade/unbound/internal/ux"
)

func newStudentCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "student",
		Short: "Your registrations, certificates and dashboard",
		Long: `Commands for students. Requires a Student session.

Examples:
  unbound student dashboard
  unbound student register 40
  unbound student register 41 --team-name "Null Pointers"
  unbound student certificate 977`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "dashboard",
			Short: "Show counters and recent registrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				dash, err := app.Client.StudentDashboard(cmd.Context())
				if err != nil {
					return err
				}
				return app.print(ux.WithText(dash, func(w io.Writer, s ux.Styles) error {
					return renderStudentDashboard(w, s, dash)
				}))
			},
		},
		&cobra.Command{
			Use:   "registrations",
			Short: "List your event registrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return app.show(app.Client.MyRegistrations(cmd.Context()))
			},
		},
		newStudentRegisterCmd(app),
		&cobra.Command{
			Use:   "certificate <registration-id>",
			Short: "Get the certificate link for a registration",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return app.show(app.Client.DownloadCertificate(cmd.Context(), args[0]))
			},
		},
	)

	return guard(cmd, requireRole(app, session.RoleStudent))
}

type eventRegistrationFlags struct {
	teamName string
	teamID   int64
}

// registration builds the request. A team name or team ID makes it a team
// registration; both together are rejected.
func (f eventRegistrationFlags) registration(eventID int64) (gateway.EventRegistration, error) {
	reg := gateway.EventRegistration{EventID: eventID, RegistrationType: gateway.RegistrationSolo}
	switch {
	case f.teamName != "" && f.teamID > 0:
		return reg, errors.NewValidationError("use either --team-name to form a team or --team-id to join one, not both")
	case f.teamName != "":
		reg.RegistrationType = gateway.RegistrationTeam
		reg.TeamName = f.teamName
	case f.teamID > 0:
		reg.RegistrationType = gateway.RegistrationTeam
		reg.TeamID = f.teamID
	}
	return reg, nil
}

func newStudentRegisterCmd(app *App) *cobra.Command {
	var f eventRegistrationFlags

	cmd := eventIDCmd("register", "Register for an event, solo or with a team", func(cmd *cobra.Command, id int64) error {
		reg, err := f.registration(id)
		if err != nil {
			return err
		}
		return app.show(app.Client.RegisterForEvent(cmd.Context(), reg))
	})
	cmd.Flags().StringVar(&f.teamName, "team-name", "", "form a new team with this name")
	cmd.Flags().Int64Var(&f.teamID, "team-id", 0, "join an existing team")
	return cmd
}

func renderStudentDashboard(w io.Writer, s ux.Styles, d *gateway.StudentDashboard) error {
	fmt.Fprintln(w, s.Title.Render("Dashboard"))
	if err := ux.RenderFields(w, s,
		ux.Field{Label: "Registrations", Value: strconv.Itoa(d.Stats.TotalRegistrations)},
		ux.Field{Label: "Approved", Value: strconv.Itoa(d.Stats.ApprovedRegistrations)},
		ux.Field{Label: "Pending", Value: strconv.Itoa(d.Stats.PendingRegistrations)},
		ux.Field{Label: "Certificates", Value: strconv.Itoa(d.Stats.TotalCertificates)},
	); err != nil {
		return err
	}
	fmt.Fprintf(w, "\n%s %d\n", s.Key.Render("Recent registrations:"), len(d.RecentRegistrations))
	return nil
}

func newTeamsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "teams",
		Short: "Teams you belong to",
		Long:  `Inspect and leave teams. Requires a Student session.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	teamIDCmd := func(use, short string, run func(cmd *cobra.Command, id int64) error) *cobra.Command {
		return &cobra.Command{
			Use:   use + " <team-id>",
			Short: short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID("team ID", args[0])
				if err != nil {
					return err
				}
				return run(cmd, id)
			},
		}
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List your teams",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return app.show(app.Client.MyTeams(cmd.Context()))
			},
		},
		eventIDCmd("for-event", "List the teams formed for an event", func(cmd *cobra.Command, id int64) error {
			return app.show(app.Client.TeamsForEvent(cmd.Context(), id))
		}),
		teamIDCmd("members", "List a team's members", func(cmd *cobra.Command, id int64) error {
			return app.show(app.Client.TeamMembers(cmd.Context(), id))
		}),
		teamIDCmd("leave", "Leave a team", func(cmd *cobra.Command, id int64) error {
			return app.show(app.Client.LeaveTeam(cmd.Context(), id))
		}),
	)

	return guard(cmd, requireRole(app, session.RoleStudent))
}

func newReviewsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reviews",
		Short: "Rate events and read reviews",
		Long: `Rate events you attended and read what others wrote. Submitting and
reading your own review requires a Student session; listing requires any
session.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	var review gateway.Review
	submit := eventIDCmd("submit", "Rate an event from 1 to 5", func(cmd *cobra.Command, id int64) error {
		if review.Rating < 1 || review.Rating > 5 {
			return errors.NewValidationError("--rating must be between 1 and 5")
		}
		return app.show(app.Client.SubmitReview(cmd.Context(), id, review))
	})
	submit.Flags().IntVar(&review.Rating, "rating", 0, "rating from 1 to 5")
	submit.Flags().StringVar(&review.ReviewText, "text", "", "review text")

	list := eventIDCmd("list", "List all reviews of an event", func(cmd *cobra.Command, id int64) error {
		return app.show(app.Client.EventReviews(cmd.Context(), id))
	})
	list.PreRunE = requireRole(app)

	cmd.AddCommand(
		submit,
		eventIDCmd("mine", "Show your review of an event", func(cmd *cobra.Command, id int64) error {
			return app.show(app.Client.MyReview(cmd.Context(), id))
		}),
		list,
	)

	return guard(cmd, requireRole(app, session.RoleStudent))
}
