package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ShubhamSPawade/unbound/internal/gateway"
	"github.com/ShubhamSPawade/unbound/internal/session"
)

// eventFields maps event flags to backend field names.
var eventFields = map[string]string{
	"name":            "ename",
	"description":     "edescription",
	"date":            "eventDate",
	"deadline":        "registrationDeadline",
	"fee":             "fees",
	"location":        "location",
	"capacity":        "capacity",
	"team-allowed":    "teamIsAllowed",
	"category":        "category",
	"mode":            "mode",
	"fest-id":         "fid",
	"cash-prize":      "cashPrize",
	"first-prize":     "firstPrize",
	"second-prize":    "secondPrize",
	"third-prize":     "thirdPrize",
	"city":            "city",
	"state":           "state",
	"country":         "country",
	"website":         "eventWebsite",
	"phone":           "contactPhone",
	"organizer":       "organizerName",
	"organizer-email": "organizerEmail",
	"organizer-phone": "organizerPhone",
	"rules":           "rules",
	"requirements":    "requirements",
}

func bindEventFlags(cmd *cobra.Command, e *gateway.Event) {
	flags := cmd.Flags()
	flags.StringVar(&e.EName, "name", "", "event name")
	flags.StringVar(&e.EDescription, "description", "", "description")
	flags.StringVar(&e.EventDate, "date", "", "event date (YYYY-MM-DD)")
	flags.StringVar(&e.RegistrationDeadline, "deadline", "", "registration deadline (YYYY-MM-DD)")
	flags.Float64Var(&e.Fees, "fee", 0, "registration fee, 0 for free")
	flags.StringVar(&e.Location, "location", "", "venue")
	flags.IntVar(&e.Capacity, "capacity", 0, "maximum registrations")
	flags.BoolVar(&e.TeamIsAllowed, "team-allowed", false, "allow team registrations")
	flags.StringVar(&e.Category, "category", "", "category, e.g. Programming")
	flags.StringVar(&e.Mode, "mode", "Offline", "Online or Offline")
	flags.Int64Var(&e.FID, "fest-id", 0, "fest this event belongs to")
	flags.StringVar(&e.CashPrize, "cash-prize", "", "total prize money")
	flags.StringVar(&e.FirstPrize, "first-prize", "", "first prize")
	flags.StringVar(&e.SecondPrize, "second-prize", "", "second prize")
	flags.StringVar(&e.ThirdPrize, "third-prize", "", "third prize")
	flags.StringVar(&e.City, "city", "", "city")
	flags.StringVar(&e.State, "state", "", "state")
	flags.StringVar(&e.Country, "country", "India", "country")
	flags.StringVar(&e.EventWebsite, "website", "", "event website")
	flags.StringVar(&e.ContactPhone, "phone", "", "contact phone")
	flags.StringVar(&e.OrganizerName, "organizer", "", "organizer name")
	flags.StringVar(&e.OrganizerEmail, "organizer-email", "", "organizer email")
	flags.StringVar(&e.OrganizerPhone, "organizer-phone", "", "organizer phone")
	flags.StringVar(&e.Rules, "rules", "", "rules")
	flags.StringVar(&e.Requirements, "requirements", "", "requirements")
}

// eventIDCmd builds a command that takes one event ID argument.
func eventIDCmd(use, short string, run func(cmd *cobra.Command, id int64) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <event-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("event ID", args[0])
			if err != nil {
				return err
			}
			return run(cmd, id)
		},
	}
}

func newEventsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Manage your college's events",
		Long: `Create and manage events. Requires a College session, except for
'rating' which any signed-in user may read.

Examples:
  unbound events list
  unbound events create --fest-id 12 --name "Hackathon" --date 2025-02-02 \
    --deadline 2025-01-25 --category Programming --fee 100 --team-allowed
  unbound events upload-poster 40 --file poster.jpg
  unbound events stats 40`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	var event gateway.Event
	create := &cobra.Command{
		Use:   "create",
		Short: "Create an event (it starts pending approval)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.show(app.Client.CreateEvent(cmd.Context(), event))
		},
	}
	bindEventFlags(create, &event)

	var patch gateway.Event
	update := eventIDCmd("update", "Change the fields given as flags", func(cmd *cobra.Command, id int64) error {
		fields, err := changedFields(cmd, eventFields)
		if err != nil {
			return err
		}
		return app.show(app.Client.UpdateEvent(cmd.Context(), id, fields))
	})
	bindEventFlags(update, &patch)

	var posterPath string
	upload := eventIDCmd("upload-poster", "Upload the event poster", func(cmd *cobra.Command, id int64) error {
		f, name, err := openUpload(posterPath)
		if err != nil {
			return err
		}
		defer f.Close()
		return app.show(app.Client.UploadEventPoster(cmd.Context(), id, name, f))
	})
	upload.Flags().StringVar(&posterPath, "file", "", "image file to upload")

	rating := eventIDCmd("rating", "Show the average rating", func(cmd *cobra.Command, id int64) error {
		return app.show(app.Client.EventRating(cmd.Context(), id))
	})
	rating.PreRunE = requireRole(app)

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List your events",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				resp, err := app.Client.Events(cmd.Context())
				return showList(app, resp, err, "events", eventHeaders, eventRow)
			},
		},
		create,
		update,
		eventIDCmd("delete", "Delete an event", func(cmd *cobra.Command, id int64) error {
			return app.show(app.Client.DeleteEvent(cmd.Context(), id))
		}),
		upload,
		eventIDCmd("delete-poster", "Remove the event poster", func(cmd *cobra.Command, id int64) error {
			return app.show(app.Client.DeleteEventPoster(cmd.Context(), id))
		}),
		eventIDCmd("poster-audit", "Show the poster change history", func(cmd *cobra.Command, id int64) error {
			return app.show(app.Client.EventPosterAuditLogs(cmd.Context(), id))
		}),
		eventIDCmd("stats", "Show registration counters", func(cmd *cobra.Command, id int64) error {
			return app.show(app.Client.EventStats(cmd.Context(), id))
		}),
		rating,
	)

	return guard(cmd, requireRole(app, session.RoleCollege))
}
