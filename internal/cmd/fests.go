package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ShubhamSPawade/unbound/internal/gateway"
	"github.com/ShubhamSPawade/unbound/internal/session"
)

// festFields maps fest flags to backend field names.
var festFields = map[string]string{
	"name":        "fname",
	"description": "fdescription",
	"start-date":  "startDate",
	"end-date":    "endDate",
	"city":        "city",
	"state":       "state",
	"country":     "country",
	"mode":        "mode",
	"website":     "website",
	"phone":       "contactPhone",
}

func bindFestFlags(cmd *cobra.Command, f *gateway.Fest) {
	flags := cmd.Flags()
	flags.StringVar(&f.FName, "name", "", "fest name")
	flags.StringVar(&f.FDescription, "description", "", "description")
	flags.StringVar(&f.StartDate, "start-date", "", "first day (YYYY-MM-DD)")
	flags.StringVar(&f.EndDate, "end-date", "", "last day (YYYY-MM-DD)")
	flags.StringVar(&f.City, "city", "", "city")
	flags.StringVar(&f.State, "state", "", "state")
	flags.StringVar(&f.Country, "country", "India", "country")
	flags.StringVar(&f.Mode, "mode", "Offline", "Online or Offline")
	flags.StringVar(&f.Website, "website", "", "website URL")
	flags.StringVar(&f.ContactPhone, "phone", "", "contact phone")
}

func newFestsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fests",
		Short: "Manage your college's fests",
		Long: `Create and manage fests. Requires a College session.

Examples:
  unbound fests list
  unbound fests create --name "TechFest" --start-date 2025-02-01 --end-date 2025-02-03 --city Pune --state Maharashtra
  unbound fests update 12 --website https://techfest.example.edu
  unbound fests upload-image 12 --file poster.png`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	var fest gateway.Fest
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a fest (it starts pending approval)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.show(app.Client.CreateFest(cmd.Context(), fest))
		},
	}
	bindFestFlags(create, &fest)

	var patch gateway.Fest
	update := &cobra.Command{
		Use:   "update <fest-id>",
		Short: "Change the fields given as flags",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("fest ID", args[0])
			if err != nil {
				return err
			}
			fields, err := changedFields(cmd, festFields)
			if err != nil {
				return err
			}
			return app.show(app.Client.UpdateFest(cmd.Context(), id, fields))
		},
	}
	bindFestFlags(update, &patch)

	var imagePath string
	upload := &cobra.Command{
		Use:   "upload-image <fest-id>",
		Short: "Upload the fest banner image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("fest ID", args[0])
			if err != nil {
				return err
			}
			f, name, err := openUpload(imagePath)
			if err != nil {
				return err
			}
			defer f.Close()
			return app.show(app.Client.UploadFestImage(cmd.Context(), id, name, f))
		},
	}
	upload.Flags().StringVar(&imagePath, "file", "", "image file to upload")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List your fests",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				resp, err := app.Client.Fests(cmd.Context())
				return showList(app, resp, err, "fests", festHeaders, festRow)
			},
		},
		create,
		update,
		&cobra.Command{
			Use:   "delete <fest-id>",
			Short: "Delete a fest",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID("fest ID", args[0])
				if err != nil {
					return err
				}
				return app.show(app.Client.DeleteFest(cmd.Context(), id))
			},
		},
		upload,
		&cobra.Command{
			Use:   "events <fest-id>",
			Short: "List the events of a fest",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID("fest ID", args[0])
				if err != nil {
					return err
				}
				resp, err := app.Client.FestEvents(cmd.Context(), id)
				return showList(app, resp, err, "events", eventHeaders, eventRow)
			},
		},
	)

	return guard(cmd, requireRole(app, session.RoleCollege))
}
