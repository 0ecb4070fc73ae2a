package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ShubhamSPawade/unbound/internal/gateway"
	"github.com/ShubhamSPawade/unbound/internal/tui"
)

func newExploreCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explore",
		Short: "Browse approved fests and events (no sign-in needed)",
		Long: `Browse approved fests and events. No account is needed.

Examples:
  unbound explore fests --city Pune
  unbound explore events --category Programming --max-fee 200 --browse
  unbound explore events --output json --query "[].ename"
  unbound explore stats`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(
		newExploreFestsCmd(app),
		newExploreEventsCmd(app),
		newExplorePublicFestsCmd(app),
		newExplorePublicEventsCmd(app),
		&cobra.Command{
			Use:   "stats",
			Short: "Show platform-wide counters",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return app.show(app.Client.ExploreStats(cmd.Context()))
			},
		},
	)
	return cmd
}

func newExploreFestsCmd(app *App) *cobra.Command {
	var (
		f      gateway.FestFilter
		browse bool
	)

	cmd := &cobra.Command{
		Use:   "fests",
		Short: "Search approved fests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := app.Client.ExploreFests(cmd.Context(), f)
			if browse {
				return browseList(app, cmd, resp, err, "fests", "Fests", festColumns, festItem)
			}
			return showList(app, resp, err, "fests", festHeaders, festRow)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.Name, "name", "", "fest name contains")
	flags.StringVar(&f.City, "city", "", "city")
	flags.StringVar(&f.State, "state", "", "state")
	flags.StringVar(&f.Country, "country", "", "country")
	flags.StringVar(&f.Mode, "mode", "", "Online or Offline")
	flags.BoolVar(&browse, "browse", false, "open an interactive browser")
	return cmd
}

type eventFilterFlags struct {
	filter      gateway.EventFilter
	minFee      float64
	maxFee      float64
	teamAllowed bool
	browse      bool
}

// apply copies the flags the user set into the filter.
func (f *eventFilterFlags) apply(cmd *cobra.Command) gateway.EventFilter {
	out := f.filter
	if cmd.Flags().Changed("min-fee") {
		out.MinFee = &f.minFee
	}
	if cmd.Flags().Changed("max-fee") {
		out.MaxFee = &f.maxFee
	}
	if cmd.Flags().Changed("team-allowed") {
		out.TeamAllowed = &f.teamAllowed
	}
	return out
}

func newExploreEventsCmd(app *App) *cobra.Command {
	var f eventFilterFlags

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Search approved events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := app.Client.ExploreEvents(cmd.Context(), f.apply(cmd))
			if f.browse {
				return browseList(app, cmd, resp, err, "events", "Events", eventColumns, eventItem)
			}
			return showList(app, resp, err, "events", eventHeaders, eventRow)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.filter.Category, "category", "", "event category")
	flags.Float64Var(&f.minFee, "min-fee", 0, "minimum fee")
	flags.Float64Var(&f.maxFee, "max-fee", 0, "maximum fee")
	flags.BoolVar(&f.teamAllowed, "team-allowed", false, "only events that do (or, with =false, do not) allow teams")
	flags.StringVar(&f.filter.City, "city", "", "city")
	flags.StringVar(&f.filter.State, "state", "", "state")
	flags.StringVar(&f.filter.Country, "country", "", "country")
	flags.StringVar(&f.filter.Mode, "mode", "", "Online or Offline")
	flags.BoolVar(&f.browse, "browse", false, "open an interactive browser")
	return cmd
}

func listParamFlags(cmd *cobra.Command, p *gateway.ListParams) {
	flags := cmd.Flags()
	flags.IntVar(&p.Page, "page", 0, "page number, starting at 1")
	flags.IntVar(&p.Limit, "limit", 0, "page size")
	flags.StringVar(&p.Search, "search", "", "free text search")
	flags.StringVar(&p.Category, "category", "", "category")
	flags.StringVar(&p.Mode, "mode", "", "Online or Offline")
}

func newExplorePublicFestsCmd(app *App) *cobra.Command {
	var p gateway.ListParams
	cmd := &cobra.Command{
		Use:   "public-fests",
		Short: "Page through the public fest listing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := app.Client.PublicFests(cmd.Context(), p)
			return showList(app, resp, err, "fests", festHeaders, festRow)
		},
	}
	listParamFlags(cmd, &p)
	return cmd
}

func newExplorePublicEventsCmd(app *App) *cobra.Command {
	var p gateway.ListParams
	cmd := &cobra.Command{
		Use:   "public-events",
		Short: "Page through the public event listing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := app.Client.PublicEvents(cmd.Context(), p)
			return showList(app, resp, err, "events", eventHeaders, eventRow)
		},
	}
	listParamFlags(cmd, &p)
	return cmd
}

// browseList opens the interactive browser over a list response.
func browseList[T any](app *App, cmd *cobra.Command, resp *gateway.Response, err error, key, title string, cols []tui.Column, item func(T) tui.Item) error {
	if err != nil {
		return err
	}
	data, err := payload(resp)
	if err != nil {
		return err
	}
	raw, _ := data.(json.RawMessage)
	list, err := decodeList[T](raw, key)
	if err != nil {
		return err
	}

	items := make([]tui.Item, len(list))
	for i, v := range list {
		items[i] = item(v)
	}
	return tui.Browse(cmd.Context(), title, cols, items)
}

var festColumns = []tui.Column{
	{Title: "ID", Width: 6},
	{Title: "Name", Width: 32},
	{Title: "Starts", Width: 12},
	{Title: "Where", Width: 24},
	{Title: "Mode", Width: 8},
}

func festItem(f gateway.Fest) tui.Item {
	return tui.Item{
		Cells: []string{formatID(f.ID), f.FName, f.StartDate, place(f.City, f.State), f.Mode},
		Detail: details(
			"Name", f.FName,
			"Dates", f.StartDate+" to "+f.EndDate,
			"Where", strings.Join(nonEmpty(f.City, f.State, f.Country), ", "),
			"Mode", f.Mode,
			"Website", f.Website,
			"Contact", f.ContactPhone,
			"About", f.FDescription,
		),
	}
}

var eventColumns = []tui.Column{
	{Title: "ID", Width: 6},
	{Title: "Name", Width: 28},
	{Title: "Category", Width: 16},
	{Title: "Date", Width: 12},
	{Title: "Fee", Width: 8},
	{Title: "Where", Width: 20},
}

func eventItem(e gateway.Event) tui.Item {
	team := "Solo only"
	if e.TeamIsAllowed {
		team = "Teams allowed"
	}
	return tui.Item{
		Cells: []string{formatID(e.ID), e.EName, e.Category, e.EventDate, formatFee(e.Fees), place(e.City, e.State)},
		Detail: details(
			"Name", e.EName,
			"Date", e.EventDate,
			"Deadline", e.RegistrationDeadline,
			"Fee", formatFee(e.Fees),
			"Capacity", fmt.Sprint(e.Capacity),
			"Teams", team,
			"Prizes", strings.Join(nonEmpty(e.CashPrize, e.FirstPrize, e.SecondPrize, e.ThirdPrize), " / "),
			"Where", strings.Join(nonEmpty(e.Location, e.City, e.State, e.Country), ", "),
			"Organizer", strings.Join(nonEmpty(e.OrganizerName, e.OrganizerEmail, e.OrganizerPhone), ", "),
			"About", e.EDescription,
			"Rules", e.Rules,
		),
	}
}

// details renders label/value pairs one per line, skipping empty values.
func details(pairs ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%-10s %s", pairs[i]+":", pairs[i+1])
	}
	return b.String()
}

func nonEmpty(values ...string) []string {
	out := values[:0:0]
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
