package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ShubhamSPawade/unbound/internal/errors"
	"github.com/ShubhamSPawade/unbound/internal/gateway"
	"github.com/ShubhamSPawade/unbound/internal/session"
)

func newCollegeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "college",
		Short: "College dashboard, analytics, certificates and payouts",
		Long: `Commands for colleges. Requires a College session.

Examples:
  unbound college dashboard
  unbound college analytics --by fest
  unbound college event-registrations 40
  unbound college certificates 40 --all
  unbound college certificates 40 --registration 977 --registration 978
  unbound college payment-config set --bank-account 1234 --ifsc HDFC0001`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	simple := func(use, short string, call func(*cobra.Command) (*gateway.Response, error)) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return app.show(call(cmd))
			},
		}
	}

	cmd.AddCommand(
		simple("dashboard", "Show dashboard counters", func(cmd *cobra.Command) (*gateway.Response, error) {
			return app.Client.CollegeDashboardStats(cmd.Context())
		}),
		&cobra.Command{
			Use:   "events",
			Short: "List events with dashboard details",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				resp, err := app.Client.CollegeEvents(cmd.Context())
				return showList(app, resp, err, "events", eventHeaders, eventRow)
			},
		},
		simple("earnings", "Show earnings", func(cmd *cobra.Command) (*gateway.Response, error) {
			return app.Client.CollegeEarnings(cmd.Context())
		}),
		simple("registrations", "List registrations across all events", func(cmd *cobra.Command) (*gateway.Response, error) {
			return app.Client.CollegeRegistrations(cmd.Context())
		}),
		newCollegeAnalyticsCmd(app),
		eventIDCmd("event-registrations", "List registrations for one event", func(cmd *cobra.Command, id int64) error {
			return app.show(app.Client.EventRegistrations(cmd.Context(), id))
		}),
		newCollegeCertificatesCmd(app),
		newCollegePaymentConfigCmd(app),
	)

	return guard(cmd, requireRole(app, session.RoleCollege))
}

func newCollegeAnalyticsCmd(app *App) *cobra.Command {
	var by string

	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "Registration analytics by fest, by date, or top events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			switch by {
			case "fest":
				return app.show(app.Client.CollegeAnalyticsByFest(ctx))
			case "date":
				return app.show(app.Client.CollegeAnalyticsByDate(ctx))
			case "top":
				return app.show(app.Client.CollegeTopEvents(ctx))
			default:
				return errors.NewValidationError("--by must be fest, date or top")
			}
		},
	}
	cmd.Flags().StringVar(&by, "by", "fest", "fest, date or top")
	return cmd
}

func newCollegeCertificatesCmd(app *App) *cobra.Command {
	var (
		all           bool
		registrations []int64
	)

	cmd := eventIDCmd("certificates", "Approve certificates for an event", func(cmd *cobra.Command, id int64) error {
		ctx := cmd.Context()
		switch {
		case all && len(registrations) > 0:
			return errors.NewValidationError("use either --all or --registration, not both")
		case all:
			return app.show(app.Client.ApproveAllCertificates(ctx, id))
		case len(registrations) == 1:
			return app.show(app.Client.ApproveCertificate(ctx, id, registrations[0]))
		case len(registrations) > 1:
			return app.show(app.Client.ApproveCertificates(ctx, id, registrations))
		default:
			return errors.NewValidationError("set --all or at least one --registration")
		}
	})
	cmd.Flags().BoolVar(&all, "all", false, "approve every certificate of the event")
	cmd.Flags().Int64SliceVar(&registrations, "registration", nil, "registration ID to approve (repeatable)")
	return cmd
}

func newCollegePaymentConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payment-config",
		Short: "View or set payout details",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	var pc gateway.PaymentConfig
	set := &cobra.Command{
		Use:   "set",
		Short: "Store payout details",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if pc.RazorpayAccountID == "" && pc.BankAccountNumber == "" {
				return errors.NewValidationError("set --razorpay-account or --bank-account")
			}
			return app.show(app.Client.ConfigureCollegePayment(cmd.Context(), pc))
		},
	}
	flags := set.Flags()
	flags.StringVar(&pc.RazorpayAccountID, "razorpay-account", "", "Razorpay account ID")
	flags.StringVar(&pc.BankAccountNumber, "bank-account", "", "bank account number")
	flags.StringVar(&pc.BankIFSCCode, "ifsc", "", "bank IFSC code")
	flags.StringVar(&pc.BankAccountHolderName, "holder", "", "account holder name")
	flags.StringVar(&pc.ContactEmail, "contact-email", "", "payout contact email")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "get",
			Short: "Show payout details",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return app.show(app.Client.CollegePaymentConfig(cmd.Context()))
			},
		},
		set,
	)
	return cmd
}
