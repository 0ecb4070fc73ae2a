package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ShubhamSPawade/unbound/internal/errors"
	"github.com/ShubhamSPawade/unbound/internal/gateway"
	"github.com/ShubhamSPawade/unbound/internal/session"
)

func newPaymentsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payments",
		Short: "Pay registration fees",
		Long: `Create and verify payment orders for event registrations. Payment
processing itself happens with the payment provider; these commands relay
the order and the provider's outcome.

Examples:
  unbound payments create-order --registration 977 --amount 100 --email ada@demo.com
  unbound payments verify --order order_123 --payment pay_456 --status success`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	order := gateway.PaymentOrder{Currency: "INR"}
	create := &cobra.Command{
		Use:   "create-order",
		Short: "Open a payment order for a registration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if order.RegistrationID <= 0 || order.Amount <= 0 {
				return errors.NewValidationError("--registration and a positive --amount are required")
			}
			if order.ReceiptEmail == "" {
				if u := app.Session.CurrentUser(); u != nil {
					order.ReceiptEmail = u.Email
				}
			}
			return app.show(app.Client.CreatePaymentOrder(cmd.Context(), order))
		},
	}
	create.Flags().Int64Var(&order.RegistrationID, "registration", 0, "registration ID")
	create.Flags().Float64Var(&order.Amount, "amount", 0, "amount to pay")
	create.Flags().StringVar(&order.Currency, "currency", "INR", "currency code")
	create.Flags().StringVar(&order.ReceiptEmail, "email", "", "receipt email (default: your account email)")

	var v gateway.PaymentVerification
	verify := &cobra.Command{
		Use:   "verify",
		Short: "Report the provider's outcome for an order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if v.RazorpayOrderID == "" || v.Status == "" {
				return errors.NewValidationError("--order and --status are required")
			}
			return app.show(app.Client.VerifyPayment(cmd.Context(), v))
		},
	}
	verify.Flags().StringVar(&v.RazorpayOrderID, "order", "", "provider order ID")
	verify.Flags().StringVar(&v.PaymentID, "payment", "", "provider payment ID")
	verify.Flags().StringVar(&v.Status, "status", "", "payment status reported by the provider")

	registrations := &cobra.Command{
		Use:   "registrations",
		Short: "List registrations with their payment state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.show(app.Client.AllRegistrations(cmd.Context()))
		},
	}
	registrations.PreRunE = requireRole(app, session.RoleCollege, session.RoleAdmin)

	cmd.AddCommand(create, verify, registrations)
	return guard(cmd, requireRole(app, session.RoleStudent))
}
