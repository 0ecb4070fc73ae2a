package gateway

import (
	"context"
	"net/http"
)

// Payments are pass-through: the backend and the payment provider own the
// logic, the client only relays.

// AllRegistrations lists registrations with their payment state.
func (c *Client) AllRegistrations(ctx context.Context) (*Response, error) {
	return c.get(ctx, "/payments/registrations")
}

// CreatePaymentOrder opens a payment order for a registration.
func (c *Client) CreatePaymentOrder(ctx context.Context, order PaymentOrder) (*Response, error) {
	return c.send(ctx, http.MethodPost, "/payments/create-order", order)
}

// VerifyPayment reports the provider's outcome for an order.
func (c *Client) VerifyPayment(ctx context.Context, v PaymentVerification) (*Response, error) {
	return c.send(ctx, http.MethodPost, "/payments/verify", v)
}
