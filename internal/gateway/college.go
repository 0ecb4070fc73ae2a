package gateway

import (
	"context"
	"fmt"
	"net/http"
)

const collegeDashboard = "/college/dashboard"

// CollegeDashboardStats returns the college's counters.
func (c *Client) CollegeDashboardStats(ctx context.Context) (*Response, error) {
	return c.get(ctx, collegeDashboard+"/stats")
}

// CollegeEvents lists the college's events with their dashboard figures.
func (c *Client) CollegeEvents(ctx context.Context) (*Response, error) {
	return c.get(ctx, collegeDashboard+"/events")
}

// CollegeEarnings returns the college's fee earnings.
func (c *Client) CollegeEarnings(ctx context.Context) (*Response, error) {
	return c.get(ctx, collegeDashboard+"/earnings")
}

// CollegeRegistrations lists registrations across the college's events.
func (c *Client) CollegeRegistrations(ctx context.Context) (*Response, error) {
	return c.get(ctx, collegeDashboard+"/registrations")
}

// CollegeAnalyticsByFest groups registrations by fest.
func (c *Client) CollegeAnalyticsByFest(ctx context.Context) (*Response, error) {
	return c.get(ctx, collegeDashboard+"/analytics/by-fest")
}

// CollegeAnalyticsByDate groups registrations by date.
func (c *Client) CollegeAnalyticsByDate(ctx context.Context) (*Response, error) {
	return c.get(ctx, collegeDashboard+"/analytics/by-date")
}

// CollegeTopEvents ranks the college's events.
func (c *Client) CollegeTopEvents(ctx context.Context) (*Response, error) {
	return c.get(ctx, collegeDashboard+"/analytics/top-events")
}

// EventRegistrations lists registrations for one of the college's events.
func (c *Client) EventRegistrations(ctx context.Context, eventID int64) (*Response, error) {
	return c.get(ctx, fmt.Sprintf("%s/events/%d/registrations", collegeDashboard, eventID))
}

// ApproveCertificate approves the certificate of one registration.
func (c *Client) ApproveCertificate(ctx context.Context, eventID, registrationID int64) (*Response, error) {
	return c.send(ctx, http.MethodPost,
		fmt.Sprintf("%s/events/%d/registrations/%d/approve-certificate", collegeDashboard, eventID, registrationID), nil)
}

// ApproveAllCertificates approves every certificate of an event.
func (c *Client) ApproveAllCertificates(ctx context.Context, eventID int64) (*Response, error) {
	return c.send(ctx, http.MethodPost,
		fmt.Sprintf("%s/events/%d/registrations/approve-all-certificates", collegeDashboard, eventID), nil)
}

// ApproveCertificates approves the listed registrations of an event.
func (c *Client) ApproveCertificates(ctx context.Context, eventID int64, registrationIDs []int64) (*Response, error) {
	if registrationIDs == nil {
		registrationIDs = []int64{}
	}
	return c.send(ctx, http.MethodPost,
		fmt.Sprintf("%s/events/%d/registrations/approve-certificates", collegeDashboard, eventID),
		map[string][]int64{"registrationIds": registrationIDs})
}

// ConfigureCollegePayment stores the college's payout details.
func (c *Client) ConfigureCollegePayment(ctx context.Context, cfg PaymentConfig) (*Response, error) {
	return c.send(ctx, http.MethodPost, "/college/payment-config", cfg)
}

// CollegePaymentConfig returns the college's payout details.
func (c *Client) CollegePaymentConfig(ctx context.Context) (*Response, error) {
	return c.get(ctx, "/college/payment-config")
}
