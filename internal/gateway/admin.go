package gateway

import (
	"context"
	"fmt"
	"net/http"
)

// AdminDashboardStats returns platform moderation counters.
func (c *Client) AdminDashboardStats(ctx context.Context) (*Response, error) {
	return c.get(ctx, "/admin/dashboard/stats")
}

// PendingFests lists fests awaiting moderation.
func (c *Client) PendingFests(ctx context.Context) (*Response, error) {
	return c.get(ctx, "/admin/fests/pending")
}

// PendingEvents lists events awaiting moderation.
func (c *Client) PendingEvents(ctx context.Context) (*Response, error) {
	return c.get(ctx, "/admin/events/pending")
}

// ApproveFest publishes a fest.
func (c *Client) ApproveFest(ctx context.Context, festID int64) (*Response, error) {
	return c.send(ctx, http.MethodPost, fmt.Sprintf("/admin/fests/%d/approve", festID), nil)
}

// RejectFest rejects a fest with a reason shown to the college.
func (c *Client) RejectFest(ctx context.Context, festID int64, reason string) (*Response, error) {
	return c.send(ctx, http.MethodPost, fmt.Sprintf("/admin/fests/%d/reject", festID), map[string]string{"reason": reason})
}

// ApproveEvent publishes an event.
func (c *Client) ApproveEvent(ctx context.Context, eventID int64) (*Response, error) {
	return c.send(ctx, http.MethodPost, fmt.Sprintf("/admin/events/%d/approve", eventID), nil)
}

// RejectEvent rejects an event with a reason shown to the college.
func (c *Client) RejectEvent(ctx context.Context, eventID int64, reason string) (*Response, error) {
	return c.send(ctx, http.MethodPost, fmt.Sprintf("/admin/events/%d/reject", eventID), map[string]string{"reason": reason})
}

// Colleges lists every registered college.
func (c *Client) Colleges(ctx context.Context) (*Response, error) {
	return c.get(ctx, "/admin/colleges")
}
