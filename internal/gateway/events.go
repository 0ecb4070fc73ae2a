package gateway

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// CreateEvent submits an event for approval.
func (c *Client) CreateEvent(ctx context.Context, event Event) (*Response, error) {
	return c.send(ctx, http.MethodPost, "/events", event)
}

// Events lists the college's events.
func (c *Client) Events(ctx context.Context) (*Response, error) {
	return c.get(ctx, "/events")
}

// UpdateEvent replaces an event's fields. fields may be an Event or a partial map.
func (c *Client) UpdateEvent(ctx context.Context, eventID int64, fields any) (*Response, error) {
	return c.send(ctx, http.MethodPut, fmt.Sprintf("/events/%d", eventID), fields)
}

// DeleteEvent removes an event.
func (c *Client) DeleteEvent(ctx context.Context, eventID int64) (*Response, error) {
	return c.send(ctx, http.MethodDelete, fmt.Sprintf("/events/%d", eventID), nil)
}

// UploadEventPoster uploads the event poster as multipart field "file".
func (c *Client) UploadEventPoster(ctx context.Context, eventID int64, filename string, r io.Reader) (*Response, error) {
	return c.upload(ctx, fmt.Sprintf("/events/%d/poster", eventID), "file", filename, r)
}

// DeleteEventPoster removes the event poster.
func (c *Client) DeleteEventPoster(ctx context.Context, eventID int64) (*Response, error) {
	return c.send(ctx, http.MethodDelete, fmt.Sprintf("/events/%d/poster", eventID), nil)
}

// EventPosterAuditLogs lists poster changes for an event.
func (c *Client) EventPosterAuditLogs(ctx context.Context, eventID int64) (*Response, error) {
	return c.get(ctx, fmt.Sprintf("/events/%d/poster/audit-logs", eventID))
}

// EventStats returns registration figures for an event.
func (c *Client) EventStats(ctx context.Context, eventID int64) (*Response, error) {
	return c.get(ctx, fmt.Sprintf("/events/%d/stats", eventID))
}

// EventRating returns the aggregate rating of an event.
func (c *Client) EventRating(ctx context.Context, eventID int64) (*Response, error) {
	return c.get(ctx, fmt.Sprintf("/events/%d/rating", eventID))
}
