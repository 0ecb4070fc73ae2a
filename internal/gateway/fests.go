package gateway

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// CreateFest submits a fest for approval.
func (c *Client) CreateFest(ctx context.Context, fest Fest) (*Response, error) {
	return c.send(ctx, http.MethodPost, "/fests", fest)
}

// Fests lists the college's fests.
func (c *Client) Fests(ctx context.Context) (*Response, error) {
	return c.get(ctx, "/fests")
}

// UpdateFest replaces a fest's fields. fields may be a Fest or a partial map.
func (c *Client) UpdateFest(ctx context.Context, festID int64, fields any) (*Response, error) {
	return c.send(ctx, http.MethodPut, fmt.Sprintf("/fests/%d", festID), fields)
}

// DeleteFest removes a fest.
func (c *Client) DeleteFest(ctx context.Context, festID int64) (*Response, error) {
	return c.send(ctx, http.MethodDelete, fmt.Sprintf("/fests/%d", festID), nil)
}

// UploadFestImage uploads the fest's banner as multipart field "image".
func (c *Client) UploadFestImage(ctx context.Context, festID int64, filename string, r io.Reader) (*Response, error) {
	return c.upload(ctx, fmt.Sprintf("/fests/%d/image", festID), "image", filename, r)
}

// FestEvents lists the events of a fest.
func (c *Client) FestEvents(ctx context.Context, festID int64) (*Response, error) {
	return c.get(ctx, fmt.Sprintf("/fests/%d/events", festID))
}
