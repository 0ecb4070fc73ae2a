package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"golang.org/x/sync/errgroup"
)

// StudentDashboardStats returns the student's counters.
func (c *Client) StudentDashboardStats(ctx context.Context) (*Response, error) {
	return c.get(ctx, "/student/events/dashboard/stats")
}

// StudentDashboard fetches the stats and registrations concurrently and
// merges them. Missing data falls back to zero counters and an empty list.
// Either call failing fails the whole dashboard.
func (c *Client) StudentDashboard(ctx context.Context) (*StudentDashboard, error) {
	var statsResp, regsResp *Response

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r, err := c.StudentDashboardStats(gctx)
		statsResp = r
		return err
	})
	g.Go(func() error {
		r, err := c.MyRegistrations(gctx)
		regsResp = r
		return err
	})
	if err := g.Wait(); err != nil {
		c.logger.WithError(err).Debug("student dashboard failed")
		return nil, err
	}

	dash := &StudentDashboard{RecentRegistrations: []any{}}
	if err := statsResp.Decode(&dash.Stats); err != nil {
		return nil, err
	}
	if err := regsResp.Decode(&dash.RecentRegistrations); err != nil {
		return nil, err
	}
	if dash.RecentRegistrations == nil {
		dash.RecentRegistrations = []any{}
	}
	return dash, nil
}

// MyRegistrations lists the student's event registrations.
func (c *Client) MyRegistrations(ctx context.Context) (*Response, error) {
	return c.get(ctx, "/student/events/my")
}

// RegisterForEvent registers the student solo or as a team.
func (c *Client) RegisterForEvent(ctx context.Context, reg EventRegistration) (*Response, error) {
	return c.send(ctx, http.MethodPost, "/student/events/register", reg)
}

// DownloadCertificate fetches the certificate for a registration.
func (c *Client) DownloadCertificate(ctx context.Context, registrationID string) (*Response, error) {
	return c.get(ctx, "/student/certificates/"+url.PathEscape(registrationID))
}

// TeamsForEvent lists the teams formed for an event.
func (c *Client) TeamsForEvent(ctx context.Context, eventID int64) (*Response, error) {
	return c.get(ctx, fmt.Sprintf("/student/teams/event/%d", eventID))
}

// MyTeams lists the teams the student belongs to.
func (c *Client) MyTeams(ctx context.Context) (*Response, error) {
	return c.get(ctx, "/student/teams/my")
}

// TeamMembers lists a team's members.
func (c *Client) TeamMembers(ctx context.Context, teamID int64) (*Response, error) {
	return c.get(ctx, fmt.Sprintf("/student/teams/%d/members", teamID))
}

// LeaveTeam removes the student from a team.
func (c *Client) LeaveTeam(ctx context.Context, teamID int64) (*Response, error) {
	return c.send(ctx, http.MethodDelete, fmt.Sprintf("/student/teams/%d/leave", teamID), nil)
}

// SubmitReview rates an attended event.
func (c *Client) SubmitReview(ctx context.Context, eventID int64, review Review) (*Response, error) {
	return c.send(ctx, http.MethodPost, fmt.Sprintf("/events/%d/review", eventID), review)
}

// MyReview returns the student's review of an event.
func (c *Client) MyReview(ctx context.Context, eventID int64) (*Response, error) {
	return c.get(ctx, fmt.Sprintf("/events/%d/review", eventID))
}

// EventReviews lists all reviews of an event.
func (c *Client) EventReviews(ctx context.Context, eventID int64) (*Response, error) {
	return c.get(ctx, fmt.Sprintf("/events/%d/reviews", eventID))
}
