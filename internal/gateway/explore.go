package gateway

import (
	"context"
	"net/url"
	"strconv"
)

// FestFilter narrows GET /explore/fests. Empty fields are not sent.
type FestFilter struct {
	Name    string
	City    string
	Mode    string
	State   string
	Country string
}

func (f FestFilter) values() url.Values {
	q := url.Values{}
	setString(q, "name", f.Name)
	setString(q, "city", f.City)
	setString(q, "mode", f.Mode)
	setString(q, "state", f.State)
	setString(q, "country", f.Country)
	return q
}

// EventFilter narrows GET /explore/events. Nil and empty fields are not sent.
type EventFilter struct {
	Category    string
	MinFee      *float64
	MaxFee      *float64
	TeamAllowed *bool
	City        string
	State       string
	Country     string
	Mode        string
}

func (f EventFilter) values() url.Values {
	q := url.Values{}
	setString(q, "category", f.Category)
	if f.MinFee != nil {
		q.Set("minFee", strconv.FormatFloat(*f.MinFee, 'f', -1, 64))
	}
	if f.MaxFee != nil {
		q.Set("maxFee", strconv.FormatFloat(*f.MaxFee, 'f', -1, 64))
	}
	if f.TeamAllowed != nil {
		q.Set("teamAllowed", strconv.FormatBool(*f.TeamAllowed))
	}
	setString(q, "city", f.City)
	setString(q, "state", f.State)
	setString(q, "country", f.Country)
	setString(q, "mode", f.Mode)
	return q
}

// ListParams pages through public listings. Zero values are not sent.
type ListParams struct {
	Page     int
	Limit    int
	Search   string
	Category string
	Mode     string
}

func (p ListParams) values() url.Values {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	setString(q, "search", p.Search)
	setString(q, "category", p.Category)
	setString(q, "mode", p.Mode)
	return q
}

func setString(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}

// ExploreFests searches approved fests.
func (c *Client) ExploreFests(ctx context.Context, f FestFilter) (*Response, error) {
	return c.Request(ctx, "/explore/fests", RequestOptions{Query: f.values()})
}

// ExploreEvents searches approved events.
func (c *Client) ExploreEvents(ctx context.Context, f EventFilter) (*Response, error) {
	return c.Request(ctx, "/explore/events", RequestOptions{Query: f.values()})
}

// PublicFests pages through fests.
func (c *Client) PublicFests(ctx context.Context, p ListParams) (*Response, error) {
	q := p.values()
	q.Del("category")
	q.Del("mode")
	return c.Request(ctx, "/explore/fests", RequestOptions{Query: q})
}

// PublicEvents pages through events.
func (c *Client) PublicEvents(ctx context.Context, p ListParams) (*Response, error) {
	return c.Request(ctx, "/explore/events", RequestOptions{Query: p.values()})
}

// ExploreStats returns platform-wide counters.
func (c *Client) ExploreStats(ctx context.Context) (*Response, error) {
	return c.get(ctx, "/explore/stats")
}
