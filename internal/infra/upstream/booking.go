package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"club-roster/internal/domain/booking"
	"club-roster/internal/domain/group"
	"club-roster/internal/domain/member"
	"club-roster/internal/infra/metrics"
	"club-roster/internal/pkg/config"
	"club-roster/internal/pkg/errs"
)

// BookingClient reads accounts, groups and bookings from the court booking
// platform. It expects an already-issued bearer token.
type BookingClient struct {
	http    httpClient
	baseURL string
	token   string
}

func NewBookingClient(cfg config.BookingPlatformConfig, logger *slog.Logger, m *metrics.Metrics) *BookingClient {
	return &BookingClient{
		http:    newHTTPClient(sourceBooking, cfg.Timeout, cfg.UserAgent, logger, m),
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.BearerToken,
	}
}

func (c *BookingClient) getJSON(ctx context.Context, endpoint, path string, query url.Values, v any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	header := http.Header{}
	header.Set("Accept", "application/json")
	if c.token != "" {
		header.Set("Authorization", "Bearer "+c.token)
	}

	body, err := c.http.get(ctx, endpoint, u, header)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return decodeErr(c.http.logger, sourceBooking, endpoint, err)
	}
	return nil
}

type accountDTO struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	City      string `json:"city"`
	CreatedTs string `json:"createdTs"`
	Created   string `json:"created"`
}

// FetchAccounts returns accounts in platform order. Accounts without an id
// are dropped since nothing could reference them.
func (c *BookingClient) FetchAccounts(ctx context.Context) ([]member.BookingAccount, error) {
	var dtos []accountDTO
	if err := c.getJSON(ctx, "members", "/members", nil, &dtos); err != nil {
		return nil, err
	}

	out := make([]member.BookingAccount, 0, len(dtos))
	for _, d := range dtos {
		if strings.TrimSpace(d.ID) == "" {
			continue
		}
		created := d.CreatedTs
		if created == "" {
			created = d.Created
		}
		out = append(out, member.BookingAccount{
			AccountID: strings.TrimSpace(d.ID),
			FirstName: strings.TrimSpace(d.FirstName),
			LastName:  strings.TrimSpace(d.LastName),
			Email:     strings.TrimSpace(d.Email),
			City:      strings.TrimSpace(d.City),
			CreatedAt: parseTimestampPtr(created),
		})
	}
	return out, nil
}

type groupDTO struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

func (c *BookingClient) FetchGroups(ctx context.Context) ([]group.Catalog, error) {
	var dtos []groupDTO
	if err := c.getJSON(ctx, "groups", "/groups", nil, &dtos); err != nil {
		return nil, err
	}

	out := make([]group.Catalog, 0, len(dtos))
	for _, d := range dtos {
		if d.ID == "" {
			continue
		}
		out = append(out, group.Catalog{GroupID: d.ID, Title: strings.TrimSpace(d.Title)})
	}
	return out, nil
}

// memberRefs accepts a single reference or a list of them.
type memberRefs []string

func (r *memberRefs) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*r = nil
		return nil
	}

	if b[0] == '[' {
		var raw []json.RawMessage
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
		out := make([]string, 0, len(raw))
		for _, item := range raw {
			if s, ok := scalarRef(item); ok {
				out = append(out, s)
			}
		}
		*r = out
		return nil
	}

	if s, ok := scalarRef(b); ok {
		*r = memberRefs{s}
		return nil
	}
	*r = nil
	return nil
}

// scalarRef reads a string or number reference.
func scalarRef(b json.RawMessage) (string, bool) {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		s = strings.TrimSpace(s)
		return s, s != ""
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		return n.String(), true
	}
	return "", false
}

type relationDTO struct {
	GroupID string     `json:"groupId"`
	Members memberRefs `json:"members"`
}

func (c *BookingClient) FetchRelations(ctx context.Context, groupIDs []string) ([]group.Relation, error) {
	if len(groupIDs) == 0 {
		return nil, nil
	}

	q := url.Values{}
	q.Set("groupIds", strings.Join(groupIDs, ","))

	var dtos []relationDTO
	if err := c.getJSON(ctx, "relations", "/groups/relations", q, &dtos); err != nil {
		return nil, err
	}

	out := make([]group.Relation, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, group.Relation{GroupID: d.GroupID, MemberRefs: d.Members})
	}
	return out, nil
}

type bookingDTO struct {
	ID        string `json:"id"`
	StartTs   string `json:"startTs"`
	EndTs     string `json:"endTs"`
	Resources []struct {
		Name string `json:"name"`
	} `json:"resources"`
	Bookings []struct {
		ID        string `json:"id"`
		AccountID string `json:"accountId"`
	} `json:"bookings"`
}

// FetchBookings returns the bookings of days calendar days starting at from.
// Unparseable timestamps become zero times and are left for the aggregator
// to skip.
func (c *BookingClient) FetchBookings(ctx context.Context, from time.Time, days int) ([]booking.Record, error) {
	if days < 1 {
		return nil, errs.Wrapf(errs.ErrInvalidWindow, "days must be positive, got %d", days)
	}

	q := url.Values{}
	q.Set("from", from.Format(time.DateOnly))
	q.Set("days", strconv.Itoa(days))

	var dtos []bookingDTO
	if err := c.getJSON(ctx, "bookings", "/bookings", q, &dtos); err != nil {
		return nil, err
	}

	out := make([]booking.Record, 0, len(dtos))
	for _, d := range dtos {
		rec := booking.Record{
			ID:    d.ID,
			Start: parseTimestamp(d.StartTs),
			End:   parseTimestamp(d.EndTs),
		}
		if len(d.Resources) > 0 {
			rec.ResourceCategory = strings.TrimSpace(d.Resources[0].Name)
		}
		rec.Attendees = make([]booking.Attendee, 0, len(d.Bookings))
		for _, b := range d.Bookings {
			rec.Attendees = append(rec.Attendees, booking.Attendee{AttendeeID: b.ID, AccountRef: b.AccountID})
		}
		out = append(out, rec)
	}
	return out, nil
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

func parseTimestamp(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func parseTimestampPtr(s string) *time.Time {
	t := parseTimestamp(s)
	if t.IsZero() {
		return nil
	}
	return &t
}
