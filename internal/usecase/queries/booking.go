package queries

import (
	"context"
	"sort"
	"strings"
	"time"

	"club-roster/internal/domain/booking"
	"club-roster/internal/pkg/errs"
	"club-roster/internal/pkg/textnorm"
	"club-roster/internal/usecase"
)

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

func ParseSortOrder(s string) (SortOrder, error) {
	switch o := SortOrder(strings.ToLower(strings.TrimSpace(s))); o {
	case "", SortAsc:
		return SortAsc, nil
	case SortDesc:
		return SortDesc, nil
	default:
		return "", errs.Wrapf(errs.ErrInvalidFilter, "unknown sort order %q", s)
	}
}

const SportAll = "all"

// BookingFilter selects bookings inside a window. Name matches a booking
// when any attendee resolves to a roster member whose name contains it.
// Sport is SportAll or a keyword matched against the resource category.
type BookingFilter struct {
	DaysAgo     int
	Days        int
	Name        string
	SinglesOnly bool
	Sport       string
	Sort        SortOrder
}

type Player struct {
	AccountRef string `json:"accountRef"`
	Name       string `json:"name"`
}

type BookingView struct {
	ID               string    `json:"id"`
	Start            time.Time `json:"start"`
	End              time.Time `json:"end"`
	ResourceCategory string    `json:"resourceCategory"`
	Players          []Player  `json:"players"`
}

// Envelope describes the window and provenance shared by booking responses.
type Envelope struct {
	From         time.Time      `json:"from"`
	To           time.Time      `json:"to"`
	Source       usecase.Source `json:"source"`
	RosterSource usecase.Source `json:"rosterSource,omitempty"`
	FetchedAt    time.Time      `json:"fetchedAt"`
}

type BookingList struct {
	Envelope
	Items []BookingView `json:"items"`
	Page  PageInfo      `json:"page"`
}

type Stats struct {
	Envelope
	Leaderboards map[string][]booking.LeaderboardEntry `json:"leaderboards"`
}

type UtilizationReport struct {
	Envelope
	CapacityMinutes int                         `json:"capacityMinutes"`
	Basis           booking.Basis               `json:"basis"`
	Days            []booking.UtilizationBucket `json:"days"`
}

// StatsOptions configures the aggregate views.
type StatsOptions struct {
	Keywords    []string
	Utilization booking.UtilizationConfig
}

type BookingQueries interface {
	List(ctx context.Context, filter BookingFilter, page PageRequest) (*BookingList, error)
	Stats(ctx context.Context, daysAgo, days int) (*Stats, error)
	Utilization(ctx context.Context, daysAgo, days int) (*UtilizationReport, error)
}

type bookingQueriesImpl struct {
	bookings usecase.BookingService
	opts     StatsOptions
}

func NewBookingQueries(bookings usecase.BookingService, opts StatsOptions) BookingQueries {
	if opts.Utilization.Location == nil {
		opts.Utilization.Location = time.UTC
	}
	if opts.Utilization.Basis == "" {
		opts.Utilization.Basis = booking.BasisDuration
	}
	if opts.Utilization.CapacityMinutes <= 0 {
		opts.Utilization.CapacityMinutes = booking.DefaultCapacityMinutes
	}
	return &bookingQueriesImpl{bookings: bookings, opts: opts}
}

func envelope(b *usecase.Bookings) Envelope {
	return Envelope{
		From:         b.Window.From,
		To:           b.Window.To(),
		Source:       b.Source,
		RosterSource: b.RosterSource,
		FetchedAt:    b.FetchedAt,
	}
}

func (q *bookingQueriesImpl) List(ctx context.Context, filter BookingFilter, page PageRequest) (*BookingList, error) {
	order := filter.Sort
	if order == "" {
		order = SortAsc
	}
	if order != SortAsc && order != SortDesc {
		return nil, errs.Wrapf(errs.ErrInvalidFilter, "unknown sort order %q", filter.Sort)
	}

	b, err := q.bookings.Load(ctx, filter.DaysAgo, filter.Days)
	if err != nil {
		return nil, err
	}

	name := textnorm.Normalize(filter.Name)
	sport := strings.ToLower(strings.TrimSpace(filter.Sport))
	if sport == SportAll {
		sport = ""
	}

	selected := make([]booking.Record, 0, len(b.Records))
	for _, r := range b.Records {
		if filter.SinglesOnly && !r.Single() {
			continue
		}
		if sport != "" && !r.Matches(sport) {
			continue
		}
		if name != "" && !attendedBy(r, b.Directory, name) {
			continue
		}
		selected = append(selected, r)
	}

	sort.SliceStable(selected, func(i, j int) bool {
		if order == SortDesc {
			return selected[i].Start.After(selected[j].Start)
		}
		return selected[i].Start.Before(selected[j].Start)
	})

	records, info := paginate(selected, page, DefaultBookingPageSize)
	items := make([]BookingView, 0, len(records))
	for _, r := range records {
		items = append(items, toView(r, b.Directory))
	}

	return &BookingList{Envelope: envelope(b), Items: items, Page: info}, nil
}

func (q *bookingQueriesImpl) Stats(ctx context.Context, daysAgo, days int) (*Stats, error) {
	b, err := q.bookings.Load(ctx, daysAgo, days)
	if err != nil {
		return nil, err
	}
	return &Stats{
		Envelope:     envelope(b),
		Leaderboards: booking.Leaderboards(b.Records, b.Directory, q.opts.Keywords),
	}, nil
}

func (q *bookingQueriesImpl) Utilization(ctx context.Context, daysAgo, days int) (*UtilizationReport, error) {
	b, err := q.bookings.Load(ctx, daysAgo, days)
	if err != nil {
		return nil, err
	}
	return &UtilizationReport{
		Envelope:        envelope(b),
		CapacityMinutes: q.opts.Utilization.CapacityMinutes,
		Basis:           q.opts.Utilization.Basis,
		Days:            booking.SortedBuckets(booking.Utilization(b.Records, q.opts.Utilization)),
	}, nil
}

// attendedBy reports whether any attendee resolves to a known name that
// contains the normalized search string.
func attendedBy(r booking.Record, dir booking.Directory, search string) bool {
	for _, a := range r.Attendees {
		if _, known := dir[strings.ToLower(a.AccountRef)]; !known {
			continue
		}
		if strings.Contains(textnorm.Normalize(dir.Name(a.AccountRef)), search) {
			return true
		}
	}
	return false
}

func toView(r booking.Record, dir booking.Directory) BookingView {
	players := make([]Player, 0, len(r.Attendees))
	for _, a := range r.Attendees {
		players = append(players, Player{AccountRef: a.AccountRef, Name: dir.Name(a.AccountRef)})
	}
	return BookingView{
		ID:               r.ID,
		Start:            r.Start,
		End:              r.End,
		ResourceCategory: r.ResourceCategory,
		Players:          players,
	}
}
