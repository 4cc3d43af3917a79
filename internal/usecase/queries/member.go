package queries

import (
	"context"
	"strings"
	"time"

	"club-roster/internal/domain/member"
	"club-roster/internal/pkg/errs"
	"club-roster/internal/pkg/ptr"
	"club-roster/internal/pkg/textnorm"
	"club-roster/internal/usecase"
)

// MemberFilter narrows the reconciled roster. Empty fields do not filter.
// Name and City match as diacritic-insensitive substrings; Email as a
// case-insensitive substring. Year compares against the year the booking
// account was created.
type MemberFilter struct {
	Tag     string
	Sport   string
	Group   string
	Name    string
	City    string
	Email   string
	Booking member.BookingStatus
	Year    int
}

type MemberList struct {
	Items     []member.Reconciled `json:"items"`
	Page      PageInfo            `json:"page"`
	Summary   member.Summary      `json:"summary"`
	CycleID   string              `json:"cycleId"`
	Source    usecase.Source      `json:"source"`
	FetchedAt time.Time           `json:"fetchedAt"`
}

// Labels is a distinct list of values found on the roster.
type Labels struct {
	Values    []string       `json:"values"`
	Source    usecase.Source `json:"source"`
	FetchedAt time.Time      `json:"fetchedAt"`
}

type MemberQueries interface {
	List(ctx context.Context, filter MemberFilter, page PageRequest) (*MemberList, error)
	Tags(ctx context.Context) (*Labels, error)
	Groups(ctx context.Context) (*Labels, error)
}

type memberQueriesImpl struct {
	roster usecase.RosterService
	loc    *time.Location
}

// NewMemberQueries reads from roster; loc decides which year an account
// creation timestamp falls in.
func NewMemberQueries(roster usecase.RosterService, loc *time.Location) MemberQueries {
	if loc == nil {
		loc = time.UTC
	}
	return &memberQueriesImpl{roster: roster, loc: loc}
}

func (q *memberQueriesImpl) List(ctx context.Context, filter MemberFilter, page PageRequest) (*MemberList, error) {
	match, err := q.matcher(filter)
	if err != nil {
		return nil, err
	}

	r, err := q.roster.Current(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]member.Reconciled, 0, len(r.Members))
	for _, m := range r.Members {
		if match(m) {
			filtered = append(filtered, m)
		}
	}

	items, info := paginate(filtered, page, DefaultMemberPageSize)
	return &MemberList{
		Items:     items,
		Page:      info,
		Summary:   r.Summary,
		CycleID:   r.CycleID,
		Source:    r.Source,
		FetchedAt: r.FetchedAt,
	}, nil
}

// Tags lists the distinct member types in roster order.
func (q *memberQueriesImpl) Tags(ctx context.Context) (*Labels, error) {
	r, err := q.roster.Current(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	values := make([]string, 0)
	for _, m := range r.Members {
		if m.MemberType == "" {
			continue
		}
		if _, ok := seen[m.MemberType]; ok {
			continue
		}
		seen[m.MemberType] = struct{}{}
		values = append(values, m.MemberType)
	}
	return &Labels{Values: values, Source: r.Source, FetchedAt: r.FetchedAt}, nil
}

func (q *memberQueriesImpl) Groups(ctx context.Context) (*Labels, error) {
	r, err := q.roster.Current(ctx)
	if err != nil {
		return nil, err
	}
	values := r.Groups
	if values == nil {
		values = []string{}
	}
	return &Labels{Values: values, Source: r.Source, FetchedAt: r.FetchedAt}, nil
}

func (q *memberQueriesImpl) matcher(f MemberFilter) (func(member.Reconciled) bool, error) {
	status := f.Booking
	if status == "" {
		status = member.BookingStatusAll
	}
	switch status {
	case member.BookingStatusAll, member.BookingStatusWith, member.BookingStatusWithout, member.BookingStatusOnly:
	default:
		return nil, errs.Wrapf(errs.ErrInvalidFilter, "unknown booking status %q", f.Booking)
	}
	if f.Year < 0 {
		return nil, errs.Wrapf(errs.ErrInvalidFilter, "year must not be negative, got %d", f.Year)
	}

	name := textnorm.Normalize(f.Name)
	city := textnorm.Normalize(f.City)
	email := textnorm.Email(f.Email)
	sport := strings.ToLower(strings.TrimSpace(f.Sport))

	return func(m member.Reconciled) bool {
		if f.Tag != "" && m.MemberType != f.Tag {
			return false
		}
		if sport != "" && strings.ToLower(m.SportTag) != sport {
			return false
		}
		if f.Group != "" && ptr.Deref(m.GroupLabel, "") != f.Group {
			return false
		}
		if name != "" && !strings.Contains(textnorm.Normalize(m.Name), name) {
			return false
		}
		if city != "" && !strings.Contains(textnorm.Normalize(m.City), city) {
			return false
		}
		if email != "" && !strings.Contains(textnorm.Email(m.Email), email) {
			return false
		}
		if status != member.BookingStatusAll && m.BookingStatus() != status {
			return false
		}
		if f.Year > 0 && (m.AccountCreatedAt == nil || m.AccountCreatedAt.In(q.loc).Year() != f.Year) {
			return false
		}
		return true
	}, nil
}
