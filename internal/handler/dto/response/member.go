package response

import (
	"time"

	"club-roster/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

type MemberResponse struct {
	RegistryID        string     `json:"registryId,omitempty"`
	Name              string     `json:"name"`
	Email             string     `json:"email"`
	Address           string     `json:"address,omitempty"`
	PostalCode        string     `json:"postalCode,omitempty"`
	City              string     `json:"city"`
	Phone             string     `json:"phone,omitempty"`
	BirthDate         *time.Time `json:"birthDate,omitempty"`
	MemberType        string     `json:"memberType"`
	SportTag          string     `json:"sportTag,omitempty"`
	Gender            string     `json:"gender"`
	HasBookingAccount bool       `json:"hasBookingAccount"`
	OnlyBooking       bool       `json:"onlyBooking"`
	BookingID         *string    `json:"bookingId"`
	AccountCreatedAt  *time.Time `json:"accountCreatedAt"`
	GroupLabel        *string    `json:"groupLabel"`
	MatchRule         string     `json:"matchRule,omitempty"`
}

type SummaryResponse struct {
	Registry    int `json:"registry"`
	Linked      int `json:"linked"`
	Strong      int `json:"strong"`
	Fallback    int `json:"fallback"`
	BookingOnly int `json:"bookingOnly"`
}

type PageResponse struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

type MemberListResponse struct {
	Members   []MemberResponse `json:"members"`
	Page      PageResponse     `json:"page"`
	Summary   SummaryResponse  `json:"summary"`
	CycleID   string           `json:"cycleId"`
	Source    string           `json:"source"`
	FetchedAt time.Time        `json:"fetchedAt"`
}

type LabelsResponse struct {
	Values    []string  `json:"values"`
	Source    string    `json:"source"`
	FetchedAt time.Time `json:"fetchedAt"`
}

// RefreshResponse reports the outcome of a forced fetch cycle.
type RefreshResponse struct {
	CycleID   string          `json:"cycleId"`
	Summary   SummaryResponse `json:"summary"`
	Source    string          `json:"source"`
	FetchedAt time.Time       `json:"fetchedAt"`
}

var deepCopy = copier.Option{DeepCopy: true}

func FromMemberList(l *queries.MemberList) (*MemberListResponse, error) {
	resp := &MemberListResponse{
		Members:   make([]MemberResponse, 0, len(l.Items)),
		CycleID:   l.CycleID,
		Source:    string(l.Source),
		FetchedAt: l.FetchedAt,
	}
	if err := copier.CopyWithOption(&resp.Members, &l.Items, deepCopy); err != nil {
		return nil, err
	}
	if err := copier.Copy(&resp.Page, &l.Page); err != nil {
		return nil, err
	}
	if err := copier.Copy(&resp.Summary, &l.Summary); err != nil {
		return nil, err
	}
	return resp, nil
}

func FromLabels(l *queries.Labels) *LabelsResponse {
	values := l.Values
	if values == nil {
		values = []string{}
	}
	return &LabelsResponse{Values: values, Source: string(l.Source), FetchedAt: l.FetchedAt}
}
