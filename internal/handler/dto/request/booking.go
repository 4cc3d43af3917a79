package request

import (
	"club-roster/internal/usecase/queries"
)

const DefaultWindowDays = 7

// WindowRequest selects the days [today-daysAgo, today-daysAgo+days).
// The upper bound on days is enforced by the booking service.
type WindowRequest struct {
	DaysAgo int `form:"daysAgo" binding:"omitempty,min=0"`
	Days    int `form:"days" binding:"omitempty,min=1"`
}

func (r WindowRequest) Resolve() (daysAgo, days int) {
	days = r.Days
	if days == 0 {
		days = DefaultWindowDays
	}
	return r.DaysAgo, days
}

type ListBookingsRequest struct {
	WindowRequest
	Name     string `form:"name" binding:"max=100"`
	Singles  bool   `form:"singles"`
	Sport    string `form:"sport" binding:"max=50"`
	Sort     string `form:"sort" binding:"omitempty,oneof=asc desc"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"pageSize" binding:"omitempty,min=1,max=200"`
}

func (r ListBookingsRequest) ToQuery() (queries.BookingFilter, queries.PageRequest, error) {
	order, err := queries.ParseSortOrder(r.Sort)
	if err != nil {
		return queries.BookingFilter{}, queries.PageRequest{}, err
	}
	daysAgo, days := r.Resolve()
	filter := queries.BookingFilter{
		DaysAgo:     daysAgo,
		Days:        days,
		Name:        r.Name,
		SinglesOnly: r.Singles,
		Sport:       r.Sport,
		Sort:        order,
	}
	return filter, queries.PageRequest{Page: r.Page, PageSize: r.PageSize}, nil
}
