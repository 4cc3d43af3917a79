package request

import (
	"club-roster/internal/domain/member"
	"club-roster/internal/pkg/errs"
	"club-roster/internal/usecase/queries"
)

type ListMembersRequest struct {
	Tag      string `form:"tag" binding:"max=100"`
	Sport    string `form:"sport" binding:"max=100"`
	Group    string `form:"group" binding:"max=100"`
	Name     string `form:"name" binding:"max=100"`
	City     string `form:"city" binding:"max=100"`
	Email    string `form:"email" binding:"max=254"`
	Booking  string `form:"booking" binding:"omitempty,oneof=all with without only"`
	Year     int    `form:"year" binding:"omitempty,min=1900,max=9999"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"pageSize" binding:"omitempty,min=1,max=200"`
}

func (r ListMembersRequest) ToQuery() (queries.MemberFilter, queries.PageRequest, error) {
	status, err := member.ParseBookingStatus(r.Booking)
	if err != nil {
		return queries.MemberFilter{}, queries.PageRequest{}, errs.Mark(errs.Wrapf(err, "booking=%q", r.Booking), errs.ErrInvalidFilter)
	}
	filter := queries.MemberFilter{
		Tag:     r.Tag,
		Sport:   r.Sport,
		Group:   r.Group,
		Name:    r.Name,
		City:    r.City,
		Email:   r.Email,
		Booking: status,
		Year:    r.Year,
	}
	return filter, queries.PageRequest{Page: r.Page, PageSize: r.PageSize}, nil
}
