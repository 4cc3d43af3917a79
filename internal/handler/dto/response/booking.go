package response

import (
	"time"

	"club-roster/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

type WindowResponse struct {
	From         time.Time `json:"from"`
	To           time.Time `json:"to"`
	Source       string    `json:"source"`
	RosterSource string    `json:"rosterSource,omitempty"`
	FetchedAt    time.Time `json:"fetchedAt"`
}

type PlayerResponse struct {
	AccountRef string `json:"accountRef"`
	Name       string `json:"name"`
}

type BookingResponse struct {
	ID               string           `json:"id"`
	Start            time.Time        `json:"start"`
	End              time.Time        `json:"end"`
	ResourceCategory string           `json:"resourceCategory"`
	Players          []PlayerResponse `json:"players"`
}

type BookingListResponse struct {
	WindowResponse
	Bookings []BookingResponse `json:"bookings"`
	Page     PageResponse      `json:"page"`
}

type LeaderboardEntryResponse struct {
	AccountRef   string `json:"accountRef"`
	DisplayName  string `json:"displayName"`
	BookingCount int    `json:"bookingCount"`
}

type StatsResponse struct {
	WindowResponse
	Leaderboards map[string][]LeaderboardEntryResponse `json:"leaderboards"`
}

type UtilizationDayResponse struct {
	Date            string  `json:"date"`
	BookingCount    int     `json:"bookingCount"`
	OccupiedMinutes float64 `json:"occupiedMinutes"`
	Fraction        float64 `json:"utilizationFraction"`
}

type UtilizationResponse struct {
	WindowResponse
	CapacityMinutes int                      `json:"capacityMinutes"`
	Basis           string                   `json:"basis"`
	Days            []UtilizationDayResponse `json:"days"`
}

func fromEnvelope(e queries.Envelope) WindowResponse {
	return WindowResponse{
		From:         e.From,
		To:           e.To,
		Source:       string(e.Source),
		RosterSource: string(e.RosterSource),
		FetchedAt:    e.FetchedAt,
	}
}

func FromBookingList(l *queries.BookingList) (*BookingListResponse, error) {
	resp := &BookingListResponse{
		WindowResponse: fromEnvelope(l.Envelope),
		Bookings:       make([]BookingResponse, 0, len(l.Items)),
	}
	if err := copier.CopyWithOption(&resp.Bookings, &l.Items, deepCopy); err != nil {
		return nil, err
	}
	if err := copier.Copy(&resp.Page, &l.Page); err != nil {
		return nil, err
	}
	return resp, nil
}

func FromStats(s *queries.Stats) (*StatsResponse, error) {
	resp := &StatsResponse{
		WindowResponse: fromEnvelope(s.Envelope),
		Leaderboards:   make(map[string][]LeaderboardEntryResponse, len(s.Leaderboards)),
	}
	for keyword, entries := range s.Leaderboards {
		board := make([]LeaderboardEntryResponse, 0, len(entries))
		if err := copier.Copy(&board, &entries); err != nil {
			return nil, err
		}
		resp.Leaderboards[keyword] = board
	}
	return resp, nil
}

func FromUtilization(u *queries.UtilizationReport) (*UtilizationResponse, error) {
	resp := &UtilizationResponse{
		WindowResponse:  fromEnvelope(u.Envelope),
		CapacityMinutes: u.CapacityMinutes,
		Basis:           string(u.Basis),
		Days:            make([]UtilizationDayResponse, 0, len(u.Days)),
	}
	if err := copier.Copy(&resp.Days, &u.Days); err != nil {
		return nil, err
	}
	return resp, nil
}
