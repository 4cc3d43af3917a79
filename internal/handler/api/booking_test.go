//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"club-roster/internal/domain/booking"
	"club-roster/internal/handler/api"
	resdto "club-roster/internal/handler/dto/response"
	"club-roster/internal/pkg/errs"
	"club-roster/internal/usecase"
	"club-roster/internal/usecase/queries"
	"club-roster/tests/common/httptest"
	queriesmock "club-roster/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockQueries *queriesmock.MockBookingQueries
	handler     *api.BookingHandler
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.handler = api.NewBookingHandler(s.mockQueries)

	s.router.GET("/api/bookings", fakeAuth, s.handler.List)
	s.router.GET("/api/bookings/stats", fakeAuth, s.handler.Stats)
	s.router.GET("/api/bookings/utilization", fakeAuth, s.handler.Utilization)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

var windowFrom = time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)

func envelope(source usecase.Source) queries.Envelope {
	return queries.Envelope{
		From:         windowFrom,
		To:           windowFrom.AddDate(0, 0, 7),
		Source:       source,
		RosterSource: usecase.SourceCache,
		FetchedAt:    fetchedAt,
	}
}

func (s *BookingHandlerTestSuite) TestList() {
	s.Run("defaults to a week from today", func() {
		want := queries.BookingFilter{Days: 7, Sort: queries.SortAsc}
		s.mockQueries.EXPECT().List(gomock.Any(), want, queries.PageRequest{}).
			Return(&queries.BookingList{Envelope: envelope(usecase.SourceLive), Items: []queries.BookingView{}}, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/bookings", nil, "viewer")
		var resp resdto.BookingListResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		httptest.AssertHeaders(s.T(), w, map[string]string{api.HeaderDataSource: "live"})
		s.NotNil(resp.Bookings)
		s.Empty(resp.Bookings)
		s.Equal("cache", resp.RosterSource)
	})

	s.Run("passes filters through", func() {
		want := queries.BookingFilter{
			DaysAgo: 14, Days: 3, Name: "anna", SinglesOnly: true,
			Sport: "padel", Sort: queries.SortDesc,
		}
		start := windowFrom.Add(8 * time.Hour)
		s.mockQueries.EXPECT().List(gomock.Any(), want, queries.PageRequest{Page: 2, PageSize: 6}).
			Return(&queries.BookingList{
				Envelope: envelope(usecase.SourceStale),
				Items: []queries.BookingView{{
					ID: "bk-1", Start: start, End: start.Add(time.Hour), ResourceCategory: "Padel",
					Players: []queries.Player{{AccountRef: "a-1", Name: "Anna Hansen"}},
				}},
				Page: queries.PageInfo{Page: 2, PageSize: 6, Total: 7, TotalPages: 2},
			}, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/api/bookings?daysAgo=14&days=3&name=anna&singles=true&sport=padel&sort=desc&page=2&pageSize=6", nil, "viewer")
		var resp resdto.BookingListResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		httptest.AssertHeaders(s.T(), w, map[string]string{api.HeaderDataSource: "stale"})
		s.Require().Len(resp.Bookings, 1)
		s.Equal("bk-1", resp.Bookings[0].ID)
		s.Equal([]resdto.PlayerResponse{{AccountRef: "a-1", Name: "Anna Hansen"}}, resp.Bookings[0].Players)
		s.Equal(7, resp.Page.Total)
		s.True(windowFrom.Equal(resp.From))
	})

	s.Run("rejects invalid parameters", func() {
		for _, path := range []string{
			"/api/bookings?daysAgo=-1",
			"/api/bookings?days=0x",
			"/api/bookings?sort=sideways",
			"/api/bookings?singles=maybe",
		} {
			w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, path, nil, "viewer")
			httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid query parameters")
		}
	})

	s.Run("window too long is 400", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errs.Wrapf(errs.ErrInvalidWindow, "days must be between 1 and %d, got %d", 31, 90))

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/bookings?days=90", nil, "viewer")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "days must be between 1 and 31")
	})
}

func (s *BookingHandlerTestSuite) TestStats() {
	s.Run("returns leaderboards per keyword", func() {
		s.mockQueries.EXPECT().Stats(gomock.Any(), 0, 7).Return(&queries.Stats{
			Envelope: envelope(usecase.SourceCache),
			Leaderboards: map[string][]booking.LeaderboardEntry{
				"tennis": {
					{AccountRef: "a-1", DisplayName: "Anna Hansen", BookingCount: 2},
					{AccountRef: "b", DisplayName: booking.UnknownName, BookingCount: 1},
				},
				"padel": {},
			},
		}, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/bookings/stats", nil, "viewer")
		var resp resdto.StatsResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Equal([]resdto.LeaderboardEntryResponse{
			{AccountRef: "a-1", DisplayName: "Anna Hansen", BookingCount: 2},
			{AccountRef: "b", DisplayName: "Unknown", BookingCount: 1},
		}, resp.Leaderboards["tennis"])
		s.Contains(resp.Leaderboards, "padel")
		s.Empty(resp.Leaderboards["padel"])
	})

	s.Run("no data is 503", func() {
		s.mockQueries.EXPECT().Stats(gomock.Any(), 1, 2).Return(nil, errs.ErrNoSnapshot)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/bookings/stats?daysAgo=1&days=2", nil, "viewer")
		httptest.AssertErrorResponse(s.T(), w, http.StatusServiceUnavailable, "Upstream data unavailable")
	})
}

func (s *BookingHandlerTestSuite) TestUtilization() {
	s.mockQueries.EXPECT().Utilization(gomock.Any(), 0, 31).Return(&queries.UtilizationReport{
		Envelope:        envelope(usecase.SourceLive),
		CapacityMinutes: 840,
		Basis:           booking.BasisDuration,
		Days: []booking.UtilizationBucket{
			{Date: "2025-06-02", BookingCount: 20, OccupiedMinutes: 1200, Fraction: 1},
			{Date: "2025-06-03", BookingCount: 7, OccupiedMinutes: 420, Fraction: 0.5},
		},
	}, nil)

	w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/bookings/utilization?days=31", nil, "viewer")
	var resp resdto.UtilizationResponse
	httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
	s.Equal(840, resp.CapacityMinutes)
	s.Equal("duration", resp.Basis)
	s.Equal([]resdto.UtilizationDayResponse{
		{Date: "2025-06-02", BookingCount: 20, OccupiedMinutes: 1200, Fraction: 1},
		{Date: "2025-06-03", BookingCount: 7, OccupiedMinutes: 420, Fraction: 0.5},
	}, resp.Days)
	s.Contains(w.Body.String(), `"utilizationFraction":0.5`)
}
