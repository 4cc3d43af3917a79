//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"club-roster/internal/domain/auth"
	"club-roster/internal/domain/member"
	"club-roster/internal/handler/api"
	resdto "club-roster/internal/handler/dto/response"
	"club-roster/internal/infra"
	"club-roster/internal/pkg/errs"
	"club-roster/internal/pkg/ptr"
	"club-roster/internal/usecase"
	"club-roster/internal/usecase/queries"
	"club-roster/tests/common/httptest"
	"club-roster/tests/common/testutil"
	queriesmock "club-roster/tests/mock/queries"
	usecasemock "club-roster/tests/mock/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

var fetchedAt = time.Date(2025, time.June, 2, 9, 0, 0, 0, time.UTC)

// fakeAuth stands in for the JWT middleware: any bearer token passes, and
// the token text picks the role.
func fakeAuth(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Access token required"}})
		return
	}
	role := auth.RoleViewer
	if header == "Bearer admin" {
		role = auth.RoleAdmin
	}
	c.Set("operator_subject", "ops@club.dk")
	c.Set("operator_role", role)
	c.Next()
}

func requireAdmin(c *gin.Context) {
	role, _ := c.Get("operator_role")
	if r, ok := role.(auth.Role); !ok || !r.AtLeast(auth.RoleAdmin) {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": gin.H{"message": "Insufficient permissions"}})
		return
	}
	c.Next()
}

type MemberHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockQueries *queriesmock.MockMemberQueries
	mockRoster  *usecasemock.MockRosterService
	handler     *api.MemberHandler
}

func (s *MemberHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockMemberQueries(s.mockCtrl)
	s.mockRoster = usecasemock.NewMockRosterService(s.mockCtrl)
	s.handler = api.NewMemberHandler(s.mockQueries, s.mockRoster)

	s.router.GET("/api/members", fakeAuth, s.handler.List)
	s.router.GET("/api/members/tags", fakeAuth, s.handler.Tags)
	s.router.GET("/api/members/groups", fakeAuth, s.handler.Groups)
	s.router.POST("/api/members/refresh", fakeAuth, requireAdmin, s.handler.Refresh)
}

func (s *MemberHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestMemberHandlerSuite(t *testing.T) {
	suite.Run(t, new(MemberHandlerTestSuite))
}

func memberList() *queries.MemberList {
	return &queries.MemberList{
		Items: []member.Reconciled{
			{
				RegistryID: "r-1", Name: "Anna Hansen", Email: "anna@x.dk", City: "Hellerup",
				MemberType: "Senior", Gender: member.GenderFemale, HasBookingAccount: true,
				BookingID: ptr.Of("a-1"), GroupLabel: ptr.Of("Seniorer"), MatchRule: member.MatchStrong,
			},
		},
		Page:      queries.PageInfo{Page: 2, PageSize: 1, Total: 3, TotalPages: 3},
		Summary:   member.Summary{Registry: 2, Linked: 1, Strong: 1, BookingOnly: 1},
		CycleID:   "cycle-1",
		Source:    usecase.SourceCache,
		FetchedAt: fetchedAt,
	}
}

func (s *MemberHandlerTestSuite) TestList() {
	s.Run("passes parsed filters and paging", func() {
		want := queries.MemberFilter{
			Tag: "Senior", Name: "anna", City: "hellerup",
			Booking: member.BookingStatusWith, Year: 2024,
		}
		s.mockQueries.EXPECT().
			List(gomock.Any(), want, queries.PageRequest{Page: 2, PageSize: 1}).
			Return(memberList(), nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/api/members?tag=Senior&name=anna&city=hellerup&booking=with&year=2024&page=2&pageSize=1", nil, "viewer")

		var resp resdto.MemberListResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		httptest.AssertHeaders(s.T(), w, map[string]string{api.HeaderDataSource: "cache"})
		s.Require().Len(resp.Members, 1)
		s.Equal("Anna Hansen", resp.Members[0].Name)
		s.Equal("female", resp.Members[0].Gender)
		s.Equal("strong", resp.Members[0].MatchRule)
		s.Require().NotNil(resp.Members[0].GroupLabel)
		s.Equal("Seniorer", *resp.Members[0].GroupLabel)
		s.Equal(resdto.PageResponse{Page: 2, PageSize: 1, Total: 3, TotalPages: 3}, resp.Page)
		s.Equal(1, resp.Summary.BookingOnly)
		s.Equal("cache", resp.Source)
		s.Equal("cycle-1", resp.CycleID)
	})

	s.Run("empty query lists everything", func() {
		s.mockQueries.EXPECT().
			List(gomock.Any(), queries.MemberFilter{Booking: member.BookingStatusAll}, queries.PageRequest{}).
			Return(memberList(), nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/members", nil, "viewer")
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, nil)
	})

	s.Run("rejects invalid parameters", func() {
		for _, path := range []string{
			"/api/members?booking=sometimes",
			"/api/members?year=12",
			"/api/members?page=0",
			"/api/members?pageSize=500",
		} {
			w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, path, nil, "viewer")
			httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid query parameters")
		}
	})

	s.Run("member json shape", func() {
		list := memberList()
		list.Items = append(list.Items, member.Reconciled{
			Name: "Guest Player", Email: "guest@z.dk", HasBookingAccount: true, OnlyBooking: true,
			BookingID: ptr.Of("a-9"),
		})
		s.mockQueries.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any()).Return(list, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/members", nil, "viewer")
		var body struct {
			Members []map[string]any `json:"members"`
		}
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &body)
		s.Require().Len(body.Members, 2)

		anna := resdto.MemberResponse{
			RegistryID: "r-1", Name: "Anna Hansen", Email: "anna@x.dk", City: "Hellerup",
			MemberType: "Senior", Gender: "female", HasBookingAccount: true,
			BookingID: ptr.Of("a-1"), GroupLabel: ptr.Of("Seniorer"),
		}
		s.Equal(testutil.DtoMap(s.T(), anna, testutil.Field("matchRule", "strong")), body.Members[0])

		guest := body.Members[1]
		s.NotContains(guest, "registryId")
		s.Contains(guest, "groupLabel")
		s.Nil(guest["groupLabel"])
		s.Equal("a-9", guest["bookingId"])
		s.Equal(true, guest["onlyBooking"])
	})

	s.Run("requires a token", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/members", nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, "Access token required")
	})

	s.Run("no snapshot is 503", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errs.Mark(errs.Wrap(errs.ErrUpstreamUnavailable, "no roster available"), errs.ErrNoSnapshot))

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/members", nil, "viewer")
		httptest.AssertErrorResponse(s.T(), w, http.StatusServiceUnavailable, "Upstream data unavailable")
	})

	s.Run("unexpected failure is 500 with kind", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, infra.WrapRepoErr(nil, infra.KindDecodeFailure, "decode members", errs.New("bad json")))

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/members", nil, "viewer")
		httptest.AssertErrorResponse(s.T(), w, http.StatusInternalServerError, "Failed to list members")
		s.Contains(w.Body.String(), string(infra.KindDecodeFailure))
	})
}

func (s *MemberHandlerTestSuite) TestLabels() {
	s.Run("tags", func() {
		s.mockQueries.EXPECT().Tags(gomock.Any()).
			Return(&queries.Labels{Values: []string{"Senior", "Junior"}, Source: usecase.SourceLive, FetchedAt: fetchedAt}, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/members/tags", nil, "viewer")
		var resp resdto.LabelsResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Equal([]string{"Senior", "Junior"}, resp.Values)
		s.Equal("live", resp.Source)
	})

	s.Run("groups never null", func() {
		s.mockQueries.EXPECT().Groups(gomock.Any()).
			Return(&queries.Labels{Source: usecase.SourceDemo, FetchedAt: fetchedAt}, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/members/groups", nil, "viewer")
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, nil)
		httptest.AssertHeaders(s.T(), w, map[string]string{api.HeaderDataSource: "demo"})
		s.Contains(w.Body.String(), `"values":[]`)
	})
}

func (s *MemberHandlerTestSuite) TestRefresh() {
	s.Run("admin refreshes", func() {
		s.mockRoster.EXPECT().Refresh(gomock.Any()).Return(&usecase.Roster{
			RosterSnapshot: usecase.RosterSnapshot{
				CycleID: "cycle-9",
				Summary: member.Summary{Registry: 20, Linked: 12, Strong: 8, Fallback: 4, BookingOnly: 2},
			},
			Source:    usecase.SourceLive,
			FetchedAt: fetchedAt,
		}, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/members/refresh", nil, "admin")
		var resp resdto.RefreshResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Equal("cycle-9", resp.CycleID)
		s.Equal(resdto.SummaryResponse{Registry: 20, Linked: 12, Strong: 8, Fallback: 4, BookingOnly: 2}, resp.Summary)
		s.Equal("live", resp.Source)
	})

	s.Run("viewer is forbidden", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/members/refresh", nil, "viewer")
		httptest.AssertErrorResponse(s.T(), w, http.StatusForbidden, "Insufficient permissions")
	})

	s.Run("failed refresh without fallback", func() {
		s.mockRoster.EXPECT().Refresh(gomock.Any()).Return(nil, errs.ErrNoSnapshot)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/members/refresh", nil, "admin")
		httptest.AssertErrorResponse(s.T(), w, http.StatusServiceUnavailable, "Upstream data unavailable")
	})
}
