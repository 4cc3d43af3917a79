//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"club-roster/internal/domain/member"
	"club-roster/internal/pkg/errs"
	"club-roster/internal/pkg/ptr"
	"club-roster/internal/usecase"
	"club-roster/internal/usecase/queries"
	usecasemock "club-roster/tests/mock/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var fetchedAt = time.Date(2025, time.June, 2, 9, 0, 0, 0, time.UTC)

func rosterMembers() []member.Reconciled {
	created2023 := time.Date(2023, time.April, 1, 10, 0, 0, 0, time.UTC)
	created2024 := time.Date(2024, time.December, 31, 23, 30, 0, 0, time.UTC)
	return []member.Reconciled{
		{
			RegistryID: "r-1", Name: "Anna Hansen", Email: "anna@x.dk", City: "2900 Hellerup",
			MemberType: "Senior", SportTag: "Tennis", HasBookingAccount: true,
			BookingID: ptr.Of("a-1"), AccountCreatedAt: &created2023, GroupLabel: ptr.Of("Seniorer"),
		},
		{
			RegistryID: "r-2", Name: "Søren Østergård", Email: "soren@y.dk", City: "Aarhus",
			MemberType: "Junior", SportTag: "Padel",
		},
		{
			RegistryID: "r-3", Name: "Bo Jensen", Email: "bo@x.dk", City: "Hellerup",
			MemberType: "Senior", SportTag: "padel", HasBookingAccount: true,
			BookingID: ptr.Of("a-3"), AccountCreatedAt: &created2024, GroupLabel: ptr.Of("Holdspillere"),
		},
		{
			Name: "Guest Player", Email: "guest@z.dk", HasBookingAccount: true, OnlyBooking: true,
			BookingID: ptr.Of("a-9"), AccountCreatedAt: &created2024,
		},
	}
}

func newMemberQueries(t *testing.T, loc *time.Location) (queries.MemberQueries, *usecasemock.MockRosterService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	roster := usecasemock.NewMockRosterService(ctrl)
	return queries.NewMemberQueries(roster, loc), roster
}

func currentRoster(members []member.Reconciled) *usecase.Roster {
	return &usecase.Roster{
		RosterSnapshot: usecase.RosterSnapshot{
			CycleID: "cycle-7",
			Members: members,
			Groups:  []string{"Seniorer", "Holdspillere"},
			Summary: member.Summarize(members),
		},
		Source:    usecase.SourceCache,
		FetchedAt: fetchedAt,
	}
}

func names(items []member.Reconciled) []string {
	out := make([]string, 0, len(items))
	for _, m := range items {
		out = append(out, m.Name)
	}
	return out
}

func TestMemberQueries_ListFilters(t *testing.T) {
	tests := []struct {
		name   string
		filter queries.MemberFilter
		want   []string
	}{
		{name: "no filter", want: []string{"Anna Hansen", "Søren Østergård", "Bo Jensen", "Guest Player"}},
		{name: "tag", filter: queries.MemberFilter{Tag: "Senior"}, want: []string{"Anna Hansen", "Bo Jensen"}},
		{name: "tag is exact", filter: queries.MemberFilter{Tag: "senior"}, want: []string{}},
		{name: "sport ignores case", filter: queries.MemberFilter{Sport: "PADEL"}, want: []string{"Søren Østergård", "Bo Jensen"}},
		{name: "group", filter: queries.MemberFilter{Group: "Seniorer"}, want: []string{"Anna Hansen"}},
		{name: "name substring", filter: queries.MemberFilter{Name: "han"}, want: []string{"Anna Hansen"}},
		{name: "name folds diacritics", filter: queries.MemberFilter{Name: "ostergard"}, want: []string{"Søren Østergård"}},
		{name: "city substring", filter: queries.MemberFilter{City: "hellerup"}, want: []string{"Anna Hansen", "Bo Jensen"}},
		{name: "email substring", filter: queries.MemberFilter{Email: "@X.DK"}, want: []string{"Anna Hansen", "Bo Jensen"}},
		{name: "with booking account", filter: queries.MemberFilter{Booking: member.BookingStatusWith}, want: []string{"Anna Hansen", "Bo Jensen"}},
		{name: "without booking account", filter: queries.MemberFilter{Booking: member.BookingStatusWithout}, want: []string{"Søren Østergård"}},
		{name: "booking only", filter: queries.MemberFilter{Booking: member.BookingStatusOnly}, want: []string{"Guest Player"}},
		{name: "account year", filter: queries.MemberFilter{Year: 2024}, want: []string{"Bo Jensen", "Guest Player"}},
		{name: "combined", filter: queries.MemberFilter{Tag: "Senior", City: "hellerup", Year: 2023}, want: []string{"Anna Hansen"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, roster := newMemberQueries(t, time.UTC)
			roster.EXPECT().Current(gomock.Any()).Return(currentRoster(rosterMembers()), nil)

			got, err := q.List(context.Background(), tt.filter, queries.PageRequest{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(got.Items))
			assert.Equal(t, len(tt.want), got.Page.Total)
			assert.Equal(t, usecase.SourceCache, got.Source)
			assert.Equal(t, "cycle-7", got.CycleID)
			assert.Equal(t, fetchedAt, got.FetchedAt)
		})
	}
}

func TestMemberQueries_YearUsesLocation(t *testing.T) {
	cph, err := time.LoadLocation("Europe/Copenhagen")
	require.NoError(t, err)
	q, roster := newMemberQueries(t, cph)
	roster.EXPECT().Current(gomock.Any()).Return(currentRoster(rosterMembers()), nil)

	// 2024-12-31 23:30 UTC is already 2025 in Copenhagen
	got, err := q.List(context.Background(), queries.MemberFilter{Year: 2025}, queries.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Bo Jensen", "Guest Player"}, names(got.Items))
}

func TestMemberQueries_ListPagination(t *testing.T) {
	members := make([]member.Reconciled, 30)
	for i := range members {
		members[i] = member.Reconciled{Name: string(rune('A'+i%26)) + " member"}
	}

	tests := []struct {
		name      string
		page      queries.PageRequest
		wantLen   int
		wantPage  queries.PageInfo
		wantFirst string
	}{
		{
			name:      "default size",
			page:      queries.PageRequest{},
			wantLen:   12,
			wantPage:  queries.PageInfo{Page: 1, PageSize: 12, Total: 30, TotalPages: 3},
			wantFirst: "A member",
		},
		{
			name:      "last partial page",
			page:      queries.PageRequest{Page: 3},
			wantLen:   6,
			wantPage:  queries.PageInfo{Page: 3, PageSize: 12, Total: 30, TotalPages: 3},
			wantFirst: "Y member",
		},
		{
			name:     "past the end",
			page:     queries.PageRequest{Page: 9, PageSize: 10},
			wantLen:  0,
			wantPage: queries.PageInfo{Page: 9, PageSize: 10, Total: 30, TotalPages: 3},
		},
		{
			name:     "page number far past the end",
			page:     queries.PageRequest{Page: 1 << 62, PageSize: 12},
			wantLen:  0,
			wantPage: queries.PageInfo{Page: 1 << 62, PageSize: 12, Total: 30, TotalPages: 3},
		},
		{
			name:      "size is capped",
			page:      queries.PageRequest{PageSize: 1000},
			wantLen:   30,
			wantPage:  queries.PageInfo{Page: 1, PageSize: queries.MaxPageSize, Total: 30, TotalPages: 1},
			wantFirst: "A member",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, roster := newMemberQueries(t, nil)
			roster.EXPECT().Current(gomock.Any()).Return(currentRoster(members), nil)

			got, err := q.List(context.Background(), queries.MemberFilter{}, tt.page)
			require.NoError(t, err)
			assert.Len(t, got.Items, tt.wantLen)
			assert.NotNil(t, got.Items)
			assert.Equal(t, tt.wantPage, got.Page)
			if tt.wantFirst != "" {
				assert.Equal(t, tt.wantFirst, got.Items[0].Name)
			}
		})
	}
}

func TestMemberQueries_InvalidFilter(t *testing.T) {
	tests := []struct {
		name   string
		filter queries.MemberFilter
	}{
		{name: "booking status", filter: queries.MemberFilter{Booking: "sometimes"}},
		{name: "negative year", filter: queries.MemberFilter{Year: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// the roster is never consulted for a bad filter
			q, _ := newMemberQueries(t, nil)

			got, err := q.List(context.Background(), tt.filter, queries.PageRequest{})
			require.Error(t, err)
			assert.Nil(t, got)
			assert.True(t, errs.Is(err, errs.ErrInvalidFilter))
		})
	}
}

func TestMemberQueries_RosterError(t *testing.T) {
	q, roster := newMemberQueries(t, nil)
	roster.EXPECT().Current(gomock.Any()).Return(nil, errs.ErrNoSnapshot)

	_, err := q.List(context.Background(), queries.MemberFilter{}, queries.PageRequest{})
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ErrNoSnapshot))
}

func TestMemberQueries_Tags(t *testing.T) {
	q, roster := newMemberQueries(t, nil)
	roster.EXPECT().Current(gomock.Any()).Return(currentRoster(rosterMembers()), nil)

	got, err := q.Tags(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Senior", "Junior"}, got.Values)
	assert.Equal(t, usecase.SourceCache, got.Source)
}

func TestMemberQueries_Groups(t *testing.T) {
	q, roster := newMemberQueries(t, nil)
	withGroups := currentRoster(rosterMembers())
	noGroups := currentRoster(nil)
	noGroups.Groups = nil
	gomock.InOrder(
		roster.EXPECT().Current(gomock.Any()).Return(withGroups, nil),
		roster.EXPECT().Current(gomock.Any()).Return(noGroups, nil),
	)

	got, err := q.Groups(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Seniorer", "Holdspillere"}, got.Values)

	empty, err := q.Groups(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, empty.Values)
	assert.Empty(t, empty.Values)
}
