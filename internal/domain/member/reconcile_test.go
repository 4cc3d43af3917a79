//go:build unit

package member_test

import (
	"testing"

	"club-roster/internal/domain/member"
	"club-roster/internal/pkg/errs"
	"club-roster/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcile_StrongMatch(t *testing.T) {
	registry := []member.RegistryMember{
		builder.NewRegistryMemberBuilder().WithName("Anna Hansen").WithEmail("anna@x.dk").Build(),
	}
	accounts := []member.BookingAccount{
		builder.NewBookingAccountBuilder().WithID("acc-anna").WithName("Anna", "Hansen").WithEmail("anna@x.dk").Build(),
	}

	out := member.Reconcile(registry, accounts)

	require.Len(t, out, 1)
	assert.True(t, out[0].HasBookingAccount)
	assert.False(t, out[0].OnlyBooking)
	require.NotNil(t, out[0].BookingID)
	assert.Equal(t, "acc-anna", *out[0].BookingID)
	assert.Equal(t, member.MatchStrong, out[0].MatchRule)
	assert.Equal(t, accounts[0].CreatedAt, out[0].AccountCreatedAt)
}

func TestReconcile_FallbackOnFullName(t *testing.T) {
	registry := []member.RegistryMember{
		builder.NewRegistryMemberBuilder().WithName("Åse Østergård").WithEmail("").Build(),
	}
	accounts := []member.BookingAccount{
		builder.NewBookingAccountBuilder().WithID("acc-ase").WithName("Ase", "Ostergard").WithEmail("ase@elsewhere.dk").Build(),
	}

	out := member.Reconcile(registry, accounts)

	require.Len(t, out, 1)
	assert.True(t, out[0].HasBookingAccount)
	assert.Equal(t, member.MatchFallback, out[0].MatchRule)
}

func TestReconcile_OrphanAccount(t *testing.T) {
	registry := []member.RegistryMember{
		builder.NewRegistryMemberBuilder().WithName("Anna Hansen").WithEmail("anna@x.dk").Build(),
	}
	accounts := []member.BookingAccount{
		builder.NewBookingAccountBuilder().WithID("acc-bo").WithName("Bo", "Smith").WithEmail("bo@y.dk").WithCity("Aarhus").Build(),
	}

	out := member.Reconcile(registry, accounts)

	require.Len(t, out, 2)
	assert.False(t, out[0].HasBookingAccount)
	assert.Nil(t, out[0].BookingID)

	orphan := out[1]
	assert.True(t, orphan.OnlyBooking)
	assert.True(t, orphan.HasBookingAccount)
	assert.Equal(t, "Bo Smith", orphan.Name)
	assert.Equal(t, "bo@y.dk", orphan.Email)
	assert.Equal(t, "Aarhus", orphan.City)
	assert.Equal(t, member.GenderUnknown, orphan.Gender)
	require.NotNil(t, orphan.BookingID)
	assert.Equal(t, "acc-bo", *orphan.BookingID)
}

func TestReconcile_EdgeCases(t *testing.T) {
	t.Run("member without email and unmatched name never links", func(t *testing.T) {
		registry := []member.RegistryMember{builder.NewRegistryMemberBuilder().WithName("Carl Nielsen").WithEmail("").Build()}
		accounts := []member.BookingAccount{builder.NewBookingAccountBuilder().WithName("Dorte", "Jensen").WithEmail("").Build()}

		out := member.Reconcile(registry, accounts)
		require.Len(t, out, 2)
		assert.False(t, out[0].HasBookingAccount)
		assert.True(t, out[1].OnlyBooking)
	})

	t.Run("account without name fields never matches even on identical email", func(t *testing.T) {
		registry := []member.RegistryMember{builder.NewRegistryMemberBuilder().WithName("Anna Hansen").WithEmail("anna@x.dk").Build()}
		accounts := []member.BookingAccount{builder.NewBookingAccountBuilder().WithName("", "").WithEmail("anna@x.dk").Build()}

		out := member.Reconcile(registry, accounts)
		require.Len(t, out, 2)
		assert.False(t, out[0].HasBookingAccount)
		assert.True(t, out[1].OnlyBooking)
		assert.Equal(t, "", out[1].Name)
	})

	t.Run("email match alone is not enough without first-name agreement", func(t *testing.T) {
		registry := []member.RegistryMember{builder.NewRegistryMemberBuilder().WithName("Anna Hansen").WithEmail("family@x.dk").Build()}
		accounts := []member.BookingAccount{builder.NewBookingAccountBuilder().WithName("Peter", "Hansen").WithEmail("family@x.dk").Build()}

		out := member.Reconcile(registry, accounts)
		require.Len(t, out, 2)
		assert.False(t, out[0].HasBookingAccount)
	})

	t.Run("empty inputs", func(t *testing.T) {
		assert.Empty(t, member.Reconcile(nil, nil))
	})
}

func TestReconcile_NamelessRegistryEntryKeepsItsRecord(t *testing.T) {
	registry := []member.RegistryMember{
		builder.NewRegistryMemberBuilder().WithID("r-1").WithName("").WithEmail("anna@x.dk").Build(),
		builder.NewRegistryMemberBuilder().WithID("r-2").WithName("Bo Smith").WithEmail("bo@y.dk").Build(),
	}
	accounts := []member.BookingAccount{
		builder.NewBookingAccountBuilder().WithID("acc-anna").WithName("Anna", "Hansen").WithEmail("anna@x.dk").Build(),
	}

	out := member.Reconcile(registry, accounts)

	// a matching email alone never links: the first name has to agree too
	require.Len(t, out, len(registry)+1)
	assert.Equal(t, "r-1", out[0].RegistryID)
	assert.False(t, out[0].HasBookingAccount)
	assert.True(t, out[2].OnlyBooking)
	require.NoError(t, member.VerifyPartition(out, accounts))
}

func TestReconcile_FirstComeFirstServed(t *testing.T) {
	// Both registry rows are the same person; only the first one gets the account.
	registry := []member.RegistryMember{
		builder.NewRegistryMemberBuilder().WithID("r-1").WithName("Anna Hansen").Build(),
		builder.NewRegistryMemberBuilder().WithID("r-2").WithName("Anna Hansen").Build(),
	}
	accounts := []member.BookingAccount{
		builder.NewBookingAccountBuilder().WithID("acc-1").Build(),
	}

	out := member.Reconcile(registry, accounts)

	require.Len(t, out, 2)
	assert.True(t, out[0].HasBookingAccount)
	assert.False(t, out[1].HasBookingAccount)
	require.NoError(t, member.VerifyPartition(out, accounts))
}

func TestReconcile_FirstMatchVersusBestMatch(t *testing.T) {
	// First account passes only the name fallback, the second passes the strong rule.
	registry := []member.RegistryMember{
		builder.NewRegistryMemberBuilder().WithName("Anna Hansen").WithEmail("anna@x.dk").Build(),
	}
	accounts := []member.BookingAccount{
		builder.NewBookingAccountBuilder().WithID("acc-name").WithName("Anna", "Hansen").WithEmail("anna.h@other.dk").Build(),
		builder.NewBookingAccountBuilder().WithID("acc-strong").WithName("Anna", "Hansen").WithEmail("anna@x.dk").Build(),
	}

	first := member.NewReconciler(member.StrategyFirstMatch, member.DefaultThresholds()).Reconcile(registry, accounts)
	best := member.NewReconciler(member.StrategyBestMatch, member.DefaultThresholds()).Reconcile(registry, accounts)

	require.Len(t, first, 2)
	require.Len(t, best, 2)
	assert.Equal(t, "acc-name", *first[0].BookingID)
	assert.Equal(t, member.MatchFallback, first[0].MatchRule)
	assert.Equal(t, "acc-strong", *best[0].BookingID)
	assert.Equal(t, member.MatchStrong, best[0].MatchRule)
}

func TestReconcile_Deterministic(t *testing.T) {
	registry, accounts := builder.Roster(40)
	registry[3] = builder.NewRegistryMemberBuilder().WithID("r-3").WithName("Player Number007").WithEmail("player7@booking.dk").Build()

	a := member.Reconcile(registry, accounts)
	b := member.Reconcile(registry, accounts)

	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("reconcile not deterministic (-first +second):\n%s", diff)
	}
}

func TestReconcile_Partition(t *testing.T) {
	registry, accounts := builder.Roster(25)
	// Player names differ only in their number, so the name fallback grabs
	// the earliest free account rather than the intended one. The partition
	// must hold either way.
	for _, i := range []int{2, 5, 11} {
		registry[i] = builder.NewRegistryMemberBuilder().
			WithID(registry[i].RegistryID).
			WithName(accounts[i+3].FullName()).
			WithEmail(accounts[i+3].Email).
			Build()
	}

	out := member.Reconcile(registry, accounts)

	require.NoError(t, member.VerifyPartition(out, accounts))
	assert.Len(t, out, len(registry)+len(accounts)-3)

	summary := member.Summarize(out)
	assert.Equal(t, 25, summary.Registry)
	assert.Equal(t, 3, summary.Linked)
	assert.Equal(t, 22, summary.BookingOnly)
}

func TestVerifyPartition_DetectsViolations(t *testing.T) {
	accounts := []member.BookingAccount{
		builder.NewBookingAccountBuilder().WithID("acc-1").Build(),
	}
	id := "acc-1"

	testCases := []struct {
		name string
		out  []member.Reconciled
	}{
		{name: "account missing", out: []member.Reconciled{}},
		{name: "account twice", out: []member.Reconciled{
			{Name: "a", HasBookingAccount: true, BookingID: &id},
			{Name: "b", HasBookingAccount: true, OnlyBooking: true, BookingID: &id},
		}},
		{name: "linked without id", out: []member.Reconciled{{Name: "a", HasBookingAccount: true}}},
		{name: "booking-only without account flag", out: []member.Reconciled{{Name: "a", OnlyBooking: true, BookingID: &id}}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := member.VerifyPartition(tc.out, accounts)
			require.Error(t, err)
			assert.True(t, errs.Is(err, errs.ErrInvariantViolation))
		})
	}
}

func TestParsers(t *testing.T) {
	assert.Equal(t, member.GenderMale, member.ParseGender("mand"))
	assert.Equal(t, member.GenderFemale, member.ParseGender(" Kvinde "))
	assert.Equal(t, member.GenderUnknown, member.ParseGender(""))

	s, err := member.ParseStrategy("")
	require.NoError(t, err)
	assert.Equal(t, member.StrategyFirstMatch, s)
	_, err = member.ParseStrategy("optimal")
	assert.ErrorIs(t, err, member.ErrInvalidStrategy)

	st, err := member.ParseBookingStatus("ONLY")
	require.NoError(t, err)
	assert.Equal(t, member.BookingStatusOnly, st)
	_, err = member.ParseBookingStatus("maybe")
	assert.ErrorIs(t, err, member.ErrInvalidBookingStatus)
}
