// Package demo serves a fixed offline dataset shaped like the real upstream
// feeds. It is the last fallback when nothing live or cached is available.
package demo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"club-roster/internal/domain/booking"
	"club-roster/internal/domain/group"
	"club-roster/internal/domain/member"
)

const size = 20

var sportTags = []string{"Tennis", "Padel", "Both", "None"}

var names = [size][2]string{
	{"Anna", "Hansen"}, {"Bo", "Jensen"}, {"Carl", "Nielsen"}, {"Dorte", "Pedersen"},
	{"Erik", "Andersen"}, {"Freja", "Christensen"}, {"Gustav", "Larsen"}, {"Hanne", "Sørensen"},
	{"Ib", "Rasmussen"}, {"Jonna", "Jørgensen"}, {"Kasper", "Petersen"}, {"Lærke", "Madsen"},
	{"Mads", "Kristensen"}, {"Nanna", "Olsen"}, {"Ole", "Thomsen"}, {"Pia", "Poulsen"},
	{"Rasmus", "Johansen"}, {"Signe", "Møller"}, {"Thor", "Mortensen"}, {"Ulla", "Knudsen"},
}

func email(i int) string {
	return fmt.Sprintf("%s.%s@example.dk", names[i][0], names[i][1])
}

// Source implements the registry and booking platform ports with data that
// is identical on every call.
type Source struct{}

func NewSource() *Source { return &Source{} }

func registryID(i int) string { return fmt.Sprintf("demo-%d", i+1) }
func accountID(i int) string  { return fmt.Sprintf("b-mock-%d", i) }

// hasAccount leaves every third member without a booking account.
func hasAccount(i int) bool { return i%3 != 2 }

func (s *Source) FetchMembers(_ context.Context) ([]member.RegistryMember, error) {
	out := make([]member.RegistryMember, 0, size)
	for i := 0; i < size; i++ {
		birth := time.Date(1990+i%10, time.Month(i%9+1), 15, 0, 0, 0, 0, time.UTC)
		gender := member.GenderMale
		if i%2 == 1 {
			gender = member.GenderFemale
		}
		out = append(out, member.RegistryMember{
			RegistryID: registryID(i),
			Name:       names[i][0] + " " + names[i][1],
			Email:      email(i),
			Address:    fmt.Sprintf("%d Mock Street", i+1),
			PostalCode: fmt.Sprintf("100%d", i),
			City:       fmt.Sprintf("Mocktown %d", i),
			Phone:      fmt.Sprintf("1234567%d", i),
			BirthDate:  &birth,
			MemberType: "Senior",
			SportTag:   sportTags[i%len(sportTags)],
			Gender:     gender,
		})
	}
	return out, nil
}

// FetchAccounts returns accounts for most members plus two guests that exist
// only on the booking platform. Every fourth account uses a private email and
// an ASCII spelling of the name, so only the name rule can link it.
func (s *Source) FetchAccounts(_ context.Context) ([]member.BookingAccount, error) {
	out := make([]member.BookingAccount, 0, size)
	for i := 0; i < size; i++ {
		if !hasAccount(i) {
			continue
		}
		created := time.Date(2024, time.October, i+1, 0, 0, 0, 0, time.UTC)
		first, last, mail := names[i][0], names[i][1], email(i)
		if i%4 == 3 {
			last = strings.NewReplacer("ø", "o", "æ", "ae").Replace(last)
			mail = fmt.Sprintf("player%d@mail.dk", i)
		}
		out = append(out, member.BookingAccount{
			AccountID: accountID(i),
			FirstName: first,
			LastName:  last,
			Email:     mail,
			City:      fmt.Sprintf("Mocktown %d", i),
			CreatedAt: &created,
		})
	}
	for g := 1; g <= 2; g++ {
		created := time.Date(2025, time.January, g, 0, 0, 0, 0, time.UTC)
		out = append(out, member.BookingAccount{
			AccountID: fmt.Sprintf("b-guest-%d", g),
			FirstName: "Guest",
			LastName:  fmt.Sprintf("Player %c", 'A'+g-1),
			Email:     fmt.Sprintf("guest%d@example.com", g),
			CreatedAt: &created,
		})
	}
	return out, nil
}

func (s *Source) FetchGroups(_ context.Context) ([]group.Catalog, error) {
	return []group.Catalog{
		{GroupID: "g-seniors", Title: "Seniorer"},
		{GroupID: "g-juniors", Title: "Juniorer"},
		{GroupID: "g-team", Title: "Holdspillere"},
	}, nil
}

func (s *Source) FetchRelations(_ context.Context, groupIDs []string) ([]group.Relation, error) {
	all := map[string][]string{}
	for i := 0; i < size; i++ {
		gid := "g-seniors"
		if i >= size/2 {
			gid = "g-juniors"
		}
		all[gid] = append(all[gid], registryID(i))
		if i%5 == 0 {
			all["g-team"] = append(all["g-team"], registryID(i))
		}
	}

	out := make([]group.Relation, 0, len(groupIDs))
	for _, id := range groupIDs {
		if refs, ok := all[id]; ok {
			out = append(out, group.Relation{GroupID: id, MemberRefs: refs})
		}
	}
	return out, nil
}

// FetchBookings spreads twenty one-hour bookings over the window, alternating
// Tennis and Padel, with one to four players each.
func (s *Source) FetchBookings(_ context.Context, from time.Time, days int) ([]booking.Record, error) {
	if days < 1 {
		days = 1
	}
	day0 := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())

	out := make([]booking.Record, 0, size)
	for i := 0; i < size; i++ {
		start := day0.AddDate(0, 0, i%days).Add(time.Duration(8+i%5) * time.Hour)
		sport := "Tennis"
		if i%2 == 1 {
			sport = "Padel"
		}
		players := i%4 + 1
		attendees := make([]booking.Attendee, 0, players)
		for j := 0; j < players; j++ {
			attendees = append(attendees, booking.Attendee{
				AttendeeID: fmt.Sprintf("booking-%d-%d", i, j),
				AccountRef: accountID((i + j) % size),
			})
		}
		out = append(out, booking.Record{
			ID:               fmt.Sprintf("mock-booking-%d", i),
			Start:            start,
			End:              start.Add(time.Hour),
			ResourceCategory: sport,
			Attendees:        attendees,
		})
	}
	return out, nil
}
