//go:build unit || e2e

package builder

import (
	"fmt"
	"time"

	"club-roster/internal/domain/member"
)

type RegistryMemberBuilder struct {
	m member.RegistryMember
}

func NewRegistryMemberBuilder() *RegistryMemberBuilder {
	birth := time.Date(1990, time.March, 15, 0, 0, 0, 0, time.UTC)
	return &RegistryMemberBuilder{m: member.RegistryMember{
		RegistryID: "r-1",
		Name:       "Anna Hansen",
		Email:      "anna@x.dk",
		Address:    "Strandvejen 1",
		PostalCode: "2900",
		City:       "Hellerup",
		Phone:      "12345678",
		BirthDate:  &birth,
		MemberType: "Senior",
		SportTag:   "Tennis",
		Gender:     member.GenderFemale,
	}}
}

func (b *RegistryMemberBuilder) WithID(id string) *RegistryMemberBuilder {
	b.m.RegistryID = id
	return b
}

func (b *RegistryMemberBuilder) WithName(name string) *RegistryMemberBuilder {
	b.m.Name = name
	return b
}

func (b *RegistryMemberBuilder) WithEmail(email string) *RegistryMemberBuilder {
	b.m.Email = email
	return b
}

func (b *RegistryMemberBuilder) WithCity(city string) *RegistryMemberBuilder {
	b.m.City = city
	return b
}

func (b *RegistryMemberBuilder) WithMemberType(t string) *RegistryMemberBuilder {
	b.m.MemberType = t
	return b
}

func (b *RegistryMemberBuilder) Build() member.RegistryMember {
	return b.m
}

type BookingAccountBuilder struct {
	a member.BookingAccount
}

func NewBookingAccountBuilder() *BookingAccountBuilder {
	created := time.Date(2021, time.May, 2, 10, 0, 0, 0, time.UTC)
	return &BookingAccountBuilder{a: member.BookingAccount{
		AccountID: "acc-1",
		FirstName: "Anna",
		LastName:  "Hansen",
		Email:     "anna@x.dk",
		City:      "Hellerup",
		CreatedAt: &created,
	}}
}

func (b *BookingAccountBuilder) WithID(id string) *BookingAccountBuilder {
	b.a.AccountID = id
	return b
}

func (b *BookingAccountBuilder) WithName(first, last string) *BookingAccountBuilder {
	b.a.FirstName = first
	b.a.LastName = last
	return b
}

func (b *BookingAccountBuilder) WithEmail(email string) *BookingAccountBuilder {
	b.a.Email = email
	return b
}

func (b *BookingAccountBuilder) WithCity(city string) *BookingAccountBuilder {
	b.a.City = city
	return b
}

func (b *BookingAccountBuilder) WithCreatedAt(t *time.Time) *BookingAccountBuilder {
	b.a.CreatedAt = t
	return b
}

func (b *BookingAccountBuilder) Build() member.BookingAccount {
	return b.a
}

// Roster builds n registry members and n accounts with unrelated names, so
// nothing links unless a test arranges it.
func Roster(n int) ([]member.RegistryMember, []member.BookingAccount) {
	registry := make([]member.RegistryMember, n)
	accounts := make([]member.BookingAccount, n)
	for i := 0; i < n; i++ {
		registry[i] = NewRegistryMemberBuilder().
			WithID(fmt.Sprintf("r-%d", i)).
			WithName(fmt.Sprintf("Registry Person %c%c", 'a'+i%26, 'a'+i/26)).
			WithEmail(fmt.Sprintf("reg%d@club.dk", i)).
			Build()
		accounts[i] = NewBookingAccountBuilder().
			WithID(fmt.Sprintf("acc-%d", i)).
			WithName("Player", fmt.Sprintf("Number%03d", i)).
			WithEmail(fmt.Sprintf("player%d@booking.dk", i)).
			Build()
	}
	return registry, accounts
}
