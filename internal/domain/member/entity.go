package member

import (
	"time"

	"club-roster/internal/pkg/ptr"
	"club-roster/internal/pkg/textnorm"
)

// RegistryMember is a dues-paying member as exported by the club registry.
type RegistryMember struct {
	RegistryID string     `json:"registryId"`
	Name       string     `json:"name"`
	Email      string     `json:"email,omitempty"`
	Address    string     `json:"address,omitempty"`
	PostalCode string     `json:"postalCode,omitempty"`
	City       string     `json:"city,omitempty"`
	Phone      string     `json:"phone,omitempty"`
	BirthDate  *time.Time `json:"birthDate,omitempty"`
	MemberType string     `json:"memberType,omitempty"`
	SportTag   string     `json:"sportTag,omitempty"`
	Gender     Gender     `json:"gender"`
}

// BookingAccount is an account on the court booking platform. AccountID is
// what booking records reference.
type BookingAccount struct {
	AccountID string     `json:"accountId"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Email     string     `json:"email,omitempty"`
	City      string     `json:"city,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

func (a BookingAccount) FullName() string {
	return textnorm.FullName(a.FirstName, a.LastName)
}

// Reconciled is a registry member enriched with its booking platform link,
// or a synthetic record for a booking account nobody in the registry claimed.
type Reconciled struct {
	RegistryID string     `json:"registryId,omitempty"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Address    string     `json:"address,omitempty"`
	PostalCode string     `json:"postalCode,omitempty"`
	City       string     `json:"city"`
	Phone      string     `json:"phone,omitempty"`
	BirthDate  *time.Time `json:"birthDate,omitempty"`
	MemberType string     `json:"memberType"`
	SportTag   string     `json:"sportTag,omitempty"`
	Gender     Gender     `json:"gender"`

	HasBookingAccount bool       `json:"hasBookingAccount"`
	OnlyBooking       bool       `json:"onlyBooking"`
	BookingID         *string    `json:"bookingId"`
	AccountCreatedAt  *time.Time `json:"accountCreatedAt"`
	GroupLabel        *string    `json:"groupLabel"`
	MatchRule         MatchRule  `json:"matchRule,omitempty"`
}

// BookingStatus buckets a record the way the member list filters it.
func (r Reconciled) BookingStatus() BookingStatus {
	switch {
	case r.OnlyBooking:
		return BookingStatusOnly
	case r.HasBookingAccount:
		return BookingStatusWith
	default:
		return BookingStatusWithout
	}
}

func fromRegistry(m RegistryMember) Reconciled {
	return Reconciled{
		RegistryID: m.RegistryID,
		Name:       m.Name,
		Email:      m.Email,
		Address:    m.Address,
		PostalCode: m.PostalCode,
		City:       m.City,
		Phone:      m.Phone,
		BirthDate:  m.BirthDate,
		MemberType: m.MemberType,
		SportTag:   m.SportTag,
		Gender:     m.Gender,
	}
}

func fromOrphanAccount(a BookingAccount) Reconciled {
	return Reconciled{
		Name:              a.FullName(),
		Email:             a.Email,
		City:              a.City,
		Gender:            GenderUnknown,
		HasBookingAccount: true,
		OnlyBooking:       true,
		BookingID:         ptr.Of(a.AccountID),
		AccountCreatedAt:  a.CreatedAt,
	}
}

func (r Reconciled) linkedTo(a BookingAccount, rule MatchRule) Reconciled {
	r.HasBookingAccount = true
	r.OnlyBooking = false
	r.BookingID = ptr.Of(a.AccountID)
	r.AccountCreatedAt = a.CreatedAt
	r.MatchRule = rule
	return r
}
