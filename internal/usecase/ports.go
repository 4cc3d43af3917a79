package usecase

import (
	"context"
	"time"

	"club-roster/internal/domain/booking"
	"club-roster/internal/domain/group"
	"club-roster/internal/domain/member"
)

// RegistrySource supplies the club registry's member list.
type RegistrySource interface {
	FetchMembers(ctx context.Context) ([]member.RegistryMember, error)
}

// BookingPlatform supplies accounts, groups and bookings from the court
// booking platform.
type BookingPlatform interface {
	FetchAccounts(ctx context.Context) ([]member.BookingAccount, error)
	FetchGroups(ctx context.Context) ([]group.Catalog, error)
	FetchRelations(ctx context.Context, groupIDs []string) ([]group.Relation, error)
	FetchBookings(ctx context.Context, from time.Time, days int) ([]booking.Record, error)
}

// Source tells the caller where a response's data came from.
type Source string

const (
	SourceLive  Source = "live"
	SourceCache Source = "cache"
	SourceStale Source = "stale"
	SourceDemo  Source = "demo"
)
