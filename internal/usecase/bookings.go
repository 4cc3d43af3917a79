package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"club-roster/internal/domain/booking"
	"club-roster/internal/infra/cache"
	"club-roster/internal/infra/metrics"
	"club-roster/internal/pkg/clock"
	"club-roster/internal/pkg/errs"
)

const DefaultMaxWindowDays = 31

// Window is a run of whole calendar days starting at From.
type Window struct {
	From    time.Time
	Days    int
	DaysAgo int
}

func (w Window) To() time.Time {
	return w.From.AddDate(0, 0, w.Days)
}

// NewWindow starts the window daysAgo days before today's midnight in loc.
func NewWindow(now time.Time, loc *time.Location, daysAgo, days, maxDays int) (Window, error) {
	if loc == nil {
		loc = time.UTC
	}
	if maxDays <= 0 {
		maxDays = DefaultMaxWindowDays
	}
	if daysAgo < 0 {
		return Window{}, errs.Wrapf(errs.ErrInvalidWindow, "daysAgo must not be negative, got %d", daysAgo)
	}
	if days < 1 || days > maxDays {
		return Window{}, errs.Wrapf(errs.ErrInvalidWindow, "days must be between 1 and %d, got %d", maxDays, days)
	}

	local := now.In(loc)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return Window{From: midnight.AddDate(0, 0, -daysAgo), Days: days, DaysAgo: daysAgo}, nil
}

func BookingsCacheKey(w Window) string {
	return fmt.Sprintf("bookings:v1:%s:%d", w.From.Format(time.DateOnly), w.Days)
}

// Bookings is a window of booking records plus the directory used to name
// the accounts that made them.
type Bookings struct {
	Window       Window
	Records      []booking.Record
	Directory    booking.Directory
	Source       Source
	RosterSource Source
	FetchedAt    time.Time
}

type BookingService interface {
	Load(ctx context.Context, daysAgo, days int) (*Bookings, error)
}

type BookingDeps struct {
	Platform      BookingPlatform
	DemoPlatform  BookingPlatform
	Roster        RosterService
	Cache         *cache.Cache
	Clock         clock.Clock
	Location      *time.Location
	MaxWindowDays int
	Logger        *slog.Logger
	Metrics       *metrics.Metrics
}

type bookingServiceImpl struct {
	deps BookingDeps
}

func NewBookingService(deps BookingDeps) BookingService {
	if deps.Clock == nil {
		deps.Clock = clock.NewRealClock()
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Location == nil {
		deps.Location = time.UTC
	}
	return &bookingServiceImpl{deps: deps}
}

func (s *bookingServiceImpl) Load(ctx context.Context, daysAgo, days int) (*Bookings, error) {
	w, err := NewWindow(s.deps.Clock.Now(), s.deps.Location, daysAgo, days, s.deps.MaxWindowDays)
	if err != nil {
		return nil, err
	}

	out, err := s.records(ctx, w)
	if err != nil {
		return nil, err
	}

	roster, err := s.deps.Roster.Current(ctx)
	if err != nil {
		s.deps.Logger.Warn("No roster for booking names, all attendees will be unknown", "error", err.Error())
		out.Directory = booking.Directory{}
		return out, nil
	}
	out.Directory = booking.NewDirectory(roster.Members)
	out.RosterSource = roster.Source
	return out, nil
}

func (s *bookingServiceImpl) records(ctx context.Context, w Window) (*Bookings, error) {
	key := BookingsCacheKey(w)
	res, err := cache.GetOrFetch(ctx, s.deps.Cache, key, 0, func(ctx context.Context) ([]booking.Record, error) {
		return s.deps.Platform.FetchBookings(ctx, w.From, w.Days)
	})
	if err == nil {
		source := SourceLive
		if res.Hit {
			source = SourceCache
		}
		return &Bookings{Window: w, Records: res.Value, Source: source, FetchedAt: res.FetchedAt}, nil
	}

	s.deps.Logger.Error("Booking fetch failed", "error", err.Error(), "from", w.From.Format(time.DateOnly), "days", w.Days)

	if stale, lkErr := cache.LastKnown[[]booking.Record](ctx, s.deps.Cache, key); lkErr == nil {
		s.deps.Metrics.RecordFallback("bookings", string(SourceStale))
		return &Bookings{Window: w, Records: stale.Value, Source: SourceStale, FetchedAt: stale.FetchedAt}, nil
	}

	if s.deps.DemoPlatform == nil {
		return nil, errs.Mark(errs.Wrap(err, "no bookings available"), errs.ErrNoSnapshot)
	}
	demo, demoErr := s.deps.DemoPlatform.FetchBookings(ctx, w.From, w.Days)
	if demoErr != nil {
		return nil, errs.Mark(errs.Wrap(err, "demo bookings failed: "+demoErr.Error()), errs.ErrNoSnapshot)
	}
	s.deps.Metrics.RecordFallback("bookings", string(SourceDemo))
	return &Bookings{Window: w, Records: demo, Source: SourceDemo, FetchedAt: s.deps.Clock.Now()}, nil
}
