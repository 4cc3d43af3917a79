package components

import (
	"log/slog"

	"club-roster/internal/domain/booking"
	"club-roster/internal/domain/member"
	"club-roster/internal/infra/cache"
	"club-roster/internal/infra/demo"
	"club-roster/internal/infra/metrics"
	"club-roster/internal/infra/upstream"
	"club-roster/internal/pkg/clock"
	"club-roster/internal/pkg/config"
	"club-roster/internal/pkg/errs"
	"club-roster/internal/usecase"
	"club-roster/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseServicesModule,
	usecaseQueriesModule,
	usecaseValidatorsModule,
)

var usecaseBaseOption = fx.Provide(
	NewReconciler,
)

var usecaseServicesModule = fx.Module("usecase/services",
	fx.Provide(
		NewRosterService,
		NewBookingService,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		func(roster usecase.RosterService, cfg config.Config) queries.MemberQueries {
			return queries.NewMemberQueries(roster, cfg.Stats.Location())
		},
		NewBookingQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

func NewReconciler(cfg config.Config) (*member.Reconciler, error) {
	strategy, err := member.ParseStrategy(cfg.Matching.Strategy)
	if err != nil {
		return nil, errs.Wrap(err, "invalid MATCH_STRATEGY")
	}
	return member.NewReconciler(strategy, member.Thresholds{
		Email:     cfg.Matching.EmailThreshold,
		FirstName: cfg.Matching.FirstNameThreshold,
		FullName:  cfg.Matching.FullNameThreshold,
	}), nil
}

type ServiceParams struct {
	fx.In

	Config     config.Config
	Registry   *upstream.RegistryClient
	Platform   *upstream.BookingClient
	Demo       *demo.Source
	Cache      *cache.Cache
	Reconciler *member.Reconciler
	Clock      clock.Clock
	Logger     *slog.Logger
	Metrics    *metrics.Metrics
}

func NewRosterService(p ServiceParams) usecase.RosterService {
	return usecase.NewRosterService(usecase.RosterDeps{
		Registry:     p.Registry,
		Platform:     p.Platform,
		DemoMembers:  p.Demo,
		DemoPlatform: p.Demo,
		Cache:        p.Cache,
		Reconciler:   p.Reconciler,
		Precedence:   p.Config.Groups.Precedence,
		Clock:        p.Clock,
		Logger:       p.Logger,
		Metrics:      p.Metrics,
	})
}

func NewBookingService(p ServiceParams, roster usecase.RosterService) usecase.BookingService {
	return usecase.NewBookingService(usecase.BookingDeps{
		Platform:      p.Platform,
		DemoPlatform:  p.Demo,
		Roster:        roster,
		Cache:         p.Cache,
		Clock:         p.Clock,
		Location:      p.Config.Stats.Location(),
		MaxWindowDays: p.Config.Stats.MaxWindowDays,
		Logger:        p.Logger,
		Metrics:       p.Metrics,
	})
}

func NewBookingQueries(bookings usecase.BookingService, cfg config.Config) (queries.BookingQueries, error) {
	basis, err := booking.ParseBasis(cfg.Stats.Basis)
	if err != nil {
		return nil, errs.Wrap(err, "invalid STATS_BASIS")
	}
	return queries.NewBookingQueries(bookings, queries.StatsOptions{
		Keywords: cfg.Stats.Keywords,
		Utilization: booking.UtilizationConfig{
			CapacityMinutes: cfg.Stats.CapacityMinutes,
			Basis:           basis,
			SlotMinutes:     cfg.Stats.SlotMinutes,
			Location:        cfg.Stats.Location(),
		},
	}), nil
}

