package usecase

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"club-roster/internal/domain/group"
	"club-roster/internal/domain/member"
	"club-roster/internal/infra/cache"
	"club-roster/internal/infra/metrics"
	"club-roster/internal/pkg/clock"
	"club-roster/internal/pkg/errs"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// RosterSnapshot is the reconciled member view produced by one fetch cycle.
type RosterSnapshot struct {
	CycleID string              `json:"cycleId"`
	Members []member.Reconciled `json:"members"`
	Groups  []string            `json:"groups"`
	Summary member.Summary      `json:"summary"`
}

type Roster struct {
	RosterSnapshot
	Source    Source
	FetchedAt time.Time
}

type RosterService interface {
	// Current serves the cached roster while it is fresh and rebuilds it
	// otherwise.
	Current(ctx context.Context) (*Roster, error)
	// Refresh rebuilds the roster regardless of freshness.
	Refresh(ctx context.Context) (*Roster, error)
}

// RosterDeps wires the roster pipeline. The demo pair is optional; without
// it a failed cycle with nothing cached returns errs.ErrNoSnapshot.
type RosterDeps struct {
	Registry     RegistrySource
	Platform     BookingPlatform
	DemoMembers  RegistrySource
	DemoPlatform BookingPlatform
	Cache        *cache.Cache
	Reconciler   *member.Reconciler
	Precedence   []string
	Clock        clock.Clock
	Logger       *slog.Logger
	Metrics      *metrics.Metrics
}

type rosterServiceImpl struct {
	deps RosterDeps
	key  string

	seq atomic.Uint64

	mu      sync.Mutex
	applied uint64
	current *Roster
}

func NewRosterService(deps RosterDeps) RosterService {
	if deps.Clock == nil {
		deps.Clock = clock.NewRealClock()
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Reconciler == nil {
		deps.Reconciler = member.NewReconciler(member.StrategyFirstMatch, member.DefaultThresholds())
	}
	return &rosterServiceImpl{
		deps: deps,
		key:  MembersCacheKey(deps.Reconciler.Strategy()),
	}
}

// MembersCacheKey includes the strategy so switching it never serves a
// roster built the other way.
func MembersCacheKey(strategy member.Strategy) string {
	return "members:v1:" + strategy.String()
}

func (s *rosterServiceImpl) Current(ctx context.Context) (*Roster, error) {
	return s.run(ctx, false)
}

func (s *rosterServiceImpl) Refresh(ctx context.Context) (*Roster, error) {
	return s.run(ctx, true)
}

func (s *rosterServiceImpl) run(ctx context.Context, force bool) (*Roster, error) {
	seq := s.seq.Add(1)
	fetch := func(ctx context.Context) (RosterSnapshot, error) {
		return s.build(ctx, s.deps.Registry, s.deps.Platform)
	}

	var res cache.Result[RosterSnapshot]
	var err error
	if force {
		res, err = cache.Refresh(ctx, s.deps.Cache, s.key, fetch)
	} else {
		res, err = cache.GetOrFetch(ctx, s.deps.Cache, s.key, 0, fetch)
	}
	if err != nil {
		s.deps.Logger.Error("Roster fetch cycle failed", "error", err.Error(), "cycle", seq)
		return s.fallback(ctx, err)
	}

	source := SourceLive
	if res.Hit {
		source = SourceCache
	}
	return s.apply(seq, &Roster{RosterSnapshot: res.Value, Source: source, FetchedAt: res.FetchedAt}), nil
}

// apply installs r as the current roster unless a later cycle got there
// first, in which case the newer roster is returned instead.
func (s *rosterServiceImpl) apply(seq uint64, r *Roster) *Roster {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq <= s.applied && s.current != nil {
		s.deps.Metrics.RecordSnapshotDiscarded()
		s.deps.Logger.Debug("Discarding roster from an older cycle", "cycle", seq, "applied", s.applied)
		return s.current
	}
	s.applied = seq
	s.current = r
	return r
}

func (s *rosterServiceImpl) fallback(ctx context.Context, cause error) (*Roster, error) {
	if res, err := cache.LastKnown[RosterSnapshot](ctx, s.deps.Cache, s.key); err == nil {
		s.deps.Metrics.RecordFallback("members", string(SourceStale))
		s.deps.Logger.Warn("Serving last known roster", "fetched_at", res.FetchedAt)
		return &Roster{RosterSnapshot: res.Value, Source: SourceStale, FetchedAt: res.FetchedAt}, nil
	}

	s.mu.Lock()
	current := s.current
	s.mu.Unlock()
	if current != nil {
		s.deps.Metrics.RecordFallback("members", string(SourceStale))
		stale := *current
		stale.Source = SourceStale
		return &stale, nil
	}

	if s.deps.DemoMembers == nil || s.deps.DemoPlatform == nil {
		return nil, errs.Mark(errs.Wrap(cause, "no roster available"), errs.ErrNoSnapshot)
	}
	snap, err := s.build(ctx, s.deps.DemoMembers, s.deps.DemoPlatform)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(cause, "demo roster failed: "+err.Error()), errs.ErrNoSnapshot)
	}
	s.deps.Metrics.RecordFallback("members", string(SourceDemo))
	s.deps.Logger.Warn("Serving demo roster", "cause", cause.Error())
	return &Roster{RosterSnapshot: snap, Source: SourceDemo, FetchedAt: s.deps.Clock.Now()}, nil
}

type rawRoster struct {
	registry  []member.RegistryMember
	accounts  []member.BookingAccount
	catalog   []group.Catalog
	relations []group.Relation
}

func fetchRaw(ctx context.Context, registry RegistrySource, platform BookingPlatform) (rawRoster, error) {
	var raw rawRoster
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		members, err := registry.FetchMembers(ctx)
		if err != nil {
			return errs.Wrap(err, "fetch registry members")
		}
		raw.registry = members
		return nil
	})
	g.Go(func() error {
		accounts, err := platform.FetchAccounts(ctx)
		if err != nil {
			return errs.Wrap(err, "fetch booking accounts")
		}
		raw.accounts = accounts
		return nil
	})
	g.Go(func() error {
		catalog, err := platform.FetchGroups(ctx)
		if err != nil {
			return errs.Wrap(err, "fetch groups")
		}
		ids := make([]string, 0, len(catalog))
		for _, c := range catalog {
			ids = append(ids, c.GroupID)
		}
		relations, err := platform.FetchRelations(ctx, ids)
		if err != nil {
			return errs.Wrap(err, "fetch group relations")
		}
		raw.catalog, raw.relations = catalog, relations
		return nil
	})

	if err := g.Wait(); err != nil {
		return rawRoster{}, err
	}
	return raw, nil
}

func (s *rosterServiceImpl) build(ctx context.Context, registry RegistrySource, platform BookingPlatform) (RosterSnapshot, error) {
	cycleID := uuid.NewString()
	logger := s.deps.Logger.With("cycle_id", cycleID)

	raw, err := fetchRaw(ctx, registry, platform)
	if err != nil {
		return RosterSnapshot{}, err
	}

	start := time.Now()
	members := s.deps.Reconciler.Reconcile(raw.registry, raw.accounts)
	if err := member.VerifyPartition(members, raw.accounts); err != nil {
		s.deps.Metrics.RecordInvariantViolation()
		logger.Error("Reconciliation broke the account partition", "error", err.Error())
		return RosterSnapshot{}, err
	}

	var opts []group.Option
	if len(s.deps.Precedence) > 0 {
		opts = append(opts, group.WithPrecedence(s.deps.Precedence...))
	}
	members = group.Resolve(raw.catalog, raw.relations, raw.registry, opts...).Apply(members)

	sum := member.Summarize(members)
	s.deps.Metrics.RecordReconcile(time.Since(start).Seconds(), sum.Registry, sum.Linked, sum.Strong, sum.Fallback, sum.BookingOnly)
	logger.Info("Roster rebuilt",
		"strategy", s.deps.Reconciler.Strategy().String(),
		"registry", sum.Registry,
		"linked", sum.Linked,
		"booking_only", sum.BookingOnly,
		"duration", time.Since(start),
	)

	return RosterSnapshot{
		CycleID: cycleID,
		Members: members,
		Groups:  group.Titles(raw.catalog),
		Summary: sum,
	}, nil
}
