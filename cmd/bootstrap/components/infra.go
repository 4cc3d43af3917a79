package components

import (
	"context"
	"log/slog"

	"club-roster/internal/infra/cache"
	"club-roster/internal/infra/demo"
	"club-roster/internal/infra/metrics"
	"club-roster/internal/infra/upstream"
	"club-roster/internal/pkg/clock"
	"club-roster/internal/pkg/config"
	"club-roster/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

const redisKeyPrefix = "club-roster:"

var InfraModule = fx.Module("infra",
	metricsModule,
	cacheModule,
	upstreamModule,
)

var metricsModule = fx.Module("infra/metrics",
	fx.Provide(
		NewRegistry,
		func(reg *prometheus.Registry) prometheus.Registerer { return reg },
		func(reg *prometheus.Registry) prometheus.Gatherer { return reg },
		metrics.New,
	),
)

var cacheModule = fx.Module("infra/cache",
	fx.Provide(
		clock.NewRealClock,
		NewCacheStore,
		NewCache,
	),
)

var upstreamModule = fx.Module("infra/upstream",
	fx.Provide(
		func(cfg config.Config, logger *slog.Logger, m *metrics.Metrics) *upstream.RegistryClient {
			return upstream.NewRegistryClient(cfg.Registry, logger, m)
		},
		func(cfg config.Config, logger *slog.Logger, m *metrics.Metrics) *upstream.BookingClient {
			return upstream.NewBookingClient(cfg.Booking, logger, m)
		},
		demo.NewSource,
	),
)

// NewRegistry carries the Go runtime and process collectors next to the
// service's own.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

type StoreParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    config.Config
	Logger    *slog.Logger
	Clock     clock.Clock
	Pool      *pgxpool.Pool
	Redis     *redis.Client
}

// NewCacheStore picks the store named by CACHE_BACKEND. Stores that keep
// entries forever are purged of anything older than the retention period on
// start.
func NewCacheStore(p StoreParams) (cache.Store, error) {
	var store cache.Store
	switch p.Config.Cache.Backend {
	case cache.BackendMemory, "":
		store = cache.NewMemoryStore()
	case cache.BackendPostgres:
		if p.Pool == nil {
			return nil, errs.New("postgres cache backend needs a database pool")
		}
		store = cache.NewPostgresStore(p.Pool, p.Logger)
	case cache.BackendRedis:
		if p.Redis == nil {
			return nil, errs.New("redis cache backend needs a redis client")
		}
		store = cache.NewRedisStore(p.Redis, redisKeyPrefix, p.Config.Cache.Retention, p.Logger)
	default:
		return nil, errs.Newf("unknown cache backend %q", p.Config.Cache.Backend)
	}

	if purger, ok := store.(cache.Purger); ok && p.Config.Cache.Retention > 0 {
		p.Lifecycle.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				cutoff := p.Clock.Now().Add(-p.Config.Cache.Retention)
				n, err := purger.Purge(ctx, cutoff)
				if err != nil {
					// an unpurged cache still serves
					p.Logger.Warn("Failed to purge expired cache entries", "error", err.Error())
					return nil
				}
				p.Logger.Info("Purged expired cache entries", "count", n, "cutoff", cutoff)
				return nil
			},
		})
	}

	p.Logger.Info("Cache store ready", "backend", p.Config.Cache.Backend, "freshness", p.Config.Cache.Freshness)
	return store, nil
}

func NewCache(store cache.Store, cfg config.Config, clk clock.Clock, logger *slog.Logger, m *metrics.Metrics) *cache.Cache {
	return cache.New(store, cfg.Cache.Freshness,
		cache.WithClock(clk),
		cache.WithLogger(logger),
		cache.WithMetrics(m),
	)
}
