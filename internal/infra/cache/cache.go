package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"club-roster/internal/infra/metrics"
	"club-roster/internal/pkg/clock"
	"club-roster/internal/pkg/errs"

	"golang.org/x/sync/singleflight"
)

const DefaultFreshness = 15 * time.Minute

type Cache struct {
	store     Store
	clock     clock.Clock
	freshness time.Duration
	logger    *slog.Logger
	metrics   *metrics.Metrics
	flight    singleflight.Group
}

type Option func(*Cache)

func WithClock(c clock.Clock) Option {
	return func(cc *Cache) { cc.clock = c }
}

func WithLogger(l *slog.Logger) Option {
	return func(cc *Cache) { cc.logger = l }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(cc *Cache) { cc.metrics = m }
}

func New(store Store, freshness time.Duration, opts ...Option) *Cache {
	if freshness <= 0 {
		freshness = DefaultFreshness
	}
	c := &Cache{
		store:     store,
		clock:     clock.NewRealClock(),
		freshness: freshness,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cache) Freshness() time.Duration { return c.freshness }

// Fresh reports whether an entry fetched at fetchedAt is younger than
// freshness. Timestamps in the future count as fresh.
func (c *Cache) Fresh(fetchedAt time.Time, freshness time.Duration) bool {
	if freshness <= 0 {
		freshness = c.freshness
	}
	return clock.Since(c.clock, fetchedAt) < freshness
}

// Result is a decoded payload together with the time it was fetched.
// Hit is false when the value came from the fetch function.
type Result[T any] struct {
	Value     T
	FetchedAt time.Time
	Hit       bool
}

// GetOrFetch returns the cached value for key if it is fresh. Otherwise it
// calls fetch, stores the result and returns it. Unreadable entries and store
// read errors count as misses; failed writes are logged and the fetched value
// is still returned. A zero freshness uses the cache default. Concurrent
// misses on the same key share one fetch.
func GetOrFetch[T any](ctx context.Context, c *Cache, key string, freshness time.Duration, fetch func(context.Context) (T, error)) (Result[T], error) {
	if res, ok := lookup[T](ctx, c, key); ok {
		if c.Fresh(res.FetchedAt, freshness) {
			c.metrics.RecordCacheLookup(namespace(key), metrics.CacheHit)
			res.Hit = true
			return res, nil
		}
		c.metrics.RecordCacheLookup(namespace(key), metrics.CacheStale)
	}
	return fill(ctx, c, key, fetch)
}

// Refresh bypasses freshness: it always fetches and stores.
func Refresh[T any](ctx context.Context, c *Cache, key string, fetch func(context.Context) (T, error)) (Result[T], error) {
	return fill(ctx, c, key, fetch)
}

// LastKnown returns whatever readable entry the store holds for key,
// however old. It returns errs.ErrCacheMiss when there is none.
func LastKnown[T any](ctx context.Context, c *Cache, key string) (Result[T], error) {
	res, ok := lookup[T](ctx, c, key)
	if !ok {
		return Result[T]{}, errs.ErrCacheMiss
	}
	res.Hit = true
	return res, nil
}

func lookup[T any](ctx context.Context, c *Cache, key string) (Result[T], bool) {
	ns := namespace(key)
	entry, err := c.store.Get(ctx, key)
	switch {
	case err == nil:
	case errs.Is(err, errs.ErrCacheMiss):
		c.metrics.RecordCacheLookup(ns, metrics.CacheMiss)
		return Result[T]{}, false
	case errs.Is(err, errs.ErrCacheCorrupt):
		c.logger.Warn("Discarding unreadable cache entry", "key", key, "error", err.Error())
		c.metrics.RecordCacheLookup(ns, metrics.CacheCorrupt)
		return Result[T]{}, false
	default:
		c.logger.Warn("Cache read failed, treating as miss", "key", key, "error", err.Error())
		c.metrics.RecordCacheLookup(ns, metrics.CacheError)
		return Result[T]{}, false
	}

	var v T
	if len(entry.Payload) == 0 || entry.FetchedAt.IsZero() {
		c.logger.Warn("Discarding incomplete cache entry", "key", key)
		c.metrics.RecordCacheLookup(ns, metrics.CacheCorrupt)
		return Result[T]{}, false
	}
	if err := json.Unmarshal(entry.Payload, &v); err != nil {
		c.logger.Warn("Discarding undecodable cache entry", "key", key, "error", err.Error())
		c.metrics.RecordCacheLookup(ns, metrics.CacheCorrupt)
		return Result[T]{}, false
	}
	return Result[T]{Value: v, FetchedAt: entry.FetchedAt}, true
}

func fill[T any](ctx context.Context, c *Cache, key string, fetch func(context.Context) (T, error)) (Result[T], error) {
	out, err, _ := c.flight.Do(key, func() (any, error) {
		v, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		res := Result[T]{Value: v, FetchedAt: c.clock.Now()}
		put(ctx, c, key, res)
		return res, nil
	})
	if err != nil {
		return Result[T]{}, err
	}
	res, ok := out.(Result[T])
	if !ok {
		return Result[T]{}, errs.Newf("cache key %q is shared by incompatible types", key)
	}
	return res, nil
}

func put[T any](ctx context.Context, c *Cache, key string, res Result[T]) {
	payload, err := json.Marshal(res.Value)
	if err != nil {
		c.logger.Error("Failed to encode cache payload", "key", key, "error", err.Error())
		c.metrics.RecordCacheWriteError(namespace(key))
		return
	}

	if err := c.store.Set(ctx, Entry{Key: key, Payload: payload, FetchedAt: res.FetchedAt}); err != nil {
		c.logger.Error("Failed to write cache entry", "key", key, "error", err.Error())
		c.metrics.RecordCacheWriteError(namespace(key))
	}
}

// namespace is the key up to its first colon, used as a metric label.
func namespace(key string) string {
	if i := strings.IndexByte(key, ':'); i > 0 {
		return key[:i]
	}
	return key
}
