package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"club-roster/internal/infra"
	"club-roster/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

// RedisClient is the subset of redis.Cmdable the store needs.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// RedisStore writes each entry as a JSON envelope under prefix+key. The TTL
// is the retention period, not the freshness window, so stale entries stay
// available for fallback.
type RedisStore struct {
	client RedisClient
	prefix string
	ttl    time.Duration
	logger *slog.Logger
}

func NewRedisStore(client RedisClient, prefix string, ttl time.Duration, logger *slog.Logger) *RedisStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisStore{client: client, prefix: prefix, ttl: ttl, logger: logger}
}

type redisEnvelope struct {
	Payload   json.RawMessage `json:"payload"`
	FetchedAt time.Time       `json:"fetchedAt"`
}

func (s *RedisStore) Get(ctx context.Context, key string) (Entry, error) {
	raw, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		if errs.Is(err, redis.Nil) {
			return Entry{}, errs.ErrCacheMiss
		}
		return Entry{}, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to read cache entry from redis", err)
	}

	var env redisEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return Entry{}, errs.Mark(errs.Wrapf(err, "decode redis entry %q", key), errs.ErrCacheCorrupt)
	}
	return Entry{Key: key, Payload: env.Payload, FetchedAt: env.FetchedAt}, nil
}

func (s *RedisStore) Set(ctx context.Context, entry Entry) error {
	raw, err := json.Marshal(redisEnvelope{Payload: entry.Payload, FetchedAt: entry.FetchedAt})
	if err != nil {
		return infra.WrapRepoErr(s.logger, infra.KindDecodeFailure, "failed to encode redis entry", err)
	}
	if err := s.client.Set(ctx, s.prefix+entry.Key, raw, s.ttl).Err(); err != nil {
		return infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to write cache entry to redis", err)
	}
	return nil
}
