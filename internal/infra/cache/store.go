// Package cache keeps upstream fetch results for a freshness window and
// remembers the last good result for fallback.
package cache

import (
	"context"
	"encoding/json"
	"time"
)

type Entry struct {
	Key       string          `json:"key"`
	Payload   json.RawMessage `json:"payload"`
	FetchedAt time.Time       `json:"fetchedAt"`
}

// Store persists entries. Get returns errs.ErrCacheMiss when key is absent
// and errs.ErrCacheCorrupt when the stored bytes cannot be read back.
type Store interface {
	Get(ctx context.Context, key string) (Entry, error)
	Set(ctx context.Context, entry Entry) error
}

// Purger is implemented by stores that hold entries until told otherwise.
// Redis expires entries itself and does not implement it.
type Purger interface {
	Purge(ctx context.Context, cutoff time.Time) (int64, error)
}

// Backend names accepted by CACHE_BACKEND.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)
