//go:build unit || e2e

package dbtest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// SeedCacheEntry stores value as the JSON payload of key.
func SeedCacheEntry(t *testing.T, db DBLike, key string, value any, fetchedAt time.Time) {
	t.Helper()

	payload, err := json.Marshal(value)
	require.NoError(t, err)

	_, err = db.Exec(context.Background(),
		`INSERT INTO cache_entries (key, payload, fetched_at) VALUES ($1, $2, $3)
		 ON CONFLICT (key) DO UPDATE SET payload = EXCLUDED.payload, fetched_at = EXCLUDED.fetched_at`,
		key, payload, fetchedAt)
	require.NoError(t, err)
}

// SeedRawCacheEntry stores payload verbatim, for entries the service must
// treat as corrupt.
func SeedRawCacheEntry(t *testing.T, db DBLike, key, payload string, fetchedAt time.Time) {
	t.Helper()

	_, err := db.Exec(context.Background(),
		`INSERT INTO cache_entries (key, payload, fetched_at) VALUES ($1, $2::jsonb, $3)
		 ON CONFLICT (key) DO UPDATE SET payload = EXCLUDED.payload, fetched_at = EXCLUDED.fetched_at`,
		key, payload, fetchedAt)
	require.NoError(t, err)
}

// CacheEntryFetchedAt returns the stored fetch time of key, failing the test
// when the key is absent.
func CacheEntryFetchedAt(t *testing.T, db DBLike, key string) time.Time {
	t.Helper()

	var fetchedAt time.Time
	err := db.QueryRow(context.Background(),
		`SELECT fetched_at FROM cache_entries WHERE key = $1`, key).Scan(&fetchedAt)
	require.NoError(t, err, "cache entry %q not found", key)
	return fetchedAt
}

func CountCacheEntries(t *testing.T, db DBLike) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(), `SELECT count(*) FROM cache_entries`).Scan(&n)
	require.NoError(t, err)
	return n
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + ";")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}
