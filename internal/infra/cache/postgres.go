package cache

import (
	"context"
	"log/slog"
	"time"

	"club-roster/internal/infra"
	"club-roster/internal/pkg/errs"
	"club-roster/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const (
	getEntrySQL = `SELECT payload, fetched_at FROM cache_entries WHERE key = $1`

	// An older fetch finishing late must not replace a newer one.
	upsertEntrySQL = `INSERT INTO cache_entries (key, payload, fetched_at)
VALUES ($1, $2, $3)
ON CONFLICT (key) DO UPDATE
SET payload = EXCLUDED.payload, fetched_at = EXCLUDED.fetched_at
WHERE cache_entries.fetched_at <= EXCLUDED.fetched_at`

	purgeEntriesSQL = `DELETE FROM cache_entries WHERE fetched_at < $1`
)

type PostgresStore struct {
	db     DBTX
	logger *slog.Logger
}

func NewPostgresStore(db DBTX, logger *slog.Logger) *PostgresStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresStore{db: db, logger: logger}
}

func (s *PostgresStore) Get(ctx context.Context, key string) (Entry, error) {
	var payload []byte
	var fetchedAt pgtype.Timestamptz

	err := s.db.QueryRow(ctx, getEntrySQL, key).Scan(&payload, &fetchedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return Entry{}, errs.ErrCacheMiss
		}
		return Entry{}, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to read cache entry", err)
	}
	if !fetchedAt.Valid {
		return Entry{}, errs.Mark(errs.Newf("cache entry %q has no fetch time", key), errs.ErrCacheCorrupt)
	}

	return Entry{Key: key, Payload: payload, FetchedAt: pgconv.TimeFromPgtype(fetchedAt)}, nil
}

func (s *PostgresStore) Set(ctx context.Context, entry Entry) error {
	_, err := s.db.Exec(ctx, upsertEntrySQL, entry.Key, []byte(entry.Payload), pgconv.TimeToPgtype(entry.FetchedAt))
	if err != nil {
		return infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to write cache entry", err)
	}
	return nil
}

// Purge deletes entries fetched before cutoff and reports how many went.
func (s *PostgresStore) Purge(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := s.db.Exec(ctx, purgeEntriesSQL, pgconv.TimeToPgtype(cutoff))
	if err != nil {
		return 0, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to purge cache entries", err)
	}
	return tag.RowsAffected(), nil
}
