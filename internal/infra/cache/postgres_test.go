//go:build unit

package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"club-roster/internal/infra"
	"club-roster/internal/pkg/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDBTX struct {
	mock.Mock
}

func (m *MockDBTX) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	callArgs := m.Called(append([]any{ctx, sql}, args...)...)
	return callArgs.Get(0).(pgconn.CommandTag), callArgs.Error(1)
}

func (m *MockDBTX) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	callArgs := m.Called(append([]any{ctx, sql}, args...)...)
	return callArgs.Get(0).(pgx.Row)
}

type fakeRow struct {
	payload   []byte
	fetchedAt pgtype.Timestamptz
	err       error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*[]byte) = r.payload
	*dest[1].(*pgtype.Timestamptz) = r.fetchedAt
	return nil
}

func TestPostgresStore_Get(t *testing.T) {
	ctx := context.Background()
	fetchedAt := time.Date(2025, time.June, 2, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		row      fakeRow
		wantErr  error
		wantKind infra.RepositoryErrorKind
	}{
		{
			name: "success",
			row:  fakeRow{payload: []byte(`[1,2]`), fetchedAt: pgtype.Timestamptz{Time: fetchedAt, Valid: true}},
		},
		{
			name:    "no rows is a miss",
			row:     fakeRow{err: pgx.ErrNoRows},
			wantErr: errs.ErrCacheMiss,
		},
		{
			name:    "null fetched_at is corrupt",
			row:     fakeRow{payload: []byte(`[]`)},
			wantErr: errs.ErrCacheCorrupt,
		},
		{
			name:     "database error",
			row:      fakeRow{err: errors.New("connection refused")},
			wantKind: infra.KindDBFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := new(MockDBTX)
			db.On("QueryRow", ctx, getEntrySQL, "members:v1:first").Return(tt.row)
			store := NewPostgresStore(db, quietLogger())

			got, err := store.Get(ctx, "members:v1:first")

			switch {
			case tt.wantErr != nil:
				assert.True(t, errs.Is(err, tt.wantErr), "got %v", err)
			case tt.wantKind != "":
				assert.True(t, infra.IsKind(err, tt.wantKind))
			default:
				require.NoError(t, err)
				assert.Equal(t, "members:v1:first", got.Key)
				assert.JSONEq(t, `[1,2]`, string(got.Payload))
				assert.Equal(t, fetchedAt, got.FetchedAt)
			}
			db.AssertExpectations(t)
		})
	}
}

func TestPostgresStore_Set(t *testing.T) {
	ctx := context.Background()
	fetchedAt := time.Date(2025, time.June, 2, 12, 0, 0, 0, time.UTC)
	entry := Entry{Key: "k", Payload: []byte(`{"a":1}`), FetchedAt: fetchedAt}
	ts := pgtype.Timestamptz{Time: fetchedAt, Valid: true}

	t.Run("success", func(t *testing.T) {
		db := new(MockDBTX)
		db.On("Exec", ctx, upsertEntrySQL, "k", []byte(`{"a":1}`), ts).
			Return(pgconn.NewCommandTag("INSERT 0 1"), nil)

		require.NoError(t, NewPostgresStore(db, quietLogger()).Set(ctx, entry))
		db.AssertExpectations(t)
	})

	t.Run("database error", func(t *testing.T) {
		db := new(MockDBTX)
		db.On("Exec", ctx, upsertEntrySQL, "k", []byte(`{"a":1}`), ts).
			Return(pgconn.CommandTag{}, errors.New("read-only transaction"))

		err := NewPostgresStore(db, quietLogger()).Set(ctx, entry)
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})
}

func TestPostgresStore_Purge(t *testing.T) {
	ctx := context.Background()
	cutoff := time.Date(2025, time.May, 26, 0, 0, 0, 0, time.UTC)
	db := new(MockDBTX)
	db.On("Exec", ctx, purgeEntriesSQL, pgtype.Timestamptz{Time: cutoff, Valid: true}).
		Return(pgconn.NewCommandTag("DELETE 3"), nil)

	n, err := NewPostgresStore(db, quietLogger()).Purge(ctx, cutoff)

	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}
