//go:build unit

package booking_test

import (
	"testing"
	"time"

	"club-roster/internal/domain/booking"
	"club-roster/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUtilization(t *testing.T) {
	day := time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)

	t.Run("clamps a fully booked day to one", func(t *testing.T) {
		records := builder.HourlyDay(day, 20, "Tennis")

		got := booking.Utilization(records, booking.DefaultUtilizationConfig())

		require.Contains(t, got, "2025-06-02")
		b := got["2025-06-02"]
		assert.Equal(t, 20, b.BookingCount)
		assert.InDelta(t, 1200.0, b.OccupiedMinutes, 1e-9)
		assert.Equal(t, 1.0, b.Fraction)
	})

	t.Run("duration basis sums minutes", func(t *testing.T) {
		start := day.Add(10 * time.Hour)
		records := []booking.Record{
			builder.NewRecordBuilder().WithTimes(start, start.Add(90*time.Minute)).Build(),
			builder.NewRecordBuilder().WithTimes(start, start.Add(30*time.Minute)).Build(),
		}

		got := booking.Utilization(records, booking.DefaultUtilizationConfig())

		assert.InDelta(t, 120.0/840.0, got["2025-06-02"].Fraction, 1e-9)
	})

	t.Run("count basis uses slot length", func(t *testing.T) {
		start := day.Add(10 * time.Hour)
		records := []booking.Record{
			builder.NewRecordBuilder().WithTimes(start, start.Add(90*time.Minute)).Build(),
			builder.NewRecordBuilder().WithTimes(start, start.Add(30*time.Minute)).Build(),
			builder.NewRecordBuilder().WithTimes(start, time.Time{}).Build(),
		}
		cfg := booking.DefaultUtilizationConfig()
		cfg.Basis = booking.BasisCount

		got := booking.Utilization(records, cfg)

		b := got["2025-06-02"]
		assert.Equal(t, 3, b.BookingCount)
		assert.InDelta(t, 180.0, b.OccupiedMinutes, 1e-9)
	})

	t.Run("skips records without start and ignores bad ranges", func(t *testing.T) {
		start := day.Add(12 * time.Hour)
		records := []booking.Record{
			builder.NewRecordBuilder().WithTimes(time.Time{}, start).Build(),
			builder.NewRecordBuilder().WithTimes(start, start.Add(-time.Hour)).Build(),
		}

		got := booking.Utilization(records, booking.DefaultUtilizationConfig())

		require.Len(t, got, 1)
		b := got["2025-06-02"]
		assert.Equal(t, 1, b.BookingCount)
		assert.Zero(t, b.OccupiedMinutes)
		assert.Zero(t, b.Fraction)
	})

	t.Run("buckets by local calendar day", func(t *testing.T) {
		loc := time.FixedZone("CEST", 2*60*60)
		start := time.Date(2025, time.June, 2, 23, 0, 0, 0, time.UTC)
		records := []booking.Record{builder.NewRecordBuilder().WithStart(start).Build()}
		cfg := booking.DefaultUtilizationConfig()
		cfg.Location = loc

		got := booking.Utilization(records, cfg)

		assert.Contains(t, got, "2025-06-03")
	})
}

func TestSortedBuckets(t *testing.T) {
	m := map[string]booking.UtilizationBucket{
		"2025-06-03": {Date: "2025-06-03"},
		"2025-06-01": {Date: "2025-06-01"},
		"2025-06-02": {Date: "2025-06-02"},
	}

	got := booking.SortedBuckets(m)

	require.Len(t, got, 3)
	assert.Equal(t, "2025-06-01", got[0].Date)
	assert.Equal(t, "2025-06-03", got[2].Date)
}

func TestParseBasis(t *testing.T) {
	b, err := booking.ParseBasis("COUNT")
	require.NoError(t, err)
	assert.Equal(t, booking.BasisCount, b)

	b, err = booking.ParseBasis("")
	require.NoError(t, err)
	assert.Equal(t, booking.BasisDuration, b)

	_, err = booking.ParseBasis("slots")
	assert.ErrorIs(t, err, booking.ErrInvalidBasis)
}
