package booking

import (
	"sort"
	"strings"
	"time"

	"club-roster/internal/pkg/errs"
)

var ErrInvalidBasis = errs.New("invalid utilization basis")

// Basis selects what counts toward a day's occupancy.
type Basis string

const (
	BasisDuration Basis = "duration"
	BasisCount    Basis = "count"
)

func ParseBasis(s string) (Basis, error) {
	switch b := Basis(strings.ToLower(strings.TrimSpace(s))); b {
	case "", BasisDuration:
		return BasisDuration, nil
	case BasisCount:
		return BasisCount, nil
	default:
		return "", ErrInvalidBasis
	}
}

const (
	DefaultCapacityMinutes = 840
	DefaultSlotMinutes     = 60
)

type UtilizationConfig struct {
	CapacityMinutes int
	Basis           Basis
	// SlotMinutes is what one booking occupies under BasisCount.
	SlotMinutes int
	// Location decides which calendar day a start time falls on.
	Location *time.Location
}

func DefaultUtilizationConfig() UtilizationConfig {
	return UtilizationConfig{
		CapacityMinutes: DefaultCapacityMinutes,
		Basis:           BasisDuration,
		SlotMinutes:     DefaultSlotMinutes,
		Location:        time.UTC,
	}
}

type UtilizationBucket struct {
	Date            string  `json:"date"`
	BookingCount    int     `json:"bookingCount"`
	OccupiedMinutes float64 `json:"occupiedMinutes"`
	Fraction        float64 `json:"utilizationFraction"`
}

// Utilization buckets records by the calendar date of their start time,
// formatted as YYYY-MM-DD. Records without a start time are skipped. Under
// BasisDuration a record whose end is missing or not after its start counts
// toward BookingCount but adds no minutes. Fraction never exceeds 1.
func Utilization(records []Record, cfg UtilizationConfig) map[string]UtilizationBucket {
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	capacity := cfg.CapacityMinutes
	if capacity <= 0 {
		capacity = DefaultCapacityMinutes
	}
	slot := cfg.SlotMinutes
	if slot <= 0 {
		slot = DefaultSlotMinutes
	}

	out := make(map[string]UtilizationBucket)
	for _, r := range records {
		if r.Start.IsZero() {
			continue
		}
		date := r.Start.In(loc).Format(time.DateOnly)
		b := out[date]
		b.Date = date
		b.BookingCount++
		if cfg.Basis == BasisCount {
			b.OccupiedMinutes += float64(slot)
		} else {
			b.OccupiedMinutes += r.Duration().Minutes()
		}
		out[date] = b
	}

	for date, b := range out {
		b.Fraction = min(b.OccupiedMinutes/float64(capacity), 1.0)
		out[date] = b
	}
	return out
}

// SortedBuckets returns the buckets ordered by date.
func SortedBuckets(m map[string]UtilizationBucket) []UtilizationBucket {
	out := make([]UtilizationBucket, 0, len(m))
	for _, b := range m {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
