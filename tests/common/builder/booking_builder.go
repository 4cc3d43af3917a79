//go:build unit || e2e

package builder

import (
	"fmt"
	"time"

	"club-roster/internal/domain/booking"
)

type RecordBuilder struct {
	r booking.Record
}

func NewRecordBuilder() *RecordBuilder {
	start := time.Date(2025, time.June, 2, 9, 0, 0, 0, time.UTC)
	return &RecordBuilder{r: booking.Record{
		ID:               "bk-1",
		Start:            start,
		End:              start.Add(time.Hour),
		ResourceCategory: "Tennis Bane 1",
	}}
}

func (b *RecordBuilder) WithID(id string) *RecordBuilder {
	b.r.ID = id
	return b
}

func (b *RecordBuilder) WithCategory(category string) *RecordBuilder {
	b.r.ResourceCategory = category
	return b
}

func (b *RecordBuilder) WithStart(start time.Time) *RecordBuilder {
	d := b.r.End.Sub(b.r.Start)
	b.r.Start = start
	b.r.End = start.Add(d)
	return b
}

func (b *RecordBuilder) WithTimes(start, end time.Time) *RecordBuilder {
	b.r.Start = start
	b.r.End = end
	return b
}

func (b *RecordBuilder) WithAccounts(refs ...string) *RecordBuilder {
	b.r.Attendees = make([]booking.Attendee, 0, len(refs))
	for i, ref := range refs {
		b.r.Attendees = append(b.r.Attendees, booking.Attendee{
			AttendeeID: fmt.Sprintf("%s-a%d", b.r.ID, i),
			AccountRef: ref,
		})
	}
	return b
}

func (b *RecordBuilder) Build() booking.Record {
	r := b.r
	r.Attendees = append([]booking.Attendee(nil), b.r.Attendees...)
	return r
}

// HourlyDay returns n back-to-back one-hour records starting at midnight UTC
// on day. Keep n at 24 or below for all of them to start on that day.
func HourlyDay(day time.Time, n int, category string) []booking.Record {
	base := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	out := make([]booking.Record, 0, n)
	for i := 0; i < n; i++ {
		start := base.Add(time.Duration(i) * time.Hour)
		out = append(out, NewRecordBuilder().
			WithID(fmt.Sprintf("bk-%d", i)).
			WithCategory(category).
			WithTimes(start, start.Add(time.Hour)).
			WithAccounts(fmt.Sprintf("acc-%d", i)).
			Build())
	}
	return out
}
