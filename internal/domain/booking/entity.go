package booking

import (
	"strings"
	"time"

	"club-roster/internal/domain/member"
	"club-roster/internal/pkg/ptr"
)

// Record is one court booking as reported by the booking platform.
type Record struct {
	ID               string     `json:"id"`
	Start            time.Time  `json:"start"`
	End              time.Time  `json:"end"`
	ResourceCategory string     `json:"resourceCategory"`
	Attendees        []Attendee `json:"attendees"`
}

type Attendee struct {
	AttendeeID string `json:"attendeeId"`
	AccountRef string `json:"accountRef"`
}

func (r Record) Duration() time.Duration {
	if r.Start.IsZero() || r.End.IsZero() || !r.End.After(r.Start) {
		return 0
	}
	return r.End.Sub(r.Start)
}

// Single reports whether exactly one account is on the booking.
func (r Record) Single() bool {
	return len(r.Attendees) == 1
}

// Matches reports whether the resource category contains keyword,
// ignoring case. An empty category never matches.
func (r Record) Matches(keyword string) bool {
	if r.ResourceCategory == "" {
		return false
	}
	return strings.Contains(strings.ToLower(r.ResourceCategory), strings.ToLower(keyword))
}

// Directory resolves booking account references to display names.
type Directory map[string]string

// NewDirectory indexes every reconciled record that carries a booking id.
// References compare case-insensitively; the first record for an id wins.
func NewDirectory(members []member.Reconciled) Directory {
	d := make(Directory, len(members))
	for _, m := range members {
		id := ptr.Deref(m.BookingID, "")
		if id == "" {
			continue
		}
		key := strings.ToLower(id)
		if _, ok := d[key]; !ok {
			d[key] = m.Name
		}
	}
	return d
}

const UnknownName = "Unknown"

func (d Directory) Name(ref string) string {
	if name, ok := d[strings.ToLower(ref)]; ok && name != "" {
		return name
	}
	return UnknownName
}
