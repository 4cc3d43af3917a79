package booking

import (
	"sort"
	"strings"
)

const LeaderboardSize = 10

type LeaderboardEntry struct {
	AccountRef   string `json:"accountRef"`
	DisplayName  string `json:"displayName"`
	BookingCount int    `json:"bookingCount"`
}

// TopAttendees tallies attendee references across records whose resource
// category contains keyword and returns at most LeaderboardSize entries,
// highest count first. Equal counts keep the order in which each reference
// was first seen. Records without a category and attendees without a
// reference are skipped.
func TopAttendees(records []Record, dir Directory, keyword string) []LeaderboardEntry {
	counts := make(map[string]int)
	order := make([]string, 0)
	display := make(map[string]string)

	for _, r := range records {
		if !r.Matches(keyword) {
			continue
		}
		for _, a := range r.Attendees {
			ref := strings.TrimSpace(a.AccountRef)
			if ref == "" {
				continue
			}
			key := strings.ToLower(ref)
			if _, seen := counts[key]; !seen {
				order = append(order, key)
				display[key] = ref
			}
			counts[key]++
		}
	}

	out := make([]LeaderboardEntry, 0, len(order))
	for _, key := range order {
		out = append(out, LeaderboardEntry{
			AccountRef:   display[key],
			DisplayName:  dir.Name(key),
			BookingCount: counts[key],
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].BookingCount > out[j].BookingCount
	})

	if len(out) > LeaderboardSize {
		out = out[:LeaderboardSize]
	}
	return out
}

// Leaderboards runs TopAttendees once per keyword.
func Leaderboards(records []Record, dir Directory, keywords []string) map[string][]LeaderboardEntry {
	out := make(map[string][]LeaderboardEntry, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		out[kw] = TopAttendees(records, dir, kw)
	}
	return out
}
