//go:build e2e

package e2e

import (
	"encoding/json"
	"io"
	"net/http"
	nethttptest "net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

// Fixture people served by FakeUpstream.
//
//	Anna Hansen  registry 101, account acc-1, strong match, group Seniorer
//	Bo Smith     registry 102, no account
//	Carl Jensen  registry 103, account acc-2 "Karl Jensen", full-name match
//	Guest Player account acc-3 only
const fakeRegistryXML = `<?xml version="1.0" encoding="UTF-8"?>
<conventus>
  <medlemmer>
    <medlem>
      <id>101</id>
      <navn>Anna Hansen</navn>
      <postnr_by>Hellerup</postnr_by>
      <email>anna.hansen@example.dk</email>
      <individuel1>Senior</individuel1>
      <individuel4>Tennis</individuel4>
      <koen>kvinde</koen>
    </medlem>
    <medlem>
      <id>102</id>
      <navn>Bo Smith</navn>
      <postnr_by>Aarhus</postnr_by>
      <email>bo@example.dk</email>
      <individuel1>Junior</individuel1>
      <individuel4>Padel</individuel4>
      <koen>mand</koen>
    </medlem>
    <medlem>
      <id>103</id>
      <navn>Carl Jensen</navn>
      <postnr_by>Hellerup</postnr_by>
      <email>carl@jensen.dk</email>
      <individuel1>Senior</individuel1>
      <individuel4>Tennis</individuel4>
      <koen>mand</koen>
    </medlem>
  </medlemmer>
</conventus>`

var fakeAccounts = []map[string]string{
	{"id": "acc-1", "firstName": "Anna", "lastName": "Hansen", "email": "anna.hansen@example.dk", "city": "Hellerup", "createdTs": "2023-04-01T10:00:00Z"},
	{"id": "acc-2", "firstName": "Karl", "lastName": "Jensen", "email": "karl@other.dk", "city": "Hellerup", "created": "2024-02-10"},
	{"id": "acc-3", "firstName": "Guest", "lastName": "Player", "email": "guest@example.dk", "city": "Odense", "createdTs": "2024-06-01T08:00:00Z"},
}

// FakeUpstream serves the registry export and the booking platform API from
// one test server.
type FakeUpstream struct {
	Server *nethttptest.Server

	down         atomic.Bool
	registryHits atomic.Int32
	bookingHits  atomic.Int32
}

func NewFakeUpstream(t *testing.T) *FakeUpstream {
	t.Helper()

	f := &FakeUpstream{}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /registry/members.xml", f.registry)
	mux.HandleFunc("GET /booking/members", f.bookingJSON(func(*http.Request) any { return fakeAccounts }))
	mux.HandleFunc("GET /booking/groups", f.bookingJSON(func(*http.Request) any {
		return []map[string]string{{"id": "g1", "title": "Seniorer"}, {"id": "g2", "title": "Holdspillere"}}
	}))
	mux.HandleFunc("GET /booking/groups/relations", f.bookingJSON(func(*http.Request) any {
		return []map[string]any{
			{"groupId": "g1", "members": "101"},
			{"groupId": "g2", "members": []any{"999"}},
		}
	}))
	mux.HandleFunc("GET /booking/bookings", f.bookingJSON(fakeBookings))

	f.Server = nethttptest.NewServer(mux)
	t.Cleanup(f.Server.Close)
	return f
}

func (f *FakeUpstream) RegistryURL() string { return f.Server.URL + "/registry/members.xml" }
func (f *FakeUpstream) BookingURL() string  { return f.Server.URL + "/booking" }

// SetDown makes every endpoint answer 503.
func (f *FakeUpstream) SetDown(down bool) { f.down.Store(down) }

func (f *FakeUpstream) RegistryHits() int { return int(f.registryHits.Load()) }
func (f *FakeUpstream) BookingHits() int  { return int(f.bookingHits.Load()) }

func (f *FakeUpstream) Reset() {
	f.down.Store(false)
	f.registryHits.Store(0)
	f.bookingHits.Store(0)
}

func (f *FakeUpstream) registry(w http.ResponseWriter, _ *http.Request) {
	f.registryHits.Add(1)
	if f.down.Load() {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/xml; charset=utf-8")
	_, _ = io.WriteString(w, fakeRegistryXML)
}

func (f *FakeUpstream) bookingJSON(body func(*http.Request) any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.bookingHits.Add(1)
		if f.down.Load() {
			http.Error(w, "maintenance", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(body(r))
	}
}

// fakeBookings places three bookings relative to the requested start day:
// two tennis bookings for Anna (one shared with Karl) and a padel single for
// the guest.
func fakeBookings(r *http.Request) any {
	from, err := time.Parse(time.DateOnly, r.URL.Query().Get("from"))
	if err != nil {
		return []any{}
	}
	at := func(day, hour int) string {
		return from.AddDate(0, 0, day).Add(time.Duration(hour) * time.Hour).Format(time.RFC3339)
	}
	return []map[string]any{
		{
			"id": "bk-2", "startTs": at(1, 9), "endTs": at(1, 10),
			"resources": []map[string]string{{"name": "Tennis Bane 2"}},
			"bookings":  []map[string]string{{"id": "p-2", "accountId": "acc-1"}, {"id": "p-3", "accountId": "acc-2"}},
		},
		{
			"id": "bk-1", "startTs": at(0, 8), "endTs": at(0, 9),
			"resources": []map[string]string{{"name": "Tennis Bane 1"}},
			"bookings":  []map[string]string{{"id": "p-1", "accountId": "acc-1"}},
		},
		{
			"id": "bk-3", "startTs": at(0, 10), "endTs": at(0, 12),
			"resources": []map[string]string{{"name": "Padel Bane 1"}},
			"bookings":  []map[string]string{{"id": "p-4", "accountId": "ACC-3"}},
		},
	}
}
