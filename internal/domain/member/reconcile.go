package member

import (
	"club-roster/internal/pkg/errs"
	"club-roster/internal/pkg/similarity"
	"club-roster/internal/pkg/textnorm"
)

// Reconciler links registry members to booking accounts.
//
// Every registry member is compared against every unconsumed account, so a
// run costs O(N·M) string comparisons. That is fine for a club-sized roster
// (low thousands on each side); larger inputs would need blocking by e.g.
// email domain or name prefix first.
type Reconciler struct {
	strategy   Strategy
	thresholds Thresholds
}

func NewReconciler(strategy Strategy, thresholds Thresholds) *Reconciler {
	if strategy == "" {
		strategy = StrategyFirstMatch
	}
	return &Reconciler{strategy: strategy, thresholds: thresholds}
}

// Reconcile runs the default first-match strategy with default thresholds.
func Reconcile(registry []RegistryMember, accounts []BookingAccount) []Reconciled {
	return NewReconciler(StrategyFirstMatch, DefaultThresholds()).Reconcile(registry, accounts)
}

func (r *Reconciler) Strategy() Strategy { return r.strategy }

type accountKey struct {
	fullName  string
	firstName string
	email     string
}

type registryKey struct {
	name      string
	firstName string
	email     string
}

// Reconcile returns one record per registry member, in registry order,
// followed by one synthetic record per account no member claimed, in account
// order. Inputs are not modified.
func (r *Reconciler) Reconcile(registry []RegistryMember, accounts []BookingAccount) []Reconciled {
	keys := make([]accountKey, len(accounts))
	for i, a := range accounts {
		keys[i] = accountKey{
			fullName:  textnorm.Normalize(a.FullName()),
			firstName: textnorm.Normalize(a.FirstName),
			email:     textnorm.Email(a.Email),
		}
	}

	consumed := make([]bool, len(accounts))
	out := make([]Reconciled, 0, len(registry)+len(accounts))

	for _, m := range registry {
		name := textnorm.Normalize(m.Name)
		rk := registryKey{
			name:      name,
			firstName: textnorm.FirstToken(name),
			email:     textnorm.Email(m.Email),
		}

		var idx int
		var rule MatchRule
		if r.strategy == StrategyBestMatch {
			idx, rule = r.bestMatch(rk, keys, consumed)
		} else {
			idx, rule = r.firstMatch(rk, keys, consumed)
		}

		rec := fromRegistry(m)
		if idx >= 0 {
			consumed[idx] = true
			rec = rec.linkedTo(accounts[idx], rule)
		}
		out = append(out, rec)
	}

	for i, a := range accounts {
		if !consumed[i] {
			out = append(out, fromOrphanAccount(a))
		}
	}
	return out
}

// firstMatch accepts the first unconsumed account, in account order, that
// satisfies either rule.
func (r *Reconciler) firstMatch(rk registryKey, keys []accountKey, consumed []bool) (int, MatchRule) {
	for i, ak := range keys {
		if consumed[i] {
			continue
		}
		if rule, _ := r.evaluate(rk, ak); rule != MatchNone {
			return i, rule
		}
	}
	return -1, MatchNone
}

// bestMatch prefers strong matches over fallback ones and the higher score
// within a rule; ties keep the earlier account.
func (r *Reconciler) bestMatch(rk registryKey, keys []accountKey, consumed []bool) (int, MatchRule) {
	best, bestRule, bestScore := -1, MatchNone, 0.0
	for i, ak := range keys {
		if consumed[i] {
			continue
		}
		rule, score := r.evaluate(rk, ak)
		if rule == MatchNone {
			continue
		}
		if best < 0 || rank(rule) > rank(bestRule) || (rule == bestRule && score > bestScore) {
			best, bestRule, bestScore = i, rule, score
		}
	}
	return best, bestRule
}

func rank(rule MatchRule) int {
	switch rule {
	case MatchStrong:
		return 2
	case MatchFallback:
		return 1
	default:
		return 0
	}
}

func (r *Reconciler) evaluate(rk registryKey, ak accountKey) (MatchRule, float64) {
	emailSim := similarity.Compare(rk.email, ak.email)
	if emailSim > r.thresholds.Email {
		firstSim := similarity.Compare(rk.firstName, ak.firstName)
		if firstSim > r.thresholds.FirstName {
			return MatchStrong, (emailSim + firstSim) / 2
		}
	}
	if nameSim := similarity.Compare(rk.name, ak.fullName); nameSim > r.thresholds.FullName {
		return MatchFallback, nameSim
	}
	return MatchNone, 0
}

// VerifyPartition checks that every account appears exactly once in out,
// either linked to a registry member or as a synthetic booking-only record.
func VerifyPartition(out []Reconciled, accounts []BookingAccount) error {
	want := make(map[string]int, len(accounts))
	for _, a := range accounts {
		want[a.AccountID]++
	}

	got := make(map[string]int, len(accounts))
	for _, rec := range out {
		if rec.OnlyBooking && !rec.HasBookingAccount {
			return errs.Mark(errs.Newf("booking-only record %q has no booking account", rec.Name), errs.ErrInvariantViolation)
		}
		if !rec.HasBookingAccount {
			continue
		}
		if rec.BookingID == nil {
			return errs.Mark(errs.Newf("record %q is linked without a booking id", rec.Name), errs.ErrInvariantViolation)
		}
		got[*rec.BookingID]++
	}

	for id, n := range want {
		if got[id] != n {
			return errs.Mark(errs.Newf("account %q appears %d times, want %d", id, got[id], n), errs.ErrInvariantViolation)
		}
	}
	for id, n := range got {
		if _, ok := want[id]; !ok {
			return errs.Mark(errs.Newf("record links unknown account %q (%d times)", id, n), errs.ErrInvariantViolation)
		}
	}
	return nil
}

type Summary struct {
	Registry    int `json:"registry"`
	Linked      int `json:"linked"`
	Strong      int `json:"strong"`
	Fallback    int `json:"fallback"`
	BookingOnly int `json:"bookingOnly"`
}

func Summarize(out []Reconciled) Summary {
	var s Summary
	for _, rec := range out {
		if rec.OnlyBooking {
			s.BookingOnly++
			continue
		}
		s.Registry++
		if rec.HasBookingAccount {
			s.Linked++
		}
		switch rec.MatchRule {
		case MatchStrong:
			s.Strong++
		case MatchFallback:
			s.Fallback++
		}
	}
	return s
}
