package member

import (
	"strings"

	"club-roster/internal/pkg/errs"
)

var (
	ErrInvalidStrategy      = errs.New("invalid match strategy")
	ErrInvalidBookingStatus = errs.New("invalid booking status")
)

type Gender string

const (
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
	GenderUnknown Gender = "unknown"
)

// ParseGender accepts the registry's Danish labels as well as English ones.
func ParseGender(s string) Gender {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mand", "male", "m":
		return GenderMale
	case "kvinde", "female", "k", "f":
		return GenderFemale
	default:
		return GenderUnknown
	}
}

// MatchRule records which acceptance rule linked a registry member.
type MatchRule string

const (
	MatchNone     MatchRule = ""
	MatchStrong   MatchRule = "strong"
	MatchFallback MatchRule = "fallback"
)

type Strategy string

const (
	StrategyFirstMatch Strategy = "first"
	StrategyBestMatch  Strategy = "best"
)

func (s Strategy) String() string {
	return string(s)
}

func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case StrategyFirstMatch, "":
		return StrategyFirstMatch, nil
	case StrategyBestMatch:
		return StrategyBestMatch, nil
	default:
		return "", ErrInvalidStrategy
	}
}

type BookingStatus string

const (
	BookingStatusAll     BookingStatus = "all"
	BookingStatusWith    BookingStatus = "with"
	BookingStatusWithout BookingStatus = "without"
	BookingStatusOnly    BookingStatus = "only"
)

func ParseBookingStatus(s string) (BookingStatus, error) {
	switch st := BookingStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case "":
		return BookingStatusAll, nil
	case BookingStatusAll, BookingStatusWith, BookingStatusWithout, BookingStatusOnly:
		return st, nil
	default:
		return "", ErrInvalidBookingStatus
	}
}

// Thresholds are exclusive lower bounds on similarity scores.
type Thresholds struct {
	Email     float64
	FirstName float64
	FullName  float64
}

func DefaultThresholds() Thresholds {
	return Thresholds{Email: 0.90, FirstName: 0.85, FullName: 0.85}
}
