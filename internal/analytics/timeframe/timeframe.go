// internal/analytics/timeframe/timeframe.go
package timeframe

import "time"

// Timeframe tokens accepted by the summary API.
const (
	Last7Days  = "last_7_days"
	Last30Days = "last_30_days"
	Last90Days = "last_90_days"

	// Default applies when the token is missing or unrecognized.
	Default = Last30Days
)

// Range is a concrete [Start, End] instant pair.
type Range struct {
	Start time.Time
	End   time.Time
}

// Days returns the range duration in fractional days.
func (r Range) Days() float64 {
	return r.End.Sub(r.Start).Hours() / 24
}

// Resolve maps a timeframe token to a concrete range anchored at now.
// Unrecognized tokens resolve like Last30Days.
func Resolve(token string) Range {
	return ResolveAt(token, time.Now().UTC())
}

// ResolveAt is Resolve with an explicit anchor, for deterministic tests.
func ResolveAt(token string, now time.Time) Range {
	days := 30
	switch token {
	case Last7Days:
		days = 7
	case Last90Days:
		days = 90
	}
	return Range{
		Start: now.AddDate(0, 0, -days),
		End:   now,
	}
}

// Normalize returns the canonical token for a raw input value.
func Normalize(token string) string {
	switch token {
	case Last7Days, Last30Days, Last90Days:
		return token
	default:
		return Default
	}
}
