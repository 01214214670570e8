package certification

import (
	"math"
	"time"
)

type Status string

const (
	StatusActive       Status = "active"
	StatusExpiringSoon Status = "expiring_soon"
	StatusExpired      Status = "expired"
)

// ExpiringSoonWindowDays is the single attention window used for
// certifications and work permits alike.
const ExpiringSoonWindowDays = 60

// DeriveStatus classifies an expiry date relative to now. A nil expiry
// means the credential never lapses. Stored status values are only an
// import-time hint; every read path derives the status fresh through
// this function.
func DeriveStatus(expiry *time.Time, now time.Time) Status {
	if expiry == nil {
		return StatusActive
	}

	days := DaysUntil(*expiry, now)
	switch {
	case days < 0:
		return StatusExpired
	case days <= ExpiringSoonWindowDays:
		return StatusExpiringSoon
	default:
		return StatusActive
	}
}

// DaysUntil returns the whole-day distance from now to t, rounding
// partial days up so "later today" still counts as day zero or more.
func DaysUntil(t time.Time, now time.Time) int {
	return int(math.Ceil(t.Sub(now).Hours() / 24))
}
