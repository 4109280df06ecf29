// AngelaMos | 2026
// trial.go

package entitlement

import (
	"math"
	"time"
)

// TrialExpired reports whether the trial window has run out. A subscribed
// user is never trial-expired regardless of the stored timestamp, and a
// missing expiry is treated as not-expired: new profiles whose sync has not
// completed yet get the permissive default.
func TrialExpired(trialExpiresAt *time.Time, subscribed bool, now time.Time) bool {
	if subscribed {
		return false
	}
	if trialExpiresAt == nil {
		return false
	}
	return trialExpiresAt.Before(now)
}

// TrialDaysRemaining returns ceil((expiry - now) / 24h), floored at zero.
// Subscribed users always get zero: subscription overrides trial
// accounting entirely.
func TrialDaysRemaining(trialExpiresAt *time.Time, subscribed bool, now time.Time) int {
	if subscribed {
		return 0
	}
	if trialExpiresAt == nil {
		return 0
	}

	remaining := trialExpiresAt.Sub(now)
	if remaining <= 0 {
		return 0
	}

	return int(math.Ceil(remaining.Hours() / 24))
}
