// AngelaMos | 2026
// status.go

package goal

import "time"

// Status is derived per read from the goal and the account snapshot. It is
// never stored, so there is no transition history and no illegal-transition
// concept.
type Status string

const (
	StatusActive       Status = "active"
	StatusGoalExpired  Status = "goal_expired"
	StatusTrialExpired Status = "trial_expired"
)

// EvalSnapshot is a single atomic read of the account state used to
// classify goals. Trial, subscription, and today must come from the same
// fetch; mixing a stale trial read with a fresh subscription read can
// produce torn states like "trial-expired but treated as professional".
// Today is a date in the user's reference timezone.
type EvalSnapshot struct {
	TrialExpired bool
	Subscribed   bool
	Today        time.Time
}

// ResolveStatus classifies a goal in strict priority order, most
// restrictive first:
//
//  1. trial expired and not subscribed  -> trial_expired
//  2. target date strictly before today -> goal_expired
//  3. otherwise                         -> active
//
// The date comparison is date-only; a goal due today is still active.
func ResolveStatus(g *Goal, snap EvalSnapshot) Status {
	if snap.TrialExpired && !snap.Subscribed {
		return StatusTrialExpired
	}

	if g.TargetDate != nil && dateBefore(*g.TargetDate, snap.Today) {
		return StatusGoalExpired
	}

	return StatusActive
}

func dateBefore(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()

	if ay != by {
		return ay < by
	}
	if am != bm {
		return am < bm
	}
	return ad < bd
}
