// AngelaMos | 2026
// limiter.go

package nudge

import (
	"context"
	"log/slog"

	"github.com/angelamos/compass/internal/entitlement"
)

// Reason kinds distinguish remediations: upgrading raises the ceiling for
// some tiers, while users already on the top tier can only wait for the
// day boundary.
const (
	ReasonUpgrade   = "upgrade"
	ReasonWaitReset = "wait_reset"
)

// Result is the first-class outcome of a nudge attempt. A denied attempt
// is not an error; it carries the counts the UI needs to render "N
// remaining" plus the blocking reason.
type Result struct {
	Allowed      bool   `json:"allowed"`
	CurrentCount int    `json:"current_count"`
	Max          int    `json:"max"`
	Remaining    int    `json:"remaining"`
	ReasonKind   string `json:"reason_kind,omitempty"`
	Reason       string `json:"reason,omitempty"`
	Degraded     bool   `json:"degraded,omitempty"`
}

// Limiter enforces the daily nudge cap. The authoritative store is
// consulted first; on any store error it degrades to the local
// approximation instead of failing the action or granting unlimited use.
type Limiter struct {
	store    Store
	fallback Store
}

func NewLimiter(store, fallback Store) *Limiter {
	return &Limiter{store: store, fallback: fallback}
}

// Attempt consumes one nudge for the given day if the tier's ceiling
// allows it. The ceiling is resolved at attempt time, so a mid-day tier
// change takes effect immediately: an upgrade raises the ceiling, a
// downgrade below current usage blocks further nudges without clawing
// back what was already used.
//
// The increment is at-most-once per call: a denied attempt never
// increments, and a failed authoritative increment is not retried (the
// fallback takes over instead).
func (l *Limiter) Attempt(
	ctx context.Context,
	userID string,
	tier entitlement.Tier,
	day string,
) Result {
	max := entitlement.LimitsFor(tier).MaxDailyNudges

	degraded := false
	count, err := l.store.Count(ctx, userID, day)
	if err != nil {
		slog.Warn("nudge counter unreachable, using local fallback",
			"error", err,
			"user_id", userID,
		)
		degraded = true
		count, _ = l.fallback.Count(ctx, userID, day)
	}

	if count >= max {
		return l.denied(tier, count, max, degraded)
	}

	var newCount int
	if degraded {
		newCount, _ = l.fallback.Incr(ctx, userID, day)
	} else {
		newCount, err = l.store.Incr(ctx, userID, day)
		if err != nil {
			slog.Warn("nudge counter increment failed, using local fallback",
				"error", err,
				"user_id", userID,
			)
			degraded = true
			newCount, _ = l.fallback.Incr(ctx, userID, day)
		}
	}

	if newCount > max {
		// Lost a race with another device; the extra increment stands
		// but the nudge is not granted.
		return l.denied(tier, newCount, max, degraded)
	}

	return Result{
		Allowed:      true,
		CurrentCount: newCount,
		Max:          max,
		Remaining:    max - newCount,
		Degraded:     degraded,
	}
}

// Remaining is the pure-read companion to Attempt, safe to retry.
func (l *Limiter) Remaining(
	ctx context.Context,
	userID string,
	tier entitlement.Tier,
	day string,
) Result {
	max := entitlement.LimitsFor(tier).MaxDailyNudges

	degraded := false
	count, err := l.store.Count(ctx, userID, day)
	if err != nil {
		degraded = true
		count, _ = l.fallback.Count(ctx, userID, day)
	}

	remaining := max - count
	if remaining < 0 {
		remaining = 0
	}

	return Result{
		Allowed:      remaining > 0,
		CurrentCount: count,
		Max:          max,
		Remaining:    remaining,
		Degraded:     degraded,
	}
}

func (l *Limiter) denied(
	tier entitlement.Tier,
	count, max int,
	degraded bool,
) Result {
	kind := ReasonWaitReset
	reason := "daily nudge limit reached; the counter resets tomorrow"

	nudges := func(limits entitlement.Limits) int { return limits.MaxDailyNudges }
	if entitlement.UpgradeWouldRaise(tier, nudges) {
		kind = ReasonUpgrade
		reason = "daily nudge limit reached; upgrade your plan to raise it"
	}

	return Result{
		Allowed:      false,
		CurrentCount: count,
		Max:          max,
		Remaining:    0,
		ReasonKind:   kind,
		Reason:       reason,
		Degraded:     degraded,
	}
}
