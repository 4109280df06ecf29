// AngelaMos | 2026
// entity.go

package profile

import (
	"time"

	"github.com/angelamos/compass/internal/entitlement"
)

// Profile is the identity-adjacent record this service owns. TrialExpiresAt
// is set once at creation from the configured trial length and never
// recomputed afterwards; nil means the trial window does not apply.
type Profile struct {
	ID             string     `db:"id"`
	Email          string     `db:"email"`
	Timezone       string     `db:"timezone"`
	TrialExpiresAt *time.Time `db:"trial_expires_at"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at"`
	DeletedAt      *time.Time `db:"deleted_at"`
}

func (p *Profile) IsDeleted() bool {
	return p.DeletedAt != nil
}

// Location resolves the profile's reference timezone, falling back to the
// service default when unset or unparseable.
func (p *Profile) Location(fallback *time.Location) *time.Location {
	if p.Timezone == "" {
		return fallback
	}

	loc, err := time.LoadLocation(p.Timezone)
	if err != nil {
		return fallback
	}
	return loc
}

// Subscription is a cached snapshot of the billing collaborator's state.
// The authoritative copy lives with billing; this row is only ever read.
type Subscription struct {
	UserID     string           `db:"user_id"`
	Subscribed bool             `db:"subscribed"`
	Tier       entitlement.Tier `db:"tier"`
	UpdatedAt  time.Time        `db:"updated_at"`
}

// Snapshot is one atomic read of {profile, subscription, clock} used for
// every entitlement derivation in a request. Deriving from a single
// snapshot keeps trial and subscription reads from tearing.
type Snapshot struct {
	Profile      Profile
	Subscription Subscription
	Now          time.Time
	Today        time.Time
}

func (s *Snapshot) Tier() entitlement.Tier {
	if !s.Subscription.Subscribed {
		return entitlement.TierFree
	}
	return s.Subscription.Tier
}

func (s *Snapshot) Limits() entitlement.Limits {
	return entitlement.LimitsFor(s.Tier())
}

func (s *Snapshot) TrialExpired() bool {
	return entitlement.TrialExpired(
		s.Profile.TrialExpiresAt,
		s.Subscription.Subscribed,
		s.Now,
	)
}

func (s *Snapshot) TrialDaysRemaining() int {
	return entitlement.TrialDaysRemaining(
		s.Profile.TrialExpiresAt,
		s.Subscription.Subscribed,
		s.Now,
	)
}
