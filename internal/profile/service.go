// AngelaMos | 2026
// service.go

package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/angelamos/compass/internal/core"
	"github.com/angelamos/compass/internal/entitlement"
)

type Service struct {
	repo        Repository
	clock       func() time.Time
	defaultLoc  *time.Location
	trialLength time.Duration
}

func NewService(
	repo Repository,
	defaultLoc *time.Location,
	trialLengthDays int,
) *Service {
	return &Service{
		repo:        repo,
		clock:       time.Now,
		defaultLoc:  defaultLoc,
		trialLength: time.Duration(trialLengthDays) * 24 * time.Hour,
	}
}

// WithClock swaps the time source; used by tests to pin "now".
func (s *Service) WithClock(clock func() time.Time) *Service {
	s.clock = clock
	return s
}

// EnsureProfile returns the stored profile, creating it on first sight.
// The trial window is fixed at creation and never recomputed.
func (s *Service) EnsureProfile(
	ctx context.Context,
	userID, email string,
) (*Profile, error) {
	p, err := s.repo.GetByID(ctx, userID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, core.ErrNotFound) {
		return nil, err
	}

	expiresAt := s.clock().Add(s.trialLength)
	p = &Profile{
		ID:             userID,
		Email:          strings.ToLower(email),
		Timezone:       s.defaultLoc.String(),
		TrialExpiresAt: &expiresAt,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return s.repo.GetByID(ctx, userID)
		}
		return nil, err
	}

	return p, nil
}

// LoadSnapshot performs the one atomic read every derivation hangs off.
// Missing rows are not errors: a missing profile degrades to the zero
// profile (free limits, no trial window, default timezone) and a missing
// subscription degrades to free/unsubscribed, so missing data can never
// block reads or grant elevated access.
func (s *Service) LoadSnapshot(
	ctx context.Context,
	userID string,
) (*Snapshot, error) {
	p, err := s.repo.GetByID(ctx, userID)
	if errors.Is(err, core.ErrNotFound) {
		p = &Profile{ID: userID, Timezone: s.defaultLoc.String()}
	} else if err != nil {
		return nil, err
	}

	sub, err := s.repo.GetSubscription(ctx, userID)
	if errors.Is(err, core.ErrNotFound) {
		sub = &Subscription{UserID: userID, Tier: entitlement.TierFree}
	} else if err != nil {
		return nil, err
	}

	now := s.clock()
	loc := p.Location(s.defaultLoc)

	return &Snapshot{
		Profile:      *p,
		Subscription: *sub,
		Now:          now,
		Today:        now.In(loc),
	}, nil
}

func (s *Service) UpdateProfile(
	ctx context.Context,
	userID string,
	req UpdateProfileRequest,
) (*Profile, error) {
	p, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Timezone != nil {
		if _, tzErr := time.LoadLocation(*req.Timezone); tzErr != nil {
			return nil, fmt.Errorf(
				"update profile: invalid timezone %q: %w",
				*req.Timezone,
				core.ErrInvalidInput,
			)
		}
		p.Timezone = *req.Timezone
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

// ApplySubscriptionEvent refreshes the cached billing snapshot. Tier names
// arrive in billing's vocabulary and are normalized here; unknown names
// degrade to free rather than failing the webhook.
func (s *Service) ApplySubscriptionEvent(
	ctx context.Context,
	userID string,
	subscribed bool,
	tierName string,
) (*Subscription, error) {
	sub := &Subscription{
		UserID:     userID,
		Subscribed: subscribed,
		Tier:       entitlement.ParseTier(tierName),
	}

	if err := s.repo.UpsertSubscription(ctx, sub); err != nil {
		return nil, err
	}

	return sub, nil
}
