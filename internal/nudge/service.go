// AngelaMos | 2026
// service.go

package nudge

import (
	"context"
	"time"

	"github.com/angelamos/compass/internal/goal"
	"github.com/angelamos/compass/internal/profile"
)

// Service runs the full nudge pipeline for one attempt: resolve the
// user's snapshot, confirm the target goal may receive nudges at all,
// then consume one unit of the daily cap.
type Service struct {
	limiter    *Limiter
	goals      *goal.Service
	profiles   *profile.Service
	defaultLoc *time.Location
}

func NewService(
	limiter *Limiter,
	goals *goal.Service,
	profiles *profile.Service,
	defaultLoc *time.Location,
) *Service {
	return &Service{
		limiter:    limiter,
		goals:      goals,
		profiles:   profiles,
		defaultLoc: defaultLoc,
	}
}

// Generate consumes one daily nudge for the goal. The goal's capability
// check runs first so an expired trial or expired goal is reported as a
// permission problem, not as an exhausted counter.
func (s *Service) Generate(
	ctx context.Context,
	userID, goalID string,
) (*Result, error) {
	snap, err := s.profiles.LoadSnapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	view, err := s.goals.Get(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}

	if !view.Permissions.CanGenerateNudge {
		return nil, goal.PermissionError{Op: "nudge", Status: view.Status}
	}

	day := DayKey(snap.Now, snap.Profile.Location(s.defaultLoc))
	result := s.limiter.Attempt(ctx, userID, snap.Tier(), day)
	return &result, nil
}

// Remaining reports today's budget without consuming from it.
func (s *Service) Remaining(
	ctx context.Context,
	userID string,
) (*Result, error) {
	snap, err := s.profiles.LoadSnapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	day := DayKey(snap.Now, snap.Profile.Location(s.defaultLoc))
	result := s.limiter.Remaining(ctx, userID, snap.Tier(), day)
	return &result, nil
}
