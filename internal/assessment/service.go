// AngelaMos | 2026
// service.go

package assessment

import (
	"context"
	"errors"
	"log/slog"

	"github.com/angelamos/compass/internal/core"
	"github.com/angelamos/compass/internal/profile"
)

// CheckinSource reports recent goal check-in activity. It lives behind an
// interface so the assessment lifecycle does not import the goal package.
type CheckinSource interface {
	WeeklyCheckinCount(ctx context.Context, userID string) (int, error)
}

type Service struct {
	repo     Repository
	profiles *profile.Service
	checkins CheckinSource
}

func NewService(
	repo Repository,
	profiles *profile.Service,
	checkins CheckinSource,
) *Service {
	return &Service{repo: repo, profiles: profiles, checkins: checkins}
}

// SummaryView is the derived read model for one user's assessment: the
// lifecycle state, the gap summary, and the pattern read when the tier is
// entitled to full analysis.
type SummaryView struct {
	State          State
	Summary        GapSummary
	Pattern        *PatternMatch
	WorkHappiness  *WorkHappiness
	AIInsightCount int
	FullAnalysis   bool
}

func (s *Service) Submit(
	ctx context.Context,
	userID string,
	req SubmitAssessmentRequest,
) (*SummaryView, error) {
	snap := &Snapshot{
		Ratings:       toRatings(req.Ratings),
		WorkHappiness: toWorkHappiness(req.WorkHappiness),
	}

	if err := s.repo.Replace(ctx, userID, snap); err != nil {
		return nil, err
	}

	// Re-read so a resubmit reflects the preserved insight count.
	return s.Summary(ctx, userID)
}

// Summary derives the current view. A failed snapshot fetch degrades to
// the initial state instead of erroring: the state only gates onboarding
// prompts, and initial is the safe answer when the data is unreachable.
func (s *Service) Summary(
	ctx context.Context,
	userID string,
) (*SummaryView, error) {
	profSnap, err := s.profiles.LoadSnapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	snap, err := s.repo.Get(ctx, userID)
	if err != nil && !errors.Is(err, core.ErrNotFound) {
		slog.Warn("assessment fetch failed, degrading to initial",
			"user_id", userID,
			"error", err,
		)
		snap = nil
	}

	weeklyCheckins := 0
	if snap != nil && snap.AIInsightCount >= 1 {
		count, countErr := s.checkins.WeeklyCheckinCount(ctx, userID)
		if countErr != nil {
			slog.Warn("check-in count unavailable, treating as zero",
				"user_id", userID,
				"error", countErr,
			)
		} else {
			weeklyCheckins = count
		}
	}

	view := &SummaryView{
		State:        ClassifyState(snap, weeklyCheckins),
		Summary:      Summarize(nil),
		FullAnalysis: profSnap.Limits().FullAnalysis,
	}

	if snap != nil {
		view.Summary = Summarize(snap.Ratings)
		view.WorkHappiness = snap.WorkHappiness
		view.AIInsightCount = snap.AIInsightCount
		if view.FullAnalysis {
			pattern := ClassifyPattern(snap.Ratings)
			view.Pattern = &pattern
		}
	}

	return view, nil
}

// InsightResult reports a completed AI insight run.
type InsightResult struct {
	AIInsightCount int
	State          State
}

// RecordInsight bumps the insight counter after an AI run completes and
// returns the state the user lands in. It requires an existing snapshot;
// insights cannot run against nothing.
func (s *Service) RecordInsight(
	ctx context.Context,
	userID string,
) (*InsightResult, error) {
	count, err := s.repo.IncrementInsights(ctx, userID)
	if err != nil {
		return nil, err
	}

	weeklyCheckins, err := s.checkins.WeeklyCheckinCount(ctx, userID)
	if err != nil {
		slog.Warn("check-in count unavailable, treating as zero",
			"user_id", userID,
			"error", err,
		)
		weeklyCheckins = 0
	}

	return &InsightResult{
		AIInsightCount: count,
		State: ClassifyState(
			&Snapshot{AIInsightCount: count},
			weeklyCheckins,
		),
	}, nil
}
