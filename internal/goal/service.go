// AngelaMos | 2026
// service.go

package goal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/angelamos/compass/internal/core"
	"github.com/angelamos/compass/internal/entitlement"
	"github.com/angelamos/compass/internal/profile"
)

// Reason kinds on denied results. The remediation differs per kind, so the
// UI can route the user to the right place: checkout, the goal list, or
// the billing page.
const (
	ReasonUpgrade      = "upgrade"
	ReasonCapacity     = "capacity"
	ReasonTrialExpired = "trial_expired"
)

// PermissionError reports an operation blocked by the goal's derived
// status. The status names the specific blocking condition so the UI can
// route remediation.
type PermissionError struct {
	Op     string
	Status Status
}

func (e PermissionError) Error() string {
	return fmt.Sprintf("%s is not allowed while the goal is %s", e.Op, e.Status)
}

type Service struct {
	repo     Repository
	profiles *profile.Service
}

func NewService(repo Repository, profiles *profile.Service) *Service {
	return &Service{repo: repo, profiles: profiles}
}

// CreateResult is a first-class outcome: an over-cap create is not an
// error, it is Created=false plus the reason that tells the user whether
// upgrading or freeing capacity fixes it.
type CreateResult struct {
	Created    bool
	Goal       *View
	ReasonKind string
	Reason     string
}

func (s *Service) Create(
	ctx context.Context,
	userID string,
	req CreateGoalRequest,
) (*CreateResult, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("create goal: title is required: %w", core.ErrInvalidInput)
	}

	snap, err := s.profiles.LoadSnapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	if snap.TrialExpired() && !snap.Subscription.Subscribed {
		return &CreateResult{
			ReasonKind: ReasonTrialExpired,
			Reason:     "trial has ended; resubscribe to create goals",
		}, nil
	}

	count, err := s.repo.CountActive(ctx, userID)
	if err != nil {
		return nil, err
	}

	limits := snap.Limits()
	if count >= limits.MaxActiveGoals {
		return s.overCapResult(snap.Tier()), nil
	}

	targetDate, err := parseTargetDate(req.TargetDate)
	if err != nil {
		return nil, err
	}

	g := &Goal{
		ID:         uuid.New().String(),
		UserID:     userID,
		Title:      title,
		TargetDate: targetDate,
		IsActive:   true,
	}

	if err := s.repo.Create(ctx, g); err != nil {
		return nil, err
	}

	status := ResolveStatus(g, evalSnapshot(snap))
	return &CreateResult{
		Created: true,
		Goal: &View{
			Goal:        *g,
			Status:      status,
			Permissions: PermissionsFor(status),
		},
	}, nil
}

func (s *Service) overCapResult(tier entitlement.Tier) *CreateResult {
	goals := func(limits entitlement.Limits) int { return limits.MaxActiveGoals }
	if entitlement.UpgradeWouldRaise(tier, goals) {
		return &CreateResult{
			ReasonKind: ReasonUpgrade,
			Reason:     "active goal limit reached; upgrade your plan to add more",
		}
	}

	return &CreateResult{
		ReasonKind: ReasonCapacity,
		Reason:     "active goal limit reached; delete a goal to free capacity",
	}
}

// View is a goal decorated with its derived status and capability set. All
// goals in one List call are classified against the same snapshot.
type View struct {
	Goal        Goal
	Status      Status
	Permissions Permissions
}

func (s *Service) List(ctx context.Context, userID string) ([]View, error) {
	snap, err := s.profiles.LoadSnapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	goals, err := s.repo.ListActive(ctx, userID)
	if err != nil {
		return nil, err
	}

	eval := evalSnapshot(snap)
	views := make([]View, 0, len(goals))
	for i := range goals {
		status := ResolveStatus(&goals[i], eval)
		views = append(views, View{
			Goal:        goals[i],
			Status:      status,
			Permissions: PermissionsFor(status),
		})
	}

	return views, nil
}

func (s *Service) Get(ctx context.Context, userID, id string) (*View, error) {
	snap, err := s.profiles.LoadSnapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	g, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	status := ResolveStatus(g, evalSnapshot(snap))
	return &View{Goal: *g, Status: status, Permissions: PermissionsFor(status)}, nil
}

func (s *Service) Update(
	ctx context.Context,
	userID, id string,
	req UpdateGoalRequest,
) (*View, error) {
	snap, err := s.profiles.LoadSnapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	g, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	status := ResolveStatus(g, evalSnapshot(snap))
	if !PermissionsFor(status).CanEdit {
		return nil, PermissionError{Op: "edit", Status: status}
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, fmt.Errorf("update goal: title is required: %w", core.ErrInvalidInput)
		}
		g.Title = title
	}

	if req.ClearTargetDate {
		g.TargetDate = nil
	} else if req.TargetDate != nil {
		targetDate, parseErr := parseTargetDate(req.TargetDate)
		if parseErr != nil {
			return nil, parseErr
		}
		g.TargetDate = targetDate
	}

	if err := s.repo.Update(ctx, g); err != nil {
		return nil, err
	}

	// Re-classify: pushing the date forward revives an expired goal.
	status = ResolveStatus(g, evalSnapshot(snap))
	return &View{Goal: *g, Status: status, Permissions: PermissionsFor(status)}, nil
}

// CheckInResult reports one check-in. A same-day repeat is a no-op, not an
// error.
type CheckInResult struct {
	CheckedIn        bool
	AlreadyCheckedIn bool
	StreakCount      int
}

func (s *Service) CheckIn(
	ctx context.Context,
	userID, id string,
) (*CheckInResult, error) {
	snap, err := s.profiles.LoadSnapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	g, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	status := ResolveStatus(g, evalSnapshot(snap))
	if !PermissionsFor(status).CanCheckIn {
		return nil, PermissionError{Op: "check-in", Status: status}
	}

	today := snap.Today
	if g.LastCheckinDate != nil && sameDay(*g.LastCheckinDate, today) {
		return &CheckInResult{
			AlreadyCheckedIn: true,
			StreakCount:      g.StreakCount,
		}, nil
	}

	streak := 1
	if g.LastCheckinDate != nil &&
		sameDay(*g.LastCheckinDate, today.AddDate(0, 0, -1)) {
		streak = g.StreakCount + 1
	}

	checkinDate := time.Date(
		today.Year(), today.Month(), today.Day(),
		0, 0, 0, 0, time.UTC,
	)
	if err := s.repo.RecordCheckIn(ctx, userID, id, checkinDate, streak); err != nil {
		return nil, err
	}

	return &CheckInResult{CheckedIn: true, StreakCount: streak}, nil
}

// ShareResult carries the goal's share token. The token is minted once
// and stable afterwards, so a shared link keeps working across repeated
// share taps.
type ShareResult struct {
	ShareToken string
}

func (s *Service) Share(
	ctx context.Context,
	userID, id string,
) (*ShareResult, error) {
	snap, err := s.profiles.LoadSnapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	g, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	status := ResolveStatus(g, evalSnapshot(snap))
	if !PermissionsFor(status).CanShare {
		return nil, PermissionError{Op: "share", Status: status}
	}

	if g.ShareToken != nil {
		return &ShareResult{ShareToken: *g.ShareToken}, nil
	}

	token := uuid.New().String()
	err = s.repo.SetShareToken(ctx, userID, id, token)
	if errors.Is(err, core.ErrDuplicateKey) {
		// A concurrent share won the mint; return its token.
		g, err = s.repo.GetByID(ctx, userID, id)
		if err != nil {
			return nil, err
		}
		if g.ShareToken == nil {
			return nil, fmt.Errorf("share goal: token missing after mint race")
		}
		return &ShareResult{ShareToken: *g.ShareToken}, nil
	}
	if err != nil {
		return nil, err
	}

	return &ShareResult{ShareToken: token}, nil
}

func (s *Service) Delete(ctx context.Context, userID, id string) error {
	snap, err := s.profiles.LoadSnapshot(ctx, userID)
	if err != nil {
		return err
	}

	g, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return err
	}

	status := ResolveStatus(g, evalSnapshot(snap))
	if !PermissionsFor(status).CanDelete {
		return PermissionError{Op: "delete", Status: status}
	}

	return s.repo.SoftDelete(ctx, userID, id)
}

// WeeklyCheckinCount reports how many active goals saw a check-in in the
// last seven days. The assessment lifecycle uses it to decide whether the
// user is still engaging after insights were generated. The window is
// anchored to the snapshot clock, so rules stay reproducible under a
// pinned time source.
func (s *Service) WeeklyCheckinCount(
	ctx context.Context,
	userID string,
) (int, error) {
	snap, err := s.profiles.LoadSnapshot(ctx, userID)
	if err != nil {
		return 0, err
	}

	since := snap.Now.AddDate(0, 0, -7)
	return s.repo.CountCheckinsSince(ctx, userID, since)
}

func evalSnapshot(snap *profile.Snapshot) EvalSnapshot {
	return EvalSnapshot{
		TrialExpired: snap.TrialExpired(),
		Subscribed:   snap.Subscription.Subscribed,
		Today:        snap.Today,
	}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func parseTargetDate(input *string) (*time.Time, error) {
	if input == nil || *input == "" {
		return nil, nil
	}

	// Unparseable dates fail loudly at the boundary; the engine assumes
	// validated inputs past this point.
	t, err := time.Parse("2006-01-02", *input)
	if err != nil {
		return nil, fmt.Errorf(
			"parse target date %q: %w",
			*input,
			core.ErrInvalidInput,
		)
	}

	return &t, nil
}
