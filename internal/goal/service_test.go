// AngelaMos | 2026
// service_test.go

package goal

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelamos/compass/internal/core"
	"github.com/angelamos/compass/internal/entitlement"
	"github.com/angelamos/compass/internal/profile"
)

type fakeGoalRepo struct {
	goals map[string]*Goal

	// hideTokenOnce blanks the share token on the next GetByID, simulating
	// a read that raced a concurrent mint.
	hideTokenOnce bool
}

func newFakeGoalRepo() *fakeGoalRepo {
	return &fakeGoalRepo{goals: make(map[string]*Goal)}
}

func (r *fakeGoalRepo) Create(_ context.Context, g *Goal) error {
	copied := *g
	r.goals[g.ID] = &copied
	return nil
}

func (r *fakeGoalRepo) GetByID(
	_ context.Context,
	userID, id string,
) (*Goal, error) {
	g, ok := r.goals[id]
	if !ok || g.UserID != userID || !g.IsActive {
		return nil, fmt.Errorf("get goal: %w", core.ErrNotFound)
	}
	copied := *g
	if r.hideTokenOnce {
		copied.ShareToken = nil
		r.hideTokenOnce = false
	}
	return &copied, nil
}

func (r *fakeGoalRepo) ListActive(
	_ context.Context,
	userID string,
) ([]Goal, error) {
	var out []Goal
	for _, g := range r.goals {
		if g.UserID == userID && g.IsActive {
			out = append(out, *g)
		}
	}
	return out, nil
}

func (r *fakeGoalRepo) CountActive(
	_ context.Context,
	userID string,
) (int, error) {
	count := 0
	for _, g := range r.goals {
		if g.UserID == userID && g.IsActive {
			count++
		}
	}
	return count, nil
}

func (r *fakeGoalRepo) Update(_ context.Context, g *Goal) error {
	if _, ok := r.goals[g.ID]; !ok {
		return fmt.Errorf("update goal: %w", core.ErrNotFound)
	}
	copied := *g
	r.goals[g.ID] = &copied
	return nil
}

func (r *fakeGoalRepo) RecordCheckIn(
	_ context.Context,
	userID, id string,
	checkinDate time.Time,
	streak int,
) error {
	g, ok := r.goals[id]
	if !ok || g.UserID != userID {
		return fmt.Errorf("record check-in: %w", core.ErrNotFound)
	}
	g.LastCheckinDate = &checkinDate
	g.StreakCount = streak
	return nil
}

func (r *fakeGoalRepo) CountCheckinsSince(
	_ context.Context,
	userID string,
	since time.Time,
) (int, error) {
	count := 0
	for _, g := range r.goals {
		if g.UserID == userID && g.IsActive &&
			g.LastCheckinDate != nil && !g.LastCheckinDate.Before(since) {
			count++
		}
	}
	return count, nil
}

func (r *fakeGoalRepo) SetShareToken(
	_ context.Context,
	userID, id, token string,
) error {
	g, ok := r.goals[id]
	if !ok || g.UserID != userID {
		return fmt.Errorf("set share token: %w", core.ErrNotFound)
	}
	if g.ShareToken != nil {
		return fmt.Errorf("set share token: %w", core.ErrDuplicateKey)
	}
	g.ShareToken = &token
	return nil
}

func (r *fakeGoalRepo) SoftDelete(
	_ context.Context,
	userID, id string,
) error {
	g, ok := r.goals[id]
	if !ok || g.UserID != userID {
		return fmt.Errorf("delete goal: %w", core.ErrNotFound)
	}
	g.IsActive = false
	return nil
}

type fakeProfileRepo struct {
	profile      *profile.Profile
	subscription *profile.Subscription
}

func (r *fakeProfileRepo) Create(_ context.Context, _ *profile.Profile) error {
	return nil
}

func (r *fakeProfileRepo) GetByID(
	_ context.Context,
	_ string,
) (*profile.Profile, error) {
	if r.profile == nil {
		return nil, fmt.Errorf("get profile: %w", core.ErrNotFound)
	}
	copied := *r.profile
	return &copied, nil
}

func (r *fakeProfileRepo) Update(_ context.Context, _ *profile.Profile) error {
	return nil
}

func (r *fakeProfileRepo) GetSubscription(
	_ context.Context,
	_ string,
) (*profile.Subscription, error) {
	if r.subscription == nil {
		return nil, fmt.Errorf("get subscription: %w", core.ErrNotFound)
	}
	copied := *r.subscription
	return &copied, nil
}

func (r *fakeProfileRepo) UpsertSubscription(
	_ context.Context,
	_ *profile.Subscription,
) error {
	return nil
}

const testUser = "user-1"

type fixture struct {
	svc  *Service
	repo *fakeGoalRepo
	prof *fakeProfileRepo
	now  time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	trialEnd := now.AddDate(0, 0, 7)

	prof := &fakeProfileRepo{
		profile: &profile.Profile{
			ID:             testUser,
			TrialExpiresAt: &trialEnd,
		},
	}

	loc, _ := time.LoadLocation("UTC")
	profileSvc := profile.NewService(prof, loc, 14).
		WithClock(func() time.Time { return now })

	repo := newFakeGoalRepo()
	return &fixture{
		svc:  NewService(repo, profileSvc),
		repo: repo,
		prof: prof,
		now:  now,
	}
}

func (f *fixture) subscribe(tier entitlement.Tier) {
	f.prof.subscription = &profile.Subscription{
		UserID:     testUser,
		Subscribed: true,
		Tier:       tier,
	}
}

func (f *fixture) expireTrial() {
	past := f.now.AddDate(0, 0, -1)
	f.prof.profile.TrialExpiresAt = &past
}

func (f *fixture) seedGoal(id string, targetDate *time.Time) *Goal {
	g := &Goal{
		ID:       id,
		UserID:   testUser,
		Title:    "goal " + id,
		IsActive: true,
	}
	g.TargetDate = targetDate
	f.repo.goals[id] = g
	return g
}

func TestCreateOverCapOnFreeTierSuggestsUpgrade(t *testing.T) {
	f := newFixture(t)
	f.seedGoal("g1", nil)

	result, err := f.svc.Create(context.Background(), testUser, CreateGoalRequest{
		Title: "second goal",
	})
	require.NoError(t, err)

	assert.False(t, result.Created)
	assert.Nil(t, result.Goal)
	assert.Equal(t, ReasonUpgrade, result.ReasonKind)
}

func TestCreateOverCapOnTopTierSuggestsFreeingCapacity(t *testing.T) {
	f := newFixture(t)
	f.subscribe(entitlement.TierStrategicAdvisor)
	for i := range 5 {
		f.seedGoal(fmt.Sprintf("g%d", i), nil)
	}

	result, err := f.svc.Create(context.Background(), testUser, CreateGoalRequest{
		Title: "sixth goal",
	})
	require.NoError(t, err)

	assert.False(t, result.Created)
	assert.Equal(t, ReasonCapacity, result.ReasonKind)
}

func TestCreateBlockedByExpiredTrial(t *testing.T) {
	f := newFixture(t)
	f.expireTrial()

	result, err := f.svc.Create(context.Background(), testUser, CreateGoalRequest{
		Title: "too late",
	})
	require.NoError(t, err)

	assert.False(t, result.Created)
	assert.Equal(t, ReasonTrialExpired, result.ReasonKind)
}

func TestCreateWithinCapReturnsActiveView(t *testing.T) {
	f := newFixture(t)

	result, err := f.svc.Create(context.Background(), testUser, CreateGoalRequest{
		Title: "  run a marathon  ",
	})
	require.NoError(t, err)

	assert.True(t, result.Created)
	require.NotNil(t, result.Goal)
	assert.Equal(t, "run a marathon", result.Goal.Goal.Title)
	assert.Equal(t, StatusActive, result.Goal.Status)
	assert.True(t, result.Goal.Permissions.CanCheckIn)
}

func TestUpdateBlockedWhileTrialExpired(t *testing.T) {
	f := newFixture(t)
	g := f.seedGoal("g1", nil)
	f.expireTrial()

	title := "new title"
	_, err := f.svc.Update(context.Background(), testUser, g.ID, UpdateGoalRequest{
		Title: &title,
	})

	var permErr PermissionError
	require.ErrorAs(t, err, &permErr)
	assert.Equal(t, StatusTrialExpired, permErr.Status)
}

func TestUpdateRevivesExpiredGoal(t *testing.T) {
	f := newFixture(t)
	past := f.now.AddDate(0, 0, -3)
	g := f.seedGoal("g1", &past)

	future := f.now.AddDate(0, 0, 30).Format("2006-01-02")
	view, err := f.svc.Update(context.Background(), testUser, g.ID, UpdateGoalRequest{
		TargetDate: &future,
	})
	require.NoError(t, err)

	assert.Equal(t, StatusActive, view.Status)
	assert.True(t, view.Permissions.CanCheckIn)
}

func TestCheckInSameDayIsNoOp(t *testing.T) {
	f := newFixture(t)
	g := f.seedGoal("g1", nil)

	first, err := f.svc.CheckIn(context.Background(), testUser, g.ID)
	require.NoError(t, err)
	assert.True(t, first.CheckedIn)
	assert.Equal(t, 1, first.StreakCount)

	second, err := f.svc.CheckIn(context.Background(), testUser, g.ID)
	require.NoError(t, err)
	assert.False(t, second.CheckedIn)
	assert.True(t, second.AlreadyCheckedIn)
	assert.Equal(t, 1, second.StreakCount)
}

func TestCheckInConsecutiveDaysExtendStreak(t *testing.T) {
	f := newFixture(t)
	g := f.seedGoal("g1", nil)
	yesterday := time.Date(2026, 6, 14, 0, 0, 0, 0, time.UTC)
	g.LastCheckinDate = &yesterday
	g.StreakCount = 4

	result, err := f.svc.CheckIn(context.Background(), testUser, g.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, result.StreakCount)
}

func TestCheckInAfterGapResetsStreak(t *testing.T) {
	f := newFixture(t)
	g := f.seedGoal("g1", nil)
	lastWeek := time.Date(2026, 6, 8, 0, 0, 0, 0, time.UTC)
	g.LastCheckinDate = &lastWeek
	g.StreakCount = 9

	result, err := f.svc.CheckIn(context.Background(), testUser, g.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, result.StreakCount)
}

func TestCheckInBlockedOnExpiredGoal(t *testing.T) {
	f := newFixture(t)
	past := f.now.AddDate(0, 0, -1)
	g := f.seedGoal("g1", &past)

	_, err := f.svc.CheckIn(context.Background(), testUser, g.ID)

	var permErr PermissionError
	require.ErrorAs(t, err, &permErr)
	assert.Equal(t, StatusGoalExpired, permErr.Status)
}

func TestDeleteAllowedOnExpiredGoal(t *testing.T) {
	f := newFixture(t)
	past := f.now.AddDate(0, 0, -1)
	g := f.seedGoal("g1", &past)

	err := f.svc.Delete(context.Background(), testUser, g.ID)
	require.NoError(t, err)

	_, err = f.svc.Get(context.Background(), testUser, g.ID)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestShareIssuesStableToken(t *testing.T) {
	f := newFixture(t)
	g := f.seedGoal("g1", nil)

	first, err := f.svc.Share(context.Background(), testUser, g.ID)
	require.NoError(t, err)
	require.NotEmpty(t, first.ShareToken)

	second, err := f.svc.Share(context.Background(), testUser, g.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ShareToken, second.ShareToken)
}

func TestShareReturnsWinnerTokenAfterMintRace(t *testing.T) {
	f := newFixture(t)
	g := f.seedGoal("g1", nil)

	// Another request minted between our read and our write: the first
	// read sees no token, but the insert finds one already present.
	winner := "11111111-2222-3333-4444-555555555555"
	f.repo.goals[g.ID].ShareToken = &winner
	f.repo.hideTokenOnce = true

	result, err := f.svc.Share(context.Background(), testUser, g.ID)
	require.NoError(t, err)
	assert.Equal(t, winner, result.ShareToken)
}

func TestShareBlockedOnExpiredGoal(t *testing.T) {
	f := newFixture(t)
	past := f.now.AddDate(0, 0, -1)
	g := f.seedGoal("g1", &past)

	_, err := f.svc.Share(context.Background(), testUser, g.ID)

	var permErr PermissionError
	require.ErrorAs(t, err, &permErr)
	assert.Equal(t, StatusGoalExpired, permErr.Status)
}

func TestShareBlockedWhileTrialExpired(t *testing.T) {
	f := newFixture(t)
	g := f.seedGoal("g1", nil)
	f.expireTrial()

	_, err := f.svc.Share(context.Background(), testUser, g.ID)

	var permErr PermissionError
	require.ErrorAs(t, err, &permErr)
	assert.Equal(t, StatusTrialExpired, permErr.Status)
}

func TestWeeklyCheckinCountAnchorsToSnapshotClock(t *testing.T) {
	f := newFixture(t)

	recent := f.seedGoal("g-recent", nil)
	sixDaysAgo := f.now.AddDate(0, 0, -6)
	recent.LastCheckinDate = &sixDaysAgo

	stale := f.seedGoal("g-stale", nil)
	eightDaysAgo := f.now.AddDate(0, 0, -8)
	stale.LastCheckinDate = &eightDaysAgo

	count, err := f.svc.WeeklyCheckinCount(context.Background(), testUser)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestListClassifiesAllGoalsAgainstOneSnapshot(t *testing.T) {
	f := newFixture(t)
	past := f.now.AddDate(0, 0, -2)
	f.seedGoal("g1", nil)
	f.seedGoal("g2", &past)

	views, err := f.svc.List(context.Background(), testUser)
	require.NoError(t, err)
	require.Len(t, views, 2)

	statuses := map[string]Status{}
	for _, v := range views {
		statuses[v.Goal.ID] = v.Status
	}
	assert.Equal(t, StatusActive, statuses["g1"])
	assert.Equal(t, StatusGoalExpired, statuses["g2"])
}
