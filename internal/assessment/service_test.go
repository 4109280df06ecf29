// AngelaMos | 2026
// service_test.go

package assessment

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

type fakeAssessmentRepo struct {
	snapshots map[string]*Snapshot
	getErr    error
}

func newFakeAssessmentRepo() *fakeAssessmentRepo {
	return &fakeAssessmentRepo{snapshots: make(map[string]*Snapshot)}
}

func (r *fakeAssessmentRepo) Get(
	_ context.Context,
	userID string,
) (*Snapshot, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	snap, ok := r.snapshots[userID]
	if !ok {
		return nil, fmt.Errorf("get assessment: %w", core.ErrNotFound)
	}
	copied := *snap
	return &copied, nil
}

func (r *fakeAssessmentRepo) Replace(
	_ context.Context,
	userID string,
	snap *Snapshot,
) error {
	copied := *snap
	if existing, ok := r.snapshots[userID]; ok {
		copied.AIInsightCount = existing.AIInsightCount
	}
	r.snapshots[userID] = &copied
	return nil
}

func (r *fakeAssessmentRepo) IncrementInsights(
	_ context.Context,
	userID string,
) (int, error) {
	snap, ok := r.snapshots[userID]
	if !ok {
		return 0, fmt.Errorf("increment insights: %w", core.ErrNotFound)
	}
	snap.AIInsightCount++
	return snap.AIInsightCount, nil
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

type fakeCheckins struct {
	count int
	err   error
}

func (f *fakeCheckins) WeeklyCheckinCount(
	_ context.Context,
	_ string,
) (int, error) {
	return f.count, f.err
}

func fullRatings() []Rating {
	ratings := make([]Rating, 0, len(CanonicalOrder))
	for _, e := range CanonicalOrder {
		ratings = append(ratings, Rating{Element: e, Current: 5, Desired: 7})
	}
	return ratings
}

func newTestService(
	repo *fakeAssessmentRepo,
	checkins *fakeCheckins,
	tier entitlement.Tier,
	subscribed bool,
) *Service {
	profRepo := &fakeProfileRepo{
		profile: &profile.Profile{ID: "user-1"},
	}
	if subscribed {
		profRepo.subscription = &profile.Subscription{
			UserID:     "user-1",
			Subscribed: true,
			Tier:       tier,
		}
	}

	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	profileSvc := profile.NewService(profRepo, time.UTC, 14).
		WithClock(func() time.Time { return now })

	return NewService(repo, profileSvc, checkins)
}

func TestSummaryNoSnapshotIsInitial(t *testing.T) {
	svc := newTestService(
		newFakeAssessmentRepo(),
		&fakeCheckins{},
		entitlement.TierFree,
		false,
	)

	view, err := svc.Summary(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, StateInitial, view.State)
	assert.Empty(t, view.Summary.BiggestGapElement)
	assert.Nil(t, view.Pattern)
}

func TestSummaryFetchFailureDegradesToInitial(t *testing.T) {
	repo := newFakeAssessmentRepo()
	repo.getErr = fmt.Errorf("connection refused")
	svc := newTestService(repo, &fakeCheckins{}, entitlement.TierFree, false)

	view, err := svc.Summary(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, StateInitial, view.State)
}

func TestSummaryLifecycleProgression(t *testing.T) {
	repo := newFakeAssessmentRepo()
	checkins := &fakeCheckins{}
	svc := newTestService(repo, checkins, entitlement.TierFree, false)

	_, err := svc.Submit(context.Background(), "user-1", SubmitAssessmentRequest{
		Ratings: toInputs(fullRatings()),
	})
	require.NoError(t, err)

	view, err := svc.Summary(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, StateCompleted, view.State)

	_, err = svc.RecordInsight(context.Background(), "user-1")
	require.NoError(t, err)

	view, err = svc.Summary(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, StateInsights, view.State)

	checkins.count = 2
	view, err = svc.Summary(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, StateOngoing, view.State)
}

func TestSummaryCheckinFailureStaysInsights(t *testing.T) {
	repo := newFakeAssessmentRepo()
	repo.snapshots["user-1"] = &Snapshot{
		Ratings:        fullRatings(),
		AIInsightCount: 1,
	}
	checkins := &fakeCheckins{count: 3, err: fmt.Errorf("timeout")}
	svc := newTestService(repo, checkins, entitlement.TierFree, false)

	view, err := svc.Summary(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, StateInsights, view.State)
}

func TestSummaryPatternGatedByTier(t *testing.T) {
	repo := newFakeAssessmentRepo()
	repo.snapshots["user-1"] = &Snapshot{Ratings: fullRatings()}

	free := newTestService(repo, &fakeCheckins{}, entitlement.TierFree, false)
	view, err := free.Summary(context.Background(), "user-1")
	require.NoError(t, err)
	assert.False(t, view.FullAnalysis)
	assert.Nil(t, view.Pattern)

	pro := newTestService(
		repo,
		&fakeCheckins{},
		entitlement.TierProfessional,
		true,
	)
	view, err = pro.Summary(context.Background(), "user-1")
	require.NoError(t, err)
	assert.True(t, view.FullAnalysis)
	require.NotNil(t, view.Pattern)
	assert.Equal(t, "growth_opportunity", view.Pattern.Label)
}

func TestResubmitPreservesInsightCount(t *testing.T) {
	repo := newFakeAssessmentRepo()
	svc := newTestService(repo, &fakeCheckins{}, entitlement.TierFree, false)

	_, err := svc.Submit(context.Background(), "user-1", SubmitAssessmentRequest{
		Ratings: toInputs(fullRatings()),
	})
	require.NoError(t, err)

	_, err = svc.RecordInsight(context.Background(), "user-1")
	require.NoError(t, err)

	view, err := svc.Submit(context.Background(), "user-1", SubmitAssessmentRequest{
		Ratings: toInputs(fullRatings()),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, view.AIInsightCount)
	assert.Equal(t, StateInsights, view.State)
}

func TestRecordInsightWithoutSnapshotFails(t *testing.T) {
	svc := newTestService(
		newFakeAssessmentRepo(),
		&fakeCheckins{},
		entitlement.TierFree,
		false,
	)

	_, err := svc.RecordInsight(context.Background(), "user-1")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func toInputs(ratings []Rating) []RatingInput {
	inputs := make([]RatingInput, 0, len(ratings))
	for _, r := range ratings {
		inputs = append(inputs, RatingInput{
			Element: string(r.Element),
			Current: r.Current,
			Desired: r.Desired,
		})
	}
	return inputs
}
