// AngelaMos | 2026
// status_test.go

package goal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var today = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

func datePtr(t time.Time) *time.Time { return &t }

func TestResolveStatusPriorityOrder(t *testing.T) {
	yesterday := today.AddDate(0, 0, -1)
	tomorrow := today.AddDate(0, 0, 1)

	tests := []struct {
		name string
		goal Goal
		snap EvalSnapshot
		want Status
	}{
		{
			name: "trial expired unsubscribed wins over everything",
			goal: Goal{TargetDate: datePtr(yesterday)},
			snap: EvalSnapshot{TrialExpired: true, Today: today},
			want: StatusTrialExpired,
		},
		{
			name: "subscription shields an expired trial",
			goal: Goal{},
			snap: EvalSnapshot{TrialExpired: true, Subscribed: true, Today: today},
			want: StatusActive,
		},
		{
			name: "past target date is goal expired",
			goal: Goal{TargetDate: datePtr(yesterday)},
			snap: EvalSnapshot{Today: today},
			want: StatusGoalExpired,
		},
		{
			name: "target date today is still active",
			goal: Goal{TargetDate: datePtr(today)},
			snap: EvalSnapshot{Today: today},
			want: StatusActive,
		},
		{
			name: "future target date is active",
			goal: Goal{TargetDate: datePtr(tomorrow)},
			snap: EvalSnapshot{Today: today},
			want: StatusActive,
		},
		{
			name: "no target date never expires by date",
			goal: Goal{},
			snap: EvalSnapshot{Today: today},
			want: StatusActive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveStatus(&tt.goal, tt.snap))
		})
	}
}

func TestResolveStatusDateOnlyComparison(t *testing.T) {
	// Target date stored at midnight, "today" carrying a time of day: the
	// comparison must ignore time of day entirely.
	lateToday := time.Date(2026, 3, 10, 23, 59, 0, 0, time.UTC)
	g := Goal{TargetDate: datePtr(today)}

	assert.Equal(t, StatusActive, ResolveStatus(&g, EvalSnapshot{Today: lateToday}))
}

func TestPermissionsForMatrix(t *testing.T) {
	trialExpired := PermissionsFor(StatusTrialExpired)
	assert.Equal(t, Permissions{}, trialExpired)

	goalExpired := PermissionsFor(StatusGoalExpired)
	assert.Equal(t, Permissions{CanEdit: true, CanDelete: true}, goalExpired)

	active := PermissionsFor(StatusActive)
	assert.Equal(t, Permissions{
		CanEdit:          true,
		CanDelete:        true,
		CanCheckIn:       true,
		CanShare:         true,
		CanReceiveEmails: true,
		CanGenerateNudge: true,
	}, active)

	// Unknown statuses deny everything.
	assert.Equal(t, Permissions{}, PermissionsFor(Status("archived")))
}

func TestExpiredGoalDuringValidTrial(t *testing.T) {
	yesterday := today.AddDate(0, 0, -1)
	g := Goal{TargetDate: datePtr(yesterday)}

	status := ResolveStatus(&g, EvalSnapshot{Today: today})
	assert.Equal(t, StatusGoalExpired, status)

	perms := PermissionsFor(status)
	assert.True(t, perms.CanEdit)
	assert.False(t, perms.CanCheckIn)
	assert.False(t, perms.CanGenerateNudge)
}
