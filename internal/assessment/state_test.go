// AngelaMos | 2026
// state_test.go

package assessment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyState(t *testing.T) {
	ratings := []Rating{{Element: ElementWork, Current: 5, Desired: 8}}

	tests := []struct {
		name           string
		snap           *Snapshot
		weeklyCheckins int
		want           State
	}{
		{
			name: "no snapshot is initial",
			snap: nil,
			want: StateInitial,
		},
		{
			name: "snapshot without insights is completed",
			snap: &Snapshot{Ratings: ratings, AIInsightCount: 0},
			want: StateCompleted,
		},
		{
			name: "at least one insight is insights",
			snap: &Snapshot{Ratings: ratings, AIInsightCount: 1},
			want: StateInsights,
		},
		{
			name:           "insights plus weekly check-in is ongoing",
			snap:           &Snapshot{Ratings: ratings, AIInsightCount: 2},
			weeklyCheckins: 1,
			want:           StateOngoing,
		},
		{
			name:           "check-ins without insights stay completed",
			snap:           &Snapshot{Ratings: ratings, AIInsightCount: 0},
			weeklyCheckins: 3,
			want:           StateCompleted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyState(tt.snap, tt.weeklyCheckins)
			assert.Equal(t, tt.want, got)

			// Classification is idempotent over the same snapshot.
			assert.Equal(t, got, ClassifyState(tt.snap, tt.weeklyCheckins))
		})
	}
}
