// AngelaMos | 2026
// patterns_test.go

package assessment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyPattern(t *testing.T) {
	tests := []struct {
		name    string
		ratings []Rating
		want    string
	}{
		{
			name: "big work gap with poor sleep is burnout",
			ratings: []Rating{
				{Element: ElementWork, Current: 4, Desired: 9},
				{Element: ElementSleep, Current: 2, Desired: 8},
			},
			want: "burnout",
		},
		{
			name: "strong negative gap is overinvestment",
			ratings: []Rating{
				{Element: ElementWork, Current: 9, Desired: 5},
				{Element: ElementPlay, Current: 5, Desired: 6},
			},
			want: "overinvestment",
		},
		{
			name: "plain shortfall is a growth opportunity",
			ratings: []Rating{
				{Element: ElementGrowth, Current: 4, Desired: 7},
			},
			want: "growth_opportunity",
		},
		{
			name: "small gaps everywhere is balanced",
			ratings: []Rating{
				{Element: ElementWork, Current: 7, Desired: 8},
				{Element: ElementSleep, Current: 7, Desired: 7},
			},
			want: "balanced",
		},
		{
			name:    "empty ratings fall through to balanced",
			ratings: nil,
			want:    "balanced",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyPattern(tt.ratings)
			assert.Equal(t, tt.want, got.Label)
		})
	}
}

func TestPatternPrecedenceFirstMatchWins(t *testing.T) {
	// Qualifies for both burnout and overinvestment; burnout sits higher
	// in the table.
	ratings := []Rating{
		{Element: ElementWork, Current: 5, Desired: 9},
		{Element: ElementSleep, Current: 2, Desired: 8},
		{Element: ElementPlay, Current: 9, Desired: 4},
	}

	got := ClassifyPattern(ratings)
	assert.Equal(t, "burnout", got.Label)
	assert.Equal(t, SeverityCritical, got.Severity)
}
