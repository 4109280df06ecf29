// AngelaMos | 2026
// tiers_test.go

package entitlement

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLimitsForKnownTiers(t *testing.T) {
	tests := []struct {
		tier   Tier
		goals  int
		nudges int
		full   bool
	}{
		{TierFree, 1, 1, false},
		{TierPersonal, 3, 3, false},
		{TierProfessional, 5, 10, true},
		{TierStrategicAdvisor, 5, 10, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.tier), func(t *testing.T) {
			limits := LimitsFor(tt.tier)
			assert.Equal(t, tt.goals, limits.MaxActiveGoals)
			assert.Equal(t, tt.nudges, limits.MaxDailyNudges)
			assert.Equal(t, tt.full, limits.FullAnalysis)
		})
	}
}

func TestLimitsForUnknownTierFallsBackToFree(t *testing.T) {
	for _, tier := range []Tier{"", "platinum", "PRO"} {
		limits := LimitsFor(tier)
		assert.Equal(t, LimitsFor(TierFree), limits, "tier %q", tier)
		assert.GreaterOrEqual(t, limits.MaxActiveGoals, 0)
		assert.GreaterOrEqual(t, limits.MaxDailyNudges, 0)
		assert.False(t, limits.FullAnalysis)
	}
}

func TestParseTier(t *testing.T) {
	tests := []struct {
		input string
		want  Tier
	}{
		{"personal", TierPersonal},
		{"Personal", TierPersonal},
		{"pro", TierProfessional},
		{"Professional", TierProfessional},
		{"Strategic-Advisor", TierStrategicAdvisor},
		{"strategic_advisor", TierStrategicAdvisor},
		{"", TierFree},
		{"none", TierFree},
		{"gibberish", TierFree},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseTier(tt.input), "input %q", tt.input)
	}
}

func TestUpgradeWouldRaise(t *testing.T) {
	goals := func(l Limits) int { return l.MaxActiveGoals }
	nudges := func(l Limits) int { return l.MaxDailyNudges }

	assert.True(t, UpgradeWouldRaise(TierFree, goals))
	assert.True(t, UpgradeWouldRaise(TierPersonal, nudges))
	assert.False(t, UpgradeWouldRaise(TierProfessional, goals))
	assert.False(t, UpgradeWouldRaise(TierStrategicAdvisor, nudges))
}
