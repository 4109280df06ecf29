// AngelaMos | 2026
// tiers.go

package entitlement

import "strings"

type Tier string

const (
	TierFree             Tier = "free"
	TierPersonal         Tier = "personal"
	TierProfessional     Tier = "professional"
	TierStrategicAdvisor Tier = "strategic_advisor"
)

func (t Tier) IsValid() bool {
	switch t {
	case TierFree, TierPersonal, TierProfessional, TierStrategicAdvisor:
		return true
	default:
		return false
	}
}

// ParseTier normalizes billing-provided tier names. Unknown or empty input
// maps to the free tier rather than failing: a bad tier string must never
// grant elevated access, and must never break a read path.
func ParseTier(input string) Tier {
	s := strings.ToLower(strings.TrimSpace(input))
	s = strings.ReplaceAll(s, "-", "_")

	switch s {
	case "personal":
		return TierPersonal
	case "pro", "professional":
		return TierProfessional
	case "strategic_advisor":
		return TierStrategicAdvisor
	default:
		return TierFree
	}
}

// Limits is the per-tier resource ceiling. Every limit check in the
// service goes through LimitsFor; no other package hard-codes these
// numbers.
type Limits struct {
	MaxActiveGoals int  `json:"max_active_goals"`
	MaxDailyNudges int  `json:"max_daily_nudges"`
	FullAnalysis   bool `json:"full_analysis"`
}

var limitsByTier = map[Tier]Limits{
	TierFree:             {MaxActiveGoals: 1, MaxDailyNudges: 1, FullAnalysis: false},
	TierPersonal:         {MaxActiveGoals: 3, MaxDailyNudges: 3, FullAnalysis: false},
	TierProfessional:     {MaxActiveGoals: 5, MaxDailyNudges: 10, FullAnalysis: true},
	TierStrategicAdvisor: {MaxActiveGoals: 5, MaxDailyNudges: 10, FullAnalysis: true},
}

// LimitsFor returns the limits row for a tier. Unknown tiers fall back to
// the free row.
func LimitsFor(t Tier) Limits {
	if limits, ok := limitsByTier[t]; ok {
		return limits
	}
	return limitsByTier[TierFree]
}

// UpgradeWouldRaise reports whether some higher tier offers a larger value
// for the given limit than the current tier does. It drives the remediation
// hint on limit-exceeded results: "upgrade" when a higher tier helps,
// "free capacity" when the user is already at the ceiling.
func UpgradeWouldRaise(current Tier, limitOf func(Limits) int) bool {
	cur := limitOf(LimitsFor(current))
	for _, limits := range limitsByTier {
		if limitOf(limits) > cur {
			return true
		}
	}
	return false
}
