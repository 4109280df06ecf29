// AngelaMos | 2026
// patterns.go

package assessment

// Severity orders pattern labels for the UI.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Pattern is one row of the life-pattern table: a named qualitative read of
// the rating set. Rows are evaluated top to bottom and the first predicate
// that matches wins, which makes the precedence explicit and testable.
type Pattern struct {
	Label    string
	Severity Severity
	Matches  func(view patternView) bool
}

type patternView struct {
	ratings []Rating
	summary GapSummary
}

func (v patternView) rating(e Element) (Rating, bool) {
	for _, r := range v.ratings {
		if r.Element == e {
			return r, true
		}
	}
	return Rating{}, false
}

func (v patternView) anyGapAtMost(limit float64) bool {
	for _, r := range v.ratings {
		if r.Gap() <= limit {
			return true
		}
	}
	return false
}

var patternTable = []Pattern{
	{
		Label:    "burnout",
		Severity: SeverityCritical,
		Matches: func(v patternView) bool {
			work, ok := v.rating(ElementWork)
			if !ok || work.Gap() < 3 {
				return false
			}
			for _, e := range []Element{ElementSleep, ElementHealth} {
				if r, ok := v.rating(e); ok && r.Current <= 3 {
					return true
				}
			}
			return false
		},
	},
	{
		Label:    "overinvestment",
		Severity: SeverityWarning,
		Matches: func(v patternView) bool {
			return v.anyGapAtMost(-2)
		},
	},
	{
		Label:    "growth_opportunity",
		Severity: SeverityInfo,
		Matches: func(v patternView) bool {
			return v.summary.BiggestGapValue >= AttentionThreshold
		},
	},
	{
		Label:    "balanced",
		Severity: SeverityInfo,
		Matches: func(patternView) bool {
			return true
		},
	},
}

type PatternMatch struct {
	Label    string   `json:"label"`
	Severity Severity `json:"severity"`
}

// ClassifyPattern walks the pattern table and returns the first matching
// row. The final row matches everything, so there is always a result.
func ClassifyPattern(ratings []Rating) PatternMatch {
	view := patternView{ratings: ratings, summary: Summarize(ratings)}

	for _, row := range patternTable {
		if row.Matches(view) {
			return PatternMatch{Label: row.Label, Severity: row.Severity}
		}
	}

	// Unreachable: the table ends with a catch-all row.
	return PatternMatch{Label: "balanced", Severity: SeverityInfo}
}
