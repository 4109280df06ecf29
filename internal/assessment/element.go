// AngelaMos | 2026
// element.go

package assessment

// Element is one of the six fixed life domains a user rates. The order of
// CanonicalOrder is load-bearing: it breaks ties when scanning for the
// biggest gap, so results stay deterministic across re-fetches regardless
// of input order.
type Element string

const (
	ElementWork          Element = "work"
	ElementSleep         Element = "sleep"
	ElementHealth        Element = "health"
	ElementRelationships Element = "relationships"
	ElementGrowth        Element = "growth"
	ElementPlay          Element = "play"
)

var CanonicalOrder = [...]Element{
	ElementWork,
	ElementSleep,
	ElementHealth,
	ElementRelationships,
	ElementGrowth,
	ElementPlay,
}

func (e Element) IsValid() bool {
	for _, known := range CanonicalOrder {
		if e == known {
			return true
		}
	}
	return false
}

func canonicalRank(e Element) int {
	for i, known := range CanonicalOrder {
		if e == known {
			return i
		}
	}
	return len(CanonicalOrder)
}

// Rating holds the two source-of-truth numbers for an element. The gap is
// always recomputed from them, never stored.
type Rating struct {
	Element Element `json:"element"`
	Current float64 `json:"current"`
	Desired float64 `json:"desired"`
}

// Gap is signed: a negative gap means the user is investing more than they
// want to (overinvestment), which is as meaningful as a shortfall.
func (r Rating) Gap() float64 {
	return r.Desired - r.Current
}

// AttentionThreshold is the minimum signed gap before an element shows up
// in the needs-attention list.
const AttentionThreshold = 2.0

type GapSummary struct {
	BiggestGapElement        Element   `json:"biggest_gap_element"`
	BiggestGapValue          float64   `json:"biggest_gap_value"`
	ElementsNeedingAttention []Element `json:"elements_needing_attention"`
}

// Summarize scans a rating set for the biggest signed gap. Ties resolve to
// the element that comes first in CanonicalOrder. An empty set returns the
// zero summary (empty element, zero gap) instead of failing the caller.
func Summarize(ratings []Rating) GapSummary {
	if len(ratings) == 0 {
		return GapSummary{ElementsNeedingAttention: []Element{}}
	}

	best := ratings[0]
	for _, r := range ratings[1:] {
		switch {
		case r.Gap() > best.Gap():
			best = r
		case r.Gap() == best.Gap() &&
			canonicalRank(r.Element) < canonicalRank(best.Element):
			best = r
		}
	}

	attention := make([]Element, 0, len(ratings))
	for _, e := range CanonicalOrder {
		for _, r := range ratings {
			if r.Element == e && r.Gap() >= AttentionThreshold {
				attention = append(attention, e)
				break
			}
		}
	}

	return GapSummary{
		BiggestGapElement:        best.Element,
		BiggestGapValue:          best.Gap(),
		ElementsNeedingAttention: attention,
	}
}

// WorkScore is a current/desired pair for one work-happiness dimension.
type WorkScore struct {
	Current float64 `json:"current"`
	Desired float64 `json:"desired"`
}

// WorkHappiness holds the optional work sub-assessment.
type WorkHappiness struct {
	Impact WorkScore `json:"impact"`
	Fun    WorkScore `json:"fun"`
	Money  WorkScore `json:"money"`
	Remote WorkScore `json:"remote"`
}
