// AngelaMos | 2026
// state.go

package assessment

// State is the assessment lifecycle position. It is derived on every read
// and never persisted on its own.
type State string

const (
	StateInitial   State = "initial"
	StateCompleted State = "completed"
	StateInsights  State = "insights"
	StateOngoing   State = "ongoing"
)

// Snapshot is the full assessment record for a user: the six element
// ratings, the optional work-happiness sub-scores, and how many AI insight
// runs have completed. Edits replace the whole thing; there are no partial
// updates.
type Snapshot struct {
	Ratings        []Rating       `json:"ratings"`
	WorkHappiness  *WorkHappiness `json:"work_happiness,omitempty"`
	AIInsightCount int            `json:"ai_insight_count"`
}

// ClassifyState maps a snapshot to a lifecycle state, first match wins:
//
//  1. ongoing:   insights generated and at least one weekly check-in
//     recorded since (check-in count comes from the cadence collaborator)
//  2. insights:  snapshot exists and at least one AI insight generated
//  3. completed: snapshot exists, no insights yet
//  4. initial:   no snapshot at all
//
// A nil snapshot is not an error: callers that failed to fetch pass nil and
// get initial, the safest state, since it only gates onboarding prompts.
func ClassifyState(snap *Snapshot, weeklyCheckins int) State {
	if snap == nil {
		return StateInitial
	}

	if snap.AIInsightCount >= 1 {
		if weeklyCheckins >= 1 {
			return StateOngoing
		}
		return StateInsights
	}

	return StateCompleted
}
