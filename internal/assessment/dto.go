// AngelaMos | 2026
// dto.go

package assessment

type RatingInput struct {
	Element string  `json:"element" validate:"required,oneof=work sleep health relationships growth play"`
	Current float64 `json:"current" validate:"min=0,max=24"`
	Desired float64 `json:"desired" validate:"min=0,max=24"`
}

type WorkScoreInput struct {
	Current float64 `json:"current" validate:"min=0,max=10"`
	Desired float64 `json:"desired" validate:"min=0,max=10"`
}

type WorkHappinessInput struct {
	Impact WorkScoreInput `json:"impact"`
	Fun    WorkScoreInput `json:"fun"`
	Money  WorkScoreInput `json:"money"`
	Remote WorkScoreInput `json:"remote"`
}

// SubmitAssessmentRequest carries the full rating set. All six elements
// are required exactly once; partial submissions are rejected at the
// boundary so the engine never sees an incomplete snapshot.
type SubmitAssessmentRequest struct {
	Ratings       []RatingInput       `json:"ratings"                  validate:"required,len=6,unique=Element,dive"`
	WorkHappiness *WorkHappinessInput `json:"work_happiness,omitempty" validate:"omitempty"`
}

type SummaryResponse struct {
	State          State          `json:"state"`
	GapSummary     GapSummary     `json:"gap_summary"`
	Pattern        *PatternMatch  `json:"pattern,omitempty"`
	WorkHappiness  *WorkHappiness `json:"work_happiness,omitempty"`
	AIInsightCount int            `json:"ai_insight_count"`
	FullAnalysis   bool           `json:"full_analysis"`
}

type InsightResponse struct {
	AIInsightCount int   `json:"ai_insight_count"`
	State          State `json:"state"`
}

func toRatings(inputs []RatingInput) []Rating {
	ratings := make([]Rating, 0, len(inputs))
	for _, in := range inputs {
		ratings = append(ratings, Rating{
			Element: Element(in.Element),
			Current: in.Current,
			Desired: in.Desired,
		})
	}
	return ratings
}

func toWorkHappiness(in *WorkHappinessInput) *WorkHappiness {
	if in == nil {
		return nil
	}
	return &WorkHappiness{
		Impact: WorkScore{Current: in.Impact.Current, Desired: in.Impact.Desired},
		Fun:    WorkScore{Current: in.Fun.Current, Desired: in.Fun.Desired},
		Money:  WorkScore{Current: in.Money.Current, Desired: in.Money.Desired},
		Remote: WorkScore{Current: in.Remote.Current, Desired: in.Remote.Desired},
	}
}

func ToSummaryResponse(view *SummaryView) SummaryResponse {
	return SummaryResponse{
		State:          view.State,
		GapSummary:     view.Summary,
		Pattern:        view.Pattern,
		WorkHappiness:  view.WorkHappiness,
		AIInsightCount: view.AIInsightCount,
		FullAnalysis:   view.FullAnalysis,
	}
}
