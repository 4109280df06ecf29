// AngelaMos | 2026
// dto.go

package goal

import (
	"time"
)

type CreateGoalRequest struct {
	Title      string  `json:"title"                 validate:"required,min=1,max=200"`
	TargetDate *string `json:"target_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type UpdateGoalRequest struct {
	Title           *string `json:"title,omitempty"       validate:"omitempty,min=1,max=200"`
	TargetDate      *string `json:"target_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	ClearTargetDate bool    `json:"clear_target_date,omitempty"`
}

type GoalResponse struct {
	ID              string      `json:"id"`
	Title           string      `json:"title"`
	TargetDate      *string     `json:"target_date,omitempty"`
	Status          Status      `json:"status"`
	Permissions     Permissions `json:"permissions"`
	StreakCount     int         `json:"streak_count"`
	LastCheckinDate *string     `json:"last_checkin_date,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

type CreateGoalResponse struct {
	Created    bool          `json:"created"`
	Goal       *GoalResponse `json:"goal,omitempty"`
	ReasonKind string        `json:"reason_kind,omitempty"`
	Reason     string        `json:"reason,omitempty"`
}

type ShareResponse struct {
	ShareToken string `json:"share_token"`
}

type CheckInResponse struct {
	CheckedIn        bool `json:"checked_in"`
	AlreadyCheckedIn bool `json:"already_checked_in"`
	StreakCount      int  `json:"streak_count"`
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}

func ToGoalResponse(v *View) GoalResponse {
	return GoalResponse{
		ID:              v.Goal.ID,
		Title:           v.Goal.Title,
		TargetDate:      formatDate(v.Goal.TargetDate),
		Status:          v.Status,
		Permissions:     v.Permissions,
		StreakCount:     v.Goal.StreakCount,
		LastCheckinDate: formatDate(v.Goal.LastCheckinDate),
		CreatedAt:       v.Goal.CreatedAt,
		UpdatedAt:       v.Goal.UpdatedAt,
	}
}

func ToGoalResponseList(views []View) []GoalResponse {
	responses := make([]GoalResponse, 0, len(views))
	for i := range views {
		responses = append(responses, ToGoalResponse(&views[i]))
	}
	return responses
}
