// AngelaMos | 2026
// dto.go

package profile

import (
	"time"

	"github.com/angelamos/compass/internal/entitlement"
)

type UpdateProfileRequest struct {
	Timezone *string `json:"timezone,omitempty" validate:"omitempty,min=1,max=64"`
}

type SubscriptionEventRequest struct {
	UserID     string `json:"user_id"    validate:"required,uuid4"`
	Subscribed bool   `json:"subscribed"`
	Tier       string `json:"tier"       validate:"max=64"`
}

type MeResponse struct {
	ID                 string             `json:"id"`
	Email              string             `json:"email"`
	Timezone           string             `json:"timezone"`
	Tier               entitlement.Tier   `json:"tier"`
	Subscribed         bool               `json:"subscribed"`
	Limits             entitlement.Limits `json:"limits"`
	TrialExpiresAt     *time.Time         `json:"trial_expires_at,omitempty"`
	TrialExpired       bool               `json:"trial_expired"`
	TrialDaysRemaining int                `json:"trial_days_remaining"`
	CreatedAt          time.Time          `json:"created_at"`
}

func ToMeResponse(snap *Snapshot) MeResponse {
	return MeResponse{
		ID:                 snap.Profile.ID,
		Email:              snap.Profile.Email,
		Timezone:           snap.Profile.Timezone,
		Tier:               snap.Tier(),
		Subscribed:         snap.Subscription.Subscribed,
		Limits:             snap.Limits(),
		TrialExpiresAt:     snap.Profile.TrialExpiresAt,
		TrialExpired:       snap.TrialExpired(),
		TrialDaysRemaining: snap.TrialDaysRemaining(),
		CreatedAt:          snap.Profile.CreatedAt,
	}
}
