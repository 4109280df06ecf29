// AngelaMos | 2026
// entity.go

package goal

import (
	"time"
)

// Goal is a stored goal record. IsActive=false is a soft delete; goals are
// never hard-deleted. A nil TargetDate means no deadline: the goal can
// never expire by date. ShareToken is issued lazily on the first share and
// stable afterwards.
type Goal struct {
	ID              string     `db:"id"`
	UserID          string     `db:"user_id"`
	Title           string     `db:"title"`
	TargetDate      *time.Time `db:"target_date"`
	IsActive        bool       `db:"is_active"`
	StreakCount     int        `db:"streak_count"`
	LastCheckinDate *time.Time `db:"last_checkin_date"`
	ShareToken      *string    `db:"share_token"`
	CreatedAt       time.Time  `db:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at"`
}
