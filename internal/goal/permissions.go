// AngelaMos | 2026
// permissions.go

package goal

// Permissions is the capability set the UI consults before exposing an
// action on a goal.
type Permissions struct {
	CanEdit          bool `json:"can_edit"`
	CanDelete        bool `json:"can_delete"`
	CanCheckIn       bool `json:"can_check_in"`
	CanShare         bool `json:"can_share"`
	CanReceiveEmails bool `json:"can_receive_emails"`
	CanGenerateNudge bool `json:"can_generate_nudge"`
}

// trial_expired is read-only to force an upgrade decision. goal_expired
// keeps edit/delete so the user can revive the goal (push the date
// forward) but blocks live engagement with a goal past its own deadline.
var permissionsByStatus = map[Status]Permissions{
	StatusTrialExpired: {},
	StatusGoalExpired: {
		CanEdit:   true,
		CanDelete: true,
	},
	StatusActive: {
		CanEdit:          true,
		CanDelete:        true,
		CanCheckIn:       true,
		CanShare:         true,
		CanReceiveEmails: true,
		CanGenerateNudge: true,
	},
}

// PermissionsFor maps a status to its capability set. Unknown statuses get
// the empty set: deny everything rather than guess.
func PermissionsFor(s Status) Permissions {
	return permissionsByStatus[s]
}
