package model

import "time"

// AttendanceState is the closed set of states an attendee's mark on a show
// can be in.  It used to be a free-form string threaded through the UI; the
// closed type makes the transition cycle checkable.
type AttendanceState string

const (
	// StateNormal means the attendee plans to be at the show.
	StateNormal AttendanceState = "normal"
	// StateMustSee is an emphasized mark for shows the attendee refuses
	// to miss.
	StateMustSee AttendanceState = "must-see"
	// StateDeleted is a tombstone: the mark exists in storage but the
	// attendee is not going.  Kept rather than hard-deleted so a re-add
	// restores through the same toggle cycle.
	StateDeleted AttendanceState = "deleted"
)

// Valid reports whether s is one of the three known states.
func (s AttendanceState) Valid() bool {
	switch s {
	case StateNormal, StateMustSee, StateDeleted:
		return true
	}
	return false
}

// Next returns the state after one toggle.  The cycle is
// normal -> must-see -> deleted -> normal.
func (s AttendanceState) Next() AttendanceState {
	switch s {
	case StateNormal:
		return StateMustSee
	case StateMustSee:
		return StateDeleted
	default:
		return StateNormal
	}
}

// Attendance is one attendee's mark on one show.  ShowID is the stable
// identifier derived from the schedule; Name is the attendee's display
// name, which is also the key the group shares (the planner trusts names,
// it does not verify them).
type Attendance struct {
	ShowID    string          `json:"show_id"`
	Name      string          `json:"name"`
	State     AttendanceState `json:"state"`
	UpdatedAt time.Time       `json:"updated_at"`
}
