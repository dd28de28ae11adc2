// Package planner defines the shared-state store the planning group writes
// through: attendance marks and comments, keyed by show ID. Two
// implementations exist, mirroring how the planner has always degraded: a
// SQL-backed store shared across devices, and a local JSON snapshot used
// when the database is unreachable so a single device can keep planning.
package planner

import (
	"context"
	"errors"

	"github.com/iliyamo/festival-schedule-planner/internal/model"
)

// ErrNotFound indicates the referenced mark or comment does not exist.
var ErrNotFound = errors.New("planner: not found")

// ErrForbidden indicates the caller tried to modify a record that belongs
// to another attendee.
var ErrForbidden = errors.New("planner: forbidden")

// Store is the write/read surface for the planner's shared state. The
// schedule itself is not stored here — it lives in memory and is keyed into
// this store only through show IDs. Last write wins everywhere; the planner
// does not reconcile concurrent edits.
type Store interface {
	// SetAttendance upserts an attendee's mark on a show.
	SetAttendance(ctx context.Context, showID, name string, state model.AttendanceState) error
	// GetAttendance returns the mark for (show, attendee) or ErrNotFound.
	// Tombstoned ("deleted") marks are returned so toggling can resume
	// the cycle from them.
	GetAttendance(ctx context.Context, showID, name string) (model.Attendance, error)
	// ListAttendance returns the live marks on a show, oldest first.
	ListAttendance(ctx context.Context, showID string) ([]model.Attendance, error)
	// ShowIDsFor returns the set of show IDs the attendee holds a live
	// mark on.
	ShowIDsFor(ctx context.Context, name string) (map[string]bool, error)
	// AddComment appends a comment to a show's thread.
	AddComment(ctx context.Context, cm model.Comment) error
	// DeleteComment removes a comment; only its author may do so.
	// Returns ErrNotFound or ErrForbidden accordingly.
	DeleteComment(ctx context.Context, showID, commentID, author string) error
	// ListComments returns a show's comments, oldest first.
	ListComments(ctx context.Context, showID string) ([]model.Comment, error)
	// Export returns the full shared state for backup or transfer.
	Export(ctx context.Context) (model.PlannerExport, error)
}
